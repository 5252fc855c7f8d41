// Package sensorpush is a client for the SensorPush Gateway Cloud API. It
// authenticates an account through the two-step oauth exchange, lists
// gateway and sensor devices, and retrieves time-series samples.
package sensorpush

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.sensorpush.com/api/v1"

const defaultTimeout = 30 * time.Second

// Client talks to the SensorPush cloud. It is meant for single-owner use;
// methods are not safe for concurrent calls on one instance because
// Authenticate replaces the token in place.
type Client struct {
	client  *http.Client
	limit   *rate.Limiter
	log     *zap.Logger
	baseURL string
	timeout time.Duration

	email    string
	password string
	token    string
}

type Option func(c *Client) error

// New builds a Client. Without options it uses the production endpoint, an
// otel-instrumented transport, a one-request-per-second limiter matching
// the upstream rate policy, and the global zap logger.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		log:     zap.L(),
		limit:   rate.NewLimiter(rate.Every(time.Second), 1),
		client:  &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
	}

	// apply the options
	for _, o := range opts {
		err := o(c)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// WithCredentials sets the account email and password used by Authenticate.
func WithCredentials(email, password string) Option {
	return func(c *Client) error {
		c.email = email
		c.password = password
		return nil
	}
}

// WithToken seeds a pre-obtained access token, bypassing the oauth
// exchange entirely.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.token = token
		return nil
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}

// WithTimeout bounds each request, connection open and read included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		c.timeout = d
		return nil
	}
}

func WithBaseURL(u string) Option {
	return func(c *Client) error {
		c.baseURL = u
		return nil
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.client = hc
		return nil
	}
}

func WithRateLimit(l *rate.Limiter) Option {
	return func(c *Client) error {
		c.limit = l
		return nil
	}
}

// Token returns the current access token, empty when unauthenticated.
func (c *Client) Token() string { return c.token }

// Authenticate runs the two-step oauth exchange: the authorize endpoint
// trades credentials for a one-time code, the accesstoken endpoint trades
// the code for a token. It returns true iff a token was obtained; an
// upstream rejection that still produces a well-formed body comes back as
// (false, nil), not an error. Calling it again replaces the token.
func (c *Client) Authenticate(ctx context.Context) (bool, error) {
	if c.email == "" && c.password == "" {
		return false, &AuthenticationError{Message: "Username and password required"}
	}

	body, err := c.call(ctx, "oauth/authorize", map[string]any{
		"email":    c.email,
		"password": c.password,
	})
	if err != nil {
		return false, err
	}
	code, ok := body["authorization"].(string)
	if !ok || code == "" {
		c.log.Debug("authorize step returned no code")
		return false, nil
	}

	body, err = c.call(ctx, "oauth/accesstoken", map[string]any{
		"authorization": code,
	})
	if err != nil {
		return false, err
	}
	token, ok := body["accesstoken"].(string)
	if !ok || token == "" {
		c.log.Debug("accesstoken step returned no token")
		return false, nil
	}

	c.token = token
	return true, nil
}

// Gateways lists the account's gateway devices.
func (c *Client) Gateways(ctx context.Context) ([]Gateway, error) {
	body, err := c.call(ctx, "devices/gateways", map[string]any{})
	if err != nil {
		return nil, err
	}
	return parseDevices(body, NewGateway), nil
}

// Sensors lists the account's sensor devices.
func (c *Client) Sensors(ctx context.Context) ([]Sensor, error) {
	body, err := c.call(ctx, "devices/sensors", map[string]any{})
	if err != nil {
		return nil, err
	}
	return parseDevices(body, NewSensor), nil
}

// SampleQuery narrows a Samples request. Zero values mean "not set".
type SampleQuery struct {
	Limit     int
	StartTime time.Time
	EndTime   time.Time
}

// Samples retrieves readings for one sensor, newest first as the upstream
// returns them. A response that carries no data for the sensor yields an
// empty slice, not an error.
func (c *Client) Samples(ctx context.Context, sensorID string, q SampleQuery) ([]Sample, error) {
	reqBody := map[string]any{
		"sensors": []string{sensorID},
	}
	if q.Limit > 0 {
		reqBody["limit"] = q.Limit
	}
	if !q.StartTime.IsZero() {
		reqBody["startTime"] = q.StartTime.Format(time.RFC3339)
	}
	if !q.EndTime.IsZero() {
		reqBody["endTime"] = q.EndTime.Format(time.RFC3339)
	}

	body, err := c.call(ctx, "samples", reqBody)
	if err != nil {
		return nil, err
	}

	sensors, ok := body["sensors"].(map[string]any)
	if !ok {
		return []Sample{}, nil
	}
	readings, ok := sensors[sensorID].([]any)
	if !ok {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(readings))
	for _, r := range readings {
		attrs, ok := r.(map[string]any)
		if !ok {
			continue
		}
		samples = append(samples, NewSample(attrs))
	}
	return samples, nil
}

// call posts a JSON body to one API path and decodes the JSON object that
// comes back. The HTTP status code is deliberately not inspected: the
// upstream reports application errors inside otherwise well-formed bodies,
// and those must surface as missing fields, not failures. Only transport
// errors (APIError) and undecodable bodies (ParseError) are raised.
func (c *Client) call(ctx context.Context, path string, reqBody map[string]any) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ParseError{Message: "cannot encode request body", Cause: err}
	}

	url := c.baseURL + "/" + path
	c.log.Debug("calling api", zap.String("url", url))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &APIError{Message: "cannot create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	// apply the ratelimit
	if err := c.limit.Wait(ctx); err != nil {
		return nil, &APIError{Message: "rate limit wait aborted", Cause: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("request failed", zap.String("url", url), zap.Error(err))
		return nil, &APIError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("cannot read response body", zap.String("url", url), zap.Error(err))
		return nil, &APIError{
			Message:    "cannot read response body",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Cause:      err,
		}
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		c.log.Error("cannot decode response body", zap.String("url", url), zap.Error(err))
		return nil, &ParseError{Message: "invalid response body", Cause: err}
	}
	return body, nil
}
