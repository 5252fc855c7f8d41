package sensorpush

import (
	"errors"
	"fmt"
)

// Err is the root of the package error taxonomy. Every error returned by
// this package matches it via errors.Is, so callers can treat the API as
// a single failure domain or pick a kind with errors.As.
var Err = errors.New("sensorpush")

// AuthenticationError reports missing or rejected credentials. It is a
// local precondition failure, raised before any request goes out.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("sensorpush: authentication: %s", e.Message)
}

func (e *AuthenticationError) Unwrap() error { return Err }

// ParseError reports a response body that could not be decoded into the
// expected JSON structure.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sensorpush: parse: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("sensorpush: parse: %s", e.Message)
}

func (e *ParseError) Unwrap() error { return Err }

// APIError reports a transport-level failure (connection refused, timeout).
// StatusCode and Status are populated when the upstream supplied them and
// are zero-valued otherwise.
type APIError struct {
	Message    string
	StatusCode int
	Status     string
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sensorpush: api: %s (status %d %s)", e.Message, e.StatusCode, e.Status)
	}
	if e.Cause != nil {
		return fmt.Sprintf("sensorpush: api: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("sensorpush: api: %s", e.Message)
}

func (e *APIError) Unwrap() error { return Err }
