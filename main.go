package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nimdanitro/sensorpush-scraper-go/pkg/sensorpush"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	email      string
	password   string
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Parse command line flags
	pflag.StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	pflag.StringVarP(&email, "email", "e", "", "SensorPush account email")
	pflag.StringVarP(&password, "password", "p", "", "SensorPush account password")
	pflag.Lookup("email").Value.Set(os.Getenv("SENSORPUSH_EMAIL"))
	pflag.Lookup("password").Value.Set(os.Getenv("SENSORPUSH_PASSWORD"))
	pflag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if email != "" {
		cfg.Email = email
	}
	if password != "" {
		cfg.Password = password
	}
	if err := cfg.validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Setup Otel
	shutdown, err := setupOTelSDK(ctx)
	defer shutdown(ctx)
	if err != nil {
		panic(err)
	}

	// Initialize logger
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(os.Stdout), zapcore.DebugLevel),
		otelzap.NewCore("github.com/nimdanitro/sensorpush-scraper-go", otelzap.WithLoggerProvider(global.GetLoggerProvider())),
	)
	logger := zap.New(core)
	defer logger.Sync()
	logger.Info("starting up", zap.String("version", version), zap.String("commit", commit), zap.String("buildDate", date))

	// Prometheus scrape endpoint for process-level metrics
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
			logger.Error("metrics listener stopped", zap.Error(err))
		}
	}()

	// Initialize metrics
	meter := otel.Meter(
		"github.com/nimdanitro/sensorpush-scraper-go",
		metric.WithInstrumentationAttributes(semconv.OTelScopeName("github.com/nimdanitro/sensorpush-scraper-go")),
	)
	temperature, _ := meter.Float64Gauge("sensor.temperature",
		metric.WithUnit("°C"),
		metric.WithDescription("Temperature in degrees Celsius"),
	)

	humidity, _ := meter.Float64Gauge("sensor.humidity",
		metric.WithUnit("%rH"),
		metric.WithDescription("Relative humidity as a percentage"),
	)

	batteryVoltage, _ := meter.Float64Gauge("sensor.battery.voltage",
		metric.WithUnit("V"),
		metric.WithDescription("Sensor battery cell voltage"),
	)

	lastReading, _ := meter.Float64Histogram(
		"sensor.lastReading.duration",
		metric.WithDescription("The duration since the last sensor reading."),
		metric.WithUnit("s"),
	)

	// create the client
	opts := []sensorpush.Option{
		sensorpush.WithLogger(logger),
		sensorpush.WithTimeout(cfg.Timeout),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, sensorpush.WithBaseURL(cfg.Endpoint))
	}
	if cfg.Token != "" {
		opts = append(opts, sensorpush.WithToken(cfg.Token))
	} else {
		opts = append(opts, sensorpush.WithCredentials(cfg.Email, cfg.Password))
	}
	client, err := sensorpush.New(opts...)
	if err != nil {
		log.Fatalf("cannot create client: %v", err)
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	readSensors := func() {
		logger.Info("fetching data from sensorpush")

		// Tokens are short-lived upstream; re-run the exchange whenever
		// we hold credentials.
		if cfg.Email != "" || cfg.Password != "" {
			ok, err := client.Authenticate(ctx)
			if err != nil {
				logger.Error("authentication failed", zap.Error(err))
				return
			}
			if !ok {
				logger.Warn("credentials rejected, no token obtained")
				return
			}
		}

		sensors, err := client.Sensors(ctx)
		if err != nil {
			logger.Error("failed to list sensors", zap.Error(err))
			return
		}

		for _, sensor := range sensors {
			samples, err := client.Samples(ctx, sensor.ID, sensorpush.SampleQuery{Limit: cfg.SampleLimit})
			if err != nil {
				logger.Error("cannot fetch sensor samples",
					zap.String("sensorID", sensor.ID),
					zap.String("name", sensor.Name),
					zap.Error(err),
				)
				continue
			}
			if len(samples) == 0 {
				logger.Warn("no samples for sensor", zap.String("sensorID", sensor.ID))
				continue
			}

			latest := samples[0]
			attrs := metric.WithAttributes(
				attribute.String("sensor.id", sensor.ID),
				attribute.String("sensor.name", sensor.Name),
			)
			logger.Info("fetched data",
				zap.Float64p("temperature", latest.Temperature),
				zap.Float64p("humidity", latest.Humidity),
				zap.String("sensorId", sensor.ID),
				zap.String("name", sensor.Name),
				zap.Timep("observed", latest.Observed),
			)
			if latest.Temperature != nil {
				temperature.Record(ctx, *latest.Temperature, attrs)
			}
			if latest.Humidity != nil {
				humidity.Record(ctx, *latest.Humidity, attrs)
			}
			if latest.Observed != nil {
				lastReading.Record(ctx, time.Since(*latest.Observed).Seconds(), attrs)
			}
			if sensor.BatteryVoltage != nil {
				batteryVoltage.Record(ctx, *sensor.BatteryVoltage, attrs)
			}
			if low := sensor.BatteryLow(); low != nil && *low {
				logger.Warn("sensor battery low",
					zap.String("sensorID", sensor.ID),
					zap.Float64p("voltage", sensor.BatteryVoltage),
				)
			}
		}
	}

	readSensors()

	for {
		select {
		case <-ticker.C:
			readSensors()
		case <-ctx.Done():
			return
		}
	}
}
