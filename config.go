package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config drives the scraper. Credentials come either as an email/password
// pair or as a pre-obtained access token.
type Config struct {
	Email       string
	Password    string
	Token       string
	Endpoint    string
	Interval    time.Duration
	Timeout     time.Duration
	SampleLimit int
	MetricsAddr string
}

// rawConfig is the on-disk shape; durations are strings so the file can
// say "5m" instead of nanoseconds.
type rawConfig struct {
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	Token       string `yaml:"token"`
	Endpoint    string `yaml:"endpoint"`
	Interval    string `yaml:"interval"`
	Timeout     string `yaml:"timeout"`
	SampleLimit int    `yaml:"sample_limit"`
	MetricsAddr string `yaml:"metrics_addr"`
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var raw rawConfig
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		cfg.Email = raw.Email
		cfg.Password = raw.Password
		cfg.Token = raw.Token
		cfg.Endpoint = raw.Endpoint
		cfg.SampleLimit = raw.SampleLimit
		cfg.MetricsAddr = raw.MetricsAddr
		if cfg.Interval, err = parseDuration(raw.Interval); err != nil {
			return nil, fmt.Errorf("parse %s: interval: %w", path, err)
		}
		if cfg.Timeout, err = parseDuration(raw.Timeout); err != nil {
			return nil, fmt.Errorf("parse %s: timeout: %w", path, err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func parseDuration(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	return time.ParseDuration(raw)
}

func (c *Config) applyDefaults() {
	if c.Interval == 0 {
		c.Interval = time.Minute
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.SampleLimit == 0 {
		c.SampleLimit = 1
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = ":9100"
	}
}

func (c *Config) validate() error {
	if c.Token == "" && c.Email == "" && c.Password == "" {
		return fmt.Errorf("either a token or an email/password pair is required")
	}
	return nil
}
