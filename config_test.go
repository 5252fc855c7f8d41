package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := `
email: user@example.com
password: hunter2
interval: 5m
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Email != "user@example.com" {
		t.Fatalf("expected email from file, got %s", cfg.Email)
	}
	if cfg.Interval != 5*time.Minute {
		t.Fatalf("expected interval 5m, got %s", cfg.Interval)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("expected timeout default 30s, got %s", cfg.Timeout)
	}
	if cfg.SampleLimit != 1 {
		t.Fatalf("expected sample limit default 1, got %d", cfg.SampleLimit)
	}
	if cfg.MetricsAddr != ":9100" {
		t.Fatalf("expected default metrics addr :9100, got %s", cfg.MetricsAddr)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Interval != time.Minute {
		t.Fatalf("expected interval default 1m, got %s", cfg.Interval)
	}
	if err := cfg.validate(); err == nil {
		t.Fatal("expected validation failure without credentials")
	}
}

func TestValidateAcceptsToken(t *testing.T) {
	cfg := &Config{Token: "tok"}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
