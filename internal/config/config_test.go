package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeTempFile(t, `
request:
  start: "2010-01-01"
  end: "2010-12-31"
  tickers: [aapl, vz]
  interval: w
  exchange: LSE
  columns: [Close, Volume]
  kind: history
http:
  timeout: 10s
  max_retries: 5
  retry_backoff: 500ms
  rate_limit: 2.5
fetch:
  workers: 8
output:
  path: out.csv
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Request.Start != "2010-01-01" || cfg.Request.End != "2010-12-31" {
			t.Errorf("dates = %q..%q", cfg.Request.Start, cfg.Request.End)
		}
		if want := []string{"aapl", "vz"}; !reflect.DeepEqual(cfg.Request.Tickers, want) {
			t.Errorf("tickers = %v, want %v", cfg.Request.Tickers, want)
		}
		if cfg.Request.Interval != "w" || cfg.Request.Exchange != "LSE" {
			t.Errorf("interval/exchange = %q/%q", cfg.Request.Interval, cfg.Request.Exchange)
		}
		if cfg.HTTP.Timeout != 10*time.Second || cfg.HTTP.RetryBackoff != 500*time.Millisecond {
			t.Errorf("http timings = %v/%v", cfg.HTTP.Timeout, cfg.HTTP.RetryBackoff)
		}
		if cfg.HTTP.RateLimit != 2.5 {
			t.Errorf("rate limit = %v", cfg.HTTP.RateLimit)
		}
		if cfg.Fetch.Workers != 8 {
			t.Errorf("workers = %d", cfg.Fetch.Workers)
		}
		if cfg.Output.Path != "out.csv" {
			t.Errorf("output path = %q", cfg.Output.Path)
		}
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("YFDUMP_TICKER", "IBM")
		path := writeTempFile(t, `
request:
  tickers: ["${YFDUMP_TICKER}"]
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if want := []string{"IBM"}; !reflect.DeepEqual(cfg.Request.Tickers, want) {
			t.Errorf("tickers = %v, want %v", cfg.Request.Tickers, want)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := writeTempFile(t, "request: [not a map")
		if _, err := Load(path); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Request.Interval != "d" || cfg.Request.Exchange != "NYSE" || cfg.Request.Kind != "history" {
		t.Errorf("request defaults = %q/%q/%q", cfg.Request.Interval, cfg.Request.Exchange, cfg.Request.Kind)
	}
	if len(cfg.Request.Columns) != 6 {
		t.Errorf("columns = %v", cfg.Request.Columns)
	}
	if cfg.HTTP.Timeout != 30*time.Second || cfg.HTTP.MaxRetries != 3 || cfg.HTTP.RetryBackoff != time.Second {
		t.Errorf("http defaults = %v/%d/%v", cfg.HTTP.Timeout, cfg.HTTP.MaxRetries, cfg.HTTP.RetryBackoff)
	}
	if cfg.Fetch.Workers != 4 {
		t.Errorf("workers = %d", cfg.Fetch.Workers)
	}

	// Explicit settings survive.
	cfg2 := &Config{}
	cfg2.Request.Interval = "m"
	cfg2.Fetch.Workers = 2
	cfg2.ApplyDefaults()
	if cfg2.Request.Interval != "m" || cfg2.Fetch.Workers != 2 {
		t.Errorf("explicit values overwritten: %q/%d", cfg2.Request.Interval, cfg2.Fetch.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults valid", func(c *Config) {}, ""},
		{"bad kind", func(c *Config) { c.Request.Kind = "prices" }, "request.kind"},
		{"negative timeout", func(c *Config) { c.HTTP.Timeout = -time.Second }, "http.timeout"},
		{"negative retries", func(c *Config) { c.HTTP.MaxRetries = -1 }, "http.max_retries"},
		{"negative rate limit", func(c *Config) { c.HTTP.RateLimit = -1 }, "http.rate_limit"},
		{"zero workers", func(c *Config) { c.Fetch.Workers = 0 }, "fetch.workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate failed: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadAndValidate(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		path := writeTempFile(t, `
request:
  tickers: [AAPL]
`)
		cfg, err := LoadAndValidate(path)
		if err != nil {
			t.Fatalf("LoadAndValidate failed: %v", err)
		}
		if cfg.Request.Exchange != "NYSE" || cfg.Fetch.Workers != 4 {
			t.Errorf("defaults missing: %q/%d", cfg.Request.Exchange, cfg.Fetch.Workers)
		}
	})

	t.Run("invalid settings rejected", func(t *testing.T) {
		path := writeTempFile(t, `
request:
  kind: prices
`)
		if _, err := LoadAndValidate(path); err == nil {
			t.Fatal("expected error")
		}
	})
}
