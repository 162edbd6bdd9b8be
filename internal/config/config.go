// Package config loads the yfdump tool configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration of the yfdump tool.
type Config struct {
	Request RequestConfig `yaml:"request"`
	HTTP    HTTPConfig    `yaml:"http"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Output  OutputConfig  `yaml:"output"`
}

// RequestConfig holds the default download request. Command-line flags
// override individual fields.
type RequestConfig struct {
	Start    string   `yaml:"start"`
	End      string   `yaml:"end"`
	Tickers  []string `yaml:"tickers"`
	Interval string   `yaml:"interval"`
	Exchange string   `yaml:"exchange"`
	Columns  []string `yaml:"columns"`
	Kind     string   `yaml:"kind"` // history, div or split
}

// HTTPConfig holds outbound HTTP settings.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	RateLimit    float64       `yaml:"rate_limit"` // requests per second, 0 = unlimited
	QuoteURL     string        `yaml:"quote_url"`
	DownloadURL  string        `yaml:"download_url"`
}

// FetchConfig holds fetch pool settings.
type FetchConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Path string `yaml:"path"` // CSV destination, "" = stdout
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}
