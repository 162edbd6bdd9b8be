package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
// Request fields themselves are validated by the downloader; this only
// checks tool-level settings.
func (c *Config) Validate() error {
	switch c.Request.Kind {
	case "history", "div", "split":
	default:
		return fmt.Errorf("request.kind must be history, div or split, got %q", c.Request.Kind)
	}

	if c.HTTP.Timeout < 0 {
		return errors.New("http.timeout must be >= 0")
	}
	if c.HTTP.MaxRetries < 0 {
		return errors.New("http.max_retries must be >= 0")
	}
	if c.HTTP.RateLimit < 0 {
		return errors.New("http.rate_limit must be >= 0")
	}

	if c.Fetch.Workers < 1 {
		return errors.New("fetch.workers must be >= 1")
	}

	return nil
}
