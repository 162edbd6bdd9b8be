package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultInterval     = "d"
	DefaultExchange     = "NYSE"
	DefaultKind         = "history"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 1 * time.Second
	DefaultWorkers      = 4
)

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Request.Interval == "" {
		c.Request.Interval = DefaultInterval
	}
	if c.Request.Exchange == "" {
		c.Request.Exchange = DefaultExchange
	}
	if c.Request.Kind == "" {
		c.Request.Kind = DefaultKind
	}
	if len(c.Request.Columns) == 0 {
		c.Request.Columns = []string{"Open", "High", "Low", "Close", "Adj Close", "Volume"}
	}

	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = DefaultTimeout
	}
	if c.HTTP.MaxRetries == 0 {
		c.HTTP.MaxRetries = DefaultMaxRetries
	}
	if c.HTTP.RetryBackoff == 0 {
		c.HTTP.RetryBackoff = DefaultRetryBackoff
	}

	if c.Fetch.Workers == 0 {
		c.Fetch.Workers = DefaultWorkers
	}
}
