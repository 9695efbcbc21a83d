// Package llm provides the AI analysis client: prompt construction, the
// Gemini provider binding, retry with exponential backoff, and API-key
// rotation under quota pressure.
package llm

import "time"

// Config holds the provider and retry configuration for the analysis client.
type Config struct {
	Model          string
	RequestTimeout time.Duration
	MaxAttempts    int
	BaseBackoff    time.Duration
	MaxBackoff     time.Duration
	LogSize        int
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:          "gemini-2.5-flash",
		RequestTimeout: 45 * time.Second,
		MaxAttempts:    3,
		BaseBackoff:    time.Second,
		MaxBackoff:     10 * time.Second,
		LogSize:        DefaultRequestLogSize,
	}
}

// backoffFor returns the delay before attempt n (1-based): base doubling per
// attempt, capped at MaxBackoff.
func (c *Config) backoffFor(attempt int) time.Duration {
	delay := c.BaseBackoff
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= c.MaxBackoff {
			return c.MaxBackoff
		}
	}
	if delay > c.MaxBackoff {
		return c.MaxBackoff
	}
	return delay
}
