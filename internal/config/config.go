// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config represents the analyzer configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must
// be provided via CLI flags or environment.
type Config struct {
	// Provider
	APIKeys []string `json:"api_keys,omitempty"` // Ordered Gemini API key pool
	Model   string   `json:"model,omitempty"`    // Gemini model name

	// Retry behavior
	RequestTimeoutSec int `json:"request_timeout_sec,omitempty" validate:"omitempty,min=1,max=300"`
	MaxAttempts       int `json:"max_attempts,omitempty" validate:"omitempty,min=1,max=10"`

	// Caching
	DatabaseURL   string `json:"database_url,omitempty"`  // PostgreSQL URL for the durable cache tier
	CacheCapacity int    `json:"cache_capacity,omitempty" validate:"omitempty,min=1"`
	MemoryTTLMin  int    `json:"memory_ttl_min,omitempty" validate:"omitempty,min=1"`
	StoreTTLHours int    `json:"store_ttl_hours,omitempty" validate:"omitempty,min=1"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills unset fields from environment variables. GEMINI_API_KEY may
// hold a comma-separated key pool; DATABASE_URL configures the durable
// cache tier.
func (c *Config) FromEnv() {
	if len(c.APIKeys) == 0 {
		if raw := os.Getenv("GEMINI_API_KEY"); raw != "" {
			for _, key := range strings.Split(raw, ",") {
				if key = strings.TrimSpace(key); key != "" {
					c.APIKeys = append(c.APIKeys, key)
				}
			}
		}
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks field ranges via struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// RequestTimeout returns the configured request timeout, or d when unset.
func (c *Config) RequestTimeout(d time.Duration) time.Duration {
	if c.RequestTimeoutSec > 0 {
		return time.Duration(c.RequestTimeoutSec) * time.Second
	}
	return d
}

// MemoryTTL returns the configured tier-1 TTL, or d when unset.
func (c *Config) MemoryTTL(d time.Duration) time.Duration {
	if c.MemoryTTLMin > 0 {
		return time.Duration(c.MemoryTTLMin) * time.Minute
	}
	return d
}

// StoreTTL returns the configured tier-2 TTL, or d when unset.
func (c *Config) StoreTTL(d time.Duration) time.Duration {
	if c.StoreTTLHours > 0 {
		return time.Duration(c.StoreTTLHours) * time.Hour
	}
	return d
}
