package ratelimit

import (
	"fmt"
	"time"
)

// Default limits: 100 requests per client per 15 minutes.
const (
	DefaultMaxRequests = 100
	DefaultWindow      = 15 * time.Minute
)

// RateLimitConfig contains the configuration for rate limiting.
type RateLimitConfig struct {
	// MaxRequests is the number of requests a client may make per window.
	MaxRequests int
	// Window is the length of each fixed window.
	Window time.Duration
	// Enabled turns the HTTP middleware on or off.
	Enabled bool
}

// Validate checks if the RateLimitConfig is valid.
func (c *RateLimitConfig) Validate() error {
	if c.MaxRequests < 1 {
		return fmt.Errorf("MaxRequests must be at least 1, got %d", c.MaxRequests)
	}
	if c.Window <= 0 {
		return fmt.Errorf("Window must be positive, got %s", c.Window)
	}
	return nil
}

// ApplyDefaults sets default values for any zero fields.
func (c *RateLimitConfig) ApplyDefaults() {
	if c.MaxRequests == 0 {
		c.MaxRequests = DefaultMaxRequests
	}
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
}

// DefaultConfig returns an enabled configuration with the default limits.
func DefaultConfig() *RateLimitConfig {
	return &RateLimitConfig{
		MaxRequests: DefaultMaxRequests,
		Window:      DefaultWindow,
		Enabled:     true,
	}
}
