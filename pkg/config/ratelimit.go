package config

import (
	"log/slog"

	"story-api/pkg/ratelimit"
)

// LoadRateLimitConfig loads rate limiting configuration from environment variables.
//
// Invalid values are logged and replaced with defaults instead of failing startup.
//
// Environment variables:
//   - RATELIMIT_ENABLED: Enable/disable rate limiting (default: true)
//   - RATELIMIT_MAX_REQUESTS: Requests per client per window (default: 100)
//   - RATELIMIT_WINDOW: Window length (default: 15m)
//
// base supplies the values used when a variable is not set; nil means
// ratelimit.DefaultConfig().
func LoadRateLimitConfig(base *ratelimit.RateLimitConfig) *ratelimit.RateLimitConfig {
	def := ratelimit.DefaultConfig()
	if base == nil {
		base = def
	}
	cfg := &ratelimit.RateLimitConfig{
		Enabled:     GetEnvBool("RATELIMIT_ENABLED", base.Enabled),
		MaxRequests: GetEnvInt("RATELIMIT_MAX_REQUESTS", base.MaxRequests),
		Window:      GetEnvDuration("RATELIMIT_WINDOW", base.Window),
	}

	if cfg.MaxRequests < 1 {
		slog.Warn("invalid RATELIMIT_MAX_REQUESTS, using default",
			slog.Int("value", cfg.MaxRequests),
			slog.Int("default", def.MaxRequests))
		cfg.MaxRequests = def.MaxRequests
	}

	if err := ValidatePositiveDuration(cfg.Window); err != nil {
		slog.Warn("invalid RATELIMIT_WINDOW, using default",
			slog.String("value", cfg.Window.String()),
			slog.String("default", def.Window.String()),
			slog.String("error", err.Error()))
		cfg.Window = def.Window
	}

	return cfg
}
