// Package ratelimit provides framework-agnostic rate limiting functionality.
//
// The limiter counts requests per key in fixed windows: the first request for a
// key opens a window of the configured length, every request inside the window
// increments the counter, and once the counter reaches the limit further
// requests are denied until the window expires. State lives in process memory
// and is never evicted.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a request identified by key may proceed.
//
// Implementations must be safe for concurrent use.
type Limiter interface {
	// Allow records the request for key and returns the verdict.
	Allow(ctx context.Context, key string) *RateLimitDecision
}

// RateLimitMetrics defines the interface for recording rate limiting metrics.
//
// Implementations can use Prometheus, StatsD, or custom metrics systems.
type RateLimitMetrics interface {
	// RecordAllowed records a rate limit check that resulted in an allowed request.
	RecordAllowed(limiterType, endpoint string)

	// RecordDenied records a rate limit violation (request denied).
	RecordDenied(limiterType, endpoint string)

	// RecordCheckDuration records the duration of a rate limit check operation.
	RecordCheckDuration(limiterType string, duration time.Duration)

	// SetActiveKeys records the current number of tracked keys.
	SetActiveKeys(limiterType string, count int)
}

// Clock provides an abstraction for time operations to enable testing.
//
// This interface allows for dependency injection of time functions,
// making it easy to test time-dependent behavior with fake clocks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock is a Clock implementation that uses the system time.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
