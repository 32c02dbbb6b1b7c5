package ratelimit

import (
	"log/slog"
	"math"
	"time"
)

// RateLimitDecision is the outcome of one Allow call along with the
// numbers the X-RateLimit-* headers are built from.
type RateLimitDecision struct {
	// Key is the client id the request was counted against.
	Key string

	Allowed bool

	// Limit is the window's request budget.
	Limit int

	// Remaining is never negative.
	Remaining int

	// ResetAt is when the key's current window ends.
	ResetAt time.Time

	// RetryAfter is ResetAt minus the time of the decision, never negative.
	RetryAfter time.Duration

	// LimiterType labels metrics and log lines.
	LimiterType string
}

// LogValue renders the decision as a log group.
func (d *RateLimitDecision) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("key", d.Key),
		slog.String("limiter_type", d.LimiterType),
		slog.Bool("allowed", d.Allowed),
		slog.Int("limit", d.Limit),
		slog.Time("reset_at", d.ResetAt),
	}
	if d.Allowed {
		attrs = append(attrs, slog.Int("remaining", d.Remaining))
	} else {
		attrs = append(attrs, slog.Int64("retry_after", d.RetryAfterSeconds()))
	}
	return slog.GroupValue(attrs...)
}

// IsDenied returns true if the request is denied.
func (d *RateLimitDecision) IsDenied() bool {
	return !d.Allowed
}

// ResetAtUnix is the X-RateLimit-Reset header value.
func (d *RateLimitDecision) ResetAtUnix() int64 {
	return d.ResetAt.Unix()
}

// RetryAfterSeconds returns the retry delay in whole seconds, rounded up.
// A denied decision always reports at least one second.
func (d *RateLimitDecision) RetryAfterSeconds() int64 {
	seconds := int64(math.Ceil(d.RetryAfter.Seconds()))
	if seconds < 1 && !d.Allowed {
		return 1
	}
	if seconds < 0 {
		return 0
	}
	return seconds
}

func newDecision(key, limiterType string, allowed bool, limit, remaining int, resetAt, now time.Time) *RateLimitDecision {
	retryAfter := resetAt.Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}
	if remaining < 0 {
		remaining = 0
	}
	return &RateLimitDecision{
		Key:         key,
		Allowed:     allowed,
		Limit:       limit,
		Remaining:   remaining,
		ResetAt:     resetAt,
		RetryAfter:  retryAfter,
		LimiterType: limiterType,
	}
}
