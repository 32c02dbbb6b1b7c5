package ratelimit

import (
	"context"
	"sync"
	"time"
)

// windowEntry is the per-key counter for the current window.
type windowEntry struct {
	count   int
	resetAt time.Time
}

// FixedWindowLimiter implements Limiter with per-key fixed windows.
//
// All state sits behind a single mutex, so checks for different keys are
// serialized as well. Entries are replaced when their window has expired and
// are otherwise kept forever.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry

	limit       int
	window      time.Duration
	limiterType string
	clock       Clock
	metrics     RateLimitMetrics
}

// FixedWindowOption customizes a FixedWindowLimiter.
type FixedWindowOption func(*FixedWindowLimiter)

// WithClock overrides the time source.
func WithClock(c Clock) FixedWindowOption {
	return func(l *FixedWindowLimiter) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m RateLimitMetrics) FixedWindowOption {
	return func(l *FixedWindowLimiter) {
		if m != nil {
			l.metrics = m
		}
	}
}

// WithLimiterType sets the label reported in decisions and metrics.
func WithLimiterType(t string) FixedWindowOption {
	return func(l *FixedWindowLimiter) {
		if t != "" {
			l.limiterType = t
		}
	}
}

// NewFixedWindowLimiter creates a limiter allowing limit requests per window per key.
func NewFixedWindowLimiter(limit int, window time.Duration, opts ...FixedWindowOption) *FixedWindowLimiter {
	l := &FixedWindowLimiter{
		entries:     make(map[string]*windowEntry),
		limit:       limit,
		window:      window,
		limiterType: "ip",
		clock:       &SystemClock{},
		metrics:     NewNoOpMetrics(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records a request for key.
//
//   - no entry, or the window has expired: start a new window with count 1
//   - count already at the limit: deny without counting
//   - otherwise: count the request and allow it
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) *RateLimitDecision {
	start := l.clock.Now()

	l.mu.Lock()
	now := l.clock.Now()
	entry, ok := l.entries[key]
	var d *RateLimitDecision
	switch {
	case !ok || !now.Before(entry.resetAt):
		entry = &windowEntry{count: 1, resetAt: now.Add(l.window)}
		l.entries[key] = entry
		d = newDecision(key, l.limiterType, true, l.limit, l.limit-entry.count, entry.resetAt, now)
	case entry.count >= l.limit:
		d = newDecision(key, l.limiterType, false, l.limit, 0, entry.resetAt, now)
	default:
		entry.count++
		d = newDecision(key, l.limiterType, true, l.limit, l.limit-entry.count, entry.resetAt, now)
	}
	keys := len(l.entries)
	l.mu.Unlock()

	l.metrics.SetActiveKeys(l.limiterType, keys)
	l.metrics.RecordCheckDuration(l.limiterType, l.clock.Now().Sub(start))
	return d
}

// KeyCount returns the number of keys currently tracked.
func (l *FixedWindowLimiter) KeyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Limit returns the configured request limit per window.
func (l *FixedWindowLimiter) Limit() int { return l.limit }

// Window returns the configured window length.
func (l *FixedWindowLimiter) Window() time.Duration { return l.window }
