// Package middleware contains HTTP middleware that is configured from the
// application config: rate limiting, CORS and Content-Security-Policy.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"story-api/internal/handler/http/pathutil"
	"story-api/internal/handler/http/respond"
	"story-api/pkg/ratelimit"
)

// UnknownClient is the key used when a request carries no X-Forwarded-For.
const UnknownClient = "unknown"

// DefaultSkipPaths are never rate limited.
var DefaultSkipPaths = []string{"/health", "/metrics", "/swagger/"}

// ClientID returns the first X-Forwarded-For entry, or UnknownClient.
//
// The header is taken at face value; the API is expected to run behind a
// proxy that sets it.
func ClientID(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return UnknownClient
	}
	first, _, _ := strings.Cut(xff, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return UnknownClient
	}
	return first
}

// RateLimiter is the HTTP adapter around a ratelimit.Limiter.
//
// Response headers on every limited route:
//   - X-RateLimit-Limit: maximum requests allowed in the window
//   - X-RateLimit-Remaining: requests left in the current window
//   - X-RateLimit-Reset: Unix timestamp when the window resets
//   - Retry-After: seconds to wait (denied requests only)
type RateLimiter struct {
	limiter   ratelimit.Limiter
	metrics   ratelimit.RateLimitMetrics
	skipPaths []string
}

// NewRateLimiter wraps limiter. metrics may be nil. When skipPaths is empty
// DefaultSkipPaths is used; an entry ending in "/" matches as a prefix.
func NewRateLimiter(limiter ratelimit.Limiter, metrics ratelimit.RateLimitMetrics, skipPaths ...string) *RateLimiter {
	if metrics == nil {
		metrics = ratelimit.NewNoOpMetrics()
	}
	if len(skipPaths) == 0 {
		skipPaths = DefaultSkipPaths
	}
	return &RateLimiter{limiter: limiter, metrics: metrics, skipPaths: skipPaths}
}

// Middleware returns an HTTP middleware handler that enforces the limit.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.skip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		decision := rl.limiter.Allow(r.Context(), ClientID(r))
		setRateLimitHeaders(w, decision)

		if decision.IsDenied() {
			rl.writeRateLimitError(w, r, decision)
			return
		}

		rl.metrics.RecordAllowed(decision.LimiterType, pathutil.NormalizePath(r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) skip(path string) bool {
	for _, p := range rl.skipPaths {
		if path == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)) {
			return true
		}
	}
	return false
}

func setRateLimitHeaders(w http.ResponseWriter, decision *ratelimit.RateLimitDecision) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAtUnix(), 10))
}

func (rl *RateLimiter) writeRateLimitError(w http.ResponseWriter, r *http.Request, decision *ratelimit.RateLimitDecision) {
	retryAfter := decision.RetryAfterSeconds()
	w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
	respond.Fail(w, http.StatusTooManyRequests, respond.MsgTooManyRequests)

	rl.metrics.RecordDenied(decision.LimiterType, pathutil.NormalizePath(r.URL.Path))

	slog.Warn("rate limit exceeded",
		slog.Any("decision", decision),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
	)
}
