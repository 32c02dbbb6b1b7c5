package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements the RateLimitMetrics interface using Prometheus.
//
// All metrics live in a custom registry so that tests can create isolated
// instances; the registry is exposed through Registry() and gathered together
// with the default registry on /metrics.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	// requestsTotal tracks rate limit checks by limiter type, status and path.
	requestsTotal *prometheus.CounterVec

	// checkDuration tracks the duration of rate limit check operations.
	checkDuration *prometheus.HistogramVec

	// activeKeys tracks the number of keys held in memory.
	// The fixed window limiter never evicts, so this only grows.
	activeKeys *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance with a custom registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limit_requests_total",
			Help: "Total rate limit requests by limiter type, status, and path",
		},
		[]string{"limiter_type", "status", "path"},
	)

	checkDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_rate_limit_check_duration_seconds",
			Help:    "Duration of rate limit check operations",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
		[]string{"limiter_type"},
	)

	activeKeys := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_rate_limit_active_keys",
			Help: "Current number of tracked keys by limiter type",
		},
		[]string{"limiter_type"},
	)

	registry.MustRegister(requestsTotal, checkDuration, activeKeys)

	return &PrometheusMetrics{
		registry:      registry,
		requestsTotal: requestsTotal,
		checkDuration: checkDuration,
		activeKeys:    activeKeys,
	}
}

// Registry returns the Prometheus registry containing all rate limit metrics.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAllowed records a rate limit check that resulted in an allowed request.
func (m *PrometheusMetrics) RecordAllowed(limiterType, endpoint string) {
	m.requestsTotal.WithLabelValues(limiterType, "allowed", endpoint).Inc()
}

// RecordDenied records a rate limit violation (request denied).
func (m *PrometheusMetrics) RecordDenied(limiterType, endpoint string) {
	m.requestsTotal.WithLabelValues(limiterType, "denied", endpoint).Inc()
}

// RecordCheckDuration records the duration of a rate limit check operation.
func (m *PrometheusMetrics) RecordCheckDuration(limiterType string, duration time.Duration) {
	m.checkDuration.WithLabelValues(limiterType).Observe(duration.Seconds())
}

// SetActiveKeys records the current number of tracked keys.
func (m *PrometheusMetrics) SetActiveKeys(limiterType string, count int) {
	m.activeKeys.WithLabelValues(limiterType).Set(float64(count))
}
