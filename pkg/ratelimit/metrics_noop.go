package ratelimit

import "time"

// NoOpMetrics implements the RateLimitMetrics interface with no-op implementations.
//
// Used in tests and whenever no metrics recorder is configured.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new NoOpMetrics instance.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

// RecordAllowed is a no-op implementation.
func (m *NoOpMetrics) RecordAllowed(limiterType, endpoint string) {}

// RecordDenied is a no-op implementation.
func (m *NoOpMetrics) RecordDenied(limiterType, endpoint string) {}

// RecordCheckDuration is a no-op implementation.
func (m *NoOpMetrics) RecordCheckDuration(limiterType string, duration time.Duration) {}

// SetActiveKeys is a no-op implementation.
func (m *NoOpMetrics) SetActiveKeys(limiterType string, count int) {}
