package ratelimit

import (
	"log/slog"
	"testing"
	"time"
)

func TestRateLimitDecision_RetryAfterSeconds(t *testing.T) {
	tests := []struct {
		name       string
		allowed    bool
		retryAfter time.Duration
		want       int64
	}{
		{name: "whole seconds", allowed: false, retryAfter: 30 * time.Second, want: 30},
		{name: "rounds up", allowed: false, retryAfter: 1500 * time.Millisecond, want: 2},
		{name: "denied never zero", allowed: false, retryAfter: 0, want: 1},
		{name: "allowed zero", allowed: true, retryAfter: 0, want: 0},
		{name: "fifteen minutes", allowed: false, retryAfter: 15 * time.Minute, want: 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &RateLimitDecision{Allowed: tt.allowed, RetryAfter: tt.retryAfter}
			if got := d.RetryAfterSeconds(); got != tt.want {
				t.Errorf("RetryAfterSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewDecision_ClampsNegatives(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := newDecision("k", "ip", false, 5, -3, now.Add(-time.Second), now)

	if d.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", d.Remaining)
	}
	if d.RetryAfter != 0 {
		t.Errorf("RetryAfter = %s, want 0", d.RetryAfter)
	}
	if !d.IsDenied() {
		t.Error("IsDenied() = false, want true")
	}
	if d.ResetAtUnix() != now.Add(-time.Second).Unix() {
		t.Errorf("ResetAtUnix() = %d", d.ResetAtUnix())
	}
}

func TestRateLimitDecision_LogValue(t *testing.T) {
	reset := time.Date(2025, 1, 1, 0, 15, 0, 0, time.UTC)

	group := func(d *RateLimitDecision) map[string]slog.Value {
		m := make(map[string]slog.Value)
		for _, a := range d.LogValue().Group() {
			m[a.Key] = a.Value
		}
		return m
	}

	allowed := group(&RateLimitDecision{Key: "1.1.1.1", Allowed: true, Limit: 100, Remaining: 99, ResetAt: reset, LimiterType: "client"})
	if allowed["remaining"].Int64() != 99 || allowed["limit"].Int64() != 100 {
		t.Errorf("allowed group = %v", allowed)
	}
	if _, ok := allowed["retry_after"]; ok {
		t.Error("allowed decision should not log retry_after")
	}

	denied := group(&RateLimitDecision{Key: "1.1.1.1", Limit: 100, RetryAfter: time.Minute, ResetAt: reset, LimiterType: "client"})
	if denied["retry_after"].Int64() != 60 || denied["allowed"].Bool() {
		t.Errorf("denied group = %v", denied)
	}
	if denied["key"].String() != "1.1.1.1" {
		t.Errorf("key = %v", denied["key"])
	}
}
