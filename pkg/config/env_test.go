package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty")
	t.Setenv("TEST_INT64", "10485760")
	t.Setenv("TEST_FLOAT", "0.25")
	t.Setenv("TEST_BOOL", "false")
	t.Setenv("TEST_BOOL_BAD", "nope")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_LIST", " a, ,b ,c")

	assert.Equal(t, "value", GetEnvString("TEST_STR", "d"))
	assert.Equal(t, "d", GetEnvString("TEST_UNSET", "d"))
	assert.Equal(t, 42, GetEnvInt("TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("TEST_INT_BAD", 1))
	assert.Equal(t, int64(10<<20), GetEnvInt64("TEST_INT64", 1))
	assert.Equal(t, int64(3), GetEnvInt64("TEST_INT_BAD", 3))
	assert.InDelta(t, 0.25, GetEnvFloat("TEST_FLOAT", 1), 1e-9)
	assert.InDelta(t, 1.0, GetEnvFloat("TEST_STR", 1), 1e-9)
	assert.False(t, GetEnvBool("TEST_BOOL", true))
	assert.True(t, GetEnvBool("TEST_BOOL_BAD", true))
	t.Setenv("TEST_BOOL", "TRUE")
	assert.True(t, GetEnvBool("TEST_BOOL", false))
	t.Setenv("TEST_INT", " 7 ")
	assert.Equal(t, 7, GetEnvInt("TEST_INT", 1))
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DURATION", time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvStringList("TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, GetEnvStringList("TEST_UNSET", []string{"x"}))
}

func TestValidateDurations(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.NoError(t, ValidateNonNegativeDuration(0))
	assert.Error(t, ValidateNonNegativeDuration(-time.Second))
	assert.NoError(t, ValidateDurationRange(time.Minute, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(2*time.Hour, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(time.Minute, time.Hour, time.Second))
}
