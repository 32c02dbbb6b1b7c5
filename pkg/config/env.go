// Package config reads typed settings from environment variables. Malformed
// values never fail startup: they are logged and the default is used.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup returns parse(os.Getenv(key)), or def when the variable is unset,
// empty, or rejected by parse.
func lookup[T any](key string, def T, kind string, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("invalid "+kind+" value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", def),
			slog.String("error", err.Error()))
		return def
	}
	return v
}

// GetEnvString returns the variable as-is, or defaultValue when unset or empty.
func GetEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	return lookup(key, defaultValue, "integer", strconv.Atoi)
}

// GetEnvInt64 is used for byte sizes such as MAX_UPLOAD_SIZE.
func GetEnvInt64(key string, defaultValue int64) int64 {
	return lookup(key, defaultValue, "integer", func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	return lookup(key, defaultValue, "float", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvBool accepts the spellings strconv.ParseBool does ("1", "t", "true", "FALSE", ...).
func GetEnvBool(key string, defaultValue bool) bool {
	return lookup(key, defaultValue, "boolean", strconv.ParseBool)
}

// GetEnvDuration parses values like "30s" or "1h30m".
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return lookup(key, defaultValue, "duration", time.ParseDuration)
}

// GetEnvStringList splits a comma-separated variable, trimming entries and
// dropping empty ones.
//
//	CORS_ALLOWED_ORIGINS="https://a.example, https://b.example"
func GetEnvStringList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var result []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
