package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rs/cors"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins; "*" allows any origin.
	AllowedOrigins []string

	// MaxAge is how long preflight results can be cached, in seconds.
	MaxAge int

	// Logger receives rs/cors debug output when non-nil.
	Logger *slog.Logger
}

// Default CORS policy values.
var (
	corsAllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsAllowedHeaders = []string{"Content-Type", "X-Request-ID"}
	corsExposedHeaders = []string{
		"X-Request-ID",
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
		"Retry-After",
		"Content-Disposition",
	}
)

// DefaultCORSMaxAge is 24 hours.
const DefaultCORSMaxAge = 86400

// CORS returns an HTTP middleware that handles cross-origin requests.
//
// Preflight requests from allowed origins are answered with 204 and do not
// reach next. Requests from other origins pass through without CORS headers,
// so the browser blocks the response.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	if config.MaxAge <= 0 {
		config.MaxAge = DefaultCORSMaxAge
	}

	c := cors.New(cors.Options{
		AllowedOrigins:       config.AllowedOrigins,
		AllowedMethods:       corsAllowedMethods,
		AllowedHeaders:       corsAllowedHeaders,
		ExposedHeaders:       corsExposedHeaders,
		MaxAge:               config.MaxAge,
		OptionsSuccessStatus: http.StatusNoContent,
	})
	if config.Logger != nil {
		c.Log = slogCORSLogger{config.Logger}
	}
	return c.Handler
}

// slogCORSLogger adapts slog to the rs/cors Logger interface.
type slogCORSLogger struct{ l *slog.Logger }

func (s slogCORSLogger) Printf(format string, v ...any) {
	s.l.Debug("cors", slog.String("detail", fmt.Sprintf(format, v...)))
}
