package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"story-api/pkg/security/csp"
)

// CSPMiddlewareConfig holds configuration for CSP middleware.
type CSPMiddlewareConfig struct {
	// Enabled controls whether CSP headers are applied.
	Enabled bool

	// DefaultPolicy applies when no path prefix matches.
	DefaultPolicy *csp.CSPBuilder

	// PathPolicies maps path prefixes to specific CSP policies, e.g.
	// "/swagger/" -> csp.SwaggerUIPolicy().
	PathPolicies map[string]*csp.CSPBuilder

	// ReportOnly sends Content-Security-Policy-Report-Only instead of enforcing.
	ReportOnly bool
}

// CSPMiddleware applies Content-Security-Policy headers to HTTP responses.
// Header values are built once at construction.
type CSPMiddleware struct {
	enabled    bool
	headerName string
	def        string
	paths      map[string]string
}

// NewCSPMiddleware creates a new CSP middleware with the provided configuration.
//
// Example:
//
//	cspMiddleware := NewCSPMiddleware(CSPMiddlewareConfig{
//	    Enabled:       true,
//	    DefaultPolicy: csp.StrictPolicy(),
//	    PathPolicies:  map[string]*csp.CSPBuilder{"/swagger/": csp.SwaggerUIPolicy()},
//	})
//	handler = cspMiddleware.Middleware()(handler)
func NewCSPMiddleware(config CSPMiddlewareConfig) *CSPMiddleware {
	m := &CSPMiddleware{
		enabled:    config.Enabled,
		headerName: "Content-Security-Policy",
		paths:      make(map[string]string, len(config.PathPolicies)),
	}
	if config.ReportOnly {
		m.headerName = "Content-Security-Policy-Report-Only"
	}
	if config.DefaultPolicy != nil {
		m.def = config.DefaultPolicy.Build()
	}
	for prefix, p := range config.PathPolicies {
		if p != nil {
			m.paths[prefix] = p.Build()
		}
	}
	return m
}

// Middleware returns an HTTP middleware handler that applies CSP headers.
// The longest matching path prefix wins; otherwise the default policy is used.
func (m *CSPMiddleware) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.enabled {
				next.ServeHTTP(w, r)
				return
			}

			if value := m.selectPolicy(r.URL.Path); value != "" {
				w.Header().Set(m.headerName, value)
				slog.Debug("CSP header applied",
					slog.String("path", r.URL.Path),
					slog.String("header", m.headerName))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// selectPolicy returns the built policy for path, or "" when none applies.
//
//	"/swagger/index.html" -> PathPolicies["/swagger/"]
//	"/api/stats"          -> DefaultPolicy
func (m *CSPMiddleware) selectPolicy(path string) string {
	longest := ""
	matched := ""
	for prefix, value := range m.paths {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(longest) {
			longest = prefix
			matched = value
		}
	}
	if longest != "" {
		return matched
	}
	return m.def
}
