package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// staticPaths are routes that look like /api/{id} but are not.
var staticPaths = map[string]struct{}{
	"/api/stats": {},
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/[^/]+/image$`), Template: "/api/:id/image"},
	{Pattern: regexp.MustCompile(`^/api/[^/]+$`), Template: "/api/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /api/65f1c0ffee) to template format (e.g., /api/:id).
//
// Examples:
//
//	NormalizePath("/api/65f1c0ffee")        // "/api/:id"
//	NormalizePath("/api/65f1c0ffee/image")  // "/api/:id/image"
//	NormalizePath("/api/stats")             // "/api/stats" (unchanged)
//	NormalizePath("/api")                   // "/api" (unchanged)
//	NormalizePath("/health")                // "/health" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/api/abc?x=1")           // "/api/:id"
//	NormalizePath("/api/abc/")              // "/api/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return path
}
