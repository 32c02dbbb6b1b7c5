// Package pagination provides offset-based pagination helpers shared by
// the HTTP handlers and the use case layer.
package pagination

// Config holds pagination configuration settings.
// internal/config fills it from the config file and environment.
type Config struct {
	DefaultPage  int // Default page number (typically 1)
	DefaultLimit int // Default items per page (typically 10)
	MaxLimit     int // Maximum allowed items per page (typically 50)
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=1, limit=10, max=50
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 10,
		MaxLimit:     50,
	}
}
