// Package config assembles the application configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file named by CONFIG_FILE, then environment variables. A .env file in the
// working directory is loaded into the environment by cmd/api before Load runs.
package config

import (
	"fmt"
	"strings"
	"time"

	"story-api/internal/common/pagination"
	"story-api/internal/domain/entity"
	envcfg "story-api/pkg/config"
	"story-api/pkg/ratelimit"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// AppConfig is the fully resolved configuration of the API process.
type AppConfig struct {
	Port            string
	Environment     string
	Version         string
	LogLevel        string
	ShutdownTimeout time.Duration

	// MaxUploadSize is the image payload ceiling in bytes.
	MaxUploadSize int64

	Store      StoreConfig
	RateLimit  ratelimit.RateLimitConfig
	Pagination pagination.Config
	CORS       CORSConfig
	Tracing    TracingConfig
}

// StoreConfig selects and configures the story store.
type StoreConfig struct {
	Driver string

	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	SQLitePath string

	// CircuitBreaker wraps the repository with a gobreaker guard.
	CircuitBreaker bool
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

// TracingConfig controls OpenTelemetry span sampling.
type TracingConfig struct {
	Enabled     bool
	SampleRatio float64
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Port:            "8080",
		Environment:     "development",
		Version:         "dev",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
		MaxUploadSize:   entity.DefaultMaxImageSize,
		Store: StoreConfig{
			Driver:          DriverPostgres,
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			MongoDatabase:   "stories",
			MongoCollection: "stories",
			SQLitePath:      "stories.db",
			CircuitBreaker:  true,
		},
		RateLimit:  *ratelimit.DefaultConfig(),
		Pagination: pagination.DefaultConfig(),
		CORS:       CORSConfig{AllowedOrigins: []string{"*"}},
		Tracing:    TracingConfig{Enabled: true, SampleRatio: 1.0},
	}
}

// Load resolves the configuration. filePath may be empty.
func Load(filePath string) (*AppConfig, error) {
	cfg := Default()

	if filePath != "" {
		fc, err := LoadFile(filePath)
		if err != nil {
			return nil, err
		}
		fc.apply(&cfg)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnv overrides cfg with environment variables; unset variables keep
// the current value.
func applyEnv(cfg *AppConfig) {
	cfg.Port = envcfg.GetEnvString("PORT", cfg.Port)
	cfg.Environment = envcfg.GetEnvString("APP_ENV", cfg.Environment)
	cfg.Version = envcfg.GetEnvString("APP_VERSION", cfg.Version)
	cfg.LogLevel = envcfg.GetEnvString("LOG_LEVEL", cfg.LogLevel)
	cfg.ShutdownTimeout = envcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.MaxUploadSize = envcfg.GetEnvInt64("MAX_UPLOAD_SIZE", cfg.MaxUploadSize)

	s := &cfg.Store
	s.Driver = strings.ToLower(envcfg.GetEnvString("STORE_DRIVER", s.Driver))
	s.DatabaseURL = envcfg.GetEnvString("DATABASE_URL", s.DatabaseURL)
	s.MaxOpenConns = envcfg.GetEnvInt("DB_MAX_OPEN_CONNS", s.MaxOpenConns)
	s.MaxIdleConns = envcfg.GetEnvInt("DB_MAX_IDLE_CONNS", s.MaxIdleConns)
	s.ConnMaxLifetime = envcfg.GetEnvDuration("DB_CONN_MAX_LIFETIME", s.ConnMaxLifetime)
	s.MongoURI = envcfg.GetEnvString("MONGODB_URI", s.MongoURI)
	s.MongoDatabase = envcfg.GetEnvString("MONGODB_DATABASE", s.MongoDatabase)
	s.MongoCollection = envcfg.GetEnvString("MONGODB_COLLECTION", s.MongoCollection)
	s.SQLitePath = envcfg.GetEnvString("SQLITE_PATH", s.SQLitePath)
	s.CircuitBreaker = envcfg.GetEnvBool("STORE_CB_ENABLED", s.CircuitBreaker)

	cfg.RateLimit = *envcfg.LoadRateLimitConfig(&cfg.RateLimit)

	cfg.Pagination.DefaultLimit = envcfg.GetEnvInt("PAGINATION_DEFAULT_LIMIT", cfg.Pagination.DefaultLimit)
	cfg.Pagination.MaxLimit = envcfg.GetEnvInt("PAGINATION_MAX_LIMIT", cfg.Pagination.MaxLimit)

	cfg.CORS.AllowedOrigins = envcfg.GetEnvStringList("CORS_ALLOWED_ORIGINS", cfg.CORS.AllowedOrigins)

	cfg.Tracing.Enabled = envcfg.GetEnvBool("TRACING_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.SampleRatio = envcfg.GetEnvFloat("TRACING_SAMPLE_RATIO", cfg.Tracing.SampleRatio)
}

// Validate reports the first inconsistency in the configuration.
func (c *AppConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if err := envcfg.ValidateDurationRange(c.ShutdownTimeout, time.Second, 5*time.Minute); err != nil {
		return fmt.Errorf("shutdown timeout: %w", err)
	}
	if err := envcfg.ValidateNonNegativeDuration(c.Store.ConnMaxLifetime); err != nil {
		return fmt.Errorf("db conn max lifetime: %w", err)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadSize)
	}

	switch c.Store.Driver {
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for store driver %q", c.Store.Driver)
		}
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for store driver %q", c.Store.Driver)
		}
		if c.Store.MongoDatabase == "" || c.Store.MongoCollection == "" {
			return fmt.Errorf("mongo database and collection names are required")
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for store driver %q", c.Store.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	if c.Pagination.MaxLimit < 1 {
		return fmt.Errorf("pagination max limit must be at least 1, got %d", c.Pagination.MaxLimit)
	}
	if c.Pagination.DefaultLimit < 1 || c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		return fmt.Errorf("pagination default limit must be between 1 and %d, got %d",
			c.Pagination.MaxLimit, c.Pagination.DefaultLimit)
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample ratio must be between 0 and 1, got %v", c.Tracing.SampleRatio)
	}
	return nil
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}
