package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the YAML configuration file. Zero values leave the
// defaults untouched.
type FileConfig struct {
	Server struct {
		Port            string        `yaml:"port"`
		Environment     string        `yaml:"environment"`
		LogLevel        string        `yaml:"log_level"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		MaxUploadSize   int64         `yaml:"max_upload_size"`
	} `yaml:"server"`
	Store struct {
		Driver          string        `yaml:"driver"`
		DatabaseURL     string        `yaml:"database_url"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
		Mongo           struct {
			URI        string `yaml:"uri"`
			Database   string `yaml:"database"`
			Collection string `yaml:"collection"`
		} `yaml:"mongo"`
		SQLitePath     string `yaml:"sqlite_path"`
		CircuitBreaker *bool  `yaml:"circuit_breaker"`
	} `yaml:"store"`
	RateLimit struct {
		Enabled     *bool         `yaml:"enabled"`
		MaxRequests int           `yaml:"max_requests"`
		Window      time.Duration `yaml:"window"`
	} `yaml:"rate_limit"`
	Pagination struct {
		DefaultLimit int `yaml:"default_limit"`
		MaxLimit     int `yaml:"max_limit"`
	} `yaml:"pagination"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Tracing struct {
		Enabled     *bool    `yaml:"enabled"`
		SampleRatio *float64 `yaml:"sample_ratio"`
	} `yaml:"tracing"`
}

// LoadFile reads the YAML configuration file.
// The path parameter is expected to come from a trusted source (environment or hardcoded default).
func LoadFile(path string) (*FileConfig, error) {
	// #nosec G304 -- path is provided by the operator, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(cfg *AppConfig) {
	setString(&cfg.Port, fc.Server.Port)
	setString(&cfg.Environment, fc.Server.Environment)
	setString(&cfg.LogLevel, fc.Server.LogLevel)
	if fc.Server.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = fc.Server.ShutdownTimeout
	}
	if fc.Server.MaxUploadSize > 0 {
		cfg.MaxUploadSize = fc.Server.MaxUploadSize
	}

	setString(&cfg.Store.Driver, fc.Store.Driver)
	setString(&cfg.Store.DatabaseURL, fc.Store.DatabaseURL)
	setInt(&cfg.Store.MaxOpenConns, fc.Store.MaxOpenConns)
	setInt(&cfg.Store.MaxIdleConns, fc.Store.MaxIdleConns)
	if fc.Store.ConnMaxLifetime > 0 {
		cfg.Store.ConnMaxLifetime = fc.Store.ConnMaxLifetime
	}
	setString(&cfg.Store.MongoURI, fc.Store.Mongo.URI)
	setString(&cfg.Store.MongoDatabase, fc.Store.Mongo.Database)
	setString(&cfg.Store.MongoCollection, fc.Store.Mongo.Collection)
	setString(&cfg.Store.SQLitePath, fc.Store.SQLitePath)
	if fc.Store.CircuitBreaker != nil {
		cfg.Store.CircuitBreaker = *fc.Store.CircuitBreaker
	}

	if fc.RateLimit.Enabled != nil {
		cfg.RateLimit.Enabled = *fc.RateLimit.Enabled
	}
	setInt(&cfg.RateLimit.MaxRequests, fc.RateLimit.MaxRequests)
	if fc.RateLimit.Window > 0 {
		cfg.RateLimit.Window = fc.RateLimit.Window
	}

	setInt(&cfg.Pagination.DefaultLimit, fc.Pagination.DefaultLimit)
	setInt(&cfg.Pagination.MaxLimit, fc.Pagination.MaxLimit)

	if len(fc.CORS.AllowedOrigins) > 0 {
		cfg.CORS.AllowedOrigins = fc.CORS.AllowedOrigins
	}

	if fc.Tracing.Enabled != nil {
		cfg.Tracing.Enabled = *fc.Tracing.Enabled
	}
	if fc.Tracing.SampleRatio != nil {
		cfg.Tracing.SampleRatio = *fc.Tracing.SampleRatio
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
