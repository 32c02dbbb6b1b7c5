package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"story-api/internal/config"
	"story-api/internal/infra/adapter/persistence/memory"
	mongoRepo "story-api/internal/infra/adapter/persistence/mongo"
	pgRepo "story-api/internal/infra/adapter/persistence/postgres"
	sqliteRepo "story-api/internal/infra/adapter/persistence/sqlite"
	"story-api/internal/infra/db"
	"story-api/internal/observability/logging"
	"story-api/internal/observability/tracing"
	"story-api/internal/repository"
	"story-api/internal/resilience/circuitbreaker"
	storyUC "story-api/internal/usecase/story"
	"story-api/pkg/ratelimit"
	"story-api/pkg/security/csp"

	hhttp "story-api/internal/handler/http"
	"story-api/internal/handler/http/middleware"
	"story-api/internal/handler/http/requestid"
	hstory "story-api/internal/handler/http/story"

	_ "story-api/docs" // swagger docs
)

// @title           Story API
// @version         1.0
// @description     CRUD API for short stories with an optional inline image per story.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)

	shutdownTracing := initTracing(logger, cfg)
	defer shutdownTracing()

	store, closeStore, err := openStore(context.Background(), logger, cfg.Store)
	if err != nil {
		logger.Error("failed to open story store",
			slog.String("driver", cfg.Store.Driver),
			slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	components := setupServer(logger, cfg, store)
	runServer(logger, cfg, components)
}

// initLogger initializes the structured logger and installs it as default.
func initLogger(cfg *config.AppConfig) *slog.Logger {
	logger := logging.NewLogger(cfg.LogLevel).With(
		slog.String("service", "story-api"),
		slog.String("environment", cfg.Environment),
	)
	slog.SetDefault(logger)
	return logger
}

// initTracing installs the OpenTelemetry provider. The returned func flushes it.
func initTracing(logger *slog.Logger, cfg *config.AppConfig) func() {
	if !cfg.Tracing.Enabled {
		logger.Info("tracing disabled")
		return func() {}
	}

	shutdown, err := tracing.InitProvider(context.Background(), tracing.Config{
		ServiceName:    "story-api",
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		SampleRatio:    cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Warn("tracing initialization failed, continuing without tracing", slog.Any("error", err))
		return func() {}
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Error("tracing shutdown failed", slog.Any("error", err))
		}
	}
}

// openStore builds the configured repository, wrapped in the circuit breaker
// when enabled. The returned func releases the underlying connection.
func openStore(ctx context.Context, logger *slog.Logger, sc config.StoreConfig) (repository.StoryRepository, func(), error) {
	var (
		store   repository.StoryRepository
		closeFn = func() {}
	)

	switch sc.Driver {
	case config.DriverPostgres:
		database, err := db.Open(ctx, sc.DatabaseURL, db.ConnectionConfig{
			MaxOpenConns:    sc.MaxOpenConns,
			MaxIdleConns:    sc.MaxIdleConns,
			ConnMaxLifetime: sc.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := db.MigrateUp(database); err != nil {
			_ = database.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		store = pgRepo.NewStoryRepo(database)
		closeFn = func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}

	case config.DriverMongo:
		client, err := mongoRepo.Connect(ctx, sc.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		repo := mongoRepo.NewStoryRepo(client.Database(sc.MongoDatabase).Collection(sc.MongoCollection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}
		store = repo
		closeFn = func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				logger.Error("failed to disconnect mongo", slog.Any("error", err))
			}
		}

	case config.DriverSQLite:
		gdb, err := sqliteRepo.Open(sc.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store = sqliteRepo.NewStoryRepo(gdb)
		closeFn = func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}

	case config.DriverMemory:
		store = memory.NewStoryRepo()
		logger.Warn("using in-memory story store; data is lost on restart")

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", sc.Driver)
	}

	if sc.CircuitBreaker {
		store = circuitbreaker.NewRepository(store, circuitbreaker.StoreConfig(sc.Driver))
	}

	logger.Info("story store ready",
		slog.String("driver", sc.Driver),
		slog.Bool("circuit_breaker", sc.CircuitBreaker))
	return store, closeFn, nil
}

// ServerComponents holds components needed for server operation.
type ServerComponents struct {
	Handler http.Handler
	Limiter *ratelimit.FixedWindowLimiter
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, cfg *config.AppConfig, store repository.StoryRepository) *ServerComponents {
	svc := storyUC.Service{
		Repo:         store,
		MaxImageSize: cfg.MaxUploadSize,
		Pagination:   cfg.Pagination,
	}

	var (
		gatherers []prometheus.Gatherer
		limiter   *ratelimit.FixedWindowLimiter
		limitMW   = func(next http.Handler) http.Handler { return next }
	)
	if cfg.RateLimit.Enabled {
		rlMetrics := ratelimit.NewPrometheusMetrics()
		gatherers = append(gatherers, rlMetrics.Registry())

		limiter = ratelimit.NewFixedWindowLimiter(
			cfg.RateLimit.MaxRequests,
			cfg.RateLimit.Window,
			ratelimit.WithMetrics(rlMetrics),
		)
		limitMW = middleware.NewRateLimiter(limiter, rlMetrics).Middleware

		logger.Info("rate limiting enabled",
			slog.Int("max_requests", cfg.RateLimit.MaxRequests),
			slog.Duration("window", cfg.RateLimit.Window))
	} else {
		logger.Warn("rate limiting disabled")
	}

	mux := http.NewServeMux()
	hstory.Register(mux, svc, hstory.Config{
		Pagination:    cfg.Pagination,
		MaxUploadSize: cfg.MaxUploadSize,
	}, logger)

	mux.Handle("GET /health", &hhttp.HealthHandler{Environment: cfg.Environment})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: store, StoreName: cfg.Store.Driver})
	mux.Handle("GET /metrics", hhttp.MetricsHandler(gatherers...))
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	cspMW := middleware.NewCSPMiddleware(middleware.CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.StrictPolicy(),
		PathPolicies: map[string]*csp.CSPBuilder{
			"/swagger/": csp.SwaggerUIPolicy(),
		},
	})

	// Order: CORS → Request ID → Tracing → Recovery → Logging → Rate Limit → Input → CSP → Metrics
	handler := hhttp.Chain(mux,
		middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.CORS.AllowedOrigins, Logger: logger}),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		limitMW,
		hhttp.InputValidation(cfg.MaxUploadSize+hstory.FormOverhead),
		cspMW.Middleware(),
		hhttp.MetricsMiddleware,
	)

	return &ServerComponents{Handler: handler, Limiter: limiter}
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.AppConfig, components *ServerComponents) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", cfg.Version),
			slog.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()

	if components.Limiter != nil {
		logger.Debug("rate limiter state at shutdown", slog.Int("active_keys", components.Limiter.KeyCount()))
	}
	logger.Info("server stopped")
}
