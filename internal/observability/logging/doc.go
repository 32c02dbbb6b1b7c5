// Package logging provides structured logging utilities with context propagation.
//
// Example usage:
//
//	logger := logging.NewLogger(cfg.LogLevel)
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.WithTrace(ctx, slog.Default()).Info("processing request")
//	}
package logging
