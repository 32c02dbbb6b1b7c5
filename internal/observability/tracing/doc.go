// Package tracing provides OpenTelemetry tracing integration.
//
// Example usage:
//
//	shutdown, err := tracing.InitProvider(ctx, tracing.Config{ServiceName: "story-api", SampleRatio: 1})
//	if err != nil { ... }
//	defer shutdown(context.Background())
//
//	func process(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "story.Create")
//	    defer span.End()
//	}
package tracing
