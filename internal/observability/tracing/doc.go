// Package tracing provides OpenTelemetry tracing integration.
//
// Key features:
//   - Automatic HTTP request tracing via middleware
//   - Trace ID propagation into structured logs
//   - Cross-service trace propagation
//
// Example usage:
//
//	import "spa-backoffice/internal/observability/tracing"
//
//	func processRequest(ctx context.Context) {
//	    ctx, span := tracing.StartSpan(ctx, "process-request")
//	    defer span.End()
//	    // ... process request ...
//	}
package tracing
