// Package observability provides production-grade observability infrastructure
// including structured logging, SLO tracking, and OpenTelemetry tracing.
//
// This package centralizes observability concerns to enable:
//   - Request tracing across service boundaries
//   - Structured logging with context propagation
//   - SLO measurement against availability and latency targets
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - slo: Service level objective tracking and gauges
//   - tracing: OpenTelemetry tracing integration
//
// Example usage:
//
//	import "spa-backoffice/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//	}
package observability
