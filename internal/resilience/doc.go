// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes implementations of circuit breakers and retry logic to keep the
// API responsive when one of the database pools misbehaves.
//
// The package supports:
//   - Circuit breakers around the production and simulation connection pools
//   - Retry logic with exponential backoff and jitter for background jobs
//
// Usage Example:
//
//	breaker := circuitbreaker.NewDBCircuitBreaker(pool, "production")
//	rows, err := breaker.QueryContext(ctx, query, args...)
//
//	retryConfig := retry.DBConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performOperation()
//	})
package resilience
