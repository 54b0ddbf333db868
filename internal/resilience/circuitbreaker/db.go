package circuitbreaker

import (
	"context"
	"database/sql"
	"time"

	"spa-backoffice/internal/infra/db"

	"github.com/sony/gobreaker"
)

// DBCircuitBreaker wraps a connection pool with circuit breaker protection.
// It prevents cascading failures when a database becomes unavailable or slow.
// Wrapping happens per pool, underneath the production/simulation router, so
// an outage of one pool never trips the breaker of the other.
type DBCircuitBreaker struct {
	cb    *CircuitBreaker
	inner db.Querier
}

var _ db.Querier = (*DBCircuitBreaker)(nil)

// DBConfig returns configuration optimized for database circuit breakers.
// Opens after 5 consecutive failures, 30 second timeout. The name should
// identify the pool ("production" or "simulation").
func DBConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3, // Allow 3 test requests in half-open state
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0, // Open on 100% failure (5+ consecutive failures)
		MinRequests:      5,   // Require 5 failures before tripping
	}
}

// NewDBCircuitBreaker wraps a pool with a breaker using the default database config.
func NewDBCircuitBreaker(inner db.Querier, name string) *DBCircuitBreaker {
	return &DBCircuitBreaker{
		cb:    New(DBConfig(name)),
		inner: inner,
	}
}

// NewDBCircuitBreakerWithConfig wraps a pool with a breaker using a custom configuration.
func NewDBCircuitBreakerWithConfig(inner db.Querier, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{
		cb:    New(cfg),
		inner: inner,
	}
}

// QueryContext executes a query with circuit breaker protection.
// If the circuit is open, it returns ErrOpenState immediately without hitting the database.
func (dcb *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.inner.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

// ExecContext executes a statement with circuit breaker protection.
// If the circuit is open, it returns ErrOpenState immediately without hitting the database.
func (dcb *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.inner.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(sql.Result), nil
}

// QueryRowContext executes a query that returns at most one row.
// sql.Row defers its error until Scan, so the breaker cannot observe the
// outcome here; the call passes through unprotected.
func (dcb *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return dcb.inner.QueryRowContext(ctx, query, args...)
}

// BeginTx starts a transaction with circuit breaker protection.
func (dcb *DBCircuitBreaker) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.inner.BeginTx(ctx, opts)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Tx), nil
}

// PingContext checks connectivity with circuit breaker protection.
func (dcb *DBCircuitBreaker) PingContext(ctx context.Context) error {
	_, err := dcb.cb.Execute(func() (interface{}, error) {
		return nil, dcb.inner.PingContext(ctx)
	})
	return err
}

// State returns the current state of the circuit breaker.
func (dcb *DBCircuitBreaker) State() gobreaker.State {
	return dcb.cb.State()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (dcb *DBCircuitBreaker) IsOpen() bool {
	return dcb.cb.IsOpen()
}
