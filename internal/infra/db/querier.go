// Package db provides the dual-pool connection layer: DSN parsing, pool
// construction over the pgx stdlib driver, the production/simulation router,
// query auditing, and transaction helpers.
package db

import (
	"context"
	"database/sql"
)

// Querier is the query-dispatch surface of a connection pool.
// *sql.DB satisfies it directly; the audit decorator and the circuit breaker
// wrap it without changing query semantics, results, or error propagation.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	PingContext(ctx context.Context) error
}

var _ Querier = (*sql.DB)(nil)
