package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
)

// AuditedPool decorates a Querier so that every dispatched statement is
// recorded with its pool name, SQL text, and serialized parameters.
// Statements touching an excluded table are not logged at all. The decorator
// never alters query results, transaction semantics, or error propagation.
//
// Transactions obtained through BeginTx issue their statements on the raw
// client, so auditing covers pool-level dispatch only, matching the original
// interception point.
type AuditedPool struct {
	inner    Querier
	poolName string
	excluded []string // lowercased table names
	logger   *slog.Logger
}

var _ Querier = (*AuditedPool)(nil)

// WrapWithAudit returns a pool-shaped decorator around inner.
// excludedTables are matched case-insensitively as substrings of the SQL
// text, so `sessions` suppresses both "FROM sessions" and "FROM Sessions s".
func WrapWithAudit(inner Querier, poolName string, excludedTables []string, logger *slog.Logger) *AuditedPool {
	excluded := make([]string, 0, len(excludedTables))
	for _, table := range excludedTables {
		if t := strings.ToLower(strings.TrimSpace(table)); t != "" {
			excluded = append(excluded, t)
		}
	}
	return &AuditedPool{
		inner:    inner,
		poolName: poolName,
		excluded: excluded,
		logger:   logger,
	}
}

func (p *AuditedPool) audit(query string, args []any) {
	lowered := strings.ToLower(query)
	for _, table := range p.excluded {
		if strings.Contains(lowered, table) {
			return
		}
	}

	params := "None"
	if len(args) > 0 {
		if serialized, err := json.Marshal(args); err == nil {
			params = string(serialized)
		} else {
			params = "unserializable"
		}
	}
	p.logger.Info("executing query",
		slog.String("pool", p.poolName),
		slog.String("sql", query),
		slog.String("params", params))
}

func (p *AuditedPool) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	p.audit(query, args)
	return p.inner.QueryContext(ctx, query, args...)
}

func (p *AuditedPool) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	p.audit(query, args)
	return p.inner.QueryRowContext(ctx, query, args...)
}

func (p *AuditedPool) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	p.audit(query, args)
	return p.inner.ExecContext(ctx, query, args...)
}

// BeginTx passes through unchanged: transaction clients are not intercepted.
func (p *AuditedPool) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return p.inner.BeginTx(ctx, opts)
}

// PingContext passes through unchanged.
func (p *AuditedPool) PingContext(ctx context.Context) error {
	return p.inner.PingContext(ctx)
}
