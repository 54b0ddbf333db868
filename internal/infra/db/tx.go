package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// WithTransaction runs fn inside a single transaction on the pool that is
// active when the transaction starts. The client is pinned for the whole
// callback, so a simulation-mode flip mid-transaction can never split the
// transaction across pools.
//
// Commit on success; rollback and propagate on any error. A failed rollback
// is logged but the original error is the one returned. The callback must
// issue all its statements through the supplied *sql.Tx, never through the
// provider again.
func WithTransaction(ctx context.Context, provider PoolProvider, logger *slog.Logger, fn func(tx *sql.Tx) error) error {
	tx, err := provider.Active().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("transaction rollback failed",
				slog.Any("rollback_error", rbErr),
				slog.Any("original_error", err))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
