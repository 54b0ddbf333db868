package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/infra/db"
	"spa-backoffice/internal/repository"
)

// SystemRepo reads and writes the persisted simulation state.
// It is pinned to the production pool: the system parameters row is the
// source of truth for which pool everything else should use, so it can never
// live behind the toggle it controls.
type SystemRepo struct {
	pools db.PoolProvider
}

func NewSystemRepo(pools db.PoolProvider) repository.SystemRepository {
	return &SystemRepo{pools: pools}
}

func (repo *SystemRepo) GetParameters(ctx context.Context) (*entity.SystemParameters, error) {
	const query = `
SELECT id, is_simulation, start_date_utc, end_date_utc, updated_at
FROM system_parameters
WHERE id = $1`
	rows, err := repo.pools.Production().QueryContext(ctx, query, 1)
	if err != nil {
		return nil, fmt.Errorf("GetParameters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("GetParameters: %w", err)
		}
		return nil, entity.ErrNotFound
	}

	var params entity.SystemParameters
	var start, end sql.NullTime
	if err := rows.Scan(&params.ID, &params.IsSimulation, &start, &end, &params.UpdatedAt); err != nil {
		return nil, fmt.Errorf("GetParameters: Scan: %w", err)
	}
	if start.Valid {
		s := start.Time
		params.StartDateUTC = &s
	}
	if end.Valid {
		e := end.Time
		params.EndDateUTC = &e
	}
	return &params, rows.Err()
}

func (repo *SystemRepo) SetSimulation(ctx context.Context, enabled bool, start, end *time.Time) (bool, error) {
	const query = `SELECT set_simulation($1, $2, $3)`
	var stored bool
	err := repo.pools.Production().QueryRowContext(ctx, query,
		enabled, nullTime(start), nullTime(end)).Scan(&stored)
	if err != nil {
		return false, fmt.Errorf("SetSimulation: %w", err)
	}
	return stored, nil
}
