package repository

import (
	"context"
	"time"

	"spa-backoffice/internal/domain/entity"
)

// SystemRepository reads and writes the persisted simulation state.
// All operations run on the production pool regardless of the active mode.
type SystemRepository interface {
	// GetParameters reads the system parameters row.
	GetParameters(ctx context.Context) (*entity.SystemParameters, error)
	// SetSimulation persists the toggle through the set_simulation database
	// function and returns the stored value.
	SetSimulation(ctx context.Context, enabled bool, start, end *time.Time) (bool, error)
}
