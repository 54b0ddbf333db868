package entity

import "time"

// SystemParameters is the persisted process-wide simulation state, stored as
// a single row on the production database. The runtime flag is re-synchronized
// from this row at startup and on a periodic refresh.
type SystemParameters struct {
	ID           int64
	IsSimulation bool
	StartDateUTC *time.Time
	EndDateUTC   *time.Time
	UpdatedAt    time.Time
}
