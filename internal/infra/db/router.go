package db

import (
	"log/slog"
	"sync/atomic"
)

// PoolProvider selects the connection pool a query should run against.
// Repositories depend on this interface rather than a concrete pool, so tests
// can inject a fixed pool without touching process-wide state.
type PoolProvider interface {
	// Active returns the pool selected by the current simulation mode.
	Active() Querier
	// Production always returns the production pool, regardless of mode.
	// System parameters and session state live only in production.
	Production() Querier
}

// Router routes queries between the production and simulation pools based on
// a process-wide simulation flag.
//
// The flag is a coarse switch: flipping it affects subsequent pool
// acquisitions only. A transaction begun before a flip keeps its originally
// acquired client through commit or rollback, because WithTransaction pins
// the client at transaction start.
type Router struct {
	production Querier
	simulation Querier
	simulated  atomic.Bool
	logger     *slog.Logger
}

var _ PoolProvider = (*Router)(nil)

// NewRouter creates a router over the two pools. Simulation mode starts off;
// it is re-synchronized from the persisted system parameter at startup.
func NewRouter(production, simulation Querier, logger *slog.Logger) *Router {
	return &Router{
		production: production,
		simulation: simulation,
		logger:     logger,
	}
}

// Active returns the pool selected by the current simulation mode.
func (r *Router) Active() Querier {
	if r.simulated.Load() {
		return r.simulation
	}
	return r.production
}

// Production returns the production pool unconditionally.
func (r *Router) Production() Querier {
	return r.production
}

// SetSimulation flips the process-wide mode for all subsequent acquisitions.
func (r *Router) SetSimulation(enabled bool) {
	r.simulated.Store(enabled)
	r.logger.Info("simulation mode set", slog.Bool("enabled", enabled))
}

// Simulation reports whether simulation mode is currently active.
func (r *Router) Simulation() bool {
	return r.simulated.Load()
}

// FixedPool adapts a single Querier into a PoolProvider.
// Used by tests and by code that must be pinned to one target.
type FixedPool struct {
	Pool Querier
}

func (f FixedPool) Active() Querier     { return f.Pool }
func (f FixedPool) Production() Querier { return f.Pool }
