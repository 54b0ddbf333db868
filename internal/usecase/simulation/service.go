// Package simulation owns the process-wide simulation mode: the persisted
// toggle, the runtime routing flag, and the short-lived status cache that
// keeps the status endpoint off the database on every poll.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/infra/db"
	"spa-backoffice/internal/repository"
)

// DefaultCacheTTL bounds how stale a status read may be. Toggles made through
// this process invalidate the cache immediately; toggles made by another
// replica are picked up within one TTL.
const DefaultCacheTTL = 30 * time.Second

// Service coordinates the persisted simulation state with the pool router.
type Service struct {
	repo   repository.SystemRepository
	router *db.Router
	ttl    time.Duration
	logger *slog.Logger

	mu        sync.Mutex
	cached    *entity.SystemParameters
	fetchedAt time.Time
}

func NewService(repo repository.SystemRepository, router *db.Router, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{repo: repo, router: router, ttl: ttl, logger: logger}
}

// Status returns the current simulation state, served from cache while it is
// fresh.
func (s *Service) Status(ctx context.Context) (*entity.SystemParameters, error) {
	s.mu.Lock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.ttl {
		params := *s.cached
		s.mu.Unlock()
		return &params, nil
	}
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Set persists the toggle, flips the runtime routing flag to the stored
// value, and invalidates the cache. The stored value is authoritative: if the
// database reports a different state than requested, the router follows the
// database.
func (s *Service) Set(ctx context.Context, enabled bool, start, end *time.Time) (*entity.SystemParameters, error) {
	if start != nil && end != nil && end.Before(*start) {
		return nil, &entity.ValidationError{Field: "endDate", Message: "must not be before startDate"}
	}

	stored, err := s.repo.SetSimulation(ctx, enabled, start, end)
	if err != nil {
		return nil, fmt.Errorf("set simulation: %w", err)
	}
	s.router.SetSimulation(stored)
	s.logger.Info("simulation mode changed", "enabled", stored)

	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Refresh re-reads the persisted state, re-synchronizes the routing flag,
// and refills the cache. Runs at startup and on the periodic schedule so a
// toggle made by another replica propagates.
func (s *Service) Refresh(ctx context.Context) (*entity.SystemParameters, error) {
	params, err := s.repo.GetParameters(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh simulation state: %w", err)
	}

	if s.router.Simulation() != params.IsSimulation {
		s.logger.Info("simulation flag re-synchronized from database",
			"enabled", params.IsSimulation)
	}
	s.router.SetSimulation(params.IsSimulation)

	s.mu.Lock()
	s.cached = params
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	out := *params
	return &out, nil
}

// Active reports the runtime routing flag without touching the database.
// The response header middleware reads this on every request.
func (s *Service) Active() bool {
	return s.router.Simulation()
}
