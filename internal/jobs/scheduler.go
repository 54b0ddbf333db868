// Package jobs runs the API process's periodic maintenance work: pruning
// expired sessions, re-synchronizing the simulation flag across replicas, and
// flushing the SLO window into the exported gauges.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"spa-backoffice/internal/domain/entity"
	hhttp "spa-backoffice/internal/handler/http"
	"spa-backoffice/internal/handler/http/respond"
	"spa-backoffice/internal/observability/slo"
	"spa-backoffice/internal/resilience/retry"
)

// defaultJobTimeout bounds a single job run so a stuck pool cannot pile up
// overlapping runs.
const defaultJobTimeout = 30 * time.Second

// SessionPruner deletes expired session rows.
type SessionPruner interface {
	PruneExpired(ctx context.Context) (int64, error)
}

// SimulationRefresher re-reads the persisted simulation state.
type SimulationRefresher interface {
	Refresh(ctx context.Context) (*entity.SystemParameters, error)
	Active() bool
}

// Scheduler owns the cron instance and the registered maintenance jobs.
type Scheduler struct {
	cron       *cron.Cron
	logger     *slog.Logger
	jobTimeout time.Duration
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		logger:     logger,
		jobTimeout: defaultJobTimeout,
	}
}

// AddSessionPrune schedules expired-session deletion. Transient database
// errors are retried within the run; a failed run waits for the next tick.
func (s *Scheduler) AddSessionPrune(schedule string, store SessionPruner) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.runSessionPrune(store)
	})
	return err
}

func (s *Scheduler) runSessionPrune(store SessionPruner) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	var pruned int64
	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		n, err := store.PruneExpired(ctx)
		if err != nil {
			return err
		}
		pruned = n
		return nil
	})
	if err != nil {
		s.logger.Error("session prune failed", slog.String("error", respond.SanitizeError(err)))
		return
	}

	if pruned > 0 {
		hhttp.RecordSessionsPruned(pruned)
		s.logger.Info("expired sessions pruned", slog.Int64("count", pruned))
	}
}

// AddSimulationRefresh schedules the simulation state re-sync so a toggle
// made by another replica propagates to this process's router.
func (s *Scheduler) AddSimulationRefresh(schedule string, svc SimulationRefresher) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.runSimulationRefresh(svc)
	})
	return err
}

func (s *Scheduler) runSimulationRefresh(svc SimulationRefresher) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		_, err := svc.Refresh(ctx)
		return err
	})
	if err != nil {
		// The router keeps its last known flag until the next tick succeeds.
		s.logger.Error("simulation refresh failed", slog.String("error", respond.SanitizeError(err)))
		return
	}

	hhttp.SetSimulationMode(svc.Active())
}

// AddSLOFlush schedules the windowed SLO flush. Every tick publishes the
// window's availability, error rate, and latency percentiles and resets it.
func (s *Scheduler) AddSLOFlush(schedule string, tracker *slo.Tracker) error {
	_, err := s.cron.AddFunc(schedule, tracker.Flush)
	return err
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for in-flight jobs, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
