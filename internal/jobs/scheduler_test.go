package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/observability/slo"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubPruner struct {
	calls  int
	pruned int64
	err    error
}

func (p *stubPruner) PruneExpired(ctx context.Context) (int64, error) {
	p.calls++
	return p.pruned, p.err
}

type stubRefresher struct {
	calls  int
	active bool
	err    error
}

func (r *stubRefresher) Refresh(ctx context.Context) (*entity.SystemParameters, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &entity.SystemParameters{IsSimulation: r.active}, nil
}

func (r *stubRefresher) Active() bool { return r.active }

func TestRunSessionPrune(t *testing.T) {
	s := NewScheduler(discardLogger())
	pruner := &stubPruner{pruned: 3}

	s.runSessionPrune(pruner)

	if pruner.calls != 1 {
		t.Errorf("PruneExpired called %d times, want 1", pruner.calls)
	}
}

func TestRunSessionPrune_ErrorDoesNotPanic(t *testing.T) {
	s := NewScheduler(discardLogger())
	pruner := &stubPruner{err: errors.New("relation does not exist")}

	s.runSessionPrune(pruner)

	// Non-retryable errors abort without further attempts.
	if pruner.calls != 1 {
		t.Errorf("PruneExpired called %d times, want 1", pruner.calls)
	}
}

func TestRunSimulationRefresh(t *testing.T) {
	s := NewScheduler(discardLogger())
	refresher := &stubRefresher{active: true}

	s.runSimulationRefresh(refresher)

	if refresher.calls != 1 {
		t.Errorf("Refresh called %d times, want 1", refresher.calls)
	}
}

func TestRunSimulationRefresh_Error(t *testing.T) {
	s := NewScheduler(discardLogger())
	refresher := &stubRefresher{err: errors.New("column missing")}

	s.runSimulationRefresh(refresher)

	if refresher.calls != 1 {
		t.Errorf("Refresh called %d times, want 1", refresher.calls)
	}
}

func TestAddJobs_InvalidSchedule(t *testing.T) {
	s := NewScheduler(discardLogger())

	if err := s.AddSessionPrune("not a cron expr", &stubPruner{}); err == nil {
		t.Error("expected error for invalid prune schedule")
	}
	if err := s.AddSimulationRefresh("also bad", &stubRefresher{}); err == nil {
		t.Error("expected error for invalid refresh schedule")
	}
	if err := s.AddSLOFlush("nope", slo.NewTracker()); err == nil {
		t.Error("expected error for invalid flush schedule")
	}
}

func TestAddJobs_ValidSchedules(t *testing.T) {
	s := NewScheduler(discardLogger())

	if err := s.AddSessionPrune("*/10 * * * *", &stubPruner{}); err != nil {
		t.Fatalf("AddSessionPrune: %v", err)
	}
	if err := s.AddSimulationRefresh("@every 1m", &stubRefresher{}); err != nil {
		t.Fatalf("AddSimulationRefresh: %v", err)
	}
	if err := s.AddSLOFlush("@every 1m", slo.NewTracker()); err != nil {
		t.Fatalf("AddSLOFlush: %v", err)
	}
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler(discardLogger())
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
