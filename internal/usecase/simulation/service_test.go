package simulation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/infra/db"
	"spa-backoffice/internal/usecase/simulation"
)

// stubRepo holds the persisted simulation state in memory and counts reads,
// so cache behavior is observable.
type stubRepo struct {
	params entity.SystemParameters
	reads  int
	err    error
}

func (s *stubRepo) GetParameters(context.Context) (*entity.SystemParameters, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.reads++
	params := s.params
	return &params, nil
}

func (s *stubRepo) SetSimulation(_ context.Context, enabled bool, start, end *time.Time) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	s.params.IsSimulation = enabled
	s.params.StartDateUTC = start
	s.params.EndDateUTC = end
	return enabled, nil
}

func newService(t *testing.T, repo *stubRepo, ttl time.Duration) (*simulation.Service, *db.Router) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := db.NewRouter(nil, nil, logger)
	return simulation.NewService(repo, router, ttl, logger), router
}

func TestService_Set_FlipsRouter(t *testing.T) {
	repo := &stubRepo{}
	svc, router := newService(t, repo, time.Hour)
	ctx := context.Background()

	params, err := svc.Set(ctx, true, nil, nil)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !params.IsSimulation {
		t.Fatal("stored state must report simulation on")
	}
	if !router.Simulation() {
		t.Fatal("router must follow the stored value")
	}

	if _, err := svc.Set(ctx, false, nil, nil); err != nil {
		t.Fatalf("Set off: %v", err)
	}
	if router.Simulation() {
		t.Fatal("router must be back on production")
	}
}

func TestService_Set_RejectsInvertedRange(t *testing.T) {
	svc, _ := newService(t, &stubRepo{}, time.Hour)

	start := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Set(context.Background(), true, &start, &end)
	var verr *entity.ValidationError
	if !errors.As(err, &verr) || verr.Field != "endDate" {
		t.Fatalf("Set inverted range = %v, want validation error on endDate", err)
	}
}

func TestService_Status_ServedFromCache(t *testing.T) {
	repo := &stubRepo{params: entity.SystemParameters{ID: 1, IsSimulation: true}}
	svc, _ := newService(t, repo, time.Hour)
	ctx := context.Background()

	for range 5 {
		params, err := svc.Status(ctx)
		if err != nil {
			t.Fatalf("Status: %v", err)
		}
		if !params.IsSimulation {
			t.Fatal("Status must report the stored state")
		}
	}
	if repo.reads != 1 {
		t.Fatalf("reads = %d, want 1 (cache must absorb repeat polls)", repo.reads)
	}
}

func TestService_Status_ExpiredCacheRefreshes(t *testing.T) {
	repo := &stubRepo{}
	svc, router := newService(t, repo, time.Nanosecond)
	ctx := context.Background()

	if _, err := svc.Status(ctx); err != nil {
		t.Fatalf("Status: %v", err)
	}
	// Another replica flipped the toggle; the next expired read must
	// re-synchronize the router.
	repo.params.IsSimulation = true
	time.Sleep(time.Millisecond)

	params, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !params.IsSimulation || !router.Simulation() {
		t.Fatal("expired cache must pick up the external toggle and re-sync the router")
	}
	if repo.reads != 2 {
		t.Fatalf("reads = %d, want 2", repo.reads)
	}
}

func TestService_Refresh_ErrorPassthrough(t *testing.T) {
	repo := &stubRepo{err: errors.New("connection refused")}
	svc, _ := newService(t, repo, time.Hour)

	if _, err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh must surface repository errors")
	}
}
