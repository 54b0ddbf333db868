package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"spa-backoffice/internal/infra/db"
)

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = mockDB.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(db.FixedPool{Pool: mockDB}, time.Hour, logger), mock
}

func TestStore_Get_RoundTrip(t *testing.T) {
	store, mock := newStore(t)

	raw := []byte(`{"dateRange":{"startDate":"2024-06-01T00:00:00Z","endDate":null}}`)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT sess FROM sessions WHERE sid = $1 AND expires_at > now()")).
		WithArgs("sid-1").
		WillReturnRows(sqlmock.NewRows([]string{"sess"}).AddRow(raw))

	state, err := store.Get(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if state.DateRange.Start == nil || state.DateRange.End != nil {
		t.Fatalf("state = %+v, want start bound only", state.DateRange)
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !state.DateRange.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", state.DateRange.Start, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStore_Get_Missing(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT sess FROM sessions")).
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"sess"}))

	_, err := store.Get(context.Background(), "gone")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStore_Get_CorruptStateResets(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT sess FROM sessions")).
		WithArgs("sid-1").
		WillReturnRows(sqlmock.NewRows([]string{"sess"}).AddRow([]byte("{not json")))

	state, err := store.Get(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !state.Window().Unbounded() {
		t.Fatalf("corrupt state must reset to unbounded, got %+v", state)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStore_Save_Upserts(t *testing.T) {
	store, mock := newStore(t)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (sid) DO UPDATE")).
		WithArgs("sid-1", []byte(`{"dateRange":{"startDate":"2024-06-01T00:00:00Z","endDate":null}}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	state := &State{DateRange: RangeState{Start: &start}}
	if err := store.Save(context.Background(), "sid-1", state); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStore_PruneExpired(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE expires_at <= now()")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	pruned, err := store.PruneExpired(context.Background())
	if err != nil {
		t.Fatalf("PruneExpired: %v", err)
	}
	if pruned != 3 {
		t.Fatalf("pruned = %d, want 3", pruned)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
