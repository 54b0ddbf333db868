package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"spa-backoffice/internal/infra/db"
)

// DefaultTTL matches the original cookie lifetime of one day.
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned when no live session row exists for a sid.
var ErrNotFound = errors.New("session: not found")

// Store persists session state in the sessions table. It is pinned to the
// production pool: the date range must keep filtering consistently while the
// operator flips simulation mode on and off.
type Store struct {
	pools  db.PoolProvider
	ttl    time.Duration
	logger *slog.Logger
}

func NewStore(pools db.PoolProvider, ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{pools: pools, ttl: ttl, logger: logger}
}

// Get loads the state for sid. Expired rows are treated as absent; the
// pruner deletes them later.
func (s *Store) Get(ctx context.Context, sid string) (*State, error) {
	const query = `SELECT sess FROM sessions WHERE sid = $1 AND expires_at > now()`
	var raw []byte
	err := s.pools.Production().QueryRowContext(ctx, query, sid).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: get: %w", err)
	}
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		// A corrupt row should not lock the user out; start fresh.
		s.logger.Warn("session state unreadable, resetting", "sid", sid, "error", err)
		return &State{}, nil
	}
	return &state, nil
}

// Save upserts the state for sid and extends its lifetime by the store TTL.
func (s *Store) Save(ctx context.Context, sid string, state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	const query = `
INSERT INTO sessions (sid, sess, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (sid) DO UPDATE SET sess = EXCLUDED.sess, expires_at = EXCLUDED.expires_at`
	if _, err := s.pools.Production().ExecContext(ctx, query, sid, raw, time.Now().Add(s.ttl)); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

// Delete removes the session row, if any.
func (s *Store) Delete(ctx context.Context, sid string) error {
	if _, err := s.pools.Production().ExecContext(ctx, `DELETE FROM sessions WHERE sid = $1`, sid); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

// PruneExpired deletes rows past their expiry and reports how many went.
// The API process runs this on a schedule.
func (s *Store) PruneExpired(ctx context.Context) (int64, error) {
	result, err := s.pools.Production().ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("session: prune: %w", err)
	}
	return result.RowsAffected()
}

// TTL returns the session lifetime, used for the cookie Max-Age.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
