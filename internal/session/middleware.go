package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// CookieName is the session cookie. The value is the opaque sid; all state
// stays server-side.
const CookieName = "backoffice.sid"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const sessionKey contextKey = "session"

// Session is the per-request view of one stored session. State mutations are
// local until Save is called.
type Session struct {
	ID    string
	State *State

	store *Store
	isNew bool
}

// Save persists the current state and refreshes the session lifetime.
func (s *Session) Save(ctx context.Context) error {
	return s.store.Save(ctx, s.ID, s.State)
}

// IsNew reports whether the session was created on this request.
func (s *Session) IsNew() bool {
	return s.isNew
}

// FromContext retrieves the session attached by Middleware.
// Returns nil if the request did not pass through it.
func FromContext(ctx context.Context) *Session {
	if sess, ok := ctx.Value(sessionKey).(*Session); ok {
		return sess
	}
	return nil
}

// Middleware attaches a session to every request. A missing or unknown
// cookie gets a fresh sid; the new session is only written to the database
// once a handler calls Save, so read-only traffic creates no rows.
func Middleware(store *Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{store: store}

			if cookie, err := r.Cookie(CookieName); err == nil {
				sess.ID = cookie.Value
				state, err := store.Get(r.Context(), cookie.Value)
				switch {
				case err == nil:
					sess.State = state
				case errors.Is(err, ErrNotFound):
					// Expired or pruned; reuse the sid with fresh state.
					sess.State = &State{}
				default:
					logger.Error("session load failed", "error", err)
					http.Error(w, "service unavailable", http.StatusServiceUnavailable)
					return
				}
			}

			if sess.ID == "" {
				sess.ID = uuid.New().String()
				sess.State = &State{}
				sess.isNew = true
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    sess.ID,
					Path:     "/",
					MaxAge:   int(store.TTL().Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
