package session

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMiddleware_NewVisitorGetsCookie(t *testing.T) {
	store, _ := newStore(t)

	var seen *Session
	handler := Middleware(store, slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = FromContext(r.Context())
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members", nil))

	if seen == nil || !seen.IsNew() {
		t.Fatalf("session = %+v, want a fresh session in context", seen)
	}
	if !seen.State.Window().Unbounded() {
		t.Fatal("fresh session must start with no date filter")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("cookies = %v, want one %s cookie", cookies, CookieName)
	}
	if cookies[0].Value != seen.ID {
		t.Fatal("cookie value must carry the session id")
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
}

func TestMiddleware_ReturningVisitorLoadsState(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT sess FROM sessions")).
		WithArgs("sid-1").
		WillReturnRows(sqlmock.NewRows([]string{"sess"}).
			AddRow([]byte(`{"dateRange":{"startDate":"2024-06-01T00:00:00Z","endDate":null}}`)))

	var seen *Session
	handler := Middleware(store, slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = FromContext(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "sid-1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == nil || seen.IsNew() {
		t.Fatalf("session = %+v, want the stored session", seen)
	}
	if seen.ID != "sid-1" {
		t.Fatalf("sid = %q, want sid-1", seen.ID)
	}
	if seen.State.Window().Start == nil {
		t.Fatal("stored date range must be loaded into the session")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("returning visitor must not get a new cookie")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestMiddleware_ExpiredSessionKeepsSid(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT sess FROM sessions")).
		WithArgs("sid-old").
		WillReturnRows(sqlmock.NewRows([]string{"sess"}))

	var seen *Session
	handler := Middleware(store, slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = FromContext(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "sid-old"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen.ID != "sid-old" {
		t.Fatalf("sid = %q, want the original sid reused", seen.ID)
	}
	if !seen.State.Window().Unbounded() {
		t.Fatal("expired session must restart with no date filter")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
