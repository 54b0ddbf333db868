package daterange

import (
	"errors"
	"net/http"

	"spa-backoffice/internal/handler/http/auth"
)

var errNoSession = errors.New("no session on request")

// Register registers the session date-range endpoints with the given mux.
func Register(mux *http.ServeMux) {
	mux.Handle("GET    /session/date-range", auth.Authz(GetHandler{}))
	mux.Handle("POST   /session/date-range", auth.Authz(SetHandler{}))
	mux.Handle("DELETE /session/date-range", auth.Authz(ClearHandler{}))
}
