package system

import (
	"net/http"

	"spa-backoffice/internal/handler/http/auth"
	simUC "spa-backoffice/internal/usecase/simulation"
)

// Register registers the simulation mode endpoints with the given mux.
// The toggle is restricted to admins inside Authz; the status read is open to
// any authenticated role.
func Register(mux *http.ServeMux, svc *simUC.Service) {
	mux.Handle("GET  /system/simulation", auth.Authz(StatusHandler{svc}))
	mux.Handle("POST /system/simulation", auth.Authz(SetHandler{svc}))
}
