package carepackage

import (
	"log/slog"
	"net/http"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/handler/http/auth"
	cpUC "spa-backoffice/internal/usecase/carepackage"
)

// Register registers all care package HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *cpUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /care-packages", auth.Authz(ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
	mux.Handle("GET    /care-packages/enabled", auth.Authz(EnabledHandler{svc}))
	mux.Handle("GET    /care-packages/", auth.Authz(GetHandler{svc}))

	mux.Handle("POST   /care-packages", auth.Authz(CreateHandler{svc}))
	mux.Handle("PUT    /care-packages/", auth.Authz(UpdateHandler{svc}))
	mux.Handle("PATCH  /care-packages/", auth.Authz(StatusHandler{svc}))
	mux.Handle("DELETE /care-packages/", auth.Authz(DeleteHandler{svc}))
}
