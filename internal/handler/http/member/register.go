package member

import (
	"log/slog"
	"net/http"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/handler/http/auth"
	memberUC "spa-backoffice/internal/usecase/member"
)

// Register registers all member HTTP handlers with the given mux.
// Every route requires authentication; mutations additionally require the
// admin role, enforced inside Authz.
func Register(mux *http.ServeMux, svc *memberUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /members", auth.Authz(ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
	mux.Handle("GET    /members/", auth.Authz(GetHandler{svc}))

	mux.Handle("POST   /members", auth.Authz(CreateHandler{svc}))
	mux.Handle("PUT    /members/", auth.Authz(UpdateHandler{svc}))
	mux.Handle("DELETE /members/", auth.Authz(DeleteHandler{svc}))
}
