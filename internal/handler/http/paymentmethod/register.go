package paymentmethod

import (
	"log/slog"
	"net/http"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/handler/http/auth"
	pmUC "spa-backoffice/internal/usecase/paymentmethod"
)

// Register registers all payment method HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *pmUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /payment-methods", auth.Authz(ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
	mux.Handle("GET    /payment-methods/enabled", auth.Authz(EnabledHandler{svc}))
	mux.Handle("GET    /payment-methods/", auth.Authz(GetHandler{svc}))

	mux.Handle("POST   /payment-methods", auth.Authz(CreateHandler{svc}))
	mux.Handle("PUT    /payment-methods/", auth.Authz(UpdateHandler{svc}))
	mux.Handle("DELETE /payment-methods/", auth.Authz(DeleteHandler{svc}))
}
