package voucher

import (
	"log/slog"
	"net/http"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/handler/http/auth"
	voucherUC "spa-backoffice/internal/usecase/voucher"
)

// Register registers all voucher HTTP handlers with the given mux.
// Vouchers are read-only in the back office; balances change through the
// consumption flow.
func Register(mux *http.ServeMux, svc *voucherUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /vouchers", auth.Authz(ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
	mux.Handle("GET    /vouchers/", auth.Authz(GetHandler{svc}))
	mux.Handle("GET    /members/{id}/vouchers", auth.Authz(ByMemberHandler{svc}))
}
