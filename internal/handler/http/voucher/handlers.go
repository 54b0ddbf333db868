// Package voucher provides HTTP handlers for the member voucher listings.
package voucher

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/handler/http/pathutil"
	"spa-backoffice/internal/handler/http/requestid"
	"spa-backoffice/internal/handler/http/respond"
	"spa-backoffice/internal/observability/logging"
	"spa-backoffice/internal/repository"
	"spa-backoffice/internal/session"
	voucherUC "spa-backoffice/internal/usecase/voucher"
)

// DTO represents the JSON structure for voucher data transfer.
type DTO struct {
	ID              int64     `json:"id"`
	MemberID        int64     `json:"memberId"`
	Name            string    `json:"name"`
	CurrentBalance  float64   `json:"currentBalance"`
	StartingBalance float64   `json:"startingBalance"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toDTO(v *entity.MemberVoucher) DTO {
	return DTO{
		ID:              v.ID,
		MemberID:        v.MemberID,
		Name:            v.Name,
		CurrentBalance:  v.CurrentBalance,
		StartingBalance: v.StartingBalance,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

type ListHandler struct {
	Svc           *voucherUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP serves GET /vouchers: one page under the session date range.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	req, err := pagination.ParseRequest(r, h.PaginationCfg, logger)
	if err != nil {
		pagination.LogError(logger, reqID, req, err, "validation")
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	pagination.LogRequest(logger, reqID, req)

	window := repository.DateRange{}
	if sess := session.FromContext(ctx); sess != nil {
		window = sess.State.Window()
	}

	vouchers, info, err := h.Svc.List(ctx, req, window)
	if err != nil {
		pagination.LogError(logger, reqID, req, err, "database")
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(vouchers))
	for _, v := range vouchers {
		dtos = append(dtos, toDTO(v))
	}

	pagination.RecordRequest(http.StatusOK, req.Mode())
	pagination.RecordDuration("list_vouchers", time.Since(start).Seconds())
	pagination.LogResponse(logger, reqID, req, len(dtos), time.Since(start), http.StatusOK)

	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, info))
}

type GetHandler struct{ Svc *voucherUC.Service }

// ServeHTTP serves GET /vouchers/{id}.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/vouchers/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	v, err := h.Svc.Get(r.Context(), id)
	switch {
	case errors.Is(err, voucherUC.ErrVoucherNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case err != nil:
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		respond.JSON(w, http.StatusOK, toDTO(v))
	}
}

type ByMemberHandler struct{ Svc *voucherUC.Service }

// ServeHTTP serves GET /members/{id}/vouchers. Registered with a wildcard
// pattern, so the member id arrives as a path value.
func (h ByMemberHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	vouchers, err := h.Svc.ListByMember(r.Context(), memberID)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]DTO, 0, len(vouchers))
	for _, v := range vouchers {
		dtos = append(dtos, toDTO(v))
	}
	respond.JSON(w, http.StatusOK, dtos)
}
