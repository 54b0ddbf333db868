// Package paymentmethod provides HTTP handlers for payment method
// configuration. A duplicate name answers 409 Conflict.
package paymentmethod

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/handler/http/pathutil"
	"spa-backoffice/internal/handler/http/requestid"
	"spa-backoffice/internal/handler/http/respond"
	"spa-backoffice/internal/handler/http/validate"
	"spa-backoffice/internal/observability/logging"
	pmUC "spa-backoffice/internal/usecase/paymentmethod"
)

// DTO represents the JSON structure for payment method data transfer.
type DTO struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	IsEnabled         bool      `json:"isEnabled"`
	IsRevenue         bool      `json:"isRevenue"`
	ShowOnPaymentPage bool      `json:"showOnPaymentPage"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toDTO(m *entity.PaymentMethod) DTO {
	return DTO{
		ID:                m.ID,
		Name:              m.Name,
		IsEnabled:         m.IsEnabled,
		IsRevenue:         m.IsRevenue,
		ShowOnPaymentPage: m.ShowOnPaymentPage,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

type ListHandler struct {
	Svc           *pmUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP serves GET /payment-methods: a small offset-navigated listing.
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

	methods, info, err := h.Svc.List(ctx, req)
	if err != nil {
		pagination.LogError(logger, reqID, req, err, "database")
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(methods))
	for _, m := range methods {
		dtos = append(dtos, toDTO(m))
	}

	pagination.RecordRequest(http.StatusOK, req.Mode())
	pagination.RecordDuration("list_payment_methods", time.Since(start).Seconds())

	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, info))
}

type EnabledHandler struct{ Svc *pmUC.Service }

// ServeHTTP serves GET /payment-methods/enabled: the payment page listing.
func (h EnabledHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	methods, err := h.Svc.ListEnabled(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]DTO, 0, len(methods))
	for _, m := range methods {
		dtos = append(dtos, toDTO(m))
	}
	respond.JSON(w, http.StatusOK, dtos)
}

type GetHandler struct{ Svc *pmUC.Service }

// ServeHTTP serves GET /payment-methods/{id}.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/payment-methods/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	m, err := h.Svc.Get(r.Context(), id)
	switch {
	case errors.Is(err, pmUC.ErrMethodNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case err != nil:
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		respond.JSON(w, http.StatusOK, toDTO(m))
	}
}

type createRequest struct {
	Name              string `json:"name" validate:"required,max=200"`
	IsEnabled         bool   `json:"isEnabled"`
	IsRevenue         bool   `json:"isRevenue"`
	ShowOnPaymentPage bool   `json:"showOnPaymentPage"`
}

type CreateHandler struct{ Svc *pmUC.Service }

// ServeHTTP serves POST /payment-methods.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := h.Svc.Create(r.Context(), pmUC.CreateInput{
		Name:              req.Name,
		IsEnabled:         req.IsEnabled,
		IsRevenue:         req.IsRevenue,
		ShowOnPaymentPage: req.ShowOnPaymentPage,
	})
	switch {
	case errors.Is(err, pmUC.ErrDuplicateName):
		respond.SafeError(w, http.StatusConflict, err)
	case err != nil:
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.JSON(w, http.StatusCreated, toDTO(created))
	}
}

type updateRequest struct {
	Name              *string `json:"name" validate:"omitempty,max=200"`
	IsEnabled         *bool   `json:"isEnabled"`
	IsRevenue         *bool   `json:"isRevenue"`
	ShowOnPaymentPage *bool   `json:"showOnPaymentPage"`
}

type UpdateHandler struct{ Svc *pmUC.Service }

// ServeHTTP serves PUT /payment-methods/{id}. Absent fields are left
// unchanged; renaming onto a taken name answers 409.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/payment-methods/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	updated, err := h.Svc.Update(r.Context(), pmUC.UpdateInput{
		ID:                id,
		Name:              req.Name,
		IsEnabled:         req.IsEnabled,
		IsRevenue:         req.IsRevenue,
		ShowOnPaymentPage: req.ShowOnPaymentPage,
	})
	switch {
	case errors.Is(err, pmUC.ErrDuplicateName):
		respond.SafeError(w, http.StatusConflict, err)
	case errors.Is(err, pmUC.ErrMethodNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case err != nil:
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.JSON(w, http.StatusOK, toDTO(updated))
	}
}

type DeleteHandler struct{ Svc *pmUC.Service }

// ServeHTTP serves DELETE /payment-methods/{id}.
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/payment-methods/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	err = h.Svc.Delete(r.Context(), id)
	switch {
	case errors.Is(err, pmUC.ErrMethodNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case err != nil:
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
