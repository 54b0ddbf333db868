package carepackage

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/handler/http/pathutil"
	"spa-backoffice/internal/handler/http/requestid"
	"spa-backoffice/internal/handler/http/respond"
	"spa-backoffice/internal/handler/http/validate"
	"spa-backoffice/internal/observability/logging"
	"spa-backoffice/internal/repository"
	"spa-backoffice/internal/session"
	cpUC "spa-backoffice/internal/usecase/carepackage"
)

type ListHandler struct {
	Svc           *cpUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP serves GET /care-packages: one page under the session date range.
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

	packages, info, err := h.Svc.List(ctx, req, window)
	if err != nil {
		pagination.LogError(logger, reqID, req, err, "database")
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(packages))
	for _, pkg := range packages {
		dtos = append(dtos, toDTO(pkg))
	}

	pagination.RecordRequest(http.StatusOK, req.Mode())
	pagination.RecordDuration("list_care_packages", time.Since(start).Seconds())
	pagination.LogResponse(logger, reqID, req, len(dtos), time.Since(start), http.StatusOK)

	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, info))
}

type EnabledHandler struct{ Svc *cpUC.Service }

// ServeHTTP serves GET /care-packages/enabled: the dropdown listing.
func (h EnabledHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	packages, err := h.Svc.ListEnabled(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]DTO, 0, len(packages))
	for _, pkg := range packages {
		dtos = append(dtos, toDTO(pkg))
	}
	respond.JSON(w, http.StatusOK, dtos)
}

type GetHandler struct{ Svc *cpUC.Service }

// ServeHTTP serves GET /care-packages/{id}, including the service lines.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/care-packages/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	detail, err := h.Svc.Get(r.Context(), id)
	switch {
	case errors.Is(err, cpUC.ErrPackageNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case err != nil:
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		respond.JSON(w, http.StatusOK, toDetailDTO(detail))
	}
}

type serviceLineRequest struct {
	ServiceName string  `json:"serviceName" validate:"required,max=200"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	Price       float64 `json:"price" validate:"gte=0"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=1"`
}

type createRequest struct {
	Name           string               `json:"name" validate:"required,max=200"`
	Remarks        string               `json:"remarks" validate:"omitempty,max=2000"`
	Price          float64              `json:"price" validate:"gte=0"`
	IsCustomizable bool                 `json:"isCustomizable"`
	Services       []serviceLineRequest `json:"services" validate:"required,min=1,dive"`
}

type CreateHandler struct{ Svc *cpUC.Service }

// ServeHTTP serves POST /care-packages.
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

	in := cpUC.CreateInput{
		Name:           req.Name,
		Remarks:        req.Remarks,
		Price:          req.Price,
		IsCustomizable: req.IsCustomizable,
	}
	for _, line := range req.Services {
		in.Services = append(in.Services, cpUC.ServiceLineInput{
			ServiceName: line.ServiceName,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Discount:    line.Discount,
		})
	}

	detail, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDetailDTO(detail))
}

type updateRequest struct {
	Name           *string  `json:"name" validate:"omitempty,max=200"`
	Remarks        *string  `json:"remarks" validate:"omitempty,max=2000"`
	Price          *float64 `json:"price" validate:"omitempty,gte=0"`
	IsCustomizable *bool    `json:"isCustomizable"`
	Status         *string  `json:"status" validate:"omitempty,oneof=ENABLED DISABLED"`
}

type UpdateHandler struct{ Svc *cpUC.Service }

// ServeHTTP serves PUT /care-packages/{id}. Absent fields are left unchanged.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/care-packages/")
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

	updated, err := h.Svc.Update(r.Context(), cpUC.UpdateInput{
		ID:             id,
		Name:           req.Name,
		Remarks:        req.Remarks,
		Price:          req.Price,
		IsCustomizable: req.IsCustomizable,
		Status:         req.Status,
	})
	switch {
	case errors.Is(err, cpUC.ErrPackageNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case err != nil:
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.JSON(w, http.StatusOK, toDTO(updated))
	}
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=ENABLED DISABLED"`
}

type StatusHandler struct{ Svc *cpUC.Service }

// ServeHTTP serves PATCH /care-packages/{id}/status.
func (h StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(strings.TrimSuffix(r.URL.Path, "/status"), "/care-packages/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	err = h.Svc.SetStatus(r.Context(), id, req.Status)
	switch {
	case errors.Is(err, cpUC.ErrPackageNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case err != nil:
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		respond.JSON(w, http.StatusOK, map[string]string{"status": req.Status})
	}
}

type DeleteHandler struct{ Svc *cpUC.Service }

// ServeHTTP serves DELETE /care-packages/{id}.
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/care-packages/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	err = h.Svc.Delete(r.Context(), id)
	switch {
	case errors.Is(err, cpUC.ErrPackageNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case err != nil:
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
