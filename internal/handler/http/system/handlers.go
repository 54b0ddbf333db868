// Package system provides HTTP handlers for the simulation mode endpoints.
// The status endpoint is polled by every back-office screen; the toggle is
// admin-only and flips which database pool serves subsequent requests.
package system

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/handler/http/respond"
	simUC "spa-backoffice/internal/usecase/simulation"
)

// StateDTO represents the JSON structure for the simulation state.
type StateDTO struct {
	IsSimulation bool       `json:"isSimulation"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func toDTO(params *entity.SystemParameters) StateDTO {
	return StateDTO{
		IsSimulation: params.IsSimulation,
		StartDate:    params.StartDateUTC,
		EndDate:      params.EndDateUTC,
		UpdatedAt:    params.UpdatedAt,
	}
}

type StatusHandler struct{ Svc *simUC.Service }

// ServeHTTP serves GET /system/simulation. Served from the short-lived cache.
func (h StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := h.Svc.Status(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(params))
}

type setRequest struct {
	Enabled   bool    `json:"enabled"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

type SetHandler struct{ Svc *simUC.Service }

// ServeHTTP serves POST /system/simulation. Both dates are optional; a
// malformed date is rejected with an error naming which bound is bad.
func (h SetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	start, err := parseBound("startDate", req.StartDate)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	end, err := parseBound("endDate", req.EndDate)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	params, err := h.Svc.Set(r.Context(), req.Enabled, start, end)
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(params))
}

func parseBound(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	if err := entity.ValidateISO8601(field, *value); err != nil {
		return nil, err
	}
	t, _ := time.Parse(time.RFC3339, *value)
	t = t.UTC()
	return &t, nil
}
