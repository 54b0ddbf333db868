// Package daterange provides the session date-range endpoints. The stored
// range acts as an implicit created_at filter on every listing for the rest
// of the session.
package daterange

import (
	"encoding/json"
	"net/http"
	"time"

	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/handler/http/respond"
	"spa-backoffice/internal/session"
)

// DTO represents the JSON structure of the stored range. A null bound means
// no filter on that side.
type DTO struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type GetHandler struct{}

// ServeHTTP serves GET /session/date-range.
func (GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		respond.SafeError(w, http.StatusInternalServerError, errNoSession)
		return
	}
	respond.JSON(w, http.StatusOK, DTO{
		StartDate: sess.State.DateRange.Start,
		EndDate:   sess.State.DateRange.End,
	})
}

type setRequest struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

type SetHandler struct{}

// ServeHTTP serves POST /session/date-range. Each side is independently
// nullable; a malformed date is rejected naming the bad bound, and an
// inverted range is rejected before anything is stored.
func (SetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		respond.SafeError(w, http.StatusInternalServerError, errNoSession)
		return
	}

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
	if start != nil && end != nil && end.Before(*start) {
		respond.SafeError(w, http.StatusBadRequest,
			&entity.ValidationError{Field: "endDate", Message: "must not be before startDate"})
		return
	}

	sess.State.DateRange = session.RangeState{Start: start, End: end}
	if err := sess.Save(r.Context()); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, DTO{StartDate: start, EndDate: end})
}

type ClearHandler struct{}

// ServeHTTP serves DELETE /session/date-range: back to no filter.
func (ClearHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		respond.SafeError(w, http.StatusInternalServerError, errNoSession)
		return
	}

	sess.State.DateRange = session.RangeState{}
	if err := sess.Save(r.Context()); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, DTO{})
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
