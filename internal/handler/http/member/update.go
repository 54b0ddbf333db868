package member

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"spa-backoffice/internal/handler/http/pathutil"
	"spa-backoffice/internal/handler/http/respond"
	"spa-backoffice/internal/handler/http/validate"
	memberUC "spa-backoffice/internal/usecase/member"
)

type updateRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Email   *string `json:"email" validate:"omitempty,email,max=254"`
	Contact *string `json:"contact" validate:"omitempty,max=32"`
	DOB     *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Sex     *string `json:"sex" validate:"omitempty,oneof=M F"`
	Remarks *string `json:"remarks" validate:"omitempty,max=2000"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	NRIC    *string `json:"nric" validate:"omitempty,max=20"`
}

type UpdateHandler struct{ Svc *memberUC.Service }

// ServeHTTP serves PUT /members/{id}. Absent fields are left unchanged.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/members/")
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

	in := memberUC.UpdateInput{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Contact: req.Contact,
		Sex:     req.Sex,
		Remarks: req.Remarks,
		Address: req.Address,
		NRIC:    req.NRIC,
	}
	if req.DOB != nil {
		dob, _ := time.Parse("2006-01-02", *req.DOB)
		in.DOB = &dob
	}

	updated, err := h.Svc.Update(r.Context(), in)
	switch {
	case errors.Is(err, memberUC.ErrMemberNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case err != nil:
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.JSON(w, http.StatusOK, toDTO(updated))
	}
}
