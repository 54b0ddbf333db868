package member

import (
	"encoding/json"
	"net/http"
	"time"

	"spa-backoffice/internal/handler/http/respond"
	"spa-backoffice/internal/handler/http/validate"
	memberUC "spa-backoffice/internal/usecase/member"
)

type createRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email,max=254"`
	Contact string `json:"contact" validate:"omitempty,max=32"`
	DOB     string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Sex     string `json:"sex" validate:"omitempty,oneof=M F"`
	Remarks string `json:"remarks" validate:"omitempty,max=2000"`
	Address string `json:"address" validate:"omitempty,max=500"`
	NRIC    string `json:"nric" validate:"omitempty,max=20"`
}

type CreateHandler struct{ Svc *memberUC.Service }

// ServeHTTP serves POST /members.
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

	in := memberUC.CreateInput{
		Name:    req.Name,
		Email:   req.Email,
		Contact: req.Contact,
		Sex:     req.Sex,
		Remarks: req.Remarks,
		Address: req.Address,
		NRIC:    req.NRIC,
	}
	if req.DOB != "" {
		dob, _ := time.Parse("2006-01-02", req.DOB) // format checked by validation
		in.DOB = &dob
	}

	created, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(created))
}
