package member

import (
	"errors"
	"net/http"

	"spa-backoffice/internal/handler/http/pathutil"
	"spa-backoffice/internal/handler/http/respond"
	memberUC "spa-backoffice/internal/usecase/member"
)

type GetHandler struct{ Svc *memberUC.Service }

// ServeHTTP serves GET /members/{id}.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/members/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	m, err := h.Svc.Get(r.Context(), id)
	switch {
	case errors.Is(err, memberUC.ErrMemberNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case errors.Is(err, memberUC.ErrInvalidMemberID):
		respond.SafeError(w, http.StatusBadRequest, err)
	case err != nil:
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		respond.JSON(w, http.StatusOK, toDTO(m))
	}
}
