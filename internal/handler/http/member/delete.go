package member

import (
	"errors"
	"net/http"

	"spa-backoffice/internal/handler/http/pathutil"
	"spa-backoffice/internal/handler/http/respond"
	memberUC "spa-backoffice/internal/usecase/member"
)

type DeleteHandler struct{ Svc *memberUC.Service }

// ServeHTTP serves DELETE /members/{id}.
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/members/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	err = h.Svc.Delete(r.Context(), id)
	switch {
	case errors.Is(err, memberUC.ErrMemberNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case err != nil:
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
