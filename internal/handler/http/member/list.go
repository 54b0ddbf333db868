package member

import (
	"log/slog"
	"net/http"
	"time"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/handler/http/requestid"
	"spa-backoffice/internal/handler/http/respond"
	"spa-backoffice/internal/observability/logging"
	"spa-backoffice/internal/repository"
	"spa-backoffice/internal/session"
	memberUC "spa-backoffice/internal/usecase/member"
)

type ListHandler struct {
	Svc           *memberUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP serves GET /members: one page of members under the session date
// range, navigable by cursor (after/before) or page number.
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

	members, info, err := h.Svc.List(ctx, req, window)
	if err != nil {
		pagination.LogError(logger, reqID, req, err, "database")
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, toDTO(m))
	}

	pagination.RecordRequest(http.StatusOK, req.Mode())
	pagination.RecordDuration("list_members", time.Since(start).Seconds())
	pagination.LogResponse(logger, reqID, req, len(dtos), time.Since(start), http.StatusOK)

	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, info))
}
