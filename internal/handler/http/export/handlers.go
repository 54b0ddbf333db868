// Package export provides the CSV download endpoints. An export walks the
// same paginated listing the screens use, under the same session date range.
package export

import (
	"log/slog"
	"net/http"

	"spa-backoffice/internal/handler/http/auth"
	"spa-backoffice/internal/repository"
	"spa-backoffice/internal/session"
	exportUC "spa-backoffice/internal/usecase/export"
)

type csvHandler struct {
	filename string
	logger   *slog.Logger
	write    func(r *http.Request, w http.ResponseWriter, window repository.DateRange) error
}

func (h csvHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	window := repository.DateRange{}
	if sess := session.FromContext(r.Context()); sess != nil {
		window = sess.State.Window()
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.filename+`"`)

	if err := h.write(r, w, window); err != nil {
		// Headers are already out; the truncated body is the only signal
		// left to the client.
		h.logger.Error("csv export failed", "filename", h.filename, "error", err)
	}
}

// Register registers the CSV export endpoints with the given mux.
func Register(mux *http.ServeMux, svc *exportUC.Service, logger *slog.Logger) {
	mux.Handle("GET /exports/members.csv", auth.Authz(csvHandler{
		filename: "members.csv",
		logger:   logger,
		write: func(r *http.Request, w http.ResponseWriter, window repository.DateRange) error {
			return svc.ExportMembers(r.Context(), w, window)
		},
	}))
	mux.Handle("GET /exports/care-packages.csv", auth.Authz(csvHandler{
		filename: "care-packages.csv",
		logger:   logger,
		write: func(r *http.Request, w http.ResponseWriter, window repository.DateRange) error {
			return svc.ExportCarePackages(r.Context(), w, window)
		},
	}))
}
