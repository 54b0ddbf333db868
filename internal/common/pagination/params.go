package pagination

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParseRequest parses pagination parameters from an HTTP request query string.
//
// Query parameters:
//   - limit: items per page (positive integer, capped at config.MaxLimit)
//   - page: page number (positive integer, optional; switches to offset mode)
//   - after / before: opaque cursor tokens (optional)
//   - searchTerm: case-insensitive containment filter (optional)
//
// Parsing only converts the raw strings; defaults come from WithDefaults and
// range checks from Validate, so handlers that build a Request directly go
// through the same rules.
//
// When both page and a cursor are supplied, page wins and the cursors are
// dropped; the decision is logged rather than rejected. A malformed cursor is
// rejected with ErrInvalidCursor, never silently treated as "no cursor".
func ParseRequest(r *http.Request, config Config, logger *slog.Logger) (Request, error) {
	q := r.URL.Query()

	req := Request{}

	limitStr := q.Get("limit")
	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return req, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		req.Limit = limit
	}

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return req, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		req.Page = page
	}

	if token := q.Get("after"); token != "" {
		cursor, err := DecodeCursor(token)
		if err != nil {
			return req, fmt.Errorf("invalid query parameter: after: %w", err)
		}
		req.After = &cursor
	}

	if token := q.Get("before"); token != "" {
		cursor, err := DecodeCursor(token)
		if err != nil {
			return req, fmt.Errorf("invalid query parameter: before: %w", err)
		}
		req.Before = &cursor
	}

	req.SearchTerm = q.Get("searchTerm")

	// An explicitly supplied limit must be range-checked, not silently
	// defaulted; only an absent limit takes config.DefaultLimit.
	if limitStr == "" {
		req = req.WithDefaults(config)
	}

	if req.Resolve() && logger != nil {
		logger.Warn("both page and cursor parameters provided, prioritizing page",
			"page", req.Page,
			"path", r.URL.Path)
	}

	if err := req.Validate(config); err != nil {
		return req, fmt.Errorf("invalid query parameter: %w", err)
	}

	return req, nil
}
