package pagination

// PageInfo is the navigation envelope returned alongside every page.
//
// The original system shipped two envelope shapes, one per navigation mode.
// This is the single canonical shape carrying both: offset navigation reads
// CurrentPage/TotalPages, cursor navigation reads the cursors and the
// has-next/has-previous flags. TotalCount is valid for both and may be cached
// by clients until the search term, filter, or limit changes.
type PageInfo struct {
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	TotalCount      int64   `json:"totalCount"`
	CurrentPage     int     `json:"currentPage,omitempty"`
	TotalPages      int     `json:"totalPages,omitempty"`
	Limit           int     `json:"limit"`
}

// BuildPageInfo assembles the page-info envelope for one fetched page.
//
// fetchedCount is the raw number of rows the query returned, including the
// probe row in seek modes; returnedCount is the number of rows actually handed
// back after trimming the probe. Cursors are supplied by the caller from the
// first and last returned rows (never from the probe row).
func BuildPageInfo(req Request, totalCount int64, fetchedCount, returnedCount int, startCursor, endCursor *string) PageInfo {
	info := PageInfo{
		StartCursor: startCursor,
		EndCursor:   endCursor,
		TotalCount:  totalCount,
		Limit:       req.Limit,
	}

	switch req.Mode() {
	case ModeOffset:
		info.CurrentPage = req.Page
		info.TotalPages = CalculateTotalPages(totalCount, req.Limit)
		info.HasNextPage = int64(req.Page*req.Limit) < totalCount
		info.HasPreviousPage = req.Page > 1
	case ModeSeekAfter:
		info.HasNextPage = fetchedCount > req.Limit
		info.HasPreviousPage = true
	case ModeSeekBefore:
		info.HasNextPage = returnedCount > 0
		info.HasPreviousPage = fetchedCount > req.Limit
	default: // ModeFirstPage
		info.CurrentPage = 1
		info.TotalPages = CalculateTotalPages(totalCount, req.Limit)
		info.HasNextPage = fetchedCount > req.Limit
		info.HasPreviousPage = false
	}

	return info
}
