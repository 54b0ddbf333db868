package pagination_test

import (
	"testing"

	"spa-backoffice/internal/common/pagination"
)

func resolved(req pagination.Request) pagination.Request {
	req.Resolve()
	return req
}

func TestBuildPageInfo(t *testing.T) {
	t.Parallel()

	start, end := "c-start", "c-end"

	tests := []struct {
		name          string
		req           pagination.Request
		total         int64
		fetched       int
		returned      int
		wantNext      bool
		wantPrev      bool
		wantCurrent   int
		wantTotalPage int
	}{
		{
			name:          "first page with more rows",
			req:           resolved(pagination.Request{Limit: 2}),
			total:         5,
			fetched:       3, // limit+1 probe row came back
			returned:      2,
			wantNext:      true,
			wantPrev:      false,
			wantCurrent:   1,
			wantTotalPage: 3,
		},
		{
			name:          "first page exhausts set",
			req:           resolved(pagination.Request{Limit: 10}),
			total:         4,
			fetched:       4,
			returned:      4,
			wantNext:      false,
			wantPrev:      false,
			wantCurrent:   1,
			wantTotalPage: 1,
		},
		{
			name:     "seek after with more rows",
			req:      resolved(pagination.Request{Limit: 2, After: &pagination.Cursor{ID: 4}}),
			total:    5,
			fetched:  3,
			returned: 2,
			wantNext: true,
			wantPrev: true,
		},
		{
			name:     "seek after final page",
			req:      resolved(pagination.Request{Limit: 2, After: &pagination.Cursor{ID: 2}}),
			total:    5,
			fetched:  1,
			returned: 1,
			wantNext: false,
			wantPrev: true,
		},
		{
			name:     "seek before with earlier rows",
			req:      resolved(pagination.Request{Limit: 2, Before: &pagination.Cursor{ID: 3}}),
			total:    5,
			fetched:  3,
			returned: 2,
			wantNext: true,
			wantPrev: true,
		},
		{
			name:          "offset middle page",
			req:           resolved(pagination.Request{Limit: 2, Page: 2}),
			total:         5,
			fetched:       2,
			returned:      2,
			wantNext:      true,
			wantPrev:      true,
			wantCurrent:   2,
			wantTotalPage: 3,
		},
		{
			name:          "offset last page",
			req:           resolved(pagination.Request{Limit: 2, Page: 3}),
			total:         5,
			fetched:       1,
			returned:      1,
			wantNext:      false,
			wantPrev:      true,
			wantCurrent:   3,
			wantTotalPage: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := pagination.BuildPageInfo(tt.req, tt.total, tt.fetched, tt.returned, &start, &end)
			if info.HasNextPage != tt.wantNext {
				t.Errorf("HasNextPage = %v, want %v", info.HasNextPage, tt.wantNext)
			}
			if info.HasPreviousPage != tt.wantPrev {
				t.Errorf("HasPreviousPage = %v, want %v", info.HasPreviousPage, tt.wantPrev)
			}
			if info.CurrentPage != tt.wantCurrent {
				t.Errorf("CurrentPage = %d, want %d", info.CurrentPage, tt.wantCurrent)
			}
			if info.TotalPages != tt.wantTotalPage {
				t.Errorf("TotalPages = %d, want %d", info.TotalPages, tt.wantTotalPage)
			}
			if info.TotalCount != tt.total {
				t.Errorf("TotalCount = %d, want %d", info.TotalCount, tt.total)
			}
			if info.Limit != tt.req.Limit {
				t.Errorf("Limit = %d, want %d", info.Limit, tt.req.Limit)
			}
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 1},
		{10, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
	}
	for _, tt := range tests {
		if got := pagination.CalculateTotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestCalculateOffset(t *testing.T) {
	t.Parallel()

	if got := pagination.CalculateOffset(1, 20); got != 0 {
		t.Errorf("CalculateOffset(1, 20) = %d, want 0", got)
	}
	if got := pagination.CalculateOffset(3, 10); got != 20 {
		t.Errorf("CalculateOffset(3, 10) = %d, want 20", got)
	}
}
