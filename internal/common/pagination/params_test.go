package pagination_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"spa-backoffice/internal/common/pagination"
)

func newListRequest(t *testing.T, query string) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "/members?"+query, nil)
}

func TestParseRequest(t *testing.T) {
	t.Parallel()

	config := pagination.Config{
		DefaultLimit: 10,
		MaxLimit:     100,
	}
	cursor := pagination.EncodeCursor(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 5)

	tests := []struct {
		name      string
		query     string
		wantMode  pagination.Mode
		wantLimit int
		wantPage  int
		wantError bool
	}{
		{
			name:      "defaults",
			query:     "",
			wantMode:  pagination.ModeFirstPage,
			wantLimit: 10,
		},
		{
			name:      "offset mode",
			query:     "page=3&limit=25",
			wantMode:  pagination.ModeOffset,
			wantLimit: 25,
			wantPage:  3,
		},
		{
			name:      "after cursor",
			query:     "limit=2&after=" + url.QueryEscape(cursor),
			wantMode:  pagination.ModeSeekAfter,
			wantLimit: 2,
		},
		{
			name:      "before cursor",
			query:     "limit=2&before=" + url.QueryEscape(cursor),
			wantMode:  pagination.ModeSeekBefore,
			wantLimit: 2,
		},
		{
			name:      "page wins over cursor",
			query:     "page=2&after=" + url.QueryEscape(cursor),
			wantMode:  pagination.ModeOffset,
			wantLimit: 10,
			wantPage:  2,
		},
		{
			name:      "zero limit rejected",
			query:     "limit=0",
			wantError: true,
		},
		{
			name:      "negative limit rejected",
			query:     "limit=-5",
			wantError: true,
		},
		{
			name:      "limit above max rejected",
			query:     "limit=101",
			wantError: true,
		},
		{
			name:      "zero page rejected",
			query:     "page=0",
			wantError: true,
		},
		{
			name:      "non-numeric page rejected",
			query:     "page=two",
			wantError: true,
		},
		{
			name:      "corrupted after cursor rejected",
			query:     "after=zzzz-not-a-cursor",
			wantError: true,
		},
		{
			name:      "corrupted before cursor rejected",
			query:     "before=zzzz-not-a-cursor",
			wantError: true,
		},
		{
			name:      "combined after and before rejected",
			query:     "after=" + url.QueryEscape(cursor) + "&before=" + url.QueryEscape(cursor),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := pagination.ParseRequest(newListRequest(t, tt.query), config, nil)
			if tt.wantError {
				if err == nil {
					t.Fatalf("ParseRequest(%q) expected error, got %+v", tt.query, req)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequest(%q) err=%v", tt.query, err)
			}
			if req.Mode() != tt.wantMode {
				t.Errorf("Mode = %v, want %v", req.Mode(), tt.wantMode)
			}
			if req.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", req.Limit, tt.wantLimit)
			}
			if req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", req.Page, tt.wantPage)
			}
		})
	}
}

// A request carrying both page and a valid cursor must behave identically to
// one carrying only the page number: cursors discarded, not errored.
func TestParseRequest_PagePrecedence(t *testing.T) {
	t.Parallel()

	config := pagination.DefaultConfig()
	cursor := pagination.EncodeCursor(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 9)

	withBoth, err := pagination.ParseRequest(
		newListRequest(t, "page=2&limit=5&after="+url.QueryEscape(cursor)), config, nil)
	if err != nil {
		t.Fatalf("ParseRequest err=%v", err)
	}
	pageOnly, err := pagination.ParseRequest(newListRequest(t, "page=2&limit=5"), config, nil)
	if err != nil {
		t.Fatalf("ParseRequest err=%v", err)
	}

	if withBoth.Mode() != pageOnly.Mode() || withBoth.Offset() != pageOnly.Offset() {
		t.Fatalf("page+cursor request differs from page-only: %+v vs %+v", withBoth, pageOnly)
	}
	if withBoth.After != nil || withBoth.Before != nil {
		t.Fatal("cursors were not discarded")
	}
}

// A corrupted cursor must fail with the cursor error class, not fall back to
// the first page.
func TestParseRequest_InvalidCursorNamesField(t *testing.T) {
	t.Parallel()

	_, err := pagination.ParseRequest(newListRequest(t, "after=tampered"), pagination.DefaultConfig(), nil)
	if err == nil {
		t.Fatal("expected error for tampered cursor")
	}
	if !strings.Contains(err.Error(), "after") {
		t.Errorf("error %q does not name the offending field", err)
	}
}
