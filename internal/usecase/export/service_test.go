package export_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/repository"
	"spa-backoffice/internal/usecase/export"
)

// pagedFetcher serves a fixed ordered dataset the way the server-side pager
// does: first page from the top, seek pages strictly after the cursor, one
// probe row past the limit.
func pagedFetcher(rows []int64) export.Fetcher[int64] {
	at := func(id int64) pagination.Cursor {
		return pagination.Cursor{CreatedAt: time.Unix(id, 0).UTC(), ID: id}
	}
	return func(_ context.Context, req pagination.Request) ([]int64, pagination.PageInfo, error) {
		start := 0
		if req.Mode() == pagination.ModeSeekAfter {
			for start < len(rows) && rows[start] <= req.After.ID {
				start++
			}
		}
		fetched := rows[start:min(start+req.FetchLimit(), len(rows))]
		page := fetched[:min(req.Limit, len(fetched))]

		var startCursor, endCursor *string
		if len(page) > 0 {
			s := at(page[0]).Encode()
			e := at(page[len(page)-1]).Encode()
			startCursor, endCursor = &s, &e
		}
		info := pagination.BuildPageInfo(req, int64(len(rows)), len(fetched), len(page), startCursor, endCursor)
		return page, info, nil
	}
}

func TestWalk_VisitsEveryRowOnce(t *testing.T) {
	rows := []int64{1, 2, 3, 4, 5, 6, 7}

	var visited []int64
	err := export.Walk(context.Background(), 3, pagedFetcher(rows), func(id int64) error {
		visited = append(visited, id)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(visited) != len(rows) {
		t.Fatalf("visited %d rows, want %d", len(visited), len(rows))
	}
	for i, id := range visited {
		if id != rows[i] {
			t.Fatalf("visited = %v, want dataset order %v", visited, rows)
		}
	}
}

func TestWalk_EmptyDataset(t *testing.T) {
	calls := 0
	err := export.Walk(context.Background(), 3, func(_ context.Context, req pagination.Request) ([]int64, pagination.PageInfo, error) {
		calls++
		return nil, pagination.BuildPageInfo(req, 0, 0, 0, nil, nil), nil
	}, func(int64) error {
		t.Fatal("visit must not run on an empty dataset")
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want exactly one fetch", calls)
	}
}

func TestWalk_VisitErrorStops(t *testing.T) {
	boom := errors.New("disk full")
	err := export.Walk(context.Background(), 3, pagedFetcher([]int64{1, 2, 3}), func(id int64) error {
		if id == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Walk = %v, want the visit error", err)
	}
}

// memberPager adapts pagedFetcher to the MemberRepository interface for the
// CSV test. Only ListPaginated is exercised.
type memberPager struct {
	repository.MemberRepository
	members []*entity.Member
}

func (m *memberPager) ListPaginated(ctx context.Context, req pagination.Request, _ repository.DateRange) ([]*entity.Member, pagination.PageInfo, error) {
	var ids []int64
	byID := map[int64]*entity.Member{}
	for _, member := range m.members {
		ids = append(ids, member.ID)
		byID[member.ID] = member
	}
	page, info, err := pagedFetcher(ids)(ctx, req)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}
	out := make([]*entity.Member, len(page))
	for i, id := range page {
		out[i] = byID[id]
	}
	return out, info, nil
}

func TestExportMembers_CSV(t *testing.T) {
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &memberPager{members: []*entity.Member{
		{ID: 1, Name: "Jamie Tan", Email: "jamie@example.com", CreatedAt: created},
		{ID: 2, Name: `Lee, "Sam"`, Contact: "91234567", CreatedAt: created},
	}}
	svc := &export.Service{Members: repo}

	var buf strings.Builder
	if err := svc.ExportMembers(context.Background(), &buf, repository.DateRange{}); err != nil {
		t.Fatalf("ExportMembers: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus 2 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "id,name,email") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "jamie@example.com") {
		t.Fatalf("row 1 = %q", lines[1])
	}
	// csv quoting of embedded quotes and commas
	if !strings.Contains(lines[2], `"Lee, ""Sam"""`) {
		t.Fatalf("row 2 = %q, want quoted name", lines[2])
	}
}
