package member_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/handler/http/member"
	"spa-backoffice/internal/repository"
	memberUC "spa-backoffice/internal/usecase/member"
)

type stubMemberRepo struct {
	members []*entity.Member
	info    pagination.PageInfo
	listErr error

	member    *entity.Member
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	gotWindow repository.DateRange
	created   *entity.Member
	deletedID int64
}

func (s *stubMemberRepo) ListPaginated(_ context.Context, _ pagination.Request, window repository.DateRange) ([]*entity.Member, pagination.PageInfo, error) {
	s.gotWindow = window
	return s.members, s.info, s.listErr
}

func (s *stubMemberRepo) Get(_ context.Context, _ int64) (*entity.Member, error) {
	return s.member, s.getErr
}

func (s *stubMemberRepo) Create(_ context.Context, m *entity.Member) error {
	if s.createErr != nil {
		return s.createErr
	}
	m.ID = 101
	s.created = m
	return nil
}

func (s *stubMemberRepo) Update(_ context.Context, _ *entity.Member) error {
	return s.updateErr
}

func (s *stubMemberRepo) Delete(_ context.Context, id int64) error {
	s.deletedID = id
	return s.deleteErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func listHandler(stub *stubMemberRepo) member.ListHandler {
	return member.ListHandler{
		Svc:           &memberUC.Service{Repo: stub},
		PaginationCfg: pagination.DefaultConfig(),
		Logger:        discardLogger(),
	}
}

func TestListHandler_Success(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubMemberRepo{
		members: []*entity.Member{
			{ID: 1, Name: "Alice Tan", Email: "alice@example.com", CreatedAt: now, UpdatedAt: now},
			{ID: 2, Name: "Ben Lim", CreatedAt: now, UpdatedAt: now},
		},
		info: pagination.PageInfo{TotalCount: 2, Limit: 10},
	}

	rr := httptest.NewRecorder()
	listHandler(stub).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/members", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp pagination.Response[member.DTO]
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("data length = %d, want 2", len(resp.Data))
	}
	if resp.Data[0].Name != "Alice Tan" {
		t.Errorf("first member = %q", resp.Data[0].Name)
	}
	if resp.PageInfo.TotalCount != 2 {
		t.Errorf("totalCount = %d, want 2", resp.PageInfo.TotalCount)
	}
	if !stub.gotWindow.Unbounded() {
		t.Error("no session on the request must mean no date filter")
	}
}

func TestListHandler_InvalidLimit(t *testing.T) {
	rr := httptest.NewRecorder()
	listHandler(&stubMemberRepo{}).ServeHTTP(rr,
		httptest.NewRequest(http.MethodGet, "/members?limit=9999", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestListHandler_RepositoryError(t *testing.T) {
	stub := &stubMemberRepo{listErr: errors.New("connection refused")}

	rr := httptest.NewRecorder()
	listHandler(stub).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/members", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}
