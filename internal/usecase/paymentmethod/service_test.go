package paymentmethod_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	pmUC "spa-backoffice/internal/usecase/paymentmethod"
)

// very-light PaymentMethodRepository stub with name uniqueness
type stubRepo struct {
	data   map[int64]*entity.PaymentMethod
	nextID int64
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.PaymentMethod{}, nextID: 1}
}

func (s *stubRepo) taken(name string, excludeID int64) bool {
	for _, m := range s.data {
		if m.ID != excludeID && strings.EqualFold(m.Name, name) {
			return true
		}
	}
	return false
}

func (s *stubRepo) ListPaginated(_ context.Context, req pagination.Request) ([]*entity.PaymentMethod, pagination.PageInfo, error) {
	var out []*entity.PaymentMethod
	for _, m := range s.data {
		out = append(out, m)
	}
	return out, pagination.PageInfo{TotalCount: int64(len(out)), Limit: req.Limit}, nil
}

func (s *stubRepo) ListEnabled(_ context.Context) ([]*entity.PaymentMethod, error) {
	var out []*entity.PaymentMethod
	for _, m := range s.data {
		if m.IsEnabled {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.PaymentMethod, error) {
	m, ok := s.data[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return m, nil
}

func (s *stubRepo) Create(_ context.Context, m *entity.PaymentMethod) error {
	if s.taken(m.Name, 0) {
		return entity.ErrConflict
	}
	m.ID = s.nextID
	s.nextID++
	s.data[m.ID] = m
	return nil
}

func (s *stubRepo) Update(_ context.Context, m *entity.PaymentMethod) error {
	if _, ok := s.data[m.ID]; !ok {
		return entity.ErrNotFound
	}
	if s.taken(m.Name, m.ID) {
		return entity.ErrConflict
	}
	s.data[m.ID] = m
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func TestService_Create_DuplicateName(t *testing.T) {
	repo := newStub()
	svc := &pmUC.Service{Repo: repo}
	ctx := context.Background()

	if _, err := svc.Create(ctx, pmUC.CreateInput{Name: "Cash", IsEnabled: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The unique constraint is case-insensitive.
	_, err := svc.Create(ctx, pmUC.CreateInput{Name: "CASH"})
	if !errors.Is(err, pmUC.ErrDuplicateName) {
		t.Fatalf("Create duplicate = %v, want ErrDuplicateName", err)
	}
}

func TestService_Update_RenameToTakenName(t *testing.T) {
	repo := newStub()
	svc := &pmUC.Service{Repo: repo}
	ctx := context.Background()

	cash, _ := svc.Create(ctx, pmUC.CreateInput{Name: "Cash"})
	_, err := svc.Create(ctx, pmUC.CreateInput{Name: "NETS"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "nets"
	if _, err := svc.Update(ctx, pmUC.UpdateInput{ID: cash.ID, Name: &name}); !errors.Is(err, pmUC.ErrDuplicateName) {
		t.Fatalf("Update to taken name = %v, want ErrDuplicateName", err)
	}
}

func TestService_Update_PartialFlags(t *testing.T) {
	repo := newStub()
	svc := &pmUC.Service{Repo: repo}
	ctx := context.Background()

	created, err := svc.Create(ctx, pmUC.CreateInput{Name: "PayNow", IsEnabled: true, IsRevenue: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	disabled := false
	updated, err := svc.Update(ctx, pmUC.UpdateInput{ID: created.ID, IsEnabled: &disabled})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IsEnabled {
		t.Fatal("IsEnabled must be false after update")
	}
	if !updated.IsRevenue || updated.Name != "PayNow" {
		t.Fatal("nil fields must remain untouched")
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := &pmUC.Service{Repo: newStub()}

	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, pmUC.ErrMethodNotFound) {
		t.Fatalf("Get missing = %v, want ErrMethodNotFound", err)
	}
	if _, err := svc.Get(context.Background(), -1); !errors.Is(err, pmUC.ErrInvalidID) {
		t.Fatalf("Get negative id = %v, want ErrInvalidID", err)
	}
}
