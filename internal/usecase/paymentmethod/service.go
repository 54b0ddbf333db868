// Package paymentmethod provides use cases for configuring payment methods.
// Payment method names are unique case-insensitively; a duplicate surfaces
// as ErrDuplicateName so the handler can answer 409.
package paymentmethod

import (
	"context"
	"errors"
	"fmt"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/repository"
)

// Sentinel errors for payment method use case operations.
var (
	ErrMethodNotFound = errors.New("payment method not found")
	ErrInvalidID      = errors.New("invalid payment method ID")

	// ErrDuplicateName indicates that a payment method with the same name
	// already exists.
	ErrDuplicateName = errors.New("payment method name already exists")
)

// CreateInput represents the input parameters for creating a payment method.
type CreateInput struct {
	Name              string
	IsEnabled         bool
	IsRevenue         bool
	ShowOnPaymentPage bool
}

// UpdateInput represents the input parameters for updating a payment method.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID                int64
	Name              *string
	IsEnabled         *bool
	IsRevenue         *bool
	ShowOnPaymentPage *bool
}

// Service provides payment method management use cases.
type Service struct {
	Repo repository.PaymentMethodRepository
}

// List retrieves one page of payment methods.
func (s *Service) List(ctx context.Context, req pagination.Request) ([]*entity.PaymentMethod, pagination.PageInfo, error) {
	methods, info, err := s.Repo.ListPaginated(ctx, req)
	if err != nil {
		return nil, pagination.PageInfo{}, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, info, nil
}

// ListEnabled returns the methods offered on the payment page.
func (s *Service) ListEnabled(ctx context.Context) ([]*entity.PaymentMethod, error) {
	methods, err := s.Repo.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enabled payment methods: %w", err)
	}
	return methods, nil
}

// Get retrieves a single payment method by ID.
func (s *Service) Get(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	method, err := s.Repo.Get(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrMethodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return method, nil
}

// Create validates the input and stores a new payment method.
// Returns ErrDuplicateName if the name is already taken.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.PaymentMethod, error) {
	if err := entity.ValidateName("payment_method_name", in.Name); err != nil {
		return nil, err
	}
	method := &entity.PaymentMethod{
		Name:              in.Name,
		IsEnabled:         in.IsEnabled,
		IsRevenue:         in.IsRevenue,
		ShowOnPaymentPage: in.ShowOnPaymentPage,
	}
	if err := s.Repo.Create(ctx, method); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create payment method: %w", err)
	}
	return method, nil
}

// Update applies the non-nil fields of the input to an existing method.
// Returns ErrDuplicateName if the new name is already taken.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.PaymentMethod, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidID
	}
	method, err := s.Repo.Get(ctx, in.ID)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrMethodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update payment method: %w", err)
	}

	if in.Name != nil {
		if err := entity.ValidateName("payment_method_name", *in.Name); err != nil {
			return nil, err
		}
		method.Name = *in.Name
	}
	if in.IsEnabled != nil {
		method.IsEnabled = *in.IsEnabled
	}
	if in.IsRevenue != nil {
		method.IsRevenue = *in.IsRevenue
	}
	if in.ShowOnPaymentPage != nil {
		method.ShowOnPaymentPage = *in.ShowOnPaymentPage
	}

	if err := s.Repo.Update(ctx, method); err != nil {
		switch {
		case errors.Is(err, entity.ErrConflict):
			return nil, ErrDuplicateName
		case errors.Is(err, entity.ErrNotFound):
			return nil, ErrMethodNotFound
		}
		return nil, fmt.Errorf("update payment method: %w", err)
	}
	return method, nil
}

// Delete removes a payment method. A method referenced by past transactions
// fails at the database layer and is surfaced as-is.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrMethodNotFound
		}
		return fmt.Errorf("delete payment method: %w", err)
	}
	return nil
}
