package repository

import (
	"context"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
)

// PaymentMethodRepository persists payment methods.
// Create and Update surface entity.ErrConflict for a duplicate name.
type PaymentMethodRepository interface {
	// ListPaginated retrieves one page of payment methods. Payment methods
	// are a small offset-navigated listing ordered by id.
	ListPaginated(ctx context.Context, req pagination.Request) ([]*entity.PaymentMethod, pagination.PageInfo, error)
	// ListEnabled returns enabled methods for the payment page.
	ListEnabled(ctx context.Context) ([]*entity.PaymentMethod, error)
	Get(ctx context.Context, id int64) (*entity.PaymentMethod, error)
	Create(ctx context.Context, method *entity.PaymentMethod) error
	Update(ctx context.Context, method *entity.PaymentMethod) error
	Delete(ctx context.Context, id int64) error
}
