package repository

import (
	"context"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
)

// MemberRepository persists members.
type MemberRepository interface {
	// ListPaginated retrieves one page of members ordered by (created_at, id),
	// honoring the pagination request's mode (offset or seek), the search term
	// (name/email/contact containment), and the session date range.
	ListPaginated(ctx context.Context, req pagination.Request, window DateRange) ([]*entity.Member, pagination.PageInfo, error)
	Get(ctx context.Context, id int64) (*entity.Member, error)
	Create(ctx context.Context, member *entity.Member) error
	Update(ctx context.Context, member *entity.Member) error
	Delete(ctx context.Context, id int64) error
}
