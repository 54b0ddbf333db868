package repository

import (
	"context"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
)

// VoucherRepository persists member vouchers.
type VoucherRepository interface {
	// ListPaginated retrieves one page of member vouchers ordered by
	// (created_at, id), honoring the pagination mode, the search term
	// (voucher name containment), and the session date range.
	ListPaginated(ctx context.Context, req pagination.Request, window DateRange) ([]*entity.MemberVoucher, pagination.PageInfo, error)
	Get(ctx context.Context, id int64) (*entity.MemberVoucher, error)
	// ListByMember returns all vouchers held by one member, newest first.
	ListByMember(ctx context.Context, memberID int64) ([]*entity.MemberVoucher, error)
}
