// Package voucher provides read-side use cases for member vouchers.
// Voucher balances are written by the consumption flow, which lives outside
// this service; the back office only lists and inspects them.
package voucher

import (
	"context"
	"errors"
	"fmt"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/repository"
)

// Sentinel errors for voucher use case operations.
var (
	ErrVoucherNotFound = errors.New("voucher not found")
	ErrInvalidID       = errors.New("invalid voucher ID")
)

// Service provides voucher listing use cases.
type Service struct {
	Repo repository.VoucherRepository
}

// List retrieves one page of vouchers under the session date range.
func (s *Service) List(ctx context.Context, req pagination.Request, window repository.DateRange) ([]*entity.MemberVoucher, pagination.PageInfo, error) {
	vouchers, info, err := s.Repo.ListPaginated(ctx, req, window)
	if err != nil {
		return nil, pagination.PageInfo{}, fmt.Errorf("list vouchers: %w", err)
	}
	return vouchers, info, nil
}

// Get retrieves a single voucher by ID.
func (s *Service) Get(ctx context.Context, id int64) (*entity.MemberVoucher, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	voucher, err := s.Repo.Get(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrVoucherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get voucher: %w", err)
	}
	return voucher, nil
}

// ListByMember returns all vouchers held by one member, newest first.
func (s *Service) ListByMember(ctx context.Context, memberID int64) ([]*entity.MemberVoucher, error) {
	if memberID <= 0 {
		return nil, ErrInvalidID
	}
	vouchers, err := s.Repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list vouchers by member: %w", err)
	}
	return vouchers, nil
}
