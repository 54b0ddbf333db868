package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/infra/db"
	"spa-backoffice/internal/repository"
)

type VoucherRepo struct {
	pools db.PoolProvider
}

func NewVoucherRepo(pools db.PoolProvider) repository.VoucherRepository {
	return &VoucherRepo{pools: pools}
}

var voucherPageSpec = pageSpec{
	table:   "member_vouchers mv",
	alias:   "mv",
	columns: "mv.id, mv.member_id, mv.member_voucher_name, mv.current_balance, mv.starting_balance, mv.status, mv.created_at, mv.updated_at",
	searchColumns: []string{
		"mv.member_voucher_name",
	},
}

func scanVoucher(rows *sql.Rows) (*entity.MemberVoucher, error) {
	var v entity.MemberVoucher
	if err := rows.Scan(&v.ID, &v.MemberID, &v.Name, &v.CurrentBalance,
		&v.StartingBalance, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (repo *VoucherRepo) ListPaginated(ctx context.Context, req pagination.Request, window repository.DateRange) ([]*entity.MemberVoucher, pagination.PageInfo, error) {
	return paginate(ctx, repo.pools.Active(), voucherPageSpec, req, window, scanVoucher,
		func(v *entity.MemberVoucher) pagination.Cursor {
			return pagination.Cursor{CreatedAt: v.CreatedAt, ID: v.ID}
		})
}

func (repo *VoucherRepo) Get(ctx context.Context, id int64) (*entity.MemberVoucher, error) {
	const query = `
SELECT mv.id, mv.member_id, mv.member_voucher_name, mv.current_balance, mv.starting_balance, mv.status, mv.created_at, mv.updated_at
FROM member_vouchers mv
WHERE mv.id = $1`
	rows, err := repo.pools.Active().QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("Get: %w", err)
		}
		return nil, entity.ErrNotFound
	}
	voucher, err := scanVoucher(rows)
	if err != nil {
		return nil, fmt.Errorf("Get: Scan: %w", err)
	}
	return voucher, rows.Err()
}

func (repo *VoucherRepo) ListByMember(ctx context.Context, memberID int64) ([]*entity.MemberVoucher, error) {
	const query = `
SELECT mv.id, mv.member_id, mv.member_voucher_name, mv.current_balance, mv.starting_balance, mv.status, mv.created_at, mv.updated_at
FROM member_vouchers mv
WHERE mv.member_id = $1
ORDER BY mv.created_at DESC, mv.id DESC`
	rows, err := repo.pools.Active().QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("ListByMember: %w", err)
	}
	defer func() { _ = rows.Close() }()

	vouchers := make([]*entity.MemberVoucher, 0, 10)
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByMember: Scan: %w", err)
		}
		vouchers = append(vouchers, voucher)
	}
	return vouchers, rows.Err()
}
