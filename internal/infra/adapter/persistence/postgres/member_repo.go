package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/infra/db"
	"spa-backoffice/internal/repository"
)

type MemberRepo struct {
	pools db.PoolProvider
}

func NewMemberRepo(pools db.PoolProvider) repository.MemberRepository {
	return &MemberRepo{pools: pools}
}

var memberPageSpec = pageSpec{
	table:   "members m",
	alias:   "m",
	columns: "m.id, m.name, m.email, m.contact, m.dob, m.sex, m.remarks, m.address, m.nric, m.created_at, m.updated_at",
	searchColumns: []string{
		"m.name", "m.email", "m.contact",
	},
}

func scanMember(rows *sql.Rows) (*entity.Member, error) {
	var m entity.Member
	var email, contact, sex, remarks, address, nric sql.NullString
	var dob sql.NullTime
	if err := rows.Scan(&m.ID, &m.Name, &email, &contact, &dob, &sex,
		&remarks, &address, &nric, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Email = email.String
	m.Contact = contact.String
	m.Sex = sex.String
	m.Remarks = remarks.String
	m.Address = address.String
	m.NRIC = nric.String
	if dob.Valid {
		d := dob.Time
		m.DOB = &d
	}
	return &m, nil
}

func (repo *MemberRepo) ListPaginated(ctx context.Context, req pagination.Request, window repository.DateRange) ([]*entity.Member, pagination.PageInfo, error) {
	return paginate(ctx, repo.pools.Active(), memberPageSpec, req, window, scanMember,
		func(m *entity.Member) pagination.Cursor {
			return pagination.Cursor{CreatedAt: m.CreatedAt, ID: m.ID}
		})
}

func (repo *MemberRepo) Get(ctx context.Context, id int64) (*entity.Member, error) {
	const query = `
SELECT m.id, m.name, m.email, m.contact, m.dob, m.sex, m.remarks, m.address, m.nric, m.created_at, m.updated_at
FROM members m
WHERE m.id = $1`
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
	member, err := scanMember(rows)
	if err != nil {
		return nil, fmt.Errorf("Get: Scan: %w", err)
	}
	return member, rows.Err()
}

func (repo *MemberRepo) Create(ctx context.Context, member *entity.Member) error {
	const query = `
INSERT INTO members (name, email, contact, dob, sex, remarks, address, nric)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at`
	err := repo.pools.Active().QueryRowContext(ctx, query,
		member.Name, nullString(member.Email), nullString(member.Contact),
		nullTime(member.DOB), nullString(member.Sex), nullString(member.Remarks),
		nullString(member.Address), nullString(member.NRIC),
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *MemberRepo) Update(ctx context.Context, member *entity.Member) error {
	const query = `
UPDATE members
SET name = $1, email = $2, contact = $3, dob = $4, sex = $5,
    remarks = $6, address = $7, nric = $8, updated_at = now()
WHERE id = $9`
	result, err := repo.pools.Active().ExecContext(ctx, query,
		member.Name, nullString(member.Email), nullString(member.Contact),
		nullTime(member.DOB), nullString(member.Sex), nullString(member.Remarks),
		nullString(member.Address), nullString(member.NRIC), member.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return requireRowAffected(result, "Update")
}

func (repo *MemberRepo) Delete(ctx context.Context, id int64) error {
	result, err := repo.pools.Active().ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return requireRowAffected(result, "Delete")
}

// requireRowAffected maps a zero-row write to ErrNotFound.
func requireRowAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
