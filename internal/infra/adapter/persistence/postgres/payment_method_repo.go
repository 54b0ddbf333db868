package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/infra/db"
	"spa-backoffice/internal/repository"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

type PaymentMethodRepo struct {
	pools db.PoolProvider
}

func NewPaymentMethodRepo(pools db.PoolProvider) repository.PaymentMethodRepository {
	return &PaymentMethodRepo{pools: pools}
}

var paymentMethodPageSpec = pageSpec{
	table:   "payment_methods pm",
	alias:   "pm",
	columns: "pm.id, pm.payment_method_name, pm.is_enabled, pm.is_revenue, pm.show_on_payment_page, pm.created_at, pm.updated_at",
	searchColumns: []string{
		"pm.payment_method_name",
	},
}

func scanPaymentMethod(rows *sql.Rows) (*entity.PaymentMethod, error) {
	var pm entity.PaymentMethod
	if err := rows.Scan(&pm.ID, &pm.Name, &pm.IsEnabled, &pm.IsRevenue,
		&pm.ShowOnPaymentPage, &pm.CreatedAt, &pm.UpdatedAt); err != nil {
		return nil, err
	}
	return &pm, nil
}

func (repo *PaymentMethodRepo) ListPaginated(ctx context.Context, req pagination.Request) ([]*entity.PaymentMethod, pagination.PageInfo, error) {
	return paginate(ctx, repo.pools.Active(), paymentMethodPageSpec, req, repository.DateRange{}, scanPaymentMethod,
		func(pm *entity.PaymentMethod) pagination.Cursor {
			return pagination.Cursor{CreatedAt: pm.CreatedAt, ID: pm.ID}
		})
}

func (repo *PaymentMethodRepo) ListEnabled(ctx context.Context) ([]*entity.PaymentMethod, error) {
	const query = `
SELECT pm.id, pm.payment_method_name, pm.is_enabled, pm.is_revenue, pm.show_on_payment_page, pm.created_at, pm.updated_at
FROM payment_methods pm
WHERE pm.is_enabled = TRUE
ORDER BY pm.id ASC`
	rows, err := repo.pools.Active().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListEnabled: %w", err)
	}
	defer func() { _ = rows.Close() }()

	methods := make([]*entity.PaymentMethod, 0, 20)
	for rows.Next() {
		method, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("ListEnabled: Scan: %w", err)
		}
		methods = append(methods, method)
	}
	return methods, rows.Err()
}

func (repo *PaymentMethodRepo) Get(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	const query = `
SELECT pm.id, pm.payment_method_name, pm.is_enabled, pm.is_revenue, pm.show_on_payment_page, pm.created_at, pm.updated_at
FROM payment_methods pm
WHERE pm.id = $1`
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
	method, err := scanPaymentMethod(rows)
	if err != nil {
		return nil, fmt.Errorf("Get: Scan: %w", err)
	}
	return method, rows.Err()
}

// Create inserts a payment method. A duplicate name (case-insensitive unique
// constraint) is mapped to entity.ErrConflict; all other errors pass through
// so the caller can map them itself.
func (repo *PaymentMethodRepo) Create(ctx context.Context, method *entity.PaymentMethod) error {
	const query = `
INSERT INTO payment_methods (payment_method_name, is_enabled, is_revenue, show_on_payment_page)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`
	err := repo.pools.Active().QueryRowContext(ctx, query,
		method.Name, method.IsEnabled, method.IsRevenue, method.ShowOnPaymentPage,
	).Scan(&method.ID, &method.CreatedAt, &method.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", mapConflict(err, "payment method name already exists"))
	}
	return nil
}

func (repo *PaymentMethodRepo) Update(ctx context.Context, method *entity.PaymentMethod) error {
	const query = `
UPDATE payment_methods
SET payment_method_name = $1, is_enabled = $2, is_revenue = $3,
    show_on_payment_page = $4, updated_at = now()
WHERE id = $5`
	result, err := repo.pools.Active().ExecContext(ctx, query,
		method.Name, method.IsEnabled, method.IsRevenue, method.ShowOnPaymentPage, method.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", mapConflict(err, "payment method name already exists"))
	}
	return requireRowAffected(result, "Update")
}

func (repo *PaymentMethodRepo) Delete(ctx context.Context, id int64) error {
	result, err := repo.pools.Active().ExecContext(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		// FK violations mean the method is referenced by transactions.
		return fmt.Errorf("Delete: %w", err)
	}
	return requireRowAffected(result, "Delete")
}

// mapConflict converts a unique-violation driver error into the domain
// conflict sentinel with a human-readable message.
func mapConflict(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", msg, entity.ErrConflict)
	}
	return err
}
