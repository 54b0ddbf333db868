package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/infra/db"
	"spa-backoffice/internal/repository"
)

type CarePackageRepo struct {
	pools  db.PoolProvider
	logger *slog.Logger
}

func NewCarePackageRepo(pools db.PoolProvider, logger *slog.Logger) repository.CarePackageRepository {
	return &CarePackageRepo{pools: pools, logger: logger}
}

var carePackagePageSpec = pageSpec{
	table:   "care_packages cp",
	alias:   "cp",
	columns: "cp.id, cp.care_package_name, cp.care_package_remarks, cp.care_package_price, cp.is_customizable, cp.status, cp.created_at, cp.updated_at",
	searchColumns: []string{
		"cp.care_package_name", "cp.care_package_remarks",
	},
}

func scanCarePackage(rows *sql.Rows) (*entity.CarePackage, error) {
	var pkg entity.CarePackage
	var remarks sql.NullString
	if err := rows.Scan(&pkg.ID, &pkg.Name, &remarks, &pkg.Price,
		&pkg.IsCustomizable, &pkg.Status, &pkg.CreatedAt, &pkg.UpdatedAt); err != nil {
		return nil, err
	}
	pkg.Remarks = remarks.String
	return &pkg, nil
}

func (repo *CarePackageRepo) ListPaginated(ctx context.Context, req pagination.Request, window repository.DateRange) ([]*entity.CarePackage, pagination.PageInfo, error) {
	return paginate(ctx, repo.pools.Active(), carePackagePageSpec, req, window, scanCarePackage,
		func(pkg *entity.CarePackage) pagination.Cursor {
			return pagination.Cursor{CreatedAt: pkg.CreatedAt, ID: pkg.ID}
		})
}

func (repo *CarePackageRepo) ListEnabled(ctx context.Context) ([]*entity.CarePackage, error) {
	const query = `
SELECT cp.id, cp.care_package_name, cp.care_package_remarks, cp.care_package_price, cp.is_customizable, cp.status, cp.created_at, cp.updated_at
FROM care_packages cp
WHERE cp.status = 'ENABLED'
ORDER BY cp.created_at DESC`
	rows, err := repo.pools.Active().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListEnabled: %w", err)
	}
	defer func() { _ = rows.Close() }()

	packages := make([]*entity.CarePackage, 0, 50)
	for rows.Next() {
		pkg, err := scanCarePackage(rows)
		if err != nil {
			return nil, fmt.Errorf("ListEnabled: Scan: %w", err)
		}
		packages = append(packages, pkg)
	}
	return packages, rows.Err()
}

func (repo *CarePackageRepo) Get(ctx context.Context, id int64) (*entity.CarePackage, error) {
	const query = `
SELECT cp.id, cp.care_package_name, cp.care_package_remarks, cp.care_package_price, cp.is_customizable, cp.status, cp.created_at, cp.updated_at
FROM care_packages cp
WHERE cp.id = $1`
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
	pkg, err := scanCarePackage(rows)
	if err != nil {
		return nil, fmt.Errorf("Get: Scan: %w", err)
	}
	return pkg, rows.Err()
}

func (repo *CarePackageRepo) GetServices(ctx context.Context, packageID int64) ([]*entity.CarePackageService, error) {
	const query = `
SELECT id, care_package_id, service_name, quantity, price, discount
FROM care_package_item_details
WHERE care_package_id = $1
ORDER BY id`
	rows, err := repo.pools.Active().QueryContext(ctx, query, packageID)
	if err != nil {
		return nil, fmt.Errorf("GetServices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	services := make([]*entity.CarePackageService, 0, 8)
	for rows.Next() {
		var svc entity.CarePackageService
		if err := rows.Scan(&svc.ID, &svc.CarePackageID, &svc.ServiceName,
			&svc.Quantity, &svc.Price, &svc.Discount); err != nil {
			return nil, fmt.Errorf("GetServices: Scan: %w", err)
		}
		services = append(services, &svc)
	}
	return services, rows.Err()
}

// Create inserts the package row and its service lines in one transaction on
// the pool active at call time.
func (repo *CarePackageRepo) Create(ctx context.Context, pkg *entity.CarePackage, services []*entity.CarePackageService) error {
	return db.WithTransaction(ctx, repo.pools, repo.logger, func(tx *sql.Tx) error {
		const insertPkg = `
INSERT INTO care_packages (care_package_name, care_package_remarks, care_package_price, is_customizable, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`
		if err := tx.QueryRowContext(ctx, insertPkg,
			pkg.Name, nullString(pkg.Remarks), pkg.Price, pkg.IsCustomizable, pkg.Status,
		).Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt); err != nil {
			return fmt.Errorf("Create: %w", err)
		}

		const insertSvc = `
INSERT INTO care_package_item_details (care_package_id, service_name, quantity, price, discount)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
		for _, svc := range services {
			svc.CarePackageID = pkg.ID
			if err := tx.QueryRowContext(ctx, insertSvc,
				pkg.ID, svc.ServiceName, svc.Quantity, svc.Price, svc.Discount,
			).Scan(&svc.ID); err != nil {
				return fmt.Errorf("Create: service line: %w", err)
			}
		}
		return nil
	})
}

func (repo *CarePackageRepo) Update(ctx context.Context, pkg *entity.CarePackage) error {
	const query = `
UPDATE care_packages
SET care_package_name = $1, care_package_remarks = $2, care_package_price = $3,
    is_customizable = $4, status = $5, updated_at = now()
WHERE id = $6`
	result, err := repo.pools.Active().ExecContext(ctx, query,
		pkg.Name, nullString(pkg.Remarks), pkg.Price, pkg.IsCustomizable, pkg.Status, pkg.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return requireRowAffected(result, "Update")
}

func (repo *CarePackageRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := repo.pools.Active().ExecContext(ctx,
		`UPDATE care_packages SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("UpdateStatus: %w", err)
	}
	return requireRowAffected(result, "UpdateStatus")
}

func (repo *CarePackageRepo) Delete(ctx context.Context, id int64) error {
	result, err := repo.pools.Active().ExecContext(ctx, `DELETE FROM care_packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return requireRowAffected(result, "Delete")
}
