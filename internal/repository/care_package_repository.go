package repository

import (
	"context"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
)

// CarePackageRepository persists care packages and their service lines.
type CarePackageRepository interface {
	// ListPaginated retrieves one page of care packages ordered by
	// (created_at, id), honoring the pagination mode, the search term
	// (name/remarks containment), and the session date range.
	ListPaginated(ctx context.Context, req pagination.Request, window DateRange) ([]*entity.CarePackage, pagination.PageInfo, error)
	// ListEnabled returns ENABLED packages for dropdowns, newest first.
	ListEnabled(ctx context.Context) ([]*entity.CarePackage, error)
	Get(ctx context.Context, id int64) (*entity.CarePackage, error)
	// GetServices returns the service lines of a package.
	GetServices(ctx context.Context, packageID int64) ([]*entity.CarePackageService, error)
	// Create inserts the package and its service lines in one transaction.
	Create(ctx context.Context, pkg *entity.CarePackage, services []*entity.CarePackageService) error
	Update(ctx context.Context, pkg *entity.CarePackage) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}
