package carepackage

import (
	"context"
	"errors"
	"fmt"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/repository"
)

// ServiceLineInput is one service inside a package being created.
type ServiceLineInput struct {
	ServiceName string
	Quantity    int
	Price       float64
	Discount    float64
}

// CreateInput represents the input parameters for creating a care package.
type CreateInput struct {
	Name           string
	Remarks        string
	Price          float64
	IsCustomizable bool
	Services       []ServiceLineInput
}

// UpdateInput represents the input parameters for updating an existing
// care package. Fields with nil values will not be updated.
type UpdateInput struct {
	ID             int64
	Name           *string
	Remarks        *string
	Price          *float64
	IsCustomizable *bool
	Status         *string
}

// Detail is a care package together with its service lines.
type Detail struct {
	Package  *entity.CarePackage
	Services []*entity.CarePackageService
}

// Service provides care package management use cases.
type Service struct {
	Repo repository.CarePackageRepository
}

// List retrieves one page of care packages under the session date range.
func (s *Service) List(ctx context.Context, req pagination.Request, window repository.DateRange) ([]*entity.CarePackage, pagination.PageInfo, error) {
	packages, info, err := s.Repo.ListPaginated(ctx, req, window)
	if err != nil {
		return nil, pagination.PageInfo{}, fmt.Errorf("list care packages: %w", err)
	}
	return packages, info, nil
}

// ListEnabled returns the packages currently offered for sale.
func (s *Service) ListEnabled(ctx context.Context) ([]*entity.CarePackage, error) {
	packages, err := s.Repo.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enabled care packages: %w", err)
	}
	return packages, nil
}

// Get retrieves a care package with its service lines.
// Returns ErrPackageNotFound if the package does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	if id <= 0 {
		return nil, ErrInvalidPackageID
	}
	pkg, err := s.Repo.Get(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get care package: %w", err)
	}
	services, err := s.Repo.GetServices(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get care package services: %w", err)
	}
	return &Detail{Package: pkg, Services: services}, nil
}

// Create validates the input and stores the package with its service lines
// in one transaction. New packages start ENABLED.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Detail, error) {
	if err := entity.ValidateName("care_package_name", in.Name); err != nil {
		return nil, err
	}
	if err := entity.ValidateRemarks("care_package_remarks", in.Remarks); err != nil {
		return nil, err
	}
	if len(in.Services) == 0 {
		return nil, ErrNoServices
	}
	for _, line := range in.Services {
		if err := validateServiceLine(line); err != nil {
			return nil, err
		}
	}

	pkg := &entity.CarePackage{
		Name:           in.Name,
		Remarks:        in.Remarks,
		Price:          in.Price,
		IsCustomizable: in.IsCustomizable,
		Status:         entity.StatusEnabled,
	}
	services := make([]*entity.CarePackageService, len(in.Services))
	for i, line := range in.Services {
		services[i] = &entity.CarePackageService{
			ServiceName: line.ServiceName,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Discount:    line.Discount,
		}
	}
	if err := s.Repo.Create(ctx, pkg, services); err != nil {
		return nil, fmt.Errorf("create care package: %w", err)
	}
	return &Detail{Package: pkg, Services: services}, nil
}

// Update applies the non-nil fields of the input to an existing package.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.CarePackage, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidPackageID
	}
	pkg, err := s.Repo.Get(ctx, in.ID)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update care package: %w", err)
	}

	if in.Name != nil {
		if err := entity.ValidateName("care_package_name", *in.Name); err != nil {
			return nil, err
		}
		pkg.Name = *in.Name
	}
	if in.Remarks != nil {
		if err := entity.ValidateRemarks("care_package_remarks", *in.Remarks); err != nil {
			return nil, err
		}
		pkg.Remarks = *in.Remarks
	}
	if in.Price != nil {
		pkg.Price = *in.Price
	}
	if in.IsCustomizable != nil {
		pkg.IsCustomizable = *in.IsCustomizable
	}
	if in.Status != nil {
		if err := entity.ValidateStatus(*in.Status); err != nil {
			return nil, err
		}
		pkg.Status = *in.Status
	}

	if err := s.Repo.Update(ctx, pkg); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("update care package: %w", err)
	}
	return pkg, nil
}

// SetStatus flips a package between ENABLED and DISABLED.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) error {
	if id <= 0 {
		return ErrInvalidPackageID
	}
	if err := entity.ValidateStatus(status); err != nil {
		return err
	}
	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrPackageNotFound
		}
		return fmt.Errorf("set care package status: %w", err)
	}
	return nil
}

// Delete removes a care package and its service lines.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidPackageID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrPackageNotFound
		}
		return fmt.Errorf("delete care package: %w", err)
	}
	return nil
}

func validateServiceLine(line ServiceLineInput) error {
	if err := entity.ValidateName("service_name", line.ServiceName); err != nil {
		return err
	}
	if line.Quantity < 1 {
		return &entity.ValidationError{Field: "quantity", Message: "must be a positive integer"}
	}
	if line.Price < 0 {
		return &entity.ValidationError{Field: "price", Message: "cannot be negative"}
	}
	if line.Discount < 0 || line.Discount > 1 {
		return &entity.ValidationError{Field: "discount", Message: "must be between 0 and 1"}
	}
	return nil
}
