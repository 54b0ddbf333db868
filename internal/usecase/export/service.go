package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/repository"
)

// pageSize is the fetch size for exports. Larger than the interactive
// default because no human is waiting on a single page.
const pageSize = 500

// Service writes CSV exports of the paginated listings. Exports respect the
// caller's session date range, so "export what I see" holds.
type Service struct {
	Members      repository.MemberRepository
	CarePackages repository.CarePackageRepository
}

// ExportMembers streams all members under the date range as CSV.
func (s *Service) ExportMembers(ctx context.Context, w io.Writer, window repository.DateRange) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "name", "email", "contact", "dob", "sex", "remarks", "address", "nric", "created_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export members: %w", err)
	}

	fetch := func(ctx context.Context, req pagination.Request) ([]*entity.Member, pagination.PageInfo, error) {
		return s.Members.ListPaginated(ctx, req, window)
	}
	err := Walk(ctx, pageSize, fetch, func(m *entity.Member) error {
		dob := ""
		if m.DOB != nil {
			dob = m.DOB.Format("2006-01-02")
		}
		return cw.Write([]string{
			strconv.FormatInt(m.ID, 10),
			m.Name, m.Email, m.Contact, dob, m.Sex,
			m.Remarks, m.Address, m.NRIC,
			m.CreatedAt.Format(time.RFC3339),
		})
	})
	if err != nil {
		return err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export members: %w", err)
	}
	return nil
}

// ExportCarePackages streams all care packages under the date range as CSV.
func (s *Service) ExportCarePackages(ctx context.Context, w io.Writer, window repository.DateRange) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "name", "remarks", "price", "is_customizable", "status", "created_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export care packages: %w", err)
	}

	fetch := func(ctx context.Context, req pagination.Request) ([]*entity.CarePackage, pagination.PageInfo, error) {
		return s.CarePackages.ListPaginated(ctx, req, window)
	}
	err := Walk(ctx, pageSize, fetch, func(pkg *entity.CarePackage) error {
		return cw.Write([]string{
			strconv.FormatInt(pkg.ID, 10),
			pkg.Name, pkg.Remarks,
			strconv.FormatFloat(pkg.Price, 'f', 2, 64),
			strconv.FormatBool(pkg.IsCustomizable),
			pkg.Status,
			pkg.CreatedAt.Format(time.RFC3339),
		})
	})
	if err != nil {
		return err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export care packages: %w", err)
	}
	return nil
}
