package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/domain/entity"
	"spa-backoffice/internal/repository"
)

// CreateInput represents the input parameters for registering a new member.
type CreateInput struct {
	Name    string
	Email   string
	Contact string
	DOB     *time.Time
	Sex     string
	Remarks string
	Address string
	NRIC    string
}

// UpdateInput represents the input parameters for updating an existing member.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID      int64
	Name    *string
	Email   *string
	Contact *string
	DOB     *time.Time
	Sex     *string
	Remarks *string
	Address *string
	NRIC    *string
}

// Service provides member management use cases.
type Service struct {
	Repo repository.MemberRepository
}

// List retrieves one page of members. The date range comes from the caller's
// session; the pagination request must already be resolved.
func (s *Service) List(ctx context.Context, req pagination.Request, window repository.DateRange) ([]*entity.Member, pagination.PageInfo, error) {
	members, info, err := s.Repo.ListPaginated(ctx, req, window)
	if err != nil {
		return nil, pagination.PageInfo{}, fmt.Errorf("list members: %w", err)
	}
	return members, info, nil
}

// Get retrieves a single member by ID.
// Returns ErrInvalidMemberID if the ID is not positive.
// Returns ErrMemberNotFound if the member does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Member, error) {
	if id <= 0 {
		return nil, ErrInvalidMemberID
	}
	member, err := s.Repo.Get(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

// Create validates the input and registers a new member.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Member, error) {
	if err := entity.ValidateName("name", in.Name); err != nil {
		return nil, err
	}
	if err := entity.ValidateRemarks("remarks", in.Remarks); err != nil {
		return nil, err
	}

	member := &entity.Member{
		Name:    in.Name,
		Email:   in.Email,
		Contact: in.Contact,
		DOB:     in.DOB,
		Sex:     in.Sex,
		Remarks: in.Remarks,
		Address: in.Address,
		NRIC:    in.NRIC,
	}
	if err := s.Repo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return member, nil
}

// Update applies the non-nil fields of the input to an existing member.
// Returns ErrMemberNotFound if the member does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Member, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidMemberID
	}
	member, err := s.Repo.Get(ctx, in.ID)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}

	if in.Name != nil {
		if err := entity.ValidateName("name", *in.Name); err != nil {
			return nil, err
		}
		member.Name = *in.Name
	}
	if in.Email != nil {
		member.Email = *in.Email
	}
	if in.Contact != nil {
		member.Contact = *in.Contact
	}
	if in.DOB != nil {
		member.DOB = in.DOB
	}
	if in.Sex != nil {
		member.Sex = *in.Sex
	}
	if in.Remarks != nil {
		if err := entity.ValidateRemarks("remarks", *in.Remarks); err != nil {
			return nil, err
		}
		member.Remarks = *in.Remarks
	}
	if in.Address != nil {
		member.Address = *in.Address
	}
	if in.NRIC != nil {
		member.NRIC = *in.NRIC
	}

	if err := s.Repo.Update(ctx, member); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("update member: %w", err)
	}
	return member, nil
}

// Delete removes a member.
// Returns ErrMemberNotFound if the member does not exist.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidMemberID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
