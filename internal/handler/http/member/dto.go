// Package member provides HTTP handlers for member endpoints: the paginated
// listing, detail, registration, update, and removal.
package member

import (
	"time"

	"spa-backoffice/internal/domain/entity"
)

// DTO represents the JSON structure for member data transfer.
type DTO struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Contact   string     `json:"contact,omitempty"`
	DOB       *time.Time `json:"dob,omitempty"`
	Sex       string     `json:"sex,omitempty"`
	Remarks   string     `json:"remarks,omitempty"`
	Address   string     `json:"address,omitempty"`
	NRIC      string     `json:"nric,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toDTO(m *entity.Member) DTO {
	return DTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Contact:   m.Contact,
		DOB:       m.DOB,
		Sex:       m.Sex,
		Remarks:   m.Remarks,
		Address:   m.Address,
		NRIC:      m.NRIC,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
