// Package entity defines the core domain entities and validation logic for the
// back-office: members, care packages, vouchers, payment methods, and the
// persisted simulation state, along with their validation rules and
// domain-specific errors.
package entity

import "time"

// Member represents a registered spa/clinic member.
type Member struct {
	ID        int64
	Name      string
	Email     string
	Contact   string
	DOB       *time.Time
	Sex       string
	Remarks   string
	Address   string
	NRIC      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
