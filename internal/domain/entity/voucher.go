package entity

import "time"

// MemberVoucher represents a stored-value voucher held by a member.
type MemberVoucher struct {
	ID              int64
	MemberID        int64
	Name            string
	CurrentBalance  float64
	StartingBalance float64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
