package entity

import "time"

// PaymentMethod represents a configured way of settling invoices.
// Names are unique case-insensitively; a duplicate surfaces as a conflict.
type PaymentMethod struct {
	ID                int64
	Name              string
	IsEnabled         bool
	IsRevenue         bool
	ShowOnPaymentPage bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
