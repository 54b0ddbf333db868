package entity

import "time"

// Care package status values.
const (
	StatusEnabled  = "ENABLED"
	StatusDisabled = "DISABLED"
)

// CarePackage represents a sellable bundle of services.
type CarePackage struct {
	ID             int64
	Name           string
	Remarks        string
	Price          float64
	IsCustomizable bool
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CarePackageService is one service line inside a care package.
type CarePackageService struct {
	ID            int64
	CarePackageID int64
	ServiceName   string
	Quantity      int
	Price         float64
	Discount      float64
}
