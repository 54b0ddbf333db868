// Package carepackage provides HTTP handlers for care package endpoints.
package carepackage

import (
	"time"

	"spa-backoffice/internal/domain/entity"
	cpUC "spa-backoffice/internal/usecase/carepackage"
)

// DTO represents the JSON structure for care package data transfer.
type DTO struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Remarks        string    `json:"remarks,omitempty"`
	Price          float64   `json:"price"`
	IsCustomizable bool      `json:"isCustomizable"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ServiceDTO is one service line inside a package.
type ServiceDTO struct {
	ID          int64   `json:"id"`
	ServiceName string  `json:"serviceName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
}

// DetailDTO is a package together with its service lines.
type DetailDTO struct {
	DTO
	Services []ServiceDTO `json:"services"`
}

func toDTO(pkg *entity.CarePackage) DTO {
	return DTO{
		ID:             pkg.ID,
		Name:           pkg.Name,
		Remarks:        pkg.Remarks,
		Price:          pkg.Price,
		IsCustomizable: pkg.IsCustomizable,
		Status:         pkg.Status,
		CreatedAt:      pkg.CreatedAt,
		UpdatedAt:      pkg.UpdatedAt,
	}
}

func toDetailDTO(detail *cpUC.Detail) DetailDTO {
	services := make([]ServiceDTO, 0, len(detail.Services))
	for _, svc := range detail.Services {
		services = append(services, ServiceDTO{
			ID:          svc.ID,
			ServiceName: svc.ServiceName,
			Quantity:    svc.Quantity,
			Price:       svc.Price,
			Discount:    svc.Discount,
		})
	}
	return DetailDTO{DTO: toDTO(detail.Package), Services: services}
}
