// Package carepackage provides use cases for managing care packages, the
// sellable service bundles of the back office.
package carepackage

import "errors"

// Sentinel errors for care package use case operations.
var (
	// ErrPackageNotFound indicates that the requested care package was not found.
	ErrPackageNotFound = errors.New("care package not found")

	// ErrInvalidPackageID indicates that the provided care package ID is invalid.
	ErrInvalidPackageID = errors.New("invalid care package ID")

	// ErrNoServices indicates a create attempt with no service lines.
	// A care package always bundles at least one service.
	ErrNoServices = errors.New("care package must contain at least one service")
)
