// Package member provides use cases for managing spa/clinic members.
// It implements business logic for creating, updating, deleting, and listing
// members, including validation and interaction with the member repository.
package member

import "errors"

// Sentinel errors for member use case operations.
var (
	// ErrMemberNotFound indicates that the requested member was not found.
	ErrMemberNotFound = errors.New("member not found")

	// ErrInvalidMemberID indicates that the provided member ID is invalid.
	// Member IDs must be positive integers.
	ErrInvalidMemberID = errors.New("invalid member ID")
)
