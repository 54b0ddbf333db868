package entity

import (
	"fmt"
	"strings"
	"time"
)

const (
	maxNameLength    = 200
	maxRemarksLength = 2000
)

// ValidateName checks a human-facing name field (member name, package name,
// payment method name). Returns a ValidationError naming the field.
func ValidateName(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	if len(trimmed) > maxNameLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d characters", maxNameLength),
		}
	}
	return nil
}

// ValidateRemarks bounds free-text remark fields.
func ValidateRemarks(field, value string) error {
	if len(value) > maxRemarksLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d characters", maxRemarksLength),
		}
	}
	return nil
}

// ValidateStatus checks a care package status value.
func ValidateStatus(value string) error {
	if value != StatusEnabled && value != StatusDisabled {
		return &ValidationError{Field: "status", Message: "must be ENABLED or DISABLED"}
	}
	return nil
}

// ValidateISO8601 validates a UTC timestamp string (RFC 3339 profile of
// ISO 8601). The field name is carried into the error so the caller can name
// which bound is malformed.
func ValidateISO8601(field, value string) error {
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return &ValidationError{Field: field, Message: "invalid date format, expected ISO8601"}
	}
	return nil
}
