// Package session provides the cookie-backed server session used by the
// back office. Session state lives in the production database so it survives
// simulation-mode flips, and today it carries exactly one thing: the
// reporting date range applied as an implicit filter to list queries.
package session

import (
	"time"

	"spa-backoffice/internal/repository"
)

// State is the JSON document persisted per session.
type State struct {
	DateRange RangeState `json:"dateRange"`
}

// RangeState is the stored form of the reporting window. Either bound may be
// null independently; a null bound filters nothing on that side.
type RangeState struct {
	Start *time.Time `json:"startDate"`
	End   *time.Time `json:"endDate"`
}

// Window converts the stored range into the repository filter.
func (s *State) Window() repository.DateRange {
	if s == nil {
		return repository.DateRange{}
	}
	return repository.DateRange{Start: s.DateRange.Start, End: s.DateRange.End}
}
