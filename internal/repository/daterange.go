package repository

import "time"

// DateRange is the per-session reporting window applied as an implicit filter
// to list queries, matched against each row's created_at.
//
// Either side may be nil, which means unbounded on that side. Consumers must
// treat an absent bound as "no filter", never as "filter to epoch": the query
// with only an end bound returns all rows up to that bound.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Unbounded reports whether no bound is set on either side.
func (r DateRange) Unbounded() bool {
	return r.Start == nil && r.End == nil
}
