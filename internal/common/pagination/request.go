package pagination

// Mode identifies how a single page request selects its rows.
// The mode is resolved exactly once, when the request is parsed; downstream
// code switches on it instead of re-checking individual fields.
type Mode int

const (
	// ModeFirstPage is the default: no page number and no cursor.
	ModeFirstPage Mode = iota
	// ModeOffset selects rows by OFFSET (page-1)*limit.
	ModeOffset
	// ModeSeekAfter selects rows strictly after the cursor's ordering key.
	ModeSeekAfter
	// ModeSeekBefore selects rows strictly before the cursor's ordering key,
	// scanning in reverse; results are re-reversed to display order.
	ModeSeekBefore
)

// Request is a fully resolved pagination request.
// Page and cursors are mutually exclusive navigation modes; when both are
// supplied the page number wins and the cursors are discarded (a documented
// precedence rule, not an error). Resolve applies that rule.
type Request struct {
	Limit      int
	Page       int // 0 when offset mode is not requested
	After      *Cursor
	Before     *Cursor
	SearchTerm string

	mode Mode
}

// Resolve applies the page-over-cursor precedence rule and fixes the request
// mode. It reports whether cursors were discarded in favor of the page number,
// so the caller can log the precedence decision.
func (r *Request) Resolve() (discardedCursors bool) {
	if r.Page > 0 {
		discardedCursors = r.After != nil || r.Before != nil
		r.After, r.Before = nil, nil
		r.mode = ModeOffset
		return discardedCursors
	}
	switch {
	case r.After != nil:
		r.mode = ModeSeekAfter
	case r.Before != nil:
		r.mode = ModeSeekBefore
	default:
		r.mode = ModeFirstPage
	}
	return false
}

// Mode returns the navigation mode fixed by Resolve.
func (r Request) Mode() Mode {
	return r.mode
}

// Offset returns the row offset for offset mode. Zero for all other modes.
func (r Request) Offset() int {
	if r.mode != ModeOffset {
		return 0
	}
	return CalculateOffset(r.Page, r.Limit)
}

// FetchLimit returns the number of rows to fetch from the database.
// Seek modes fetch one probe row past the page to detect a further page
// without a second round-trip; the probe row is never returned.
func (r Request) FetchLimit() int {
	if r.mode == ModeOffset {
		return r.Limit
	}
	return r.Limit + 1
}
