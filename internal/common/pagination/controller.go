package pagination

import (
	"errors"
	"fmt"
)

// Action tags the user action that produced the current controller state.
type Action string

const (
	ActionInit     Action = "init"
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
	ActionJump     Action = "jump"
	ActionSearch   Action = "search"
	ActionLimit    Action = "limit"
)

// ErrNoSuchPage is returned when a navigation action is not available from
// the current state (no next page, no previous page).
var ErrNoSuchPage = errors.New("no such page")

// Controller mirrors the server-side pager's state machine on the consumer
// side, so that every user action reconstructs exactly the request the server
// expects. The data-export walker and any CLI consumer drive this type.
//
// Invariant: a filter-changing action (search term, limit) fully resets cursor
// state before the next fetch, so a stale cursor from a different filter can
// never be issued.
type Controller struct {
	currentPage     int
	limit           int
	startCursor     *string
	endCursor       *string
	hasNextPage     bool
	hasPreviousPage bool
	searchTerm      string
	offsetMode      bool
	lastAction      Action

	totalCount       int64
	totalCountCached bool
}

// NewController creates a controller positioned before the first fetch.
func NewController(limit int) *Controller {
	return &Controller{
		currentPage: 1,
		limit:       limit,
		lastAction:  ActionInit,
	}
}

// FirstPage returns the request for the initial fetch (no cursor, page 1).
func (c *Controller) FirstPage() Request {
	req := Request{Limit: c.limit, SearchTerm: c.searchTerm}
	req.Resolve()
	return req
}

// NextPage advances to the following page. Requires HasNextPage.
func (c *Controller) NextPage() (Request, error) {
	if !c.hasNextPage {
		return Request{}, fmt.Errorf("next page: %w", ErrNoSuchPage)
	}
	c.currentPage++
	c.lastAction = ActionNext
	c.offsetMode = false

	req := Request{Limit: c.limit, SearchTerm: c.searchTerm}
	if c.endCursor != nil {
		cursor, err := DecodeCursor(*c.endCursor)
		if err != nil {
			return Request{}, fmt.Errorf("next page: %w", err)
		}
		req.After = &cursor
	}
	req.Resolve()
	return req, nil
}

// PreviousPage steps back one page. Requires HasPreviousPage.
func (c *Controller) PreviousPage() (Request, error) {
	if !c.hasPreviousPage {
		return Request{}, fmt.Errorf("previous page: %w", ErrNoSuchPage)
	}
	if c.currentPage > 1 {
		c.currentPage--
	}
	c.lastAction = ActionPrevious
	c.offsetMode = false

	req := Request{Limit: c.limit, SearchTerm: c.searchTerm}
	if c.startCursor != nil {
		cursor, err := DecodeCursor(*c.startCursor)
		if err != nil {
			return Request{}, fmt.Errorf("previous page: %w", err)
		}
		req.Before = &cursor
	}
	req.Resolve()
	return req, nil
}

// GoToPage jumps to an arbitrary page number, switching to offset mode.
// The controller stays in offset mode until a cursor-producing action
// (next/previous from a fetched page) resets it.
func (c *Controller) GoToPage(page int) (Request, error) {
	if page < 1 {
		return Request{}, fmt.Errorf("go to page: page must be a positive integer")
	}
	c.currentPage = page
	c.offsetMode = true
	c.startCursor, c.endCursor = nil, nil
	c.lastAction = ActionJump

	req := Request{Limit: c.limit, Page: page, SearchTerm: c.searchTerm}
	req.Resolve()
	return req, nil
}

// SetSearchTerm changes the search filter and resets pagination to page 1.
// Cursors and the cached total count are cleared: they belong to the old
// filter and must never leak into the next fetch.
func (c *Controller) SetSearchTerm(term string) Request {
	c.searchTerm = term
	c.reset(ActionSearch)

	req := Request{Limit: c.limit, SearchTerm: term}
	req.Resolve()
	return req
}

// SetLimit changes the page size and resets pagination to page 1.
func (c *Controller) SetLimit(limit int) (Request, error) {
	if limit < 1 {
		return Request{}, fmt.Errorf("set limit: limit must be a positive integer")
	}
	c.limit = limit
	c.reset(ActionLimit)

	req := Request{Limit: limit, SearchTerm: c.searchTerm}
	req.Resolve()
	return req, nil
}

// Apply records the page-info envelope of a completed fetch, making the
// controller's cursors and flags current for the next action.
func (c *Controller) Apply(info PageInfo) {
	c.startCursor = info.StartCursor
	c.endCursor = info.EndCursor
	c.hasNextPage = info.HasNextPage
	c.hasPreviousPage = info.HasPreviousPage
	if info.CurrentPage > 0 {
		c.currentPage = info.CurrentPage
	}
	c.totalCount = info.TotalCount
	c.totalCountCached = true
}

func (c *Controller) reset(action Action) {
	c.currentPage = 1
	c.startCursor, c.endCursor = nil, nil
	c.hasNextPage, c.hasPreviousPage = false, false
	c.offsetMode = false
	c.totalCountCached = false
	c.totalCount = 0
	c.lastAction = action
}

// CurrentPage returns the 1-based page the controller is positioned on.
func (c *Controller) CurrentPage() int { return c.currentPage }

// Limit returns the current page size.
func (c *Controller) Limit() int { return c.limit }

// SearchTerm returns the active search filter.
func (c *Controller) SearchTerm() string { return c.searchTerm }

// HasNextPage reports whether a next page is known to exist.
func (c *Controller) HasNextPage() bool { return c.hasNextPage }

// HasPreviousPage reports whether a previous page is known to exist.
func (c *Controller) HasPreviousPage() bool { return c.hasPreviousPage }

// OffsetMode reports whether the controller is navigating by page number.
func (c *Controller) OffsetMode() bool { return c.offsetMode }

// LastAction returns the action tag of the most recent transition.
func (c *Controller) LastAction() Action { return c.lastAction }

// CachedTotal returns the total count recorded from the last fetch, if any.
// The cache survives cursor navigation and is invalidated by filter changes.
func (c *Controller) CachedTotal() (int64, bool) {
	return c.totalCount, c.totalCountCached
}
