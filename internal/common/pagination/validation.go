package pagination

import "fmt"

// Validate validates a pagination request against the configuration.
// Returns an error naming the offending field if:
//   - limit is less than 1 or greater than config.MaxLimit
//   - page is negative (zero means cursor navigation)
//   - both after and before cursors are present
//
// ParseRequest runs every parsed request through Validate; callers that
// build a Request by hand should do the same.
func (r Request) Validate(config Config) error {
	if r.Limit < 1 || r.Limit > config.MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d", config.MaxLimit)
	}
	if r.Page < 0 {
		return fmt.Errorf("page must be a positive integer")
	}
	if r.After != nil && r.Before != nil {
		return fmt.Errorf("after and before cursors cannot be combined")
	}
	return nil
}

// WithDefaults applies default values from config to the request.
//
// Rules:
//   - If limit <= 0, set to config.DefaultLimit
//   - If limit > config.MaxLimit, cap to config.MaxLimit
func (r Request) WithDefaults(config Config) Request {
	if r.Limit <= 0 {
		r.Limit = config.DefaultLimit
	}
	if r.Limit > config.MaxLimit {
		r.Limit = config.MaxLimit
	}
	return r
}
