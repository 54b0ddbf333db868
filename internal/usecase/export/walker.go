// Package export streams full listings out of the paginated repositories.
// It drives the pagination controller exactly the way an interactive client
// does, so an export sees the same ordering and filtering as the screens.
package export

import (
	"context"
	"fmt"

	"spa-backoffice/internal/common/pagination"
)

// Fetcher returns one page for a resolved pagination request.
type Fetcher[T any] func(ctx context.Context, req pagination.Request) ([]T, pagination.PageInfo, error)

// Walk visits every row of a listing in display order, first page through
// last. Each fetched envelope is applied to the controller before asking it
// for the next request, so cursor state always matches the server's.
func Walk[T any](ctx context.Context, limit int, fetch Fetcher[T], visit func(T) error) error {
	ctrl := pagination.NewController(limit)
	req := ctrl.FirstPage()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows, info, err := fetch(ctx, req)
		if err != nil {
			return fmt.Errorf("export: fetch page %d: %w", ctrl.CurrentPage(), err)
		}
		for _, row := range rows {
			if err := visit(row); err != nil {
				return err
			}
		}

		ctrl.Apply(info)
		if !ctrl.HasNextPage() {
			return nil
		}
		req, err = ctrl.NextPage()
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
}
