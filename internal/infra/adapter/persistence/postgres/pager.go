// Package postgres implements the repository interfaces over the dual-pool
// PostgreSQL layer. Every paginated listing goes through the shared pager in
// this file, so offset and seek navigation behave identically across
// resources.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/infra/db"
	"spa-backoffice/internal/repository"
)

// pageSpec describes how one resource participates in the hybrid pager.
// The ordering key is always (created_at, id) on the aliased table.
type pageSpec struct {
	// table is the FROM clause, e.g. "care_packages cp".
	table string
	// alias qualifies the ordering key columns, e.g. "cp".
	alias string
	// columns is the SELECT list.
	columns string
	// searchColumns are matched with ILIKE against the search term.
	searchColumns []string
}

// buildFilter assembles the WHERE conditions shared by the count query and
// the data query: search containment and the session date range. An absent
// date bound adds no condition, so "no filter" can never collapse to
// "filter to epoch".
func (s pageSpec) buildFilter(req pagination.Request, window repository.DateRange) (conds []string, params []any) {
	n := 1
	if req.SearchTerm != "" && len(s.searchColumns) > 0 {
		matches := make([]string, len(s.searchColumns))
		for i, col := range s.searchColumns {
			matches[i] = fmt.Sprintf("%s ILIKE $%d", col, n)
		}
		conds = append(conds, "("+strings.Join(matches, " OR ")+")")
		params = append(params, "%"+req.SearchTerm+"%")
		n++
	}
	if window.Start != nil {
		conds = append(conds, fmt.Sprintf("%s.created_at >= $%d", s.alias, n))
		params = append(params, *window.Start)
		n++
	}
	if window.End != nil {
		conds = append(conds, fmt.Sprintf("%s.created_at <= $%d", s.alias, n))
		params = append(params, *window.End)
		n++
	}
	return conds, params
}

// paginate runs the hybrid pagination protocol for one resource:
//
//  1. count the filtered set (the client may cache the total per filter),
//  2. fetch one page, using OFFSET for page mode or a strict
//     (created_at, id) seek for cursor mode, with one probe row past the
//     limit,
//  3. trim the probe row, re-reverse backward pages to display order, and
//     derive cursors from the first and last returned rows.
func paginate[T any](
	ctx context.Context,
	q db.Querier,
	spec pageSpec,
	req pagination.Request,
	window repository.DateRange,
	scan func(*sql.Rows) (T, error),
	cursorOf func(T) pagination.Cursor,
) ([]T, pagination.PageInfo, error) {
	conds, params := spec.buildFilter(req, window)

	whereOf := func(c []string) string {
		if len(c) == 0 {
			return ""
		}
		return "WHERE " + strings.Join(c, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", spec.table, whereOf(conds))
	var totalCount int64
	if err := q.QueryRowContext(ctx, countQuery, params...).Scan(&totalCount); err != nil {
		return nil, pagination.PageInfo{}, fmt.Errorf("count %s: %w", spec.table, err)
	}

	orderBy := fmt.Sprintf("ORDER BY %s.created_at ASC, %s.id ASC", spec.alias, spec.alias)
	dataConds := conds
	dataParams := params
	n := len(params) + 1

	switch req.Mode() {
	case pagination.ModeSeekAfter:
		dataConds = append(dataConds, fmt.Sprintf(
			"(%[1]s.created_at > $%[2]d OR (%[1]s.created_at = $%[2]d AND %[1]s.id > $%[3]d))",
			spec.alias, n, n+1))
		dataParams = append(dataParams, req.After.CreatedAt, req.After.ID)
	case pagination.ModeSeekBefore:
		dataConds = append(dataConds, fmt.Sprintf(
			"(%[1]s.created_at < $%[2]d OR (%[1]s.created_at = $%[2]d AND %[1]s.id < $%[3]d))",
			spec.alias, n, n+1))
		dataParams = append(dataParams, req.Before.CreatedAt, req.Before.ID)
		orderBy = fmt.Sprintf("ORDER BY %s.created_at DESC, %s.id DESC", spec.alias, spec.alias)
	}

	var pageClause string
	if req.Mode() == pagination.ModeOffset {
		pageClause = fmt.Sprintf("OFFSET %d LIMIT %d", req.Offset(), req.FetchLimit())
	} else {
		pageClause = fmt.Sprintf("LIMIT %d", req.FetchLimit())
	}

	dataQuery := fmt.Sprintf("SELECT %s FROM %s %s %s %s",
		spec.columns, spec.table, whereOf(dataConds), orderBy, pageClause)

	rows, err := q.QueryContext(ctx, dataQuery, dataParams...)
	if err != nil {
		return nil, pagination.PageInfo{}, fmt.Errorf("list %s: %w", spec.table, err)
	}
	defer func() { _ = rows.Close() }()

	fetched := make([]T, 0, req.FetchLimit())
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, pagination.PageInfo{}, fmt.Errorf("list %s: scan: %w", spec.table, err)
		}
		fetched = append(fetched, item)
	}
	if err := rows.Err(); err != nil {
		return nil, pagination.PageInfo{}, fmt.Errorf("list %s: %w", spec.table, err)
	}

	fetchedCount := len(fetched)
	page := fetched
	if fetchedCount > req.Limit {
		page = page[:req.Limit]
	}
	if req.Mode() == pagination.ModeSeekBefore {
		// Backward scan returned newest-first; restore display order.
		for i, j := 0, len(page)-1; i < j; i, j = i+1, j-1 {
			page[i], page[j] = page[j], page[i]
		}
	}

	var startCursor, endCursor *string
	if len(page) > 0 {
		start := cursorOf(page[0]).Encode()
		end := cursorOf(page[len(page)-1]).Encode()
		startCursor, endCursor = &start, &end
	}

	info := pagination.BuildPageInfo(req, totalCount, fetchedCount, len(page), startCursor, endCursor)
	return page, info, nil
}
