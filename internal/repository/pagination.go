package repository

import "fmt"

// paginationClause renders the LIMIT/OFFSET suffix for a list query. A
// non-positive limit returns every matching row, which internal readers such
// as the recommendation engine and the analytics recompute depend on; page
// sizes are a concern of the HTTP layer.
func paginationClause(limit, offset int) string {
	var clause string
	if limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", offset)
	}
	return clause
}
