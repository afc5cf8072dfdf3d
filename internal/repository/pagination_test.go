package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationClause(t *testing.T) {
	assert.Equal(t, " LIMIT 100 OFFSET 40", paginationClause(100, 40))
	assert.Equal(t, " LIMIT 25", paginationClause(25, 0))
	assert.Equal(t, " OFFSET 10", paginationClause(0, 10))
}

func TestPaginationClauseUnboundedByDefault(t *testing.T) {
	// Zero-value filters must scan every row so that whole-pool readers
	// (recommendations, auto-assign, analytics) never work on a truncated set.
	assert.Empty(t, paginationClause(0, 0))
	assert.Empty(t, paginationClause(-1, -1))
}
