package repository

import (
	"fmt"
	"sort"
	"strings"
)

// Filter selects records by exact field match. Multiple entries are combined
// with AND; there are no range or pattern operators.
type Filter map[string]any

// Fields holds a partial set of column values for an update.
type Fields map[string]any

// setClause renders the fields as an UPDATE SET list with positional
// placeholders starting at argOffset+1. Keys are sorted and validated the
// same way whereClause validates filters.
func (f Fields) setClause(allowed map[string]struct{}, argOffset int) (string, []any, error) {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))

	for i, k := range keys {
		if _, ok := allowed[k]; !ok {
			return "", nil, fmt.Errorf("repository: unknown update column %q", k)
		}

		parts = append(parts, fmt.Sprintf("%s = $%d", k, argOffset+i+1))
		args = append(args, f[k])
	}

	return strings.Join(parts, ", "), args, nil
}

// whereClause renders the filter as a WHERE clause with positional
// placeholders starting at argOffset+1. Keys are sorted so the generated SQL
// is deterministic, and every key must name a known column of the entity.
func (f Filter) whereClause(allowed map[string]struct{}, argOffset int) (string, []any, error) {
	if len(f) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))

	for i, k := range keys {
		if _, ok := allowed[k]; !ok {
			return "", nil, fmt.Errorf("repository: unknown filter column %q", k)
		}

		parts = append(parts, fmt.Sprintf("%s = $%d", k, argOffset+i+1))
		args = append(args, f[k])
	}

	return " WHERE " + strings.Join(parts, " AND "), args, nil
}
