package table

import (
	"fmt"
	"slices"
	"strings"
)

// Filter returns a new table holding the rows of t whose value in column
// contains fragment, ignoring case. Row order is preserved and t is left
// untouched.
func Filter(t *Table, column, fragment string) (*Table, error) {
	colIndex := t.ColumnIndex(column)
	if colIndex < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if fragment == "" {
		return nil, ErrEmptyFragment
	}

	needle := strings.ToLower(fragment)
	filtered := &Table{
		Columns: slices.Clone(t.Columns),
		Rows:    make([][]string, 0),
	}
	for _, row := range t.Rows {
		if strings.Contains(strings.ToLower(row[colIndex]), needle) {
			filtered.Rows = append(filtered.Rows, slices.Clone(row))
		}
	}

	return filtered, nil
}
