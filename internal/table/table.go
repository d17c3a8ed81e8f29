// Package table holds the in-memory CSV data model and the operations that
// produce tables: reading, writing and filtering.
package table

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrFileNotReadable        = errors.New("file not readable")
	ErrFileNotWritable        = errors.New("file not writable")
	ErrParse                  = errors.New("malformed CSV")
	ErrUnknownColumn          = errors.New("unknown column")
	ErrEmptyFragment          = errors.New("empty filter text")
	ErrUnsupportedCompression = errors.New("unsupported compression")
)

// Table is an ordered list of named columns and the rows aligned to them.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New builds a table from a header and data rows. Short rows are padded with
// empty cells; rows longer than the header are rejected.
func New(columns []string, rows [][]string) (*Table, error) {
	t := &Table{
		Columns: slices.Clone(columns),
		Rows:    make([][]string, 0, len(rows)),
	}
	for i, row := range rows {
		aligned, err := align(row, len(columns))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrParse, i+1, err)
		}
		t.Rows = append(t.Rows, aligned)
	}
	return t, nil
}

func align(row []string, width int) ([]string, error) {
	switch {
	case len(row) == width:
		return row, nil
	case len(row) > width:
		return nil, fmt.Errorf("expected %d fields, saw %d", width, len(row))
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column or -1.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	return slices.Index(t.Columns, name)
}

// Cell returns the value at row, col or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if t == nil || row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Columns) {
		return ""
	}
	return t.Rows[row][col]
}

// Records returns the header followed by the data rows, the shape
// encoding/csv writes.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Columns)
	return append(records, t.Rows...)
}
