package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tbl, err := New([]string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", ""}}, tbl.Rows)

	_, err = New([]string{"a"}, [][]string{{"1", "2"}})
	assert.ErrorIs(t, err, ErrParse)
}

func TestCell(t *testing.T) {
	tbl, err := New([]string{"a", "b"}, [][]string{{"1", "2"}})
	require.NoError(t, err)

	assert.Equal(t, "2", tbl.Cell(0, 1))
	assert.Equal(t, "", tbl.Cell(1, 0))
	assert.Equal(t, "", tbl.Cell(0, 2))
	assert.Equal(t, "", tbl.Cell(-1, 0))
}

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"untouched", []string{"a", "b"}, []string{"a", "b"}},
		{"blank", []string{"name", "", "age", "  "}, []string{"name", "Unnamed_A", "age", "Unnamed_B"}},
		{"duplicates", []string{"x", "x", "x"}, []string{"x", "x.1", "x.2"}},
		{"suffix collision", []string{"x", "x.1", "x"}, []string{"x", "x.1", "x.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeaders(tt.in))
		})
	}
}

func TestSpreadsheetName(t *testing.T) {
	for index, want := range map[int]string{0: "A", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA"} {
		assert.Equal(t, want, spreadsheetName(index), "index %d", index)
	}
}

func TestColumnTypes(t *testing.T) {
	tbl, err := New(
		[]string{"name", "age", "score", "active", "note"},
		[][]string{
			{"Alice", "30", "1.5", "true", ""},
			{"Bob", "25", "2", "FALSE", ""},
			{"Carol", "", "3.25", "false", ""},
		},
	)
	require.NoError(t, err)

	assert.Equal(t,
		[]DataType{DataTypeString, DataTypeInt, DataTypeFloat, DataTypeBool, DataTypeEmpty},
		tbl.ColumnTypes(),
	)
}

func TestDetectDataType(t *testing.T) {
	tests := map[string]DataType{
		"":      DataTypeEmpty,
		"  ":    DataTypeEmpty,
		"True":  DataTypeBool,
		"-12":   DataTypeInt,
		"3.14":  DataTypeFloat,
		"1e3":   DataTypeFloat,
		"hello": DataTypeString,
	}
	for value, want := range tests {
		assert.Equal(t, want, DetectDataType(value), "value %q", value)
	}
}
