package table

import (
	"strconv"
	"strings"
)

type DataType int

const (
	DataTypeString DataType = iota
	DataTypeInt
	DataTypeFloat
	DataTypeBool
	DataTypeEmpty
)

// DataTypes lists every type in legend order.
var DataTypes = []DataType{DataTypeString, DataTypeInt, DataTypeFloat, DataTypeBool, DataTypeEmpty}

func (d DataType) String() string {
	switch d {
	case DataTypeString:
		return "str"
	case DataTypeInt:
		return "int"
	case DataTypeFloat:
		return "float"
	case DataTypeBool:
		return "bool"
	case DataTypeEmpty:
		return "empty"
	}
	return "unknown"
}

// DetectDataType classifies a single cell value.
func DetectDataType(value string) DataType {
	value = strings.TrimSpace(value)

	if value == "" {
		return DataTypeEmpty
	}

	if strings.EqualFold(value, "true") || strings.EqualFold(value, "false") {
		return DataTypeBool
	}

	if _, err := strconv.Atoi(value); err == nil {
		return DataTypeInt
	}

	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return DataTypeFloat
	}

	return DataTypeString
}

// ColumnTypes returns the dominant non-empty type of each column. A column
// with no non-empty cells is reported as empty.
func (t *Table) ColumnTypes() []DataType {
	if t == nil {
		return nil
	}

	columnTypes := make([]DataType, len(t.Columns))
	typeCounts := make([]map[DataType]int, len(t.Columns))
	for i := range typeCounts {
		typeCounts[i] = make(map[DataType]int)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			typeCounts[i][DetectDataType(cell)]++
		}
	}

	for i := range columnTypes {
		maxCount := 0
		dominantType := DataTypeEmpty

		// Walk in legend order so ties resolve the same way every time.
		for _, dataType := range DataTypes {
			if dataType == DataTypeEmpty {
				continue
			}
			if count := typeCounts[i][dataType]; count > maxCount {
				maxCount = count
				dominantType = dataType
			}
		}

		columnTypes[i] = dominantType
	}

	return columnTypes
}
