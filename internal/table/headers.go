package table

import (
	"strconv"
	"strings"
)

// spreadsheetName converts a 0-based index to a spreadsheet column name:
// 0 -> A, 25 -> Z, 26 -> AA.
func spreadsheetName(index int) string {
	name := ""
	for index++; index > 0; index /= 26 {
		index--
		name = string(rune('A'+index%26)) + name
	}
	return name
}

// NormalizeHeaders makes every column name non-empty and unique so columns can
// be addressed by name.
//
//	Input:  ["name", "", "age", "name", "  "]
//	Output: ["name", "Unnamed_A", "age", "name.1", "Unnamed_B"]
func NormalizeHeaders(header []string) []string {
	normalized := make([]string, len(header))
	used := make(map[string]bool, len(header))
	suffix := make(map[string]int)
	unnamed := 0

	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = "Unnamed_" + spreadsheetName(unnamed)
			unnamed++
		}

		name := h
		for used[name] {
			suffix[h]++
			name = h + "." + strconv.Itoa(suffix[h])
		}
		used[name] = true
		normalized[i] = name
	}

	return normalized
}
