package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"csvview/csvview/internal/table"
)

const (
	minColumnWidth = 8
	maxColumnWidth = 20

	// Lines around the grid body: toolbar, three table borders, header row,
	// legend, status and footer.
	chromeLines = 8
)

func (m Model) displayed() *table.Table {
	return m.session.Displayed()
}

func (m Model) visibleRowCount() int {
	maxRows := m.height - chromeLines
	if maxRows < 1 {
		maxRows = 1
	}
	return maxRows
}

func (m *Model) navigate(msg tea.KeyMsg) {
	t := m.displayed()
	if t.Len() == 0 {
		return
	}
	rows, cols := t.Len(), len(t.Columns)
	maxRows := m.visibleRowCount()

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursorCol < cols-1 {
			m.cursorCol++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursorRow < rows-1 {
			m.cursorRow++
		}
	case key.Matches(msg, m.keys.PageDown):
		m.cursorRow = min(m.cursorRow+maxRows, rows-1)
	case key.Matches(msg, m.keys.PageUp):
		m.cursorRow = max(m.cursorRow-maxRows, 0)
	case key.Matches(msg, m.keys.PageRight):
		startCol, endCol := m.calculateVisibleColumns()
		m.cursorCol = min(m.cursorCol+max(endCol-startCol, 1), cols-1)
	case key.Matches(msg, m.keys.PageLeft):
		startCol, endCol := m.calculateVisibleColumns()
		m.cursorCol = max(m.cursorCol-max(endCol-startCol, 1), 0)
	default:
		return
	}

	m.adjustViewport()
}

// adjustViewport scrolls so the cursor cell is on screen.
func (m *Model) adjustViewport() {
	t := m.displayed()
	if t.Len() == 0 {
		m.viewportX, m.viewportY = 0, 0
		return
	}

	if m.cursorCol < m.viewportX {
		m.viewportX = m.cursorCol
	}
	for {
		_, endCol := m.calculateVisibleColumns()
		if m.cursorCol < endCol || m.viewportX >= m.cursorCol {
			break
		}
		m.viewportX++
	}

	maxRows := m.visibleRowCount()
	if m.cursorRow < m.viewportY {
		m.viewportY = m.cursorRow
	} else if m.cursorRow >= m.viewportY+maxRows {
		m.viewportY = m.cursorRow - maxRows + 1
	}
}

func (m Model) calculateColumnWidths() []int {
	t := m.displayed()
	if t == nil || len(t.Columns) == 0 {
		return []int{}
	}

	columnWidths := make([]int, len(t.Columns))
	for i, header := range t.Columns {
		columnWidths[i] = runewidth.StringWidth(header)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > columnWidths[i] {
				columnWidths[i] = w
			}
		}
	}

	for i := range columnWidths {
		columnWidths[i] = min(max(columnWidths[i], minColumnWidth), maxColumnWidth)
	}

	return columnWidths
}

// calculateVisibleColumns returns the half-open range of columns that fit in
// the terminal starting at viewportX. At least one column is always shown.
func (m Model) calculateVisibleColumns() (int, int) {
	columnWidths := m.calculateColumnWidths()
	if len(columnWidths) == 0 {
		return 0, 0
	}

	// Table borders take two chars, plus a small safety margin.
	availableWidth := m.width - 2 - 4

	startCol := min(max(m.viewportX, 0), len(columnWidths)-1)

	currentWidth := 0
	endCol := startCol
	for i := startCol; i < len(columnWidths); i++ {
		// content + one char padding on each side + separator after the first
		columnSpace := columnWidths[i] + 2
		if i > startCol {
			columnSpace++
		}
		if currentWidth+columnSpace > availableWidth {
			break
		}
		currentWidth += columnSpace
		endCol = i + 1
	}

	if endCol <= startCol {
		endCol = startCol + 1
	}
	return startCol, endCol
}

func truncateCell(cell string, width int) string {
	// Multi-line cells would break the row layout.
	cell = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(cell)
	return runewidth.Truncate(cell, width, "…")
}

func (m Model) renderGrid() string {
	t := m.displayed()
	columnWidths := m.calculateColumnWidths()
	startCol, endCol := m.calculateVisibleColumns()

	startRow := m.viewportY
	endRow := min(startRow+m.visibleRowCount(), t.Len())

	visibleHeaders := make([]string, 0, endCol-startCol)
	for c := startCol; c < endCol; c++ {
		visibleHeaders = append(visibleHeaders, truncateCell(t.Columns[c], columnWidths[c]))
	}

	visibleRows := make([][]string, 0, max(endRow-startRow, 0))
	for r := startRow; r < endRow; r++ {
		row := make([]string, 0, len(visibleHeaders))
		for c := startCol; c < endCol; c++ {
			row = append(row, truncateCell(t.Rows[r][c], columnWidths[c]))
		}
		visibleRows = append(visibleRows, row)
	}

	grid := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.styles.border).
		Headers(visibleHeaders...).
		Rows(visibleRows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return m.styles.header
			}

			actualRow := startRow + row
			actualCol := startCol + col

			if actualRow == m.cursorRow && actualCol == m.cursorCol {
				return m.styles.selected
			}

			even := row%2 == 0
			if actualCol < len(m.columnTypes) {
				colors := m.styles.typeColors
				if even {
					colors = m.styles.dimTypeColors
				}
				if color := colors[m.columnTypes[actualCol]]; color != "" {
					return m.styles.base.Foreground(color)
				}
			}

			if even {
				return m.styles.base.Foreground(m.styles.evenRowColor)
			}
			return m.styles.base.Foreground(m.styles.oddRowColor)
		})

	return grid.String()
}

func (m Model) renderLegend() string {
	items := make([]string, 0, len(table.DataTypes))
	for _, dataType := range table.DataTypes {
		color := m.styles.typeColors[dataType]
		if color == "" {
			continue
		}
		items = append(items,
			m.styles.base.Foreground(color).Bold(true).Render("■")+
				m.styles.toolbar.Render(dataType.String()))
	}
	if len(items) == 0 {
		return ""
	}
	return "Legend: " + strings.Join(items, " ")
}
