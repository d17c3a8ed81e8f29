package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"csvview/csvview/internal/session"
)

func (m Model) View() string {
	if m.notice != nil {
		return m.renderNotice()
	}

	var b strings.Builder
	b.WriteString(m.renderToolbar())
	b.WriteString("\n")

	switch {
	case m.mode == modeOpen:
		b.WriteString("Open CSV file in " + m.picker.CurrentDirectory + "\n")
		b.WriteString(m.picker.View())
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render("enter: open  esc: cancel"))
		return b.String()
	case m.session.State() == session.StateEmpty:
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render(fmt.Sprintf(
			"No file loaded. Press %s to open a CSV file.", m.keys.Open.Help().Key)))
		b.WriteString("\n\n")
	default:
		b.WriteString(m.renderGrid())
		b.WriteString("\n")
		b.WriteString(m.renderLegend())
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderToolbar shows the controls: open, export, the column selector, the
// filter text and the filter trigger.
func (m Model) renderToolbar() string {
	control := func(label string, active bool) string {
		if active {
			return m.styles.activeControl.Render(label)
		}
		return m.styles.control.Render(label)
	}

	column := m.selectedColumn()
	if column == "" {
		column = columnPlaceholder
	}
	columnLabel := "Column: ‹ " + column + " ›"

	fragment := m.filterInput.Value()
	fragmentLabel := "Filter: "
	if m.mode == modeFilter && m.focus == focusFragment {
		fragmentLabel += m.filterInput.View()
	} else if fragment == "" {
		fragmentLabel += m.styles.muted.Render(m.filterInput.Placeholder)
	} else {
		fragmentLabel += fragment
	}

	parts := []string{
		control("["+m.keys.Open.Help().Key+"] Open", m.mode == modeOpen),
		control("["+m.keys.Save.Help().Key+"] Export", m.mode == modeSave || m.mode == modeOverwrite),
		control(columnLabel, m.mode == modeFilter && m.focus == focusColumn),
		control(fragmentLabel, m.mode == modeFilter && m.focus == focusFragment),
		control("["+m.keys.Filter.Help().Key+"] Filter", m.mode == modeFilter),
	}
	return m.styles.toolbar.Render(strings.Join(parts, "  "))
}

func (m Model) renderStatus() string {
	t := m.displayed()

	position := fmt.Sprintf("Row %d/%d  Col %d/%d", min(m.cursorRow+1, t.Len()), t.Len(), m.cursorCol+1, len(t.Columns))
	c, filtered := m.session.Criterion()
	if t.Len() == 0 {
		position = "No rows"
		if filtered {
			position = "No rows match"
		}
	}

	parts := []string{position}
	if filtered {
		parts = append(parts, m.styles.filterBadge.Render(
			fmt.Sprintf("[FILTERED: %s ~ %q, %d of %d rows]", c.Column, c.Fragment, t.Len(), m.session.Loaded().Len())))
	}
	parts = append(parts, filepath.Base(m.session.Path()))

	return m.styles.status.Render(strings.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	switch m.mode {
	case modeSave:
		return "Export to: " + m.saveInput.View() + "\n" +
			m.styles.muted.Render("enter: export  esc: cancel")
	case modeOverwrite:
		return fmt.Sprintf("Overwrite %s? ", filepath.Base(m.pendingExport)) +
			m.styles.muted.Render(fmt.Sprintf("[%s] replace  [%s] back",
				m.keys.Confirm.Help().Key, m.keys.Cancel.Help().Key))
	case modeFilter:
		return m.styles.muted.Render(fmt.Sprintf(
			"%s: pick column  %s: switch field  %s: apply filter  %s: cancel",
			m.keys.Left.Help().Key+" "+m.keys.Right.Help().Key,
			m.keys.Tab.Help().Key,
			m.keys.Confirm.Help().Key,
			m.keys.Cancel.Help().Key,
		))
	}
	return m.help.View(m.keys)
}
