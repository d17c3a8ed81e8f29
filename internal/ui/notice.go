package ui

import (
	"errors"

	"github.com/charmbracelet/lipgloss"

	"csvview/csvview/internal/session"
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeWarning
	noticeError
)

func (l noticeLevel) title() string {
	switch l {
	case noticeWarning:
		return "Warning"
	case noticeError:
		return "Error"
	default:
		return "Success"
	}
}

// notice is a modal message. While one is shown every key except confirm and
// cancel is swallowed.
type notice struct {
	level   noticeLevel
	message string
}

func (m *Model) notify(level noticeLevel, message string) {
	m.notice = &notice{level: level, message: message}
}

// notifyError turns a failed action into a notice: unmet preconditions are
// warnings, everything else is an error carrying the underlying message.
func (m *Model) notifyError(err error) {
	switch {
	case errors.Is(err, session.ErrNotLoaded):
		m.notify(noticeWarning, "Load a CSV file first.")
	case errors.Is(err, session.ErrNoCriterion), errors.Is(err, session.ErrNoSuchColumn):
		m.notify(noticeWarning, "Select a column and enter a value to filter.")
	case errors.Is(err, session.ErrPreconditionUnmet):
		m.notify(noticeWarning, err.Error())
	default:
		m.notify(noticeError, err.Error())
	}
}

func (m Model) renderNotice() string {
	level := m.notice.level

	boxWidth := m.width - 8
	if boxWidth > 72 {
		boxWidth = 72
	}
	if boxWidth < 24 {
		boxWidth = 24
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.noticeTitle[level].Render(level.title()),
		"",
		m.notice.message,
		"",
		m.styles.muted.Render("[enter] ok  [esc] close"),
	)
	box := m.styles.noticeBox[level].Width(boxWidth).Render(body)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
