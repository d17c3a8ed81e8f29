// Package ui is the terminal front end: a scrollable grid over the displayed
// table plus the open, export and filter controls.
package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"csvview/csvview/internal/config"
	"csvview/csvview/internal/session"
	"csvview/csvview/internal/table"
)

// Extensions offered by the open dialog.
var csvExtensions = []string{".csv", ".gz", ".bz2", ".xz"}

type mode int

const (
	modeBrowse mode = iota
	modeOpen
	modeSave
	modeOverwrite
	modeFilter
)

type filterFocus int

const (
	focusColumn filterFocus = iota
	focusFragment
)

// noColumn is the column selector's placeholder position.
const noColumn = -1

const columnPlaceholder = "Select a column"

type Options struct {
	Config *config.Config

	// InitialFile is loaded before the first frame when set.
	InitialFile string

	// Output is the terminal the program renders to (default: os.Stdout).
	Output io.Writer

	// Clipboard receives copied cells (default: the system clipboard).
	Clipboard func(string) error
}

type Model struct {
	session     *session.Session
	columnTypes []table.DataType

	// Navigation and display
	cursorRow int
	cursorCol int
	viewportX int
	viewportY int
	width     int
	height    int
	renderer  *lipgloss.Renderer

	// Controls
	mode         mode
	picker       filepicker.Model
	saveInput    textinput.Model
	filterInput  textinput.Model
	columnChoice int
	focus        filterFocus
	notice       *notice

	// pendingExport is the existing file waiting for an overwrite answer.
	pendingExport string

	keys      keyMap
	help      help.Model
	styles    styles
	clipboard func(string) error
}

func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	renderer := lipgloss.NewRenderer(out)

	picker := filepicker.New()
	picker.AllowedTypes = csvExtensions
	picker.ShowHidden = false
	picker.CurrentDirectory = startDir(cfg.StartDir)

	saveInput := textinput.New()
	saveInput.Placeholder = "path/to/export.csv"
	saveInput.CharLimit = 4096
	saveInput.Prompt = ""

	filterInput := textinput.New()
	filterInput.Placeholder = "text to match"
	filterInput.CharLimit = 256
	filterInput.Prompt = ""

	m := Model{
		session:      session.New(),
		width:        80,
		height:       24,
		renderer:     renderer,
		picker:       picker,
		saveInput:    saveInput,
		filterInput:  filterInput,
		columnChoice: noColumn,
		keys:         newKeyMap(cfg.Hotkeys),
		help:         help.New(),
		styles:       newStyles(renderer, cfg.Colors),
		clipboard:    copyFn,
	}

	if opts.InitialFile != "" {
		m.load(opts.InitialFile)
	}
	return m
}

func startDir(configured string) string {
	if configured != "" {
		if info, err := os.Stat(configured); err == nil && info.IsDir() {
			return configured
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.adjustViewport()

		// The picker sizes itself from the window.
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// A notice blocks everything until dismissed
		if m.notice != nil {
			if key.Matches(msg, m.keys.Confirm, m.keys.Cancel) {
				m.notice = nil
			}
			return m, nil
		}

		switch m.mode {
		case modeOpen:
			return m.updateOpen(msg)
		case modeSave:
			return m.updateSave(msg)
		case modeOverwrite:
			return m.updateOverwrite(msg)
		case modeFilter:
			return m.updateFilter(msg)
		}
		return m.updateBrowse(msg)
	}

	// Directory listings and cursor blinks go to whatever has focus.
	var cmd tea.Cmd
	switch m.mode {
	case modeOpen:
		return m.updateOpen(msg)
	case modeSave:
		m.saveInput, cmd = m.saveInput.Update(msg)
	case modeFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case msg.String() == "ctrl+z":
		return m, tea.Suspend
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Open):
		m.mode = modeOpen
		return m, m.picker.Init()
	case key.Matches(msg, m.keys.Save):
		if m.session.State() == session.StateEmpty {
			m.notifyError(session.ErrNotLoaded)
			return m, nil
		}
		m.mode = modeSave
		m.saveInput.SetValue(m.suggestExportPath())
		m.saveInput.CursorEnd()
		m.saveInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Filter):
		if m.session.State() == session.StateEmpty {
			m.notifyError(session.ErrNotLoaded)
			return m, nil
		}
		m.mode = modeFilter
		return m, m.setFilterFocus(focusColumn)
	case key.Matches(msg, m.keys.Copy):
		m.copyCell()
	default:
		m.navigate(msg)
	}
	return m, nil
}

func (m Model) updateOpen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Cancel) {
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.mode = modeBrowse
		m.load(path)
		return m, cmd
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.notify(noticeWarning, fmt.Sprintf("%s is not a CSV file.", filepath.Base(path)))
		return m, cmd
	}
	return m, cmd
}

func (m Model) updateSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.saveInput.Blur()
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		path := exportPath(m.saveInput.Value())
		if path == "" {
			m.notify(noticeWarning, "Enter a file name to export to.")
			return m, nil
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			m.pendingExport = path
			m.mode = modeOverwrite
			return m, nil
		}
		m.saveInput.Blur()
		m.mode = modeBrowse
		m.export(path)
		return m, nil
	}

	var cmd tea.Cmd
	m.saveInput, cmd = m.saveInput.Update(msg)
	return m, cmd
}

// updateOverwrite waits for the user to confirm replacing an existing file.
// Cancel returns to the export prompt with the typed path intact.
func (m Model) updateOverwrite(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		path := m.pendingExport
		m.pendingExport = ""
		m.saveInput.Blur()
		m.mode = modeBrowse
		m.export(path)
	case key.Matches(msg, m.keys.Cancel):
		m.pendingExport = ""
		m.mode = modeSave
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.filterInput.Blur()
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.applyFilter()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.focus == focusColumn {
			return m, m.setFilterFocus(focusFragment)
		}
		return m, m.setFilterFocus(focusColumn)
	}

	if m.focus == focusColumn {
		switch {
		case key.Matches(msg, m.keys.Left, m.keys.Up):
			m.cycleColumn(-1)
		case key.Matches(msg, m.keys.Right, m.keys.Down):
			m.cycleColumn(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) setFilterFocus(f filterFocus) tea.Cmd {
	m.focus = f
	if f == focusFragment {
		m.filterInput.Focus()
		return textinput.Blink
	}
	m.filterInput.Blur()
	return nil
}

// cycleColumn moves the column selector, wrapping through the placeholder.
func (m *Model) cycleColumn(step int) {
	n := len(m.session.Columns()) + 1
	pos := (m.columnChoice + 1 + step) % n
	if pos < 0 {
		pos += n
	}
	m.columnChoice = pos - 1
}

func (m Model) selectedColumn() string {
	columns := m.session.Columns()
	if m.columnChoice == noColumn || m.columnChoice >= len(columns) {
		return ""
	}
	return columns[m.columnChoice]
}

func (m *Model) load(path string) {
	if err := m.session.Load(path); err != nil {
		m.notifyError(err)
		return
	}

	m.refresh()
	m.columnChoice = noColumn
	m.focus = focusColumn
	m.filterInput.Reset()
	m.filterInput.Blur()
	m.notify(noticeInfo, fmt.Sprintf("Loaded %s: %d rows, %d columns.",
		filepath.Base(path), m.session.Displayed().Len(), len(m.session.Columns())))
}

func (m *Model) applyFilter() {
	if err := m.session.ApplyFilter(m.selectedColumn(), m.filterInput.Value()); err != nil {
		m.notifyError(err)
		return
	}
	m.filterInput.Blur()
	m.mode = modeBrowse
	m.refresh()
}

func (m *Model) export(path string) {
	if err := m.session.Export(path); err != nil {
		m.notifyError(err)
		return
	}
	m.notify(noticeInfo, fmt.Sprintf("Exported %d rows to %s.", m.session.Displayed().Len(), path))
}

func (m *Model) copyCell() {
	displayed := m.session.Displayed()
	if displayed.Len() == 0 {
		return
	}
	if err := m.clipboard(displayed.Cell(m.cursorRow, m.cursorCol)); err != nil {
		m.notify(noticeError, fmt.Sprintf("Copy failed: %v", err))
	}
}

// refresh resets the grid after the displayed table was replaced.
func (m *Model) refresh() {
	m.columnTypes = m.session.Displayed().ColumnTypes()
	m.cursorRow = 0
	m.cursorCol = 0
	m.viewportX = 0
	m.viewportY = 0
}

func (m Model) suggestExportPath() string {
	src := m.session.Path()
	if src == "" {
		return "export.csv"
	}
	base := filepath.Base(src)
	for ext := filepath.Ext(base); ext != ""; ext = filepath.Ext(base) {
		base = strings.TrimSuffix(base, ext)
	}
	return filepath.Join(filepath.Dir(src), base+"_export.csv")
}

// exportPath cleans a typed destination; a name without extension gets ".csv".
func exportPath(input string) string {
	path := strings.TrimSpace(input)
	if path == "" {
		return ""
	}
	path = config.ExpandHome(path)
	if filepath.Ext(path) == "" {
		path += ".csv"
	}
	return path
}
