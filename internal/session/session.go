// Package session owns the table a user is looking at: the file loaded from
// disk and the subset currently displayed after filtering.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"csvview/csvview/internal/table"
)

var (
	// ErrPreconditionUnmet marks an action the current state does not allow.
	// Nothing is changed when it is returned.
	ErrPreconditionUnmet = errors.New("precondition unmet")

	ErrNotLoaded    = fmt.Errorf("%w: no CSV file loaded", ErrPreconditionUnmet)
	ErrNoCriterion  = fmt.Errorf("%w: no column selected or filter text empty", ErrPreconditionUnmet)
	ErrNoSuchColumn = fmt.Errorf("%w: column not in table", ErrPreconditionUnmet)
)

type State int

const (
	StateEmpty State = iota
	StateLoaded
	StateFiltered
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFiltered:
		return "filtered"
	default:
		return "empty"
	}
}

// Criterion is a single-column filter: rows whose Column value contains
// Fragment, ignoring case.
type Criterion struct {
	Column   string
	Fragment string
}

// Session is not safe for concurrent use; it is driven from the UI loop.
type Session struct {
	path      string
	loaded    *table.Table
	displayed *table.Table
	criterion *Criterion
	state     State
}

func New() *Session {
	return &Session{}
}

func (s *Session) State() State { return s.state }

// Path is the file the loaded table came from.
func (s *Session) Path() string { return s.path }

// Loaded is the full table as read from disk.
func (s *Session) Loaded() *table.Table { return s.loaded }

// Displayed is the table currently shown: the loaded table, or the result of
// the last filter.
func (s *Session) Displayed() *table.Table { return s.displayed }

// Columns lists the loaded table's column names, or nil before a load.
func (s *Session) Columns() []string {
	if s.loaded == nil {
		return nil
	}
	return s.loaded.Columns
}

// Criterion returns the active filter, if any.
func (s *Session) Criterion() (Criterion, bool) {
	if s.criterion == nil {
		return Criterion{}, false
	}
	return *s.criterion, true
}

// Load replaces the loaded and displayed tables with the file at path and
// clears any filter. On error the session is unchanged.
func (s *Session) Load(path string) error {
	t, err := table.Load(path)
	if err != nil {
		slog.Warn("load failed", "path", path, "error", err)
		return err
	}

	s.path = path
	s.loaded = t
	s.displayed = t
	s.criterion = nil
	s.state = StateLoaded

	slog.Info("loaded file", "path", path, "columns", len(t.Columns), "rows", t.Len())
	return nil
}

// ApplyFilter recomputes the displayed table from the full loaded table. An
// empty column stands for "nothing selected".
func (s *Session) ApplyFilter(column, fragment string) error {
	if s.state == StateEmpty {
		return ErrNotLoaded
	}
	if column == "" || fragment == "" {
		return ErrNoCriterion
	}
	if s.loaded.ColumnIndex(column) < 0 {
		return fmt.Errorf("%w: %q", ErrNoSuchColumn, column)
	}

	filtered, err := table.Filter(s.loaded, column, fragment)
	if err != nil {
		return err
	}

	s.displayed = filtered
	s.criterion = &Criterion{Column: column, Fragment: fragment}
	s.state = StateFiltered

	slog.Info("applied filter",
		"column", column,
		"fragment", fragment,
		"matched", filtered.Len(),
		"total", s.loaded.Len(),
	)
	return nil
}

// Export writes the displayed table to path.
func (s *Session) Export(path string) error {
	if s.state == StateEmpty {
		return ErrNotLoaded
	}

	if err := table.Export(s.displayed, path); err != nil {
		slog.Warn("export failed", "path", path, "error", err)
		return err
	}

	slog.Info("exported file", "path", path, "rows", s.displayed.Len(), "state", s.state)
	return nil
}
