package ui

import (
	"io"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"csvview/csvview/internal/config"
	"csvview/csvview/internal/table"
)

func TestApplyHotkeyOverrides(t *testing.T) {
	defaults := defaultHotkeys()
	got := applyHotkeyOverrides(defaults, map[string][]string{
		"Open":     {"ctrl+o"},
		"filter":   {},
		"teleport": {"t"},
	})

	assert.Equal(t, []string{"ctrl+o"}, got["open"])
	assert.Equal(t, defaults["filter"], got["filter"])
	assert.NotContains(t, got, "teleport")

	// Defaults are copied, not shared.
	got["quit"][0] = "x"
	assert.Equal(t, "q", defaultHotkeys()["quit"][0])
}

func TestNewKeyMap_Overrides(t *testing.T) {
	keys := newKeyMap(map[string][]string{"save": {"w"}})

	assert.True(t, key.Matches(keyPress("w"), keys.Save))
	assert.False(t, key.Matches(keyPress("s"), keys.Save))
	assert.Equal(t, "w", keys.Save.Help().Key)
	assert.Equal(t, "↑/k", keys.Up.Help().Key)
}

func TestHelpKeys(t *testing.T) {
	assert.Equal(t, "↑/k", helpKeys([]string{"up", "k"}))
	assert.Equal(t, "/ f", helpKeys([]string{"/", "f"}))
	assert.Equal(t, "c", helpKeys([]string{"c"}))

	m := newTestModel(t, "")
	assert.Contains(t, m.View(), "[/ f] Filter")
}

func TestModel_UsesConfiguredHotkeys(t *testing.T) {
	m := New(Options{
		Config:      &config.Config{Hotkeys: map[string][]string{"filter": {"F"}}},
		InitialFile: writeCSV(t, "people.csv", peopleCSV),
		Output:      io.Discard,
	})
	m = press(t, m, "enter", "/")
	assert.Equal(t, modeBrowse, m.mode)

	m = press(t, m, "F")
	assert.Equal(t, modeFilter, m.mode)
}

func TestApplyConfigColors(t *testing.T) {
	colors, dim := applyConfigColors(config.ColorConfig{Int: "#FF0000", Bool: "  "})

	assert.Equal(t, lipgloss.Color("#FF0000"), colors[table.DataTypeInt])
	assert.Equal(t, lipgloss.Color("#FF0000"), dim[table.DataTypeInt])
	assert.Equal(t, defaultColors()[table.DataTypeBool], colors[table.DataTypeBool])
	assert.Equal(t, defaultDimColors()[table.DataTypeString], dim[table.DataTypeString])
}
