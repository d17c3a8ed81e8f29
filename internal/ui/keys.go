package ui

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines keybindings for the viewer
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	PageLeft  key.Binding
	PageRight key.Binding
	Open      key.Binding
	Save      key.Binding
	Filter    key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Tab       key.Binding
}

func defaultHotkeys() map[string][]string {
	return map[string][]string{
		"up":        {"up", "k"},
		"down":      {"down", "j"},
		"left":      {"left", "h"},
		"right":     {"right", "l"},
		"pageup":    {"pgup", "i"},
		"pagedown":  {"pgdown", "u"},
		"pageleft":  {"y"},
		"pageright": {"p"},
		"open":      {"o", "ctrl+o"},
		"save":      {"s", "ctrl+s"},
		"filter":    {"/", "f"},
		"copy":      {"c"},
		"help":      {"?"},
		"quit":      {"q", "ctrl+c"},
		"confirm":   {"enter"},
		"cancel":    {"esc"},
		"tab":       {"tab"},
	}
}

var actionHelp = map[string]string{
	"up":        "move up",
	"down":      "move down",
	"left":      "move left",
	"right":     "move right",
	"pageup":    "page up",
	"pagedown":  "page down",
	"pageleft":  "page left",
	"pageright": "page right",
	"open":      "open file",
	"save":      "export csv",
	"filter":    "filter rows",
	"copy":      "copy cell",
	"help":      "toggle help",
	"quit":      "quit",
	"confirm":   "apply",
	"cancel":    "cancel",
	"tab":       "next field",
}

// applyHotkeyOverrides layers user bindings over the defaults. Unknown actions
// are logged and skipped.
func applyHotkeyOverrides(defaults, overrides map[string][]string) map[string][]string {
	hotkeys := make(map[string][]string, len(defaults))
	for action, keys := range defaults {
		hotkeys[action] = append([]string(nil), keys...)
	}

	actions := make([]string, 0, len(overrides))
	for action := range overrides {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	for _, action := range actions {
		keys := overrides[action]
		name := strings.ToLower(action)
		if _, ok := defaults[name]; !ok {
			slog.Warn("ignoring unknown hotkey action", "action", action)
			continue
		}
		if len(keys) > 0 {
			hotkeys[name] = keys
		}
	}

	return hotkeys
}

var keySymbols = map[string]string{
	"up":     "↑",
	"down":   "↓",
	"left":   "←",
	"right":  "→",
	"pgdown": "pgdn",
	" ":      "space",
}

// helpKeys renders a binding's keys for the help line. Keys are joined with
// "/" unless one of them is a slash itself.
func helpKeys(keys []string) string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if symbol, ok := keySymbols[k]; ok {
			k = symbol
		}
		labels[i] = k
	}
	sep := "/"
	for _, label := range labels {
		if strings.Contains(label, "/") {
			sep = " "
			break
		}
	}
	return strings.Join(labels, sep)
}

func newKeyMap(overrides map[string][]string) keyMap {
	hotkeys := applyHotkeyOverrides(defaultHotkeys(), overrides)

	bind := func(action string) key.Binding {
		keys := hotkeys[action]
		return key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(helpKeys(keys), actionHelp[action]),
		)
	}

	return keyMap{
		Up:        bind("up"),
		Down:      bind("down"),
		Left:      bind("left"),
		Right:     bind("right"),
		PageUp:    bind("pageup"),
		PageDown:  bind("pagedown"),
		PageLeft:  bind("pageleft"),
		PageRight: bind("pageright"),
		Open:      bind("open"),
		Save:      bind("save"),
		Filter:    bind("filter"),
		Copy:      bind("copy"),
		Help:      bind("help"),
		Quit:      bind("quit"),
		Confirm:   bind("confirm"),
		Cancel:    bind("cancel"),
		Tab:       bind("tab"),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Filter, k.Save, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},                 // Navigation
		{k.PageUp, k.PageDown, k.PageLeft, k.PageRight}, // Page navigation
		{k.Open, k.Save, k.Filter, k.Copy},              // File and filter actions
		{k.Confirm, k.Cancel, k.Tab},                    // Prompts
		{k.Help, k.Quit},                                // General
	}
}
