package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"csvview/csvview/internal/config"
	"csvview/csvview/internal/table"
)

func defaultColors() map[table.DataType]lipgloss.Color {
	return map[table.DataType]lipgloss.Color{
		table.DataTypeString: lipgloss.Color("#87CEEB"), // Sky blue for strings
		table.DataTypeInt:    lipgloss.Color("#90EE90"), // Light green for integers
		table.DataTypeFloat:  lipgloss.Color("#FFB6C1"), // Light pink for floats
		table.DataTypeBool:   lipgloss.Color("#DDA0DD"), // Plum for booleans
		table.DataTypeEmpty:  lipgloss.Color("#D3D3D3"), // Light gray for empty
	}
}

func defaultDimColors() map[table.DataType]lipgloss.Color {
	return map[table.DataType]lipgloss.Color{
		table.DataTypeString: lipgloss.Color("#4682B4"), // Steel blue
		table.DataTypeInt:    lipgloss.Color("#6B8E23"), // Olive drab
		table.DataTypeFloat:  lipgloss.Color("#CD5C5C"), // Indian red
		table.DataTypeBool:   lipgloss.Color("#9370DB"), // Medium purple
		table.DataTypeEmpty:  lipgloss.Color("#A9A9A9"), // Dark gray
	}
}

// applyConfigColors overrides the defaults with configured colors. A
// configured color is used for both the bright and the dim row.
func applyConfigColors(cfg config.ColorConfig) (colors, dimColors map[table.DataType]lipgloss.Color) {
	colors = defaultColors()
	dimColors = defaultDimColors()

	overrides := map[table.DataType]string{
		table.DataTypeString: cfg.String,
		table.DataTypeInt:    cfg.Int,
		table.DataTypeFloat:  cfg.Float,
		table.DataTypeBool:   cfg.Bool,
		table.DataTypeEmpty:  cfg.Empty,
	}
	for dataType, value := range overrides {
		if value = strings.TrimSpace(value); value != "" {
			colors[dataType] = lipgloss.Color(value)
			dimColors[dataType] = lipgloss.Color(value)
		}
	}

	return colors, dimColors
}

type styles struct {
	base          lipgloss.Style
	header        lipgloss.Style
	selected      lipgloss.Style
	border        lipgloss.Style
	toolbar       lipgloss.Style
	control       lipgloss.Style
	activeControl lipgloss.Style
	status        lipgloss.Style
	filterBadge   lipgloss.Style
	muted         lipgloss.Style
	typeColors    map[table.DataType]lipgloss.Color
	dimTypeColors map[table.DataType]lipgloss.Color
	evenRowColor  lipgloss.Color
	oddRowColor   lipgloss.Color
	noticeBox     map[noticeLevel]lipgloss.Style
	noticeTitle   map[noticeLevel]lipgloss.Style
}

func newStyles(renderer *lipgloss.Renderer, cfg config.ColorConfig) styles {
	typeColors, dimTypeColors := applyConfigColors(cfg)

	base := renderer.NewStyle().Padding(0, 1)
	box := renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2)

	noticeColors := map[noticeLevel]lipgloss.Color{
		noticeInfo:    lipgloss.Color("#01BE85"),
		noticeWarning: lipgloss.Color("#FFB347"),
		noticeError:   lipgloss.Color("#FF5F5F"),
	}
	noticeBox := make(map[noticeLevel]lipgloss.Style, len(noticeColors))
	noticeTitle := make(map[noticeLevel]lipgloss.Style, len(noticeColors))
	for level, color := range noticeColors {
		noticeBox[level] = box.BorderForeground(color)
		noticeTitle[level] = renderer.NewStyle().Foreground(color).Bold(true)
	}

	return styles{
		base:          base,
		header:        base.Foreground(lipgloss.Color("252")).Bold(true),
		selected:      base.Foreground(lipgloss.Color("#01BE85")).Background(lipgloss.Color("#00432F")),
		border:        renderer.NewStyle().Foreground(lipgloss.Color("238")),
		toolbar:       renderer.NewStyle().Foreground(lipgloss.Color("252")),
		control:       renderer.NewStyle().Foreground(lipgloss.Color("245")),
		activeControl: renderer.NewStyle().Foreground(lipgloss.Color("#01BE85")).Bold(true),
		status:        renderer.NewStyle().Foreground(lipgloss.Color("245")),
		filterBadge:   renderer.NewStyle().Foreground(lipgloss.Color("#FFB347")).Bold(true),
		muted:         renderer.NewStyle().Foreground(lipgloss.Color("241")),
		typeColors:    typeColors,
		dimTypeColors: dimTypeColors,
		evenRowColor:  lipgloss.Color("245"),
		oddRowColor:   lipgloss.Color("252"),
		noticeBox:     noticeBox,
		noticeTitle:   noticeTitle,
	}
}
