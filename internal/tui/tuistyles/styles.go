package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#2E86AB")
	ColorSecondary = lipgloss.Color("#A23B72")
	ColorAccent    = lipgloss.Color("#F18F01")
	ColorSuccess   = lipgloss.Color("#3BB273")
	ColorDanger    = lipgloss.Color("#C73E1D")

	ColorForeground = lipgloss.Color("#E8E8E8")
	ColorMuted      = lipgloss.Color("#8A8A8A")
	ColorBorder     = lipgloss.Color("#4A4A4A")

	ColorWithoutExtras = ColorSecondary
	ColorWithExtras    = ColorSuccess
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	SelectedTabStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Underline(true).
				Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true).
			Padding(1, 2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground).
				Background(ColorPrimary)

	ExtraRowStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

// SavingStyle colors a saving green when positive and muted otherwise
func SavingStyle(positive bool) lipgloss.Style {
	if positive {
		return lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(ColorMuted)
}
