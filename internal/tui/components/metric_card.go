package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/erickbogarin/amortiza/internal/tui/tuistyles"
)

// MetricCard displays one figure of a schedule summary side by side for the
// baseline and the schedule with extras.
type MetricCard struct {
	Label   string
	Without string
	With    string
	// Saving, when set, is shown below the two values
	Saving         string
	SavingPositive bool
	Width          int
}

// NewMetricCard creates a card comparing two values
func NewMetricCard(label, without, with string) *MetricCard {
	return &MetricCard{
		Label:   label,
		Without: without,
		With:    with,
		Width:   30,
	}
}

// WithSaving adds the difference between the two values
func (m *MetricCard) WithSaving(saving string, positive bool) *MetricCard {
	m.Saving = saving
	m.SavingPositive = positive
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) Render() string {
	without := lipgloss.NewStyle().Foreground(tuistyles.ColorWithoutExtras).Render(m.Without)
	with := lipgloss.NewStyle().Foreground(tuistyles.ColorWithExtras).Bold(true).Render(m.With)

	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		without + "\n" +
		with
	if m.Saving != "" {
		content += "\n" + tuistyles.SavingStyle(m.SavingPositive).Render("saved "+m.Saving)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricGrid lays cards out in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	var current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
