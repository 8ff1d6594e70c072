package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/erickbogarin/amortiza/internal/tui/tuistyles"
)

// Series is one line of a BalanceChart
type Series struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// BalanceChart plots outstanding balances month by month. Every series
// shares the x axis, so a shorter series ends earlier on the chart.
type BalanceChart struct {
	Title  string
	Series []Series
	Width  int
	Height int
}

const yAxisWidth = 10

// NewBalanceChart creates an empty chart
func NewBalanceChart(title string) *BalanceChart {
	return &BalanceChart{Title: title, Width: 70, Height: 14}
}

// AddSeries appends a line to the chart
func (c *BalanceChart) AddSeries(name string, points []float64, color lipgloss.Color) *BalanceChart {
	c.Series = append(c.Series, Series{Name: name, Points: points, Color: color})
	return c
}

// WithSize sets the chart dimensions, axes included
func (c *BalanceChart) WithSize(width, height int) *BalanceChart {
	c.Width = width
	c.Height = height
	return c
}

func (c *BalanceChart) longest() int {
	n := 0
	for _, s := range c.Series {
		n = max(n, len(s.Points))
	}
	return n
}

func (c *BalanceChart) peak() float64 {
	peak := 0.0
	for _, s := range c.Series {
		for _, p := range s.Points {
			peak = math.Max(peak, p)
		}
	}
	return peak
}

func (c *BalanceChart) Render() string {
	months := c.longest()
	if months == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	plotWidth := max(c.Width-yAxisWidth-3, 10)
	plotHeight := max(c.Height, 3)
	peak := c.peak()
	if peak <= 0 {
		peak = 1
	}

	// one cell per column holds the index of the series drawn there, -1 blank
	grid := make([][]int, plotHeight)
	for y := range grid {
		grid[y] = make([]int, plotWidth)
		for x := range grid[y] {
			grid[y][x] = -1
		}
	}

	for idx, s := range c.Series {
		for x := 0; x < plotWidth; x++ {
			month := x * months / plotWidth
			if month >= len(s.Points) {
				break
			}
			y := plotHeight - 1 - int(math.Round(s.Points[month]/peak*float64(plotHeight-1)))
			if y >= 0 && y < plotHeight {
				grid[y][x] = idx
			}
		}
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		b.WriteString("\n\n")
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for y, row := range grid {
		value := peak * float64(plotHeight-1-y) / float64(plotHeight-1)
		label := ""
		if y == 0 || y == plotHeight-1 || y == plotHeight/2 {
			label = shortAmount(value)
		}
		b.WriteString(axis.Render(label))
		b.WriteString(" │ ")
		for _, cell := range row {
			if cell < 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(c.Series[cell].Color).Render("•"))
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", plotWidth))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", yAxisWidth+3))
	b.WriteString(fmt.Sprintf("month 1 … %d", months))

	if len(c.Series) > 1 {
		b.WriteString("\n\n")
		b.WriteString(c.legend())
	}
	return b.String()
}

func (c *BalanceChart) legend() string {
	items := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		items = append(items, lipgloss.NewStyle().Foreground(s.Color).Render("•")+" "+s.Name)
	}
	return tuistyles.InfoStyle.Render(strings.Join(items, "   "))
}

func shortAmount(v float64) string {
	switch {
	case math.Abs(v) >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case math.Abs(v) >= 1_000:
		return fmt.Sprintf("%.0fK", v/1_000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
