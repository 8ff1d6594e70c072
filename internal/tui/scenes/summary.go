package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/erickbogarin/amortiza/internal/output"
	"github.com/erickbogarin/amortiza/internal/tui/components"
	"github.com/erickbogarin/amortiza/internal/tui/tuistyles"
)

// SummaryModel shows the request and both schedule summaries of one simulation
type SummaryModel struct {
	sim    *output.Simulation
	width  int
	height int
}

func NewSummaryModel() *SummaryModel {
	return &SummaryModel{}
}

// SetSimulation selects the simulation to summarize
func (m *SummaryModel) SetSimulation(sim *output.Simulation) {
	m.sim = sim
}

func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *SummaryModel) View() string {
	if m.sim == nil || m.sim.Result == nil {
		return tuistyles.InfoStyle.Render("No simulation selected")
	}
	res := m.sim.Result

	header := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render(m.sim.Name),
		tuistyles.SubtitleStyle.Render(describeRequest(res.Request)),
		tuistyles.SubtitleStyle.Render(describeExtras(res.Request.ExtraPayments)),
	)

	base, extra := res.SummaryWithoutExtras, res.SummaryWithExtras
	cardWidth := 26
	columns := max(1, m.width/(cardWidth+2))

	cards := []*components.MetricCard{
		components.NewMetricCard("Months",
			fmt.Sprintf("%d", base.TotalMonths), fmt.Sprintf("%d", extra.TotalMonths)).
			WithSaving(fmt.Sprintf("%d months", extra.MonthsSaved), extra.MonthsSaved > 0),
		components.NewMetricCard("Total interest",
			output.FormatMoney(base.TotalInterest), output.FormatMoney(extra.TotalInterest)).
			WithSaving(output.FormatMoney(extra.InterestSaved), extra.InterestSaved.IsPositive()),
		components.NewMetricCard("Total paid",
			output.FormatMoney(base.TotalPaid), output.FormatMoney(extra.TotalPaid)),
		components.NewMetricCard("Total amortized",
			output.FormatMoney(base.TotalAmortized), output.FormatMoney(extra.TotalAmortized)),
	}
	for _, c := range cards {
		c.WithWidth(cardWidth)
	}

	legend := tuistyles.InfoStyle.Render(
		lipgloss.NewStyle().Foreground(tuistyles.ColorWithoutExtras).Render("without extras") +
			" / " +
			lipgloss.NewStyle().Foreground(tuistyles.ColorWithExtras).Render("with extras"))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		components.MetricGrid(cards, columns),
		legend,
	)
}

func describeRequest(req domain.SimulationRequest) string {
	return fmt.Sprintf("%s at %s over %d months, %s",
		output.FormatMoney(req.LoanAmount),
		output.FormatRate(req.InterestRate),
		req.TermsInMonths,
		req.System.Description())
}

func describeExtras(extras []domain.ExtraPayment) string {
	if len(extras) == 0 {
		return "No extra payments"
	}
	parts := make([]string, 0, len(extras))
	for _, p := range extras {
		parts = append(parts, fmt.Sprintf("%s in month %d", output.FormatMoney(p.Amount), p.Month))
	}
	return "Extra payments: " + strings.Join(parts, ", ")
}
