package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/erickbogarin/amortiza/internal/compare"
	"github.com/erickbogarin/amortiza/internal/output"
	"github.com/erickbogarin/amortiza/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// CompareModel shows the selected simulation against its SAC/PRICE and
// strategy variants.
type CompareModel struct {
	set     *compare.ComparisonSet
	pending bool
	width   int
	height  int
}

func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetComparison stores a finished comparison; nil marks one in progress
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
	m.pending = set == nil
}

func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *CompareModel) View() string {
	if m.pending {
		return tuistyles.InfoStyle.Render("Comparing variants...")
	}
	if m.set == nil || m.set.BaseResult == nil {
		return tuistyles.InfoStyle.Render("No comparison available")
	}

	header := fmt.Sprintf("%-30s %8s %16s %16s %16s",
		"Variant", "Months", "Interest", "vs base", "Peak installment")
	rows := []string{
		tuistyles.TableHeaderStyle.Render(header),
		m.row(m.set.BaseResult, true),
	}
	for i := range m.set.AlternativeResults {
		rows = append(rows, m.row(&m.set.AlternativeResults[i], false))
	}

	var recs []string
	for _, r := range m.set.Recommendations {
		recs = append(recs, "• "+r)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Strategy comparison: "+m.set.BaseScenarioName),
		"",
		strings.Join(rows, "\n"),
		"",
		tuistyles.SubtitleStyle.Render("Recommendations"),
		tuistyles.InfoStyle.Render(strings.Join(recs, "\n")),
	)
}

func (m *CompareModel) row(r *compare.ComparisonResult, base bool) string {
	name := strings.TrimPrefix(r.ScenarioName, m.set.BaseScenarioName+"_")
	diff := "-"
	if base {
		name += " (base)"
	} else {
		diff = signedMoney(r.InterestDiffFromBase)
	}
	line := fmt.Sprintf("%-30s %8d %16s %16s %16s",
		truncate(name, 30), r.Summary.TotalMonths,
		output.FormatMoney(r.Summary.TotalInterest), diff, output.FormatMoney(r.PeakInstallment))

	if !base && r.InterestDiffFromBase.IsNegative() {
		return tuistyles.SavingStyle(true).Render(line)
	}
	return line
}

func signedMoney(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + output.FormatMoney(d)
	}
	return output.FormatMoney(d)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
