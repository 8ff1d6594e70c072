package compare

import (
	"fmt"
	"strings"

	"github.com/erickbogarin/amortiza/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing the variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("AMORTIZATION STRATEGY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if base := compSet.BaseResult; base != nil {
		sb.WriteString(fmt.Sprintf("Loan: %s at %s over %d months\n",
			output.FormatMoney(base.Request.LoanAmount), output.FormatRate(base.Request.InterestRate), base.Request.TermsInMonths))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Total Paid",
		numWidth, "Total Interest",
		numWidth-4, "Months",
		numWidth, "Peak Installment"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 96) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Interest:  %s%s\n",
				tf.deltaSymbol(alt.InterestDiffFromBase), output.FormatMoney(alt.InterestDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Paid:      %s%s\n",
				tf.deltaSymbol(alt.PaidDiffFromBase), output.FormatMoney(alt.PaidDiffFromBase)))
			if alt.MonthsDiffFromBase != 0 {
				sb.WriteString(fmt.Sprintf("  Term:      %+d months\n", alt.MonthsDiffFromBase))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("* %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*d %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, output.FormatMoney(result.Summary.TotalPaid),
		numWidth, output.FormatMoney(result.Summary.TotalInterest),
		numWidth-4, result.Summary.TotalMonths,
		numWidth, output.FormatMoney(result.PeakInstallment))
}

// deltaSymbol prefixes increases; decreases already carry their sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of the interest differences
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.InterestDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.InterestDiffFromBase) + output.FormatMoney(alt.InterestDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s interest", alt.ScenarioName, change))
	}

	return sb.String()
}
