package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/erickbogarin/amortiza/internal/output"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a report for a single solve
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("EXTRA PAYMENT SOLVER\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Goal:            %s\n", tf.describeGoal(result.Request)))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("EXTRA PAYMENT\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Month:           %d\n", result.ExtraPayment.Month))
	sb.WriteString(fmt.Sprintf("Amount:          %s\n", output.FormatMoney(result.ExtraPayment.Amount)))
	sb.WriteString(fmt.Sprintf("Strategy:        %s\n", result.ExtraPayment.Strategy))
	sb.WriteString("\n")

	if res := result.Result; res != nil {
		summary := res.SummaryWithExtras
		sb.WriteString("PROJECTED RESULTS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(fmt.Sprintf("Total months:    %d (saves %d)\n", summary.TotalMonths, summary.MonthsSaved))
		sb.WriteString(fmt.Sprintf("Total interest:  %s (saves %s)\n",
			output.FormatMoney(summary.TotalInterest), output.FormatMoney(summary.InterestSaved)))
		sb.WriteString(fmt.Sprintf("Total paid:      %s\n", output.FormatMoney(summary.TotalPaid)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatSweep generates a table with one row per candidate month
func (tf *TableFormatter) FormatSweep(sweep *SweepResult) string {
	var sb strings.Builder

	sb.WriteString("EXTRA PAYMENT BY MONTH\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-8s %18s %14s %18s\n", "Month", "Amount", "Total Months", "Interest Saved"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	for _, r := range sweep.Results {
		marker := ""
		if sweep.Cheapest != nil && r.ExtraPayment.Month == sweep.Cheapest.ExtraPayment.Month {
			marker = " *"
		}
		months, saved := 0, "-"
		if r.Result != nil {
			months = r.Result.SummaryWithExtras.TotalMonths
			saved = output.FormatMoney(r.Result.SummaryWithExtras.InterestSaved)
		}
		sb.WriteString(fmt.Sprintf("%-8d %18s %14d %18s%s\n",
			r.ExtraPayment.Month, output.FormatMoney(r.ExtraPayment.Amount), months, saved, marker))
	}
	for _, month := range sweep.Infeasible {
		sb.WriteString(fmt.Sprintf("%-8d %18s\n", month, "unreachable"))
	}

	if len(sweep.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range sweep.Recommendations {
			sb.WriteString(fmt.Sprintf("* %s\n", rec))
		}
	}
	return sb.String()
}

func (tf *TableFormatter) describeGoal(req SolveRequest) string {
	switch req.Goal {
	case GoalPayoffWithin:
		return fmt.Sprintf("pay off within %d months", req.TargetMonths)
	case GoalSaveInterest:
		return "save at least " + output.FormatMoney(req.TargetInterestSaved) + " in interest"
	}
	return string(req.Goal)
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "solved"
	}
	return "not solved"
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a single solve
func (jf *JSONFormatter) Format(result *SolveResult) (string, error) {
	return jf.marshal(result)
}

// FormatSweep generates JSON output for a sweep
func (jf *JSONFormatter) FormatSweep(sweep *SweepResult) (string, error) {
	return jf.marshal(sweep)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
