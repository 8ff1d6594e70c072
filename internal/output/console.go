package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/erickbogarin/amortiza/internal/domain"
)

const ruleWidth = 72

// ConsoleFormatter renders a plain-text report. Verbose adds the month by
// month schedule with extra payments.
type ConsoleFormatter struct {
	Verbose bool
}

func (c ConsoleFormatter) Name() string {
	if c.Verbose {
		return "console-verbose"
	}
	return "console"
}

func (c ConsoleFormatter) Format(sims []Simulation) ([]byte, error) {
	var buf bytes.Buffer

	for i, sim := range sims {
		if sim.Result == nil {
			return nil, fmt.Errorf("simulation %q has no result", sim.Name)
		}
		if i > 0 {
			fmt.Fprintln(&buf)
		}
		c.writeSimulation(&buf, displayName(sim, i), sim.Result)
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeSimulation(buf *bytes.Buffer, name string, res *domain.SimulationResult) {
	req := res.Request
	fmt.Fprintln(buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(buf, "LOAN SIMULATION: %s\n", name)
	fmt.Fprintln(buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(buf, "Loan amount:     %s\n", FormatMoney(req.LoanAmount))
	fmt.Fprintf(buf, "Interest rate:   %s (%s)\n", FormatRate(req.InterestRate), FormatRate(counterpart(req.InterestRate)))
	fmt.Fprintf(buf, "Term:            %d months\n", req.TermsInMonths)
	fmt.Fprintf(buf, "System:          %s\n", req.System.Description())
	if len(req.ExtraPayments) == 0 {
		fmt.Fprintln(buf, "Extra payments:  none")
	} else {
		fmt.Fprintln(buf, "Extra payments:")
		for _, p := range req.ExtraPayments {
			fmt.Fprintf(buf, "  month %-4d %14s  %s\n", p.Month, FormatMoney(p.Amount), p.Strategy)
		}
	}
	fmt.Fprintln(buf)

	base, extra := res.SummaryWithoutExtras, res.SummaryWithExtras
	fmt.Fprintf(buf, "%-20s %18s %18s\n", "", "WITHOUT EXTRAS", "WITH EXTRAS")
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(buf, "%-20s %18d %18d\n", "Months", base.TotalMonths, extra.TotalMonths)
	fmt.Fprintf(buf, "%-20s %18s %18s\n", "Total paid", FormatMoney(base.TotalPaid), FormatMoney(extra.TotalPaid))
	fmt.Fprintf(buf, "%-20s %18s %18s\n", "Total interest", FormatMoney(base.TotalInterest), FormatMoney(extra.TotalInterest))
	fmt.Fprintf(buf, "%-20s %18s %18s\n", "Total amortized", FormatMoney(base.TotalAmortized), FormatMoney(extra.TotalAmortized))
	fmt.Fprintf(buf, "%-20s %18s %18s\n", "First installment", firstDue(res.ScheduleWithoutExtras), firstDue(res.ScheduleWithExtras))
	fmt.Fprintf(buf, "%-20s %18s %18s\n", "Last installment", lastDue(res.ScheduleWithoutExtras), lastDue(res.ScheduleWithExtras))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "SAVINGS")
	fmt.Fprintf(buf, "  Months saved:    %d\n", extra.MonthsSaved)
	fmt.Fprintf(buf, "  Interest saved:  %s\n", FormatMoney(extra.InterestSaved))

	if c.Verbose {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "SCHEDULE WITH EXTRAS")
		writeScheduleTable(buf, res.ScheduleWithExtras)
	}
}

func writeScheduleTable(buf *bytes.Buffer, schedule domain.Schedule) {
	fmt.Fprintf(buf, "%5s %14s %14s %14s %14s %16s\n", "Month", "Principal", "Interest", "Installment", "Extra", "Balance")
	fmt.Fprintln(buf, strings.Repeat("-", 82))
	for _, row := range schedule {
		extra := ""
		if row.ExtraPaid.IsPositive() {
			extra = FormatMoney(row.ExtraPaid)
		}
		fmt.Fprintf(buf, "%5d %14s %14s %14s %14s %16s\n",
			row.Month,
			FormatMoney(row.Principal),
			FormatMoney(row.Interest),
			FormatMoney(row.TotalDue),
			extra,
			FormatMoney(row.RemainingBalance))
	}
}

func counterpart(rate domain.InterestRate) domain.InterestRate {
	if rate.Kind == domain.RateMonthly {
		return rate.ToAnnual()
	}
	return rate.ToMonthly()
}

func firstDue(schedule domain.Schedule) string {
	if len(schedule) == 0 {
		return "-"
	}
	return FormatMoney(schedule[0].TotalDue)
}

func lastDue(schedule domain.Schedule) string {
	last, ok := schedule.Last()
	if !ok {
		return "-"
	}
	return FormatMoney(last.TotalDue)
}
