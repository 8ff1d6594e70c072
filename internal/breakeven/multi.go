package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/erickbogarin/amortiza/internal/output"
)

// SolveAcrossMonths solves the same goal with the extra payment placed in
// each candidate month and picks the month needing the smallest amount.
// Months where the goal cannot be reached are reported, not treated as errors.
func (s *Solver) SolveAcrossMonths(ctx context.Context, req SolveRequest, months []int) (*SweepResult, error) {
	if len(months) == 0 {
		return nil, &BreakEvenError{Operation: "sweep", Message: "at least one month is required"}
	}

	sweep := &SweepResult{}
	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate := req
		candidate.Month = month
		result, err := s.Solve(ctx, candidate)
		if err != nil {
			if errors.Is(err, ErrInfeasible) {
				sweep.Infeasible = append(sweep.Infeasible, month)
				continue
			}
			return nil, fmt.Errorf("month %d: %w", month, err)
		}
		sweep.Results = append(sweep.Results, *result)
	}

	for i := range sweep.Results {
		r := &sweep.Results[i]
		if sweep.Cheapest == nil || r.ExtraPayment.Amount.LessThan(sweep.Cheapest.ExtraPayment.Amount) {
			sweep.Cheapest = r
		}
	}

	sweep.Recommendations = sweepRecommendations(sweep)
	return sweep, nil
}

func sweepRecommendations(sweep *SweepResult) []string {
	var recs []string
	if sweep.Cheapest == nil {
		return append(recs, "No candidate month reaches the goal with a single extra payment")
	}

	cheapest := sweep.Cheapest
	recs = append(recs, fmt.Sprintf("Cheapest: pay %s in month %d",
		output.FormatMoney(cheapest.ExtraPayment.Amount), cheapest.ExtraPayment.Month))

	var latest *SolveResult
	for i := range sweep.Results {
		if latest == nil || sweep.Results[i].ExtraPayment.Month > latest.ExtraPayment.Month {
			latest = &sweep.Results[i]
		}
	}
	if latest != cheapest {
		recs = append(recs, fmt.Sprintf("Waiting until month %d costs %s more",
			latest.ExtraPayment.Month, output.FormatMoney(latest.ExtraPayment.Amount.Sub(cheapest.ExtraPayment.Amount))))
	}

	if len(sweep.Infeasible) > 0 {
		recs = append(recs, fmt.Sprintf("Goal unreachable when paying in month(s) %v", sweep.Infeasible))
	}
	return recs
}
