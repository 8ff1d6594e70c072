package calculation

import (
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize aggregates a schedule. Paid and interest are accumulated from
// per-row amounts rounded to cents, the way an installment statement shows
// them; amortized principal is accumulated at working scale and rounded once.
func Summarize(system domain.AmortizationSystem, schedule domain.Schedule) domain.ScheduleSummary {
	paid := decimal.Zero
	interest := decimal.Zero
	amortized := decimal.Zero

	for _, row := range schedule {
		paid = paid.Add(RoundCents(row.TotalDue.Add(row.ExtraPaid)))
		interest = interest.Add(RoundCents(row.Interest))
		amortized = amortized.Add(row.Principal).Add(row.ExtraPaid)
	}

	return domain.ScheduleSummary{
		System:         system,
		TotalPaid:      RoundCents(paid),
		TotalInterest:  RoundCents(interest),
		TotalAmortized: RoundCents(amortized),
		TotalMonths:    len(schedule),
		InterestSaved:  decimal.Zero,
	}
}

// WithSavings attaches the comparison against a baseline to a with-extras summary
func WithSavings(withExtras, baseline domain.ScheduleSummary) domain.ScheduleSummary {
	withExtras.MonthsSaved = baseline.TotalMonths - withExtras.TotalMonths
	withExtras.InterestSaved = RoundCents(baseline.TotalInterest.Sub(withExtras.TotalInterest))
	return withExtras
}
