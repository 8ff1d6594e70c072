package calculation

import (
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
)

// PlannedExtra is an extra payment together with the policy that re-plans
// the schedule after it.
type PlannedExtra struct {
	Amount   decimal.Decimal
	Strategy domain.ExtraPaymentStrategy
}

// ExtraPlan maps a 1-based month to the extra payment made in it
type ExtraPlan map[int]PlannedExtra

// UniformPlan applies a single policy to every extra payment
func UniformPlan(extras map[int]decimal.Decimal, shortenTermOnExtra bool) ExtraPlan {
	strategy := domain.ReduceInstallment
	if shortenTermOnExtra {
		strategy = domain.ShortenTerm
	}
	plan := make(ExtraPlan, len(extras))
	for month, amount := range extras {
		plan[month] = PlannedExtra{Amount: amount, Strategy: strategy}
	}
	return plan
}

// PlanFromPayments builds a plan that honours each payment's own strategy.
// Later payments for the same month overwrite earlier ones.
func PlanFromPayments(payments []domain.ExtraPayment) ExtraPlan {
	plan := make(ExtraPlan, len(payments))
	for _, p := range payments {
		strategy := p.Strategy
		if strategy == "" {
			strategy = domain.ShortenTerm
		}
		plan[p.Month] = PlannedExtra{Amount: p.Amount, Strategy: strategy}
	}
	return plan
}

// ExtrasByMonth collapses payments into a month -> amount map, last write wins
func ExtrasByMonth(payments []domain.ExtraPayment) map[int]decimal.Decimal {
	extras := make(map[int]decimal.Decimal, len(payments))
	for _, p := range payments {
		extras[p.Month] = p.Amount
	}
	return extras
}

func (p ExtraPlan) at(month int) (PlannedExtra, bool) {
	extra, ok := p[month]
	if !ok || !extra.Amount.IsPositive() {
		return PlannedExtra{Amount: decimal.Zero}, false
	}
	return extra, true
}
