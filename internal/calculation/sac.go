package calculation

import (
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
)

// ConstantAmortizationScheduler implements SAC: the principal share of every
// installment is constant, so installments fall as interest shrinks. After an
// extra payment the remaining schedule is re-planned through the decision
// table in replan.go.
type ConstantAmortizationScheduler struct{}

// NewConstantAmortizationScheduler creates a SAC scheduler
func NewConstantAmortizationScheduler() *ConstantAmortizationScheduler {
	return &ConstantAmortizationScheduler{}
}

// System returns domain.ConstantAmortization
func (s *ConstantAmortizationScheduler) System() domain.AmortizationSystem {
	return domain.ConstantAmortization
}

// sacState is the accumulator folded across months
type sacState struct {
	balance        decimal.Decimal
	amortization   decimal.Decimal
	effectiveTerms int
}

// Generate builds the SAC schedule. The loop ends once the balance is at or
// below one cent, or after the last effective month.
func (s *ConstantAmortizationScheduler) Generate(in ScheduleInput) domain.Schedule {
	base := divide(in.LoanAmount, decimal.NewFromInt(int64(in.TotalTerms)))
	state := sacState{
		balance:        in.LoanAmount,
		amortization:   base,
		effectiveTerms: in.TotalTerms,
	}

	schedule := make(domain.Schedule, 0, in.TotalTerms)
	for month := 1; month <= state.effectiveTerms; month++ {
		var row domain.Installment
		state, row = s.step(state, month, base, in)
		schedule = append(schedule, row)
		if isPaidOff(state.balance) {
			break
		}
	}
	return schedule
}

func (s *ConstantAmortizationScheduler) step(state sacState, month int, base decimal.Decimal, in ScheduleInput) (sacState, domain.Installment) {
	interest := quantize(state.balance.Mul(in.MonthlyRate))
	extra, hasExtra := in.Extras.at(month)
	principal := settle(state.amortization, extra.Amount, state.balance)

	next := state
	next.balance = state.balance.Sub(principal).Sub(extra.Amount)

	row := domain.Installment{
		Month:            month,
		Principal:        principal,
		Interest:         interest,
		TotalDue:         principal.Add(interest),
		RemainingBalance: floorZero(next.balance),
		ExtraPaid:        extra.Amount,
	}

	if hasExtra && !isPaidOff(next.balance) {
		event := replan(extra.Strategy, month, next.balance, extra.Amount, base, next.amortization, in.TotalTerms)
		event.System = domain.ConstantAmortization
		next.amortization = event.Amortization
		next.effectiveTerms = event.EffectiveTerms
		in.notify(event)
	}
	return next, row
}
