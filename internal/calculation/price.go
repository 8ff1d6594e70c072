package calculation

import (
	"math"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
)

// ConstantInstallmentScheduler implements the PRICE (French annuity) system.
// The installment is fixed up front and never recomputed: an extra payment
// only shortens the schedule, whatever its strategy says.
type ConstantInstallmentScheduler struct{}

// NewConstantInstallmentScheduler creates a PRICE scheduler
func NewConstantInstallmentScheduler() *ConstantInstallmentScheduler {
	return &ConstantInstallmentScheduler{}
}

// System returns domain.ConstantInstallment
func (s *ConstantInstallmentScheduler) System() domain.AmortizationSystem {
	return domain.ConstantInstallment
}

// Generate builds the PRICE schedule, stopping as soon as the balance reaches
// zero under either strategy. Every row is due pmt except the one that
// settles the loan, which is due only the balance left plus its interest.
func (s *ConstantInstallmentScheduler) Generate(in ScheduleInput) domain.Schedule {
	pmt := AnnuityPayment(in.LoanAmount, in.MonthlyRate, in.TotalTerms)
	balance := in.LoanAmount

	schedule := make(domain.Schedule, 0, in.TotalTerms)
	for month := 1; month <= in.TotalTerms; month++ {
		interest := quantize(balance.Mul(in.MonthlyRate))
		extra, _ := in.Extras.at(month)
		principal := settle(pmt.Sub(interest), extra.Amount, balance)
		balance = floorZero(balance.Sub(principal).Sub(extra.Amount))

		schedule = append(schedule, domain.Installment{
			Month:            month,
			Principal:        principal,
			Interest:         interest,
			TotalDue:         principal.Add(interest),
			RemainingBalance: balance,
			ExtraPaid:        extra.Amount,
		})

		if !balance.IsPositive() {
			break
		}
	}
	return schedule
}

// AnnuityPayment returns the fixed installment L*r / (1 - (1+r)^-n), or L/n
// when the rate is zero.
func AnnuityPayment(loan, monthlyRate decimal.Decimal, terms int) decimal.Decimal {
	n := decimal.NewFromInt(int64(terms))
	if monthlyRate.IsZero() {
		return divide(loan, n)
	}
	discount := math.Pow(1+monthlyRate.InexactFloat64(), -float64(terms))
	denominator := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discount))
	return divide(loan.Mul(monthlyRate), denominator)
}
