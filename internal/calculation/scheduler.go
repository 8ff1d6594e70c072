package calculation

import (
	"fmt"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
)

// ScheduleInput carries everything a scheduler needs to build one schedule.
// MonthlyRate is a fraction per month; Extras may be nil.
type ScheduleInput struct {
	LoanAmount  decimal.Decimal
	MonthlyRate decimal.Decimal
	TotalTerms  int
	Extras      ExtraPlan
	Observer    ReplanObserver
}

func (in ScheduleInput) notify(event ReplanEvent) {
	if in.Observer != nil {
		in.Observer(event)
	}
}

// Scheduler generates the month-by-month schedule for one amortization system
type Scheduler interface {
	System() domain.AmortizationSystem
	Generate(in ScheduleInput) domain.Schedule
}

// CreateScheduler returns the scheduler for the given system
func CreateScheduler(system domain.AmortizationSystem) (Scheduler, error) {
	switch system {
	case domain.ConstantAmortization:
		return NewConstantAmortizationScheduler(), nil
	case domain.ConstantInstallment:
		return NewConstantInstallmentScheduler(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSystem, system)
	}
}
