package calculation

import (
	"errors"
	"fmt"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTerms is returned for a term outside [1, MaxTermMonths]
	ErrInvalidTerms = errors.New("invalid number of terms")
	// ErrInvalidLoanAmount is returned for a non-positive loan amount
	ErrInvalidLoanAmount = errors.New("loan amount must be positive")
	// ErrUnknownSystem is returned for an amortization system with no scheduler
	ErrUnknownSystem = errors.New("unknown amortization system")
)

// FinancingEngine builds schedules and comparative summaries for a loan
type FinancingEngine struct {
	Logger   Logger
	Observer ReplanObserver
}

// Comparison holds a baseline run and a with-extras run of the same loan
type Comparison struct {
	ScheduleWithoutExtras domain.Schedule
	ScheduleWithExtras    domain.Schedule
	SummaryWithoutExtras  domain.ScheduleSummary
	SummaryWithExtras     domain.ScheduleSummary
}

// NewFinancingEngine creates an engine that logs nowhere
func NewFinancingEngine() *FinancingEngine {
	return &FinancingEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger; nil restores the no-op logger
func (fe *FinancingEngine) SetLogger(l Logger) {
	if l == nil {
		fe.Logger = NopLogger{}
		return
	}
	fe.Logger = l
}

// SetObserver registers a callback for re-planning decisions
func (fe *FinancingEngine) SetObserver(o ReplanObserver) {
	fe.Observer = o
}

// Calculate builds one schedule, applying a single extra-payment policy to
// every extra: shorten the term when shortenTermOnExtra is set, otherwise
// reduce the installment.
func (fe *FinancingEngine) Calculate(loan, monthlyRate decimal.Decimal, terms int, system domain.AmortizationSystem, extras map[int]decimal.Decimal, shortenTermOnExtra bool) (domain.Schedule, error) {
	return fe.CalculatePlan(loan, monthlyRate, terms, system, UniformPlan(extras, shortenTermOnExtra))
}

// CalculatePlan builds one schedule where each extra carries its own policy
func (fe *FinancingEngine) CalculatePlan(loan, monthlyRate decimal.Decimal, terms int, system domain.AmortizationSystem, plan ExtraPlan) (domain.Schedule, error) {
	if err := validateLoan(loan, terms); err != nil {
		return nil, err
	}
	scheduler, err := CreateScheduler(system)
	if err != nil {
		return nil, err
	}

	fe.logger().Debugf("calculating %s schedule: loan=%s rate=%s terms=%d extras=%d",
		system, loan.StringFixed(2), monthlyRate.String(), terms, len(plan))

	schedule := scheduler.Generate(ScheduleInput{
		LoanAmount:  loan,
		MonthlyRate: monthlyRate,
		TotalTerms:  terms,
		Extras:      plan,
		Observer:    fe.observe,
	})

	fe.logger().Debugf("%s schedule finished after %d months", system, len(schedule))
	return schedule, nil
}

// Compare returns the summaries of the loan without extras and with them
func (fe *FinancingEngine) Compare(loan, monthlyRate decimal.Decimal, terms int, system domain.AmortizationSystem, extras map[int]decimal.Decimal, shortenTermOnExtra bool) (domain.ScheduleSummary, domain.ScheduleSummary, error) {
	cmp, err := fe.ComparePlan(loan, monthlyRate, terms, system, UniformPlan(extras, shortenTermOnExtra))
	if err != nil {
		return domain.ScheduleSummary{}, domain.ScheduleSummary{}, err
	}
	return cmp.SummaryWithoutExtras, cmp.SummaryWithExtras, nil
}

// ComparePlan runs the baseline and the with-extras schedule and keeps both.
// The with-extras summary carries the savings relative to the baseline.
func (fe *FinancingEngine) ComparePlan(loan, monthlyRate decimal.Decimal, terms int, system domain.AmortizationSystem, plan ExtraPlan) (*Comparison, error) {
	baseline, err := fe.CalculatePlan(loan, monthlyRate, terms, system, nil)
	if err != nil {
		return nil, fmt.Errorf("baseline schedule: %w", err)
	}
	withExtras, err := fe.CalculatePlan(loan, monthlyRate, terms, system, plan)
	if err != nil {
		return nil, fmt.Errorf("schedule with extras: %w", err)
	}

	baseSummary := Summarize(system, baseline)
	extraSummary := WithSavings(Summarize(system, withExtras), baseSummary)

	return &Comparison{
		ScheduleWithoutExtras: baseline,
		ScheduleWithExtras:    withExtras,
		SummaryWithoutExtras:  baseSummary,
		SummaryWithExtras:     extraSummary,
	}, nil
}

func (fe *FinancingEngine) logger() Logger {
	if fe.Logger == nil {
		return NopLogger{}
	}
	return fe.Logger
}

func (fe *FinancingEngine) observe(event ReplanEvent) {
	fe.logger().Debugf("month %d: %s extra %s (%s, ratio %s) -> amortization %s, effective terms %d",
		event.Month, event.Strategy, event.Extra.StringFixed(2), event.Bucket,
		event.ExtraRatio.StringFixed(4), event.Amortization.StringFixed(2), event.EffectiveTerms)
	if fe.Observer != nil {
		fe.Observer(event)
	}
}

func validateLoan(loan decimal.Decimal, terms int) error {
	if terms <= 0 || terms > MaxTermMonths {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidTerms, terms, MaxTermMonths)
	}
	if !loan.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidLoanAmount, loan.String())
	}
	return nil
}
