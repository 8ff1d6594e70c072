package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleSummary aggregates a schedule. MonthsSaved and InterestSaved are
// only populated on a with-extras summary, relative to its baseline.
type ScheduleSummary struct {
	System         AmortizationSystem `yaml:"system" json:"system"`
	TotalPaid      decimal.Decimal    `yaml:"total_paid" json:"total_paid"`
	TotalInterest  decimal.Decimal    `yaml:"total_interest" json:"total_interest"`
	TotalAmortized decimal.Decimal    `yaml:"total_amortized" json:"total_amortized"`
	TotalMonths    int                `yaml:"total_months" json:"total_months"`
	MonthsSaved    int                `yaml:"months_saved" json:"months_saved"`
	InterestSaved  decimal.Decimal    `yaml:"interest_saved" json:"interest_saved"`
}

// SimulationRequest is the validated input of a simulation
type SimulationRequest struct {
	LoanAmount    decimal.Decimal    `yaml:"loan_amount" json:"loan_amount"`
	InterestRate  InterestRate       `yaml:"interest_rate" json:"interest_rate"`
	TermsInMonths int                `yaml:"terms_in_months" json:"terms_in_months"`
	System        AmortizationSystem `yaml:"system" json:"system"`
	ExtraPayments []ExtraPayment     `yaml:"extra_payments,omitempty" json:"extra_payments,omitempty"`
}

// HasExtraPayments reports whether any extra payment has a positive amount
func (r SimulationRequest) HasExtraPayments() bool {
	for _, p := range r.ExtraPayments {
		if p.Amount.IsPositive() {
			return true
		}
	}
	return false
}

// SimulationResult holds both schedules and their comparative summaries
type SimulationResult struct {
	Request               SimulationRequest `yaml:"request" json:"request"`
	ScheduleWithoutExtras Schedule          `yaml:"schedule_without_extras" json:"schedule_without_extras"`
	ScheduleWithExtras    Schedule          `yaml:"schedule_with_extras" json:"schedule_with_extras"`
	SummaryWithoutExtras  ScheduleSummary   `yaml:"summary_without_extras" json:"summary_without_extras"`
	SummaryWithExtras     ScheduleSummary   `yaml:"summary_with_extras" json:"summary_with_extras"`
}

// SimulationRecord is the persisted projection of a result; schedules are
// regenerated on demand and never stored.
type SimulationRecord struct {
	ID                   string            `yaml:"id" json:"id"`
	CreatedAt            time.Time         `yaml:"created_at" json:"created_at"`
	Request              SimulationRequest `yaml:"request" json:"request"`
	SummaryWithoutExtras ScheduleSummary   `yaml:"summary_without_extras" json:"summary_without_extras"`
	SummaryWithExtras    ScheduleSummary   `yaml:"summary_with_extras" json:"summary_with_extras"`

	// HonorPaymentStrategies is the simulator option the summaries were
	// produced with; replays must use the same one.
	HonorPaymentStrategies bool `yaml:"honor_payment_strategies" json:"honor_payment_strategies"`
}

// NewSimulationRecord projects a result into its storable form
func NewSimulationRecord(id string, createdAt time.Time, result *SimulationResult) SimulationRecord {
	return SimulationRecord{
		ID:                   id,
		CreatedAt:            createdAt,
		Request:              result.Request,
		SummaryWithoutExtras: result.SummaryWithoutExtras,
		SummaryWithExtras:    result.SummaryWithExtras,
	}
}
