package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmortizationSystem selects how a loan is repaid
type AmortizationSystem string

const (
	// ConstantAmortization holds the principal share of each installment constant (SAC)
	ConstantAmortization AmortizationSystem = "SAC"
	// ConstantInstallment holds the total installment constant (PRICE / French annuity)
	ConstantInstallment AmortizationSystem = "PRICE"
)

// ParseAmortizationSystem accepts the canonical names plus their long forms
func ParseAmortizationSystem(s string) (AmortizationSystem, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SAC", "CONSTANT_AMORTIZATION":
		return ConstantAmortization, nil
	case "PRICE", "CONSTANT_INSTALLMENT":
		return ConstantInstallment, nil
	default:
		return "", fmt.Errorf("unknown amortization system %q", s)
	}
}

// Description returns a human-readable label for the system
func (s AmortizationSystem) Description() string {
	switch s {
	case ConstantAmortization:
		return "Constant amortization (SAC)"
	case ConstantInstallment:
		return "Constant installment (PRICE)"
	default:
		return string(s)
	}
}

// ExtraPaymentStrategy decides what an extra payment does to the remaining schedule
type ExtraPaymentStrategy string

const (
	ShortenTerm       ExtraPaymentStrategy = "SHORTEN_TERM"
	ReduceInstallment ExtraPaymentStrategy = "REDUCE_INSTALLMENT"
)

// ParseExtraPaymentStrategy parses a strategy name; empty input means ShortenTerm
func ParseExtraPaymentStrategy(s string) (ExtraPaymentStrategy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "SHORTEN_TERM", "TERM":
		return ShortenTerm, nil
	case "REDUCE_INSTALLMENT", "INSTALLMENT":
		return ReduceInstallment, nil
	default:
		return "", fmt.Errorf("unknown extra payment strategy %q", s)
	}
}

// ExtraPayment is an out-of-schedule principal payment made in a given month
type ExtraPayment struct {
	Month    int                  `yaml:"month" json:"month"`
	Amount   decimal.Decimal      `yaml:"amount" json:"amount"`
	Strategy ExtraPaymentStrategy `yaml:"strategy" json:"strategy"`
}

// Installment is one row of an amortization schedule
type Installment struct {
	Month            int             `yaml:"month" json:"month"`
	Principal        decimal.Decimal `yaml:"principal" json:"principal"`
	Interest         decimal.Decimal `yaml:"interest" json:"interest"`
	TotalDue         decimal.Decimal `yaml:"total_due" json:"total_due"` // principal + interest, extra excluded
	RemainingBalance decimal.Decimal `yaml:"remaining_balance" json:"remaining_balance"`
	ExtraPaid        decimal.Decimal `yaml:"extra_paid" json:"extra_paid"`
}

// Schedule is a month-ordered sequence of installments
type Schedule []Installment

// Len returns the number of months in the schedule
func (s Schedule) Len() int {
	return len(s)
}

// Last returns the final installment, or false for an empty schedule
func (s Schedule) Last() (Installment, bool) {
	if len(s) == 0 {
		return Installment{}, false
	}
	return s[len(s)-1], true
}

// Month returns the installment for a 1-based month number
func (s Schedule) Month(month int) (Installment, bool) {
	for _, inst := range s {
		if inst.Month == month {
			return inst, true
		}
	}
	return Installment{}, false
}
