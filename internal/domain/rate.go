package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MonthsPerYear is the compounding ratio between annual and monthly rates.
const MonthsPerYear = 12

// RateKind tags an InterestRate as annual or monthly
type RateKind string

const (
	RateAnnual  RateKind = "annual"
	RateMonthly RateKind = "monthly"
)

// InterestRate is a rate expressed as a fraction (0.13 = 13%) for a given period.
// Negative values are not rejected here; the request boundary is responsible
// for validating them.
type InterestRate struct {
	Kind  RateKind        `yaml:"kind" json:"kind"`
	Value decimal.Decimal `yaml:"value" json:"value"`
}

// Annual creates an annual interest rate
func Annual(rate decimal.Decimal) InterestRate {
	return InterestRate{Kind: RateAnnual, Value: rate}
}

// Monthly creates a monthly interest rate
func Monthly(rate decimal.Decimal) InterestRate {
	return InterestRate{Kind: RateMonthly, Value: rate}
}

// ToMonthly returns the compound-equivalent monthly rate: (1+r)^(1/12) - 1.
func (r InterestRate) ToMonthly() InterestRate {
	if r.Kind == RateMonthly {
		return r
	}
	return Monthly(compound(r.Value, 1.0/MonthsPerYear))
}

// ToAnnual returns the compound-equivalent annual rate: (1+r)^12 - 1.
func (r InterestRate) ToAnnual() InterestRate {
	if r.Kind == RateAnnual {
		return r
	}
	return Annual(compound(r.Value, MonthsPerYear))
}

// IsZero reports whether the rate is exactly zero
func (r InterestRate) IsZero() bool {
	return r.Value.IsZero()
}

// Percent returns the rate as a percentage, e.g. 13 for 0.13
func (r InterestRate) Percent() decimal.Decimal {
	return r.Value.Mul(decimal.NewFromInt(100))
}

// String renders the rate as "13.0000% a.a." or "1.0237% a.m."
func (r InterestRate) String() string {
	suffix := "a.a."
	if r.Kind == RateMonthly {
		suffix = "a.m."
	}
	return fmt.Sprintf("%s%% %s", r.Percent().StringFixed(4), suffix)
}

// compound evaluates (1+rate)^exponent - 1. Fractional powers are not
// supported by decimal.Pow, so the exponentiation runs in float64.
func compound(rate decimal.Decimal, exponent float64) decimal.Decimal {
	base := 1 + rate.InexactFloat64()
	return decimal.NewFromFloat(math.Pow(base, exponent) - 1)
}
