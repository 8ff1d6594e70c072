package calculation

import (
	"github.com/shopspring/decimal"
)

const (
	// workingPlaces is the internal scale for balances, interest and
	// installments. It bounds the digit growth of repeated decimal
	// multiplication across hundreds of months.
	workingPlaces = 12

	// centPlaces is the scale of every published monetary aggregate
	centPlaces = 2

	// MaxTermMonths caps the loop length of a single schedule (100 years)
	MaxTermMonths = 1200
)

// PaidOffThreshold is the balance at or below which a loan counts as settled
var PaidOffThreshold = decimal.New(1, -centPlaces)

func quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(workingPlaces)
}

// RoundCents rounds half away from zero to two decimals, i.e. half-up for
// the non-negative amounts a schedule produces.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(centPlaces)
}

// divide performs a division at working scale
func divide(a, b decimal.Decimal) decimal.Decimal {
	return quantize(a.Div(b))
}

func isPaidOff(balance decimal.Decimal) bool {
	return balance.LessThanOrEqual(PaidOffThreshold)
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// settle caps the scheduled principal so that principal plus extra never
// exceeds the outstanding balance.
func settle(principal, extra, balance decimal.Decimal) decimal.Decimal {
	if principal.Add(extra).GreaterThan(balance) {
		return floorZero(balance.Sub(extra))
	}
	return principal
}
