package calculation

import (
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
)

// ReplanBucket classifies an extra payment by its share of the debt it was
// applied to.
type ReplanBucket string

const (
	// BucketSmall is an extra below 5% of the pre-payment balance
	BucketSmall ReplanBucket = "small"
	// BucketMaterial is an extra in [5%, 20%)
	BucketMaterial ReplanBucket = "material"
	// BucketLarge is an extra of 20% or more
	BucketLarge ReplanBucket = "large"
)

// Empirical constants calibrated against bank simulators. They are not
// derived from a closed-form amortization formula and must not be tuned.
var (
	smallExtraRatio    = decimal.RequireFromString("0.05")
	materialExtraRatio = decimal.RequireFromString("0.20")
	materialFactor     = decimal.RequireFromString("0.5")
	largeFactor        = decimal.RequireFromString("0.27")
)

type replanKey struct {
	strategy domain.ExtraPaymentStrategy
	bucket   ReplanBucket
}

// replanRule is one cell of the decision table. A zero factor keeps the
// original term and spreads the balance over the months left in it.
type replanRule struct {
	factor decimal.Decimal
}

func (r replanRule) keepsTerm() bool {
	return r.factor.IsZero()
}

var replanTable = map[replanKey]replanRule{
	{domain.ShortenTerm, BucketSmall}:          {},
	{domain.ShortenTerm, BucketMaterial}:       {factor: materialFactor},
	{domain.ShortenTerm, BucketLarge}:          {factor: largeFactor},
	{domain.ReduceInstallment, BucketSmall}:    {},
	{domain.ReduceInstallment, BucketMaterial}: {},
	{domain.ReduceInstallment, BucketLarge}:    {},
}

// ReplanEvent describes one re-planning decision taken after an extra payment
type ReplanEvent struct {
	System          domain.AmortizationSystem
	Month           int
	Strategy        domain.ExtraPaymentStrategy
	Bucket          ReplanBucket
	ExtraRatio      decimal.Decimal
	Extra           decimal.Decimal
	Balance         decimal.Decimal
	Factor          decimal.Decimal
	LinearMonths    int
	RemainingMonths int
	Amortization    decimal.Decimal
	EffectiveTerms  int
}

// ReplanObserver receives every re-planning decision as it is taken
type ReplanObserver func(ReplanEvent)

// extraRatio is extra / (balance + extra) clamped to [0, 1], where balance is
// the debt left after the payment.
func extraRatio(extra, balance decimal.Decimal) decimal.Decimal {
	before := balance.Add(extra)
	if !before.IsPositive() {
		return decimal.NewFromInt(1)
	}
	ratio := extra.Div(before)
	if ratio.IsNegative() {
		return decimal.Zero
	}
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return ratio
}

func bucketFor(ratio decimal.Decimal) ReplanBucket {
	switch {
	case ratio.LessThan(smallExtraRatio):
		return BucketSmall
	case ratio.LessThan(materialExtraRatio):
		return BucketMaterial
	default:
		return BucketLarge
	}
}

// replan decides the amortization and effective term for the months that
// follow an extra payment made in month. balance is the debt left after it.
func replan(strategy domain.ExtraPaymentStrategy, month int, balance, extra, baseAmortization, current decimal.Decimal, totalTerms int) ReplanEvent {
	ratio := extraRatio(extra, balance)
	bucket := bucketFor(ratio)
	rule, ok := replanTable[replanKey{strategy, bucket}]
	if !ok {
		rule = replanTable[replanKey{domain.ShortenTerm, bucket}]
	}

	event := ReplanEvent{
		Month:      month,
		Strategy:   strategy,
		Bucket:     bucket,
		ExtraRatio: ratio,
		Extra:      extra,
		Balance:    balance,
		Factor:     rule.factor,
	}

	if rule.keepsTerm() {
		event.Amortization = current
		event.EffectiveTerms = totalTerms
		if left := totalTerms - month; left > 0 {
			event.Amortization = divide(balance, decimal.NewFromInt(int64(left)))
			event.RemainingMonths = left
		}
		return event
	}

	linear := balance.Div(baseAmortization).Ceil().IntPart()
	remaining := decimal.NewFromInt(linear).Mul(rule.factor).Floor().IntPart()
	if remaining < 1 {
		remaining = 1
	}
	event.LinearMonths = int(linear)
	event.RemainingMonths = int(remaining)
	event.Amortization = divide(balance, decimal.NewFromInt(remaining))
	event.EffectiveTerms = month + int(remaining)
	return event
}
