package calculation

import (
	"testing"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		ratio string
		want  ReplanBucket
	}{
		{"0", BucketSmall},
		{"0.0499", BucketSmall},
		{"0.05", BucketMaterial},
		{"0.1999", BucketMaterial},
		{"0.20", BucketLarge},
		{"1", BucketLarge},
	}

	for _, tt := range tests {
		t.Run(tt.ratio, func(t *testing.T) {
			assert.Equal(t, tt.want, bucketFor(decimal.RequireFromString(tt.ratio)))
		})
	}
}

func TestExtraRatio(t *testing.T) {
	ratio := extraRatio(decimal.NewFromInt(25), decimal.NewFromInt(75))
	assert.Equal(t, "0.25", ratio.String())

	assert.True(t, extraRatio(decimal.NewFromInt(10), decimal.Zero).Equal(decimal.NewFromInt(1)))
	assert.True(t, extraRatio(decimal.NewFromInt(10), decimal.NewFromInt(-20)).Equal(decimal.NewFromInt(1)))
}

func TestReplan_ShortenTerm(t *testing.T) {
	base := decimal.RequireFromString("288.095238095238")
	balance := decimal.RequireFromString("42695.238095238096")

	event := replan(domain.ShortenTerm, 8, balance, decimal.NewFromInt(76000), base, base, 420)

	assert.Equal(t, BucketLarge, event.Bucket)
	assert.True(t, event.Factor.Equal(decimal.RequireFromString("0.27")))
	assert.Equal(t, 149, event.LinearMonths)
	assert.Equal(t, 40, event.RemainingMonths)
	assert.Equal(t, 48, event.EffectiveTerms)
	assertMoney(t, 1067.380952380952, event.Amortization, 1e-9, "new amortization")
}

func TestReplan_SmallExtraSpreadsOverRemainingTerm(t *testing.T) {
	base := decimal.NewFromInt(100)
	event := replan(domain.ShortenTerm, 20, decimal.NewFromInt(9000), decimal.NewFromInt(100), base, base, 120)

	assert.Equal(t, BucketSmall, event.Bucket)
	assert.Equal(t, 120, event.EffectiveTerms)
	assert.Equal(t, 100, event.RemainingMonths)
	assert.True(t, event.Amortization.Equal(decimal.NewFromInt(90)))
}

func TestReplan_ReduceInstallmentIgnoresBucket(t *testing.T) {
	base := decimal.NewFromInt(100)
	event := replan(domain.ReduceInstallment, 20, decimal.NewFromInt(4000), decimal.NewFromInt(6000), base, base, 120)

	assert.Equal(t, BucketLarge, event.Bucket)
	assert.True(t, event.Factor.IsZero())
	assert.Equal(t, 120, event.EffectiveTerms)
	assert.True(t, event.Amortization.Equal(decimal.NewFromInt(40)))
}

func TestReplan_NoMonthsLeftKeepsAmortization(t *testing.T) {
	base := decimal.NewFromInt(100)
	event := replan(domain.ReduceInstallment, 120, decimal.NewFromInt(50), decimal.NewFromInt(10), base, base, 120)

	assert.Equal(t, 120, event.EffectiveTerms)
	assert.True(t, event.Amortization.Equal(base))
}

func TestReplan_AtLeastOneMonth(t *testing.T) {
	base := decimal.NewFromInt(100)
	event := replan(domain.ShortenTerm, 5, decimal.NewFromInt(50), decimal.NewFromInt(5000), base, base, 120)

	assert.Equal(t, 1, event.LinearMonths)
	assert.Equal(t, 1, event.RemainingMonths)
	assert.Equal(t, 6, event.EffectiveTerms)
	assert.True(t, event.Amortization.Equal(decimal.NewFromInt(50)))
}
