package calculation

import (
	"testing"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sacInput(extras ExtraPlan) ScheduleInput {
	return ScheduleInput{
		LoanAmount:  referenceLoan,
		MonthlyRate: referenceRate,
		TotalTerms:  referenceTerms,
		Extras:      extras,
	}
}

func TestConstantAmortizationScheduler_System(t *testing.T) {
	assert.Equal(t, domain.ConstantAmortization, NewConstantAmortizationScheduler().System())
}

func TestConstantAmortizationScheduler_ConstantPrincipal(t *testing.T) {
	schedule := NewConstantAmortizationScheduler().Generate(sacInput(nil))
	require.Len(t, schedule, referenceTerms)

	base := schedule[0].Principal
	assertMoney(t, 288.095238095238, base, 1e-9, "base amortization")
	for _, row := range schedule[:len(schedule)-1] {
		assert.True(t, row.Principal.Equal(base), "month %d principal %s", row.Month, row.Principal)
		assert.True(t, row.ExtraPaid.IsZero())
	}
}

func TestConstantAmortizationScheduler_MonotonicDecrease(t *testing.T) {
	schedule := NewConstantAmortizationScheduler().Generate(sacInput(nil))

	for i := 1; i < len(schedule); i++ {
		assert.True(t, schedule[i].TotalDue.LessThan(schedule[i-1].TotalDue),
			"month %d due %s should be below month %d due %s",
			schedule[i].Month, schedule[i].TotalDue, schedule[i-1].Month, schedule[i-1].TotalDue)
	}
}

func TestConstantAmortizationScheduler_MonthsAreSequential(t *testing.T) {
	schedule := NewConstantAmortizationScheduler().Generate(sacInput(UniformPlan(
		map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}, true)))

	for i, row := range schedule {
		assert.Equal(t, i+1, row.Month)
		assert.True(t, row.TotalDue.Equal(row.Principal.Add(row.Interest)), "due excludes extra")
	}
}

func TestConstantAmortizationScheduler_ExtraAppearsOnce(t *testing.T) {
	schedule := NewConstantAmortizationScheduler().Generate(sacInput(UniformPlan(
		map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}, true)))

	count := 0
	for _, row := range schedule {
		if row.ExtraPaid.IsPositive() {
			count++
			assert.Equal(t, 8, row.Month)
			assert.True(t, row.ExtraPaid.Equal(decimal.NewFromInt(76000)))
		}
	}
	assert.Equal(t, 1, count)

	row, ok := schedule.Month(8)
	require.True(t, ok)
	assertMoney(t, 42695.238095238096, row.RemainingBalance, 1e-6, "balance after extra")
}

func TestConstantAmortizationScheduler_SmallExtraKeepsTerm(t *testing.T) {
	schedule := NewConstantAmortizationScheduler().Generate(sacInput(UniformPlan(
		map[int]decimal.Decimal{8: decimal.NewFromInt(1000)}, true)))

	assert.Len(t, schedule, referenceTerms, "Extra below 5% must not shorten the term")

	summary := Summarize(domain.ConstantAmortization, schedule)
	assertMoney(t, 379623.65, summary.TotalPaid, 0.02, "total paid")
	assertMoney(t, 258623.64, summary.TotalInterest, 0.02, "total interest")
}

func TestConstantAmortizationScheduler_MaterialExtraHalvesTerm(t *testing.T) {
	var events []ReplanEvent
	in := sacInput(UniformPlan(map[int]decimal.Decimal{8: decimal.NewFromInt(10000)}, true))
	in.Observer = func(e ReplanEvent) { events = append(events, e) }

	schedule := NewConstantAmortizationScheduler().Generate(in)

	require.Len(t, events, 1)
	assert.Equal(t, BucketMaterial, events[0].Bucket)
	assert.Equal(t, 378, events[0].LinearMonths)
	assert.Equal(t, 189, events[0].RemainingMonths)
	assert.Len(t, schedule, 197)

	summary := Summarize(domain.ConstantAmortization, schedule)
	assertMoney(t, 236532.83, summary.TotalPaid, 0.02, "total paid")
	assertMoney(t, 115532.82, summary.TotalInterest, 0.02, "total interest")
}

func TestConstantAmortizationScheduler_IgnoresNonPositiveExtras(t *testing.T) {
	plan := ExtraPlan{
		3: {Amount: decimal.Zero, Strategy: domain.ShortenTerm},
		5: {Amount: decimal.NewFromInt(-100), Strategy: domain.ShortenTerm},
	}
	withNoise := NewConstantAmortizationScheduler().Generate(sacInput(plan))
	baseline := NewConstantAmortizationScheduler().Generate(sacInput(nil))

	assert.Equal(t, baseline, withNoise)
}

func TestConstantAmortizationScheduler_StopsWhenPaidOff(t *testing.T) {
	schedule := NewConstantAmortizationScheduler().Generate(sacInput(UniformPlan(
		map[int]decimal.Decimal{10: decimal.NewFromInt(200000)}, false)))

	require.Len(t, schedule, 10)
	last, _ := schedule.Last()
	assert.True(t, last.RemainingBalance.IsZero())
	assert.True(t, last.Principal.IsZero(), "Extra covers the whole balance")
}
