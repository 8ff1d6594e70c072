package calculation

import (
	"errors"
	"testing"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	referenceLoan = decimal.NewFromInt(121000)
	referenceRate = domain.Annual(decimal.RequireFromString("0.13")).ToMonthly().Value
)

const referenceTerms = 420

func assertMoney(t *testing.T, expected float64, actual decimal.Decimal, delta float64, msg string) {
	t.Helper()
	assert.InDelta(t, expected, actual.InexactFloat64(), delta, msg)
}

type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func TestNewFinancingEngine(t *testing.T) {
	engine := NewFinancingEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should default to no-op logger")
	assert.Nil(t, engine.Observer, "Should have no observer")
}

func TestFinancingEngine_SetLogger(t *testing.T) {
	engine := NewFinancingEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestFinancingEngine_LogsSchedules(t *testing.T) {
	engine := NewFinancingEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	extras := map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}
	_, err := engine.Calculate(referenceLoan, referenceRate, referenceTerms, domain.ConstantAmortization, extras, true)
	require.NoError(t, err)

	assert.Len(t, logger.messages, 3, "Should log start, one re-plan and finish")
	for _, msg := range logger.messages {
		assert.Contains(t, msg, "DEBUG: ")
	}
}

func TestFinancingEngine_Guards(t *testing.T) {
	engine := NewFinancingEngine()

	tests := []struct {
		name    string
		loan    decimal.Decimal
		terms   int
		system  domain.AmortizationSystem
		wantErr error
	}{
		{"zero terms", referenceLoan, 0, domain.ConstantAmortization, ErrInvalidTerms},
		{"negative terms", referenceLoan, -5, domain.ConstantInstallment, ErrInvalidTerms},
		{"terms above cap", referenceLoan, MaxTermMonths + 1, domain.ConstantAmortization, ErrInvalidTerms},
		{"zero loan", decimal.Zero, 12, domain.ConstantAmortization, ErrInvalidLoanAmount},
		{"negative loan", decimal.NewFromInt(-10), 12, domain.ConstantInstallment, ErrInvalidLoanAmount},
		{"unknown system", referenceLoan, 12, domain.AmortizationSystem("GERMAN"), ErrUnknownSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := engine.Calculate(tt.loan, referenceRate, tt.terms, tt.system, nil, false)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "Should wrap %v, got %v", tt.wantErr, err)
			assert.Nil(t, schedule)
		})
	}
}

func TestFinancingEngine_MaxTermAccepted(t *testing.T) {
	engine := NewFinancingEngine()

	schedule, err := engine.Calculate(decimal.NewFromInt(1200), decimal.Zero, MaxTermMonths, domain.ConstantAmortization, nil, false)
	require.NoError(t, err)
	assert.Equal(t, MaxTermMonths, schedule.Len())
}

func TestFinancingEngine_BaselineSnapshot(t *testing.T) {
	engine := NewFinancingEngine()

	schedule, err := engine.Calculate(referenceLoan, referenceRate, referenceTerms, domain.ConstantAmortization, nil, false)
	require.NoError(t, err)

	summary := Summarize(domain.ConstantAmortization, schedule)
	assert.Equal(t, 420, summary.TotalMonths)
	assertMoney(t, 381737.55, summary.TotalPaid, 0.02, "total paid")
	assertMoney(t, 260737.57, summary.TotalInterest, 0.02, "total interest")
	assertMoney(t, 121000.00, summary.TotalAmortized, 0.001, "total amortized")
	assertMoney(t, 1526.7534, schedule[0].TotalDue, 0.0001, "first installment")
}

func TestFinancingEngine_ExtraPaymentScenario(t *testing.T) {
	engine := NewFinancingEngine()
	extras := map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}

	schedule, err := engine.Calculate(referenceLoan, referenceRate, referenceTerms, domain.ConstantAmortization, extras, true)
	require.NoError(t, err)

	assert.Equal(t, 48, schedule.Len(), "Large extra should collapse the term to 48 months")
	last, ok := schedule.Last()
	require.True(t, ok)
	assert.True(t, last.RemainingBalance.LessThan(decimal.RequireFromString("0.01")), "Should end paid off")

	summary := Summarize(domain.ConstantAmortization, schedule)
	assertMoney(t, 139786.53, summary.TotalPaid, 0.02, "total paid")
	assertMoney(t, 18786.51, summary.TotalInterest, 0.02, "total interest")
	assertMoney(t, 121000.00, summary.TotalAmortized, 0.001, "total amortized")
}

func TestFinancingEngine_ReduceInstallmentKeepsTerm(t *testing.T) {
	engine := NewFinancingEngine()
	extras := map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}

	schedule, err := engine.Calculate(referenceLoan, referenceRate, referenceTerms, domain.ConstantAmortization, extras, false)
	require.NoError(t, err)

	assert.Equal(t, referenceTerms, schedule.Len())
	assert.True(t, schedule[8].TotalDue.LessThan(schedule[6].TotalDue.Div(decimal.NewFromInt(2))),
		"Installment after a large extra should drop sharply")

	summary := Summarize(domain.ConstantAmortization, schedule)
	assertMoney(t, 221080.53, summary.TotalPaid, 0.02, "total paid")
	assertMoney(t, 100080.52, summary.TotalInterest, 0.02, "total interest")
}

func TestFinancingEngine_CalculatePlanHonoursPerMonthPolicy(t *testing.T) {
	engine := NewFinancingEngine()
	plan := ExtraPlan{
		8: {Amount: decimal.NewFromInt(76000), Strategy: domain.ReduceInstallment},
	}

	perMonth, err := engine.CalculatePlan(referenceLoan, referenceRate, referenceTerms, domain.ConstantAmortization, plan)
	require.NoError(t, err)
	uniform, err := engine.Calculate(referenceLoan, referenceRate, referenceTerms, domain.ConstantAmortization,
		map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}, false)
	require.NoError(t, err)

	assert.Equal(t, uniform, perMonth)
}

func TestFinancingEngine_Compare(t *testing.T) {
	engine := NewFinancingEngine()
	extras := map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}

	without, with, err := engine.Compare(referenceLoan, referenceRate, referenceTerms, domain.ConstantAmortization, extras, true)
	require.NoError(t, err)

	assert.Equal(t, 420, without.TotalMonths)
	assert.Equal(t, 48, with.TotalMonths)
	assert.Equal(t, 372, with.MonthsSaved)
	assert.Equal(t, 0, without.MonthsSaved)
	assertMoney(t, 260737.57-18786.51, with.InterestSaved, 0.04, "interest saved")
	assert.True(t, with.TotalInterest.LessThanOrEqual(without.TotalInterest))
}

func TestFinancingEngine_ComparePrice(t *testing.T) {
	engine := NewFinancingEngine()
	extras := map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}

	cmp, err := engine.ComparePlan(referenceLoan, referenceRate, referenceTerms, domain.ConstantInstallment, UniformPlan(extras, true))
	require.NoError(t, err)

	assert.Equal(t, 420, cmp.SummaryWithoutExtras.TotalMonths)
	assertMoney(t, 527557.80, cmp.SummaryWithoutExtras.TotalPaid, 0.05, "baseline paid")
	assertMoney(t, 406556.68, cmp.SummaryWithoutExtras.TotalInterest, 0.05, "baseline interest")

	assert.Equal(t, 53, cmp.SummaryWithExtras.TotalMonths)
	assertMoney(t, 142167.23, cmp.SummaryWithExtras.TotalPaid, 0.05, "paid with extras")
	assertMoney(t, 21167.11, cmp.SummaryWithExtras.TotalInterest, 0.05, "interest with extras")
	assert.Equal(t, 367, cmp.SummaryWithExtras.MonthsSaved)
	assert.Len(t, cmp.ScheduleWithExtras, 53)
}

func TestFinancingEngine_ObserverReceivesReplan(t *testing.T) {
	engine := NewFinancingEngine()
	var events []ReplanEvent
	engine.SetObserver(func(e ReplanEvent) { events = append(events, e) })

	extras := map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}
	_, err := engine.Calculate(referenceLoan, referenceRate, referenceTerms, domain.ConstantAmortization, extras, true)
	require.NoError(t, err)

	require.Len(t, events, 1)
	event := events[0]
	assert.Equal(t, domain.ConstantAmortization, event.System)
	assert.Equal(t, 8, event.Month)
	assert.Equal(t, BucketLarge, event.Bucket)
	assert.Equal(t, 149, event.LinearMonths)
	assert.Equal(t, 40, event.RemainingMonths)
	assert.Equal(t, 48, event.EffectiveTerms)
}

func TestFinancingEngine_PriceNeverReplans(t *testing.T) {
	engine := NewFinancingEngine()
	var events []ReplanEvent
	engine.SetObserver(func(e ReplanEvent) { events = append(events, e) })

	extras := map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}
	_, err := engine.Calculate(referenceLoan, referenceRate, referenceTerms, domain.ConstantInstallment, extras, false)
	require.NoError(t, err)

	assert.Empty(t, events)
}

func TestFinancingEngine_ZeroRateDegeneracy(t *testing.T) {
	engine := NewFinancingEngine()
	loan := decimal.NewFromInt(12000)

	for _, system := range []domain.AmortizationSystem{domain.ConstantAmortization, domain.ConstantInstallment} {
		t.Run(string(system), func(t *testing.T) {
			schedule, err := engine.Calculate(loan, decimal.Zero, 12, system, nil, false)
			require.NoError(t, err)
			require.Len(t, schedule, 12)

			for _, row := range schedule {
				assert.True(t, row.TotalDue.Equal(decimal.NewFromInt(1000)), "month %d due %s", row.Month, row.TotalDue)
				assert.True(t, row.Interest.IsZero())
			}

			summary := Summarize(system, schedule)
			assert.Equal(t, "12000.00", summary.TotalPaid.StringFixed(2))
			assert.Equal(t, "0.00", summary.TotalInterest.StringFixed(2))
			assert.Equal(t, "12000.00", summary.TotalAmortized.StringFixed(2))
		})
	}
}

func TestFinancingEngine_FullAmortization(t *testing.T) {
	engine := NewFinancingEngine()

	cases := []struct {
		name   string
		system domain.AmortizationSystem
		extras map[int]decimal.Decimal
		short  bool
	}{
		{"sac baseline", domain.ConstantAmortization, nil, false},
		{"sac shorten", domain.ConstantAmortization, map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}, true},
		{"sac reduce", domain.ConstantAmortization, map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}, false},
		{"sac several extras", domain.ConstantAmortization, map[int]decimal.Decimal{
			3: decimal.NewFromInt(500), 24: decimal.NewFromInt(15000), 60: decimal.NewFromInt(40000),
		}, true},
		{"price baseline", domain.ConstantInstallment, nil, false},
		{"price with extra", domain.ConstantInstallment, map[int]decimal.Decimal{8: decimal.NewFromInt(76000)}, true},
		{"extra larger than balance", domain.ConstantAmortization, map[int]decimal.Decimal{2: decimal.NewFromInt(500000)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			schedule, err := engine.Calculate(referenceLoan, referenceRate, referenceTerms, tc.system, tc.extras, tc.short)
			require.NoError(t, err)

			amortized := decimal.Zero
			for _, row := range schedule {
				amortized = amortized.Add(row.Principal).Add(row.ExtraPaid)
				assert.False(t, row.RemainingBalance.IsNegative(), "balance never negative")
			}
			if tc.name == "extra larger than balance" {
				assert.True(t, amortized.GreaterThanOrEqual(referenceLoan))
				return
			}
			assertMoney(t, 121000, amortized, 0.01, "amortized principal matches loan")
		})
	}
}
