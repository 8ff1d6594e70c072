package compare

import (
	"context"
	"testing"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceRequest() domain.SimulationRequest {
	return domain.SimulationRequest{
		LoanAmount:    decimal.NewFromInt(121000),
		InterestRate:  domain.Annual(decimal.RequireFromString("0.13")),
		TermsInMonths: 420,
		System:        domain.ConstantAmortization,
		ExtraPayments: []domain.ExtraPayment{{Month: 8, Amount: decimal.NewFromInt(76000), Strategy: domain.ShortenTerm}},
	}
}

func TestCompareEngine_DefaultTemplates(t *testing.T) {
	engine := NewCompareEngine(nil)

	compSet, err := engine.Compare(context.Background(), referenceRequest(), CompareOptions{BaseScenarioName: "reference"})
	require.NoError(t, err)

	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "reference", compSet.BaseScenarioName)
	assert.Equal(t, 48, compSet.BaseResult.Summary.TotalMonths)
	require.Len(t, compSet.AlternativeResults, len(DefaultTemplates))

	sacShorten := compSet.AlternativeResults[0]
	assert.Equal(t, "reference_sac-shorten", sacShorten.ScenarioName)
	assert.True(t, sacShorten.InterestDiffFromBase.IsZero(), "Same plan as the base")
	assert.Equal(t, 0, sacShorten.MonthsDiffFromBase)

	sacReduce := compSet.AlternativeResults[1]
	assert.Equal(t, 420, sacReduce.Summary.TotalMonths)
	assert.Equal(t, 372, sacReduce.MonthsDiffFromBase)
	assert.InDelta(t, 100080.52, sacReduce.Summary.TotalInterest.InexactFloat64(), 0.02)
	assert.True(t, sacReduce.InterestDiffFromBase.IsPositive())

	priceShorten := compSet.AlternativeResults[2]
	assert.Equal(t, domain.ConstantInstallment, priceShorten.Request.System)
	assert.Equal(t, 53, priceShorten.Summary.TotalMonths)
	assert.True(t, priceShorten.PeakInstallment.LessThan(compSet.BaseResult.PeakInstallment),
		"PRICE installments start lower than SAC")
}

func TestCompareEngine_Recommendations(t *testing.T) {
	compSet, err := NewCompareEngine(nil).Compare(context.Background(), referenceRequest(), CompareOptions{})
	require.NoError(t, err)

	require.Len(t, compSet.Recommendations, 1)
	assert.Contains(t, compSet.Recommendations[0], "Lowest peak installment: base_price-shorten")
}

func TestCompareEngine_BaseIsUntouched(t *testing.T) {
	req := referenceRequest()
	_, err := NewCompareEngine(nil).Compare(context.Background(), req,
		CompareOptions{Templates: []string{"double-extras", "price-reduce"}})
	require.NoError(t, err)

	assert.Equal(t, referenceRequest(), req)
}

func TestCompareEngine_UnknownTemplate(t *testing.T) {
	_, err := NewCompareEngine(nil).Compare(context.Background(), referenceRequest(),
		CompareOptions{Templates: []string{"refinance"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template refinance not found")
}

func TestCompareEngine_InvalidBase(t *testing.T) {
	req := referenceRequest()
	req.TermsInMonths = 0

	_, err := NewCompareEngine(nil).Compare(context.Background(), req, CompareOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to calculate base scenario")
}

func TestCompareEngine_NoExtrasTemplate(t *testing.T) {
	compSet, err := NewCompareEngine(nil).Compare(context.Background(), referenceRequest(),
		CompareOptions{Templates: []string{"no-extras"}})
	require.NoError(t, err)

	alt := compSet.AlternativeResults[0]
	assert.Equal(t, 420, alt.Summary.TotalMonths)
	assert.Equal(t, 0, alt.Summary.MonthsSaved)
	assert.InDelta(t, 381737.55, alt.Summary.TotalPaid.InexactFloat64(), 0.02)
}
