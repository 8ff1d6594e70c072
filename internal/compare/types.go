package compare

import (
	"fmt"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one simulated variant of the base request
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description"`
	Request      domain.SimulationRequest `json:"request"`
	Summary      domain.ScheduleSummary   `json:"summary"`
	Baseline     domain.ScheduleSummary   `json:"baseline"`

	FirstInstallment decimal.Decimal `json:"firstInstallment"`
	PeakInstallment  decimal.Decimal `json:"peakInstallment"`
	LastInstallment  decimal.Decimal `json:"lastInstallment"`

	// Differences from the base variant; negative means cheaper or shorter
	InterestDiffFromBase decimal.Decimal `json:"interestDiffFromBase"`
	PaidDiffFromBase     decimal.Decimal `json:"paidDiffFromBase"`
	MonthsDiffFromBase   int             `json:"monthsDiffFromBase"`
}

// ComparisonSet is the base request and its what-if variants
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

func newComparisonResult(name, description string, res *domain.SimulationResult) ComparisonResult {
	out := ComparisonResult{
		ScenarioName: name,
		Description:  description,
		Request:      res.Request,
		Summary:      res.SummaryWithExtras,
		Baseline:     res.SummaryWithoutExtras,
	}

	schedule := res.ScheduleWithExtras
	if len(schedule) > 0 {
		out.FirstInstallment = schedule[0].TotalDue.Round(2)
		out.LastInstallment = schedule[len(schedule)-1].TotalDue.Round(2)
		peak := decimal.Zero
		for _, inst := range schedule {
			peak = decimal.Max(peak, inst.TotalDue)
		}
		out.PeakInstallment = peak.Round(2)
	}
	return out
}

func (r ComparisonResult) withDiff(base ComparisonResult) ComparisonResult {
	r.InterestDiffFromBase = r.Summary.TotalInterest.Sub(base.Summary.TotalInterest)
	r.PaidDiffFromBase = r.Summary.TotalPaid.Sub(base.Summary.TotalPaid)
	r.MonthsDiffFromBase = r.Summary.TotalMonths - base.Summary.TotalMonths
	return r
}

// GenerateRecommendations points out the variants that beat the base on
// interest, term and peak installment.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	cheapest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Summary.TotalInterest.LessThan(cheapest.Summary.TotalInterest) {
			cheapest = alt
		}
	}
	if cheapest != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest interest: %s pays %s less interest than %s",
			cheapest.ScenarioName, base.Summary.TotalInterest.Sub(cheapest.Summary.TotalInterest).StringFixed(2), base.ScenarioName))
	}

	shortest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Summary.TotalMonths < shortest.Summary.TotalMonths {
			shortest = alt
		}
	}
	if shortest != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Shortest term: %s finishes %d months earlier than %s",
			shortest.ScenarioName, base.Summary.TotalMonths-shortest.Summary.TotalMonths, base.ScenarioName))
	}

	lightest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PeakInstallment.LessThan(lightest.PeakInstallment) {
			lightest = alt
		}
	}
	if lightest != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest peak installment: %s never asks more than %s a month",
			lightest.ScenarioName, lightest.PeakInstallment.StringFixed(2)))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, base.ScenarioName+" is already the best of the compared variants")
	}
	return recommendations
}
