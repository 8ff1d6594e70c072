package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"System",
		"TotalMonths",
		"TotalPaid",
		"TotalInterest",
		"FirstInstallment",
		"PeakInstallment",
		"LastInstallment",
		"InterestDiffFromBase",
		"PaidDiffFromBase",
		"MonthsDiffFromBase",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		string(result.Request.System),
		strconv.Itoa(result.Summary.TotalMonths),
		result.Summary.TotalPaid.StringFixed(2),
		result.Summary.TotalInterest.StringFixed(2),
		result.FirstInstallment.StringFixed(2),
		result.PeakInstallment.StringFixed(2),
		result.LastInstallment.StringFixed(2),
		result.InterestDiffFromBase.StringFixed(2),
		result.PaidDiffFromBase.StringFixed(2),
		strconv.Itoa(result.MonthsDiffFromBase),
	}
}
