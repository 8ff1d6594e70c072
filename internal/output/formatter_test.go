package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/erickbogarin/amortiza/internal/simulation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func referenceSimulations(t *testing.T) []Simulation {
	t.Helper()
	req := domain.SimulationRequest{
		LoanAmount:    decimal.NewFromInt(121000),
		InterestRate:  domain.Annual(decimal.RequireFromString("0.13")),
		TermsInMonths: 420,
		System:        domain.ConstantAmortization,
		ExtraPayments: []domain.ExtraPayment{{Month: 8, Amount: decimal.NewFromInt(76000), Strategy: domain.ShortenTerm}},
	}
	result, err := simulation.NewSimulator(nil, simulation.Options{}).Run(context.Background(), req)
	require.NoError(t, err)
	return []Simulation{{Name: "apartment", Result: result}}
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "console-verbose", "json", "yaml", "csv", "schedule-csv", "html"} {
		formatter := GetFormatterByName(name)
		require.NotNil(t, formatter, name)
		assert.Equal(t, name, formatter.Name())
	}

	assert.Equal(t, "console-verbose", GetFormatterByName("verbose").Name())
	assert.Equal(t, "schedule-csv", GetFormatterByName(" Schedule ").Name())
	assert.Nil(t, GetFormatterByName("non-existent"), "Should return nil formatter for non-existent name")
}

func TestAvailableFormats(t *testing.T) {
	formats := AvailableFormats()
	assert.Len(t, formats, 7)
	assert.Contains(t, formats, "schedule-csv")
	assert.Contains(t, AvailableFormatAliases(), "verbose")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "381,737.55", FormatMoney(decimal.RequireFromString("381737.549")))
	assert.Equal(t, "0.00", FormatMoney(decimal.Zero))
	assert.Equal(t, "1,526.75", FormatMoney(decimal.RequireFromString("1526.753405434582")))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(referenceSimulations(t))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "LOAN SIMULATION: apartment")
	assert.Contains(t, text, "121,000.00")
	assert.Contains(t, text, "13.0000% a.a.")
	assert.Contains(t, text, "Constant amortization (SAC)")
	assert.Contains(t, text, "Months saved:    372")
	assert.NotContains(t, text, "SCHEDULE WITH EXTRAS")
}

func TestConsoleFormatter_Verbose(t *testing.T) {
	out, err := ConsoleFormatter{Verbose: true}.Format(referenceSimulations(t))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "SCHEDULE WITH EXTRAS")
	assert.Contains(t, text, "76,000.00")
}

func TestConsoleFormatter_MissingResult(t *testing.T) {
	_, err := ConsoleFormatter{}.Format([]Simulation{{Name: "empty"}})
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{Pretty: true}.Format(referenceSimulations(t))
	require.NoError(t, err)

	var decoded []struct {
		Name   string `json:"name"`
		Result struct {
			SummaryWithExtras struct {
				TotalMonths int    `json:"total_months"`
				MonthsSaved int    `json:"months_saved"`
				System      string `json:"system"`
			} `json:"summary_with_extras"`
			ScheduleWithExtras []json.RawMessage `json:"schedule_with_extras"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "apartment", decoded[0].Name)
	assert.Equal(t, 48, decoded[0].Result.SummaryWithExtras.TotalMonths)
	assert.Equal(t, 372, decoded[0].Result.SummaryWithExtras.MonthsSaved)
	assert.Equal(t, "SAC", decoded[0].Result.SummaryWithExtras.System)
	assert.Len(t, decoded[0].Result.ScheduleWithExtras, 48)
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(referenceSimulations(t))
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "apartment", decoded[0]["name"])
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(referenceSimulations(t))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Simulation", records[0][0])
	assert.Equal(t, []string{"apartment", "without_extras", "SAC", "420"}, records[1][:4])
	assert.Equal(t, "with_extras", records[2][1])
	assert.Equal(t, "48", records[2][3])
	assert.Equal(t, "372", records[2][7])
}

func TestScheduleCSVFormatter(t *testing.T) {
	out, err := ScheduleCSVFormatter{}.Format(referenceSimulations(t))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1+420+48)

	extraRow := records[1+420+7]
	assert.Equal(t, "with_extras", extraRow[1])
	assert.Equal(t, "8", extraRow[2])
	assert.Equal(t, "76000.00", extraRow[6])
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(referenceSimulations(t))
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "<!DOCTYPE html>"))
	assert.Contains(t, text, "<h2>apartment</h2>")
	assert.Contains(t, text, "Months saved: 372")
	assert.Contains(t, text, "Month 8: 76,000.00 (SHORTEN_TERM)")
}
