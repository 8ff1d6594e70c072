package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erickbogarin/amortiza/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdata = "../../test/testdata"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "amortiza", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	expected := []string{"simulate", "schedule", "validate", "serve", "history", "compare", "solve", "version"}
	for _, name := range expected {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "command %s should be registered", name)
		assert.Equal(t, name, found.Name())
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "amortiza dev")
}

func TestSimulate_ReferenceFile(t *testing.T) {
	stdout, _, err := execute(t, "simulate", filepath.Join(testdata, "reference_sac.yaml"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "LOAN SIMULATION: reference-sac")
	assert.Contains(t, stdout, "Months saved:    372")
	assert.Contains(t, stdout, "121,000.00")
}

func TestSimulate_JSONBatch(t *testing.T) {
	stdout, _, err := execute(t, "simulate", "--format", "json", filepath.Join(testdata, "batch.yaml"))
	require.NoError(t, err)

	var sims []output.Simulation
	require.NoError(t, json.Unmarshal([]byte(stdout), &sims))
	require.Len(t, sims, 4)

	assert.Equal(t, "sac-shorten", sims[0].Name)
	assert.Equal(t, 48, sims[0].Result.SummaryWithExtras.TotalMonths)

	// without --honor-strategies every extra shortens the term
	assert.Equal(t, 48, sims[1].Result.SummaryWithExtras.TotalMonths)

	assert.Equal(t, 53, sims[2].Result.SummaryWithExtras.TotalMonths)
	assert.True(t, sims[3].Result.SummaryWithExtras.TotalPaid.Equal(decimal.NewFromInt(12000)))
}

func TestSimulate_HonorStrategies(t *testing.T) {
	stdout, _, err := execute(t, "simulate", "--format", "json", "--honor-strategies", filepath.Join(testdata, "batch.yaml"))
	require.NoError(t, err)

	var sims []output.Simulation
	require.NoError(t, json.Unmarshal([]byte(stdout), &sims))
	require.Len(t, sims, 4)
	assert.Equal(t, 420, sims[1].Result.SummaryWithExtras.TotalMonths)
}

func TestSimulate_Flags(t *testing.T) {
	stdout, _, err := execute(t, "simulate",
		"--loan", "121000", "--annual-rate", "13%", "--terms", "420", "--system", "PRICE",
		"--extra", "8:76000", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3, "header plus one row per variant")
	assert.Contains(t, lines[1], "command-line")
	assert.Contains(t, lines[2], ",53,")
}

func TestSimulate_NoInput(t *testing.T) {
	_, _, err := execute(t, "simulate")
	assert.ErrorContains(t, err, "request file")
}

func TestSimulate_UnknownFormat(t *testing.T) {
	_, _, err := execute(t, "simulate", "--format", "pdf", filepath.Join(testdata, "reference_sac.yaml"))
	assert.ErrorContains(t, err, "unsupported format")
}

func TestSimulate_InvalidFile(t *testing.T) {
	_, _, err := execute(t, "simulate", filepath.Join(testdata, "invalid.yaml"))
	assert.ErrorContains(t, err, "extra_payments[0].month")
}

func TestSimulate_OutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.html")

	stdout, stderr, err := execute(t, "simulate", "--format", "html", "--output", target,
		filepath.Join(testdata, "reference_price.json"))
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Report saved to")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reference-price")
}

func TestSimulate_Save(t *testing.T) {
	_, stderr, err := execute(t, "simulate", "--save", filepath.Join(testdata, "reference_sac.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "Saved reference-sac as ")
}

func TestSchedule(t *testing.T) {
	stdout, _, err := execute(t, "schedule", filepath.Join(testdata, "reference_sac.yaml"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "Simulation,Variant,Month"))
	assert.Len(t, lines, 1+420+48)
}

func TestValidate(t *testing.T) {
	stdout, _, err := execute(t, "validate", filepath.Join(testdata, "batch.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid (4 simulation(s))")

	_, _, err = execute(t, "validate", filepath.Join(testdata, "invalid.yaml"))
	assert.Error(t, err)
}

func TestHistoryList_Empty(t *testing.T) {
	stdout, _, err := execute(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No simulations stored")
}

func TestHistoryShow_NotFound(t *testing.T) {
	_, _, err := execute(t, "history", "show", "missing")
	assert.ErrorContains(t, err, "not found")
}

func TestParseExtraFlag(t *testing.T) {
	tests := []struct {
		raw      string
		month    int
		amount   string
		strategy string
		wantErr  bool
	}{
		{raw: "8:76000", month: 8, amount: "76000"},
		{raw: "12:500.50:REDUCE_INSTALLMENT", month: 12, amount: "500.5", strategy: "REDUCE_INSTALLMENT"},
		{raw: "8", wantErr: true},
		{raw: "x:100", wantErr: true},
		{raw: "8:abc", wantErr: true},
		{raw: "1:2:3:4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseExtraFlag(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.month, got.Month)
			assert.Equal(t, tt.amount, got.Amount.String())
			assert.Equal(t, tt.strategy, got.Strategy)
		})
	}
}

func TestCompare_ReferenceFile(t *testing.T) {
	stdout, _, err := execute(t, "compare", filepath.Join(testdata, "reference_sac.yaml"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "AMORTIZATION STRATEGY COMPARISON")
	assert.Contains(t, stdout, "reference-sac (base)")
	assert.Contains(t, stdout, "reference-sac_price-shorten")
}

func TestCompare_BatchNeedsName(t *testing.T) {
	_, _, err := execute(t, "compare", filepath.Join(testdata, "batch.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pick one with --name")

	stdout, _, err := execute(t, "compare", "--name", "price-shorten", "--with", "no-extras", "--format", "csv",
		filepath.Join(testdata, "batch.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(stdout, "\n"))
}

func TestCompare_ListTemplates(t *testing.T) {
	stdout, _, err := execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sac-reduce")
	assert.Contains(t, stdout, "double-extras")
}

func TestSolve_Flags(t *testing.T) {
	stdout, _, err := execute(t, "solve", "--loan", "121000", "--annual-rate", "13%", "--terms", "420",
		"--month", "8", "--goal", "payoff", "--target-months", "48")
	require.NoError(t, err)

	assert.Contains(t, stdout, "EXTRA PAYMENT SOLVER")
	assert.Contains(t, stdout, "pay off within 48 months")
}

func TestSolve_SweepJSON(t *testing.T) {
	stdout, _, err := execute(t, "solve", "--loan", "121000", "--annual-rate", "0.13", "--terms", "420",
		"--months", "6,24", "--target-months", "48", "--format", "json")
	require.NoError(t, err)

	var sweep map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &sweep))
	assert.Len(t, sweep["results"], 2)
}

func TestSolve_Infeasible(t *testing.T) {
	_, _, err := execute(t, "solve", "--loan", "121000", "--annual-rate", "0.13", "--terms", "420",
		"--month", "8", "--target-months", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reaches the goal")
}
