package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/erickbogarin/amortiza/internal/domain"
)

// CSVSummarizer writes one row per simulation and variant
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(sims []Simulation) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Simulation", "Variant", "System", "TotalMonths", "TotalPaid", "TotalInterest", "TotalAmortized", "MonthsSaved", "InterestSaved"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, sim := range sims {
		if sim.Result == nil {
			continue
		}
		name := displayName(sim, i)
		rows := [][]string{
			summaryRow(name, "without_extras", sim.Result.SummaryWithoutExtras),
			summaryRow(name, "with_extras", sim.Result.SummaryWithExtras),
		}
		if err := w.WriteAll(rows); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summaryRow(name, variant string, s domain.ScheduleSummary) []string {
	return []string{
		name,
		variant,
		string(s.System),
		strconv.Itoa(s.TotalMonths),
		s.TotalPaid.StringFixed(2),
		s.TotalInterest.StringFixed(2),
		s.TotalAmortized.StringFixed(2),
		strconv.Itoa(s.MonthsSaved),
		s.InterestSaved.StringFixed(2),
	}
}

// ScheduleCSVFormatter writes every installment of both schedules
type ScheduleCSVFormatter struct{}

func (s ScheduleCSVFormatter) Name() string { return "schedule-csv" }

func (s ScheduleCSVFormatter) Format(sims []Simulation) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Simulation", "Variant", "Month", "Principal", "Interest", "TotalDue", "ExtraPaid", "RemainingBalance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, sim := range sims {
		if sim.Result == nil {
			continue
		}
		name := displayName(sim, i)
		if err := writeSchedule(w, name, "without_extras", sim.Result.ScheduleWithoutExtras); err != nil {
			return nil, err
		}
		if err := writeSchedule(w, name, "with_extras", sim.Result.ScheduleWithExtras); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSchedule(w *csv.Writer, name, variant string, schedule domain.Schedule) error {
	for _, row := range schedule {
		record := []string{
			name,
			variant,
			strconv.Itoa(row.Month),
			row.Principal.StringFixed(2),
			row.Interest.StringFixed(2),
			row.TotalDue.StringFixed(2),
			row.ExtraPaid.StringFixed(2),
			row.RemainingBalance.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
