package scenes

import (
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/erickbogarin/amortiza/internal/output"
	"github.com/erickbogarin/amortiza/internal/tui/components"
	"github.com/erickbogarin/amortiza/internal/tui/tuistyles"
)

// ChartModel plots the outstanding balance of both schedules
type ChartModel struct {
	sim    *output.Simulation
	width  int
	height int
}

func NewChartModel() *ChartModel {
	return &ChartModel{width: 80, height: 20}
}

func (m *ChartModel) SetSimulation(sim *output.Simulation) {
	m.sim = sim
}

func (m *ChartModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ChartModel) View() string {
	if m.sim == nil || m.sim.Result == nil {
		return tuistyles.InfoStyle.Render("No simulation selected")
	}
	res := m.sim.Result
	return components.NewBalanceChart("Outstanding balance: "+m.sim.Name).
		WithSize(m.width-4, max(m.height-8, 5)).
		AddSeries("without extras", balances(res.ScheduleWithoutExtras), tuistyles.ColorWithoutExtras).
		AddSeries("with extras", balances(res.ScheduleWithExtras), tuistyles.ColorWithExtras).
		Render()
}

func balances(schedule domain.Schedule) []float64 {
	points := make([]float64, len(schedule))
	for i, inst := range schedule {
		points[i] = inst.RemainingBalance.InexactFloat64()
	}
	return points
}
