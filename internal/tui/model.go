package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/erickbogarin/amortiza/internal/compare"
	"github.com/erickbogarin/amortiza/internal/config"
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/erickbogarin/amortiza/internal/output"
	"github.com/erickbogarin/amortiza/internal/simulation"
	"github.com/erickbogarin/amortiza/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	requestPath string
	simulator   *simulation.Simulator
	comparer    *compare.CompareEngine

	simulations []output.Simulation
	selected    int
	// comparisons are computed on first visit, keyed by simulation index
	comparisons map[int]*compare.ComparisonSet

	summaryModel  *scenes.SummaryModel
	scheduleModel *scenes.ScheduleModel
	chartModel    *scenes.ChartModel
	compareModel  *scenes.CompareModel
	help          help.Model

	err     error
	loading bool
}

// NewModel creates a model that simulates every request in requestPath
func NewModel(requestPath string, sim *simulation.Simulator) Model {
	if sim == nil {
		sim = simulation.NewSimulator(nil, simulation.Options{})
	}
	h := help.New()
	h.ShowAll = true
	return Model{
		currentScene: SceneSummary,
		requestPath:  requestPath,
		simulator:    sim,
		comparer: compare.NewCompareEngine(simulation.NewSimulator(sim.Engine, simulation.Options{
			HonorPaymentStrategies: true,
			Concurrency:            sim.Options.Concurrency,
		})),
		comparisons:   make(map[int]*compare.ComparisonSet),
		summaryModel:  scenes.NewSummaryModel(),
		scheduleModel: scenes.NewScheduleModel(),
		chartModel:    scenes.NewChartModel(),
		compareModel:  scenes.NewCompareModel(),
		help:          h,
		loading:       true,
		width:         80,
		height:        24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadSimulationsCmd(m.requestPath, m.simulator)
}

// loadSimulationsCmd parses the request file and runs every request in it
func loadSimulationsCmd(path string, sim *simulation.Simulator) tea.Cmd {
	return func() tea.Msg {
		named, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		reqs := make([]domain.SimulationRequest, len(named))
		for i, n := range named {
			reqs[i] = n.Request
		}

		results := sim.RunBatch(context.Background(), reqs)
		sims := make([]output.Simulation, len(results))
		for i, r := range results {
			if r.Err != nil {
				return ErrorMsg{Err: r.Err}
			}
			name := named[i].Name
			if name == "" {
				name = path
			}
			sims[i] = output.Simulation{Name: name, Result: r.Result}
		}
		return SimulationsLoadedMsg{Simulations: sims}
	}
}

// Selected returns the simulation in focus, or nil before loading
func (m Model) Selected() *output.Simulation {
	if m.selected < 0 || m.selected >= len(m.simulations) {
		return nil
	}
	return &m.simulations[m.selected]
}

// CurrentScene reports the scene being shown
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

func (m *Model) selectSimulation(i int) {
	if len(m.simulations) == 0 {
		return
	}
	m.selected = (i + len(m.simulations)) % len(m.simulations)
	sim := m.Selected()
	m.summaryModel.SetSimulation(sim)
	m.scheduleModel.SetSimulation(sim)
	m.chartModel.SetSimulation(sim)
	m.compareModel.SetComparison(m.comparisons[m.selected])
}

// ensureComparison starts comparing the selected simulation when the compare
// scene is showing and no comparison is cached yet.
func (m *Model) ensureComparison() tea.Cmd {
	sim := m.Selected()
	if m.currentScene != SceneCompare || sim == nil {
		return nil
	}
	if _, ok := m.comparisons[m.selected]; ok {
		return nil
	}
	m.compareModel.SetComparison(nil)

	index, name, req := m.selected, sim.Name, sim.Result.Request
	comparer := m.comparer
	return func() tea.Msg {
		set, err := comparer.Compare(context.Background(), req, compare.CompareOptions{BaseScenarioName: name})
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ComparisonLoadedMsg{Index: index, Set: set}
	}
}

func (m *Model) resize() {
	contentHeight := m.height - 4
	m.summaryModel.SetSize(m.width, contentHeight)
	m.scheduleModel.SetSize(m.width, contentHeight)
	m.chartModel.SetSize(m.width, contentHeight)
	m.compareModel.SetSize(m.width, contentHeight)
	m.help.Width = m.width
}
