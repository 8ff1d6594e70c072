package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, m.ensureComparison()

	case ComparisonLoadedMsg:
		m.comparisons[msg.Index] = msg.Set
		if msg.Index == m.selected {
			m.compareModel.SetComparison(msg.Set)
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case SimulationsLoadedMsg:
		m.loading = false
		m.simulations = msg.Simulations
		m.resize()
		m.selectSimulation(0)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case m.err != nil:
		// any other key dismisses the error
		m.err = nil
		return m, nil

	case key.Matches(msg, keys.Help):
		return m, navigate(SceneHelp)

	case key.Matches(msg, keys.Back):
		if m.currentScene != SceneSummary {
			if m.previousScene != m.currentScene {
				return m, navigate(m.previousScene)
			}
			return m, navigate(SceneSummary)
		}
		return m, nil

	case key.Matches(msg, keys.Summary):
		return m, navigate(SceneSummary)

	case key.Matches(msg, keys.Schedule):
		return m, navigate(SceneSchedule)

	case key.Matches(msg, keys.Chart):
		return m, navigate(SceneChart)

	case key.Matches(msg, keys.Compare):
		return m, navigate(SceneCompare)

	case key.Matches(msg, keys.Next):
		m.selectSimulation(m.selected + 1)
		return m, m.ensureComparison()

	case key.Matches(msg, keys.Prev):
		m.selectSimulation(m.selected - 1)
		return m, m.ensureComparison()
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentScene == SceneSchedule {
		updated, cmd := m.scheduleModel.Update(msg)
		m.scheduleModel = updated
		return m, cmd
	}
	return m, nil
}
