package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/erickbogarin/amortiza/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = tuistyles.ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err))
	case m.loading:
		content = tuistyles.BorderStyle.Render("⠋ Simulating " + m.requestPath + "...")
	default:
		content = m.renderScene()
	}
	return m.renderApp(content)
}

func (m Model) renderScene() string {
	switch m.currentScene {
	case SceneSummary:
		return m.summaryModel.View()
	case SceneSchedule:
		return m.scheduleModel.View()
	case SceneChart:
		return m.chartModel.View()
	case SceneCompare:
		return m.compareModel.View()
	case SceneHelp:
		return tuistyles.BorderStyle.Render("amortiza: loan amortization simulator\n\n" + m.help.View(keys))
	default:
		return "Unknown scene"
	}
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(m.height-4, 1)
	container := lipgloss.NewStyle().Height(contentHeight).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and the simulation tabs
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("AMORTIZA - Loan Simulator")

	tabs := make([]string, 0, len(m.simulations))
	for i, sim := range m.simulations {
		style := tuistyles.TabStyle
		if i == m.selected {
			style = tuistyles.SelectedTabStyle
		}
		tabs = append(tabs, style.Render(sim.Name))
	}

	breadcrumb := tuistyles.SubtitleStyle.Render(m.currentScene.String())
	if len(tabs) > 0 {
		breadcrumb = lipgloss.JoinHorizontal(lipgloss.Top, breadcrumb, " │ ", strings.Join(tabs, ""))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, breadcrumb)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	short := m.help
	short.ShowAll = false
	return tuistyles.StatusBarStyle.Width(m.width).Render(short.View(keys))
}
