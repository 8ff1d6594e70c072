package tui

import (
	"github.com/erickbogarin/amortiza/internal/compare"
	"github.com/erickbogarin/amortiza/internal/output"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSummary Scene = iota
	SceneSchedule
	SceneChart
	SceneCompare
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneSummary:
		return "Summary"
	case SceneSchedule:
		return "Schedule"
	case SceneChart:
		return "Balance"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ComparisonLoadedMsg carries the variants of the simulation at Index
type ComparisonLoadedMsg struct {
	Index int
	Set   *compare.ComparisonSet
}

// SimulationsLoadedMsg carries the results of the request file
type SimulationsLoadedMsg struct {
	Simulations []output.Simulation
}
