package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/erickbogarin/amortiza/internal/config"
	"github.com/erickbogarin/amortiza/internal/simulation"
	"github.com/erickbogarin/amortiza/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: amortiza-tui <request-file>")
		os.Exit(1)
	}
	requestPath := os.Args[1]

	if _, err := os.Stat(requestPath); os.IsNotExist(err) {
		fmt.Printf("Error: request file not found: %s\n", requestPath)
		os.Exit(1)
	}

	settings, err := config.LoadSettings("")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	sim := simulation.NewSimulator(nil, simulation.Options{
		HonorPaymentStrategies: settings.Simulation.HonorPaymentStrategies,
		Concurrency:            settings.Simulation.Concurrency,
	})

	p := tea.NewProgram(
		tui.NewModel(requestPath, sim),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
