package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Summary  key.Binding
	Schedule key.Binding
	Chart    key.Binding
	Compare  key.Binding
	Next     key.Binding
	Prev     key.Binding
	Help     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Summary:  key.NewBinding(key.WithKeys("1", "s"), key.WithHelp("1/s", "summary")),
	Schedule: key.NewBinding(key.WithKeys("2", "t"), key.WithHelp("2/t", "schedule")),
	Chart:    key.NewBinding(key.WithKeys("3", "c"), key.WithHelp("3/c", "balance chart")),
	Compare:  key.NewBinding(key.WithKeys("4", "m"), key.WithHelp("4/m", "compare strategies")),
	Next:     key.NewBinding(key.WithKeys("tab", "n"), key.WithHelp("tab", "next simulation")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab", "N"), key.WithHelp("shift+tab", "previous simulation")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Summary, k.Schedule, k.Chart, k.Compare, k.Next, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Summary, k.Schedule, k.Chart, k.Compare},
		{k.Next, k.Prev},
		{k.Help, k.Back, k.Quit},
	}
}
