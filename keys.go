package main

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/LFroesch/shelf/internal/header"
)

// appKeyMap holds the listing's own bindings. Header bindings are merged in
// for help output.
type appKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Parent   key.Binding
	CopyPath key.Binding
	External key.Binding
	Hidden   key.Binding
	Help     key.Binding
	Quit     key.Binding

	header header.KeyMap
}

func defaultAppKeyMap() appKeyMap {
	return appKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "right", "l"),
			key.WithHelp("enter/l", "open"),
		),
		Parent: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "parent"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		External: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open externally"),
		),
		Hidden: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "hidden files"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		header: header.DefaultKeyMap(),
	}
}

func (k appKeyMap) ShortHelp() []key.Binding {
	return append([]key.Binding{k.Open, k.Parent, k.header.Search, k.header.EditPath}, k.Help, k.Quit)
}

func (k appKeyMap) FullHelp() [][]key.Binding {
	return append([][]key.Binding{
		{k.Up, k.Down, k.Open, k.Parent},
		{k.CopyPath, k.External, k.Hidden, k.Help, k.Quit},
	}, k.header.FullHelp()...)
}
