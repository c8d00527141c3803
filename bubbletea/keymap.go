package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the diff viewer.
type KeyMap struct {
	Up                key.Binding
	Down              key.Binding
	HalfPageUp        key.Binding
	HalfPageDown      key.Binding
	GotoTop           key.Binding
	GotoBottom        key.Binding
	NextHunk          key.Binding
	PrevHunk          key.Binding
	ToggleMode        key.Binding
	ToggleLineNumbers key.Binding
	ToggleWhitespace  key.Binding
	ToggleWrap        key.Binding
	Yank              key.Binding
	Reload            key.Binding
	Help              key.Binding
	Quit              key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		NextHunk: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next hunk"),
		),
		PrevHunk: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous hunk"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "display mode"),
		),
		ToggleLineNumbers: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "line numbers"),
		),
		ToggleWhitespace: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "whitespace"),
		),
		ToggleWrap: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "word wrap"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank diff"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
