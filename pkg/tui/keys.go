package tui

import "github.com/charmbracelet/bubbles/key"

// Keys defines the workspace keybindings.
type Keys struct {
	Quit        key.Binding
	Help        key.Binding
	Back        key.Binding
	NavUp       key.Binding
	NavDown     key.Binding
	Select      key.Binding
	Save        key.Binding
	Fix         key.Binding
	Review      key.Binding
	Finder      key.Binding
	FocusCycle  key.Binding
	TabPrev     key.Binding
	TabNext     key.Binding
	VersionPrev key.Binding
	VersionNext key.Binding
	Preview     key.Binding
}

// NewKeys returns the canonical workspace keybindings.
func NewKeys() Keys {
	return Keys{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NavUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "up"),
		),
		NavDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Fix: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "request fix"),
		),
		Review: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "deep review"),
		),
		Finder: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "find file"),
		),
		FocusCycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle panes"),
		),
		TabPrev: key.NewBinding(
			key.WithKeys("ctrl+left", "ctrl+pgup"),
			key.WithHelp("ctrl+←", "prev tab"),
		),
		TabNext: key.NewBinding(
			key.WithKeys("ctrl+right", "ctrl+pgdown"),
			key.WithHelp("ctrl+→", "next tab"),
		),
		VersionPrev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "older version"),
		),
		VersionNext: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "newer version"),
		),
		Preview: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "markdown preview"),
		),
	}
}
