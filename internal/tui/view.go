package tui

import tea "github.com/charmbracelet/bubbletea"

// View is one workspace tab.
type View interface {
	Name() string
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	ShortHelp() string
}
