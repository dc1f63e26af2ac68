package tui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorBg).
			Background(ColorPrimary)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorFg)

	DirStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Status styles used for the project scalar and step icons.
	StatusRunning = lipgloss.NewStyle().Foreground(ColorWarning)
	StatusDone    = lipgloss.NewStyle().Foreground(ColorSuccess)
	StatusFailed  = lipgloss.NewStyle().Foreground(ColorError)
	StatusPending = lipgloss.NewStyle().Foreground(ColorMuted)

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// StatusStyle maps a status string to its style.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "running":
		return StatusRunning
	case "done":
		return StatusDone
	case "failed":
		return StatusFailed
	default:
		return StatusPending
	}
}

// StatusIcon returns the single-rune marker for a status string.
func StatusIcon(status string) string {
	switch status {
	case "running":
		return StatusRunning.Render("●")
	case "done":
		return StatusDone.Render("✓")
	case "failed":
		return StatusFailed.Render("✕")
	default:
		return StatusPending.Render("○")
	}
}
