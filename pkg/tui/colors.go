// Package tui provides the shared styles, key maps, and components for
// the AstroMind workspace client.
package tui

import "github.com/charmbracelet/lipgloss"

// Tokyo Night inspired palette.
var (
	ColorPrimary = lipgloss.Color("#7aa2f7") // Blue
	ColorAccent  = lipgloss.Color("#bb9af7") // Purple
	ColorSuccess = lipgloss.Color("#9ece6a") // Green
	ColorWarning = lipgloss.Color("#e0af68") // Yellow
	ColorError   = lipgloss.Color("#f7768e") // Red
	ColorMuted   = lipgloss.Color("#565f89") // Gray
	ColorBg      = lipgloss.Color("#1a1b26") // Dark background
	ColorFg      = lipgloss.Color("#c0caf5") // Foreground
	ColorFgDim   = lipgloss.Color("#a9b1d6") // Dimmed foreground

	// Agent colors for the log feed and pipeline tiers.
	ColorAgentCEO       = lipgloss.Color("#e07353")
	ColorAgentDeveloper = lipgloss.Color("#00D4AA")
	ColorAgentReviewer  = lipgloss.Color("#0066FF")
	ColorAgentSystem    = lipgloss.Color("#a9b1d6")
)

// AgentColor maps an agent name from the backend to its display color.
func AgentColor(agent string) lipgloss.Color {
	switch agent {
	case "ceo":
		return ColorAgentCEO
	case "developer":
		return ColorAgentDeveloper
	case "reviewer":
		return ColorAgentReviewer
	default:
		return ColorAgentSystem
	}
}
