package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LogLine is one rendered row of the log feed.
type LogLine struct {
	Timestamp string
	Agent     string
	Level     string
	Msg       string
}

// LogPanel renders the tail of the event feed. It always shows the
// newest lines; there is no scrollback beyond what fits.
type LogPanel struct {
	lines  []LogLine
	width  int
	height int
}

// NewLogPanel creates an empty log panel.
func NewLogPanel() *LogPanel {
	return &LogPanel{height: 6}
}

// SetSize sets the rendered dimensions.
func (p *LogPanel) SetSize(width, height int) {
	p.width = width
	if height < 1 {
		height = 1
	}
	p.height = height
}

// SetLines replaces the backing lines wholesale, oldest first.
func (p *LogPanel) SetLines(lines []LogLine) {
	p.lines = lines
}

// View renders the newest lines that fit.
func (p *LogPanel) View() string {
	if len(p.lines) == 0 {
		return LabelStyle.Render("Waiting for events...")
	}

	start := len(p.lines) - p.height
	if start < 0 {
		start = 0
	}

	var rows []string
	for _, line := range p.lines[start:] {
		agent := lipgloss.NewStyle().Foreground(AgentColor(line.Agent)).Render(line.Agent)
		msg := line.Msg
		if line.Level == "error" {
			msg = ErrorStyle.Render(msg)
		}
		row := fmt.Sprintf("%s %s %s", LabelStyle.Render(shortTime(line.Timestamp)), agent, msg)
		if p.width > 0 {
			row = lipgloss.NewStyle().MaxWidth(p.width).Render(row)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

// shortTime trims an RFC3339 timestamp down to HH:MM:SS for display.
func shortTime(ts string) string {
	if idx := strings.IndexByte(ts, 'T'); idx >= 0 && len(ts) >= idx+9 {
		return ts[idx+1 : idx+9]
	}
	return ts
}
