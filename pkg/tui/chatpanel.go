package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ChatTurn is one transcript entry.
type ChatTurn struct {
	Role    string
	Content string
}

// ChatPanel renders the tail of the fix transcript. Multi-line messages
// are flattened into indented rows; only the newest rows that fit are
// shown.
type ChatPanel struct {
	turns  []ChatTurn
	width  int
	height int
}

// NewChatPanel creates an empty chat panel.
func NewChatPanel() *ChatPanel {
	return &ChatPanel{height: 6}
}

// SetSize sets the rendered dimensions.
func (p *ChatPanel) SetSize(width, height int) {
	p.width = width
	if height < 1 {
		height = 1
	}
	p.height = height
}

// SetTurns replaces the transcript wholesale, oldest first.
func (p *ChatPanel) SetTurns(turns []ChatTurn) {
	p.turns = turns
}

// View renders the newest rows that fit.
func (p *ChatPanel) View() string {
	if len(p.turns) == 0 {
		return LabelStyle.Render("No fix requests yet")
	}

	var rows []string
	for _, turn := range p.turns {
		role := roleStyle(turn.Role).Render(turn.Role)
		for i, line := range strings.Split(turn.Content, "\n") {
			if i == 0 {
				rows = append(rows, role+" "+line)
				continue
			}
			rows = append(rows, "  "+line)
		}
	}

	start := len(rows) - p.height
	if start < 0 {
		start = 0
	}
	rows = rows[start:]
	if p.width > 0 {
		for i, row := range rows {
			rows[i] = lipgloss.NewStyle().MaxWidth(p.width).Render(row)
		}
	}
	return strings.Join(rows, "\n")
}

func roleStyle(role string) lipgloss.Style {
	if role == "user" {
		return lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
}
