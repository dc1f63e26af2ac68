package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	pkgtui "github.com/sashaai2006/AstroMind/pkg/tui"
)

// TabBar renders the editor/pipeline tab row.
type TabBar struct {
	tabs   []string
	active int
	width  int
}

// NewTabBar creates a tab bar over the given names.
func NewTabBar(tabs []string) *TabBar {
	return &TabBar{tabs: tabs}
}

// SetActive sets the active tab.
func (t *TabBar) SetActive(index int) {
	if index >= 0 && index < len(t.tabs) {
		t.active = index
	}
}

// Active returns the active tab index.
func (t *TabBar) Active() int {
	return t.active
}

// SetWidth sets the rendered width.
func (t *TabBar) SetWidth(width int) {
	t.width = width
}

// View renders the tab row with a bottom border.
func (t *TabBar) View() string {
	var tabs []string
	for i, name := range t.tabs {
		text := "[" + string('1'+rune(i)) + ":" + name + "]"
		if i == t.active {
			tabs = append(tabs, pkgtui.ActiveTabStyle.Render(text))
		} else {
			tabs = append(tabs, pkgtui.TabStyle.Render(text))
		}
	}

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(pkgtui.ColorMuted).
		Width(t.width)

	return border.Render(strings.Join(tabs, " "))
}
