package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// Finder is the fuzzy file palette: type a fragment, pick a path.
type Finder struct {
	input    textinput.Model
	paths    []string
	matches  []fuzzy.Match
	selected int
	width    int
	visible  bool
}

// FinderSelectMsg is emitted when a path is picked.
type FinderSelectMsg struct {
	Path string
}

// NewFinder creates a hidden finder.
func NewFinder() *Finder {
	input := textinput.New()
	input.Placeholder = "Type a file path..."
	input.Prompt = "> "
	input.CharLimit = 128
	return &Finder{input: input}
}

// SetPaths replaces the searchable paths wholesale.
func (f *Finder) SetPaths(paths []string) {
	f.paths = paths
	f.updateMatches()
}

// SetWidth sets the rendered width.
func (f *Finder) SetWidth(width int) {
	f.width = width
	f.input.Width = width - 6
}

// Show opens the finder and focuses its input.
func (f *Finder) Show() tea.Cmd {
	f.visible = true
	f.input.Reset()
	f.selected = 0
	f.updateMatches()
	return f.input.Focus()
}

// Hide closes the finder.
func (f *Finder) Hide() {
	f.visible = false
	f.input.Blur()
}

// Visible reports whether the finder is open.
func (f *Finder) Visible() bool {
	return f.visible
}

func (f *Finder) updateMatches() {
	query := f.input.Value()
	if query == "" {
		f.matches = make([]fuzzy.Match, len(f.paths))
		for i := range f.paths {
			f.matches[i] = fuzzy.Match{Index: i, Str: f.paths[i]}
		}
		return
	}
	f.matches = fuzzy.Find(query, f.paths)
	if f.selected >= len(f.matches) {
		f.selected = 0
	}
}

// Update handles keys while the finder is open.
func (f *Finder) Update(msg tea.Msg) tea.Cmd {
	if !f.visible {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			f.Hide()
			return nil
		case "up", "ctrl+k":
			if f.selected > 0 {
				f.selected--
			}
			return nil
		case "down", "ctrl+j":
			if f.selected < len(f.matches)-1 {
				f.selected++
			}
			return nil
		case "enter":
			if f.selected < len(f.matches) {
				idx := f.matches[f.selected].Index
				if idx < len(f.paths) {
					path := f.paths[idx]
					f.Hide()
					return func() tea.Msg {
						return FinderSelectMsg{Path: path}
					}
				}
			}
			return nil
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.updateMatches()
	return cmd
}

// View renders the finder overlay.
func (f *Finder) View() string {
	var b strings.Builder
	b.WriteString(f.input.View())
	b.WriteString("\n")

	limit := 8
	for i, match := range f.matches {
		if i >= limit {
			b.WriteString(LabelStyle.Render(fmt.Sprintf("  …%d more", len(f.matches)-limit)))
			break
		}
		line := f.paths[match.Index]
		if i == f.selected {
			line = SelectedStyle.Render(line)
		} else {
			line = UnselectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(f.matches) == 0 {
		b.WriteString(LabelStyle.Render("No matches"))
	}

	return OverlayStyle.Width(f.width).Render(strings.TrimRight(b.String(), "\n"))
}
