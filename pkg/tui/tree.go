package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TreeWidth is the fixed sidebar width for the file tree.
const TreeWidth = 32

// TreeItem is one rendered row of the file tree. Depth is the nesting
// level derived from the path.
type TreeItem struct {
	Path  string
	Label string
	IsDir bool
	Depth int
}

// TreeSelectMsg is emitted when a file row is opened. Directories never
// emit it.
type TreeSelectMsg struct {
	Path string
}

// Tree is the file-listing sidebar. It renders a flat snapshot of the
// listing indented by path depth; selection is cursor-based.
type Tree struct {
	items   []TreeItem
	cursor  int
	offset  int
	height  int
	focused bool
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// SetItems replaces the rows wholesale, clamping the cursor.
func (t *Tree) SetItems(items []TreeItem) {
	t.items = items
	if t.cursor >= len(items) {
		t.cursor = len(items) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// SetHeight sets the number of visible rows.
func (t *Tree) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	t.height = height
}

func (t *Tree) Focus()        { t.focused = true }
func (t *Tree) Blur()         { t.focused = false }
func (t *Tree) Focused() bool { return t.focused }
func (t *Tree) Len() int      { return len(t.items) }

// Cursor returns the item under the cursor.
func (t *Tree) Cursor() (TreeItem, bool) {
	if len(t.items) == 0 || t.cursor >= len(t.items) {
		return TreeItem{}, false
	}
	return t.items[t.cursor], true
}

// Update handles navigation keys while focused.
func (t *Tree) Update(msg tea.Msg) tea.Cmd {
	if !t.focused {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "j", "down":
		if t.cursor < len(t.items)-1 {
			t.cursor++
		}
	case "k", "up":
		if t.cursor > 0 {
			t.cursor--
		}
	case "g", "home":
		t.cursor = 0
	case "G", "end":
		t.cursor = len(t.items) - 1
		if t.cursor < 0 {
			t.cursor = 0
		}
	case "enter":
		item, ok := t.Cursor()
		if !ok || item.IsDir {
			return nil
		}
		return func() tea.Msg {
			return TreeSelectMsg{Path: item.Path}
		}
	}

	t.scroll()
	return nil
}

func (t *Tree) scroll() {
	if t.height <= 0 {
		return
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
}

// View renders the visible window of rows.
func (t *Tree) View() string {
	if len(t.items) == 0 {
		return LabelStyle.Render("No files yet")
	}

	end := t.offset + t.height
	if t.height <= 0 || end > len(t.items) {
		end = len(t.items)
	}

	var lines []string
	for i := t.offset; i < end; i++ {
		item := t.items[i]
		indent := strings.Repeat("  ", item.Depth)
		label := item.Label
		if item.IsDir {
			label = DirStyle.Render(label + "/")
		}
		line := indent + label
		if i == t.cursor && t.focused {
			line = SelectedStyle.Render(indent + item.Label)
			if item.IsDir {
				line = SelectedStyle.Render(indent + item.Label + "/")
			}
		}
		lines = append(lines, lipgloss.NewStyle().MaxWidth(TreeWidth).Render(line))
	}
	return strings.Join(lines, "\n")
}
