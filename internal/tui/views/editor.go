// Package views contains the workspace tabs: the editor with its file
// tree and log feed, and the pipeline graph.
package views

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sashaai2006/AstroMind/internal/tui"
	"github.com/sashaai2006/AstroMind/pkg/backend"
	pkgtui "github.com/sashaai2006/AstroMind/pkg/tui"
)

type editorPane int

const (
	paneTree editorPane = iota
	paneEditor
)

// EditorView is the file tree plus editor tab. The textarea buffer is
// the user's; it is only replaced when a fresh fetch passes the
// staleness check or the user navigates to another file.
type EditorView struct {
	tree     *pkgtui.Tree
	editor   textarea.Model
	logPanel *pkgtui.LogPanel
	chat     *pkgtui.ChatPanel

	pane       editorPane
	openPath   string
	dirty      bool
	previewing bool
	preview    string
	showChat   bool

	width  int
	height int
}

// NewEditorView creates the editor tab.
func NewEditorView() *EditorView {
	editor := textarea.New()
	editor.Placeholder = "Select a file to view its content"
	editor.CharLimit = 0
	editor.ShowLineNumbers = true

	return &EditorView{
		tree:     pkgtui.NewTree(),
		editor:   editor,
		logPanel: pkgtui.NewLogPanel(),
		chat:     pkgtui.NewChatPanel(),
	}
}

// Name implements tui.View.
func (v *EditorView) Name() string {
	return "Editor"
}

// SetFiles rebuilds the tree rows from a listing snapshot.
func (v *EditorView) SetFiles(files []backend.FileEntry) {
	v.tree.SetItems(treeItems(files))
}

// SetContent replaces the buffer with freshly fetched content. Any
// in-progress edits are superseded; callers only invoke this after the
// staleness check passed.
func (v *EditorView) SetContent(path, content string) {
	v.openPath = path
	v.dirty = false
	v.editor.SetValue(content)
	v.renderPreview(content)
}

// ClearContent empties the buffer, used when the selection goes null.
func (v *EditorView) ClearContent() {
	v.openPath = ""
	v.dirty = false
	v.previewing = false
	v.editor.SetValue("")
}

// Buffer returns the open path and the current editor buffer.
func (v *EditorView) Buffer() (path, content string) {
	return v.openPath, v.editor.Value()
}

// Dirty reports whether the buffer has unsaved edits.
func (v *EditorView) Dirty() bool {
	return v.dirty
}

// MarkSaved clears the dirty flag after a successful save.
func (v *EditorView) MarkSaved() {
	v.dirty = false
}

// Editing reports whether keystrokes land in the text buffer.
func (v *EditorView) Editing() bool {
	return v.pane == paneEditor && !v.previewing
}

// TogglePreview flips markdown preview for .md files.
func (v *EditorView) TogglePreview() {
	if !strings.HasSuffix(v.openPath, ".md") {
		return
	}
	v.previewing = !v.previewing
	if v.previewing {
		v.renderPreview(v.editor.Value())
	}
}

func (v *EditorView) renderPreview(content string) {
	if !strings.HasSuffix(v.openPath, ".md") {
		v.preview = ""
		return
	}
	rendered, err := glamour.Render(content, "dark")
	if err != nil {
		v.preview = content
		return
	}
	v.preview = rendered
}

// SetTranscript replaces the fix transcript and reveals its panel; a
// transcript only grows when a fix completes, so the reply should be in
// front of the user.
func (v *EditorView) SetTranscript(messages []backend.ChatMessage) {
	turns := make([]pkgtui.ChatTurn, len(messages))
	for i, msg := range messages {
		turns[i] = pkgtui.ChatTurn{Role: msg.Role, Content: msg.Content}
	}
	v.chat.SetTurns(turns)
	if len(turns) > 0 {
		v.showChat = true
	}
}

// SetLog feeds the log panel the latest event tail.
func (v *EditorView) SetLog(events []backend.LogEvent) {
	lines := make([]pkgtui.LogLine, len(events))
	for i, evt := range events {
		lines[i] = pkgtui.LogLine{
			Timestamp: evt.Timestamp,
			Agent:     evt.Agent,
			Level:     evt.Level,
			Msg:       evt.Msg,
		}
	}
	v.logPanel.SetLines(lines)
}

// SetSize lays the panes out.
func (v *EditorView) SetSize(width, height int) {
	v.width = width
	v.height = height

	logHeight := 6
	bodyHeight := height - logHeight - 2
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	v.tree.SetHeight(bodyHeight - 2)
	v.editor.SetWidth(width - pkgtui.TreeWidth - 6)
	v.editor.SetHeight(bodyHeight - 2)
	v.logPanel.SetSize(width-2, logHeight)
	v.chat.SetSize(width-2, logHeight)
}

// Focus implements tui.View; focus lands on the tree.
func (v *EditorView) Focus() tea.Cmd {
	v.pane = paneTree
	v.tree.Focus()
	v.editor.Blur()
	return nil
}

// Blur implements tui.View.
func (v *EditorView) Blur() {
	v.tree.Blur()
	v.editor.Blur()
}

// Update implements tui.View.
func (v *EditorView) Update(msg tea.Msg) (tui.View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height-4)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			v.cyclePane()
			return v, nil
		case "ctrl+t":
			v.showChat = !v.showChat
			return v, nil
		}
		switch v.pane {
		case paneTree:
			return v, v.tree.Update(msg)
		case paneEditor:
			if msg.String() == "esc" {
				v.cyclePane()
				return v, nil
			}
			if v.previewing {
				return v, nil
			}
			before := v.editor.Value()
			var cmd tea.Cmd
			v.editor, cmd = v.editor.Update(msg)
			if v.editor.Value() != before {
				v.dirty = true
			}
			return v, cmd
		}
	}
	return v, nil
}

func (v *EditorView) cyclePane() {
	if v.pane == paneTree {
		v.pane = paneEditor
		v.tree.Blur()
		v.editor.Focus()
		return
	}
	v.pane = paneTree
	v.editor.Blur()
	v.tree.Focus()
}

// View implements tui.View.
func (v *EditorView) View() string {
	treeStyle := pkgtui.PanelStyle
	editorStyle := pkgtui.PanelStyle
	if v.pane == paneTree {
		treeStyle = pkgtui.PanelFocusedStyle
	} else {
		editorStyle = pkgtui.PanelFocusedStyle
	}

	logHeight := 6
	bodyHeight := v.height - logHeight - 2
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	treePanel := treeStyle.Width(pkgtui.TreeWidth).Height(bodyHeight).Render(v.tree.View())

	var body string
	if v.previewing {
		body = v.preview
	} else {
		body = v.editor.View()
	}
	title := v.openPath
	if title == "" {
		title = "(no file)"
	}
	if v.dirty {
		title += " *"
	}
	editorPanel := editorStyle.
		Width(v.width - pkgtui.TreeWidth - 4).
		Height(bodyHeight).
		Render(pkgtui.TitleStyle.Render(title) + "\n" + body)

	top := lipgloss.JoinHorizontal(lipgloss.Top, treePanel, editorPanel)
	bottom := v.logPanel.View()
	if v.showChat {
		bottom = v.chat.View()
	}
	bottomPanel := pkgtui.PanelStyle.Width(v.width - 2).Render(bottom)

	return lipgloss.JoinVertical(lipgloss.Left, top, bottomPanel)
}

// ShortHelp implements tui.View.
func (v *EditorView) ShortHelp() string {
	return "tab panes  enter open  ctrl+s save  ctrl+f fix  ctrl+t chat  ctrl+g preview  [/] versions"
}

// treeItems flattens a listing snapshot into rendered rows. Entries
// arrive unordered from the backend; rows are sorted by path so nesting
// reads naturally.
func treeItems(files []backend.FileEntry) []pkgtui.TreeItem {
	sorted := append([]backend.FileEntry(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	items := make([]pkgtui.TreeItem, len(sorted))
	for i, f := range sorted {
		depth := strings.Count(f.Path, "/")
		label := f.Path
		if idx := strings.LastIndexByte(f.Path, '/'); idx >= 0 {
			label = f.Path[idx+1:]
		}
		items[i] = pkgtui.TreeItem{
			Path:  f.Path,
			Label: label,
			IsDir: f.IsDir(),
			Depth: depth,
		}
	}
	return items
}

var _ tui.View = (*EditorView)(nil)
