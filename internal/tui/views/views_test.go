package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sashaai2006/AstroMind/pkg/backend"
)

func TestTreeItemsSortedAndIndented(t *testing.T) {
	items := treeItems([]backend.FileEntry{
		{Path: "src/main.py", Kind: "file"},
		{Path: "README.md", Kind: "file"},
		{Path: "src", Kind: "dir"},
	})

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Path != "README.md" || items[1].Path != "src" || items[2].Path != "src/main.py" {
		t.Fatalf("unexpected order: %+v", items)
	}
	if items[2].Depth != 1 || items[2].Label != "main.py" {
		t.Fatalf("expected nested label, got %+v", items[2])
	}
	if !items[1].IsDir {
		t.Fatal("expected src to be a directory")
	}
}

func TestEditorBufferLifecycle(t *testing.T) {
	v := NewEditorView()
	v.SetSize(100, 40)

	v.SetContent("a.py", "print('hi')")
	path, content := v.Buffer()
	if path != "a.py" || content != "print('hi')" {
		t.Fatalf("unexpected buffer: %q %q", path, content)
	}
	if v.Dirty() {
		t.Fatal("expected clean buffer after SetContent")
	}

	v.ClearContent()
	path, content = v.Buffer()
	if path != "" || content != "" {
		t.Fatalf("expected empty buffer after clear, got %q %q", path, content)
	}
}

func TestEditorNavigationKeepsBufferClean(t *testing.T) {
	v := NewEditorView()
	v.SetSize(100, 40)
	v.SetContent("a.py", "line one\nline two")
	v.cyclePane() // focus the editor

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	if v.Dirty() {
		t.Fatal("expected cursor movement to leave the buffer clean")
	}

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if !v.Dirty() {
		t.Fatal("expected an edit to mark the buffer dirty")
	}
}

func TestEditorTranscriptPanel(t *testing.T) {
	v := NewEditorView()
	v.SetSize(100, 40)

	if !strings.Contains(v.View(), "Waiting for events") {
		t.Fatal("expected log panel before any fix")
	}

	v.SetTranscript([]backend.ChatMessage{
		{Role: "user", Content: "please repair a.py"},
		{Role: "assistant", Content: "done, rewrote the handler"},
	})
	out := v.View()
	if !strings.Contains(out, "please repair a.py") || !strings.Contains(out, "rewrote the handler") {
		t.Fatalf("expected transcript rendered after a fix, got %q", out)
	}

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if !strings.Contains(v.View(), "Waiting for events") {
		t.Fatal("expected toggle back to the log panel")
	}
}

func TestEditorPreviewOnlyForMarkdown(t *testing.T) {
	v := NewEditorView()

	v.SetContent("main.py", "print('hi')")
	v.TogglePreview()
	if v.previewing {
		t.Fatal("expected no preview for non-markdown files")
	}

	v.SetContent("README.md", "# Title")
	v.TogglePreview()
	if !v.previewing {
		t.Fatal("expected preview toggle for markdown")
	}
}

func TestPipelineViewRendersTiers(t *testing.T) {
	v := NewPipelineView()
	v.width = 100
	v.height = 40
	v.SetStatus("running", []backend.PipelineStep{
		{ID: "1", Name: "plan", Agent: "ceo", Status: backend.StepDone},
		{ID: "2", Name: "backend", Agent: "developer", ParallelGroup: "impl", Status: backend.StepRunning},
		{ID: "3", Name: "frontend", Agent: "developer", ParallelGroup: "impl", Status: backend.StepPending},
	})

	out := v.View()
	if !strings.Contains(out, "tier 1") || !strings.Contains(out, "tier 2") {
		t.Fatalf("expected two tiers, got %q", out)
	}
	if !strings.Contains(out, "plan") || !strings.Contains(out, "backend") || !strings.Contains(out, "frontend") {
		t.Fatal("expected all steps rendered")
	}
	if strings.Contains(out, "tier 3") {
		t.Fatal("expected parallel steps to share a tier")
	}
}

func TestPipelineViewEmptyState(t *testing.T) {
	v := NewPipelineView()
	v.width = 80
	if !strings.Contains(v.View(), "No steps planned yet") {
		t.Fatal("expected empty state message")
	}
}
