package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeString(f *Finder, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestFinderFuzzyMatch(t *testing.T) {
	f := NewFinder()
	f.SetPaths([]string{"src/main.py", "src/api/routes.py", "README.md"})
	f.Show()

	typeString(f, "route")
	if len(f.matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(f.matches))
	}

	cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected selection command")
	}
	msg, ok := cmd().(FinderSelectMsg)
	if !ok || msg.Path != "src/api/routes.py" {
		t.Fatalf("unexpected selection %+v", cmd())
	}
	if f.Visible() {
		t.Fatal("expected finder hidden after selection")
	}
}

func TestFinderEmptyQueryListsEverything(t *testing.T) {
	f := NewFinder()
	f.SetPaths([]string{"a.py", "b.py"})
	f.Show()

	if len(f.matches) != 2 {
		t.Fatalf("expected all paths listed, got %d", len(f.matches))
	}
}

func TestFinderEscCloses(t *testing.T) {
	f := NewFinder()
	f.SetPaths([]string{"a.py"})
	f.Show()

	f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if f.Visible() {
		t.Fatal("expected finder hidden after esc")
	}
}
