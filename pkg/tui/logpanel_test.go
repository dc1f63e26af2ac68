package tui

import (
	"strings"
	"testing"
)

func TestLogPanelShowsNewestLines(t *testing.T) {
	p := NewLogPanel()
	p.SetSize(80, 2)
	p.SetLines([]LogLine{
		{Agent: "system", Msg: "first"},
		{Agent: "ceo", Msg: "second"},
		{Agent: "developer", Msg: "third"},
	})

	view := p.View()
	if strings.Contains(view, "first") {
		t.Fatal("expected oldest line dropped")
	}
	if !strings.Contains(view, "second") || !strings.Contains(view, "third") {
		t.Fatalf("expected newest lines, got %q", view)
	}
}

func TestLogPanelEmptyPlaceholder(t *testing.T) {
	p := NewLogPanel()
	if !strings.Contains(p.View(), "Waiting for events") {
		t.Fatal("expected placeholder on empty feed")
	}
}

func TestShortTime(t *testing.T) {
	if got := shortTime("2026-08-29T14:03:21.123456+00:00"); got != "14:03:21" {
		t.Fatalf("unexpected short time %q", got)
	}
	if got := shortTime("not a time"); got != "not a time" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
