package workspace

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/sashaai2006/AstroMind/pkg/backend"
)

func contentEffects(effects []Effect) []FetchContent {
	var fetches []FetchContent
	for _, eff := range effects {
		if f, ok := eff.(FetchContent); ok {
			fetches = append(fetches, f)
		}
	}
	return fetches
}

func hasEffect(effects []Effect, want Effect) bool {
	for _, eff := range effects {
		if eff == want {
			return true
		}
	}
	return false
}

func TestSelectFileTriggersFetchAtCurrentVersion(t *testing.T) {
	e := NewEngine()
	e.ChangeVersion(3)

	effects := e.SelectFile("src/main.py")
	fetches := contentEffects(effects)
	if len(fetches) != 1 {
		t.Fatalf("expected 1 content fetch, got %d", len(fetches))
	}
	if fetches[0] != (FetchContent{Path: "src/main.py", Version: 3}) {
		t.Fatalf("unexpected fetch: %+v", fetches[0])
	}
}

func TestStaleResultForSupersededSelectionDiscarded(t *testing.T) {
	e := NewEngine()
	e.SelectFile("a.py") // fetch for (a.py, 1) now in flight
	e.SelectFile("b.py")

	if applied := e.ApplyContent("a.py", 1, "stale"); applied {
		t.Fatal("expected late a.py result to be discarded")
	}
	if _, ok := e.Content(); ok {
		t.Fatal("expected no displayed content for b.py yet")
	}

	if applied := e.ApplyContent("b.py", 1, "fresh"); !applied {
		t.Fatal("expected b.py result to apply")
	}
	content, ok := e.Content()
	if !ok || content != "fresh" {
		t.Fatalf("expected fresh content, got %q (ok=%v)", content, ok)
	}
}

func TestVersionTimeTravelDiscardsMismatchedVersion(t *testing.T) {
	e := NewEngine()
	e.SelectFile("a.py")
	e.ChangeVersion(2) // fetch for (a.py, 2) in flight
	e.ChangeVersion(1) // fetch for (a.py, 1) in flight

	if applied := e.ApplyContent("a.py", 2, "v2"); applied {
		t.Fatal("expected stray version-2 result to be discarded")
	}
	if applied := e.ApplyContent("a.py", 1, "v1"); !applied {
		t.Fatal("expected version-1 result to apply")
	}
	content, _ := e.Content()
	if content != "v1" {
		t.Fatalf("expected v1 content, got %q", content)
	}
}

func TestNullSelectionFetchesNothingAndDropsInFlight(t *testing.T) {
	e := NewEngine()
	e.SelectFile("a.py")

	effects := e.SelectFile("")
	if len(contentEffects(effects)) != 0 {
		t.Fatal("selecting null must not issue a content fetch")
	}

	if applied := e.ApplyContent("a.py", 1, "late"); applied {
		t.Fatal("expected in-flight result to be dropped after null selection")
	}
	if _, ok := e.Content(); ok {
		t.Fatal("expected no meaningful content while nothing is selected")
	}
}

func TestLogBoundedToLastTwoHundred(t *testing.T) {
	e := NewEngine()
	for i := 0; i < MaxLogEvents+50; i++ {
		e.HandleEvent(backend.LogEvent{Msg: fmt.Sprintf("event %d", i)})
	}

	log := e.Log()
	if len(log) != MaxLogEvents {
		t.Fatalf("expected %d events retained, got %d", MaxLogEvents, len(log))
	}
	if log[0].Msg != "event 50" {
		t.Fatalf("expected oldest retained event 50, got %q", log[0].Msg)
	}
	if log[len(log)-1].Msg != fmt.Sprintf("event %d", MaxLogEvents+49) {
		t.Fatalf("expected newest event last, got %q", log[len(log)-1].Msg)
	}
}

func TestEventAlwaysRefreshesStatus(t *testing.T) {
	e := NewEngine()
	effects := e.HandleEvent(backend.LogEvent{Msg: "plain"})
	if !hasEffect(effects, FetchStatus{}) {
		t.Fatal("expected a status refresh")
	}
	if hasEffect(effects, FetchListing{}) {
		t.Fatal("expected no listing refresh without an artifact path")
	}
	if len(contentEffects(effects)) != 0 {
		t.Fatal("expected no content refetch without an artifact path")
	}
}

func TestArtifactEventForSelectedFileRefetchesContent(t *testing.T) {
	e := NewEngine()
	e.ChangeVersion(2)
	e.SelectFile("src/app.js")

	effects := e.HandleEvent(backend.LogEvent{Msg: "rewrote", ArtifactPath: "src/app.js"})
	if !hasEffect(effects, FetchListing{}) {
		t.Fatal("expected a listing refresh for an artifact event")
	}
	fetches := contentEffects(effects)
	if len(fetches) != 1 {
		t.Fatalf("expected exactly one content refetch, got %d", len(fetches))
	}
	if fetches[0] != (FetchContent{Path: "src/app.js", Version: 2}) {
		t.Fatalf("refetch must target the current selection and version, got %+v", fetches[0])
	}
}

func TestArtifactEventForOtherFileRefreshesListingOnly(t *testing.T) {
	e := NewEngine()
	e.SelectFile("src/app.js")

	effects := e.HandleEvent(backend.LogEvent{Msg: "created", ArtifactPath: "README.md"})
	if !hasEffect(effects, FetchListing{}) {
		t.Fatal("expected a listing refresh")
	}
	if len(contentEffects(effects)) != 0 {
		t.Fatal("expected no content refetch for a different artifact path")
	}
}

func TestArtifactComparisonUsesFreshestSelection(t *testing.T) {
	e := NewEngine()
	e.SelectFile("old.py")
	e.SelectFile("new.py")

	// The event targets the previous selection; processed against the
	// freshest selection it must not refetch.
	effects := e.HandleEvent(backend.LogEvent{ArtifactPath: "old.py"})
	if len(contentEffects(effects)) != 0 {
		t.Fatal("expected no refetch for a formerly selected path")
	}
}

func TestIdempotentListingReplace(t *testing.T) {
	e := NewEngine()
	listing := []backend.FileEntry{
		{Path: "src", Kind: "dir"},
		{Path: "src/main.py", Kind: "file"},
	}

	e.ApplyListing(listing)
	first := append([]backend.FileEntry(nil), e.Files()...)
	e.ApplyListing(listing)

	if !reflect.DeepEqual(e.Files(), first) {
		t.Fatalf("expected identical listing after replay, got %+v", e.Files())
	}
	if len(e.Files()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(e.Files()))
	}
}

func TestStatusWholesaleReplace(t *testing.T) {
	e := NewEngine()
	e.ApplyStatus(backend.ProjectStatus{
		Status: "running",
		Steps:  []backend.PipelineStep{{ID: "1", Name: "scaffold", Status: backend.StepRunning}},
	})
	e.ApplyStatus(backend.ProjectStatus{
		Status: "done",
		Steps:  []backend.PipelineStep{{ID: "1", Name: "scaffold", Status: backend.StepDone}},
	})

	if e.Status() != "done" {
		t.Fatalf("expected done, got %q", e.Status())
	}
	if len(e.Steps()) != 1 || e.Steps()[0].Status != backend.StepDone {
		t.Fatalf("expected replaced steps, got %+v", e.Steps())
	}
}

func TestContentMeaninglessAfterVersionChange(t *testing.T) {
	e := NewEngine()
	e.SelectFile("a.py")
	if applied := e.ApplyContent("a.py", 1, "v1"); !applied {
		t.Fatal("expected apply")
	}

	// Content is now stale relative to the new version until the
	// refetch lands; it must not be reported as meaningful.
	e.ChangeVersion(2)
	if _, ok := e.Content(); ok {
		t.Fatal("expected content to be meaningless at the new version")
	}

	if applied := e.ApplyContent("a.py", 2, "v2"); !applied {
		t.Fatal("expected version-2 apply")
	}
	content, ok := e.Content()
	if !ok || content != "v2" {
		t.Fatalf("expected v2 content, got %q (ok=%v)", content, ok)
	}
}

func TestSwitchTabHasNoSideEffects(t *testing.T) {
	e := NewEngine()
	e.SelectFile("a.py")
	e.SwitchTab(TabPipeline)

	if e.ActiveTab() != TabPipeline {
		t.Fatal("expected pipeline tab active")
	}
	if e.Selected() != "a.py" {
		t.Fatal("expected selection untouched by tab switch")
	}
}

func TestVersionClampedToOne(t *testing.T) {
	e := NewEngine()
	e.ChangeVersion(0)
	if e.Version() != 1 {
		t.Fatalf("expected version clamped to 1, got %d", e.Version())
	}
}
