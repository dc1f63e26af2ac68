// Package workspace holds the synchronization engine for a project
// view: the state machine that reconciles user actions, stream events,
// and versioned file history into one consistent snapshot.
//
// All mutation goes through Engine methods called from a single update
// loop. Network work is described by Effect values the caller executes;
// results come back through the Apply methods, which discard anything
// that no longer matches the active selection.
package workspace

import "github.com/sashaai2006/AstroMind/pkg/backend"

// Tab identifies the active workspace tab. Switching tabs is pure UI
// state and never triggers network work.
type Tab int

const (
	TabEditor Tab = iota
	TabPipeline
)

// MaxLogEvents bounds the retained log feed. Oldest events are evicted
// first.
const MaxLogEvents = 200

// Effect is a network side effect requested by a transition. The caller
// runs it and feeds the result back through the matching Apply method.
type Effect interface {
	isEffect()
}

// FetchContent requests file content for (Path, Version).
type FetchContent struct {
	Path    string
	Version int
}

// FetchListing requests a wholesale file-listing refresh.
type FetchListing struct{}

// FetchStatus requests a wholesale {status, steps} refresh.
type FetchStatus struct{}

func (FetchContent) isEffect() {}
func (FetchListing) isEffect() {}
func (FetchStatus) isEffect()  {}

// ContentKey is the (path, version) pair a piece of content was fetched
// for. A result is applied only while its key still matches the active
// selection.
type ContentKey struct {
	Path    string
	Version int
}

// Engine owns the derived project view state: file listing, selection,
// version, pipeline status, bounded log, and the displayed content.
type Engine struct {
	files    []backend.FileEntry
	steps    []backend.PipelineStep
	status   string
	log      []backend.LogEvent
	selected string // "" means no file selected
	version  int
	tab      Tab

	content    string
	contentKey ContentKey
	hasContent bool
}

// NewEngine creates an engine at version 1 with nothing selected.
func NewEngine() *Engine {
	return &Engine{version: 1}
}

// SelectFile sets the selection. A non-empty path triggers a content
// fetch at the current version; selecting "" fetches nothing and leaves
// prior content in place (it is meaningless while nothing is selected,
// and the view must not render it).
func (e *Engine) SelectFile(path string) []Effect {
	e.selected = path
	if path == "" {
		return nil
	}
	return []Effect{FetchContent{Path: path, Version: e.version}}
}

// ChangeVersion moves the view to another file version. With a file
// selected this refetches immediately, i.e. time travel over history.
func (e *Engine) ChangeVersion(v int) []Effect {
	if v < 1 {
		v = 1
	}
	e.version = v
	if e.selected == "" {
		return nil
	}
	return []Effect{FetchContent{Path: e.selected, Version: e.version}}
}

// SwitchTab changes the active tab. No network side effects.
func (e *Engine) SwitchTab(tab Tab) {
	e.tab = tab
}

// HandleEvent appends a stream event to the bounded log and derives the
// refreshes it requires: status always; listing plus (when the artifact
// is the currently selected file) a content refetch when the event
// carries an artifact path. The selection is read here, at processing
// time, never from a value captured when the stream was set up.
func (e *Engine) HandleEvent(evt backend.LogEvent) []Effect {
	e.log = append(e.log, evt)
	if len(e.log) > MaxLogEvents {
		e.log = e.log[len(e.log)-MaxLogEvents:]
	}

	effects := []Effect{FetchStatus{}}
	if evt.ArtifactPath != "" {
		effects = append(effects, FetchListing{})
		if evt.ArtifactPath == e.selected {
			effects = append(effects, FetchContent{Path: e.selected, Version: e.version})
		}
	}
	return effects
}

// RefreshAll re-requests listing, status, and (with a selection) the
// selected content. Used at startup and when the project id changes.
func (e *Engine) RefreshAll() []Effect {
	effects := []Effect{FetchListing{}, FetchStatus{}}
	if e.selected != "" {
		effects = append(effects, FetchContent{Path: e.selected, Version: e.version})
	}
	return effects
}

// ApplyListing replaces the file listing wholesale. Selection is left
// alone even if the selected path vanished from the listing; the next
// refetch will surface that.
func (e *Engine) ApplyListing(files []backend.FileEntry) {
	e.files = files
}

// ApplyStatus replaces the project status scalar and step list
// wholesale.
func (e *Engine) ApplyStatus(status backend.ProjectStatus) {
	e.status = status.Status
	e.steps = status.Steps
}

// ApplyContent applies a resolved content fetch. It returns false and
// changes nothing when the (path, version) it was requested for no
// longer matches the active selection, which is how in-flight fetches
// from a superseded selection are cancelled.
func (e *Engine) ApplyContent(path string, version int, content string) bool {
	if e.selected == "" || path != e.selected || version != e.version {
		return false
	}
	e.content = content
	e.contentKey = ContentKey{Path: path, Version: version}
	e.hasContent = true
	return true
}

// Snapshot accessors. Views read these; they never mutate engine state.

func (e *Engine) Files() []backend.FileEntry    { return e.files }
func (e *Engine) Steps() []backend.PipelineStep { return e.steps }
func (e *Engine) Status() string                { return e.status }
func (e *Engine) Selected() string              { return e.selected }
func (e *Engine) Version() int                  { return e.version }
func (e *Engine) ActiveTab() Tab                { return e.tab }

// Log returns the retained event feed, oldest first.
func (e *Engine) Log() []backend.LogEvent { return e.log }

// Content returns the displayed content and whether it is meaningful:
// it is not while nothing is selected, or while the loaded (path,
// version) pair trails the selection.
func (e *Engine) Content() (string, bool) {
	if e.selected == "" || !e.hasContent {
		return "", false
	}
	if e.contentKey != (ContentKey{Path: e.selected, Version: e.version}) {
		return "", false
	}
	return e.content, true
}
