package tui

import "github.com/sashaai2006/AstroMind/pkg/backend"

// Async result messages. Each network call resolves into exactly one of
// these; the update loop reconciles it against the freshest state.

// ListingLoadedMsg carries a wholesale file-listing refresh.
type ListingLoadedMsg struct {
	Files []backend.FileEntry
	Err   error
}

// StatusLoadedMsg carries a wholesale {status, steps} refresh.
type StatusLoadedMsg struct {
	Status backend.ProjectStatus
	Err    error
}

// ContentLoadedMsg carries resolved file content together with the
// (path, version) it was requested for, so the staleness check can
// compare against the selection at resolution time.
type ContentLoadedMsg struct {
	Path    string
	Version int
	Content string
	Err     error
}

// SaveDoneMsg reports a completed save attempt. A listing refresh
// follows it regardless of the outcome.
type SaveDoneMsg struct {
	Path string
	Err  error
}

// FixDoneMsg reports a completed chat-driven repair request.
type FixDoneMsg struct {
	ID       string
	Request  string
	Response string
	Err      error
}

// ReviewDoneMsg reports a deep-review verdict.
type ReviewDoneMsg struct {
	Verdict backend.ReviewVerdict
	Err     error
}

// StreamEventMsg delivers one accepted stream event.
type StreamEventMsg struct {
	Event backend.LogEvent
}

// StreamClosedMsg signals the subscription stopped delivering. After
// this no further events arrive until the program restarts.
type StreamClosedMsg struct{}
