// Package backend provides typed access to the AstroMind project API and
// its per-project event stream.
package backend

import "encoding/json"

// FileEntry is one row of the project file listing. Content is fetched
// separately, parameterized by (path, version).
type FileEntry struct {
	Path string `json:"path"`
	Kind string `json:"kind"` // "file" or "dir"
}

// IsDir reports whether the entry is a directory.
func (f FileEntry) IsDir() bool {
	return f.Kind == "dir"
}

// StepStatus is the execution state of a single pipeline step.
type StepStatus string

const (
	StepPending StepStatus = "pending"
	StepRunning StepStatus = "running"
	StepFailed  StepStatus = "failed"
	StepDone    StepStatus = "done"
)

// PipelineStep is one node of the project's execution pipeline. Steps
// sharing a ParallelGroup run as one tier; steps without a group form
// singleton tiers keyed by their own id.
type PipelineStep struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Agent         string     `json:"agent"`
	Status        StepStatus `json:"status"`
	ParallelGroup string     `json:"parallel_group,omitempty"`
}

// ProjectStatus is the {status, steps} pair returned by the status
// endpoint. Status is a project-level scalar ("running", "done",
// "failed"), independent of individual step states.
type ProjectStatus struct {
	Status string         `json:"status"`
	Steps  []PipelineStep `json:"steps"`
}

// LogEvent is one backend-reported occurrence from the event stream.
// Known fields are typed; everything else the backend sends rides along
// in Data untouched.
type LogEvent struct {
	Timestamp    string `json:"timestamp"`
	ProjectID    string `json:"project_id"`
	Agent        string `json:"agent"`
	Level        string `json:"level"`
	Msg          string `json:"msg"`
	ArtifactPath string `json:"artifact_path,omitempty"`

	Data map[string]json.RawMessage `json:"data,omitempty"`
}

// ChatMessage is one turn of the chat transcript, sent back as history
// on every chat request.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ReviewVerdict is the result of a deep review request.
type ReviewVerdict struct {
	Approved bool     `json:"approved"`
	Comments []string `json:"comments"`
}
