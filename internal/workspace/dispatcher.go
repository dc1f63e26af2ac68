package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashaai2006/AstroMind/pkg/backend"
)

// ErrNothingToFix is returned when a repair is requested without a
// selected file or with empty loaded content.
var ErrNothingToFix = errors.New("select a file with content before requesting a fix")

// ChatClient is the slice of the backend client the dispatcher needs
// beyond file operations.
type ChatClient interface {
	Chat(ctx context.Context, message string, history []backend.ChatMessage) (string, error)
	Review(ctx context.Context, paths []string) (backend.ReviewVerdict, error)
}

// Dispatcher translates user intents into backend calls. Errors are
// returned to the caller for display, never swallowed. Concurrent saves
// are allowed to race; the backend applies them last-write-wins.
type Dispatcher struct {
	store *Store
	chat  ChatClient
}

// NewDispatcher creates a dispatcher over the store and chat client.
func NewDispatcher(store *Store, chat ChatClient) *Dispatcher {
	return &Dispatcher{store: store, chat: chat}
}

// Save writes the editor buffer for path. The caller refreshes the
// listing afterwards regardless of outcome (a save may create files as
// a side effect); the buffer itself stays authoritative until the user
// navigates away.
func (d *Dispatcher) Save(ctx context.Context, path, content string) error {
	return d.store.SaveContent(ctx, path, content)
}

// FixRequest is the chat message synthesized for a repair of path.
// Transcripts must record exactly this message so later requests replay
// the history the backend actually received.
func FixRequest(path, content string) string {
	return fmt.Sprintf(
		"The file %s has a problem. Please fix it and update the project files.\n\nCurrent content:\n%s",
		path, content,
	)
}

// Fix synthesizes a repair request for the selected file and forwards
// it through the chat channel with the running transcript. The
// assistant response is returned for the transcript; the chat
// completion is what triggers the follow-up listing refresh.
func (d *Dispatcher) Fix(ctx context.Context, path, content string, history []backend.ChatMessage) (string, error) {
	if path == "" || content == "" {
		return "", ErrNothingToFix
	}
	return d.chat.Chat(ctx, FixRequest(path, content), history)
}

// DeepReview requests a review verdict for the given paths. It mutates
// no file state; the verdict is surfaced to the user as-is.
func (d *Dispatcher) DeepReview(ctx context.Context, paths []string) (backend.ReviewVerdict, error) {
	return d.chat.Review(ctx, paths)
}
