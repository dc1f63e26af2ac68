package workspace

import (
	"context"
	"sync"

	"github.com/sashaai2006/AstroMind/pkg/backend"
)

// FileClient is the slice of the backend client the store needs.
type FileClient interface {
	ListFiles(ctx context.Context) ([]backend.FileEntry, error)
	FileContent(ctx context.Context, path string, version int) (string, error)
	SaveFile(ctx context.Context, path, content string) error
}

// Store is the client-side versioned file cache. Content is keyed by
// (path, version); generated files can change in place at the same
// version, so artifact events must invalidate the path before the next
// fetch.
type Store struct {
	client FileClient

	mu    sync.Mutex
	cache map[ContentKey]string
}

// NewStore creates a store backed by client.
func NewStore(client FileClient) *Store {
	return &Store{
		client: client,
		cache:  make(map[ContentKey]string),
	}
}

// FetchListing fetches the full file listing; the caller replaces its
// copy wholesale.
func (s *Store) FetchListing(ctx context.Context) ([]backend.FileEntry, error) {
	return s.client.ListFiles(ctx)
}

// FetchContent returns content for (path, version), from cache when the
// pair has been fetched and not invalidated since.
func (s *Store) FetchContent(ctx context.Context, path string, version int) (string, error) {
	key := ContentKey{Path: path, Version: version}

	s.mu.Lock()
	content, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return content, nil
	}

	content, err := s.client.FileContent(ctx, path, version)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.cache[key] = content
	s.mu.Unlock()
	return content, nil
}

// SaveContent writes content for path. The cache entry for the path is
// dropped so the next fetch observes the saved state; the caller's
// editor buffer is left untouched.
func (s *Store) SaveContent(ctx context.Context, path, content string) error {
	if err := s.client.SaveFile(ctx, path, content); err != nil {
		return err
	}
	s.Invalidate(path)
	return nil
}

// Invalidate drops every cached version of path. Called when an
// artifact event reports the backend rewrote the file.
func (s *Store) Invalidate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.cache {
		if key.Path == path {
			delete(s.cache, key)
		}
	}
}
