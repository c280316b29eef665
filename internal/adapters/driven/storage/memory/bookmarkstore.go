package memory

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
)

// Ensure BookmarkStore implements the interface.
var _ driven.BookmarkStore = (*BookmarkStore)(nil)

// BookmarkStore is an in-memory implementation of driven.BookmarkStore.
type BookmarkStore struct {
	mu        sync.RWMutex
	bookmarks map[string]domain.Bookmark
}

// NewBookmarkStore creates a new in-memory bookmark store.
func NewBookmarkStore() *BookmarkStore {
	return &BookmarkStore{
		bookmarks: make(map[string]domain.Bookmark),
	}
}

// Save stores or updates a bookmark.
func (s *BookmarkStore) Save(_ context.Context, b domain.Bookmark) error {
	if err := b.Validate(); err != nil {
		return err
	}
	b.Request.Params = maps.Clone(b.Request.Params)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks[b.Name] = b
	return nil
}

// Get retrieves a bookmark by name.
func (s *BookmarkStore) Get(_ context.Context, name string) (*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookmarks[name]
	if !ok {
		return nil, fmt.Errorf("bookmark %q: %w", name, domain.ErrNotFound)
	}
	b.Request.Params = maps.Clone(b.Request.Params)
	return &b, nil
}

// Delete removes a bookmark.
func (s *BookmarkStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookmarks, name)
	return nil
}

// List returns all bookmarks ordered by name.
func (s *BookmarkStore) List(_ context.Context) ([]domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Collect(maps.Values(s.bookmarks))
	slices.SortFunc(out, func(a, b domain.Bookmark) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}
