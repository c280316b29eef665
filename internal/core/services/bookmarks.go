package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
	"github.com/custodia-labs/innergraph/internal/core/ports/driving"
)

// Ensure BookmarkService implements the interface.
var _ driving.BookmarkService = (*BookmarkService)(nil)

// BookmarkService manages saved cursor positions.
type BookmarkService struct {
	store driven.BookmarkStore
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(store driven.BookmarkStore) *BookmarkService {
	return &BookmarkService{store: store}
}

// List returns all bookmarks ordered by name.
func (s *BookmarkService) List(ctx context.Context) ([]domain.Bookmark, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx)
}

// Get retrieves a bookmark by name.
func (s *BookmarkService) Get(ctx context.Context, name string) (*domain.Bookmark, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	if name == "" {
		return nil, fmt.Errorf("%w: bookmark name is required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, name)
}

// Delete removes a bookmark. It is ErrNotFound when no bookmark has that name.
func (s *BookmarkService) Delete(ctx context.Context, name string) error {
	if s.store == nil {
		return domain.ErrNotFound
	}
	if _, err := s.store.Get(ctx, name); err != nil {
		return err
	}
	return s.store.Delete(ctx, name)
}
