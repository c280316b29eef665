package driving

import (
	"context"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// BookmarkService manages saved cursor positions.
type BookmarkService interface {
	// List returns all bookmarks ordered by name.
	List(ctx context.Context) ([]domain.Bookmark, error)

	// Get retrieves a bookmark by name.
	Get(ctx context.Context, name string) (*domain.Bookmark, error)

	// Delete removes a bookmark.
	Delete(ctx context.Context, name string) error
}
