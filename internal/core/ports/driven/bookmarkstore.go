package driven

import (
	"context"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// BookmarkStore persists saved cursor positions.
type BookmarkStore interface {
	// Save stores or updates a bookmark. Bookmarks are keyed by name.
	Save(ctx context.Context, bookmark domain.Bookmark) error

	// Get retrieves a bookmark by name.
	// Returns domain.ErrNotFound if no bookmark has that name.
	Get(ctx context.Context, name string) (*domain.Bookmark, error)

	// Delete removes a bookmark. Deleting a missing bookmark is not an error.
	Delete(ctx context.Context, name string) error

	// List returns all bookmarks ordered by name.
	List(ctx context.Context) ([]domain.Bookmark, error)
}
