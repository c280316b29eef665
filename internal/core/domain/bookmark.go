package domain

import (
	"fmt"
	"strings"
	"time"
)

// Bookmark is a saved position inside a paginated result set.
// Only the request and the continuation token are stored, never page content.
type Bookmark struct {
	// ID is the unique identifier for the bookmark.
	ID string

	// Name is the user-facing handle used to resume.
	Name string

	// Request is the original request, without a continuation.
	Request FetchRequest

	// Token is the continuation token of the next page to fetch.
	// Empty means the result set was exhausted when the bookmark was saved.
	Token string

	// Pages is how many pages had been fetched when the bookmark was saved.
	Pages int

	// CreatedAt is when the bookmark was first saved.
	CreatedAt time.Time

	// UpdatedAt is when the bookmark was last moved forward.
	UpdatedAt time.Time
}

// Exhausted reports whether the saved result set has no more pages.
func (b *Bookmark) Exhausted() bool {
	return b.Token == "" && b.Pages > 0
}

// Validate checks the bookmark can be stored.
func (b *Bookmark) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: bookmark name is required", ErrInvalidInput)
	}
	return b.Request.Validate()
}
