package driving

import (
	"context"

	"github.com/custodia-labs/innergraph/internal/core/aggregates"
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/pagination"
	"github.com/custodia-labs/innergraph/internal/core/parser"
)

// BrowseService fetches pages and resumes paginated result sets.
type BrowseService interface {
	// Page fetches req and parses the response into a node graph.
	Page(ctx context.Context, req domain.FetchRequest) (*parser.Page, error)

	// Feed fetches req and wraps the response as a resumable feed.
	Feed(ctx context.Context, req domain.FetchRequest) (*aggregates.Feed, error)

	// Cursor returns a fresh cursor over req. Nothing is fetched until Advance.
	Cursor(req domain.FetchRequest) *pagination.Cursor

	// KidsChannel browses a channel with the kids client.
	KidsChannel(ctx context.Context, channelID string) (*aggregates.KidsChannel, error)

	// Resume returns a cursor positioned where the named bookmark left off.
	// Returns domain.ErrEndOfSequence if the saved result set was exhausted.
	Resume(ctx context.Context, name string) (*pagination.Cursor, *domain.Bookmark, error)

	// SaveBookmark records the position of c, a cursor over req, under name.
	SaveBookmark(ctx context.Context, name string, req domain.FetchRequest, c *pagination.Cursor) (*domain.Bookmark, error)
}
