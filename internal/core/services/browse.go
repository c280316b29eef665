package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/innergraph/internal/core/aggregates"
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/pagination"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
	"github.com/custodia-labs/innergraph/internal/core/ports/driving"
	"github.com/custodia-labs/innergraph/internal/logger"
)

// Ensure BrowseService implements the interface.
var _ driving.BrowseService = (*BrowseService)(nil)

// BrowseService fetches pages and resumes result sets from bookmarks.
type BrowseService struct {
	loader    *aggregates.Loader
	bookmarks driven.BookmarkStore
	now       func() time.Time
}

// NewBrowseService creates a new browse service.
// The bookmark store is optional; without it Resume and SaveBookmark fail.
func NewBrowseService(loader *aggregates.Loader, bookmarks driven.BookmarkStore) *BrowseService {
	return &BrowseService{
		loader:    loader,
		bookmarks: bookmarks,
		now:       time.Now,
	}
}

// Page fetches req and parses the response.
func (s *BrowseService) Page(ctx context.Context, req domain.FetchRequest) (*parser.Page, error) {
	logger.Debug("browse: %s", req)
	return s.loader.Load(ctx, req)
}

// Feed fetches req and wraps the response as a resumable feed.
func (s *BrowseService) Feed(ctx context.Context, req domain.FetchRequest) (*aggregates.Feed, error) {
	return aggregates.LoadFeed(ctx, s.loader, req)
}

// Cursor returns a fresh cursor over req.
func (s *BrowseService) Cursor(req domain.FetchRequest) *pagination.Cursor {
	return s.loader.Cursor(req)
}

// KidsChannel browses a channel with the kids client.
func (s *BrowseService) KidsChannel(ctx context.Context, channelID string) (*aggregates.KidsChannel, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: channel id is required", domain.ErrInvalidInput)
	}
	return aggregates.LoadKidsChannel(ctx, s.loader, channelID)
}

// Resume returns a cursor positioned where the named bookmark left off.
// A bookmark saved before any page was fetched resumes from the start.
func (s *BrowseService) Resume(ctx context.Context, name string) (*pagination.Cursor, *domain.Bookmark, error) {
	if s.bookmarks == nil {
		return nil, nil, fmt.Errorf("resume %q: no bookmark store configured", name)
	}
	b, err := s.bookmarks.Get(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("resume %q: %w", name, err)
	}
	if b.Exhausted() {
		return nil, b, fmt.Errorf("resume %q: %w", name, domain.ErrEndOfSequence)
	}
	logger.Debug("resume %q: %s after %d pages", name, b.Request, b.Pages)
	return s.loader.Cursor(b.Request.WithContinuation(b.Token), pagination.WithPageOffset(b.Pages)), b, nil
}

// SaveBookmark records the position of c under name. Saving over an existing
// bookmark keeps its ID and creation time. The saved page count is the
// cursor's position, so a cursor from Resume counts the pages before it and a
// fresh cursor starts over.
func (s *BrowseService) SaveBookmark(ctx context.Context, name string, req domain.FetchRequest,
	c *pagination.Cursor) (*domain.Bookmark, error) {
	if s.bookmarks == nil {
		return nil, fmt.Errorf("save bookmark %q: no bookmark store configured", name)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: cursor is required", domain.ErrInvalidInput)
	}

	now := s.now()
	b := domain.Bookmark{
		ID:        uuid.New().String(),
		Name:      name,
		Request:   req.WithContinuation(""),
		Token:     c.Token(),
		Pages:     c.Position(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.State() == pagination.Exhausted {
		b.Token = ""
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.bookmarks.Get(ctx, name)
	switch {
	case err == nil:
		b.ID = existing.ID
		b.CreatedAt = existing.CreatedAt
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("save bookmark %q: %w", name, err)
	}

	if err := s.bookmarks.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("save bookmark %q: %w", name, err)
	}
	return &b, nil
}
