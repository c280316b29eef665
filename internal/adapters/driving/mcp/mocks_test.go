package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/innergraph/internal/core/aggregates"
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/pagination"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
)

// mockBrowseService is a mock implementation of driving.BrowseService.
type mockBrowseService struct {
	page     *parser.Page
	err      error
	requests []domain.FetchRequest
}

func (m *mockBrowseService) Page(_ context.Context, req domain.FetchRequest) (*parser.Page, error) {
	m.requests = append(m.requests, req)
	return m.page, m.err
}

func (m *mockBrowseService) Feed(_ context.Context, _ domain.FetchRequest) (*aggregates.Feed, error) {
	return nil, m.err
}

func (m *mockBrowseService) Cursor(_ domain.FetchRequest) *pagination.Cursor {
	return nil
}

func (m *mockBrowseService) KidsChannel(_ context.Context, _ string) (*aggregates.KidsChannel, error) {
	return nil, m.err
}

func (m *mockBrowseService) Resume(_ context.Context, _ string) (*pagination.Cursor, *domain.Bookmark, error) {
	return nil, nil, m.err
}

func (m *mockBrowseService) SaveBookmark(
	_ context.Context,
	_ string,
	_ domain.FetchRequest,
	_ *pagination.Cursor,
) (*domain.Bookmark, error) {
	return nil, m.err
}

// mockMediaService is a mock implementation of driving.MediaService.
type mockMediaService struct {
	streaming *domain.StreamingData
	chosen    domain.Format
	manifest  string
	err       error
	opts      domain.FormatOptions
	filter    string
}

func (m *mockMediaService) Track(_ context.Context, _ string) (*aggregates.TrackInfo, error) {
	return nil, m.err
}

func (m *mockMediaService) Formats(_ context.Context, _ string) (*domain.StreamingData, error) {
	return m.streaming, m.err
}

func (m *mockMediaService) Choose(_ context.Context, _ string, opts domain.FormatOptions) (domain.Format, error) {
	m.opts = opts
	return m.chosen, m.err
}

func (m *mockMediaService) Manifest(_ context.Context, _, filter string) (string, error) {
	m.filter = filter
	return m.manifest, m.err
}

func (m *mockMediaService) Download(
	_ context.Context,
	_ string,
	_ domain.FormatOptions,
	_ io.Writer,
	_ driven.ProgressFunc,
) (domain.Format, int64, error) {
	return m.chosen, 0, m.err
}

// mockBookmarkService is a mock implementation of driving.BookmarkService.
type mockBookmarkService struct {
	bookmarks []domain.Bookmark
	bookmark  *domain.Bookmark
	err       error
}

func (m *mockBookmarkService) List(_ context.Context) ([]domain.Bookmark, error) {
	return m.bookmarks, m.err
}

func (m *mockBookmarkService) Get(_ context.Context, _ string) (*domain.Bookmark, error) {
	return m.bookmark, m.err
}

func (m *mockBookmarkService) Delete(_ context.Context, _ string) error {
	return m.err
}
