package aggregates

import (
	"context"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/pagination"
	"github.com/custodia-labs/innergraph/internal/core/parser"
)

// Feed is one page of a paginated result set and the means to fetch the next.
// Each Feed is immutable; Next returns a new Feed.
type Feed struct {
	loader *Loader
	req    domain.FetchRequest
	page   *parser.Page
}

// NewFeed wraps page, the response to req.
func NewFeed(loader *Loader, req domain.FetchRequest, page *parser.Page) *Feed {
	req.Continuation = ""
	return &Feed{loader: loader, req: req, page: page}
}

// LoadFeed fetches req and wraps the response.
func LoadFeed(ctx context.Context, loader *Loader, req domain.FetchRequest) (*Feed, error) {
	page, err := loader.Load(ctx, req)
	if err != nil {
		return nil, err
	}
	return NewFeed(loader, req, page), nil
}

// Page returns the wrapped page.
func (f *Feed) Page() *parser.Page {
	return f.page
}

// Memo returns the index over the whole page.
func (f *Feed) Memo() *parser.Index {
	return f.page.Memo()
}

// Request returns the request the result set was opened with.
func (f *Feed) Request() domain.FetchRequest {
	return f.req
}

// HasContinuation reports whether a next page exists.
func (f *Feed) HasContinuation() bool {
	return f.page.HasContinuation()
}

// Cursor returns a cursor positioned after this page.
func (f *Feed) Cursor() *pagination.Cursor {
	return pagination.FromPage(f.loader.FetchFunc(f.req), f.page)
}

// Next fetches the next page. It returns ErrEndOfSequence on the last page.
func (f *Feed) Next(ctx context.Context) (*Feed, error) {
	page, err := f.Cursor().Advance(ctx)
	if err != nil {
		return nil, err
	}
	return &Feed{loader: f.loader, req: f.req, page: page}, nil
}
