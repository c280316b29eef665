// Package aggregates holds the consumer objects built over fetched pages: a
// generic feed, a music track with its tabs and formats, and a kids channel.
//
// Aggregates query their pages through the memoised type index and resume
// result sets through pagination cursors. They never mutate a page.
package aggregates

import (
	"context"
	"fmt"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/pagination"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
	"github.com/custodia-labs/innergraph/internal/logger"
)

var log = logger.Component("aggregates")

// Loader fetches requests through a transport and parses the responses into pages.
type Loader struct {
	transport driven.Transport
	builder   *parser.Builder
}

// NewLoader creates a loader.
func NewLoader(transport driven.Transport, builder *parser.Builder) *Loader {
	return &Loader{transport: transport, builder: builder}
}

// Load performs req and parses the response.
func (l *Loader) Load(ctx context.Context, req domain.FetchRequest) (*parser.Page, error) {
	if l.transport == nil {
		return nil, domain.ErrTransportUnavailable
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	raw, err := l.transport.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.Endpoint, err)
	}
	page, err := parser.ParsePage(parser.Raw(raw), parser.PageOptions{Builder: l.builder, Endpoint: req.Endpoint})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", req.Endpoint, err)
	}
	return page, nil
}

// FetchFunc returns a cursor fetch function that resumes req with each token.
func (l *Loader) FetchFunc(req domain.FetchRequest) pagination.FetchFunc {
	return func(ctx context.Context, token string) (*parser.Page, error) {
		return l.Load(ctx, req.WithContinuation(token))
	}
}

// Cursor returns a Fresh cursor over req. A non-empty req.Continuation is the initial token.
func (l *Loader) Cursor(req domain.FetchRequest, opts ...pagination.Option) *pagination.Cursor {
	token := req.Continuation
	req.Continuation = ""
	return pagination.New(l.FetchFunc(req), token, opts...)
}

// Builder returns the graph builder pages are parsed with.
func (l *Loader) Builder() *parser.Builder {
	return l.builder
}
