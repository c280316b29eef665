package aggregates

import (
	"context"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/pagination"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/parser/nodes"
)

// KidsChannel is a channel page of the kids client.
// Contents is the first ItemSection of the page, or the ItemSectionContinuation
// of a continuation page.
type KidsChannel struct {
	loader *Loader
	page   *parser.Page

	Header   *nodes.C4TabbedHeader
	Contents parser.Node
}

// NewKidsChannel wraps a browse page fetched with the kids client.
func NewKidsChannel(loader *Loader, page *parser.Page) *KidsChannel {
	c := &KidsChannel{loader: loader, page: page}
	c.Header, _ = parser.First[*nodes.C4TabbedHeader](page.Header)
	if n, ok := page.Memo().FirstOf(nodes.TypeItemSection); ok {
		c.Contents = n
	} else if n, ok := page.ContinuationContents.FirstOfType(nodes.TypeItemSectionContinuation); ok {
		c.Contents = n
	}
	return c
}

// LoadKidsChannel browses to channelID with the kids client.
func LoadKidsChannel(ctx context.Context, loader *Loader, channelID string) (*KidsChannel, error) {
	page, err := loader.Load(ctx, kidsBrowse(map[string]any{"browseId": channelID}))
	if err != nil {
		return nil, err
	}
	return NewKidsChannel(loader, page), nil
}

func kidsBrowse(params map[string]any) domain.FetchRequest {
	return domain.FetchRequest{Endpoint: domain.EndpointBrowse, Client: domain.ClientKids, Params: params}
}

// Page returns the wrapped page.
func (c *KidsChannel) Page() *parser.Page {
	return c.page
}

// Items returns the videos of the contents section.
func (c *KidsChannel) Items() parser.Sequence {
	switch n := c.Contents.(type) {
	case *nodes.ItemSection:
		return n.Contents
	case *nodes.ItemSectionContinuation:
		return n.Contents
	default:
		return parser.Sequence{}
	}
}

// ContinuationToken returns the token of the contents section.
func (c *KidsChannel) ContinuationToken() string {
	return contentsToken(c.Contents)
}

// HasContinuation reports whether more videos can be fetched.
func (c *KidsChannel) HasContinuation() bool {
	return c.ContinuationToken() != ""
}

// Cursor returns a cursor positioned after this page. The token is read from
// the contents section rather than the page.
func (c *KidsChannel) Cursor() *pagination.Cursor {
	return pagination.FromPage(c.loader.FetchFunc(kidsBrowse(nil)), c.page, pagination.WithTokenFunc(kidsToken))
}

// Continuation fetches the next batch of videos.
// It returns ErrEndOfSequence when the section carries no token.
func (c *KidsChannel) Continuation(ctx context.Context) (*KidsChannel, error) {
	page, err := c.Cursor().Advance(ctx)
	if err != nil {
		return nil, err
	}
	return NewKidsChannel(c.loader, page), nil
}

func kidsToken(p *parser.Page) string {
	return NewKidsChannel(nil, p).ContinuationToken()
}

func contentsToken(n parser.Node) string {
	switch n := n.(type) {
	case *nodes.ItemSection:
		return n.Continuation
	case *nodes.ItemSectionContinuation:
		return n.Continuation
	default:
		return ""
	}
}
