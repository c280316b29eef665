// Package pagination resumes multi-page result sets through continuation tokens.
//
// A Cursor only ever knows "one token in, one page and token out". Choosing an
// alternate collection when a page comes back empty is a policy applied by the
// cursor's owner through Resolve.
package pagination

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/logger"
)

var log = logger.Component("cursor")

// State is the position of a cursor in its result set.
type State int

const (
	// Fresh cursors have not fetched yet. They may hold an initial token.
	Fresh State = iota

	// Fetched cursors hold the last page and the token of the next one.
	Fetched

	// Exhausted cursors have seen a page without a token.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Fetched:
		return "fetched"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// FetchFunc fetches the page for token. An empty token asks for the first page.
type FetchFunc func(ctx context.Context, token string) (*parser.Page, error)

// TokenFunc extracts the next token from a page.
type TokenFunc func(*parser.Page) string

// PageToken is the default TokenFunc: the page's own continuation.
func PageToken(p *parser.Page) string {
	return p.Continuation
}

// Option configures a Cursor.
type Option func(*Cursor)

// WithTokenFunc reads the next token with fn instead of PageToken.
// Use it when the token sits inside a node rather than at a known page path.
func WithTokenFunc(fn TokenFunc) Option {
	return func(c *Cursor) {
		c.tokenOf = fn
	}
}

// WithPageOffset counts n pages as fetched before the cursor's first token,
// as when resuming a saved position.
func WithPageOffset(n int) Option {
	return func(c *Cursor) {
		c.offset = n
	}
}

// Cursor walks a paginated result set one page at a time.
//
// Advances are strictly sequential: an Advance issued while another is in
// flight fails with ErrAdvanceInProgress. A failed or cancelled Advance leaves
// the cursor exactly as it was, so it can be retried.
type Cursor struct {
	fetch   FetchFunc
	tokenOf TokenFunc
	busy    atomic.Bool

	mu     sync.Mutex
	state  State
	token  string
	last   *parser.Page
	pages  int
	offset int
}

// New creates a Fresh cursor. An empty initialToken starts from the first page.
func New(fetch FetchFunc, initialToken string, opts ...Option) *Cursor {
	c := &Cursor{
		fetch:   fetch,
		tokenOf: PageToken,
		token:   initialToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromPage creates a cursor positioned after page, which was fetched elsewhere.
// It is Exhausted when page carries no token.
func FromPage(fetch FetchFunc, page *parser.Page, opts ...Option) *Cursor {
	c := New(fetch, "", opts...)
	c.last = page
	c.pages = 1
	c.token = c.tokenOf(page)
	c.state = Fetched
	if c.token == "" {
		c.state = Exhausted
	}
	return c
}

// Advance fetches the next page.
// On an exhausted cursor it returns ErrEndOfSequence without fetching.
func (c *Cursor) Advance(ctx context.Context) (*parser.Page, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrAdvanceInProgress
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	state, token := c.state, c.token
	c.mu.Unlock()

	if state == Exhausted {
		return nil, domain.ErrEndOfSequence
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := c.fetch(ctx, token)
	if err != nil {
		log.Debug("advance failed in state %s: %v", state, err)
		return nil, fmt.Errorf("advance cursor: %w", err)
	}
	if page == nil {
		return nil, domain.Malformed("fetch returned no page")
	}

	next := c.tokenOf(page)

	c.mu.Lock()
	c.last = page
	c.pages++
	c.token = next
	if next == "" {
		c.state = Exhausted
	} else {
		c.state = Fetched
	}
	log.Debug("%s -> %s after page %d", state, c.state, c.pages)
	c.mu.Unlock()

	return page, nil
}

// HasMore reports whether Advance would fetch another page.
func (c *Cursor) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != Exhausted
}

// State returns the current state.
func (c *Cursor) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Token returns the token the next Advance will send.
func (c *Cursor) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Last returns the most recently fetched page, or nil.
func (c *Cursor) Last() *parser.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Pages returns how many pages were fetched.
func (c *Cursor) Pages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pages
}

// Position returns the pages fetched by this cursor plus its page offset:
// the position in the whole result set.
func (c *Cursor) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset + c.pages
}

// Drain advances until the cursor is exhausted or max pages were fetched.
// A max of zero or less means no limit. Pages fetched before a failure are returned.
func Drain(ctx context.Context, c *Cursor, max int) ([]*parser.Page, error) {
	var out []*parser.Page
	for c.HasMore() && (max <= 0 || len(out) < max) {
		p, err := c.Advance(ctx)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, nil
}
