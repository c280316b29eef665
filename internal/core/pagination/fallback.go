package pagination

import (
	"context"
	"fmt"

	"github.com/custodia-labs/innergraph/internal/core/parser"
)

// Fallback is asked for an alternate cursor when a page produced no usable
// content. Returning nil and no error is the terminal empty result.
type Fallback func(ctx context.Context, empty *parser.Page) (*Cursor, error)

// UsableFunc reports whether a page has the content its owner is after.
type UsableFunc func(*parser.Page) bool

// Resolution is the outcome of a fallback chain.
type Resolution struct {
	// Page is the usable page, or the last unusable one when the chain ended empty.
	Page *parser.Page

	// Cursor produced Page and resumes its collection. Nil when Empty.
	Cursor *Cursor

	// Step is 0 when the primary cursor produced Page, i+1 for fallbacks[i].
	Step int

	// Empty is set when no cursor in the chain produced a usable page.
	Empty bool
}

// Resolve advances primary and, while the page is not usable, asks the next
// fallback for an alternate cursor and advances that instead.
func Resolve(ctx context.Context, primary *Cursor, usable UsableFunc, fallbacks ...Fallback) (*Resolution, error) {
	page, err := primary.Advance(ctx)
	if err != nil {
		return nil, err
	}
	if usable(page) {
		return &Resolution{Page: page, Cursor: primary}, nil
	}

	for i, fb := range fallbacks {
		alt, err := fb(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fallback %d: %w", i+1, err)
		}
		if alt == nil {
			log.Debug("fallback %d ended the chain empty", i+1)
			return &Resolution{Page: page, Step: i + 1, Empty: true}, nil
		}
		page, err = alt.Advance(ctx)
		if err != nil {
			return nil, fmt.Errorf("fallback %d: %w", i+1, err)
		}
		if usable(page) {
			return &Resolution{Page: page, Cursor: alt, Step: i + 1}, nil
		}
	}
	return &Resolution{Page: page, Step: len(fallbacks), Empty: true}, nil
}
