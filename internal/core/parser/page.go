package parser

import (
	"errors"
	"sync"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// DefaultTokenPaths are the places a continuation token is looked for, in order.
var DefaultTokenPaths = []string{
	"continuation",
	"continuationContents.*.continuations.0.nextContinuationData.continuation",
	"continuationContents.*.continuations.0.reloadContinuationData.continuation",
	"continuationContents.*.continuations.0.nextRadioContinuationData.continuation",
	"onResponseReceivedActions.*.appendContinuationItemsAction.continuationItems.-1.continuationItemRenderer.continuationEndpoint.continuationCommand.token",
	"onResponseReceivedActions.*.reloadContinuationItemsCommand.continuationItems.-1.continuationItemRenderer.continuationEndpoint.continuationCommand.token",
	"onResponseReceivedEndpoints.*.appendContinuationItemsAction.continuationItems.-1.continuationItemRenderer.continuationEndpoint.continuationCommand.token",
}

// pageSections are the top-level keys built into node sequences.
var pageSections = []string{
	"header",
	"contents",
	"continuationContents",
	"onResponseReceivedActions",
	"onResponseReceivedCommands",
	"onResponseReceivedEndpoints",
	"sidebar",
	"playerOverlays",
	"microformat",
	"endscreen",
}

// topLevelKeys mark a document as a response envelope rather than a single node.
var topLevelKeys = append([]string{
	"playabilityStatus", "streamingData", "videoDetails", "currentVideoEndpoint",
}, pageSections...)

// PageOptions controls how a document becomes a page.
type PageOptions struct {
	// Builder builds the node graph. Required.
	Builder *Builder

	// Endpoint is recorded on the page for diagnostics.
	Endpoint string

	// TokenPaths overrides DefaultTokenPaths.
	TokenPaths []string
}

// Page is one fetched document: its typed sections, the player payload when
// present, and the continuation token of the next page.
//
// A page owns its index cache; indexes are built on first query and reused
// until the page is discarded. Pages must not be copied.
type Page struct {
	Ref      PageRef
	Endpoint string

	Header               Sequence
	Contents             Sequence
	ContinuationContents Sequence
	Actions              Sequence
	Sidebar              Sequence
	Overlays             Sequence
	Microformat          Sequence
	Endscreen            Sequence

	CurrentVideoEndpoint *NavigationEndpoint
	Playability          *domain.PlayabilityStatus
	Details              *domain.VideoDetails
	Tracking             *domain.PlaybackTracking

	// StreamingData is the raw streaming payload, parsed on demand by the formats package.
	StreamingData Raw

	// Continuation is the token of the next page, empty when the result set is exhausted.
	Continuation string

	EstimatedResults int64

	raw      Raw
	roots    []Node
	memoOnce sync.Once
	memo     *Index
	cache    IndexCache
}

// ParsePage builds a page from raw. The raw document is never modified.
//
// A document tagged through a FieldDiscriminator is always a single content
// root, whatever keys it carries. Otherwise a document carrying any of the
// known top-level keys is read as a response envelope, and failing that a
// discriminated document becomes the single content root.
func ParsePage(raw Raw, opts PageOptions) (*Page, error) {
	if opts.Builder == nil {
		return nil, errors.New("parse page: builder is required")
	}
	if raw == nil {
		return nil, domain.Malformed("empty document")
	}
	p := &Page{
		Ref:      nextPageRef(),
		Endpoint: opts.Endpoint,
		raw:      raw,
	}
	b := opts.Builder.ForPage(p.Ref)

	switch {
	case taggedRoot(b, raw):
		if err := p.buildRoot(b, raw); err != nil {
			return nil, err
		}
	case isEnvelope(raw):
		if err := p.buildSections(b, raw); err != nil {
			return nil, err
		}
		p.parsePlayer(raw)
	case b.Discriminated(raw):
		if err := p.buildRoot(b, raw); err != nil {
			return nil, err
		}
	}

	p.roots = Collect(p.Header, p.Contents, p.ContinuationContents, p.Actions,
		p.Sidebar, p.Overlays, p.Microformat, p.Endscreen)

	paths := opts.TokenPaths
	if paths == nil {
		paths = DefaultTokenPaths
	}
	p.Continuation, _ = FirstString(raw, paths...)
	p.EstimatedResults = raw.Int("estimatedResults")

	log.Debug("page %d (%s): %d roots, continuation=%t", p.Ref, p.Endpoint, len(p.roots), p.Continuation != "")
	return p, nil
}

// taggedRoot reports whether raw names its own variant through a field.
// Wrapper tags are not checked here: envelope keys such as currentVideoEndpoint
// would read as wrappers.
func taggedRoot(b *Builder, raw Raw) bool {
	if _, ok := b.Discriminator().(FieldDiscriminator); !ok {
		return false
	}
	return b.Discriminated(raw)
}

func (p *Page) buildRoot(b *Builder, raw Raw) error {
	root, err := b.Build(raw)
	if err != nil {
		return err
	}
	p.Contents = sequenceOf([]Node{root})
	return nil
}

func isEnvelope(raw Raw) bool {
	for _, k := range topLevelKeys {
		if raw.Has(k) {
			return true
		}
	}
	return false
}

func (p *Page) buildSections(b *Builder, raw Raw) error {
	targets := map[string]*Sequence{
		"header":                      &p.Header,
		"contents":                    &p.Contents,
		"continuationContents":        &p.ContinuationContents,
		"onResponseReceivedActions":   &p.Actions,
		"onResponseReceivedCommands":  &p.Actions,
		"onResponseReceivedEndpoints": &p.Actions,
		"sidebar":                     &p.Sidebar,
		"playerOverlays":              &p.Overlays,
		"microformat":                 &p.Microformat,
		"endscreen":                   &p.Endscreen,
	}
	for _, key := range pageSections {
		s, err := b.Children(raw, key)
		if err != nil {
			return err
		}
		dst := targets[key]
		if dst.Empty() {
			*dst = s
		} else if !s.Empty() {
			*dst = sequenceOf(Collect(*dst, s))
		}
	}
	if ep := raw.Object("currentVideoEndpoint"); ep != nil {
		p.CurrentVideoEndpoint = ParseEndpoint(ep)
	}
	return nil
}

func (p *Page) parsePlayer(raw Raw) {
	if ps := raw.Object("playabilityStatus"); ps != nil {
		p.Playability = &domain.PlayabilityStatus{
			Status:          ps.String("status"),
			Reason:          ps.String("reason"),
			PlayableInEmbed: ps.Bool("playableInEmbed"),
		}
	}
	if vd := raw.Object("videoDetails"); vd != nil {
		d := &domain.VideoDetails{
			ID:               vd.String("videoId"),
			Title:            vd.String("title"),
			Author:           vd.String("author"),
			ChannelID:        vd.String("channelId"),
			LengthSeconds:    vd.Int("lengthSeconds"),
			ViewCount:        vd.Int("viewCount"),
			Keywords:         vd.Strings("keywords"),
			ShortDescription: vd.String("shortDescription"),
			IsLive:           vd.Bool("isLiveContent"),
			IsPrivate:        vd.Bool("isPrivate"),
		}
		d.Thumbnails = ParseThumbnails(vd.Object("thumbnail"))
		p.Details = d
	}
	if pt := raw.Object("playbackTracking"); pt != nil {
		p.Tracking = &domain.PlaybackTracking{
			VideostatsPlaybackURL:  pt.DigString("videostatsPlaybackUrl", "baseUrl"),
			VideostatsWatchtimeURL: pt.DigString("videostatsWatchtimeUrl", "baseUrl"),
		}
	}
	p.StreamingData = raw.Object("streamingData")
}

// ParseThumbnails reads {"thumbnails": [...]}.
func ParseThumbnails(raw Raw) []domain.Thumbnail {
	items := raw.Objects("thumbnails")
	out := make([]domain.Thumbnail, 0, len(items))
	for _, t := range items {
		out = append(out, domain.Thumbnail{
			URL:    t.String("url"),
			Width:  int(t.Int("width")),
			Height: int(t.Int("height")),
		})
	}
	return out
}

// Roots returns the top-level nodes of every section, in section order.
func (p *Page) Roots() Sequence {
	return sequenceOf(p.roots)
}

// Memo returns the index over the whole page. It is built once.
func (p *Page) Memo() *Index {
	p.memoOnce.Do(func() {
		p.memo = NewIndex(p.roots...)
	})
	return p.memo
}

// IndexOf returns the memoised index of the subtree rooted at n.
func (p *Page) IndexOf(n Node) *Index {
	return p.cache.ForSubtree(n)
}

// HasContinuation reports whether the page carries a token for the next page.
func (p *Page) HasContinuation() bool {
	return p.Continuation != ""
}

// Raw returns the source document. It must not be modified.
func (p *Page) Raw() Raw {
	return p.raw
}
