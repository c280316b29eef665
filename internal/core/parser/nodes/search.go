package nodes

import (
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser"
)

// SearchSuggestionsSection groups the suggestions of one search box query.
type SearchSuggestionsSection struct {
	parser.Base
	Contents parser.Sequence
}

func (n *SearchSuggestionsSection) Children() []parser.Node {
	return parser.Collect(n.Contents)
}

func buildSearchSuggestionsSection(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &SearchSuggestionsSection{Contents: f.Sequence("contents")}
	return n, f.Err()
}

// SearchSuggestion is one completion of a search query.
type SearchSuggestion struct {
	parser.Base
	Suggestion parser.Text
	Endpoint   *parser.NavigationEndpoint
	IconType   string
}

func (*SearchSuggestion) Children() []parser.Node { return nil }

// Query returns the query the suggestion searches for.
func (n *SearchSuggestion) Query() string {
	if n.Endpoint != nil {
		if q := n.Endpoint.Payload.String("query"); q != "" {
			return q
		}
	}
	return n.Suggestion.String()
}

func buildSearchSuggestion(_ *parser.Builder, body parser.Raw) (parser.Node, error) {
	return &SearchSuggestion{
		Suggestion: parser.ParseText(body.Get("suggestion")),
		Endpoint:   parser.ParseEndpoint(body.Object("navigationEndpoint")),
		IconType:   iconType(body),
	}, nil
}

// Video is a video result on web search and browse pages.
type Video struct {
	parser.Base
	VideoID       string
	Title         parser.Text
	Author        parser.Text
	Length        string
	ViewCount     string
	PublishedTime string
	Thumbnails    []domain.Thumbnail
	Endpoint      *parser.NavigationEndpoint
	Badges        parser.Sequence
}

func (n *Video) Children() []parser.Node {
	return parser.Collect(n.Badges)
}

func buildVideo(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &Video{
		VideoID:       body.String("videoId"),
		Title:         parser.ParseText(body.Get("title")),
		Author:        parser.ParseText(body.Get("ownerText")),
		Length:        parser.ParseText(body.Get("lengthText")).String(),
		ViewCount:     parser.ParseText(body.Get("viewCountText")).String(),
		PublishedTime: parser.ParseText(body.Get("publishedTimeText")).String(),
		Thumbnails:    parser.ParseThumbnails(body.Object("thumbnail")),
		Endpoint:      parser.ParseEndpoint(body.Object("navigationEndpoint")),
		Badges:        f.Sequence("badges"),
	}
	return n, f.Err()
}

// ShortsCard is one short of an AnalyticsShortsCarouselCard.
type ShortsCard struct {
	Description  string
	ThumbnailURL string
	Endpoint     *parser.NavigationEndpoint
}

// AnalyticsShortsCarouselCard lists top shorts on a channel analytics page.
type AnalyticsShortsCarouselCard struct {
	parser.Base
	Title  string
	Shorts []ShortsCard
}

func (*AnalyticsShortsCarouselCard) Children() []parser.Node { return nil }

func buildAnalyticsShortsCarouselCard(_ *parser.Builder, body parser.Raw) (parser.Node, error) {
	data := body.Object("shortsCarouselData")
	if data == nil {
		return nil, &domain.MalformedDocumentError{
			Path:   []string{"shortsCarouselData"},
			Reason: "required field is missing",
		}
	}
	n := &AnalyticsShortsCarouselCard{Title: body.String("title")}
	for _, s := range data.Objects("shorts") {
		n.Shorts = append(n.Shorts, ShortsCard{
			Description:  s.String("shortsDescription"),
			ThumbnailURL: s.String("thumbnailUrl"),
			Endpoint:     parser.ParseEndpoint(s.Object("videoEndpoint")),
		})
	}
	return n, nil
}
