package nodes

import (
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser"
)

// SectionList is the usual top-level content of browse pages.
type SectionList struct {
	parser.Base
	Header       parser.Node
	Contents     parser.Sequence
	Continuation string
}

func (n *SectionList) Children() []parser.Node {
	return parser.Collect(n.Header, n.Contents)
}

func buildSectionList(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &SectionList{
		Header:       f.Node("header"),
		Contents:     f.Sequence("contents"),
		Continuation: legacyContinuation(body),
	}
	if n.Continuation == "" {
		n.Continuation = trailingContinuation(n.Contents)
	}
	return n, f.Err()
}

// ItemSection is a block of items, optionally headed.
type ItemSection struct {
	parser.Base
	TargetID     string
	Header       parser.Node
	Contents     parser.Sequence
	Continuation string
}

func (n *ItemSection) Children() []parser.Node {
	return parser.Collect(n.Header, n.Contents)
}

func buildItemSection(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &ItemSection{
		TargetID:     body.String("targetId"),
		Header:       f.Node("header"),
		Contents:     f.Sequence("contents"),
		Continuation: legacyContinuation(body),
	}
	if n.Continuation == "" {
		n.Continuation = trailingContinuation(n.Contents)
	}
	return n, f.Err()
}

// ItemSectionContinuation is the next page of an ItemSection.
type ItemSectionContinuation struct {
	parser.Base
	Contents     parser.Sequence
	Continuation string
}

func (n *ItemSectionContinuation) Children() []parser.Node {
	return parser.Collect(n.Contents)
}

func buildItemSectionContinuation(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &ItemSectionContinuation{
		Contents:     f.Sequence("contents"),
		Continuation: legacyContinuation(body),
	}
	return n, f.Err()
}

// ItemSectionTabbedHeader heads an item section with tabs.
type ItemSectionTabbedHeader struct {
	parser.Base
	Title    parser.Text
	Tabs     parser.Sequence
	EndItems parser.Sequence
}

func (n *ItemSectionTabbedHeader) Children() []parser.Node {
	return parser.Collect(n.Tabs, n.EndItems)
}

func buildItemSectionTabbedHeader(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &ItemSectionTabbedHeader{
		Title:    parser.ParseText(body.Get("title")),
		Tabs:     f.Sequence("tabs", TypeItemSectionTab),
		EndItems: f.Sequence("endItems"),
	}
	return n, f.Err()
}

// ItemSectionTab is one tab of an ItemSectionTabbedHeader.
type ItemSectionTab struct {
	parser.Base
	Title    parser.Text
	Selected bool
	Endpoint *parser.NavigationEndpoint
}

func (*ItemSectionTab) Children() []parser.Node { return nil }

func buildItemSectionTab(_ *parser.Builder, body parser.Raw) (parser.Node, error) {
	return &ItemSectionTab{
		Title:    parser.ParseText(body.Get("title")),
		Selected: body.Bool("selected"),
		Endpoint: parser.ParseEndpoint(body.Object("endpoint")),
	}, nil
}

// RichGrid is a grid of items; its continuation is the trailing ContinuationItem.
type RichGrid struct {
	parser.Base
	Header       parser.Node
	Contents     parser.Sequence
	Continuation string
}

func (n *RichGrid) Children() []parser.Node {
	return parser.Collect(n.Header, n.Contents)
}

func buildRichGrid(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &RichGrid{
		Header:   f.Node("header"),
		Contents: f.Sequence("contents"),
	}
	n.Continuation = trailingContinuation(n.Contents)
	return n, f.Err()
}

// Message is an informational notice shown instead of content,
// such as "lyrics not available".
type Message struct {
	parser.Base
	Text parser.Text
}

func (*Message) Children() []parser.Node { return nil }

func buildMessage(_ *parser.Builder, body parser.Raw) (parser.Node, error) {
	return &Message{Text: parser.ParseText(body.Get("text"))}, nil
}

// ActionMessage is a Message carrying a button, such as "sign in to see this".
type ActionMessage struct {
	parser.Base
	Text   parser.Text
	Button parser.Node
}

func (n *ActionMessage) Children() []parser.Node {
	return parser.Collect(n.Button)
}

func buildActionMessage(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &ActionMessage{
		Text:   parser.ParseText(body.Get("text")),
		Button: f.Required("button"),
	}
	return n, f.Err()
}

// C4TabbedHeader is a channel page header.
type C4TabbedHeader struct {
	parser.Base
	ChannelID       string
	Title           string
	Avatar          []domain.Thumbnail
	Banner          []domain.Thumbnail
	SubscriberCount parser.Text
	VideosCount     parser.Text
	SubscribeButton parser.Node
	Badges          parser.Sequence
}

func (n *C4TabbedHeader) Children() []parser.Node {
	return parser.Collect(n.SubscribeButton, n.Badges)
}

func buildC4TabbedHeader(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &C4TabbedHeader{
		ChannelID:       body.String("channelId"),
		Title:           body.String("title"),
		Avatar:          parser.ParseThumbnails(body.Object("avatar")),
		Banner:          parser.ParseThumbnails(body.Object("banner")),
		SubscriberCount: parser.ParseText(body.Get("subscriberCountText")),
		VideosCount:     parser.ParseText(body.Get("videosCountText")),
		SubscribeButton: f.Node("subscribeButton"),
		Badges:          f.Sequence("badges"),
	}
	return n, f.Err()
}
