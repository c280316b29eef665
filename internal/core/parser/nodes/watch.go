package nodes

import (
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser"
)

// SingleColumnMusicWatchNextResults wraps the tabbed results of a music watch page.
type SingleColumnMusicWatchNextResults struct {
	parser.Base
	Contents parser.Node
}

func (n *SingleColumnMusicWatchNextResults) Children() []parser.Node {
	return parser.Collect(n.Contents)
}

func buildSingleColumnMusicWatchNextResults(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &SingleColumnMusicWatchNextResults{Contents: f.Node("tabbedRenderer")}
	return n, f.Err()
}

// WatchNextTabbedResults holds the tabs of a watch page: up next, lyrics, related.
type WatchNextTabbedResults struct {
	parser.Base
	Tabs parser.Sequence
}

func (n *WatchNextTabbedResults) Children() []parser.Node {
	return parser.Collect(n.Tabs)
}

func buildWatchNextTabbedResults(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &WatchNextTabbedResults{Tabs: f.Sequence("tabs", TypeTab)}
	return n, f.Err()
}

// Tab is one tab of a tabbed page. Content is nil until the tab is opened.
type Tab struct {
	parser.Base
	Title    string
	Selected bool
	Endpoint *parser.NavigationEndpoint
	Content  parser.Node
}

func (n *Tab) Children() []parser.Node {
	return parser.Collect(n.Content)
}

// PageType returns the page type the tab endpoint leads to.
func (n *Tab) PageType() string {
	return n.Endpoint.PageType()
}

func buildTab(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &Tab{
		Title:    body.String("title"),
		Selected: body.Bool("selected"),
		Endpoint: parser.ParseEndpoint(body.Object("endpoint")),
		Content:  f.Node("content"),
	}
	return n, f.Err()
}

// MusicQueue is the up-next tab content.
type MusicQueue struct {
	parser.Base
	Header  parser.Node
	Content parser.Node
}

func (n *MusicQueue) Children() []parser.Node {
	return parser.Collect(n.Header, n.Content)
}

func buildMusicQueue(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &MusicQueue{
		Header:  f.Node("header"),
		Content: f.Node("content"),
	}
	return n, f.Err()
}

// PlaylistPanel is a queue of videos. A panel without a playlist id is an automix
// preview whose real queue sits behind the AutomixPreviewVideo endpoint.
type PlaylistPanel struct {
	parser.Base
	Title        string
	PlaylistID   string
	IsInfinite   bool
	Contents     parser.Sequence
	Continuation string
}

func (n *PlaylistPanel) Children() []parser.Node {
	return parser.Collect(n.Contents)
}

func buildPlaylistPanel(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &PlaylistPanel{
		Title:        body.String("title"),
		PlaylistID:   body.String("playlistId"),
		IsInfinite:   body.Bool("isInfinite"),
		Contents:     f.Sequence("contents"),
		Continuation: legacyContinuation(body),
	}
	return n, f.Err()
}

// PlaylistPanelVideo is one entry of a playlist panel.
type PlaylistPanelVideo struct {
	parser.Base
	VideoID    string
	Title      parser.Text
	Author     parser.Text
	Duration   string
	Selected   bool
	Endpoint   *parser.NavigationEndpoint
	Thumbnails []domain.Thumbnail
}

func (*PlaylistPanelVideo) Children() []parser.Node { return nil }

func buildPlaylistPanelVideo(_ *parser.Builder, body parser.Raw) (parser.Node, error) {
	return &PlaylistPanelVideo{
		VideoID:    body.String("videoId"),
		Title:      parser.ParseText(body.Get("title")),
		Author:     parser.ParseText(body.Get("longBylineText")),
		Duration:   parser.ParseText(body.Get("lengthText")).String(),
		Selected:   body.Bool("selected"),
		Endpoint:   parser.ParseEndpoint(body.Object("navigationEndpoint")),
		Thumbnails: parser.ParseThumbnails(body.Object("thumbnail")),
	}, nil
}

// AutomixPreviewVideo points at the automix playlist of the current track.
type AutomixPreviewVideo struct {
	parser.Base
	PlaylistVideo *parser.NavigationEndpoint
}

func (*AutomixPreviewVideo) Children() []parser.Node { return nil }

func buildAutomixPreviewVideo(_ *parser.Builder, body parser.Raw) (parser.Node, error) {
	return &AutomixPreviewVideo{
		PlaylistVideo: parser.ParseEndpoint(
			body.DigObject("content", "automixPlaylistVideoRenderer", "navigationEndpoint")),
	}, nil
}

// PlayerOverlay carries the end screen and autoplay blocks shown over the player.
type PlayerOverlay struct {
	parser.Base
	EndScreen         parser.Node
	Autoplay          parser.Node
	BrowserMediaTitle string
}

func (n *PlayerOverlay) Children() []parser.Node {
	return parser.Collect(n.EndScreen, n.Autoplay)
}

func buildPlayerOverlay(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	album := body.DigObject("browserMediaSession", "browserMediaSessionRenderer", "album")
	f := b.Fields(body)
	n := &PlayerOverlay{
		EndScreen:         f.Node("endScreen"),
		Autoplay:          f.Node("autoplay"),
		BrowserMediaTitle: parser.ParseText(album).String(),
	}
	return n, f.Err()
}
