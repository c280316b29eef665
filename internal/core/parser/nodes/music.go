package nodes

import (
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser"
)

// MusicShelf is a titled list of tracks, as on search and library pages.
type MusicShelf struct {
	parser.Base
	Title        parser.Text
	Contents     parser.Sequence
	Endpoint     *parser.NavigationEndpoint
	Continuation string
	BottomText   parser.Text
	BottomButton parser.Node
	Subheaders   parser.Sequence
}

func (n *MusicShelf) Children() []parser.Node {
	return parser.Collect(n.Contents, n.BottomButton, n.Subheaders)
}

func buildMusicShelf(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &MusicShelf{
		Title:        parser.ParseText(body.Get("title")),
		Contents:     f.Sequence("contents", TypeMusicResponsiveListItem),
		Endpoint:     parser.ParseEndpoint(body.Object("bottomEndpoint")),
		Continuation: legacyContinuation(body),
		BottomText:   parser.ParseText(body.Get("bottomText")),
		BottomButton: f.Node("bottomButton", TypeButton),
		Subheaders:   f.Sequence("subheaders"),
	}
	return n, f.Err()
}

// MusicShelfContinuation is the next page of a MusicShelf.
type MusicShelfContinuation struct {
	parser.Base
	Contents     parser.Sequence
	Continuation string
}

func (n *MusicShelfContinuation) Children() []parser.Node {
	return parser.Collect(n.Contents)
}

func buildMusicShelfContinuation(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &MusicShelfContinuation{
		Contents:     f.Sequence("contents"),
		Continuation: legacyContinuation(body),
	}
	return n, f.Err()
}

// MusicResponsiveListItem is one row of a music list: a song, album, artist or playlist.
type MusicResponsiveListItem struct {
	parser.Base
	ID           string
	PlaylistID   string
	FlexColumns  []parser.Text
	FixedColumns []parser.Text
	Endpoint     *parser.NavigationEndpoint
	Thumbnails   []domain.Thumbnail
	Menu         parser.Node
}

func (n *MusicResponsiveListItem) Children() []parser.Node {
	return parser.Collect(n.Menu)
}

// Title returns the first flex column.
func (n *MusicResponsiveListItem) Title() string {
	if len(n.FlexColumns) == 0 {
		return ""
	}
	return n.FlexColumns[0].String()
}

// Subtitle returns the second flex column.
func (n *MusicResponsiveListItem) Subtitle() string {
	if len(n.FlexColumns) < 2 {
		return ""
	}
	return n.FlexColumns[1].String()
}

func buildMusicResponsiveListItem(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &MusicResponsiveListItem{
		ID:         body.DigString("playlistItemData", "videoId"),
		PlaylistID: body.DigString("playlistItemData", "playlistSetVideoId"),
		Endpoint:   parser.ParseEndpoint(body.Object("navigationEndpoint")),
		Thumbnails: parser.ParseThumbnails(body.DigObject("thumbnail", "musicThumbnailRenderer", "thumbnail")),
		Menu:       f.Node("menu"),
	}
	if n.ID == "" && n.Endpoint != nil {
		n.ID = n.Endpoint.Payload.String("browseId")
	}
	for _, col := range body.Objects("flexColumns") {
		n.FlexColumns = append(n.FlexColumns,
			parser.ParseText(col.DigObject("musicResponsiveListItemFlexColumnRenderer", "text")))
	}
	for _, col := range body.Objects("fixedColumns") {
		n.FixedColumns = append(n.FixedColumns,
			parser.ParseText(col.DigObject("musicResponsiveListItemFixedColumnRenderer", "text")))
	}
	return n, f.Err()
}

// MusicCarouselShelf is a horizontally scrolled shelf, as on the related tab.
type MusicCarouselShelf struct {
	parser.Base
	Title    parser.Text
	Contents parser.Sequence
	Endpoint *parser.NavigationEndpoint
}

func (n *MusicCarouselShelf) Children() []parser.Node {
	return parser.Collect(n.Contents)
}

func buildMusicCarouselShelf(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	header := body.DigObject("header", "musicCarouselShelfBasicHeaderRenderer")
	f := b.Fields(body)
	n := &MusicCarouselShelf{
		Title:    parser.ParseText(header.Get("title")),
		Contents: f.Sequence("contents"),
		Endpoint: parser.ParseEndpoint(header.DigObject("moreContentButton", "buttonRenderer", "navigationEndpoint")),
	}
	return n, f.Err()
}

// MusicDescriptionShelf is a block of text, such as lyrics or an album description.
type MusicDescriptionShelf struct {
	parser.Base
	Header      parser.Text
	Description parser.Text
	Footer      parser.Text
	MaxLines    int
}

func (*MusicDescriptionShelf) Children() []parser.Node { return nil }

func buildMusicDescriptionShelf(_ *parser.Builder, body parser.Raw) (parser.Node, error) {
	return &MusicDescriptionShelf{
		Header:      parser.ParseText(body.Get("header")),
		Description: parser.ParseText(body.Get("description")),
		Footer:      parser.ParseText(body.Get("footer")),
		MaxLines:    int(body.Int("maxCollapsedLines")),
	}, nil
}
