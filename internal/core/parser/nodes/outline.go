package nodes

import (
	"github.com/custodia-labs/innergraph/internal/core/parser"
)

// Outline is a printable summary of a node subtree.
type Outline struct {
	Type     string    `json:"type" yaml:"type"`
	Label    string    `json:"label,omitempty" yaml:"label,omitempty"`
	ID       string    `json:"id,omitempty" yaml:"id,omitempty"`
	Children []Outline `json:"children,omitempty" yaml:"children,omitempty"`
}

// Describe summarises n down to depth levels of children. A negative depth
// walks the whole subtree.
func Describe(n parser.Node, depth int) Outline {
	if parser.IsNil(n) {
		return Outline{}
	}
	o := Outline{Type: n.Type(), Label: Label(n), ID: ID(n)}
	if depth == 0 {
		return o
	}
	for _, c := range n.Children() {
		if parser.IsNil(c) {
			continue
		}
		o.Children = append(o.Children, Describe(c, depth-1))
	}
	return o
}

// DescribeAll summarises every node of seq.
func DescribeAll(seq parser.Sequence, depth int) []Outline {
	out := make([]Outline, 0, seq.Len())
	for _, n := range seq.All() {
		if parser.IsNil(n) {
			continue
		}
		out = append(out, Describe(n, depth))
	}
	return out
}

// Label returns the human-readable title of n, or "" when it has none.
func Label(n parser.Node) string {
	switch v := n.(type) {
	case *Button:
		if !v.Text.Empty() {
			return v.Text.String()
		}
		return v.Label
	case *MusicShelf:
		return v.Title.String()
	case *MusicResponsiveListItem:
		return v.Title()
	case *MusicCarouselShelf:
		return v.Title.String()
	case *MusicDescriptionShelf:
		return v.Header.String()
	case *SearchSuggestion:
		return v.Query()
	case *Video:
		return v.Title.String()
	case *AnalyticsShortsCarouselCard:
		return v.Title
	case *ItemSectionTabbedHeader:
		return v.Title.String()
	case *ItemSectionTab:
		return v.Title.String()
	case *Message:
		return v.Text.String()
	case *ActionMessage:
		return v.Text.String()
	case *C4TabbedHeader:
		return v.Title
	case *Tab:
		return v.Title
	case *PlaylistPanel:
		return v.Title
	case *PlaylistPanelVideo:
		return v.Title.String()
	case Microformat:
		return v.Info().Title
	case *parser.Passthrough:
		return parser.ParseText(v.Get("title")).String()
	default:
		return ""
	}
}

// ID returns the video, channel or playlist id n refers to, or "".
func ID(n parser.Node) string {
	switch v := n.(type) {
	case *Video:
		return v.VideoID
	case *PlaylistPanelVideo:
		return v.VideoID
	case *MusicResponsiveListItem:
		if v.ID != "" {
			return v.ID
		}
		return v.PlaylistID
	case *C4TabbedHeader:
		return v.ChannelID
	case *PlaylistPanel:
		return v.PlaylistID
	default:
		return ""
	}
}
