package aggregates

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/formats"
	"github.com/custodia-labs/innergraph/internal/core/pagination"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/parser/nodes"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
)

// Tab selectors understood by TrackInfo.Tab.
const (
	TabUpNext  = "Up next"
	TabLyrics  = "MUSIC_PAGE_TYPE_TRACK_LYRICS"
	TabRelated = "MUSIC_PAGE_TYPE_TRACK_RELATED"
)

// BasicInfo merges the video details with the microformat.
type BasicInfo struct {
	domain.VideoDetails

	Description  string
	URLCanonical string
	Tags         []string
	Category     string
	IsUnlisted   bool
	IsFamilySafe bool
}

// TrackInfo is a music track: its player response and, optionally, the watch
// page that carries the up-next, lyrics and related tabs.
type TrackInfo struct {
	loader *Loader
	cpn    string

	player *parser.Page
	next   *parser.Page

	Basic                BasicInfo
	Playability          *domain.PlayabilityStatus
	Streaming            *domain.StreamingData
	Tracking             *domain.PlaybackTracking
	Endscreen            parser.Node
	Tabs                 []*nodes.Tab
	CurrentVideoEndpoint *parser.NavigationEndpoint
	PlayerOverlay        *nodes.PlayerOverlay
}

// NewTrackInfo builds a track from a player page and an optional next page.
//
// A playability status of ERROR is a ServiceError. A player page whose
// microformat is not a known microformat schema is malformed.
func NewTrackInfo(loader *Loader, player, next *parser.Page, cpn string) (*TrackInfo, error) {
	if player == nil {
		return nil, domain.Malformed("player response is required")
	}
	if player.Playability.IsError() {
		return nil, &domain.ServiceError{Status: player.Playability.Status, Reason: "this video is unavailable: " + player.Playability.Reason}
	}

	mf, ok := player.Microformat.First()
	info, isMicroformat := mf.(nodes.Microformat)
	if !ok || !isMicroformat {
		got := "nothing"
		if ok {
			got = mf.Type()
		}
		return nil, &domain.MalformedDocumentError{Path: []string{"microformat"}, Reason: "invalid microformat: " + got}
	}

	t := &TrackInfo{
		loader:      loader,
		cpn:         cpn,
		player:      player,
		next:        next,
		Playability: player.Playability,
		Tracking:    player.Tracking,
	}
	if player.Details != nil {
		t.Basic.VideoDetails = *player.Details
	}
	m := info.Info()
	t.Basic.Description = m.Description
	t.Basic.URLCanonical = m.URLCanonical
	t.Basic.Tags = m.Tags
	t.Basic.Category = m.Category
	t.Basic.IsUnlisted = m.IsUnlisted
	t.Basic.IsFamilySafe = m.IsFamilySafe

	if player.StreamingData != nil {
		sd, err := formats.ParseStreamingData(player.StreamingData)
		if err != nil {
			return nil, fmt.Errorf("streaming data: %w", err)
		}
		t.Streaming = sd
	}
	t.Endscreen, _ = player.Endscreen.First()

	if next != nil {
		if n, ok := next.Memo().FirstOf(nodes.TypeWatchNextTabbedResults); ok {
			t.Tabs = parser.OfType[*nodes.Tab](n.(*nodes.WatchNextTabbedResults).Tabs)
		}
		t.CurrentVideoEndpoint = next.CurrentVideoEndpoint
		t.PlayerOverlay, _ = parser.First[*nodes.PlayerOverlay](next.Overlays)
	}
	return t, nil
}

// CPN returns the client playback nonce the track was fetched with.
func (t *TrackInfo) CPN() string {
	return t.cpn
}

// Pages returns the player page and the next page, which may be nil.
func (t *TrackInfo) Pages() (player, next *parser.Page) {
	return t.player, t.next
}

// AvailableTabs returns the tab titles in display order.
func (t *TrackInfo) AvailableTabs() []string {
	out := make([]string, 0, len(t.Tabs))
	for _, tab := range t.Tabs {
		out = append(out, tab.Title)
	}
	return out
}

// findTab matches titleOrPageType against tab titles, then page types, and
// falls back to the first tab.
func (t *TrackInfo) findTab(titleOrPageType string) (*nodes.Tab, error) {
	if len(t.Tabs) == 0 {
		return nil, fmt.Errorf("%w: track has no tabs", domain.ErrNotFound)
	}
	for _, tab := range t.Tabs {
		if tab.Title == titleOrPageType {
			return tab, nil
		}
	}
	for _, tab := range t.Tabs {
		if tab.PageType() == titleOrPageType {
			return tab, nil
		}
	}
	log.Debug("tab %q not found in %v, using %q", titleOrPageType, t.AvailableTabs(), t.Tabs[0].Title)
	return t.Tabs[0], nil
}

// Tab returns the content of a tab. Inline content is returned as is;
// otherwise the tab endpoint is fetched and the section list contents
// returned. A Message page is returned as a one-element sequence.
func (t *TrackInfo) Tab(ctx context.Context, titleOrPageType string) (parser.Sequence, error) {
	tab, err := t.findTab(titleOrPageType)
	if err != nil {
		return parser.Sequence{}, err
	}
	if tab.Content != nil {
		return parser.NewSequence(tab.Content), nil
	}
	page, err := t.loadTab(ctx, tab)
	if err != nil {
		return parser.Sequence{}, err
	}
	return tabContents(page)
}

func (t *TrackInfo) loadTab(ctx context.Context, tab *nodes.Tab) (*parser.Page, error) {
	req, ok := tab.Endpoint.Request(domain.ClientMusic)
	if !ok {
		return nil, domain.Malformed("tab %q has no endpoint", tab.Title)
	}
	return t.loader.Load(ctx, req)
}

func tabContents(page *parser.Page) (parser.Sequence, error) {
	first, ok := page.Contents.First()
	if !ok {
		return parser.Sequence{}, domain.Malformed("page contents was empty")
	}
	if parser.Is(first, nodes.TypeMessage) {
		return parser.NewSequence(first), nil
	}
	list, err := parser.As[*nodes.SectionList](first)
	if err != nil {
		return parser.Sequence{}, err
	}
	return list.Contents, nil
}

// Queue is the up-next playlist of a track and a cursor over its remaining pages.
type Queue struct {
	Panel *nodes.PlaylistPanel

	// Cursor resumes the panel. It is nil when the automix playlist came back
	// without a playlist id and cannot be continued.
	Cursor *pagination.Cursor

	// Automix is set when the queue came from the automix playlist.
	Automix bool
}

// UpNext returns the up-next queue. With automix set, a panel without a
// playlist id is replaced by the automix playlist it previews.
func (t *TrackInfo) UpNext(ctx context.Context, automix bool) (*Queue, error) {
	tab, err := t.findTab(TabUpNext)
	if err != nil {
		return nil, err
	}

	primary := pagination.New(t.upNextFetch(tab), "", pagination.WithTokenFunc(panelToken))
	usable := func(p *parser.Page) bool {
		panel, ok := firstPanel(p)
		return ok && (panel.PlaylistID != "" || !automix)
	}

	res, err := pagination.Resolve(ctx, primary, usable, t.automixFallback)
	if err != nil {
		return nil, err
	}
	panel, ok := firstPanel(res.Page)
	if !ok {
		return nil, fmt.Errorf("%w: automix playlist is empty", domain.ErrNotFound)
	}
	return &Queue{Panel: panel, Cursor: res.Cursor, Automix: res.Step > 0}, nil
}

// upNextFetch serves the first page from the watch page itself when the queue
// is inline, and continues the panel with the next endpoint.
func (t *TrackInfo) upNextFetch(tab *nodes.Tab) pagination.FetchFunc {
	return func(ctx context.Context, token string) (*parser.Page, error) {
		if token != "" {
			return t.loader.Load(ctx, domain.FetchRequest{
				Endpoint:     domain.EndpointNext,
				Client:       domain.ClientMusic,
				Continuation: token,
			})
		}
		if tab.Content != nil {
			return t.next, nil
		}
		return t.loadTab(ctx, tab)
	}
}

func (t *TrackInfo) automixFallback(ctx context.Context, page *parser.Page) (*pagination.Cursor, error) {
	panel, ok := firstPanel(page)
	if !ok {
		return nil, fmt.Errorf("%w: music queue was empty, the video id is probably invalid", domain.ErrNotFound)
	}
	preview, ok := parser.First[*nodes.AutomixPreviewVideo](panel.Contents)
	if !ok {
		return nil, fmt.Errorf("%w: automix item not found", domain.ErrNotFound)
	}
	req, ok := preview.PlaylistVideo.Request(domain.ClientMusic)
	if !ok {
		return nil, domain.Malformed("automix item has no endpoint")
	}
	req.Params["videoId"] = t.Basic.ID
	log.Debug("following automix playlist %v", req.Params["playlistId"])
	return t.loader.Cursor(req, pagination.WithTokenFunc(panelToken)), nil
}

func firstPanel(p *parser.Page) (*nodes.PlaylistPanel, bool) {
	n, ok := p.Memo().FirstOf(nodes.TypePlaylistPanel)
	if !ok {
		return nil, false
	}
	panel, ok := n.(*nodes.PlaylistPanel)
	return panel, ok
}

func panelToken(p *parser.Page) string {
	if panel, ok := firstPanel(p); ok {
		return panel.Continuation
	}
	return ""
}

// Related returns the shelves of the related tab.
func (t *TrackInfo) Related(ctx context.Context) (parser.Sequence, error) {
	return t.Tab(ctx, TabRelated)
}

// Lyrics returns the lyrics shelf. It is ErrNotFound when the track has none.
func (t *TrackInfo) Lyrics(ctx context.Context) (*nodes.MusicDescriptionShelf, error) {
	contents, err := t.Tab(ctx, TabLyrics)
	if err != nil {
		return nil, err
	}
	shelf, ok := parser.First[*nodes.MusicDescriptionShelf](contents)
	if !ok {
		return nil, fmt.Errorf("%w: no lyrics", domain.ErrNotFound)
	}
	return shelf, nil
}

// ChooseFormat selects among all formats of the track.
func (t *TrackInfo) ChooseFormat(opts domain.FormatOptions) (domain.Format, error) {
	if t.Streaming == nil {
		return domain.Format{}, domain.ErrNoStreamingData
	}
	return formats.Choose(t.Streaming.All(), opts)
}

// DASH renders a manifest for the adaptive formats of the track.
func (t *TrackInfo) DASH(opts formats.DASHOptions) (string, error) {
	if t.Streaming == nil {
		return "", domain.ErrNoStreamingData
	}
	return formats.EmitDASH(t.Streaming.AdaptiveFormats, opts)
}

// Download chooses a format, resolves its URL and streams it to w.
func (t *TrackInfo) Download(ctx context.Context, opts domain.FormatOptions, resolver driven.URLResolver,
	streamer driven.MediaStreamer, w io.Writer, progress driven.ProgressFunc) (domain.Format, int64, error) {
	if streamer == nil {
		return domain.Format{}, 0, errors.New("download: no media streamer configured")
	}
	if p := t.Playability; p != nil && p.Status != domain.PlayabilityOK {
		return domain.Format{}, 0, &domain.ServiceError{Status: p.Status, Reason: p.Reason}
	}
	f, err := t.ChooseFormat(opts)
	if err != nil {
		return domain.Format{}, 0, err
	}
	url := f.URL
	if resolver != nil {
		if url, err = resolver.Resolve(ctx, f, t.cpn); err != nil {
			return f, 0, err
		}
	}
	if url == "" {
		return f, 0, domain.ErrCipherRequired
	}
	n, err := streamer.Stream(ctx, url, f.ContentLength, w, progress)
	if err != nil {
		return f, n, fmt.Errorf("download itag %d: %w", f.Itag, err)
	}
	return f, n, nil
}
