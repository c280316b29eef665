package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/custodia-labs/innergraph/internal/core/aggregates"
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/pagination"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/parser/nodes"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
)

// mockBrowseService serves a fixed chain of pages keyed by continuation token.
// The first page is keyed by "".
type mockBrowseService struct {
	pages     map[string]*parser.Page
	bookmarks map[string]*domain.Bookmark
	kids      *aggregates.KidsChannel
	err       error
}

func newMockBrowseService() *mockBrowseService {
	return &mockBrowseService{
		pages: map[string]*parser.Page{
			"": {
				Endpoint:     domain.EndpointBrowse,
				Contents:     parser.NewSequence(&nodes.Button{Label: "First item"}),
				Continuation: "tok-2",
			},
			"tok-2": {
				Endpoint:             domain.EndpointBrowse,
				ContinuationContents: parser.NewSequence(&nodes.Button{Label: "Second item"}),
			},
		},
		bookmarks: map[string]*domain.Bookmark{},
		kids: &aggregates.KidsChannel{
			Contents: &nodes.ItemSection{
				Contents:     parser.NewSequence(&nodes.Button{Label: "Kids video"}),
				Continuation: "kids-2",
			},
		},
	}
}

func (m *mockBrowseService) fetch(_ context.Context, token string) (*parser.Page, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.pages[token]
	if !ok {
		return nil, fmt.Errorf("page %q: %w", token, domain.ErrNotFound)
	}
	return p, nil
}

func (m *mockBrowseService) Page(ctx context.Context, req domain.FetchRequest) (*parser.Page, error) {
	return m.fetch(ctx, req.Continuation)
}

func (m *mockBrowseService) Feed(_ context.Context, _ domain.FetchRequest) (*aggregates.Feed, error) {
	return nil, m.err
}

func (m *mockBrowseService) Cursor(_ domain.FetchRequest) *pagination.Cursor {
	return pagination.New(m.fetch, "")
}

func (m *mockBrowseService) KidsChannel(_ context.Context, _ string) (*aggregates.KidsChannel, error) {
	return m.kids, m.err
}

func (m *mockBrowseService) Resume(_ context.Context, name string) (*pagination.Cursor, *domain.Bookmark, error) {
	b, ok := m.bookmarks[name]
	if !ok {
		return nil, nil, fmt.Errorf("bookmark %q: %w", name, domain.ErrNotFound)
	}
	if b.Exhausted() {
		return nil, b, domain.ErrEndOfSequence
	}
	return pagination.New(m.fetch, b.Token), b, nil
}

func (m *mockBrowseService) SaveBookmark(
	_ context.Context,
	name string,
	req domain.FetchRequest,
	c *pagination.Cursor,
) (*domain.Bookmark, error) {
	b := &domain.Bookmark{Name: name, Request: req, Token: c.Token(), Pages: c.Pages()}
	m.bookmarks[name] = b
	return b, nil
}

// mockMediaService is a mock implementation of driving.MediaService.
type mockMediaService struct {
	track     *aggregates.TrackInfo
	streaming *domain.StreamingData
	chosen    domain.Format
	manifest  string
	media     []byte
	err       error
}

func newMockMediaService() *mockMediaService {
	sd := &domain.StreamingData{
		Formats: []domain.Format{
			{Itag: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Container: "mp4",
				Codecs: []string{"avc1.42001E", "mp4a.40.2"}, QualityLabel: "360p", Bitrate: 500000,
				HasAudio: true, HasVideo: true, URL: "https://media/18"},
		},
		AdaptiveFormats: []domain.Format{
			{Itag: 251, MimeType: `audio/webm; codecs="opus"`, Container: "webm",
				Codecs: []string{"opus"}, AudioQuality: "AUDIO_QUALITY_MEDIUM", Bitrate: 160000,
				HasAudio: true, SignatureCipher: "s=abc"},
		},
	}
	return &mockMediaService{
		track: &aggregates.TrackInfo{
			Basic: aggregates.BasicInfo{
				VideoDetails: domain.VideoDetails{ID: "vid-1", Title: "Song", Author: "Band", LengthSeconds: 215},
				Category:     "Music",
			},
			Streaming: sd,
		},
		streaming: sd,
		chosen:    sd.Formats[0],
		manifest:  "<MPD></MPD>\n",
		media:     []byte("media-bytes"),
	}
}

func (m *mockMediaService) Track(_ context.Context, _ string) (*aggregates.TrackInfo, error) {
	return m.track, m.err
}

func (m *mockMediaService) Formats(_ context.Context, _ string) (*domain.StreamingData, error) {
	return m.streaming, m.err
}

func (m *mockMediaService) Choose(_ context.Context, _ string, _ domain.FormatOptions) (domain.Format, error) {
	return m.chosen, m.err
}

func (m *mockMediaService) Manifest(_ context.Context, _, _ string) (string, error) {
	return m.manifest, m.err
}

func (m *mockMediaService) Download(
	_ context.Context,
	_ string,
	_ domain.FormatOptions,
	w io.Writer,
	progress driven.ProgressFunc,
) (domain.Format, int64, error) {
	if m.err != nil {
		return domain.Format{}, 0, m.err
	}
	n, err := w.Write(m.media)
	progress(int64(n), int64(len(m.media)))
	return m.chosen, int64(n), err
}

// mockBookmarkService is a mock implementation of driving.BookmarkService.
type mockBookmarkService struct {
	bookmarks []domain.Bookmark
	deleted   []string
	err       error
}

func newMockBookmarkService() *mockBookmarkService {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	req := domain.FetchRequest{Endpoint: domain.EndpointBrowse, Params: map[string]any{"browseId": "FEmusic_home"}}
	return &mockBookmarkService{
		bookmarks: []domain.Bookmark{
			{ID: "1", Name: "done", Request: req, Pages: 4, CreatedAt: at, UpdatedAt: at},
			{ID: "2", Name: "home", Request: req, Token: "tok-3", Pages: 2, CreatedAt: at, UpdatedAt: at},
		},
	}
}

func (m *mockBookmarkService) List(_ context.Context) ([]domain.Bookmark, error) {
	return m.bookmarks, m.err
}

func (m *mockBookmarkService) Get(_ context.Context, name string) (*domain.Bookmark, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.bookmarks {
		if m.bookmarks[i].Name == name {
			return &m.bookmarks[i], nil
		}
	}
	return nil, fmt.Errorf("bookmark %q: %w", name, domain.ErrNotFound)
}

func (m *mockBookmarkService) Delete(_ context.Context, name string) error {
	m.deleted = append(m.deleted, name)
	return m.err
}

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings domain.Settings
	set      map[string]string
	err      error
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultSettings(), set: map[string]string{}}
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := m.settings
	return &s, m.err
}

func (m *mockSettingsService) Save(settings *domain.Settings) error {
	if m.err != nil {
		return m.err
	}
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	browse    *mockBrowseService
	media     *mockMediaService
	bookmarks *mockBookmarkService
	settings  *mockSettingsService
}

// setupTestServices injects mock services and returns a cleanup that
// restores the package state, flags included.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		browse:    newMockBrowseService(),
		media:     newMockMediaService(),
		bookmarks: newMockBookmarkService(),
		settings:  newMockSettingsService(),
	}
	browseService = ts.browse
	mediaService = ts.media
	bookmarkService = ts.bookmarks
	settingsService = ts.settings

	return ts, func() {
		browseService = nil
		mediaService = nil
		bookmarkService = nil
		settingsService = nil
		resetFlags()
	}
}

func resetFlags() {
	outputFormat = "text"
	browsePages, browseDepth, kidsDepth = 1, 3, 1
	browseParams, browseSave, browseResume = "", "", ""
	formatKind, formatQuality, formatCodec = "", "", ""
	formatContainer, formatLanguage, formatFilter = "", "", ""
	formatChoose = false
	downloadOutput = ""
	trackLyrics, trackUpNext, trackAutomix = false, false, false
}

// executeCommand runs the root command with args and returns everything
// written to stdout and stderr.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
