package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/innergraph/internal/core/aggregates"
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/parser/nodes"
)

// mockTransport serves canned documents keyed by endpoint and continuation.
type mockTransport struct {
	mu       sync.Mutex
	docs     map[string]string
	err      error
	requests []domain.FetchRequest
}

func newMockTransport(docs map[string]string) *mockTransport {
	return &mockTransport{docs: docs}
}

func (m *mockTransport) Fetch(_ context.Context, req domain.FetchRequest) (map[string]any, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	key := req.Endpoint
	if req.Continuation != "" {
		key += "#" + req.Continuation
	}
	doc, ok := m.docs[key]
	if !ok {
		return nil, fmt.Errorf("no document for %s", key)
	}
	return parser.DecodeRaw([]byte(doc))
}

func (m *mockTransport) Requests() []domain.FetchRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.FetchRequest(nil), m.requests...)
}

func newLoader(tr *mockTransport) *aggregates.Loader {
	return aggregates.NewLoader(tr, nodes.NewBuilder())
}

const (
	browsePage1 = `{
	  "contents": {"sectionListRenderer": {"contents": [{"itemSectionRenderer": {"contents": [{"videoRenderer": {"videoId": "a"}}]}}]}},
	  "continuation": "T2"
	}`
	browsePage2 = `{
	  "continuationContents": {"itemSectionContinuation": {"contents": [{"videoRenderer": {"videoId": "b"}}]}},
	  "continuation": "T3"
	}`
	browsePage3 = `{
	  "continuationContents": {"itemSectionContinuation": {"contents": [{"videoRenderer": {"videoId": "c"}}]}}
	}`

	playerDoc = `{
	  "playabilityStatus": {"status": "OK"},
	  "videoDetails": {"videoId": "v1", "title": "First"},
	  "microformat": {"playerMicroformatRenderer": {"title": {"simpleText": "First"}, "category": "Music"}},
	  "streamingData": {
	    "formats": [
	      {"itag": 18, "mimeType": "video/mp4; codecs=\"avc1.42001E, mp4a.40.2\"", "bitrate": 500000, "width": 640, "height": 360,
	       "qualityLabel": "360p", "url": "https://media/18"}
	    ],
	    "adaptiveFormats": [
	      {"itag": 137, "mimeType": "video/mp4; codecs=\"avc1.640028\"", "bitrate": 4400000, "width": 1920, "height": 1080,
	       "qualityLabel": "1080p", "fps": 30, "contentLength": "90000000", "approxDurationMs": "212040",
	       "initRange": {"start": "0", "end": "740"}, "indexRange": {"start": "741", "end": "1248"}, "url": "https://media/137"},
	      {"itag": 136, "mimeType": "video/mp4; codecs=\"avc1.4d401f\"", "bitrate": 2300000, "width": 1280, "height": 720,
	       "qualityLabel": "720p", "fps": 30, "contentLength": "45000000", "approxDurationMs": "212040",
	       "initRange": {"start": "0", "end": "739"}, "indexRange": {"start": "740", "end": "1235"}, "url": "https://media/136"},
	      {"itag": 140, "mimeType": "audio/mp4; codecs=\"mp4a.40.2\"", "bitrate": 130000, "audioQuality": "AUDIO_QUALITY_MEDIUM",
	       "audioSampleRate": "44100", "audioChannels": 2, "contentLength": "3432100", "approxDurationMs": "212091",
	       "initRange": {"start": "0", "end": "631"}, "indexRange": {"start": "632", "end": "923"}, "url": "https://media/140"}
	    ]
	  }
	}`

	nextDoc = `{
	  "contents": {"singleColumnMusicWatchNextResultsRenderer": {"tabbedRenderer": {"watchNextTabbedResultsRenderer": {"tabs": [
	    {"tabRenderer": {"title": "Up next", "content": {"musicQueueRenderer": {"content": {"playlistPanelRenderer": {
	      "playlistId": "RDAMVMv1",
	      "contents": [{"playlistPanelVideoRenderer": {"videoId": "v1"}}]
	    }}}}}}
	  ]}}}}
	}`
)
