package parser

import (
	"strings"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// Endpoint kinds, named after the key that wraps the payload.
const (
	KindBrowse        = "browseEndpoint"
	KindWatch         = "watchEndpoint"
	KindWatchPlaylist = "watchPlaylistEndpoint"
	KindSearch        = "searchEndpoint"
	KindContinuation  = "continuationCommand"
	KindURL           = "urlEndpoint"
)

// continuationTargets maps continuation request types to endpoints.
var continuationTargets = map[string]string{
	"CONTINUATION_REQUEST_TYPE_BROWSE":     domain.EndpointBrowse,
	"CONTINUATION_REQUEST_TYPE_WATCH_NEXT": domain.EndpointNext,
	"CONTINUATION_REQUEST_TYPE_SEARCH":     domain.EndpointSearch,
}

// requestParams lists the payload fields forwarded for each endpoint kind.
var requestParams = map[string][]string{
	KindBrowse:        {"browseId", "params", "query"},
	KindWatch:         {"videoId", "playlistId", "params", "index", "playlistSetVideoId"},
	KindWatchPlaylist: {"playlistId", "params"},
	KindSearch:        {"query", "params"},
}

// NavigationEndpoint is an action that leads to another page, such as the
// endpoint of a tab or of an up-next panel. It is a plain value, not a node.
type NavigationEndpoint struct {
	// Kind is the key that wrapped the payload, e.g. "browseEndpoint".
	Kind string
	// Payload is the raw endpoint body. It must not be modified.
	Payload Raw
	// URL is the web URL from the command metadata.
	URL string
	// APIURL is the API path from the command metadata, e.g. "/youtubei/v1/browse".
	APIURL string
	// WebPageType is the page type from the command metadata.
	WebPageType string
}

// ParseEndpoint reads an endpoint object. It returns nil when raw carries no endpoint.
func ParseEndpoint(raw Raw) *NavigationEndpoint {
	if raw == nil {
		return nil
	}
	kind := ""
	for _, k := range raw.Keys() {
		if k == "commandMetadata" {
			continue
		}
		if strings.HasSuffix(k, "Endpoint") || strings.HasSuffix(k, "Command") {
			if _, ok := AsRaw(raw[k]); ok {
				kind = k
				break
			}
		}
	}
	if kind == "" {
		return nil
	}
	meta := raw.DigObject("commandMetadata", "webCommandMetadata")
	return &NavigationEndpoint{
		Kind:        kind,
		Payload:     raw.Object(kind),
		URL:         meta.String("url"),
		APIURL:      meta.String("apiUrl"),
		WebPageType: meta.String("webPageType"),
	}
}

// PageType returns the page type the endpoint leads to, preferring the music
// page type, e.g. "MUSIC_PAGE_TYPE_TRACK_LYRICS".
func (e *NavigationEndpoint) PageType() string {
	if e == nil {
		return ""
	}
	if pt := e.Payload.DigString("browseEndpointContextSupportedConfigs",
		"browseEndpointContextMusicConfig", "pageType"); pt != "" {
		return pt
	}
	return e.WebPageType
}

// Request builds the fetch that follows the endpoint.
// It returns false for endpoints that do not lead to an API call.
func (e *NavigationEndpoint) Request(client string) (domain.FetchRequest, bool) {
	if e == nil {
		return domain.FetchRequest{}, false
	}
	req := domain.FetchRequest{Client: client, Params: map[string]any{}}

	switch e.Kind {
	case KindContinuation:
		token := e.Payload.String("token")
		target, ok := continuationTargets[e.Payload.String("request")]
		if token == "" || !ok {
			return domain.FetchRequest{}, false
		}
		req.Endpoint = target
		req.Continuation = token
	case KindBrowse:
		req.Endpoint = domain.EndpointBrowse
	case KindWatch, KindWatchPlaylist:
		req.Endpoint = domain.EndpointNext
	case KindSearch:
		req.Endpoint = domain.EndpointSearch
	default:
		return domain.FetchRequest{}, false
	}

	if api := strings.TrimPrefix(e.APIURL, "/youtubei/v1/"); api != e.APIURL && api != "" {
		req.Endpoint = api
	}
	for _, k := range requestParams[e.Kind] {
		if v := e.Payload.Get(k); v != nil {
			req.Params[k] = v
		}
	}
	return req, true
}
