package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Endpoint identifiers understood by the transport.
const (
	EndpointBrowse            = "browse"
	EndpointNext              = "next"
	EndpointPlayer            = "player"
	EndpointSearch            = "search"
	EndpointSearchSuggestions = "music/get_search_suggestions"
)

// Client profile names. A profile selects the client context sent with a request.
const (
	ClientWeb     = "WEB"
	ClientMusic   = "YTMUSIC"
	ClientKids    = "YTKIDS"
	ClientAndroid = "ANDROID"
)

// FetchRequest describes one remote call: the endpoint, its parameters,
// and optionally the continuation token of the page being resumed.
type FetchRequest struct {
	// Endpoint is the endpoint id, e.g. EndpointBrowse.
	Endpoint string

	// Client is the client profile name. Empty means the transport default.
	Client string

	// Params are merged into the request body.
	Params map[string]any

	// Continuation is the token of the page to resume. Empty for a first page.
	Continuation string
}

// WithContinuation returns a copy of the request carrying token.
func (r FetchRequest) WithContinuation(token string) FetchRequest {
	out := r
	out.Continuation = token
	return out
}

// Validate checks the request names an endpoint.
func (r FetchRequest) Validate() error {
	if strings.TrimSpace(r.Endpoint) == "" {
		return fmt.Errorf("%w: endpoint is required", ErrInvalidInput)
	}
	return nil
}

// String renders the request for logs. Parameters are listed in key order.
func (r FetchRequest) String() string {
	var b strings.Builder
	b.WriteString(r.Endpoint)
	if r.Client != "" {
		b.WriteString("@" + r.Client)
	}
	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, r.Params[k])
	}
	if r.Continuation != "" {
		b.WriteString(" continuation=" + abbreviate(r.Continuation, 16))
	}
	return b.String()
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
