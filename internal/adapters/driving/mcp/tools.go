package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/formats"
	"github.com/custodia-labs/innergraph/internal/core/parser/nodes"
)

// BrowseInput is the input schema for the browse tool.
type BrowseInput struct {
	BrowseID     string `json:"browse_id,omitempty" jsonschema:"the page to browse, e.g. FEmusic_home or a channel id"`
	Query        string `json:"query,omitempty" jsonschema:"a search query; used instead of browse_id"`
	Params       string `json:"params,omitempty" jsonschema:"opaque params sent with the request"`
	Continuation string `json:"continuation,omitempty" jsonschema:"continuation token returned by a previous call"`
	Client       string `json:"client,omitempty" jsonschema:"client profile: WEB, YTMUSIC, YTKIDS or ANDROID"`
	Depth        int    `json:"depth,omitempty" jsonschema:"outline depth (default 3)"`
}

// OutlineEntry is one node of a flattened outline, listed in pre-order.
type OutlineEntry struct {
	Depth  int    `json:"depth" jsonschema:"0 for a top-level node"`
	Parent int    `json:"parent" jsonschema:"index of the parent entry, -1 for a top-level node"`
	Type   string `json:"type"`
	Label  string `json:"label,omitempty"`
	ID     string `json:"id,omitempty"`
}

// BrowseOutput is the output schema for the browse tool.
type BrowseOutput struct {
	Endpoint     string         `json:"endpoint"`
	Header       []OutlineEntry `json:"header,omitempty"`
	Contents     []OutlineEntry `json:"contents"`
	Continuation string         `json:"continuation,omitempty"`
}

// FormatInput is the input schema for the format tools.
type FormatInput struct {
	VideoID   string `json:"video_id" jsonschema:"the video id"`
	Kind      string `json:"kind,omitempty" jsonschema:"audio, video or combined (default combined)"`
	Quality   string `json:"quality,omitempty" jsonschema:"best, bestefficiency or a label such as 720p"`
	Codec     string `json:"codec,omitempty" jsonschema:"codec prefix such as avc1, vp9 or opus"`
	Container string `json:"container,omitempty" jsonschema:"container such as mp4 or webm"`
	Language  string `json:"language,omitempty" jsonschema:"audio track language"`
	Filter    string `json:"filter,omitempty" jsonschema:"expression over format fields, e.g. height >= 720"`
}

// FormatOutput describes one format.
type FormatOutput struct {
	Itag         int    `json:"itag"`
	MimeType     string `json:"mime_type"`
	Kind         string `json:"kind"`
	Quality      string `json:"quality"`
	Bitrate      int64  `json:"bitrate"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	FPS          int    `json:"fps,omitempty"`
	Language     string `json:"language,omitempty"`
	HasURL       bool   `json:"has_url"`
	ContentBytes int64  `json:"content_bytes,omitempty"`
}

// FormatsOutput is the output schema for the list_formats tool.
type FormatsOutput struct {
	Formats []FormatOutput `json:"formats"`
	Count   int            `json:"count"`
}

// ManifestInput is the input schema for the dash_manifest tool.
type ManifestInput struct {
	VideoID string `json:"video_id" jsonschema:"the video id"`
	Filter  string `json:"filter,omitempty" jsonschema:"expression over format fields, e.g. kind == \"audio\""`
}

// ManifestOutput is the output schema for the dash_manifest tool.
type ManifestOutput struct {
	Manifest string `json:"manifest"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "browse",
		Description: "Fetch a browse or search page and return an outline of its node graph",
	}, s.handleBrowse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_formats",
		Description: "List every media format of a video",
	}, s.handleListFormats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "choose_format",
		Description: "Choose the best media format of a video for the given constraints",
	}, s.handleChooseFormat)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "dash_manifest",
		Description: "Render a DASH manifest for the adaptive formats of a video",
	}, s.handleDASHManifest)
}

// handleBrowse handles the browse tool invocation.
func (s *Server) handleBrowse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BrowseInput,
) (*mcp.CallToolResult, BrowseOutput, error) {
	req := domain.FetchRequest{
		Client:       input.Client,
		Params:       map[string]any{},
		Continuation: input.Continuation,
	}
	switch {
	case input.Query != "":
		req.Endpoint = domain.EndpointSearch
		req.Params["query"] = input.Query
	case input.BrowseID != "":
		req.Endpoint = domain.EndpointBrowse
		req.Params["browseId"] = input.BrowseID
	default:
		return nil, BrowseOutput{}, fmt.Errorf("%w: browse_id or query is required", domain.ErrInvalidInput)
	}
	if input.Params != "" {
		req.Params["params"] = input.Params
	}
	depth := input.Depth
	if depth == 0 {
		depth = 3
	}

	page, err := s.ports.Browse.Page(ctx, req)
	if err != nil {
		return nil, BrowseOutput{}, err
	}

	contents := page.Contents
	if contents.Empty() {
		contents = page.ContinuationContents
	}
	if contents.Empty() {
		contents = page.Actions
	}
	return nil, BrowseOutput{
		Endpoint:     page.Endpoint,
		Header:       flatten(nodes.DescribeAll(page.Header, depth)),
		Contents:     flatten(nodes.DescribeAll(contents, depth)),
		Continuation: page.Continuation,
	}, nil
}

// handleListFormats handles the list_formats tool invocation.
func (s *Server) handleListFormats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FormatInput,
) (*mcp.CallToolResult, FormatsOutput, error) {
	if s.ports.Media == nil {
		return nil, FormatsOutput{}, ErrMediaUnavailable
	}
	sd, err := s.ports.Media.Formats(ctx, input.VideoID)
	if err != nil {
		return nil, FormatsOutput{}, err
	}
	all := sd.All()
	out := FormatsOutput{Formats: make([]FormatOutput, len(all)), Count: len(all)}
	for i := range all {
		out.Formats[i] = toFormatOutput(all[i])
	}
	return nil, out, nil
}

// handleChooseFormat handles the choose_format tool invocation.
func (s *Server) handleChooseFormat(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FormatInput,
) (*mcp.CallToolResult, FormatOutput, error) {
	if s.ports.Media == nil {
		return nil, FormatOutput{}, ErrMediaUnavailable
	}
	opts, err := input.options()
	if err != nil {
		return nil, FormatOutput{}, err
	}
	f, err := s.ports.Media.Choose(ctx, input.VideoID, opts)
	if err != nil {
		var nm *domain.NoMatchingFormatError
		if errors.As(err, &nm) {
			return nil, FormatOutput{}, fmt.Errorf("%w: %s", err, strings.Join(rejections(nm), "; "))
		}
		return nil, FormatOutput{}, err
	}
	return nil, toFormatOutput(f), nil
}

// handleDASHManifest handles the dash_manifest tool invocation.
func (s *Server) handleDASHManifest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ManifestInput,
) (*mcp.CallToolResult, ManifestOutput, error) {
	if s.ports.Media == nil {
		return nil, ManifestOutput{}, ErrMediaUnavailable
	}
	mpd, err := s.ports.Media.Manifest(ctx, input.VideoID, input.Filter)
	if err != nil {
		return nil, ManifestOutput{}, err
	}
	return nil, ManifestOutput{Manifest: mpd}, nil
}

func (in FormatInput) options() (domain.FormatOptions, error) {
	opts := domain.FormatOptions{
		Quality:   in.Quality,
		Codec:     in.Codec,
		Container: in.Container,
		Language:  in.Language,
	}
	if in.Kind != "" {
		kind, err := domain.ParseMediaKind(in.Kind)
		if err != nil {
			return opts, err
		}
		opts.Kind = kind
	}
	if in.Filter != "" {
		return formats.WithFilter(opts, in.Filter)
	}
	return opts, nil
}

// flatten lists outlines in pre-order, each entry pointing at its parent.
// Tool output schemas cannot describe recursive types.
func flatten(outlines []nodes.Outline) []OutlineEntry {
	out := make([]OutlineEntry, 0, len(outlines))
	var walk func(o nodes.Outline, depth, parent int)
	walk = func(o nodes.Outline, depth, parent int) {
		idx := len(out)
		out = append(out, OutlineEntry{Depth: depth, Parent: parent, Type: o.Type, Label: o.Label, ID: o.ID})
		for _, c := range o.Children {
			walk(c, depth+1, idx)
		}
	}
	for _, o := range outlines {
		walk(o, 0, -1)
	}
	return out
}

// rejections lists why each candidate format was rejected.
func rejections(nm *domain.NoMatchingFormatError) []string {
	out := make([]string, 0, len(nm.Rejected))
	for _, r := range nm.Rejected {
		out = append(out, fmt.Sprintf("itag %d: %v", r.Format.Itag, r.Reason))
	}
	return out
}

func toFormatOutput(f domain.Format) FormatOutput {
	quality := f.QualityLabel
	if quality == "" {
		quality = f.AudioQuality
	}
	return FormatOutput{
		Itag:         f.Itag,
		MimeType:     f.MimeType,
		Kind:         string(f.Kind()),
		Quality:      quality,
		Bitrate:      f.Bitrate,
		Width:        f.Width,
		Height:       f.Height,
		FPS:          f.FPS,
		Language:     f.Language(),
		HasURL:       f.URL != "",
		ContentBytes: f.ContentLength,
	}
}
