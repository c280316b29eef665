// Package mcp provides an MCP (Model Context Protocol) server adapter for innergraph.
// It lets AI assistants browse pages, choose media formats and render DASH manifests.
package mcp

import "errors"

// ErrMissingBrowseService is returned when the browse service is not provided.
var ErrMissingBrowseService = errors.New("mcp: browse service is required")

// ErrMediaUnavailable is returned by the format tools when no media service is configured.
var ErrMediaUnavailable = errors.New("mcp: media service is not configured")
