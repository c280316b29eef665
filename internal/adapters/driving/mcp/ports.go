package mcp

import (
	"github.com/custodia-labs/innergraph/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Browse fetches and parses pages.
	Browse driving.BrowseService

	// Media chooses formats and renders manifests.
	Media driving.MediaService

	// Bookmarks lists saved result-set positions.
	Bookmarks driving.BookmarkService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Browse == nil {
		return ErrMissingBrowseService
	}
	// Media and Bookmarks are optional
	return nil
}
