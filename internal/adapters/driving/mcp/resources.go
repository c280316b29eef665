package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for innergraph resources.
	uriScheme = "innergraph://"
)

// bookmarkInfo is the JSON form of a bookmark.
type bookmarkInfo struct {
	Name      string         `json:"name"`
	Endpoint  string         `json:"endpoint"`
	Client    string         `json:"client,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
	Token     string         `json:"token,omitempty"`
	Pages     int            `json:"pages"`
	Exhausted bool           `json:"exhausted"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toBookmarkInfo(b *domain.Bookmark) bookmarkInfo {
	return bookmarkInfo{
		Name:      b.Name,
		Endpoint:  b.Request.Endpoint,
		Client:    b.Request.Client,
		Params:    b.Request.Params,
		Token:     b.Token,
		Pages:     b.Pages,
		Exhausted: b.Exhausted(),
		UpdatedAt: b.UpdatedAt,
	}
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "bookmarks",
		Name:        "bookmarks",
		Description: "Saved positions inside paginated result sets",
		MIMEType:    "application/json",
	}, s.handleBookmarksResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "bookmarks/{name}",
		Name:        "bookmark",
		Description: "A single saved bookmark; pass its token as continuation to the browse tool",
		MIMEType:    "application/json",
	}, s.handleBookmarkResource)
}

// handleBookmarksResource returns every saved bookmark.
func (s *Server) handleBookmarksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Bookmarks == nil {
		return jsonResult(req.Params.URI, []bookmarkInfo{})
	}

	bookmarks, err := s.ports.Bookmarks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}

	infos := make([]bookmarkInfo, len(bookmarks))
	for i := range bookmarks {
		infos[i] = toBookmarkInfo(&bookmarks[i])
	}
	return jsonResult(req.Params.URI, infos)
}

// handleBookmarkResource returns one bookmark by name.
func (s *Server) handleBookmarkResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Bookmarks == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	name := extractBookmarkName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	b, err := s.ports.Bookmarks.Get(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting bookmark: %w", err)
	}
	return jsonResult(req.Params.URI, toBookmarkInfo(b))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractBookmarkName extracts the name from a URI like innergraph://bookmarks/{name}.
func extractBookmarkName(uri string) string {
	const prefix = uriScheme + "bookmarks/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
