// Package fixture provides an offline Transport backed by recorded response files.
//
// A request is answered from the first file that exists among:
//
//	<endpoint>__<token>.{json,yaml,yml}   when the request carries a continuation
//	<endpoint>.<id>.{json,yaml,yml}       where id is the browseId, videoId, playlistId or query param
//	<endpoint>.{json,yaml,yml}
//
// Slashes in endpoint names and unsafe characters in tokens and ids are
// replaced by underscores. YAML fixtures are converted to JSON before decoding
// so numbers behave the same in both formats.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
	"github.com/custodia-labs/innergraph/internal/logger"
)

// Verify interface compliance.
var _ driven.Transport = (*Transport)(nil)

var extensions = []string{".json", ".yaml", ".yml"}

// idParams are the request params that select a per-id fixture, in priority order.
var idParams = []string{"browseId", "videoId", "playlistId", "query", "input"}

// Transport serves fixture files from a filesystem.
type Transport struct {
	fsys fs.FS

	mu       sync.Mutex
	requests []domain.FetchRequest
}

// New creates a transport reading fixtures from dir.
func New(dir string) *Transport {
	return NewFS(os.DirFS(dir))
}

// NewFS creates a transport reading fixtures from fsys.
func NewFS(fsys fs.FS) *Transport {
	return &Transport{fsys: fsys}
}

// Fetch returns the decoded fixture for req.
// A request with no matching fixture fails with domain.ErrNotFound.
func (t *Transport) Fetch(ctx context.Context, req domain.FetchRequest) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.requests = append(t.requests, req)
	t.mu.Unlock()

	candidates := Candidates(req)
	for _, base := range candidates {
		for _, ext := range extensions {
			data, err := fs.ReadFile(t.fsys, base+ext)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("read fixture %s%s: %w", base, ext, err)
			}
			logger.Debug("fixture: %s served from %s%s", req, base, ext)
			return decode(base+ext, data)
		}
	}
	return nil, fmt.Errorf("fixture for %s (tried %s): %w", req, strings.Join(candidates, ", "), domain.ErrNotFound)
}

// Requests returns the requests served so far.
func (t *Transport) Requests() []domain.FetchRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.FetchRequest, len(t.requests))
	copy(out, t.requests)
	return out
}

// Candidates returns the fixture base names tried for req, most specific first.
func Candidates(req domain.FetchRequest) []string {
	endpoint := strings.ReplaceAll(req.Endpoint, "/", "_")
	if req.Continuation != "" {
		return []string{endpoint + "__" + sanitize(req.Continuation)}
	}
	var out []string
	for _, key := range idParams {
		if v, ok := req.Params[key].(string); ok && v != "" {
			out = append(out, endpoint+"."+sanitize(v))
			break
		}
	}
	return append(out, endpoint)
}

func decode(name string, data []byte) (map[string]any, error) {
	if !strings.HasSuffix(name, ".json") {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("fixture %s: %w", name, err)
		}
		data = converted
	}
	doc, err := parser.DecodeRaw(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}
	return map[string]any(doc), nil
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
