package aggregates

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/parser/nodes"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
)

// mockTransport answers requests with documents chosen by respond.
type mockTransport struct {
	mu       sync.Mutex
	respond  func(req domain.FetchRequest) (string, error)
	requests []domain.FetchRequest
}

func (m *mockTransport) Fetch(_ context.Context, req domain.FetchRequest) (map[string]any, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	doc, err := m.respond(req)
	if err != nil {
		return nil, err
	}
	raw, err := parser.DecodeRaw([]byte(doc))
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (m *mockTransport) Requests() []domain.FetchRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.FetchRequest(nil), m.requests...)
}

func unexpected(req domain.FetchRequest) (string, error) {
	return "", fmt.Errorf("unexpected request %s", req)
}

func newLoader(respond func(domain.FetchRequest) (string, error)) (*Loader, *mockTransport) {
	tr := &mockTransport{respond: respond}
	return NewLoader(tr, nodes.NewBuilder()), tr
}

func parsePage(t *testing.T, doc string) *parser.Page {
	t.Helper()
	raw, err := parser.DecodeRaw([]byte(doc))
	require.NoError(t, err)
	p, err := parser.ParsePage(raw, parser.PageOptions{Builder: nodes.NewBuilder()})
	require.NoError(t, err)
	return p
}

// mockResolver appends the playback nonce to plain URLs.
type mockResolver struct {
	err error
}

func (r *mockResolver) Resolve(_ context.Context, f domain.Format, cpn string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if f.URL == "" {
		return "", domain.ErrCipherRequired
	}
	return f.URL + "?cpn=" + cpn, nil
}

// mockStreamer writes a fixed body and records the URL it was asked for.
type mockStreamer struct {
	url  string
	size int64
	body string
}

func (s *mockStreamer) Stream(_ context.Context, url string, size int64, w io.Writer, progress driven.ProgressFunc) (int64, error) {
	s.url, s.size = url, size
	if url == "" {
		return 0, errors.New("no url")
	}
	n, err := io.Copy(w, bytes.NewBufferString(s.body))
	if progress != nil {
		progress(n, size)
	}
	return n, err
}
