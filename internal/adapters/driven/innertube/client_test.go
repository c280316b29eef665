package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

type recorded struct {
	path    string
	headers http.Header
	body    map[string]any
}

type fakeServer struct {
	mu       sync.Mutex
	requests []recorded
	handler  func(w http.ResponseWriter, r *http.Request, n int)
}

func (s *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.mu.Lock()
	s.requests = append(s.requests, recorded{path: r.URL.Path, headers: r.Header.Clone(), body: body})
	n := len(s.requests)
	s.mu.Unlock()
	s.handler(w, r, n)
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, n int),
	mutate ...func(*Config)) (*Client, *fakeServer) {
	t.Helper()
	fs := &fakeServer{handler: handler}
	srv := httptest.NewServer(fs)
	t.Cleanup(srv.Close)

	cfg := Config{
		BaseURL:    srv.URL,
		MaxRetries: -1,
		RateLimit:  RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 100},
	}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c, fs
}

func writeJSON(w http.ResponseWriter, status int, doc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, doc)
}

func TestClient_Fetch(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		writeJSON(w, http.StatusOK, `{"contents": {"sectionListRenderer": {"contents": []}}, "count": 3}`)
	})

	doc, err := c.Fetch(context.Background(), domain.FetchRequest{
		Endpoint:     domain.EndpointBrowse,
		Params:       map[string]any{"browseId": "FEmusic_home"},
		Continuation: "TOKEN",
	})
	require.NoError(t, err)
	assert.Contains(t, doc, "contents")
	assert.Equal(t, json.Number("3"), doc["count"], "numbers keep their literal form")

	require.Len(t, srv.requests, 1)
	got := srv.requests[0]
	assert.Equal(t, "/youtubei/v1/browse", got.path)
	assert.Equal(t, "FEmusic_home", got.body["browseId"])
	assert.Equal(t, "TOKEN", got.body["continuation"])
	client := got.body["context"].(map[string]any)["client"].(map[string]any)
	assert.Equal(t, "WEB", client["clientName"])
	assert.Equal(t, "en", client["hl"])
	assert.Equal(t, "US", client["gl"])
	assert.Equal(t, "1", got.headers.Get("X-Youtube-Client-Name"))
	assert.Equal(t, "application/json", got.headers.Get("Content-Type"))
	assert.Empty(t, got.headers.Get("Authorization"))
}

func TestClient_Profiles(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		writeJSON(w, http.StatusOK, `{}`)
	}, func(cfg *Config) {
		cfg.Version = "9.9"
		cfg.HL = "de"
	})
	ctx := context.Background()

	_, err := c.Fetch(ctx, domain.FetchRequest{Endpoint: domain.EndpointNext})
	require.NoError(t, err)
	_, err = c.Fetch(ctx, domain.FetchRequest{Endpoint: domain.EndpointPlayer, Client: domain.ClientAndroid})
	require.NoError(t, err)
	_, err = c.Fetch(ctx, domain.FetchRequest{Endpoint: domain.EndpointBrowse, Client: "NOPE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.Len(t, srv.requests, 2)
	web := srv.requests[0].body["context"].(map[string]any)["client"].(map[string]any)
	assert.Equal(t, "9.9", web["clientVersion"])
	assert.Equal(t, "de", web["hl"])
	assert.Equal(t, "9.9", srv.requests[0].headers.Get("X-Youtube-Client-Version"))

	android := srv.requests[1].body["context"].(map[string]any)["client"].(map[string]any)
	assert.Equal(t, "ANDROID", android["clientName"])
	assert.Equal(t, "19.29.37", android["clientVersion"], "version override applies to the default profile only")
	assert.Equal(t, float64(30), android["androidSdkVersion"])
	assert.Equal(t, "3", srv.requests[1].headers.Get("X-Youtube-Client-Name"))
	assert.Empty(t, srv.requests[1].headers.Get("Origin"))
}

func TestClient_TokenSource(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		writeJSON(w, http.StatusOK, `{}`)
	}, func(cfg *Config) {
		cfg.TokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "secret", TokenType: "Bearer"})
	})

	_, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointBrowse})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", srv.requests[0].headers.Get("Authorization"))
}

func TestClient_ContentEncoding(t *testing.T) {
	doc := `{"responseContext": {"visitorData": "abc"}}`

	t.Run("gzip", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
			var buf bytes.Buffer
			gz := gzip.NewWriter(&buf)
			_, _ = gz.Write([]byte(doc))
			_ = gz.Close()
			w.Header().Set("Content-Encoding", "gzip")
			_, _ = w.Write(buf.Bytes())
		})
		got, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointBrowse})
		require.NoError(t, err)
		assert.Contains(t, got, "responseContext")
	})

	t.Run("zstd", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
			enc, _ := zstd.NewWriter(nil)
			defer enc.Close()
			w.Header().Set("Content-Encoding", "zstd")
			_, _ = w.Write(enc.EncodeAll([]byte(doc), nil))
		})
		got, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointBrowse})
		require.NoError(t, err)
		assert.Contains(t, got, "responseContext")
	})

	t.Run("unsupported", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
			w.Header().Set("Content-Encoding", "br")
			_, _ = w.Write([]byte("xx"))
		})
		_, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointBrowse})
		assert.True(t, domain.IsRetryable(err))
	})
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		retryable bool
		service   bool
		code      int
	}{
		{name: "server error", status: http.StatusBadGateway, body: `oops`, retryable: true},
		{name: "throttled", status: http.StatusTooManyRequests, body: `{}`, retryable: true},
		{
			name:    "error body",
			status:  http.StatusBadRequest,
			body:    `{"error": {"code": 400, "message": "Request contains an invalid argument.", "status": "INVALID_ARGUMENT"}}`,
			service: true,
			code:    400,
		},
		{
			name:    "error body with 200",
			status:  http.StatusOK,
			body:    `{"error": {"code": 403, "message": "denied", "status": "PERMISSION_DENIED"}}`,
			service: true,
			code:    403,
		},
		{name: "bare 404", status: http.StatusNotFound, body: `not json`, service: true, code: 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
				if tt.status == http.StatusTooManyRequests {
					w.Header().Set("Retry-After", "0")
				}
				writeJSON(w, tt.status, tt.body)
			})
			_, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointSearch})
			require.Error(t, err)
			assert.Equal(t, tt.retryable, domain.IsRetryable(err))
			assert.Equal(t, tt.service, domain.IsServiceError(err))
			if tt.service {
				var se *domain.ServiceError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, tt.code, se.Code)
			}
		})
	}

	t.Run("malformed json on success is a transport error", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
			writeJSON(w, http.StatusOK, `{"contents": `)
		})
		_, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointSearch})
		require.Error(t, err)
		assert.False(t, domain.IsServiceError(err))
		var te *domain.TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, http.StatusOK, te.StatusCode)
		assert.Equal(t, domain.EndpointSearch, te.Op)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()
		c, err := NewClient(Config{BaseURL: url, MaxRetries: -1})
		require.NoError(t, err)
		_, err = c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointBrowse})
		assert.True(t, domain.IsRetryable(err))
	})

	t.Run("invalid request", func(t *testing.T) {
		c, _ := newTestClient(t, func(http.ResponseWriter, *http.Request, int) {
			t.Fatal("no request expected")
		})
		_, err := c.Fetch(context.Background(), domain.FetchRequest{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestClient_BodyLimit(t *testing.T) {
	doc := `{"a":"b"}`
	serve := func(w http.ResponseWriter, _ *http.Request, _ int) {
		writeJSON(w, http.StatusOK, doc)
	}

	t.Run("body at the limit", func(t *testing.T) {
		c, _ := newTestClient(t, serve, func(cfg *Config) { cfg.MaxBodySize = int64(len(doc)) })
		got, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointBrowse})
		require.NoError(t, err)
		assert.Equal(t, "b", got["a"])
	})

	t.Run("oversize body is reported", func(t *testing.T) {
		c, _ := newTestClient(t, serve, func(cfg *Config) { cfg.MaxBodySize = int64(len(doc)) - 1 })
		_, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointBrowse})
		require.ErrorIs(t, err, ErrBodyTooLarge)
		var te *domain.TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, http.StatusOK, te.StatusCode)
	})

	t.Run("oversize after decompression", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
			var buf bytes.Buffer
			gz := gzip.NewWriter(&buf)
			_, _ = gz.Write(bytes.Repeat([]byte(" "), 4096))
			_, _ = gz.Write([]byte(doc))
			_ = gz.Close()
			w.Header().Set("Content-Encoding", "gzip")
			_, _ = w.Write(buf.Bytes())
		}, func(cfg *Config) { cfg.MaxBodySize = 1024 })
		_, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointBrowse})
		assert.ErrorIs(t, err, ErrBodyTooLarge)
	})
}

func TestClient_Retries(t *testing.T) {
	t.Run("retries transport errors", func(t *testing.T) {
		c, srv := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, n int) {
			if n < 3 {
				writeJSON(w, http.StatusServiceUnavailable, ``)
				return
			}
			writeJSON(w, http.StatusOK, `{"ok": true}`)
		}, func(cfg *Config) {
			cfg.MaxRetries = 2
			cfg.RetryDelay = time.Millisecond
		})

		doc, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointBrowse})
		require.NoError(t, err)
		assert.Equal(t, true, doc["ok"])
		assert.Len(t, srv.requests, 3)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		c, srv := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
			writeJSON(w, http.StatusInternalServerError, ``)
		}, func(cfg *Config) {
			cfg.MaxRetries = 1
			cfg.RetryDelay = time.Millisecond
		})

		_, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointBrowse})
		var te *domain.TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
		assert.Len(t, srv.requests, 2)
	})

	t.Run("service errors are final", func(t *testing.T) {
		c, srv := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
			writeJSON(w, http.StatusBadRequest, `{"error": {"code": 400, "status": "INVALID_ARGUMENT"}}`)
		}, func(cfg *Config) {
			cfg.MaxRetries = 3
			cfg.RetryDelay = time.Millisecond
		})

		_, err := c.Fetch(context.Background(), domain.FetchRequest{Endpoint: domain.EndpointBrowse})
		assert.True(t, domain.IsServiceError(err))
		assert.Len(t, srv.requests, 1)
	})

	t.Run("context cancellation stops retries", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
			cancel()
			writeJSON(w, http.StatusBadGateway, ``)
		}, func(cfg *Config) {
			cfg.MaxRetries = 5
			cfg.RetryDelay = time.Hour
		})

		_, err := c.Fetch(ctx, domain.FetchRequest{Endpoint: domain.EndpointBrowse})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{Client: "UNKNOWN"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := NewClient(ConfigFromSettings(domain.DefaultSettings()))
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com", c.baseURL)
	assert.Equal(t, domain.ClientWeb, c.profile.Name)
	assert.Equal(t, MaxRetries, c.maxRetries)
}

func TestProfiles(t *testing.T) {
	assert.Equal(t, []string{domain.ClientAndroid, domain.ClientWeb, domain.ClientKids, domain.ClientMusic}, ProfileNames())

	p, err := LookupProfile(domain.ClientMusic)
	require.NoError(t, err)
	assert.Equal(t, "WEB_REMIX", p.ClientName)
	assert.Equal(t, 67, p.ClientID)
}
