package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
	"github.com/custodia-labs/innergraph/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the default number of retries for transport errors.
	MaxRetries = 2

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// MaxBodySize is the default bound on a decoded response document.
	MaxBodySize = 64 << 20
)

// ErrBodyTooLarge is returned when a decoded response exceeds the body limit.
var ErrBodyTooLarge = errors.New("response body too large")

var log = logger.Component("transport")

// Verify interface compliance.
var _ driven.Transport = (*Client)(nil)

// Config configures a Client.
type Config struct {
	// BaseURL is the service origin. Defaults to https://www.youtube.com.
	BaseURL string

	// Client is the default profile name. Defaults to domain.ClientWeb.
	Client string

	// Version overrides the client version of the default profile.
	Version string

	// HL and GL are the interface language and content region.
	HL string
	GL string

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// RateLimit configures request throttling.
	RateLimit RateLimitConfig

	// MaxRetries is how often a transport error is retried. Negative disables retries.
	MaxRetries int

	// RetryDelay is the initial delay between retries, doubled after each attempt.
	RetryDelay time.Duration

	// MaxBodySize bounds a decoded response in bytes. Defaults to MaxBodySize.
	MaxBodySize int64

	// TokenSource, when set, authenticates requests with a bearer token.
	TokenSource oauth2.TokenSource

	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a Config from application settings.
func ConfigFromSettings(s domain.Settings) Config {
	return Config{
		BaseURL: s.Transport.BaseURL,
		Client:  s.Client.Name,
		Version: s.Client.Version,
		HL:      s.Client.HL,
		GL:      s.Client.GL,
		Timeout: s.Transport.Timeout,
		RateLimit: RateLimitConfig{
			RequestsPerSecond: s.Transport.RequestsPerSecond,
			BurstSize:         s.Transport.Burst,
		},
	}
}

// Client is the HTTP implementation of driven.Transport.
type Client struct {
	http       *http.Client
	baseURL    string
	profile    Profile
	version    string
	hl, gl     string
	limiter    *RateLimiter
	tokens     oauth2.TokenSource
	maxRetries int
	retryDelay time.Duration
	maxBody    int64
}

// NewClient creates a client. It fails when the default profile is unknown.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Client == "" {
		cfg.Client = domain.ClientWeb
	}
	profile, err := LookupProfile(cfg.Client)
	if err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.youtube.com"
	}
	if cfg.HL == "" {
		cfg.HL = "en"
	}
	if cfg.GL == "" {
		cfg.GL = "US"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = MaxRetries
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = RetryDelay
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = MaxBodySize
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		http:       hc,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		profile:    profile,
		version:    cfg.Version,
		hl:         cfg.HL,
		gl:         cfg.GL,
		limiter:    NewRateLimiter(cfg.RateLimit),
		tokens:     cfg.TokenSource,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		maxBody:    cfg.MaxBodySize,
	}, nil
}

// Limiter returns the rate limiter requests wait on.
func (c *Client) Limiter() *RateLimiter {
	return c.limiter
}

// Fetch posts req and returns the decoded response document.
// Transport errors are retried with exponential backoff; service errors are not.
func (c *Client) Fetch(ctx context.Context, req domain.FetchRequest) (map[string]any, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	profile := c.profile
	version := c.version
	if req.Client != "" && req.Client != profile.Name {
		p, err := LookupProfile(req.Client)
		if err != nil {
			return nil, err
		}
		profile, version = p, ""
	}

	body, err := c.requestBody(req, profile, version)
	if err != nil {
		return nil, err
	}

	delay := c.retryDelay
	for attempt := 0; ; attempt++ {
		doc, err := c.do(ctx, req.Endpoint, profile, version, body)
		if err == nil || !domain.IsRetryable(err) || attempt >= c.maxRetries {
			return doc, err
		}
		log.Warn("%s: attempt %d failed, retrying: %v", req.Endpoint, attempt+1, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

func (c *Client) requestBody(req domain.FetchRequest, profile Profile, version string) ([]byte, error) {
	payload := make(map[string]any, len(req.Params)+2)
	for k, v := range req.Params {
		payload[k] = v
	}
	payload["context"] = profile.context(c.hl, c.gl, version)
	if req.Continuation != "" {
		payload["continuation"] = req.Continuation
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", req.Endpoint, err)
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, endpoint string, profile Profile, version string,
	body []byte) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := c.baseURL + "/youtubei/v1/" + endpoint + "?prettyPrint=false"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept-Encoding", "gzip, zstd")
	httpReq.Header.Set("User-Agent", profile.UserAgent)
	httpReq.Header.Set("X-Youtube-Client-Name", strconv.Itoa(profile.ClientID))
	if version == "" {
		version = profile.Version
	}
	httpReq.Header.Set("X-Youtube-Client-Version", version)
	if profile.Origin != "" {
		httpReq.Header.Set("Origin", profile.Origin)
	}
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("get token: %w", err)
		}
		tok.SetAuthHeader(httpReq)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &domain.TransportError{Op: endpoint, Err: err}
	}
	defer resp.Body.Close()
	log.Debug("%s %s -> %d in %s", profile.Name, endpoint, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	data, err := readBody(resp, c.maxBody)
	if err != nil {
		return nil, &domain.TransportError{Op: endpoint, StatusCode: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		wait := c.limiter.RecordThrottle(resp)
		return nil, &domain.TransportError{
			Op:         endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("throttled, retry after %s", wait),
		}
	case resp.StatusCode >= 500:
		return nil, &domain.TransportError{
			Op:         endpoint,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	doc, decodeErr := parser.DecodeRaw(data)
	if se := serviceError(doc, resp.StatusCode); se != nil {
		return nil, se
	}
	if decodeErr != nil {
		return nil, &domain.TransportError{Op: endpoint, StatusCode: resp.StatusCode, Err: decodeErr}
	}
	return map[string]any(doc), nil
}

// serviceError classifies an error body or a 4xx status.
func serviceError(doc parser.Raw, status int) error {
	if e, ok := parser.AsRaw(doc["error"]); ok {
		se := &domain.ServiceError{
			Code:   int(e.Int("code")),
			Status: e.String("status"),
			Reason: e.String("message"),
		}
		if se.Code == 0 && status >= 400 {
			se.Code = status
		}
		if se.Status == "" {
			se.Status = http.StatusText(se.Code)
		}
		return se
	}
	if status >= 400 {
		return &domain.ServiceError{Code: status, Status: http.StatusText(status), Reason: "request rejected"}
	}
	return nil
}

// readBody reads the response, decoding gzip and zstd content encodings.
// A decoded body longer than limit is an error, never a truncated document.
func readBody(resp *http.Response, limit int64) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "", "identity":
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, limit)
	}
	return data, nil
}
