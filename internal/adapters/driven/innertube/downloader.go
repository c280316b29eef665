package innertube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
)

// DefaultChunkSize is the size of one ranged media request.
const DefaultChunkSize int64 = 10 << 20

// Verify interface compliance.
var _ driven.MediaStreamer = (*Downloader)(nil)

// Downloader streams media URLs in ranged chunks.
type Downloader struct {
	http      *http.Client
	chunkSize int64
	limiter   *RateLimiter
}

// NewDownloader creates a downloader. A nil client uses http.DefaultClient;
// a non-positive chunk size uses DefaultChunkSize.
func NewDownloader(client *http.Client, chunkSize int64) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Downloader{http: client, chunkSize: chunkSize}
}

// WithRateLimiter shares a rate limiter with the downloader.
func (d *Downloader) WithRateLimiter(r *RateLimiter) *Downloader {
	d.limiter = r
	return d
}

// Stream copies url to w. With a known size it issues one Range request per
// chunk; otherwise the whole body is copied in a single request.
func (d *Downloader) Stream(ctx context.Context, url string, size int64, w io.Writer,
	progress driven.ProgressFunc) (int64, error) {
	if progress == nil {
		progress = func(int64, int64) {}
	}
	if size <= 0 {
		return d.copyRange(ctx, url, "", w, 0, 0, progress)
	}

	var written int64
	for written < size {
		end := min(written+d.chunkSize, size) - 1
		rng := fmt.Sprintf("bytes=%d-%d", written, end)
		n, err := d.copyRange(ctx, url, rng, w, written, size, progress)
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, &domain.TransportError{Op: "download", Err: io.ErrUnexpectedEOF}
		}
	}
	return written, nil
}

func (d *Downloader) copyRange(ctx context.Context, url, rng string, w io.Writer, offset, total int64,
	progress driven.ProgressFunc) (int64, error) {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return 0, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if rng != "" {
		req.Header.Set("Range", rng)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, &domain.TransportError{Op: "download", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusPartialContent:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		if d.limiter != nil && resp.StatusCode == http.StatusTooManyRequests {
			d.limiter.RecordThrottle(resp)
		}
		return 0, &domain.TransportError{
			Op:         "download",
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	default:
		return 0, &domain.ServiceError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode),
			Reason: "media request rejected"}
	}
	if rng != "" && resp.StatusCode == http.StatusOK && offset > 0 {
		return 0, &domain.ServiceError{Code: resp.StatusCode, Status: "OK", Reason: "server ignored range request"}
	}

	pw := &progressWriter{w: w, base: offset, total: total, report: progress}
	n, err := io.Copy(pw, resp.Body)
	if err != nil {
		return n, &domain.TransportError{Op: "download", StatusCode: resp.StatusCode, Err: err}
	}
	return n, nil
}

type progressWriter struct {
	w       io.Writer
	base    int64
	written int64
	total   int64
	report  driven.ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	p.report(p.base+p.written, p.total)
	return n, err
}
