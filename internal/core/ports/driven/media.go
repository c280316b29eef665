package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// URLResolver turns a format into a fetchable URL.
// Formats that carry only a signature cipher return domain.ErrCipherRequired
// unless the implementation can decipher them.
type URLResolver interface {
	Resolve(ctx context.Context, format domain.Format, cpn string) (string, error)
}

// ProgressFunc reports bytes written so far out of total. Total is zero when unknown.
type ProgressFunc func(written, total int64)

// MediaStreamer copies a media resource to w.
type MediaStreamer interface {
	// Stream fetches url in ranged chunks. size is the content length when
	// known, zero otherwise. It returns the number of bytes written.
	Stream(ctx context.Context, url string, size int64, w io.Writer, progress ProgressFunc) (int64, error)
}
