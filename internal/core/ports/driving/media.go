package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/innergraph/internal/core/aggregates"
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
)

// MediaService negotiates among the encoded variants of a video.
type MediaService interface {
	// Track fetches the player and watch pages of a music track.
	Track(ctx context.Context, videoID string) (*aggregates.TrackInfo, error)

	// Formats fetches the streaming data of a video.
	Formats(ctx context.Context, videoID string) (*domain.StreamingData, error)

	// Choose selects the best format for opts.
	// Returns a domain.NoMatchingFormatError listing every rejection.
	Choose(ctx context.Context, videoID string, opts domain.FormatOptions) (domain.Format, error)

	// Manifest renders a DASH manifest for the adaptive formats of a video.
	// filter is an optional expression over format fields.
	Manifest(ctx context.Context, videoID, filter string) (string, error)

	// Download streams the chosen format to w.
	Download(ctx context.Context, videoID string, opts domain.FormatOptions,
		w io.Writer, progress driven.ProgressFunc) (domain.Format, int64, error)
}
