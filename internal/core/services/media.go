package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/innergraph/internal/core/aggregates"
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/formats"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
	"github.com/custodia-labs/innergraph/internal/core/ports/driving"
	"github.com/custodia-labs/innergraph/internal/logger"
)

// Ensure MediaService implements the interface.
var _ driving.MediaService = (*MediaService)(nil)

// MediaService fetches player responses and negotiates among their formats.
type MediaService struct {
	loader   *aggregates.Loader
	resolver driven.URLResolver
	streamer driven.MediaStreamer
	client   string
	defaults domain.FormatDefaults
	newCPN   func() string
}

// NewMediaService creates a new media service. The resolver and streamer are
// optional; without a resolver only plain format URLs are usable.
func NewMediaService(loader *aggregates.Loader, resolver driven.URLResolver, streamer driven.MediaStreamer) *MediaService {
	return &MediaService{
		loader:   loader,
		resolver: resolver,
		streamer: streamer,
		client:   domain.ClientWeb,
		newCPN:   NewCPN,
	}
}

// SetClient sets the client profile player requests are made with.
func (s *MediaService) SetClient(client string) {
	if client != "" {
		s.client = client
	}
}

// SetDefaults sets the format options applied when a caller leaves one empty.
func (s *MediaService) SetDefaults(defaults domain.FormatDefaults) {
	s.defaults = defaults
}

// NewCPN returns a fresh 16 character client playback nonce.
func NewCPN() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])[:16]
}

func playerRequest(client, videoID, cpn string) domain.FetchRequest {
	return domain.FetchRequest{
		Endpoint: domain.EndpointPlayer,
		Client:   client,
		Params: map[string]any{
			"videoId":        videoID,
			"cpn":            cpn,
			"contentCheckOk": true,
			"racyCheckOk":    true,
		},
	}
}

func nextRequest(videoID string) domain.FetchRequest {
	return domain.FetchRequest{
		Endpoint: domain.EndpointNext,
		Client:   domain.ClientMusic,
		Params: map[string]any{
			"videoId":     videoID,
			"isAudioOnly": true,
		},
	}
}

// Track fetches the player and watch pages of a music track concurrently.
func (s *MediaService) Track(ctx context.Context, videoID string) (*aggregates.TrackInfo, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is required", domain.ErrInvalidInput)
	}
	cpn := s.newCPN()

	var player, next *parser.Page
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.loader.Load(gctx, playerRequest(domain.ClientMusic, videoID, cpn))
		player = p
		return err
	})
	g.Go(func() error {
		p, err := s.loader.Load(gctx, nextRequest(videoID))
		next = p
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("track %s: %w", videoID, err)
	}

	logger.Debug("track %s: cpn=%s", videoID, cpn)
	return aggregates.NewTrackInfo(s.loader, player, next, cpn)
}

// player fetches only the player page of a video.
func (s *MediaService) player(ctx context.Context, videoID string) (*aggregates.TrackInfo, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is required", domain.ErrInvalidInput)
	}
	cpn := s.newCPN()
	page, err := s.loader.Load(ctx, playerRequest(s.client, videoID, cpn))
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", videoID, err)
	}
	return aggregates.NewTrackInfo(s.loader, page, nil, cpn)
}

// Formats fetches the streaming data of a video.
func (s *MediaService) Formats(ctx context.Context, videoID string) (*domain.StreamingData, error) {
	t, err := s.player(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if t.Streaming == nil {
		return nil, domain.ErrNoStreamingData
	}
	return t.Streaming, nil
}

// Choose selects the best format of a video for opts.
func (s *MediaService) Choose(ctx context.Context, videoID string, opts domain.FormatOptions) (domain.Format, error) {
	t, err := s.player(ctx, videoID)
	if err != nil {
		return domain.Format{}, err
	}
	opts = s.defaults.ApplyDefaults(opts)
	logger.Debug("choose %s: %s", videoID, opts)
	return t.ChooseFormat(opts)
}

// Manifest renders a DASH manifest whose URLs carry the playback nonce.
func (s *MediaService) Manifest(ctx context.Context, videoID, filter string) (string, error) {
	var keep func(domain.Format) bool
	if filter != "" {
		fn, err := formats.CompileFilter(filter)
		if err != nil {
			return "", err
		}
		keep = fn
	}

	t, err := s.player(ctx, videoID)
	if err != nil {
		return "", err
	}
	return t.DASH(formats.DASHOptions{
		Filter: keep,
		TransformURL: func(f domain.Format) (string, error) {
			return s.resolve(ctx, f, t.CPN())
		},
	})
}

// Download streams the chosen format of a video to w.
func (s *MediaService) Download(ctx context.Context, videoID string, opts domain.FormatOptions,
	w io.Writer, progress driven.ProgressFunc) (domain.Format, int64, error) {
	t, err := s.player(ctx, videoID)
	if err != nil {
		return domain.Format{}, 0, err
	}
	return t.Download(ctx, s.defaults.ApplyDefaults(opts), s.resolver, s.streamer, w, progress)
}

func (s *MediaService) resolve(ctx context.Context, f domain.Format, cpn string) (string, error) {
	if s.resolver != nil {
		return s.resolver.Resolve(ctx, f, cpn)
	}
	if f.URL == "" {
		return "", domain.ErrCipherRequired
	}
	return f.URL, nil
}
