// Package formats reads the encoded variants of a playable resource from a
// player response, selects one under caller constraints and emits DASH
// manifests for adaptive variants.
//
// Everything here is a pure function over already-fetched data.
package formats

import (
	"mime"
	"strconv"
	"strings"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/logger"
)

var log = logger.Component("formats")

// ParseStreamingData reads the streamingData object of a player response.
// A nil payload is ErrNoStreamingData.
func ParseStreamingData(raw parser.Raw) (*domain.StreamingData, error) {
	if raw == nil {
		return nil, domain.ErrNoStreamingData
	}
	sd := &domain.StreamingData{
		ExpiresInSeconds: raw.Int("expiresInSeconds"),
		DASHManifestURL:  raw.String("dashManifestUrl"),
		HLSManifestURL:   raw.String("hlsManifestUrl"),
	}
	for i, f := range raw.Objects("formats") {
		format, err := ParseFormat(f)
		if err != nil {
			return nil, domain.WithPathPrefix(domain.WithPathPrefix(err, strconv.Itoa(i)), "formats")
		}
		sd.Formats = append(sd.Formats, format)
	}
	for i, f := range raw.Objects("adaptiveFormats") {
		format, err := ParseFormat(f)
		if err != nil {
			return nil, domain.WithPathPrefix(domain.WithPathPrefix(err, strconv.Itoa(i)), "adaptiveFormats")
		}
		sd.AdaptiveFormats = append(sd.AdaptiveFormats, format)
	}
	log.Debug("streaming data: %d muxed, %d adaptive", len(sd.Formats), len(sd.AdaptiveFormats))
	return sd, nil
}

// ParseFormat reads one format object. Only itag and mimeType are required.
func ParseFormat(raw parser.Raw) (domain.Format, error) {
	if !raw.Has("itag") {
		return domain.Format{}, &domain.MalformedDocumentError{Path: []string{"itag"}, Reason: "required field is missing"}
	}
	mimeType := raw.String("mimeType")
	if mimeType == "" {
		return domain.Format{}, &domain.MalformedDocumentError{Path: []string{"mimeType"}, Reason: "required field is missing"}
	}

	f := domain.Format{
		Itag:             int(raw.Int("itag")),
		MimeType:         mimeType,
		Bitrate:          raw.Int("bitrate"),
		AverageBitrate:   raw.Int("averageBitrate"),
		Width:            int(raw.Int("width")),
		Height:           int(raw.Int("height")),
		FPS:              int(raw.Int("fps")),
		Quality:          raw.String("quality"),
		QualityLabel:     raw.String("qualityLabel"),
		AudioQuality:     raw.String("audioQuality"),
		AudioSampleRate:  int(raw.Int("audioSampleRate")),
		AudioChannels:    int(raw.Int("audioChannels")),
		ContentLength:    raw.Int("contentLength"),
		ApproxDurationMs: raw.Int("approxDurationMs"),
		LastModified:     raw.String("lastModified"),
		InitRange:        parseRange(raw.Object("initRange")),
		IndexRange:       parseRange(raw.Object("indexRange")),
		URL:              raw.String("url"),
		IsDRC:            raw.Bool("isDrc"),
	}

	f.SignatureCipher = raw.String("signatureCipher")
	if f.SignatureCipher == "" {
		f.SignatureCipher = raw.String("cipher")
	}

	major, container, codecs := splitMimeType(mimeType)
	f.Container = container
	f.Codecs = codecs
	f.HasVideo = major == "video"
	f.HasAudio = major == "audio" || (major == "video" && len(codecs) > 1)

	if at := raw.Object("audioTrack"); at != nil {
		f.AudioTrack = &domain.AudioTrack{
			ID:          at.String("id"),
			DisplayName: at.String("displayName"),
			IsDefault:   at.Bool("audioIsDefault"),
		}
	}
	return f, nil
}

// splitMimeType turns `video/mp4; codecs="avc1.4d401f, mp4a.40.2"` into
// ("video", "mp4", ["avc1.4d401f", "mp4a.40.2"]).
func splitMimeType(s string) (major, container string, codecs []string) {
	media, params, err := mime.ParseMediaType(s)
	if err != nil {
		media, _, _ = strings.Cut(s, ";")
		media = strings.TrimSpace(media)
	}
	major, container, _ = strings.Cut(media, "/")
	for _, c := range strings.Split(params["codecs"], ",") {
		if c = strings.TrimSpace(c); c != "" {
			codecs = append(codecs, c)
		}
	}
	return major, container, codecs
}

func parseRange(raw parser.Raw) *domain.ByteRange {
	if raw == nil || !raw.Has("start") || !raw.Has("end") {
		return nil
	}
	return &domain.ByteRange{Start: raw.Int("start"), End: raw.Int("end")}
}
