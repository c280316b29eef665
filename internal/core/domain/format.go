package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MediaKind classifies what streams a format carries.
type MediaKind string

// Media kinds understood by format selection.
const (
	// KindAudio is an audio-only adaptive format.
	KindAudio MediaKind = "audio"

	// KindVideo is a video-only adaptive format.
	KindVideo MediaKind = "video"

	// KindCombined is a muxed format carrying both audio and video.
	KindCombined MediaKind = "combined"
)

// IsValid returns true if the media kind is recognised.
func (k MediaKind) IsValid() bool {
	switch k {
	case KindAudio, KindVideo, KindCombined:
		return true
	default:
		return false
	}
}

// ParseMediaKind parses a kind name. It also accepts the "video+audio" spelling.
func ParseMediaKind(s string) (MediaKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "audio":
		return KindAudio, nil
	case "video":
		return KindVideo, nil
	case "combined", "video+audio", "audio+video", "muxed":
		return KindCombined, nil
	default:
		return "", fmt.Errorf("%w: unknown media kind %q", ErrInvalidInput, s)
	}
}

// ByteRange is an inclusive byte range inside a media file.
type ByteRange struct {
	Start int64
	End   int64
}

// String renders the range as "start-end".
func (r ByteRange) String() string {
	return strconv.FormatInt(r.Start, 10) + "-" + strconv.FormatInt(r.End, 10)
}

// AudioTrack identifies one of several audio tracks on a multi-language resource.
type AudioTrack struct {
	ID          string
	DisplayName string
	IsDefault   bool
}

// Format is one encoded rendition of a playable resource.
// Formats are immutable once parsed from the originating player response.
type Format struct {
	Itag             int
	MimeType         string
	Container        string
	Codecs           []string
	Bitrate          int64
	AverageBitrate   int64
	Width            int
	Height           int
	FPS              int
	Quality          string
	QualityLabel     string
	AudioQuality     string
	AudioSampleRate  int
	AudioChannels    int
	ContentLength    int64
	ApproxDurationMs int64
	LastModified     string
	InitRange        *ByteRange
	IndexRange       *ByteRange
	URL              string
	SignatureCipher  string
	HasAudio         bool
	HasVideo         bool
	AudioTrack       *AudioTrack
	IsDRC            bool
}

// Kind reports whether the format is audio-only, video-only or combined.
func (f Format) Kind() MediaKind {
	switch {
	case f.HasAudio && f.HasVideo:
		return KindCombined
	case f.HasVideo:
		return KindVideo
	default:
		return KindAudio
	}
}

// Codec returns the first codec identifier, or "" if none is known.
func (f Format) Codec() string {
	if len(f.Codecs) == 0 {
		return ""
	}
	return f.Codecs[0]
}

// HasCodecPrefix reports whether any codec starts with prefix (case-insensitive).
func (f Format) HasCodecPrefix(prefix string) bool {
	prefix = strings.ToLower(prefix)
	for _, c := range f.Codecs {
		if strings.HasPrefix(strings.ToLower(c), prefix) {
			return true
		}
	}
	return false
}

// Language returns the audio track id, or "" for single-track resources.
func (f Format) Language() string {
	if f.AudioTrack == nil {
		return ""
	}
	return f.AudioTrack.ID
}

// String returns a compact description used in logs and diagnostics.
func (f Format) String() string {
	label := f.QualityLabel
	if label == "" {
		label = f.AudioQuality
	}
	return fmt.Sprintf("itag=%d %s %s %s %dbps", f.Itag, f.Kind(), f.MimeType, label, f.Bitrate)
}

// Quality targets that are not a concrete label.
const (
	// QualityBest picks the highest quality tier available.
	QualityBest = "best"

	// QualityBestEfficiency picks the lowest quality tier available.
	QualityBestEfficiency = "bestefficiency"
)

// FormatOptions are the caller constraints for format selection.
type FormatOptions struct {
	// Kind is the desired media kind. Empty means combined.
	Kind MediaKind
	// MinBitrate and MaxBitrate bound the bitrate in bits per second. Zero means unbounded.
	MinBitrate int64
	MaxBitrate int64
	// Codec is a codec prefix such as "avc1", "vp9", "av01" or "opus".
	Codec string
	// Container is a container name such as "mp4" or "webm".
	Container string
	// Quality is QualityBest, QualityBestEfficiency or a label such as "720p".
	Quality string
	// Language is an audio track id prefix such as "en".
	Language string
	// Filter is an optional additional hard predicate.
	Filter func(Format) bool
	// FilterSource is the text the filter was compiled from, for diagnostics.
	FilterSource string
}

// EffectiveKind returns Kind, defaulting to combined.
func (o FormatOptions) EffectiveKind() MediaKind {
	if o.Kind == "" {
		return KindCombined
	}
	return o.Kind
}

// EffectiveQuality returns Quality, defaulting to best.
func (o FormatOptions) EffectiveQuality() string {
	if o.Quality == "" {
		return QualityBest
	}
	return o.Quality
}

// Validate checks the options are internally consistent.
func (o FormatOptions) Validate() error {
	if o.Kind != "" && !o.Kind.IsValid() {
		return fmt.Errorf("%w: media kind %q", ErrInvalidInput, o.Kind)
	}
	if o.MinBitrate < 0 || o.MaxBitrate < 0 {
		return fmt.Errorf("%w: negative bitrate bound", ErrInvalidInput)
	}
	if o.MaxBitrate > 0 && o.MinBitrate > o.MaxBitrate {
		return fmt.Errorf("%w: min bitrate %d above max bitrate %d", ErrInvalidInput, o.MinBitrate, o.MaxBitrate)
	}
	return nil
}

// String renders the options for error messages.
func (o FormatOptions) String() string {
	parts := []string{"kind=" + string(o.EffectiveKind()), "quality=" + o.EffectiveQuality()}
	if o.MinBitrate > 0 {
		parts = append(parts, fmt.Sprintf("min_bitrate=%d", o.MinBitrate))
	}
	if o.MaxBitrate > 0 {
		parts = append(parts, fmt.Sprintf("max_bitrate=%d", o.MaxBitrate))
	}
	if o.Codec != "" {
		parts = append(parts, "codec="+o.Codec)
	}
	if o.Container != "" {
		parts = append(parts, "container="+o.Container)
	}
	if o.Language != "" {
		parts = append(parts, "language="+o.Language)
	}
	if o.FilterSource != "" {
		parts = append(parts, "filter="+o.FilterSource)
	} else if o.Filter != nil {
		parts = append(parts, "filter=<func>")
	}
	return "{" + strings.Join(parts, " ") + "}"
}
