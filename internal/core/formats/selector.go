package formats

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// Rejection reasons. Each rejected candidate carries every reason that applied.
var (
	ErrWrongKind      = errors.New("media kind does not match")
	ErrBitrateTooLow  = errors.New("bitrate below minimum")
	ErrBitrateTooHigh = errors.New("bitrate above maximum")
	ErrWrongCodec     = errors.New("codec does not match")
	ErrWrongContainer = errors.New("container does not match")
	ErrWrongLanguage  = errors.New("audio track does not match")
	ErrFilterRejected = errors.New("rejected by filter")
)

// Choose picks the best format under opts. It is deterministic: the same list
// and options always select the same format, whatever the input order.
func Choose(formats []domain.Format, opts domain.FormatOptions) (domain.Format, error) {
	ranked, err := Rank(formats, opts)
	if err != nil {
		return domain.Format{}, err
	}
	log.Debug("chose %s from %d candidates", ranked[0], len(formats))
	return ranked[0], nil
}

// Rank returns every format satisfying the hard constraints of opts, best first.
// When none survives it returns a NoMatchingFormatError listing each candidate
// and why it was rejected.
func Rank(formats []domain.Format, opts domain.FormatOptions) ([]domain.Format, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	target, err := parseQualityTarget(opts.EffectiveQuality())
	if err != nil {
		return nil, err
	}

	var survivors []domain.Format
	var rejected []domain.Rejection
	for _, f := range formats {
		if reason := check(f, opts); reason != nil {
			rejected = append(rejected, domain.Rejection{Format: f, Reason: reason})
			continue
		}
		survivors = append(survivors, f)
	}
	if len(survivors) == 0 {
		return nil, &domain.NoMatchingFormatError{Options: opts, Rejected: rejected}
	}

	slices.SortStableFunc(survivors, func(a, b domain.Format) int {
		return cmp.Or(
			target.compare(a, b),
			cmp.Compare(b.Bitrate, a.Bitrate),
			cmp.Compare(a.Container, b.Container),
			cmp.Compare(a.Itag, b.Itag),
			cmp.Compare(a.URL, b.URL),
			cmp.Compare(a.Language(), b.Language()),
		)
	})
	return survivors, nil
}

// check returns the combined reasons f fails opts, or nil.
func check(f domain.Format, opts domain.FormatOptions) error {
	var err error
	if kind := opts.EffectiveKind(); f.Kind() != kind {
		err = multierr.Append(err, fmt.Errorf("%w: %s, want %s", ErrWrongKind, f.Kind(), kind))
	}
	if opts.MinBitrate > 0 && f.Bitrate < opts.MinBitrate {
		err = multierr.Append(err, fmt.Errorf("%w: %d < %d", ErrBitrateTooLow, f.Bitrate, opts.MinBitrate))
	}
	if opts.MaxBitrate > 0 && f.Bitrate > opts.MaxBitrate {
		err = multierr.Append(err, fmt.Errorf("%w: %d > %d", ErrBitrateTooHigh, f.Bitrate, opts.MaxBitrate))
	}
	if opts.Codec != "" && !f.HasCodecPrefix(opts.Codec) {
		err = multierr.Append(err, fmt.Errorf("%w: %s, want %s", ErrWrongCodec, strings.Join(f.Codecs, ","), opts.Codec))
	}
	if opts.Container != "" && !strings.EqualFold(f.Container, opts.Container) {
		err = multierr.Append(err, fmt.Errorf("%w: %s, want %s", ErrWrongContainer, f.Container, opts.Container))
	}
	// Formats without an audio track serve every language.
	if opts.Language != "" && f.AudioTrack != nil && !strings.HasPrefix(f.AudioTrack.ID, opts.Language) {
		err = multierr.Append(err, fmt.Errorf("%w: %s, want %s", ErrWrongLanguage, f.AudioTrack.ID, opts.Language))
	}
	if opts.Filter != nil && !opts.Filter(f) {
		err = multierr.Append(err, ErrFilterRejected)
	}
	return err
}

// Reasons splits a rejection reason into its individual causes.
func Reasons(err error) []error {
	return multierr.Errors(err)
}

type targetMode int

const (
	targetBest targetMode = iota
	targetEfficient
	targetLabel
)

// qualityTarget orders formats by how close their tier is to what was asked for.
type qualityTarget struct {
	mode targetMode
	tier int
}

// ValidateQuality checks q names a quality Choose understands: "best",
// "bestefficiency", a label such as "720p" or an audio quality.
func ValidateQuality(q string) error {
	_, err := parseQualityTarget(q)
	return err
}

func parseQualityTarget(q string) (qualityTarget, error) {
	switch strings.ToLower(q) {
	case domain.QualityBest, "":
		return qualityTarget{mode: targetBest}, nil
	case domain.QualityBestEfficiency:
		return qualityTarget{mode: targetEfficient}, nil
	}
	if t := labelTier(q); t > 0 {
		return qualityTarget{mode: targetLabel, tier: t}, nil
	}
	if t := audioTier(q); t > 0 {
		return qualityTarget{mode: targetLabel, tier: t}, nil
	}
	return qualityTarget{}, fmt.Errorf("%w: unknown quality %q", domain.ErrInvalidInput, q)
}

func (t qualityTarget) compare(a, b domain.Format) int {
	ta, tb := Tier(a), Tier(b)
	switch t.mode {
	case targetEfficient:
		return cmp.Compare(ta, tb)
	case targetLabel:
		if c := cmp.Compare(distance(ta, t.tier), distance(tb, t.tier)); c != 0 {
			return c
		}
		return cmp.Compare(tb, ta)
	default:
		return cmp.Compare(tb, ta)
	}
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// Tier is the quality rank of a format: the vertical resolution for formats
// carrying video, a small ordinal for audio-only formats.
func Tier(f domain.Format) int {
	if f.HasVideo {
		if t := labelTier(f.QualityLabel); t > 0 {
			return t
		}
		if f.Height > 0 {
			return f.Height
		}
		return namedTiers[strings.ToLower(f.Quality)]
	}
	return audioTier(f.AudioQuality)
}

var namedTiers = map[string]int{
	"tiny":    144,
	"small":   240,
	"medium":  360,
	"large":   480,
	"hd720":   720,
	"hd1080":  1080,
	"hd1440":  1440,
	"hd2160":  2160,
	"hd2880":  2880,
	"highres": 4320,
}

var audioTiers = map[string]int{
	"ULTRALOW": 1,
	"LOW":      2,
	"MEDIUM":   3,
	"HIGH":     4,
}

// labelTier reads "720p", "1080p60" or "hd720" as a resolution.
func labelTier(label string) int {
	label = strings.ToLower(strings.TrimSpace(label))
	if t, ok := namedTiers[label]; ok {
		return t
	}
	digits, _, ok := strings.Cut(label, "p")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// audioTier reads "AUDIO_QUALITY_MEDIUM" or "medium".
func audioTier(q string) int {
	q = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(q)), "AUDIO_QUALITY_")
	return audioTiers[q]
}
