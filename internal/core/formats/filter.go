package formats

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// CompileFilter compiles a boolean expression over format attributes, such as
//
//	height >= 720 && container == "mp4" && !drc
//
// Available names: itag, mime, container, codec, codecs, bitrate, width,
// height, fps, tier, quality, label, audio_quality, kind, language, has_audio,
// has_video, content_length, drc, ciphered.
func CompileFilter(src string) (func(domain.Format) bool, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("%w: empty filter", domain.ErrInvalidInput)
	}
	prg, err := expr.Compile(src, expr.Env(filterEnv(domain.Format{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: compile filter: %v", domain.ErrInvalidInput, err)
	}
	return func(f domain.Format) bool {
		return runFilter(prg, src, f)
	}, nil
}

// WithFilter returns opts with the compiled src as its filter.
func WithFilter(opts domain.FormatOptions, src string) (domain.FormatOptions, error) {
	fn, err := CompileFilter(src)
	if err != nil {
		return opts, err
	}
	opts.Filter = fn
	opts.FilterSource = src
	return opts, nil
}

func runFilter(prg *vm.Program, src string, f domain.Format) bool {
	out, err := expr.Run(prg, filterEnv(f))
	if err != nil {
		log.Debug("filter %q on itag %d: %v", src, f.Itag, err)
		return false
	}
	ok, _ := out.(bool)
	return ok
}

func filterEnv(f domain.Format) map[string]any {
	return map[string]any{
		"itag":           f.Itag,
		"mime":           f.MimeType,
		"container":      f.Container,
		"codec":          f.Codec(),
		"codecs":         f.Codecs,
		"bitrate":        f.Bitrate,
		"width":          f.Width,
		"height":         f.Height,
		"fps":            f.FPS,
		"tier":           Tier(f),
		"quality":        f.Quality,
		"label":          f.QualityLabel,
		"audio_quality":  f.AudioQuality,
		"kind":           string(f.Kind()),
		"language":       f.Language(),
		"has_audio":      f.HasAudio,
		"has_video":      f.HasVideo,
		"content_length": f.ContentLength,
		"drc":            f.IsDRC,
		"ciphered":       f.URL == "" && f.SignatureCipher != "",
	}
}
