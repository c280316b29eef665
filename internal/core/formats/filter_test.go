package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

func TestCompileFilter(t *testing.T) {
	hd := video(137, "avc1.640028", 4500000, 1080)
	sd := video(135, "avc1.4d401f", 1200000, 480)
	webm := video(248, "vp9", 2600000, 1080)
	webm.Container = "webm"
	opus := audio(251, "webm", "opus", 130000, "AUDIO_QUALITY_MEDIUM")
	opus.AudioTrack = &domain.AudioTrack{ID: "en.4"}

	tests := []struct {
		name  string
		src   string
		match []int
	}{
		{"height", "height >= 720", []int{137, 248}},
		{"container and tier", `container == "mp4" && tier >= 720`, []int{137}},
		{"codec prefix", `codec startsWith "vp9"`, []int{248}},
		{"kind", `kind == "audio"`, []int{251}},
		{"language", `language startsWith "en"`, []int{251}},
		{"codecs list", `"opus" in codecs`, []int{251}},
		{"bitrate", "bitrate < 2000000 && has_video", []int{135}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := CompileFilter(tt.src)
			require.NoError(t, err)

			var got []int
			for _, f := range []domain.Format{hd, sd, webm, opus} {
				if fn(f) {
					got = append(got, f.Itag)
				}
			}
			assert.Equal(t, tt.match, got)
		})
	}
}

func TestCompileFilter_Invalid(t *testing.T) {
	for _, src := range []string{"", "   ", "height >=", "height + 1", "unknown_field == 1"} {
		t.Run(src, func(t *testing.T) {
			_, err := CompileFilter(src)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestWithFilter(t *testing.T) {
	opts, err := WithFilter(domain.FormatOptions{Kind: domain.KindVideo}, "height <= 480")
	require.NoError(t, err)
	assert.Equal(t, "height <= 480", opts.FilterSource)
	assert.Contains(t, opts.String(), "filter=height <= 480")

	got, err := Choose([]domain.Format{
		video(137, "avc1", 4500000, 1080),
		video(135, "avc1", 1200000, 480),
	}, opts)
	require.NoError(t, err)
	assert.Equal(t, 135, got.Itag)
}
