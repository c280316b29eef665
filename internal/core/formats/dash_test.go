package formats

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

func adaptive() []domain.Format {
	v1080 := video(137, "avc1.640028", 4443242, 1080)
	v1080.Width, v1080.FPS, v1080.URL = 1920, 30, "https://media/137"
	v1080.InitRange = &domain.ByteRange{Start: 0, End: 740}
	v1080.IndexRange = &domain.ByteRange{Start: 741, End: 1248}
	v1080.ApproxDurationMs = 212040

	v720 := video(136, "avc1.4d401f", 2326000, 720)
	v720.Width, v720.FPS, v720.URL = 1280, 30, "https://media/136"
	v720.InitRange = &domain.ByteRange{Start: 0, End: 739}
	v720.IndexRange = &domain.ByteRange{Start: 740, End: 1235}
	v720.ApproxDurationMs = 212040

	a140 := audio(140, "mp4", "mp4a.40.2", 130268, "AUDIO_QUALITY_MEDIUM")
	a140.URL, a140.AudioSampleRate, a140.AudioChannels = "https://media/140", 44100, 2
	a140.InitRange = &domain.ByteRange{Start: 0, End: 631}
	a140.IndexRange = &domain.ByteRange{Start: 632, End: 923}
	a140.ApproxDurationMs = 212091

	muxed := video(18, "avc1.42001E", 503634, 360)
	muxed.Codecs = append(muxed.Codecs, "mp4a.40.2")
	muxed.HasAudio = true
	muxed.URL = "https://media/18"

	noIndex := video(22, "avc1.64001F", 1200000, 720)
	noIndex.URL = "https://media/22"

	return []domain.Format{v1080, muxed, v720, noIndex, a140}
}

func TestEmitDASH(t *testing.T) {
	out, err := EmitDASH(adaptive(), DASHOptions{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, xml.Header+"<MPD "))
	assert.Contains(t, out, `xmlns="urn:mpeg:dash:schema:mpd:2011"`)
	assert.Contains(t, out, `profiles="urn:mpeg:dash:profile:isoff-on-demand:2011"`)
	assert.Contains(t, out, `mediaPresentationDuration="PT212.091S"`)
	assert.Contains(t, out, `<Representation id="140" codecs="mp4a.40.2" bandwidth="130268" audioSamplingRate="44100">`)
	assert.Contains(t, out, `<SegmentBase indexRange="632-923">`)
	assert.Contains(t, out, `<Initialization range="0-631"></Initialization>`)
	assert.Contains(t, out, `<BaseURL>https://media/137</BaseURL>`)
	assert.NotContains(t, out, "https://media/18")
	assert.NotContains(t, out, "https://media/22")

	var doc mpd
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	sets := doc.Period.AdaptationSets
	require.Len(t, sets, 2)

	assert.Equal(t, "audio/mp4", sets[0].MimeType)
	assert.Equal(t, 0, sets[0].ID)
	require.Len(t, sets[0].Representations, 1)
	require.NotNil(t, sets[0].Representations[0].ChannelConfig)
	assert.Equal(t, "2", sets[0].Representations[0].ChannelConfig.Value)

	assert.Equal(t, "video/mp4", sets[1].MimeType)
	require.Len(t, sets[1].Representations, 2)
	assert.Equal(t, "136", sets[1].Representations[0].ID, "ordered by bandwidth")
	assert.Equal(t, "137", sets[1].Representations[1].ID)
	assert.Equal(t, 1920, sets[1].Representations[1].Width)
	assert.Equal(t, "1", sets[1].Representations[1].StartWithSAP)
}

func TestEmitDASH_Deterministic(t *testing.T) {
	formats := adaptive()
	first, err := EmitDASH(formats, DASHOptions{})
	require.NoError(t, err)

	reversed := make([]domain.Format, len(formats))
	for i, f := range formats {
		reversed[len(formats)-1-i] = f
	}
	second, err := EmitDASH(reversed, DASHOptions{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEmitDASH_AudioTracks(t *testing.T) {
	en := audio(251, "webm", "opus", 130000, "AUDIO_QUALITY_MEDIUM")
	en.AudioTrack = &domain.AudioTrack{ID: "en.4", DisplayName: "English original", IsDefault: true}
	de := audio(251, "webm", "opus", 128000, "AUDIO_QUALITY_MEDIUM")
	de.AudioTrack = &domain.AudioTrack{ID: "de.3", DisplayName: "German"}
	for _, f := range []*domain.Format{&en, &de} {
		f.URL = "https://media/" + f.AudioTrack.ID
		f.InitRange = &domain.ByteRange{Start: 0, End: 258}
		f.IndexRange = &domain.ByteRange{Start: 259, End: 600}
	}

	out, err := EmitDASH([]domain.Format{en, de}, DASHOptions{})
	require.NoError(t, err)

	var doc mpd
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	sets := doc.Period.AdaptationSets
	require.Len(t, sets, 2)
	assert.Equal(t, "de", sets[0].Lang)
	assert.Equal(t, "alternate", sets[0].Role.Value)
	assert.Equal(t, "en", sets[1].Lang)
	assert.Equal(t, "English original", sets[1].Label)
	assert.Equal(t, "main", sets[1].Role.Value)
}

func TestEmitDASH_TransformAndFilter(t *testing.T) {
	out, err := EmitDASH(adaptive(), DASHOptions{
		TransformURL: func(f domain.Format) (string, error) {
			return f.URL + "?cpn=abc", nil
		},
		Filter: func(f domain.Format) bool { return f.Itag != 136 },
	})
	require.NoError(t, err)
	assert.Contains(t, out, "<BaseURL>https://media/140?cpn=abc</BaseURL>")
	assert.NotContains(t, out, `id="136"`)
}

func TestEmitDASH_Errors(t *testing.T) {
	t.Run("nothing to describe", func(t *testing.T) {
		_, err := EmitDASH([]domain.Format{adaptive()[1]}, DASHOptions{})
		assert.ErrorIs(t, err, domain.ErrNoMatchingFormat)
	})

	t.Run("ciphered url", func(t *testing.T) {
		formats := adaptive()
		formats[4].URL = ""
		formats[4].SignatureCipher = "s=abc"
		_, err := EmitDASH(formats, DASHOptions{})
		assert.ErrorIs(t, err, domain.ErrCipherRequired)
		assert.Contains(t, err.Error(), "itag 140")
	})

	t.Run("transform fails", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := EmitDASH(adaptive(), DASHOptions{
			TransformURL: func(domain.Format) (string, error) { return "", boom },
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestISODuration(t *testing.T) {
	assert.Equal(t, "PT0.000S", isoDuration(0))
	assert.Equal(t, "PT212.091S", isoDuration(212091))
	assert.Equal(t, "PT3.005S", isoDuration(3005))
}
