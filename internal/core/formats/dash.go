package formats

import (
	"cmp"
	"encoding/xml"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// DASH profile and schema identifiers.
const (
	dashNamespace     = "urn:mpeg:dash:schema:mpd:2011"
	dashProfile       = "urn:mpeg:dash:profile:isoff-on-demand:2011"
	dashRoleScheme    = "urn:mpeg:dash:role:2011"
	dashChannelScheme = "urn:mpeg:dash:23003:3:audio_channel_configuration:2011"
	dashMinBufferTime = "PT1.500S"
	dashType          = "static"
)

// URLTransformer returns the locator to publish for a format. It is the hook
// for resolving or signing URLs; an error excludes the whole manifest.
type URLTransformer func(domain.Format) (string, error)

// DASHOptions controls manifest emission.
type DASHOptions struct {
	// TransformURL rewrites each format URL. Nil publishes Format.URL as is.
	TransformURL URLTransformer

	// Filter drops formats from the manifest when it returns false.
	Filter func(domain.Format) bool
}

type mpd struct {
	XMLName                   xml.Name `xml:"MPD"`
	Namespace                 string   `xml:"xmlns,attr"`
	MinBufferTime             string   `xml:"minBufferTime,attr"`
	Profiles                  string   `xml:"profiles,attr"`
	Type                      string   `xml:"type,attr"`
	MediaPresentationDuration string   `xml:"mediaPresentationDuration,attr"`
	Period                    period   `xml:"Period"`
}

type period struct {
	AdaptationSets []adaptationSet `xml:"AdaptationSet"`
}

type adaptationSet struct {
	ID                  int              `xml:"id,attr"`
	MimeType            string           `xml:"mimeType,attr"`
	SubsegmentAlignment bool             `xml:"subsegmentAlignment,attr"`
	Lang                string           `xml:"lang,attr,omitempty"`
	Label               string           `xml:"label,attr,omitempty"`
	Role                *descriptor      `xml:"Role,omitempty"`
	Representations     []representation `xml:"Representation"`
}

type descriptor struct {
	SchemeIDURI string `xml:"schemeIdUri,attr"`
	Value       string `xml:"value,attr"`
}

type representation struct {
	ID                string      `xml:"id,attr"`
	Codecs            string      `xml:"codecs,attr"`
	Bandwidth         int64       `xml:"bandwidth,attr"`
	Width             int         `xml:"width,attr,omitempty"`
	Height            int         `xml:"height,attr,omitempty"`
	FrameRate         int         `xml:"frameRate,attr,omitempty"`
	AudioSamplingRate int         `xml:"audioSamplingRate,attr,omitempty"`
	MaxPlayoutRate    string      `xml:"maxPlayoutRate,attr,omitempty"`
	StartWithSAP      string      `xml:"startWithSAP,attr,omitempty"`
	ChannelConfig     *descriptor `xml:"AudioChannelConfiguration,omitempty"`
	BaseURL           string      `xml:"BaseURL"`
	SegmentBase       segmentBase `xml:"SegmentBase"`
}

type segmentBase struct {
	IndexRange     string         `xml:"indexRange,attr"`
	Initialization initialization `xml:"Initialization"`
}

type initialization struct {
	Range string `xml:"range,attr"`
}

// EmitDASH renders an on-demand DASH manifest for the adaptive formats.
//
// Formats without both an init and an index range cannot be described by a
// SegmentBase and are skipped, as are muxed formats. Audio adaptation sets come
// first; sets are keyed by mime type, audio track and DRC. Representations are
// ordered by bandwidth, then itag, so the output is byte-for-byte stable.
func EmitDASH(formats []domain.Format, opts DASHOptions) (string, error) {
	type setKey struct {
		audio bool
		mime  string
		track string
		drc   bool
	}
	groups := make(map[setKey][]domain.Format)
	var durationMs int64
	for _, f := range formats {
		if f.Kind() == domain.KindCombined || f.InitRange == nil || f.IndexRange == nil {
			continue
		}
		if opts.Filter != nil && !opts.Filter(f) {
			continue
		}
		k := setKey{audio: f.Kind() == domain.KindAudio, mime: baseMime(f.MimeType), track: f.Language(), drc: f.IsDRC}
		groups[k] = append(groups[k], f)
		durationMs = max(durationMs, f.ApproxDurationMs)
	}
	if len(groups) == 0 {
		return "", fmt.Errorf("%w: no adaptive formats with segment indexes", domain.ErrNoMatchingFormat)
	}

	keys := make([]setKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b setKey) int {
		if a.audio != b.audio {
			if a.audio {
				return -1
			}
			return 1
		}
		return cmp.Or(
			cmp.Compare(a.mime, b.mime),
			cmp.Compare(a.track, b.track),
			compareBool(a.drc, b.drc),
		)
	})

	doc := mpd{
		Namespace:                 dashNamespace,
		MinBufferTime:             dashMinBufferTime,
		Profiles:                  dashProfile,
		Type:                      dashType,
		MediaPresentationDuration: isoDuration(durationMs),
	}
	for id, k := range keys {
		set, err := adaptation(id, k.mime, groups[k], opts.TransformURL)
		if err != nil {
			return "", err
		}
		doc.Period.AdaptationSets = append(doc.Period.AdaptationSets, set)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	log.Debug("manifest: %d adaptation sets, duration %s", len(keys), doc.MediaPresentationDuration)
	return xml.Header + string(out) + "\n", nil
}

func adaptation(id int, mimeType string, formats []domain.Format, transform URLTransformer) (adaptationSet, error) {
	slices.SortFunc(formats, func(a, b domain.Format) int {
		return cmp.Or(cmp.Compare(a.Bitrate, b.Bitrate), cmp.Compare(a.Itag, b.Itag))
	})
	set := adaptationSet{ID: id, MimeType: mimeType, SubsegmentAlignment: true}
	if track := formats[0].AudioTrack; track != nil {
		set.Lang, _, _ = strings.Cut(track.ID, ".")
		set.Label = track.DisplayName
		role := "alternate"
		if track.IsDefault {
			role = "main"
		}
		set.Role = &descriptor{SchemeIDURI: dashRoleScheme, Value: role}
	}

	for _, f := range formats {
		url := f.URL
		if transform != nil {
			var err error
			if url, err = transform(f); err != nil {
				return adaptationSet{}, fmt.Errorf("itag %d: %w", f.Itag, err)
			}
		}
		if url == "" {
			return adaptationSet{}, fmt.Errorf("itag %d: %w", f.Itag, domain.ErrCipherRequired)
		}
		rep := representation{
			ID:        strconv.Itoa(f.Itag),
			Codecs:    strings.Join(f.Codecs, ","),
			Bandwidth: f.Bitrate,
			BaseURL:   url,
			SegmentBase: segmentBase{
				IndexRange:     f.IndexRange.String(),
				Initialization: initialization{Range: f.InitRange.String()},
			},
		}
		if f.HasVideo {
			rep.Width = f.Width
			rep.Height = f.Height
			rep.FrameRate = f.FPS
			rep.MaxPlayoutRate = "1"
			rep.StartWithSAP = "1"
		} else {
			rep.AudioSamplingRate = f.AudioSampleRate
			channels := f.AudioChannels
			if channels == 0 {
				channels = 2
			}
			rep.ChannelConfig = &descriptor{SchemeIDURI: dashChannelScheme, Value: strconv.Itoa(channels)}
		}
		set.Representations = append(set.Representations, rep)
	}
	return set, nil
}

func baseMime(s string) string {
	media, _, _ := strings.Cut(s, ";")
	return strings.TrimSpace(media)
}

// isoDuration renders milliseconds as an ISO 8601 duration, e.g. PT212.091S.
func isoDuration(ms int64) string {
	return fmt.Sprintf("PT%d.%03dS", ms/1000, ms%1000)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
