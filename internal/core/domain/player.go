package domain

// Playability statuses reported by the player endpoint.
const (
	PlayabilityOK            = "OK"
	PlayabilityError         = "ERROR"
	PlayabilityUnplayable    = "UNPLAYABLE"
	PlayabilityLoginRequired = "LOGIN_REQUIRED"
	PlayabilityLiveOffline   = "LIVE_STREAM_OFFLINE"
)

// PlayabilityStatus says whether a resource can be played and why not.
type PlayabilityStatus struct {
	Status          string
	Reason          string
	PlayableInEmbed bool
}

// IsError reports whether the status marks the resource as unavailable.
func (p *PlayabilityStatus) IsError() bool {
	return p != nil && p.Status == PlayabilityError
}

// Thumbnail is one sized preview image.
type Thumbnail struct {
	URL    string
	Width  int
	Height int
}

// VideoDetails is the basic metadata of a playable resource.
type VideoDetails struct {
	ID               string
	Title            string
	Author           string
	ChannelID        string
	LengthSeconds    int64
	ViewCount        int64
	Keywords         []string
	ShortDescription string
	IsLive           bool
	IsPrivate        bool
	Thumbnails       []Thumbnail
}

// StreamingData holds every format variant of one resource.
type StreamingData struct {
	ExpiresInSeconds int64
	Formats          []Format
	AdaptiveFormats  []Format
	DASHManifestURL  string
	HLSManifestURL   string
}

// All returns muxed formats followed by adaptive formats.
func (s *StreamingData) All() []Format {
	if s == nil {
		return nil
	}
	out := make([]Format, 0, len(s.Formats)+len(s.AdaptiveFormats))
	out = append(out, s.Formats...)
	out = append(out, s.AdaptiveFormats...)
	return out
}

// PlaybackTracking carries the stats URLs reported back during playback.
type PlaybackTracking struct {
	VideostatsPlaybackURL  string
	VideostatsWatchtimeURL string
}
