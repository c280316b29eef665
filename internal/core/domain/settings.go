package domain

import "time"

// Config keys read from the config store.
const (
	KeyClientName        = "client.name"
	KeyClientVersion     = "client.version"
	KeyClientHL          = "client.hl"
	KeyClientGL          = "client.gl"
	KeyBaseURL           = "transport.base_url"
	KeyTimeoutSeconds    = "transport.timeout_seconds"
	KeyRequestsPerSecond = "transport.requests_per_second"
	KeyBurst             = "transport.burst"
	KeyFormatQuality     = "formats.quality"
	KeyFormatContainer   = "formats.container"
	KeyFormatCodec       = "formats.codec"
	KeyDataDir           = "storage.data_dir"
)

// ClientSettings is the client context sent with every request.
type ClientSettings struct {
	// Name is the client profile name, e.g. ClientWeb.
	Name string

	// Version is the client version string.
	Version string

	// HL is the interface language.
	HL string

	// GL is the content region.
	GL string
}

// TransportSettings tune the HTTP transport.
type TransportSettings struct {
	// BaseURL is the service origin.
	BaseURL string

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// RequestsPerSecond is the sustained request rate.
	RequestsPerSecond float64

	// Burst is the token bucket size.
	Burst int
}

// FormatDefaults are applied when a caller leaves a format option empty.
type FormatDefaults struct {
	Quality   string
	Container string
	Codec     string
}

// Settings holds all application settings.
type Settings struct {
	Client    ClientSettings
	Transport TransportSettings
	Formats   FormatDefaults

	// DataDir is where the bookmark database lives. Empty means ~/.innergraph/data.
	DataDir string
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Client: ClientSettings{
			Name:    ClientWeb,
			Version: "2.20240726.00.00",
			HL:      "en",
			GL:      "US",
		},
		Transport: TransportSettings{
			BaseURL:           "https://www.youtube.com",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5.0,
			Burst:             10,
		},
		Formats: FormatDefaults{
			Quality: QualityBest,
		},
	}
}

// ApplyDefaults fills empty option fields from the configured defaults.
func (d FormatDefaults) ApplyDefaults(opts FormatOptions) FormatOptions {
	if opts.Quality == "" {
		opts.Quality = d.Quality
	}
	if opts.Container == "" {
		opts.Container = d.Container
	}
	if opts.Codec == "" {
		opts.Codec = d.Codec
	}
	return opts
}
