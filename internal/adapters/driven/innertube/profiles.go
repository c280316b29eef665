package innertube

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// Profile is the client context sent with a request.
type Profile struct {
	// Name is the profile name callers select, e.g. domain.ClientWeb.
	Name string

	// ClientName is the name sent in context.client.
	ClientName string

	// ClientID is the numeric id sent in X-Youtube-Client-Name.
	ClientID int

	// Version is the client version string.
	Version string

	// UserAgent is sent as the User-Agent header.
	UserAgent string

	// Origin is the Origin header, empty for app clients.
	Origin string

	// Extra fields merged into context.client.
	Extra map[string]any
}

const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

var profiles = map[string]Profile{
	domain.ClientWeb: {
		Name:       domain.ClientWeb,
		ClientName: "WEB",
		ClientID:   1,
		Version:    "2.20240726.00.00",
		UserAgent:  browserUA,
		Origin:     "https://www.youtube.com",
	},
	domain.ClientMusic: {
		Name:       domain.ClientMusic,
		ClientName: "WEB_REMIX",
		ClientID:   67,
		Version:    "1.20240724.00.00",
		UserAgent:  browserUA,
		Origin:     "https://music.youtube.com",
	},
	domain.ClientKids: {
		Name:       domain.ClientKids,
		ClientName: "WEB_KIDS",
		ClientID:   76,
		Version:    "2.20240724.00.00",
		UserAgent:  browserUA,
		Origin:     "https://www.youtubekids.com",
	},
	domain.ClientAndroid: {
		Name:       domain.ClientAndroid,
		ClientName: "ANDROID",
		ClientID:   3,
		Version:    "19.29.37",
		UserAgent:  "com.google.android.youtube/19.29.37 (Linux; U; Android 11) gzip",
		Extra: map[string]any{
			"androidSdkVersion": 30,
			"osName":            "Android",
			"osVersion":         "11",
		},
	},
}

// LookupProfile returns the profile registered under name.
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: unknown client profile %q", domain.ErrInvalidInput, name)
	}
	return p, nil
}

// ProfileNames returns the registered profile names in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// context renders the context.client object for the profile.
func (p Profile) context(hl, gl, version string) map[string]any {
	if version == "" {
		version = p.Version
	}
	client := map[string]any{
		"clientName":    p.ClientName,
		"clientVersion": version,
		"hl":            hl,
		"gl":            gl,
	}
	for k, v := range p.Extra {
		client[k] = v
	}
	return map[string]any{"client": client}
}
