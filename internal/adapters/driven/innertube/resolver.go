package innertube

import (
	"context"
	"fmt"
	"net/url"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.URLResolver = PlainResolver{}

// PlainResolver resolves formats that carry a plain URL. Ciphered formats
// return domain.ErrCipherRequired.
type PlainResolver struct{}

// Resolve returns the format URL with the playback nonce added.
func (PlainResolver) Resolve(_ context.Context, f domain.Format, cpn string) (string, error) {
	if f.URL == "" {
		if f.SignatureCipher != "" {
			return "", fmt.Errorf("itag %d: %w", f.Itag, domain.ErrCipherRequired)
		}
		return "", fmt.Errorf("%w: itag %d has no url", domain.ErrInvalidInput, f.Itag)
	}
	if cpn == "" {
		return f.URL, nil
	}
	u, err := url.Parse(f.URL)
	if err != nil {
		return "", fmt.Errorf("%w: itag %d url: %v", domain.ErrInvalidInput, f.Itag, err)
	}
	q := u.Query()
	q.Set("cpn", cpn)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
