package driven

import (
	"context"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// Transport performs one remote call and returns the decoded response document.
//
// Implementations distinguish two failure classes: *domain.TransportError for
// network faults, throttling and 5xx responses, which a caller may retry, and
// *domain.ServiceError when the service answered with an error status, which
// is final. Transports may retry transport errors themselves; the core never does.
type Transport interface {
	Fetch(ctx context.Context, req domain.FetchRequest) (map[string]any, error)
}
