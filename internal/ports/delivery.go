package ports

import (
	"context"

	"cliprelay/internal/domain"
)

// Deliverer sends a classified entry to the remote endpoint and reports
// how the attempt went. It never performs retries: a failed attempt is
// only re-triggered by new clipboard content.
type Deliverer interface {
	Deliver(ctx context.Context, entry domain.ClassifiedEntry) domain.Outcome
}
