package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers processed event IDs so handlers run at most once per event
type IdempotencyStore interface {
	// MarkProcessed returns true if the ID was newly marked, false if it was already there
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	IsProcessed(ctx context.Context, eventID string) (bool, error)
	Close() error
}

// DefaultIdempotencyTTL is how long a processed event ID is remembered
const DefaultIdempotencyTTL = 24 * time.Hour
