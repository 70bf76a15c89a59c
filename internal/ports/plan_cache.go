package ports

import (
	"context"
	"time"
)

// Optional cache of serialized plan responses keyed by request digest.
// Only terminal route artifacts are cached; shortest-path distance tables
// stay task-scoped and are never stored here.
type PlanCache interface {
	// Return the cached payload for key, reporting whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Store payload under key with a time-to-live.
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
