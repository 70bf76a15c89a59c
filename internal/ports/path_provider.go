package ports

import (
	"context"

	"courier-route-service/internal/domain"
)

// Shortest cost and inclusive node path from a source to one target.
type PathResult struct {
	Cost float64
	Path []domain.NodeID
}

// Contract for single-source shortest-path computation over the transit
// network. Each invocation returns a transient distance table owned by the
// caller; targets unreachable from source are simply absent from it.
// Implementations allocate per-call working state and are safe for
// concurrent use.
type PathProvider interface {
	// Return shortest cost and path from source to every reachable node.
	ShortestPathsFrom(ctx context.Context, source domain.NodeID) (map[domain.NodeID]PathResult, error)
}
