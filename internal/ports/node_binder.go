package ports

import "courier-route-service/internal/domain"

// Contract for binding a destination to its nearest network node.
type NodeBinder interface {
	// Return the nearest node for the destination's coordinates.
	BindNearest(dest domain.Destination) (domain.NodeID, error)
}
