package ports

import (
	"context"

	"courier-route-service/internal/domain"
)

// Port: a boundary for loading the transit network from a data source.
type NetworkRepository interface {
	// Load the full network; the result is immutable and shared read-only.
	LoadNetwork(ctx context.Context) (*domain.Network, error)
}
