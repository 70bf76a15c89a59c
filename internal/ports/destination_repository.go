package ports

import (
	"context"

	"courier-route-service/internal/domain"
)

// Port: a boundary for retrieving Destination entities from a data source.
type DestinationRepository interface {
	// Retrieve all destinations available for routing.
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
}
