package repositories

import (
	"context"

	"courier-route-service/internal/domain"
)

// In-memory DestinationRepository for tests and local development.
type MemoryDestinationRepository struct {
	dests []domain.Destination
}

func NewMemoryDestinationRepository(dests []domain.Destination) *MemoryDestinationRepository {
	cp := make([]domain.Destination, len(dests))
	copy(cp, dests)
	return &MemoryDestinationRepository{dests: cp}
}

func (m *MemoryDestinationRepository) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	out := make([]domain.Destination, len(m.dests))
	copy(out, m.dests)
	return out, nil
}
