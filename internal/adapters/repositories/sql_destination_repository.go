package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"courier-route-service/internal/domain"
)

// SQL-backed implementation of the DestinationRepository port. Works under
// both the sqlite and pgx drivers.
type SQLDestinationRepository struct{ DB *sql.DB }

func NewSQLDestinationRepository(db *sql.DB) *SQLDestinationRepository {
	return &SQLDestinationRepository{DB: db}
}

// Return all destinations stored in the database, ordered by identifier so
// the planning pipeline sees a fixed input ordering.
func (s *SQLDestinationRepository) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	if s.DB == nil {
		return nil, errors.New("sql destination repository: DB is nil")
	}

	query := `
	SELECT
		destination_id,
		lat,
		lng,
		node_id
	FROM destinations
	ORDER BY destination_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list destinations: query destinations table: %w", err)
	}
	defer rows.Close()

	dests := make([]domain.Destination, 0, 64)
	for rows.Next() {
		var id, nodeID string
		var lat, lng float64
		if err := rows.Scan(&id, &lat, &lng, &nodeID); err != nil {
			return nil, fmt.Errorf("list destinations: scan row: %w", err)
		}
		dests = append(dests, domain.Destination{
			ID:     id,
			Coord:  domain.Coordinates{Lat: lat, Lng: lng},
			NodeID: domain.NodeID(nodeID),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list destinations: row iteration: %w", err)
	}

	return dests, nil
}

// BindNode persists a destination's node binding (written after snapping).
func (s *SQLDestinationRepository) BindNode(ctx context.Context, destinationID string, nodeID domain.NodeID) error {
	if s.DB == nil {
		return errors.New("sql destination repository: DB is nil")
	}

	res, err := s.DB.ExecContext(
		ctx,
		`UPDATE destinations SET node_id = $1 WHERE destination_id = $2;`,
		string(nodeID), destinationID,
	)
	if err != nil {
		return fmt.Errorf("bind node: update destination %q: %w", destinationID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("bind node: destination %q not found", destinationID)
	}
	return nil
}
