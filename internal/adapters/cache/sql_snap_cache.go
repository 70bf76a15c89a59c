package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"courier-route-service/internal/domain"
)

// SQL-backed cache of destination -> nearest-node bindings. Snapping scans
// the whole node set per destination, so bindings computed once survive a
// destination reseed. Works under both the sqlite and pgx drivers.
type SQLSnapCache struct {
	DB *sql.DB
}

func NewSQLSnapCache(db *sql.DB) *SQLSnapCache {
	return &SQLSnapCache{DB: db}
}

// Fetch a cached node binding for a destination.
func (s *SQLSnapCache) Get(ctx context.Context, destinationID string) (domain.NodeID, bool, error) {
	if s.DB == nil {
		return "", false, errors.New("snap cache: db is nil")
	}
	if destinationID == "" {
		return "", false, errors.New("snap cache: destination id must not be empty")
	}

	var nodeID string
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT node_id FROM snap_cache WHERE destination_id = $1;`,
		destinationID,
	).Scan(&nodeID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("snap cache: get %q: %w", destinationID, err)
	}
	return domain.NodeID(nodeID), true, nil
}

// Store a node binding for a destination.
func (s *SQLSnapCache) Put(ctx context.Context, destinationID string, nodeID domain.NodeID) error {
	if s.DB == nil {
		return errors.New("snap cache: db is nil")
	}
	if destinationID == "" {
		return errors.New("snap cache: destination id must not be empty")
	}

	query := `
	INSERT INTO snap_cache (destination_id, node_id)
	VALUES ($1, $2)
	ON CONFLICT (destination_id)
	DO UPDATE SET node_id = EXCLUDED.node_id;
	`
	if _, err := s.DB.ExecContext(ctx, query, destinationID, string(nodeID)); err != nil {
		return fmt.Errorf("snap cache: put %q: %w", destinationID, err)
	}
	return nil
}
