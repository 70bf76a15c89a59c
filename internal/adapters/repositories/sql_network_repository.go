package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"courier-route-service/internal/domain"
)

// SQL-backed implementation of the NetworkRepository port.
type SQLNetworkRepository struct{ DB *sql.DB }

func NewSQLNetworkRepository(db *sql.DB) *SQLNetworkRepository {
	return &SQLNetworkRepository{DB: db}
}

// Load the full transit network. Graph validation (negative costs, dangling
// edge endpoints) happens in domain.NewNetwork, so malformed stored data
// surfaces as InvalidGraphError rather than a degenerate graph.
func (s *SQLNetworkRepository) LoadNetwork(ctx context.Context) (*domain.Network, error) {
	if s.DB == nil {
		return nil, errors.New("sql network repository: DB is nil")
	}

	nodeRows, err := s.DB.QueryContext(ctx, `SELECT node_id, lat, lng FROM nodes ORDER BY node_id;`)
	if err != nil {
		return nil, fmt.Errorf("load network: query nodes table: %w", err)
	}
	defer nodeRows.Close()

	nodes := make([]domain.Node, 0, 256)
	for nodeRows.Next() {
		var id string
		var lat, lng float64
		if err := nodeRows.Scan(&id, &lat, &lng); err != nil {
			return nil, fmt.Errorf("load network: scan node row: %w", err)
		}
		nodes = append(nodes, domain.Node{
			ID:    domain.NodeID(id),
			Coord: domain.Coordinates{Lat: lat, Lng: lng},
		})
	}
	if err := nodeRows.Err(); err != nil {
		return nil, fmt.Errorf("load network: node row iteration: %w", err)
	}

	edgeRows, err := s.DB.QueryContext(ctx, `SELECT from_node, to_node, cost FROM edges ORDER BY from_node, to_node;`)
	if err != nil {
		return nil, fmt.Errorf("load network: query edges table: %w", err)
	}
	defer edgeRows.Close()

	edges := make([]domain.Edge, 0, 512)
	for edgeRows.Next() {
		var from, to string
		var cost float64
		if err := edgeRows.Scan(&from, &to, &cost); err != nil {
			return nil, fmt.Errorf("load network: scan edge row: %w", err)
		}
		edges = append(edges, domain.Edge{
			From: domain.NodeID(from),
			To:   domain.NodeID(to),
			Cost: cost,
		})
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("load network: edge row iteration: %w", err)
	}

	net, err := domain.NewNetwork(nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	return net, nil
}
