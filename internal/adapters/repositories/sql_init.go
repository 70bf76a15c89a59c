package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the database schema. Statements are kept portable between the
// sqlite and postgres drivers; $N placeholders are used throughout this
// package for the same reason.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createNodesQuery := `
	CREATE TABLE IF NOT EXISTS nodes (
		node_id TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL
	);
	`

	createEdgesQuery := `
	CREATE TABLE IF NOT EXISTS edges (
		from_node TEXT NOT NULL,
		to_node TEXT NOT NULL,
		cost DOUBLE PRECISION NOT NULL
	);
	`

	createDestinationsQuery := `
	CREATE TABLE IF NOT EXISTS destinations (
		destination_id TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		node_id TEXT NOT NULL DEFAULT ''
	);
	`

	createSnapCacheQuery := `
	CREATE TABLE IF NOT EXISTS snap_cache (
		destination_id TEXT PRIMARY KEY,
		node_id TEXT NOT NULL
	);
	`

	createEdgeIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_edges_from_node
	ON edges(from_node);
	`

	statements := []string{
		createNodesQuery,
		createEdgesQuery,
		createDestinationsQuery,
		createSnapCacheQuery,
		createEdgeIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type NodeSeed struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type EdgeSeed struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Cost float64 `json:"cost"`
}

type NetworkSeed struct {
	Nodes []NodeSeed `json:"nodes"`
	Edges []EdgeSeed `json:"edges"`
}

type DestinationSeed struct {
	ID     string  `json:"id"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	NodeID string  `json:"node_id"`
}

// Populate the nodes and edges tables from a JSON file. The network tables
// are replaced wholesale: a seed represents the entire transit network, and
// partial merges would leave dangling edges.
func SeedNetworkFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed network: read %q: %w", jsonPath, err)
	}

	var seed NetworkSeed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed network: parse json: %w", err)
	}

	for i, n := range seed.Nodes {
		if strings.TrimSpace(n.ID) == "" {
			return fmt.Errorf("seed network: node at index %d: id cannot be empty", i+1)
		}
	}
	for i, e := range seed.Edges {
		if e.Cost < 0 {
			return fmt.Errorf("seed network: edge at index %d: negative cost %v", i+1, e.Cost)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed network: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM edges;`); err != nil {
		return fmt.Errorf("seed network: clear edges: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM nodes;`); err != nil {
		return fmt.Errorf("seed network: clear nodes: %w", err)
	}

	nodeStmt, err := tx.Prepare(`INSERT INTO nodes (node_id, lat, lng) VALUES ($1, $2, $3);`)
	if err != nil {
		return fmt.Errorf("seed network: prepare node insert: %w", err)
	}
	defer nodeStmt.Close()

	for _, n := range seed.Nodes {
		if _, err := nodeStmt.Exec(n.ID, n.Lat, n.Lng); err != nil {
			return fmt.Errorf("seed network: insert node %q: %w", n.ID, err)
		}
	}

	edgeStmt, err := tx.Prepare(`INSERT INTO edges (from_node, to_node, cost) VALUES ($1, $2, $3);`)
	if err != nil {
		return fmt.Errorf("seed network: prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range seed.Edges {
		if _, err := edgeStmt.Exec(e.From, e.To, e.Cost); err != nil {
			return fmt.Errorf("seed network: insert edge %q -> %q: %w", e.From, e.To, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed network: commit tx: %w", err)
	}

	return nil
}

// Populate the destinations table from a JSON file. Existing rows with the
// same identifier are replaced; node bindings present in the seed are kept.
func SeedDestinationsFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed destinations: read %q: %w", jsonPath, err)
	}

	var data []DestinationSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed destinations: parse json: %w", err)
	}

	rows := make([]DestinationSeed, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("seed destinations: item at index %d: id cannot be empty", i+1)
		}
		rows = append(rows, DestinationSeed{ID: id, Lat: item.Lat, Lng: item.Lng, NodeID: strings.TrimSpace(item.NodeID)})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed destinations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO destinations (destination_id, lat, lng, node_id)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (destination_id)
	DO UPDATE SET lat = EXCLUDED.lat, lng = EXCLUDED.lng, node_id = EXCLUDED.node_id;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed destinations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range rows {
		if _, err := stmt.Exec(d.ID, d.Lat, d.Lng, d.NodeID); err != nil {
			return fmt.Errorf("seed destinations: insert destination_id=%q: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed destinations: commit tx: %w", err)
	}

	return nil
}
