package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"courier-route-service/internal/adapters/cache"
	"courier-route-service/internal/adapters/repositories"
	"courier-route-service/internal/adapters/transit"
	"courier-route-service/internal/config"
	"courier-route-service/internal/platform/db"
)

// dbtool initializes the schema, loads seed data, and snaps any destination
// without a node binding to its nearest network node. Run it before first
// server start or after replacing the seed files.
func main() {
	networkPath := flag.String("network", "", "path to network seed JSON (overrides SEED_NETWORK_PATH)")
	destPath := flag.String("destinations", "", "path to destinations seed JSON (overrides SEED_DESTINATIONS_PATH)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	networkSeedPath := *networkPath
	if networkSeedPath == "" {
		networkSeedPath = config.Get("SEED_NETWORK_PATH", "data/seeds/network.json")
	}
	destSeedPath := *destPath
	if destSeedPath == "" {
		destSeedPath = config.Get("SEED_DESTINATIONS_PATH", "data/seeds/destinations.json")
	}

	database, err := openDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := repositories.InitSchema(database); err != nil {
		log.Fatal(err)
	}
	log.Println("Schema initialized")

	if err := repositories.SeedNetworkFromJSON(database, networkSeedPath); err != nil {
		log.Fatal(err)
	}
	log.Printf("Network seeded from %s", networkSeedPath)

	if err := repositories.SeedDestinationsFromJSON(database, destSeedPath); err != nil {
		log.Fatal(err)
	}
	log.Printf("Destinations seeded from %s", destSeedPath)

	if err := snapUnboundDestinations(context.Background(), database); err != nil {
		log.Fatal(err)
	}

	log.Println("Database ready")
}

// snapUnboundDestinations binds every destination without a node to its
// nearest network node, consulting the snap cache before scanning.
func snapUnboundDestinations(ctx context.Context, database *sql.DB) error {
	network, err := repositories.NewSQLNetworkRepository(database).LoadNetwork(ctx)
	if err != nil {
		return fmt.Errorf("snap destinations: %w", err)
	}

	repo := repositories.NewSQLDestinationRepository(database)
	snapper := transit.NewSnapper(network)
	snapCache := cache.NewSQLSnapCache(database)

	dests, err := repo.ListDestinations(ctx)
	if err != nil {
		return fmt.Errorf("snap destinations: %w", err)
	}

	bound := 0
	for _, d := range dests {
		if d.NodeID != "" {
			continue
		}

		nodeID, hit, err := snapCache.Get(ctx, d.ID)
		if err != nil {
			return fmt.Errorf("snap destinations: %w", err)
		}
		if !hit || !network.Has(nodeID) {
			nodeID, err = snapper.BindNearest(d)
			if err != nil {
				return fmt.Errorf("snap destinations: destination %q: %w", d.ID, err)
			}
			if err := snapCache.Put(ctx, d.ID, nodeID); err != nil {
				return fmt.Errorf("snap destinations: %w", err)
			}
		}

		if err := repo.BindNode(ctx, d.ID, nodeID); err != nil {
			return fmt.Errorf("snap destinations: %w", err)
		}
		bound++
	}

	log.Printf("Destinations snapped total=%d bound=%d", len(dests), bound)
	return nil
}

func openDatabase() (*sql.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); strings.TrimSpace(dsn) != "" {
		return db.Open(dsn)
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return database, nil
}
