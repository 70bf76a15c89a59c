package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"courier-route-service/internal/adapters/cache"
	"courier-route-service/internal/adapters/repositories"
	"courier-route-service/internal/adapters/transit"
	"courier-route-service/internal/api"
	"courier-route-service/internal/config"
	"courier-route-service/internal/metrics"
	"courier-route-service/internal/platform/db"
	"courier-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres storage, Dijkstra engine,
// optional Redis plan cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	networkSeedPath := config.Get("SEED_NETWORK_PATH", "data/seeds/network.json")
	destSeedPath := config.Get("SEED_DESTINATIONS_PATH", "data/seeds/destinations.json")
	depotNodeID := config.Get("DEPOT_NODE_ID", "airport")
	port := config.Get("PORT", "8080")

	couriers, err := strconv.Atoi(config.Get("COURIER_COUNT", "4"))
	if err != nil || couriers < 1 {
		log.Fatalf("invalid COURIER_COUNT: %v", config.Get("COURIER_COUNT", "4"))
	}

	database, err := openDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(database, networkSeedPath, destSeedPath); err != nil {
		log.Fatal(err)
	}

	// The network is loaded once and shared read-only by every cluster task.
	network, err := repositories.NewSQLNetworkRepository(database).LoadNetwork(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Transit network loaded nodes=%d", network.Len())

	engine := transit.NewEngine(network)
	snapper := transit.NewSnapper(network)
	repo := repositories.NewSQLDestinationRepository(database)

	var planCache ports.PlanCache
	if url := os.Getenv("REDIS_URL"); strings.TrimSpace(url) != "" {
		rc, err := cache.NewRedisPlanCacheFromURL(url)
		if err != nil {
			log.Fatal(err)
		}
		planCache = rc
		log.Println("Plan cache enabled (redis)")
	}

	rps, err := strconv.ParseFloat(config.Get("RATE_LIMIT_RPS", "10"), 64)
	if err != nil || rps <= 0 {
		log.Fatalf("invalid RATE_LIMIT_RPS: %v", config.Get("RATE_LIMIT_RPS", "10"))
	}
	burst, err := strconv.Atoi(config.Get("RATE_LIMIT_BURST", "20"))
	if err != nil || burst < 1 {
		log.Fatalf("invalid RATE_LIMIT_BURST: %v", config.Get("RATE_LIMIT_BURST", "20"))
	}

	metrics.RegisterDefault()

	router := api.NewRouter(api.RouterConfig{
		Repo:            repo,
		Provider:        engine,
		Binder:          snapper,
		Network:         network,
		Cache:           planCache,
		DefaultDepot:    depotNodeID,
		DefaultCouriers: couriers,
		RateLimitRPS:    rps,
		RateLimitBurst:  burst,
	})

	// Timeouts are tuned for plan construction over large networks.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openDatabase picks postgres when DATABASE_URL is set and falls back to a
// local SQLite file otherwise.
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

func initAndSeed(database *sql.DB, networkSeedPath, destSeedPath string) error {
	if err := repositories.InitSchema(database); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedNetworkFromJSON(database, networkSeedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedDestinationsFromJSON(database, destSeedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
