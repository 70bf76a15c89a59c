package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courier-route-service/internal/api/handlers"
	"courier-route-service/internal/domain"
	"courier-route-service/internal/metrics"
	"courier-route-service/internal/ports"
)

type RouterConfig struct {
	Repo            ports.DestinationRepository
	Provider        ports.PathProvider
	Binder          ports.NodeBinder
	Network         *domain.Network
	Cache           ports.PlanCache // nil disables plan caching
	DefaultDepot    string
	DefaultCouriers int
	RateLimitRPS    float64
	RateLimitBurst  int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	destHandler := &handlers.DestinationHandler{Repo: cfg.Repo}
	planHandler := &handlers.PlanHandler{
		Repo:            cfg.Repo,
		Provider:        cfg.Provider,
		Binder:          cfg.Binder,
		Network:         cfg.Network,
		Cache:           cfg.Cache,
		DefaultDepot:    cfg.DefaultDepot,
		DefaultCouriers: cfg.DefaultCouriers,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/destinations", destHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(rateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, mux))
}
