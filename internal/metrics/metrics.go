package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// PlansTotal counts plan requests by outcome (ok, partial, failed).
	PlansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plans_total", Help: "Plan requests by outcome."},
		[]string{"outcome"},
	)
	// PlanDuration records end-to-end plan construction time in seconds.
	PlanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "plan_duration_seconds", Help: "Plan construction duration in seconds.", Buckets: prometheus.DefBuckets},
	)
	// ClusterFailures counts per-cluster route construction failures.
	ClusterFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cluster_failures_total", Help: "Cluster route construction failures."},
	)
	// ShortestPathRuns counts single-source shortest-path invocations.
	ShortestPathRuns = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "shortest_path_runs_total", Help: "Single-source shortest-path computations."},
	)
)

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(PlansTotal)
		Registry.MustRegister(PlanDuration)
		Registry.MustRegister(ClusterFailures)
		Registry.MustRegister(ShortestPathRuns)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
