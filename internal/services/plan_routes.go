package services

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/metrics"
	"courier-route-service/internal/platform/obs"
	"courier-route-service/internal/ports"
)

type PlanCourierRoutesRequest struct {
	Depot           domain.Node
	CourierCount    int
	ClusterDeadline time.Duration // zero means no per-cluster deadline
}

// ClusterResult is the independent outcome for one courier's cluster:
// either an assembled route or that cluster's failure. One cluster failing
// never aborts its siblings.
type ClusterResult struct {
	Courier        int
	DestinationIDs []string
	Route          *domain.CourierRoute
	Err            error
}

// Plan is the terminal artifact of a planning run.
type Plan struct {
	ID           string
	DepotNodeID  domain.NodeID
	CourierCount int
	CreatedAt    time.Time
	Results      []ClusterResult
}

// Failed reports how many clusters ended in error.
func (p *Plan) Failed() int {
	n := 0
	for _, r := range p.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// PlanCourierRoutes runs the full construction pipeline: load destinations,
// bind any without a node, partition into balanced clusters, then sequence
// and assemble each cluster's route.
//
// Cluster sub-problems are independent once the partition exists (they share
// only the read-only network), so they run on a bounded worker pool, one task
// per cluster. Results keep cluster order regardless of completion order, so
// output is deterministic for a fixed input.
func PlanCourierRoutes(
	ctx context.Context,
	req PlanCourierRoutesRequest,
	repo ports.DestinationRepository,
	binder ports.NodeBinder,
	provider ports.PathProvider,
) (plan *Plan, err error) {
	defer obs.Time(ctx, "plan_courier_routes")(&err)

	dests, err := repo.ListDestinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan courier routes: list destinations: %w", err)
	}

	for i, d := range dests {
		if d.NodeID != "" {
			continue
		}
		if binder == nil {
			return nil, fmt.Errorf("plan courier routes: destination %q has no node binding", d.ID)
		}
		id, err := binder.BindNearest(d)
		if err != nil {
			return nil, fmt.Errorf("plan courier routes: bind destination %q: %w", d.ID, err)
		}
		dests[i].NodeID = id
	}

	clusters, err := PartitionDestinations(req.Depot.Coord, dests, req.CourierCount)
	if err != nil {
		return nil, fmt.Errorf("plan courier routes: %w", err)
	}

	workers := req.CourierCount
	if max := runtime.GOMAXPROCS(0); workers > max {
		workers = max
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("plan courier routes: create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]ClusterResult, len(clusters))
	var wg sync.WaitGroup
	for i := range clusters {
		c := clusters[i]
		res := &results[i]
		res.Courier = c.Index
		res.DestinationIDs = c.DestinationIDs()

		wg.Add(1)
		task := func() {
			defer wg.Done()
			res.Route, res.Err = buildClusterRoute(ctx, c, req.Depot.ID, provider, req.ClusterDeadline)
			if res.Err != nil {
				metrics.ClusterFailures.Inc()
			}
		}
		if perr := pool.Submit(task); perr != nil {
			wg.Done()
			res.Err = fmt.Errorf("cluster %d: submit to pool: %w", c.Index, perr)
		}
	}
	wg.Wait()

	return &Plan{
		ID:           uuid.NewString(),
		DepotNodeID:  req.Depot.ID,
		CourierCount: req.CourierCount,
		CreatedAt:    time.Now().UTC(),
		Results:      results,
	}, nil
}

func buildClusterRoute(
	ctx context.Context,
	cluster domain.Cluster,
	depot domain.NodeID,
	provider ports.PathProvider,
	deadline time.Duration,
) (*domain.CourierRoute, error) {
	if deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	visits, legs, err := SequenceCluster(ctx, cluster, depot, provider)
	if err != nil {
		return nil, err
	}
	route, err := AssembleRoute(cluster.Index, visits, legs, depot)
	if err != nil {
		return nil, fmt.Errorf("assemble cluster %d: %w", cluster.Index, err)
	}
	return &route, nil
}
