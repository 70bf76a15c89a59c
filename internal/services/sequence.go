package services

import (
	"context"
	"fmt"
	"sort"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/ports"
)

// SequenceCluster determines the visiting order for one courier's cluster
// using greedy nearest-neighbor construction over network shortest-path
// cost (not straight-line distance): start at the depot, repeatedly move to
// the unvisited destination with minimum shortest-path cost from the current
// position, and finish with a leg back to the depot.
//
// Each step runs the path provider once from the current node, accepting
// O(n) provider invocations per cluster of size n. This is a heuristic tour
// construction, explicitly not optimal; it favors low latency over tour
// quality. Ties between equal-cost candidates break by destination ID.
//
// Returns the visiting order plus the shortest-path leg for every hop
// (depot -> first, ..., last -> depot). Fails with
// UnreachableDestinationError naming the destination and current position
// when any remaining destination has no path; there is no partial success.
func SequenceCluster(
	ctx context.Context,
	cluster domain.Cluster,
	depot domain.NodeID,
	provider ports.PathProvider,
) ([]domain.Destination, []domain.Leg, error) {
	remaining := make(map[string]domain.Destination, len(cluster.Destinations))
	for _, d := range cluster.Destinations {
		if d.NodeID == "" {
			return nil, nil, fmt.Errorf("sequence cluster %d: destination %q has no node binding", cluster.Index, d.ID)
		}
		remaining[d.ID] = d
	}

	visits := make([]domain.Destination, 0, len(remaining))
	legs := make([]domain.Leg, 0, len(remaining)+1)
	current := depot

	for len(remaining) > 0 {
		table, err := provider.ShortestPathsFrom(ctx, current)
		if err != nil {
			return nil, nil, fmt.Errorf("sequence cluster %d: %w", cluster.Index, err)
		}

		// Candidate IDs in sorted order: the scan below then needs only a
		// strict < comparison to realize the lowest-ID tie-break.
		ids := make([]string, 0, len(remaining))
		for id := range remaining {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		var best domain.Destination
		bestCost := 0.0
		found := false
		for _, id := range ids {
			d := remaining[id]
			res, ok := table[d.NodeID]
			if !ok {
				// Fail fast: an absent table entry means no path exists, and
				// an incomplete route must not succeed silently.
				return nil, nil, fmt.Errorf(
					"sequence cluster %d: %w",
					cluster.Index, &domain.UnreachableDestinationError{DestinationID: d.ID, From: current},
				)
			}
			if !found || res.Cost < bestCost {
				best = d
				bestCost = res.Cost
				found = true
			}
		}

		res := table[best.NodeID]
		visits = append(visits, best)
		legs = append(legs, domain.Leg{From: current, To: best.NodeID, Cost: res.Cost, Path: res.Path})
		delete(remaining, best.ID)
		current = best.NodeID
	}

	// Return leg to the depot.
	table, err := provider.ShortestPathsFrom(ctx, current)
	if err != nil {
		return nil, nil, fmt.Errorf("sequence cluster %d: %w", cluster.Index, err)
	}
	back, ok := table[depot]
	if !ok {
		return nil, nil, fmt.Errorf(
			"sequence cluster %d: return leg: %w",
			cluster.Index, &domain.UnreachableDestinationError{DestinationID: string(depot), From: current},
		)
	}
	legs = append(legs, domain.Leg{From: current, To: depot, Cost: back.Cost, Path: back.Path})

	return visits, legs, nil
}
