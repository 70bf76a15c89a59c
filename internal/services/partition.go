package services

import (
	"math"
	"sort"

	"courier-route-service/internal/domain"
)

// PartitionDestinations splits the destination set into k balanced clusters,
// one per courier, by geographic proximity alone.
//
// Destinations are sorted by angular position around the depot and sliced
// into k contiguous groups, so each courier receives one wedge of the map.
// Coordinates drive the grouping (not network cost): this is cheap and
// stable compared to running shortest-path computation before clusters are
// known. Contracts: exact partition, max-min cluster size <= 1, and
// deterministic output for a fixed input ordering and k.
func PartitionDestinations(depot domain.Coordinates, dests []domain.Destination, k int) ([]domain.Cluster, error) {
	if k <= 0 || k > len(dests) {
		return nil, &domain.InvalidPartitionError{Couriers: k, Destinations: len(dests)}
	}

	ordered := make([]domain.Destination, len(dests))
	copy(ordered, dests)
	sort.SliceStable(ordered, func(i, j int) bool {
		ai := bearingFrom(depot, ordered[i].Coord)
		aj := bearingFrom(depot, ordered[j].Coord)
		if ai != aj {
			return ai < aj
		}
		// Tie-breaker ensures deterministic ordering for co-linear points.
		return ordered[i].ID < ordered[j].ID
	})

	// First n%k clusters take one extra element, keeping sizes within one.
	base := len(ordered) / k
	extra := len(ordered) % k

	clusters := make([]domain.Cluster, 0, k)
	start := 0
	for i := 0; i < k; i++ {
		size := base
		if i < extra {
			size++
		}
		group := make([]domain.Destination, size)
		copy(group, ordered[start:start+size])
		clusters = append(clusters, domain.Cluster{Index: i, Destinations: group})
		start += size
	}

	return clusters, nil
}

// bearingFrom returns the angular position of p around the origin in
// (-pi, pi]. Points exactly at the origin sort first at -pi equivalence
// through the ID tie-break.
func bearingFrom(origin, p domain.Coordinates) float64 {
	return math.Atan2(p.Lat-origin.Lat, p.Lng-origin.Lng)
}
