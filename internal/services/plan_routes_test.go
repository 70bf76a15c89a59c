package services

import (
	"context"
	"errors"
	"testing"

	"courier-route-service/internal/adapters/repositories"
	"courier-route-service/internal/adapters/transit"
	"courier-route-service/internal/domain"
)

func TestPlanCourierRoutesEndToEnd(t *testing.T) {
	net := lineNetwork(t, "a", "b", "c", "d", "e")
	provider := transit.NewEngine(net)

	repo := repositories.NewMemoryDestinationRepository([]domain.Destination{
		{ID: "far", Coord: domain.Coordinates{Lat: 0, Lng: 4}, NodeID: "e"},
		{ID: "near", Coord: domain.Coordinates{Lat: 0, Lng: 2}, NodeID: "c"},
	})

	depot, _ := net.Node("a")
	req := PlanCourierRoutesRequest{Depot: depot, CourierCount: 1}

	plan, err := PlanCourierRoutes(context.Background(), req, repo, nil, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.ID == "" {
		t.Fatal("plan has no id")
	}
	if plan.DepotNodeID != "a" || plan.CourierCount != 1 {
		t.Fatalf("plan header = %+v", plan)
	}
	if len(plan.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(plan.Results))
	}
	if plan.Failed() != 0 {
		t.Fatalf("Failed() = %d, want 0", plan.Failed())
	}

	res := plan.Results[0]
	if res.Err != nil {
		t.Fatalf("cluster failed: %v", res.Err)
	}
	if res.Route.TotalCost != 8 {
		t.Fatalf("total cost = %v, want 8", res.Route.TotalCost)
	}
	if len(res.Route.Visits) != 2 || res.Route.Visits[0].ID != "near" {
		t.Fatalf("visits = %v", res.Route.Visits)
	}
}

func TestPlanCourierRoutesClusterFailureIsolated(t *testing.T) {
	// Reachable ring a-b plus an island node. The island destination's
	// cluster must fail without touching the healthy cluster.
	nodes := []domain.Node{
		{ID: "a", Coord: domain.Coordinates{Lat: 0, Lng: 0}},
		{ID: "b", Coord: domain.Coordinates{Lat: 0, Lng: 1}},
		{ID: "island", Coord: domain.Coordinates{Lat: 1, Lng: 0}},
	}
	edges := []domain.Edge{
		{From: "a", To: "b", Cost: 1},
		{From: "b", To: "a", Cost: 1},
	}
	net, err := domain.NewNetwork(nodes, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider := transit.NewEngine(net)

	// Bearings around the depot put "east" in cluster 0 and "north" in 1.
	repo := repositories.NewMemoryDestinationRepository([]domain.Destination{
		{ID: "east", Coord: domain.Coordinates{Lat: 0, Lng: 1}, NodeID: "b"},
		{ID: "north", Coord: domain.Coordinates{Lat: 1, Lng: 0}, NodeID: "island"},
	})

	depot, _ := net.Node("a")
	req := PlanCourierRoutesRequest{Depot: depot, CourierCount: 2}

	plan, err := PlanCourierRoutes(context.Background(), req, repo, nil, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Failed() != 1 {
		t.Fatalf("Failed() = %d, want 1", plan.Failed())
	}

	ok := plan.Results[0]
	if ok.Err != nil {
		t.Fatalf("healthy cluster failed: %v", ok.Err)
	}
	if len(ok.DestinationIDs) != 1 || ok.DestinationIDs[0] != "east" {
		t.Fatalf("healthy cluster destinations = %v", ok.DestinationIDs)
	}

	failed := plan.Results[1]
	if failed.Err == nil {
		t.Fatal("island cluster should have failed")
	}
	if failed.Route != nil {
		t.Fatal("failed cluster must not carry a route")
	}
	var unreachable *domain.UnreachableDestinationError
	if !errors.As(failed.Err, &unreachable) {
		t.Fatalf("expected UnreachableDestinationError, got %v", failed.Err)
	}
}

func TestPlanCourierRoutesBindsUnboundDestinations(t *testing.T) {
	// Nodes carry coordinates so snapping has something to measure.
	nodes := []domain.Node{
		{ID: "a", Coord: domain.Coordinates{Lat: 0, Lng: 0}},
		{ID: "b", Coord: domain.Coordinates{Lat: 0, Lng: 1}},
	}
	edges := []domain.Edge{
		{From: "a", To: "b", Cost: 1},
		{From: "b", To: "a", Cost: 1},
	}
	net, err := domain.NewNetwork(nodes, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider := transit.NewEngine(net)
	binder := transit.NewSnapper(net)

	repo := repositories.NewMemoryDestinationRepository([]domain.Destination{
		{ID: "loose", Coord: domain.Coordinates{Lat: 0, Lng: 0.9}},
	})

	depot, _ := net.Node("a")
	req := PlanCourierRoutesRequest{Depot: depot, CourierCount: 1}

	plan, err := PlanCourierRoutes(context.Background(), req, repo, binder, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Failed() != 0 {
		t.Fatalf("Failed() = %d, want 0", plan.Failed())
	}
	if got := plan.Results[0].Route.Visits[0].NodeID; got != "b" {
		t.Fatalf("bound to %q, want %q", got, "b")
	}
}

func TestPlanCourierRoutesUnboundWithoutBinder(t *testing.T) {
	net := lineNetwork(t, "a", "b")
	provider := transit.NewEngine(net)

	repo := repositories.NewMemoryDestinationRepository([]domain.Destination{
		{ID: "loose"},
	})

	depot, _ := net.Node("a")
	req := PlanCourierRoutesRequest{Depot: depot, CourierCount: 1}

	if _, err := PlanCourierRoutes(context.Background(), req, repo, nil, provider); err == nil {
		t.Fatal("expected error for unbound destination without a binder")
	}
}

func TestPlanCourierRoutesInvalidPartition(t *testing.T) {
	net := lineNetwork(t, "a", "b")
	provider := transit.NewEngine(net)

	repo := repositories.NewMemoryDestinationRepository([]domain.Destination{
		{ID: "only", NodeID: "b"},
	})

	depot, _ := net.Node("a")
	req := PlanCourierRoutesRequest{Depot: depot, CourierCount: 3}

	_, err := PlanCourierRoutes(context.Background(), req, repo, nil, provider)
	var partErr *domain.InvalidPartitionError
	if !errors.As(err, &partErr) {
		t.Fatalf("expected InvalidPartitionError, got %v", err)
	}
}

func TestPlanCourierRoutesDeterministic(t *testing.T) {
	net := lineNetwork(t, "a", "b", "c", "d", "e", "f", "g")
	provider := transit.NewEngine(net)

	dests := []domain.Destination{
		{ID: "d1", Coord: domain.Coordinates{Lat: 0, Lng: 1}, NodeID: "b"},
		{ID: "d2", Coord: domain.Coordinates{Lat: 1, Lng: 1}, NodeID: "c"},
		{ID: "d3", Coord: domain.Coordinates{Lat: 1, Lng: 0}, NodeID: "d"},
		{ID: "d4", Coord: domain.Coordinates{Lat: 1, Lng: -1}, NodeID: "e"},
		{ID: "d5", Coord: domain.Coordinates{Lat: 0, Lng: -1}, NodeID: "f"},
		{ID: "d6", Coord: domain.Coordinates{Lat: -1, Lng: -1}, NodeID: "g"},
	}
	repo := repositories.NewMemoryDestinationRepository(dests)

	depot, _ := net.Node("a")
	req := PlanCourierRoutesRequest{Depot: depot, CourierCount: 3}

	first, err := PlanCourierRoutes(context.Background(), req, repo, nil, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for run := 0; run < 5; run++ {
		plan, err := PlanCourierRoutes(context.Background(), req, repo, nil, provider)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range first.Results {
			a, b := first.Results[i], plan.Results[i]
			if (a.Err == nil) != (b.Err == nil) {
				t.Fatalf("run %d: cluster %d outcome changed", run, i)
			}
			if a.Err != nil {
				continue
			}
			if a.Route.TotalCost != b.Route.TotalCost {
				t.Fatalf("run %d: cluster %d cost %v != %v", run, i, b.Route.TotalCost, a.Route.TotalCost)
			}
			for j := range a.Route.Visits {
				if a.Route.Visits[j].ID != b.Route.Visits[j].ID {
					t.Fatalf("run %d: cluster %d visit order changed", run, i)
				}
			}
		}
	}
}
