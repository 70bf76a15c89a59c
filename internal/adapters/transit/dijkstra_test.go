package transit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"courier-route-service/internal/domain"
)

func buildNetwork(t *testing.T, nodes []domain.Node, edges []domain.Edge) *domain.Network {
	t.Helper()
	net, err := domain.NewNetwork(nodes, edges)
	if err != nil {
		t.Fatalf("unexpected error building network: %v", err)
	}
	return net
}

func nodeList(ids ...domain.NodeID) []domain.Node {
	nodes := make([]domain.Node, len(ids))
	for i, id := range ids {
		nodes[i] = domain.Node{ID: id}
	}
	return nodes
}

func TestShortestPathsLineGraph(t *testing.T) {
	// a - b - c - d with unit costs; direct shortcut a-d is more expensive.
	net := buildNetwork(t,
		nodeList("a", "b", "c", "d"),
		[]domain.Edge{
			{From: "a", To: "b", Cost: 1},
			{From: "b", To: "c", Cost: 1},
			{From: "c", To: "d", Cost: 1},
			{From: "a", To: "d", Cost: 10},
		},
	)

	table, err := NewEngine(net).ShortestPathsFrom(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, ok := table["d"]
	if !ok {
		t.Fatal("no entry for d")
	}
	if res.Cost != 3 {
		t.Fatalf("cost to d = %v, want 3", res.Cost)
	}
	wantPath := []domain.NodeID{"a", "b", "c", "d"}
	if len(res.Path) != len(wantPath) {
		t.Fatalf("path = %v, want %v", res.Path, wantPath)
	}
	for i := range wantPath {
		if res.Path[i] != wantPath[i] {
			t.Fatalf("path = %v, want %v", res.Path, wantPath)
		}
	}

	if src := table["a"]; src.Cost != 0 || len(src.Path) != 1 || src.Path[0] != "a" {
		t.Fatalf("source entry = %+v, want cost 0 path [a]", src)
	}
}

func TestShortestPathsTriangleInequality(t *testing.T) {
	// Shortest costs never beat going through an intermediate node.
	net := buildNetwork(t,
		nodeList("a", "b", "c", "d", "e"),
		[]domain.Edge{
			{From: "a", To: "b", Cost: 2},
			{From: "b", To: "c", Cost: 3},
			{From: "a", To: "c", Cost: 9},
			{From: "c", To: "d", Cost: 1},
			{From: "b", To: "d", Cost: 7},
			{From: "d", To: "e", Cost: 2},
			{From: "a", To: "e", Cost: 4},
		},
	)
	engine := NewEngine(net)

	tables := make(map[domain.NodeID]map[domain.NodeID]float64)
	for _, src := range net.NodeIDs() {
		table, err := engine.ShortestPathsFrom(context.Background(), src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		costs := make(map[domain.NodeID]float64, len(table))
		for id, res := range table {
			costs[id] = res.Cost
		}
		tables[src] = costs
	}

	for _, a := range net.NodeIDs() {
		for _, b := range net.NodeIDs() {
			ab, okAB := tables[a][b]
			if !okAB {
				continue
			}
			for _, c := range net.NodeIDs() {
				ac, okAC := tables[a][c]
				cb, okCB := tables[c][b]
				if okAC && okCB && ac+cb < ab {
					t.Fatalf("cost %s->%s = %v exceeds %s->%s->%s = %v",
						a, b, ab, a, c, b, ac+cb)
				}
			}
		}
	}
}

func TestShortestPathsUnreachableAbsent(t *testing.T) {
	net := buildNetwork(t,
		nodeList("a", "b", "island"),
		[]domain.Edge{{From: "a", To: "b", Cost: 1}},
	)

	table, err := NewEngine(net).ShortestPathsFrom(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := table["island"]; ok {
		t.Fatal("unreachable node must not appear in the table")
	}
	if len(table) != 2 {
		t.Fatalf("table has %d entries, want 2", len(table))
	}
}

func TestShortestPathsRespectsDirection(t *testing.T) {
	net := buildNetwork(t,
		nodeList("a", "b"),
		[]domain.Edge{{From: "a", To: "b", Cost: 1}},
	)

	table, err := NewEngine(net).ShortestPathsFrom(context.Background(), "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := table["a"]; ok {
		t.Fatal("reverse direction must not be reachable")
	}
}

func TestShortestPathsUnknownSource(t *testing.T) {
	net := buildNetwork(t, nodeList("a"), nil)

	_, err := NewEngine(net).ShortestPathsFrom(context.Background(), "ghost")
	var unknownErr *domain.UnknownNodeError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownNodeError, got %v", err)
	}
}

func TestShortestPathsCancelledContext(t *testing.T) {
	// Enough nodes that the periodic context check fires at least once.
	n := deadlineCheckInterval * 2
	nodes := make([]domain.Node, n)
	edges := make([]domain.Edge, 0, n-1)
	ids := make([]domain.NodeID, n)
	for i := 0; i < n; i++ {
		ids[i] = domain.NodeID(fmt.Sprintf("n%04d", i))
		nodes[i] = domain.Node{ID: ids[i]}
	}
	for i := 0; i < n-1; i++ {
		edges = append(edges, domain.Edge{From: ids[i], To: ids[i+1], Cost: 1})
	}
	net := buildNetwork(t, nodes, edges)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(net).ShortestPathsFrom(ctx, ids[0])
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestShortestPathsDeterministic(t *testing.T) {
	// Two equal-cost paths to d; repeated runs must pick the same one.
	net := buildNetwork(t,
		nodeList("a", "b", "c", "d"),
		[]domain.Edge{
			{From: "a", To: "b", Cost: 1},
			{From: "a", To: "c", Cost: 1},
			{From: "b", To: "d", Cost: 1},
			{From: "c", To: "d", Cost: 1},
		},
	)
	engine := NewEngine(net)

	first, err := engine.ShortestPathsFrom(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for run := 0; run < 10; run++ {
		table, err := engine.ShortestPathsFrom(context.Background(), "a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for id, want := range first {
			got := table[id]
			if got.Cost != want.Cost || len(got.Path) != len(want.Path) {
				t.Fatalf("run %d: entry %q = %+v, want %+v", run, id, got, want)
			}
			for i := range want.Path {
				if got.Path[i] != want.Path[i] {
					t.Fatalf("run %d: entry %q path = %v, want %v", run, id, got.Path, want.Path)
				}
			}
		}
	}

	// The ID tie-break routes a -> b -> d, not a -> c -> d.
	d := first["d"]
	if len(d.Path) != 3 || d.Path[1] != "b" {
		t.Fatalf("path to d = %v, want [a b d]", d.Path)
	}
}
