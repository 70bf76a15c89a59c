package transit

import (
	"testing"

	"courier-route-service/internal/domain"
)

func TestSnapperBindNearest(t *testing.T) {
	net := buildNetwork(t, []domain.Node{
		{ID: "north", Coord: domain.Coordinates{Lat: -36.80, Lng: 174.76}},
		{ID: "mid", Coord: domain.Coordinates{Lat: -36.90, Lng: 174.76}},
		{ID: "south", Coord: domain.Coordinates{Lat: -37.00, Lng: 174.76}},
	}, nil)

	dest := domain.Destination{
		ID:    "warehouse",
		Coord: domain.Coordinates{Lat: -36.91, Lng: 174.77},
	}

	id, err := NewSnapper(net).BindNearest(dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "mid" {
		t.Fatalf("bound to %q, want %q", id, "mid")
	}
}

func TestSnapperTieBreaksByNodeID(t *testing.T) {
	// Two nodes at the identical coordinate; the lower ID must win.
	coord := domain.Coordinates{Lat: -36.85, Lng: 174.76}
	net := buildNetwork(t, []domain.Node{
		{ID: "zeta", Coord: coord},
		{ID: "alpha", Coord: coord},
	}, nil)

	id, err := NewSnapper(net).BindNearest(domain.Destination{ID: "d", Coord: coord})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "alpha" {
		t.Fatalf("bound to %q, want %q", id, "alpha")
	}
}

func TestSnapperEmptyNetwork(t *testing.T) {
	net := buildNetwork(t, nil, nil)
	if _, err := NewSnapper(net).BindNearest(domain.Destination{ID: "d"}); err == nil {
		t.Fatal("expected error for empty network")
	}
}
