package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"courier-route-service/internal/adapters/repositories"
	"courier-route-service/internal/api/dto"
	"courier-route-service/internal/domain"
)

func TestDestinationHandlerList(t *testing.T) {
	repo := repositories.NewMemoryDestinationRepository([]domain.Destination{
		{ID: "dest-a", Coord: domain.Coordinates{Lat: -36.85, Lng: 174.76}, NodeID: "britomart"},
		{ID: "dest-b", Coord: domain.Coordinates{Lat: -36.99, Lng: 174.88}},
	})
	h := &DestinationHandler{Repo: repo}

	req := httptest.NewRequest(http.MethodGet, "/destinations", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.ListDestinationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if len(res.Destinations) != 2 {
		t.Fatalf("got %d destinations, want 2", len(res.Destinations))
	}
	if res.Destinations[0].DestinationID != "dest-a" || res.Destinations[0].NodeID != "britomart" {
		t.Fatalf("first destination = %+v", res.Destinations[0])
	}
}

func TestDestinationHandlerMethodNotAllowed(t *testing.T) {
	h := &DestinationHandler{Repo: repositories.NewMemoryDestinationRepository(nil)}

	req := httptest.NewRequest(http.MethodPost, "/destinations", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
