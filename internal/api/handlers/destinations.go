package handlers

import (
	"log"
	"net/http"

	"courier-route-service/internal/api/dto"
	"courier-route-service/internal/ports"
)

// DestinationHandler exposes read-only destination retrieval endpoints.
type DestinationHandler struct {
	Repo ports.DestinationRepository
}

func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	dests, err := h.Repo.ListDestinations(r.Context())
	if err != nil {
		log.Printf("list destinations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDestinationsResponse{
		Destinations: make([]dto.DestinationResponse, 0, len(dests)),
	}
	for _, d := range dests {
		res.Destinations = append(res.Destinations, dto.DestinationResponse{
			DestinationID: d.ID,
			Lat:           d.Coord.Lat,
			Lng:           d.Coord.Lng,
			NodeID:        string(d.NodeID),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
