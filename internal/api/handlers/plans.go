package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"courier-route-service/internal/api/dto"
	"courier-route-service/internal/domain"
	"courier-route-service/internal/metrics"
	"courier-route-service/internal/ports"
	"courier-route-service/internal/services"
)

const planCacheTTL = 5 * time.Minute

type PlanHandler struct {
	Repo            ports.DestinationRepository
	Provider        ports.PathProvider
	Binder          ports.NodeBinder
	Network         *domain.Network
	Cache           ports.PlanCache // optional
	DefaultDepot    string
	DefaultCouriers int
}

// Plan orchestrates partitioning and route construction for all couriers.
// Clusters succeed or fail independently; the response reports each one.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	depotID := strings.TrimSpace(req.DepotNodeID)
	if depotID == "" {
		depotID = strings.TrimSpace(h.DefaultDepot)
	}
	if depotID == "" {
		writeError(w, r, http.StatusBadRequest, "depot_node_id is required")
		return
	}

	depot, ok := h.Network.Node(domain.NodeID(depotID))
	if !ok {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown depot node %q", depotID))
		return
	}

	couriers := req.CourierCount
	if couriers == 0 {
		couriers = h.DefaultCouriers
	}
	if couriers < 1 || couriers > 100 {
		writeError(w, r, http.StatusBadRequest, "courier_count must be between 1 and 100")
		return
	}

	if req.ClusterDeadlineMs < 0 {
		writeError(w, r, http.StatusBadRequest, "cluster_deadline_ms must not be negative")
		return
	}

	key := planKey(depotID, couriers, req.ClusterDeadlineMs)
	if h.Cache != nil {
		if payload, hit, err := h.Cache.Get(r.Context(), key); err != nil {
			log.Printf("plan cache get failed: %v", err)
		} else if hit {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(payload)
			return
		}
	}

	start := time.Now()
	svcReq := services.PlanCourierRoutesRequest{
		Depot:           depot,
		CourierCount:    couriers,
		ClusterDeadline: time.Duration(req.ClusterDeadlineMs) * time.Millisecond,
	}
	plan, err := services.PlanCourierRoutes(r.Context(), svcReq, h.Repo, h.Binder, h.Provider)
	metrics.PlanDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PlansTotal.WithLabelValues("failed").Inc()

		var partitionErr *domain.InvalidPartitionError
		if errors.As(err, &partitionErr) {
			writeError(w, r, http.StatusBadRequest, partitionErr.Error())
			return
		}
		log.Printf("plan courier routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	metrics.PlansTotal.WithLabelValues(planOutcome(plan)).Inc()

	res := h.toResponse(plan)
	if h.Cache != nil && plan.Failed() == 0 {
		if payload, err := json.Marshal(res); err == nil {
			if err := h.Cache.Put(r.Context(), key, payload, planCacheTTL); err != nil {
				log.Printf("plan cache put failed: %v", err)
			}
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PlanHandler) toResponse(plan *services.Plan) dto.PlanResponse {
	res := dto.PlanResponse{
		PlanID:       plan.ID,
		DepotNodeID:  string(plan.DepotNodeID),
		CourierCount: plan.CourierCount,
		CreatedAt:    plan.CreatedAt,
		Routes:       make([]dto.RouteResponse, 0, len(plan.Results)),
	}

	for _, cr := range plan.Results {
		rr := dto.RouteResponse{
			Courier:        cr.Courier,
			DestinationIDs: cr.DestinationIDs,
		}
		if cr.Err != nil {
			rr.Status = "failed"
			rr.Error = cr.Err.Error()
			res.Routes = append(res.Routes, rr)
			continue
		}

		rr.Status = "ok"
		rr.TotalCost = cr.Route.TotalCost
		rr.Visits = make([]dto.VisitResponse, 0, len(cr.Route.Visits))
		for _, v := range cr.Route.Visits {
			rr.Visits = append(rr.Visits, dto.VisitResponse{
				DestinationID: v.ID,
				NodeID:        string(v.NodeID),
			})
		}
		rr.Path = make([]dto.PathNodeResponse, 0, len(cr.Route.Path))
		for _, id := range cr.Route.Path {
			node, _ := h.Network.Node(id)
			rr.Path = append(rr.Path, dto.PathNodeResponse{
				NodeID: string(id),
				Lat:    node.Coord.Lat,
				Lng:    node.Coord.Lng,
			})
		}
		res.Routes = append(res.Routes, rr)
	}

	return res
}

func planOutcome(plan *services.Plan) string {
	switch failed := plan.Failed(); {
	case failed == 0:
		return "ok"
	case failed < len(plan.Results):
		return "partial"
	default:
		return "failed"
	}
}

// planKey digests the request parameters; destination data changes are
// bounded by the cache TTL.
func planKey(depotID string, couriers, deadlineMs int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", depotID, couriers, deadlineMs)))
	return hex.EncodeToString(sum[:])
}
