package dto

import "time"

type PlanRequest struct {
	DepotNodeID       string `json:"depot_node_id"`
	CourierCount      int    `json:"courier_count"`
	ClusterDeadlineMs int    `json:"cluster_deadline_ms"`
}

type VisitResponse struct {
	DestinationID string `json:"destination_id"`
	NodeID        string `json:"node_id"`
}

type PathNodeResponse struct {
	NodeID string  `json:"node_id"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

type RouteResponse struct {
	Courier        int                `json:"courier"`
	Status         string             `json:"status"`
	Error          string             `json:"error,omitempty"`
	DestinationIDs []string           `json:"destination_ids"`
	Visits         []VisitResponse    `json:"visits,omitempty"`
	Path           []PathNodeResponse `json:"path,omitempty"`
	TotalCost      float64            `json:"total_cost"`
}

type PlanResponse struct {
	PlanID       string          `json:"plan_id"`
	DepotNodeID  string          `json:"depot_node_id"`
	CourierCount int             `json:"courier_count"`
	CreatedAt    time.Time       `json:"created_at"`
	Routes       []RouteResponse `json:"routes"`
}
