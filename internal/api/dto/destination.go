package dto

type DestinationResponse struct {
	DestinationID string  `json:"destination_id"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	NodeID        string  `json:"node_id"`
}

type ListDestinationsResponse struct {
	Destinations []DestinationResponse `json:"destinations"`
}
