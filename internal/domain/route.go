package domain

// Leg is the shortest path realizing one hop of a courier's route:
// depot -> first visit, visit -> visit, or last visit -> depot.
// Path is the inclusive node sequence from From to To.
type Leg struct {
	From NodeID
	To   NodeID
	Cost float64
	Path []NodeID
}

// CourierRoute is the planned route for a single courier: the ordered
// destination visits plus the concatenated node path realizing them as an
// actual walk through the transit network, starting and ending at the depot.
// It is immutable planning output and contains no side effects.
type CourierRoute struct {
	Courier   int
	Visits    []Destination
	Path      []NodeID
	TotalCost float64
}
