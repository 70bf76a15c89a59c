package domain

import "fmt"

// UnknownNodeError reports a reference to a node absent from the network.
type UnknownNodeError struct {
	ID NodeID
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node %q", string(e.ID))
}

// InvalidGraphError reports a malformed network (negative edge cost or an
// edge endpoint that is not a node). Raised eagerly at construction so the
// shortest-path engine can rely on non-negative costs.
type InvalidGraphError struct {
	Reason string
}

func (e *InvalidGraphError) Error() string {
	return fmt.Sprintf("invalid graph: %s", e.Reason)
}

// InvalidPartitionError reports a courier count that cannot partition the
// destination set (k <= 0 or k greater than the number of destinations).
type InvalidPartitionError struct {
	Couriers     int
	Destinations int
}

func (e *InvalidPartitionError) Error() string {
	return fmt.Sprintf(
		"invalid partition: %d couriers for %d destinations",
		e.Couriers, e.Destinations,
	)
}

// UnreachableDestinationError reports that no transit path exists from the
// sequencer's current position to a required destination. The route for the
// affected courier fails as a whole; there are no partial routes.
type UnreachableDestinationError struct {
	DestinationID string
	From          NodeID
}

func (e *UnreachableDestinationError) Error() string {
	return fmt.Sprintf(
		"destination %q unreachable from node %q",
		e.DestinationID, string(e.From),
	)
}
