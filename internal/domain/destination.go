package domain

// Destination is a delivery point mapped to its nearest network node.
// NodeID may be empty when the destination has not been bound yet; the
// planning pipeline binds it through a NodeBinder before routing.
type Destination struct {
	ID     string
	Coord  Coordinates
	NodeID NodeID
}

// Cluster is a subset of destinations assigned to one courier. Clusters
// partition the destination set exactly: every destination belongs to one
// cluster, and sizes differ by at most one across clusters.
type Cluster struct {
	Index        int
	Destinations []Destination
}

// DestinationIDs returns the cluster's destination identifiers in cluster order.
func (c Cluster) DestinationIDs() []string {
	ids := make([]string, len(c.Destinations))
	for i, d := range c.Destinations {
		ids[i] = d.ID
	}
	return ids
}
