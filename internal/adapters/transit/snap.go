package transit

import (
	"errors"

	"courier-route-service/internal/domain"
)

// Snapper binds destinations to their nearest network node by straight-line
// distance. Iteration follows the network's sorted node order, so ties
// resolve to the lowest node ID.
type Snapper struct {
	net *domain.Network
}

func NewSnapper(net *domain.Network) *Snapper {
	return &Snapper{net: net}
}

// BindNearest returns the network node closest to the destination's
// coordinates.
func (s *Snapper) BindNearest(dest domain.Destination) (domain.NodeID, error) {
	if s.net.Len() == 0 {
		return "", errors.New("bind nearest: network has no nodes")
	}

	var best domain.NodeID
	bestDist := -1.0
	for _, id := range s.net.NodeIDs() {
		node, _ := s.net.Node(id)
		d := domain.HaversineMeters(dest.Coord, node.Coord)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = id
		}
	}
	return best, nil
}
