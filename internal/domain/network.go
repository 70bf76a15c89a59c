package domain

import (
	"fmt"
	"sort"
)

// NodeID identifies a transit stop or street intersection.
type NodeID string

// Node is a transit stop or intersection in the network graph.
type Node struct {
	ID    NodeID
	Coord Coordinates
}

// Edge is a directed connection between two nodes with a non-negative travel
// cost. Parallel edges between the same pair are permitted (different bus
// routes); only the cheapest one matters to the shortest-path engine.
type Edge struct {
	From NodeID
	To   NodeID
	Cost float64
}

// Arc is an outgoing connection as seen from a node's neighbor list.
type Arc struct {
	To   NodeID
	Cost float64
}

// Network is an immutable weighted directed graph of transit stops and the
// travel-cost links between them. It is a pure data holder: construction
// validates eagerly, and no mutation is possible afterwards, so it is safe
// to share read-only across concurrently running cluster tasks.
//
// The graph may be disconnected; reachability is the shortest-path engine's
// concern, not the network's.
type Network struct {
	nodes map[NodeID]Node
	adj   map[NodeID][]Arc
	ids   []NodeID
}

// NewNetwork builds a network from node and edge sets. It fails with
// InvalidGraphError on a negative edge cost or an edge endpoint that is not
// a node. Neighbor lists are sorted by (target, cost) so that edge iteration
// order, and therefore every downstream computation, is deterministic for a
// fixed input.
func NewNetwork(nodes []Node, edges []Edge) (*Network, error) {
	byID := make(map[NodeID]Node, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			return nil, &InvalidGraphError{Reason: "node with empty id"}
		}
		if _, ok := byID[n.ID]; ok {
			return nil, &InvalidGraphError{Reason: fmt.Sprintf("duplicate node %q", string(n.ID))}
		}
		byID[n.ID] = n
	}

	adj := make(map[NodeID][]Arc, len(nodes))
	for _, e := range edges {
		if e.Cost < 0 {
			return nil, &InvalidGraphError{
				Reason: fmt.Sprintf("negative cost %v on edge %q -> %q", e.Cost, string(e.From), string(e.To)),
			}
		}
		if _, ok := byID[e.From]; !ok {
			return nil, &InvalidGraphError{Reason: fmt.Sprintf("edge from unknown node %q", string(e.From))}
		}
		if _, ok := byID[e.To]; !ok {
			return nil, &InvalidGraphError{Reason: fmt.Sprintf("edge to unknown node %q", string(e.To))}
		}
		adj[e.From] = append(adj[e.From], Arc{To: e.To, Cost: e.Cost})
	}

	ids := make([]NodeID, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, arcs := range adj {
		sort.Slice(arcs, func(i, j int) bool {
			if arcs[i].To != arcs[j].To {
				return arcs[i].To < arcs[j].To
			}
			return arcs[i].Cost < arcs[j].Cost
		})
	}

	return &Network{nodes: byID, adj: adj, ids: ids}, nil
}

// Neighbors returns the outgoing arcs of a node in deterministic order.
// The returned slice is shared and must not be modified.
func (n *Network) Neighbors(id NodeID) ([]Arc, error) {
	if _, ok := n.nodes[id]; !ok {
		return nil, &UnknownNodeError{ID: id}
	}
	return n.adj[id], nil
}

// Node returns the node for id, reporting whether it exists.
func (n *Network) Node(id NodeID) (Node, bool) {
	nd, ok := n.nodes[id]
	return nd, ok
}

// Has reports whether the node exists in the network.
func (n *Network) Has(id NodeID) bool {
	_, ok := n.nodes[id]
	return ok
}

// NodeIDs returns all node identifiers in ascending order.
// The returned slice is shared and must not be modified.
func (n *Network) NodeIDs() []NodeID { return n.ids }

// Len returns the number of nodes.
func (n *Network) Len() int { return len(n.nodes) }
