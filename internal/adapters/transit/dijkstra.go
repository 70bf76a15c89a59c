package transit

import (
	"container/heap"
	"context"
	"fmt"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/metrics"
	"courier-route-service/internal/ports"
)

// How many frontier pops between context checks. Dijkstra itself never
// blocks, so this is the only point where a deadline can be observed.
const deadlineCheckInterval = 256

// Engine computes single-source shortest paths over an immutable network
// using Dijkstra with a binary-heap frontier. Every invocation allocates its
// own working state, so one Engine can be shared across concurrently running
// cluster tasks.
//
// Determinism: equal-cost frontier entries pop in ascending node-ID order,
// and the network's neighbor lists are sorted at construction, so repeated
// runs on the same network produce identical tables.
type Engine struct {
	net *domain.Network
}

func NewEngine(net *domain.Network) *Engine {
	return &Engine{net: net}
}

// ShortestPathsFrom returns shortest cost and inclusive node path from
// source to every reachable node. Unreachable nodes have no entry. Fails
// with UnknownNodeError when source is not in the network, or with the
// context's error when the deadline is exceeded mid-computation (a
// recoverable failure for the invoking cluster, not a crash).
func (e *Engine) ShortestPathsFrom(ctx context.Context, source domain.NodeID) (map[domain.NodeID]ports.PathResult, error) {
	if !e.net.Has(source) {
		return nil, fmt.Errorf("shortest paths: %w", &domain.UnknownNodeError{ID: source})
	}
	metrics.ShortestPathRuns.Inc()

	dist := make(map[domain.NodeID]float64, e.net.Len())
	prev := make(map[domain.NodeID]domain.NodeID)
	settled := make(map[domain.NodeID]struct{})

	dist[source] = 0
	f := &frontier{{id: source, cost: 0}}
	heap.Init(f)

	pops := 0
	for f.Len() > 0 {
		pops++
		if pops%deadlineCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("shortest paths from %q: %w", string(source), err)
			}
		}

		it := heap.Pop(f).(frontierItem)
		if _, done := settled[it.id]; done {
			continue // stale entry; a cheaper cost was settled earlier
		}
		settled[it.id] = struct{}{}

		arcs, err := e.net.Neighbors(it.id)
		if err != nil {
			return nil, fmt.Errorf("shortest paths from %q: %w", string(source), err)
		}
		for _, a := range arcs {
			next := it.cost + a.Cost
			if cur, seen := dist[a.To]; !seen || next < cur {
				dist[a.To] = next
				prev[a.To] = it.id
				heap.Push(f, frontierItem{id: a.To, cost: next})
			}
		}
	}

	out := make(map[domain.NodeID]ports.PathResult, len(dist))
	for id, cost := range dist {
		out[id] = ports.PathResult{Cost: cost, Path: rebuildPath(prev, source, id)}
	}
	return out, nil
}

// rebuildPath walks predecessor pointers back from target to source and
// reverses, yielding the inclusive source..target node sequence.
func rebuildPath(prev map[domain.NodeID]domain.NodeID, source, target domain.NodeID) []domain.NodeID {
	if source == target {
		return []domain.NodeID{source}
	}
	var rev []domain.NodeID
	for cur := target; ; {
		rev = append(rev, cur)
		if cur == source {
			break
		}
		cur = prev[cur]
	}
	path := make([]domain.NodeID, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}

type frontierItem struct {
	id   domain.NodeID
	cost float64
}

// frontier is a binary min-heap ordered by (cost, node ID). The ID
// tie-break keeps extraction order reproducible across runs.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].id < f[j].id
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	it := old[n-1]
	*f = old[:n-1]
	return it
}
