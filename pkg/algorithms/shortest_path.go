package algorithms

import (
	"container/heap"
	"slices"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

// frontierItem is a tentative distance in the Dijkstra frontier
type frontierItem struct {
	cost  uint64
	index int32
}

// frontierHeap is a min-heap ordered by (cost, node index). Indices follow
// ascending node id, so equal-cost entries pop in id order.
type frontierHeap []frontierItem

func (h frontierHeap) Len() int { return len(h) }
func (h frontierHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].index < h[j].index
}
func (h frontierHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *frontierHeap) Push(x any) {
	*h = append(*h, x.(frontierItem))
}

func (h *frontierHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// dijkstra returns the cost to end and the predecessor of every settled
// index (-1 for the start). ok is false when end is unreachable.
func dijkstra(s *graph.Snapshot, start, end int) (cost uint64, parent []int32, ok bool) {
	n := s.Len()
	dist := make([]uint64, n)
	parent = make([]int32, n)
	reached := make([]bool, n)
	done := make([]bool, n)

	dist[start] = 0
	parent[start] = -1
	reached[start] = true

	h := &frontierHeap{{cost: 0, index: int32(start)}}
	for h.Len() > 0 {
		cur := heap.Pop(h).(frontierItem)
		u := int(cur.index)
		if done[u] {
			continue
		}
		done[u] = true
		if u == end {
			return cur.cost, parent, true
		}

		weights := s.NeighborWeights(u)
		for k, v := range s.Neighbors(u) {
			if done[v] {
				continue
			}
			next := cur.cost + weights[k]
			if !reached[v] || next < dist[v] {
				reached[v] = true
				dist[v] = next
				parent[v] = int32(u)
				heap.Push(h, frontierItem{cost: next, index: v})
			}
		}
	}
	return 0, nil, false
}

// ShortestPathCost returns the minimum total weight between two nodes.
// ok is false when either node is absent or no path exists.
func ShortestPathCost(s *graph.Snapshot, startID, endID uint64) (uint64, bool) {
	start, okStart := s.Index(startID)
	end, okEnd := s.Index(endID)
	if !okStart || !okEnd {
		return 0, false
	}
	cost, _, ok := dijkstra(s, start, end)
	return cost, ok
}

// ShortestPath returns the node ids of a minimum-weight path from startID to
// endID inclusive, together with its cost. A node's path to itself is the
// single node at cost 0.
func ShortestPath(s *graph.Snapshot, startID, endID uint64) ([]uint64, uint64, bool) {
	start, okStart := s.Index(startID)
	end, okEnd := s.Index(endID)
	if !okStart || !okEnd {
		return nil, 0, false
	}

	cost, parent, ok := dijkstra(s, start, end)
	if !ok {
		return nil, 0, false
	}

	path := make([]uint64, 0)
	for at := int32(end); at != -1; at = parent[at] {
		path = append(path, s.ID(int(at)))
	}
	slices.Reverse(path)
	return path, cost, true
}
