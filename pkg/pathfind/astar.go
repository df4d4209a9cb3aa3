// Package pathfind implements single-source grid path search: weighted A*,
// iterative-deepening A* (IDA*), and anytime repairing A* (ARA*).
package pathfind

import (
	"container/heap"

	"github.com/Faultbox/dungeonkernel/pkg/geom"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

// node is a single A* search node.
type node struct {
	pos    grid.Position
	g      float64
	h      float64
	f      float64
	parent grid.Position
	hasPar bool
	index  int // heap index
}

// openHeap implements container/heap.Interface over *node, ordered by F
// only. container/heap is not stable, so among nodes with equal F the one
// popped first is not necessarily the one discovered first; for a given
// grid and query the order is still the same on every run.
type openHeap []*node

func (h openHeap) Len() int           { return len(h) }
func (h openHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *openHeap) Push(x interface{}) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// FindAstar runs weighted A* from `from` to `to` on the grid, with
// heuristic weight w >= 1 (w == 1 is the admissible, optimal case; w > 1
// trades optimality for speed). Returns the ordered cell sequence starting
// at from and ending at to, or an empty slice if no path exists.
func FindAstar(d *grid.DungeonData, from, to grid.Position, w float64) []grid.Position {
	if !d.InBounds(from.X, from.Y) || !d.InBounds(to.X, to.Y) {
		return nil
	}
	if d.IsWall(from.X, from.Y) || d.IsWall(to.X, to.Y) {
		return nil
	}
	if from == to {
		return []grid.Position{from}
	}

	open := &openHeap{}
	heap.Init(open)
	nodes := make(map[grid.Position]*node)
	closed := make(map[grid.Position]bool)

	start := &node{pos: from, g: 0, h: geom.Euclidean(from.X, from.Y, to.X, to.Y)}
	start.f = start.g + w*start.h
	heap.Push(open, start)
	nodes[from] = start

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if closed[current.pos] {
			continue
		}
		closed[current.pos] = true

		if current.pos == to {
			return reconstruct(nodes, current.pos)
		}

		for _, off := range grid.Neighbors4 {
			np := current.pos.Add(off)
			if !d.InBounds(np.X, np.Y) || d.IsWall(np.X, np.Y) {
				continue
			}
			if closed[np] {
				continue
			}
			g := current.g + float64(d.Cost(np.X, np.Y))

			existing, seen := nodes[np]
			if !seen {
				n := &node{
					pos:    np,
					g:      g,
					h:      geom.Euclidean(np.X, np.Y, to.X, to.Y),
					parent: current.pos,
					hasPar: true,
				}
				n.f = n.g + w*n.h
				nodes[np] = n
				heap.Push(open, n)
			} else if g < existing.g {
				existing.g = g
				existing.f = existing.g + w*existing.h
				existing.parent = current.pos
				existing.hasPar = true
				if existing.index >= 0 {
					heap.Fix(open, existing.index)
				} else {
					heap.Push(open, existing)
				}
			}
		}
	}

	return nil
}

// reconstruct walks parent pointers from `to` back to the start node (the
// one with no parent) and reverses.
func reconstruct(nodes map[grid.Position]*node, to grid.Position) []grid.Position {
	var path []grid.Position
	cur := to
	for {
		path = append(path, cur)
		n := nodes[cur]
		if n == nil || !n.hasPar {
			break
		}
		cur = n.parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathCost returns the sum of edge costs along a path (1 per floor step, 10
// per costly step), used by the testable-properties suite to cross-check
// g[t] at termination.
func PathCost(d *grid.DungeonData, path []grid.Position) int {
	total := 0
	for i := 1; i < len(path); i++ {
		p := path[i]
		total += d.Cost(p.X, p.Y)
	}
	return total
}
