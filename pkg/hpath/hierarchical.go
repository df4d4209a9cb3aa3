package hpath

import (
	"container/heap"

	"github.com/Faultbox/dungeonkernel/pkg/geom"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
	"github.com/Faultbox/dungeonkernel/pkg/pathfind"
)

// midpoint returns a representative cell for heuristic/waypoint purposes.
func (p Portal) midpoint() grid.Position {
	return grid.Position{X: (p.StartX + p.EndX) / 2, Y: (p.StartY + p.EndY) / 2}
}

// FindHierarchical answers a path query using the precomputed portal graph:
// intra-tile grid A* when both endpoints share a super-tile, otherwise a
// three-segment query (from -> nearest portal, portal graph A*, nearest
// portal -> to) over the inter-tile portal graph.
func FindHierarchical(ps *Portals, d *grid.DungeonData, from, to grid.Position) []grid.Position {
	if !d.InBounds(from.X, from.Y) || !d.InBounds(to.X, to.Y) {
		return nil
	}
	if d.IsWall(from.X, from.Y) || d.IsWall(to.X, to.Y) {
		return nil
	}
	if from == to {
		return []grid.Position{from}
	}

	fromTile := ps.superTileIndex(from.X, from.Y)
	toTile := ps.superTileIndex(to.X, to.Y)

	if fromTile == toTile {
		clip := superTileRect(ps, fromTile, d)
		path := pathfind.FindAstar(clip.sub, localize(from, clip), localize(to, clip), 1.0)
		return globalize(path, clip)
	}

	fromSeg, fromPortal, ok := nearestPortalPath(d, ps, fromTile, from, true)
	if !ok {
		return nil
	}
	toSeg, toPortal, ok := nearestPortalPath(d, ps, toTile, to, false)
	if !ok {
		return nil
	}

	portalPath := portalGraphSearch(ps, fromPortal, toPortal)
	if len(portalPath) == 0 {
		return nil
	}

	hops := make([]grid.Position, 0)
	hops = append(hops, fromSeg...)
	for i := 0; i+1 < len(portalPath); i++ {
		hop, ok := portalToPortalPath(d, ps, portalPath[i], portalPath[i+1])
		if !ok {
			return nil
		}
		if len(hops) > 0 && len(hop) > 0 && hops[len(hops)-1] == hop[0] {
			hop = hop[1:]
		}
		hops = append(hops, hop...)
	}

	// toSeg was computed as to -> portal; reverse before appending.
	reversed := make([]grid.Position, len(toSeg))
	for i, p := range toSeg {
		reversed[len(toSeg)-1-i] = p
	}
	if len(hops) > 0 && len(reversed) > 0 && hops[len(hops)-1] == reversed[0] {
		reversed = reversed[1:]
	}
	hops = append(hops, reversed...)

	if len(hops) == 0 {
		return nil
	}
	return hops
}

// nearestPortalPath finds the shortest in-tile path from `cell` to any cell
// of any portal touching `tile`, picking the best portal. When fromStart is
// true the path runs cell -> portal; the caller reverses it when fromStart
// is false (to -> portal, reversed to portal -> to later).
func nearestPortalPath(d *grid.DungeonData, ps *Portals, tile int, cell grid.Position, fromStart bool) ([]grid.Position, int, bool) {
	_ = fromStart
	clip := superTileRect(ps, tile, d)
	localCell := localize(cell, clip)

	bestLen := -1
	var bestPath []grid.Position
	bestPortal := -1

	for _, pi := range ps.byTile[tile] {
		portal := ps.List[pi]
		for _, pc := range portal.CellsForTile(tile) {
			if !clip.contains(pc) {
				continue
			}
			path := pathfind.FindAstar(clip.sub, localCell, localize(pc, clip), 1.0)
			if len(path) == 0 {
				continue
			}
			if bestLen == -1 || len(path) < bestLen {
				bestLen = len(path)
				bestPath = path
				bestPortal = pi
			}
		}
	}

	if bestPortal == -1 {
		return nil, -1, false
	}
	return globalize(bestPath, clip), bestPortal, true
}

// portalToPortalPath reconstructs the actual in-tile path between two
// edge-connected portals, by finding their shared super-tile and re-running
// clipped A* between their closest cells.
func portalToPortalPath(d *grid.DungeonData, ps *Portals, a, b int) ([]grid.Position, bool) {
	pa, pb := ps.List[a], ps.List[b]
	shared := -1
	for _, ta := range []int{pa.TileA, pa.TileB} {
		if ta == pb.TileA || ta == pb.TileB {
			shared = ta
			break
		}
	}
	if shared == -1 {
		return nil, false
	}

	clip := superTileRect(ps, shared, d)
	bestLen := -1
	var bestPath []grid.Position
	for _, ca := range pa.CellsForTile(shared) {
		if !clip.contains(ca) {
			continue
		}
		for _, cb := range pb.CellsForTile(shared) {
			if !clip.contains(cb) {
				continue
			}
			path := pathfind.FindAstar(clip.sub, localize(ca, clip), localize(cb, clip), 1.0)
			if len(path) == 0 {
				continue
			}
			if bestLen == -1 || len(path) < bestLen {
				bestLen = len(path)
				bestPath = path
			}
		}
	}
	if bestLen == -1 {
		return nil, false
	}
	return globalize(bestPath, clip), true
}

func globalize(path []grid.Position, r rect) []grid.Position {
	if path == nil {
		return nil
	}
	out := make([]grid.Position, len(path))
	for i, p := range path {
		out[i] = grid.Position{X: p.X + r.minX, Y: p.Y + r.minY}
	}
	return out
}

// portalNode is one entry of the portal-graph A* priority queue.
type portalNode struct {
	idx    int
	g      float64
	f      float64
	parent int
	hasPar bool
	index  int
}

type portalHeap []*portalNode

func (h portalHeap) Len() int            { return len(h) }
func (h portalHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h portalHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *portalHeap) Push(x interface{}) { n := x.(*portalNode); n.index = len(*h); *h = append(*h, n) }
func (h *portalHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// portalGraphSearch runs A* over the portal graph (nodes = portal indices,
// edge weight = PortalEdge.Distance, heuristic = Euclidean distance between
// portal midpoints) and returns the sequence of portal indices from
// `from` to `to`, or nil if disconnected.
func portalGraphSearch(ps *Portals, from, to int) []int {
	if from == to {
		return []int{from}
	}
	hFn := func(i int) float64 {
		a, b := ps.List[i].midpoint(), ps.List[to].midpoint()
		return geom.Euclidean(a.X, a.Y, b.X, b.Y)
	}

	open := &portalHeap{}
	heap.Init(open)
	nodes := make(map[int]*portalNode)
	closed := make(map[int]bool)

	start := &portalNode{idx: from, g: 0, f: hFn(from)}
	heap.Push(open, start)
	nodes[from] = start

	for open.Len() > 0 {
		cur := heap.Pop(open).(*portalNode)
		if closed[cur.idx] {
			continue
		}
		closed[cur.idx] = true

		if cur.idx == to {
			var seq []int
			for {
				seq = append(seq, cur.idx)
				if !cur.hasPar {
					break
				}
				cur = nodes[cur.parent]
			}
			for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
				seq[i], seq[j] = seq[j], seq[i]
			}
			return seq
		}

		for _, e := range ps.List[cur.idx].Edges {
			if closed[e.Other] {
				continue
			}
			g := cur.g + float64(e.Distance)
			existing, seen := nodes[e.Other]
			if !seen {
				n := &portalNode{idx: e.Other, g: g, f: g + hFn(e.Other), parent: cur.idx, hasPar: true}
				nodes[e.Other] = n
				heap.Push(open, n)
			} else if g < existing.g {
				existing.g = g
				existing.f = g + hFn(e.Other)
				existing.parent = cur.idx
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
