package pathfind

import (
	"math"

	"github.com/Faultbox/dungeonkernel/pkg/geom"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

// FindIDA runs iterative-deepening A* from `from` to `to`, using the same
// admissible Euclidean heuristic and 4-connected step costs as FindAstar.
// Returns the ordered cell sequence, or an empty slice if unreachable.
func FindIDA(d *grid.DungeonData, from, to grid.Position) []grid.Position {
	if !d.InBounds(from.X, from.Y) || !d.InBounds(to.X, to.Y) {
		return nil
	}
	if d.IsWall(from.X, from.Y) || d.IsWall(to.X, to.Y) {
		return nil
	}
	if from == to {
		return []grid.Position{from}
	}

	bound := h(from, to)
	path := []grid.Position{from}

	for {
		result := idaSearch(d, &path, 0, bound, to)
		if result < 0 {
			out := make([]grid.Position, len(path))
			copy(out, path)
			return out
		}
		if result == math.Inf(1) {
			return nil
		}
		bound = result
	}
}

func h(p, to grid.Position) float64 {
	return geom.Euclidean(p.X, p.Y, to.X, to.Y)
}

// idaSearch performs one bounded DFS pass. Returns a negative sentinel
// (-f) when `to` is found, +Inf when the subtree is fully exhausted with no
// candidate, or the minimum over-bound f value otherwise.
func idaSearch(d *grid.DungeonData, path *[]grid.Position, g, bound float64, to grid.Position) float64 {
	p := (*path)[len(*path)-1]
	f := g + h(p, to)
	if f > bound {
		return f
	}
	if p == to {
		return -f
	}

	min := math.Inf(1)
	for _, off := range grid.Neighbors4 {
		np := p.Add(off)
		if !d.InBounds(np.X, np.Y) || d.IsWall(np.X, np.Y) {
			continue
		}
		if contains(*path, np) {
			continue
		}

		*path = append(*path, np)
		result := idaSearch(d, path, g+float64(d.Cost(np.X, np.Y)), bound, to)
		if result < 0 {
			return result
		}
		if result < min {
			min = result
		}
		*path = (*path)[:len(*path)-1]
	}

	return min
}

func contains(path []grid.Position, p grid.Position) bool {
	for _, q := range path {
		if q == p {
			return true
		}
	}
	return false
}
