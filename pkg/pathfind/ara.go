package pathfind

import (
	"math"

	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

// Default ARA* epsilon schedule, per spec.md §4.3.
const (
	ARAStartEpsilon = 10.0
	ARAEpsilonStep  = 0.05
	ARAFloorEpsilon = 1.0
)

// ARAState holds the search state ARA* reuses across iterations: the cost
// map g, the parent map prev, the open/inconsistent/closed/visited sets.
// A zero-value ARAState is ready to use; call Reset to wipe it explicitly
// (e.g. when epsilon reaches the floor, or the map/endpoints change).
type ARAState struct {
	g       map[grid.Position]float64
	prev    map[grid.Position]grid.Position
	hasPrev map[grid.Position]bool
	open    map[grid.Position]bool
	incons  map[grid.Position]bool
	closed  map[grid.Position]bool
	visited map[grid.Position]bool

	// IsExpanded reports whether the most recent Iterate call performed
	// any relaxation. The driver should only step epsilon after progress.
	IsExpanded bool
}

// NewARAState creates an empty, ready-to-use ARA* state.
func NewARAState() *ARAState {
	s := &ARAState{}
	s.Reset()
	return s
}

// Reset wipes g, prev, and all sets. Call when epsilon reaches the floor or
// the map/endpoints change.
func (s *ARAState) Reset() {
	s.g = make(map[grid.Position]float64)
	s.prev = make(map[grid.Position]grid.Position)
	s.hasPrev = make(map[grid.Position]bool)
	s.open = make(map[grid.Position]bool)
	s.incons = make(map[grid.Position]bool)
	s.closed = make(map[grid.Position]bool)
	s.visited = make(map[grid.Position]bool)
	s.IsExpanded = false
}

// Visited reports whether a cell was relaxed at any point across the
// state's lifetime, for visualization/inspection purposes only.
func (s *ARAState) Visited(p grid.Position) bool {
	return s.visited[p]
}

// ARAIteration runs one ARA* pass at the given epsilon and returns the
// current reconstructed path to `to` (possibly empty if `to` has not been
// reached by any iteration yet).
func ARAIteration(s *ARAState, d *grid.DungeonData, from, to grid.Position, epsilon float64) []grid.Position {
	if s.g == nil {
		s.Reset()
	}
	s.IsExpanded = false

	if !d.InBounds(from.X, from.Y) || !d.InBounds(to.X, to.Y) {
		return nil
	}
	if d.IsWall(from.X, from.Y) || d.IsWall(to.X, to.Y) {
		return nil
	}
	if from == to {
		return []grid.Position{from}
	}

	// 1. Drain incons into open.
	for p := range s.incons {
		s.open[p] = true
		delete(s.incons, p)
	}

	// 2. Seed if open is empty.
	if len(s.open) == 0 {
		s.g[from] = 0
		s.open[from] = true
		s.visited[from] = true
	}

	f := func(p grid.Position) float64 {
		return s.g[p] + epsilon*h(p, to)
	}

	// 3. Expand while f(to) > min f(open).
	for {
		if len(s.open) == 0 {
			break
		}
		cur, curF, ok := minOpen(s.open, f)
		if !ok {
			break
		}
		goalG, goalKnown := s.g[to]
		if goalKnown && goalG+epsilon*h(to, to) <= curF {
			break
		}

		delete(s.open, cur)
		s.closed[cur] = true

		for _, off := range grid.Neighbors4 {
			np := cur.Add(off)
			if !d.InBounds(np.X, np.Y) || d.IsWall(np.X, np.Y) {
				continue
			}
			tentative := s.g[cur] + float64(d.Cost(np.X, np.Y))
			existingG, seen := s.g[np]
			if !seen || tentative < existingG {
				s.g[np] = tentative
				s.prev[np] = cur
				s.hasPrev[np] = true
				s.visited[np] = true
				s.IsExpanded = true

				if !s.closed[np] {
					s.open[np] = true
				} else {
					s.incons[np] = true
				}
			}
		}
	}

	// 5. Return the current reconstructed path to `to`.
	if _, ok := s.g[to]; !ok {
		return nil
	}
	return araReconstruct(s, to)
}

func minOpen(open map[grid.Position]bool, f func(grid.Position) float64) (grid.Position, float64, bool) {
	var best grid.Position
	bestF := math.Inf(1)
	found := false
	for p := range open {
		v := f(p)
		if !found || v < bestF {
			best, bestF, found = p, v, true
		}
	}
	return best, bestF, found
}

func araReconstruct(s *ARAState, to grid.Position) []grid.Position {
	var path []grid.Position
	cur := to
	for {
		path = append(path, cur)
		if !s.hasPrev[cur] {
			break
		}
		cur = s.prev[cur]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
