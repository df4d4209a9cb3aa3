// Package dijkstra builds multi-source scalar influence fields over floor
// tiles by iterative relaxation, and combines them into agent steering.
package dijkstra

import (
	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

// Invalid is the sentinel value for unreachable/unset cells.
const Invalid = 1e5

// Map is a W*H float field, one value per grid cell.
type Map struct {
	Width, Height int
	Values        []float64
}

// New creates a Map with every cell initialized to Invalid.
func New(width, height int) *Map {
	m := &Map{Width: width, Height: height, Values: make([]float64, width*height)}
	for i := range m.Values {
		m.Values[i] = Invalid
	}
	return m
}

func (m *Map) index(x, y int) int {
	return y*m.Width + x
}

func (m *Map) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// At returns the value at (x,y), or Invalid if out of bounds.
func (m *Map) At(x, y int) float64 {
	if !m.inBounds(x, y) {
		return Invalid
	}
	return m.Values[m.index(x, y)]
}

// Set writes the value at (x,y). Out-of-bounds writes are ignored.
func (m *Map) Set(x, y int, v float64) {
	if !m.inBounds(x, y) {
		return
	}
	m.Values[m.index(x, y)] = v
}

// Seed sets a source cell's value, if it improves on the current value.
// Per spec.md §4.5, sources are seeded at cost 0 (or negative, for the
// scaled flee map).
func (m *Map) Seed(p grid.Position, cost float64) {
	if m.At(p.X, p.Y) > cost {
		m.Set(p.X, p.Y, cost)
	}
}

// Scale multiplies every finite (non-Invalid) cell by s, used by the flee
// map's sign-flip step.
func (m *Map) Scale(s float64) {
	for i, v := range m.Values {
		if v != Invalid {
			m.Values[i] = v * s
		}
	}
}

// Relax repeatedly scans the full grid, setting m[c] = min(m[c],
// min(neighbor)+1) for every floor cell c, treating out-of-bounds and
// non-floor neighbors as contributing m[c] itself (i.e. not traversable),
// until a full pass performs no update. O(W*H*diameter); acceptable for
// the map sizes this kernel targets (§4.5).
func (m *Map) Relax(d *grid.DungeonData) {
	for {
		changed := false
		for y := 0; y < d.Height; y++ {
			for x := 0; x < d.Width; x++ {
				if !d.IsFloor(x, y) {
					continue
				}
				cur := m.At(x, y)
				best := cur
				for _, off := range grid.Neighbors4 {
					nx, ny := x+off.X, y+off.Y
					var nv float64
					if d.InBounds(nx, ny) && d.IsFloor(nx, ny) {
						nv = m.At(nx, ny) + 1
					} else {
						nv = cur
					}
					if nv < best {
						best = nv
					}
				}
				if best < cur {
					m.Set(x, y, best)
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

// LOS reports whether a straight-line traversal from `from` to `to`,
// advancing one cell at a time along whichever axis has the larger
// remaining delta, never crosses a wall.
func LOS(d *grid.DungeonData, from, to grid.Position) bool {
	x, y := from.X, from.Y
	for x != to.X || y != to.Y {
		if d.IsWall(x, y) {
			return false
		}
		dx := to.X - x
		dy := to.Y - y
		if abs(dx) >= abs(dy) {
			x += sign(dx)
		} else {
			y += sign(dy)
		}
	}
	return !d.IsWall(x, y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
