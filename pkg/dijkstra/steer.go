package dijkstra

import (
	"math"

	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

// DmapWeights is the per-variant coefficient vector an agent steers by,
// per spec.md §4.5 ("an agent with a DmapWeights vector"). The original
// source (w4/dmapFollower.h) carries this as its own ECS component,
// independent of whichever FSM/BT core also drives the entity; this kernel
// mirrors that independence as internal/agent.Agent.Weights, a field
// orthogonal to Agent.Core rather than a fourth CoreKind.
type DmapWeights struct {
	Approach float64
	Flee     float64
	Hive     float64
	Explore  float64
	Ally     float64
}

// Maps bundles the five influence maps §4.5 names. A nil field is treated
// as all-INVALID (zero contribution), the same convention GenHive uses for
// "no sources this turn".
type Maps struct {
	Approach *Map
	Flee     *Map
	Hive     *Map
	Explore  *Map
	Ally     *Map
}

// weightedAt computes Σᵢ wᵢ·mapᵢ[x,y], the steering formula from spec.md
// §4.5. An absent map or an INVALID cell contributes 0 to the sum rather
// than wᵢ·INVALID, matching the Hive-with-no-sources Open Question
// decision in DESIGN.md: an unseeded map must not dominate the sum just
// because its sentinel is a large number.
func weightedAt(maps Maps, w DmapWeights, x, y int) float64 {
	sum := 0.0
	sum += term(maps.Approach, w.Approach, x, y)
	sum += term(maps.Flee, w.Flee, x, y)
	sum += term(maps.Hive, w.Hive, x, y)
	sum += term(maps.Explore, w.Explore, x, y)
	sum += term(maps.Ally, w.Ally, x, y)
	return sum
}

func term(m *Map, w float64, x, y int) float64 {
	if m == nil || w == 0 {
		return 0
	}
	v := m.At(x, y)
	if v >= Invalid {
		return 0
	}
	return w * v
}

// BestNeighbor returns the 4-connected offset whose weighted sum is minimal
// among in-bounds, floor neighbors, ties broken by the fixed move-enum order
// (left, right, down, up). Returns the zero offset (stand still) if every
// neighbor is blocked or out of bounds.
func BestNeighbor(d *grid.DungeonData, maps Maps, w DmapWeights, pos grid.Position) grid.Position {
	moveOrder := [4]grid.Position{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	best := grid.Position{}
	bestVal := math.Inf(1)
	found := false
	for _, off := range moveOrder {
		n := pos.Add(off)
		if !d.InBounds(n.X, n.Y) || !d.IsFloor(n.X, n.Y) {
			continue
		}
		v := weightedAt(maps, w, n.X, n.Y)
		if !found || v < bestVal {
			bestVal = v
			best = off
			found = true
		}
	}
	return best
}
