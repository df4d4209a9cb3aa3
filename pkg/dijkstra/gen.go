package dijkstra

import (
	"github.com/Faultbox/dungeonkernel/pkg/geom"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

// FleeScale is the sign-flip/amplification factor applied to the approach
// map to produce the flee map, per spec.md §4.5.
const FleeScale = -1.2

// UnexploredSentinel marks a cell the persistent explore map has not yet
// covered. It is distinct from Invalid: Invalid means "this floor cell has
// no seeded source reaching it this turn"; Unexplored means "this agent has
// never been in LOS+range of this cell". Chosen lower than the Explored
// value (0) so gradient-descent steering is pulled toward the frontier.
//
// spec.md §9 leaves the explore map's exact sentinel unspecified; this is
// the Open Question decision recorded in DESIGN.md.
const UnexploredSentinel = -1.0

// ExploreState is the per-agent persistent "have I seen this cell?" map
// that GenExplore updates incrementally across turns.
type ExploreState struct {
	Width, Height int
	explored      []bool
}

// NewExploreState creates a fresh explore-tracking map, width*height cells,
// none explored.
func NewExploreState(width, height int) *ExploreState {
	return &ExploreState{Width: width, Height: height, explored: make([]bool, width*height)}
}

func (s *ExploreState) index(x, y int) int { return y*s.Width + x }

// IsExplored reports whether (x,y) has ever been observed.
func (s *ExploreState) IsExplored(x, y int) bool {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return false
	}
	return s.explored[s.index(x, y)]
}

// GenApproach seeds cost-0 at every floor cell within `rng` of any source
// that is LOS-visible from that source, then relaxes. Used for the
// approach-player influence map.
func GenApproach(d *grid.DungeonData, sources []grid.Position, rng int, out *Map) {
	for i := range out.Values {
		out.Values[i] = Invalid
	}
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if !d.IsFloor(x, y) {
				continue
			}
			cell := grid.Position{X: x, Y: y}
			for _, src := range sources {
				if geom.Manhattan(src.X, src.Y, x, y) > rng {
					continue
				}
				if !LOS(d, src, cell) {
					continue
				}
				out.Seed(cell, 0)
				break
			}
		}
	}
	out.Relax(d)
}

// GenFlee recomputes the approach-player map, then multiplies every finite
// cell by FleeScale and relaxes again, per spec.md §4.5. The sign-flip
// means finite flee cells have the opposite sign of the corresponding
// approach cells (modulo the scale factor) — see the testable property in
// spec.md §8.
func GenFlee(d *grid.DungeonData, sources []grid.Position, rng int, out *Map) {
	GenApproach(d, sources, rng, out)
	out.Scale(FleeScale)
	out.Relax(d)
}

// GenHive seeds cost-0 at every Hive-tagged cell and relaxes. If sources is
// empty the map remains all-Invalid; per spec.md §9, followers must treat
// that as contributing 0 to a weighted steering sum, not as a hard
// obstacle.
func GenHive(d *grid.DungeonData, sources []grid.Position, out *Map) {
	for i := range out.Values {
		out.Values[i] = Invalid
	}
	for _, src := range sources {
		out.Seed(src, 0)
	}
	out.Relax(d)
}

// GenAlly seeds cost-0 at every other same-team agent position supplied
// (the caller is expected to have already filtered by HP-below-threshold)
// and relaxes. Used for the wounded-ally influence map.
func GenAlly(d *grid.DungeonData, woundedAllies []grid.Position, out *Map) {
	GenHive(d, woundedAllies, out)
}

// GenExplore updates the agent's persistent explored-map: every floor cell
// within `rng` of `from` that is LOS-visible becomes Explored. It writes
// no Map; ExploreReadout turns the state into one (0 for explored cells,
// UnexploredSentinel for the rest, no relaxation).
//
// spec.md §9 flags the source's seeding bound as likely using `y <
// dd.width` where `dd.height` was meant; this implementation clamps to
// dd.height as instructed, diverging from that likely-buggy bound rather
// than reproducing it.
func GenExplore(d *grid.DungeonData, state *ExploreState, from grid.Position, rng int) {
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if !d.IsFloor(x, y) {
				continue
			}
			if geom.Manhattan(from.X, from.Y, x, y) > rng {
				continue
			}
			if !LOS(d, from, grid.Position{X: x, Y: y}) {
				continue
			}
			state.explored[state.index(x, y)] = true
		}
	}
}

// ExploreReadout fills `out` from the persistent explore state: 0 where
// explored, UnexploredSentinel elsewhere (wall cells stay Invalid).
func ExploreReadout(d *grid.DungeonData, state *ExploreState, out *Map) {
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if !d.IsFloor(x, y) {
				out.Set(x, y, Invalid)
				continue
			}
			if state.IsExplored(x, y) {
				out.Set(x, y, 0)
			} else {
				out.Set(x, y, UnexploredSentinel)
			}
		}
	}
}
