package agent

import (
	"github.com/Faultbox/dungeonkernel/pkg/decision"
	"github.com/Faultbox/dungeonkernel/pkg/dijkstra"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

// DijkstraRanges bundles the per-variant range/threshold tuning dmap
// steering uses: how far the approach/flee and explore maps reach, and the
// hitpoints floor below which an ally counts as wounded. A host sets these
// from config.DijkstraConfig; DefaultDijkstraRanges mirrors config's own
// defaults so a World works untuned.
type DijkstraRanges struct {
	ApproachRange int
	ExploreRange  int
	AllyHPFloor   float64
}

// DefaultDijkstraRanges returns the same tuning config.Default().Dijkstra
// carries, so a bare NewWorld behaves sensibly without a host wiring it.
func DefaultDijkstraRanges() DijkstraRanges {
	return DijkstraRanges{ApproachRange: 12, ExploreRange: 6, AllyHPFloor: 40}
}

// SetDijkstraRanges overrides the world's dmap-steering tuning.
func (w *World) SetDijkstraRanges(r DijkstraRanges) { w.Ranges = r }

// hiveTag is the tag a spawner marks hive-pack monsters with for the
// hive-pack influence map's sources, per spec.md §4.5.
const hiveTag = "hive"

// stepDmap drives one dmap-follower agent for a tick (spec.md §4.5):
// rebuild its five influence maps from the current world snapshot, then
// steer it toward the weighted-minimum neighbor. Dijkstra maps are
// regenerated fresh each call rather than cached, per spec.md §4.8's
// "Dijkstra maps are regenerated before being consulted by any follower in
// the same turn."
func (w *World) stepDmap(a *Agent) {
	if a.exploreState == nil {
		a.exploreState = dijkstra.NewExploreState(w.dungeon.Width, w.dungeon.Height)
	}

	approach := dijkstra.New(w.dungeon.Width, w.dungeon.Height)
	dijkstra.GenApproach(w.dungeon, w.teamPositions(0), w.Ranges.ApproachRange, approach)

	flee := dijkstra.New(w.dungeon.Width, w.dungeon.Height)
	dijkstra.GenFlee(w.dungeon, w.teamPositions(0), w.Ranges.ApproachRange, flee)

	hive := dijkstra.New(w.dungeon.Width, w.dungeon.Height)
	dijkstra.GenHive(w.dungeon, w.taggedPositions(hiveTag), hive)

	ally := dijkstra.New(w.dungeon.Width, w.dungeon.Height)
	dijkstra.GenAlly(w.dungeon, w.woundedAllies(a), ally)

	dijkstra.GenExplore(w.dungeon, a.exploreState, a.Position, w.Ranges.ExploreRange)
	explore := dijkstra.New(w.dungeon.Width, w.dungeon.Height)
	dijkstra.ExploreReadout(w.dungeon, a.exploreState, explore)

	maps := dijkstra.Maps{Approach: approach, Flee: flee, Hive: hive, Explore: explore, Ally: ally}
	off := dijkstra.BestNeighbor(w.dungeon, maps, *a.Weights, a.Position)
	a.Action = actionForOffset(off)
}

// actionForOffset maps a 4-neighbor offset back to the Action the turn
// resolver understands; the zero offset (no floor neighbor) means stand
// still.
func actionForOffset(off grid.Position) decision.Action {
	switch off {
	case (grid.Position{X: 1, Y: 0}):
		return decision.MoveRight
	case (grid.Position{X: -1, Y: 0}):
		return decision.MoveLeft
	case (grid.Position{X: 0, Y: 1}):
		return decision.MoveDown
	case (grid.Position{X: 0, Y: -1}):
		return decision.MoveUp
	default:
		return decision.NOP
	}
}

// teamPositions returns the positions of every alive agent on `team`, used
// as the approach/flee map's "player-team agent" sources (team 0 is the
// hardcoded player team, matching the original source's convention).
func (w *World) teamPositions(team int) []grid.Position {
	var out []grid.Position
	for _, ag := range w.agents {
		if ag.IsAlive() && ag.Team == team {
			out = append(out, ag.Position)
		}
	}
	return out
}

// taggedPositions returns the positions of every alive agent carrying tag.
func (w *World) taggedPositions(tag string) []grid.Position {
	var out []grid.Position
	for _, ag := range w.agents {
		if ag.IsAlive() && ag.Tags[tag] {
			out = append(out, ag.Position)
		}
	}
	return out
}

// woundedAllies returns the positions of self's living same-team allies
// (excluding self) whose hitpoints are below the configured floor.
func (w *World) woundedAllies(self *Agent) []grid.Position {
	var out []grid.Position
	for _, ag := range w.agents {
		if ag == self || !ag.IsAlive() || ag.Team != self.Team {
			continue
		}
		if ag.Hitpoints < w.Ranges.AllyHPFloor {
			out = append(out, ag.Position)
		}
	}
	return out
}
