package agent

import (
	"github.com/Faultbox/dungeonkernel/pkg/decision"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

// HealPickup is a one-shot world item that restores hitpoints on pickup.
type HealPickup struct {
	Pos    grid.Position
	Amount float64
	gone   bool
}

// PowerupPickup is a one-shot world item that increases melee damage on
// pickup.
type PowerupPickup struct {
	Pos    grid.Position
	Amount float64
	gone   bool
}

// World owns every agent on a single DungeonData and answers the queries
// decision cores need. Mirrors the teacher's entity Manager: a map keyed
// by id, with a distinguished player reference.
type World struct {
	dungeon    *grid.DungeonData
	agents     map[ID]*Agent
	nextID     ID
	playerID   ID
	havePlayer bool

	Heals    []*HealPickup
	Powerups []*PowerupPickup

	// Ranges tunes dmap-follower steering (spec.md §4.5); defaults to
	// DefaultDijkstraRanges so a world works untuned.
	Ranges DijkstraRanges
}

// NewWorld creates an empty world over the given grid.
func NewWorld(d *grid.DungeonData) *World {
	return &World{dungeon: d, agents: make(map[ID]*Agent), Ranges: DefaultDijkstraRanges()}
}

// Spawn creates and registers a new agent.
func (w *World) Spawn(pos grid.Position, team int, maxHP float64) *Agent {
	id := w.nextID
	w.nextID++
	a := New(id, pos, team, maxHP)
	w.agents[id] = a
	return a
}

// SetPlayer marks an already-spawned agent as the world's player.
func (w *World) SetPlayer(a *Agent) {
	a.IsPlayer = true
	w.playerID = a.id
	w.havePlayer = true
}

// Player returns the player agent, if any.
func (w *World) Player() (*Agent, bool) {
	if !w.havePlayer {
		return nil, false
	}
	a, ok := w.agents[w.playerID]
	return a, ok && a.IsAlive()
}

// Get returns an agent by id.
func (w *World) Get(id ID) (*Agent, bool) {
	a, ok := w.agents[id]
	return a, ok
}

// All returns every currently-registered agent (including the about-to-
// be-reaped dead ones; callers filter with IsAlive as needed).
func (w *World) All() []*Agent {
	out := make([]*Agent, 0, len(w.agents))
	for _, a := range w.agents {
		out = append(out, a)
	}
	return out
}

// Reap removes every agent with hitpoints <= 0, bumping its generation so
// any handle still referencing it reads as dead.
func (w *World) Reap() {
	for id, a := range w.agents {
		if !a.IsAlive() {
			a.generation++
			a.alive = false
			delete(w.agents, id)
		}
	}
}

// decision.World implementation.

// NearestTagged returns the closest alive agent carrying `tag` within
// radius of `from` (radius <= 0 means unbounded), measured in Manhattan
// distance. No tag is special-cased and teams are not consulted: "enemy"
// matches exactly the alive agents whose Tags["enemy"] is set.
func (w *World) NearestTagged(tag string, from grid.Position, radius int) (decision.EntityHandle, grid.Position, bool) {
	best := -1
	var bestAgent *Agent
	for _, a := range w.agents {
		if !a.IsAlive() || !a.Tags[tag] {
			continue
		}
		d := manhattan(from, a.Position)
		if radius > 0 && d > radius {
			continue
		}
		if best == -1 || d < best {
			best = d
			bestAgent = a
		}
	}
	if bestAgent == nil {
		return decision.EntityHandle{}, grid.Position{}, false
	}
	return bestAgent.Handle(), bestAgent.Position, true
}

// IsAlive reports whether a handle still refers to a live agent at its
// recorded generation.
func (w *World) IsAlive(h decision.EntityHandle) bool {
	a, ok := w.agents[ID(h.ID)]
	if !ok {
		return false
	}
	return a.generation == h.Generation && a.IsAlive()
}

// PositionOf returns an alive handle's position.
func (w *World) PositionOf(h decision.EntityHandle) (grid.Position, bool) {
	a, ok := w.agents[ID(h.ID)]
	if !ok || a.generation != h.Generation || !a.IsAlive() {
		return grid.Position{}, false
	}
	return a.Position, true
}

// PlayerHitpoints returns the player's current hitpoints.
func (w *World) PlayerHitpoints() (float64, bool) {
	p, ok := w.Player()
	if !ok {
		return 0, false
	}
	return p.Hitpoints, true
}

// Grid returns the dungeon grid.
func (w *World) Grid() *grid.DungeonData { return w.dungeon }

func manhattan(a, b grid.Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
