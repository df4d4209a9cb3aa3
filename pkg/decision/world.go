// Package decision holds the shared query surface FSM/HFSM transition
// predicates and behavior-tree leaves use to observe the world, kept
// independent of any concrete agent/ECS representation so decision cores
// stay testable against mock worlds (spec design note: "world queries").
package decision

import "github.com/Faultbox/dungeonkernel/pkg/grid"

// EntityHandle is a weak reference to a world entity: an id plus a
// generation counter, validated on every read rather than dereferenced
// directly. This replaces a raw is-alive pointer check with a comparison
// the world can always answer safely, even for an entity that has since
// been reaped and its slot reused.
type EntityHandle struct {
	ID         int
	Generation int
}

// Entity is the read-only view a decision core has of the agent it drives.
type Entity interface {
	Position() grid.Position
	Hitpoints() float64
	Team() int
}

// Action is a desired per-turn action, set by a decision core and consumed
// by the turn resolver. Move actions are contiguous so "pick a random
// move" can be a uniform draw over [MoveLeft, MoveUp].
type Action int

// Action enum values, per spec §3.
const (
	NOP Action = iota
	MoveLeft
	MoveRight
	MoveDown
	MoveUp
	Attack
)

// MutableEntity extends Entity with the write the behavior tree performs:
// setting the agent's desired action for this tick.
type MutableEntity interface {
	Entity
	SetAction(Action)
}

// World is the query surface available to transition predicates and
// behavior-tree leaves. Tags identify the "component" an entity carries
// (e.g. "enemy", "heal", "powerup", "waypoint", or a caller-defined tag for
// tag-in-range-D) without requiring a closed set of entity kinds.
type World interface {
	// NearestTagged returns the closest alive entity tagged `tag` within
	// `radius` of `from` (radius <= 0 means unbounded), or ok=false if none
	// qualifies.
	NearestTagged(tag string, from grid.Position, radius int) (h EntityHandle, pos grid.Position, ok bool)

	// IsAlive reports whether a handle still refers to a live entity.
	IsAlive(h EntityHandle) bool

	// PositionOf returns an alive handle's current position.
	PositionOf(h EntityHandle) (grid.Position, bool)

	// PlayerHitpoints returns the player agent's hitpoints, or ok=false if
	// there is no player in this world.
	PlayerHitpoints() (hp float64, ok bool)

	// Grid returns the dungeon grid this world's entities move on.
	Grid() *grid.DungeonData
}
