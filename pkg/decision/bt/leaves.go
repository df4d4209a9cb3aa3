package bt

import (
	"github.com/Faultbox/dungeonkernel/pkg/blackboard"
	"github.com/Faultbox/dungeonkernel/pkg/decision"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

// leafFunc adapts a plain function to Node, for the stateless leaves below.
type leafFunc func(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status

func (f leafFunc) Tick(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
	return f(dt, world, entity, bb)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// stepToward picks the single 4-connected move that advances from `from`
// toward `to`, preferring the axis with the larger remaining delta; ties
// and the zero-delta axis resolve toward the fixed enum order
// (left/right/down/up), matching the steering tie-break rule in spec §4.5.
func stepToward(from, to grid.Position) decision.Action {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if dx == 0 && dy == 0 {
		return decision.NOP
	}
	if abs(dx) >= abs(dy) {
		if dx > 0 {
			return decision.MoveRight
		}
		return decision.MoveLeft
	}
	if dy > 0 {
		return decision.MoveDown
	}
	return decision.MoveUp
}

func posSlotName(bbKey string) string    { return bbKey + "_pos" }
func handleSlotName(bbKey string) string { return bbKey + "_handle" }

// IsLowHP succeeds iff the acting entity's own hitpoints are below t.
func IsLowHP(t float64) Node {
	return leafFunc(func(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
		if entity.Hitpoints() < t {
			return Success
		}
		return Fail
	})
}

// findTagged is the shared implementation behind find_enemy/find_heal/
// find_powerup/find_waypoint: nearest-entity-with-tag search, writing the
// handle and position to the named blackboard slots on success.
func findTagged(tag string, radius int, bbKey string) Node {
	return leafFunc(func(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
		h, pos, ok := world.NearestTagged(tag, entity.Position(), radius)
		if !ok {
			return Fail
		}
		posID, err := bb.Register(posSlotName(bbKey), grid.Position{})
		if err != nil {
			return Fail
		}
		handleID, err := bb.Register(handleSlotName(bbKey), decision.EntityHandle{})
		if err != nil {
			return Fail
		}
		if err := bb.Set(posID, pos); err != nil {
			return Fail
		}
		if err := bb.Set(handleID, h); err != nil {
			return Fail
		}
		return Success
	})
}

// FindEnemy searches for the nearest entity tagged "enemy" within radius
// (<=0 unbounded), recording it under bbKey.
func FindEnemy(radius int, bbKey string) Node { return findTagged("enemy", radius, bbKey) }

// FindHeal searches for the nearest heal pickup.
func FindHeal(bbKey string) Node { return findTagged("heal", 0, bbKey) }

// FindPowerup searches for the nearest powerup pickup.
func FindPowerup(bbKey string) Node { return findTagged("powerup", 0, bbKey) }

// FindWaypoint searches for the nearest patrol waypoint.
func FindWaypoint(bbKey string) Node { return findTagged("waypoint", 0, bbKey) }

// MoveToEntity steps the acting entity one cell toward the position
// recorded at bbKey by a prior find_* leaf. If the referenced entity is no
// longer alive (stale-target, spec §7 category 3), it fails without side
// effects.
func MoveToEntity(bbKey string) Node {
	return leafFunc(func(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
		handleID, ok := bb.Slot(handleSlotName(bbKey))
		if !ok {
			return Fail
		}
		hv, err := bb.Get(handleID)
		if err != nil {
			return Fail
		}
		h, ok := hv.(decision.EntityHandle)
		if !ok || !world.IsAlive(h) {
			return Fail
		}

		posID, ok := bb.Slot(posSlotName(bbKey))
		if !ok {
			return Fail
		}
		pv, err := bb.Get(posID)
		if err != nil {
			return Fail
		}
		target, ok := pv.(grid.Position)
		if !ok {
			return Fail
		}

		entity.SetAction(stepToward(entity.Position(), target))
		return Success
	})
}

// Flee steps the acting entity one cell away from the position recorded
// at bbKey (typically populated by a prior find_enemy). Fails without
// side effects if no such target is recorded.
func Flee(bbKey string) Node {
	return leafFunc(func(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
		posID, ok := bb.Slot(posSlotName(bbKey))
		if !ok {
			return Fail
		}
		pv, err := bb.Get(posID)
		if err != nil {
			return Fail
		}
		threat, ok := pv.(grid.Position)
		if !ok {
			return Fail
		}

		entity.SetAction(stepToward(threat, entity.Position()))
		return Success
	})
}

// PatrolAnchored is the optional capability an entity exposes to support
// the patrol leaf: a fixed anchor point to range around.
type PatrolAnchored interface {
	PatrolAnchor() grid.Position
}

// Patrol steps the entity toward its patrol anchor whenever it strays past
// radius cells away, and otherwise advances along a fixed-order cycle of
// moves recorded in bbKey so it keeps drifting rather than idling. Fails
// if the entity does not expose a patrol anchor.
func Patrol(radius int, bbKey string) Node {
	moves := []decision.Action{decision.MoveRight, decision.MoveLeft, decision.MoveDown, decision.MoveUp}
	return leafFunc(func(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
		anchored, ok := entity.(PatrolAnchored)
		if !ok {
			return Fail
		}
		anchor := anchored.PatrolAnchor()
		pos := entity.Position()
		dx := pos.X - anchor.X
		dy := pos.Y - anchor.Y
		if abs(dx)+abs(dy) > radius {
			entity.SetAction(stepToward(pos, anchor))
			return Success
		}

		cycleID, err := bb.Register(bbKey, 0)
		if err != nil {
			return Fail
		}
		cur, err := bb.Get(cycleID)
		if err != nil {
			return Fail
		}
		idx, _ := cur.(int)
		entity.SetAction(moves[idx%len(moves)])
		_ = bb.Set(cycleID, idx+1)
		return Success
	})
}
