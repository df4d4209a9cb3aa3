package fsm

import (
	"github.com/Faultbox/dungeonkernel/pkg/decision"
)

// EnemyWithinD returns a predicate true when an entity tagged "enemy"
// exists within d cells of the acting entity. Teams are not compared.
func EnemyWithinD(d int) Predicate {
	return PredicateFunc(func(world decision.World, entity decision.Entity) bool {
		_, _, ok := world.NearestTagged("enemy", entity.Position(), d)
		return ok
	})
}

// HitpointsBelowT returns a predicate true when the acting entity's own
// hitpoints are below t.
func HitpointsBelowT(t float64) Predicate {
	return PredicateFunc(func(world decision.World, entity decision.Entity) bool {
		return entity.Hitpoints() < t
	})
}

// PlayerHitpointsBelowT returns a predicate true when the world's player
// hitpoints are below t. False if there is no player in this world.
func PlayerHitpointsBelowT(t float64) Predicate {
	return PredicateFunc(func(world decision.World, entity decision.Entity) bool {
		hp, ok := world.PlayerHitpoints()
		return ok && hp < t
	})
}

// CounterEqualsK returns a predicate true when get() == k. The counter is
// supplied as an accessor so the predicate stays side-effect-free, per the
// kernel's transition-predicate invariant.
func CounterEqualsK(get func() int, k int) Predicate {
	return PredicateFunc(func(world decision.World, entity decision.Entity) bool {
		return get() == k
	})
}

// TagInRangeD returns a predicate true when an entity tagged `tag` exists
// within d cells of the acting entity.
func TagInRangeD(tag string, d int) Predicate {
	return PredicateFunc(func(world decision.World, entity decision.Entity) bool {
		_, _, ok := world.NearestTagged(tag, entity.Position(), d)
		return ok
	})
}

// Negate inverts a predicate.
func Negate(p Predicate) Predicate {
	return PredicateFunc(func(world decision.World, entity decision.Entity) bool {
		return !p.IsAvailable(world, entity)
	})
}

// And short-circuits: false as soon as the left operand is false.
func And(l, r Predicate) Predicate {
	return PredicateFunc(func(world decision.World, entity decision.Entity) bool {
		return l.IsAvailable(world, entity) && r.IsAvailable(world, entity)
	})
}
