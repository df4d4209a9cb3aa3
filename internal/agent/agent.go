// Package agent implements the turn-based agent runtime: the per-agent
// data model, the decision-core dispatch, and the two-phase deferred turn
// resolution that drives movement, melee, pickups, and reaping.
package agent

import (
	"github.com/Faultbox/dungeonkernel/pkg/blackboard"
	"github.com/Faultbox/dungeonkernel/pkg/decision"
	"github.com/Faultbox/dungeonkernel/pkg/decision/bt"
	"github.com/Faultbox/dungeonkernel/pkg/decision/fsm"
	"github.com/Faultbox/dungeonkernel/pkg/dijkstra"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

// ID identifies an agent within a World.
type ID uint32

// CoreKind tags which decision core an agent carries. An agent carries at
// most one; CoreNone means it has none, as for a newly spawned agent or a
// dmap follower.
type CoreKind uint8

const (
	CoreNone CoreKind = iota
	CoreFSM
	CoreBT
)

// Agent is one actor on the grid: a player, an NPC, or a monster, driven
// by at most one decision core.
type Agent struct {
	id       ID
	Position grid.Position
	MovePos  grid.Position
	Anchor   grid.Position // patrol anchor

	Hitpoints   float64
	MaxHP       float64
	Action      decision.Action
	Team        int
	MeleeDamage float64

	ActionBudget int // numActions
	curAction    int

	HealCooldown int

	generation int
	alive      bool

	Core     CoreKind
	fsmCore  *fsm.FSM
	btCore   bt.Node
	bb       *blackboard.Blackboard
	IsPlayer bool
	Tags     map[string]bool

	// Weights, when non-nil, makes this agent a dmap follower (spec.md
	// §4.5): the turn loop steers it by the weighted influence-map sum
	// instead of calling its (absent) FSM/BT core. exploreState is its
	// persistent per-agent "have I seen this cell?" map, lazily sized to
	// the world's grid on first use.
	Weights      *dijkstra.DmapWeights
	exploreState *dijkstra.ExploreState
}

// New creates a live agent at pos, team `team`, with the given max
// hitpoints, starting at full health.
func New(id ID, pos grid.Position, team int, maxHP float64) *Agent {
	return &Agent{
		id:           id,
		Position:     pos,
		MovePos:      pos,
		Anchor:       pos,
		Hitpoints:    maxHP,
		MaxHP:        maxHP,
		Team:         team,
		MeleeDamage:  1,
		ActionBudget: 1,
		alive:        true,
		bb:           blackboard.New(),
		Tags:         make(map[string]bool),
	}
}

// ID returns the agent's identity.
func (a *Agent) ID() ID { return a.id }

// Handle returns a weak handle to this agent, valid as long as its
// generation matches the world's bookkeeping at read time.
func (a *Agent) Handle() decision.EntityHandle {
	return decision.EntityHandle{ID: int(a.id), Generation: a.generation}
}

// Blackboard returns this agent's scratch memory.
func (a *Agent) Blackboard() *blackboard.Blackboard { return a.bb }

// SetFSM installs an FSM/HFSM decision core, making it the agent's active
// core.
func (a *Agent) SetFSM(m *fsm.FSM) {
	a.fsmCore = m
	a.btCore = nil
	a.Core = CoreFSM
}

// SetBT installs a behavior-tree decision core, making it the agent's
// active core.
func (a *Agent) SetBT(n bt.Node) {
	a.btCore = n
	a.fsmCore = nil
	a.Core = CoreBT
}

// SetDmapWeights makes this agent a dmap follower, per spec.md §4.5. It
// clears any FSM/BT core: dmap steering replaces act-dispatch for this
// agent rather than composing with it, mirroring the original source's
// dmapFollower system running independent of (and mutually exclusive
// with, in practice) the state-machine and behavior-tree systems.
func (a *Agent) SetDmapWeights(w dijkstra.DmapWeights) {
	a.Weights = &w
	a.fsmCore = nil
	a.btCore = nil
	a.Core = CoreNone
}

// IsAlive reports whether the agent has not yet been reaped.
func (a *Agent) IsAlive() bool { return a.alive && a.Hitpoints > 0 }

// TakeDamage applies damage, clamping hitpoints at 0.
func (a *Agent) TakeDamage(amount float64) {
	a.Hitpoints -= amount
	if a.Hitpoints < 0 {
		a.Hitpoints = 0
	}
}

// Heal restores hitpoints, clamping at MaxHP.
func (a *Agent) Heal(amount float64) {
	a.Hitpoints += amount
	if a.Hitpoints > a.MaxHP {
		a.Hitpoints = a.MaxHP
	}
}

// Act drives this agent's active decision core for one tick.
func (a *Agent) Act(dt float64, world decision.World) {
	switch a.Core {
	case CoreFSM:
		if a.fsmCore != nil {
			a.fsmCore.Act(dt, world, entityView{a})
		}
	case CoreBT:
		if a.btCore != nil {
			a.btCore.Tick(dt, world, entityView{a}, a.bb)
		}
	}
}

// Reset resets this agent's decision core to its initial state.
func (a *Agent) Reset(world decision.World) {
	if a.Core == CoreFSM && a.fsmCore != nil {
		a.fsmCore.Reset(world, entityView{a})
	}
}

// entityView adapts *Agent's concrete accessor names to the
// decision.Entity / decision.MutableEntity / bt.PatrolAnchored method
// names, so Agent itself can expose plain field-like accessors
// (Position, Hitpoints, Team) without colliding with its exported data
// fields of the same name.
type entityView struct{ a *Agent }

func (v entityView) Position() grid.Position       { return v.a.Position }
func (v entityView) Hitpoints() float64            { return v.a.Hitpoints }
func (v entityView) Team() int                     { return v.a.Team }
func (v entityView) SetAction(act decision.Action) { v.a.Action = act }
func (v entityView) PatrolAnchor() grid.Position   { return v.a.Anchor }
