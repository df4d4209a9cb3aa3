// Package fsm implements the finite-state-machine decision core: an
// arena of states addressed by index, with an ordered, first-match-wins
// transition list per state. Per spec design note, this replaces a
// heap-owned pointer graph with an index-based arena so cycles are benign
// and destruction is just dropping the slice.
package fsm

import (
	"fmt"

	"github.com/Faultbox/dungeonkernel/pkg/decision"
)

// StateID indexes a state within an FSM's arena.
type StateID int

// State is one node of the machine. Enter/Exit are lifecycle hooks; Act
// runs every tick the state is current.
type State interface {
	Enter(world decision.World, entity decision.Entity)
	Exit(world decision.World, entity decision.Entity)
	Act(dt float64, world decision.World, entity decision.Entity)
}

// Predicate is a transition guard. Implementations must be side-effect
// free (spec invariant).
type Predicate interface {
	IsAvailable(world decision.World, entity decision.Entity) bool
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(world decision.World, entity decision.Entity) bool

// IsAvailable implements Predicate.
func (f PredicateFunc) IsAvailable(world decision.World, entity decision.Entity) bool {
	return f(world, entity)
}

type transition struct {
	pred Predicate
	to   StateID
}

// FSM is the arena-backed state machine: a slice of states, each with an
// ordered outgoing transition list, and a single active `current` index.
type FSM struct {
	states      []State
	transitions [][]transition
	current     StateID
	entered     bool
}

// New creates an empty machine.
func New() *FSM {
	return &FSM{}
}

// AddState appends a state, returning its id (the insertion index).
func (m *FSM) AddState(s State) StateID {
	id := StateID(len(m.states))
	m.states = append(m.states, s)
	m.transitions = append(m.transitions, nil)
	return id
}

// AddTransition appends an outgoing transition from `from` to `to` guarded
// by `pred`, evaluated in insertion order. May introduce cycles.
func (m *FSM) AddTransition(pred Predicate, from, to StateID) error {
	if int(from) < 0 || int(from) >= len(m.states) {
		return fmt.Errorf("fsm: add_transition: from state %d out of range", from)
	}
	if int(to) < 0 || int(to) >= len(m.states) {
		return fmt.Errorf("fsm: add_transition: to state %d out of range", to)
	}
	m.transitions[from] = append(m.transitions[from], transition{pred: pred, to: to})
	return nil
}

// Current returns the active state id.
func (m *FSM) Current() StateID {
	return m.current
}

// Reset sets current to state 0 and calls its Enter hook. Calling Reset on
// an empty machine is a programmer error (spec §7 category 4); it panics
// rather than silently doing nothing, matching the kernel's debug-abort
// contract.
func (m *FSM) Reset(world decision.World, entity decision.Entity) {
	if len(m.states) == 0 {
		panic("fsm: reset called on an FSM with no states")
	}
	m.current = 0
	m.states[0].Enter(world, entity)
	m.entered = true
}

// Act inspects the current state's outgoing transitions in insertion
// order; the first whose predicate is available fires exactly once
// (Exit(current), current := to, Enter(new)), then transition evaluation
// stops for this tick. Finally Act runs on whatever is now current
// (possibly the just-entered state).
func (m *FSM) Act(dt float64, world decision.World, entity decision.Entity) {
	if len(m.states) == 0 {
		panic("fsm: act called on an FSM with no states")
	}
	if !m.entered {
		panic("fsm: act called before reset")
	}

	for _, t := range m.transitions[m.current] {
		if t.pred.IsAvailable(world, entity) {
			m.states[m.current].Exit(world, entity)
			m.current = t.to
			m.states[m.current].Enter(world, entity)
			break
		}
	}

	m.states[m.current].Act(dt, world, entity)
}

// StateCount returns the number of registered states.
func (m *FSM) StateCount() int {
	return len(m.states)
}
