package fsm

import "github.com/Faultbox/dungeonkernel/pkg/decision"

// NestedState adapts an inner FSM into an outer State: Enter resets the
// inner machine, Act delegates to the inner machine's Act, and Exit calls
// Exit on the inner machine's current state. This gives the two-level hierarchy
// the spec calls for without a separate HFSM type: an HFSM is simply an
// FSM whose states are NestedState wrappers.
type NestedState struct {
	Inner *FSM
}

// NewNestedState wraps an inner FSM as an outer state.
func NewNestedState(inner *FSM) *NestedState {
	return &NestedState{Inner: inner}
}

// Enter resets the inner machine.
func (n *NestedState) Enter(world decision.World, entity decision.Entity) {
	n.Inner.Reset(world, entity)
}

// Exit calls Exit on the inner machine's current state, so every inner
// state entered is also exited when the outer state is left. The next
// Enter resets the inner machine.
func (n *NestedState) Exit(world decision.World, entity decision.Entity) {
	if n.Inner.entered && len(n.Inner.states) > 0 {
		n.Inner.states[n.Inner.current].Exit(world, entity)
	}
}

// Act delegates to the inner machine.
func (n *NestedState) Act(dt float64, world decision.World, entity decision.Entity) {
	n.Inner.Act(dt, world, entity)
}
