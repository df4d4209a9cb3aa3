// Package bt implements the behavior-tree decision core: composite,
// decorator, and leaf nodes returning success/fail/running, ticked
// depth-first left-to-right against a decision.World and a per-agent
// blackboard.
package bt

import (
	"github.com/Faultbox/dungeonkernel/pkg/blackboard"
	"github.com/Faultbox/dungeonkernel/pkg/decision"
)

// Status is the outcome of one node tick.
type Status int

const (
	Success Status = iota
	Fail
	Running
)

// Node is any behavior-tree element.
type Node interface {
	Tick(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status
}

// Sequence fails on the first failing child; a running child short-circuits
// as running; all children succeeding yields success.
type Sequence struct {
	Children []Node
}

// SequenceOf constructs a sequence composite.
func SequenceOf(children ...Node) *Sequence {
	return &Sequence{Children: children}
}

func (s *Sequence) Tick(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
	for _, c := range s.Children {
		st := c.Tick(dt, world, entity, bb)
		if st != Success {
			return st
		}
	}
	return Success
}

// Selector succeeds on the first succeeding child; a running child
// short-circuits as running; all children failing yields failure.
type Selector struct {
	Children []Node
}

// SelectorOf constructs a selector composite.
func SelectorOf(children ...Node) *Selector {
	return &Selector{Children: children}
}

func (s *Selector) Tick(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
	for _, c := range s.Children {
		st := c.Tick(dt, world, entity, bb)
		if st != Fail {
			return st
		}
	}
	return Fail
}

// Parallel ticks every child; if any is running, the node reports running,
// else it reports the first non-running child's result.
type Parallel struct {
	Children []Node
}

// ParallelOf constructs a parallel composite.
func ParallelOf(children ...Node) *Parallel {
	return &Parallel{Children: children}
}

func (p *Parallel) Tick(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
	first := Fail
	haveFirst := false
	anyRunning := false
	for _, c := range p.Children {
		st := c.Tick(dt, world, entity, bb)
		if st == Running {
			anyRunning = true
			continue
		}
		if !haveFirst {
			first = st
			haveFirst = true
		}
	}
	if anyRunning {
		return Running
	}
	if haveFirst {
		return first
	}
	return Fail
}

// Invert flips success/fail; running passes through unchanged.
type Invert struct {
	Child Node
}

// InvertOf constructs an invert decorator.
func InvertOf(child Node) *Invert {
	return &Invert{Child: child}
}

func (n *Invert) Tick(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
	st := n.Child.Tick(dt, world, entity, bb)
	switch st {
	case Success:
		return Fail
	case Fail:
		return Success
	default:
		return Running
	}
}

// resolveHandleSlot ensures a bb slot exists for an EntityHandle keyed by
// name, reusing it across ticks.
func resolveHandleSlot(bb *blackboard.Blackboard, name string) (blackboard.SlotID, error) {
	return bb.Register(name, decision.EntityHandle{})
}
