// Package blackboard implements the typed, name-indexed per-agent scratch
// memory shared by FSM/HFSM transitions and behavior tree leaves.
package blackboard

import (
	"fmt"
	"reflect"
)

// SlotID indexes a registered blackboard slot.
type SlotID int

// Blackboard is a fixed-type, name-addressed key/value store. A slot's type
// is fixed at registration; subsequent Get/Set calls that disagree with it
// fail rather than silently coercing.
type Blackboard struct {
	names  map[string]SlotID
	types  []reflect.Type
	values []interface{}
}

// New creates an empty blackboard.
func New() *Blackboard {
	return &Blackboard{names: make(map[string]SlotID)}
}

// Register assigns a slot to `name` with the type of `zero`, returning its
// SlotID. Calling Register again with the same name is idempotent provided
// the type matches; a type mismatch on re-registration is an error.
func (b *Blackboard) Register(name string, zero interface{}) (SlotID, error) {
	t := reflect.TypeOf(zero)
	if id, ok := b.names[name]; ok {
		if b.types[id] != t {
			return 0, fmt.Errorf("blackboard: slot %q already registered as %s, cannot re-register as %s", name, b.types[id], t)
		}
		return id, nil
	}
	id := SlotID(len(b.types))
	b.names[name] = id
	b.types = append(b.types, t)
	b.values = append(b.values, zero)
	return id, nil
}

// Slot looks up a previously-registered slot by name.
func (b *Blackboard) Slot(name string) (SlotID, bool) {
	id, ok := b.names[name]
	return id, ok
}

// Set writes a value into the given slot. The value's type must match the
// slot's registered type.
func (b *Blackboard) Set(id SlotID, v interface{}) error {
	if int(id) < 0 || int(id) >= len(b.values) {
		return fmt.Errorf("blackboard: slot %d out of range", id)
	}
	t := reflect.TypeOf(v)
	if t != b.types[id] {
		return fmt.Errorf("blackboard: slot %d is %s, got %s", id, b.types[id], t)
	}
	b.values[id] = v
	return nil
}

// Get reads the value of the given slot.
func (b *Blackboard) Get(id SlotID) (interface{}, error) {
	if int(id) < 0 || int(id) >= len(b.values) {
		return nil, fmt.Errorf("blackboard: slot %d out of range", id)
	}
	return b.values[id], nil
}

// SetByName resolves `name` to a slot and sets it.
func (b *Blackboard) SetByName(name string, v interface{}) error {
	id, ok := b.names[name]
	if !ok {
		return fmt.Errorf("blackboard: slot %q is not registered", name)
	}
	return b.Set(id, v)
}

// GetByName resolves `name` to a slot and reads it.
func (b *Blackboard) GetByName(name string) (interface{}, error) {
	id, ok := b.names[name]
	if !ok {
		return nil, fmt.Errorf("blackboard: slot %q is not registered", name)
	}
	return b.Get(id)
}

// GetInt reads a slot known to hold an int, returning 0 on any error.
func (b *Blackboard) GetInt(name string) int {
	v, err := b.GetByName(name)
	if err != nil {
		return 0
	}
	i, _ := v.(int)
	return i
}

// GetBool reads a slot known to hold a bool, returning false on any error.
func (b *Blackboard) GetBool(name string) bool {
	v, err := b.GetByName(name)
	if err != nil {
		return false
	}
	bv, _ := v.(bool)
	return bv
}
