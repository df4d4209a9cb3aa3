package bt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dungeonkernel/pkg/blackboard"
	"github.com/Faultbox/dungeonkernel/pkg/decision"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

type mockWorld struct {
	tagged map[string][]grid.Position
	alive  map[int]bool
	g      *grid.DungeonData
}

func newMockWorld() *mockWorld {
	return &mockWorld{tagged: make(map[string][]grid.Position), alive: make(map[int]bool), g: grid.New(10, 10)}
}

func (w *mockWorld) NearestTagged(tag string, from grid.Position, radius int) (decision.EntityHandle, grid.Position, bool) {
	ps := w.tagged[tag]
	if len(ps) == 0 {
		return decision.EntityHandle{}, grid.Position{}, false
	}
	h := decision.EntityHandle{ID: 1}
	w.alive[1] = true
	return h, ps[0], true
}
func (w *mockWorld) IsAlive(h decision.EntityHandle) bool { return w.alive[h.ID] }
func (w *mockWorld) PositionOf(h decision.EntityHandle) (grid.Position, bool) {
	return grid.Position{}, w.alive[h.ID]
}
func (w *mockWorld) PlayerHitpoints() (float64, bool) { return 0, false }
func (w *mockWorld) Grid() *grid.DungeonData          { return w.g }

type mockEntity struct {
	pos    grid.Position
	hp     float64
	team   int
	action decision.Action
	anchor grid.Position
}

func (e *mockEntity) Position() grid.Position    { return e.pos }
func (e *mockEntity) Hitpoints() float64         { return e.hp }
func (e *mockEntity) Team() int                  { return e.team }
func (e *mockEntity) SetAction(a decision.Action) { e.action = a }
func (e *mockEntity) PatrolAnchor() grid.Position { return e.anchor }

func TestSequence_FailsOnFirstFailure(t *testing.T) {
	w := newMockWorld()
	e := &mockEntity{hp: 100}
	bb := blackboard.New()

	seq := SequenceOf(IsLowHP(50), FindEnemy(10, "target"))
	assert.Equal(t, Fail, seq.Tick(1, w, e, bb))
}

func TestSequence_AllSucceed(t *testing.T) {
	w := newMockWorld()
	w.tagged["enemy"] = []grid.Position{{X: 5, Y: 5}}
	e := &mockEntity{hp: 10}
	bb := blackboard.New()

	seq := SequenceOf(IsLowHP(50), FindEnemy(10, "target"))
	assert.Equal(t, Success, seq.Tick(1, w, e, bb))
}

// TestSelector_LowHPThenMoveToEntity mirrors spec scenario 6: selector
// [is_low_hp(50), move_to_entity("player")] with hp=80 returns the result
// of move_to_entity and leaves hp untouched.
func TestSelector_LowHPThenMoveToEntity(t *testing.T) {
	w := newMockWorld()
	w.tagged["enemy"] = []grid.Position{{X: 5, Y: 0}}
	e := &mockEntity{hp: 80, pos: grid.Position{X: 0, Y: 0}}
	bb := blackboard.New()

	find := FindEnemy(10, "player")
	require.Equal(t, Success, find.Tick(1, w, e, bb))

	sel := SelectorOf(IsLowHP(50), MoveToEntity("player"))
	result := sel.Tick(1, w, e, bb)

	assert.Equal(t, Success, result)
	assert.Equal(t, 80.0, e.hp, "hp must be untouched by the move leaf")
	assert.Equal(t, decision.MoveRight, e.action)
}

func TestSelector_AllFail(t *testing.T) {
	w := newMockWorld()
	e := &mockEntity{hp: 100}
	bb := blackboard.New()
	sel := SelectorOf(IsLowHP(50), FindEnemy(5, "x"))
	assert.Equal(t, Fail, sel.Tick(1, w, e, bb))
}

func TestParallel_RunningWins(t *testing.T) {
	running := leafFunc(func(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
		return Running
	})
	failing := leafFunc(func(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
		return Fail
	})
	p := ParallelOf(failing, running)
	w := newMockWorld()
	e := &mockEntity{}
	bb := blackboard.New()
	assert.Equal(t, Running, p.Tick(1, w, e, bb))
}

func TestParallel_FirstNonRunningWhenNoneRunning(t *testing.T) {
	succ := leafFunc(func(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
		return Success
	})
	fail := leafFunc(func(dt float64, world decision.World, entity decision.MutableEntity, bb *blackboard.Blackboard) Status {
		return Fail
	})
	p := ParallelOf(succ, fail)
	w := newMockWorld()
	e := &mockEntity{}
	bb := blackboard.New()
	assert.Equal(t, Success, p.Tick(1, w, e, bb))
}

func TestInvert(t *testing.T) {
	w := newMockWorld()
	e := &mockEntity{hp: 10}
	bb := blackboard.New()
	node := InvertOf(IsLowHP(50))
	assert.Equal(t, Fail, node.Tick(1, w, e, bb))

	e.hp = 100
	assert.Equal(t, Success, node.Tick(1, w, e, bb))
}

func TestMoveToEntity_StaleTargetFailsWithoutSideEffects(t *testing.T) {
	w := newMockWorld()
	w.tagged["enemy"] = []grid.Position{{X: 5, Y: 0}}
	e := &mockEntity{pos: grid.Position{X: 0, Y: 0}}
	bb := blackboard.New()

	require.Equal(t, Success, FindEnemy(10, "target").Tick(1, w, e, bb))
	w.alive[1] = false // entity died since it was found

	e.action = decision.NOP
	assert.Equal(t, Fail, MoveToEntity("target").Tick(1, w, e, bb))
	assert.Equal(t, decision.NOP, e.action, "no action should be set on a stale target")
}

func TestFlee_StepsAwayFromThreat(t *testing.T) {
	w := newMockWorld()
	w.tagged["enemy"] = []grid.Position{{X: 5, Y: 0}}
	e := &mockEntity{pos: grid.Position{X: 0, Y: 0}}
	bb := blackboard.New()

	require.Equal(t, Success, FindEnemy(10, "threat").Tick(1, w, e, bb))
	assert.Equal(t, Success, Flee("threat").Tick(1, w, e, bb))
	assert.Equal(t, decision.MoveLeft, e.action)
}

func TestPatrol_ReturnsToAnchorWhenTooFar(t *testing.T) {
	w := newMockWorld()
	e := &mockEntity{pos: grid.Position{X: 10, Y: 0}, anchor: grid.Position{X: 0, Y: 0}}
	bb := blackboard.New()

	assert.Equal(t, Success, Patrol(3, "cycle").Tick(1, w, e, bb))
	assert.Equal(t, decision.MoveLeft, e.action)
}

func TestPatrol_CyclesWithinRadius(t *testing.T) {
	w := newMockWorld()
	e := &mockEntity{pos: grid.Position{X: 0, Y: 0}, anchor: grid.Position{X: 0, Y: 0}}
	bb := blackboard.New()

	node := Patrol(3, "cycle")
	require.Equal(t, Success, node.Tick(1, w, e, bb))
	first := e.action
	require.Equal(t, Success, node.Tick(1, w, e, bb))
	second := e.action
	assert.NotEqual(t, first, second)
}
