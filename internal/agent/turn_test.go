package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dungeonkernel/pkg/decision"
	"github.com/Faultbox/dungeonkernel/pkg/decision/fsm"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

func TestProcessTurn_NoPlayerActionWaits(t *testing.T) {
	d := grid.New(5, 5)
	w := NewWorld(d)
	p := w.Spawn(grid.Position{X: 0, Y: 0}, 0, 10)
	w.SetPlayer(p)

	advanced := w.ProcessTurn(1.0)
	assert.False(t, advanced)
}

func TestProcessTurn_MovesPlayer(t *testing.T) {
	d := grid.New(5, 5)
	w := NewWorld(d)
	p := w.Spawn(grid.Position{X: 0, Y: 0}, 0, 10)
	w.SetPlayer(p)

	p.Action = decision.MoveRight
	advanced := w.ProcessTurn(1.0)

	require.True(t, advanced)
	assert.Equal(t, grid.Position{X: 1, Y: 0}, p.Position)
	assert.Equal(t, decision.NOP, p.Action)
}

func TestProcessTurn_BlockedBySameTeamSetsNOPWithoutDamage(t *testing.T) {
	d := grid.New(5, 5)
	w := NewWorld(d)
	p := w.Spawn(grid.Position{X: 0, Y: 0}, 0, 10)
	w.SetPlayer(p)
	ally := w.Spawn(grid.Position{X: 1, Y: 0}, 0, 10)

	p.Action = decision.MoveRight
	w.ProcessTurn(1.0)

	assert.Equal(t, grid.Position{X: 0, Y: 0}, p.Position, "blocked move must not commit")
	assert.Equal(t, 10.0, ally.Hitpoints, "same-team blocker takes no damage")
}

func TestProcessTurn_BlockedByEnemyDealsDamage(t *testing.T) {
	d := grid.New(5, 5)
	w := NewWorld(d)
	p := w.Spawn(grid.Position{X: 0, Y: 0}, 0, 10)
	w.SetPlayer(p)
	p.MeleeDamage = 3
	enemy := w.Spawn(grid.Position{X: 1, Y: 0}, 1, 10)

	p.Action = decision.MoveRight
	w.ProcessTurn(1.0)

	assert.Equal(t, grid.Position{X: 0, Y: 0}, p.Position)
	assert.Equal(t, 7.0, enemy.Hitpoints)
}

func TestProcessTurn_WallBlocksMovement(t *testing.T) {
	d := grid.New(5, 5)
	d.Set(1, 0, grid.Wall)
	w := NewWorld(d)
	p := w.Spawn(grid.Position{X: 0, Y: 0}, 0, 10)
	w.SetPlayer(p)

	p.Action = decision.MoveRight
	w.ProcessTurn(1.0)

	assert.Equal(t, grid.Position{X: 0, Y: 0}, p.Position)
}

func TestProcessTurn_ReapsDeadAgents(t *testing.T) {
	d := grid.New(5, 5)
	w := NewWorld(d)
	p := w.Spawn(grid.Position{X: 0, Y: 0}, 0, 10)
	w.SetPlayer(p)
	victim := w.Spawn(grid.Position{X: 1, Y: 0}, 1, 1)
	p.MeleeDamage = 5

	p.Action = decision.MoveRight
	w.ProcessTurn(1.0)

	_, ok := w.Get(victim.ID())
	assert.False(t, ok, "victim should be reaped once hp <= 0")
}

func TestProcessTurn_HealPickupAppliesAndDespawns(t *testing.T) {
	d := grid.New(5, 5)
	w := NewWorld(d)
	p := w.Spawn(grid.Position{X: 0, Y: 0}, 0, 10)
	w.SetPlayer(p)
	p.TakeDamage(5)
	w.Heals = []*HealPickup{{Pos: grid.Position{X: 1, Y: 0}, Amount: 3}}

	p.Action = decision.MoveRight
	w.ProcessTurn(1.0)

	assert.Equal(t, 8.0, p.Hitpoints)
	assert.Empty(t, w.Heals)
}

func TestProcessTurn_PowerupIncreasesMeleeDamageAndDespawns(t *testing.T) {
	d := grid.New(5, 5)
	w := NewWorld(d)
	p := w.Spawn(grid.Position{X: 0, Y: 0}, 0, 10)
	w.SetPlayer(p)
	w.Powerups = []*PowerupPickup{{Pos: grid.Position{X: 1, Y: 0}, Amount: 2}}

	before := p.MeleeDamage
	p.Action = decision.MoveRight
	w.ProcessTurn(1.0)

	assert.Equal(t, before+2, p.MeleeDamage)
	assert.Empty(t, w.Powerups)
}

func TestProcessTurn_DecrementsHealCooldown(t *testing.T) {
	d := grid.New(5, 5)
	w := NewWorld(d)
	p := w.Spawn(grid.Position{X: 0, Y: 0}, 0, 10)
	w.SetPlayer(p)
	p.HealCooldown = 2

	p.Action = decision.MoveRight
	w.ProcessTurn(1.0)

	assert.Equal(t, 1, p.HealCooldown)
}

func TestProcessTurn_NPCsActOnlyAfterActionBudgetWraps(t *testing.T) {
	d := grid.New(10, 5)
	w := NewWorld(d)
	p := w.Spawn(grid.Position{X: 0, Y: 0}, 0, 10)
	w.SetPlayer(p)
	p.ActionBudget = 2

	npc := w.Spawn(grid.Position{X: 5, Y: 0}, 1, 10)
	npcFSM := fsm.New()
	npcFSM.AddState(&movingState{move: decision.MoveLeft})
	npc.SetFSM(npcFSM)
	w.ResetAllDecisionCores()

	p.Action = decision.MoveRight
	w.ProcessTurn(1.0) // curAction: 0 -> 1, does not wrap (budget 2)
	assert.Equal(t, grid.Position{X: 5, Y: 0}, npc.Position, "NPC should not have acted yet")

	p.Action = decision.MoveRight
	w.ProcessTurn(1.0) // curAction: 1 -> 2 -> wraps to 0, NPC acts
	assert.Equal(t, grid.Position{X: 4, Y: 0}, npc.Position, "NPC should have acted once budget wrapped")
}
