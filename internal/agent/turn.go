package agent

import (
	"github.com/Faultbox/dungeonkernel/pkg/decision"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

// delta maps an Action to the cell offset it requests. Non-move actions
// request no movement.
func delta(act decision.Action) grid.Position {
	switch act {
	case decision.MoveLeft:
		return grid.Position{X: -1, Y: 0}
	case decision.MoveRight:
		return grid.Position{X: 1, Y: 0}
	case decision.MoveDown:
		return grid.Position{X: 0, Y: 1}
	case decision.MoveUp:
		return grid.Position{X: 0, Y: -1}
	default:
		return grid.Position{}
	}
}

// ResetAllDecisionCores resets every agent's decision core to its initial
// state.
func (w *World) ResetAllDecisionCores() {
	for _, a := range w.agents {
		a.Reset(w)
	}
}

// ProcessTurn drives one tick of the turn loop (spec §4.8):
//  1. Wait unless the player has a non-NOP action queued.
//  2. Advance the player's action-budget counter; only once it wraps does
//     every NPC's decision core run to populate its Action.
//  3. Resolve actions in two deferred phases: compute-and-block, then
//     commit.
//  4. Reap dead agents.
//  5. Resolve pickups.
//  6. Decrement heal cooldowns.
//
// Returns false (without advancing anything else) if there is no player
// or the player has no action queued this call.
func (w *World) ProcessTurn(dt float64) bool {
	player, ok := w.Player()
	if !ok || player.Action == decision.NOP {
		return false
	}

	player.curAction++
	if player.curAction >= player.ActionBudget {
		player.curAction = 0
		for _, a := range w.agents {
			if a.IsPlayer || !a.IsAlive() {
				continue
			}
			if a.Weights != nil {
				w.stepDmap(a)
			} else {
				a.Act(dt, w)
			}
		}
	}

	w.resolveActions()
	w.Reap()
	w.resolvePickups()
	w.tickCooldowns()
	return true
}

// resolveActions implements the two deferred phases: every actor's
// nextPos is computed from reads of current MovePos values (never mid-
// phase writes), so two actors can never swap into each other's cells.
func (w *World) resolveActions() {
	type pending struct {
		a       *Agent
		nextPos grid.Position
		blocked bool
	}

	plans := make([]pending, 0, len(w.agents))
	occupied := make(map[grid.Position]*Agent, len(w.agents))
	for _, a := range w.agents {
		if !a.IsAlive() {
			continue
		}
		occupied[a.MovePos] = a
	}

	for _, a := range w.agents {
		if !a.IsAlive() {
			continue
		}
		d := delta(a.Action)
		next := a.Position.Add(d)
		if d == (grid.Position{}) {
			plans = append(plans, pending{a: a, nextPos: a.Position})
			continue
		}
		if !w.dungeon.InBounds(next.X, next.Y) || w.dungeon.IsWall(next.X, next.Y) {
			plans = append(plans, pending{a: a, nextPos: a.Position, blocked: true})
			continue
		}
		if blocker, ok := occupied[next]; ok && blocker != a {
			if blocker.Team != a.Team {
				blocker.TakeDamage(a.MeleeDamage)
			}
			plans = append(plans, pending{a: a, nextPos: a.Position, blocked: true})
			continue
		}
		plans = append(plans, pending{a: a, nextPos: next})
	}

	for _, p := range plans {
		if p.blocked {
			p.a.Action = decision.NOP
			continue
		}
		p.a.MovePos = p.nextPos
	}

	for _, p := range plans {
		p.a.Position = p.a.MovePos
		p.a.Action = decision.NOP
	}
}

func (w *World) resolvePickups() {
	player, ok := w.Player()
	if !ok {
		return
	}

	live := w.Heals[:0]
	for _, h := range w.Heals {
		if !h.gone && h.Pos == player.Position {
			player.Heal(h.Amount)
			h.gone = true
			continue
		}
		if !h.gone {
			live = append(live, h)
		}
	}
	w.Heals = live

	liveP := w.Powerups[:0]
	for _, p := range w.Powerups {
		if !p.gone && p.Pos == player.Position {
			player.MeleeDamage += p.Amount
			p.gone = true
			continue
		}
		if !p.gone {
			liveP = append(liveP, p)
		}
	}
	w.Powerups = liveP
}

func (w *World) tickCooldowns() {
	for _, a := range w.agents {
		if a.HealCooldown > 0 {
			a.HealCooldown--
		}
	}
}
