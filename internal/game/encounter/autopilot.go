package encounter

import (
	"math"

	"github.com/cory-johannsen/vendetta/internal/game/player"
	"github.com/cory-johannsen/vendetta/internal/game/world"
)

// Autopilot is a scripted stand-in for keyboard input. It walks toward the
// nearest enemy, swings when the hitbox reaches, taps block just before a
// telegraphed strike lands, and uses the hazard when one is in reach.
type Autopilot struct {
	// Hazard is the environmental kill spot; UseHazard enables grabs.
	Hazard    world.Hazard
	UseHazard bool
	// ParryLeadMs is how early before a hit frame the bot taps block.
	ParryLeadMs int64
	// Reach is the horizontal distance in front of the player at which a swing connects.
	Reach float64

	swings int
}

// NewAutopilot returns an Autopilot tuned for the default player hitbox.
func NewAutopilot(hazard world.Hazard, useHazard bool) *Autopilot {
	return &Autopilot{Hazard: hazard, UseHazard: useHazard, ParryLeadMs: 90, Reach: 75}
}

// Decide returns the input for the next tick given the current snapshot.
func (a *Autopilot) Decide(s Snapshot) player.Input {
	var in player.Input
	if s.PlayerState == "dead" {
		return in
	}

	pos := s.PlayerPosition
	target, threat := a.pick(s)
	if threat != nil {
		in.BlockHeld = true
		in.Block = !s.ParryActive && threat.StateRemainingMs <= a.ParryLeadMs
		return in
	}
	if target == nil {
		return in
	}

	if a.UseHazard && a.Hazard.PlayerInReach(world.Vec{X: pos.X, Y: pos.Y}) &&
		world.Distance(world.Vec{X: target.Position.X, Y: target.Position.Y}, a.Hazard.Center) < a.Hazard.EnemyReach {
		in.Grab = true
		return in
	}

	dx := target.Position.X - pos.X
	dy := target.Position.Y - pos.Y
	ahead := dx * s.PlayerFacing
	if math.Abs(dx) > a.Reach || ahead <= 0 {
		in.MoveX = sign(dx)
	}
	if math.Abs(dy) > 20 {
		in.MoveY = sign(dy)
	}
	if ahead > 0 && ahead < a.Reach && math.Abs(dy) < 45 {
		a.swings++
		if a.swings%3 == 0 {
			in.Kick = true
		} else {
			in.Punch = true
		}
	}
	return in
}

// pick returns the nearest living enemy and, separately, the nearest enemy
// winding up close enough to land its strike.
func (a *Autopilot) pick(s Snapshot) (nearest, threat *EnemyView) {
	pos := world.Vec{X: s.PlayerPosition.X, Y: s.PlayerPosition.Y}
	best, bestThreat := math.Inf(1), math.Inf(1)
	for i := range s.Enemies {
		v := &s.Enemies[i]
		if v.State == "dead" {
			continue
		}
		d := world.Distance(pos, world.Vec{X: v.Position.X, Y: v.Position.Y})
		if d < best {
			best, nearest = d, v
		}
		if v.State == "telegraph" && d < 120 && float64(v.StateRemainingMs) < bestThreat {
			bestThreat, threat = float64(v.StateRemainingMs), v
		}
	}
	return nearest, threat
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
