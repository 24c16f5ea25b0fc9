// Package player implements the player's combat state: movement intent,
// swings with per-swing attack ids, block and parry input, and knockback.
package player

import (
	"fmt"

	"github.com/cory-johannsen/vendetta/internal/game/combat"
	"github.com/cory-johannsen/vendetta/internal/game/world"
)

// Tuning holds the player's stats and input timings. Durations are milliseconds.
type Tuning struct {
	MaxHealth int
	Speed     float64
	// VerticalFactor scales Speed for up/down movement.
	VerticalFactor  float64
	PunchDamage     int
	PunchCooldownMs int64
	KickDamage      int
	KickCooldownMs  int64
	// SwingActiveMs is how long a swing's hitbox stays live.
	SwingActiveMs   int64
	ParryWindowMs   int64
	ParryCooldownMs int64
	HitboxW         float64
	HitboxH         float64
	// HitboxOffset is the horizontal distance from the body centre to the hitbox centre.
	HitboxOffset float64
	HurtboxW     float64
	HurtboxH     float64
}

// DefaultTuning returns the canonical player tuning.
func DefaultTuning() Tuning {
	return Tuning{
		MaxHealth:       100,
		Speed:           200,
		VerticalFactor:  0.6,
		PunchDamage:     12,
		PunchCooldownMs: 350,
		KickDamage:      18,
		KickCooldownMs:  500,
		SwingActiveMs:   120,
		ParryWindowMs:   110,
		ParryCooldownMs: 350,
		HitboxW:         40,
		HitboxH:         40,
		HitboxOffset:    40,
		HurtboxW:        48,
		HurtboxH:        64,
	}
}

// Input is one tick of player intent. MoveX and MoveY are read by sign only.
// Block, Punch, Kick, and Grab are edge-triggered presses; BlockHeld is level-triggered.
type Input struct {
	MoveX     int
	MoveY     int
	Punch     bool
	Kick      bool
	Block     bool
	BlockHeld bool
	Grab      bool
}

// Swing is an active player attack.
type Swing struct {
	ID     string
	Damage int
}

// Player is the player's ActorCombatState.
type Player struct {
	combat.Vitals

	Body  *world.Body
	Parry *combat.ParryWindow

	tuning         Tuning
	timers         *combat.Scheduler
	facing         float64
	blocking       bool
	swingSeq       uint64
	swing          *Swing
	swingTimer     combat.TimerID
	knockbackTimer combat.TimerID
	attackReadyAt  int64
}

// New creates a full-health player at pos facing right.
//
// Precondition: timers must be non-nil; t.MaxHealth >= 1.
func New(pos world.Vec, t Tuning, timers *combat.Scheduler) *Player {
	return &Player{
		Vitals: combat.NewVitals(t.MaxHealth),
		Body:   world.NewBody(pos),
		Parry:  combat.NewParryWindow(t.ParryWindowMs, t.ParryCooldownMs),
		tuning: t,
		timers: timers,
		facing: 1,
	}
}

// Facing returns +1 when facing right and -1 when facing left.
func (p *Player) Facing() float64 { return p.facing }

// Blocking reports whether the block input is held.
func (p *Player) Blocking() bool { return p.blocking }

// Attacking reports whether a swing's hitbox is live.
func (p *Player) Attacking() bool { return p.swing != nil }

// ActiveSwing returns the live swing, if any.
func (p *Player) ActiveSwing() (Swing, bool) {
	if p.swing == nil {
		return Swing{}, false
	}
	return *p.swing, true
}

// AttackReadyAt returns the earliest timestamp at which combat input is accepted.
func (p *Player) AttackReadyAt() int64 { return p.attackReadyAt }

// HandleInput applies one tick of intent at nowMs. Movement is ignored while a
// knockback impulse is locking input. Combat input (parry attempt, punch, kick)
// is ignored until the previous swing's cooldown has elapsed; a parry attempt
// takes the tick's combat action.
func (p *Player) HandleInput(nowMs int64, in Input) {
	if p.IsDead() {
		return
	}
	p.blocking = in.BlockHeld
	p.move(nowMs, in)

	if nowMs < p.attackReadyAt {
		return
	}
	switch {
	case in.Block:
		p.Parry.AttemptOpen(nowMs)
	case in.Punch:
		p.beginSwing(nowMs, p.tuning.PunchDamage, p.tuning.PunchCooldownMs)
	case in.Kick:
		p.beginSwing(nowMs, p.tuning.KickDamage, p.tuning.KickCooldownMs)
	}
}

func (p *Player) move(nowMs int64, in Input) {
	if p.MovementLocked(nowMs) {
		return
	}
	p.Body.Stop()
	switch {
	case in.MoveX < 0:
		p.Body.SetVelocityX(-p.tuning.Speed)
		p.facing = -1
	case in.MoveX > 0:
		p.Body.SetVelocityX(p.tuning.Speed)
		p.facing = 1
	}
	switch {
	case in.MoveY < 0:
		p.Body.Velocity.Y = -p.tuning.Speed * p.tuning.VerticalFactor
	case in.MoveY > 0:
		p.Body.Velocity.Y = p.tuning.Speed * p.tuning.VerticalFactor
	}
}

func (p *Player) beginSwing(nowMs int64, damage int, cooldownMs int64) {
	p.swingSeq++
	p.swing = &Swing{ID: fmt.Sprintf("player-swing-%d", p.swingSeq), Damage: damage}
	p.timers.Cancel(p.swingTimer)
	p.swingTimer = p.timers.After(nowMs, p.tuning.SwingActiveMs, func(int64) {
		p.swingTimer = 0
		p.swing = nil
	})
	p.attackReadyAt = nowMs + cooldownMs
}

// Hitbox returns the region of the player's swing, on the facing side.
func (p *Player) Hitbox() world.Rect {
	c := p.Body.Position
	c.X += p.facing * p.tuning.HitboxOffset
	return world.RectAt(c, p.tuning.HitboxW, p.tuning.HitboxH)
}

// Hurtbox returns the region in which enemy hits land.
func (p *Player) Hurtbox() world.Rect {
	return world.RectAt(p.Body.Position, p.tuning.HurtboxW, p.tuning.HurtboxH)
}

// Knockback applies a velocity impulse that locks movement input for lockMs
// and clears the velocity when the lock expires. No-op once dead.
func (p *Player) Knockback(nowMs int64, impulse world.Vec, lockMs int64) {
	if p.IsDead() {
		return
	}
	p.Body.SetVelocity(impulse.X, impulse.Y)
	p.KnockbackLockUntil = nowMs + lockMs
	p.timers.Cancel(p.knockbackTimer)
	p.knockbackTimer = p.timers.After(nowMs, lockMs, func(int64) {
		p.knockbackTimer = 0
		if !p.IsDead() {
			p.Body.Stop()
		}
	})
}

// Kill marks the player dead, ends any swing, and cancels pending timers. Idempotent.
func (p *Player) Kill() {
	if p.IsDead() {
		return
	}
	p.MarkDead()
	p.timers.Cancel(p.swingTimer)
	p.timers.Cancel(p.knockbackTimer)
	p.swingTimer, p.knockbackTimer = 0, 0
	p.swing = nil
	p.blocking = false
	p.Body.Stop()
}

// DebugState returns the HUD label for the player at nowMs. A hit taken
// mid-swing still reads "attack".
func (p *Player) DebugState(nowMs int64) string {
	switch {
	case p.IsDead():
		return "dead"
	case p.Attacking():
		return "attack"
	case p.Invulnerable(nowMs):
		return "iframes"
	case p.Parry.Active(nowMs):
		return "parry"
	case p.blocking:
		return "blocking"
	default:
		return "idle"
	}
}
