package npc

import (
	"github.com/cory-johannsen/vendetta/internal/game/combat"
	"github.com/cory-johannsen/vendetta/internal/game/dice"
	"github.com/cory-johannsen/vendetta/internal/game/world"
)

// Enemy is a live enemy actor: its combat vitals plus the behavior state machine
//
//	patrol <-> chase -> telegraph -> recovery -> patrol
//	any -> stunned -> patrol
//
// telegraph, recovery, and stunned are timer-owned: each holds exactly one
// pending Scheduler handle, and every transition out of them cancels it.
type Enemy struct {
	combat.Vitals

	// ID uniquely identifies this enemy within the encounter.
	ID string
	// Template is the resolved stat profile.
	Template *Template
	// Body is the enemy's physical body.
	Body *world.Body

	// OnHitFrame is invoked exactly once per completed wind-up, after the
	// transition to recovery. Nil disables attack dispatch.
	OnHitFrame func(e *Enemy, nowMs int64)
	// OnStateChange is invoked after every state transition. May be nil.
	OnStateChange func(e *Enemy, from, to State)

	behavior         Behavior
	timers           *combat.Scheduler
	src              dice.Source
	state            State
	attackCooldownMs int64
	attackReadyAt    int64
	patrolDir        float64
	patrolUntil      int64
	stateTimer       combat.TimerID
	knockbackTimer   combat.TimerID
}

// NewEnemy creates a patrolling enemy at pos with full health.
//
// Precondition: tmpl, timers, and src must be non-nil.
// Postcondition: State() == StatePatrol; Health == tmpl.MaxHP.
func NewEnemy(id string, tmpl *Template, pos world.Vec, b Behavior, timers *combat.Scheduler, src dice.Source) *Enemy {
	return &Enemy{
		Vitals:           combat.NewVitals(tmpl.MaxHP),
		ID:               id,
		Template:         tmpl,
		Body:             world.NewBody(pos),
		behavior:         b,
		timers:           timers,
		src:              src,
		state:            StatePatrol,
		attackCooldownMs: tmpl.AttackCooldownMs(b.AttackCooldownMs),
	}
}

// State returns the current behavior state.
func (e *Enemy) State() State { return e.state }

// Damage returns the damage dealt by this enemy's hit frame.
func (e *Enemy) Damage() int { return e.Template.Damage }

// AttackReadyAt returns the earliest timestamp at which a new wind-up may start.
func (e *Enemy) AttackReadyAt() int64 { return e.attackReadyAt }

// StateTimer returns the handle owned by the current timer-owned state, or zero.
func (e *Enemy) StateTimer() combat.TimerID { return e.stateTimer }

// Hurtbox returns the region in which the player's swings land.
func (e *Enemy) Hurtbox() world.Rect {
	return world.RectAt(e.Body.Position, e.behavior.HurtboxW, e.behavior.HurtboxH)
}

// Update runs one tick of AI. target is the player's position; engage is false
// when there is no living player to pursue.
// Timer-owned states and knocked-back enemies are left untouched.
func (e *Enemy) Update(nowMs int64, target world.Vec, engage bool) {
	if e.IsDead() || e.state.TimerOwned() || e.MovementLocked(nowMs) {
		return
	}
	if !engage {
		e.patrol(nowMs)
		return
	}

	dist := world.Distance(e.Body.Position, target)
	switch {
	case dist < e.behavior.StrikeRange:
		if nowMs >= e.attackReadyAt {
			e.beginTelegraph(nowMs)
			return
		}
		e.setState(StateChase)
		e.Body.Stop()
	case dist < e.behavior.ChaseRange:
		e.setState(StateChase)
		e.Body.MoveToward(target, e.Template.Speed)
	default:
		e.patrol(nowMs)
	}
}

// Stun forces the enemy into stunned for durMs, cancelling any pending
// wind-up, recovery, or earlier stun. No-op once dead.
func (e *Enemy) Stun(nowMs, durMs int64) {
	if e.IsDead() {
		return
	}
	e.cancelStateTimer()
	e.setState(StateStunned)
	e.stateTimer = e.timers.After(nowMs, durMs, e.endStun)
}

// Knockback applies a velocity impulse, suppresses AI movement for lockMs,
// and clears the velocity after the behavior's knockback stop delay. No-op once dead.
func (e *Enemy) Knockback(nowMs int64, impulse world.Vec, lockMs int64) {
	if e.IsDead() {
		return
	}
	e.Body.SetVelocity(impulse.X, impulse.Y)
	e.KnockbackLockUntil = nowMs + lockMs
	e.timers.Cancel(e.knockbackTimer)
	e.knockbackTimer = e.timers.After(nowMs, e.behavior.KnockbackStopMs, func(int64) {
		e.knockbackTimer = 0
		if !e.IsDead() {
			e.Body.Stop()
		}
	})
}

// Kill marks the enemy dead and cancels every pending timer it owns. Idempotent.
func (e *Enemy) Kill() {
	if e.IsDead() {
		return
	}
	e.MarkDead()
	e.cancelStateTimer()
	e.timers.Cancel(e.knockbackTimer)
	e.knockbackTimer = 0
	e.Body.Stop()
	e.setState(StateDead)
}

func (e *Enemy) beginTelegraph(nowMs int64) {
	e.setState(StateTelegraph)
	e.Body.Stop()
	e.stateTimer = e.timers.After(nowMs, e.behavior.TelegraphMs, e.hitFrame)
}

func (e *Enemy) hitFrame(nowMs int64) {
	if e.IsDead() || e.state != StateTelegraph {
		return
	}
	e.stateTimer = 0
	e.setState(StateRecovery)
	e.attackReadyAt = nowMs + e.attackCooldownMs
	e.stateTimer = e.timers.After(nowMs, e.behavior.RecoveryMs, e.endRecovery)
	if e.OnHitFrame != nil {
		e.OnHitFrame(e, nowMs)
	}
}

func (e *Enemy) endRecovery(int64) {
	if e.IsDead() || e.state != StateRecovery {
		return
	}
	e.stateTimer = 0
	e.setState(StatePatrol)
}

func (e *Enemy) endStun(int64) {
	if e.IsDead() || e.state != StateStunned {
		return
	}
	e.stateTimer = 0
	e.setState(StatePatrol)
}

func (e *Enemy) patrol(nowMs int64) {
	if e.state != StatePatrol {
		e.setState(StatePatrol)
	}
	if e.patrolDir == 0 || nowMs >= e.patrolUntil {
		e.patrolDir = dice.Sign(e.src)
		hold := dice.Between(e.src, int(e.behavior.PatrolMinMs), int(e.behavior.PatrolMaxMs))
		e.patrolUntil = nowMs + int64(hold)
	}
	e.Body.SetVelocity(e.patrolDir*e.behavior.PatrolSpeed, 0)
}

func (e *Enemy) cancelStateTimer() {
	e.timers.Cancel(e.stateTimer)
	e.stateTimer = 0
}

func (e *Enemy) setState(s State) {
	if e.state == s {
		return
	}
	from := e.state
	e.state = s
	// A fresh patrol re-rolls its drift.
	if s == StatePatrol {
		e.patrolDir = 0
	}
	if e.OnStateChange != nil {
		e.OnStateChange(e, from, s)
	}
}
