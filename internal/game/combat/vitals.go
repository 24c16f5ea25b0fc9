package combat

// Vitals is the combat state every actor owns: health, death, and the timers
// that gate incoming hits and movement input. Only the orchestrator mutates it.
//
// Invariant: 0 <= Health <= MaxHealth; Dead never reverts to false.
type Vitals struct {
	Health    int
	MaxHealth int
	// InvulnerableUntil is the iframe expiry; hits are ignored while now < InvulnerableUntil.
	InvulnerableUntil int64
	// KnockbackLockUntil suppresses movement input while now < KnockbackLockUntil.
	KnockbackLockUntil int64
	// LastAppliedAttackID is the most recent attack that changed Health. Empty means none.
	LastAppliedAttackID string

	dead bool
}

// NewVitals returns full-health Vitals.
//
// Precondition: maxHealth >= 1.
func NewVitals(maxHealth int) Vitals {
	return Vitals{Health: maxHealth, MaxHealth: maxHealth}
}

// IsDead reports whether the actor has died.
func (v *Vitals) IsDead() bool { return v.dead }

// MarkDead makes death permanent. Idempotent.
func (v *Vitals) MarkDead() { v.dead = true }

// Invulnerable reports whether iframes are active at nowMs.
func (v *Vitals) Invulnerable(nowMs int64) bool { return nowMs < v.InvulnerableUntil }

// MovementLocked reports whether a knockback impulse is suppressing input at nowMs.
func (v *Vitals) MovementLocked(nowMs int64) bool { return nowMs < v.KnockbackLockUntil }

// ApplyOutcome records a blocked or landed hit: remembers attackID for dedup,
// arms the returned iframe expiry, and sets Health to the resulting value.
// Against a dead actor, or for an ignored or parried outcome, it is a no-op.
//
// Postcondition: Returns true iff the Vitals changed.
func (v *Vitals) ApplyOutcome(attackID string, o HitOutcome) bool {
	if v.dead || (o.Kind != Hit && o.Kind != Blocked) {
		return false
	}
	if attackID != "" {
		v.LastAppliedAttackID = attackID
	}
	v.InvulnerableUntil = o.NewInvulnerableUntil
	v.Health = o.ResultingHealth
	if v.Health > v.MaxHealth {
		v.Health = v.MaxHealth
	}
	if v.Health < 0 {
		v.Health = 0
	}
	return true
}
