package combat

import "math"

// Tuning holds the numeric constants consulted by Resolve and the orchestrator.
// Durations are in milliseconds.
type Tuning struct {
	// IFrameMs is the invulnerability window armed by a blocked or landed hit.
	IFrameMs int64
	// KnockbackMs is how long a knockback impulse suppresses movement input.
	KnockbackMs int64
	// PlayerKnockback is the horizontal impulse applied to a hit player.
	PlayerKnockback float64
	// EnemyKnockback is the horizontal impulse applied to a hit enemy.
	EnemyKnockback float64
	// KnockbackVY is the vertical component of every knockback impulse.
	KnockbackVY float64
	// HitStunMs is how long an enemy is stunned after taking a hit.
	HitStunMs int64
	// ParryStunMs is how long an attacker is stunned after walking into a parry.
	ParryStunMs int64
	// BlockDamageFraction is the fraction of incoming damage that still lands while blocking.
	BlockDamageFraction float64
	// GainParry is the reputation delta reported for a parry.
	GainParry int
}

// DefaultTuning returns the canonical combat timings and impulses.
func DefaultTuning() Tuning {
	return Tuning{
		IFrameMs:            600,
		KnockbackMs:         200,
		PlayerKnockback:     300,
		EnemyKnockback:      260,
		KnockbackVY:         -60,
		HitStunMs:           300,
		ParryStunMs:         800,
		BlockDamageFraction: 0.25,
		GainParry:           6,
	}
}

// Resolve decides the outcome of attack against defender at nowMs.
// It is pure: identical inputs always yield an identical HitOutcome.
//
// Checks run in order and the first match wins: dedup, invulnerability,
// parry (inclusive of the expiry instant; a zero ParryOpenUntil means no window),
// block, normal hit.
// A lethal hit follows the same branch and only clamps ResultingHealth at 0.
//
// Precondition: attack.Damage >= 0; 0 <= t.BlockDamageFraction <= 1.
// Postcondition: The HitOutcome invariants hold.
func Resolve(nowMs int64, defender DefenderSnapshot, attack Attack, t Tuning) HitOutcome {
	if attack.ID != "" && attack.ID == defender.LastAppliedAttackID {
		return ignore(defender)
	}

	if nowMs < defender.InvulnerableUntil {
		return ignore(defender)
	}

	if defender.ParryOpenUntil != 0 && nowMs <= defender.ParryOpenUntil {
		return HitOutcome{
			Kind:                    Parried,
			ResultingHealth:         defender.Health,
			NewInvulnerableUntil:    defender.InvulnerableUntil,
			AttackerShouldBeStunned: true,
			RespectDelta:            t.GainParry,
		}
	}

	if defender.Blocking {
		return land(nowMs, defender, BlockedDamage(attack.Damage, t.BlockDamageFraction), Blocked, t)
	}

	return land(nowMs, defender, attack.Damage, Hit, t)
}

// BlockedDamage returns ceil(damage * fraction).
//
// Postcondition: Returns 0 when fraction == 0; otherwise >= 1 for damage >= 1.
func BlockedDamage(damage int, fraction float64) int {
	return int(math.Ceil(float64(damage) * fraction))
}

func land(nowMs int64, d DefenderSnapshot, dmg int, kind Kind, t Tuning) HitOutcome {
	health := d.Health - dmg
	if health < 0 {
		health = 0
	}
	return HitOutcome{
		Kind:                 kind,
		DamageDealt:          dmg,
		ResultingHealth:      health,
		NewInvulnerableUntil: nowMs + t.IFrameMs,
	}
}

func ignore(d DefenderSnapshot) HitOutcome {
	return HitOutcome{
		Kind:                 Ignored,
		ResultingHealth:      d.Health,
		NewInvulnerableUntil: d.InvulnerableUntil,
	}
}
