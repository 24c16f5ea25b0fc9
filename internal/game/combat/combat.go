// Package combat implements hit resolution, the parry window, and the
// timestamp-driven scheduler used by the brawler simulation.
//
// All timestamps are milliseconds on the single monotonic simulation clock.
package combat

// Kind is the definitive result of resolving one attack against one defender.
type Kind int

const (
	// Ignored means the attack had no effect (duplicate swing or invulnerable defender).
	Ignored Kind = iota
	// Parried means the defender's parry window absorbed the attack.
	Parried
	// Blocked means the defender took reduced damage.
	Blocked
	// Hit means the defender took full damage.
	Hit
)

// String returns a human-readable outcome label.
func (k Kind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case Parried:
		return "parried"
	case Blocked:
		return "blocked"
	case Hit:
		return "hit"
	default:
		return "unknown"
	}
}

// Attack is a single hit attempt, consumed exactly once by the orchestrator.
type Attack struct {
	// Damage is the raw damage before blocking.
	Damage int
	// ID identifies one discrete swing. Empty disables dedup.
	ID string
	// Environmental marks a hazard kill, penalized on top of normal resolution.
	Environmental bool
}

// DefenderSnapshot is the defender's time-based status at the instant of resolution.
// It is built fresh from the live actor for every call and never stored.
type DefenderSnapshot struct {
	InvulnerableUntil int64
	ParryOpenUntil    int64
	Blocking          bool
	Health            int
	// LastAppliedAttackID is the ID of the last attack that changed this defender's health.
	// Empty means none.
	LastAppliedAttackID string
}

// HitOutcome is the result of Resolve.
//
// Invariant: DamageDealt == 0 when Kind is Ignored or Parried;
// ResultingHealth == max(0, Health-DamageDealt).
type HitOutcome struct {
	Kind                    Kind
	DamageDealt             int
	ResultingHealth         int
	NewInvulnerableUntil    int64
	AttackerShouldBeStunned bool
	RespectDelta            int
}

// Lethal reports whether the outcome leaves the defender at zero health.
func (o HitOutcome) Lethal() bool {
	return o.ResultingHealth == 0 && (o.Kind == Hit || o.Kind == Blocked)
}
