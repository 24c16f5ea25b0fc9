package npc

// State is an enemy's behavior state.
type State int

const (
	StatePatrol State = iota
	StateChase
	StateTelegraph
	StateRecovery
	StateStunned
	StateDead
)

// String returns the lowercase state label used in telemetry.
func (s State) String() string {
	switch s {
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateTelegraph:
		return "telegraph"
	case StateRecovery:
		return "recovery"
	case StateStunned:
		return "stunned"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// TimerOwned reports whether only the state's own expiry (or an external stun)
// may exit it. Per-tick distance evaluation never overrides these states.
func (s State) TimerOwned() bool {
	return s == StateTelegraph || s == StateRecovery || s == StateStunned
}

// Behavior holds the AI thresholds and phase durations shared by all enemies.
// Durations are in milliseconds; distances and speeds are in world units.
type Behavior struct {
	StrikeRange      float64
	ChaseRange       float64
	PatrolSpeed      float64
	PatrolMinMs      int64
	PatrolMaxMs      int64
	TelegraphMs      int64
	RecoveryMs       int64
	AttackCooldownMs int64
	// KnockbackStopMs is how long a knockback impulse moves the enemy before its velocity is cleared.
	KnockbackStopMs int64
	HurtboxW        float64
	HurtboxH        float64
}

// DefaultBehavior returns the canonical enemy AI tuning.
func DefaultBehavior() Behavior {
	return Behavior{
		StrikeRange:      50,
		ChaseRange:       300,
		PatrolSpeed:      30,
		PatrolMinMs:      1500,
		PatrolMaxMs:      3000,
		TelegraphMs:      500,
		RecoveryMs:       300,
		AttackCooldownMs: 1400,
		KnockbackStopMs:  160,
		HurtboxW:         44,
		HurtboxH:         64,
	}
}
