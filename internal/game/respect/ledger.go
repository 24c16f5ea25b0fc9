// Package respect tracks the bounded reputation score driven by combat choices.
package respect

// Tuning holds the ledger bounds and every fixed delta applied by combat.
type Tuning struct {
	// Max is the inclusive ceiling of the ledger.
	Max int
	// Start is the value the ledger holds at encounter start.
	Start int
	// GainParry is awarded for a successful parry.
	GainParry int
	// GainCleanKO is awarded when an enemy is taken down without the environment.
	GainCleanKO int
	// GainFairFight is awarded for a clean takedown of the last enemy standing.
	GainFairFight int
	// PenaltyEnvironmentalKill is subtracted for every environmental kill attempt that lands.
	PenaltyEnvironmentalKill int
	// AllySupportThreshold is the minimum value at which allies back the player.
	AllySupportThreshold int
}

// DefaultTuning returns the canonical reputation bounds and deltas.
func DefaultTuning() Tuning {
	return Tuning{
		Max:                      100,
		Start:                    50,
		GainParry:                6,
		GainCleanKO:              4,
		GainFairFight:            3,
		PenaltyEnvironmentalKill: 15,
		AllySupportThreshold:     45,
	}
}

// Apply adds delta to current and clamps the result into [0, ceiling].
//
// Precondition: ceiling >= 0.
// Postcondition: Returns a value in [0, ceiling]; Apply(x, 0, c) == x for x in [0, c].
func Apply(current, delta, ceiling int) int {
	v := current + delta
	if v < 0 {
		return 0
	}
	if v > ceiling {
		return ceiling
	}
	return v
}

// Change describes a single ledger mutation.
type Change struct {
	Previous int
	Current  int
	Delta    int
}

// Ledger is the encounter-owned reputation score.
// It is not safe for concurrent use; the simulation is single-threaded.
//
// Invariant: 0 <= Value() <= Max.
type Ledger struct {
	value     int
	max       int
	threshold int
	observers []func(Change)
}

// NewLedger creates a Ledger holding start clamped into [0, max].
//
// Precondition: max >= 0.
// Postcondition: Value() == Apply(start, 0, max).
func NewLedger(start, max, threshold int) *Ledger {
	return &Ledger{
		value:     Apply(start, 0, max),
		max:       max,
		threshold: threshold,
	}
}

// NewLedgerFromTuning creates a Ledger from t.Start, t.Max and t.AllySupportThreshold.
func NewLedgerFromTuning(t Tuning) *Ledger {
	return NewLedger(t.Start, t.Max, t.AllySupportThreshold)
}

// Value returns the current score.
func (l *Ledger) Value() int { return l.value }

// Max returns the ceiling.
func (l *Ledger) Max() int { return l.max }

// HasAllySupport reports whether the score is at or above the ally-support threshold.
func (l *Ledger) HasAllySupport() bool { return l.value >= l.threshold }

// Threshold returns the ally-support threshold.
func (l *Ledger) Threshold() int { return l.threshold }

// OnChange registers fn to be called after every Adjust, including clamped no-op adjustments.
//
// Precondition: fn must not be nil.
func (l *Ledger) OnChange(fn func(Change)) {
	l.observers = append(l.observers, fn)
}

// Adjust applies the signed delta through Apply and notifies observers.
//
// Postcondition: Value() == Apply(previous, delta, Max()); returns the new value.
func (l *Ledger) Adjust(delta int) int {
	prev := l.value
	l.value = Apply(prev, delta, l.max)
	ch := Change{Previous: prev, Current: l.value, Delta: delta}
	for _, fn := range l.observers {
		fn(ch)
	}
	return l.value
}

// Reset sets the score back to start without notifying observers.
func (l *Ledger) Reset(start int) {
	l.value = Apply(start, 0, l.max)
}
