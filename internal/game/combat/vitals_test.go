package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/vendetta/internal/game/combat"
)

func TestVitals_ApplyOutcome_Hit(t *testing.T) {
	v := combat.NewVitals(100)
	out := combat.Resolve(now, combat.DefenderSnapshot{Health: v.Health}, combat.Attack{Damage: 10, ID: "s1"}, testTuning())

	assert.True(t, v.ApplyOutcome("s1", out))
	assert.Equal(t, 90, v.Health)
	assert.Equal(t, "s1", v.LastAppliedAttackID)
	assert.True(t, v.Invulnerable(now+599))
	assert.False(t, v.Invulnerable(now+600))
}

func TestVitals_ApplyOutcome_IgnoredAndParriedAreNoOps(t *testing.T) {
	v := combat.NewVitals(100)
	assert.False(t, v.ApplyOutcome("s1", combat.HitOutcome{Kind: combat.Ignored, ResultingHealth: 100}))
	assert.False(t, v.ApplyOutcome("s1", combat.HitOutcome{Kind: combat.Parried, ResultingHealth: 100}))
	assert.Empty(t, v.LastAppliedAttackID)
}

func TestVitals_ApplyOutcome_EmptyIDKeepsPreviousDedupID(t *testing.T) {
	v := combat.NewVitals(100)
	v.LastAppliedAttackID = "s1"
	v.ApplyOutcome("", combat.HitOutcome{Kind: combat.Hit, DamageDealt: 5, ResultingHealth: 95})
	assert.Equal(t, "s1", v.LastAppliedAttackID)
}

func TestVitals_DeadIsTerminal(t *testing.T) {
	v := combat.NewVitals(100)
	v.MarkDead()
	v.MarkDead()
	assert.True(t, v.IsDead())
	assert.False(t, v.ApplyOutcome("s1", combat.HitOutcome{Kind: combat.Hit, DamageDealt: 5, ResultingHealth: 95}))
	assert.Equal(t, 100, v.Health)
}

func TestVitals_MovementLocked(t *testing.T) {
	v := combat.NewVitals(100)
	v.KnockbackLockUntil = 1200
	assert.True(t, v.MovementLocked(1199))
	assert.False(t, v.MovementLocked(1200))
}
