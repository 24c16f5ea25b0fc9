package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/vendetta/internal/game/combat"
	"github.com/cory-johannsen/vendetta/internal/game/player"
	"github.com/cory-johannsen/vendetta/internal/game/world"
)

func newPlayer(t *testing.T) (*player.Player, *combat.Scheduler) {
	t.Helper()
	timers := combat.NewScheduler()
	return player.New(world.Vec{X: 160, Y: 300}, player.DefaultTuning(), timers), timers
}

func TestNew_FullHealthFacingRight(t *testing.T) {
	p, _ := newPlayer(t)
	assert.Equal(t, 100, p.Health)
	assert.Equal(t, 1.0, p.Facing())
	assert.False(t, p.Attacking())
	assert.Equal(t, "idle", p.DebugState(0))
}

func TestHandleInput_Movement(t *testing.T) {
	p, _ := newPlayer(t)

	p.HandleInput(0, player.Input{MoveX: -1, MoveY: 1})
	assert.Equal(t, world.Vec{X: -200, Y: 120}, p.Body.Velocity)
	assert.Equal(t, -1.0, p.Facing())

	p.HandleInput(16, player.Input{MoveY: -5})
	assert.Equal(t, world.Vec{X: 0, Y: -120}, p.Body.Velocity)
	assert.Equal(t, -1.0, p.Facing(), "facing holds without horizontal input")

	p.HandleInput(32, player.Input{})
	assert.Equal(t, world.Vec{}, p.Body.Velocity)
}

func TestHandleInput_PunchStartsSwingWithFreshID(t *testing.T) {
	p, timers := newPlayer(t)

	p.HandleInput(0, player.Input{Punch: true})
	swing, ok := p.ActiveSwing()
	require.True(t, ok)
	assert.Equal(t, "player-swing-1", swing.ID)
	assert.Equal(t, 12, swing.Damage)
	assert.Equal(t, "attack", p.DebugState(0))
	assert.Equal(t, int64(350), p.AttackReadyAt())

	timers.Advance(119)
	assert.True(t, p.Attacking())
	timers.Advance(120)
	assert.False(t, p.Attacking())

	// Cooldown still running.
	p.HandleInput(200, player.Input{Kick: true})
	assert.False(t, p.Attacking())

	p.HandleInput(350, player.Input{Kick: true})
	swing, ok = p.ActiveSwing()
	require.True(t, ok)
	assert.Equal(t, "player-swing-2", swing.ID)
	assert.Equal(t, 18, swing.Damage)
	assert.Equal(t, int64(850), p.AttackReadyAt())
}

func TestHandleInput_BlockPressOpensParryAndTakesTheAction(t *testing.T) {
	p, _ := newPlayer(t)

	p.HandleInput(1000, player.Input{Block: true, BlockHeld: true, Punch: true})
	assert.True(t, p.Parry.Active(1000))
	assert.Equal(t, int64(1110), p.Parry.OpenUntil())
	assert.False(t, p.Attacking())
	assert.True(t, p.Blocking())
	assert.Equal(t, "parry", p.DebugState(1000))
	assert.Equal(t, "blocking", p.DebugState(1111))

	p.HandleInput(1200, player.Input{Block: true})
	assert.Equal(t, int64(1110), p.Parry.OpenUntil(), "parry cooldown blocks a second attempt")
	assert.False(t, p.Blocking())
}

func TestHandleInput_CombatIgnoredDuringSwingCooldown(t *testing.T) {
	p, _ := newPlayer(t)
	p.HandleInput(0, player.Input{Punch: true})
	p.HandleInput(100, player.Input{Block: true})
	assert.False(t, p.Parry.Active(100))
}

func TestHitbox_FollowsFacing(t *testing.T) {
	p, _ := newPlayer(t)
	assert.Equal(t, world.Rect{Center: world.Vec{X: 200, Y: 300}, W: 40, H: 40}, p.Hitbox())

	p.HandleInput(0, player.Input{MoveX: -1})
	assert.Equal(t, 120.0, p.Hitbox().Center.X)
	assert.Equal(t, world.Rect{Center: world.Vec{X: 160, Y: 300}, W: 48, H: 64}, p.Hurtbox())
}

func TestKnockback_LocksMovementUntilExpiry(t *testing.T) {
	p, timers := newPlayer(t)
	p.Knockback(0, world.Vec{X: -300, Y: -60}, 200)

	p.HandleInput(100, player.Input{MoveX: 1})
	assert.Equal(t, world.Vec{X: -300, Y: -60}, p.Body.Velocity)

	timers.Advance(200)
	assert.Equal(t, world.Vec{}, p.Body.Velocity)

	p.HandleInput(200, player.Input{MoveX: 1})
	assert.Equal(t, world.Vec{X: 200}, p.Body.Velocity)
}

func TestKill_IsTerminalAndCancelsTimers(t *testing.T) {
	p, timers := newPlayer(t)
	p.HandleInput(0, player.Input{Punch: true})
	p.Knockback(0, world.Vec{X: 300}, 200)
	require.Equal(t, 2, timers.Len())

	p.Kill()
	p.Kill()
	assert.True(t, p.IsDead())
	assert.Equal(t, 0, timers.Len())
	assert.False(t, p.Attacking())
	assert.Equal(t, "dead", p.DebugState(0))

	p.HandleInput(1000, player.Input{MoveX: 1, Punch: true})
	p.Knockback(1000, world.Vec{X: 300}, 200)
	assert.Equal(t, world.Vec{}, p.Body.Velocity)
	assert.False(t, p.Attacking())
}

func TestDebugState_IframesAfterHit(t *testing.T) {
	p, _ := newPlayer(t)
	p.InvulnerableUntil = 600
	assert.Equal(t, "iframes", p.DebugState(0))
	assert.Equal(t, "idle", p.DebugState(600))
}

func TestProperty_SwingIDsAreUnique(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		timers := combat.NewScheduler()
		p := player.New(world.Vec{}, player.DefaultTuning(), timers)
		seen := map[string]bool{}
		now := int64(0)
		n := rapid.IntRange(1, 50).Draw(rt, "n")
		for i := 0; i < n; i++ {
			now += rapid.Int64Range(1, 600).Draw(rt, "dt")
			timers.Advance(now)
			p.HandleInput(now, player.Input{
				Punch: rapid.Bool().Draw(rt, "punch"),
				Kick:  rapid.Bool().Draw(rt, "kick"),
			})
			if s, ok := p.ActiveSwing(); ok {
				seen[s.ID] = true
			}
		}
		for id := range seen {
			if id == "" {
				rt.Fatalf("empty swing id")
			}
		}
		if len(seen) > n {
			rt.Fatalf("%d ids from %d inputs", len(seen), n)
		}
	})
}
