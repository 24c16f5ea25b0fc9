// Package encounter runs one street fight: the combat orchestrator that
// applies every hit, the fixed-order tick, wave progression, the
// environmental hazard, player death and restart, and the event stream.
package encounter

import (
	"github.com/cory-johannsen/vendetta/internal/game/combat"
	"github.com/cory-johannsen/vendetta/internal/game/npc"
	"github.com/cory-johannsen/vendetta/internal/game/player"
	"github.com/cory-johannsen/vendetta/internal/game/respect"
	"github.com/cory-johannsen/vendetta/internal/game/world"
)

// Tuning is the complete constant set of an encounter. Durations are milliseconds.
type Tuning struct {
	Combat  combat.Tuning
	Player  player.Tuning
	Respect respect.Tuning
	Enemy   npc.Behavior

	// Arena bounds every body; PlayerSpawn is where the player starts.
	Arena       world.Arena
	PlayerSpawn world.Vec
	// EnvironmentalDamage is dealt by a hazard kill.
	EnvironmentalDamage int

	// WaveDelayMs separates a cleared wave from the next spawn.
	WaveDelayMs int64
	// RestartDelayMs separates the player's death from the encounter reset.
	RestartDelayMs int64
	// DeathRemovalMs separates an enemy's death from its removal.
	DeathRemovalMs int64
}

// DefaultTuning returns the canonical constant set.
func DefaultTuning() Tuning {
	return Tuning{
		Combat:  combat.DefaultTuning(),
		Player:  player.DefaultTuning(),
		Respect: respect.DefaultTuning(),
		Enemy:   npc.DefaultBehavior(),
		Arena: world.Arena{
			Width:  960,
			Height: 540,
			Hazard: world.Hazard{
				Center:       world.Vec{X: 680, Y: 327},
				PlayerReachX: 150,
				PlayerReachY: 100,
				EnemyReach:   120,
			},
		},
		PlayerSpawn:         world.Vec{X: 160, Y: 334.8},
		EnvironmentalDamage: 999,
		WaveDelayMs:         2000,
		RestartDelayMs:      2000,
		DeathRemovalMs:      400,
	}
}
