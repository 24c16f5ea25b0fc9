// Package config provides Viper-based configuration loading for the brawl simulation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/vendetta/internal/game/combat"
	"github.com/cory-johannsen/vendetta/internal/game/encounter"
	"github.com/cory-johannsen/vendetta/internal/game/npc"
	"github.com/cory-johannsen/vendetta/internal/game/player"
	"github.com/cory-johannsen/vendetta/internal/game/respect"
	"github.com/cory-johannsen/vendetta/internal/game/world"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SimulationConfig holds the headless runner settings.
type SimulationConfig struct {
	// TickInterval is the frame loop period.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// Duration bounds the run; 0 runs until a termination signal.
	Duration time.Duration `mapstructure:"duration"`
	// Seed selects a deterministic random source; 0 uses the crypto source.
	Seed int64 `mapstructure:"seed"`
	// EnemiesDir holds enemy profile YAML files; empty uses the built-in profiles.
	EnemiesDir string `mapstructure:"enemies_dir"`
	// WavesFile is the wave table YAML file; empty uses the built-in table.
	WavesFile string `mapstructure:"waves_file"`
	// ScriptsDir holds Lua event hooks; empty disables scripting.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// InstructionLimit caps Lua opcodes per hook call; 0 uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
	// UseHazard lets the autopilot attempt environmental kills.
	UseHazard bool `mapstructure:"use_hazard"`
	// SnapshotEvery is how often the runner logs a debug snapshot; 0 disables it.
	SnapshotEvery time.Duration `mapstructure:"snapshot_every"`
}

// CombatConfig holds hit resolution timings and impulses.
type CombatConfig struct {
	IFrames             time.Duration `mapstructure:"iframes"`
	KnockbackLock       time.Duration `mapstructure:"knockback_lock"`
	PlayerKnockback     float64       `mapstructure:"player_knockback"`
	EnemyKnockback      float64       `mapstructure:"enemy_knockback"`
	KnockbackVY         float64       `mapstructure:"knockback_vy"`
	HitStun             time.Duration `mapstructure:"hit_stun"`
	ParryStun           time.Duration `mapstructure:"parry_stun"`
	BlockDamageFraction float64       `mapstructure:"block_damage_fraction"`
}

// PlayerConfig holds the player's movement, attacks, and defenses.
type PlayerConfig struct {
	MaxHealth      int           `mapstructure:"max_health"`
	Speed          float64       `mapstructure:"speed"`
	VerticalFactor float64       `mapstructure:"vertical_factor"`
	PunchDamage    int           `mapstructure:"punch_damage"`
	PunchCooldown  time.Duration `mapstructure:"punch_cooldown"`
	KickDamage     int           `mapstructure:"kick_damage"`
	KickCooldown   time.Duration `mapstructure:"kick_cooldown"`
	SwingActive    time.Duration `mapstructure:"swing_active"`
	ParryWindow    time.Duration `mapstructure:"parry_window"`
	ParryCooldown  time.Duration `mapstructure:"parry_cooldown"`
	HitboxW        float64       `mapstructure:"hitbox_w"`
	HitboxH        float64       `mapstructure:"hitbox_h"`
	HitboxOffset   float64       `mapstructure:"hitbox_offset"`
	HurtboxW       float64       `mapstructure:"hurtbox_w"`
	HurtboxH       float64       `mapstructure:"hurtbox_h"`
}

// RespectConfig holds the reputation bounds and deltas.
type RespectConfig struct {
	Max                      int `mapstructure:"max"`
	Start                    int `mapstructure:"start"`
	GainParry                int `mapstructure:"gain_parry"`
	GainCleanKO              int `mapstructure:"gain_clean_ko"`
	GainFairFight            int `mapstructure:"gain_fair_fight"`
	PenaltyEnvironmentalKill int `mapstructure:"penalty_environmental_kill"`
	AllySupportThreshold     int `mapstructure:"ally_support_threshold"`
}

// EnemyConfig holds the behavior tuning shared by every enemy type.
type EnemyConfig struct {
	StrikeRange    float64       `mapstructure:"strike_range"`
	ChaseRange     float64       `mapstructure:"chase_range"`
	PatrolSpeed    float64       `mapstructure:"patrol_speed"`
	PatrolMin      time.Duration `mapstructure:"patrol_min"`
	PatrolMax      time.Duration `mapstructure:"patrol_max"`
	Telegraph      time.Duration `mapstructure:"telegraph"`
	Recovery       time.Duration `mapstructure:"recovery"`
	AttackCooldown time.Duration `mapstructure:"attack_cooldown"`
	KnockbackStop  time.Duration `mapstructure:"knockback_stop"`
	HurtboxW       float64       `mapstructure:"hurtbox_w"`
	HurtboxH       float64       `mapstructure:"hurtbox_h"`
}

// EncounterConfig holds arena geometry and encounter pacing.
type EncounterConfig struct {
	ArenaWidth          float64       `mapstructure:"arena_width"`
	ArenaHeight         float64       `mapstructure:"arena_height"`
	HazardX             float64       `mapstructure:"hazard_x"`
	HazardY             float64       `mapstructure:"hazard_y"`
	HazardPlayerReachX  float64       `mapstructure:"hazard_player_reach_x"`
	HazardPlayerReachY  float64       `mapstructure:"hazard_player_reach_y"`
	HazardEnemyReach    float64       `mapstructure:"hazard_enemy_reach"`
	PlayerSpawnX        float64       `mapstructure:"player_spawn_x"`
	PlayerSpawnY        float64       `mapstructure:"player_spawn_y"`
	EnvironmentalDamage int           `mapstructure:"environmental_damage"`
	WaveDelay           time.Duration `mapstructure:"wave_delay"`
	RestartDelay        time.Duration `mapstructure:"restart_delay"`
	DeathRemoval        time.Duration `mapstructure:"death_removal"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Combat     CombatConfig     `mapstructure:"combat"`
	Player     PlayerConfig     `mapstructure:"player"`
	Respect    RespectConfig    `mapstructure:"respect"`
	Enemy      EnemyConfig      `mapstructure:"enemy"`
	Encounter  EncounterConfig  `mapstructure:"encounter"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	for _, check := range []func() []string{
		c.Logging.violations,
		c.Simulation.violations,
		c.Combat.violations,
		c.Player.violations,
		c.Respect.violations,
		c.Enemy.violations,
		c.Encounter.violations,
	} {
		errs = append(errs, check()...)
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (l LoggingConfig) violations() []string {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	return errs
}

func (s SimulationConfig) violations() []string {
	var errs []string
	if s.TickInterval <= 0 {
		errs = append(errs, fmt.Sprintf("simulation.tick_interval must be > 0, got %s", s.TickInterval))
	}
	errs = appendNegative(errs, "simulation.duration", s.Duration)
	errs = appendNegative(errs, "simulation.snapshot_every", s.SnapshotEvery)
	if s.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("simulation.instruction_limit must be >= 0, got %d", s.InstructionLimit))
	}
	return errs
}

func (c CombatConfig) violations() []string {
	var errs []string
	errs = appendNegative(errs, "combat.iframes", c.IFrames)
	errs = appendNegative(errs, "combat.knockback_lock", c.KnockbackLock)
	errs = appendNegative(errs, "combat.hit_stun", c.HitStun)
	errs = appendNegative(errs, "combat.parry_stun", c.ParryStun)
	if c.BlockDamageFraction < 0 || c.BlockDamageFraction > 1 {
		errs = append(errs, fmt.Sprintf("combat.block_damage_fraction must be in [0, 1], got %g", c.BlockDamageFraction))
	}
	return errs
}

func (p PlayerConfig) violations() []string {
	var errs []string
	if p.MaxHealth < 1 {
		errs = append(errs, fmt.Sprintf("player.max_health must be >= 1, got %d", p.MaxHealth))
	}
	if p.Speed <= 0 {
		errs = append(errs, fmt.Sprintf("player.speed must be > 0, got %g", p.Speed))
	}
	if p.PunchDamage < 0 || p.KickDamage < 0 {
		errs = append(errs, "player.punch_damage and player.kick_damage must be >= 0")
	}
	errs = appendNegative(errs, "player.punch_cooldown", p.PunchCooldown)
	errs = appendNegative(errs, "player.kick_cooldown", p.KickCooldown)
	errs = appendNegative(errs, "player.swing_active", p.SwingActive)
	errs = appendNegative(errs, "player.parry_window", p.ParryWindow)
	errs = appendNegative(errs, "player.parry_cooldown", p.ParryCooldown)
	if p.HitboxW <= 0 || p.HitboxH <= 0 || p.HurtboxW <= 0 || p.HurtboxH <= 0 {
		errs = append(errs, "player hitbox and hurtbox dimensions must be > 0")
	}
	return errs
}

func (r RespectConfig) violations() []string {
	var errs []string
	if r.Max < 1 {
		errs = append(errs, fmt.Sprintf("respect.max must be >= 1, got %d", r.Max))
	}
	if r.Start < 0 || r.Start > r.Max {
		errs = append(errs, fmt.Sprintf("respect.start must be in [0, %d], got %d", r.Max, r.Start))
	}
	if r.AllySupportThreshold < 0 || r.AllySupportThreshold > r.Max {
		errs = append(errs, fmt.Sprintf("respect.ally_support_threshold must be in [0, %d], got %d", r.Max, r.AllySupportThreshold))
	}
	if r.GainParry < 0 || r.GainCleanKO < 0 || r.GainFairFight < 0 || r.PenaltyEnvironmentalKill < 0 {
		errs = append(errs, "respect gains and penalties must be >= 0")
	}
	return errs
}

func (e EnemyConfig) violations() []string {
	var errs []string
	if e.StrikeRange <= 0 || e.ChaseRange <= 0 {
		errs = append(errs, "enemy.strike_range and enemy.chase_range must be > 0")
	}
	if e.StrikeRange > e.ChaseRange {
		errs = append(errs, "enemy.strike_range must not exceed enemy.chase_range")
	}
	errs = appendNegative(errs, "enemy.patrol_min", e.PatrolMin)
	if e.PatrolMin > e.PatrolMax {
		errs = append(errs, "enemy.patrol_min must not exceed enemy.patrol_max")
	}
	if e.Telegraph <= 0 {
		errs = append(errs, fmt.Sprintf("enemy.telegraph must be > 0, got %s", e.Telegraph))
	}
	errs = appendNegative(errs, "enemy.recovery", e.Recovery)
	errs = appendNegative(errs, "enemy.attack_cooldown", e.AttackCooldown)
	errs = appendNegative(errs, "enemy.knockback_stop", e.KnockbackStop)
	if e.HurtboxW <= 0 || e.HurtboxH <= 0 {
		errs = append(errs, "enemy hurtbox dimensions must be > 0")
	}
	return errs
}

func (e EncounterConfig) violations() []string {
	var errs []string
	if e.ArenaWidth <= 0 || e.ArenaHeight <= 0 {
		errs = append(errs, "encounter.arena_width and encounter.arena_height must be > 0")
	}
	if e.PlayerSpawnX < 0 || e.PlayerSpawnX > e.ArenaWidth || e.PlayerSpawnY < 0 || e.PlayerSpawnY > e.ArenaHeight {
		errs = append(errs, fmt.Sprintf("encounter player spawn (%g, %g) must lie inside the arena", e.PlayerSpawnX, e.PlayerSpawnY))
	}
	if e.EnvironmentalDamage < 1 {
		errs = append(errs, fmt.Sprintf("encounter.environmental_damage must be >= 1, got %d", e.EnvironmentalDamage))
	}
	errs = appendNegative(errs, "encounter.wave_delay", e.WaveDelay)
	errs = appendNegative(errs, "encounter.restart_delay", e.RestartDelay)
	errs = appendNegative(errs, "encounter.death_removal", e.DeathRemoval)
	return errs
}

func appendNegative(errs []string, key string, d time.Duration) []string {
	if d < 0 {
		return append(errs, fmt.Sprintf("%s must not be negative, got %s", key, d))
	}
	return errs
}

// Tuning maps the configuration onto the encounter constant set.
//
// Postcondition: Durations are truncated to whole milliseconds.
func (c Config) Tuning() encounter.Tuning {
	return encounter.Tuning{
		Combat: combat.Tuning{
			IFrameMs:            c.Combat.IFrames.Milliseconds(),
			KnockbackMs:         c.Combat.KnockbackLock.Milliseconds(),
			PlayerKnockback:     c.Combat.PlayerKnockback,
			EnemyKnockback:      c.Combat.EnemyKnockback,
			KnockbackVY:         c.Combat.KnockbackVY,
			HitStunMs:           c.Combat.HitStun.Milliseconds(),
			ParryStunMs:         c.Combat.ParryStun.Milliseconds(),
			BlockDamageFraction: c.Combat.BlockDamageFraction,
			GainParry:           c.Respect.GainParry,
		},
		Player: player.Tuning{
			MaxHealth:       c.Player.MaxHealth,
			Speed:           c.Player.Speed,
			VerticalFactor:  c.Player.VerticalFactor,
			PunchDamage:     c.Player.PunchDamage,
			PunchCooldownMs: c.Player.PunchCooldown.Milliseconds(),
			KickDamage:      c.Player.KickDamage,
			KickCooldownMs:  c.Player.KickCooldown.Milliseconds(),
			SwingActiveMs:   c.Player.SwingActive.Milliseconds(),
			ParryWindowMs:   c.Player.ParryWindow.Milliseconds(),
			ParryCooldownMs: c.Player.ParryCooldown.Milliseconds(),
			HitboxW:         c.Player.HitboxW,
			HitboxH:         c.Player.HitboxH,
			HitboxOffset:    c.Player.HitboxOffset,
			HurtboxW:        c.Player.HurtboxW,
			HurtboxH:        c.Player.HurtboxH,
		},
		Respect: respect.Tuning{
			Max:                      c.Respect.Max,
			Start:                    c.Respect.Start,
			GainParry:                c.Respect.GainParry,
			GainCleanKO:              c.Respect.GainCleanKO,
			GainFairFight:            c.Respect.GainFairFight,
			PenaltyEnvironmentalKill: c.Respect.PenaltyEnvironmentalKill,
			AllySupportThreshold:     c.Respect.AllySupportThreshold,
		},
		Enemy: npc.Behavior{
			StrikeRange:      c.Enemy.StrikeRange,
			ChaseRange:       c.Enemy.ChaseRange,
			PatrolSpeed:      c.Enemy.PatrolSpeed,
			PatrolMinMs:      c.Enemy.PatrolMin.Milliseconds(),
			PatrolMaxMs:      c.Enemy.PatrolMax.Milliseconds(),
			TelegraphMs:      c.Enemy.Telegraph.Milliseconds(),
			RecoveryMs:       c.Enemy.Recovery.Milliseconds(),
			AttackCooldownMs: c.Enemy.AttackCooldown.Milliseconds(),
			KnockbackStopMs:  c.Enemy.KnockbackStop.Milliseconds(),
			HurtboxW:         c.Enemy.HurtboxW,
			HurtboxH:         c.Enemy.HurtboxH,
		},
		Arena: world.Arena{
			Width:  c.Encounter.ArenaWidth,
			Height: c.Encounter.ArenaHeight,
			Hazard: world.Hazard{
				Center:       world.Vec{X: c.Encounter.HazardX, Y: c.Encounter.HazardY},
				PlayerReachX: c.Encounter.HazardPlayerReachX,
				PlayerReachY: c.Encounter.HazardPlayerReachY,
				EnemyReach:   c.Encounter.HazardEnemyReach,
			},
		},
		PlayerSpawn:         world.Vec{X: c.Encounter.PlayerSpawnX, Y: c.Encounter.PlayerSpawnY},
		EnvironmentalDamage: c.Encounter.EnvironmentalDamage,
		WaveDelayMs:         c.Encounter.WaveDelay.Milliseconds(),
		RestartDelayMs:      c.Encounter.RestartDelay.Milliseconds(),
		DeathRemovalMs:      c.Encounter.DeathRemoval.Milliseconds(),
	}
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// Default returns the defaults with environment overrides applied and no file.
//
// Postcondition: Returns a valid Config or a non-nil error (only if an override is invalid).
func Default() (Config, error) {
	return LoadFromViper(newViper())
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	// Environment variable overrides with VENDETTA_ prefix
	v.SetEnvPrefix("VENDETTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

func ms(n int64) string {
	return (time.Duration(n) * time.Millisecond).String()
}

// SetDefaults registers every key with its canonical value from
// encounter.DefaultTuning.
//
// Postcondition: Every Config field has a default in v.
func SetDefaults(v *viper.Viper) {
	t := encounter.DefaultTuning()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("simulation.tick_interval", "16ms")
	v.SetDefault("simulation.duration", "0s")
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.enemies_dir", "")
	v.SetDefault("simulation.waves_file", "")
	v.SetDefault("simulation.scripts_dir", "")
	v.SetDefault("simulation.instruction_limit", 0)
	v.SetDefault("simulation.use_hazard", false)
	v.SetDefault("simulation.snapshot_every", "5s")

	v.SetDefault("combat.iframes", ms(t.Combat.IFrameMs))
	v.SetDefault("combat.knockback_lock", ms(t.Combat.KnockbackMs))
	v.SetDefault("combat.player_knockback", t.Combat.PlayerKnockback)
	v.SetDefault("combat.enemy_knockback", t.Combat.EnemyKnockback)
	v.SetDefault("combat.knockback_vy", t.Combat.KnockbackVY)
	v.SetDefault("combat.hit_stun", ms(t.Combat.HitStunMs))
	v.SetDefault("combat.parry_stun", ms(t.Combat.ParryStunMs))
	v.SetDefault("combat.block_damage_fraction", t.Combat.BlockDamageFraction)

	v.SetDefault("player.max_health", t.Player.MaxHealth)
	v.SetDefault("player.speed", t.Player.Speed)
	v.SetDefault("player.vertical_factor", t.Player.VerticalFactor)
	v.SetDefault("player.punch_damage", t.Player.PunchDamage)
	v.SetDefault("player.punch_cooldown", ms(t.Player.PunchCooldownMs))
	v.SetDefault("player.kick_damage", t.Player.KickDamage)
	v.SetDefault("player.kick_cooldown", ms(t.Player.KickCooldownMs))
	v.SetDefault("player.swing_active", ms(t.Player.SwingActiveMs))
	v.SetDefault("player.parry_window", ms(t.Player.ParryWindowMs))
	v.SetDefault("player.parry_cooldown", ms(t.Player.ParryCooldownMs))
	v.SetDefault("player.hitbox_w", t.Player.HitboxW)
	v.SetDefault("player.hitbox_h", t.Player.HitboxH)
	v.SetDefault("player.hitbox_offset", t.Player.HitboxOffset)
	v.SetDefault("player.hurtbox_w", t.Player.HurtboxW)
	v.SetDefault("player.hurtbox_h", t.Player.HurtboxH)

	v.SetDefault("respect.max", t.Respect.Max)
	v.SetDefault("respect.start", t.Respect.Start)
	v.SetDefault("respect.gain_parry", t.Respect.GainParry)
	v.SetDefault("respect.gain_clean_ko", t.Respect.GainCleanKO)
	v.SetDefault("respect.gain_fair_fight", t.Respect.GainFairFight)
	v.SetDefault("respect.penalty_environmental_kill", t.Respect.PenaltyEnvironmentalKill)
	v.SetDefault("respect.ally_support_threshold", t.Respect.AllySupportThreshold)

	v.SetDefault("enemy.strike_range", t.Enemy.StrikeRange)
	v.SetDefault("enemy.chase_range", t.Enemy.ChaseRange)
	v.SetDefault("enemy.patrol_speed", t.Enemy.PatrolSpeed)
	v.SetDefault("enemy.patrol_min", ms(t.Enemy.PatrolMinMs))
	v.SetDefault("enemy.patrol_max", ms(t.Enemy.PatrolMaxMs))
	v.SetDefault("enemy.telegraph", ms(t.Enemy.TelegraphMs))
	v.SetDefault("enemy.recovery", ms(t.Enemy.RecoveryMs))
	v.SetDefault("enemy.attack_cooldown", ms(t.Enemy.AttackCooldownMs))
	v.SetDefault("enemy.knockback_stop", ms(t.Enemy.KnockbackStopMs))
	v.SetDefault("enemy.hurtbox_w", t.Enemy.HurtboxW)
	v.SetDefault("enemy.hurtbox_h", t.Enemy.HurtboxH)

	v.SetDefault("encounter.arena_width", t.Arena.Width)
	v.SetDefault("encounter.arena_height", t.Arena.Height)
	v.SetDefault("encounter.hazard_x", t.Arena.Hazard.Center.X)
	v.SetDefault("encounter.hazard_y", t.Arena.Hazard.Center.Y)
	v.SetDefault("encounter.hazard_player_reach_x", t.Arena.Hazard.PlayerReachX)
	v.SetDefault("encounter.hazard_player_reach_y", t.Arena.Hazard.PlayerReachY)
	v.SetDefault("encounter.hazard_enemy_reach", t.Arena.Hazard.EnemyReach)
	v.SetDefault("encounter.player_spawn_x", t.PlayerSpawn.X)
	v.SetDefault("encounter.player_spawn_y", t.PlayerSpawn.Y)
	v.SetDefault("encounter.environmental_damage", t.EnvironmentalDamage)
	v.SetDefault("encounter.wave_delay", ms(t.WaveDelayMs))
	v.SetDefault("encounter.restart_delay", ms(t.RestartDelayMs))
	v.SetDefault("encounter.death_removal", ms(t.DeathRemovalMs))
}
