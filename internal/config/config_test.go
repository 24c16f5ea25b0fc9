package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/vendetta/internal/game/encounter"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := Default()
	require.NoError(t, err)
	return cfg
}

func TestDefault_IsValid(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 16*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, 1400*time.Millisecond, cfg.Enemy.AttackCooldown)
}

func TestDefault_TuningMatchesCanonicalSet(t *testing.T) {
	assert.Equal(t, encounter.DefaultTuning(), validConfig(t).Tuning())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: debug
  format: console
simulation:
  tick_interval: 10ms
  duration: 30s
  seed: 42
  waves_file: content/waves.yaml
combat:
  parry_stun: 1s
  block_damage_fraction: 0.5
respect:
  start: 40
encounter:
  wave_delay: 1500ms
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 10*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, 30*time.Second, cfg.Simulation.Duration)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, "content/waves.yaml", cfg.Simulation.WavesFile)

	tun := cfg.Tuning()
	assert.Equal(t, int64(1000), tun.Combat.ParryStunMs)
	assert.Equal(t, 0.5, tun.Combat.BlockDamageFraction)
	assert.Equal(t, 40, tun.Respect.Start)
	assert.Equal(t, int64(1500), tun.WaveDelayMs)
	// untouched keys keep their defaults
	assert.Equal(t, int64(600), tun.Combat.IFrameMs)
	assert.Equal(t, 12, tun.Player.PunchDamage)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("respect:\n  start: 40\n"), 0644))
	t.Setenv("VENDETTA_RESPECT_START", "70")
	t.Setenv("VENDETTA_PLAYER_PARRY_WINDOW", "150ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.Respect.Start)
	assert.Equal(t, int64(150), cfg.Tuning().Player.ParryWindowMs)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("respect:\n  start: 101\n"), 0644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "respect.start")
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("player.max_health", 150)
	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.Tuning().Player.MaxHealth)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig(t)
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig(t)
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	cfg := validConfig(t)
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidate_AggregatesViolations(t *testing.T) {
	cfg := validConfig(t)
	cfg.Simulation.TickInterval = 0
	cfg.Combat.BlockDamageFraction = 1.5
	cfg.Enemy.StrikeRange = 400
	cfg.Encounter.RestartDelay = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{
		"simulation.tick_interval",
		"combat.block_damage_fraction",
		"enemy.strike_range",
		"encounter.restart_delay",
	} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestValidate_PlayerSpawnInsideArena(t *testing.T) {
	cfg := validConfig(t)
	cfg.Encounter.PlayerSpawnX = cfg.Encounter.ArenaWidth + 1
	assert.Error(t, cfg.Validate())
}

func TestValidate_PatrolBounds(t *testing.T) {
	cfg := validConfig(t)
	cfg.Enemy.PatrolMin = 4 * time.Second
	assert.Error(t, cfg.Validate())
}

func TestPropertyRespectStartWithinMaxIsValid(t *testing.T) {
	base := validConfig(t)
	rapid.Check(t, func(t *rapid.T) {
		cfg := base
		cfg.Respect.Max = rapid.IntRange(50, 500).Draw(t, "max")
		cfg.Respect.Start = rapid.IntRange(0, cfg.Respect.Max).Draw(t, "start")
		cfg.Respect.AllySupportThreshold = rapid.IntRange(0, cfg.Respect.Max).Draw(t, "threshold")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("expected valid respect config, got %v", err)
		}
	})
}

func TestPropertyRespectStartAboveMaxIsInvalid(t *testing.T) {
	base := validConfig(t)
	rapid.Check(t, func(t *rapid.T) {
		cfg := base
		cfg.Respect.Start = rapid.IntRange(cfg.Respect.Max+1, 10_000).Draw(t, "start")
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for start %d above max %d", cfg.Respect.Start, cfg.Respect.Max)
		}
	})
}

func TestPropertyDurationsTruncateToMilliseconds(t *testing.T) {
	base := validConfig(t)
	rapid.Check(t, func(t *rapid.T) {
		cfg := base
		d := time.Duration(rapid.Int64Range(0, 10_000_000_000).Draw(t, "ns"))
		cfg.Encounter.WaveDelay = d
		if got := cfg.Tuning().WaveDelayMs; got != d.Milliseconds() {
			t.Fatalf("wave delay %s mapped to %d ms", d, got)
		}
	})
}
