package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/vendetta/internal/config"
	"github.com/cory-johannsen/vendetta/internal/game/encounter"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "json"}
	logger, err := NewLogger(cfg, "brawlsim")
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestNewLogger_Console(t *testing.T) {
	cfg := config.LoggingConfig{Level: "debug", Format: "console"}
	logger, err := NewLogger(cfg, "")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	cfg := config.LoggingConfig{Level: "trace", Format: "json"}
	_, err := NewLogger(cfg, "brawlsim")
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "xml"}
	_, err := NewLogger(cfg, "brawlsim")
	assert.Error(t, err)
}

func TestNewLogger_AllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := config.LoggingConfig{Level: level, Format: "json"}
		logger, err := NewLogger(cfg, "brawlsim")
		require.NoError(t, err, "level %q should be valid", level)
		assert.NotNil(t, logger)
	}
}

func TestLogEvents_LevelsByKind(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	bus := encounter.NewBus()
	LogEvents(bus, zap.New(core))

	bus.Publish(encounter.Event{Kind: encounter.EventHealthChanged, ActorID: encounter.PlayerID, Value: 90, Previous: 100})
	bus.Publish(encounter.Event{Kind: encounter.EventPlayerDied, ActorID: encounter.PlayerID})
	bus.Flush()

	entries := logs.FilterMessage("encounter event").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, zap.InfoLevel, entries[1].Level)
	ev := entries[0].ContextMap()["event"].(map[string]interface{})
	assert.Equal(t, "health_changed", ev["kind"])
	assert.Equal(t, 90, ev["value"])
}

func TestLogEvents_DebugSuppressedAtInfo(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	bus := encounter.NewBus()
	LogEvents(bus, zap.New(core))
	bus.Publish(encounter.Event{Kind: encounter.EventWaveAdvanced, Value: 1})
	bus.Flush()
	assert.Equal(t, 0, logs.Len())
}

func TestLogEvents_AllySupportCrossingsAtInfo(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	bus := encounter.NewBus()
	LogEvents(bus, zap.New(core))
	bus.Publish(encounter.Event{Kind: encounter.EventAllySupportLost, Value: 40, Previous: 46})
	bus.Publish(encounter.Event{Kind: encounter.EventAllySupportRegained, Value: 50, Previous: 40})
	bus.Flush()
	assert.Equal(t, 2, logs.FilterLevelExact(zap.InfoLevel).Len())
}
