// Package observability builds the structured logger and attaches it to the
// encounter event stream.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/vendetta/internal/config"
	"github.com/cory-johannsen/vendetta/internal/game/encounter"
)

// NewLogger creates a structured logger named name from the given logging
// configuration. Output goes to stderr.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig, name string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
		// Every resolved hit is logged; sampling would drop most of a fight.
		zapCfg.Sampling = nil
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	if name != "" {
		logger = logger.Named(name)
	}
	return logger, nil
}

// LogEvents subscribes to bus and writes every delivered event to logger at
// Debug level. Player deaths, restarts and ally-support crossings are Info.
//
// Precondition: bus and logger must be non-nil.
func LogEvents(bus *encounter.Bus, logger *zap.Logger) {
	bus.Subscribe(func(ev encounter.Event) {
		lvl := zapcore.DebugLevel
		switch ev.Kind {
		case encounter.EventPlayerDied, encounter.EventRestarted,
			encounter.EventAllySupportLost, encounter.EventAllySupportRegained:
			lvl = zapcore.InfoLevel
		}
		if ce := logger.Check(lvl, "encounter event"); ce != nil {
			ce.Write(zap.Object("event", ev))
		}
	})
}
