// Package main provides the headless brawl simulation: it loads the enemy
// profiles and wave table, then runs one encounter under the frame loop with
// the autopilot supplying player input until the run duration elapses or a
// termination signal arrives.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/vendetta/internal/config"
	"github.com/cory-johannsen/vendetta/internal/game/dice"
	"github.com/cory-johannsen/vendetta/internal/game/encounter"
	"github.com/cory-johannsen/vendetta/internal/game/npc"
	"github.com/cory-johannsen/vendetta/internal/game/wave"
	"github.com/cory-johannsen/vendetta/internal/gameserver"
	"github.com/cory-johannsen/vendetta/internal/observability"
	"github.com/cory-johannsen/vendetta/internal/scripting"
	"github.com/cory-johannsen/vendetta/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	enemiesDir := flag.String("enemies-dir", "", "path to enemy profile YAML directory; overrides simulation.enemies_dir")
	wavesFile := flag.String("waves", "", "path to wave table YAML file; overrides simulation.waves_file")
	scriptsDir := flag.String("scripts", "", "directory of Lua event hooks; overrides simulation.scripts_dir")
	duration := flag.Duration("duration", 0, "run length; overrides simulation.duration (0 = until signal)")
	seed := flag.Int64("seed", 0, "random seed; overrides simulation.seed (0 = crypto source)")
	flag.Parse()

	var cfg config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	sim := cfg.Simulation
	if *enemiesDir != "" {
		sim.EnemiesDir = *enemiesDir
	}
	if *wavesFile != "" {
		sim.WavesFile = *wavesFile
	}
	if *scriptsDir != "" {
		sim.ScriptsDir = *scriptsDir
	}
	if *duration > 0 {
		sim.Duration = *duration
	}
	if *seed != 0 {
		sim.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging, "brawlsim")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	var src dice.Source = dice.NewCryptoSource()
	if sim.Seed != 0 {
		src = dice.NewSeededSource(sim.Seed)
	}
	src = dice.NewLoggedSource(src, logger.Named("dice"))

	templates := npc.DefaultTemplates()
	if sim.EnemiesDir != "" {
		templates, err = npc.LoadTemplates(sim.EnemiesDir)
		if err != nil {
			logger.Fatal("loading enemy profiles", zap.Error(err))
		}
	}
	registry, err := npc.NewRegistry(templates, npc.TypeTracksuitGoon, logger)
	if err != nil {
		logger.Fatal("building enemy registry", zap.Error(err))
	}
	logger.Info("enemy profiles loaded", zap.Int("count", registry.Len()))

	waves := wave.DefaultWaves()
	if sim.WavesFile != "" {
		waves, err = wave.LoadFile(sim.WavesFile)
		if err != nil {
			logger.Fatal("loading wave table", zap.Error(err))
		}
	}
	director, err := wave.NewDirector(waves)
	if err != nil {
		logger.Fatal("building wave director", zap.Error(err))
	}
	for _, def := range waves {
		for _, sp := range def.Spawns {
			if !registry.Has(sp.Type) {
				logger.Warn("wave references unknown enemy type; fallback profile will be used",
					zap.String("wave", def.Name),
					zap.String("type", sp.Type),
				)
			}
		}
	}

	tuning := cfg.Tuning()
	enc := encounter.New(tuning, registry, director, src, logger)
	observability.LogEvents(enc.Bus(), logger)

	lifecycle := server.NewLifecycle(logger)

	if sim.ScriptsDir != "" {
		scripts := scripting.NewManager(src, logger.Named("lua"))
		if err := scripts.Load(sim.ScriptsDir, sim.InstructionLimit); err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
		scripts.QueryRespect = enc.Ledger().Value
		scripts.Attach(enc.Bus())

		// Stopped after the simulation; hooks dispatched after Close are no-ops.
		released := make(chan struct{})
		lifecycle.Add("scripting", &server.FuncService{
			StartFn: func() error {
				<-released
				return nil
			},
			StopFn: func() {
				scripts.Close()
				close(released)
			},
		})
	}

	bot := encounter.NewAutopilot(tuning.Arena.Hazard, sim.UseHazard)
	clock := gameserver.NewWallClock()
	loop := gameserver.NewFrameLoop(sim.TickInterval, clock, logger)

	var lastSnapshot int64
	loop.Register(func(now int64) {
		enc.Tick(now, bot.Decide(enc.Snapshot(now)))
		if sim.SnapshotEvery > 0 && now-lastSnapshot >= sim.SnapshotEvery.Milliseconds() {
			lastSnapshot = now
			logger.Info("snapshot", zap.Object("snapshot", enc.Snapshot(now)))
		}
	})

	enc.Start(clock.NowMs())

	lifecycle.Add("simulation", server.NewContextService(loop.Run))

	ctx := context.Background()
	if sim.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sim.Duration)
		defer cancel()
	}

	logger.Info("brawl simulation ready",
		zap.String("encounter_id", enc.ID.String()),
		zap.Duration("tick_interval", sim.TickInterval),
		zap.Duration("duration", sim.Duration),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Error("simulation failed", zap.Error(err))
	}

	final := enc.Snapshot(clock.NowMs())
	logger.Info("simulation finished",
		zap.Object("snapshot", final),
		zap.Int64("frames", loop.Frames()),
		zap.Int("restarts", enc.Restarts()),
	)
}
