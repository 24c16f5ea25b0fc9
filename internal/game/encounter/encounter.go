package encounter

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/vendetta/internal/game/combat"
	"github.com/cory-johannsen/vendetta/internal/game/dice"
	"github.com/cory-johannsen/vendetta/internal/game/npc"
	"github.com/cory-johannsen/vendetta/internal/game/player"
	"github.com/cory-johannsen/vendetta/internal/game/respect"
	"github.com/cory-johannsen/vendetta/internal/game/wave"
	"github.com/cory-johannsen/vendetta/internal/game/world"
)

// Encounter owns every piece of a running fight and advances it one tick at a time.
// It is single-threaded: Start, Tick, and Snapshot must be called from one goroutine.
type Encounter struct {
	// ID identifies this run in logs and snapshots.
	ID uuid.UUID

	tuning   Tuning
	logger   *zap.Logger
	timers   *combat.Scheduler
	bus      *Bus
	ledger   *respect.Ledger
	roster   *npc.Roster
	director *wave.Director
	orch     *Orchestrator
	player   *player.Player

	waveIndex    int
	waveTimer    combat.TimerID
	restartTimer combat.TimerID
	strikeSeq    uint64
	lastTickMs   int64
	started      bool
	restarts     int
}

// New builds an Encounter. Nothing spawns until Start.
//
// Precondition: registry, director, and src must be non-nil.
func New(t Tuning, registry *npc.Registry, director *wave.Director, src dice.Source, logger *zap.Logger) *Encounter {
	if logger == nil {
		logger = zap.NewNop()
	}
	timers := combat.NewScheduler()
	bus := NewBus()
	ledger := respect.NewLedgerFromTuning(t.Respect)
	roster := npc.NewRoster(registry, t.Enemy, timers, src)

	e := &Encounter{
		ID:       uuid.New(),
		tuning:   t,
		logger:   logger,
		timers:   timers,
		bus:      bus,
		ledger:   ledger,
		roster:   roster,
		director: director,
	}
	e.logger = logger.With(zap.String("encounter_id", e.ID.String()))
	e.orch = NewOrchestrator(t, ledger, roster, timers, bus, e.logger)
	e.orch.OnPlayerDeath = e.scheduleRestart
	ledger.OnChange(e.onRespectChange)
	e.player = player.New(t.PlayerSpawn, t.Player, timers)
	return e
}

// Bus returns the event bus UI layers subscribe to.
func (e *Encounter) Bus() *Bus { return e.bus }

// Ledger returns the reputation ledger.
func (e *Encounter) Ledger() *respect.Ledger { return e.ledger }

// Player returns the current player. A restart replaces it.
func (e *Encounter) Player() *player.Player { return e.player }

// Roster returns the enemy roster.
func (e *Encounter) Roster() *npc.Roster { return e.roster }

// Orchestrator returns the combat orchestrator.
func (e *Encounter) Orchestrator() *Orchestrator { return e.orch }

// Timers returns the encounter's scheduler.
func (e *Encounter) Timers() *combat.Scheduler { return e.timers }

// WaveIndex returns the index of the active wave.
func (e *Encounter) WaveIndex() int { return e.waveIndex }

// Restarts returns how many times the encounter has reset after a player death.
func (e *Encounter) Restarts() int { return e.restarts }

// Start spawns the first wave and publishes the initial health and respect.
// Calling Start twice is a no-op.
func (e *Encounter) Start(nowMs int64) {
	if e.started {
		return
	}
	e.started = true
	e.lastTickMs = nowMs
	e.spawnWave(e.director.Wave(0))
	e.publishInitial(nowMs)
	e.logger.Info("encounter started",
		zap.Int("waves", e.director.Len()),
		zap.Int("enemies", e.roster.AliveCount()),
	)
	e.bus.Flush()
}

// Tick advances the simulation to nowMs with the player's intent for this tick.
// Bodies move by the elapsed time first; then, in fixed order: due timers fire,
// player input, enemy AI in spawn order, player hit detection, the
// environmental kill, the wave-advance check, and finally the event flush.
//
// Precondition: Start has been called; nowMs is non-decreasing.
func (e *Encounter) Tick(nowMs int64, in player.Input) {
	dt := nowMs - e.lastTickMs
	if dt < 0 {
		dt = 0
	}
	e.lastTickMs = nowMs
	e.integrate(dt)

	e.timers.Advance(nowMs)

	p := e.player
	p.HandleInput(nowMs, in)

	for _, en := range e.roster.All() {
		en.Update(nowMs, p.Body.Position, !p.IsDead())
	}

	e.detectPlayerHits(nowMs)

	if in.Grab {
		e.tryEnvironmentalKill(nowMs)
	}

	e.checkWaveAdvance()

	e.bus.Flush()
}

func (e *Encounter) integrate(dtMs int64) {
	if dtMs == 0 {
		return
	}
	e.tuning.Arena.Step(e.player.Body, dtMs)
	for _, en := range e.roster.All() {
		e.tuning.Arena.Step(en.Body, dtMs)
	}
}

func (e *Encounter) detectPlayerHits(nowMs int64) {
	p := e.player
	swing, ok := p.ActiveSwing()
	if !ok || swing.Damage <= 0 || p.IsDead() {
		return
	}
	hitbox := p.Hitbox()
	e.orch.BeginSwing()
	defer e.orch.EndSwing()
	for _, en := range e.roster.Alive() {
		if hitbox.Overlaps(en.Hurtbox()) {
			e.orch.ResolveHit(nowMs, PlayerActor{P: p}, EnemyActor{E: en}, combat.Attack{Damage: swing.Damage, ID: swing.ID})
		}
	}
}

// tryEnvironmentalKill resolves a hazard kill against the living enemy
// nearest the hazard, if the player is within reach of it.
func (e *Encounter) tryEnvironmentalKill(nowMs int64) {
	p := e.player
	hz := e.tuning.Arena.Hazard
	if p.IsDead() || !hz.PlayerInReach(p.Body.Position) {
		return
	}
	var target *npc.Enemy
	closest := math.Inf(1)
	for _, en := range e.roster.Alive() {
		d := world.Distance(en.Body.Position, hz.Center)
		if d < hz.EnemyReach && d < closest {
			closest = d
			target = en
		}
	}
	if target == nil {
		return
	}
	e.orch.ResolveHit(nowMs, PlayerActor{P: p}, EnemyActor{E: target}, combat.Attack{
		Damage:        e.tuning.EnvironmentalDamage,
		Environmental: true,
	})
}

func (e *Encounter) checkWaveAdvance() {
	if e.waveTimer != 0 || e.player.IsDead() || e.roster.AliveCount() > 0 {
		return
	}
	e.waveTimer = e.timers.After(e.lastTickMs, e.tuning.WaveDelayMs, e.advanceWave)
}

func (e *Encounter) advanceWave(nowMs int64) {
	e.waveTimer = 0
	prev := e.waveIndex
	idx, def := e.director.Advance(e.waveIndex)
	e.waveIndex = idx
	e.spawnWave(def)
	e.logger.Info("wave advanced",
		zap.Int("wave", idx),
		zap.String("name", def.Name),
		zap.Int("enemies", len(def.Spawns)),
	)
	e.bus.Publish(Event{Kind: EventWaveAdvanced, AtMs: nowMs, Value: idx, Previous: prev})
}

func (e *Encounter) spawnWave(def *wave.Definition) {
	for _, s := range def.Spawns {
		en := e.roster.Spawn(s.Type, world.Vec{X: s.X, Y: e.tuning.Arena.Height * s.YFrac})
		en.OnHitFrame = e.enemyStrike
	}
}

// enemyStrike dispatches an enemy's hit frame to the orchestrator.
func (e *Encounter) enemyStrike(en *npc.Enemy, nowMs int64) {
	p := e.player
	if en.IsDead() || p.IsDead() {
		return
	}
	e.strikeSeq++
	e.orch.ResolveHit(nowMs, EnemyActor{E: en}, PlayerActor{P: p}, combat.Attack{
		Damage: en.Damage(),
		ID:     fmt.Sprintf("%s-strike-%d", en.ID, e.strikeSeq),
	})
}

func (e *Encounter) scheduleRestart(nowMs int64) {
	e.timers.Cancel(e.waveTimer)
	e.waveTimer = 0
	e.restartTimer = e.timers.After(nowMs, e.tuning.RestartDelayMs, e.restart)
}

// restart resets the fight to its initial state: a fresh player, the ledger
// back at its start value, wave 0, and every pending timer dropped.
func (e *Encounter) restart(nowMs int64) {
	e.roster.Clear()
	e.timers.Clear()
	e.restartTimer = 0
	e.waveTimer = 0
	e.waveIndex = 0
	e.restarts++

	prevRespect, hadSupport := e.ledger.Value(), e.ledger.HasAllySupport()
	e.ledger.Reset(e.tuning.Respect.Start)
	e.player = player.New(e.tuning.PlayerSpawn, e.tuning.Player, e.timers)
	e.spawnWave(e.director.Wave(0))

	e.logger.Info("encounter restarted", zap.Int("restarts", e.restarts))
	e.bus.Publish(Event{Kind: EventRestarted, AtMs: nowMs, Value: e.restarts})
	e.publishInitial(nowMs)

	// Reset bypasses the ledger observers, so a threshold crossing is announced here.
	switch has := e.ledger.HasAllySupport(); {
	case has && !hadSupport:
		e.bus.Publish(Event{Kind: EventAllySupportRegained, AtMs: nowMs, Value: e.ledger.Value(), Previous: prevRespect})
	case !has && hadSupport:
		e.bus.Publish(Event{Kind: EventAllySupportLost, AtMs: nowMs, Value: e.ledger.Value(), Previous: prevRespect})
	}
}

func (e *Encounter) publishInitial(nowMs int64) {
	e.bus.Publish(Event{Kind: EventRespectChanged, AtMs: nowMs, Value: e.ledger.Value(), Previous: e.ledger.Value()})
	e.bus.Publish(Event{Kind: EventHealthChanged, AtMs: nowMs, ActorID: PlayerID, Value: e.player.Health, Previous: e.player.Health})
}

func (e *Encounter) onRespectChange(ch respect.Change) {
	now := e.lastTickMs
	e.bus.Publish(Event{Kind: EventRespectChanged, AtMs: now, Value: ch.Current, Previous: ch.Previous})
	th := e.ledger.Threshold()
	switch {
	case ch.Previous >= th && ch.Current < th:
		e.bus.Publish(Event{Kind: EventAllySupportLost, AtMs: now, Value: ch.Current, Previous: ch.Previous})
	case ch.Previous < th && ch.Current >= th:
		e.bus.Publish(Event{Kind: EventAllySupportRegained, AtMs: now, Value: ch.Current, Previous: ch.Previous})
	}
}
