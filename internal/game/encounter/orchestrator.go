package encounter

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/vendetta/internal/game/combat"
	"github.com/cory-johannsen/vendetta/internal/game/npc"
	"github.com/cory-johannsen/vendetta/internal/game/respect"
	"github.com/cory-johannsen/vendetta/internal/game/world"
)

// Orchestrator is the single entry point for every hit attempt. It delegates
// the decision to combat.Resolve and is the only component that applies the
// outcome to actors and to the reputation ledger.
type Orchestrator struct {
	tuning Tuning
	ledger *respect.Ledger
	roster *npc.Roster
	timers *combat.Scheduler
	bus    *Bus
	logger *zap.Logger

	// opponents is the living-enemy count when the current player swing's
	// detection began; 0 outside a swing.
	opponents int

	// OnPlayerDeath runs after the player is marked dead. May be nil.
	OnPlayerDeath func(nowMs int64)
}

// NewOrchestrator wires an Orchestrator to its collaborators.
//
// Precondition: ledger, roster, timers, and bus must be non-nil.
func NewOrchestrator(t Tuning, ledger *respect.Ledger, roster *npc.Roster, timers *combat.Scheduler, bus *Bus, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		tuning: t,
		ledger: ledger,
		roster: roster,
		timers: timers,
		bus:    bus,
		logger: logger,
	}
}

// ResolveHit resolves attack from attacker against target at nowMs and applies
// the outcome. A dead target is left untouched and reported as ignored.
//
// Precondition: attacker and target are PlayerActor or EnemyActor; anything else panics.
// Postcondition: Returns the HitOutcome that was applied.
func (o *Orchestrator) ResolveHit(nowMs int64, attacker, target Actor, attack combat.Attack) combat.HitOutcome {
	tv := vitalsOf(target)
	if tv.IsDead() {
		return combat.HitOutcome{Kind: combat.Ignored, ResultingHealth: tv.Health, NewInvulnerableUntil: tv.InvulnerableUntil}
	}

	out := combat.Resolve(nowMs, o.snapshot(target), attack, o.tuning.Combat)
	o.logger.Debug("hit resolved",
		zap.String("attacker", idOf(attacker)),
		zap.String("target", idOf(target)),
		zap.Stringer("outcome", out.Kind),
		zap.Int("damage", out.DamageDealt),
		zap.Int("health", out.ResultingHealth),
	)
	o.bus.Publish(Event{
		Kind:       EventHitResolved,
		AtMs:       nowMs,
		ActorID:    idOf(target),
		AttackerID: idOf(attacker),
		Outcome:    out.Kind.String(),
		Damage:     out.DamageDealt,
		Value:      out.ResultingHealth,
		Previous:   tv.Health,
	})

	switch out.Kind {
	case combat.Ignored:
		return out
	case combat.Parried:
		o.applyParry(nowMs, attacker, target, out)
		return out
	}

	prev := tv.Health
	tv.ApplyOutcome(attack.ID, out)
	o.bus.Publish(Event{Kind: EventHealthChanged, AtMs: nowMs, ActorID: idOf(target), Value: tv.Health, Previous: prev})

	if attack.Environmental {
		o.ledger.Adjust(-o.tuning.Respect.PenaltyEnvironmentalKill)
	}

	if out.ResultingHealth == 0 {
		o.kill(nowMs, target, attack)
		return out
	}

	dir := world.Direction(positionOf(attacker), positionOf(target))
	switch t := target.(type) {
	case PlayerActor:
		t.P.Knockback(nowMs, world.Vec{X: dir * o.tuning.Combat.PlayerKnockback, Y: o.tuning.Combat.KnockbackVY}, o.tuning.Combat.KnockbackMs)
	case EnemyActor:
		t.E.Knockback(nowMs, world.Vec{X: dir * o.tuning.Combat.EnemyKnockback, Y: o.tuning.Combat.KnockbackVY}, o.tuning.Combat.KnockbackMs)
		t.E.Stun(nowMs, o.tuning.Combat.HitStunMs)
	default:
		panic(unknownActor(target))
	}
	return out
}

// snapshot projects the target's live defensive state. Enemies have no
// defensive mechanic, so only their health and dedup id are real.
func (o *Orchestrator) snapshot(target Actor) combat.DefenderSnapshot {
	switch t := target.(type) {
	case PlayerActor:
		return combat.DefenderSnapshot{
			InvulnerableUntil:   t.P.InvulnerableUntil,
			ParryOpenUntil:      t.P.Parry.OpenUntil(),
			Blocking:            t.P.Blocking(),
			Health:              t.P.Health,
			LastAppliedAttackID: t.P.LastAppliedAttackID,
		}
	case EnemyActor:
		return combat.DefenderSnapshot{
			Health:              t.E.Health,
			LastAppliedAttackID: t.E.LastAppliedAttackID,
		}
	default:
		panic(unknownActor(target))
	}
}

func (o *Orchestrator) applyParry(nowMs int64, attacker, target Actor, out combat.HitOutcome) {
	switch t := target.(type) {
	case PlayerActor:
		t.P.Parry.Consume()
	case EnemyActor:
	default:
		panic(unknownActor(target))
	}
	o.ledger.Adjust(out.RespectDelta)

	switch a := attacker.(type) {
	case EnemyActor:
		a.E.Stun(nowMs, o.tuning.Combat.ParryStunMs)
	case PlayerActor:
		// The player has no stun state.
	default:
		panic(unknownActor(attacker))
	}
}

// BeginSwing records how many enemies are alive before a player swing is
// checked against them. A swing that starts against several enemies never
// earns the fair-fight bonus, even if it drops them all.
func (o *Orchestrator) BeginSwing() { o.opponents = o.roster.AliveCount() }

// EndSwing clears the count recorded by BeginSwing.
func (o *Orchestrator) EndSwing() { o.opponents = 0 }

func (o *Orchestrator) kill(nowMs int64, target Actor, attack combat.Attack) {
	switch t := target.(type) {
	case PlayerActor:
		t.P.Kill()
		o.logger.Info("player died", zap.Int64("at_ms", nowMs))
		o.bus.Publish(Event{Kind: EventPlayerDied, AtMs: nowMs, ActorID: PlayerID})
		if o.OnPlayerDeath != nil {
			o.OnPlayerDeath(nowMs)
		}
	case EnemyActor:
		e := t.E
		e.Kill()
		if !attack.Environmental {
			o.ledger.Adjust(o.tuning.Respect.GainCleanKO)
			if o.roster.AliveCount() == 0 && o.opponents <= 1 {
				o.ledger.Adjust(o.tuning.Respect.GainFairFight)
			}
		}
		o.logger.Debug("enemy defeated",
			zap.String("enemy", e.ID),
			zap.String("type", e.Template.ID),
			zap.Bool("environmental", attack.Environmental),
		)
		o.bus.Publish(Event{Kind: EventEnemyDefeated, AtMs: nowMs, ActorID: e.ID})
		o.timers.After(nowMs, o.tuning.DeathRemovalMs, func(int64) {
			o.roster.Remove(e.ID)
		})
	default:
		panic(unknownActor(target))
	}
}
