package encounter

import (
	"go.uber.org/zap/zapcore"
)

// EnemyView is the telemetry projection of one enemy.
type EnemyView struct {
	ID        string
	Type      string
	State     string
	Health    int
	MaxHealth int
	Position  Point
	// StateRemainingMs is the time left in a timer-owned state, or 0.
	StateRemainingMs int64
}

// Point is a plain position copy for telemetry consumers.
type Point struct {
	X float64
	Y float64
}

// Snapshot is the debug HUD view of an encounter at one instant.
type Snapshot struct {
	EncounterID       string
	NowMs             int64
	PlayerState       string
	PlayerHealth      int
	PlayerPosition    Point
	PlayerFacing      float64
	ParryActive       bool
	ParryRemainingMs  int64
	IframeActive      bool
	IframeRemainingMs int64
	Respect           int
	AllySupport       bool
	WaveIndex         int
	AliveCount        int
	Enemies           []EnemyView
}

// Snapshot projects the encounter's state at nowMs. Dead enemies awaiting
// removal are listed with state "dead".
func (e *Encounter) Snapshot(nowMs int64) Snapshot {
	p := e.player
	s := Snapshot{
		EncounterID:       e.ID.String(),
		NowMs:             nowMs,
		PlayerState:       p.DebugState(nowMs),
		PlayerHealth:      p.Health,
		PlayerPosition:    Point{X: p.Body.Position.X, Y: p.Body.Position.Y},
		PlayerFacing:      p.Facing(),
		ParryActive:       p.Parry.Active(nowMs),
		ParryRemainingMs:  p.Parry.Remaining(nowMs),
		IframeActive:      p.Invulnerable(nowMs),
		IframeRemainingMs: max(0, p.InvulnerableUntil-nowMs),
		Respect:           e.ledger.Value(),
		AllySupport:       e.ledger.HasAllySupport(),
		WaveIndex:         e.waveIndex,
		AliveCount:        e.roster.AliveCount(),
	}
	for _, en := range e.roster.All() {
		v := EnemyView{
			ID:        en.ID,
			Type:      en.Template.ID,
			State:     en.State().String(),
			Health:    en.Health,
			MaxHealth: en.MaxHealth,
			Position:  Point{X: en.Body.Position.X, Y: en.Body.Position.Y},
		}
		if due, ok := e.timers.DueAt(en.StateTimer()); ok && due > nowMs {
			v.StateRemainingMs = due - nowMs
		}
		s.Enemies = append(s.Enemies, v)
	}
	return s
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Snapshot) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("encounter_id", s.EncounterID)
	enc.AddInt64("now_ms", s.NowMs)
	enc.AddString("player_state", s.PlayerState)
	enc.AddInt("player_health", s.PlayerHealth)
	enc.AddBool("parry_active", s.ParryActive)
	enc.AddInt64("parry_remaining_ms", s.ParryRemainingMs)
	enc.AddBool("iframe_active", s.IframeActive)
	enc.AddInt64("iframe_remaining_ms", s.IframeRemainingMs)
	enc.AddInt("respect", s.Respect)
	enc.AddBool("ally_support", s.AllySupport)
	enc.AddInt("wave", s.WaveIndex)
	enc.AddInt("alive", s.AliveCount)
	return enc.AddArray("enemies", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, v := range s.Enemies {
			if err := arr.AppendObject(v); err != nil {
				return err
			}
		}
		return nil
	}))
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (v EnemyView) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", v.ID)
	enc.AddString("type", v.Type)
	enc.AddString("state", v.State)
	enc.AddInt("health", v.Health)
	enc.AddFloat64("x", v.Position.X)
	enc.AddFloat64("y", v.Position.Y)
	return nil
}
