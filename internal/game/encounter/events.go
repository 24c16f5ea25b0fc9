package encounter

import "go.uber.org/zap/zapcore"

// EventKind names a discrete transition a UI may subscribe to.
type EventKind string

const (
	EventHealthChanged       EventKind = "health_changed"
	EventRespectChanged      EventKind = "respect_changed"
	EventAllySupportLost     EventKind = "ally_support_lost"
	EventAllySupportRegained EventKind = "ally_support_regained"
	EventWaveAdvanced        EventKind = "wave_advanced"
	EventHitResolved         EventKind = "hit_resolved"
	EventEnemyDefeated       EventKind = "enemy_defeated"
	EventPlayerDied          EventKind = "player_died"
	EventRestarted           EventKind = "restarted"
)

// Event is one notification. Value carries the new health, respect, or wave
// index depending on Kind; Previous carries the value it replaced.
type Event struct {
	Kind     EventKind
	AtMs     int64
	ActorID  string
	Value    int
	Previous int
	// AttackerID, Outcome, and Damage are set on hit_resolved only.
	AttackerID string
	Outcome    string
	Damage     int
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e Event) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("kind", string(e.Kind))
	enc.AddInt64("at_ms", e.AtMs)
	if e.ActorID != "" {
		enc.AddString("actor", e.ActorID)
	}
	enc.AddInt("value", e.Value)
	enc.AddInt("previous", e.Previous)
	if e.Kind == EventHitResolved {
		enc.AddString("attacker", e.AttackerID)
		enc.AddString("outcome", e.Outcome)
		enc.AddInt("damage", e.Damage)
	}
	return nil
}

// Bus buffers events published during a tick and delivers them to
// subscribers when flushed, after the tick's mutations have settled.
// It is not safe for concurrent use.
type Bus struct {
	subscribers []func(Event)
	pending     []Event
}

// NewBus creates an empty Bus.
func NewBus() *Bus { return &Bus{} }

// Subscribe registers fn for every future flush.
//
// Precondition: fn must not be nil.
func (b *Bus) Subscribe(fn func(Event)) {
	b.subscribers = append(b.subscribers, fn)
}

// Publish queues ev for the next Flush.
func (b *Bus) Publish(ev Event) {
	b.pending = append(b.pending, ev)
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int { return len(b.pending) }

// Flush delivers queued events in publish order to every subscriber.
// Events published by a subscriber during delivery wait for the next Flush.
//
// Postcondition: Returns the number of events delivered.
func (b *Bus) Flush() int {
	batch := b.pending
	b.pending = nil
	for _, ev := range batch {
		for _, fn := range b.subscribers {
			fn(ev)
		}
	}
	return len(batch)
}
