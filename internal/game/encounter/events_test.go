package encounter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/vendetta/internal/game/encounter"
)

func TestBus_BuffersUntilFlush(t *testing.T) {
	bus := encounter.NewBus()
	var got []encounter.EventKind
	bus.Subscribe(func(ev encounter.Event) { got = append(got, ev.Kind) })

	bus.Publish(encounter.Event{Kind: encounter.EventHealthChanged})
	bus.Publish(encounter.Event{Kind: encounter.EventRespectChanged})
	assert.Empty(t, got)
	assert.Equal(t, 2, bus.Pending())

	assert.Equal(t, 2, bus.Flush())
	assert.Equal(t, []encounter.EventKind{encounter.EventHealthChanged, encounter.EventRespectChanged}, got)
	assert.Equal(t, 0, bus.Pending())
	assert.Equal(t, 0, bus.Flush())
}

func TestBus_PublishDuringDeliveryWaitsForNextFlush(t *testing.T) {
	bus := encounter.NewBus()
	var got []encounter.EventKind
	bus.Subscribe(func(ev encounter.Event) {
		got = append(got, ev.Kind)
		if ev.Kind == encounter.EventPlayerDied {
			bus.Publish(encounter.Event{Kind: encounter.EventRestarted})
		}
	})

	bus.Publish(encounter.Event{Kind: encounter.EventPlayerDied})
	bus.Flush()
	assert.Equal(t, []encounter.EventKind{encounter.EventPlayerDied}, got)
	bus.Flush()
	assert.Equal(t, []encounter.EventKind{encounter.EventPlayerDied, encounter.EventRestarted}, got)
}

func TestBus_EverySubscriberSeesEveryEvent(t *testing.T) {
	bus := encounter.NewBus()
	a, b := 0, 0
	bus.Subscribe(func(encounter.Event) { a++ })
	bus.Subscribe(func(encounter.Event) { b++ })
	bus.Publish(encounter.Event{Kind: encounter.EventWaveAdvanced})
	bus.Publish(encounter.Event{Kind: encounter.EventWaveAdvanced})
	bus.Flush()
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}

func TestEvent_MarshalLogObject(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	zap.New(core).Debug("event", zap.Object("event", encounter.Event{
		Kind:       encounter.EventHitResolved,
		AtMs:       516,
		ActorID:    encounter.PlayerID,
		AttackerID: "enforcer-1",
		Outcome:    "blocked",
		Damage:     4,
		Value:      96,
		Previous:   100,
	}))

	fields := logs.All()[0].ContextMap()["event"].(map[string]interface{})
	assert.Equal(t, "hit_resolved", fields["kind"])
	assert.Equal(t, "enforcer-1", fields["attacker"])
	assert.Equal(t, "blocked", fields["outcome"])
	assert.Equal(t, 4, fields["damage"])
}
