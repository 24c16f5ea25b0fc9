package encounter_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/vendetta/internal/game/encounter"
	"github.com/cory-johannsen/vendetta/internal/game/npc"
	"github.com/cory-johannsen/vendetta/internal/game/wave"
)

// fixedSource always returns the same value, clamped into range.
type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func soloWave(x float64) *wave.Definition {
	return &wave.Definition{Name: "solo", Spawns: []wave.Spawn{{X: x, YFrac: 0.62, Type: npc.TypeTracksuitGoon}}}
}

func pairWave() *wave.Definition {
	return &wave.Definition{Name: "pair", Spawns: []wave.Spawn{
		{X: 800, YFrac: 0.62, Type: npc.TypeTracksuitGoon},
		{X: 900, YFrac: 0.62, Type: npc.TypeEnforcer},
	}}
}

func newEncounterWithLogger(t *testing.T, logger *zap.Logger, waves ...*wave.Definition) *encounter.Encounter {
	t.Helper()
	if len(waves) == 0 {
		waves = []*wave.Definition{soloWave(800)}
	}
	d, err := wave.NewDirector(waves)
	require.NoError(t, err)
	return encounter.New(encounter.DefaultTuning(), npc.DefaultRegistry(nil), d, fixedSource{}, logger)
}

// newEncounter builds and starts an encounter at time 0.
func newEncounter(t *testing.T, waves ...*wave.Definition) *encounter.Encounter {
	t.Helper()
	enc := newEncounterWithLogger(t, zaptest.NewLogger(t), waves...)
	enc.Start(0)
	return enc
}

// record subscribes to enc's bus and returns the growing event log.
func record(enc *encounter.Encounter) *[]encounter.Event {
	var evs []encounter.Event
	enc.Bus().Subscribe(func(ev encounter.Event) { evs = append(evs, ev) })
	return &evs
}

func kinds(evs []encounter.Event) []encounter.EventKind {
	out := make([]encounter.EventKind, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Kind)
	}
	return out
}

func firstEnemy(t *testing.T, enc *encounter.Encounter) *npc.Enemy {
	t.Helper()
	alive := enc.Roster().Alive()
	require.NotEmpty(t, alive)
	return alive[0]
}
