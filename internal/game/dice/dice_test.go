package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/vendetta/internal/game/dice"
)

// fixedSource returns a constant value, clamped into range.
type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func TestBetween_Bounds(t *testing.T) {
	assert.Equal(t, 1500, dice.Between(fixedSource{v: 0}, 1500, 3000))
	assert.Equal(t, 3000, dice.Between(fixedSource{v: 1 << 30}, 1500, 3000))
}

func TestProperty_Between_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		lo := rapid.IntRange(-1000, 1000).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+5000).Draw(rt, "hi")
		v := dice.Between(dice.NewSeededSource(seed), lo, hi)
		if v < lo || v > hi {
			rt.Fatalf("Between(%d, %d) = %d", lo, hi, v)
		}
	})
}

func TestSign(t *testing.T) {
	assert.Equal(t, -1.0, dice.Sign(fixedSource{v: 0}))
	assert.Equal(t, 1.0, dice.Sign(fixedSource{v: 1}))
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 200; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestSources_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

func TestLoggedSource_LogsDraws(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	src := dice.NewLoggedSource(fixedSource{v: 3}, zap.New(core))
	assert.Equal(t, 3, src.Intn(10))
	entries := logs.FilterMessage("dice draw").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, int64(3), entries[0].ContextMap()["value"])
	}
}
