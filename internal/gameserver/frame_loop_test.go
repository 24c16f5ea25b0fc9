package gameserver_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/vendetta/internal/gameserver"
)

func TestNewFrameLoop_PanicsOnBadArgs(t *testing.T) {
	clk := gameserver.NewManualClock(0)
	assert.Panics(t, func() { gameserver.NewFrameLoop(0, clk, nil) })
	assert.Panics(t, func() { gameserver.NewFrameLoop(time.Millisecond, nil, nil) })
	assert.NotPanics(t, func() { gameserver.NewFrameLoop(time.Millisecond, clk, nil) })
}

func TestFrameLoop_StepPassesClockReadingInOrder(t *testing.T) {
	clk := gameserver.NewManualClock(0)
	loop := gameserver.NewFrameLoop(16*time.Millisecond, clk, zap.NewNop())
	var order []string
	var seen []int64
	loop.Register(func(now int64) {
		order = append(order, "sim")
		seen = append(seen, now)
	})
	loop.Register(func(int64) { order = append(order, "render") })

	clk.Advance(16 * time.Millisecond)
	assert.Equal(t, int64(16), loop.Step())
	clk.Advance(16 * time.Millisecond)
	loop.Step()

	assert.Equal(t, []int64{16, 32}, seen)
	assert.Equal(t, []string{"sim", "render", "sim", "render"}, order)
	assert.Equal(t, int64(2), loop.Frames())
}

func TestFrameLoop_RunStopsOnCancel(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	loop := gameserver.NewFrameLoop(5*time.Millisecond, gameserver.NewWallClock(), zap.New(core))
	var frames atomic.Int64
	loop.Register(func(int64) { frames.Add(1) })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	err := loop.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Positive(t, frames.Load())
	assert.Equal(t, frames.Load(), loop.Frames())

	stopped := logs.FilterMessage("frame loop stopped").All()
	require.Len(t, stopped, 1)
	assert.Equal(t, loop.Frames(), stopped[0].ContextMap()["frames"])
}

func TestFrameLoop_StartInvokesCallback(t *testing.T) {
	loop := gameserver.NewFrameLoop(5*time.Millisecond, gameserver.NewWallClock(), nil)
	called := make(chan int64, 1)
	loop.Register(func(now int64) {
		select {
		case called <- now:
		default:
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	loop.Start(ctx)
	select {
	case now := <-called:
		assert.GreaterOrEqual(t, now, int64(0))
	case <-ctx.Done():
		t.Fatal("frame callback not invoked within timeout")
	}
}
