// Package gameserver drives the encounter simulation in real time: a
// monotonic millisecond clock and a fixed-interval frame loop.
package gameserver

import (
	"sync"
	"time"
)

// Clock reports simulation time in milliseconds since an arbitrary origin.
// Successive readings never decrease.
type Clock interface {
	NowMs() int64
}

// WallClock reads the monotonic wall clock relative to its creation.
type WallClock struct {
	origin time.Time
}

// NewWallClock creates a WallClock whose origin is the current instant.
//
// Postcondition: NowMs() returns 0 immediately after construction.
func NewWallClock() *WallClock {
	return &WallClock{origin: time.Now()}
}

// NowMs returns the milliseconds elapsed since the origin.
func (c *WallClock) NowMs() int64 {
	return time.Since(c.origin).Milliseconds()
}

// ManualClock is a Clock advanced explicitly by its owner. Safe for
// concurrent use.
type ManualClock struct {
	mu  sync.Mutex
	now int64
}

// NewManualClock creates a ManualClock reading startMs.
func NewManualClock(startMs int64) *ManualClock {
	return &ManualClock{now: startMs}
}

// NowMs returns the current reading.
func (c *ManualClock) NowMs() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d, truncated to whole milliseconds.
// Negative durations are ignored.
//
// Postcondition: Returns the new reading.
func (c *ManualClock) Advance(d time.Duration) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.now += d.Milliseconds()
	}
	return c.now
}
