package gameserver

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FrameFunc receives the clock reading for one frame.
type FrameFunc func(nowMs int64)

// FrameLoop invokes its registered frame callbacks once per interval with
// the current clock reading. Callbacks run sequentially on the loop
// goroutine, so the simulation they drive is never touched concurrently.
type FrameLoop struct {
	interval time.Duration
	clock    Clock
	logger   *zap.Logger

	mu     sync.Mutex
	frames []FrameFunc
	count  int64
	lastMs int64
}

// NewFrameLoop returns a loop that fires every interval.
//
// Precondition: interval must be > 0; clock must be non-nil.
// Postcondition: A nil logger is replaced with zap.NewNop().
func NewFrameLoop(interval time.Duration, clock Clock, logger *zap.Logger) *FrameLoop {
	if interval <= 0 {
		panic("gameserver.NewFrameLoop: interval must be > 0")
	}
	if clock == nil {
		panic("gameserver.NewFrameLoop: clock must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FrameLoop{interval: interval, clock: clock, logger: logger}
}

// Register appends fn to the callbacks invoked each frame, in
// registration order.
//
// Precondition: fn must not be nil.
func (f *FrameLoop) Register(fn FrameFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, fn)
}

// Step runs a single frame at the current clock reading.
//
// Postcondition: Returns the reading passed to every callback.
func (f *FrameLoop) Step() int64 {
	now := f.clock.NowMs()
	f.mu.Lock()
	frames := make([]FrameFunc, len(f.frames))
	copy(frames, f.frames)
	f.count++
	f.lastMs = now
	f.mu.Unlock()

	for _, fn := range frames {
		fn(now)
	}
	return now
}

// Frames returns the number of frames run so far.
func (f *FrameLoop) Frames() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// Run steps the loop every interval until ctx is cancelled. It blocks.
//
// Postcondition: Returns ctx.Err() once ctx is done.
func (f *FrameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	f.logger.Info("frame loop started", zap.Duration("interval", f.interval))
	for {
		select {
		case <-ctx.Done():
			f.mu.Lock()
			frames, last := f.count, f.lastMs
			f.mu.Unlock()
			f.logger.Info("frame loop stopped",
				zap.Int64("frames", frames),
				zap.Int64("last_ms", last),
			)
			return ctx.Err()
		case <-ticker.C:
			f.Step()
		}
	}
}

// Start runs the loop on a new goroutine until ctx is cancelled.
func (f *FrameLoop) Start(ctx context.Context) {
	go func() {
		_ = f.Run(ctx)
	}()
}
