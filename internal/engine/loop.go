package engine

import (
	"context"
	"time"
)

// DefaultFrameRate of the driving loop.
const DefaultFrameRate = 60

// Run drives Tick from a ticker at frameRate until the clock stops, Pause or
// Stop is called, or ctx is cancelled. Only the parent context's error is
// returned; a clock that stopped on its own returns nil.
func (e *Editor) Run(ctx context.Context, frameRate int) error {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	e.mu.Lock()
	e.cancelLoopLocked()
	e.stopLoop = cancel
	e.mu.Unlock()

	ticker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer ticker.Stop()

	e.Tick(time.Now())
	for {
		select {
		case <-loopCtx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			e.Tick(now)
			if e.State() != Playing {
				return nil
			}
		}
	}
}

// Start plays and runs the loop in the background. The returned channel
// yields Run's result once the loop exits.
func (e *Editor) Start(ctx context.Context, frameRate int) <-chan error {
	e.Play()
	done := make(chan error, 1)
	go func() {
		done <- e.Run(ctx, frameRate)
	}()
	return done
}
