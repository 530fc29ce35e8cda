package engine

import (
	"math"

	"github.com/ivlev/mte/internal/model"
)

const (
	MinSpeed = 0.25
	MaxSpeed = 3.0
)

// PlayState of the playback clock.
type PlayState int

const (
	Stopped PlayState = iota
	Playing
)

func (s PlayState) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Clock is the shared slide-relative time. It knows nothing about slides;
// end-of-slide handling is done by the owner through Advance's result.
type Clock struct {
	Time  float64
	Speed float64
	State PlayState
}

// NewClock returns a stopped clock at 0 running at the given speed.
func NewClock(speed float64) Clock {
	return Clock{Speed: ClampSpeed(speed)}
}

// ClampSpeed limits a speed factor to [MinSpeed, MaxSpeed].
func ClampSpeed(v float64) float64 {
	return clamp(v, MinSpeed, MaxSpeed)
}

func (c *Clock) Play()  { c.State = Playing }
func (c *Clock) Pause() { c.State = Stopped }

// Stop pauses and rewinds to 0.
func (c *Clock) Stop() {
	c.State = Stopped
	c.Time = 0
}

// Seek sets the time directly, clamped to [0, duration]. Play state is kept.
func (c *Clock) Seek(t, duration float64) {
	c.Time = clamp(t, 0, math.Max(duration, 0))
}

// SetSpeed applies from the next Advance on.
func (c *Clock) SetSpeed(v float64) {
	c.Speed = ClampSpeed(v)
}

// Advance moves time forward by a wall-clock delta scaled by speed and
// reports whether the slide end was reached. It is a no-op when stopped.
func (c *Clock) Advance(wall, duration float64) (ended bool) {
	if c.State != Playing {
		return false
	}
	c.Time += math.Max(wall, 0) * ClampSpeed(c.Speed)
	return c.Time >= duration
}

// Finish stops the clock at the end of the slide.
func (c *Clock) Finish(duration float64) {
	c.State = Stopped
	c.Time = duration
}

// NextEnabledSlide returns the index of the first enabled slide after from,
// or -1 when there is none.
func NextEnabledSlide(slides []model.Slide, from int) int {
	for i := from + 1; i < len(slides); i++ {
		if slides[i].IsEnabled() {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
