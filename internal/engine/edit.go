package engine

import (
	"math"

	"github.com/ivlev/mte/internal/model"
)

// MinClipDuration is the shortest span a drag may leave a clip with.
const MinClipDuration = 0.2

// minActionSpan keeps action windows from collapsing in UpdateAction.
const minActionSpan = 0.05

// ClipPatch carries the fields to overwrite on a clip; nil fields are left
// alone. No range checks are done here, callers clamp beforehand.
type ClipPatch struct {
	Name     *string
	Start    *float64
	Duration *float64
	Layer    *int

	InAnim  *model.AnimationName
	OutAnim *model.AnimationName
	InDur   *float64
	OutDur  *float64
	Easing  *model.Easing

	X        *float64
	Y        *float64
	W        *float64
	H        *float64
	Rotation *float64
	Opacity  *float64

	// Payload replaces the clip payload when its kind matches the clip type.
	Payload model.Payload
}

// Apply merges p into c.
func (p ClipPatch) Apply(c *model.Clip) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Start != nil {
		c.Start = *p.Start
	}
	if p.Duration != nil {
		c.Duration = *p.Duration
	}
	if p.Layer != nil {
		c.Layer = *p.Layer
	}
	if p.InAnim != nil {
		c.InAnim = *p.InAnim
	}
	if p.OutAnim != nil {
		c.OutAnim = *p.OutAnim
	}
	if p.InDur != nil {
		c.InDur = model.Ptr(*p.InDur)
	}
	if p.OutDur != nil {
		c.OutDur = model.Ptr(*p.OutDur)
	}
	if p.Easing != nil {
		c.Easing = *p.Easing
	}

	setF := func(dst **float64, v *float64) {
		if v != nil {
			*dst = model.Ptr(*v)
		}
	}
	setF(&c.X, p.X)
	setF(&c.Y, p.Y)
	setF(&c.W, p.W)
	setF(&c.H, p.H)
	setF(&c.Rotation, p.Rotation)
	setF(&c.Opacity, p.Opacity)

	if p.Payload != nil {
		typed := model.Clip{Type: c.Type}
		typed.SetPayload(p.Payload)
		if typed.Type == c.Type {
			c.Payload = p.Payload
		}
	}
}

// MoveClipTo places the clip at newStart and carries every action along.
func MoveClipTo(c *model.Clip, newStart float64) {
	shiftActions(c, newStart-c.Start)
	c.Start = newStart
}

// ResizeClipFromLeft moves the left edge. Actions keep their offset from
// the clip start and may end up outside the new span, where they are inert.
func ResizeClipFromLeft(c *model.Clip, newStart, newDuration float64) {
	shiftActions(c, newStart-c.Start)
	c.Start = newStart
	c.Duration = newDuration
}

// ResizeClipFromRight changes only the duration.
func ResizeClipFromRight(c *model.Clip, newDuration float64) {
	c.Duration = newDuration
}

func shiftActions(c *model.Clip, delta float64) {
	if math.Abs(delta) < 1e-6 {
		return
	}
	for i := range c.Actions {
		c.Actions[i].Start += delta
		c.Actions[i].End += delta
	}
}

// ClampMove bounds a body drag to [0, slideDur-clipDur].
func ClampMove(newStart, clipDur, slideDur float64) float64 {
	return clamp(newStart, 0, math.Max(0, slideDur-clipDur))
}

// ClampResizeLeft bounds a left-edge drag. initStart and initDur are the span
// when the drag began, dSec the horizontal offset in seconds since then. The
// right edge stays where it was, also when the drag runs past 0: the start
// stops at 0 and the clip does not grow to the right.
func ClampResizeLeft(initStart, initDur, dSec, slideDur float64) (start, dur float64) {
	end := initStart + initDur
	start = clamp(initStart+dSec, 0, end-MinClipDuration)
	dur = clamp(end-start, MinClipDuration, slideDur-start)
	return start, dur
}

// ClampResizeRight bounds a right-edge drag.
func ClampResizeRight(newDur, start, slideDur float64) float64 {
	return clamp(newDur, MinClipDuration, slideDur-start)
}

// Nudge moves a clip by whole percentage points, clamped to the canvas.
// Audio clips have no position and are left untouched.
func Nudge(c *model.Clip, dx, dy float64) bool {
	if c.Type == model.EntityAudio {
		return false
	}
	c.X = model.Ptr(clamp(c.PosX()+dx, 0, 100))
	c.Y = model.Ptr(clamp(c.PosY()+dy, 0, 100))
	return true
}

// NudgeStep is 1 point, 5 with the modifier held.
func NudgeStep(fast bool) float64 {
	if fast {
		return 5
	}
	return 1
}

// Corner of a canvas resize handle.
type Corner string

const (
	CornerNW Corner = "nw"
	CornerNE Corner = "ne"
	CornerSW Corner = "sw"
	CornerSE Corner = "se"
)

// CanvasGrab is the clip geometry captured when a canvas drag starts.
type CanvasGrab struct {
	X, Y     float64
	W, H     float64
	FontSize float64
}

// GrabCanvas snapshots c for a canvas drag.
func GrabCanvas(c model.Clip) CanvasGrab {
	g := CanvasGrab{X: c.PosX(), Y: c.PosY(), W: c.Width(), H: c.Height(), FontSize: 48}
	if txt, ok := c.Text(); ok && txt.FontSize != nil {
		g.FontSize = *txt.FontSize
	}
	return g
}

// CanvasMove places the clip at the grab position offset by a drag in canvas
// percent. With lock set the minor axis of the drag is dropped.
func CanvasMove(c *model.Clip, g CanvasGrab, dxPct, dyPct float64, lock bool) {
	lockX := lock && math.Abs(dxPct) > math.Abs(dyPct)
	lockY := lock && math.Abs(dyPct) > math.Abs(dxPct)
	if lockY {
		dxPct = 0
	}
	if lockX {
		dyPct = 0
	}
	c.X = model.Ptr(clamp(g.X+dxPct, 0, 100))
	c.Y = model.Ptr(clamp(g.Y+dyPct, 0, 100))
}

// CanvasResize grows or shrinks the clip box from a corner. Text clips also
// scale their font with the vertical drag distance in pixels.
func CanvasResize(c *model.Clip, g CanvasGrab, corner Corner, dxPct, dyPct, dyPx float64) {
	addW, addH := -dxPct, -dyPct
	if corner == CornerNE || corner == CornerSE {
		addW = dxPct
	}
	down := corner == CornerSW || corner == CornerSE
	if down {
		addH = dyPct
	}
	c.W = model.Ptr(clamp(g.W+addW, 2, 100))
	c.H = model.Ptr(clamp(g.H+addH, 2, 100))

	if txt, ok := c.Text(); ok {
		sign := -1.0
		if down {
			sign = 1
		}
		txt.FontSize = model.Ptr(math.Max(10, g.FontSize+dyPx/3*sign))
	}
}

// ClampAction keeps an edited action inside the slide and at least
// minActionSpan long.
func ClampAction(a *model.Action, slideDur float64) {
	a.Start = clamp(a.Start, 0, slideDur)
	a.End = clamp(a.End, 0, slideDur)
	if a.End < a.Start+minActionSpan {
		a.End = a.Start + minActionSpan
	}
}
