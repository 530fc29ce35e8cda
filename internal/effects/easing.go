package effects

import (
	"github.com/ivlev/mte/internal/model"
)

// Bezier is a CSS-style cubic-bezier timing curve anchored at (0,0) and (1,1).
type Bezier struct {
	X1, Y1, X2, Y2 float64
}

// curves mirrors the editor's easing presets.
var curves = map[model.Easing]Bezier{
	model.EaseIn:        {0.4, 0, 1, 1},
	model.EaseOut:       {0, 0, 0.2, 1},
	model.EaseInOut:     {0.4, 0, 0.2, 1},
	model.EaseCircIn:    {0.55, 0, 1, 0.45},
	model.EaseCircOut:   {0, 0.55, 0.45, 1},
	model.EaseCircInOut: {0.85, 0, 0.15, 1},
}

// Ease maps linear progress t in [0,1] through the named curve. Unknown or
// empty names are linear.
func Ease(name model.Easing, t float64) float64 {
	t = clamp01(t)
	b, ok := curves[name]
	if !ok {
		return t
	}
	return b.At(t)
}

// At solves the curve for x = t and returns y.
func (b Bezier) At(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	// Newton-Raphson first, bisection when the slope is too flat
	u := t
	for i := 0; i < 8; i++ {
		x := bezierCoord(b.X1, b.X2, u) - t
		if abs(x) < 1e-6 {
			return bezierCoord(b.Y1, b.Y2, u)
		}
		d := bezierSlope(b.X1, b.X2, u)
		if abs(d) < 1e-6 {
			break
		}
		u -= x / d
	}

	lo, hi := 0.0, 1.0
	u = t
	for i := 0; i < 40; i++ {
		x := bezierCoord(b.X1, b.X2, u)
		if abs(x-t) < 1e-7 {
			break
		}
		if x < t {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return bezierCoord(b.Y1, b.Y2, u)
}

func bezierCoord(p1, p2, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
}

func bezierSlope(p1, p2, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*p1 + 6*inv*u*(p2-p1) + 3*u*u*(1-p2)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
