package renderer

import (
	"math"

	"github.com/ivlev/mte/internal/model"
)

// epsilon guards zero-length action windows.
const epsilon = 0.001

// RenderState is the evaluated transform of a clip at one instant
type RenderState struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Opacity         float64 `json:"opacity"`
	ScaleMultiplier float64 `json:"scaleMultiplier"`
}

// Evaluate folds every action of the clip whose window contains t over the
// clip's base position and opacity. It is a pure function of (clip, t); t is
// slide-relative and may lie outside the clip's own window.
func Evaluate(c model.Clip, t float64) RenderState {
	st := RenderState{
		X:               c.PosX(),
		Y:               c.PosY(),
		Opacity:         c.Alpha(),
		ScaleMultiplier: 1,
	}

	for _, a := range c.Actions {
		if t < a.Start || t > a.End {
			continue
		}
		p := progress(a, t)

		switch a.Type {
		case model.ActionAppear:
			st.Opacity *= p
		case model.ActionMove:
			fromX, toX := orCurrent(a.FromX, st.X), orCurrent(a.ToX, st.X)
			fromY, toY := orCurrent(a.FromY, st.Y), orCurrent(a.ToY, st.Y)
			st.X = lerp(fromX, toX, p)
			st.Y = lerp(fromY, toY, p)
		case model.ActionHighlight:
			st.ScaleMultiplier *= 1 + a.HighlightIntensity()*math.Sin(p*math.Pi)
		}
	}
	return st
}

// Highlighted reports whether any highlight action of c covers t.
func Highlighted(c model.Clip, t float64) bool {
	for _, a := range c.Actions {
		if a.Type == model.ActionHighlight && t >= a.Start && t <= a.End {
			return true
		}
	}
	return false
}

func progress(a model.Action, t float64) float64 {
	span := math.Max(a.End-a.Start, epsilon)
	return math.Min(math.Max((t-a.Start)/span, 0), 1)
}

func orCurrent(p *float64, current float64) float64 {
	if p == nil {
		return current
	}
	return *p
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
