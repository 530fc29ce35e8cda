package renderer

import (
	"sort"

	"github.com/ivlev/mte/internal/effects"
	"github.com/ivlev/mte/internal/model"
)

// Visible returns the clips active at t in paint order: ascending layer,
// ties kept in slide order.
func Visible(s model.Slide, t float64) []model.Clip {
	out := make([]model.Clip, 0, len(s.Clips))
	for _, c := range s.Clips {
		if c.ActiveAt(t) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Layer < out[j].Layer
	})
	return out
}

// ClipFrame is one visible clip together with everything a renderer needs to
// draw it at the frame's time.
type ClipFrame struct {
	ID          string            `json:"id"`
	Type        model.EntityType  `json:"type"`
	Layer       int               `json:"layer"`
	State       RenderState       `json:"state"`
	Motion      effects.Transform `json:"motion"`
	Highlighted bool              `json:"highlighted"`
	W           float64           `json:"w"`
	H           float64           `json:"h"`
	Rotation    float64           `json:"rotation"`
}

// Frame is the render boundary for a slide at a given time.
type Frame struct {
	SlideID    string            `json:"slideId"`
	Time       float64           `json:"time"`
	BgColor    string            `json:"bgColor,omitempty"`
	BgImage    string            `json:"bgImage,omitempty"`
	Transition effects.Transform `json:"transition"`
	Clips      []ClipFrame       `json:"clips"`
}

// RenderFrame evaluates every visible clip of s at t. Audio clips take part
// in the visible set but carry no visual meaning for the renderer.
func RenderFrame(s model.Slide, t float64) Frame {
	f := Frame{
		SlideID:    s.ID,
		Time:       t,
		BgColor:    s.BgColor,
		BgImage:    s.BgImage,
		Transition: effects.SlideEnter(s, t),
	}

	visible := Visible(s, t)
	f.Clips = make([]ClipFrame, 0, len(visible))
	for _, c := range visible {
		f.Clips = append(f.Clips, ClipFrame{
			ID:          c.ID,
			Type:        c.Type,
			Layer:       c.Layer,
			State:       Evaluate(c, t),
			Motion:      effects.ClipMotion(c, t),
			Highlighted: Highlighted(c, t),
			W:           c.Width(),
			H:           c.Height(),
			Rotation:    c.Angle(),
		})
	}
	return f
}
