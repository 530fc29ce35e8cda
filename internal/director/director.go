package director

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/ivlev/mte/internal/analyzer"
	"github.com/ivlev/mte/internal/model"
)

// Director turns detected content blocks into a timed walkthrough: one
// outlined shape clip per block, shown one after another.
type Director struct {
	MinDwell  float64 // Minimum time per block (seconds)
	MaxDwell  float64 // Maximum time per block (seconds)
	Intro     float64 // full-page time before the first block
	Outro     float64
	MaxBlocks int
	RowSlack  int // pixels within which two blocks count as one row
	Padding   float64
	Stroke    string
	Intensity float64
}

// NewDirector creates a new Director with default settings
func NewDirector() *Director {
	return &Director{
		MinDwell:  1.0,
		MaxDwell:  3.0,
		Intro:     1.0,
		Outro:     1.0,
		MaxBlocks: 8,
		RowSlack:  20,
		Padding:   1.0,
		Stroke:    "#facc15",
		Intensity: 0.05,
	}
}

// Walkthrough builds focus clips for blocks found on a canvas of the given
// bounds. Layers start at baseLayer and grow per block. Blocks whose window
// would pass slideDuration are left out.
func (d *Director) Walkthrough(blocks []analyzer.Block, canvas image.Rectangle, slideDuration float64, baseLayer int) []model.Clip {
	if len(blocks) == 0 || canvas.Empty() {
		return nil
	}

	sorted := d.sortBlocks(blocks)
	if d.MaxBlocks > 0 && len(sorted) > d.MaxBlocks {
		sorted = sorted[:d.MaxBlocks]
	}
	dwell := d.calculateDwellTime(slideDuration, len(sorted))

	clips := make([]model.Clip, 0, len(sorted))
	t := d.Intro
	for i, b := range sorted {
		if t+dwell > slideDuration+1e-9 {
			break
		}
		clips = append(clips, d.focusClip(i, b, canvas, t, dwell, baseLayer+i))
		t += dwell
	}
	return clips
}

func (d *Director) focusClip(i int, b analyzer.Block, canvas image.Rectangle, start, dwell float64, layer int) model.Clip {
	x, y, w, h := Percent(b.Rect, canvas)
	c := model.NewClip(model.EntityShape, start, layer)
	c.Name = fmt.Sprintf("Focus %d", i+1)
	c.Duration = dwell
	c.X, c.Y = model.Ptr(x), model.Ptr(y)
	c.W = model.Ptr(math.Min(100, w+2*d.Padding))
	c.H = model.Ptr(math.Min(100, h+2*d.Padding))
	c.Payload = &model.ShapePayload{
		Kind:        model.ShapeRect,
		Fill:        "#00000000",
		Stroke:      d.Stroke,
		StrokeWidth: model.Ptr(4.0),
		Radius:      model.Ptr(6.0),
	}
	c.Actions = []model.Action{{
		ID:        model.NewID("act"),
		Type:      model.ActionHighlight,
		Start:     start,
		End:       start + dwell,
		Intensity: model.Ptr(d.Intensity),
	}}
	return c
}

// Percent converts a pixel rectangle on canvas into the clip geometry used
// by the editor: center x/y and size w/h, all in percent of the canvas.
func Percent(r, canvas image.Rectangle) (x, y, w, h float64) {
	cw, ch := float64(canvas.Dx()), float64(canvas.Dy())
	r = r.Sub(canvas.Min)
	x = (float64(r.Min.X) + float64(r.Dx())/2) / cw * 100
	y = (float64(r.Min.Y) + float64(r.Dy())/2) / ch * 100
	w = float64(r.Dx()) / cw * 100
	h = float64(r.Dy()) / ch * 100
	return x, y, w, h
}

// sortBlocks sorts blocks in reading order (Western: top-to-bottom, left-to-right)
func (d *Director) sortBlocks(blocks []analyzer.Block) []analyzer.Block {
	sorted := make([]analyzer.Block, len(blocks))
	copy(sorted, blocks)

	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].Rect.Min.Y - sorted[j].Rect.Min.Y
		if abs(yDiff) > d.RowSlack {
			return yDiff < 0
		}
		// Same row, sort by X
		return sorted[i].Rect.Min.X < sorted[j].Rect.Min.X
	})
	return sorted
}

// calculateDwellTime determines how long to show each block
func (d *Director) calculateDwellTime(totalDuration float64, blockCount int) float64 {
	available := totalDuration - d.Intro - d.Outro
	if available <= 0 {
		available = totalDuration
	}
	dwell := available / float64(blockCount)
	return math.Max(d.MinDwell, math.Min(d.MaxDwell, dwell))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
