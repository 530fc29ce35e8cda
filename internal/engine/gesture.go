package engine

import (
	"math"

	"github.com/ivlev/mte/internal/model"
)

const (
	DefaultPxPerSec  = 40.0
	DefaultRowHeight = 40.0
	SlideRowHeight   = 36.0
)

// DragMode selects which part of a timeline clip is being dragged.
type DragMode string

const (
	DragMove        DragMode = "move"
	DragResizeLeft  DragMode = "resize-left"
	DragResizeRight DragMode = "resize-right"
)

// TimeDrag is the horizontal half of a clip drag: it turns pointer x offsets
// into clamped timing edits.
type TimeDrag struct {
	ClipID    string
	Mode      DragMode
	StartX    float64
	InitStart float64
	InitDur   float64
	PxPerSec  float64
}

// Move applies the drag at pointer x to the matching clip of slide.
func (d *TimeDrag) Move(slide *model.Slide, x float64) bool {
	c := findClip(slide, d.ClipID)
	if c == nil {
		return false
	}
	pps := d.PxPerSec
	if pps <= 0 {
		pps = DefaultPxPerSec
	}
	dSec := (x - d.StartX) / pps

	switch d.Mode {
	case DragMove:
		MoveClipTo(c, ClampMove(d.InitStart+dSec, c.Duration, slide.Duration))
	case DragResizeLeft:
		start, dur := ClampResizeLeft(d.InitStart, d.InitDur, dSec, slide.Duration)
		ResizeClipFromLeft(c, start, dur)
	case DragResizeRight:
		ResizeClipFromRight(c, ClampResizeRight(d.InitDur+dSec, c.Start, slide.Duration))
	default:
		return false
	}
	return true
}

// RowDrag is the vertical half: every full row height of travel moves the
// clip one row. After a reorder it re-bases on the new row.
type RowDrag struct {
	ClipID    string
	StartY    float64
	InitIndex int
	RowHeight float64
}

// Move reorders slide.Clips when the pointer crossed a row boundary.
func (d *RowDrag) Move(slide *model.Slide, y float64) bool {
	if len(slide.Clips) == 0 {
		return false
	}
	to := rowTarget(d.InitIndex, y-d.StartY, d.RowHeight, DefaultRowHeight, len(slide.Clips))
	if to == d.InitIndex {
		return false
	}

	from := indexOfClip(slide.Clips, d.ClipID)
	if from < 0 {
		return false
	}
	slide.Clips = ReorderClips(slide.Clips, from, to)
	d.StartY = y
	d.InitIndex = to
	return true
}

// ClipDrag feeds one pointer stream to both axis machines.
type ClipDrag struct {
	Time TimeDrag
	Row  RowDrag
}

// NewClipDrag captures the clip state at pointer-down.
func NewClipDrag(c model.Clip, mode DragMode, x, y float64, rowIndex int, pxPerSec, rowHeight float64) *ClipDrag {
	return &ClipDrag{
		Time: TimeDrag{ClipID: c.ID, Mode: mode, StartX: x, InitStart: c.Start, InitDur: c.Duration, PxPerSec: pxPerSec},
		Row:  RowDrag{ClipID: c.ID, StartY: y, InitIndex: rowIndex, RowHeight: rowHeight},
	}
}

// Move reports whether anything changed.
func (d *ClipDrag) Move(slide *model.Slide, x, y float64) bool {
	timed := d.Time.Move(slide, x)
	moved := d.Row.Move(slide, y)
	return timed || moved
}

// SlideDrag reorders the project slide list.
type SlideDrag struct {
	SlideID   string
	StartY    float64
	InitIndex int
}

// Move returns the reordered slides and whether they changed.
func (d *SlideDrag) Move(slides []model.Slide, y float64) ([]model.Slide, bool) {
	if len(slides) == 0 {
		return slides, false
	}
	to := rowTarget(d.InitIndex, y-d.StartY, SlideRowHeight, SlideRowHeight, len(slides))
	if to == d.InitIndex {
		return slides, false
	}
	from := -1
	for i := range slides {
		if slides[i].ID == d.SlideID {
			from = i
			break
		}
	}
	if from < 0 {
		return slides, false
	}
	d.StartY = y
	d.InitIndex = to
	return ReorderSlides(slides, from, to), true
}

func rowTarget(init int, dy, rowH, def float64, n int) int {
	if rowH <= 0 {
		rowH = def
	}
	// -0.5 ряда даёт 0, +0.5 ряда даёт +1
	to := init + int(math.Floor(dy/rowH+0.5))
	return clampIndex(to, n)
}

func indexOfClip(clips []model.Clip, id string) int {
	for i := range clips {
		if clips[i].ID == id {
			return i
		}
	}
	return -1
}
