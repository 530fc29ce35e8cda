package engine

import (
	"github.com/ivlev/mte/internal/model"
)

// LayerBase is the layer given to the first clip after a reorder.
const LayerBase = 1000

// ReorderClips moves clips[from] to position to and renumbers layers so that
// the first clip paints on top. Out-of-range indexes are clamped.
func ReorderClips(clips []model.Clip, from, to int) []model.Clip {
	out := splice(clips, from, to)
	for i := range out {
		out[i].Layer = LayerBase - i
	}
	return out
}

// ReorderSlides moves slides[from] to position to. Sequence order is the
// playback order; no other field changes.
func ReorderSlides(slides []model.Slide, from, to int) []model.Slide {
	return splice(slides, from, to)
}

func splice[T any](items []T, from, to int) []T {
	out := make([]T, len(items))
	copy(out, items)
	if len(out) < 2 {
		return out
	}
	from = clampIndex(from, len(out))
	to = clampIndex(to, len(out))
	if from == to {
		return out
	}

	mv := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{mv}, out[to:]...)...)
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
