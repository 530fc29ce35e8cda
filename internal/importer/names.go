package importer

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ivlev/mte/internal/model"
)

// MaxNameDistance is the largest edit distance at which an unknown
// animation name still snaps to a known one.
const MaxNameDistance = 2

var animAliases = map[string]model.AnimationName{
	"bouncescale": model.AnimBounceIn,
	"bounce":      model.AnimBounceIn,
	"flyin":       model.AnimSlideInRight,
	"randombars":  model.AnimZoomIn,
	"spit":        model.AnimScaleIn,
	"split":       model.AnimScaleIn,
}

var transitionAliases = map[string]model.SlideAnimName{
	"push":     model.SlideMoveLeft,
	"dissolve": model.SlideFade,
	"flip":     model.SlideFlipX,
	"zoom":     model.SlideZoomIn,
}

// MapAnimation maps a free-form entrance name onto a clip animation.
// Unknown names fall back to fadeIn.
func MapAnimation(name string) model.AnimationName {
	s := strings.ToLower(strings.TrimSpace(name))
	if a, ok := animAliases[s]; ok {
		return a
	}
	if a, ok := closest(s, model.AnimationNames[1:]); ok {
		return a
	}
	return model.AnimFadeIn
}

// MapTransition maps a free-form transition name onto a slide animation.
// Unknown names fall back to fade.
func MapTransition(name string) model.SlideAnimName {
	s := strings.ToLower(strings.TrimSpace(name))
	if t, ok := transitionAliases[s]; ok {
		return t
	}
	if t, ok := closest(s, model.SlideAnimNames); ok {
		return t
	}
	return model.SlideFade
}

// closest finds the candidate nearest to s, case-insensitively. Ties keep
// the earlier candidate.
func closest[T ~string](s string, candidates []T) (T, bool) {
	var zero T
	if s == "" {
		return zero, false
	}
	best, bestDist := zero, MaxNameDistance+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(s, strings.ToLower(string(c)))
		if d == 0 {
			return c, true
		}
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist <= MaxNameDistance
}
