package engine

import (
	"log"
	"math"

	"github.com/ivlev/mte/internal/model"
)

// DefaultDriftTolerance is how far a playing media clock may drift from the
// timeline before it is repositioned.
const DefaultDriftTolerance = 0.2

// endGuard keeps a stopped element just inside its clip.
const endGuard = 0.01

// MediaElement is a playable resource with its own clock, e.g. an audio
// element in a browser or a decoder in a desktop host.
type MediaElement interface {
	CurrentTime() float64
	SetCurrentTime(sec float64)
	SetPlaybackRate(rate float64)
	SetVolume(v float64)
	Paused() bool
	Play() error
	Pause()
}

// MediaFactory creates the element backing an audio clip.
type MediaFactory interface {
	NewMedia(clip model.Clip) (MediaElement, error)
}

// AudioSync aligns media elements with the timeline.
type AudioSync struct {
	Tolerance float64
	Logger    *log.Logger
}

// Sync brings every element in elems, keyed by clip id, in line with the
// slide time t. Elements whose clip is gone from the slide, or is no longer
// audio, are paused.
func (a AudioSync) Sync(slide *model.Slide, elems map[string]MediaElement, t, speed float64, playing bool) {
	tol := a.Tolerance
	if tol <= 0 {
		tol = DefaultDriftTolerance
	}

	for id, el := range elems {
		if el == nil {
			continue
		}
		clip := findClip(slide, id)
		if clip == nil || clip.Type != model.EntityAudio {
			pause(el)
			continue
		}

		rel := t - clip.Start
		if rel < 0 || rel > clip.Duration {
			pause(el)
			continue
		}

		el.SetPlaybackRate(ClampSpeed(speed))
		if playing {
			if math.Abs(el.CurrentTime()-rel) > tol {
				el.SetCurrentTime(rel)
			}
			if el.Paused() {
				// сбой воспроизведения не останавливает часы
				if err := el.Play(); err != nil && a.Logger != nil {
					a.Logger.Printf("[!] media %s: play failed: %v", id, err)
				}
			}
		} else {
			el.SetCurrentTime(clamp(rel, 0, math.Max(0, clip.Duration-endGuard)))
			pause(el)
		}
		el.SetVolume(clip.Volume())
	}
}

func pause(el MediaElement) {
	if !el.Paused() {
		el.Pause()
	}
}

func findClip(slide *model.Slide, id string) *model.Clip {
	if slide == nil {
		return nil
	}
	for i := range slide.Clips {
		if slide.Clips[i].ID == id {
			return &slide.Clips[i]
		}
	}
	return nil
}
