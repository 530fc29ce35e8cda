package media

import (
	"errors"
	"sync"
	"time"

	"github.com/ivlev/mte/internal/engine"
	"github.com/ivlev/mte/internal/model"
)

// ErrNoSource is returned by Play for elements without a source.
var ErrNoSource = errors.New("media has no source")

// Virtual is a headless media element. Its position runs on the wall clock
// at the playback rate while playing, independent of the editor timeline.
type Virtual struct {
	mu      sync.Mutex
	src     string
	base    float64
	since   time.Time
	rate    float64
	volume  float64
	playing bool
	seeks   int

	now func() time.Time
}

// NewVirtual creates a paused element at position 0.
func NewVirtual(src string) *Virtual {
	return &Virtual{src: src, rate: 1, volume: 1, now: time.Now}
}

// WithClock swaps the time source. Tests use it to step time by hand.
func (v *Virtual) WithClock(now func() time.Time) *Virtual {
	v.now = now
	return v
}

func (v *Virtual) position() float64 {
	if !v.playing {
		return v.base
	}
	return v.base + v.now().Sub(v.since).Seconds()*v.rate
}

func (v *Virtual) CurrentTime() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.position()
}

func (v *Virtual) SetCurrentTime(sec float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.base = sec
	v.since = v.now()
	v.seeks++
}

// SetPlaybackRate rebases the position so the rate change is not retroactive.
func (v *Virtual) SetPlaybackRate(rate float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if rate == v.rate {
		return
	}
	v.base = v.position()
	v.since = v.now()
	v.rate = rate
}

func (v *Virtual) SetVolume(vol float64) {
	v.mu.Lock()
	v.volume = vol
	v.mu.Unlock()
}

func (v *Virtual) Volume() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.volume
}

func (v *Virtual) Rate() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rate
}

// Seeks counts explicit repositions.
func (v *Virtual) Seeks() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.seeks
}

func (v *Virtual) Paused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.playing
}

func (v *Virtual) Play() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.src == "" {
		return ErrNoSource
	}
	if !v.playing {
		v.since = v.now()
		v.playing = true
	}
	return nil
}

func (v *Virtual) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.playing {
		v.base = v.position()
		v.playing = false
	}
}

var _ engine.MediaElement = (*Virtual)(nil)

// Factory builds Virtual elements for audio clips and keeps track of them.
type Factory struct {
	Now func() time.Time

	mu    sync.Mutex
	elems map[string]*Virtual
}

// Element returns the element created for clip id, if any.
func (f *Factory) Element(id string) (*Virtual, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.elems[id]
	return v, ok
}

// NewMedia returns a Virtual element for an audio clip.
func (f *Factory) NewMedia(c model.Clip) (engine.MediaElement, error) {
	a, ok := c.Audio()
	if !ok {
		return nil, errors.New("clip is not audio")
	}
	v := NewVirtual(a.Src)
	if f.Now != nil {
		v.WithClock(f.Now)
	}
	f.mu.Lock()
	if f.elems == nil {
		f.elems = make(map[string]*Virtual)
	}
	f.elems[c.ID] = v
	f.mu.Unlock()
	return v, nil
}
