package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ivlev/mte/internal/model"
	"github.com/ivlev/mte/internal/project"
	"github.com/ivlev/mte/internal/renderer"
)

var (
	ErrNoSlide         = errors.New("no current slide")
	ErrSlideNotFound   = errors.New("slide not found")
	ErrClipNotFound    = errors.New("clip not found")
	ErrActionNotFound  = errors.New("action not found")
	ErrNotPositionable = errors.New("audio clips have no canvas position")
)

// PersistenceAdapter loads and saves the working project. Load returns nil
// when nothing was saved yet.
type PersistenceAdapter interface {
	Load() (*model.Project, error)
	Save(p model.Project) error
}

// Options configure an Editor. Zero values fall back to defaults.
type Options struct {
	Store            PersistenceAdapter
	Media            MediaFactory
	Logger           *log.Logger
	Speed            float64
	PlayAcrossSlides bool
	DriftTolerance   float64
	PxPerSec         float64
	RowHeight        float64
}

// Editor owns the project, the playback clock and the transient view state
// (active slide, selection, drags). All methods are safe for concurrent use.
type Editor struct {
	mu sync.Mutex

	project    model.Project
	activeID   string
	selectedID string

	clock        Clock
	continuation bool
	lastTick     time.Time
	stopLoop     context.CancelFunc

	store  PersistenceAdapter
	media  MediaFactory
	elems  map[string]*mediaSlot // by clip id, active slide only
	audio  AudioSync
	logger *log.Logger

	pxPerSec  float64
	rowHeight float64
	drag      *ClipDrag
	slideDrag *SlideDrag
}

// New restores the autosaved project, or the built-in default when there is
// none or it cannot be read.
func New(opts Options) *Editor {
	e := &Editor{
		clock:        NewClock(1),
		continuation: opts.PlayAcrossSlides,
		store:        opts.Store,
		media:        opts.Media,
		elems:        make(map[string]*mediaSlot),
		logger:       opts.Logger,
		pxPerSec:     opts.PxPerSec,
		rowHeight:    opts.RowHeight,
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if opts.Speed > 0 {
		e.clock.SetSpeed(opts.Speed)
	}
	if e.pxPerSec <= 0 {
		e.pxPerSec = DefaultPxPerSec
	}
	if e.rowHeight <= 0 {
		e.rowHeight = DefaultRowHeight
	}
	e.audio = AudioSync{Tolerance: opts.DriftTolerance, Logger: e.logger}

	e.project = model.DefaultProject()
	if e.store != nil {
		p, err := e.store.Load()
		switch {
		case err != nil:
			e.logger.Printf("[!] autosave unreadable, using default project: %v", err)
		case p != nil:
			e.project = *p
		}
	}
	if len(e.project.Slides) > 0 {
		e.activeID = e.project.Slides[0].ID
	}
	return e
}

// NewWithProject starts from p without consulting the store for loading.
func NewWithProject(p model.Project, opts Options) *Editor {
	store := opts.Store
	opts.Store = nil
	e := New(opts)
	e.store = store
	e.project = p.Clone()
	e.activeID = ""
	if len(p.Slides) > 0 {
		e.activeID = p.Slides[0].ID
	}
	return e
}

// --- read side ---

// Project returns a deep copy of the current project.
func (e *Editor) Project() model.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project.Clone()
}

// ActiveSlide returns a copy of the current slide.
func (e *Editor) ActiveSlide() (model.Slide, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.slideLocked()
	if s == nil {
		return model.Slide{}, false
	}
	return s.Clone(), true
}

// ActiveIndex is the position of the current slide, -1 without one.
func (e *Editor) ActiveIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slideIndexLocked(e.activeID)
}

func (e *Editor) Time() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Time
}

func (e *Editor) State() PlayState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.State
}

func (e *Editor) Speed() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Speed
}

func (e *Editor) Continuation() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.continuation
}

// Selected resolves the selection against the current slide. A selection
// whose clip is gone reads as nothing selected.
func (e *Editor) Selected() (model.Clip, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := findClip(e.slideLocked(), e.selectedID)
	if c == nil {
		return model.Clip{}, false
	}
	return c.Clone(), true
}

// Frame evaluates the current slide at the current time.
func (e *Editor) Frame() (renderer.Frame, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.slideLocked()
	if s == nil {
		return renderer.Frame{}, ErrNoSlide
	}
	return renderer.RenderFrame(*s, e.clock.Time), nil
}

// Export renders the current project as a document.
func (e *Editor) Export() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return project.Export(e.project)
}

// --- document ---

// Import replaces the project with a parsed document. A rejected document
// leaves the editor untouched.
func (e *Editor) Import(data []byte) error {
	p, err := project.Import(data)
	if err != nil {
		e.logger.Printf("[!] import failed: %v", err)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.project = p
	e.activeID = ""
	if len(p.Slides) > 0 {
		e.activeID = p.Slides[0].ID
	}
	e.selectedID = ""
	e.clock.Time = 0
	e.dropMediaLocked()
	e.changedLocked()
	e.syncMediaLocked()
	return nil
}

// --- selection ---

// Select marks a clip of the current slide as selected; an empty id clears.
func (e *Editor) Select(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectedID = id
}

// --- slides ---

// SetActiveSlide switches slides: time resets to 0 and selection clears.
func (e *Editor) SetActiveSlide(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.slideIndexLocked(id) < 0 {
		return fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}
	e.switchSlideLocked(id)
	return nil
}

// NextSlide moves to the following slide, enabled or not.
func (e *Editor) NextSlide() bool { return e.stepSlide(1) }

// PrevSlide moves to the preceding slide.
func (e *Editor) PrevSlide() bool { return e.stepSlide(-1) }

func (e *Editor) stepSlide(dir int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.slideIndexLocked(e.activeID) + dir
	if i < 0 || i >= len(e.project.Slides) {
		return false
	}
	e.switchSlideLocked(e.project.Slides[i].ID)
	return true
}

// AddSlide appends an empty slide and makes it current.
func (e *Editor) AddSlide() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := model.NewSlide(len(e.project.Slides) + 1)
	e.project.Slides = append(e.project.Slides, s)
	e.switchSlideLocked(s.ID)
	e.changedLocked()
	return s.ID
}

// DuplicateSlide inserts a copy with fresh ids right after the original.
func (e *Editor) DuplicateSlide(id string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.slideIndexLocked(id)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}

	cp := e.project.Slides[i].Clone()
	cp.ID = model.NewID("s")
	cp.Name += " copy"
	for ci := range cp.Clips {
		cp.Clips[ci].ID = model.NewID(string(cp.Clips[ci].Type))
		for ai := range cp.Clips[ci].Actions {
			cp.Clips[ci].Actions[ai].ID = model.NewID("act")
		}
	}

	slides := make([]model.Slide, 0, len(e.project.Slides)+1)
	slides = append(slides, e.project.Slides[:i+1]...)
	slides = append(slides, cp)
	slides = append(slides, e.project.Slides[i+1:]...)
	e.project.Slides = slides
	e.changedLocked()
	return cp.ID, nil
}

// RemoveSlide deletes a slide. When it was current, the previous slide
// becomes current.
func (e *Editor) RemoveSlide(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.slideIndexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}
	e.project.Slides = append(e.project.Slides[:i:i], e.project.Slides[i+1:]...)

	if e.activeID == id {
		next := ""
		if len(e.project.Slides) > 0 {
			next = e.project.Slides[max(0, i-1)].ID
		}
		e.switchSlideLocked(next)
	}
	e.changedLocked()
	return nil
}

// SlidePatch carries slide fields to overwrite; nil fields are kept.
type SlidePatch struct {
	Name       *string
	Enabled    *bool
	Duration   *float64
	Transition *model.Transition
	BgColor    *string
	BgImage    *string
	BgFit      *model.Fit
}

// UpdateSlide merges patch into a slide. Durations are not validated.
func (e *Editor) UpdateSlide(id string, patch SlidePatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.slideIndexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}
	s := &e.project.Slides[i]
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Enabled != nil {
		s.Enabled = model.Ptr(*patch.Enabled)
	}
	if patch.Duration != nil {
		s.Duration = *patch.Duration
	}
	if patch.Transition != nil {
		s.Transition = *patch.Transition
	}
	if patch.BgColor != nil {
		s.BgColor = *patch.BgColor
	}
	if patch.BgImage != nil {
		s.BgImage = *patch.BgImage
	}
	if patch.BgFit != nil {
		s.BgFit = *patch.BgFit
	}
	if s.ID == e.activeID {
		e.clock.Time = math.Min(e.clock.Time, s.Duration)
	}
	e.changedLocked()
	return nil
}

// MoveSlide splices the slide list.
func (e *Editor) MoveSlide(from, to int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.project.Slides = ReorderSlides(e.project.Slides, from, to)
	e.changedLocked()
}

// --- clips ---

// AddClip creates a clip of typ at the current time on top of the stack and
// selects it.
func (e *Editor) AddClip(typ model.EntityType) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.slideLocked()
	if s == nil {
		return "", ErrNoSlide
	}

	maxLayer := 0
	for _, c := range s.Clips {
		maxLayer = max(maxLayer, c.Layer)
	}
	slideDur := s.Duration
	if slideDur <= 0 {
		slideDur = 1
	}
	start := clamp(e.clock.Time, 0, math.Max(0, slideDur-0.5))

	c := model.NewClip(typ, start, maxLayer+1)
	s.Clips = append(s.Clips, c)
	e.selectedID = c.ID
	e.changedLocked()
	return c.ID, nil
}

// InsertClip appends a prepared clip to the current slide.
func (e *Editor) InsertClip(c model.Clip) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.slideLocked()
	if s == nil {
		return ErrNoSlide
	}
	s.Clips = append(s.Clips, c.Clone())
	e.changedLocked()
	return nil
}

// RemoveClip deletes a clip; a selection pointing at it resolves to nothing.
func (e *Editor) RemoveClip(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.slideLocked()
	if s == nil {
		return ErrNoSlide
	}
	i := indexOfClip(s.Clips, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	s.Clips = append(s.Clips[:i:i], s.Clips[i+1:]...)
	if e.selectedID == id {
		e.selectedID = ""
	}
	e.changedLocked()
	e.syncMediaLocked()
	return nil
}

// SetClip merges patch into a clip of the current slide.
func (e *Editor) SetClip(id string, patch ClipPatch) error {
	return e.editClip(id, func(c *model.Clip, _ *model.Slide) error {
		patch.Apply(c)
		return nil
	})
}

// MoveClipTo drags a clip body; newStart must be pre-clamped.
func (e *Editor) MoveClipTo(id string, newStart float64) error {
	return e.editClip(id, func(c *model.Clip, _ *model.Slide) error {
		MoveClipTo(c, newStart)
		return nil
	})
}

// ResizeClipFromLeft drags a clip's left edge; inputs must be pre-clamped.
func (e *Editor) ResizeClipFromLeft(id string, newStart, newDuration float64) error {
	return e.editClip(id, func(c *model.Clip, _ *model.Slide) error {
		ResizeClipFromLeft(c, newStart, newDuration)
		return nil
	})
}

// ResizeClipFromRight drags a clip's right edge; newDuration must be pre-clamped.
func (e *Editor) ResizeClipFromRight(id string, newDuration float64) error {
	return e.editClip(id, func(c *model.Clip, _ *model.Slide) error {
		ResizeClipFromRight(c, newDuration)
		return nil
	})
}

// ReorderClips splices the clip list of the current slide and renumbers layers.
func (e *Editor) ReorderClips(from, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.slideLocked()
	if s == nil {
		return ErrNoSlide
	}
	s.Clips = ReorderClips(s.Clips, from, to)
	e.changedLocked()
	return nil
}

// Nudge moves the selected clip by one step (five with fast) per unit of dx
// and dy. It reports false when nothing positionable is selected.
func (e *Editor) Nudge(dx, dy int, fast bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := findClip(e.slideLocked(), e.selectedID)
	if c == nil {
		return false
	}
	step := NudgeStep(fast)
	if !Nudge(c, float64(dx)*step, float64(dy)*step) {
		return false
	}
	e.changedLocked()
	return true
}

// BeginCanvasDrag selects a clip and captures its geometry for CanvasMove
// and CanvasResize. Audio clips cannot be dragged on the canvas.
func (e *Editor) BeginCanvasDrag(id string) (CanvasGrab, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := findClip(e.slideLocked(), id)
	if c == nil {
		return CanvasGrab{}, fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	if c.Type == model.EntityAudio {
		return CanvasGrab{}, ErrNotPositionable
	}
	e.selectedID = id
	return GrabCanvas(*c), nil
}

// CanvasMove repositions a clip relative to its grab state.
func (e *Editor) CanvasMove(id string, g CanvasGrab, dxPct, dyPct float64, lock bool) error {
	return e.editClip(id, func(c *model.Clip, _ *model.Slide) error {
		if c.Type == model.EntityAudio {
			return ErrNotPositionable
		}
		CanvasMove(c, g, dxPct, dyPct, lock)
		return nil
	})
}

// CanvasResize resizes a clip from a corner relative to its grab state.
func (e *Editor) CanvasResize(id string, g CanvasGrab, corner Corner, dxPct, dyPct, dyPx float64) error {
	return e.editClip(id, func(c *model.Clip, _ *model.Slide) error {
		if c.Type == model.EntityAudio {
			return ErrNotPositionable
		}
		CanvasResize(c, g, corner, dxPct, dyPct, dyPx)
		return nil
	})
}

// BeginClipDrag starts a timeline drag on a clip row and selects the clip.
func (e *Editor) BeginClipDrag(id string, mode DragMode, x, y float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.slideLocked()
	if s == nil {
		return ErrNoSlide
	}
	i := indexOfClip(s.Clips, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	e.selectedID = id
	e.drag = NewClipDrag(s.Clips[i], mode, x, y, i, e.pxPerSec, e.rowHeight)
	return nil
}

// DragTo feeds a pointer position to the running timeline drag.
func (e *Editor) DragTo(x, y float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.slideLocked()
	if e.drag == nil || s == nil {
		return false
	}
	if !e.drag.Move(s, x, y) {
		return false
	}
	e.changedLocked()
	return true
}

// EndDrag finishes any timeline or slide drag.
func (e *Editor) EndDrag() {
	e.mu.Lock()
	e.drag = nil
	e.slideDrag = nil
	e.mu.Unlock()
}

// BeginSlideDrag starts dragging a slide row.
func (e *Editor) BeginSlideDrag(id string, y float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.slideIndexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}
	e.slideDrag = &SlideDrag{SlideID: id, StartY: y, InitIndex: i}
	return nil
}

// SlideDragTo feeds a pointer y to the running slide drag.
func (e *Editor) SlideDragTo(y float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.slideDrag == nil {
		return false
	}
	slides, changed := e.slideDrag.Move(e.project.Slides, y)
	if !changed {
		return false
	}
	e.project.Slides = slides
	e.changedLocked()
	return true
}

// --- actions ---

// AddAction creates an action of typ at the current time on a clip.
func (e *Editor) AddAction(clipID string, typ model.ActionType) (string, error) {
	var id string
	err := e.editClip(clipID, func(c *model.Clip, s *model.Slide) error {
		a := model.NewAction(typ, *c, e.clock.Time, s.Duration)
		c.Actions = append(c.Actions, a)
		id = a.ID
		return nil
	})
	return id, err
}

// UpdateAction replaces the action with the same id, keeping its window
// inside the slide.
func (e *Editor) UpdateAction(clipID string, a model.Action) error {
	return e.editClip(clipID, func(c *model.Clip, s *model.Slide) error {
		for i := range c.Actions {
			if c.Actions[i].ID == a.ID {
				a = a.Clone()
				ClampAction(&a, s.Duration)
				c.Actions[i] = a
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrActionNotFound, a.ID)
	})
}

// RemoveAction deletes an action from a clip.
func (e *Editor) RemoveAction(clipID, actionID string) error {
	return e.editClip(clipID, func(c *model.Clip, _ *model.Slide) error {
		for i := range c.Actions {
			if c.Actions[i].ID == actionID {
				c.Actions = append(c.Actions[:i:i], c.Actions[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrActionNotFound, actionID)
	})
}

// --- playback ---

// Play starts the clock. The next Tick only records the wall time.
func (e *Editor) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock.Play()
	e.lastTick = time.Time{}
	e.syncMediaLocked()
}

// Pause stops the clock, keeping time, and cancels a running loop.
func (e *Editor) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock.Pause()
	e.cancelLoopLocked()
	e.syncMediaLocked()
}

// Stop pauses and rewinds to 0.
func (e *Editor) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock.Stop()
	e.cancelLoopLocked()
	e.syncMediaLocked()
}

// Seek sets the time, clamped to the current slide.
func (e *Editor) Seek(t float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	dur := 0.0
	if s := e.slideLocked(); s != nil {
		dur = s.Duration
	}
	e.clock.Seek(t, dur)
	e.syncMediaLocked()
}

// SeekPixels seeks to a ruler position measured in pixels from time 0.
func (e *Editor) SeekPixels(px float64) {
	e.Seek(px / e.pxPerSec)
}

func (e *Editor) SetSpeed(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock.SetSpeed(v)
	e.syncMediaLocked()
}

func (e *Editor) SetContinuation(on bool) {
	e.mu.Lock()
	e.continuation = on
	e.mu.Unlock()
}

// AttachMedia registers an element for an audio clip of the active slide.
// The element is dropped once the slide changes or the clip's src does.
func (e *Editor) AttachMedia(clipID string, el MediaElement) {
	e.mu.Lock()
	defer e.mu.Unlock()
	src, _ := audioSrc(e.slideLocked(), clipID)
	slot := &mediaSlot{el: el, slideID: e.activeID, src: src}
	if old, ok := e.elems[clipID]; ok && old.el != nil && old.el != el {
		pause(old.el)
	}
	e.elems[clipID] = slot
	e.syncMediaLocked()
}

// Tick advances the clock by the wall time since the previous tick, handles
// the end of the slide, then resynchronizes media against the new time.
func (e *Editor) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clock.State == Playing {
		dt := 0.0
		if !e.lastTick.IsZero() {
			dt = now.Sub(e.lastTick).Seconds()
		}
		e.lastTick = now
		e.advanceLocked(dt)
	}
	e.syncMediaLocked()
}

// Advance moves a playing clock by dt seconds of wall time. Tick is the
// wall-clock front end to it.
func (e *Editor) Advance(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advanceLocked(dt)
	e.syncMediaLocked()
}

func (e *Editor) advanceLocked(dt float64) {
	s := e.slideLocked()
	if s == nil {
		e.clock.Pause()
		return
	}
	if !e.clock.Advance(dt, s.Duration) {
		return
	}

	if e.continuation {
		cur := e.slideIndexLocked(e.activeID)
		if next := NextEnabledSlide(e.project.Slides, cur); next >= 0 && next != cur {
			e.switchSlideLocked(e.project.Slides[next].ID)
			return
		}
	}
	e.clock.Finish(s.Duration)
}

// --- internals; callers hold e.mu ---

func (e *Editor) slideIndexLocked(id string) int {
	for i := range e.project.Slides {
		if e.project.Slides[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Editor) slideLocked() *model.Slide {
	i := e.slideIndexLocked(e.activeID)
	if i < 0 {
		return nil
	}
	return &e.project.Slides[i]
}

func (e *Editor) switchSlideLocked(id string) {
	e.activeID = id
	e.clock.Time = 0
	e.selectedID = ""
	e.syncMediaLocked()
}

func (e *Editor) editClip(id string, fn func(c *model.Clip, s *model.Slide) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.slideLocked()
	if s == nil {
		return ErrNoSlide
	}
	c := findClip(s, id)
	if c == nil {
		return fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	if err := fn(c, s); err != nil {
		return err
	}
	e.changedLocked()
	e.syncMediaLocked()
	return nil
}

// changedLocked autosaves. Failures are logged, never returned.
func (e *Editor) changedLocked() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(e.project.Clone()); err != nil {
		e.logger.Printf("[!] autosave failed: %v", err)
	}
}

// mediaSlot is an element together with the clip it was built for.
type mediaSlot struct {
	el      MediaElement
	slideID string
	src     string
}

// syncMediaLocked drops elements that no longer match an audio clip of the
// active slide with the same src, builds the missing ones and syncs them.
func (e *Editor) syncMediaLocked() {
	s := e.slideLocked()
	slideID := ""
	if s != nil {
		slideID = s.ID
	}

	live := make(map[string]MediaElement, len(e.elems))
	for id, slot := range e.elems {
		src, ok := audioSrc(s, id)
		if !ok || slot.slideID != slideID || slot.src != src {
			if slot.el != nil {
				pause(slot.el)
			}
			delete(e.elems, id)
			continue
		}
		live[id] = slot.el
	}

	if e.media != nil && s != nil {
		for _, c := range s.Clips {
			a, ok := c.Audio()
			if !ok {
				continue
			}
			if _, ok := e.elems[c.ID]; ok {
				continue
			}
			el, err := e.media.NewMedia(c)
			if err != nil {
				e.logger.Printf("[!] media %s: %v", c.ID, err)
			}
			e.elems[c.ID] = &mediaSlot{el: el, slideID: s.ID, src: a.Src}
			live[c.ID] = el
		}
	}
	e.audio.Sync(s, live, e.clock.Time, e.clock.Speed, e.clock.State == Playing)
}

// audioSrc reports the src of audio clip id on slide.
func audioSrc(slide *model.Slide, id string) (string, bool) {
	c := findClip(slide, id)
	if c == nil {
		return "", false
	}
	a, ok := c.Audio()
	if !ok {
		return "", false
	}
	return a.Src, true
}

// dropMediaLocked pauses and forgets every element.
func (e *Editor) dropMediaLocked() {
	for id, slot := range e.elems {
		if slot.el != nil {
			pause(slot.el)
		}
		delete(e.elems, id)
	}
}

func (e *Editor) cancelLoopLocked() {
	if e.stopLoop != nil {
		e.stopLoop()
		e.stopLoop = nil
	}
}
