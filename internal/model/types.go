package model

// Project is the root document: canvas settings and the ordered slide list.
// Slide order is the playback and navigation order.
type Project struct {
	FPS    int     `json:"fps" yaml:"fps"`
	Width  int     `json:"width" yaml:"width"`
	Height int     `json:"height" yaml:"height"`
	Slides []Slide `json:"slides" yaml:"slides"`
}

// Slide represents a single page of the presentation with its timed clips
type Slide struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Enabled    *bool      `json:"enabled,omitempty" yaml:"enabled,omitempty"` // nil means enabled
	Duration   float64    `json:"duration" yaml:"duration"`                   // seconds
	Transition Transition `json:"transition" yaml:"transition"`
	BgColor    string     `json:"bgColor,omitempty" yaml:"bgColor,omitempty"`
	BgImage    string     `json:"bgImage,omitempty" yaml:"bgImage,omitempty"`
	BgFit      Fit        `json:"bgFit,omitempty" yaml:"bgFit,omitempty"`
	Clips      []Clip     `json:"clips" yaml:"clips"`
}

// Transition holds the slide enter/leave animations.
type Transition struct {
	In  SlideAnimName `json:"in" yaml:"in"`
	Out SlideAnimName `json:"out" yaml:"out"`
}

// Clip is a timed, positioned entity on a slide. Positions and sizes are
// percentages of the canvas. The type-specific payload lives in Payload and
// always matches Type.
type Clip struct {
	ID       string
	Type     EntityType
	Start    float64
	Duration float64
	Layer    int
	Name     string

	InAnim  AnimationName
	OutAnim AnimationName
	InDur   *float64
	OutDur  *float64
	Easing  Easing

	X        *float64
	Y        *float64
	W        *float64
	H        *float64
	Rotation *float64
	Opacity  *float64

	Payload Payload
	Actions []Action
}

// Action is a secondary timed animation nested in a clip. Start and End use
// the slide-relative time base, same as the owning clip.
type Action struct {
	ID        string     `json:"id" yaml:"id"`
	Type      ActionType `json:"type" yaml:"type"`
	Start     float64    `json:"start" yaml:"start"`
	End       float64    `json:"end" yaml:"end"`
	Easing    Easing     `json:"easing,omitempty" yaml:"easing,omitempty"`
	FromX     *float64   `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY     *float64   `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX       *float64   `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY       *float64   `json:"toY,omitempty" yaml:"toY,omitempty"`
	Intensity *float64   `json:"intensity,omitempty" yaml:"intensity,omitempty"`
}

const (
	DefaultX         = 50.0
	DefaultY         = 50.0
	DefaultW         = 40.0
	DefaultH         = 40.0
	DefaultOpacity   = 1.0
	DefaultVolume    = 1.0
	DefaultIntensity = 0.15
)

// Ptr returns a pointer to v. Handy for the optional fields above.
func Ptr[T any](v T) *T {
	return &v
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// IsEnabled reports whether continuation playback may enter the slide.
func (s Slide) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// End returns the time at which the clip's visible window closes.
func (c Clip) End() float64 {
	return c.Start + c.Duration
}

// ActiveAt reports whether t falls inside [Start, Start+Duration].
func (c Clip) ActiveAt(t float64) bool {
	return t >= c.Start && t <= c.End()
}

func (c Clip) PosX() float64       { return valueOr(c.X, DefaultX) }
func (c Clip) PosY() float64       { return valueOr(c.Y, DefaultY) }
func (c Clip) Width() float64      { return valueOr(c.W, DefaultW) }
func (c Clip) Height() float64     { return valueOr(c.H, DefaultH) }
func (c Clip) Alpha() float64      { return valueOr(c.Opacity, DefaultOpacity) }
func (c Clip) Angle() float64      { return valueOr(c.Rotation, 0) }
func (c Clip) InDuration() float64 { return valueOr(c.InDur, 0) }

func (c Clip) OutDuration() float64 { return valueOr(c.OutDur, 0) }

// Volume returns the configured audio volume, 1 when unset or not audio.
func (c Clip) Volume() float64 {
	if a, ok := c.Audio(); ok {
		return valueOr(a.Volume, DefaultVolume)
	}
	return DefaultVolume
}

// HighlightIntensity returns the pulse amplitude of a highlight action.
func (a Action) HighlightIntensity() float64 {
	return valueOr(a.Intensity, DefaultIntensity)
}
