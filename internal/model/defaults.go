package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// NewID returns "<prefix>_<8 hex chars>".
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if prefix == "" {
		return suffix
	}
	return prefix + "_" + suffix
}

// DefaultProject is the document used when nothing was autosaved yet.
func DefaultProject() Project {
	return Project{
		FPS: 30, Width: 1920, Height: 1080,
		Slides: []Slide{
			{
				ID: "s1", Name: "Slide 1", Enabled: Ptr(true), Duration: 10, BgColor: "#000000",
				Transition: Transition{In: SlideFade, Out: SlideFade},
				Clips: []Clip{
					{
						ID: "t1", Type: EntityText, Name: "Title", Start: 0, Duration: 4, Layer: 100,
						InAnim: AnimFadeIn, OutAnim: AnimFadeOut, InDur: Ptr(0.6), OutDur: Ptr(0.6), Easing: EaseOut,
						X: Ptr(50.0), Y: Ptr(25.0), W: Ptr(60.0), H: Ptr(20.0), Opacity: Ptr(1.0),
						Payload: &TextPayload{Content: "Mini Timeline Editor", FontSize: Ptr(64.0), Color: "#ffffff", Align: AlignCenter, FontWeight: Ptr(800)},
						Actions: []Action{
							{ID: "a1", Type: ActionAppear, Start: 0, End: 1},
							{ID: "a2", Type: ActionHighlight, Start: 1.5, End: 3.0, Intensity: Ptr(0.15)},
						},
					},
					{
						ID: "img1", Type: EntityImage, Name: "Cover", Start: 0.5, Duration: 8, Layer: 90,
						InAnim: AnimSlideInRight, OutAnim: AnimFadeOut, InDur: Ptr(0.8), OutDur: Ptr(0.4), Easing: EaseOut,
						X: Ptr(50.0), Y: Ptr(60.0), W: Ptr(45.0), H: Ptr(45.0),
						Payload: &ImagePayload{Src: "https://images.unsplash.com/photo-1522199710521-72d69614c702?q=80&w=1920", ObjectFit: FitCover},
						Actions: []Action{
							{ID: "m1", Type: ActionMove, Start: 5, End: 7, FromX: Ptr(50.0), FromY: Ptr(60.0), ToX: Ptr(80.0), ToY: Ptr(60.0)},
						},
					},
					{
						ID: "shape1", Type: EntityShape, Name: "Circle", Start: 0, Duration: 8, Layer: 95,
						X: Ptr(20.0), Y: Ptr(75.0), W: Ptr(12.0), H: Ptr(12.0),
						Payload: &ShapePayload{Kind: ShapeCircle, Fill: "#0ea5e9", Stroke: "#ffffff88", StrokeWidth: Ptr(2.0)},
						Actions: []Action{
							{ID: "sapp", Type: ActionAppear, Start: 0.2, End: 0.8},
							{ID: "shl", Type: ActionHighlight, Start: 2, End: 3.5, Intensity: Ptr(0.2)},
						},
					},
					{
						ID: "bgm", Type: EntityAudio, Name: "BGM", Start: 0, Duration: 10, Layer: 1,
						Payload: &AudioPayload{Src: "https://custom.emhoctoan.com/tuto/test.mp3", Volume: Ptr(0.7)},
					},
				},
			},
			{
				ID: "s2", Name: "Slide 2", Enabled: Ptr(true), Duration: 6, BgColor: "#111827",
				Transition: Transition{In: SlideWipe, Out: SlideSplit},
				Clips: []Clip{
					{
						ID: "t2", Type: EntityText, Name: "Next slide", Start: 0, Duration: 4, Layer: 100,
						InAnim: AnimSlideInTop, OutAnim: AnimFadeOut, InDur: Ptr(0.6), OutDur: Ptr(0.4),
						X: Ptr(50.0), Y: Ptr(50.0),
						Payload: &TextPayload{Content: "Slide 2", FontSize: Ptr(72.0), Color: "#fff", Align: AlignCenter, FontWeight: Ptr(800)},
						Actions: []Action{{ID: "a3", Type: ActionAppear, Start: 0, End: 0.8}},
					},
				},
			},
		},
	}
}

// NewSlide builds an empty, enabled slide named after its position.
func NewSlide(position int) Slide {
	return Slide{
		ID:         NewID("s"),
		Name:       fmt.Sprintf("Slide %d", position),
		Enabled:    Ptr(true),
		Duration:   8,
		Transition: Transition{In: SlideFade, Out: SlideFade},
		BgColor:    "#000000",
		BgFit:      FitCover,
		Clips:      []Clip{},
	}
}

// NewClip builds a clip of the given type with the editor's default geometry
// and animation settings. Placement on the timeline is up to the caller.
func NewClip(typ EntityType, start float64, layer int) Clip {
	c := Clip{
		ID:       NewID(string(typ)),
		Type:     typ,
		Start:    start,
		Duration: 4,
		Layer:    layer,
		X:        Ptr(DefaultX),
		Y:        Ptr(DefaultY),
		W:        Ptr(DefaultW),
		H:        Ptr(DefaultH),
		Opacity:  Ptr(DefaultOpacity),
		InAnim:   AnimFadeIn,
		OutAnim:  AnimFadeOut,
		InDur:    Ptr(0.3),
		OutDur:   Ptr(0.3),
		Easing:   EaseOut,
		Actions:  []Action{},
	}
	switch typ {
	case EntityText:
		c.Payload = &TextPayload{Content: "New Text", FontSize: Ptr(48.0), Color: "#ffffff", Align: AlignCenter, FontWeight: Ptr(700)}
	case EntityImage:
		c.Payload = &ImagePayload{Src: "https://picsum.photos/1920/1080", ObjectFit: FitCover}
	case EntityAudio:
		c.Payload = &AudioPayload{Src: "", Volume: Ptr(1.0)}
	case EntityShape:
		c.Payload = &ShapePayload{Kind: ShapeRect, Fill: "#22c55e", Stroke: "#00000055", StrokeWidth: Ptr(2.0), Radius: Ptr(8.0)}
	}
	return c
}

// NewAction builds an action of the given type starting at t. The window is
// capped at slideDuration; move actions travel 10 points to the right of the
// clip's current position.
func NewAction(typ ActionType, clip Clip, t, slideDuration float64) Action {
	start := math.Max(0, t)
	a := Action{ID: NewID("act"), Type: typ, Start: start}
	switch typ {
	case ActionAppear:
		a.End = math.Min(slideDuration, t+1)
	case ActionMove:
		a.End = math.Min(slideDuration, t+2)
		x, y := clip.PosX(), clip.PosY()
		a.FromX, a.FromY = Ptr(x), Ptr(y)
		a.ToX, a.ToY = Ptr(math.Min(math.Max(x+10, 0), 100)), Ptr(y)
	case ActionHighlight:
		a.End = math.Min(slideDuration, t+1.5)
		a.Intensity = Ptr(DefaultIntensity)
	}
	return a
}
