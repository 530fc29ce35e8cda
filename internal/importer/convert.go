// Package importer converts lesson exports into editor projects. It only
// depends on the data model and can be swapped for another adapter.
package importer

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/ivlev/mte/internal/model"
)

const (
	// TimelineDuration is the slide length given to any slide that has
	// timeline elements; lessons are narrated and rarely fit the minimum.
	TimelineDuration = 180.0
	MinSlideDuration = 8.0
	minClipDuration  = 0.2
	defaultAnimDur   = 0.6
	elementDuration  = 10.0 // text and shape elements carry no end time upstream
)

// Layers per element kind; backgrounds sit below everything.
const (
	layerBackground = 0
	layerAudio      = 1
	layerImage      = 5
	layerOther      = 6
	layerText       = 10
)

type Options struct {
	FPS    int
	Width  int
	Height int
	// Pixel sizes in lesson styles are relative to this reference canvas.
	RefWidth  float64
	RefHeight float64
	Logger    *log.Logger
}

func (o *Options) withDefaults() {
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.Width <= 0 {
		o.Width = 1920
	}
	if o.Height <= 0 {
		o.Height = 1080
	}
	if o.RefWidth <= 0 {
		o.RefWidth = float64(o.Width)
	}
	if o.RefHeight <= 0 {
		o.RefHeight = float64(o.Height)
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// ConvertJSON parses a lesson export and converts it.
func ConvertJSON(data []byte, opts Options) (model.Project, error) {
	slides, err := Parse(data)
	if err != nil {
		return model.Project{}, err
	}
	return Convert(slides, opts), nil
}

// Convert builds a project with one slide per lesson slide.
func Convert(in []Slide, opts Options) model.Project {
	opts.withDefaults()
	p := model.Project{FPS: opts.FPS, Width: opts.Width, Height: opts.Height, Slides: []model.Slide{}}
	for i, s := range in {
		p.Slides = append(p.Slides, convertSlide(i, s, opts))
	}
	return p
}

func convertSlide(idx int, s Slide, opts Options) model.Slide {
	id := string(s.ID)
	if id == "" {
		id = fmt.Sprintf("s%d", idx+1)
	}
	name := s.Title
	if name == "" {
		name = string(s.ID)
	}
	if name == "" {
		name = fmt.Sprintf("Slide %d", idx+1)
	}
	trans := MapTransition(s.Transition)

	var clips []model.Clip
	maxEnd := 0.0
	seen := map[string]int{}
	for j, it := range s.Timeline {
		c, ok := convertItem(id, j, it, opts)
		if !ok {
			continue
		}
		if n := seen[c.ID]; n > 0 {
			c.ID = fmt.Sprintf("%s_%d", c.ID, n)
		}
		seen[c.ID]++
		maxEnd = math.Max(maxEnd, c.End())
		clips = append(clips, c)
	}

	duration := MinSlideDuration
	if len(s.Timeline) > 0 {
		duration = math.Max(TimelineDuration, maxEnd)
	}
	if bg, ok := background(idx, s, duration); ok {
		clips = append(clips, bg)
	}

	sort.SliceStable(clips, func(a, b int) bool {
		if clips[a].Layer != clips[b].Layer {
			return clips[a].Layer < clips[b].Layer
		}
		return clips[a].Start < clips[b].Start
	})
	if clips == nil {
		clips = []model.Clip{}
	}

	return model.Slide{
		ID:         id,
		Name:       name,
		Enabled:    model.Ptr(true),
		Duration:   duration,
		Transition: model.Transition{In: trans, Out: trans},
		Clips:      clips,
	}
}

// background turns bg_image or a bg color class into a full-canvas clip
// spanning the slide.
func background(idx int, s Slide, duration float64) (model.Clip, bool) {
	var c model.Clip
	switch {
	case s.BGImage != "":
		c = model.NewClip(model.EntityImage, 0, layerBackground)
		c.ID = fmt.Sprintf("bgimg_%d", idx)
		c.Payload = &model.ImagePayload{Src: s.BGImage, ObjectFit: model.FitCover}
	case s.BG != "":
		c = model.NewClip(model.EntityShape, 0, layerBackground)
		c.ID = fmt.Sprintf("bgrect_%d", idx)
		c.Payload = &model.ShapePayload{Kind: model.ShapeRect, Fill: bgColor(s.BG), Radius: model.Ptr(0.0)}
	default:
		return model.Clip{}, false
	}
	c.Name = "Background"
	c.Duration = duration
	c.W, c.H = model.Ptr(100.0), model.Ptr(100.0)
	c.InDur, c.OutDur = model.Ptr(0.2), model.Ptr(0.2)
	return c, true
}

func convertItem(slideID string, j int, it Item, opts Options) (model.Clip, bool) {
	start := float64(it.Start)
	dur := float64(it.End) - start
	if dur < minClipDuration {
		dur = minClipDuration
	}
	inDur := float64(it.DurationAnimation)
	if inDur <= 0 {
		inDur = defaultAnimDur
	}
	st := parseStyle(it.Style)

	c := model.Clip{
		ID:       string(it.ElementKey),
		Start:    start,
		Duration: dur,
		InAnim:   MapAnimation(it.Animation),
		OutAnim:  model.AnimFadeOut,
		InDur:    model.Ptr(inDur),
		OutDur:   model.Ptr(defaultAnimDur),
		Easing:   model.EaseOut,
		Opacity:  model.Ptr(1.0),
		Actions:  []model.Action{},
	}
	if c.ID == "" {
		c.ID = fmt.Sprintf("%s_%d", slideID, j)
	}
	if x, y, ok := parsePos(it.Position); ok {
		c.X, c.Y = model.Ptr(x), model.Ptr(y)
	}

	switch strings.ToLower(it.ElementType) {
	case "text":
		c.Type, c.Name, c.Layer = model.EntityText, "Text", layerText
		c.Duration = elementDuration
		c.SetPayload(&model.TextPayload{
			Content:    cleanHTML(it.ElementContent),
			FontSize:   model.Ptr(numOr(st, "fontSize", 48)),
			Color:      strOr(st, "color", "#ffffff"),
			Align:      model.AlignCenter,
			FontWeight: model.Ptr(fontWeight(st)),
		})
	case "table":
		c.Type, c.Name, c.Layer = model.EntityText, "Table-as-text", layerOther
		c.SetPayload(&model.TextPayload{
			Content:    strings.ReplaceAll(cleanHTML(it.ElementContent), `\n`, "\n"),
			FontSize:   model.Ptr(numOr(st, "fontSize", 18)),
			Color:      strOr(st, "color", "#1a2954"),
			Align:      model.AlignLeft,
			FontWeight: model.Ptr(600),
		})
	case "audio":
		c.Type, c.Name, c.Layer = model.EntityAudio, "Audio", layerAudio
		c.SetPayload(&model.AudioPayload{Src: it.FileRecord, Volume: model.Ptr(1.0)})
	case "circle":
		c.Type, c.Name, c.Layer = model.EntityShape, "Circle", layerOther
		c.Duration = elementDuration
		kind := model.ShapeRect
		if st.isCircle() {
			kind = model.ShapeCircle
		}
		c.SetPayload(&model.ShapePayload{Kind: kind, Fill: strOr(st, "backgroundColor", "#ffffff")})
		c.W, c.H = pxToPct(st, "width", opts.RefWidth), pxToPct(st, "height", opts.RefHeight)
	case "image":
		src := it.FileRecord
		if src == "" {
			src = strings.TrimSpace(it.ElementContent)
		}
		if src == "" {
			opts.Logger.Printf("[!] lesson %s: image element %s has no source, skipped", slideID, c.ID)
			return model.Clip{}, false
		}
		c.Type, c.Name, c.Layer = model.EntityImage, "Image", layerImage
		c.SetPayload(&model.ImagePayload{Src: src, ObjectFit: model.FitContain})
		c.W, c.H = pxToPct(st, "width", opts.RefWidth), pxToPct(st, "height", opts.RefHeight)
	default:
		opts.Logger.Printf("[!] lesson %s: unknown element type %q, skipped", slideID, it.ElementType)
		return model.Clip{}, false
	}
	return c, true
}

func pxToPct(st style, key string, base float64) *float64 {
	n, ok := st.num(key)
	if !ok || base <= 0 || math.IsInf(n, 0) || math.IsNaN(n) {
		return nil
	}
	return model.Ptr(n / base * 100)
}

func numOr(st style, key string, def float64) float64 {
	if n, ok := st.num(key); ok {
		return n
	}
	return def
}

func strOr(st style, key, def string) string {
	if s := st.str(key); s != "" {
		return s
	}
	return def
}

func fontWeight(st style) int {
	if st.str("fontWeight") == "bold" {
		return 700
	}
	if n, ok := st.num("fontWeight"); ok && n > 0 {
		return int(n)
	}
	return 600
}
