package importer

import (
	"encoding/json"
	"io"
	"log"
	"math"
	"testing"

	"github.com/ivlev/mte/internal/model"
)

func quiet() Options {
	return Options{Logger: log.New(io.Discard, "", 0)}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"none", 0},
		{"12", 12},
		{"12.5", 12.5},
		{"01:30", 90},
		{"1:02:03.5", 3723.5},
		{"abc", 0},
		{"1:xx", 0},
		{"1:2:3:4", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseClock(tt.in); !approx(got, tt.want) {
				t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapAnimation(t *testing.T) {
	tests := []struct {
		in   string
		want model.AnimationName
	}{
		{"fadein", model.AnimFadeIn},
		{"FadeOut", model.AnimFadeOut},
		{"bounceScale", model.AnimBounceIn},
		{"flyIn", model.AnimSlideInRight},
		{"randomBars", model.AnimZoomIn},
		{"split", model.AnimScaleIn},
		{"slideinleft", model.AnimSlideInLeft},
		{"zoomIm", model.AnimZoomIn},  // one typo
		{"blurin ", model.AnimBlurIn}, // padded
		{"rotatein2", model.AnimRotateIn},
		{"wobble", model.AnimFadeIn},
		{"", model.AnimFadeIn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := MapAnimation(tt.in); got != tt.want {
				t.Errorf("MapAnimation(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapTransition(t *testing.T) {
	tests := []struct {
		in   string
		want model.SlideAnimName
	}{
		{"wipe", model.SlideWipe},
		{"KenBurns", model.SlideKenBurns},
		{"moveleft", model.SlideMoveLeft},
		{"push", model.SlideMoveLeft},
		{"drap", model.SlideDrape},
		{"", model.SlideFade},
		{"cube", model.SlideFade},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := MapTransition(tt.in); got != tt.want {
				t.Errorf("MapTransition(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePos(t *testing.T) {
	tests := []struct {
		raw    string
		x, y   float64
		wantOK bool
	}{
		{`[0.25, 0.75]`, 25, 75, true},
		{`"[0.5, 0.1]"`, 50, 10, true},
		{`"x=0.3 y=0.6"`, 30, 60, true},
		{`"none"`, 0, 0, false},
		{`null`, 0, 0, false},
		{`[0.5]`, 0, 0, false},
		{`"0.5"`, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			x, y, ok := parsePos(json.RawMessage(tt.raw))
			if ok != tt.wantOK || !approx(x, tt.x) || !approx(y, tt.y) {
				t.Errorf("parsePos(%s) = %v, %v, %v", tt.raw, x, y, ok)
			}
		})
	}
}

const lesson = `[
  {
    "id": 7,
    "title": "Intro",
    "transition": "wipe",
    "bg": "bg-[#02BDC7]",
    "timeline": [
      {"element_key": "title", "element_type": "text", "element_content": "<b>Hello</b> world",
       "start": "00:01", "end": "00:05", "animation": "bounce", "duration_animation": "none",
       "position": "[0.5, 0.2]", "style": "{\"fontSize\": 64, \"fontWeight\": \"bold\", \"color\": \"#123456\"}"},
      {"element_key": "voice", "element_type": "audio", "file_record": "voice.mp3", "start": 0, "end": "1:00.5"},
      {"element_type": "circle", "start": "2", "end": "3", "position": [0.1, 0.9],
       "style": {"backgroundColor": "#ff0000", "width": "192px", "height": 108, "borderRadius": "50%"}},
      {"element_type": "table", "element_content": "<td>a</td>\\n<td>b</td>", "start": 4, "end": 4},
      {"element_type": "image", "file_record": "pic.png", "start": 1, "end": 6, "style": {"width": 960}},
      {"element_type": "image", "start": 1, "end": 2},
      {"element_type": "video", "start": 1, "end": 2}
    ]
  },
  {"bg_image": "cover.jpg", "transition": "zoomIn"},
  {}
]`

func TestConvert(t *testing.T) {
	p, err := ConvertJSON([]byte(lesson), quiet())
	if err != nil {
		t.Fatal(err)
	}
	if p.FPS != 30 || p.Width != 1920 || p.Height != 1080 || len(p.Slides) != 3 {
		t.Fatalf("unexpected project %d@%dx%d, %d slides", p.FPS, p.Width, p.Height, len(p.Slides))
	}

	s := p.Slides[0]
	if s.ID != "7" || s.Name != "Intro" || s.Duration != TimelineDuration {
		t.Errorf("slide header: %q %q %v", s.ID, s.Name, s.Duration)
	}
	if s.Transition.In != model.SlideWipe || s.Transition.Out != model.SlideWipe {
		t.Errorf("transition %+v", s.Transition)
	}

	// bg, audio, image, circle, table, text: sorted by layer then start.
	wantTypes := []model.EntityType{model.EntityShape, model.EntityAudio, model.EntityImage, model.EntityShape, model.EntityText, model.EntityText}
	if len(s.Clips) != len(wantTypes) {
		t.Fatalf("Expected %d clips, got %d", len(wantTypes), len(s.Clips))
	}
	for i, c := range s.Clips {
		if c.Type != wantTypes[i] {
			t.Errorf("clip %d (%s): type %s, want %s", i, c.ID, c.Type, wantTypes[i])
		}
		if i > 0 && c.Layer < s.Clips[i-1].Layer {
			t.Errorf("clips not sorted by layer at %d", i)
		}
	}

	bg := s.Clips[0]
	if sh, _ := bg.Shape(); sh.Fill != "#02BDC7" || bg.Duration != s.Duration || bg.Layer != 0 {
		t.Errorf("background clip %+v", bg)
	}

	audio := s.Clips[1]
	if a, _ := audio.Audio(); audio.ID != "voice" || a.Src != "voice.mp3" || !approx(audio.Duration, 60.5) {
		t.Errorf("audio clip %+v", audio)
	}

	img := s.Clips[2]
	if img.W == nil || !approx(*img.W, 50) || img.H != nil {
		t.Errorf("image size %v %v", img.W, img.H)
	}

	circle := s.Clips[3]
	sh, _ := circle.Shape()
	if sh.Kind != model.ShapeCircle || sh.Fill != "#ff0000" || !approx(*circle.W, 10) || !approx(*circle.H, 10) {
		t.Errorf("circle clip %+v %+v", circle, sh)
	}
	if !approx(circle.PosX(), 10) || !approx(circle.PosY(), 90) || circle.Duration != elementDuration {
		t.Errorf("circle placement %v,%v dur %v", circle.PosX(), circle.PosY(), circle.Duration)
	}
	if circle.ID != "7_2" {
		t.Errorf("generated id %q", circle.ID)
	}

	table := s.Clips[4]
	if tx, _ := table.Text(); tx.Content != "a\nb" || tx.Align != model.AlignLeft || table.Duration != minClipDuration {
		t.Errorf("table clip %+v %+v", table, tx)
	}

	title := s.Clips[5]
	tx, _ := title.Text()
	if tx.Content != "Hello world" || *tx.FontSize != 64 || *tx.FontWeight != 700 || tx.Color != "#123456" {
		t.Errorf("title payload %+v", tx)
	}
	if title.Start != 1 || title.Duration != elementDuration || title.InAnim != model.AnimBounceIn || *title.InDur != defaultAnimDur {
		t.Errorf("title timing %+v", title)
	}
	if !approx(title.PosX(), 50) || !approx(title.PosY(), 20) {
		t.Errorf("title position %v,%v", title.PosX(), title.PosY())
	}

	cover := p.Slides[1]
	if cover.ID != "s2" || cover.Name != "Slide 2" || cover.Duration != MinSlideDuration || cover.Transition.In != model.SlideZoomIn {
		t.Errorf("cover slide %+v", cover)
	}
	if len(cover.Clips) != 1 {
		t.Fatalf("cover slide clips: %d", len(cover.Clips))
	}
	if im, ok := cover.Clips[0].Image(); !ok || im.Src != "cover.jpg" || im.ObjectFit != model.FitCover {
		t.Errorf("cover background %+v", cover.Clips[0])
	}

	if empty := p.Slides[2]; len(empty.Clips) != 0 || empty.Clips == nil {
		t.Errorf("empty slide should have an empty clip list")
	}
}

func TestConvertDuplicateKeys(t *testing.T) {
	in := []Slide{{ID: "a", Timeline: []Item{
		{ElementKey: "k", ElementType: "audio", End: 5},
		{ElementKey: "k", ElementType: "audio", Start: 1, End: 5},
	}}}
	s := Convert(in, quiet()).Slides[0]
	if s.Clips[0].ID == s.Clips[1].ID {
		t.Errorf("duplicate clip ids: %s", s.Clips[0].ID)
	}
}

func TestParseWrapped(t *testing.T) {
	slides, err := Parse([]byte(`{"slides": [{"id": "x"}]}`))
	if err != nil || len(slides) != 1 || slides[0].ID != "x" {
		t.Errorf("got %+v, %v", slides, err)
	}
	if _, err := Parse([]byte(`{"slides": 3}`)); err == nil {
		t.Errorf("Expected error for a non-array slides field")
	}
	if _, err := Parse([]byte(`nope`)); err == nil {
		t.Errorf("Expected error for invalid JSON")
	}
}
