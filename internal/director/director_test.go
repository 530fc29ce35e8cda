package director

import (
	"image"
	"math"
	"testing"

	"github.com/ivlev/mte/internal/analyzer"
	"github.com/ivlev/mte/internal/model"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWalkthrough(t *testing.T) {
	director := NewDirector()
	canvas := image.Rect(0, 0, 1000, 500)

	// Deliberately out of reading order.
	blocks := []analyzer.Block{
		{Rect: image.Rect(100, 300, 300, 400), Type: "image"},
		{Rect: image.Rect(600, 55, 800, 95), Type: "text"},
		{Rect: image.Rect(100, 50, 400, 100), Type: "text"},
	}

	clips := director.Walkthrough(blocks, canvas, 8, 10)
	if len(clips) != 3 {
		t.Fatalf("Expected 3 clips, got %d", len(clips))
	}

	// (8 - 1 - 1) / 3 = 2s per block after a 1s intro.
	wantStarts := []float64{1, 3, 5}
	wantX := []float64{25, 70, 20}
	for i, c := range clips {
		if c.Type != model.EntityShape {
			t.Errorf("clip %d: type %s", i, c.Type)
		}
		if !approx(c.Start, wantStarts[i]) || !approx(c.Duration, 2) {
			t.Errorf("clip %d: window [%v, +%v]", i, c.Start, c.Duration)
		}
		if !approx(c.PosX(), wantX[i]) {
			t.Errorf("clip %d: x = %v, want %v", i, c.PosX(), wantX[i])
		}
		if c.Layer != 10+i {
			t.Errorf("clip %d: layer %d", i, c.Layer)
		}
		if len(c.Actions) != 1 || c.Actions[0].Type != model.ActionHighlight ||
			!approx(c.Actions[0].Start, c.Start) || !approx(c.Actions[0].End, c.End()) {
			t.Errorf("clip %d: unexpected actions %+v", i, c.Actions)
		}
		if _, ok := c.Shape(); !ok {
			t.Errorf("clip %d: missing shape payload", i)
		}
	}
}

func TestWalkthroughDwellClamp(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		blocks   int
		want     float64
	}{
		{"long slide caps at max", 60, 2, 3},
		{"short slide floors at min", 4, 5, 1},
		{"between bounds", 8, 4, 1.5},
		{"no room for intro", 1.5, 1, 1.5},
	}
	d := NewDirector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.calculateDwellTime(tt.duration, tt.blocks); !approx(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalkthroughSkipsOverflow(t *testing.T) {
	d := NewDirector()
	var blocks []analyzer.Block
	for i := 0; i < 6; i++ {
		blocks = append(blocks, analyzer.Block{Rect: image.Rect(0, i*50, 100, i*50+40)})
	}

	// 4s slide: 1s dwell, starts at 1, 2, 3; the fourth would end at 5.
	clips := d.Walkthrough(blocks, image.Rect(0, 0, 400, 400), 4, 1)
	if len(clips) != 3 {
		t.Fatalf("Expected 3 clips, got %d", len(clips))
	}
	for _, c := range clips {
		if c.End() > 4+1e-9 {
			t.Errorf("clip %s ends at %v", c.Name, c.End())
		}
	}

	if got := d.Walkthrough(nil, image.Rect(0, 0, 10, 10), 8, 1); got != nil {
		t.Errorf("Expected no clips without blocks")
	}
}

func TestPercent(t *testing.T) {
	x, y, w, h := Percent(image.Rect(100, 50, 300, 150), image.Rect(0, 0, 400, 200))
	if !approx(x, 50) || !approx(y, 50) || !approx(w, 50) || !approx(h, 50) {
		t.Errorf("got %v %v %v %v", x, y, w, h)
	}
}
