package media

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ivlev/mte/internal/model"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time       { return c.t }
func (c *fakeClock) step(d time.Duration) { c.t = c.t.Add(d) }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func newTestVirtual(src string) (*Virtual, *fakeClock) {
	c := &fakeClock{t: time.Unix(1000, 0)}
	return NewVirtual(src).WithClock(c.now), c
}

func TestVirtualPosition(t *testing.T) {
	v, clk := newTestVirtual("a.mp3")
	if !v.Paused() || v.CurrentTime() != 0 {
		t.Fatalf("new element should be paused at 0")
	}

	clk.step(time.Second)
	if v.CurrentTime() != 0 {
		t.Errorf("paused element moved to %v", v.CurrentTime())
	}

	if err := v.Play(); err != nil {
		t.Fatal(err)
	}
	clk.step(2 * time.Second)
	if got := v.CurrentTime(); !near(got, 2) {
		t.Errorf("CurrentTime = %v, want 2", got)
	}

	v.SetPlaybackRate(2)
	clk.step(time.Second)
	if got := v.CurrentTime(); !near(got, 4) {
		t.Errorf("after rate change CurrentTime = %v, want 4", got)
	}

	v.Pause()
	clk.step(5 * time.Second)
	if got := v.CurrentTime(); !near(got, 4) {
		t.Errorf("paused CurrentTime = %v, want 4", got)
	}
	if v.Rate() != 2 {
		t.Errorf("Rate = %v", v.Rate())
	}
}

func TestVirtualSeek(t *testing.T) {
	v, clk := newTestVirtual("a.mp3")
	_ = v.Play()
	clk.step(3 * time.Second)

	v.SetCurrentTime(10)
	if got := v.CurrentTime(); !near(got, 10) {
		t.Errorf("after seek CurrentTime = %v", got)
	}
	clk.step(time.Second)
	if got := v.CurrentTime(); !near(got, 11) {
		t.Errorf("CurrentTime = %v, want 11", got)
	}
	if v.Seeks() != 1 {
		t.Errorf("Seeks = %d", v.Seeks())
	}

	v.SetVolume(0.3)
	if v.Volume() != 0.3 {
		t.Errorf("Volume = %v", v.Volume())
	}
}

func TestVirtualNoSource(t *testing.T) {
	v, _ := newTestVirtual("")
	if err := v.Play(); !errors.Is(err, ErrNoSource) {
		t.Errorf("Play() = %v, want ErrNoSource", err)
	}
	if !v.Paused() {
		t.Errorf("element without source must stay paused")
	}
}

func TestFactory(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	f := &Factory{Now: clk.now}

	audio := model.Clip{ID: "bgm", Type: model.EntityAudio, Payload: &model.AudioPayload{Src: "bgm.mp3"}}
	el, err := f.NewMedia(audio)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := f.Element("bgm")
	if !ok || v != el {
		t.Fatalf("factory did not track the element")
	}
	_ = v.Play()
	clk.step(1500 * time.Millisecond)
	if got := el.CurrentTime(); !near(got, 1.5) {
		t.Errorf("factory element ignores the injected clock: %v", got)
	}

	text := model.Clip{ID: "t", Type: model.EntityText, Payload: &model.TextPayload{Content: "x"}}
	if _, err := f.NewMedia(text); err == nil {
		t.Errorf("Expected error for non-audio clip")
	}
}
