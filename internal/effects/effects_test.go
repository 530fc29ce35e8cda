package effects

import (
	"testing"

	"github.com/ivlev/mte/internal/model"
)

func TestEaseEndpoints(t *testing.T) {
	names := []model.Easing{"", model.EaseLinear, model.EaseIn, model.EaseOut, model.EaseInOut, model.EaseCircIn, model.EaseCircOut, model.EaseCircInOut}
	for _, n := range names {
		t.Run(string(n), func(t *testing.T) {
			if got := Ease(n, 0); abs(got) > 1e-6 {
				t.Errorf("Ease(0) = %v", got)
			}
			if got := Ease(n, 1); abs(got-1) > 1e-6 {
				t.Errorf("Ease(1) = %v", got)
			}
			prev := 0.0
			for i := 1; i <= 20; i++ {
				v := Ease(n, float64(i)/20)
				if v+1e-6 < prev {
					t.Fatalf("not monotonic at %d: %v < %v", i, v, prev)
				}
				prev = v
			}
		})
	}
}

func TestEaseInOutSymmetric(t *testing.T) {
	if got := Ease(model.EaseLinear, 0.3); abs(got-0.3) > 1e-9 {
		t.Errorf("linear: %v", got)
	}
	// (0.4,0,0.2,1) is not symmetric, but easeOut must lead linear
	if Ease(model.EaseOut, 0.5) <= 0.5 {
		t.Errorf("easeOut should be ahead of linear at 0.5")
	}
	if Ease(model.EaseIn, 0.5) >= 0.5 {
		t.Errorf("easeIn should lag linear at 0.5")
	}
}

func TestClipMotionFadeIn(t *testing.T) {
	c := model.Clip{
		Start: 1, Duration: 4,
		InAnim: model.AnimFadeIn, InDur: model.Ptr(1.0),
		OutAnim: model.AnimNone,
	}

	if got := ClipMotion(c, 1).Opacity; abs(got) > 1e-9 {
		t.Errorf("opacity at start = %v, want 0", got)
	}
	if got := ClipMotion(c, 1.5).Opacity; abs(got-0.5) > 1e-9 {
		t.Errorf("opacity mid = %v, want 0.5", got)
	}
	if got := ClipMotion(c, 3).Opacity; got != 1 {
		t.Errorf("opacity after entrance = %v, want 1", got)
	}
}

func TestClipMotionFadeOut(t *testing.T) {
	c := model.Clip{
		Start: 0, Duration: 4,
		OutAnim: model.AnimFadeOut, OutDur: model.Ptr(1.0),
	}
	if got := ClipMotion(c, 2).Opacity; got != 1 {
		t.Errorf("before exit = %v", got)
	}
	if got := ClipMotion(c, 4).Opacity; abs(got) > 1e-9 {
		t.Errorf("at end = %v, want 0", got)
	}
}

func TestBounceKeyframes(t *testing.T) {
	v, ok := InVariant(model.AnimBounceIn)
	if !ok {
		t.Fatal("bounceIn missing")
	}
	if got := v.Enter(0).Scale; abs(got-0.6) > 1e-9 {
		t.Errorf("start scale = %v", got)
	}
	if got := v.Enter(1.0 / 3).Scale; abs(got-1.05) > 1e-9 {
		t.Errorf("overshoot = %v", got)
	}
	if got := v.Enter(1).Scale; got != 1 {
		t.Errorf("rest scale = %v", got)
	}
}

func TestSlideVariantFallback(t *testing.T) {
	v := SlideVariant("nope")
	if v.Initial.Opacity != 0 {
		t.Errorf("fallback should be fade")
	}
	s := model.Slide{Transition: model.Transition{In: model.SlideWipe}}
	if got := SlideEnter(s, 0).ClipLeft; got != 1 {
		t.Errorf("wipe start ClipLeft = %v", got)
	}
	if got := SlideEnter(s, SlideTransitionDuration).ClipLeft; got != 0 {
		t.Errorf("wipe end ClipLeft = %v", got)
	}
}

func TestInVariantNone(t *testing.T) {
	if _, ok := InVariant(model.AnimNone); ok {
		t.Errorf("none must not have a variant")
	}
}
