package effects

import (
	"github.com/ivlev/mte/internal/model"
)

// SlideTransitionDuration is how long a slide's enter transition runs.
const SlideTransitionDuration = 0.5

// Transform is an additive visual offset applied on top of a clip's evaluated
// state. Offsets are in preview pixels, angles in degrees, Clip* are the
// hidden fractions of the box from the left/right edge.
type Transform struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Scale     float64 `json:"scale"`
	ScaleX    float64 `json:"scaleX"`
	Rotate    float64 `json:"rotate"`
	RotateX   float64 `json:"rotateX"`
	RotateY   float64 `json:"rotateY"`
	SkewX     float64 `json:"skewX"`
	Blur      float64 `json:"blur"`
	Opacity   float64 `json:"opacity"`
	ClipLeft  float64 `json:"clipLeft"`
	ClipRight float64 `json:"clipRight"`
}

// Identity is the transform that changes nothing.
func Identity() Transform {
	return Transform{Scale: 1, ScaleX: 1, Opacity: 1}
}

// Variant describes an animation by its start (Initial) and leave (Exit)
// states; the resting state is always Identity.
type Variant struct {
	Initial Transform
	Exit    Transform

	// ScaleKeys, when set, replaces the linear Initial→Identity scale ramp.
	ScaleKeys []float64
}

func from(mod func(*Transform)) Transform {
	t := Identity()
	mod(&t)
	return t
}

var inVariants = map[model.AnimationName]Variant{
	model.AnimFadeIn:        {Initial: from(func(t *Transform) { t.Opacity = 0 })},
	model.AnimSlideInLeft:   {Initial: from(func(t *Transform) { t.X, t.Opacity = -80, 0 })},
	model.AnimSlideInRight:  {Initial: from(func(t *Transform) { t.X, t.Opacity = 80, 0 })},
	model.AnimSlideInTop:    {Initial: from(func(t *Transform) { t.Y, t.Opacity = -60, 0 })},
	model.AnimSlideInBottom: {Initial: from(func(t *Transform) { t.Y, t.Opacity = 60, 0 })},
	model.AnimScaleIn:       {Initial: from(func(t *Transform) { t.Scale, t.Opacity = 0.85, 0 })},
	model.AnimZoomIn:        {Initial: from(func(t *Transform) { t.Scale, t.Opacity = 0.85, 0 })},
	model.AnimScaleOut:      {Initial: from(func(t *Transform) { t.Scale, t.Opacity = 1.1, 0 })},
	model.AnimZoomOut:       {Initial: from(func(t *Transform) { t.Scale, t.Opacity = 1.1, 0 })},
	model.AnimRotateIn:      {Initial: from(func(t *Transform) { t.Rotate, t.Opacity = -15, 0 })},
	model.AnimRotateOut:     {Initial: from(func(t *Transform) { t.Rotate, t.Opacity = 15, 0 })},
	model.AnimBlurIn:        {Initial: from(func(t *Transform) { t.Blur, t.Opacity = 8, 0 })},
	model.AnimBounceIn: {
		Initial:   from(func(t *Transform) { t.Scale, t.Opacity = 0.6, 0 }),
		ScaleKeys: []float64{0.6, 1.05, 0.98, 1},
	},
}

var outVariants = map[model.AnimationName]Transform{
	model.AnimFadeOut:       from(func(t *Transform) { t.Opacity = 0 }),
	model.AnimSlideInLeft:   from(func(t *Transform) { t.X, t.Opacity = -60, 0 }),
	model.AnimSlideInRight:  from(func(t *Transform) { t.X, t.Opacity = 60, 0 }),
	model.AnimSlideInTop:    from(func(t *Transform) { t.Y, t.Opacity = -50, 0 }),
	model.AnimSlideInBottom: from(func(t *Transform) { t.Y, t.Opacity = 50, 0 }),
	model.AnimScaleIn:       from(func(t *Transform) { t.Scale, t.Opacity = 0.9, 0 }),
	model.AnimZoomIn:        from(func(t *Transform) { t.Scale, t.Opacity = 0.9, 0 }),
	model.AnimScaleOut:      from(func(t *Transform) { t.Scale, t.Opacity = 1.1, 0 }),
	model.AnimZoomOut:       from(func(t *Transform) { t.Scale, t.Opacity = 1.1, 0 }),
	model.AnimRotateIn:      from(func(t *Transform) { t.Rotate, t.Opacity = -10, 0 }),
	model.AnimRotateOut:     from(func(t *Transform) { t.Rotate, t.Opacity = 10, 0 }),
	model.AnimBlurIn:        from(func(t *Transform) { t.Blur, t.Opacity = 6, 0 }),
	model.AnimBounceIn:      from(func(t *Transform) { t.Scale, t.Opacity = 0.9, 0 }),
}

var slideVariants = map[model.SlideAnimName]Variant{
	model.SlideFade:      {Initial: from(func(t *Transform) { t.Opacity = 0 }), Exit: from(func(t *Transform) { t.Opacity = 0 })},
	model.SlideMoveLeft:  {Initial: from(func(t *Transform) { t.X, t.Opacity = 80, 0 }), Exit: from(func(t *Transform) { t.X, t.Opacity = -80, 0 })},
	model.SlideMoveRight: {Initial: from(func(t *Transform) { t.X, t.Opacity = -80, 0 }), Exit: from(func(t *Transform) { t.X, t.Opacity = 80, 0 })},
	model.SlideMoveUp:    {Initial: from(func(t *Transform) { t.Y, t.Opacity = 80, 0 }), Exit: from(func(t *Transform) { t.Y, t.Opacity = -80, 0 })},
	model.SlideMoveDown:  {Initial: from(func(t *Transform) { t.Y, t.Opacity = -80, 0 }), Exit: from(func(t *Transform) { t.Y, t.Opacity = 80, 0 })},
	model.SlideFlipX:     {Initial: from(func(t *Transform) { t.RotateX, t.Opacity = -90, 0 }), Exit: from(func(t *Transform) { t.RotateX, t.Opacity = 90, 0 })},
	model.SlideFlipY:     {Initial: from(func(t *Transform) { t.RotateY, t.Opacity = -90, 0 }), Exit: from(func(t *Transform) { t.RotateY, t.Opacity = 90, 0 })},
	model.SlideZoomIn:    {Initial: from(func(t *Transform) { t.Scale, t.Opacity = 0.9, 0 }), Exit: from(func(t *Transform) { t.Scale, t.Opacity = 1.05, 0 })},
	model.SlideZoomOut:   {Initial: from(func(t *Transform) { t.Scale, t.Opacity = 1.05, 0 }), Exit: from(func(t *Transform) { t.Scale, t.Opacity = 0.9, 0 })},
	model.SlideScaleIn:   {Initial: from(func(t *Transform) { t.Scale, t.Opacity = 0.85, 0 }), Exit: from(func(t *Transform) { t.Scale, t.Opacity = 0.95, 0 })},
	model.SlideScaleOut:  {Initial: from(func(t *Transform) { t.Scale, t.Opacity = 1.15, 0 }), Exit: from(func(t *Transform) { t.Scale, t.Opacity = 1.05, 0 })},
	model.SlideRotateIn:  {Initial: from(func(t *Transform) { t.Rotate, t.Opacity = -10, 0 }), Exit: from(func(t *Transform) { t.Rotate, t.Opacity = 10, 0 })},
	model.SlideRotateOut: {Initial: from(func(t *Transform) { t.Rotate, t.Opacity = 10, 0 }), Exit: from(func(t *Transform) { t.Rotate, t.Opacity = -10, 0 })},
	model.SlideSkewLeft:  {Initial: from(func(t *Transform) { t.SkewX, t.Opacity = -10, 0 }), Exit: from(func(t *Transform) { t.SkewX, t.Opacity = 10, 0 })},
	model.SlideSkewRight: {Initial: from(func(t *Transform) { t.SkewX, t.Opacity = 10, 0 }), Exit: from(func(t *Transform) { t.SkewX, t.Opacity = -10, 0 })},
	model.SlideKenBurns: {
		Initial: from(func(t *Transform) { t.Scale, t.X, t.Y, t.Opacity = 1.05, -10, -6, 0 }),
		Exit:    from(func(t *Transform) { t.Scale, t.X, t.Y, t.Opacity = 1.05, 10, 6, 0 }),
	},
	model.SlideDrape: {Initial: from(func(t *Transform) { t.Y, t.Opacity = -200, 0 }), Exit: from(func(t *Transform) { t.Y, t.Opacity = 200, 0 })},
	model.SlideWipe:  {Initial: from(func(t *Transform) { t.ClipLeft = 1 }), Exit: from(func(t *Transform) { t.ClipRight = 1 })},
	model.SlideSplit: {Initial: from(func(t *Transform) { t.ScaleX, t.Opacity = 0, 0 }), Exit: from(func(t *Transform) { t.ScaleX, t.Opacity = 0, 0 })},
}

// InVariant returns the entrance animation for name; ok is false for "none"
// and unknown names.
func InVariant(name model.AnimationName) (Variant, bool) {
	v, ok := inVariants[name]
	return v, ok
}

// SlideVariant falls back to fade for unknown names.
func SlideVariant(name model.SlideAnimName) Variant {
	if v, ok := slideVariants[name]; ok {
		return v
	}
	return slideVariants[model.SlideFade]
}

// Mix interpolates every property of a toward b.
func Mix(a, b Transform, t float64) Transform {
	return Transform{
		X:         lerp(a.X, b.X, t),
		Y:         lerp(a.Y, b.Y, t),
		Scale:     lerp(a.Scale, b.Scale, t),
		ScaleX:    lerp(a.ScaleX, b.ScaleX, t),
		Rotate:    lerp(a.Rotate, b.Rotate, t),
		RotateX:   lerp(a.RotateX, b.RotateX, t),
		RotateY:   lerp(a.RotateY, b.RotateY, t),
		SkewX:     lerp(a.SkewX, b.SkewX, t),
		Blur:      lerp(a.Blur, b.Blur, t),
		Opacity:   lerp(a.Opacity, b.Opacity, t),
		ClipLeft:  lerp(a.ClipLeft, b.ClipLeft, t),
		ClipRight: lerp(a.ClipRight, b.ClipRight, t),
	}
}

// Compose stacks two transforms: offsets add, factors multiply.
func Compose(a, b Transform) Transform {
	return Transform{
		X:         a.X + b.X,
		Y:         a.Y + b.Y,
		Scale:     a.Scale * b.Scale,
		ScaleX:    a.ScaleX * b.ScaleX,
		Rotate:    a.Rotate + b.Rotate,
		RotateX:   a.RotateX + b.RotateX,
		RotateY:   a.RotateY + b.RotateY,
		SkewX:     a.SkewX + b.SkewX,
		Blur:      a.Blur + b.Blur,
		Opacity:   a.Opacity * b.Opacity,
		ClipLeft:  a.ClipLeft + b.ClipLeft,
		ClipRight: a.ClipRight + b.ClipRight,
	}
}

// Enter evaluates v at eased progress p from Initial to rest.
func (v Variant) Enter(p float64) Transform {
	p = clamp01(p)
	out := Mix(v.Initial, Identity(), p)
	if len(v.ScaleKeys) > 1 {
		out.Scale = keyframes(v.ScaleKeys, p)
	}
	return out
}

// Leave evaluates v at progress q from rest to Exit.
func (v Variant) Leave(q float64) Transform {
	return Mix(Identity(), v.Exit, clamp01(q))
}

// ClipMotion returns the entrance/exit transform of c at slide time t.
// Entrance runs over InDur after Start, exit over OutDur before the end,
// both through the clip's easing.
func ClipMotion(c model.Clip, t float64) Transform {
	out := Identity()

	if inDur := c.InDuration(); inDur > 0 {
		if v, ok := InVariant(c.InAnim); ok {
			p := Ease(c.Easing, (t-c.Start)/inDur)
			out = Compose(out, v.Enter(p))
		}
	}

	if outDur := c.OutDuration(); outDur > 0 {
		if exit, ok := outVariants[c.OutAnim]; ok {
			q := Ease(c.Easing, (t-(c.End()-outDur))/outDur)
			out = Compose(out, Variant{Exit: exit}.Leave(q))
		}
	}
	return out
}

// SlideEnter returns the slide's enter transition at slide time t.
func SlideEnter(s model.Slide, t float64) Transform {
	p := Ease(model.EaseOut, t/SlideTransitionDuration)
	return SlideVariant(s.Transition.In).Enter(p)
}

// keyframes spreads the values evenly over [0,1] and interpolates linearly.
func keyframes(vals []float64, p float64) float64 {
	segs := float64(len(vals) - 1)
	pos := p * segs
	i := int(pos)
	if i >= len(vals)-1 {
		return vals[len(vals)-1]
	}
	return lerp(vals[i], vals[i+1], pos-float64(i))
}
