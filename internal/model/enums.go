package model

type EntityType string

const (
	EntityText  EntityType = "text"
	EntityImage EntityType = "image"
	EntityAudio EntityType = "audio"
	EntityShape EntityType = "shape"
)

type ActionType string

const (
	ActionAppear    ActionType = "appear"
	ActionMove      ActionType = "move"
	ActionHighlight ActionType = "highlight"
)

type Easing string

const (
	EaseLinear    Easing = "linear"
	EaseIn        Easing = "easeIn"
	EaseOut       Easing = "easeOut"
	EaseInOut     Easing = "easeInOut"
	EaseCircIn    Easing = "circIn"
	EaseCircOut   Easing = "circOut"
	EaseCircInOut Easing = "circInOut"
)

// AnimationName is a clip entrance/exit animation.
type AnimationName string

const (
	AnimNone          AnimationName = "none"
	AnimFadeIn        AnimationName = "fadeIn"
	AnimFadeOut       AnimationName = "fadeOut"
	AnimSlideInLeft   AnimationName = "slideInLeft"
	AnimSlideInRight  AnimationName = "slideInRight"
	AnimSlideInTop    AnimationName = "slideInTop"
	AnimSlideInBottom AnimationName = "slideInBottom"
	AnimScaleIn       AnimationName = "scaleIn"
	AnimScaleOut      AnimationName = "scaleOut"
	AnimRotateIn      AnimationName = "rotateIn"
	AnimRotateOut     AnimationName = "rotateOut"
	AnimBlurIn        AnimationName = "blurIn"
	AnimBounceIn      AnimationName = "bounceIn"
	AnimZoomIn        AnimationName = "zoomIn"
	AnimZoomOut       AnimationName = "zoomOut"
)

// AnimationNames lists every clip animation in declaration order.
var AnimationNames = []AnimationName{
	AnimNone, AnimFadeIn, AnimFadeOut, AnimSlideInLeft, AnimSlideInRight, AnimSlideInTop, AnimSlideInBottom,
	AnimScaleIn, AnimScaleOut, AnimRotateIn, AnimRotateOut, AnimBlurIn, AnimBounceIn, AnimZoomIn, AnimZoomOut,
}

// SlideAnimName is a slide transition.
type SlideAnimName string

const (
	SlideFade      SlideAnimName = "fade"
	SlideMoveLeft  SlideAnimName = "moveLeft"
	SlideMoveRight SlideAnimName = "moveRight"
	SlideMoveUp    SlideAnimName = "moveUp"
	SlideMoveDown  SlideAnimName = "moveDown"
	SlideFlipX     SlideAnimName = "flipX"
	SlideFlipY     SlideAnimName = "flipY"
	SlideZoomIn    SlideAnimName = "zoomIn"
	SlideZoomOut   SlideAnimName = "zoomOut"
	SlideScaleIn   SlideAnimName = "scaleIn"
	SlideScaleOut  SlideAnimName = "scaleOut"
	SlideRotateIn  SlideAnimName = "rotateIn"
	SlideRotateOut SlideAnimName = "rotateOut"
	SlideSkewLeft  SlideAnimName = "skewLeft"
	SlideSkewRight SlideAnimName = "skewRight"
	SlideKenBurns  SlideAnimName = "kenBurns"
	SlideDrape     SlideAnimName = "drape"
	SlideWipe      SlideAnimName = "wipe"
	SlideSplit     SlideAnimName = "split"
)

// SlideAnimNames lists every slide transition in declaration order.
var SlideAnimNames = []SlideAnimName{
	SlideFade, SlideMoveLeft, SlideMoveRight, SlideMoveUp, SlideMoveDown, SlideFlipX, SlideFlipY,
	SlideZoomIn, SlideZoomOut, SlideScaleIn, SlideScaleOut, SlideRotateIn, SlideRotateOut,
	SlideSkewLeft, SlideSkewRight, SlideKenBurns, SlideDrape, SlideWipe, SlideSplit,
}

type Fit string

const (
	FitContain Fit = "contain"
	FitCover   Fit = "cover"
)

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

type ShapeKind string

const (
	ShapeRect     ShapeKind = "rect"
	ShapeCircle   ShapeKind = "circle"
	ShapeTriangle ShapeKind = "triangle"
)
