package model

import (
	"encoding/json"
	"fmt"
)

// Payload is the type-specific part of a clip. The set of implementations is
// closed: TextPayload, ImagePayload, AudioPayload and ShapePayload.
type Payload interface {
	entity() EntityType
}

type TextPayload struct {
	Content    string    `json:"content" yaml:"content"`
	FontSize   *float64  `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Color      string    `json:"color,omitempty" yaml:"color,omitempty"`
	Align      TextAlign `json:"align,omitempty" yaml:"align,omitempty"`
	FontWeight *int      `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
}

type ImagePayload struct {
	Src       string `json:"src" yaml:"src"`
	ObjectFit Fit    `json:"objectFit,omitempty" yaml:"objectFit,omitempty"`
}

type AudioPayload struct {
	Src    string   `json:"src" yaml:"src"`
	Volume *float64 `json:"volume,omitempty" yaml:"volume,omitempty"`
}

type ShapePayload struct {
	Kind        ShapeKind `json:"kind" yaml:"kind"`
	Fill        string    `json:"fill,omitempty" yaml:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty" yaml:"stroke,omitempty"`
	StrokeWidth *float64  `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
	Radius      *float64  `json:"radius,omitempty" yaml:"radius,omitempty"`
}

func (*TextPayload) entity() EntityType  { return EntityText }
func (*ImagePayload) entity() EntityType { return EntityImage }
func (*AudioPayload) entity() EntityType { return EntityAudio }
func (*ShapePayload) entity() EntityType { return EntityShape }

// Text returns the text payload when the clip is a text clip.
func (c Clip) Text() (*TextPayload, bool) {
	p, ok := c.Payload.(*TextPayload)
	return p, ok && p != nil && c.Type == EntityText
}

func (c Clip) Image() (*ImagePayload, bool) {
	p, ok := c.Payload.(*ImagePayload)
	return p, ok && p != nil && c.Type == EntityImage
}

func (c Clip) Audio() (*AudioPayload, bool) {
	p, ok := c.Payload.(*AudioPayload)
	return p, ok && p != nil && c.Type == EntityAudio
}

func (c Clip) Shape() (*ShapePayload, bool) {
	p, ok := c.Payload.(*ShapePayload)
	return p, ok && p != nil && c.Type == EntityShape
}

// SetPayload attaches p and aligns the clip type with it.
func (c *Clip) SetPayload(p Payload) {
	c.Payload = p
	if p != nil {
		c.Type = p.entity()
	}
}

// clipDoc is the document shape of a clip: one optional blob per entity type,
// keyed the way the exchanged JSON expects.
type clipDoc struct {
	ID       string        `json:"id" yaml:"id"`
	Type     EntityType    `json:"type" yaml:"type"`
	Start    float64       `json:"start" yaml:"start"`
	Duration float64       `json:"duration" yaml:"duration"`
	Layer    int           `json:"layer" yaml:"layer"`
	Name     string        `json:"name,omitempty" yaml:"name,omitempty"`
	InAnim   AnimationName `json:"inAnim,omitempty" yaml:"inAnim,omitempty"`
	OutAnim  AnimationName `json:"outAnim,omitempty" yaml:"outAnim,omitempty"`
	InDur    *float64      `json:"inDur,omitempty" yaml:"inDur,omitempty"`
	OutDur   *float64      `json:"outDur,omitempty" yaml:"outDur,omitempty"`
	Easing   Easing        `json:"easing,omitempty" yaml:"easing,omitempty"`
	X        *float64      `json:"x,omitempty" yaml:"x,omitempty"`
	Y        *float64      `json:"y,omitempty" yaml:"y,omitempty"`
	W        *float64      `json:"w,omitempty" yaml:"w,omitempty"`
	H        *float64      `json:"h,omitempty" yaml:"h,omitempty"`
	Rotation *float64      `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Opacity  *float64      `json:"opacity,omitempty" yaml:"opacity,omitempty"`

	Text  *TextPayload  `json:"text,omitempty" yaml:"text,omitempty"`
	Image *ImagePayload `json:"image,omitempty" yaml:"image,omitempty"`
	Audio *AudioPayload `json:"audio,omitempty" yaml:"audio,omitempty"`
	Shape *ShapePayload `json:"shape,omitempty" yaml:"shape,omitempty"`

	Actions []Action `json:"actions" yaml:"actions"`
}

func (c Clip) doc() clipDoc {
	doc := clipDoc{
		ID: c.ID, Type: c.Type, Start: c.Start, Duration: c.Duration, Layer: c.Layer, Name: c.Name,
		InAnim: c.InAnim, OutAnim: c.OutAnim, InDur: c.InDur, OutDur: c.OutDur, Easing: c.Easing,
		X: c.X, Y: c.Y, W: c.W, H: c.H, Rotation: c.Rotation, Opacity: c.Opacity,
		Actions: c.Actions,
	}
	if p, ok := c.Text(); ok {
		doc.Text = p
	}
	if p, ok := c.Image(); ok {
		doc.Image = p
	}
	if p, ok := c.Audio(); ok {
		doc.Audio = p
	}
	if p, ok := c.Shape(); ok {
		doc.Shape = p
	}
	return doc
}

func (c Clip) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.doc())
}

func (c Clip) MarshalYAML() (interface{}, error) {
	return c.doc(), nil
}

// UnmarshalJSON keeps only the payload blob that matches the clip type.
func (c *Clip) UnmarshalJSON(data []byte) error {
	var doc clipDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode clip: %w", err)
	}

	*c = Clip{
		ID: doc.ID, Type: doc.Type, Start: doc.Start, Duration: doc.Duration, Layer: doc.Layer, Name: doc.Name,
		InAnim: doc.InAnim, OutAnim: doc.OutAnim, InDur: doc.InDur, OutDur: doc.OutDur, Easing: doc.Easing,
		X: doc.X, Y: doc.Y, W: doc.W, H: doc.H, Rotation: doc.Rotation, Opacity: doc.Opacity,
		Actions: doc.Actions,
	}

	switch doc.Type {
	case EntityText:
		if doc.Text != nil {
			c.Payload = doc.Text
		}
	case EntityImage:
		if doc.Image != nil {
			c.Payload = doc.Image
		}
	case EntityAudio:
		if doc.Audio != nil {
			c.Payload = doc.Audio
		}
	case EntityShape:
		if doc.Shape != nil {
			c.Payload = doc.Shape
		}
	}
	return nil
}
