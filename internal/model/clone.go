package model

// Clone returns a deep copy of the project. Editing operations work on
// copies so that snapshots handed to readers never change under them.
func (p Project) Clone() Project {
	out := p
	if p.Slides != nil {
		out.Slides = make([]Slide, len(p.Slides))
		for i, s := range p.Slides {
			out.Slides[i] = s.Clone()
		}
	}
	return out
}

func (s Slide) Clone() Slide {
	out := s
	out.Enabled = clonePtr(s.Enabled)
	if s.Clips != nil {
		out.Clips = make([]Clip, len(s.Clips))
		for i, c := range s.Clips {
			out.Clips[i] = c.Clone()
		}
	}
	return out
}

func (c Clip) Clone() Clip {
	out := c
	out.InDur = clonePtr(c.InDur)
	out.OutDur = clonePtr(c.OutDur)
	out.X = clonePtr(c.X)
	out.Y = clonePtr(c.Y)
	out.W = clonePtr(c.W)
	out.H = clonePtr(c.H)
	out.Rotation = clonePtr(c.Rotation)
	out.Opacity = clonePtr(c.Opacity)
	out.Payload = clonePayload(c.Payload)
	if c.Actions != nil {
		out.Actions = make([]Action, len(c.Actions))
		for i, a := range c.Actions {
			out.Actions[i] = a.Clone()
		}
	}
	return out
}

func (a Action) Clone() Action {
	out := a
	out.FromX = clonePtr(a.FromX)
	out.FromY = clonePtr(a.FromY)
	out.ToX = clonePtr(a.ToX)
	out.ToY = clonePtr(a.ToY)
	out.Intensity = clonePtr(a.Intensity)
	return out
}

func clonePayload(p Payload) Payload {
	switch v := p.(type) {
	case *TextPayload:
		if v == nil {
			return nil
		}
		c := *v
		c.FontSize = clonePtr(v.FontSize)
		c.FontWeight = clonePtr(v.FontWeight)
		return &c
	case *ImagePayload:
		if v == nil {
			return nil
		}
		c := *v
		return &c
	case *AudioPayload:
		if v == nil {
			return nil
		}
		c := *v
		c.Volume = clonePtr(v.Volume)
		return &c
	case *ShapePayload:
		if v == nil {
			return nil
		}
		c := *v
		c.StrokeWidth = clonePtr(v.StrokeWidth)
		c.Radius = clonePtr(v.Radius)
		return &c
	}
	return nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
