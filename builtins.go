package avg

// Sheet describes frames sliced from a uniform sprite sheet texture.
type Sheet struct {
	Src      string
	Cols     int
	Rows     int
	Vertical bool
}

// Built-in host component kinds.
var (
	// Layer is an empty container.
	Layer = NewComponentType("Layer", NodeHooks{})

	// Sprite draws the texture named by "src", optionally cropped to the
	// "rectangle" prop (a Rect or [x, y, w, h] in texture pixels).
	Sprite = NewComponentType("Sprite", NodeHooks{
		CreateNode: func(c *Component) *Node {
			return NewSprite("Sprite", TextureRegion{})
		},
		MountNode: func(c *Component, props Props) {
			c.rt.Props.MountNode(c.node, props)
			c.rt.Props.SetValue(c.node, "rectangle", props["rectangle"])
		},
		UpdateNode: func(c *Component, prev, props Props) {
			c.rt.Props.UpdateNode(c.node, prev, props)
			if !DeepEqual(prev["src"], props["src"]) || !DeepEqual(prev["rectangle"], props["rectangle"]) {
				// Crop from the uncropped texture again.
				c.rt.Props.SetValue(c.node, "src", props["src"])
				c.rt.Props.SetValue(c.node, "rectangle", props["rectangle"])
			}
		},
	})

	// Animation plays "frames" (texture names, regions or a Sheet) at "fps".
	// "loop" defaults to true, "bounce" to false and "playing" to true.
	Animation = NewComponentType("Animation", NodeHooks{
		CreateNode: func(c *Component) *Node {
			return NewAnimatedSprite("Animation", nil)
		},
		MountNode: func(c *Component, props Props) {
			r := c.rt.Props
			r.MountNode(c.node, props)
			r.SetValue(c.node, "frames", props["frames"])
			r.SetValue(c.node, "fps", props["fps"])
			r.SetValue(c.node, "loop", props["loop"], true)
			r.SetValue(c.node, "bounce", props["bounce"], false)
			r.SetValue(c.node, "playing", props["playing"], true)
		},
		UpdateNode: func(c *Component, prev, props Props) {
			r := c.rt.Props
			r.UpdateNode(c.node, prev, props)
			for _, key := range []string{"frames", "fps", "loop", "bounce", "playing"} {
				r.UpdateValue(c.node, key, prev[key], props[key])
			}
		},
	})

	// Button shows frame 0 when idle, 1 while hovered and 2 while pressed.
	// In "lite" mode it has two frames: idle and pressed.
	Button = NewComponentType("Button", NodeHooks{
		CreateNode: func(c *Component) *Node {
			n := NewAnimatedSprite("Button", nil)
			b := &buttonState{anim: n.Animation}
			c.Data = b
			n.OnInteract = b.handle
			return n
		},
		MountNode: func(c *Component, props Props) {
			r := c.rt.Props
			r.MountNode(c.node, props)
			r.SetValue(c.node, "frames", props["frames"])
			c.Data.(*buttonState).lite, _ = props["lite"].(bool)
		},
		UpdateNode: func(c *Component, prev, props Props) {
			r := c.rt.Props
			r.UpdateNode(c.node, prev, props)
			r.UpdateValue(c.node, "frames", prev["frames"], props["frames"])
			c.Data.(*buttonState).lite, _ = props["lite"].(bool)
		},
	})
)

type buttonState struct {
	anim        *FrameAnimation
	lite        bool
	beforeDown  int
	beforeHover int
}

func (b *buttonState) handle(ev *PointerEvent) {
	switch ev.Type {
	case EventPointerDown:
		b.beforeDown = b.anim.CurrentFrame()
		if b.lite {
			b.anim.GotoAndStop(1)
		} else {
			b.anim.GotoAndStop(2)
		}
	case EventPointerUp, EventPointerUpOutside:
		b.anim.GotoAndStop(b.beforeDown)
	case EventPointerOver:
		b.beforeHover = b.anim.CurrentFrame()
		if !b.lite {
			b.anim.GotoAndStop(1)
		}
	case EventPointerOut:
		b.anim.GotoAndStop(b.beforeHover)
	}
}

// registerBuiltinProps adds the setters the built-in kinds apply on top of
// the standard properties.
func registerBuiltinProps(r *PropertyRegistry) {
	r.Register("rectangle", func(n *Node, v any) {
		rect, ok := v.(Rect)
		if !ok {
			return
		}
		reg := n.TextureRegion
		x, w, okX := cropSpan(rect.X, rect.Width, reg.Width)
		y, h, okY := cropSpan(rect.Y, rect.Height, reg.Height)
		if !okX || !okY {
			r.logger.Warn("rectangle clamped to texture", "rectangle", rect,
				"width", reg.Width, "height", reg.Height)
		}
		reg.X += x
		reg.Y += y
		reg.Width = w
		reg.Height = h
		reg.OriginalW, reg.OriginalH = reg.Width, reg.Height
		reg.OffsetX, reg.OffsetY = 0, 0
		n.SetTexture(reg)
	})
	r.Register("frames", func(n *Node, v any) {
		if n.Animation == nil {
			return
		}
		if frames, ok := r.resolveFrames(v); ok {
			n.Animation.SetFrames(frames)
		}
	})
	r.Register("fps", func(n *Node, v any) {
		if f, ok := toFloat(v); ok && n.Animation != nil {
			n.Animation.FPS = f
		}
	})
	r.Register("loop", func(n *Node, v any) {
		if b, ok := v.(bool); ok && n.Animation != nil {
			n.Animation.Loop = b
		}
	})
	r.Register("bounce", func(n *Node, v any) {
		if b, ok := v.(bool); ok && n.Animation != nil {
			n.Animation.SetBounce(b)
		}
	})
	r.Register("playing", func(n *Node, v any) {
		b, ok := v.(bool)
		if !ok || n.Animation == nil {
			return
		}
		if b {
			n.Animation.Play()
		} else {
			n.Animation.Stop()
		}
	})
}

// cropSpan clamps a crop offset and length to [0, limit]. ok is false when
// anything was clamped.
func cropSpan(off, length float64, limit uint16) (start, size uint16, ok bool) {
	lim := float64(limit)
	o := min(max(off, 0), lim)
	l := min(max(length, 0), lim-o)
	return uint16(o), uint16(l), o == off && l == length
}

// resolveFrames turns a "frames" value into texture regions.
func (r *PropertyRegistry) resolveFrames(v any) ([]TextureRegion, bool) {
	switch f := v.(type) {
	case []TextureRegion:
		return f, true
	case Sheet:
		sheet, ok := r.lookupTexture(f.Src)
		if !ok {
			return nil, false
		}
		return SheetFrames(sheet, f.Cols, f.Rows, f.Vertical), true
	case []string:
		out := make([]TextureRegion, 0, len(f))
		for _, name := range f {
			reg, ok := r.lookupTexture(name)
			if !ok {
				return nil, false
			}
			out = append(out, reg)
		}
		return out, true
	case []any:
		out := make([]TextureRegion, 0, len(f))
		for _, item := range f {
			switch it := item.(type) {
			case string:
				reg, ok := r.lookupTexture(it)
				if !ok {
					return nil, false
				}
				out = append(out, reg)
			case TextureRegion:
				out = append(out, it)
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

func (r *PropertyRegistry) lookupTexture(name string) (TextureRegion, bool) {
	if r.textures == nil {
		r.logger.Warn("no texture source for frames", "src", name)
		return TextureRegion{}, false
	}
	reg, ok := r.textures.Texture(name)
	if !ok {
		r.logger.Warn("texture not found", "src", name)
	}
	return reg, ok
}
