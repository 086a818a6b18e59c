package avg

// FrameAnimation steps a sprite through a sequence of texture regions.
type FrameAnimation struct {
	// FPS is the playback rate in frames per second.
	FPS float64
	// Loop restarts the sequence after the last frame; otherwise playback
	// stops there and OnComplete fires.
	Loop       bool
	OnComplete func()

	node    *Node
	origin  []TextureRegion
	frames  []TextureRegion
	bounce  bool
	current int
	elapsed float64
	playing bool
}

const defaultAnimationFPS = 60

func newFrameAnimation(n *Node, frames []TextureRegion) *FrameAnimation {
	a := &FrameAnimation{FPS: defaultAnimationFPS, Loop: true, node: n}
	a.SetFrames(frames)
	return a
}

// SetFrames replaces the frame sequence. The playing state is kept and the
// current frame is clamped to the new sequence.
func (a *FrameAnimation) SetFrames(frames []TextureRegion) {
	a.origin = frames
	a.rebuild()
}

// Frames returns the frame sequence as configured, without bounce frames.
func (a *FrameAnimation) Frames() []TextureRegion {
	return a.origin
}

// SetBounce makes playback run forward then backward. The reversed half
// skips both ends so no frame is shown twice in a row.
func (a *FrameAnimation) SetBounce(bounce bool) {
	a.bounce = bounce
	a.rebuild()
}

// Bounce reports whether ping-pong playback is enabled.
func (a *FrameAnimation) Bounce() bool {
	return a.bounce
}

func (a *FrameAnimation) rebuild() {
	a.frames = a.origin
	if a.bounce && len(a.origin) > 2 {
		seq := make([]TextureRegion, 0, 2*len(a.origin)-2)
		seq = append(seq, a.origin...)
		for i := len(a.origin) - 2; i > 0; i-- {
			seq = append(seq, a.origin[i])
		}
		a.frames = seq
	}
	if a.current >= len(a.frames) {
		a.current = 0
	}
	a.apply()
}

// Play starts or resumes playback.
func (a *FrameAnimation) Play() {
	a.playing = len(a.frames) > 1
}

// Stop pauses playback on the current frame.
func (a *FrameAnimation) Stop() {
	a.playing = false
}

// Playing reports whether the animation is advancing.
func (a *FrameAnimation) Playing() bool {
	return a.playing
}

// GotoAndStop jumps to frame and stops.
func (a *FrameAnimation) GotoAndStop(frame int) {
	a.playing = false
	a.seek(frame)
}

// GotoAndPlay jumps to frame and starts playback.
func (a *FrameAnimation) GotoAndPlay(frame int) {
	a.seek(frame)
	a.Play()
}

// CurrentFrame returns the index of the displayed frame.
func (a *FrameAnimation) CurrentFrame() int {
	return a.current
}

// TotalFrames returns the length of the playback sequence, bounce frames included.
func (a *FrameAnimation) TotalFrames() int {
	return len(a.frames)
}

func (a *FrameAnimation) seek(frame int) {
	if len(a.frames) == 0 {
		a.current = 0
		return
	}
	a.current = max(0, min(frame, len(a.frames)-1))
	a.elapsed = 0
	a.apply()
}

// Step advances playback by dt seconds.
func (a *FrameAnimation) Step(dt float64) {
	if !a.playing || a.FPS <= 0 || len(a.frames) == 0 {
		return
	}
	a.elapsed += dt
	frameTime := 1 / a.FPS
	for a.elapsed >= frameTime {
		a.elapsed -= frameTime
		next := a.current + 1
		if next >= len(a.frames) {
			if !a.Loop {
				a.playing = false
				a.elapsed = 0
				a.apply()
				if a.OnComplete != nil {
					a.OnComplete()
				}
				return
			}
			next = 0
		}
		a.current = next
	}
	a.apply()
}

func (a *FrameAnimation) apply() {
	if a.node == nil || len(a.frames) == 0 {
		return
	}
	a.node.SetTexture(a.frames[a.current])
}

// SheetFrames slices a uniform sprite sheet region into cols*rows frames.
// Frames are ordered row by row, or column by column when vertical is set.
func SheetFrames(sheet TextureRegion, cols, rows int, vertical bool) []TextureRegion {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	fw := sheet.Width / uint16(cols)
	fh := sheet.Height / uint16(rows)
	frame := func(col, row int) TextureRegion {
		return TextureRegion{
			Page:      sheet.Page,
			X:         sheet.X + uint16(col)*fw,
			Y:         sheet.Y + uint16(row)*fh,
			Width:     fw,
			Height:    fh,
			OriginalW: fw,
			OriginalH: fh,
		}
	}
	out := make([]TextureRegion, 0, cols*rows)
	if vertical {
		for c := range cols {
			for r := range rows {
				out = append(out, frame(c, r))
			}
		}
		return out
	}
	for r := range rows {
		for c := range cols {
			out = append(out, frame(c, r))
		}
	}
	return out
}

// updateAnimations steps every frame animation below n.
func updateAnimations(n *Node, dt float64) {
	if n.Animation != nil {
		n.Animation.Step(dt)
	}
	for _, child := range n.children {
		updateAnimations(child, dt)
	}
}
