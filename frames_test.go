package avg

import "testing"

func threeFrames() []TextureRegion {
	return []TextureRegion{squareRegion(0, 0, 0, 8), squareRegion(0, 8, 0, 8), squareRegion(0, 16, 0, 8)}
}

func TestFrameAnimationStep(t *testing.T) {
	n := NewAnimatedSprite("a", threeFrames())
	a := n.Animation
	a.FPS = 10
	a.Play()

	a.Step(0.1)
	if a.CurrentFrame() != 1 {
		t.Errorf("frame = %d, want 1", a.CurrentFrame())
	}
	if n.TextureRegion != threeFrames()[1] {
		t.Error("node texture should follow the current frame")
	}
	a.Step(0.2)
	if a.CurrentFrame() != 0 {
		t.Errorf("looping frame = %d, want 0", a.CurrentFrame())
	}
}

func TestFrameAnimationNoLoopCompletes(t *testing.T) {
	a := NewAnimatedSprite("a", threeFrames()).Animation
	a.FPS = 10
	a.Loop = false
	done := 0
	a.OnComplete = func() { done++ }
	a.Play()

	a.Step(1)
	if a.Playing() {
		t.Error("animation should stop at the last frame")
	}
	if a.CurrentFrame() != 2 {
		t.Errorf("frame = %d, want 2", a.CurrentFrame())
	}
	if done != 1 {
		t.Errorf("OnComplete called %d times, want 1", done)
	}
}

func TestFrameAnimationSingleFrameDoesNotPlay(t *testing.T) {
	a := NewAnimatedSprite("a", threeFrames()[:1]).Animation
	a.Play()
	if a.Playing() {
		t.Error("a single frame animation should not play")
	}
}

func TestFrameAnimationBounce(t *testing.T) {
	a := NewAnimatedSprite("a", threeFrames()).Animation
	a.SetBounce(true)
	if a.TotalFrames() != 4 {
		t.Fatalf("TotalFrames = %d, want 4", a.TotalFrames())
	}
	if len(a.Frames()) != 3 {
		t.Errorf("Frames() should exclude bounce frames, got %d", len(a.Frames()))
	}
	a.FPS = 1
	a.Play()
	var seq []int
	for range 5 {
		a.Step(1)
		seq = append(seq, a.CurrentFrame())
	}
	want := []int{1, 2, 3, 0, 1}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", seq, want)
		}
	}
}

func TestFrameAnimationGotoClamps(t *testing.T) {
	a := NewAnimatedSprite("a", threeFrames()).Animation
	a.GotoAndStop(10)
	if a.CurrentFrame() != 2 {
		t.Errorf("frame = %d, want 2", a.CurrentFrame())
	}
	a.GotoAndPlay(-3)
	if a.CurrentFrame() != 0 || !a.Playing() {
		t.Errorf("GotoAndPlay(-3): frame %d playing %v", a.CurrentFrame(), a.Playing())
	}
}

func TestFrameAnimationSetFramesKeepsPlaying(t *testing.T) {
	a := NewAnimatedSprite("a", threeFrames()).Animation
	a.GotoAndPlay(2)
	a.SetFrames(threeFrames()[:2])
	if a.CurrentFrame() != 0 {
		t.Errorf("frame = %d, want 0 after shrinking", a.CurrentFrame())
	}
	if !a.Playing() {
		t.Error("SetFrames should keep the playing state")
	}
}

func TestSheetFrames(t *testing.T) {
	sheet := TextureRegion{Page: 1, X: 100, Y: 0, Width: 64, Height: 32}

	rows := SheetFrames(sheet, 4, 2, false)
	if len(rows) != 8 {
		t.Fatalf("len = %d, want 8", len(rows))
	}
	if rows[1].X != 116 || rows[1].Y != 0 {
		t.Errorf("row-major frame 1 at (%d, %d), want (116, 0)", rows[1].X, rows[1].Y)
	}
	if rows[4].X != 100 || rows[4].Y != 16 {
		t.Errorf("row-major frame 4 at (%d, %d), want (100, 16)", rows[4].X, rows[4].Y)
	}

	cols := SheetFrames(sheet, 4, 2, true)
	if cols[1].X != 100 || cols[1].Y != 16 {
		t.Errorf("column-major frame 1 at (%d, %d), want (100, 16)", cols[1].X, cols[1].Y)
	}
	if cols[0].Page != 1 || cols[0].Width != 16 || cols[0].Height != 16 {
		t.Errorf("frame 0 = %+v", cols[0])
	}

	if SheetFrames(sheet, 0, 2, false) != nil {
		t.Error("zero columns should yield no frames")
	}
}

func TestSceneTickStepsAnimations(t *testing.T) {
	s := NewScene()
	n := NewAnimatedSprite("a", threeFrames())
	n.Animation.FPS = 10
	n.Animation.Play()
	s.Root().AddChild(n)

	s.Tick(0.1)
	if n.Animation.CurrentFrame() != 1 {
		t.Errorf("frame = %d, want 1", n.Animation.CurrentFrame())
	}
}
