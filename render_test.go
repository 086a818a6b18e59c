package avg

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func collectScene(s *Scene) []renderCommand {
	return s.collect(s.root, computeLocalTransform(s.root), s.root.Alpha, nil, false)
}

func TestSingleSpriteEmitsOneCommand(t *testing.T) {
	s := NewScene()
	sp := NewSprite("sp", squareRegion(0, 0, 0, 16))
	sp.SetPosition(5, 6)
	s.Root().AddChild(sp)

	cmds := collectScene(s)
	if len(cmds) != 1 {
		t.Fatalf("commands = %d, want 1", len(cmds))
	}
	if cmds[0].transform[4] != 5 || cmds[0].transform[5] != 6 {
		t.Errorf("translation = (%v, %v), want (5, 6)", cmds[0].transform[4], cmds[0].transform[5])
	}
}

func TestContainerNoCommand(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewContainer("c"))
	if n := len(collectScene(s)); n != 0 {
		t.Errorf("commands = %d, want 0", n)
	}
}

func TestInvisibleSubtreeSkipped(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	group.AddChild(NewSprite("a", TextureRegion{}))
	s.Root().AddChild(group)
	group.Visible = false
	if n := len(collectScene(s)); n != 0 {
		t.Errorf("commands = %d, want 0", n)
	}
}

func TestNonRenderableKeepsChildren(t *testing.T) {
	s := NewScene()
	parent := NewSprite("parent", TextureRegion{})
	parent.Renderable = false
	parent.AddChild(NewSprite("child", TextureRegion{}))
	s.Root().AddChild(parent)
	if n := len(collectScene(s)); n != 1 {
		t.Errorf("commands = %d, want 1 (child only)", n)
	}
}

func TestAlphaMultipliesDownTheTree(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	group.SetAlpha(0.5)
	sp := NewSprite("sp", TextureRegion{})
	sp.SetAlpha(0.5)
	sp.Color = Color{1, 1, 1, 0.8}
	group.AddChild(sp)
	s.Root().AddChild(group)

	cmds := collectScene(s)
	assertNear(t, "alpha", cmds[0].color.A, 0.2)
}

func TestZIndexOrdering(t *testing.T) {
	s := NewScene()
	a := NewSprite("a", TextureRegion{})
	b := NewSprite("b", TextureRegion{})
	c := NewSprite("c", TextureRegion{})
	a.BlendMode, b.BlendMode, c.BlendMode = BlendNormal, BlendAdd, BlendMultiply
	for _, n := range []*Node{a, b, c} {
		s.Root().AddChild(n)
	}
	a.SetZIndex(2)

	cmds := collectScene(s)
	got := []BlendMode{cmds[0].blend, cmds[1].blend, cmds[2].blend}
	want := []BlendMode{BlendAdd, BlendMultiply, BlendNormal}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRegionImage(t *testing.T) {
	s := NewScene()
	if s.regionImage(TextureRegion{}) != WhitePixel {
		t.Error("zero region should draw the white pixel")
	}
	if s.regionImage(squareRegion(3, 0, 0, 4)) != nil {
		t.Error("unregistered page should resolve to nil")
	}
	s.RegisterPage(0, ebiten.NewImage(16, 16))
	img := s.regionImage(squareRegion(0, 4, 4, 8))
	if img == nil || img.Bounds().Dx() != 8 {
		t.Errorf("sub-image = %v", img)
	}
}

func TestCacheAsBitmapCollapsesSubtree(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	for range 3 {
		group.AddChild(NewSprite("", squareRegion(0, 0, 0, 1)))
	}
	s.Root().AddChild(group)
	s.RegisterPage(0, ebiten.NewImage(4, 4))
	group.SetCacheAsBitmap(true)

	cmds := collectScene(s)
	if len(cmds) != 1 {
		t.Fatalf("commands = %d, want 1", len(cmds))
	}
	if cmds[0].image != group.cacheTexture {
		t.Error("command should draw the cache texture")
	}
	if group.cacheDirty {
		t.Error("cache should be clean after a rebuild")
	}

	group.ChildAt(0).SetPosition(1, 0)
	if !group.cacheDirty {
		t.Error("moving a descendant should invalidate the cache")
	}

	group.SetCacheAsBitmap(false)
	if group.cacheTexture != nil {
		t.Error("disabling the cache should release the texture")
	}
}
