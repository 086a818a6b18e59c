package avg

import (
	"cmp"
	"image"
	"math"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// renderCommand is one DrawImage call collected during traversal.
type renderCommand struct {
	transform [6]float64
	region    TextureRegion
	image     *ebiten.Image
	color     Color
	blend     BlendMode
}

// Draw renders the stage to screen in painter order.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	if s.ClearColor != nil {
		screen.Fill(s.ClearColor.toRGBA())
	}

	s.commands = s.collect(s.root, computeLocalTransform(s.root), s.root.Alpha, s.commands[:0], false)
	var stats debugStats
	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}
	s.submit(screen, s.commands)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		s.debugLog(stats)
	}
	s.flushScreenshots(screen)
}

// collect appends draw commands for n's subtree. m is n's full transform.
func (s *Scene) collect(n *Node, m [6]float64, alpha float64, out []renderCommand, skipCache bool) []renderCommand {
	if !n.Visible {
		return out
	}
	if n.cacheEnabled && !skipCache {
		return s.appendCached(n, m, alpha, out)
	}
	if n.Type == NodeTypeSprite && n.Renderable {
		out = append(out, renderCommand{
			transform: m,
			region:    n.TextureRegion,
			image:     n.image,
			color:     Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * alpha},
			blend:     n.BlendMode,
		})
	}
	for _, child := range sortedChildren(n) {
		out = s.collect(child, multiplyAffine(m, computeLocalTransform(child)), alpha*child.Alpha, out, false)
	}
	return out
}

// sortedChildren returns n's children ordered by ZIndex, stable on insertion order.
func sortedChildren(n *Node) []*Node {
	if n.childrenSorted {
		if n.sortedChildren == nil {
			return n.children
		}
		return n.sortedChildren
	}
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	slices.SortStableFunc(n.sortedChildren, func(a, b *Node) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	n.childrenSorted = true
	return n.sortedChildren
}

func (s *Scene) submit(target *ebiten.Image, cmds []renderCommand) {
	var op ebiten.DrawImageOptions
	for i := range cmds {
		cmd := &cmds[i]
		src := cmd.image
		op.GeoM.Reset()
		if src == nil {
			src = s.regionImage(cmd.region)
			if src == nil {
				continue
			}
			r := cmd.region
			if r.Rotated {
				op.GeoM.Rotate(-math.Pi / 2)
				op.GeoM.Translate(0, float64(r.Width))
			}
			if r.OffsetX != 0 || r.OffsetY != 0 {
				op.GeoM.Translate(float64(r.OffsetX), float64(r.OffsetY))
			}
		}
		m := cmd.transform
		var geo ebiten.GeoM
		geo.SetElement(0, 0, m[0])
		geo.SetElement(1, 0, m[1])
		geo.SetElement(0, 1, m[2])
		geo.SetElement(1, 1, m[3])
		geo.SetElement(0, 2, m[4])
		geo.SetElement(1, 2, m[5])
		op.GeoM.Concat(geo)

		a := float32(cmd.color.A)
		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(cmd.color.R)*a, float32(cmd.color.G)*a, float32(cmd.color.B)*a, a)
		op.Blend = cmd.blend.EbitenBlend()
		target.DrawImage(src, &op)
	}
}

// regionImage resolves a region to a drawable sub-image. The zero region is
// the solid white pixel.
func (s *Scene) regionImage(r TextureRegion) *ebiten.Image {
	if r == (TextureRegion{}) {
		return WhitePixel
	}
	var page *ebiten.Image
	switch {
	case r.Page == magentaPlaceholderPage:
		page = ensureMagentaImage()
	case int(r.Page) < len(s.pages):
		page = s.pages[r.Page]
	}
	if page == nil {
		return nil
	}
	w, h := int(r.Width), int(r.Height)
	if r.Rotated {
		w, h = h, w
	}
	return page.SubImage(image.Rect(int(r.X), int(r.Y), int(r.X)+w, int(r.Y)+h)).(*ebiten.Image)
}

// --- Cache as bitmap ---

// SetCacheAsBitmap renders the subtree once into an offscreen image and
// reuses it until something below the node changes.
func (n *Node) SetCacheAsBitmap(enabled bool) {
	if n.cacheEnabled == enabled {
		return
	}
	n.cacheEnabled = enabled
	if enabled {
		n.cacheDirty = true
	} else {
		n.releaseCache()
	}
}

// CacheAsBitmap reports whether subtree caching is enabled.
func (n *Node) CacheAsBitmap() bool {
	return n.cacheEnabled
}

func (n *Node) releaseCache() {
	if n.cacheTexture != nil {
		n.cacheTexture.Deallocate()
		n.cacheTexture = nil
	}
	n.cacheDirty = false
}

func (n *Node) invalidateAncestorCaches() {
	for p := n; p != nil; p = p.Parent {
		if p.cacheEnabled {
			p.cacheDirty = true
		}
	}
}

func (s *Scene) appendCached(n *Node, m [6]float64, alpha float64, out []renderCommand) []renderCommand {
	if n.cacheTexture == nil || n.cacheDirty {
		s.rebuildCache(n)
	}
	if n.cacheTexture == nil {
		return out
	}
	shift := [6]float64{1, 0, 0, 1, n.cacheOrigin.X, n.cacheOrigin.Y}
	return append(out, renderCommand{
		transform: multiplyAffine(m, shift),
		image:     n.cacheTexture,
		color:     Color{1, 1, 1, alpha},
		blend:     n.BlendMode,
	})
}

func (s *Scene) rebuildCache(n *Node) {
	n.releaseCache()
	bounds := n.LocalBounds()
	w, h := int(math.Ceil(bounds.Width)), int(math.Ceil(bounds.Height))
	if w <= 0 || h <= 0 {
		return
	}
	img := ebiten.NewImage(w, h)
	origin := [6]float64{1, 0, 0, 1, -bounds.X, -bounds.Y}
	s.submit(img, s.collect(n, origin, 1, nil, true))
	n.cacheTexture = img
	n.cacheOrigin = Vec2{bounds.X, bounds.Y}
	n.cacheDirty = false
}
