package avg

import "math"

var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform returns the node's local affine matrix [a, b, c, d, tx, ty].
//
//	Translate(-(Pivot + Anchor*size)) -> Scale -> Skew -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sx, sy := n.ScaleX, n.ScaleY
	sin, cos := math.Sincos(n.Rotation)

	var tanSkewX, tanSkewY float64
	if n.SkewX != 0 {
		tanSkewX = math.Tan(n.SkewX)
	}
	if n.SkewY != 0 {
		tanSkewY = math.Tan(n.SkewY)
	}

	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy

	px, py := n.PivotX, n.PivotY
	if n.AnchorX != 0 || n.AnchorY != 0 {
		w, h := nodeDimensions(n)
		px += n.AnchorX * w
		py += n.AnchorY * h
	}
	preTx := -px*sx - tanSkewX*py*sy
	preTy := -tanSkewY*px*sx - py*sy

	return [6]float64{
		cos*a - sin*b,
		sin*a + cos*b,
		cos*c - sin*d,
		sin*c + cos*d,
		cos*preTx - sin*preTy + n.X,
		sin*preTx + cos*preTy + n.Y,
	}
}

// multiplyAffine returns parent * child.
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine returns the inverse of m, or identity when m is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityTransform
	}
	inv := 1.0 / det
	a := m[3] * inv
	b := -m[1] * inv
	c := -m[2] * inv
	d := m[0] * inv
	return [6]float64{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform refreshes cached world matrices and alpha below n.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// computedWorldTransform walks the parent chain instead of trusting the
// per-frame cache, so it is valid between frames.
func (n *Node) computedWorldTransform() [6]float64 {
	m := computeLocalTransform(n)
	for p := n.Parent; p != nil; p = p.Parent {
		m = multiplyAffine(computeLocalTransform(p), m)
	}
	return m
}

// --- Property setters ---

// SetPosition sets X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.MarkDirty()
}

// SetScale sets ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX, n.ScaleY = sx, sy
	n.MarkDirty()
}

// SetRotation sets the rotation in radians.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.MarkDirty()
}

// SetSkew sets SkewX and SkewY in radians.
func (n *Node) SetSkew(sx, sy float64) {
	n.SkewX, n.SkewY = sx, sy
	n.MarkDirty()
}

// SetPivot sets the local origin used for rotation and scaling.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX, n.PivotY = px, py
	n.MarkDirty()
}

// SetAnchor sets the origin as a fraction of the node's natural size;
// (0.5, 0.5) centers a sprite on its position.
func (n *Node) SetAnchor(ax, ay float64) {
	n.AnchorX, n.AnchorY = ax, ay
	n.MarkDirty()
}

// SetAlpha sets the node's opacity.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.MarkDirty()
}

// MarkDirty forces transform recomputation on the next frame.
func (n *Node) MarkDirty() {
	n.transformDirty = true
	n.invalidateAncestorCaches()
}

// --- Size ---

// nodeDimensions returns the unscaled size of the node's own visual.
func nodeDimensions(n *Node) (w, h float64) {
	if n.Type != NodeTypeSprite {
		return 0, 0
	}
	if n.image != nil {
		b := n.image.Bounds()
		return float64(b.Dx()), float64(b.Dy())
	}
	r := n.TextureRegion
	if r.OriginalW == 0 && r.OriginalH == 0 {
		if r.Width == 0 && r.Height == 0 {
			return 1, 1
		}
		return float64(r.Width), float64(r.Height)
	}
	return float64(r.OriginalW), float64(r.OriginalH)
}

// LocalBounds returns the bounds of the node and its visible descendants in
// the node's own coordinate space, ignoring its own transform.
func (n *Node) LocalBounds() Rect {
	r, _ := subtreeBounds(n, identityTransform)
	return r
}

// Bounds returns the world-space axis-aligned bounds of the node and its
// visible descendants.
func (n *Node) Bounds() Rect {
	r, _ := subtreeBounds(n, n.computedWorldTransform())
	return r
}

func subtreeBounds(n *Node, m [6]float64) (Rect, bool) {
	var out Rect
	found := false
	if w, h := nodeDimensions(n); w > 0 && h > 0 {
		out = transformedAABB(m, w, h)
		found = true
	}
	for _, child := range n.children {
		if !child.Visible {
			continue
		}
		r, ok := subtreeBounds(child, multiplyAffine(m, computeLocalTransform(child)))
		if !ok {
			continue
		}
		if found {
			out = out.Union(r)
		} else {
			out, found = r, true
		}
	}
	return out, found
}

func transformedAABB(m [6]float64, w, h float64) Rect {
	xs := [4]float64{}
	ys := [4]float64{}
	xs[0], ys[0] = transformPoint(m, 0, 0)
	xs[1], ys[1] = transformPoint(m, w, 0)
	xs[2], ys[2] = transformPoint(m, 0, h)
	xs[3], ys[3] = transformPoint(m, w, h)
	minX, maxX := min(xs[0], xs[1], xs[2], xs[3]), max(xs[0], xs[1], xs[2], xs[3])
	minY, maxY := min(ys[0], ys[1], ys[2], ys[3]), max(ys[0], ys[1], ys[2], ys[3])
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Width returns the scaled width of the node's local bounds.
func (n *Node) Width() float64 {
	return n.LocalBounds().Width * math.Abs(n.ScaleX)
}

// Height returns the scaled height of the node's local bounds.
func (n *Node) Height() float64 {
	return n.LocalBounds().Height * math.Abs(n.ScaleY)
}

// SetWidth scales the node so its local bounds span w. Nodes with empty
// bounds are left unchanged.
func (n *Node) SetWidth(w float64) {
	if lw := n.LocalBounds().Width; lw > 0 {
		n.ScaleX = w / lw
		n.MarkDirty()
	}
}

// SetHeight scales the node so its local bounds span h.
func (n *Node) SetHeight(h float64) {
	if lh := n.LocalBounds().Height; lh > 0 {
		n.ScaleY = h / lh
		n.MarkDirty()
	}
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}
