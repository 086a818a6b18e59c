package avg

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to four float64 fields of a Node together. Add it
// to a Scene with Scene.AddTween, or call Update yourself each frame. The
// group stops as soon as its node is disposed.
type TweenGroup struct {
	tweens [4]*gween.Tween
	fields [4]*float64
	count  int
	target *Node

	// OnComplete runs once when every tween has finished.
	OnComplete func()
	Done       bool
}

func newTweenGroup(node *Node, duration float32, fn ease.TweenFunc, fields []*float64, to []float64) *TweenGroup {
	g := &TweenGroup{target: node, count: len(fields)}
	for i, f := range fields {
		g.fields[i] = f
		g.tweens[i] = gween.New(float32(*f), float32(to[i]), duration, fn)
	}
	return g
}

// Update advances the group by dt seconds and writes the results to the node.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	finishedAll := true
	for i := range g.count {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		finishedAll = finishedAll && finished
	}
	if g.target != nil {
		g.target.MarkDirty()
	}
	if finishedAll {
		g.Done = true
		if g.OnComplete != nil {
			g.OnComplete()
		}
	}
}

// TweenPosition animates X and Y toward (toX, toY).
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, []*float64{&node.X, &node.Y}, []float64{toX, toY})
}

// TweenScale animates ScaleX and ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, []*float64{&node.ScaleX, &node.ScaleY}, []float64{toSX, toSY})
}

// TweenAlpha animates Alpha. Useful for fades between scenes.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, []*float64{&node.Alpha}, []float64{to})
}

// TweenRotation animates Rotation.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, []*float64{&node.Rotation}, []float64{to})
}

// TweenTint animates every channel of the node's tint Color.
func TweenTint(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		[]*float64{&node.Color.R, &node.Color.G, &node.Color.B, &node.Color.A},
		[]float64{to.R, to.G, to.B, to.A})
}
