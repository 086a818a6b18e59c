package avg

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is a custom hit testing region in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerHandler receives a pointer event routed to a node.
type PointerHandler func(*PointerEvent)

// nodeIDCounter is a plain counter (no atomic, the scene graph is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a renderable element of the display tree. One flat struct serves
// every node type.
type Node struct {
	ID   uint32
	Name string
	Type NodeType

	Parent   *Node
	children []*Node

	// Local transform. Anchor is a fraction of the node's natural size and is
	// applied in addition to Pivot.
	X, Y             float64
	ScaleX, ScaleY   float64
	Rotation         float64
	SkewX, SkewY     float64
	PivotX, PivotY   float64
	AnchorX, AnchorY float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	Alpha        float64
	Visible      bool
	Renderable   bool
	Interactable bool
	// ButtonMode shows a pointer cursor while hovering the node.
	ButtonMode bool

	ZIndex int

	UserData any
	EntityID uint32

	// Sprite fields
	TextureRegion TextureRegion
	BlendMode     BlendMode
	Color         Color
	image         *ebiten.Image

	HitShape  HitShape
	Animation *FrameAnimation

	// OnInteract sees every pointer event targeted at this node before the
	// declared handlers do. Built-in widgets use it for visual state.
	OnInteract PointerHandler
	// OnDispose fires once when the node is destroyed.
	OnDispose func(*Node)

	handlers [eventTypeCount]PointerHandler

	cacheEnabled bool
	cacheTexture *ebiten.Image
	cacheDirty   bool
	cacheOrigin  Vec2

	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a group node with no visual output.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that renders a texture region. A zero
// region renders as a 1x1 solid block tinted by Color.
func NewSprite(name string, region TextureRegion) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, TextureRegion: region}
	nodeDefaults(n)
	return n
}

// NewAnimatedSprite creates a sprite that cycles through frames. The
// animation starts stopped on the first frame.
func NewAnimatedSprite(name string, frames []TextureRegion) *Node {
	var first TextureRegion
	if len(frames) > 0 {
		first = frames[0]
	}
	n := NewSprite(name, first)
	n.Animation = newFrameAnimation(n, frames)
	return n
}

// SetImage makes the sprite draw img instead of its TextureRegion.
func (n *Node) SetImage(img *ebiten.Image) {
	n.image = img
	n.invalidateAncestorCaches()
}

// Image returns the image set by SetImage, or nil.
func (n *Node) Image() *ebiten.Image {
	return n.image
}

// SetTexture swaps the sprite's region.
func (n *Node) SetTexture(region TextureRegion) {
	n.TextureRegion = region
	n.image = nil
	n.invalidateAncestorCaches()
}

// --- Event handler table ---

// SetHandler installs fn as the node's handler for evt, replacing any previous
// one. A nil fn clears the slot.
func (n *Node) SetHandler(evt EventType, fn PointerHandler) {
	if evt >= eventTypeCount {
		return
	}
	n.handlers[evt] = fn
}

// Handler returns the handler installed for evt, or nil.
func (n *Node) Handler(evt EventType) PointerHandler {
	if evt >= eventTypeCount {
		return nil
	}
	return n.handlers[evt]
}

// ClearHandler removes the handler for evt.
func (n *Node) ClearHandler(evt EventType) {
	n.SetHandler(evt, nil)
}

// ClearHandlers removes every installed handler.
func (n *Node) ClearHandlers() {
	n.handlers = [eventTypeCount]PointerHandler{}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children, reparenting it if needed.
// Panics if child is nil or is an ancestor of this node.
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, -1)
}

// AddChildAt inserts child at index. An index of -1 appends.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("avg: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("avg: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index == -1 {
		index = len(n.children)
	}
	if index < 0 || index > len(n.children) {
		panic("avg: child index out of range")
	}
	child.Parent = n
	n.children = slices.Insert(n.children, index, child)
	n.childrenChanged()
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node without destroying it.
// Panics if child is not a child of this node.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("avg: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenChanged()
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// RemoveChildren detaches all children. They are not disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
	n.children = n.children[:0]
	n.childrenChanged()
}

// Children returns the child list. The returned slice must not be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// ChildIndex returns the position of child, or -1.
func (n *Node) ChildIndex(child *Node) int {
	return slices.Index(n.children, child)
}

// SetChildIndex moves child to index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	old := n.ChildIndex(child)
	if old < 0 {
		panic("avg: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("avg: child index out of range")
	}
	if old == index {
		return
	}
	n.children = slices.Delete(n.children, old, old+1)
	n.children = slices.Insert(n.children, index, child)
	n.childrenChanged()
}

// SetZIndex sets the draw order among siblings. Equal values keep insertion order.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenChanged()
	}
}

// --- Disposal ---

// Dispose detaches the node and destroys it and its descendants. Destroyed
// nodes cannot be reused. Calling Dispose twice is a no-op.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	if n.OnDispose != nil {
		n.OnDispose(n)
	}
	n.ID = 0
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.Animation = nil
	n.image = nil
	n.UserData = nil
	n.OnInteract = nil
	n.OnDispose = nil
	n.ClearHandlers()
	n.releaseCache()
}

// IsDisposed reports whether the node has been destroyed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

func (n *Node) childrenChanged() {
	n.childrenSorted = false
	n.invalidateAncestorCaches()
}

func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
