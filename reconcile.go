package avg

import "strconv"

// Mountable is the instance surface the child reconciler drives. It is
// implemented by host components and composites.
type Mountable interface {
	// Construct binds the instance to its first element.
	Construct(el *Element)
	// MountComponent builds the instance's nodes and returns its mount image.
	MountComponent(tx *Transaction) *Node
	// ReceiveComponent updates the instance to next.
	ReceiveComponent(next *Element, tx *Transaction)
	// UnmountComponent tears the instance down. The mount image itself is
	// destroyed by the owning container.
	UnmountComponent()
	// CurrentElement returns the element last applied.
	CurrentElement() *Element
	// MountImage returns the node the owning container attached.
	MountImage() *Node

	setMountImage(n *Node)
}

// ChildContainer is the container side of reconciliation: the node
// mutations a parent performs for its rendered children.
type ChildContainer interface {
	CreateChild(child Mountable, afterNode, childNode *Node)
	MoveChild(child Mountable, afterNode *Node, toIndex, lastIndex int)
	RemoveChild(child Mountable)
	MountAndInjectChildren(children []*Element, tx *Transaction)
	RenderedChildren() *RenderedChildren
}

// ChildReconciler decides which ChildContainer calls bring a container's
// rendered children in line with newly declared ones.
type ChildReconciler interface {
	MountChildren(owner ChildContainer, children []*Element, tx *Transaction) []*Node
	UpdateChildren(owner ChildContainer, children []*Element, tx *Transaction)
	UnmountChildren(owner ChildContainer)
}

// RenderedChildren is a container's child instances in insertion order,
// indexed by key.
type RenderedChildren struct {
	keys  []string
	byKey map[string]Mountable
}

// Len returns the number of rendered children.
func (rc *RenderedChildren) Len() int {
	return len(rc.keys)
}

// At returns the i-th rendered child.
func (rc *RenderedChildren) At(i int) Mountable {
	return rc.byKey[rc.keys[i]]
}

func (rc *RenderedChildren) reset() {
	rc.keys = rc.keys[:0]
	rc.byKey = make(map[string]Mountable)
}

func (rc *RenderedChildren) add(key string, child Mountable) {
	if rc.byKey == nil {
		rc.byKey = make(map[string]Mountable)
	}
	if _, dup := rc.byKey[key]; dup {
		panic("avg: duplicate child key " + strconv.Quote(key))
	}
	rc.keys = append(rc.keys, key)
	rc.byKey[key] = child
}

// childKey is the explicit key or the positional index.
func childKey(el *Element, index int) string {
	if el.Key != "" {
		return "$" + el.Key
	}
	return "." + strconv.Itoa(index)
}

// keyedReconciler matches children by key and moves the ones whose previous
// position falls behind the last placed child. Containers append on both
// create and move, so inserted children and moved children land last:
// [a b c] updated to [b a c] leaves [b c a], and [a b] updated to [x a b]
// leaves [a b x].
type keyedReconciler struct {
	rt *Runtime
}

func (r *keyedReconciler) MountChildren(owner ChildContainer, children []*Element, tx *Transaction) []*Node {
	rc := owner.RenderedChildren()
	rc.reset()
	images := make([]*Node, 0, len(children))
	for i, el := range children {
		child := r.rt.instantiate(el)
		img := child.MountComponent(tx)
		child.setMountImage(img)
		rc.add(childKey(el, i), child)
		images = append(images, img)
	}
	return images
}

func (r *keyedReconciler) UpdateChildren(owner ChildContainer, children []*Element, tx *Transaction) {
	rc := owner.RenderedChildren()
	prevKeys := rc.keys
	prev := rc.byKey
	prevIndex := make(map[string]int, len(prevKeys))
	for i, k := range prevKeys {
		prevIndex[k] = i
	}

	next := RenderedChildren{byKey: make(map[string]Mountable, len(children))}
	lastIndex := 0
	var lastPlaced *Node
	for i, el := range children {
		key := childKey(el, i)
		prevChild, ok := prev[key]
		var child Mountable
		if ok && sameElementType(prevChild.CurrentElement(), el) {
			prevChild.ReceiveComponent(el, tx)
			if idx := prevIndex[key]; idx < lastIndex {
				owner.MoveChild(prevChild, lastPlaced, i, lastIndex)
			} else {
				lastIndex = idx
			}
			child = prevChild
		} else {
			if ok {
				prevChild.UnmountComponent()
				owner.RemoveChild(prevChild)
				delete(prev, key)
			}
			child = r.rt.instantiate(el)
			owner.CreateChild(child, lastPlaced, child.MountComponent(tx))
		}
		next.add(key, child)
		lastPlaced = child.MountImage()
	}

	for _, k := range prevKeys {
		child, ok := prev[k]
		if !ok {
			continue
		}
		if _, kept := next.byKey[k]; kept && next.byKey[k] == child {
			continue
		}
		child.UnmountComponent()
		owner.RemoveChild(child)
	}
	*rc = next
}

func (r *keyedReconciler) UnmountChildren(owner ChildContainer) {
	rc := owner.RenderedChildren()
	for _, k := range rc.keys {
		child := rc.byKey[k]
		child.UnmountComponent()
		owner.RemoveChild(child)
	}
	rc.reset()
}
