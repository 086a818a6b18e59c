package avg

// hostContainer implements ChildContainer over a node. Component and Surface
// embed it.
type hostContainer struct {
	rt       *Runtime
	node     *Node
	rendered RenderedChildren
}

// RenderedChildren implements ChildContainer.
func (h *hostContainer) RenderedChildren() *RenderedChildren {
	return &h.rendered
}

// CreateChild records childNode as child's mount image and appends it.
// afterNode is ignored: new children always go last.
func (h *hostContainer) CreateChild(child Mountable, afterNode, childNode *Node) {
	child.setMountImage(childNode)
	h.rt.Bus.Post(LifecycleEvent{Type: LifecycleCreateChild, Node: childNode, Parent: h.node})
	h.node.AddChild(childNode)
}

// MoveChild re-appends child's mount image. The target index is ignored, so
// a moved child ends up last among its siblings.
func (h *hostContainer) MoveChild(child Mountable, afterNode *Node, toIndex, lastIndex int) {
	img := child.MountImage()
	h.rt.Bus.Post(LifecycleEvent{Type: LifecycleMoveChild, Node: img, Parent: h.node})
	h.node.AddChild(img)
}

// RemoveChild detaches and destroys child's mount image.
func (h *hostContainer) RemoveChild(child Mountable) {
	img := child.MountImage()
	if img == nil {
		return
	}
	h.rt.Bus.Post(LifecycleEvent{Type: LifecycleRemoveChild, Node: img, Parent: h.node})
	if img.Parent == h.node {
		h.node.RemoveChild(img)
	}
	img.Dispose()
	child.setMountImage(nil)
}

// MountAndInjectChildren mounts every child first and then appends their
// images in declared order.
func (h *hostContainer) MountAndInjectChildren(children []*Element, tx *Transaction) {
	images := h.rt.Reconciler.MountChildren(h, children, tx)
	for i, img := range images {
		h.rt.Bus.Post(LifecycleEvent{Type: LifecycleMountChild, Node: img, Parent: h.node})
		h.rendered.At(i).setMountImage(img)
		h.node.AddChild(img)
	}
}
