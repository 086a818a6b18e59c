package avg

// Construct creates the component's node and wires its declared handlers.
func (c *Component) Construct(el *Element) {
	if c.phase != stateUnconstructed {
		panic("avg: component constructed twice")
	}
	c.element = el
	c.createNode()
	c.node.Interactable = true
	c.installHandlers(el.Props)
	c.phase = stateConstructed
}

// MountComponent applies the props, mounts the declared children and returns
// the node.
func (c *Component) MountComponent(tx *Transaction) *Node {
	if c.phase != stateConstructed {
		panic("avg: mounting a component that is not constructed")
	}
	c.mountNode(c.element.Props)

	pool := c.rt.Transactions
	inner := pool.GetPooled()
	inner.Perform(func(tx *Transaction) {
		c.MountAndInjectChildren(c.element.Children, tx)
	})
	pool.Release(inner)

	c.phase = stateMounted
	return c.node
}

// ReceiveComponent moves the component to next. An element whose props and
// children are structurally equal to the current one is skipped entirely.
func (c *Component) ReceiveComponent(next *Element, tx *Transaction) {
	prev := c.element
	if elementEqual(prev, next) {
		return
	}
	c.updateNode(prev.Props, next.Props)
	c.removeHandlers(prev.Props)
	c.installHandlers(next.Props)

	pool := c.rt.Transactions
	inner := pool.GetPooled()
	inner.Perform(func(tx *Transaction) {
		c.rt.Reconciler.UpdateChildren(&c.hostContainer, next.Children, tx)
	})
	pool.Release(inner)

	c.element = next
}

// UnmountComponent unmounts the node and every child. Child nodes are
// destroyed here; the component's own node is destroyed by its container.
func (c *Component) UnmountComponent() {
	if c.phase == stateUnmounted {
		return
	}
	c.unmountNode()
	c.rt.Reconciler.UnmountChildren(&c.hostContainer)
	c.node.RemoveChildren()
	c.phase = stateUnmounted
}
