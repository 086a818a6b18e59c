package avg

// NodeHooks are the per-kind callbacks of a host component. Nil hooks fall
// back to defaults: CreateNode makes an empty container, MountNode and
// UpdateNode apply the standard properties, UnmountNode does nothing.
type NodeHooks struct {
	CreateNode  func(c *Component) *Node
	MountNode   func(c *Component, props Props)
	UpdateNode  func(c *Component, prev, props Props)
	UnmountNode func(c *Component)
}

// ComponentType is a host component kind: it owns exactly one node.
type ComponentType struct {
	Name  string
	hooks NodeHooks
}

// NewComponentType declares a host component kind.
func NewComponentType(name string, hooks NodeHooks) *ComponentType {
	return &ComponentType{Name: name, hooks: hooks}
}

// TypeName implements ElementType.
func (t *ComponentType) TypeName() string { return t.Name }

func (t *ComponentType) elementType() {}

// Component is a mounted host component. The lifecycle notifications it posts
// on the Bus wrap the kind's hooks, so each lifecycle call is announced
// exactly once whatever the kind overrides.
type Component struct {
	hostContainer

	typ        *ComponentType
	element    *Element
	mountImage *Node
	phase      componentState

	// Data holds kind-specific state attached by the hooks.
	Data any
}

type componentState uint8

const (
	stateUnconstructed componentState = iota
	stateConstructed
	stateMounted
	stateUnmounted
)

// Type returns the component's kind.
func (c *Component) Type() *ComponentType { return c.typ }

// Node returns the component's node. It is nil before construction.
func (c *Component) Node() *Node { return c.node }

// Runtime returns the runtime the component was instantiated by.
func (c *Component) Runtime() *Runtime { return c.rt }

// Props returns the current element's props.
func (c *Component) Props() Props { return c.element.Props }

// CurrentElement implements Mountable.
func (c *Component) CurrentElement() *Element { return c.element }

// MountImage implements Mountable.
func (c *Component) MountImage() *Node { return c.mountImage }

func (c *Component) setMountImage(n *Node) { c.mountImage = n }

// GetPublicInstance returns the node, the value refs to a host component see.
func (c *Component) GetPublicInstance() *Node { return c.node }

func (c *Component) createNode() {
	var node *Node
	if c.typ.hooks.CreateNode != nil {
		node = c.typ.hooks.CreateNode(c)
	} else {
		node = NewContainer(c.typ.Name)
	}
	if node == nil {
		panic("avg: " + c.typ.Name + ".CreateNode returned no node")
	}
	c.node = node
	c.rt.Bus.Post(LifecycleEvent{Type: LifecycleCreateNode, Node: node, Props: c.element.Props})
}

func (c *Component) mountNode(props Props) {
	c.rt.Bus.Post(LifecycleEvent{Type: LifecycleMountNode, Node: c.node, Props: props})
	if c.typ.hooks.MountNode != nil {
		c.typ.hooks.MountNode(c, props)
		return
	}
	c.rt.Props.MountNode(c.node, props)
}

func (c *Component) updateNode(prev, props Props) {
	c.rt.Bus.Post(LifecycleEvent{Type: LifecycleUpdateNode, Node: c.node, PrevProps: prev, Props: props})
	if c.typ.hooks.UpdateNode != nil {
		c.typ.hooks.UpdateNode(c, prev, props)
		return
	}
	c.rt.Props.UpdateNode(c.node, prev, props)
}

func (c *Component) unmountNode() {
	c.rt.Bus.Post(LifecycleEvent{Type: LifecycleUnmountNode, Node: c.node})
	if c.typ.hooks.UnmountNode != nil {
		c.typ.hooks.UnmountNode(c)
		return
	}
	c.rt.Props.UnmountNode(c.node)
}
