package avg

// View is a stateful composite component. Render returns the element tree
// the view stands for; a nil result renders an empty Layer.
type View interface {
	Render(props Props, children []*Element) *Element
}

// Optional View lifecycle callbacks.
type (
	DidMounter interface {
		ComponentDidMount()
	}
	DidUpdater interface {
		ComponentDidUpdate(prevProps Props)
	}
	WillUnmounter interface {
		ComponentWillUnmount()
	}
)

// Updater lets a view ask to be rendered again.
type Updater interface {
	ForceUpdate()
}

// ViewType declares a stateful composite kind. New is called once per
// mounted instance.
type ViewType struct {
	Name string
	New  func(u Updater) View
}

// NewViewType declares a stateful composite kind.
func NewViewType(name string, newView func(u Updater) View) *ViewType {
	return &ViewType{Name: name, New: newView}
}

// TypeName implements ElementType.
func (t *ViewType) TypeName() string { return t.Name }

func (t *ViewType) elementType() {}

// FuncType declares a stateless composite kind.
type FuncType struct {
	Name   string
	Render func(props Props, children []*Element) *Element
}

// NewFuncType declares a stateless composite kind.
func NewFuncType(name string, render func(props Props, children []*Element) *Element) *FuncType {
	return &FuncType{Name: name, Render: render}
}

// TypeName implements ElementType.
func (t *FuncType) TypeName() string { return t.Name }

func (t *FuncType) elementType() {}

// composite is a mounted ViewType or FuncType. It owns no node; its mount
// image is the one of the single instance it renders.
type composite struct {
	rt        *Runtime
	element   *Element
	view      View
	render    func(props Props, children []*Element) *Element
	rendered  Mountable
	pending   bool
	mounted   bool
	unmounted bool
}

func (c *composite) Construct(el *Element) {
	c.element = el
	switch t := el.Type.(type) {
	case *ViewType:
		c.view = t.New(c)
		if c.view == nil {
			panic("avg: " + t.Name + ".New returned no view")
		}
		c.render = c.view.Render
	case *FuncType:
		c.render = t.Render
	}
}

func (c *composite) renderElement() *Element {
	el := c.render(c.element.Props, c.element.Children)
	if el == nil {
		el = E(Layer, nil)
	}
	return el
}

func (c *composite) MountComponent(tx *Transaction) *Node {
	c.rendered = c.rt.instantiate(c.renderElement())
	img := c.rendered.MountComponent(tx)
	c.rendered.setMountImage(img)
	c.mounted = true
	if m, ok := c.view.(DidMounter); ok {
		tx.EnqueueReady(m.ComponentDidMount)
	}
	return img
}

func (c *composite) ReceiveComponent(next *Element, tx *Transaction) {
	prevProps := c.element.Props
	c.element = next
	c.updateRendered(tx)
	if u, ok := c.view.(DidUpdater); ok {
		tx.EnqueueReady(func() { u.ComponentDidUpdate(prevProps) })
	}
}

// updateRendered renders again and updates or replaces the rendered child.
// A replacement takes the old image's place among its siblings.
func (c *composite) updateRendered(tx *Transaction) {
	if c.unmounted || !c.mounted {
		return
	}
	next := c.renderElement()
	if sameElementType(c.rendered.CurrentElement(), next) {
		c.rendered.ReceiveComponent(next, tx)
		return
	}

	old := c.rendered
	oldImg := old.MountImage()
	parent := oldImg.Parent
	index := -1
	if parent != nil {
		index = parent.ChildIndex(oldImg)
	}
	old.UnmountComponent()
	if parent != nil {
		c.rt.Bus.Post(LifecycleEvent{Type: LifecycleRemoveChild, Node: oldImg, Parent: parent})
	}
	oldImg.Dispose()
	old.setMountImage(nil)

	c.rendered = c.rt.instantiate(next)
	img := c.rendered.MountComponent(tx)
	c.rendered.setMountImage(img)
	if parent != nil {
		c.rt.Bus.Post(LifecycleEvent{Type: LifecycleCreateChild, Node: img, Parent: parent})
		parent.AddChildAt(img, index)
	}
}

func (c *composite) UnmountComponent() {
	if c.unmounted {
		return
	}
	if u, ok := c.view.(WillUnmounter); ok {
		u.ComponentWillUnmount()
	}
	c.unmounted = true
	if c.rendered != nil {
		c.rendered.UnmountComponent()
	}
}

// ForceUpdate implements Updater.
func (c *composite) ForceUpdate() {
	c.rt.Transactions.requestUpdate(c)
}

func (c *composite) CurrentElement() *Element { return c.element }

func (c *composite) MountImage() *Node {
	if c.rendered == nil {
		return nil
	}
	return c.rendered.MountImage()
}

func (c *composite) setMountImage(n *Node) {
	if c.rendered != nil {
		c.rendered.setMountImage(n)
	}
}
