package state

import (
	"context"
	"fmt"

	"github.com/phanxgames/avg"
)

// ConnectOptions configures one connection of a Definition.
type ConnectOptions struct {
	// To is the StateTree key. Defaults to the definition's name.
	To string
	// Values override the schema defaults of the new model.
	Values   map[string]any
	Handlers HandlerTable
	// NoObserve stops views from re-rendering when the model changes.
	NoObserve bool
}

// Binding is what a connected component or plugin sees.
type Binding struct {
	key     string
	model   *Model
	tree    *StateTree
	emit    EmitFunc
	updater avg.Updater
}

// Key returns the StateTree key the model is registered under.
func (b *Binding) Key() string { return b.key }

// Data returns the bound model.
func (b *Binding) Data() *Model { return b.model }

// Tree returns the StateTree.
func (b *Binding) Tree() *StateTree { return b.tree }

// Emit publishes a declared event.
func (b *Binding) Emit(ctx context.Context, name string, data map[string]any) error {
	return b.emit(ctx, name, data)
}

// ForceUpdate re-renders the bound view. Plugins have nothing to update.
func (b *Binding) ForceUpdate() {
	if b.updater != nil {
		b.updater.ForceUpdate()
	}
}

// Connected is a Definition bound to a model in a StateTree.
type Connected struct {
	def     *Definition
	key     string
	tree    *StateTree
	model   *Model
	emit    EmitFunc
	observe bool
	typ     avg.ElementType
}

// Connect creates the definition's model, registers it under opts.To and
// builds the emit function from opts.Handlers.
func (d *Definition) Connect(tree *StateTree, opts ConnectOptions) (*Connected, error) {
	if d == nil || d.model == nil {
		return nil, fmt.Errorf("connect: %w", ErrClassification)
	}
	key := opts.To
	if key == "" {
		key = d.name
	}
	model, err := d.model.Create(opts.Values)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", key, err)
	}
	tree.Append(key, model)

	c := &Connected{
		def:     d,
		key:     key,
		tree:    tree,
		model:   model,
		emit:    newEmitter(tree, d.events, opts.Handlers).emit,
		observe: !opts.NoObserve,
	}
	switch d.kind {
	case KindComponent:
		c.typ = avg.NewViewType(d.name, c.newComponentView)
	case KindFunctional:
		if c.observe {
			c.typ = avg.NewViewType(d.name, c.newFunctionalView)
		} else {
			c.typ = avg.NewFuncType(d.name, c.renderFunctional)
		}
	}
	return c, nil
}

// MustConnect is like Connect but panics on error.
func (d *Definition) MustConnect(tree *StateTree, opts ConnectOptions) *Connected {
	c, err := d.Connect(tree, opts)
	if err != nil {
		panic(err)
	}
	return c
}

// Key returns the StateTree key.
func (c *Connected) Key() string { return c.key }

// Model returns the connected model.
func (c *Connected) Model() *Model { return c.model }

// Emit publishes a declared event.
func (c *Connected) Emit(ctx context.Context, name string, data map[string]any) error {
	return c.emit(ctx, name, data)
}

// Type returns the element type for component and functional definitions,
// or nil for plugins.
func (c *Connected) Type() avg.ElementType { return c.typ }

// NewPlugin builds the plugin. It panics for other kinds.
func (c *Connected) NewPlugin() any {
	if c.def.kind != KindPlugin {
		panic("state: NewPlugin on a " + c.def.kind.String() + " definition")
	}
	return c.def.plugin(c.binding(nil))
}

// Install builds the plugin and installs it on rt under the connection's key.
// It panics for other kinds.
func (c *Connected) Install(rt *avg.Runtime) any {
	if c.def.kind != KindPlugin {
		panic("state: Install on a " + c.def.kind.String() + " definition")
	}
	return rt.Install(c.key, func(*avg.Runtime) any { return c.NewPlugin() })
}

func (c *Connected) binding(u avg.Updater) *Binding {
	return &Binding{key: c.key, model: c.model, tree: c.tree, emit: c.emit, updater: u}
}

func (c *Connected) newComponentView(u avg.Updater) avg.View {
	v := c.def.component(c.binding(u))
	if !c.observe {
		return v
	}
	return &observer{inner: v, model: c.model, updater: u}
}

func (c *Connected) newFunctionalView(u avg.Updater) avg.View {
	return &observer{inner: funcView(c.renderFunctional), model: c.model, updater: u}
}

func (c *Connected) renderFunctional(props avg.Props, children []*avg.Element) *avg.Element {
	return c.def.function(props, children, c.emit)
}

type funcView func(props avg.Props, children []*avg.Element) *avg.Element

func (f funcView) Render(props avg.Props, children []*avg.Element) *avg.Element {
	return f(props, children)
}

// observer re-renders its view whenever the model changes while mounted.
type observer struct {
	inner   avg.View
	model   *Model
	updater avg.Updater
	stop    func()
}

func (o *observer) Render(props avg.Props, children []*avg.Element) *avg.Element {
	return o.inner.Render(props, children)
}

func (o *observer) ComponentDidMount() {
	o.stop = o.model.Subscribe(func(Change) { o.updater.ForceUpdate() })
	if m, ok := o.inner.(avg.DidMounter); ok {
		m.ComponentDidMount()
	}
}

func (o *observer) ComponentDidUpdate(prev avg.Props) {
	if u, ok := o.inner.(avg.DidUpdater); ok {
		u.ComponentDidUpdate(prev)
	}
}

func (o *observer) ComponentWillUnmount() {
	if o.stop != nil {
		o.stop()
		o.stop = nil
	}
	if u, ok := o.inner.(avg.WillUnmounter); ok {
		u.ComponentWillUnmount()
	}
}
