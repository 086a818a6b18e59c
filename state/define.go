package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/phanxgames/avg"
)

// ErrClassification is returned when a target is not a component, a
// functional component or a plugin of the declared Kind.
var ErrClassification = errors.New("state: target is not an avg component or plugin")

// Kind declares what a Define target is.
type Kind uint8

const (
	KindComponent Kind = iota + 1
	KindFunctional
	KindPlugin
)

func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindFunctional:
		return "functional"
	case KindPlugin:
		return "plugin"
	}
	return "unknown"
}

// ComponentFactory builds a stateful view bound to a model.
type ComponentFactory func(b *Binding) avg.View

// FunctionalComponent renders from props and may emit events.
type FunctionalComponent func(props avg.Props, children []*avg.Element, emit EmitFunc) *avg.Element

// PluginFactory builds a non-visual object bound to a model.
type PluginFactory func(b *Binding) any

// DefineOptions describes the model a target is bound to.
type DefineOptions struct {
	// Name labels the model type and the element type. Defaults to the kind.
	Name string
	// Schema maps field names to default values.
	Schema  map[string]any
	Actions map[string]ActionFunc
	Views   map[string]ViewFunc
	// Events lists the event names emit accepts.
	Events []string
}

// Definition is a classified target with its model type.
type Definition struct {
	name      string
	kind      Kind
	component ComponentFactory
	function  FunctionalComponent
	plugin    PluginFactory
	model     *ModelType
	events    []string
}

// Define classifies target as kind and builds its model type.
func Define(target any, kind Kind, opts DefineOptions) (*Definition, error) {
	d := &Definition{name: opts.Name, kind: kind}
	if d.name == "" {
		d.name = kind.String()
	}
	if !d.bind(target) {
		return nil, fmt.Errorf("define %s: %T: %w", kind, target, ErrClassification)
	}
	d.model = NewModelType(d.name, opts.Schema, opts.Actions, opts.Views)
	d.events = slices.Clone(opts.Events)
	return d, nil
}

// MustDefine is like Define but panics on error.
func MustDefine(target any, kind Kind, opts DefineOptions) *Definition {
	d, err := Define(target, kind, opts)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Definition) bind(target any) bool {
	switch d.kind {
	case KindComponent:
		switch fn := target.(type) {
		case ComponentFactory:
			d.component = fn
		case func(*Binding) avg.View:
			d.component = fn
		}
		return d.component != nil
	case KindFunctional:
		switch fn := target.(type) {
		case FunctionalComponent:
			d.function = fn
		case func(avg.Props, []*avg.Element, EmitFunc) *avg.Element:
			d.function = fn
		}
		return d.function != nil
	case KindPlugin:
		switch fn := target.(type) {
		case PluginFactory:
			d.plugin = fn
		case func(*Binding) any:
			d.plugin = fn
		}
		return d.plugin != nil
	}
	return false
}

// Name returns the definition's name.
func (d *Definition) Name() string { return d.name }

// Kind returns the declared kind.
func (d *Definition) Kind() Kind { return d.kind }

// Model returns the model type.
func (d *Definition) Model() *ModelType { return d.model }

// Events returns the declared event names.
func (d *Definition) Events() []string { return slices.Clone(d.events) }
