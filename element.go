package avg

import (
	"fmt"
	"maps"
)

// ElementType identifies what an Element instantiates: a *ComponentType
// (host node), a *ViewType (stateful composite) or a *FuncType (functional
// composite).
type ElementType interface {
	TypeName() string
	elementType()
}

// Element is one node of a declared tree.
type Element struct {
	Type     ElementType
	Key      string
	Props    Props
	Children []*Element
}

// E builds an element. A "key" entry in props becomes the element's Key and
// is not passed on as a property. Nil children are dropped so callers can
// include elements conditionally.
func E(typ ElementType, props Props, children ...*Element) *Element {
	if typ == nil {
		panic("avg: element type is nil")
	}
	el := &Element{Type: typ, Props: maps.Clone(props)}
	if el.Props == nil {
		el.Props = Props{}
	}
	if k, ok := el.Props["key"]; ok {
		el.Key = fmt.Sprint(k)
		delete(el.Props, "key")
	}
	for _, c := range children {
		if c != nil {
			el.Children = append(el.Children, c)
		}
	}
	return el
}

// sameElementType reports whether next can update the instance rendered for
// prev in place rather than replacing it.
func sameElementType(prev, next *Element) bool {
	if prev == nil || next == nil {
		return false
	}
	return prev.Type == next.Type && prev.Key == next.Key
}

// elementEqual compares the parts of two elements an update depends on.
func elementEqual(prev, next *Element) bool {
	return DeepEqual(prev.Props, next.Props) && DeepEqual(prev.Children, next.Children)
}
