package state

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// HandlerFunc handles an emitted event directly.
type HandlerFunc func(ctx context.Context, evt *Event) error

// Handler is either a direct HandlerFunc or an indirect action descriptor.
//
// An indirect handler names an action as "key.method": key is looked up in
// the StateTree when the event fires and method is called on the model with
// the result of Data.Expression.
type Handler struct {
	Func   HandlerFunc `yaml:"-"`
	Action string      `yaml:"action"`
	Data   HandlerData `yaml:"data"`
}

// HandlerData configures an indirect handler's argument.
type HandlerData struct {
	// Input binds expression variables to "key.field" paths, read from the
	// StateTree at invocation time.
	Input map[string]string `yaml:"input,omitempty"`
	// Expression computes the action argument. It sees evt (the payload),
	// the inputs, and pass() and terminate(). Empty passes the payload.
	Expression string `yaml:"expression,omitempty"`
}

// Func wraps fn as a direct handler.
func Func(fn HandlerFunc) Handler {
	return Handler{Func: fn}
}

// Action builds an indirect handler.
func Action(action, expression string, input map[string]string) Handler {
	return Handler{Action: action, Data: HandlerData{Input: input, Expression: expression}}
}

func (h Handler) String() string {
	if h.Func != nil {
		return "func"
	}
	return h.Action
}

// Handlers is one handler or an ordered list. Only lists honor Pass and
// Terminate.
type Handlers struct {
	items []Handler
	list  bool
}

// One wraps a single handler.
func One(h Handler) Handlers {
	return Handlers{items: []Handler{h}}
}

// List wraps an ordered handler list.
func List(hs ...Handler) Handlers {
	return Handlers{items: hs, list: true}
}

// IsList reports whether the handlers were declared as a list.
func (h Handlers) IsList() bool { return h.list }

// Items returns the handlers in order.
func (h Handlers) Items() []Handler { return h.items }

// UnmarshalYAML accepts a single handler mapping or a sequence of them.
func (h *Handlers) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var items []Handler
		if err := node.Decode(&items); err != nil {
			return err
		}
		*h = List(items...)
	case yaml.MappingNode:
		var one Handler
		if err := node.Decode(&one); err != nil {
			return err
		}
		*h = One(one)
	default:
		return fmt.Errorf("state: line %d: handlers must be a mapping or a sequence", node.Line)
	}
	return nil
}

// HandlerEntry binds handlers to an event name.
type HandlerEntry struct {
	Event    string   `yaml:"event"`
	Handlers Handlers `yaml:"handlers"`
}

// HandlerTable lists handler entries. Several entries may share an event;
// each runs with its own Event payload.
type HandlerTable []HandlerEntry

// On appends an entry and returns the table for chaining.
func (t HandlerTable) On(event string, hs Handlers) HandlerTable {
	return append(t, HandlerEntry{Event: event, Handlers: hs})
}

// UnmarshalYAML accepts a sequence of {event, handlers} entries or a mapping
// from event name to handlers. Mapping order is preserved.
func (t *HandlerTable) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var entries []HandlerEntry
		if err := node.Decode(&entries); err != nil {
			return err
		}
		*t = entries
	case yaml.MappingNode:
		out := make(HandlerTable, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var hs Handlers
			if err := node.Content[i+1].Decode(&hs); err != nil {
				return err
			}
			out = append(out, HandlerEntry{Event: node.Content[i].Value, Handlers: hs})
		}
		*t = out
	default:
		return fmt.Errorf("state: line %d: handler table must be a mapping or a sequence", node.Line)
	}
	return nil
}

// LoadHandlerTable parses a YAML handler table.
func LoadHandlerTable(data []byte) (HandlerTable, error) {
	var table HandlerTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse handler table: %w", err)
	}
	return table, nil
}
