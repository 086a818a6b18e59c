package state

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
)

// EmitFunc publishes a declared event through a connected handler table.
// Undeclared names are ignored. The first handler error aborts the emit and
// is returned.
type EmitFunc func(ctx context.Context, name string, data map[string]any) error

// Event is the payload one handler-table entry passes along its handlers.
type Event struct {
	Name string
	Data map[string]any

	passed     bool
	terminated bool
}

// Pass skips the next handler in the list.
func (e *Event) Pass() { e.passed = true }

// Terminate skips every remaining handler in the list.
func (e *Event) Terminate() { e.terminated = true }

// Passed reports whether Pass was called and not yet consumed.
func (e *Event) Passed() bool { return e.passed }

// Terminated reports whether Terminate was called.
func (e *Event) Terminated() bool { return e.terminated }

type emitter struct {
	tree   *StateTree
	events map[string]bool
	table  HandlerTable
	logger *slog.Logger
}

func newEmitter(tree *StateTree, events []string, table HandlerTable) *emitter {
	e := &emitter{
		tree:   tree,
		events: make(map[string]bool, len(events)),
		table:  table,
		logger: tree.log().With("component", "emit"),
	}
	for _, name := range events {
		e.events[name] = true
	}
	return e
}

func (e *emitter) emit(ctx context.Context, name string, data map[string]any) error {
	if !e.events[name] {
		return nil
	}
	for _, entry := range e.table {
		if entry.Event != name {
			continue
		}
		evt := &Event{Name: name, Data: maps.Clone(data)}
		if evt.Data == nil {
			evt.Data = map[string]any{}
		}
		if err := e.run(ctx, entry.Handlers, evt); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) run(ctx context.Context, hs Handlers, evt *Event) error {
	if !hs.list {
		if len(hs.items) == 0 {
			return nil
		}
		return e.invoke(ctx, hs.items[0], evt)
	}
	for _, h := range hs.items {
		if evt.passed {
			evt.passed = false
			continue
		}
		if err := e.invoke(ctx, h, evt); err != nil {
			return err
		}
		if evt.terminated {
			break
		}
	}
	return nil
}

func (e *emitter) invoke(ctx context.Context, h Handler, evt *Event) error {
	if h.Func != nil {
		return h.Func(ctx, evt)
	}
	key, method, ok := strings.Cut(h.Action, ".")
	if !ok || key == "" || method == "" {
		e.logger.Warn("malformed handler action", "action", h.Action, "event", evt.Name)
		return nil
	}
	m, ok := e.tree.GetByName(key)
	if !ok {
		return nil
	}
	if !m.HasAction(method) {
		e.logger.Warn("action not found", "action", h.Action, "event", evt.Name)
		return nil
	}
	arg, err := e.evaluate(h.Data, evt)
	if err != nil {
		return fmt.Errorf("state: %s handler %s: %w", evt.Name, h.Action, err)
	}
	return m.Call(ctx, method, arg)
}
