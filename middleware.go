package avg

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// ErrNextCalledTwice is returned when a middleware calls next more than once.
var ErrNextCalledTwice = errors.New("avg: next() called multiple times")

// MiddlewareFunc handles a posted message. Calling next runs the rest of the
// chain; not calling it stops the chain.
type MiddlewareFunc func(ctx context.Context, data any, next func() error) error

type middlewareEntry struct {
	id uint32
	fn MiddlewareFunc
}

// Middleware holds named middleware chains.
type Middleware struct {
	chains map[string][]middlewareEntry
	nextID uint32
	logger *slog.Logger
}

// NewMiddleware creates an empty set of chains.
func NewMiddleware(logger *slog.Logger) *Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &Middleware{
		chains: make(map[string][]middlewareEntry),
		logger: logger.With("component", "middleware"),
	}
}

// MiddlewareHandle identifies one registration made with Use.
type MiddlewareHandle struct {
	name string
	id   uint32
}

// Use appends fn to the chain called name.
func (m *Middleware) Use(name string, fn MiddlewareFunc) MiddlewareHandle {
	m.nextID++
	m.chains[name] = append(m.chains[name], middlewareEntry{id: m.nextID, fn: fn})
	return MiddlewareHandle{name: name, id: m.nextID}
}

// Unuse removes a registration. Unknown handles are logged and ignored.
func (m *Middleware) Unuse(h MiddlewareHandle) {
	chain := m.chains[h.name]
	i := slices.IndexFunc(chain, func(e middlewareEntry) bool { return e.id == h.id })
	if i < 0 {
		m.logger.Warn("Do not find the given middleware", "name", h.name)
		return
	}
	m.chains[h.name] = slices.Delete(chain, i, i+1)
}

// Len returns the number of middleware registered under name.
func (m *Middleware) Len(name string) int {
	return len(m.chains[name])
}

// Post runs the chain called name with data. final, when non-nil, runs after
// the last middleware calls next.
func (m *Middleware) Post(ctx context.Context, name string, data any, final func() error) error {
	chain := slices.Clone(m.chains[name])
	index := -1
	var dispatch func(i int) error
	dispatch = func(i int) error {
		if i <= index {
			return ErrNextCalledTwice
		}
		index = i
		if i == len(chain) {
			if final == nil {
				return nil
			}
			return final()
		}
		return chain[i].fn(ctx, data, func() error { return dispatch(i + 1) })
	}
	return dispatch(0)
}
