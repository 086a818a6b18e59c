package state

import (
	"log/slog"
	"maps"
	"slices"
)

// StateTree maps instance names to live models. A name holds at most one
// model; appending under a taken name replaces it. The zero value is an
// empty tree logging to slog.Default().
type StateTree struct {
	models map[string]*Model
	logger *slog.Logger
}

// NewStateTree creates an empty tree. A nil logger uses slog.Default().
func NewStateTree(logger *slog.Logger) *StateTree {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateTree{
		models: make(map[string]*Model),
		logger: logger,
	}
}

// Append registers m under key, replacing and warning about any previous
// instance.
func (t *StateTree) Append(key string, m *Model) {
	if t.models == nil {
		t.models = make(map[string]*Model)
	}
	if _, exists := t.models[key]; exists {
		t.log().Warn("state instance exists and has been reset", "component", "state tree", "name", key)
	}
	t.models[key] = m
}

func (t *StateTree) log() *slog.Logger {
	if t.logger == nil {
		return slog.Default()
	}
	return t.logger
}

// GetByName returns the model registered under key.
func (t *StateTree) GetByName(key string) (*Model, bool) {
	m, ok := t.models[key]
	return m, ok
}

// Remove unregisters key and reports whether it was present.
func (t *StateTree) Remove(key string) bool {
	if _, ok := t.models[key]; !ok {
		return false
	}
	delete(t.models, key)
	return true
}

// Keys returns the registered names, sorted.
func (t *StateTree) Keys() []string {
	return slices.Sorted(maps.Keys(t.models))
}

// Len returns the number of registered models.
func (t *StateTree) Len() int {
	return len(t.models)
}
