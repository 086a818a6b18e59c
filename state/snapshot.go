package state

import (
	"fmt"
	"maps"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is the field values of every model in a tree, by key.
type Snapshot map[string]map[string]any

// Snapshot captures the current values of every registered model.
func (t *StateTree) Snapshot() Snapshot {
	s := make(Snapshot, len(t.models))
	for key, m := range t.models {
		s[key] = m.Values()
	}
	return s
}

// Restore applies s to the registered models. Keys absent from the tree and
// fields absent from a schema are skipped. Subscribers see each change.
func (t *StateTree) Restore(s Snapshot) error {
	for _, key := range slices.Sorted(maps.Keys(s)) {
		m, ok := t.models[key]
		if !ok {
			continue
		}
		if err := m.restore(s[key]); err != nil {
			return fmt.Errorf("restore %s: %w", key, err)
		}
	}
	return nil
}

// Save encodes a snapshot of the tree with msgpack.
func (t *StateTree) Save() ([]byte, error) {
	packed, err := msgpack.Marshal(t.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return packed, nil
}

// Load decodes data produced by Save and restores it.
func (t *StateTree) Load(data []byte) error {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return t.Restore(s)
}
