package state

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, schema map[string]any) *Model {
	t.Helper()
	m, err := NewModelType("test", schema, nil, nil).Create(nil)
	require.NoError(t, err)
	return m
}

func TestStateTree_AppendDuplicateKeepsLastAndWarnsOnce(t *testing.T) {
	logger, rec := newRecordingLogger()
	tree := NewStateTree(logger)

	first := newTestModel(t, map[string]any{"n": 1})
	second := newTestModel(t, map[string]any{"n": 2})
	tree.Append("k", first)
	assert.Equal(t, 0, rec.count(slog.LevelWarn))

	tree.Append("k", second)
	got, ok := tree.GetByName("k")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, rec.count(slog.LevelWarn))
	assert.Equal(t, 1, tree.Len())
}

func TestStateTree_GetByNameMissing(t *testing.T) {
	tree := NewStateTree(nil)
	m, ok := tree.GetByName("nope")
	assert.False(t, ok)
	assert.Nil(t, m)
}

func TestStateTree_KeysAndRemove(t *testing.T) {
	tree := NewStateTree(nil)
	tree.Append("b", newTestModel(t, nil))
	tree.Append("a", newTestModel(t, nil))
	assert.Equal(t, []string{"a", "b"}, tree.Keys())

	assert.True(t, tree.Remove("a"))
	assert.False(t, tree.Remove("a"))
	assert.Equal(t, []string{"b"}, tree.Keys())
}

func TestStateTree_ZeroValue(t *testing.T) {
	var tree StateTree
	_, ok := tree.GetByName("missing")
	assert.False(t, ok)

	m := newTestModel(t, map[string]any{"n": 1})
	tree.Append("a", m)
	got, ok := tree.GetByName("a")
	require.True(t, ok)
	assert.Same(t, m, got)

	c := MustDefine(func(b *Binding) any { return nil }, KindPlugin, DefineOptions{Events: []string{"go"}}).
		MustConnect(&tree, ConnectOptions{To: "p"})
	assert.NoError(t, c.Emit(context.Background(), "go", nil))
}
