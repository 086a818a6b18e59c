package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTree_SaveLoad(t *testing.T) {
	tree, story, _ := storyTree(t)
	require.NoError(t, story.Call(context.Background(), "advance", nil))
	require.NoError(t, story.Call(context.Background(), "advance", nil))

	data, err := tree.Save()
	require.NoError(t, err)

	require.NoError(t, story.Call(context.Background(), "advance", nil))
	require.Equal(t, 3.0, story.Number("line"))

	var changes []Change
	story.Subscribe(func(c Change) { changes = append(changes, c) })

	require.NoError(t, tree.Load(data))
	assert.Equal(t, 2.0, story.Number("line"))
	assert.Equal(t, []Change{{Field: "line", Old: 3.0, New: 2.0}}, changes)

	settings, ok := tree.GetByName("settings")
	require.True(t, ok)
	assert.Equal(t, 2.0, settings.Number("speed"))
}

func TestStateTree_RestoreSkipsUnknown(t *testing.T) {
	tree, story, _ := storyTree(t)
	err := tree.Restore(Snapshot{
		"ghost": {"line": 9},
		"story": {"line": 5, "extra": true},
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, story.Number("line"))
}

func TestStateTree_RestoreTypeMismatch(t *testing.T) {
	tree, _, _ := storyTree(t)
	err := tree.Restore(Snapshot{"story": {"line": "nine"}})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestStateTree_LoadGarbage(t *testing.T) {
	tree, _, _ := storyTree(t)
	assert.Error(t, tree.Load([]byte{0xc1}))
}
