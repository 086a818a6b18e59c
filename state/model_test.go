package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterType() *ModelType {
	return NewModelType("counter",
		map[string]any{
			"label": "clicks",
			"count": 0,
			"open":  false,
			"tags":  []string{"a"},
		},
		map[string]ActionFunc{
			"add": func(ctx context.Context, m *Model, arg any) error {
				n, _ := toNumber(arg)
				return m.Set("count", m.Number("count")+n)
			},
			"rename": func(ctx context.Context, m *Model, arg any) error {
				return m.Set("label", arg)
			},
		},
		map[string]ViewFunc{
			"double": func(m *Model) any { return m.Number("count") * 2 },
		},
	)
}

func TestModelType_FieldKinds(t *testing.T) {
	typ := counterType()
	cases := map[string]FieldKind{
		"label": FieldString,
		"count": FieldNumber,
		"open":  FieldBool,
		"tags":  FieldFrozen,
	}
	for field, want := range cases {
		got, ok := typ.Kind(field)
		require.True(t, ok, field)
		assert.Equal(t, want, got, field)
	}
	assert.Equal(t, []string{"count", "label", "open", "tags"}, typ.Fields())
}

func TestModel_NumbersAreFloat64(t *testing.T) {
	m, err := counterType().Create(map[string]any{"count": int32(7)})
	require.NoError(t, err)
	v, ok := m.Get("count")
	require.True(t, ok)
	assert.Equal(t, 7.0, v)
}

func TestModel_CreateRejectsBadValues(t *testing.T) {
	_, err := counterType().Create(map[string]any{"missing": 1})
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = counterType().Create(map[string]any{"label": 3})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestModel_SetOutsideActionIsProtected(t *testing.T) {
	m, err := counterType().Create(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Set("count", 1), ErrProtected)
	assert.Equal(t, 0.0, m.Number("count"))
}

func TestModel_CallNotifiesSubscribers(t *testing.T) {
	m, err := counterType().Create(nil)
	require.NoError(t, err)

	var changes []Change
	stop := m.Subscribe(func(c Change) { changes = append(changes, c) })

	require.NoError(t, m.Call(context.Background(), "add", 2))
	require.NoError(t, m.Call(context.Background(), "add", 0))
	require.Len(t, changes, 1, "unchanged values do not notify")
	assert.Equal(t, Change{Field: "count", Old: 0.0, New: 2.0}, changes[0])

	stop()
	require.NoError(t, m.Call(context.Background(), "add", 1))
	assert.Len(t, changes, 1)
}

func TestModel_CallErrors(t *testing.T) {
	m, err := counterType().Create(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Call(context.Background(), "nope", nil), ErrUnknownAction)
	assert.ErrorIs(t, m.Call(context.Background(), "rename", 5), ErrTypeMismatch)
}

func TestModel_View(t *testing.T) {
	m, err := counterType().Create(map[string]any{"count": 4})
	require.NoError(t, err)
	v, ok := m.View("double")
	require.True(t, ok)
	assert.Equal(t, 8.0, v)

	_, ok = m.View("missing")
	assert.False(t, ok)
}

func TestModel_ReactAndWhen(t *testing.T) {
	m, err := counterType().Create(nil)
	require.NoError(t, err)
	ctx := context.Background()

	var seen []any
	m.React("count", func(v any) { seen = append(seen, v) })

	fired := 0
	m.When("count", func(v any) bool { return v.(float64) >= 3 }, func() { fired++ })

	require.NoError(t, m.Call(ctx, "add", 1))
	require.NoError(t, m.Call(ctx, "rename", "x"))
	require.NoError(t, m.Call(ctx, "add", 2))
	require.NoError(t, m.Call(ctx, "add", 1))

	assert.Equal(t, []any{1.0, 3.0, 4.0}, seen)
	assert.Equal(t, 1, fired)
}

func TestModel_WhenAlreadyTrue(t *testing.T) {
	m, err := counterType().Create(map[string]any{"open": true})
	require.NoError(t, err)
	fired := false
	m.When("open", func(v any) bool { return v == true }, func() { fired = true })
	assert.True(t, fired)
}

func TestModel_FrozenReplacedWholesale(t *testing.T) {
	typ := NewModelType("frozen", map[string]any{"tags": []string{"a"}},
		map[string]ActionFunc{
			"retag": func(ctx context.Context, m *Model, arg any) error { return m.Set("tags", arg) },
		}, nil)
	m, err := typ.Create(nil)
	require.NoError(t, err)
	require.NoError(t, m.Call(context.Background(), "retag", []string{"b", "c"}))
	v, _ := m.Get("tags")
	assert.Equal(t, []string{"b", "c"}, v)
}
