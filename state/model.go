package state

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/phanxgames/avg"
)

var (
	// ErrUnknownField is returned when a field is not declared in the schema.
	ErrUnknownField = errors.New("state: unknown field")
	// ErrTypeMismatch is returned when a value does not fit a field's kind.
	ErrTypeMismatch = errors.New("state: type mismatch")
	// ErrUnknownAction is returned when a model has no action of that name.
	ErrUnknownAction = errors.New("state: unknown action")
	// ErrProtected is returned when a field is set outside of an action.
	ErrProtected = errors.New("state: cannot modify a model outside of an action")
)

// FieldKind is the type of a schema field.
type FieldKind uint8

const (
	FieldString FieldKind = iota
	FieldBool
	FieldNumber
	// FieldFrozen holds a composite value that is replaced wholesale.
	FieldFrozen
)

func (k FieldKind) String() string {
	switch k {
	case FieldString:
		return "string"
	case FieldBool:
		return "bool"
	case FieldNumber:
		return "number"
	case FieldFrozen:
		return "frozen"
	}
	return "unknown"
}

// ActionFunc mutates a model. Model.Set is only allowed while an action runs.
type ActionFunc func(ctx context.Context, m *Model, arg any) error

// ViewFunc derives a value from a model.
type ViewFunc func(m *Model) any

// ModelType is a schema plus the actions and views its instances share.
type ModelType struct {
	name     string
	fields   map[string]FieldKind
	defaults map[string]any
	actions  map[string]ActionFunc
	views    map[string]ViewFunc
}

// NewModelType derives a model type from schema. Strings, bools and numbers
// become typed fields; any other value becomes a frozen field. The schema
// values are the defaults.
func NewModelType(name string, schema map[string]any, actions map[string]ActionFunc, views map[string]ViewFunc) *ModelType {
	t := &ModelType{
		name:     name,
		fields:   make(map[string]FieldKind, len(schema)),
		defaults: make(map[string]any, len(schema)),
		actions:  maps.Clone(actions),
		views:    maps.Clone(views),
	}
	for field, v := range schema {
		kind := kindOf(v)
		t.fields[field] = kind
		if kind == FieldNumber {
			v, _ = toNumber(v)
		}
		t.defaults[field] = v
	}
	return t
}

// Name returns the type's name.
func (t *ModelType) Name() string { return t.name }

// Fields returns the schema field names, sorted.
func (t *ModelType) Fields() []string {
	return slices.Sorted(maps.Keys(t.fields))
}

// Kind returns the kind of field.
func (t *ModelType) Kind(field string) (FieldKind, bool) {
	k, ok := t.fields[field]
	return k, ok
}

// Create instantiates the type. values override the schema defaults.
func (t *ModelType) Create(values map[string]any) (*Model, error) {
	m := &Model{typ: t, values: maps.Clone(t.defaults)}
	if m.values == nil {
		m.values = make(map[string]any)
	}
	for field, v := range values {
		cv, err := t.coerce(field, v)
		if err != nil {
			return nil, err
		}
		m.values[field] = cv
	}
	return m, nil
}

func (t *ModelType) coerce(field string, v any) (any, error) {
	kind, ok := t.fields[field]
	if !ok {
		return nil, fmt.Errorf("%w %q on %s", ErrUnknownField, field, t.name)
	}
	switch kind {
	case FieldString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case FieldBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case FieldNumber:
		if f, ok := toNumber(v); ok {
			return f, nil
		}
	case FieldFrozen:
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s.%s is %s, got %T", ErrTypeMismatch, t.name, field, kind, v)
}

// Change describes one field update.
type Change struct {
	Field    string
	Old, New any
}

type subscriber struct {
	id uint32
	fn func(Change)
}

// Model is a reactive instance of a ModelType.
type Model struct {
	typ         *ModelType
	values      map[string]any
	subs        []subscriber
	nextID      uint32
	actionDepth int
}

// Type returns the model's type.
func (m *Model) Type() *ModelType { return m.typ }

// Get returns the value of field.
func (m *Model) Get(field string) (any, bool) {
	v, ok := m.values[field]
	return v, ok
}

// String returns a string field, or "" if it is missing or not a string.
func (m *Model) String(field string) string {
	s, _ := m.values[field].(string)
	return s
}

// Number returns a number field, or 0.
func (m *Model) Number(field string) float64 {
	f, _ := m.values[field].(float64)
	return f
}

// Bool returns a bool field, or false.
func (m *Model) Bool(field string) bool {
	b, _ := m.values[field].(bool)
	return b
}

// Set assigns field and notifies subscribers when the value changed. It must
// be called from inside an action.
func (m *Model) Set(field string, v any) error {
	if m.actionDepth == 0 {
		return fmt.Errorf("%w: %s.%s", ErrProtected, m.typ.name, field)
	}
	return m.set(field, v)
}

func (m *Model) set(field string, v any) error {
	cv, err := m.typ.coerce(field, v)
	if err != nil {
		return err
	}
	old := m.values[field]
	if avg.DeepEqual(old, cv) {
		return nil
	}
	m.values[field] = cv
	m.notify(Change{Field: field, Old: old, New: cv})
	return nil
}

// HasAction reports whether the model's type declares action.
func (m *Model) HasAction(action string) bool {
	_, ok := m.typ.actions[action]
	return ok
}

// Call runs action with arg.
func (m *Model) Call(ctx context.Context, action string, arg any) error {
	fn, ok := m.typ.actions[action]
	if !ok {
		return fmt.Errorf("%w %q on %s", ErrUnknownAction, action, m.typ.name)
	}
	m.actionDepth++
	defer func() { m.actionDepth-- }()
	return fn(ctx, m, arg)
}

// View evaluates a derived value.
func (m *Model) View(name string) (any, bool) {
	fn, ok := m.typ.views[name]
	if !ok {
		return nil, false
	}
	return fn(m), true
}

// Values returns a copy of every field value.
func (m *Model) Values() map[string]any {
	return maps.Clone(m.values)
}

// Subscribe calls fn after every field change. The returned func
// unsubscribes.
func (m *Model) Subscribe(fn func(Change)) func() {
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	return func() {
		m.subs = slices.DeleteFunc(m.subs, func(s subscriber) bool { return s.id == id })
	}
}

// React calls fn with the new value each time field changes.
func (m *Model) React(field string, fn func(value any)) func() {
	return m.Subscribe(func(c Change) {
		if c.Field == field {
			fn(c.New)
		}
	})
}

// When calls fn once, as soon as pred holds for field's value. If it holds
// already, fn runs immediately.
func (m *Model) When(field string, pred func(value any) bool, fn func()) func() {
	if pred(m.values[field]) {
		fn()
		return func() {}
	}
	var stop func()
	done := false
	stop = m.Subscribe(func(c Change) {
		if done || c.Field != field || !pred(c.New) {
			return
		}
		done = true
		stop()
		fn()
	})
	return stop
}

func (m *Model) notify(c Change) {
	for _, s := range slices.Clone(m.subs) {
		s.fn(c)
	}
}

// restore assigns values without the action check.
func (m *Model) restore(values map[string]any) error {
	for _, field := range slices.Sorted(maps.Keys(values)) {
		if _, ok := m.typ.fields[field]; !ok {
			continue
		}
		if err := m.set(field, values[field]); err != nil {
			return err
		}
	}
	return nil
}

func kindOf(v any) FieldKind {
	switch v.(type) {
	case string:
		return FieldString
	case bool:
		return FieldBool
	}
	if _, ok := toNumber(v); ok {
		return FieldNumber
	}
	return FieldFrozen
}

func toNumber(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
