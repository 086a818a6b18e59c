package avg

import (
	"reflect"
	"unsafe"
)

// DeepEqual reports whether a and b are structurally equal. It follows
// reflect.DeepEqual except that two non-nil funcs are never equal and
// pointers to the same address are equal without descending.
func DeepEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	return deepValueEqual(va, vb, make(map[visit]bool))
}

type visit struct {
	a1, a2 unsafe.Pointer
	typ    reflect.Type
}

func deepValueEqual(v1, v2 reflect.Value, visited map[visit]bool) bool {
	if !v1.IsValid() || !v2.IsValid() {
		return v1.IsValid() == v2.IsValid()
	}
	if v1.Type() != v2.Type() {
		return false
	}

	switch v1.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		if v1.IsNil() || v2.IsNil() {
			return v1.IsNil() == v2.IsNil()
		}
		if v1.Kind() != reflect.Slice && v1.UnsafePointer() == v2.UnsafePointer() {
			return true
		}
		if v1.Kind() != reflect.Slice {
			k := visit{v1.UnsafePointer(), v2.UnsafePointer(), v1.Type()}
			if visited[k] {
				return true
			}
			visited[k] = true
		}
	}

	switch v1.Kind() {
	case reflect.Bool:
		return v1.Bool() == v2.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v1.Int() == v2.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v1.Uint() == v2.Uint()
	case reflect.Float32, reflect.Float64:
		return v1.Float() == v2.Float()
	case reflect.Complex64, reflect.Complex128:
		return v1.Complex() == v2.Complex()
	case reflect.String:
		return v1.String() == v2.String()
	case reflect.Func:
		return v1.IsNil() && v2.IsNil()
	case reflect.Chan, reflect.UnsafePointer:
		return v1.Pointer() == v2.Pointer()
	case reflect.Interface:
		if v1.IsNil() || v2.IsNil() {
			return v1.IsNil() == v2.IsNil()
		}
		return deepValueEqual(v1.Elem(), v2.Elem(), visited)
	case reflect.Pointer:
		return deepValueEqual(v1.Elem(), v2.Elem(), visited)
	case reflect.Array:
		for i := 0; i < v1.Len(); i++ {
			if !deepValueEqual(v1.Index(i), v2.Index(i), visited) {
				return false
			}
		}
		return true
	case reflect.Slice:
		if v1.Len() != v2.Len() {
			return false
		}
		for i := 0; i < v1.Len(); i++ {
			if !deepValueEqual(v1.Index(i), v2.Index(i), visited) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := 0; i < v1.NumField(); i++ {
			if !deepValueEqual(v1.Field(i), v2.Field(i), visited) {
				return false
			}
		}
		return true
	case reflect.Map:
		if v1.Len() != v2.Len() {
			return false
		}
		iter := v1.MapRange()
		for iter.Next() {
			val2 := v2.MapIndex(iter.Key())
			if !val2.IsValid() || !deepValueEqual(iter.Value(), val2, visited) {
				return false
			}
		}
		return true
	}
	return false
}
