// Package shallow compares values one level deep.
//
// Two values are shallow-equal when they are the same value, or when both are
// maps with identical key sets (or structs of the same type) whose entries are
// pairwise identical. Nested structures are compared by identity only, so a
// mutation inside a nested map or slice is never detected. Producers must return
// a fresh top-level value whenever any constituent changes.
package shallow

import (
	"reflect"
	"unsafe"
)

// Map is the open key/value form accepted by Equal.
type Map = map[string]any

// Same reports whether a and b are the identical value.
//
// Dynamically comparable values are compared with ==. Funcs compare by closure
// identity, maps and chans by header identity and slices by backing array and
// length. Same never panics.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return funcIdentity(a) == funcIdentity(b)
	}
	return sameValue(reflect.ValueOf(a), reflect.ValueOf(b))
}

// Equal reports whether a and b are shallow-equal.
func Equal(a, b any) bool {
	if Same(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	for va.Kind() == reflect.Pointer {
		if va.IsNil() || vb.IsNil() {
			return false
		}
		va, vb = va.Elem(), vb.Elem()
	}

	switch va.Kind() {
	case reflect.Map:
		if va.Len() != vb.Len() {
			return false
		}
		iter := va.MapRange()
		for iter.Next() {
			other := vb.MapIndex(iter.Key())
			if !other.IsValid() || !sameValue(iter.Value(), other) {
				return false
			}
		}
		return true
	case reflect.Struct:
		va, vb = addressable(va), addressable(vb)
		for i := 0; i < va.NumField(); i++ {
			if !sameValue(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func sameValue(va, vb reflect.Value) bool {
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}

	switch va.Kind() {
	case reflect.Interface:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return sameValue(va.Elem(), vb.Elem())
	case reflect.Func:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		fa, okA := funcOf(va)
		fb, okB := funcOf(vb)
		if okA && okB {
			return funcIdentity(fa) == funcIdentity(fb)
		}
		// read-only and not addressable, only the code pointer is reachable
		return va.Pointer() == vb.Pointer()
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.Len() == vb.Len() && va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Array:
		va, vb = addressable(va), addressable(vb)
		for i := 0; i < va.Len(); i++ {
			if !sameValue(va.Index(i), vb.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		va, vb = addressable(va), addressable(vb)
		for i := 0; i < va.NumField(); i++ {
			if !sameValue(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// addressable copies v so that its unexported fields can be read through
// their address.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() || !v.CanInterface() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

// funcOf returns the func held by v, reading unexported fields by address.
func funcOf(v reflect.Value) (any, bool) {
	if v.CanInterface() {
		return v.Interface(), true
	}
	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem().Interface(), true
	}
	return nil, false
}

type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// funcIdentity returns the closure pointer carried by an interface holding a func.
func funcIdentity(f any) unsafe.Pointer {
	return (*eface)(unsafe.Pointer(&f)).data
}
