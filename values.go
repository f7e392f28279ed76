package settings

import (
	"reflect"
	"unsafe"
)

// settable returns a view of v that can be read and written even when v
// was reached through an unexported field. v must be addressable.
func settable(v reflect.Value) reflect.Value {
	if v.CanSet() || !v.CanAddr() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

// addressable returns v itself when it is addressable and settable, or an
// addressable copy otherwise (map keys and values, interface contents).
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return settable(v)
	}
	tmp := reflect.New(v.Type()).Elem()
	tmp.Set(v)
	return tmp
}

// fresh returns a new zero value of t for decoding into.
func fresh(t reflect.Type) reflect.Value {
	return reflect.New(t).Elem()
}
