// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package typeinfo

import (
	"iter"
	"reflect"
)

// Elements returns the elements of v if it is a sequence: a slice, an array,
// a pointer to either, or an iter.Seq[any]. The boolean is false for every
// other kind of value, including nil and maps. Byte slices are treated as
// scalar values.
func Elements(v any) ([]any, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	case []byte:
		return nil, false
	case iter.Seq[any]:
		var elems []any
		for e := range v {
			elems = append(elems, e)
		}
		return elems, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return nil, false
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
	case reflect.Array:
	default:
		return nil, false
	}

	elems := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elems = append(elems, rv.Index(i).Interface())
	}
	return elems, true
}

// IsNil reports whether v is nil or holds a nil pointer, map, slice,
// function, channel or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
