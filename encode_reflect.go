// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package pbjson

import (
	"reflect"
	"strings"
)

// encodeStructValue encodes a Go struct as an Object, honoring
// `pbjson:"name,omitempty"` / `pbjson:"-"` struct tags.
func (st *encodeState) encodeStructValue(path string, rv reflect.Value) error {
	t := rv.Type()
	pairs := make(Pairs, 0, rv.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			// Unexported field.
			continue
		}
		name := field.Name
		fv := rv.Field(i)
		if tag, ok := field.Tag.Lookup("pbjson"); ok {
			tok := strings.Split(tag, ",")
			if tok[0] == "-" {
				continue
			}
			if tok[0] != "" {
				name = tok[0]
			}
			if len(tok) == 2 && tok[1] == "omitempty" && isEmptyValue(fv) {
				continue
			}
		}
		pairs = append(pairs, Pair{Key: name, Value: fv.Interface()})
	}
	return st.encodeObject(path, pairs)
}

// isEmptyValue reports whether v is the zero value of its kind for
// omitempty purposes: false, 0, a nil pointer/interface, or an array,
// slice, map, or string of length zero.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
