/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/objbase/apis"
	"dirpx.dev/objbase/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping containers)
	// does not contain a named type (e.g., anonymous struct, func, interface{}).
	ErrReflectTypeNotNamed = errors.New("reflect: type has no name")
)

// Normalize unwraps containers according to cfg.MaxUnwrap and returns the
// nearest named inner type, or an error if none is found.
//
// Unwrapping policy:
//   - ptr/slice/array/chan -> Elem()
//   - default: if t.Name() != "", return t; otherwise ErrReflectTypeNotNamed.
//
// Maps are not unwrapped: a map is never a class.
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t != nil && i < maxUnwrap; i++ {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		default:
			if t.Name() != "" {
				return t, nil
			}
			return nil, ErrReflectTypeNotNamed
		}
	}

	// After reaching max depth, ensure we ended on a named type.
	if t != nil && t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}

// FirstEmbedded returns the first anonymous, value-embedded (not pointer)
// struct field of t for which match reports true. t must be a struct type.
func FirstEmbedded(t reflect.Type, match func(reflect.StructField) bool) (reflect.StructField, bool) {
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous || f.Type.Kind() != reflect.Struct {
			continue
		}
		if match(f) {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

// EmbeddedPath returns the field index path from struct type from to a
// value-embedded field of type to, searching breadth first so the
// shallowest embedding wins. It returns (nil, true) when from == to.
func EmbeddedPath(from, to reflect.Type) ([]int, bool) {
	if from == nil || to == nil {
		return nil, false
	}
	if from == to {
		return nil, true
	}
	type node struct {
		t    reflect.Type
		path []int
	}
	queue := []node{{t: from}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.t.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < n.t.NumField(); i++ {
			f := n.t.Field(i)
			if !f.Anonymous || f.Type.Kind() != reflect.Struct {
				continue
			}
			p := make([]int, len(n.path)+1)
			copy(p, n.path)
			p[len(n.path)] = i
			if f.Type == to {
				return p, true
			}
			queue = append(queue, node{t: f.Type, path: p})
		}
	}
	return nil, false
}
