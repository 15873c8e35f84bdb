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

package object

import (
	"reflect"

	"dirpx.dev/objbase"
	"dirpx.dev/objbase/classid"
	uref "dirpx.dev/objbase/utils/reflect"
)

// Cast returns a new, retained handle to the object behind r typed as To.
// To is either the most-derived type or a pointer to an embedded ancestor.
// It fails, without panicking, when the object's class is not a kind of
// To's class.
func Cast[To, From Object](r Ref[From]) (Ref[To], bool) {
	if !r.ok {
		return Ref[To]{}, false
	}
	target := objbase.ClassOf[To]()
	if target == nil || !r.Class().IsKindOf(target) {
		return Ref[To]{}, false
	}

	self := r.obj.objectBase().self
	if to, ok := self.(To); ok {
		return Wrap(to), true
	}
	to, ok := embedded[To](self)
	if !ok {
		return Ref[To]{}, false
	}
	return Wrap(to), true
}

// embedded finds the ancestor of type To inside the struct self points to.
func embedded[To Object](self Object) (To, bool) {
	var zero To
	tt := reflect.TypeFor[To]()
	sv := reflect.ValueOf(self)
	if tt.Kind() != reflect.Pointer || sv.Kind() != reflect.Pointer {
		return zero, false
	}
	path, ok := uref.EmbeddedPath(sv.Type().Elem(), tt.Elem())
	if !ok {
		return zero, false
	}
	to, ok := sv.Elem().FieldByIndex(path).Addr().Interface().(To)
	return to, ok
}

// CastClass returns a new, retained handle to the most-derived object
// behind r when its class is a kind of c.
func CastClass[T Object](r Ref[T], c *classid.Class) (Ref[Object], bool) {
	if !r.ok || !r.Class().IsKindOf(c) {
		return Ref[Object]{}, false
	}
	return Wrap(r.obj.objectBase().self), true
}
