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

package strategy

import (
	"reflect"

	"dirpx.dev/objbase/apis"
	uref "dirpx.dev/objbase/utils/reflect"
)

// TagKey is the struct tag key naming a class on its embedded base field:
//
//	type Dog struct {
//		Animal `class:"zoo.Dog"`
//	}
const TagKey = "class"

var objectType = reflect.TypeFor[apis.Object]()

// NewTagStrategy creates an apis.Strategy that reads the class name from the
// TagKey tag of the first embedded participating field.
func NewTagStrategy() apis.Strategy {
	return tagStrategy{}
}

type tagStrategy struct{}

var _ apis.Strategy = tagStrategy{}

// TryResolveType returns the tag value when present. Only the first
// participating embedded field is considered: it is the one that carries the
// object base.
func (tagStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	base, err := uref.Normalize(t, cfg)
	if err != nil {
		return "", false
	}
	f, ok := BaseField(base)
	if !ok {
		return "", false
	}
	name := f.Tag.Get(TagKey)
	return name, name != ""
}

// BaseField returns the first value-embedded field of struct type t whose
// pointer implements apis.Object.
func BaseField(t reflect.Type) (reflect.StructField, bool) {
	return uref.FirstEmbedded(t, func(f reflect.StructField) bool {
		return reflect.PointerTo(f.Type).Implements(objectType)
	})
}
