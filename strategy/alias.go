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
)

// NewAliasStrategy creates an apis.Strategy that consults the alias table of
// an apis.Registry.
func NewAliasStrategy(reg apis.Registry) apis.Strategy {
	return &aliasStrategy{reg: reg}
}

// aliasStrategy consults explicit type aliases (reflection-free lookup).
type aliasStrategy struct {
	reg apis.Registry
}

// Ensure aliasStrategy implements apis.Strategy.
var _ apis.Strategy = (*aliasStrategy)(nil)

// TryResolveType looks up t in the registry's alias table.
func (s *aliasStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || s.reg == nil {
		return "", false
	}
	return s.reg.LookupAlias(t)
}
