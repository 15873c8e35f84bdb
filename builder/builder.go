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

package builder

import (
	"cmp"
	"slices"

	"github.com/tliron/commonlog"

	"dirpx.dev/objbase/apis"
	"dirpx.dev/objbase/classid"
	"dirpx.dev/objbase/registry"
	"dirpx.dev/objbase/resolver"
	"dirpx.dev/objbase/strategy"
)

var log = commonlog.GetLogger("objbase.builder")

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds a new apis.Registry for cfg. Classes and aliases of
// prev, when given, are copied over; classes are re-registered parents first
// so every migrated parent pointer refers into the new registry.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if prev == nil {
		return nreg
	}

	entries := prev.Entries()
	slices.SortFunc(entries, func(x, y apis.Entry) int {
		return cmp.Compare(x.Class.Depth(), y.Class.Depth())
	})
	for _, e := range entries {
		var parent *classid.Class
		if p := e.Class.Parent(); p != nil {
			parent, _ = nreg.Lookup(p.Name())
		}
		if _, err := nreg.Register(e.Name, parent); err != nil {
			log.Warningf("dropping class %s during rebuild: %s", e.Name, err)
		}
	}
	for _, a := range prev.Aliases() {
		if err := nreg.Alias(a.Type, a.Name); err != nil {
			log.Warningf("dropping alias %s during rebuild: %s", a.Type, err)
		}
	}
	return nreg
}

// BuildResolver builds the default strategy chain over reg:
// alias, then struct tag, then reflection.
func (b *builder) BuildResolver(cfg apis.Config, reg apis.Registry, _ apis.Resolver) apis.Resolver {
	return resolver.New(
		strategy.NewAliasStrategy(reg),
		strategy.NewTagStrategy(),
		strategy.NewReflectStrategy(),
	)
}
