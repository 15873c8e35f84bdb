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

package objbase

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/objbase/apis"
	"dirpx.dev/objbase/builder"
	"dirpx.dev/objbase/config"
)

func init() {
	b := builder.New()
	cfg := config.DefaultConfig()
	reg := b.BuildRegistry(cfg, nil)
	st.Store(&state{cfg: cfg, reg: reg, res: b.BuildResolver(cfg, reg, nil), bld: b, classes: new(sync.Map)})
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("objbase: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("objbase: builder returned nil resolver")
)

// buildMu serializes writers so we never publish partially-built snapshots.
var buildMu sync.Mutex

// st is the global snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store; never
// mutate fields of a published state.
type state struct {
	cfg apis.Config
	reg apis.Registry
	res apis.Resolver
	bld apis.Builder
	// preg and pres mark layers set explicitly; pinned layers are not
	// rebuilt when cfg or bld change.
	preg bool
	pres bool
	// classes caches identities resolved through reg and res. Every
	// snapshot that replaces either layer gets a fresh cache.
	classes *sync.Map // map[reflect.Type]*classid.Class
}

// rebuild derives the next snapshot from old with cfg and bld applied,
// rebuilding every layer that is not pinned. Callers hold buildMu.
func rebuild(old *state, cfg apis.Config, bld apis.Builder) *state {
	next := *old
	next.cfg, next.bld = cfg, bld
	next.classes = new(sync.Map)
	if !next.preg {
		next.reg = bld.BuildRegistry(cfg, old.reg)
	}
	if !next.pres {
		next.res = bld.BuildResolver(cfg, next.reg, old.res)
	}
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	return &next
}

// update applies fn to a copy of the current snapshot under buildMu and
// publishes the result.
func update(fn func(old *state) *state) {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(fn(st.Load()))
}

// SetAll replaces every global component in one step. Nil arguments leave
// the builder and config unchanged and rebuild registry and resolver from
// the builder; explicit registry and resolver are pinned.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	update(func(old *state) *state {
		ncfg := old.cfg
		if cfg != nil {
			ncfg = *cfg
		}
		nbld := old.bld
		if bld != nil {
			nbld = bld
		}
		base := *old
		base.reg, base.res = reg, res
		base.preg, base.pres = reg != nil, res != nil
		if reg == nil {
			// Migrate from the previous registry.
			base.reg = old.reg
		}
		if res == nil {
			base.res = old.res
		}
		return rebuild(&base, ncfg, nbld)
	})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the global configuration and rebuilds the layers that
// are not pinned.
func SetConfig(cfg apis.Config) {
	update(func(old *state) *state {
		return rebuild(old, cfg, old.bld)
	})
}

// Registry returns the global class registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs reg as the global registry and pins it. The resolver
// is rebuilt over reg unless it is pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(func(old *state) *state {
		next := *old
		next.reg, next.preg = reg, true
		return rebuild(&next, old.cfg, old.bld)
	})
}

// Resolver returns the global class name resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs res as the global resolver and pins it.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(old *state) *state {
		next := *old
		next.res, next.pres = res, true
		next.classes = new(sync.Map)
		return &next
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder installs b and rebuilds the layers that are not pinned.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(old *state) *state {
		return rebuild(old, old.cfg, b)
	})
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool { return st.Load().preg }

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool { return st.Load().pres }

// UnpinRegistry lets the next rebuild replace the global registry.
func UnpinRegistry() {
	update(func(old *state) *state {
		next := *old
		next.preg = false
		return &next
	})
}

// UnpinResolver lets the next rebuild replace the global resolver.
func UnpinResolver() {
	update(func(old *state) *state {
		next := *old
		next.pres = false
		return &next
	})
}

// LoadConfig reads a TOML configuration file, installs it with SetConfig and
// configures logging from it.
func LoadConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	SetConfig(cfg)
	config.ConfigureLogging(cfg)
	return nil
}
