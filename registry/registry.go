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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/tliron/commonlog"

	"dirpx.dev/objbase/apis"
	"dirpx.dev/objbase/classid"
	"dirpx.dev/objbase/config"
	uref "dirpx.dev/objbase/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("objbase(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("objbase(registry): empty name provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a class with a different parent, or a type alias with a different name.
	ErrConflictingRegistration = errors.New("objbase(registry): conflicting registration")
)

var log = commonlog.GetLogger("objbase.registry")

// New constructs a Registry that normalizes alias types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for alias type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// classes maps a class name to its identity.
	classes sync.Map // map[string]*classid.Class
	// aliases maps a normalized reflect.Type to a class name.
	aliases sync.Map // map[reflect.Type]string
	// count tracks the number of registered classes.
	count int
}

// Register returns the identity for name, creating it under parent on first
// use. It is idempotent for the same (name, parent) pair.
func (r *registry) Register(name string, parent *classid.Class) (*classid.Class, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.classes.Load(name); ok {
		return sameParent(old.(*classid.Class), parent)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.classes.Load(name); ok {
		return sameParent(old.(*classid.Class), parent)
	}

	c := classid.New(name, parent)
	r.classes.Store(name, c)
	r.count++
	log.Debugf("registered class %s (parent %s)", name, parent)
	return c, nil
}

func sameParent(c, parent *classid.Class) (*classid.Class, error) {
	have := c.Parent()
	if have == nil && parent == nil {
		return c, nil
	}
	if have.Equal(parent) {
		return c, nil
	}
	return nil, fmt.Errorf("%w: class %s has parent %s, not %s", ErrConflictingRegistration, c.Name(), have, parent)
}

// Lookup returns the class registered under name.
func (r *registry) Lookup(name string) (*classid.Class, bool) {
	if v, ok := r.classes.Load(name); ok {
		return v.(*classid.Class), true
	}
	return nil, false
}

// Alias associates the nearest named type of t with the given class name.
// It is idempotent for the same (type,name) pair.
func (r *registry) Alias(t reflect.Type, name string) error {
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}

	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	if old, ok := r.aliases.Load(b); ok {
		if old.(string) == name {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.aliases.Load(b); ok {
		if old.(string) == name {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.aliases.Store(b, name)
	log.Debugf("aliased %s as %s", b, name)
	return nil
}

// LookupAlias returns the aliased class name for a type if present.
func (r *registry) LookupAlias(t reflect.Type) (name string, ok bool) {
	if t == nil {
		return "", false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return "", false
	}
	if v, ok := r.aliases.Load(nt); ok {
		return v.(string), true
	}
	return "", false
}

// Entries returns a snapshot for diagnostics (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.classes.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Name:  key.(string),
			Class: value.(*classid.Class),
		})
		return true
	})
	return entries
}

// Aliases returns a snapshot of the alias table (order is unspecified).
func (r *registry) Aliases() []apis.Alias {
	var out []apis.Alias
	r.aliases.Range(func(key, value any) bool {
		out = append(out, apis.Alias{Type: key.(reflect.Type), Name: value.(string)})
		return true
	})
	return out
}

// Count returns the number of registered classes.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered classes and aliases. The maps are cleared in
// place because lock-free readers load them concurrently.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes.Clear()
	r.aliases.Clear()
	r.count = 0
}
