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
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/objbase/apis"
	"dirpx.dev/objbase/classid"
	"dirpx.dev/objbase/registry"
	"dirpx.dev/objbase/strategy"
	uref "dirpx.dev/objbase/utils/reflect"
)

var (
	// ErrNotParticipating is returned for types that do not embed the
	// object base and therefore have no class identity.
	ErrNotParticipating = errors.New("objbase: type does not participate in class identity")
	// ErrUnnamedClass is returned when no strategy could name a class.
	ErrUnnamedClass = errors.New("objbase: class name could not be resolved")
)

var objectType = reflect.TypeFor[apis.Object]()

// resolvedNames records the name every type was given the first time it
// was resolved. A type keeps that name for the life of the process, across
// snapshots, until ResetClasses.
var resolvedNames sync.Map // map[reflect.Type]string

// ClassOf returns the identity of T, or nil when T does not participate.
// T may be the struct type or a pointer to it.
func ClassOf[T any]() *classid.Class {
	c, _ := ClassOfType(reflect.TypeFor[T]())
	return c
}

// ClassOfValue returns the identity of the dynamic type of v.
func ClassOfValue(v any) (*classid.Class, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil value", ErrNotParticipating)
	}
	return ClassOfType(reflect.TypeOf(v))
}

// ClassOfType returns the identity of t, creating and registering it on
// first request. The parent is the identity of the first embedded
// participating field; a participating struct with no such field is a root.
func ClassOfType(t reflect.Type) (*classid.Class, error) {
	s := st.Load()
	return classOf(s, t)
}

func classOf(s *state, t reflect.Type) (*classid.Class, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNotParticipating)
	}
	base, err := uref.Normalize(t, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotParticipating, t, err)
	}
	if v, ok := s.classes.Load(base); ok {
		return v.(*classid.Class), nil
	}

	if base.Kind() != reflect.Struct || !reflect.PointerTo(base).Implements(objectType) {
		return nil, fmt.Errorf("%w: %s", ErrNotParticipating, base)
	}

	var parent *classid.Class
	if f, ok := strategy.BaseField(base); ok {
		if parent, err = classOf(s, f.Type); err != nil {
			return nil, err
		}
	}

	var name string
	if prev, ok := resolvedNames.Load(base); ok {
		name = prev.(string)
	} else {
		name = s.res.ResolveType(base, s.cfg)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnnamedClass, base)
	}
	c, err := s.reg.Register(name, parent)
	if err != nil {
		return nil, fmt.Errorf("objbase: class of %s: %w", base, err)
	}

	resolvedNames.LoadOrStore(base, c.Name())
	v, _ := s.classes.LoadOrStore(base, c)
	return v.(*classid.Class), nil
}

// DefineClass registers an identity that has no Go type behind it.
func DefineClass(name string, parent *classid.Class) (*classid.Class, error) {
	return st.Load().reg.Register(name, parent)
}

// LookupClass returns the identity registered under name.
func LookupClass(name string) (*classid.Class, bool) {
	return st.Load().reg.Lookup(name)
}

// IsKindOf reports whether a is b or derives from b. Nil identities are
// never kinds of anything.
func IsKindOf(a, b *classid.Class) bool {
	return a != nil && a.IsKindOf(b)
}

// RegisterType fixes the class name of t. It must be called before the
// identity of t is first requested; naming an already resolved type
// differently is ErrConflictingRegistration and leaves the alias table
// untouched.
func RegisterType(t reflect.Type, name string) error {
	buildMu.Lock()
	defer buildMu.Unlock()
	s := st.Load()
	if t != nil {
		if base, err := uref.Normalize(t, s.cfg); err == nil {
			if prev, ok := resolvedNames.Load(base); ok && prev.(string) != name {
				return fmt.Errorf("%w: %s already resolved as %s", registry.ErrConflictingRegistration, base, prev)
			}
		}
	}
	return s.reg.Alias(t, name)
}

// ResetClasses drops every registered class, alias and cached identity.
// Identities held by live objects stay valid but are no longer the
// registry's canonical instances.
func ResetClasses() {
	buildMu.Lock()
	defer buildMu.Unlock()
	s := st.Load()
	s.reg.Reset()
	s.classes.Clear()
	resolvedNames.Clear()
}
