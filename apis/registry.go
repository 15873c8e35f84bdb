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

package apis

import (
	"reflect"

	"dirpx.dev/objbase/classid"
)

// Registry is the process-wide table of class identities keyed by name,
// plus optional type-to-name aliases consulted before any other naming rule.
// Implementations must be safe for concurrent use.
type Registry interface {
	// Register returns the class for name, creating it with the given parent
	// on first use. Re-registering with the same parent is idempotent and
	// returns the identical *classid.Class; a different parent is a conflict.
	Register(name string, parent *classid.Class) (*classid.Class, error)
	// Lookup returns the class registered under name.
	Lookup(name string) (*classid.Class, bool)
	// Alias associates a (nearest named) reflect.Type with a fixed class name.
	Alias(t reflect.Type, name string) error
	// LookupAlias returns the aliased class name for t if present.
	LookupAlias(t reflect.Type) (name string, ok bool)
	// Entries returns a snapshot for diagnostics (order is unspecified).
	Entries() []Entry
	// Aliases returns a snapshot of the alias table (order is unspecified).
	Aliases() []Alias
	// Count returns the number of registered classes.
	Count() int
	// Reset clears all classes and aliases.
	Reset()
}

// Entry is a single registered class in a Registry snapshot.
type Entry struct {
	// Name is the registered class name.
	Name string
	// Class is the identity registered under Name.
	Class *classid.Class
}

// Alias is a single (type, name) association in a Registry snapshot.
type Alias struct {
	Type reflect.Type
	Name string
}
