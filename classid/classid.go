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

// Package classid defines the process-wide identity of a participating
// class.
//
// A Class is identified by a token derived from its name, not by a
// reflect.Type. Two components that were built separately (for example a
// host binary and a plugin) each see their own reflect.Type for the same
// source type, but both derive the same class name and therefore the same
// token. Equality and IsKindOf are defined on tokens.
package classid

import (
	"iter"

	"dirpx.dev/objbase/utils/uuid"
)

// Class is an immutable class identity with an optional single parent.
type Class struct {
	token  uuid.UUID
	name   string
	parent *Class
	depth  int
}

// New returns a class identity for name with the given parent (nil for a
// root class). Callers normally go through a Registry so that one *Class
// exists per name; identities built separately for the same name and
// parent still compare Equal.
func New(name string, parent *Class) *Class {
	c := &Class{
		token:  uuid.NameBased(name),
		name:   name,
		parent: parent,
	}
	if parent != nil {
		c.depth = parent.depth + 1
	}
	return c
}

// Token returns the stable identity token.
func (c *Class) Token() uuid.UUID {
	if c == nil {
		return uuid.Nil
	}
	return c.token
}

// Name returns the diagnostic class name.
func (c *Class) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Parent returns the parent class, or nil for a root.
func (c *Class) Parent() *Class {
	if c == nil {
		return nil
	}
	return c.parent
}

// Depth is the number of ancestors above c.
func (c *Class) Depth() int {
	if c == nil {
		return 0
	}
	return c.depth
}

// Equal reports whether c and o denote the same class. A nil class equals
// nothing, not even another nil.
func (c *Class) Equal(o *Class) bool {
	if c == nil || o == nil {
		return false
	}
	return c == o || c.token == o.token
}

// IsKindOf reports whether o is c or one of c's ancestors.
func (c *Class) IsKindOf(o *Class) bool {
	if o == nil {
		return false
	}
	for k := c; k != nil; k = k.parent {
		if k.Equal(o) {
			return true
		}
	}
	return false
}

// Chain yields c followed by each ancestor up to the root.
func (c *Class) Chain() iter.Seq[*Class] {
	return func(yield func(*Class) bool) {
		for k := c; k != nil; k = k.parent {
			if !yield(k) {
				return
			}
		}
	}
}

// Root returns the top-most ancestor of c.
func (c *Class) Root() *Class {
	k := c
	for k != nil && k.parent != nil {
		k = k.parent
	}
	return k
}

func (c *Class) String() string {
	if c == nil {
		return "[null]"
	}
	return c.name
}
