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

// Package object provides the intrusive reference counted base embedded by
// every participating type, and the handles that share it.
//
//	type Animal struct {
//		object.Base `class:"zoo.Animal"`
//		name        string
//	}
//
//	type Dog struct {
//		Animal `class:"zoo.Dog"`
//	}
//
//	func (d *Dog) Destroy() { ... } // optional, runs on the last release
//
//	dog := object.New(&Dog{})    // refcount 1, owned by dog
//	other := dog.Clone()         // refcount 2
//	other.Release()              // refcount 1
//	animal, ok := object.Cast[*Animal](dog)
//
// The counter is the only shared state; retaining and releasing are atomic
// and may happen on any goroutine. Destruction runs exactly once, on the
// goroutine whose release drops the count to zero.
package object

import (
	"fmt"
	"sync/atomic"

	"github.com/tliron/commonlog"

	"dirpx.dev/objbase"
	"dirpx.dev/objbase/apis"
	"dirpx.dev/objbase/classid"
	"dirpx.dev/objbase/ilist"
)

var log = commonlog.GetLogger("objbase.object")

// Object is implemented only by types embedding Base.
type Object interface {
	apis.Object
	objectBase() *Base
}

// Creator is implemented by types that want a callback once New has bound
// their identity and first reference.
type Creator interface {
	OnCreated()
}

// Destroyer is implemented by types that release resources when their last
// reference goes away. Destroy is called on the most-derived object.
type Destroyer interface {
	Destroy()
}

// Base carries the reference count, the class identity and the link used
// by the live-object tracker. Embed it by value; never copy it.
type Base struct {
	refs   atomic.Int32
	class  *classid.Class
	self   Object
	serial uint64
	// tracked is fixed by New before the object is published.
	tracked bool
	track   ilist.Link[Base]
}

var serials atomic.Uint64

func (b *Base) objectBase() *Base { return b }

// New binds obj's identity and returns the creator's handle, which holds
// the first reference. obj must be freshly allocated; initializing the
// same object twice is a logic error.
func New[T Object](obj T) Ref[T] {
	b := obj.objectBase()
	if b.class != nil {
		misuse(ErrDoubleInit, b)
		return Ref[T]{}
	}
	class, err := objbase.ClassOfValue(obj)
	if err != nil {
		panic(err)
	}

	b.class = class
	b.self = obj
	b.serial = serials.Add(1)
	b.refs.Store(1)
	created.Add(1)

	if objbase.Config().TrackAllocations {
		b.tracked = true
		track(b)
	}
	if c, ok := any(obj).(Creator); ok {
		c.OnCreated()
	}
	if log.AllowLevel(commonlog.Debug) {
		log.Debugf("created %s", b.ObjectID())
	}
	return Ref[T]{obj: obj, ok: true}
}

// Retain adds a reference. Retaining a destroyed or uninitialized object is
// a logic error and leaves the count unchanged.
func (b *Base) Retain() {
	for {
		n := b.refs.Load()
		if n <= 0 {
			misuse(ErrRetainDestroyed, b)
			return
		}
		if b.refs.CompareAndSwap(n, n+1) {
			return
		}
	}
}

// Release drops a reference and destroys the object when it was the last.
func (b *Base) Release() {
	n := b.refs.Add(-1)
	switch {
	case n == 0:
		b.destroy()
	case n < 0:
		b.refs.Add(1)
		misuse(ErrDoubleRelease, b)
	}
}

func (b *Base) destroy() {
	self := b.self
	if d, ok := self.(Destroyer); ok {
		d.Destroy()
	}
	if b.tracked {
		untrack(b)
	}
	destroyed.Add(1)
	if log.AllowLevel(commonlog.Debug) {
		log.Debugf("destroyed %s", b.ObjectID())
	}
	b.self = nil
}

// RefCount returns the current count. Other goroutines may change it at
// any time.
func (b *Base) RefCount() int32 {
	return b.refs.Load()
}

// Class returns the identity bound by New, or nil before New.
func (b *Base) Class() *classid.Class {
	return b.class
}

// Alive reports whether the object holds at least one reference.
func (b *Base) Alive() bool {
	return b.refs.Load() > 0
}

// ObjectID names the object for diagnostics as "class@serial".
func (b *Base) ObjectID() string {
	return fmt.Sprintf("%s@%d", b.class, b.serial)
}

// misuse reports a logic error: a panic in strict mode, otherwise a
// critical log entry.
func misuse(kind error, b *Base) {
	err := fmt.Errorf("%w: %s (refs=%d)", kind, b.ObjectID(), b.refs.Load())
	if objbase.Config().Strict {
		panic(err)
	}
	log.Criticalf("%s", err)
}
