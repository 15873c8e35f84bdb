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

import "dirpx.dev/objbase/classid"

// Ref is a counted handle to T. The zero Ref is nil.
//
// A Ref value owns one reference. Copying the struct does not retain: use
// Clone for a second owner and Release when done.
type Ref[T Object] struct {
	obj T
	ok  bool
}

// Wrap returns a new handle to obj, retaining it.
func Wrap[T Object](obj T) Ref[T] {
	obj.Retain()
	return Ref[T]{obj: obj, ok: true}
}

// Get returns the referenced object. It is the zero T for a nil handle.
func (r Ref[T]) Get() T {
	return r.obj
}

// IsNil reports whether the handle references nothing.
func (r Ref[T]) IsNil() bool {
	return !r.ok
}

// Clone returns a second handle to the same object, retaining it.
func (r Ref[T]) Clone() Ref[T] {
	if r.ok {
		r.obj.Retain()
	}
	return r
}

// Release drops the handle's reference and clears it. Releasing a nil
// handle does nothing.
func (r *Ref[T]) Release() {
	if !r.ok {
		return
	}
	obj := r.obj
	*r = Ref[T]{}
	obj.Release()
}

// Class returns the identity of the referenced object, or nil.
func (r Ref[T]) Class() *classid.Class {
	if !r.ok {
		return nil
	}
	return r.obj.Class()
}

// RefCount returns the current count, or 0 for a nil handle.
func (r Ref[T]) RefCount() int32 {
	if !r.ok {
		return 0
	}
	return r.obj.RefCount()
}

// AsObject returns a new, retained handle typed as Object.
func (r Ref[T]) AsObject() Ref[Object] {
	if !r.ok {
		return Ref[Object]{}
	}
	return Wrap[Object](r.obj)
}

// Weak returns a non-owning handle to the same object.
func (r Ref[T]) Weak() Weak[T] {
	if !r.ok {
		return Weak[T]{}
	}
	return Weak[T]{obj: r.obj, base: r.obj.objectBase()}
}

func (r Ref[T]) String() string {
	if !r.ok {
		return "[null]"
	}
	return r.obj.objectBase().ObjectID()
}

// Same reports whether a and b reference the same object, regardless of
// the static type each handle uses. Two nil handles are the same.
func Same[A, B Object](a Ref[A], b Ref[B]) bool {
	if !a.ok || !b.ok {
		return a.ok == b.ok
	}
	return a.obj.objectBase() == b.obj.objectBase()
}

// Weak observes an object without keeping it alive. Lock yields an owning
// handle while the object has references left.
type Weak[T Object] struct {
	obj  T
	base *Base
}

// Lock returns a retained handle, or false once the object was destroyed.
func (w Weak[T]) Lock() (Ref[T], bool) {
	if w.base == nil {
		return Ref[T]{}, false
	}
	for {
		n := w.base.refs.Load()
		if n <= 0 {
			return Ref[T]{}, false
		}
		if w.base.refs.CompareAndSwap(n, n+1) {
			return Ref[T]{obj: w.obj, ok: true}, true
		}
	}
}

// Alive reports whether the object still has references. The answer may be
// stale by the time it is used; prefer Lock.
func (w Weak[T]) Alive() bool {
	return w.base != nil && w.base.Alive()
}
