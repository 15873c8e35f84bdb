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

// Package rcarray provides Array, a copy-on-write array handle over
// reference counted storage.
//
// Handles share storage until one of them is mutated; the mutating handle
// then copies its visible window into private storage first. Copying the
// Array struct does not add a reference: use Clone for a second owner and
// Release when done.
package rcarray

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync/atomic"

	"github.com/tliron/commonlog"

	"dirpx.dev/objbase/object"
	"dirpx.dev/objbase/utils/hex"
)

// ErrOutOfRange is returned for indexes or windows outside the array.
var ErrOutOfRange = errors.New("objbase(rcarray): index out of range")

var log = commonlog.GetLogger("objbase.rcarray")

var copies atomic.Uint64

// Copies returns how many copy-on-write copies were made process-wide.
func Copies() uint64 {
	return copies.Load()
}

type storage[T any] struct {
	object.Base `class:"objbase.ArrayStorage"`
	elems       []T
}

func newStorage[T any](elems []T) object.Ref[*storage[T]] {
	return object.New(&storage[T]{elems: elems})
}

// Array is a window [off, off+n) onto shared storage. The zero value is an
// empty array.
type Array[T any] struct {
	st  object.Ref[*storage[T]]
	off int
	n   int
}

// New returns an array of n zero elements.
func New[T any](n int) Array[T] {
	if n <= 0 {
		return Array[T]{}
	}
	return Array[T]{st: newStorage(make([]T, n)), n: n}
}

// Of returns an array holding elems.
func Of[T any](elems ...T) Array[T] {
	return FromSlice(elems)
}

// FromSlice returns an array holding a copy of s.
func FromSlice[T any](s []T) Array[T] {
	if len(s) == 0 {
		return Array[T]{}
	}
	return Array[T]{st: newStorage(slices.Clone(s)), n: len(s)}
}

func (a Array[T]) view() []T {
	if a.st.IsNil() {
		return nil
	}
	return a.st.Get().elems[a.off : a.off+a.n]
}

// Len returns the number of visible elements.
func (a Array[T]) Len() int {
	return a.n
}

// Cap returns how many elements fit from the start of the window to the
// end of the storage without reallocating.
func (a Array[T]) Cap() int {
	if a.st.IsNil() {
		return 0
	}
	return cap(a.st.Get().elems) - a.off
}

// At returns element i.
func (a Array[T]) At(i int) (T, error) {
	if i < 0 || i >= a.n {
		var zero T
		return zero, fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, i, a.n)
	}
	return a.st.Get().elems[a.off+i], nil
}

// Set replaces element i, copying shared storage first.
func (a *Array[T]) Set(i int, v T) error {
	if i < 0 || i >= a.n {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, i, a.n)
	}
	a.MakeUnique()
	a.st.Get().elems[a.off+i] = v
	return nil
}

// Append adds vs to the end of the array, copying shared storage first.
func (a *Array[T]) Append(vs ...T) {
	if len(vs) == 0 {
		return
	}
	if a.st.IsNil() {
		*a = FromSlice(vs)
		return
	}
	if a.st.RefCount() > 1 || a.off+a.n != len(a.st.Get().elems) {
		a.copyOut(a.n + len(vs))
	}
	st := a.st.Get()
	st.elems = append(st.elems, vs...)
	a.n += len(vs)
}

// Slice returns a new handle sharing the window [start, start+n).
func (a Array[T]) Slice(start, n int) (Array[T], error) {
	if start < 0 || n < 0 || start+n > a.n {
		return Array[T]{}, fmt.Errorf("%w: [%d,%d) not in [0,%d)", ErrOutOfRange, start, start+n, a.n)
	}
	if n == 0 {
		return Array[T]{}, nil
	}
	return Array[T]{st: a.st.Clone(), off: a.off + start, n: n}, nil
}

// MakeUnique ensures the handle is the only owner of its storage.
func (a *Array[T]) MakeUnique() {
	if a.st.IsNil() || a.st.RefCount() <= 1 {
		return
	}
	a.copyOut(a.n)
}

// copyOut rebinds a to private storage holding its window, with room for
// capacity elements.
func (a *Array[T]) copyOut(capacity int) {
	elems := make([]T, a.n, capacity)
	copy(elems, a.view())
	if log.AllowLevel(commonlog.Debug) {
		log.Debugf("copying %d elements out of shared %s", a.n, a.st)
	}
	old := a.st
	a.st, a.off = newStorage(elems), 0
	old.Release()
	copies.Add(1)
}

// Clone returns a second handle sharing the same storage.
func (a Array[T]) Clone() Array[T] {
	a.st = a.st.Clone()
	return a
}

// Release drops the handle's reference and leaves it empty.
func (a *Array[T]) Release() {
	a.st.Release()
	*a = Array[T]{}
}

// IsNil reports whether the handle has no storage.
func (a Array[T]) IsNil() bool {
	return a.st.IsNil()
}

// IsShared reports whether another handle references the same storage.
func (a Array[T]) IsShared() bool {
	return a.st.RefCount() > 1
}

// RefCount returns the storage reference count, or 0 without storage.
func (a Array[T]) RefCount() int32 {
	return a.st.RefCount()
}

// All yields index and element pairs.
func (a Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range a.view() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// ToSlice returns a copy of the visible elements.
func (a Array[T]) ToSlice() []T {
	return slices.Clone(a.view())
}

func (a Array[T]) String() string {
	return fmt.Sprint(a.view())
}

// Equal reports whether a and b hold the same elements.
func Equal[T comparable](a, b Array[T]) bool {
	return slices.Equal(a.view(), b.view())
}

// HexDump formats a byte array as a hex dump.
func HexDump(a Array[byte]) string {
	return hex.Dump(a.view())
}
