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

// Package ilist is a doubly linked list whose links live inside the nodes.
//
// A node type embeds one Link per list it can be on and hands the list an
// accessor for it:
//
//	type job struct {
//		queue ilist.Link[job]
//	}
//
//	q := ilist.New(func(j *job) *ilist.Link[job] { return &j.queue })
//
// The list owns nothing and allocates nothing: inserting and removing only
// rewires pointers already present in the node. A node is on at most one
// list per embedded Link. Lists are not synchronized.
package ilist

import (
	"errors"
	"iter"
)

var (
	// ErrLinked is the panic value when an attached node is inserted.
	ErrLinked = errors.New("objbase(ilist): node is already linked")
	// ErrNotLinked is the panic value when a detached node is removed or
	// used as an insertion mark.
	ErrNotLinked = errors.New("objbase(ilist): node is not linked")
)

// Link is the intrusive part of a node. The zero value is detached.
type Link[T any] struct {
	next, prev *Link[T]
	host       *T
}

// Linked reports whether the link is currently on a list.
func (l *Link[T]) Linked() bool {
	return l.next != nil
}

func (l *Link[T]) unlink() {
	l.prev.next = l.next
	l.next.prev = l.prev
	l.next, l.prev, l.host = nil, nil, nil
}

// List is a circular list threaded through a sentinel root. Use New.
type List[T any] struct {
	root     Link[T]
	linkOf   func(*T) *Link[T]
	onAttach func(*T)
	onDetach func(*T)
}

// Option configures a List.
type Option[T any] func(*List[T])

// WithAttach installs a hook called after a node is inserted.
func WithAttach[T any](fn func(*T)) Option[T] {
	return func(l *List[T]) { l.onAttach = fn }
}

// WithDetach installs a hook called after a node is removed, popped or
// cleared. Nodes carried over by MoveFrom or AppendFrom stay attached and
// do not trigger hooks.
func WithDetach[T any](fn func(*T)) Option[T] {
	return func(l *List[T]) { l.onDetach = fn }
}

// New returns an empty list over the links selected by linkOf.
func New[T any](linkOf func(*T) *Link[T], opts ...Option[T]) *List[T] {
	l := &List[T]{linkOf: linkOf}
	l.root.next, l.root.prev = &l.root, &l.root
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *List[T]) attach(node *T, prev *Link[T]) {
	k := l.linkOf(node)
	if k.Linked() {
		panic(ErrLinked)
	}
	next := prev.next
	k.prev, k.next, k.host = prev, next, node
	prev.next = k
	next.prev = k
	if l.onAttach != nil {
		l.onAttach(node)
	}
}

func (l *List[T]) detach(k *Link[T]) *T {
	node := k.host
	k.unlink()
	if l.onDetach != nil {
		l.onDetach(node)
	}
	return node
}

// mark returns the link of an insertion mark, which must be attached.
func (l *List[T]) mark(node *T) *Link[T] {
	k := l.linkOf(node)
	if !k.Linked() {
		panic(ErrNotLinked)
	}
	return k
}

// PushFront inserts node at the head.
func (l *List[T]) PushFront(node *T) {
	l.attach(node, &l.root)
}

// PushBack inserts node at the tail.
func (l *List[T]) PushBack(node *T) {
	l.attach(node, l.root.prev)
}

// InsertBefore inserts node in front of mark, or at the tail when mark is
// nil.
func (l *List[T]) InsertBefore(node, mark *T) {
	if mark == nil {
		l.PushBack(node)
		return
	}
	l.attach(node, l.mark(mark).prev)
}

// InsertAfter inserts node behind mark, or at the head when mark is nil.
func (l *List[T]) InsertAfter(node, mark *T) {
	if mark == nil {
		l.PushFront(node)
		return
	}
	l.attach(node, l.mark(mark))
}

// Remove detaches node. The node must be on this list.
func (l *List[T]) Remove(node *T) {
	k := l.linkOf(node)
	if !k.Linked() {
		panic(ErrNotLinked)
	}
	l.detach(k)
}

// Front returns the head without removing it, or nil.
func (l *List[T]) Front() *T {
	return l.root.next.host
}

// Back returns the tail without removing it, or nil.
func (l *List[T]) Back() *T {
	return l.root.prev.host
}

// PopFront removes and returns the head, or nil when empty.
func (l *List[T]) PopFront() *T {
	if l.IsEmpty() {
		return nil
	}
	return l.detach(l.root.next)
}

// PopBack removes and returns the tail, or nil when empty.
func (l *List[T]) PopBack() *T {
	if l.IsEmpty() {
		return nil
	}
	return l.detach(l.root.prev)
}

// IsEmpty reports whether the list has no nodes.
func (l *List[T]) IsEmpty() bool {
	return l.root.next == &l.root
}

// Len counts the nodes. O(n).
func (l *List[T]) Len() int {
	n := 0
	for k := l.root.next; k != &l.root; k = k.next {
		n++
	}
	return n
}

// AtLeast reports whether the list holds n or more nodes, walking at most
// n links.
func (l *List[T]) AtLeast(n int) bool {
	for k := l.root.next; n > 0; k = k.next {
		if k == &l.root {
			return false
		}
		n--
	}
	return true
}

// Rotate moves the head to the tail.
func (l *List[T]) Rotate() {
	if l.root.next == l.root.prev {
		return
	}
	head := l.root.next
	l.root.next = head.next
	head.next.prev = &l.root
	tail := l.root.prev
	head.prev, head.next = tail, &l.root
	tail.next = head
	l.root.prev = head
}

// Clear detaches every node, head first.
func (l *List[T]) Clear() {
	for !l.IsEmpty() {
		l.detach(l.root.next)
	}
}

// MoveFrom replaces the contents of l with the nodes of other, leaving
// other empty. Nodes previously on l are cleared first.
func (l *List[T]) MoveFrom(other *List[T]) {
	if other == l {
		return
	}
	l.Clear()
	l.AppendFrom(other)
}

// AppendFrom moves every node of other to the tail of l, leaving other
// empty.
func (l *List[T]) AppendFrom(other *List[T]) {
	if other == l || other.IsEmpty() {
		return
	}
	first, last := other.root.next, other.root.prev
	tail := l.root.prev
	tail.next, first.prev = first, tail
	last.next, l.root.prev = &l.root, last
	other.root.next, other.root.prev = &other.root, &other.root
}

// All yields nodes head to tail. The node being visited may be removed
// during iteration.
func (l *List[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for k := l.root.next; k != &l.root; {
			next := k.next
			if !yield(k.host) {
				return
			}
			k = next
		}
	}
}

// Backward yields nodes tail to head. The node being visited may be
// removed during iteration.
func (l *List[T]) Backward() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for k := l.root.prev; k != &l.root; {
			prev := k.prev
			if !yield(k.host) {
				return
			}
			k = prev
		}
	}
}

// Contains reports whether node is on l. O(n); meant for assertions.
func (l *List[T]) Contains(node *T) bool {
	k := l.linkOf(node)
	if !k.Linked() {
		return false
	}
	for c := l.root.next; c != &l.root; c = c.next {
		if c == k {
			return true
		}
	}
	return false
}
