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

package ilist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/objbase/ilist"
)

type node struct {
	id   int
	link ilist.Link[node]
	aux  ilist.Link[node]
}

func linkOf(n *node) *ilist.Link[node] { return &n.link }

func nodes(n int) []*node {
	out := make([]*node, n)
	for i := range out {
		out[i] = &node{id: i}
	}
	return out
}

func ids(l *ilist.List[node]) []int {
	var out []int
	for n := range l.All() {
		out = append(out, n.id)
	}
	return out
}

func TestPushAndPop(t *testing.T) {
	l := ilist.New(linkOf)
	ns := nodes(3)

	require.True(t, l.IsEmpty())
	require.Nil(t, l.Front())
	require.Nil(t, l.PopBack())

	l.PushBack(ns[1])
	l.PushFront(ns[0])
	l.PushBack(ns[2])

	assert.Equal(t, []int{0, 1, 2}, ids(l))
	assert.Equal(t, 3, l.Len())
	assert.Same(t, ns[0], l.Front())
	assert.Same(t, ns[2], l.Back())

	assert.Same(t, ns[0], l.PopFront())
	assert.False(t, ns[0].link.Linked())
	assert.Same(t, ns[2], l.PopBack())
	assert.Equal(t, []int{1}, ids(l))
}

func TestInsertRelative(t *testing.T) {
	l := ilist.New(linkOf)
	ns := nodes(5)

	l.PushBack(ns[2])
	l.InsertBefore(ns[1], ns[2])
	l.InsertAfter(ns[3], ns[2])
	l.InsertAfter(ns[0], nil) // head
	l.InsertBefore(ns[4], nil) // tail

	assert.Equal(t, []int{0, 1, 2, 3, 4}, ids(l))

	var back []int
	for n := range l.Backward() {
		back = append(back, n.id)
	}
	assert.Equal(t, []int{4, 3, 2, 1, 0}, back)
}

func TestLogicErrorsPanic(t *testing.T) {
	l := ilist.New(linkOf)
	ns := nodes(2)

	l.PushBack(ns[0])
	assert.PanicsWithValue(t, ilist.ErrLinked, func() { l.PushBack(ns[0]) })
	assert.PanicsWithValue(t, ilist.ErrNotLinked, func() { l.Remove(ns[1]) })
	assert.PanicsWithValue(t, ilist.ErrNotLinked, func() { l.InsertBefore(ns[0], ns[1]) })

	// Nothing changed.
	assert.Equal(t, []int{0}, ids(l))
}

func TestRemoveDuringIteration(t *testing.T) {
	l := ilist.New(linkOf)
	for _, n := range nodes(6) {
		l.PushBack(n)
	}
	for n := range l.All() {
		if n.id%2 == 0 {
			l.Remove(n)
		}
	}
	assert.Equal(t, []int{1, 3, 5}, ids(l))
}

func TestAtLeast(t *testing.T) {
	l := ilist.New(linkOf)
	assert.True(t, l.AtLeast(0))
	assert.False(t, l.AtLeast(1))

	for _, n := range nodes(3) {
		l.PushBack(n)
	}
	assert.True(t, l.AtLeast(3))
	assert.False(t, l.AtLeast(4))
}

func TestRotate(t *testing.T) {
	l := ilist.New(linkOf)
	l.Rotate()
	for _, n := range nodes(3) {
		l.PushBack(n)
	}
	l.Rotate()
	assert.Equal(t, []int{1, 2, 0}, ids(l))
	l.Rotate()
	l.Rotate()
	assert.Equal(t, []int{0, 1, 2}, ids(l))
}

func TestMoveAndAppend(t *testing.T) {
	a := ilist.New(linkOf)
	b := ilist.New(linkOf)
	ns := nodes(5)

	a.PushBack(ns[0])
	a.PushBack(ns[1])
	b.PushBack(ns[2])
	b.PushBack(ns[3])

	a.AppendFrom(b)
	assert.Equal(t, []int{0, 1, 2, 3}, ids(a))
	assert.True(t, b.IsEmpty())

	b.PushBack(ns[4])
	a.MoveFrom(b)
	assert.Equal(t, []int{4}, ids(a))
	assert.True(t, b.IsEmpty())
	assert.False(t, ns[0].link.Linked())

	// Moved nodes can be removed through the destination.
	a.Remove(ns[4])
	assert.True(t, a.IsEmpty())
}

func TestHooks(t *testing.T) {
	var attached, detached []int
	l := ilist.New(linkOf,
		ilist.WithAttach(func(n *node) { attached = append(attached, n.id) }),
		ilist.WithDetach(func(n *node) { detached = append(detached, n.id) }),
	)
	ns := nodes(3)
	for _, n := range ns {
		l.PushBack(n)
	}
	l.Remove(ns[1])
	l.Clear()

	assert.Equal(t, []int{0, 1, 2}, attached)
	assert.Equal(t, []int{1, 0, 2}, detached)
}

func TestTwoListsOneNode(t *testing.T) {
	main := ilist.New(linkOf)
	side := ilist.New(func(n *node) *ilist.Link[node] { return &n.aux })
	n := &node{id: 7}

	main.PushBack(n)
	side.PushBack(n)
	assert.True(t, main.Contains(n))
	assert.True(t, side.Contains(n))

	main.Remove(n)
	assert.False(t, main.Contains(n))
	assert.Same(t, n, side.Front())
}

func TestNoAllocations(t *testing.T) {
	l := ilist.New(linkOf)
	ns := nodes(4)

	allocs := testing.AllocsPerRun(100, func() {
		for _, n := range ns {
			l.PushBack(n)
		}
		l.Rotate()
		l.Remove(ns[2])
		_ = l.PopFront()
		l.Clear()
	})
	assert.Zero(t, allocs)
}
