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

package object_test

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/objbase"
	"dirpx.dev/objbase/apis"
	"dirpx.dev/objbase/object"
)

type Animal struct {
	object.Base `class:"test.Animal"`
	onDestroy   func(string)
}

func (a *Animal) Destroy() {
	if a.onDestroy != nil {
		a.onDestroy("animal")
	}
}

type Dog struct {
	Animal  `class:"test.Dog"`
	created bool
}

func (d *Dog) OnCreated() { d.created = true }

func (d *Dog) Destroy() {
	if d.onDestroy != nil {
		d.onDestroy("dog")
	}
}

type Cat struct {
	Animal `class:"test.Cat"`
}

// withConfig installs cfg for the duration of the test.
func withConfig(t *testing.T, mut func(*apis.Config)) {
	t.Helper()
	prev := objbase.Config()
	next := prev
	mut(&next)
	objbase.SetConfig(next)
	t.Cleanup(func() { objbase.SetConfig(prev) })
}

// panicErr runs fn and returns the error it panicked with, if any.
func panicErr(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
			if err == nil {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	fn()
	return nil
}

func TestNew_BindsIdentityAndFirstReference(t *testing.T) {
	dog := object.New(&Dog{})
	defer dog.Release()

	require.False(t, dog.IsNil())
	assert.EqualValues(t, 1, dog.RefCount())
	assert.True(t, dog.Get().created, "OnCreated must run")
	assert.True(t, dog.Get().Alive())

	c := dog.Class()
	require.NotNil(t, c)
	assert.Equal(t, "test.Dog", c.Name())
	assert.Equal(t, "test.Animal", c.Parent().Name())
	assert.True(t, c.IsKindOf(objbase.ClassOf[object.Base]()))
	assert.Nil(t, objbase.ClassOf[object.Base]().Parent())

	assert.True(t, strings.HasPrefix(dog.String(), "test.Dog@"), dog.String())
}

func TestCloneAndRelease(t *testing.T) {
	var events []string
	dog := object.New(&Dog{Animal: Animal{onDestroy: func(s string) { events = append(events, s) }}})

	other := dog.Clone()
	assert.EqualValues(t, 2, dog.RefCount())
	assert.True(t, object.Same(dog, other))

	other.Release()
	assert.True(t, other.IsNil())
	other.Release() // nil handle: no-op
	assert.EqualValues(t, 1, dog.RefCount())
	assert.Empty(t, events)

	raw := dog.Get()
	dog.Release()
	assert.Equal(t, []string{"dog"}, events, "most-derived Destroy runs exactly once")
	assert.False(t, raw.Alive())
	assert.Zero(t, dog.RefCount())
}

func TestMisuse_Strict(t *testing.T) {
	withConfig(t, func(c *apis.Config) { c.Strict = true })

	dog := object.New(&Dog{})
	raw := dog.Get()

	err := panicErr(func() { object.New(raw) })
	assert.True(t, errors.Is(err, object.ErrDoubleInit), "got %v", err)

	dog.Release()
	err = panicErr(raw.Release)
	assert.True(t, errors.Is(err, object.ErrDoubleRelease), "got %v", err)
	err = panicErr(raw.Retain)
	assert.True(t, errors.Is(err, object.ErrRetainDestroyed), "got %v", err)
	assert.Zero(t, raw.RefCount(), "failed operations must not change the count")

	err = panicErr((&Dog{}).Retain)
	assert.True(t, errors.Is(err, object.ErrRetainDestroyed), "retain before New: got %v", err)
}

func TestMisuse_Lenient(t *testing.T) {
	withConfig(t, func(c *apis.Config) { c.Strict = false })

	var destroyed int
	dog := object.New(&Dog{Animal: Animal{onDestroy: func(string) { destroyed++ }}})
	raw := dog.Get()

	again := object.New(raw)
	assert.True(t, again.IsNil())

	dog.Release()
	assert.NotPanics(t, raw.Release)
	assert.NotPanics(t, raw.Retain)
	assert.Zero(t, raw.RefCount())
	assert.Equal(t, 1, destroyed)
}

func TestConcurrentCloneRelease(t *testing.T) {
	var destroyed atomic.Int32
	dog := object.New(&Dog{Animal: Animal{onDestroy: func(string) { destroyed.Add(1) }}})

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				r := dog.Clone()
				r.Release()
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, dog.RefCount())
	assert.Zero(t, destroyed.Load())

	// Many owners releasing at once destroy exactly once.
	owners := make([]object.Ref[*Dog], workers)
	for i := range owners {
		owners[i] = dog.Clone()
	}
	dog.Release()
	wg.Add(workers)
	for i := range owners {
		go func(i int) {
			defer wg.Done()
			owners[i].Release()
		}(i)
	}
	wg.Wait()
	assert.EqualValues(t, 1, destroyed.Load())
}

func TestWeak(t *testing.T) {
	dog := object.New(&Dog{})
	w := dog.Weak()
	require.True(t, w.Alive())

	locked, ok := w.Lock()
	require.True(t, ok)
	assert.EqualValues(t, 2, dog.RefCount())
	locked.Release()

	dog.Release()
	assert.False(t, w.Alive())
	_, ok = w.Lock()
	assert.False(t, ok)

	var zero object.Weak[*Dog]
	_, ok = zero.Lock()
	assert.False(t, ok)
}

func TestCast(t *testing.T) {
	dog := object.New(&Dog{})
	defer dog.Release()

	animal, ok := object.Cast[*Animal](dog)
	require.True(t, ok)
	assert.Same(t, &dog.Get().Animal, animal.Get())
	assert.True(t, object.Same(dog, animal))
	assert.EqualValues(t, 2, dog.RefCount())

	// Back down through the most-derived object.
	back, ok := object.Cast[*Dog](animal)
	require.True(t, ok)
	assert.Same(t, dog.Get(), back.Get())
	back.Release()
	animal.Release()

	_, ok = object.Cast[*Cat](dog)
	assert.False(t, ok)

	plain := object.New(&Animal{})
	defer plain.Release()
	_, ok = object.Cast[*Dog](plain)
	assert.False(t, ok, "an Animal is not a Dog")

	_, ok = object.Cast[*Dog](object.Ref[*Animal]{})
	assert.False(t, ok)
}

func TestCastClass(t *testing.T) {
	dog := object.New(&Dog{})
	defer dog.Release()

	o, ok := object.CastClass(dog, objbase.ClassOf[Animal]())
	require.True(t, ok)
	_, isDog := o.Get().(*Dog)
	assert.True(t, isDog)
	o.Release()

	_, ok = object.CastClass(dog, objbase.ClassOf[Cat]())
	assert.False(t, ok)

	obj := dog.AsObject()
	assert.EqualValues(t, 2, obj.RefCount())
	obj.Release()
}

func TestTracker(t *testing.T) {
	withConfig(t, func(c *apis.Config) { c.TrackAllocations = true })

	before := object.ReadStats()
	a := object.New(&Dog{})
	b := object.New(&Cat{})

	ids := object.Outstanding()
	assert.Contains(t, ids, a.String())
	assert.Contains(t, ids, b.String())

	var seen int
	var sawA bool
	object.Walk(func(o object.Object) bool {
		if o == object.Object(a.Get()) {
			sawA = true
			assert.EqualValues(t, 2, o.RefCount(), "walk holds a reference while visiting")
		}
		seen++
		return true
	})
	assert.True(t, sawA)
	assert.GreaterOrEqual(t, seen, 2)
	assert.EqualValues(t, 1, a.RefCount())

	assert.GreaterOrEqual(t, object.ReportLeaks(), 2)

	aID := a.String()
	a.Release()
	assert.NotContains(t, object.Outstanding(), aID)
	b.Release()

	after := object.ReadStats()
	assert.Equal(t, before.Created+2, after.Created)
	assert.Equal(t, before.Destroyed+2, after.Destroyed)
	assert.Contains(t, after.String(), "created")
}

func TestTracker_FlagFixedAtCreation(t *testing.T) {
	withConfig(t, func(c *apis.Config) { c.TrackAllocations = false })
	untracked := object.New(&Cat{})
	untrackedID := untracked.String()

	objbase.SetConfig(func() apis.Config { c := objbase.Config(); c.TrackAllocations = true; return c }())
	tracked := object.New(&Cat{})
	trackedID := tracked.String()
	assert.NotContains(t, object.Outstanding(), untrackedID)
	assert.Contains(t, object.Outstanding(), trackedID)

	objbase.SetConfig(func() apis.Config { c := objbase.Config(); c.TrackAllocations = false; return c }())
	before := object.ReadStats()
	untracked.Release()
	tracked.Release()
	assert.NotContains(t, object.Outstanding(), trackedID)
	assert.Equal(t, before.Destroyed+2, object.ReadStats().Destroyed)
}
