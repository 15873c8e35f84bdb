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

package objbase_test

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/objbase"
	"dirpx.dev/objbase/classid"
	"dirpx.dev/objbase/registry"
)

type fakeBase struct{}

func (*fakeBase) Retain()               {}
func (*fakeBase) Release()              {}
func (*fakeBase) RefCount() int32       { return 1 }
func (*fakeBase) Class() *classid.Class { return nil }

type Animal struct {
	fakeBase `class:"zoo.Animal"`
}

type Dog struct {
	Animal `class:"zoo.Dog"`
}

type Puppy struct {
	Dog
}

type Cat struct {
	Animal `class:"zoo.Cat"`
}

type Legacy struct{ fakeBase }

type Box[T any] struct {
	fakeBase
	V T
}

type plain struct{ X int }

func TestClassOf_ChainAndNames(t *testing.T) {
	dog := objbase.ClassOf[Dog]()
	require.NotNil(t, dog)
	assert.Equal(t, "zoo.Dog", dog.Name())
	assert.Equal(t, "zoo.Animal", dog.Parent().Name())
	assert.Equal(t, "dirpx.dev/objbase_test.fakeBase", dog.Root().Name())

	puppy := objbase.ClassOf[*Puppy]()
	require.NotNil(t, puppy)
	assert.Equal(t, "dirpx.dev/objbase_test.Puppy", puppy.Name(), "untagged class name")
	assert.True(t, objbase.IsKindOf(puppy, dog))
	assert.True(t, objbase.IsKindOf(puppy, objbase.ClassOf[Animal]()))
	assert.False(t, objbase.IsKindOf(objbase.ClassOf[Cat](), dog))
	assert.False(t, objbase.IsKindOf(nil, dog))

	c, ok := objbase.LookupClass("zoo.Dog")
	assert.True(t, ok)
	assert.Same(t, dog, c)
}

func TestClassOf_Stable(t *testing.T) {
	a := objbase.ClassOf[Dog]()
	b, err := objbase.ClassOfValue(&Dog{})
	require.NoError(t, err)
	c, err := objbase.ClassOfType(reflect.TypeOf([]*Dog{}))
	require.NoError(t, err)
	assert.Same(t, a, b, "identity not cached")
	assert.Same(t, b, c, "identity not cached")
}

func TestClassOf_GenericsShareClass(t *testing.T) {
	a := objbase.ClassOf[Box[int]]()
	b := objbase.ClassOf[Box[string]]()
	require.NotNil(t, a)
	assert.True(t, a.Equal(b))
	assert.Equal(t, "dirpx.dev/objbase_test.Box", a.Name())
}

func TestClassOf_NotParticipating(t *testing.T) {
	assert.Nil(t, objbase.ClassOf[plain]())
	for _, v := range []any{nil, 42, plain{}, map[string]Dog{}} {
		_, err := objbase.ClassOfValue(v)
		assert.ErrorIs(t, err, objbase.ErrNotParticipating, "ClassOfValue(%T)", v)
	}
}

func TestRegisterType(t *testing.T) {
	require.NoError(t, objbase.RegisterType(reflect.TypeOf(&Legacy{}), "app.Legacy"))
	assert.Equal(t, "app.Legacy", objbase.ClassOf[Legacy]().Name())
	assert.NoError(t, objbase.RegisterType(reflect.TypeOf(Legacy{}), "app.Legacy"), "idempotent")

	err := objbase.RegisterType(reflect.TypeOf(Legacy{}), "app.Other")
	assert.ErrorIs(t, err, registry.ErrConflictingRegistration, "re-alias")

	// Cat is already resolved under its tag.
	_ = objbase.ClassOf[Cat]()
	err = objbase.RegisterType(reflect.TypeOf(Cat{}), "app.Cat")
	assert.ErrorIs(t, err, registry.ErrConflictingRegistration, "late alias")
	assert.Equal(t, "zoo.Cat", objbase.ClassOf[Cat]().Name())
}

func TestDefineClass(t *testing.T) {
	root, err := objbase.DefineClass("net.Message", nil)
	require.NoError(t, err)
	ping, err := objbase.DefineClass("net.Ping", root)
	require.NoError(t, err)

	again, _ := objbase.DefineClass("net.Ping", root)
	assert.Same(t, ping, again, "DefineClass is not idempotent")

	_, err = objbase.DefineClass("net.Ping", nil)
	assert.ErrorIs(t, err, registry.ErrConflictingRegistration, "conflicting parent")
	assert.True(t, ping.IsKindOf(root))
	// A separately built identity for the same name is equal.
	assert.True(t, ping.Equal(classid.New("net.Ping", nil)), "tokens must agree across registries")
}

func TestClassOf_ConcurrentFirstUse(t *testing.T) {
	type Fresh struct {
		fakeBase `class:"zoo.Fresh"`
	}
	const workers = 32
	got := make([]*classid.Class, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			got[i] = objbase.ClassOf[Fresh]()
		}(i)
	}
	wg.Wait()
	require.NotNil(t, got[0])
	for i := 1; i < workers; i++ {
		require.Same(t, got[0], got[i], "worker %d saw a different identity", i)
	}
}

func TestLoadConfig(t *testing.T) {
	prev := objbase.Config()
	t.Cleanup(func() { objbase.SetConfig(prev) })

	path := filepath.Join(t.TempDir(), "objbase.toml")
	require.NoError(t, os.WriteFile(path, []byte("strict = false\ntrack-allocations = true\n"), 0o644))
	require.NoError(t, objbase.LoadConfig(path))

	cfg := objbase.Config()
	assert.False(t, cfg.Strict)
	assert.True(t, cfg.TrackAllocations)

	assert.Error(t, objbase.LoadConfig(filepath.Join(t.TempDir(), "missing.toml")))
}
