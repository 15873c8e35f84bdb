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

// Package objbase is the root of an intrusive reference counting library.
//
// Participating types embed object.Base (directly, or through another
// participating type) and are shared through counted handles. The root
// package answers one question for them: which class is this type?
//
// # Class identity
//
// A class is identified by a name-derived token (see package classid),
// not by its reflect.Type, so independently built components that share a
// type name agree on its identity. Names are resolved by a chain of
// strategies, in priority order:
//
//  1. An alias registered with RegisterType.
//  2. A `class:"name"` tag on the embedded base field:
//
//     type Dog struct {
//     Animal `class:"zoo.Dog"`
//     }
//
//  3. The import path and type name, with generic parameters stripped.
//
// The parent of a class is the class of its embedded base field. Single
// inheritance only: object.Base is the root of every chain.
//
// # Snapshot
//
// Configuration, registry, resolver and builder live in one immutable
// snapshot behind an atomic pointer. Reads are lock-free; writers
// (SetConfig, SetBuilder, SetRegistry, SetResolver, SetAll) serialize on a
// build mutex, derive a new snapshot and publish it. A registry or
// resolver installed explicitly is pinned and survives rebuilds until it
// is unpinned.
//
// Typical start-up:
//
//	if err := objbase.LoadConfig("objbase.toml"); err != nil {
//		return err
//	}
//	_ = objbase.RegisterType(reflect.TypeFor[Legacy](), "app.Legacy")
//
// and in tests:
//
//	objbase.SetAll(&cfg, nil, nil, builder.New())
package objbase
