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

import "errors"

var (
	// ErrRetainDestroyed reports a retain on an object whose count already
	// reached zero, or that was never passed to New.
	ErrRetainDestroyed = errors.New("objbase(object): retain of a destroyed object")
	// ErrDoubleRelease reports a release that would drive the count below zero.
	ErrDoubleRelease = errors.New("objbase(object): release of a destroyed object")
	// ErrDoubleInit reports New called twice on the same object.
	ErrDoubleInit = errors.New("objbase(object): object initialized twice")
)
