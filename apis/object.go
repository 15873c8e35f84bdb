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

package apis

import "dirpx.dev/objbase/classid"

// Object is the lifetime contract of every participating instance.
// The object package provides the only implementation (object.Base);
// other packages use this interface to recognize participating types
// without importing it.
type Object interface {
	// Retain adds a reference.
	Retain()
	// Release drops a reference, destroying the object on the last one.
	Release()
	// RefCount returns the current, inherently racy, reference count.
	RefCount() int32
	// Class returns the identity captured at construction.
	Class() *classid.Class
}
