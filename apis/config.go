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

// Config carries read-only knobs for class resolution, lifetime checking and
// diagnostics. It is passed by value and should be treated as immutable by
// implementations.
type Config struct {
	// MaxUnwrap limits pointer/slice/array unwrapping when a type is
	// normalized to its named class type.
	MaxUnwrap int

	// Strict makes logic errors (retain after destruction, double release,
	// double initialization) panic. When false they are logged at critical
	// level and the offending operation is ignored.
	Strict bool

	// TrackAllocations keeps every live object on an intrusive list so that
	// outstanding objects can be walked and reported.
	TrackAllocations bool

	// LogVerbosity is passed to commonlog.Configure when logging is set up
	// from this Config.
	LogVerbosity int
}
