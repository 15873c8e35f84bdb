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

package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"dirpx.dev/objbase/apis"
)

// ErrUnknownKey is returned when a config file contains keys that do not
// map to any option.
var ErrUnknownKey = errors.New("objbase(config): unknown key")

// file mirrors apis.Config in TOML. Pointer fields distinguish an absent key
// (keep the default) from an explicit zero value.
//
//	max-unwrap = 8
//	strict = true
//	track-allocations = false
//	log-verbosity = 1
type file struct {
	MaxUnwrap        *int  `toml:"max-unwrap"`
	Strict           *bool `toml:"strict"`
	TrackAllocations *bool `toml:"track-allocations"`
	LogVerbosity     *int  `toml:"log-verbosity"`
}

// Load reads a TOML config file. Keys absent from the file keep their
// defaults; unknown keys are an error.
func Load(path string) (apis.Config, error) {
	var f file
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("objbase(config): cannot read %s: %w", path, err)
	}
	return fromFile(f, md)
}

// Parse is Load for in-memory TOML text.
func Parse(text string) (apis.Config, error) {
	var f file
	md, err := toml.Decode(text, &f)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("objbase(config): parse error: %w", err)
	}
	return fromFile(f, md)
}

func fromFile(f file, md toml.MetaData) (apis.Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return DefaultConfig(), fmt.Errorf("%w: %s", ErrUnknownKey, undecoded[0].String())
	}
	var opts []Option
	if f.MaxUnwrap != nil {
		opts = append(opts, WithMaxUnwrap(*f.MaxUnwrap))
	}
	if f.Strict != nil {
		opts = append(opts, WithStrict(*f.Strict))
	}
	if f.TrackAllocations != nil {
		opts = append(opts, WithTrackAllocations(*f.TrackAllocations))
	}
	if f.LogVerbosity != nil {
		opts = append(opts, WithLogVerbosity(*f.LogVerbosity))
	}
	return NewConfig(opts...), nil
}
