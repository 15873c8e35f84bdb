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

// Package uuid is the UUID collaborator used by objbase: minting random
// identifiers, minting name-based identifiers for class tokens, and the
// canonical text form "f3452518-abcd-4105-9928-a18794d57baf".
package uuid

import (
	"bytes"
	"errors"
	"fmt"

	guuid "github.com/google/uuid"
)

// UUID is a 128-bit universally unique identifier.
type UUID = guuid.UUID

// Nil is the zero UUID.
var Nil = guuid.Nil

// TextSize is the length of the canonical text form.
const TextSize = 36

// ErrParse is returned when text is not a valid UUID.
var ErrParse = errors.New("objbase(uuid): malformed uuid text")

// Namespace is the name-based namespace under which class tokens are minted.
// Changing it changes every class token, so it is fixed for the life of the
// module.
var Namespace = guuid.MustParse("6f626a62-6173-4500-8000-636c61737365")

// New returns a random (version 4) UUID.
func New() UUID {
	return guuid.New()
}

// NameBased returns the version 5 UUID of name within Namespace.
// Equal names always produce equal UUIDs, in any process.
func NameBased(name string) UUID {
	return guuid.NewSHA1(Namespace, []byte(name))
}

// Format returns the canonical lowercase text form of u.
func Format(u UUID) string {
	return u.String()
}

// Parse parses the canonical text form (upper or lower case, with or
// without the urn:uuid: prefix or braces).
func Parse(s string) (UUID, error) {
	u, err := guuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	return u, nil
}

// Less orders UUIDs bytewise.
func Less(a, b UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
