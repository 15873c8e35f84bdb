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

// Package utf8 is the UTF-8 collaborator consumed by rcstring.
package utf8

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxBytes is the longest encoding of a single code point.
const MaxBytes = utf8.UTFMax

// ErrMalformed reports an invalid or truncated UTF-8 sequence.
var ErrMalformed = errors.New("objbase(utf8): malformed utf-8 sequence")

// DecodeNext decodes the code point starting at b[off] and returns it with
// the offset of the following code point.
// It fails with ErrMalformed on invalid or truncated input, or when off is
// outside b.
func DecodeNext(b []byte, off int) (rune, int, error) {
	if off < 0 || off >= len(b) {
		return utf8.RuneError, off, fmt.Errorf("%w: offset %d outside %d bytes", ErrMalformed, off, len(b))
	}
	if c := b[off]; c < utf8.RuneSelf {
		return rune(c), off + 1, nil
	}
	r, n := utf8.DecodeRune(b[off:])
	if r == utf8.RuneError && n <= 1 {
		return utf8.RuneError, off, fmt.Errorf("%w: at offset %d", ErrMalformed, off)
	}
	return r, off + n, nil
}

// Encode returns the UTF-8 encoding of r. Invalid code points encode as
// U+FFFD.
func Encode(r rune) []byte {
	return utf8.AppendRune(nil, r)
}

// Append appends the UTF-8 encoding of r to dst.
func Append(dst []byte, r rune) []byte {
	return utf8.AppendRune(dst, r)
}

// EncodedLen returns the number of bytes needed to encode r, or -1 if r is
// not a valid code point.
func EncodedLen(r rune) int {
	return utf8.RuneLen(r)
}

// Count returns the number of code points in b. Invalid bytes count as one.
func Count(b []byte) int {
	return utf8.RuneCount(b)
}

// Validate returns nil when b is entirely valid UTF-8, otherwise an error
// wrapping ErrMalformed that names the first bad offset.
func Validate(b []byte) error {
	for off := 0; off < len(b); {
		_, next, err := DecodeNext(b, off)
		if err != nil {
			return err
		}
		off = next
	}
	return nil
}
