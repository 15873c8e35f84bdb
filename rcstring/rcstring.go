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

// Package rcstring provides String, an immutable UTF-8 string handle over
// reference counted storage. Substrings share storage with their source.
package rcstring

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/zeebo/xxh3"

	"dirpx.dev/objbase/object"
	uutf8 "dirpx.dev/objbase/utils/utf8"
)

var (
	// ErrOutOfRange is returned for byte offsets outside the string.
	ErrOutOfRange = errors.New("objbase(rcstring): offset out of range")
	// ErrMalformed is returned by Validate for invalid UTF-8.
	ErrMalformed = uutf8.ErrMalformed
)

type storage struct {
	object.Base `class:"objbase.StringStorage"`
	data        []byte
}

// String is a window [off, off+n) onto immutable shared bytes. The zero
// value is the empty string. Copying the struct does not add a reference:
// use Clone for a second owner and Release when done.
type String struct {
	st  object.Ref[*storage]
	off int
	n   int
}

func wrap(data []byte) String {
	if len(data) == 0 {
		return String{}
	}
	return String{st: object.New(&storage{data: data}), n: len(data)}
}

// New returns a String holding s.
func New(s string) String {
	return wrap([]byte(s))
}

// FromBytes returns a String holding a copy of b.
func FromBytes(b []byte) String {
	return wrap(bytes.Clone(b))
}

// Format returns a String built with fmt.Sprintf.
func Format(format string, args ...any) String {
	return New(fmt.Sprintf(format, args...))
}

func (s String) view() []byte {
	if s.st.IsNil() {
		return nil
	}
	return s.st.Get().data[s.off : s.off+s.n]
}

// Len returns the length in bytes.
func (s String) Len() int {
	return s.n
}

// RuneCount returns the number of code points; invalid bytes count as one.
func (s String) RuneCount() int {
	return uutf8.Count(s.view())
}

// At returns the byte at offset i.
func (s String) At(i int) (byte, error) {
	if i < 0 || i >= s.n {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, i, s.n)
	}
	return s.st.Get().data[s.off+i], nil
}

// Substring returns a new handle sharing the bytes [start, start+n).
// Offsets are in bytes and are not required to fall on rune boundaries.
func (s String) Substring(start, n int) (String, error) {
	if start < 0 || n < 0 || start+n > s.n {
		return String{}, fmt.Errorf("%w: [%d,%d) not in [0,%d)", ErrOutOfRange, start, start+n, s.n)
	}
	if n == 0 {
		return String{}, nil
	}
	return String{st: s.st.Clone(), off: s.off + start, n: n}, nil
}

// Concat returns a new String holding parts in order.
func Concat(parts ...String) String {
	total := 0
	for _, p := range parts {
		total += p.n
	}
	data := make([]byte, 0, total)
	for _, p := range parts {
		data = append(data, p.view()...)
	}
	return wrap(data)
}

// Equal reports whether a and b hold the same bytes.
func Equal(a, b String) bool {
	return bytes.Equal(a.view(), b.view())
}

// Compare orders a and b bytewise, returning -1, 0 or +1.
func Compare(a, b String) int {
	return bytes.Compare(a.view(), b.view())
}

// Less reports whether a sorts before b.
func Less(a, b String) bool {
	return Compare(a, b) < 0
}

// HasPrefix reports whether s begins with prefix.
func (s String) HasPrefix(prefix String) bool {
	return bytes.HasPrefix(s.view(), prefix.view())
}

// Index returns the byte offset of the first sub in s, or -1.
func (s String) Index(sub String) int {
	return bytes.Index(s.view(), sub.view())
}

// Runes yields the byte offset and value of each code point. An invalid
// byte yields utf8.RuneError and advances by one.
func (s String) Runes() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		b := s.view()
		for off := 0; off < len(b); {
			r, next, err := uutf8.DecodeNext(b, off)
			if err != nil {
				r, next = utf8.RuneError, off+1
			}
			if !yield(off, r) {
				return
			}
			off = next
		}
	}
}

// Validate returns an error wrapping ErrMalformed when s is not valid UTF-8.
func (s String) Validate() error {
	return uutf8.Validate(s.view())
}

// Hash returns the xxh3 hash of the bytes. Equal strings hash equally.
func (s String) Hash() uint64 {
	return xxh3.Hash(s.view())
}

func (s String) String() string {
	return string(s.view())
}

// Bytes returns a copy of the bytes.
func (s String) Bytes() []byte {
	return bytes.Clone(s.view())
}

// Clone returns a second handle sharing the same storage.
func (s String) Clone() String {
	s.st = s.st.Clone()
	return s
}

// Release drops the handle's reference and leaves it empty.
func (s *String) Release() {
	s.st.Release()
	*s = String{}
}

// IsNil reports whether the handle has no storage.
func (s String) IsNil() bool {
	return s.st.IsNil()
}

// RefCount returns the storage reference count, or 0 without storage.
func (s String) RefCount() int32 {
	return s.st.RefCount()
}
