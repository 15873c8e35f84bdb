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

// Package basetypes holds the primitive aliases and integer helpers shared
// by objbase users, plus short names for the handle types.
package basetypes

import (
	"math"
	"math/bits"
	"strconv"
	"unsafe"

	"golang.org/x/exp/constraints"

	"dirpx.dev/objbase/object"
	"dirpx.dev/objbase/rcarray"
	"dirpx.dev/objbase/rcstring"
	"dirpx.dev/objbase/utils/uuid"
)

// Fixed-width integer aliases.
type (
	// Int8 is a signed 8-bit integer.
	Int8 = int8
	// Int16 is a signed 16-bit integer.
	Int16 = int16
	// Int32 is a signed 32-bit integer.
	Int32 = int32
	// Int64 is a signed 64-bit integer.
	Int64 = int64
	// Uint8 is an unsigned 8-bit integer.
	Uint8 = uint8
	// Uint16 is an unsigned 16-bit integer.
	Uint16 = uint16
	// Uint32 is an unsigned 32-bit integer.
	Uint32 = uint32
	// Uint64 is an unsigned 64-bit integer.
	Uint64 = uint64
	// Byte is an unsigned 8-bit value.
	Byte = byte

	// UUID is the identifier type used across objbase.
	UUID = uuid.UUID
)

// Handle is a counted reference to a participating object.
type Handle[T object.Object] = object.Ref[T]

// ByteArray is a copy-on-write byte buffer.
type ByteArray = rcarray.Array[byte]

// Widths in bits of the Short, Integer and Long families.
const (
	// ShortSize is the width of a Short.
	ShortSize = 16
	// IntegerSize is the width of an Integer.
	IntegerSize = 32
	// LongSize is the width of a Long.
	LongSize = 64
)

// Limits of the Short, Integer and Long families.
const (
	// MaxShort is the largest Short.
	MaxShort int16 = math.MaxInt16
	// MinShort is the smallest Short.
	MinShort int16 = math.MinInt16
	// MaxInteger is the largest Integer.
	MaxInteger int32 = math.MaxInt32
	// MinInteger is the smallest Integer.
	MinInteger int32 = math.MinInt32
	// MaxLong is the largest Long.
	MaxLong int64 = math.MaxInt64
	// MinLong is the smallest Long.
	MinLong int64 = math.MinInt64
)

// NaN is the quiet not-a-number double.
var NaN = math.NaN()

func bitSize[T constraints.Integer]() int {
	var v T
	return int(unsafe.Sizeof(v)) * 8
}

// unsigned returns the two's complement bits of v, truncated to T's width.
func unsigned[T constraints.Integer](v T) uint64 {
	n := bitSize[T]()
	u := uint64(v)
	if n < 64 {
		u &= 1<<n - 1
	}
	return u
}

// Signum returns -1, 0 or 1 following the sign of v.
func Signum[T constraints.Signed](v T) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// LeadingZeros counts the zero bits above the highest set bit of v within
// T's width.
func LeadingZeros[T constraints.Integer](v T) int {
	return bits.LeadingZeros64(unsigned(v)) - (64 - bitSize[T]())
}

// LeadingOnes counts the consecutive set bits at the top of v within T's
// width.
func LeadingOnes[T constraints.Integer](v T) int {
	return LeadingZeros(^v)
}

// LowestOneBit isolates the lowest set bit of v, or returns 0.
func LowestOneBit[T constraints.Integer](v T) T {
	return v & -v
}

// ToHexString formats the two's complement bits of v in lowercase hex
// without leading zeros, so ToHexString(int32(-1)) is "ffffffff".
func ToHexString[T constraints.Integer](v T) rcstring.String {
	return rcstring.New(strconv.FormatUint(unsigned(v), 16))
}
