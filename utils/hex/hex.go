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

// Package hex formats binary data for diagnostics. Nothing in objbase
// depends on its output.
package hex

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// Encode returns the lowercase hex digits of b with no separators.
func Encode(b []byte) string {
	return hex.EncodeToString(b)
}

// EncodeUpper returns the uppercase hex digits of b with no separators.
func EncodeUpper(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// Dump returns a hex dump of b: offset, sixteen bytes per line, and the
// printable ASCII column.
func Dump(b []byte) string {
	return hex.Dump(b)
}

// Limit returns a dump of at most max leading bytes of b, noting how many
// bytes were left out.
func Limit(b []byte, max int) string {
	if max < 0 || len(b) <= max {
		return hex.Dump(b)
	}
	var sb strings.Builder
	sb.WriteString(hex.Dump(b[:max]))
	sb.WriteString("... ")
	sb.WriteString(strconv.Itoa(len(b) - max))
	sb.WriteString(" more bytes\n")
	return sb.String()
}
