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

package rcstring_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/objbase/rcstring"
)

func TestBasics(t *testing.T) {
	s := rcstring.New("héllo")
	defer s.Release()

	assert.Equal(t, 6, s.Len())
	assert.Equal(t, 5, s.RuneCount())
	assert.Equal(t, "héllo", s.String())
	assert.NoError(t, s.Validate())

	b, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, byte('h'), b)
	_, err = s.At(6)
	assert.True(t, errors.Is(err, rcstring.ErrOutOfRange))
}

func TestZeroValue(t *testing.T) {
	var s rcstring.String
	assert.True(t, s.IsNil())
	assert.Zero(t, s.Len())
	assert.Equal(t, "", s.String())
	assert.True(t, rcstring.Equal(s, rcstring.New("")))
	s.Release()
}

func TestSubstringShares(t *testing.T) {
	s := rcstring.New("hello, world")
	sub, err := s.Substring(7, 5)
	require.NoError(t, err)

	assert.Equal(t, "world", sub.String())
	assert.EqualValues(t, 2, s.RefCount())

	_, err = s.Substring(7, 6)
	assert.True(t, errors.Is(err, rcstring.ErrOutOfRange))

	s.Release()
	assert.Equal(t, "world", sub.String(), "substring keeps storage alive")
	assert.EqualValues(t, 1, sub.RefCount())
	sub.Release()
}

func TestSubstringDoesNotAllocate(t *testing.T) {
	s := rcstring.New("abcdef")
	defer s.Release()

	subs := make([]rcstring.String, 0, 256)
	allocs := testing.AllocsPerRun(100, func() {
		sub, _ := s.Substring(1, 3)
		subs = append(subs, sub)
	})
	assert.Zero(t, allocs)
	assert.EqualValues(t, len(subs)+1, s.RefCount())
	for i := range subs {
		subs[i].Release()
	}
	assert.EqualValues(t, 1, s.RefCount())
}

func TestConcatAndCompare(t *testing.T) {
	a := rcstring.New("foo")
	b := rcstring.FromBytes([]byte("bar"))
	ab := rcstring.Concat(a, b)
	defer a.Release()
	defer b.Release()
	defer ab.Release()

	assert.Equal(t, "foobar", ab.String())
	assert.True(t, ab.HasPrefix(a))
	assert.Equal(t, 3, ab.Index(b))
	assert.Equal(t, -1, a.Index(b))

	assert.True(t, rcstring.Less(b, a))
	assert.Equal(t, 1, rcstring.Compare(a, b))
	c := a.Clone()
	defer c.Release()
	assert.Equal(t, 0, rcstring.Compare(a, c))

	f := rcstring.Format("%s-%d", "x", 7)
	defer f.Release()
	assert.Equal(t, "x-7", f.String())
}

func TestHashFollowsEquality(t *testing.T) {
	whole := rcstring.New("xxabcxx")
	defer whole.Release()
	view, _ := whole.Substring(2, 3)
	defer view.Release()
	fresh := rcstring.New("abc")
	defer fresh.Release()

	assert.True(t, rcstring.Equal(view, fresh))
	assert.Equal(t, fresh.Hash(), view.Hash())
	assert.NotEqual(t, fresh.Hash(), whole.Hash())
}

func TestRunes(t *testing.T) {
	s := rcstring.FromBytes([]byte{'a', 0xFF, 0xC3, 0xA9})
	defer s.Release()

	var offs []int
	var runes []rune
	for off, r := range s.Runes() {
		offs = append(offs, off)
		runes = append(runes, r)
	}
	assert.Equal(t, []int{0, 1, 2}, offs)
	assert.Equal(t, []rune{'a', '�', 'é'}, runes)
	assert.True(t, errors.Is(s.Validate(), rcstring.ErrMalformed))
}

func TestBytesIsACopy(t *testing.T) {
	s := rcstring.New("abc")
	defer s.Release()

	b := s.Bytes()
	b[0] = 'z'
	assert.Equal(t, "abc", s.String())

	sorted := []rcstring.String{rcstring.New("b"), rcstring.New("a")}
	slices.SortFunc(sorted, rcstring.Compare)
	assert.Equal(t, "a", sorted[0].String())
	for i := range sorted {
		sorted[i].Release()
	}
}

func TestSubstringSplitsRunes(t *testing.T) {
	s := rcstring.New("é!")
	defer s.Release()

	half, err := s.Substring(1, 2)
	require.NoError(t, err, "byte offsets need not fall on rune boundaries")
	defer half.Release()
	assert.Equal(t, []byte{0xA9, '!'}, half.Bytes())
	assert.ErrorIs(t, half.Validate(), rcstring.ErrMalformed)

	_, err = s.Substring(2, 2)
	assert.ErrorIs(t, err, rcstring.ErrOutOfRange)
}
