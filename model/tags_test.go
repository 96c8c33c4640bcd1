// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalTagsResolve(t *testing.T) {
	st, err := newStringTable([][]byte{[]byte(""), []byte("name"), []byte("Foo")})
	require.NoError(t, err)

	tags := NormalTags(st, []uint32{1}, []uint32{2})
	require.Equal(t, 1, tags.Len())

	k, v := tags.At(0)
	assert.Equal(t, "name", k)
	assert.Equal(t, "Foo", v)
}

func TestNormalTagsLenClampsToShorterArray(t *testing.T) {
	st, _ := newStringTable([][]byte{[]byte("")})
	tags := NormalTags(st, []uint32{0, 0}, []uint32{0})
	assert.Equal(t, 1, tags.Len())
}

func TestDenseTagsResolve(t *testing.T) {
	st, err := newStringTable([][]byte{[]byte(""), []byte("name"), []byte("Foo")})
	require.NoError(t, err)

	tags := DenseTags(st, []int32{1, 2})
	require.Equal(t, 1, tags.Len())

	k, v := tags.At(0)
	assert.Equal(t, "name", k)
	assert.Equal(t, "Foo", v)
}

func TestTagsAllIteratesInOrder(t *testing.T) {
	st, _ := newStringTable([][]byte{[]byte(""), []byte("a"), []byte("b"), []byte("c"), []byte("d")})
	tags := NormalTags(st, []uint32{1, 3}, []uint32{2, 4})

	var keys, vals []string
	for k, v := range tags.All() {
		keys = append(keys, k)
		vals = append(vals, v)
	}

	assert.Equal(t, []string{"a", "c"}, keys)
	assert.Equal(t, []string{"b", "d"}, vals)
}

func TestTagsAllStopsOnFalse(t *testing.T) {
	st, _ := newStringTable([][]byte{[]byte(""), []byte("a"), []byte("b"), []byte("c"), []byte("d")})
	tags := NormalTags(st, []uint32{1, 3}, []uint32{2, 4})

	var seen int
	for range tags.All() {
		seen++
		break
	}

	assert.Equal(t, 1, seen)
}
