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
	"fmt"
	"unicode/utf8"
)

// StringTable is the per-block, zero-copy index-to-string lookup. Every
// entity view in a block resolves its keys, values, and roles through one
// of these rather than holding its own copies.
type StringTable struct {
	values []string
}

// newStringTable validates and converts a block's raw byte strings once, up
// front, so that later lookups never fail.
func newStringTable(raw [][]byte) (*StringTable, error) {
	values := make([]string, len(raw))

	for i, b := range raw {
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidUTF8, i)
		}

		values[i] = string(b)
	}

	return &StringTable{values: values}, nil
}

// Get returns the string at index i, or "" if i is out of range. It never
// panics and never fails: OSM data in the wild carries occasional
// out-of-range tag/role indices, and upstream tooling treats those as empty.
func (t *StringTable) Get(i int) string {
	if t == nil || i < 0 || i >= len(t.values) {
		return ""
	}

	return t.values[i]
}

// Len reports the number of entries in the table.
func (t *StringTable) Len() int {
	if t == nil {
		return 0
	}

	return len(t.values)
}
