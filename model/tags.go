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

// Tags is a lazily-resolved (key, value) sequence borrowed from its block's
// string table. It never copies a string itself; resolution happens in At
// or during iteration with All.
//
// Exactly one backing representation is populated: the Normal layout holds
// parallel key/value string-table index arrays; the Dense layout holds a
// slice straight out of a DenseNodes.KeysVals stream (key, value pairs
// concatenated, no terminating zero — the iterator has already trimmed
// that), reused without copying.
type Tags struct {
	table *StringTable

	keys, vals  []uint32
	interleaved []int32
}

// NormalTags builds a Tags view over a block's parallel key/value index
// arrays. Per spec, the pair count is min(len(keys), len(vals)).
func NormalTags(table *StringTable, keys, vals []uint32) Tags {
	return Tags{table: table, keys: keys, vals: vals}
}

// DenseTags builds a Tags view over a pre-sliced segment of a dense group's
// keys_vals stream (key, value, key, value, ... with the terminating zero
// already excluded).
func DenseTags(table *StringTable, interleaved []int32) Tags {
	return Tags{table: table, interleaved: interleaved}
}

// Len reports the number of (key, value) pairs.
func (t Tags) Len() int {
	if t.interleaved != nil {
		return len(t.interleaved) / 2
	}

	n := len(t.keys)
	if len(t.vals) < n {
		n = len(t.vals)
	}

	return n
}

// At resolves the i'th pair. i must be in [0, Len()).
func (t Tags) At(i int) (key, value string) {
	if t.interleaved != nil {
		return t.table.Get(int(t.interleaved[2*i])), t.table.Get(int(t.interleaved[2*i+1]))
	}

	return t.table.Get(int(t.keys[i])), t.table.Get(int(t.vals[i]))
}

// All returns a range-over-func iterator of (key, value) pairs in stored
// order.
func (t Tags) All() func(yield func(key, value string) bool) {
	return func(yield func(key, value string) bool) {
		n := t.Len()
		for i := 0; i < n; i++ {
			k, v := t.At(i)
			if !yield(k, v) {
				return
			}
		}
	}
}
