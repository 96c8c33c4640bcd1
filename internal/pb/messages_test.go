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

package pb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func appendZigZagField(b []byte, num protowire.Number, v int64) []byte {
	return appendVarintField(b, num, protowire.EncodeZigZag(v))
}

func appendPackedZigZags(b []byte, num protowire.Number, vs ...int64) []byte {
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(v))
	}

	return appendBytesField(b, num, packed)
}

func TestUnmarshalBlobHeader(t *testing.T) {
	var buf []byte
	buf = appendBytesField(buf, 1, []byte("OSMHeader"))
	buf = appendVarintField(buf, 3, 123)

	h, err := UnmarshalBlobHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, "OSMHeader", h.Type)
	assert.EqualValues(t, 123, h.Datasize)
}

func TestUnmarshalBlobRaw(t *testing.T) {
	var buf []byte
	buf = appendBytesField(buf, 1, []byte("payload"))

	blob, err := UnmarshalBlob(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), blob.Raw)
}

func TestUnmarshalNodeZigZagFields(t *testing.T) {
	var buf []byte
	buf = appendZigZagField(buf, 1, 42)
	buf = appendZigZagField(buf, 8, 515000000)
	buf = appendZigZagField(buf, 9, 131000000)

	n, err := unmarshalNode(buf)
	require.NoError(t, err)
	assert.EqualValues(t, 42, n.Id)
	assert.EqualValues(t, 515000000, n.Lat)
	assert.EqualValues(t, 131000000, n.Lon)
}

func TestUnmarshalWayRefDeltasAndPlainID(t *testing.T) {
	var buf []byte
	buf = appendVarintField(buf, 1, 7) // Id is plain int64, not zigzag
	buf = appendPackedZigZags(buf, 8, 10, -13, 8)

	w, err := unmarshalWay(buf)
	require.NoError(t, err)
	assert.EqualValues(t, 7, w.Id)
	assert.Equal(t, []int64{10, -13, 8}, w.Refs)
}

func TestUnmarshalRelationUnknownTypePreserved(t *testing.T) {
	var buf []byte
	buf = appendVarintField(buf, 1, 1) // Id plain
	buf = appendPackedZigZags(buf, 9, 100, 5, -2)

	var types []byte
	types = protowire.AppendVarint(types, 0)
	types = protowire.AppendVarint(types, 99)
	types = protowire.AppendVarint(types, 2)
	buf = appendBytesField(buf, 10, types)

	r, err := unmarshalRelation(buf)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 5, -2}, r.Memids)
	assert.Equal(t, []int32{0, 99, 2}, r.Types)
}

func TestUnmarshalChangeSetPlainID(t *testing.T) {
	buf := appendVarintField(nil, 1, 55)

	cs, err := unmarshalChangeSet(buf)
	require.NoError(t, err)
	assert.EqualValues(t, 55, cs.Id)
}

func TestUnmarshalDenseNodesAndInfo(t *testing.T) {
	var info []byte
	info = appendPackedZigZags(info, 4, 1, 1) // uid deltas
	var denseNodes []byte
	denseNodes = appendPackedZigZags(denseNodes, 1, 42)
	denseNodes = appendBytesField(denseNodes, 5, info)
	denseNodes = appendPackedZigZags(denseNodes, 8, 515000000)
	denseNodes = appendPackedZigZags(denseNodes, 9, 131000000)

	var kv []byte
	kv = protowire.AppendVarint(kv, 1)
	kv = protowire.AppendVarint(kv, 2)
	kv = protowire.AppendVarint(kv, 0)
	denseNodes = appendBytesField(denseNodes, 10, kv)

	dn, err := unmarshalDenseNodes(denseNodes)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, dn.Id)
	assert.Equal(t, []int64{515000000}, dn.Lat)
	assert.Equal(t, []int64{131000000}, dn.Lon)
	assert.Equal(t, []int32{1, 2, 0}, dn.KeysVals)
	require.NotNil(t, dn.Denseinfo)
	assert.Equal(t, []int32{1, 1}, dn.Denseinfo.Uid)
}

func TestUnmarshalPrimitiveBlockDefaultsGranularity(t *testing.T) {
	block, err := UnmarshalPrimitiveBlock(nil)
	require.NoError(t, err)
	assert.EqualValues(t, 100, block.Granularity)
	assert.NotNil(t, block.Stringtable)
}

func TestUnmarshalPrimitiveBlockExplicitGranularity(t *testing.T) {
	buf := appendVarintField(nil, 17, 1)

	block, err := UnmarshalPrimitiveBlock(buf)
	require.NoError(t, err)
	assert.EqualValues(t, 1, block.Granularity)
}
