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

package pbf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/pbfstream/osmpbf/model"
)

func rawFrame(blobType string, rawPayload []byte) []byte {
	var payload []byte
	payload = protowire.AppendTag(payload, 1, protowire.BytesType)
	payload = protowire.AppendBytes(payload, rawPayload)

	var header []byte
	header = protowire.AppendTag(header, 1, protowire.BytesType)
	header = protowire.AppendBytes(header, []byte(blobType))
	header = protowire.AppendTag(header, 3, protowire.VarintType)
	header = protowire.AppendVarint(header, uint64(len(payload)))

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(header)))

	out := append([]byte{}, lenPrefix[:]...)
	out = append(out, header...)
	out = append(out, payload...)

	return out
}

func headerBlockBytes(requiredFeatures ...string) []byte {
	var buf []byte
	for _, f := range requiredFeatures {
		buf = protowire.AppendTag(buf, 4, protowire.BytesType)
		buf = protowire.AppendBytes(buf, []byte(f))
	}

	return buf
}

func denseNodePrimitiveBlockBytes() []byte {
	var stringtable []byte
	for _, s := range []string{"", "name", "Foo"} {
		stringtable = protowire.AppendTag(stringtable, 1, protowire.BytesType)
		stringtable = protowire.AppendBytes(stringtable, []byte(s))
	}

	packedZZ := func(vs ...int64) []byte {
		var b []byte
		for _, v := range vs {
			b = protowire.AppendVarint(b, protowire.EncodeZigZag(v))
		}

		return b
	}

	var dense []byte
	dense = protowire.AppendTag(dense, 1, protowire.BytesType)
	dense = protowire.AppendBytes(dense, packedZZ(42))
	dense = protowire.AppendTag(dense, 8, protowire.BytesType)
	dense = protowire.AppendBytes(dense, packedZZ(515000000))
	dense = protowire.AppendTag(dense, 9, protowire.BytesType)
	dense = protowire.AppendBytes(dense, packedZZ(131000000))

	var kv []byte
	kv = protowire.AppendVarint(kv, 1)
	kv = protowire.AppendVarint(kv, 2)
	kv = protowire.AppendVarint(kv, 0)
	dense = protowire.AppendTag(dense, 10, protowire.BytesType)
	dense = protowire.AppendBytes(dense, kv)

	var group []byte
	group = protowire.AppendTag(group, 2, protowire.BytesType)
	group = protowire.AppendBytes(group, dense)

	var block []byte
	block = protowire.AppendTag(block, 1, protowire.BytesType)
	block = protowire.AppendBytes(block, stringtable)
	block = protowire.AppendTag(block, 2, protowire.BytesType)
	block = protowire.AppendBytes(block, group)

	return block
}

func TestCursorEmptyStream(t *testing.T) {
	cur := FromBytes(nil)

	_, err := cur.Header()
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestCursorHeaderOnlyStream(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(rawFrame("OSMHeader", headerBlockBytes("OsmSchema-V0.6", "DenseNodes")))

	cur := FromBytes(buf.Bytes())

	h, err := cur.Header()
	require.NoError(t, err)
	assert.Equal(t, []string{"OsmSchema-V0.6", "DenseNodes"}, h.RequiredFeatures)

	block, err := cur.Next()
	require.NoError(t, err)
	assert.Nil(t, block)
}

func TestCursorHeaderThenOneDenseNodeBlock(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(rawFrame("OSMHeader", headerBlockBytes()))
	buf.Write(rawFrame("OSMData", denseNodePrimitiveBlockBytes()))

	cur := FromBytes(buf.Bytes())

	_, err := cur.Header()
	require.NoError(t, err)

	block, err := cur.Next()
	require.NoError(t, err)
	require.NotNil(t, block)
	defer block.Close()

	var nodes []model.Node
	for p := range block.Primitives(model.DefaultFilter) {
		nodes = append(nodes, p.(model.Node))
	}

	require.Len(t, nodes, 1)
	assert.EqualValues(t, 42, nodes[0].ID)
	assert.EqualValues(t, 51500000000, nodes[0].NanoLat)
	assert.EqualValues(t, 13100000000, nodes[0].NanoLon)

	next, err := cur.Next()
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestCursorHeaderWrongBlobType(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(rawFrame("OSMData", denseNodePrimitiveBlockBytes()))

	cur := FromBytes(buf.Bytes())

	_, err := cur.Header()
	require.Error(t, err)

	var blobErr *UnexpectedBlobTypeError
	require.ErrorAs(t, err, &blobErr)
	assert.Equal(t, "OSMData", blobErr.Got)
}

func TestCursorDataBlocksIterator(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(rawFrame("OSMHeader", headerBlockBytes()))
	buf.Write(rawFrame("OSMData", denseNodePrimitiveBlockBytes()))
	buf.Write(rawFrame("OSMData", denseNodePrimitiveBlockBytes()))

	cur := FromBytes(buf.Bytes())

	_, err := cur.Header()
	require.NoError(t, err)

	var blockCount int
	for block, err := range cur.DataBlocks() {
		require.NoError(t, err)
		blockCount++
		block.Close()
	}

	assert.Equal(t, 2, blockCount)
}

func TestCursorRewind(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(rawFrame("OSMHeader", headerBlockBytes("A")))

	cur := FromBytes(buf.Bytes())

	h1, err := cur.Header()
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, h1.RequiredFeatures)

	require.NoError(t, cur.Rewind())

	h2, err := cur.Header()
	require.NoError(t, err)
	assert.Equal(t, h1.RequiredFeatures, h2.RequiredFeatures)
}

func TestCursorRewindUnsupported(t *testing.T) {
	r, w := io.Pipe()
	defer r.Close()
	defer w.Close()

	cur := FromReader(r)

	err := cur.Rewind()
	assert.Error(t, err)
}
