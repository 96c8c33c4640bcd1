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

package decoder

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

func appendFrame(buf *bytes.Buffer, blobType string, payload []byte) {
	var header []byte
	header = protowire.AppendTag(header, 1, protowire.BytesType)
	header = protowire.AppendBytes(header, []byte(blobType))
	header = protowire.AppendTag(header, 3, protowire.VarintType)
	header = protowire.AppendVarint(header, uint64(len(blobPayload(payload))))

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(header)))

	buf.Write(lenPrefix[:])
	buf.Write(header)
	buf.Write(blobPayload(payload))
}

func blobPayload(raw []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, raw)

	return b
}

func TestFrameReaderReadsHeaderAndData(t *testing.T) {
	var buf bytes.Buffer
	appendFrame(&buf, "OSMHeader", []byte("hdrpayload"))
	appendFrame(&buf, "OSMData", []byte("datapayload"))

	fr := NewFrameReader(&buf)

	f1, err := fr.NextFrame()
	require.NoError(t, err)
	assert.Equal(t, "OSMHeader", f1.Header.Type)
	assert.Equal(t, []byte("hdrpayload"), f1.Blob.Raw)

	f2, err := fr.NextFrame()
	require.NoError(t, err)
	assert.Equal(t, "OSMData", f2.Header.Type)
	assert.Equal(t, []byte("datapayload"), f2.Blob.Raw)

	_, err = fr.NextFrame()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFrameReaderCleanEOFBeforeAnyFrame(t *testing.T) {
	fr := NewFrameReader(bytes.NewReader(nil))

	_, err := fr.NextFrame()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFrameReaderTruncatedLengthPrefix(t *testing.T) {
	fr := NewFrameReader(bytes.NewReader([]byte{0, 0}))

	_, err := fr.NextFrame()
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestFrameReaderOversizedHeaderRejected(t *testing.T) {
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], maxBlobHeaderSize+1)

	fr := NewFrameReader(bytes.NewReader(lenPrefix[:]))

	_, err := fr.NextFrame()
	assert.ErrorIs(t, err, model.ErrBlobHeaderTooLarge)
}

func TestFrameReaderOversizedDataRejected(t *testing.T) {
	var header []byte
	header = protowire.AppendTag(header, 1, protowire.BytesType)
	header = protowire.AppendBytes(header, []byte("OSMData"))
	header = protowire.AppendTag(header, 3, protowire.VarintType)
	header = protowire.AppendVarint(header, maxBlobDataSize+1)

	var buf bytes.Buffer

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(header)))
	buf.Write(lenPrefix[:])
	buf.Write(header)

	fr := NewFrameReader(&buf)

	_, err := fr.NextFrame()
	assert.ErrorIs(t, err, model.ErrBlobDataTooLarge)
}

func TestFrameReaderTruncatedDataPayload(t *testing.T) {
	var buf bytes.Buffer
	appendFrame(&buf, "OSMData", []byte("full payload that is long"))

	truncated := buf.Bytes()[:buf.Len()-5]

	fr := NewFrameReader(bytes.NewReader(truncated))

	_, err := fr.NextFrame()
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}
