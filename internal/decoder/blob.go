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
	"compress/zlib"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"

	"github.com/pbfstream/osmpbf/internal/core"
	"github.com/pbfstream/osmpbf/internal/pb"
	"github.com/pbfstream/osmpbf/model"
)

// zstdDecoder is shared across every blob decode: klauspost/compress's
// decoder is safe for concurrent use and expensive enough to build
// (window table setup) that a per-blob instance would dominate decode
// time on small blobs.
var zstdDecoder, _ = zstd.NewReader(nil)

// Unpacked is a decompressed blob's payload on loan from a BufferPool,
// together with the raw bytes to decode. Close returns the backing buffer.
type Unpacked struct {
	Bytes []byte

	buf *core.PooledBuffer
}

// Close returns the blob's decompression buffer to its pool. Safe to call
// on a zero-value Unpacked (the raw, no-copy path).
func (u Unpacked) Close() error {
	if u.buf == nil {
		return nil
	}

	return u.buf.Close()
}

// Unpack decompresses blob according to whichever codec field it carries,
// per spec.md §2's dispatch table. The raw case borrows blob.Raw directly
// (no allocation, no pool involvement); every compressed case decompresses
// into a buffer reserved at max(raw_size, len(payload)) and acquired from
// pool.
func Unpack(blob *pb.Blob, pool *core.BufferPool) (Unpacked, error) {
	if blob.Raw != nil {
		return Unpacked{Bytes: blob.Raw}, nil
	}

	reservation := int(blob.RawSize)

	var (
		payload []byte
		decode  func(dst []byte, src []byte) ([]byte, error)
	)

	switch {
	case blob.ZlibData != nil:
		payload = blob.ZlibData
		decode = decodeZlib
	case blob.LzmaData != nil:
		payload = blob.LzmaData
		decode = decodeLzma
	case blob.Lz4Data != nil:
		payload = blob.Lz4Data
		decode = decodeLz4
	case blob.ZstdData != nil:
		payload = blob.ZstdData
		decode = decodeZstd
	case blob.Bzip2Data != nil:
		return Unpacked{}, fmt.Errorf("%w: bzip2", model.ErrUnsupportedEncoding)
	default:
		return Unpacked{}, fmt.Errorf("%w: no payload field set", model.ErrUnsupportedEncoding)
	}

	if len(payload) > reservation {
		reservation = len(payload)
	}

	pooled := pool.Acquire()
	pooled.Grow(reservation)

	out, err := decode(pooled.Bytes(), payload)
	if err != nil {
		pooled.Close()

		return Unpacked{}, err
	}

	return Unpacked{Bytes: out, buf: pooled}, nil
}

func decodeZlib(dst, src []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("osmpbf: zlib: %w", err)
	}
	defer zr.Close()

	buf := bytes.NewBuffer(dst[:0])

	if _, err := io.Copy(buf, zr); err != nil {
		return nil, fmt.Errorf("osmpbf: zlib: %w", err)
	}

	return buf.Bytes(), nil
}

func decodeLzma(dst, src []byte) ([]byte, error) {
	lr, err := lzma.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("osmpbf: lzma: %w", err)
	}

	buf := bytes.NewBuffer(dst[:0])

	if _, err := io.Copy(buf, lr); err != nil {
		return nil, fmt.Errorf("osmpbf: lzma: %w", err)
	}

	return buf.Bytes(), nil
}

func decodeLz4(dst, src []byte) ([]byte, error) {
	lr := lz4.NewReader(bytes.NewReader(src))

	buf := bytes.NewBuffer(dst[:0])

	if _, err := io.Copy(buf, lr); err != nil {
		return nil, fmt.Errorf("osmpbf: lz4: %w", err)
	}

	return buf.Bytes(), nil
}

func decodeZstd(dst, src []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(src, dst[:0])
	if err != nil {
		return nil, fmt.Errorf("osmpbf: zstd: %w", err)
	}

	return out, nil
}
