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

// Package decoder implements the frame, blob, header, and block decoding
// stages that sit between a raw byte stream and the model package's
// resolved views.
package decoder

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pbfstream/osmpbf/internal/pb"
	"github.com/pbfstream/osmpbf/model"
)

// maxBlobHeaderSize and maxBlobDataSize are the hard caps enforced on every
// frame, per spec.md §2: a header over 64 KiB or a blob over 32 MiB means
// the stream is corrupt or hostile, never a legitimate oversized entry.
const (
	maxBlobHeaderSize = 64 * 1024
	maxBlobDataSize   = 32 * 1024 * 1024
)

// Frame is one length-framed (BlobHeader, Blob) pair read off the stream.
type Frame struct {
	Header *pb.BlobHeader
	Blob   *pb.Blob
}

// FrameReader pulls successive (BlobHeader, Blob) frames from an
// io.Reader, reusing its scratch buffers across calls. A Frame's byte
// slices (and the Blob's, transitively) alias those scratch buffers and
// are only valid until the next NextFrame call — callers must finish
// decoding a frame's blob before asking for the next one.
type FrameReader struct {
	r       io.Reader
	lenBuf  [4]byte
	hdrBuf  []byte
	dataBuf []byte
}

// NewFrameReader wraps r for sequential frame reads.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// NextFrame reads the next frame from the stream. A clean end of stream
// (zero bytes read before the length prefix) reports io.EOF; any error
// encountered after that point — including a truncated length prefix or
// partial payload — reports io.ErrUnexpectedEOF or a wrapped decode error,
// never io.EOF, per spec.md §2 edge case S1.
func (r *FrameReader) NextFrame() (Frame, error) {
	if _, err := io.ReadFull(r.r, r.lenBuf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}

		return Frame{}, fmt.Errorf("osmpbf: reading blob header length: %w", io.ErrUnexpectedEOF)
	}

	hdrLen := binary.BigEndian.Uint32(r.lenBuf[:])
	if hdrLen > maxBlobHeaderSize {
		return Frame{}, model.ErrBlobHeaderTooLarge
	}

	if cap(r.hdrBuf) < int(hdrLen) {
		r.hdrBuf = make([]byte, hdrLen)
	}

	r.hdrBuf = r.hdrBuf[:hdrLen]

	if _, err := io.ReadFull(r.r, r.hdrBuf); err != nil {
		return Frame{}, fmt.Errorf("osmpbf: reading blob header: %w", io.ErrUnexpectedEOF)
	}

	header, err := pb.UnmarshalBlobHeader(r.hdrBuf)
	if err != nil {
		return Frame{}, fmt.Errorf("osmpbf: decoding blob header: %w", err)
	}

	if header.Datasize < 0 || header.Datasize > maxBlobDataSize {
		return Frame{}, model.ErrBlobDataTooLarge
	}

	if cap(r.dataBuf) < int(header.Datasize) {
		r.dataBuf = make([]byte, header.Datasize)
	}

	r.dataBuf = r.dataBuf[:header.Datasize]

	if _, err := io.ReadFull(r.r, r.dataBuf); err != nil {
		return Frame{}, fmt.Errorf("osmpbf: reading blob data: %w", io.ErrUnexpectedEOF)
	}

	blob, err := pb.UnmarshalBlob(r.dataBuf)
	if err != nil {
		return Frame{}, fmt.Errorf("osmpbf: decoding blob: %w", err)
	}

	if blob.RawSize > maxBlobDataSize {
		return Frame{}, model.ErrBlobDataTooLarge
	}

	return Frame{Header: header, Blob: blob}, nil
}
