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
	"errors"
	"fmt"
	"io"

	"github.com/pbfstream/osmpbf/internal/core"
	"github.com/pbfstream/osmpbf/internal/decoder"
	"github.com/pbfstream/osmpbf/model"
)

const (
	blobTypeHeader = "OSMHeader"
	blobTypeData   = "OSMData"
)

// Cursor reads successive frames from a PBF byte stream and decodes them
// into resolved views. It is sequential and single-goroutine by design
// (spec.md §5): callers that want parallel decode work fan out themselves,
// e.g. with ShardDecode-style batching over blobs read ahead of time.
type Cursor struct {
	src    io.Reader
	frames *decoder.FrameReader
	pool   *core.BufferPool

	done  bool
	fatal error
}

// FromReader builds a Cursor over an arbitrary io.Reader.
func FromReader(r io.Reader, opts ...CursorOption) *Cursor {
	cfg := defaultCursorOptions
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cursor{
		src:    r,
		frames: decoder.NewFrameReader(r),
		pool:   core.NewBufferPool(cfg.bufferPoolCapacity),
	}
}

// FromBytes builds a Cursor over an in-memory byte slice. The returned
// Cursor supports Rewind, since bytes.Reader implements io.Seeker.
func FromBytes(b []byte, opts ...CursorOption) *Cursor {
	return FromReader(bytes.NewReader(b), opts...)
}

// Header reads exactly one frame — the stream's leading OSMHeader blob —
// and decodes it. It does not skip past other frame types: a stream whose
// first frame isn't OSMHeader is malformed, and Header reports that with
// an UnexpectedBlobTypeError. A stream with no frames at all (S1, spec.md
// §8) reports io.ErrUnexpectedEOF rather than the clean io.EOF that Next
// uses for its own end-of-stream case, since a header is always expected
// to exist.
func (c *Cursor) Header() (model.Header, error) {
	if c.fatal != nil {
		return model.Header{}, c.fatal
	}

	frame, err := c.frames.NextFrame()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("osmpbf: reading header: %w", io.ErrUnexpectedEOF)
		}

		c.fatal = err

		return model.Header{}, err
	}

	if frame.Header.Type != blobTypeHeader {
		err := &model.UnexpectedBlobTypeError{Got: frame.Header.Type}
		c.fatal = err

		return model.Header{}, err
	}

	header, err := decoder.ParseHeaderBlob(frame.Blob, c.pool)
	if err != nil {
		c.fatal = err

		return model.Header{}, err
	}

	return header, nil
}

// Next reads and decodes the next OSMData frame, skipping every other
// frame along the way: further OSMHeader frames as well as any auxiliary
// blob types. It returns (nil, nil) at a clean end of stream. Once
// Next has returned a non-nil error, the Cursor is done: every subsequent
// call returns that same error.
//
// The returned PrimitiveBlock stays valid after later Next calls. Close it
// (via its Close method) to return its decompression buffer to the pool.
// Closing is not required: an unclosed buffer is never returned to the
// pool and is left to the garbage collector, and the pool allocates a
// fresh buffer in its place.
func (c *Cursor) Next() (*model.PrimitiveBlock, error) {
	if c.done {
		return nil, c.fatal
	}

	for {
		frame, err := c.frames.NextFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.done = true

				return nil, nil
			}

			c.done = true
			c.fatal = err

			return nil, err
		}

		switch frame.Header.Type {
		case blobTypeData:
			block, err := decoder.ParseDataBlock(frame.Blob, c.pool)
			if err != nil {
				c.done = true
				c.fatal = err

				return nil, err
			}

			return block, nil

		case blobTypeHeader:
			// Already consumed via Header, or the caller skipped it;
			// either way it carries no primitives, keep scanning.
			continue

		default:
			continue
		}
	}
}

// DataBlocks is a range-over-func wrapper around Next: it yields every
// remaining data block in order and stops (without yielding an error) at
// a clean end of stream. A decode error is yielded once, as the final
// pair, with a nil block.
func (c *Cursor) DataBlocks() func(yield func(*model.PrimitiveBlock, error) bool) {
	return func(yield func(*model.PrimitiveBlock, error) bool) {
		for {
			block, err := c.Next()
			if err != nil {
				yield(nil, err)

				return
			}

			if block == nil {
				return
			}

			if !yield(block, nil) {
				return
			}
		}
	}
}

// Rewind restores the Cursor to the beginning of the stream, per spec.md
// §4.7, when the underlying byte source supports seeking. It reports an
// error if the source isn't an io.Seeker.
func (c *Cursor) Rewind() error {
	seeker, ok := c.src.(io.Seeker)
	if !ok {
		return fmt.Errorf("osmpbf: rewind: %w", errNotSeekable)
	}

	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("osmpbf: rewind: %w", err)
	}

	c.frames = decoder.NewFrameReader(c.src)
	c.done = false
	c.fatal = nil

	return nil
}

var errNotSeekable = errors.New("source does not support seeking")
