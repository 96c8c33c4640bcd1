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

// Package core holds the low-level, shared-mutable-state plumbing used by
// the decoder: a bounded buffer pool.
package core

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"
)

// DefaultPoolCapacity is the free-list size used when a Cursor doesn't
// configure one explicitly.
const DefaultPoolCapacity = 32

// BufferPool is a bounded, concurrency-safe free list of byte buffers. It
// amortizes allocation across the large, short-lived decompression targets
// that the Blob Decoder produces once per blob.
//
// Over-subscription silently drops returned buffers (the allocator reclaims
// them); starvation allocates fresh ones. Correctness never depends on a
// buffer being returned.
type BufferPool struct {
	free chan *bytes.Buffer
}

// NewBufferPool creates a pool that holds at most capacity idle buffers.
func NewBufferPool(capacity int) *BufferPool {
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}

	return &BufferPool{free: make(chan *bytes.Buffer, capacity)}
}

// Acquire returns a cleared buffer, reused from the free list if one is
// available, or freshly allocated otherwise.
func (p *BufferPool) Acquire() *PooledBuffer {
	select {
	case b := <-p.free:
		b.Reset()

		return &PooledBuffer{Buffer: b, pool: p}
	default:
		return &PooledBuffer{Buffer: new(bytes.Buffer), pool: p}
	}
}

// Stats reports the pool's current idle count and capacity, for diagnostics.
func (p *BufferPool) Stats() Stats {
	return Stats{Free: len(p.free), Capacity: cap(p.free)}
}

// Stats is a snapshot of BufferPool occupancy.
type Stats struct {
	Free     int
	Capacity int
}

func (s Stats) String() string {
	return fmt.Sprintf("%s/%s buffers free", humanize.Comma(int64(s.Free)), humanize.Comma(int64(s.Capacity)))
}

// PooledBuffer is a *bytes.Buffer on loan from a BufferPool. Close returns
// it to the pool if there's room, or lets the allocator reclaim it.
type PooledBuffer struct {
	*bytes.Buffer
	pool *BufferPool
}

// Close resets and releases the buffer back to its pool.
func (b *PooledBuffer) Close() error {
	if b.pool == nil {
		return nil
	}

	b.Reset()

	select {
	case b.pool.free <- b.Buffer:
	default:
	}

	b.pool = nil

	return nil
}
