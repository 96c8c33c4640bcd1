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
	"github.com/destel/rill"

	"github.com/pbfstream/osmpbf/internal/core"
	"github.com/pbfstream/osmpbf/internal/pb"
	"github.com/pbfstream/osmpbf/model"
)

// ShardDecode fans a batch of already-framed OSMData blobs out across
// concurrency goroutines, each unpacking and parsing one blob into a
// PrimitiveBlock, and returns the results in the blobs' original order.
// Cursor.Next never calls this itself — it is a sequential reader by
// design (spec.md §5) — but a caller that has read several frames ahead
// with a FrameReader can hand their blobs here to parallelize the CPU-bound
// decompression and parse work across cores. A Frame's slices are reused by
// the next NextFrame call, so such blobs must be copied before reading on.
//
// Each worker uses its own BufferPool acquisition, backed by the shared
// pool, so decompression buffers are still returned for reuse once the
// caller closes every yielded block.
func ShardDecode(blobs []*pb.Blob, pool *core.BufferPool, concurrency int) <-chan rill.Try[*model.PrimitiveBlock] {
	if concurrency <= 0 {
		concurrency = 1
	}

	in := make(chan rill.Try[*pb.Blob])

	go func() {
		defer close(in)

		for _, b := range blobs {
			in <- rill.Try[*pb.Blob]{Value: b}
		}
	}()

	return rill.OrderedMap(in, concurrency, func(blob *pb.Blob) (*model.PrimitiveBlock, error) {
		return ParseDataBlock(blob, pool)
	})
}
