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
	"fmt"

	"github.com/pbfstream/osmpbf/internal/core"
	"github.com/pbfstream/osmpbf/internal/pb"
	"github.com/pbfstream/osmpbf/model"
)

// ParseDataBlock decompresses an OSMData frame and decodes it into a
// model.PrimitiveBlock. The returned block owns unpacked's pooled buffer
// (if any); closing the block returns it.
func ParseDataBlock(blob *pb.Blob, pool *core.BufferPool) (*model.PrimitiveBlock, error) {
	unpacked, err := Unpack(blob, pool)
	if err != nil {
		return nil, fmt.Errorf("osmpbf: unpacking data blob: %w", err)
	}

	raw, err := pb.UnmarshalPrimitiveBlock(unpacked.Bytes)
	if err != nil {
		unpacked.Close()

		return nil, fmt.Errorf("osmpbf: decoding primitive block: %w", err)
	}

	block, err := model.NewPrimitiveBlock(raw, func() { unpacked.Close() })
	if err != nil {
		unpacked.Close()

		return nil, fmt.Errorf("osmpbf: building primitive block view: %w", err)
	}

	return block, nil
}

// ParseHeaderBlob decompresses and decodes an OSMHeader frame's blob into a
// model.Header in one step. A compressed header blob's decompression buffer
// comes from pool and goes back to it before this returns, since the Header
// keeps copies of every string it holds.
func ParseHeaderBlob(blob *pb.Blob, pool *core.BufferPool) (model.Header, error) {
	unpacked, err := Unpack(blob, pool)
	if err != nil {
		return model.Header{}, fmt.Errorf("osmpbf: unpacking header blob: %w", err)
	}
	defer unpacked.Close()

	return ParseHeaderBlock(unpacked.Bytes)
}
