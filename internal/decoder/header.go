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

	"github.com/pbfstream/osmpbf/internal/pb"
	"github.com/pbfstream/osmpbf/model"
)

// ParseHeaderBlock decodes a fully unpacked OSMHeader blob payload into the
// model's resolved Header.
func ParseHeaderBlock(raw []byte) (model.Header, error) {
	hb, err := pb.UnmarshalHeaderBlock(raw)
	if err != nil {
		return model.Header{}, fmt.Errorf("osmpbf: decoding header block: %w", err)
	}

	h := model.Header{
		RequiredFeatures:                 hb.RequiredFeatures,
		OptionalFeatures:                 hb.OptionalFeatures,
		WritingProgram:                   hb.Writingprogram,
		Source:                           hb.Source,
		OsmosisReplicationTimestamp:      hb.OsmosisReplicationTimestamp,
		OsmosisReplicationSequenceNumber: hb.OsmosisReplicationSequenceNumber,
		OsmosisReplicationBaseURL:        hb.OsmosisReplicationBaseUrl,
	}

	if hb.Bbox != nil {
		h.BoundingBox = &model.BoundingBox{
			Left:   hb.Bbox.Left,
			Right:  hb.Bbox.Right,
			Top:    hb.Bbox.Top,
			Bottom: hb.Bbox.Bottom,
		}
	}

	return h, nil
}
