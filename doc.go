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

// Package pbf streams OpenStreetMap PBF (Protocol Buffer Binary Format)
// data.
//
// A Cursor reads a byte stream frame by frame, decompressing each blob and
// decoding it into resolved views: a Header for the stream's single
// OSMHeader blob, and a PrimitiveBlock per OSMData blob. Typical use:
//
//	cur := pbf.FromReader(r)
//
//	header, err := cur.Header()
//	if err != nil {
//		// ...
//	}
//
//	for block, err := range cur.DataBlocks() {
//		if err != nil {
//			// ...
//		}
//		defer block.Close()
//
//		for prim := range block.Primitives(model.DefaultFilter) {
//			switch v := prim.(type) {
//			case model.Node:
//				// ...
//			case model.Way:
//				// ...
//			case model.Relation:
//				// ...
//			}
//		}
//	}
package pbf
