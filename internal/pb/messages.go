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

package pb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// BlobHeader is fileformat.proto's BlobHeader message.
type BlobHeader struct {
	Type     string
	Datasize int32
}

func UnmarshalBlobHeader(b []byte) (*BlobHeader, error) {
	h := &BlobHeader{}

	err := forEachField(b, func(f field) error {
		switch f.num {
		case 1: // type
			h.Type = string(f.buf)
		case 3: // datasize
			h.Datasize = int32(f.u64)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pb: BlobHeader: %w", err)
	}

	return h, nil
}

// Blob is fileformat.proto's Blob message. Each payload variant has its own
// field; only the one present on the wire is non-nil.
type Blob struct {
	Raw       []byte
	RawSize   int32
	ZlibData  []byte
	LzmaData  []byte
	Bzip2Data []byte
	Lz4Data   []byte
	ZstdData  []byte
}

func UnmarshalBlob(b []byte) (*Blob, error) {
	blob := &Blob{}

	err := forEachField(b, func(f field) error {
		switch f.num {
		case 1:
			blob.Raw = f.buf
		case 2:
			blob.RawSize = int32(f.u64)
		case 3:
			blob.ZlibData = f.buf
		case 4:
			blob.LzmaData = f.buf
		case 5:
			blob.Bzip2Data = f.buf
		case 6:
			blob.Lz4Data = f.buf
		case 7:
			blob.ZstdData = f.buf
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pb: Blob: %w", err)
	}

	return blob, nil
}

// HeaderBBox is osmformat.proto's HeaderBBox, nanodegree coordinates.
type HeaderBBox struct {
	Left, Right, Top, Bottom int64
}

func unmarshalHeaderBBox(b []byte) (*HeaderBBox, error) {
	bbox := &HeaderBBox{}

	err := forEachField(b, func(f field) error {
		switch f.num {
		case 1:
			bbox.Left = protowire.DecodeZigZag(f.u64)
		case 2:
			bbox.Right = protowire.DecodeZigZag(f.u64)
		case 3:
			bbox.Top = protowire.DecodeZigZag(f.u64)
		case 4:
			bbox.Bottom = protowire.DecodeZigZag(f.u64)
		}

		return nil
	})

	return bbox, err
}

// HeaderBlock is osmformat.proto's HeaderBlock message.
type HeaderBlock struct {
	Bbox                             *HeaderBBox
	RequiredFeatures                 []string
	OptionalFeatures                 []string
	Writingprogram                   string
	Source                           string
	OsmosisReplicationTimestamp      int64
	OsmosisReplicationSequenceNumber int64
	OsmosisReplicationBaseUrl        string
}

func UnmarshalHeaderBlock(b []byte) (*HeaderBlock, error) {
	h := &HeaderBlock{}

	err := forEachField(b, func(f field) error {
		switch f.num {
		case 1:
			bbox, err := unmarshalHeaderBBox(f.buf)
			if err != nil {
				return fmt.Errorf("bbox: %w", err)
			}

			h.Bbox = bbox
		case 4:
			h.RequiredFeatures = append(h.RequiredFeatures, string(f.buf))
		case 5:
			h.OptionalFeatures = append(h.OptionalFeatures, string(f.buf))
		case 16:
			h.Writingprogram = string(f.buf)
		case 17:
			h.Source = string(f.buf)
		case 32:
			h.OsmosisReplicationTimestamp = int64(f.u64)
		case 33:
			h.OsmosisReplicationSequenceNumber = int64(f.u64)
		case 34:
			h.OsmosisReplicationBaseUrl = string(f.buf)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pb: HeaderBlock: %w", err)
	}

	return h, nil
}

// StringTable is osmformat.proto's StringTable: the raw, not-yet-validated
// byte strings as they appeared on the wire.
type StringTable struct {
	S [][]byte
}

func unmarshalStringTable(b []byte) (*StringTable, error) {
	st := &StringTable{}

	err := forEachField(b, func(f field) error {
		if f.num == 1 {
			st.S = append(st.S, f.buf)
		}

		return nil
	})

	return st, err
}

// Info is osmformat.proto's per-entity Info message.
type Info struct {
	Version   int32
	Timestamp int64
	Changeset int64
	Uid       int32
	UserSid   int32
	Visible   *bool
}

func unmarshalInfo(b []byte) (*Info, error) {
	info := &Info{}

	err := forEachField(b, func(f field) error {
		switch f.num {
		case 1:
			info.Version = int32(f.u64)
		case 2:
			info.Timestamp = int64(f.u64)
		case 3:
			info.Changeset = int64(f.u64)
		case 4:
			info.Uid = int32(f.u64)
		case 5:
			info.UserSid = int32(f.u64)
		case 6:
			v := f.u64 != 0
			info.Visible = &v
		}

		return nil
	})

	return info, err
}

// DenseInfo is osmformat.proto's DenseInfo: parallel arrays aligned with
// DenseNodes.Id. Every array except Version is delta-coded.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64
	Changeset []int64
	Uid       []int32
	UserSid   []int32
	Visible   []bool
}

func unmarshalDenseInfo(b []byte) (*DenseInfo, error) {
	di := &DenseInfo{}

	var raw []uint64

	err := forEachField(b, func(f field) error {
		var err error

		raw = raw[:0]

		switch f.num {
		case 1:
			raw, err = packedVarints(f, raw)
			di.Version = appendInt32s(di.Version, raw)
		case 2:
			raw, err = packedVarints(f, raw)
			di.Timestamp = appendZigZags(di.Timestamp, raw)
		case 3:
			raw, err = packedVarints(f, raw)
			di.Changeset = appendZigZags(di.Changeset, raw)
		case 4:
			raw, err = packedVarints(f, raw)
			di.Uid = appendInt32sZigZag(di.Uid, raw)
		case 5:
			raw, err = packedVarints(f, raw)
			di.UserSid = appendInt32sZigZag(di.UserSid, raw)
		case 6:
			raw, err = packedVarints(f, raw)
			di.Visible = appendBools(di.Visible, raw)
		}

		return err
	})

	return di, err
}

func appendInt32sZigZag(dst []int32, raw []uint64) []int32 {
	for _, v := range raw {
		dst = append(dst, int32(protowire.DecodeZigZag(v)))
	}

	return dst
}

// Node is osmformat.proto's non-dense Node message.
type Node struct {
	Id   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  int64
	Lon  int64
}

func unmarshalNode(b []byte) (*Node, error) {
	n := &Node{}

	var raw []uint64

	err := forEachField(b, func(f field) error {
		var err error

		raw = raw[:0]

		switch f.num {
		case 1:
			n.Id = protowire.DecodeZigZag(f.u64)
		case 2:
			raw, err = packedVarints(f, raw)
			n.Keys = appendUint32s(n.Keys, raw)
		case 3:
			raw, err = packedVarints(f, raw)
			n.Vals = appendUint32s(n.Vals, raw)
		case 4:
			n.Info, err = unmarshalInfo(f.buf)
		case 8:
			n.Lat = protowire.DecodeZigZag(f.u64)
		case 9:
			n.Lon = protowire.DecodeZigZag(f.u64)
		}

		return err
	})

	return n, err
}

// DenseNodes is osmformat.proto's DenseNodes message: delta-coded id/lat/lon
// arrays plus an optional DenseInfo and a flattened keys_vals tag stream.
type DenseNodes struct {
	Id        []int64
	Denseinfo *DenseInfo
	Lat       []int64
	Lon       []int64
	KeysVals  []int32
}

func unmarshalDenseNodes(b []byte) (*DenseNodes, error) {
	dn := &DenseNodes{}

	var raw []uint64

	err := forEachField(b, func(f field) error {
		var err error

		raw = raw[:0]

		switch f.num {
		case 1:
			raw, err = packedVarints(f, raw)
			dn.Id = appendZigZags(dn.Id, raw)
		case 5:
			dn.Denseinfo, err = unmarshalDenseInfo(f.buf)
		case 8:
			raw, err = packedVarints(f, raw)
			dn.Lat = appendZigZags(dn.Lat, raw)
		case 9:
			raw, err = packedVarints(f, raw)
			dn.Lon = appendZigZags(dn.Lon, raw)
		case 10:
			raw, err = packedVarints(f, raw)
			dn.KeysVals = appendInt32sPlain(dn.KeysVals, raw)
		}

		return err
	})

	return dn, err
}

func appendInt32sPlain(dst []int32, raw []uint64) []int32 {
	for _, v := range raw {
		dst = append(dst, int32(int64(v)))
	}

	return dst
}

// Way is osmformat.proto's Way message: a delta-coded list of node refs.
type Way struct {
	Id   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64
}

func unmarshalWay(b []byte) (*Way, error) {
	w := &Way{}

	var raw []uint64

	err := forEachField(b, func(f field) error {
		var err error

		raw = raw[:0]

		switch f.num {
		case 1:
			w.Id = int64(f.u64)
		case 2:
			raw, err = packedVarints(f, raw)
			w.Keys = appendUint32s(w.Keys, raw)
		case 3:
			raw, err = packedVarints(f, raw)
			w.Vals = appendUint32s(w.Vals, raw)
		case 4:
			w.Info, err = unmarshalInfo(f.buf)
		case 8:
			raw, err = packedVarints(f, raw)
			w.Refs = appendZigZags(w.Refs, raw)
		}

		return err
	})

	return w, err
}

// Relation is osmformat.proto's Relation message. Member types are kept as
// raw int32s (not an enum) so that an out-of-range type can be detected and
// skipped rather than rejected wholesale.
type Relation struct {
	Id       int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSid []int32
	Memids   []int64
	Types    []int32
}

func unmarshalRelation(b []byte) (*Relation, error) {
	r := &Relation{}

	var raw []uint64

	err := forEachField(b, func(f field) error {
		var err error

		raw = raw[:0]

		switch f.num {
		case 1:
			r.Id = int64(f.u64)
		case 2:
			raw, err = packedVarints(f, raw)
			r.Keys = appendUint32s(r.Keys, raw)
		case 3:
			raw, err = packedVarints(f, raw)
			r.Vals = appendUint32s(r.Vals, raw)
		case 4:
			r.Info, err = unmarshalInfo(f.buf)
		case 8:
			raw, err = packedVarints(f, raw)
			r.RolesSid = appendInt32s(r.RolesSid, raw)
		case 9:
			raw, err = packedVarints(f, raw)
			r.Memids = appendZigZags(r.Memids, raw)
		case 10:
			raw, err = packedVarints(f, raw)
			r.Types = appendInt32s(r.Types, raw)
		}

		return err
	})

	return r, err
}

// ChangeSet is osmformat.proto's ChangeSet message. Only Id is modeled;
// later fields are deliberately ignored.
type ChangeSet struct {
	Id int64
}

func unmarshalChangeSet(b []byte) (*ChangeSet, error) {
	cs := &ChangeSet{}

	err := forEachField(b, func(f field) error {
		if f.num == 1 {
			cs.Id = int64(f.u64)
		}

		return nil
	})

	return cs, err
}

// PrimitiveGroup is osmformat.proto's PrimitiveGroup: at most one of its
// sub-collections is populated in a well-formed file, but all are modeled.
type PrimitiveGroup struct {
	Nodes      []*Node
	Dense      *DenseNodes
	Ways       []*Way
	Relations  []*Relation
	Changesets []*ChangeSet
}

func unmarshalPrimitiveGroup(b []byte) (*PrimitiveGroup, error) {
	g := &PrimitiveGroup{}

	err := forEachField(b, func(f field) error {
		var err error

		switch f.num {
		case 1:
			var n *Node
			n, err = unmarshalNode(f.buf)
			g.Nodes = append(g.Nodes, n)
		case 2:
			g.Dense, err = unmarshalDenseNodes(f.buf)
		case 3:
			var w *Way
			w, err = unmarshalWay(f.buf)
			g.Ways = append(g.Ways, w)
		case 4:
			var r *Relation
			r, err = unmarshalRelation(f.buf)
			g.Relations = append(g.Relations, r)
		case 5:
			var cs *ChangeSet
			cs, err = unmarshalChangeSet(f.buf)
			g.Changesets = append(g.Changesets, cs)
		}

		return err
	})

	return g, err
}

// PrimitiveBlock is osmformat.proto's PrimitiveBlock: the per-block frame
// that groups, string table, and coordinate parameters all live within.
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     int32
	LatOffset       int64
	LonOffset       int64
	DateGranularity int32

	granularitySet bool
}

func UnmarshalPrimitiveBlock(b []byte) (*PrimitiveBlock, error) {
	pb := &PrimitiveBlock{}

	err := forEachField(b, func(f field) error {
		var err error

		switch f.num {
		case 1:
			pb.Stringtable, err = unmarshalStringTable(f.buf)
		case 2:
			var g *PrimitiveGroup
			g, err = unmarshalPrimitiveGroup(f.buf)
			pb.Primitivegroup = append(pb.Primitivegroup, g)
		case 17:
			pb.Granularity = int32(f.u64)
			pb.granularitySet = true
		case 18:
			pb.DateGranularity = int32(f.u64)
		case 19:
			pb.LatOffset = int64(f.u64)
		case 20:
			pb.LonOffset = int64(f.u64)
		}

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("pb: PrimitiveBlock: %w", err)
	}

	if !pb.granularitySet {
		pb.Granularity = 100
	}

	if pb.Stringtable == nil {
		pb.Stringtable = &StringTable{}
	}

	return pb, nil
}
