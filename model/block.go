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

package model

import (
	"github.com/pbfstream/osmpbf/internal/pb"
)

// PrimitiveBlock is the per-block frame within which primitives are
// decoded. It owns its string table and group buffers for the lifetime of
// any entity view borrowed from it — entity views never outlive the block.
// Close returns the block's decompression buffer(s) to the pool they came
// from.
type PrimitiveBlock struct {
	strings     *StringTable
	groups      []*pb.PrimitiveGroup
	latOffset   int64
	lonOffset   int64
	granularity int32
	dateGran    int32

	release func()
}

// NewPrimitiveBlock builds a PrimitiveBlock view over a decoded
// protobuf PrimitiveBlock message. release is called exactly once, by
// Close, to return the underlying decompression buffer to its pool.
func NewPrimitiveBlock(raw *pb.PrimitiveBlock, release func()) (*PrimitiveBlock, error) {
	strings, err := newStringTable(raw.Stringtable.S)
	if err != nil {
		return nil, err
	}

	granularity := raw.Granularity
	if granularity == 0 {
		granularity = 100
	}

	return &PrimitiveBlock{
		strings:     strings,
		groups:      raw.Primitivegroup,
		latOffset:   raw.LatOffset,
		lonOffset:   raw.LonOffset,
		granularity: granularity,
		dateGran:    raw.DateGranularity,
		release:     release,
	}, nil
}

// Close returns the block's decompression buffer to the Buffer Pool it was
// acquired from, if any. It is safe to call more than once.
func (b *PrimitiveBlock) Close() error {
	if b.release != nil {
		b.release()
		b.release = nil
	}

	return nil
}

// StringTable exposes the block's zero-copy string lookup, for callers
// resolving indices outside of the entity views (e.g. diagnostics).
func (b *PrimitiveBlock) StringTable() *StringTable { return b.strings }

func (b *PrimitiveBlock) toNanoLat(raw int64) int64 { return b.latOffset + raw*int64(b.granularity) }
func (b *PrimitiveBlock) toNanoLon(raw int64) int64 { return b.lonOffset + raw*int64(b.granularity) }

// Primitives walks every group in the block, in order, yielding a tagged
// union of Node/Way/Relation/ChangeSet views that pass filter. It is a
// range-over-func iterator: break out of the loop early (e.g. a caller only
// wants the first match) and no further decoding work happens.
func (b *PrimitiveBlock) Primitives(filter PrimitiveFilter) func(yield func(Primitive) bool) {
	return func(yield func(Primitive) bool) {
		var st groupState

		for groupIdx := 0; groupIdx < len(b.groups); groupIdx++ {
			g := b.groups[groupIdx]
			st = groupState{}

			for st.phase != phaseDone {
				prim, ok := b.stepGroup(g, &st, filter)
				if !ok {
					continue
				}

				if !yield(prim) {
					return
				}
			}
		}
	}
}

// Groups returns a finer-grained, per-group walk: each call to the
// iterator yields one PrimitiveGroupView, without flattening its contents.
func (b *PrimitiveBlock) Groups() func(yield func(*PrimitiveGroupView) bool) {
	return func(yield func(*PrimitiveGroupView) bool) {
		for _, g := range b.groups {
			if !yield(&PrimitiveGroupView{block: b, raw: g}) {
				return
			}
		}
	}
}

// PrimitiveGroupView is one group of a PrimitiveBlock, exposed without
// flattening into the block-wide Primitives walk.
type PrimitiveGroupView struct {
	block *PrimitiveBlock
	raw   *pb.PrimitiveGroup
}

// Primitives walks this single group's sub-collections in the same
// nodes/dense/ways/relations/changesets priority order as PrimitiveBlock's
// block-wide walk.
func (g *PrimitiveGroupView) Primitives(filter PrimitiveFilter) func(yield func(Primitive) bool) {
	return func(yield func(Primitive) bool) {
		var st groupState

		for st.phase != phaseDone {
			prim, ok := g.block.stepGroup(g.raw, &st, filter)
			if !ok {
				continue
			}

			if !yield(prim) {
				return
			}
		}
	}
}

// phase names which of a group's five sub-collections is currently being
// walked; groups hold at most one populated in practice, but the walk
// honors the full nodes -> dense -> ways -> relations -> changesets
// priority order regardless.
type phase int

const (
	phaseNodes phase = iota
	phaseDense
	phaseWays
	phaseRelations
	phaseChangesets
	phaseDone
)

// groupState is the Primitive Iterator's explicit, cheap-to-copy state:
// (phase, intra-group position, dense accumulators). It is a state machine,
// not a goroutine or implicit suspension, so that iteration is trivially
// cancelable.
type groupState struct {
	phase phase
	pos   int
	dense *denseCursor
}

// denseCursor tracks the running id/lat/lon accumulators and the keys_vals
// tag-stream cursor across a DenseNodes walk.
type denseCursor struct {
	idAcc, latAcc, lonAcc int64
	kvCursor              int
	info                  *denseInfoCursor
}

// stepGroup advances st by exactly one sub-collection position, returning
// (primitive, true) when a filter-matching primitive was produced, or
// (nil, false) if this step only advanced bookkeeping (phase transition or
// a filtered-out element) and the caller should call again.
func (b *PrimitiveBlock) stepGroup(g *pb.PrimitiveGroup, st *groupState, filter PrimitiveFilter) (Primitive, bool) {
	switch st.phase {
	case phaseNodes:
		if st.pos >= len(g.Nodes) {
			st.phase, st.pos = phaseDense, 0
			st.dense = &denseCursor{}

			if g.Dense != nil {
				st.dense.info = newDenseInfoCursor(b.strings, b.dateGran, g.Dense.Denseinfo)
			}

			return nil, false
		}

		n := g.Nodes[st.pos]
		st.pos++

		if !filter.Has(NodeKind) {
			return nil, false
		}

		return b.decodeNode(n), true

	case phaseDense:
		if g.Dense == nil || st.pos >= len(g.Dense.Id) {
			st.phase, st.pos = phaseWays, 0

			return nil, false
		}

		node := b.decodeDenseNode(g.Dense, st.dense, st.pos)
		st.pos++

		if !filter.Has(NodeKind) {
			return nil, false
		}

		return node, true

	case phaseWays:
		if st.pos >= len(g.Ways) {
			st.phase, st.pos = phaseRelations, 0

			return nil, false
		}

		w := g.Ways[st.pos]
		st.pos++

		if !filter.Has(WayKind) {
			return nil, false
		}

		return b.decodeWay(w), true

	case phaseRelations:
		if st.pos >= len(g.Relations) {
			st.phase, st.pos = phaseChangesets, 0

			return nil, false
		}

		r := g.Relations[st.pos]
		st.pos++

		if !filter.Has(RelationKind) {
			return nil, false
		}

		return b.decodeRelation(r), true

	case phaseChangesets:
		if st.pos >= len(g.Changesets) {
			st.phase = phaseDone

			return nil, false
		}

		cs := g.Changesets[st.pos]
		st.pos++

		if !filter.Has(ChangeSetKind) {
			return nil, false
		}

		return ChangeSet{ID: ID(cs.Id)}, true

	default:
		return nil, false
	}
}

func (b *PrimitiveBlock) decodeNode(n *pb.Node) Node {
	return Node{
		ID:      ID(n.Id),
		NanoLat: b.toNanoLat(n.Lat),
		NanoLon: b.toNanoLon(n.Lon),
		Tags:    NormalTags(b.strings, n.Keys, n.Vals),
		Info:    b.decodeInfo(n.Info),
	}
}

func (b *PrimitiveBlock) decodeDenseNode(dn *pb.DenseNodes, dc *denseCursor, p int) Node {
	dc.idAcc += dn.Id[p]
	dc.latAcc += dn.Lat[p]
	dc.lonAcc += dn.Lon[p]

	var tags Tags
	if dn.KeysVals != nil {
		tags = DenseTags(b.strings, sliceDenseTags(dn.KeysVals, &dc.kvCursor))
	}

	info := defaultInfo()
	if dc.info != nil {
		info = dc.info.at(p)
	}

	return Node{
		ID:      ID(dc.idAcc),
		NanoLat: b.toNanoLat(dc.latAcc),
		NanoLon: b.toNanoLon(dc.lonAcc),
		Tags:    tags,
		Info:    info,
	}
}

// sliceDenseTags returns the next node's (key, value, key, value, ...)
// segment of a dense keys_vals stream and advances cursor past its
// terminating zero, per spec.md §4.6 step 4.
func sliceDenseTags(kv []int32, cursor *int) []int32 {
	start := *cursor

	i := start
	for i < len(kv) && kv[i] != 0 {
		i += 2
	}

	end := i

	if i < len(kv) {
		*cursor = i + 1
	} else {
		*cursor = i
	}

	return kv[start:end]
}

func (b *PrimitiveBlock) decodeWay(w *pb.Way) Way {
	refs := make([]ID, len(w.Refs))

	var acc int64
	for i, delta := range w.Refs {
		acc += delta
		refs[i] = ID(acc)
	}

	return Way{
		ID:   ID(w.Id),
		Refs: refs,
		Tags: NormalTags(b.strings, w.Keys, w.Vals),
		Info: b.decodeInfo(w.Info),
	}
}

func (b *PrimitiveBlock) decodeRelation(r *pb.Relation) Relation {
	n := len(r.Memids)
	members := make([]Member, 0, n)

	var memID int64

	for i := 0; i < n; i++ {
		memID += r.Memids[i]

		kind, ok := decodeMemberKind(r.Types[i])
		if !ok {
			// Unknown member-kind values are skipped without failing the
			// block; the accumulator above still advances.
			continue
		}

		role := ""
		if i < len(r.RolesSid) {
			role = b.strings.Get(int(r.RolesSid[i]))
		}

		members = append(members, Member{ID: ID(memID), Kind: kind, Role: role})
	}

	return Relation{
		ID:      ID(r.Id),
		Members: members,
		Tags:    NormalTags(b.strings, r.Keys, r.Vals),
		Info:    b.decodeInfo(r.Info),
	}
}

func decodeMemberKind(raw int32) (MemberKind, bool) {
	switch raw {
	case 0:
		return MemberNode, true
	case 1:
		return MemberWay, true
	case 2:
		return MemberRelation, true
	default:
		return 0, false
	}
}

func (b *PrimitiveBlock) decodeInfo(info *pb.Info) Info {
	if info == nil {
		return defaultInfo()
	}

	out := Info{
		Version:   uint32(info.Version),
		Visible:   true,
		Changeset: info.Changeset,
		UID:       UID(info.Uid),
		Timestamp: timestampFor(1000, info.Timestamp),
		User:      b.strings.Get(int(info.UserSid)),
	}

	if info.Visible != nil {
		out.Visible = *info.Visible
	}

	return out
}
