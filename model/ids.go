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

// Package model contains the shared, resolved view layer for OpenStreetMap
// PBF data: the string table, tags, headers, and the Node/Way/Relation/
// ChangeSet primitives decoded from a block.
package model

// ID is the primary key of a node, way, or relation.
type ID int64

// UID is the primary key of a user.
type UID int32

// PrimitiveKind tags the concrete type carried by a Primitive.
type PrimitiveKind int

const (
	NodeKind PrimitiveKind = iota
	WayKind
	RelationKind
	ChangeSetKind
)

func (k PrimitiveKind) String() string {
	switch k {
	case NodeKind:
		return "Node"
	case WayKind:
		return "Way"
	case RelationKind:
		return "Relation"
	case ChangeSetKind:
		return "ChangeSet"
	default:
		return "Unknown"
	}
}

// MemberKind is the type of a Relation Member.
type MemberKind int32

const (
	MemberNode MemberKind = iota
	MemberWay
	MemberRelation
)

func (k MemberKind) String() string {
	switch k {
	case MemberNode:
		return "Node"
	case MemberWay:
		return "Way"
	case MemberRelation:
		return "Relation"
	default:
		return "Unknown"
	}
}

// PrimitiveFilter selects which primitive kinds a Primitives walk yields.
// The zero value selects nothing; use DefaultFilter for the spec's default.
type PrimitiveFilter uint8

const (
	FilterNode PrimitiveFilter = 1 << iota
	FilterWay
	FilterRelation
	FilterChangeSet
)

// DefaultFilter yields nodes, ways, and relations; changesets are opt-in.
const DefaultFilter = FilterNode | FilterWay | FilterRelation

// Has reports whether the filter selects the given kind.
func (f PrimitiveFilter) Has(k PrimitiveKind) bool {
	switch k {
	case NodeKind:
		return f&FilterNode != 0
	case WayKind:
		return f&FilterWay != 0
	case RelationKind:
		return f&FilterRelation != 0
	case ChangeSetKind:
		return f&FilterChangeSet != 0
	default:
		return false
	}
}
