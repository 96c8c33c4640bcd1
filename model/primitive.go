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

// Primitive is the tagged union yielded by a block's primitive walk: a
// Node, Way, Relation, or ChangeSet. Type-switch on the concrete type to
// recover the fields, the same way callers type-switch on the result of
// Decoder.Decode in the teacher lineage this package descends from.
type Primitive interface {
	Kind() PrimitiveKind
}

// Entity is the subset of Primitive that carries an ID, tags, and Info:
// everything except ChangeSet.
type Entity interface {
	Primitive
	GetID() ID
	GetTags() Tags
	GetInfo() Info
}

// Node represents a specific point on the earth's surface. NanoLat/NanoLon
// are nanodegrees (offset + raw*granularity, per spec.md §3); Lat/Lon
// convert to decimal degrees.
type Node struct {
	ID      ID
	NanoLat int64
	NanoLon int64
	Tags    Tags
	Info    Info
}

func (Node) Kind() PrimitiveKind { return NodeKind }
func (n Node) GetID() ID         { return n.ID }
func (n Node) GetTags() Tags     { return n.Tags }
func (n Node) GetInfo() Info     { return n.Info }

// Lat returns the decoded latitude in decimal degrees.
func (n Node) Lat() Degrees { return Degrees(n.NanoLat) / 1e9 }

// Lon returns the decoded longitude in decimal degrees.
func (n Node) Lon() Degrees { return Degrees(n.NanoLon) / 1e9 }

// LatLon returns the decoded position as golang/geo angles, the unit a
// caller doing spherical-geometry math (e.g. checking it against a
// Header's BoundingBox) needs instead of raw decimal degrees.
func (n Node) LatLon() (lat, lon Angle) { return n.Lat().Angle(), n.Lon().Angle() }

// Way is an ordered list of node references that define a polyline.
type Way struct {
	ID   ID
	Refs []ID
	Tags Tags
	Info Info
}

func (Way) Kind() PrimitiveKind { return WayKind }
func (w Way) GetID() ID         { return w.ID }
func (w Way) GetTags() Tags     { return w.Tags }
func (w Way) GetInfo() Info     { return w.Info }

// Member is one element of a Relation: another entity plus the role it
// plays in the relation.
type Member struct {
	ID   ID
	Kind MemberKind
	Role string
}

// Relation documents a relationship between two or more entities.
type Relation struct {
	ID      ID
	Members []Member
	Tags    Tags
	Info    Info
}

func (Relation) Kind() PrimitiveKind { return RelationKind }
func (r Relation) GetID() ID         { return r.ID }
func (r Relation) GetTags() Tags     { return r.Tags }
func (r Relation) GetInfo() Info     { return r.Info }

// ChangeSet carries only an identity; later fields are deliberately ignored.
type ChangeSet struct {
	ID ID
}

func (ChangeSet) Kind() PrimitiveKind { return ChangeSetKind }
