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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimitiveFilterHas(t *testing.T) {
	assert.True(t, DefaultFilter.Has(NodeKind))
	assert.True(t, DefaultFilter.Has(WayKind))
	assert.True(t, DefaultFilter.Has(RelationKind))
	assert.False(t, DefaultFilter.Has(ChangeSetKind))
}

func TestPrimitiveFilterZeroValueSelectsNothing(t *testing.T) {
	var f PrimitiveFilter
	assert.False(t, f.Has(NodeKind))
	assert.False(t, f.Has(ChangeSetKind))
}

func TestPrimitiveFilterChangeSetOptIn(t *testing.T) {
	f := FilterChangeSet
	assert.True(t, f.Has(ChangeSetKind))
	assert.False(t, f.Has(NodeKind))
}

func TestPrimitiveKindString(t *testing.T) {
	assert.Equal(t, "Node", NodeKind.String())
	assert.Equal(t, "Way", WayKind.String())
	assert.Equal(t, "Relation", RelationKind.String())
	assert.Equal(t, "ChangeSet", ChangeSetKind.String())
}

func TestMemberKindString(t *testing.T) {
	assert.Equal(t, "Node", MemberNode.String())
	assert.Equal(t, "Way", MemberWay.String())
	assert.Equal(t, "Relation", MemberRelation.String())
}
