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
	"time"

	"github.com/pbfstream/osmpbf/internal/pb"
)

// Info is the metadata common to Node, Way, and Relation. A primitive that
// carries no Info gets defaultInfo: Version 0, Visible true (the zero value
// has Visible false). Timestamp/Changeset/UID/User are populated only when the source
// block carries them (they are not part of spec.md's required contract but
// are decoded when present, matching the denseinfo/Info messages' full
// field set).
type Info struct {
	Version   uint32
	Visible   bool
	Timestamp time.Time
	Changeset int64
	UID       UID
	User      string
}

// defaultInfo is {Version: 0, Visible: true}, per spec.md §3.
func defaultInfo() Info {
	return Info{Visible: true}
}

// denseInfoCursor walks a DenseInfo's parallel arrays alongside a
// DenseNodes.Id walk. Timestamp/Changeset/UID/UserSid are delta-coded and
// accumulated across positions; Version is not delta-coded and is read
// directly by index.
type denseInfoCursor struct {
	strings *StringTable

	granularity int32

	versions   []int32
	uids       []int32
	timestamps []int64
	changesets []int64
	userSids   []int32
	visibles   []bool

	uid       int32
	timestamp int64
	changeset int64
	userSid   int32
}

func newDenseInfoCursor(strings *StringTable, granularity int32, di *pb.DenseInfo) *denseInfoCursor {
	c := &denseInfoCursor{strings: strings, granularity: granularity}
	if di != nil {
		c.versions = di.Version
		c.uids = di.Uid
		c.timestamps = di.Timestamp
		c.changesets = di.Changeset
		c.userSids = di.UserSid
		c.visibles = di.Visible
	}

	return c
}

// at returns the Info for dense position p, defaulting Version/Visible per
// spec when the source carried no denseinfo at all.
func (c *denseInfoCursor) at(p int) Info {
	if c.versions == nil && c.uids == nil && c.timestamps == nil {
		return defaultInfo()
	}

	info := Info{Visible: true}

	if p < len(c.versions) {
		info.Version = uint32(c.versions[p])
	}

	if p < len(c.uids) {
		c.uid += c.uids[p]
		info.UID = UID(c.uid)
	}

	if p < len(c.timestamps) {
		c.timestamp += c.timestamps[p]
		info.Timestamp = timestampFor(c.granularity, c.timestamp)
	}

	if p < len(c.changesets) {
		c.changeset += c.changesets[p]
		info.Changeset = c.changeset
	}

	if p < len(c.userSids) {
		c.userSid += c.userSids[p]
		info.User = c.strings.Get(int(c.userSid))
	}

	if p < len(c.visibles) {
		info.Visible = c.visibles[p]
	}

	return info
}

func timestampFor(granularity int32, raw int64) time.Time {
	if granularity == 0 {
		granularity = 1000
	}

	return time.UnixMilli(raw * int64(granularity)).UTC()
}
