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

import "fmt"

// Recognized header feature strings (spec.md §3).
const (
	FeatureDenseNodes           = "DenseNodes"
	FeatureHistoricalInfo       = "HistoricalInformation"
	FeatureHasMetadata          = "Has_Metadata"
	FeatureSortTypeThenID       = "Sort.Type_then_ID"
	FeatureSortGeographic       = "Sort.Geographic"
	FeatureLocationsOnWays      = "LocationsOnWays"
	nanodegreesPerDegree  int64 = 1_000_000_000
)

// BoundingBox is four integer-nanodegree edges, as carried by a HeaderBlock.
type BoundingBox struct {
	Left, Right, Top, Bottom int64
}

// LeftDegrees etc. convert the stored nanodegrees to decimal degrees.
func (b BoundingBox) LeftDegrees() Degrees   { return Degrees(b.Left) / Degrees(nanodegreesPerDegree) }
func (b BoundingBox) RightDegrees() Degrees  { return Degrees(b.Right) / Degrees(nanodegreesPerDegree) }
func (b BoundingBox) TopDegrees() Degrees    { return Degrees(b.Top) / Degrees(nanodegreesPerDegree) }
func (b BoundingBox) BottomDegrees() Degrees { return Degrees(b.Bottom) / Degrees(nanodegreesPerDegree) }

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%f, %f, %f, %f]", b.LeftDegrees(), b.BottomDegrees(), b.RightDegrees(), b.TopDegrees())
}

// Contains reports whether lat/lon, given as angles, fall within b. Angle is
// the unit golang/geo's spherical-geometry types use, so a caller comparing
// decoded coordinates against a header bounding box never has to round-trip
// through degrees twice.
func (b BoundingBox) Contains(lat, lon Angle) bool {
	top, bottom := b.TopDegrees().Angle(), b.BottomDegrees().Angle()
	left, right := b.LeftDegrees().Angle(), b.RightDegrees().Angle()

	return lat <= top && lat >= bottom && lon >= left && lon <= right
}

// Header is the immutable record carried by the single OSMHeader blob of a
// PBF stream.
type Header struct {
	BoundingBox                      *BoundingBox
	RequiredFeatures                 []string
	OptionalFeatures                 []string
	WritingProgram                   string
	Source                           string
	OsmosisReplicationTimestamp      int64
	OsmosisReplicationSequenceNumber int64
	OsmosisReplicationBaseURL        string
}

// HasFeature reports whether name appears in either feature list.
func (h Header) HasFeature(name string) bool {
	for _, f := range h.RequiredFeatures {
		if f == name {
			return true
		}
	}

	for _, f := range h.OptionalFeatures {
		if f == name {
			return true
		}
	}

	return false
}
