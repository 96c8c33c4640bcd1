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

import "github.com/golang/geo/s1"

// Degrees is the decimal degree representation of a latitude or longitude,
// the unit every coordinate and bounding-box accessor in this package
// converts to from the wire's nanodegree integers.
type Degrees float64

// Angle is a 1D angle in radians, the unit spherical-geometry libraries
// such as golang/geo expect.
type Angle s1.Angle

// Angle converts d to radians via golang/geo's s1.Angle.
func (d Degrees) Angle() Angle { return Angle(float64(d) * float64(s1.Degree)) }

// EqualWithin reports whether d and o differ by no more than eps degrees,
// for comparing two independently decoded coordinates.
func (d Degrees) EqualWithin(o Degrees, eps Degrees) bool {
	diff := d - o
	if diff < 0 {
		diff = -diff
	}

	return diff <= eps
}
