// seehuhn.de/go/transitmap - geometry for a live transit map
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package tess

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/transitmap"
	"seehuhn.de/go/transitmap/geo"
)

// Disc appends a filled circle to m, as a fan of the given number of
// triangles around the centre. This emits segments+1 vertices.
func Disc(center vec.Vec2, radius float64, segments int, c geo.Color, m *Mesh) error {
	if !geo.IsFinite(center) {
		return fmt.Errorf("centre is not finite: %w", transitmap.ErrMalformedGeometry)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return fmt.Errorf("radius %g: %w", radius, transitmap.ErrMalformedGeometry)
	}
	segments = max(segments, 3)

	base := m.addVertex(center, c, vec.Vec2{}, 1)
	for _, p := range geo.Circle(center, radius, 360/float64(segments)) {
		m.addVertex(p, c, vec.Vec2{}, 1)
	}
	for i := range segments {
		j := (i + 1) % segments
		m.addTriangle(base, base+1+uint32(i), base+1+uint32(j))
	}
	return nil
}
