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

// Package geo describes the static geography of a transit map.
//
// All coordinates of a [Model] live in one flat working frame, measured in
// metres from a chosen origin (see [Local]). X grows northward and Y grows
// eastward; the camera relies on this order when it maps points to the
// screen.
package geo

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/transitmap"
)

// Polyline is an ordered route, drawn as a ribbon.
type Polyline struct {
	ID     string
	Points []vec.Vec2
	Color  Color
}

// Polygon is a filled region. Rings[0] is the outer boundary and any
// further rings are holes. Rings are implicitly closed.
type Polygon struct {
	ID    string
	Rings [][]vec.Vec2
	Color Color
}

// Station is a point marker with a label.
type Station struct {
	ID    string
	Name  string
	Pos   vec.Vec2
	Color Color
}

// Model is the complete static geography. It is built once by a loader
// and not modified afterwards.
type Model struct {
	Regions  []Polygon
	Lines    []Polyline
	Stations []Station
}

// Validate checks that the polyline has at least two points and that all
// coordinates are finite.
func (l *Polyline) Validate() error {
	if len(l.Points) < 2 {
		return fmt.Errorf("polyline with %d points: %w",
			len(l.Points), transitmap.ErrMalformedGeometry)
	}
	for i, p := range l.Points {
		if !IsFinite(p) {
			return fmt.Errorf("point %d is %v: %w", i, p, transitmap.ErrMalformedGeometry)
		}
	}
	return nil
}

// Validate checks that the outer ring has at least three points and that
// all coordinates are finite. Degenerate holes are allowed; they are
// ignored when the polygon is filled.
func (g *Polygon) Validate() error {
	if len(g.Rings) == 0 {
		return fmt.Errorf("polygon without rings: %w", transitmap.ErrMalformedGeometry)
	}
	if len(g.Rings[0]) < 3 {
		return fmt.Errorf("outer ring has %d points: %w",
			len(g.Rings[0]), transitmap.ErrMalformedGeometry)
	}
	for i, ring := range g.Rings {
		for j, p := range ring {
			if !IsFinite(p) {
				return fmt.Errorf("ring %d point %d is %v: %w",
					i, j, p, transitmap.ErrMalformedGeometry)
			}
		}
	}
	return nil
}

// Validate checks that the station position is finite.
func (s *Station) Validate() error {
	if !IsFinite(s.Pos) {
		return fmt.Errorf("position %v: %w", s.Pos, transitmap.ErrMalformedGeometry)
	}
	return nil
}

// Bounds returns the smallest rectangle containing every finite point of
// the model. The zero rectangle is returned for an empty model.
func (m *Model) Bounds() rect.Rect {
	var b rect.Rect
	first := true
	add := func(p vec.Vec2) {
		if !IsFinite(p) {
			return
		}
		if first {
			b = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
			first = false
			return
		}
		b.LLx = min(b.LLx, p.X)
		b.LLy = min(b.LLy, p.Y)
		b.URx = max(b.URx, p.X)
		b.URy = max(b.URy, p.Y)
	}
	for _, r := range m.Regions {
		for _, ring := range r.Rings {
			for _, p := range ring {
				add(p)
			}
		}
	}
	for _, l := range m.Lines {
		for _, p := range l.Points {
			add(p)
		}
	}
	for _, s := range m.Stations {
		add(s.Pos)
	}
	return b
}

// Circle returns a closed ring approximating a circle, with one point
// every stepDeg degrees. The first point is not repeated at the end.
func Circle(center vec.Vec2, radius, stepDeg float64) []vec.Vec2 {
	if !(stepDeg > 0) {
		stepDeg = 5
	}
	n := max(int(math.Round(360/stepDeg)), 3)
	ring := make([]vec.Vec2, n)
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = vec.Vec2{
			X: center.X + radius*math.Cos(phi),
			Y: center.Y + radius*math.Sin(phi),
		}
	}
	return ring
}

// IsFinite reports whether both coordinates of p are finite.
func IsFinite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) &&
		!math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
