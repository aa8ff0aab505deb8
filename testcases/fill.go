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
package testcases

import (
	"math"
)

var fillCases = []TestCase{
	{
		Name:   "triangle",
		Path:   polygon(10, 14, 32, 54, 54, 14).path(),
		Width:  64,
		Height: 64,
		Op:     Fill{},
	},
	{
		Name:   "triangle_clockwise",
		Path:   polygon(10, 14, 54, 14, 32, 54).path(),
		Width:  64,
		Height: 64,
		Op:     Fill{},
	},
	{
		Name:   "rectangle",
		Path:   rectangle(10, 10, 54, 54).path(),
		Width:  64,
		Height: 64,
		Op:     Fill{},
	},
	{
		Name:   "concave_l",
		Path:   polygon(10, 10, 54, 10, 54, 24, 24, 24, 24, 54, 10, 54).path(),
		Width:  64,
		Height: 64,
		Op:     Fill{},
	},
	{
		Name:   "star",
		Path:   star(32, 32, 25, 10).path(),
		Width:  64,
		Height: 64,
		Op:     Fill{},
	},
	{
		Name:   "hole",
		Path:   append(rectangle(8, 8, 56, 56), rectangle(24, 24, 40, 40)...).path(),
		Width:  64,
		Height: 64,
		Op:     Fill{},
	},
	{
		Name:   "two_holes",
		Path:   append(append(rectangle(8, 8, 56, 56), rectangle(14, 14, 28, 50)...), rectangle(36, 14, 50, 50)...).path(),
		Width:  64,
		Height: 64,
		Op:     Fill{},
	},
	{
		Name:    "collinear",
		Path:    polygon(10, 10, 32, 32, 54, 54).path(),
		Width:   64,
		Height:  64,
		Op:      Fill{},
		Invalid: true,
	},
}

// rectangle builds a closed axis-aligned rectangle.
func rectangle(x1, y1, x2, y2 float64) builder {
	return polygon(x1, y1, x2, y1, x2, y2, x1, y2)
}

// star builds a concave five-pointed star with alternating outer and
// inner radii.
func star(cx, cy, outer, inner float64) builder {
	var xy []float64
	for i := range 10 {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := math.Pi/2 + float64(i)*math.Pi/5
		xy = append(xy, cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return polygon(xy...)
}
