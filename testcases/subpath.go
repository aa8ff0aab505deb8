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
	"seehuhn.de/go/pdf/graphics"
)

var subpathCases = []TestCase{
	{
		Name: "two_lines",
		Path: builder{}.
			moveTo(10, 20).lineTo(54, 20).
			moveTo(10, 44).lineTo(54, 44).path(),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
	{
		Name: "open_and_closed",
		Path: append(
			builder{}.moveTo(6, 6).lineTo(58, 6),
			rectangle(16, 20, 48, 52)...).path(),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 2, Join: graphics.LineJoinMiter},
	},
	{
		Name: "crossing",
		Path: builder{}.
			moveTo(10, 10).lineTo(54, 54).
			moveTo(10, 54).lineTo(54, 10).path(),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
	{
		// the middle subpath has zero length and is rejected
		Name: "degenerate_middle",
		Path: builder{}.
			moveTo(10, 14).lineTo(54, 14).
			moveTo(32, 32).lineTo(32, 32).
			moveTo(10, 50).lineTo(54, 50).path(),
		Width:   64,
		Height:  64,
		Op:      Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
		Invalid: true,
	},
	{
		// a subpath without drawing commands is ignored
		Name: "lone_move",
		Path: builder{}.
			moveTo(10, 14).lineTo(54, 14).
			moveTo(32, 32).
			moveTo(10, 50).lineTo(54, 50).path(),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
	{
		Name:   "many_triangles",
		Path:   manyTriangles(4, 4).path(),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 1, Join: graphics.LineJoinBevel},
	},
}

// manyTriangles builds a grid of small closed triangles.
func manyTriangles(rows, cols int) builder {
	const size = 5.0
	const spacing = 14.0
	var b builder
	for row := range rows {
		for col := range cols {
			cx := 11 + float64(col)*spacing
			cy := 11 + float64(row)*spacing
			b = append(b, polygon(cx, cy+size, cx+size, cy-size, cx-size, cy-size)...)
		}
	}
	return b
}
