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

// kappa places the control points of a cubic quarter circle.
const kappa = 0.5522847498

var curveCases = []TestCase{
	{
		Name:   "quadratic",
		Path:   builder{}.moveTo(10, 14).quadTo(32, 64, 54, 14).path(),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
	{
		Name:   "cubic",
		Path:   builder{}.moveTo(10, 32).cubeTo(20, 60, 44, 4, 54, 32).path(),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
	{
		Name:   "cubic_loop",
		Path:   builder{}.moveTo(10, 14).cubeTo(70, 60, -6, 60, 54, 14).path(),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 2, Join: graphics.LineJoinBevel},
	},
	{
		Name:   "circle",
		Path:   circle(32, 32, 20).path(),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
	{
		Name:   "line_then_curve",
		Path:   builder{}.moveTo(8, 14).lineTo(24, 14).cubeTo(40, 14, 50, 30, 50, 54).path(),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
}

// circle builds a closed circle from four cubic arcs.
func circle(cx, cy, r float64) builder {
	k := r * kappa
	return builder{}.
		moveTo(cx+r, cy).
		cubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r).
		cubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy).
		cubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r).
		cubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy).
		close()
}
