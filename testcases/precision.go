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
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

var precisionCases = []TestCase{
	{
		Name:   "subpixel_offset_25",
		Path:   rectangle(20.25, 20.25, 44.25, 44.25).path(),
		Width:  64,
		Height: 64,
		Op:     Fill{},
	},
	{
		Name:   "subpixel_offset_50",
		Path:   rectangle(20.5, 20.5, 44.5, 44.5).path(),
		Width:  64,
		Height: 64,
		Op:     Fill{},
	},
	{
		Name:   "thin_ribbon",
		Path:   polyline(5, 10.5, 59, 10.5),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 0.5, Join: graphics.LineJoinMiter},
	},
	{
		// a city-sized offset, as for a station 30 km from the origin
		Name:   "large_offset_fill",
		Path:   rectangle(30012, -20012, 30052, -19972).path(),
		Width:  64,
		Height: 64,
		Op:     Fill{},
		Origin: vec.Vec2{X: 30000, Y: -20024},
	},
	{
		Name:   "large_offset_ribbon",
		Path:   polyline(30010, -19990, 30032, -19970, 30054, -19990),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
		Origin: vec.Vec2{X: 30000, Y: -20000},
	},
	{
		Name:   "short_segments",
		Path:   polyline(10, 32, 10.001, 32.001, 54, 32),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
}
