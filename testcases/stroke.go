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

var ribbonCases = []TestCase{
	{
		Name:   "line",
		Path:   polyline(10, 32, 54, 32),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 4, Join: graphics.LineJoinMiter},
	},
	{
		Name:   "diagonal",
		Path:   polyline(10, 10, 54, 54),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
	{
		Name:   "corner_miter",
		Path:   polyline(10, 14, 32, 50, 54, 14),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name:   "corner_bevel",
		Path:   polyline(10, 14, 32, 50, 54, 14),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinBevel},
	},
	{
		Name:   "right_angle",
		Path:   polyline(14, 14, 14, 50, 50, 50),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 4, Join: graphics.LineJoinMiter},
	},
	{
		// the miter factor at the tip exceeds the default limit
		Name:   "sharp_corner",
		Path:   polyline(10, 20, 54, 32, 10, 44),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
	{
		Name:   "reversal",
		Path:   polyline(10, 32, 54, 32, 20, 32),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
	{
		Name:   "zigzag",
		Path:   polyline(6, 20, 16, 44, 26, 20, 36, 44, 46, 20, 56, 44),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 2, Join: graphics.LineJoinMiter, MiterLimit: 4},
	},
	{
		Name:   "closed_square",
		Path:   rectangle(14, 14, 50, 50).path(),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 3, Join: graphics.LineJoinMiter},
	},
	{
		Name:   "duplicate_points",
		Path:   polyline(10, 32, 10, 32, 32, 32, 32, 32, 54, 32),
		Width:  64,
		Height: 64,
		Op:     Ribbon{HalfWidth: 4, Join: graphics.LineJoinMiter},
	},
	{
		Name:    "single_point",
		Path:    polyline(32, 32, 32, 32),
		Width:   64,
		Height:  64,
		Op:      Ribbon{HalfWidth: 4, Join: graphics.LineJoinMiter},
		Invalid: true,
	},
}
