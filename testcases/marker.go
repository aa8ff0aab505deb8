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

var markerCases = []TestCase{
	{
		Name:   "disc",
		Path:   builder{}.moveTo(32, 32).path(),
		Width:  64,
		Height: 64,
		Op:     Markers{Radius: 20, Segments: 32},
	},
	{
		Name:   "coarse_disc",
		Path:   builder{}.moveTo(32, 32).path(),
		Width:  64,
		Height: 64,
		Op:     Markers{Radius: 20, Segments: 6},
	},
	{
		Name:   "clipped",
		Path:   builder{}.moveTo(0, 0).moveTo(64, 32).path(),
		Width:  64,
		Height: 64,
		Op:     Markers{Radius: 16, Segments: 16},
	},
	{
		Name:    "zero_radius",
		Path:    builder{}.moveTo(32, 32).path(),
		Width:   64,
		Height:  64,
		Op:      Markers{Radius: 0, Segments: 16},
		Invalid: true,
	},
}
