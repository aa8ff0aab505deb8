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

	"seehuhn.de/go/pdf/graphics"
)

// largeCases exercise meshes with many records, as for a city-sized map
// drawn at a small scale.
var largeCases = []TestCase{
	{
		Name:   "station_grid",
		Path:   grid(32, 32, 512, 512).path(),
		Width:  512,
		Height: 512,
		Op:     Markers{Radius: 5, Segments: 16},
	},
	{
		Name:   "spiral",
		Path:   spiral(256, 256, 20, 240, 6).path(),
		Width:  512,
		Height: 512,
		Op:     Ribbon{HalfWidth: 4, Join: graphics.LineJoinMiter},
	},
	{
		Name:   "large_star",
		Path:   star(256, 256, 240, 90).path(),
		Width:  512,
		Height: 512,
		Op:     Fill{},
	},
	{
		Name:   "partly_outside",
		Path:   rectangle(-100, -100, 400, 400).path(),
		Width:  512,
		Height: 512,
		Op:     Fill{},
	},
}

// grid places one subpath start at the centre of every grid cell.
func grid(rows, cols, width, height int) builder {
	dx := float64(width) / float64(cols)
	dy := float64(height) / float64(rows)
	var b builder
	for row := range rows {
		for col := range cols {
			b = b.moveTo((float64(col)+0.5)*dx, (float64(row)+0.5)*dy)
		}
	}
	return b
}

// spiral builds an open Archimedean spiral from short line segments.
func spiral(cx, cy, rMin, rMax, turns float64) builder {
	const steps = 720
	var b builder
	for i := range steps + 1 {
		t := float64(i) / steps
		r := rMin + t*(rMax-rMin)
		angle := t * turns * 2 * math.Pi
		x := cx + r*math.Cos(angle)
		y := cy + r*math.Sin(angle)
		if i == 0 {
			b = b.moveTo(x, y)
		} else {
			b = b.lineTo(x, y)
		}
	}
	return b
}
