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

package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a linear RGB colour with components in [0, 1].
type Color struct {
	R, G, B float32
}

// White is used where a dataset does not specify a colour.
var White = Color{1, 1, 1}

// ParseHex parses a colour in the GTFS notation "RRGGBB".
// A leading '#' is accepted.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return Color{
		R: float32((v>>16)&0xFF) / 255,
		G: float32((v>>8)&0xFF) / 255,
		B: float32(v&0xFF) / 255,
	}, nil
}

// Array returns the colour as a vertex attribute.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// Gray returns the luminance of the colour (Rec. 601 weights), clamped
// to [0, 1].
func (c Color) Gray() float64 {
	g := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return min(max(g, 0), 1)
}
