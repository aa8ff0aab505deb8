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

package camera

import (
	"encoding/binary"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Uniform is the camera block read by every draw call.
//
// Width and Height are the visible extent in working units, Min is the
// origin corner. The shader maps a point p to clip space as
//
//	clip_x = 2*(p.y - Min[0])/Height - 1
//	clip_y = 2*(p.x - Min[1])/Width  - 1
//
// Working coordinates have X pointing north and Y pointing east, so the
// eastward axis ends up horizontal on screen. Min[0] and Height therefore
// refer to the Y axis, Min[1] and Width to the X axis.
type Uniform struct {
	Width  float32
	Height float32
	Min    [2]float32
}

// UniformSize is the size of the encoded uniform block in bytes.
const UniformSize = 16

// Valid reports whether the uniform can be used for drawing.
func (u Uniform) Valid() bool {
	return u.Width > 0 && u.Height > 0 &&
		!isBad32(u.Width) && !isBad32(u.Height) &&
		!isBad32(u.Min[0]) && !isBad32(u.Min[1])
}

// Project maps a point to clip space, using float32 arithmetic in the
// same order as the vertex shader.
func (u Uniform) Project(p vec.Vec2) (x, y float32) {
	px := float32(p.X)
	py := float32(p.Y)
	x = 2*(py-u.Min[0])/u.Height - 1
	y = 2*(px-u.Min[1])/u.Width - 1
	return x, y
}

// Matrix returns the affine map from working coordinates to clip space,
// for composers which transform on the CPU.
func (u Uniform) Matrix() matrix.Matrix {
	w := float64(u.Width)
	h := float64(u.Height)
	return matrix.Matrix{
		0, 2 / w,
		2 / h, 0,
		-2*float64(u.Min[0])/h - 1, -2*float64(u.Min[1])/w - 1,
	}
}

// AppendBytes appends the little-endian encoding of the uniform block.
func (u Uniform) AppendBytes(buf []byte) []byte {
	for _, x := range [4]float32{u.Width, u.Height, u.Min[0], u.Min[1]} {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(x))
	}
	return buf
}

func isBad32(x float32) bool {
	return math.IsNaN(float64(x)) || math.IsInf(float64(x), 0)
}
