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

package tess

import (
	"encoding/binary"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/transitmap/geo"
)

// Vertex is the per-vertex record consumed by the line and fill shaders.
//
// For ribbons, Position is the path point itself; the shader moves it to
// Position + Normal*Miter*halfWidth. Fill and marker vertices have a zero
// Normal and Miter 1.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
	Normal   [3]float32
	Miter    float32
}

// VertexFloats is the number of float32 values in one [Vertex].
const VertexFloats = 10

// VertexSize is the size of one encoded [Vertex] in bytes.
const VertexSize = 4 * VertexFloats

// Attribute describes one shader input within an interleaved buffer.
type Attribute struct {
	Location   int // shader location
	Offset     int // byte offset within the record
	Components int // number of float32 values
}

// VertexAttributes is the layout of [Vertex] records, locations 0 to 3.
var VertexAttributes = []Attribute{
	{Location: 0, Offset: 0, Components: 3},  // position
	{Location: 1, Offset: 12, Components: 3}, // color
	{Location: 2, Offset: 24, Components: 3}, // normal
	{Location: 3, Offset: 36, Components: 1}, // miter
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Reset empties the mesh but keeps the allocated memory.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// Mark records the current size of the mesh, for use with [Mesh.Truncate].
func (m *Mesh) Mark() MeshMark {
	return MeshMark{v: len(m.Vertices), i: len(m.Indices)}
}

// Truncate drops everything appended after mark was taken.
func (m *Mesh) Truncate(mark MeshMark) {
	m.Vertices = m.Vertices[:mark.v]
	m.Indices = m.Indices[:mark.i]
}

// MeshMark is a position in a [Mesh].
type MeshMark struct {
	v, i int
}

// AppendVertexBytes appends the little-endian encoding of all vertices
// to buf, in the layout given by [VertexAttributes].
func (m *Mesh) AppendVertexBytes(buf []byte) []byte {
	buf = slices.Grow(buf, len(m.Vertices)*VertexSize)
	for i := range m.Vertices {
		v := &m.Vertices[i]
		buf = appendFloats(buf, v.Position[:]...)
		buf = appendFloats(buf, v.Color[:]...)
		buf = appendFloats(buf, v.Normal[:]...)
		buf = appendFloats(buf, v.Miter)
	}
	return buf
}

// AppendIndexBytes appends the little-endian encoding of the index list
// to buf.
func (m *Mesh) AppendIndexBytes(buf []byte) []byte {
	buf = slices.Grow(buf, 4*len(m.Indices))
	for _, idx := range m.Indices {
		buf = binary.LittleEndian.AppendUint32(buf, idx)
	}
	return buf
}

// addVertex appends a vertex and returns its index.
func (m *Mesh) addVertex(p vec.Vec2, c geo.Color, n vec.Vec2, miter float64) uint32 {
	idx := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, Vertex{
		Position: [3]float32{float32(p.X), float32(p.Y), 0},
		Color:    c.Array(),
		Normal:   [3]float32{float32(n.X), float32(n.Y), 0},
		Miter:    float32(miter),
	})
	return idx
}

func (m *Mesh) addTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

func appendFloats(buf []byte, xs ...float32) []byte {
	for _, x := range xs {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(x))
	}
	return buf
}
