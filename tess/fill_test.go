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
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/transitmap"
	"seehuhn.de/go/transitmap/geo"
)

// meshArea returns the total absolute area of all triangles in m.
func meshArea(m *Mesh) float64 {
	var sum float64
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		cr := (float64(b[0])-float64(a[0]))*(float64(c[1])-float64(a[1])) -
			(float64(b[1])-float64(a[1]))*(float64(c[0])-float64(a[0]))
		sum += math.Abs(cr) / 2
	}
	return sum
}

func TestFill(t *testing.T) {
	cases := []struct {
		name      string
		rings     [][]vec.Vec2
		area      float64
		triangles int // 0 means: do not check
	}{
		{
			name:      "square_ccw",
			rings:     [][]vec.Vec2{{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)}},
			area:      100,
			triangles: 2,
		},
		{
			name:      "square_cw_closed",
			rings:     [][]vec.Vec2{{pt(0, 0), pt(0, 10), pt(10, 10), pt(10, 0), pt(0, 0)}},
			area:      100,
			triangles: 2,
		},
		{
			name: "l_shape",
			rings: [][]vec.Vec2{{
				pt(0, 0), pt(20, 0), pt(20, 10), pt(10, 10), pt(10, 20), pt(0, 20),
			}},
			area: 300,
		},
		{
			name: "comb",
			rings: [][]vec.Vec2{{
				pt(0, 0), pt(50, 0), pt(50, 30), pt(40, 30), pt(40, 10),
				pt(30, 10), pt(30, 30), pt(20, 30), pt(20, 10), pt(10, 10),
				pt(10, 30), pt(0, 30),
			}},
			area: 50*10 + 3*10*20,
		},
		{
			name: "collinear_points",
			rings: [][]vec.Vec2{{
				pt(0, 0), pt(5, 0), pt(10, 0), pt(10, 10), pt(0, 10),
			}},
			area: 100,
		},
		{
			name: "square_with_hole",
			rings: [][]vec.Vec2{
				{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)},
				{pt(3, 3), pt(7, 3), pt(7, 7), pt(3, 7)},
			},
			area: 100 - 16,
		},
		{
			name: "two_holes",
			rings: [][]vec.Vec2{
				{pt(0, 0), pt(30, 0), pt(30, 10), pt(0, 10)},
				{pt(2, 2), pt(8, 2), pt(8, 8), pt(2, 8)},
				{pt(20, 3), pt(28, 3), pt(28, 7), pt(20, 7)},
			},
			area: 300 - 36 - 32,
		},
		{
			name: "degenerate_hole",
			rings: [][]vec.Vec2{
				{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)},
				{pt(3, 3), pt(7, 7), pt(3, 3)},
			},
			area:      100,
			triangles: 2,
		},
	}

	tess := NewTessellator()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := &Mesh{}
			if err := tess.Fill(c.rings, geo.White, m); err != nil {
				t.Fatal(err)
			}
			if c.triangles > 0 && m.Triangles() != c.triangles {
				t.Errorf("got %d triangles, want %d", m.Triangles(), c.triangles)
			}
			if got := meshArea(m); math.Abs(got-c.area) > 1e-6 {
				t.Errorf("triangulated area %g, want %g", got, c.area)
			}
			for i, v := range m.Vertices {
				if v.Normal != [3]float32{} || v.Miter != 1 {
					t.Errorf("vertex %d: normal %v miter %g", i, v.Normal, v.Miter)
				}
			}
		})
	}
}

func TestFillMalformed(t *testing.T) {
	cases := [][][]vec.Vec2{
		nil,
		{{pt(0, 0), pt(1, 1)}},
		{{pt(0, 0), pt(1, 1), pt(2, 2)}},
		{{pt(0, 0), pt(1, 0), pt(math.NaN(), 1)}},
	}
	tess := NewTessellator()
	for i, rings := range cases {
		m := &Mesh{}
		err := tess.Fill(rings, geo.White, m)
		if !errors.Is(err, transitmap.ErrMalformedGeometry) {
			t.Errorf("%d: got %v, want ErrMalformedGeometry", i, err)
		}
		if len(m.Vertices) != 0 {
			t.Errorf("%d: emitted %d vertices", i, len(m.Vertices))
		}
	}
}

func TestDisc(t *testing.T) {
	m := &Mesh{}
	center := pt(5, -5)
	if err := Disc(center, 2, 16, geo.Color{R: 1}, m); err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 17 || m.Triangles() != 16 {
		t.Errorf("got %d vertices and %d triangles", len(m.Vertices), m.Triangles())
	}
	want := 16 * 0.5 * 2 * 2 * math.Sin(2*math.Pi/16)
	if got := meshArea(m); math.Abs(got-want) > 1e-4 {
		t.Errorf("area %g, want %g", got, want)
	}

	if err := Disc(center, 0, 16, geo.White, m); !errors.Is(err, transitmap.ErrMalformedGeometry) {
		t.Errorf("zero radius: got %v", err)
	}
	if err := Disc(pt(math.NaN(), 0), 1, 16, geo.White, m); !errors.Is(err, transitmap.ErrMalformedGeometry) {
		t.Errorf("NaN centre: got %v", err)
	}
}

func BenchmarkFill(b *testing.B) {
	ring := geo.Circle(pt(0, 0), 1000, 0.5)
	for i := range ring {
		if i%2 == 1 {
			ring[i] = ring[i].Mul(0.8) // star shape with many reflex vertices
		}
	}
	tess := NewTessellator()
	m := &Mesh{}
	for b.Loop() {
		m.Reset()
		tess.Fill([][]vec.Vec2{ring}, geo.White, m)
	}
}
