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
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/transitmap"
	"seehuhn.de/go/transitmap/geo"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func normalLength(v Vertex) float64 {
	return math.Hypot(float64(v.Normal[0]), float64(v.Normal[1]))
}

func TestPolylineCounts(t *testing.T) {
	cases := []struct {
		name string
		pts  []vec.Vec2
	}{
		{"two_points", []vec.Vec2{pt(0, 0), pt(10, 0)}},
		{"right_angle", []vec.Vec2{pt(0, 0), pt(10, 0), pt(10, 10)}},
		{"zigzag", []vec.Vec2{pt(0, 0), pt(10, 5), pt(20, -5), pt(30, 5), pt(40, 0)}},
		{"hairpin", []vec.Vec2{pt(0, 0), pt(100, 0), pt(0, 1)}},
		{"fold_back", []vec.Vec2{pt(0, 0), pt(10, 0), pt(5, 0)}},
		{"straight", []vec.Vec2{pt(0, 0), pt(1, 1), pt(2, 2), pt(3, 3)}},
	}

	tess := NewTessellator()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := &Mesh{}
			if err := tess.Polyline(c.pts, geo.White, m); err != nil {
				t.Fatal(err)
			}
			n := len(c.pts)
			if len(m.Vertices) != 2*n {
				t.Errorf("got %d vertices, want %d", len(m.Vertices), 2*n)
			}
			if m.Triangles() != 2*(n-1) {
				t.Errorf("got %d triangles, want %d", m.Triangles(), 2*(n-1))
			}
			for i, v := range m.Vertices {
				if l := normalLength(v); math.Abs(l-1) > 1e-6 {
					t.Errorf("vertex %d: normal length %g", i, l)
				}
				if v.Miter < 1 || math.IsNaN(float64(v.Miter)) {
					t.Errorf("vertex %d: miter %g", i, v.Miter)
				}
			}
			for i, idx := range m.Indices {
				if int(idx) >= len(m.Vertices) {
					t.Errorf("index %d out of range: %d", i, idx)
				}
			}
			// the two vertices of each point are mirror images
			for i := 0; i < len(m.Vertices); i += 2 {
				a, b := m.Vertices[i], m.Vertices[i+1]
				if a.Position != b.Position || a.Normal[0] != -b.Normal[0] || a.Normal[1] != -b.Normal[1] {
					t.Errorf("point %d: vertices are not mirrored", i/2)
				}
			}
		})
	}
}

func TestMiterFactor(t *testing.T) {
	tess := NewTessellator()
	for _, deg := range []float64{0, 10, 30, 45, 60, 90, 120, 135, 150} {
		t.Run(fmt.Sprintf("%g", deg), func(t *testing.T) {
			theta := deg * math.Pi / 180
			pts := []vec.Vec2{
				pt(-10, 0),
				pt(0, 0),
				pt(10*math.Cos(theta), 10*math.Sin(theta)),
			}
			m := &Mesh{}
			if err := tess.Polyline(pts, geo.White, m); err != nil {
				t.Fatal(err)
			}

			want := 1 / math.Cos(theta/2)
			if want > tess.MiterLimit {
				want = 1
			}
			got := float64(m.Vertices[2].Miter)
			if math.Abs(got-want) > 1e-5 {
				t.Errorf("miter: got %g, want %g", got, want)
			}
			if deg == 0 && m.Vertices[2].Miter != 1 {
				t.Errorf("straight join: miter %g, want exactly 1", m.Vertices[2].Miter)
			}

			// endpoints are never mitred
			if m.Vertices[0].Miter != 1 || m.Vertices[4].Miter != 1 {
				t.Errorf("endpoint miters %g, %g", m.Vertices[0].Miter, m.Vertices[4].Miter)
			}
		})
	}
}

func TestMiterLimitBevel(t *testing.T) {
	// a turn of 170° needs a miter of 1/cos(85°) ≈ 11.5
	theta := 170 * math.Pi / 180
	pts := []vec.Vec2{pt(-10, 0), pt(0, 0), pt(10*math.Cos(theta), 10*math.Sin(theta))}

	tess := NewTessellator()
	m := &Mesh{}
	if err := tess.Polyline(pts, geo.White, m); err != nil {
		t.Fatal(err)
	}
	if m.Vertices[2].Miter != 1 {
		t.Errorf("beyond the limit: got miter %g, want 1", m.Vertices[2].Miter)
	}

	tess.MiterLimit = 20
	m.Reset()
	if err := tess.Polyline(pts, geo.White, m); err != nil {
		t.Fatal(err)
	}
	want := 1 / math.Cos(theta/2)
	if got := float64(m.Vertices[2].Miter); math.Abs(got-want) > 1e-4 {
		t.Errorf("within a raised limit: got %g, want %g", got, want)
	}

	tess.Join = graphics.LineJoinBevel
	m.Reset()
	if err := tess.Polyline(pts, geo.White, m); err != nil {
		t.Fatal(err)
	}
	if m.Vertices[2].Miter != 1 {
		t.Errorf("bevel join: got miter %g, want 1", m.Vertices[2].Miter)
	}
}

func TestNearReversal(t *testing.T) {
	// turns a tiny bit short of 180° can round cos θ below -1
	rng := rand.New(rand.NewPCG(1, 2))
	tess := NewTessellator()
	m := &Mesh{}
	for i := range 20000 {
		b := pt(rng.Float64()*1000, rng.Float64()*1000)
		phi := rng.Float64() * 2 * math.Pi
		delta := math.Pow(10, -7-4*rng.Float64())
		l1 := 1 + rng.Float64()*20
		l2 := 1 + rng.Float64()*20
		a := b.Sub(pt(math.Cos(phi), math.Sin(phi)).Mul(l1))
		c := b.Add(pt(math.Cos(phi+math.Pi+delta), math.Sin(phi+math.Pi+delta)).Mul(l2))

		m.Reset()
		if err := tess.Polyline([]vec.Vec2{a, b, c}, geo.White, m); err != nil {
			t.Fatal(err)
		}
		for j, v := range m.Vertices {
			miter := float64(v.Miter)
			if math.IsNaN(miter) || math.IsInf(miter, 0) || miter < 1 || miter > tess.MiterLimit+1e-6 {
				t.Fatalf("case %d, vertex %d: miter %g", i, j, v.Miter)
			}
			if l := normalLength(v); math.Abs(l-1) > 1e-6 {
				t.Fatalf("case %d, vertex %d: normal length %g", i, j, l)
			}
		}
	}
}

func TestJoinNormalIsBisector(t *testing.T) {
	tess := NewTessellator()
	m := &Mesh{}
	pts := []vec.Vec2{pt(0, 0), pt(10, 0), pt(10, 10)}
	if err := tess.Polyline(pts, geo.White, m); err != nil {
		t.Fatal(err)
	}

	s := math.Sqrt2 / 2
	n := m.Vertices[2].Normal
	if math.Abs(float64(n[0])+s) > 1e-6 || math.Abs(float64(n[1])-s) > 1e-6 {
		t.Errorf("join normal %v, want (%g, %g)", n, -s, s)
	}

	// offset corner lies on both offset lines
	d := float64(m.Vertices[2].Miter)
	corner := pt(10+float64(n[0])*d, float64(n[1])*d)
	if math.Abs(corner.X-9) > 1e-5 || math.Abs(corner.Y-1) > 1e-5 {
		t.Errorf("offset corner %v, want (9, 1)", corner)
	}
}

func TestTwoPointRectangle(t *testing.T) {
	tess := NewTessellator()
	m := &Mesh{}
	if err := tess.Polyline([]vec.Vec2{pt(0, 0), pt(0, 5)}, geo.White, m); err != nil {
		t.Fatal(err)
	}
	for i, v := range m.Vertices {
		if v.Miter != 1 {
			t.Errorf("vertex %d: miter %g", i, v.Miter)
		}
		want := float32(-1)
		if i%2 == 1 {
			want = 1
		}
		if v.Normal[0] != want || v.Normal[1] != 0 {
			t.Errorf("vertex %d: normal %v", i, v.Normal)
		}
	}
	want := []uint32{0, 1, 2, 1, 3, 2}
	for i := range want {
		if m.Indices[i] != want[i] {
			t.Fatalf("indices %v, want %v", m.Indices, want)
		}
	}
}

func TestDuplicatePoints(t *testing.T) {
	tess := NewTessellator()
	m := &Mesh{}
	pts := []vec.Vec2{pt(0, 0), pt(0, 0), pt(10, 0), pt(10, 0), pt(10, 0), pt(10, 10)}
	if err := tess.Polyline(pts, geo.White, m); err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 6 || m.Triangles() != 4 {
		t.Errorf("got %d vertices and %d triangles, want 6 and 4",
			len(m.Vertices), m.Triangles())
	}
	for i, v := range m.Vertices {
		if l := normalLength(v); math.Abs(l-1) > 1e-6 {
			t.Errorf("vertex %d: normal length %g", i, l)
		}
	}
}

func TestDegeneratePolyline(t *testing.T) {
	cases := [][]vec.Vec2{
		nil,
		{pt(1, 1)},
		{pt(3, 4), pt(3, 4), pt(3, 4), pt(3, 4)},
		{pt(0, 0), pt(math.NaN(), 1)},
		{pt(0, 0), pt(math.Inf(1), 1)},
	}
	tess := NewTessellator()
	for i, pts := range cases {
		for range 2 { // deterministic on repeat
			m := &Mesh{}
			err := tess.Polyline(pts, geo.White, m)
			if !errors.Is(err, transitmap.ErrMalformedGeometry) {
				t.Errorf("%d: got %v, want ErrMalformedGeometry", i, err)
			}
			if len(m.Vertices) != 0 || m.Triangles() != 0 {
				t.Errorf("%d: emitted %d vertices", i, len(m.Vertices))
			}
		}
	}
}

func TestRing(t *testing.T) {
	tess := NewTessellator()
	m := &Mesh{}
	square := []vec.Vec2{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10), pt(0, 0)}
	if err := tess.Ring(square, geo.White, m); err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 8 || m.Triangles() != 8 {
		t.Errorf("got %d vertices and %d triangles, want 8 and 8",
			len(m.Vertices), m.Triangles())
	}
	want := float32(math.Sqrt2)
	for i, v := range m.Vertices {
		if math.Abs(float64(v.Miter-want)) > 1e-6 {
			t.Errorf("vertex %d: miter %g, want %g", i, v.Miter, want)
		}
	}
}

func TestPath(t *testing.T) {
	var p path.Path = func(yield func(path.Command, []vec.Vec2) bool) {
		// open polyline
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(0, 0)}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{pt(10, 0)}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{pt(10, 10)}) {
			return
		}
		// lone MoveTo, ignored
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(40, 40)}) {
			return
		}
		// degenerate subpath
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(50, 50)}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{pt(50, 50)}) {
			return
		}
		// closed triangle
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(20, 0)}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{pt(30, 0)}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{pt(25, 8)}) {
			return
		}
		yield(path.CmdClose, nil)
	}

	tess := NewTessellator()
	m := &Mesh{}
	err := tess.Path(p, geo.White, m)
	if !errors.Is(err, transitmap.ErrMalformedGeometry) {
		t.Errorf("got %v, want ErrMalformedGeometry for the zero-length subpath", err)
	}
	// 3 points open + 3 points closed
	if len(m.Vertices) != 12 {
		t.Errorf("got %d vertices, want 12", len(m.Vertices))
	}
	if m.Triangles() != 4+6 {
		t.Errorf("got %d triangles, want 10", m.Triangles())
	}
}

func TestPathMoveOnly(t *testing.T) {
	var p path.Path = func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(0, 0)}) {
			return
		}
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(5, 5)}) {
			return
		}
		if !yield(path.CmdClose, nil) {
			return
		}
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(10, 0)}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{pt(20, 0)}) {
			return
		}
		yield(path.CmdMoveTo, []vec.Vec2{pt(30, 30)})
	}

	tess := NewTessellator()
	m := &Mesh{}
	if err := tess.Path(p, geo.White, m); err != nil {
		t.Errorf("subpaths without drawing commands: got %v", err)
	}
	if len(m.Vertices) != 4 || m.Triangles() != 2 {
		t.Errorf("got %d vertices and %d triangles, want 4 and 2",
			len(m.Vertices), m.Triangles())
	}
}

func TestPathCurve(t *testing.T) {
	var p path.Path = func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(0, 0)}) {
			return
		}
		yield(path.CmdQuadTo, []vec.Vec2{pt(50, 100), pt(100, 0)})
	}

	tess := NewTessellator()
	m := &Mesh{}
	if err := tess.Path(p, geo.White, m); err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) < 10 {
		t.Errorf("curve flattened into only %d vertices", len(m.Vertices))
	}
	last := m.Vertices[len(m.Vertices)-1].Position
	if last[0] != 100 || last[1] != 0 {
		t.Errorf("curve ends at %v", last)
	}
}

func TestVertexBytes(t *testing.T) {
	tess := NewTessellator()
	m := &Mesh{}
	if err := tess.Polyline([]vec.Vec2{pt(0, 0), pt(1, 0), pt(1, 1)}, geo.White, m); err != nil {
		t.Fatal(err)
	}
	vb := m.AppendVertexBytes(nil)
	if len(vb) != len(m.Vertices)*VertexSize {
		t.Errorf("vertex bytes: got %d, want %d", len(vb), len(m.Vertices)*VertexSize)
	}
	ib := m.AppendIndexBytes(nil)
	if len(ib) != 4*len(m.Indices) {
		t.Errorf("index bytes: got %d, want %d", len(ib), 4*len(m.Indices))
	}

	last := VertexAttributes[len(VertexAttributes)-1]
	if last.Offset+4*last.Components != VertexSize {
		t.Errorf("attribute layout does not cover the vertex")
	}
}

func BenchmarkPolyline(b *testing.B) {
	pts := make([]vec.Vec2, 1000)
	for i := range pts {
		x := float64(i)
		pts[i] = pt(x, 10*math.Sin(x/7))
	}
	tess := NewTessellator()
	m := &Mesh{}
	for b.Loop() {
		m.Reset()
		tess.Polyline(pts, geo.White, m)
	}
}
