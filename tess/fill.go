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
	"cmp"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/transitmap"
	"seehuhn.de/go/transitmap/geo"
)

// areaThreshold is the minimal absolute signed area of a ring.
const areaThreshold = 1e-12

// Fill appends a triangulation of the polygon to m. rings[0] is the outer
// boundary, further rings are holes; orientation does not matter.
// Holes are bridged into the outer ring, the result is ear clipped.
//
// Degenerate holes and holes outside the outer ring are ignored. If the
// outer ring has no area, nothing is emitted and an error wrapping
// [transitmap.ErrMalformedGeometry] is returned.
func (t *Tessellator) Fill(rings [][]vec.Vec2, c geo.Color, m *Mesh) error {
	if len(rings) == 0 {
		return fmt.Errorf("polygon without rings: %w", transitmap.ErrMalformedGeometry)
	}
	for i, ring := range rings {
		for j, p := range ring {
			if !geo.IsFinite(p) {
				return fmt.Errorf("ring %d point %d is not finite: %w",
					i, j, transitmap.ErrMalformedGeometry)
			}
		}
	}

	t.collapse(rings[0], true)
	outer := slices.Clone(t.pts)
	area := signedArea(outer)
	if len(outer) < 3 || math.Abs(area) < areaThreshold {
		return fmt.Errorf("outer ring has no area: %w", transitmap.ErrMalformedGeometry)
	}
	if area < 0 {
		slices.Reverse(outer)
	}

	var holes [][]vec.Vec2
	for _, ring := range rings[1:] {
		t.collapse(ring, true)
		h := slices.Clone(t.pts)
		a := signedArea(h)
		if len(h) < 3 || math.Abs(a) < areaThreshold {
			continue
		}
		if a > 0 {
			slices.Reverse(h)
		}
		holes = append(holes, h)
	}

	// Bridge holes from right to left, so that later bridges cannot cross
	// earlier ones.
	slices.SortFunc(holes, func(a, b []vec.Vec2) int {
		return cmp.Compare(maxX(b), maxX(a))
	})
	poly := outer
	for _, h := range holes {
		poly = bridgeHole(poly, h)
	}

	base := uint32(len(m.Vertices))
	for _, p := range poly {
		m.addVertex(p, c, vec.Vec2{}, 1)
	}
	earClip(poly, func(a, b, c int) {
		m.addTriangle(base+uint32(a), base+uint32(b), base+uint32(c))
	})
	return nil
}

// earClip triangulates a counter-clockwise polygon, calling emit with
// the vertex indices of each triangle.
func earClip(poly []vec.Vec2, emit func(a, b, c int)) {
	n := len(poly)
	prev := make([]int, n)
	next := make([]int, n)
	for i := range n {
		prev[i] = (i - 1 + n) % n
		next[i] = (i + 1) % n
	}
	remove := func(i int) {
		next[prev[i]] = next[i]
		prev[next[i]] = prev[i]
	}

	remaining := n
	i := 0
	stall := 0
	for remaining > 3 {
		a, b, c := prev[i], i, next[i]
		turn := cross(poly[a], poly[b], poly[c])

		switch {
		case math.Abs(turn) <= areaThreshold:
			// collinear or spike: drop the vertex without a triangle
			remove(b)
			remaining--
			i = a
			stall = 0
			continue
		case turn > 0 && isEar(poly, next, a, b, c):
			emit(a, b, c)
			remove(b)
			remaining--
			i = a
			stall = 0
			continue
		}

		i = c
		stall++
		if stall > remaining {
			// Self-intersecting input: no ear exists. Clip anyway to
			// guarantee termination.
			emit(a, b, c)
			remove(b)
			remaining--
			i = a
			stall = 0
		}
	}
	if remaining == 3 {
		a, b, c := prev[i], i, next[i]
		if math.Abs(cross(poly[a], poly[b], poly[c])) > areaThreshold {
			emit(a, b, c)
		}
	}
}

// isEar reports whether no remaining vertex lies inside the triangle
// (a, b, c). Vertices coinciding with a triangle corner are ignored, so
// that the duplicated vertices of a hole bridge do not block ears.
func isEar(poly []vec.Vec2, next []int, a, b, c int) bool {
	pa, pb, pc := poly[a], poly[b], poly[c]
	for j := next[c]; j != a; j = next[j] {
		p := poly[j]
		if p == pa || p == pb || p == pc {
			continue
		}
		if inTriangle(p, pa, pb, pc) {
			return false
		}
	}
	return true
}

// bridgeHole merges a clockwise hole into a counter-clockwise polygon by
// cutting along a bridge edge from the hole's rightmost vertex to a
// visible vertex of the polygon.
func bridgeHole(poly, hole []vec.Vec2) []vec.Vec2 {
	mi := 0
	for i, p := range hole {
		if p.X > hole[mi].X {
			mi = i
		}
	}
	M := hole[mi]

	// Cast a ray from M in +x direction and find the closest edge it hits.
	bestX := math.Inf(1)
	pi := -1
	var I vec.Vec2
	n := len(poly)
	for i := range n {
		a, b := poly[i], poly[(i+1)%n]
		if (a.Y > M.Y) == (b.Y > M.Y) {
			continue
		}
		x := a.X + (M.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x < M.X || x >= bestX {
			continue
		}
		bestX = x
		I = vec.Vec2{X: x, Y: M.Y}
		if a.X > b.X {
			pi = i
		} else {
			pi = (i + 1) % n
		}
	}
	if pi < 0 {
		// the hole is not inside the polygon
		return poly
	}

	// A vertex inside the triangle (M, I, P) could block the bridge;
	// choose the one with the smallest angle to the ray instead.
	P := poly[pi]
	if P != I {
		t0, t1, t2 := M, I, P
		if orient(t0, t1, t2) < 0 {
			t1, t2 = t2, t1
		}
		bestCos := -1.0
		bestDist := math.Inf(1)
		for i, q := range poly {
			if q == P || !inTriangle(q, t0, t1, t2) {
				continue
			}
			d := q.Sub(M)
			dist := d.Length()
			if dist == 0 {
				continue
			}
			cosA := d.X / dist
			if cosA > bestCos || (cosA == bestCos && dist < bestDist) {
				bestCos = cosA
				bestDist = dist
				pi = i
			}
		}
	}

	out := make([]vec.Vec2, 0, len(poly)+len(hole)+2)
	out = append(out, poly[:pi+1]...)
	out = append(out, hole[mi:]...)
	out = append(out, hole[:mi+1]...)
	out = append(out, poly[pi:]...)
	return out
}

// signedArea returns the area of the ring, positive for counter-clockwise
// orientation.
func signedArea(ring []vec.Vec2) float64 {
	var sum float64
	n := len(ring)
	for i := range n {
		a, b := ring[i], ring[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// cross returns the z component of (b-a) × (c-b).
func cross(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
}

// inTriangle reports whether p lies inside or on the boundary of the
// counter-clockwise triangle (a, b, c).
func inTriangle(p, a, b, c vec.Vec2) bool {
	return orient(a, b, p) >= 0 && orient(b, c, p) >= 0 && orient(c, a, p) >= 0
}

func orient(a, b, p vec.Vec2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func maxX(ring []vec.Vec2) float64 {
	x := math.Inf(-1)
	for _, p := range ring {
		x = max(x, p.X)
	}
	return x
}
