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

// Package tess converts the geographic model into indexed triangle meshes.
//
// Lines become ribbons: two vertices per path point, displaced at shading
// time along a join normal scaled by a miter factor. Regions are filled by
// ear clipping and stations are drawn as triangle fans.
package tess

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/transitmap"
	"seehuhn.de/go/transitmap/geo"
)

const (
	// zeroLengthThreshold is the minimum segment length; shorter segments
	// are merged into their neighbours.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the |sin θ| below which a join is treated
	// as straight.
	collinearityThreshold = 1e-6

	// miterEpsilon absorbs rounding when comparing against MiterLimit.
	miterEpsilon = 1e-9

	defaultMiterLimit = 4.0
	defaultFlatness   = 0.25
)

// segment is one edge of a ribbon.
type segment struct {
	A, B vec.Vec2 // endpoints
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

// Tessellator turns lines into ribbon meshes. Create one instance and
// reuse it; internal buffers grow as needed but never shrink.
//
// A Tessellator is not safe for concurrent use.
type Tessellator struct {
	// MiterLimit bounds the miter factor 1/cos(θ/2), where θ is the turning
	// angle at a join. Joins which would exceed the limit are beveled
	// (miter 1). Must be at least 1.
	MiterLimit float64

	// Join selects the join style. LineJoinMiter mitres joins up to
	// MiterLimit, every other style produces bevel joins.
	Join graphics.LineJoinStyle

	// Flatness is the maximal distance, in working units, between a curve
	// in a path and its polygonal approximation.
	Flatness float64

	pts  []vec.Vec2
	segs []segment
}

// NewTessellator returns a Tessellator with miter joins and a miter
// limit of 4.
func NewTessellator() *Tessellator {
	return &Tessellator{
		MiterLimit: defaultMiterLimit,
		Join:       graphics.LineJoinMiter,
		Flatness:   defaultFlatness,
	}
}

// Polyline appends the ribbon for an open polyline to m.
//
// For N distinct points, 2N vertices and 2(N-1) triangles are emitted:
// vertex 2i carries the join normal of point i, vertex 2i+1 its negation.
// Consecutive duplicate points are merged. If fewer than two distinct
// points remain, nothing is emitted and an error wrapping
// [transitmap.ErrMalformedGeometry] is returned.
func (t *Tessellator) Polyline(pts []vec.Vec2, c geo.Color, m *Mesh) error {
	return t.ribbon(pts, c, m, false)
}

// Ring appends the ribbon for a closed polyline to m. The last point is
// joined to the first; repeating the first point at the end is allowed.
// For N distinct points, 2N vertices and 2N triangles are emitted.
func (t *Tessellator) Ring(pts []vec.Vec2, c geo.Color, m *Mesh) error {
	return t.ribbon(pts, c, m, true)
}

// Path appends ribbons for all subpaths of p to m. Closed subpaths are
// treated like [Tessellator.Ring], open ones like [Tessellator.Polyline].
// Curves are flattened first. Subpaths without a drawing command are
// ignored. Degenerate subpaths are skipped and reported in the returned
// error; the remaining subpaths are still emitted.
func (t *Tessellator) Path(p path.Path, c geo.Color, m *Mesh) error {
	var errs []error
	var sub []vec.Vec2
	var current vec.Vec2
	inSubpath := false
	drawn := false

	flush := func(closed bool) {
		if inSubpath && drawn {
			if err := t.ribbon(sub, c, m, closed); err != nil {
				errs = append(errs, err)
			}
		}
		sub = sub[:0]
		inSubpath = false
		drawn = false
	}
	lineTo := func(_, b vec.Vec2) {
		sub = append(sub, b)
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			flush(false)
			current = pts[0]
			sub = append(sub, current)
			inSubpath = true
		case path.CmdLineTo:
			if !inSubpath {
				continue
			}
			sub = append(sub, pts[0])
			current = pts[0]
			drawn = true
		case path.CmdQuadTo:
			if !inSubpath {
				continue
			}
			drawn = true
			t.flattenQuadratic(current, pts[0], pts[1], lineTo)
			current = pts[1]
		case path.CmdCubeTo:
			if !inSubpath {
				continue
			}
			drawn = true
			t.flattenCubic(current, pts[0], pts[1], pts[2], lineTo)
			current = pts[2]
		case path.CmdClose:
			if inSubpath {
				current = sub[0]
			}
			flush(true)
		}
	}
	flush(false)

	return errors.Join(errs...)
}

// ribbon emits the ribbon for one open or closed polyline.
func (t *Tessellator) ribbon(pts []vec.Vec2, c geo.Color, m *Mesh, closed bool) error {
	for i, p := range pts {
		if !geo.IsFinite(p) {
			return fmt.Errorf("point %d is not finite: %w", i, transitmap.ErrMalformedGeometry)
		}
	}

	t.collapse(pts, closed)
	n := len(t.pts)
	minPoints := 2
	if closed {
		minPoints = 3
	}
	if n < minPoints {
		return fmt.Errorf("only %d distinct points: %w", n, transitmap.ErrMalformedGeometry)
	}

	numSegs := n - 1
	if closed {
		numSegs = n
	}
	t.segs = t.segs[:0]
	for i := range numSegs {
		t.addSegment(t.pts[i], t.pts[(i+1)%n])
	}

	base := uint32(len(m.Vertices))
	for i, p := range t.pts {
		var normal vec.Vec2
		miter := 1.0
		switch {
		case !closed && i == 0:
			normal = t.segs[0].N
		case !closed && i == n-1:
			normal = t.segs[numSegs-1].N
		default:
			prev := &t.segs[(i-1+numSegs)%numSegs]
			next := &t.segs[i%numSegs]
			normal, miter = t.join(prev, next)
		}
		m.addVertex(p, c, normal, miter)
		m.addVertex(p, c, normal.Mul(-1), miter)
	}

	for s := range numSegs {
		i0 := base + uint32(2*s)
		i1 := base + uint32(2*((s+1)%n))
		m.addTriangle(i0, i0+1, i1)
		m.addTriangle(i0+1, i1+1, i1)
	}
	return nil
}

// collapse copies pts into t.pts, dropping points which coincide with
// their predecessor. For closed rings a final point equal to the first
// is dropped as well.
func (t *Tessellator) collapse(pts []vec.Vec2, closed bool) {
	t.pts = t.pts[:0]
	for _, p := range pts {
		if k := len(t.pts); k > 0 && p.Sub(t.pts[k-1]).Length() < zeroLengthThreshold {
			continue
		}
		t.pts = append(t.pts, p)
	}
	if closed {
		for len(t.pts) > 1 && t.pts[len(t.pts)-1].Sub(t.pts[0]).Length() < zeroLengthThreshold {
			t.pts = t.pts[:len(t.pts)-1]
		}
	}
}

// addSegment appends the segment a→b. The caller guarantees a != b.
func (t *Tessellator) addSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	tangent := d.Mul(1 / length)
	n := vec.Vec2{X: -tangent.Y, Y: tangent.X} // unit normal (90° CCW)
	t.segs = append(t.segs, segment{A: a, B: b, T: tangent, N: n})
}

// join returns the unit normal and the miter factor at the corner where
// prev ends and next begins.
func (t *Tessellator) join(prev, next *segment) (vec.Vec2, float64) {
	sinTheta := prev.T.X*next.T.Y - prev.T.Y*next.T.X
	cosTheta := prev.T.Dot(next.T)

	if math.Abs(sinTheta) < collinearityThreshold && cosTheta > 0 {
		return prev.N, 1
	}

	bisector := prev.N.Add(next.N)
	length := bisector.Length()
	if length < zeroLengthThreshold {
		// the path folds back onto itself
		return prev.N, 1
	}
	normal := bisector.Mul(1 / length)

	if t.Join != graphics.LineJoinMiter {
		return normal, 1
	}

	// cos(θ/2) = sqrt((1 + cos θ) / 2); rounding can push cos θ below -1
	// for turns close to 180°.
	cosHalf := math.Sqrt(max(0, (1+cosTheta)/2))
	miter := 1 / cosHalf
	if !(miter <= t.MiterLimit+miterEpsilon) {
		return normal, 1
	}
	return normal, miter
}

// flattenQuadratic approximates a quadratic Bézier by line segments.
// p0 is the current point, p1 the control point, p2 the endpoint.
func (t *Tessellator) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	// e = (P0 - 2*P1 + P2) / 4 bounds the deviation from the chord
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if dev := e.Length(); dev > t.flatness() {
		n = int(math.Ceil(math.Sqrt(dev / t.flatness())))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		s := float64(i) / float64(n)
		oms := 1 - s
		pt := p0.Mul(oms * oms).Add(p1.Mul(2 * oms * s)).Add(p2.Mul(s * s))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier by line segments.
func (t *Tessellator) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	// Wang's formula
	n := 1
	if dev := max(d1.Length(), d2.Length()); dev > 0 {
		if nf := math.Sqrt(3 * dev / (4 * t.flatness())); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		s := float64(i) / float64(n)
		oms := 1 - s
		pt := p0.Mul(oms * oms * oms).
			Add(p1.Mul(3 * oms * oms * s)).
			Add(p2.Mul(3 * oms * s * s)).
			Add(p3.Mul(s * s * s))
		emit(prev, pt)
		prev = pt
	}
}

func (t *Tessellator) flatness() float64 {
	if t.Flatness > 0 {
		return t.Flatness
	}
	return defaultFlatness
}
