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

// Package testcases holds named tessellation cases, shared by the tests
// and by the export and genpdf commands.
//
// Case geometry is written in screen-like coordinates, x to the right and
// y upwards, one unit per pixel. The helpers place these in the working
// frame, with x as the east and y as the north coordinate.
package testcases

import (
	"errors"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/transitmap/camera"
	"seehuhn.de/go/transitmap/geo"
	"seehuhn.de/go/transitmap/tess"
)

// TestCase defines a single tessellation test.
type TestCase struct {
	Name   string    // lowercase a-z, 0-9 and _ only
	Path   path.Path // the geometry, in the working frame
	Width  int       // canvas width in pixels
	Height int       // canvas height in pixels
	Op     Operation

	// Origin is the lower left corner of the canvas, in screen-like
	// coordinates. The zero value puts the canvas at the origin.
	Origin vec.Vec2

	// Invalid is set for cases whose geometry must be rejected, at least
	// in part.
	Invalid bool
}

// Operation is the tessellation applied to the path.
type Operation interface {
	isOperation()
}

// Fill triangulates the closed subpaths of the path as one polygon. The
// first subpath is the outer boundary, the others are holes. Curves are
// replaced by their chords.
type Fill struct{}

func (Fill) isOperation() {}

// Ribbon turns every subpath into a ribbon, see [tess.Tessellator.Path].
type Ribbon struct {
	HalfWidth  float64
	Join       graphics.LineJoinStyle
	MiterLimit float64
}

func (Ribbon) isOperation() {}

// Markers places a disc at the start of every subpath.
type Markers struct {
	Radius   float64
	Segments int
}

func (Markers) isOperation() {}

// Uniform returns the camera block which maps the canvas onto clip space.
func (tc *TestCase) Uniform() camera.Uniform {
	return camera.Uniform{
		Width:  float32(tc.Height),
		Height: float32(tc.Width),
		Min:    [2]float32{float32(tc.Origin.X), float32(tc.Origin.Y)},
	}
}

// HalfWidth returns the ribbon half width of the case, or 0 for
// operations which do not produce ribbons.
func (tc *TestCase) HalfWidth() float64 {
	if op, ok := tc.Op.(Ribbon); ok {
		return op.HalfWidth
	}
	return 0
}

// Mesh tessellates the case. For partially invalid geometry, the mesh
// holds the valid parts and the error describes the rest.
func (tc *TestCase) Mesh() (*tess.Mesh, error) {
	m := &tess.Mesh{}
	switch op := tc.Op.(type) {
	case Fill:
		t := tess.NewTessellator()
		return m, t.Fill(rings(tc.Path), geo.White, m)
	case Ribbon:
		t := tess.NewTessellator()
		t.Join = op.Join
		if op.MiterLimit > 0 {
			t.MiterLimit = op.MiterLimit
		}
		return m, t.Path(tc.Path, geo.White, m)
	case Markers:
		var errs []error
		for cmd, pts := range tc.Path {
			if cmd != path.CmdMoveTo {
				continue
			}
			errs = append(errs, tess.Disc(pts[0], op.Radius, op.Segments, geo.White, m))
		}
		return m, errors.Join(errs...)
	default:
		return nil, errors.New("unknown operation")
	}
}

// rings collects the vertices of all closed subpaths.
func rings(p path.Path) [][]vec.Vec2 {
	var res [][]vec.Vec2
	var cur []vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			cur = []vec.Vec2{pts[0]}
		case path.CmdClose:
			if len(cur) > 0 {
				res = append(res, cur)
			}
			cur = nil
		default:
			if cur != nil {
				cur = append(cur, pts[len(pts)-1])
			}
		}
	}
	return res
}

// pt converts screen-like coordinates to the working frame.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: y, Y: x}
}

// builder collects path commands.
type builder []step

type step struct {
	cmd path.Command
	pts []vec.Vec2
}

func (b builder) moveTo(x, y float64) builder {
	return append(b, step{path.CmdMoveTo, []vec.Vec2{pt(x, y)}})
}

func (b builder) lineTo(x, y float64) builder {
	return append(b, step{path.CmdLineTo, []vec.Vec2{pt(x, y)}})
}

func (b builder) quadTo(cx, cy, x, y float64) builder {
	return append(b, step{path.CmdQuadTo, []vec.Vec2{pt(cx, cy), pt(x, y)}})
}

func (b builder) cubeTo(c1x, c1y, c2x, c2y, x, y float64) builder {
	return append(b, step{path.CmdCubeTo, []vec.Vec2{pt(c1x, c1y), pt(c2x, c2y), pt(x, y)}})
}

func (b builder) close() builder {
	return append(b, step{path.CmdClose, nil})
}

// path returns the commands as a path iterator.
func (b builder) path() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, s := range b {
			if !yield(s.cmd, s.pts) {
				return
			}
		}
	}
}

// polyline builds an open path through the given x, y pairs.
func polyline(xy ...float64) path.Path {
	var b builder
	for i := 0; i+1 < len(xy); i += 2 {
		if i == 0 {
			b = b.moveTo(xy[0], xy[1])
		} else {
			b = b.lineTo(xy[i], xy[i+1])
		}
	}
	return b.path()
}

// polygon builds a closed path through the given x, y pairs.
func polygon(xy ...float64) builder {
	var b builder
	for i := 0; i+1 < len(xy); i += 2 {
		if i == 0 {
			b = b.moveTo(xy[0], xy[1])
		} else {
			b = b.lineTo(xy[i], xy[i+1])
		}
	}
	return b.close()
}
