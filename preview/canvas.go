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

// Package preview renders scenes without a GPU.
//
// [Canvas] rasterizes frames into an RGBA image, [Page] writes them to a
// PDF file. Both implement [scene.Composer] and displace ribbon vertices
// the same way the line shader does.
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/transitmap/camera"
	"seehuhn.de/go/transitmap/fleet"
	"seehuhn.de/go/transitmap/tess"
)

// Canvas is a software [scene.Composer] drawing into an RGBA image.
type Canvas struct {
	Image *image.RGBA

	// HalfWidth is half the line width in working units.
	HalfWidth float64

	// Background is painted by Clear and at the start of each frame.
	Background color.Color

	u camera.Uniform
	z *vector.Rasterizer
}

// NewCanvas returns a canvas of w×h pixels with a dark background.
func NewCanvas(w, h int, halfWidth float64) *Canvas {
	return &Canvas{
		Image:      image.NewRGBA(image.Rect(0, 0, w, h)),
		HalfWidth:  halfWidth,
		Background: color.NRGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xFF},
		z:          vector.NewRasterizer(0, 0),
	}
}

// Clear paints the whole image with the background colour.
func (c *Canvas) Clear() {
	draw.Draw(c.Image, c.Image.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)
}

// SetCamera implements [scene.Composer]. It also clears the image, since
// a new camera starts a new frame.
func (c *Canvas) SetCamera(u camera.Uniform) {
	c.u = u
	c.Clear()
}

// DrawRegions implements [scene.Composer].
func (c *Canvas) DrawRegions(m *tess.Mesh) {
	c.drawMesh(m, 0)
}

// DrawLines implements [scene.Composer].
func (c *Canvas) DrawLines(m *tess.Mesh) {
	c.drawMesh(m, c.HalfWidth)
}

// DrawStations implements [scene.Composer].
func (c *Canvas) DrawStations(m *tess.Mesh) {
	c.drawMesh(m, 0)
}

// DrawVehicles implements [scene.Composer].
func (c *Canvas) DrawVehicles(base *tess.Mesh, instances []fleet.Instance) {
	if base == nil {
		return
	}
	for _, inst := range instances {
		src := image.NewUniform(toRGBA(inst.Color))
		scale := float64(inst.Scale)
		offs := vec.Vec2{X: float64(inst.Position[0]), Y: float64(inst.Position[1])}
		place := func(v *tess.Vertex) vec.Vec2 {
			return vertexPos(v, 0).Mul(scale).Add(offs)
		}
		for k := 0; k+2 < len(base.Indices); k += 3 {
			a := &base.Vertices[base.Indices[k]]
			b := &base.Vertices[base.Indices[k+1]]
			d := &base.Vertices[base.Indices[k+2]]
			c.triangle(place(a), place(b), place(d), src)
		}
	}
}

// WritePNG encodes the current image as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Image)
}

func (c *Canvas) drawMesh(m *tess.Mesh, halfWidth float64) {
	if m == nil {
		return
	}
	var last [3]float32
	var src *image.Uniform
	for k := 0; k+2 < len(m.Indices); k += 3 {
		a := &m.Vertices[m.Indices[k]]
		b := &m.Vertices[m.Indices[k+1]]
		d := &m.Vertices[m.Indices[k+2]]
		if src == nil || a.Color != last {
			last = a.Color
			src = image.NewUniform(toRGBA(a.Color))
		}
		c.triangle(vertexPos(a, halfWidth), vertexPos(b, halfWidth), vertexPos(d, halfWidth), src)
	}
}

// triangle fills the triangle with corners given in working coordinates.
// Each triangle is rasterized on its own, so that the winding of
// neighbouring triangles does not matter.
func (c *Canvas) triangle(p0, p1, p2 vec.Vec2, src image.Image) {
	var xs, ys [3]float32
	for i, p := range [3]vec.Vec2{p0, p1, p2} {
		xs[i], ys[i] = c.toPixel(p)
	}

	minX := math.Floor(float64(min(xs[0], xs[1], xs[2])))
	minY := math.Floor(float64(min(ys[0], ys[1], ys[2])))
	maxX := math.Ceil(float64(max(xs[0], xs[1], xs[2])))
	maxY := math.Ceil(float64(max(ys[0], ys[1], ys[2])))
	if math.IsNaN(minX) || math.IsNaN(minY) || math.IsNaN(maxX) || math.IsNaN(maxY) {
		return
	}

	b := c.Image.Bounds()
	r := image.Rect(
		int(max(minX, float64(b.Min.X))), int(max(minY, float64(b.Min.Y))),
		int(min(maxX, float64(b.Max.X))), int(min(maxY, float64(b.Max.Y))),
	)
	if r.Empty() {
		return
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	c.z.Reset(r.Dx(), r.Dy())
	c.z.MoveTo(xs[0]-ox, ys[0]-oy)
	c.z.LineTo(xs[1]-ox, ys[1]-oy)
	c.z.LineTo(xs[2]-ox, ys[2]-oy)
	c.z.ClosePath()
	c.z.Draw(c.Image, r, src, image.Point{})
}

// toPixel maps working coordinates to pixel coordinates, via clip space.
func (c *Canvas) toPixel(p vec.Vec2) (float32, float32) {
	cx, cy := c.u.Project(p)
	b := c.Image.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	return float32(b.Min.X) + (cx+1)/2*w, float32(b.Min.Y) + (1-cy)/2*h
}

// vertexPos returns the displaced position of a vertex, as computed by the
// vertex shader.
func vertexPos(v *tess.Vertex, halfWidth float64) vec.Vec2 {
	p := vec.Vec2{X: float64(v.Position[0]), Y: float64(v.Position[1])}
	if halfWidth == 0 {
		return p
	}
	n := vec.Vec2{X: float64(v.Normal[0]), Y: float64(v.Normal[1])}
	return p.Add(n.Mul(float64(v.Miter) * halfWidth))
}

func toRGBA(c [3]float32) color.NRGBA {
	conv := func(x float32) uint8 {
		return uint8(math.Round(float64(min(max(x, 0), 1)) * 255))
	}
	return color.NRGBA{R: conv(c[0]), G: conv(c[1]), B: conv(c[2]), A: 0xFF}
}
