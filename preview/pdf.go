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

package preview

import (
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/transitmap/camera"
	"seehuhn.de/go/transitmap/fleet"
	"seehuhn.de/go/transitmap/geo"
	"seehuhn.de/go/transitmap/scene"
	"seehuhn.de/go/transitmap/tess"
)

// Page is a [scene.Composer] which writes one frame to a single-page PDF
// file. Colours are reduced to gray levels.
type Page struct {
	// HalfWidth is half the line width in working units.
	HalfWidth float64

	page *document.Page
	w, h float64
	u    camera.Uniform
	gray float64
}

// NewPage creates a PDF file with one page of w×h points.
func NewPage(fname string, w, h, halfWidth float64) (*Page, error) {
	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}
	return &Page{HalfWidth: halfWidth, page: page, w: w, h: h, gray: -1}, nil
}

// SetCamera implements [scene.Composer]. It paints a black background.
func (p *Page) SetCamera(u camera.Uniform) {
	p.u = u
	p.setGray(0)
	p.page.Rectangle(0, 0, p.w, p.h)
	p.page.Fill()
}

// DrawRegions implements [scene.Composer].
func (p *Page) DrawRegions(m *tess.Mesh) {
	p.drawMesh(m, 0)
}

// DrawLines implements [scene.Composer].
func (p *Page) DrawLines(m *tess.Mesh) {
	p.drawMesh(m, p.HalfWidth)
}

// DrawStations implements [scene.Composer].
func (p *Page) DrawStations(m *tess.Mesh) {
	p.drawMesh(m, 0)
}

// DrawVehicles implements [scene.Composer].
func (p *Page) DrawVehicles(base *tess.Mesh, instances []fleet.Instance) {
	if base == nil {
		return
	}
	for _, inst := range instances {
		p.setGray(grayOf(inst.Color))
		offs := vec.Vec2{X: float64(inst.Position[0]), Y: float64(inst.Position[1])}
		for k := 0; k+2 < len(base.Indices); k += 3 {
			var q [3]vec.Vec2
			for j := range q {
				v := &base.Vertices[base.Indices[k+j]]
				q[j] = vertexPos(v, 0).Mul(float64(inst.Scale)).Add(offs)
			}
			p.triangle(q[0], q[1], q[2])
		}
	}
}

// Close writes the PDF file.
func (p *Page) Close() error {
	return p.page.Close()
}

func (p *Page) drawMesh(m *tess.Mesh, halfWidth float64) {
	if m == nil {
		return
	}
	for k := 0; k+2 < len(m.Indices); k += 3 {
		a := &m.Vertices[m.Indices[k]]
		b := &m.Vertices[m.Indices[k+1]]
		c := &m.Vertices[m.Indices[k+2]]
		p.setGray(grayOf(a.Color))
		p.triangle(vertexPos(a, halfWidth), vertexPos(b, halfWidth), vertexPos(c, halfWidth))
	}
}

func (p *Page) triangle(a, b, c vec.Vec2) {
	x, y := p.toPage(a)
	p.page.MoveTo(x, y)
	x, y = p.toPage(b)
	p.page.LineTo(x, y)
	x, y = p.toPage(c)
	p.page.LineTo(x, y)
	p.page.ClosePath()
	p.page.Fill()
}

// toPage maps working coordinates to PDF user space. PDF has its origin
// in the bottom left corner, like clip space.
func (p *Page) toPage(q vec.Vec2) (float64, float64) {
	cx, cy := p.u.Project(q)
	return (float64(cx) + 1) / 2 * p.w, (float64(cy) + 1) / 2 * p.h
}

func (p *Page) setGray(g float64) {
	if g == p.gray {
		return
	}
	p.gray = g
	p.page.SetFillColor(color.DeviceGray(g))
}

func grayOf(c [3]float32) float64 {
	return geo.Color{R: c[0], G: c[1], B: c[2]}.Gray()
}

// WritePDF writes the static meshes, as seen through u, to a single-page
// PDF file of w×h points.
func WritePDF(fname string, static *scene.Static, u camera.Uniform, halfWidth, w, h float64) error {
	p, err := NewPage(fname, w, h, halfWidth)
	if err != nil {
		return err
	}
	p.SetCamera(u)
	p.DrawRegions(&static.Regions)
	p.DrawLines(&static.Lines)
	p.DrawStations(&static.Stations)
	return p.Close()
}
