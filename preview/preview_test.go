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
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/transitmap/camera"
	"seehuhn.de/go/transitmap/fleet"
	"seehuhn.de/go/transitmap/geo"
	"seehuhn.de/go/transitmap/scene"
	"seehuhn.de/go/transitmap/tess"
)

// The uniform maps the working square [0, 100]×[0, 100] onto the whole
// image, with north (X) pointing up.
var square = camera.Uniform{Width: 100, Height: 100, Min: [2]float32{0, 0}}

func isBackground(c *Canvas, x, y int) bool {
	r, g, b, _ := c.Image.At(x, y).RGBA()
	br, bg, bb, _ := c.Background.RGBA()
	return r == br && g == bg && b == bb
}

func near(got color.Color, want color.RGBA) bool {
	r, g, b, a := got.RGBA()
	wr, wg, wb, wa := want.RGBA()
	ok := func(x, y uint32) bool {
		d := int(x) - int(y)
		return d > -0x300 && d < 0x300
	}
	return ok(r, wr) && ok(g, wg) && ok(b, wb) && ok(a, wa)
}

func TestCanvasRegion(t *testing.T) {
	var m tess.Mesh
	err := tess.NewTessellator().Fill([][]vec.Vec2{{
		{X: 50, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 50, Y: 100},
	}}, geo.White, &m)
	if err != nil {
		t.Fatal(err)
	}

	c := NewCanvas(100, 100, 0)
	c.SetCamera(square)
	c.DrawRegions(&m)

	// the northern half is the top half of the image
	if got := c.Image.At(50, 20); !near(got, color.RGBA{255, 255, 255, 255}) {
		t.Errorf("top half: got %v, want white", got)
	}
	if !isBackground(c, 50, 80) {
		t.Errorf("bottom half: got %v, want background", c.Image.At(50, 80))
	}
}

func TestCanvasLineWidth(t *testing.T) {
	// an east-west line through the middle of the image
	var m tess.Mesh
	err := tess.NewTessellator().Polyline([]vec.Vec2{{X: 50, Y: 0}, {X: 50, Y: 100}}, geo.White, &m)
	if err != nil {
		t.Fatal(err)
	}

	c := NewCanvas(100, 100, 10)
	c.SetCamera(square)
	c.DrawLines(&m)

	if isBackground(c, 50, 50) {
		t.Error("line centre not painted")
	}
	if isBackground(c, 50, 43) || isBackground(c, 50, 56) {
		t.Error("line narrower than its half width")
	}
	if !isBackground(c, 50, 30) || !isBackground(c, 50, 70) {
		t.Error("line wider than its half width")
	}

	// without displacement the ribbon has no area
	c = NewCanvas(100, 100, 0)
	c.SetCamera(square)
	c.DrawLines(&m)
	if !isBackground(c, 50, 30) {
		t.Error("zero width line painted")
	}
}

func TestCanvasVehicles(t *testing.T) {
	base := scene.VehicleMarker(1, 12)
	inst := []fleet.Instance{
		{Position: [3]float32{75, 25, 0}, Color: [3]float32{1, 0, 0}, Scale: 5},
	}

	c := NewCanvas(100, 100, 0)
	c.SetCamera(square)
	c.DrawVehicles(base, inst)

	// The marker is centred on pixel position (25, 25). Pixel (25, 21)
	// lies inside a single triangle of the fan.
	if got := c.Image.At(25, 21); !near(got, color.RGBA{255, 0, 0, 255}) {
		t.Errorf("vehicle: got %v, want red", got)
	}
	if !isBackground(c, 25, 35) {
		t.Error("vehicle larger than its scale")
	}
}

func TestCanvasPNG(t *testing.T) {
	c := NewCanvas(16, 8, 1)
	c.SetCamera(square)
	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("got size %v", b)
	}
}

func TestWritePDF(t *testing.T) {
	model := &geo.Model{
		Regions: []geo.Polygon{{ID: "r", Rings: [][]vec.Vec2{{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}}}, Color: geo.White}},
		Lines:   []geo.Polyline{{ID: "l", Points: []vec.Vec2{{X: 5, Y: 5}, {X: 50, Y: 95}}, Color: geo.Color{R: 1}}},
	}
	static, diags := scene.NewBuilder().Build(model)
	if len(diags) != 0 {
		t.Fatal(diags)
	}

	fname := filepath.Join(t.TempDir(), "proof.pdf")
	if err := WritePDF(fname, static, square, 2, 200, 200); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF file")
	}
}

func BenchmarkCanvas(b *testing.B) {
	var m tess.Mesh
	tt := tess.NewTessellator()
	for i := range 50 {
		y := float64(2*i + 1)
		tt.Polyline([]vec.Vec2{{X: 0, Y: y}, {X: 50, Y: y + 1}, {X: 100, Y: y}}, geo.White, &m)
	}
	c := NewCanvas(256, 256, 0.5)
	for b.Loop() {
		c.SetCamera(square)
		c.DrawLines(&m)
	}
}
