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

// Package camera maps working coordinates to clip space and back.
//
// A [Camera] tracks the screen size in pixels and the part of the working
// frame which is currently visible. Screen coordinates have their origin
// in the top left corner, with y pointing down. Every mutation is
// validated first; a rejected mutation leaves the camera unchanged and
// returns an error wrapping [transitmap.ErrInvalidCamera].
package camera

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/transitmap"
)

// Camera is an owned, single-writer value. It is not safe for concurrent
// use; input from other goroutines should be passed as [Command] values
// through a queue.
type Camera struct {
	screenW, screenH float64 // viewport in pixels

	// Visible part of the working frame. East runs along the screen's x
	// axis, north along its (upward) y axis.
	east0, north0       float64
	eastSpan, northSpan float64
}

// New returns a camera for a screen of the given size in pixels, showing
// all of bounds. The aspect ratio of the screen is preserved, so that
// one of the two extents will usually be larger than bounds.
func New(screenW, screenH float64, bounds rect.Rect) (*Camera, error) {
	c := &Camera{}
	if err := checkScreen(screenW, screenH); err != nil {
		return nil, err
	}
	c.screenW, c.screenH = screenW, screenH
	if err := c.Fit(bounds); err != nil {
		return nil, err
	}
	return c, nil
}

// Fit changes the visible area to show all of bounds, centred on the
// screen.
func (c *Camera) Fit(bounds rect.Rect) error {
	for _, x := range []float64{bounds.LLx, bounds.LLy, bounds.URx, bounds.URy} {
		if !finite(x) {
			return fmt.Errorf("fit to %v: %w", bounds, transitmap.ErrInvalidCamera)
		}
	}
	north := bounds.URx - bounds.LLx
	east := bounds.URy - bounds.LLy
	perPixel := max(east/c.screenW, north/c.screenH)
	if !(perPixel > 0) {
		return fmt.Errorf("fit to empty bounds %v: %w", bounds, transitmap.ErrInvalidCamera)
	}

	eastSpan := perPixel * c.screenW
	northSpan := perPixel * c.screenH
	c.set(
		(bounds.LLy+bounds.URy)/2-eastSpan/2,
		(bounds.LLx+bounds.URx)/2-northSpan/2,
		eastSpan, northSpan)
	return nil
}

// Resize changes the screen size. The geographic centre of the view and
// the scale (working units per pixel) are preserved.
func (c *Camera) Resize(screenW, screenH float64) error {
	if err := checkScreen(screenW, screenH); err != nil {
		return err
	}
	cEast := c.east0 + c.eastSpan/2
	cNorth := c.north0 + c.northSpan/2
	eastSpan := c.eastSpan * screenW / c.screenW
	northSpan := c.northSpan * screenH / c.screenH
	if err := checkView(cEast-eastSpan/2, cNorth-northSpan/2, eastSpan, northSpan); err != nil {
		return err
	}

	c.screenW, c.screenH = screenW, screenH
	c.set(cEast-eastSpan/2, cNorth-northSpan/2, eastSpan, northSpan)
	return nil
}

// Pan moves the view by a drag of (dx, dy) pixels: the point under the
// pointer follows the pointer.
func (c *Camera) Pan(dx, dy float64) error {
	if !finite(dx) || !finite(dy) {
		return fmt.Errorf("pan by (%g, %g): %w", dx, dy, transitmap.ErrInvalidCamera)
	}
	east0 := c.east0 - dx*c.eastSpan/c.screenW
	north0 := c.north0 + dy*c.northSpan/c.screenH
	if err := checkView(east0, north0, c.eastSpan, c.northSpan); err != nil {
		return err
	}
	c.east0, c.north0 = east0, north0
	return nil
}

// Zoom scales the view by factor around the screen point (ax, ay), which
// stays fixed on screen. Factors above 1 zoom in.
func (c *Camera) Zoom(factor, ax, ay float64) error {
	if !(factor > 0) || !finite(factor) || !finite(ax) || !finite(ay) {
		return fmt.Errorf("zoom by %g at (%g, %g): %w",
			factor, ax, ay, transitmap.ErrInvalidCamera)
	}
	anchor := c.ScreenToGeo(ax, ay)
	eastSpan := c.eastSpan / factor
	northSpan := c.northSpan / factor
	east0 := anchor.Y - ax/c.screenW*eastSpan
	north0 := anchor.X - (1-ay/c.screenH)*northSpan
	if err := checkView(east0, north0, eastSpan, northSpan); err != nil {
		return err
	}
	c.set(east0, north0, eastSpan, northSpan)
	return nil
}

// Uniform returns the camera block for the current state.
func (c *Camera) Uniform() Uniform {
	return Uniform{
		Width:  float32(c.northSpan),
		Height: float32(c.eastSpan),
		Min:    [2]float32{float32(c.east0), float32(c.north0)},
	}
}

// Screen returns the screen size in pixels.
func (c *Camera) Screen() (w, h float64) {
	return c.screenW, c.screenH
}

// Visible returns the visible part of the working frame.
func (c *Camera) Visible() rect.Rect {
	return rect.Rect{
		LLx: c.north0,
		LLy: c.east0,
		URx: c.north0 + c.northSpan,
		URy: c.east0 + c.eastSpan,
	}
}

// ScreenToGeo maps a screen position in pixels to working coordinates.
func (c *Camera) ScreenToGeo(sx, sy float64) vec.Vec2 {
	return vec.Vec2{
		X: c.north0 + (1-sy/c.screenH)*c.northSpan,
		Y: c.east0 + sx/c.screenW*c.eastSpan,
	}
}

// GeoToScreen maps working coordinates to a screen position in pixels.
func (c *Camera) GeoToScreen(p vec.Vec2) (sx, sy float64) {
	sx = (p.Y - c.east0) / c.eastSpan * c.screenW
	sy = (1 - (p.X-c.north0)/c.northSpan) * c.screenH
	return sx, sy
}

// ClipToGeo maps a point in clip space to working coordinates. This is
// the inverse of [Uniform.Project] for the camera's current uniform.
func (c *Camera) ClipToGeo(cx, cy float64) vec.Vec2 {
	return vec.Vec2{
		X: c.north0 + (cy+1)/2*c.northSpan,
		Y: c.east0 + (cx+1)/2*c.eastSpan,
	}
}

func (c *Camera) set(east0, north0, eastSpan, northSpan float64) {
	c.east0, c.north0 = east0, north0
	c.eastSpan, c.northSpan = eastSpan, northSpan
}

func checkScreen(w, h float64) error {
	if !(w > 0) || !(h > 0) || !finite(w) || !finite(h) {
		return fmt.Errorf("screen size %gx%g: %w", w, h, transitmap.ErrInvalidCamera)
	}
	return nil
}

// checkView makes sure that a view survives the conversion to float32.
func checkView(east0, north0, eastSpan, northSpan float64) error {
	u := Uniform{
		Width:  float32(northSpan),
		Height: float32(eastSpan),
		Min:    [2]float32{float32(east0), float32(north0)},
	}
	if !u.Valid() {
		return fmt.Errorf("view %gx%g at (%g, %g): %w",
			eastSpan, northSpan, east0, north0, transitmap.ErrInvalidCamera)
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
