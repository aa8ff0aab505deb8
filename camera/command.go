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

package camera

import "seehuhn.de/go/geom/rect"

// Command is a deferred camera mutation, queued by input handlers and
// applied once per frame by the frame loop.
type Command func(*Camera) error

// ResizeTo returns a command which calls [Camera.Resize].
func ResizeTo(w, h float64) Command {
	return func(c *Camera) error { return c.Resize(w, h) }
}

// PanBy returns a command which calls [Camera.Pan].
func PanBy(dx, dy float64) Command {
	return func(c *Camera) error { return c.Pan(dx, dy) }
}

// ZoomAt returns a command which calls [Camera.Zoom].
func ZoomAt(factor, ax, ay float64) Command {
	return func(c *Camera) error { return c.Zoom(factor, ax, ay) }
}

// FitTo returns a command which calls [Camera.Fit].
func FitTo(bounds rect.Rect) Command {
	return func(c *Camera) error { return c.Fit(bounds) }
}
