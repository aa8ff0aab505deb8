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

package scene

import (
	"seehuhn.de/go/transitmap/camera"
	"seehuhn.de/go/transitmap/fleet"
	"seehuhn.de/go/transitmap/tess"
)

// Composer is the rendering backend driven by [Scene.Frame].
//
// Within one frame, SetCamera is called first, then the draw methods in
// the order regions, lines, stations, vehicles. The meshes and instances
// are only valid for the duration of the call.
type Composer interface {
	// SetCamera sets the camera block for all following draws.
	SetCamera(u camera.Uniform)

	// DrawRegions draws the filled regions.
	DrawRegions(m *tess.Mesh)

	// DrawLines draws the line ribbons. Each vertex is displaced by
	// Normal*Miter*halfWidth, where the half width is a property of the
	// composer.
	DrawLines(m *tess.Mesh)

	// DrawStations draws the station markers.
	DrawStations(m *tess.Mesh)

	// DrawVehicles draws one copy of base per instance. A copy is scaled
	// by the instance's Scale, moved to its Position and drawn in its
	// Color; the colours of base are ignored.
	DrawVehicles(base *tess.Mesh, instances []fleet.Instance)
}
