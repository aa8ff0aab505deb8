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
	"errors"

	"seehuhn.de/go/transitmap"
	"seehuhn.de/go/transitmap/camera"
	"seehuhn.de/go/transitmap/fleet"
	"seehuhn.de/go/transitmap/tess"
)

// CommandQueueSize is the number of camera commands which can be waiting
// for the next frame.
const CommandQueueSize = 64

var errQueueFull = errors.New("camera command queue full")

// Scene owns everything drawn in a frame: the static meshes, the vehicle
// instances and the camera.
//
// All methods except Post must be called from the frame loop goroutine.
// Post may be called from any goroutine.
type Scene struct {
	static    *Static
	cam       *camera.Camera
	updater   *fleet.Updater
	slot      *fleet.Slot
	base      *tess.Mesh
	instances []fleet.Instance

	commands chan camera.Command
	dropped  chan struct{}
}

// New returns a scene drawing static through cam. Vehicle snapshots are
// taken from slot and converted by updater; each vehicle is drawn as a
// copy of base.
func New(static *Static, cam *camera.Camera, updater *fleet.Updater, slot *fleet.Slot, base *tess.Mesh) *Scene {
	if static == nil {
		static = &Static{}
	}
	if base == nil {
		base = &tess.Mesh{}
	}
	return &Scene{
		static:   static,
		cam:      cam,
		updater:  updater,
		slot:     slot,
		base:     base,
		commands: make(chan camera.Command, CommandQueueSize),
		dropped:  make(chan struct{}, 1),
	}
}

// Post queues a camera command for the next frame. If the queue is full,
// the command is dropped, reported by the next frame, and Post returns
// false.
func (s *Scene) Post(cmd camera.Command) bool {
	select {
	case s.commands <- cmd:
		return true
	default:
		select {
		case s.dropped <- struct{}{}:
		default:
		}
		return false
	}
}

// Frame draws one frame.
//
// Queued camera commands are applied in order; a rejected command leaves
// the camera unchanged and is reported. If a new snapshot is waiting in
// the slot, the instance buffer is rebuilt from it. Finally the composer
// gets one SetCamera call, one draw per static category in [DrawOrder],
// and one instanced draw for the vehicles.
func (s *Scene) Frame(c Composer) []transitmap.Diagnostic {
	var diags []transitmap.Diagnostic

drain:
	for {
		select {
		case cmd := <-s.commands:
			if err := cmd(s.cam); err != nil {
				diags = append(diags, transitmap.Diagnostic{Record: "camera", Err: err})
			}
		default:
			break drain
		}
	}
	select {
	case <-s.dropped:
		diags = append(diags, transitmap.Diagnostic{Record: "camera", Err: errQueueFull})
	default:
	}

	if s.slot != nil && s.updater != nil {
		if snap, ok := s.slot.Take(); ok {
			var d []transitmap.Diagnostic
			s.instances, d = s.updater.Apply(snap)
			diags = append(diags, d...)
		}
	}

	c.SetCamera(s.cam.Uniform())
	for _, cat := range DrawOrder {
		m := s.static.Mesh(cat)
		switch cat {
		case Regions:
			c.DrawRegions(m)
		case Lines:
			c.DrawLines(m)
		case Stations:
			c.DrawStations(m)
		}
	}
	c.DrawVehicles(s.base, s.instances)

	return diags
}

// Reload replaces the static meshes, for example after the dataset has
// been reloaded. The camera and the vehicles are kept.
func (s *Scene) Reload(static *Static) {
	if static == nil {
		static = &Static{}
	}
	s.static = static
}

// Camera returns the scene's camera.
func (s *Scene) Camera() *camera.Camera {
	return s.cam
}

// Instances returns the vehicle instances drawn by the last frame.
func (s *Scene) Instances() []fleet.Instance {
	return s.instances
}
