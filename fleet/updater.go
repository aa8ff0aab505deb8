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

package fleet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/transitmap"
	"seehuhn.de/go/transitmap/geo"
	"seehuhn.de/go/transitmap/tess"
)

// DefaultMaxInstances bounds the instance buffer if no limit is set.
const DefaultMaxInstances = 10000

// Instance is the per-vehicle record of the instanced draw.
type Instance struct {
	Position [3]float32
	Color    [3]float32
	Scale    float32
}

// InstanceSize is the size of one encoded [Instance] in bytes.
const InstanceSize = 28

// InstanceAttributes is the layout of [Instance] records, locations 4
// to 6.
var InstanceAttributes = []tess.Attribute{
	{Location: 4, Offset: 0, Components: 3},  // position
	{Location: 5, Offset: 12, Components: 3}, // color
	{Location: 6, Offset: 24, Components: 1}, // scale
}

var errDuplicate = errors.New("duplicate vehicle id, last report wins")

// Updater converts snapshots into instance buffers.
//
// Every call to [Updater.Apply] replaces the previous buffer completely.
// The backing array is reused while the fleet does not grow, and
// reallocated when it does.
//
// An Updater is not safe for concurrent use.
type Updater struct {
	// Projection maps vehicle positions into the working frame of the
	// static geometry.
	Projection geo.Local

	// Scale is the instance scale of moving vehicles.
	Scale float32

	// StoppedScale is the instance scale of vehicles standing at a stop.
	// If zero, Scale is used.
	StoppedScale float32

	// MaxInstances bounds the number of instances. Vehicles beyond the
	// limit are dropped. If zero, DefaultMaxInstances is used.
	MaxInstances int

	buf   []Instance
	index map[string]int
}

// NewUpdater returns an updater with unit scale.
func NewUpdater(proj geo.Local) *Updater {
	return &Updater{Projection: proj, Scale: 1}
}

// Apply rebuilds the instance buffer from s and returns it. The returned
// slice is only valid until the next call to Apply. A nil or empty
// snapshot gives an empty buffer.
//
// Vehicles are stored in the order in which their IDs first appear in
// the snapshot. If an ID appears more than once, the last report is used
// and a diagnostic is returned.
func (u *Updater) Apply(s *Snapshot) ([]Instance, []transitmap.Diagnostic) {
	var diags []transitmap.Diagnostic

	var vehicles []Telemetry
	if s != nil {
		vehicles = s.Vehicles
	}
	limit := u.MaxInstances
	if limit <= 0 {
		limit = DefaultMaxInstances
	}

	need := min(len(vehicles), limit)
	if cap(u.buf) < need {
		u.buf = make([]Instance, 0, need)
	} else {
		u.buf = u.buf[:0]
	}
	if u.index == nil {
		u.index = make(map[string]int, need)
	}
	clear(u.index)

	dropped := 0
	for _, v := range vehicles {
		if !v.Pos.Valid() {
			diags = append(diags, transitmap.Diagnostic{
				Record: v.VehicleID,
				Err: fmt.Errorf("position (%g, %g): %w",
					v.Pos.Lat, v.Pos.Lon, transitmap.ErrMalformedGeometry),
			})
			continue
		}
		inst := u.instance(v)

		if i, seen := u.index[v.VehicleID]; seen {
			u.buf[i] = inst
			diags = append(diags, transitmap.Diagnostic{Record: v.VehicleID, Err: errDuplicate})
			continue
		}
		if len(u.buf) >= limit {
			dropped++
			continue
		}
		u.index[v.VehicleID] = len(u.buf)
		u.buf = append(u.buf, inst)
	}

	if dropped > 0 {
		diags = append(diags, transitmap.Diagnostic{
			Err: fmt.Errorf("%d vehicles beyond the limit of %d: %w",
				dropped, limit, transitmap.ErrCapacityExceeded),
		})
	}
	return u.buf, diags
}

// Instances returns the buffer built by the last call to Apply.
func (u *Updater) Instances() []Instance {
	return u.buf
}

func (u *Updater) instance(v Telemetry) Instance {
	p := u.Projection.Project(v.Pos)
	scale := u.Scale
	if v.Stopped && u.StoppedScale != 0 {
		scale = u.StoppedScale
	}
	return Instance{
		Position: [3]float32{float32(p.X), float32(p.Y), 0},
		Color:    v.RouteColor.Array(),
		Scale:    scale,
	}
}

// AppendInstanceBytes appends the little-endian encoding of the
// instances to buf, in the layout given by [InstanceAttributes].
func AppendInstanceBytes(buf []byte, instances []Instance) []byte {
	buf = slices.Grow(buf, len(instances)*InstanceSize)
	for i := range instances {
		in := &instances[i]
		for _, x := range in.Position {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(x))
		}
		for _, x := range in.Color {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(x))
		}
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(in.Scale))
	}
	return buf
}
