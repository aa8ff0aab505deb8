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

// Package scene assembles the buffers of a transit map and hands them to
// a renderer once per frame.
package scene

import (
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/transitmap"
	"seehuhn.de/go/transitmap/geo"
	"seehuhn.de/go/transitmap/tess"
)

// Category identifies one of the static meshes.
type Category int

// The static mesh categories.
const (
	Regions Category = iota
	Lines
	Stations
)

func (c Category) String() string {
	switch c {
	case Regions:
		return "regions"
	case Lines:
		return "lines"
	case Stations:
		return "stations"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// DrawOrder lists the static categories back to front. Vehicles are
// drawn after all of them.
var DrawOrder = []Category{Regions, Lines, Stations}

// Static holds the tessellated static geography.
type Static struct {
	Regions  tess.Mesh
	Lines    tess.Mesh
	Stations tess.Mesh
}

// Mesh returns the mesh for the given category, or nil for an unknown
// category.
func (s *Static) Mesh(c Category) *tess.Mesh {
	switch c {
	case Regions:
		return &s.Regions
	case Lines:
		return &s.Lines
	case Stations:
		return &s.Stations
	default:
		return nil
	}
}

const (
	defaultStationRadius   = 40
	defaultStationSegments = 16
)

// Builder turns a [geo.Model] into static meshes.
type Builder struct {
	Tessellator *tess.Tessellator

	// StationRadius is the radius of station markers in working units.
	StationRadius float64

	// StationSegments is the number of triangles per station marker.
	StationSegments int

	// MaxVertices bounds the number of vertices in each mesh. Records
	// which would exceed the bound are dropped. Zero means no bound
	// beyond the range of a 32-bit index.
	MaxVertices int
}

// NewBuilder returns a builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		Tessellator:     tess.NewTessellator(),
		StationRadius:   defaultStationRadius,
		StationSegments: defaultStationSegments,
	}
}

// Build validates and tessellates all records of m. Each malformed
// record is skipped,
// leaves nothing behind in its mesh, and is reported in the returned
// diagnostics. Build never fails as a whole.
func (b *Builder) Build(m *geo.Model) (*Static, []transitmap.Diagnostic) {
	t := b.Tessellator
	if t == nil {
		t = tess.NewTessellator()
	}
	radius := b.StationRadius
	if radius == 0 {
		radius = defaultStationRadius
	}
	segments := b.StationSegments
	if segments == 0 {
		segments = defaultStationSegments
	}

	s := &Static{}
	var diags []transitmap.Diagnostic
	add := func(mesh *tess.Mesh, id string, emit func() error) {
		mark := mesh.Mark()
		err := emit()
		if err == nil && int64(len(mesh.Vertices)) > b.vertexLimit() {
			err = fmt.Errorf("%d vertices: %w", len(mesh.Vertices), transitmap.ErrCapacityExceeded)
		}
		if err != nil {
			mesh.Truncate(mark)
			diags = append(diags, transitmap.Diagnostic{Record: id, Err: err})
		}
	}

	for i := range m.Regions {
		r := &m.Regions[i]
		add(&s.Regions, r.ID, func() error {
			if err := r.Validate(); err != nil {
				return err
			}
			return t.Fill(r.Rings, r.Color, &s.Regions)
		})
	}
	for i := range m.Lines {
		l := &m.Lines[i]
		add(&s.Lines, l.ID, func() error {
			if err := l.Validate(); err != nil {
				return err
			}
			return t.Polyline(l.Points, l.Color, &s.Lines)
		})
	}
	for i := range m.Stations {
		st := &m.Stations[i]
		add(&s.Stations, st.ID, func() error {
			if err := st.Validate(); err != nil {
				return err
			}
			return tess.Disc(st.Pos, radius, segments, st.Color, &s.Stations)
		})
	}
	return s, diags
}

func (b *Builder) vertexLimit() int64 {
	const indexRange = 1 << 32
	if b.MaxVertices > 0 && int64(b.MaxVertices) < indexRange {
		return int64(b.MaxVertices)
	}
	return indexRange
}

// VehicleMarker returns the base mesh for instanced vehicle markers: a
// white disc of the given radius around the origin. Each instance moves,
// scales and colours the marker.
func VehicleMarker(radius float64, segments int) *tess.Mesh {
	m := &tess.Mesh{}
	if err := tess.Disc(vec.Vec2{}, radius, segments, geo.White, m); err != nil {
		return &tess.Mesh{}
	}
	return m
}
