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

package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"seehuhn.de/go/geom/vec"
)

// LatLon is a WGS84 coordinate in degrees.
type LatLon struct {
	Lat, Lon float64
}

func (ll LatLon) point() orb.Point {
	return orb.Point{ll.Lon, ll.Lat}
}

// Valid reports whether the coordinate is finite and in range.
func (ll LatLon) Valid() bool {
	return !math.IsNaN(ll.Lat) && !math.IsNaN(ll.Lon) &&
		ll.Lat >= -90 && ll.Lat <= 90 && ll.Lon >= -180 && ll.Lon <= 180
}

// Local is an azimuthal equidistant projection around Origin.
// A point at great-circle distance d and initial bearing b from the origin
// maps to (d cos b, d sin b), so X points north and Y points east.
type Local struct {
	Origin LatLon
}

// Project maps a geographic coordinate into the working frame.
func (l Local) Project(ll LatLon) vec.Vec2 {
	o := l.Origin.point()
	p := ll.point()
	d := orbgeo.DistanceHaversine(o, p)
	if d == 0 {
		return vec.Vec2{}
	}
	b := orbgeo.Bearing(o, p) * math.Pi / 180
	return vec.Vec2{X: d * math.Cos(b), Y: d * math.Sin(b)}
}

// Unproject is the inverse of [Local.Project].
func (l Local) Unproject(v vec.Vec2) LatLon {
	d := math.Hypot(v.X, v.Y)
	if d == 0 {
		return l.Origin
	}
	b := math.Atan2(v.Y, v.X) * 180 / math.Pi
	p := orbgeo.PointAtBearingAndDistance(l.Origin.point(), b, d)
	return LatLon{Lat: p[1], Lon: p[0]}
}

// Bound is a lat/lon bounding box accumulator.
type Bound struct {
	b     orb.Bound
	valid bool
}

// Extend grows the box to contain ll.
func (b *Bound) Extend(ll LatLon) {
	if !ll.Valid() {
		return
	}
	if !b.valid {
		b.b = orb.Bound{Min: ll.point(), Max: ll.point()}
		b.valid = true
		return
	}
	b.b = b.b.Extend(ll.point())
}

// Center returns the centre of the box, or the zero coordinate if
// nothing was added.
func (b *Bound) Center() LatLon {
	if !b.valid {
		return LatLon{}
	}
	c := b.b.Center()
	return LatLon{Lat: c[1], Lon: c[0]}
}

// Empty reports whether no valid coordinate was added.
func (b *Bound) Empty() bool {
	return !b.valid
}
