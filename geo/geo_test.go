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
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/transitmap"
)

func TestLocalAxes(t *testing.T) {
	l := Local{Origin: LatLon{Lat: 40.7128, Lon: -74.0060}}

	if p := l.Project(l.Origin); p != (vec.Vec2{}) {
		t.Errorf("origin maps to %v", p)
	}

	north := l.Project(LatLon{Lat: 40.7228, Lon: -74.0060})
	if north.X < 1000 || math.Abs(north.Y) > 1e-6 {
		t.Errorf("north: got %v, want X≈1112 Y≈0", north)
	}

	east := l.Project(LatLon{Lat: 40.7128, Lon: -73.9960})
	if east.Y < 800 || math.Abs(east.X) > 1 {
		t.Errorf("east: got %v, want Y≈843 X≈0", east)
	}
}

func TestLocalRoundTrip(t *testing.T) {
	l := Local{Origin: LatLon{Lat: 40.7128, Lon: -74.0060}}
	for _, ll := range []LatLon{
		{40.8, -73.9},
		{40.6, -74.1},
		{40.7128, -73.8},
		{40.5, -74.0060},
	} {
		got := l.Unproject(l.Project(ll))
		if math.Abs(got.Lat-ll.Lat) > 1e-9 || math.Abs(got.Lon-ll.Lon) > 1e-9 {
			t.Errorf("round trip %v -> %v", ll, got)
		}
	}
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"FFFFFF", White, true},
		{"#000000", Color{}, true},
		{"ff0000", Color{R: 1}, true},
		{"00FF0", Color{}, false},
		{"GGGGGG", Color{}, false},
		{"", Color{}, false},
	}
	for _, c := range cases {
		got, err := ParseHex(c.in)
		if (err == nil) != c.ok {
			t.Errorf("%q: unexpected error state %v", c.in, err)
			continue
		}
		if c.ok && got != c.want {
			t.Errorf("%q: got %v, want %v", c.in, got, c.want)
		}
	}
}

func TestGray(t *testing.T) {
	cases := []struct {
		in   Color
		want float64
	}{
		{White, 1},
		{Color{}, 0},
		{Color{R: 1}, 0.299},
		{Color{G: 1}, 0.587},
		{Color{B: 1}, 0.114},
		{Color{R: 2, G: 2, B: 2}, 1},
		{Color{R: -1}, 0},
	}
	for _, c := range cases {
		if got := c.in.Gray(); math.Abs(got-c.want) > 1e-6 {
			t.Errorf("%v: got %g, want %g", c.in, got, c.want)
		}
	}
}

func TestValidate(t *testing.T) {
	nan := math.NaN()

	bad := []interface{ Validate() error }{
		&Polyline{ID: "short", Points: []vec.Vec2{{X: 0, Y: 0}}},
		&Polyline{ID: "nan", Points: []vec.Vec2{{X: 0, Y: 0}, {X: nan, Y: 1}}},
		&Polygon{ID: "none"},
		&Polygon{ID: "flat", Rings: [][]vec.Vec2{{{X: 0, Y: 0}, {X: 1, Y: 0}}}},
		&Polygon{ID: "inf", Rings: [][]vec.Vec2{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: math.Inf(1), Y: 1}}}},
		&Station{ID: "nan", Pos: vec.Vec2{X: nan}},
	}
	for i, r := range bad {
		err := r.Validate()
		if !errors.Is(err, transitmap.ErrMalformedGeometry) {
			t.Errorf("%d: got %v, want ErrMalformedGeometry", i, err)
		}
	}

	good := []interface{ Validate() error }{
		&Polyline{Points: []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		&Polygon{Rings: [][]vec.Vec2{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}}},
		&Polygon{ID: "flat_hole", Rings: [][]vec.Vec2{
			{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}},
			{{X: 1, Y: 1}, {X: 2, Y: 1}},
		}},
		&Station{Pos: vec.Vec2{X: 3, Y: 4}},
	}
	for i, r := range good {
		if err := r.Validate(); err != nil {
			t.Errorf("%d: unexpected error %v", i, err)
		}
	}
}

func TestModelBounds(t *testing.T) {
	m := &Model{
		Regions: []Polygon{{Rings: [][]vec.Vec2{{{X: -5, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 2}}}}},
		Lines:   []Polyline{{Points: []vec.Vec2{{X: 1, Y: 1}, {X: 3, Y: math.NaN()}, {X: 2, Y: 7}}}},
		Stations: []Station{
			{Pos: vec.Vec2{X: 4, Y: -1}},
		},
	}
	want := rect.Rect{LLx: -5, LLy: -1, URx: 4, URy: 7}
	if got := m.Bounds(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := (&Model{}).Bounds(); got != (rect.Rect{}) {
		t.Errorf("empty model: got %v", got)
	}
}

func TestCircle(t *testing.T) {
	ring := Circle(vec.Vec2{X: 10, Y: 20}, 90, 5)
	if len(ring) != 72 {
		t.Fatalf("got %d points, want 72", len(ring))
	}
	for i, p := range ring {
		d := p.Sub(vec.Vec2{X: 10, Y: 20}).Length()
		if math.Abs(d-90) > 1e-9 {
			t.Errorf("point %d at distance %g", i, d)
		}
	}
}
