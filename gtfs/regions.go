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

package gtfs

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"seehuhn.de/go/transitmap/geo"
)

// RegionColor is used for regions without a "color" property.
var RegionColor = geo.Color{R: 0.16, G: 0.18, B: 0.22}

// Region is one polygon of a GeoJSON region file.
type Region struct {
	Name  string
	Rings [][]geo.LatLon // outer ring first, then holes
	Color geo.Color
}

// ReadRegions reads a GeoJSON FeatureCollection. Every Polygon feature
// gives one region, every MultiPolygon feature one region per polygon.
// Other geometries are ignored. Regions are named by the "boro_name" or
// "name" property.
func ReadRegions(path string) ([]Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRegions(data)
}

// ParseRegions decodes the contents of a GeoJSON region file.
func ParseRegions(data []byte) ([]Region, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("invalid GeoJSON: %w", err)
	}

	var res []Region
	for i, f := range fc.Features {
		name := f.Properties.MustString("boro_name", f.Properties.MustString("name", ""))
		if name == "" {
			name = fmt.Sprintf("feature%d", i)
		}
		color := RegionColor
		if s := f.Properties.MustString("color", ""); s != "" {
			if c, err := geo.ParseHex(s); err == nil {
				color = c
			}
		}

		switch g := f.Geometry.(type) {
		case orb.Polygon:
			res = append(res, Region{Name: name, Rings: rings(g), Color: color})
		case orb.MultiPolygon:
			for j, poly := range g {
				res = append(res, Region{
					Name:  fmt.Sprintf("%s#%d", name, j),
					Rings: rings(poly),
					Color: color,
				})
			}
		}
	}
	return res, nil
}

func rings(p orb.Polygon) [][]geo.LatLon {
	res := make([][]geo.LatLon, len(p))
	for i, r := range p {
		ring := make([]geo.LatLon, len(r))
		for j, pt := range r {
			ring[j] = geo.LatLon{Lat: pt.Lat(), Lon: pt.Lon()}
		}
		res[i] = ring
	}
	return res
}
