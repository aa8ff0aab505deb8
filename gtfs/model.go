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
	"context"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/transitmap/geo"
)

// Dataset is the static data of a transit map, projected into the
// working frame.
type Dataset struct {
	Model      *geo.Model
	Projection geo.Local

	// Colors maps route IDs to route colours.
	Colors map[string]geo.Color

	// Routes holds the IDs of all routes.
	Routes map[string]bool

	// Stops maps every stop ID to the position of its station. It is
	// used to place vehicles which only report a stop.
	Stops map[string]geo.LatLon

	// Stations maps every stop with a known parent to the parent's ID.
	Stations map[string]string
}

// LoadModel reads the GTFS feed and the region file concurrently and
// combines them into a dataset. The region file is optional; pass "" to
// omit it.
func LoadModel(ctx context.Context, feedPath, regionsPath string) (*Dataset, error) {
	var feed *Feed
	var regions []Region

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		feed, err = ReadFeed(feedPath)
		return err
	})
	if regionsPath != "" {
		g.Go(func() error {
			var err error
			regions, err = ReadRegions(regionsPath)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewDataset(feed, regions), nil
}

// NewDataset projects the feed and the regions around the centre of
// their combined extent.
//
// Every shape becomes a line, coloured with the route of the first trip
// using it. Stops with location type 1 become stations; if the feed has
// no stations, every stop does.
func NewDataset(feed *Feed, regions []Region) *Dataset {
	colors := routeColors(feed.Routes)

	var bound geo.Bound
	for _, s := range feed.Stops {
		bound.Extend(s.Pos)
	}
	for _, pts := range feed.Shapes {
		for _, p := range pts {
			bound.Extend(p)
		}
	}
	for _, r := range regions {
		for _, ring := range r.Rings {
			for _, p := range ring {
				bound.Extend(p)
			}
		}
	}
	proj := geo.Local{Origin: bound.Center()}

	project := func(pts []geo.LatLon) []vec.Vec2 {
		res := make([]vec.Vec2, len(pts))
		for i, p := range pts {
			res[i] = proj.Project(p)
		}
		return res
	}

	m := &geo.Model{}
	for _, r := range regions {
		poly := geo.Polygon{ID: r.Name, Color: r.Color}
		for _, ring := range r.Rings {
			poly.Rings = append(poly.Rings, project(ring))
		}
		m.Regions = append(m.Regions, poly)
	}

	shapeRoute := make(map[string]string)
	for _, t := range feed.Trips {
		if _, seen := shapeRoute[t.ShapeID]; !seen && t.ShapeID != "" {
			shapeRoute[t.ShapeID] = t.RouteID
		}
	}
	for _, id := range slices.Sorted(maps.Keys(feed.Shapes)) {
		c, ok := colors[shapeRoute[id]]
		if !ok {
			c = geo.White
		}
		m.Lines = append(m.Lines, geo.Polyline{
			ID:     id,
			Points: project(feed.Shapes[id]),
			Color:  c,
		})
	}

	hasStations := slices.ContainsFunc(feed.Stops, func(s Stop) bool {
		return s.LocationType == 1
	})
	byID := make(map[string]geo.LatLon, len(feed.Stops))
	for _, s := range feed.Stops {
		byID[s.ID] = s.Pos
		if hasStations && s.LocationType != 1 {
			continue
		}
		m.Stations = append(m.Stations, geo.Station{
			ID:    s.ID,
			Name:  s.Name,
			Pos:   proj.Project(s.Pos),
			Color: geo.White,
		})
	}

	stops := make(map[string]geo.LatLon, len(feed.Stops))
	stations := make(map[string]string)
	for _, s := range feed.Stops {
		pos := s.Pos
		if parent, ok := byID[s.Parent]; ok {
			pos = parent
			stations[s.ID] = s.Parent
		}
		stops[s.ID] = pos
	}

	routes := make(map[string]bool, len(feed.Routes))
	for _, r := range feed.Routes {
		routes[r.ID] = true
	}

	return &Dataset{
		Model:      m,
		Projection: proj,
		Colors:     colors,
		Routes:     routes,
		Stops:      stops,
		Stations:   stations,
	}
}

func routeColors(routes []Route) map[string]geo.Color {
	res := make(map[string]geo.Color, len(routes))
	for _, r := range routes {
		if c, err := geo.ParseHex(r.Color); err == nil {
			res[r.ID] = c
		}
	}
	return res
}
