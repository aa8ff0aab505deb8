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

// Package gtfs loads the static data of a transit map: a GTFS schedule
// feed for lines and stations, and a GeoJSON file for the regions drawn
// underneath.
package gtfs

import (
	"archive/zip"
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"seehuhn.de/go/transitmap/geo"
)

// Route is a row of routes.txt.
type Route struct {
	ID        string
	ShortName string
	LongName  string
	Type      int
	Color     string // "RRGGBB", may be empty
}

// Stop is a row of stops.txt.
type Stop struct {
	ID           string
	Name         string
	Pos          geo.LatLon
	LocationType int    // 1 for stations
	Parent       string // parent station, may be empty
}

// Trip is a row of trips.txt.
type Trip struct {
	ID      string
	RouteID string
	ShapeID string
}

// Feed is the part of a GTFS schedule needed to draw the network.
type Feed struct {
	Routes []Route
	Stops  []Stop
	Trips  []Trip

	// Shapes maps shape IDs to their points, ordered by sequence number.
	Shapes map[string][]geo.LatLon
}

// ReadFeed reads a GTFS zip file. Missing files are tolerated and leave
// the corresponding fields empty.
func ReadFeed(path string) (*Feed, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()
	return ParseFeed(&r.Reader)
}

// ParseFeed reads a GTFS feed from an opened zip archive.
func ParseFeed(r *zip.Reader) (*Feed, error) {
	files := make(map[string]*zip.File)
	for _, f := range r.File {
		// some producers put the files into a subdirectory
		name := f.Name[strings.LastIndex(f.Name, "/")+1:]
		files[name] = f
	}

	feed := &Feed{Shapes: make(map[string][]geo.LatLon)}
	var errs []error
	read := func(name string, row func(rec []string, idx map[string]int)) {
		f, ok := files[name]
		if !ok {
			return
		}
		if err := readCSV(f, row); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	read("routes.txt", func(rec []string, idx map[string]int) {
		routeType, _ := strconv.Atoi(getField(rec, idx, "route_type"))
		feed.Routes = append(feed.Routes, Route{
			ID:        getField(rec, idx, "route_id"),
			ShortName: getField(rec, idx, "route_short_name"),
			LongName:  getField(rec, idx, "route_long_name"),
			Type:      routeType,
			Color:     getField(rec, idx, "route_color"),
		})
	})

	read("stops.txt", func(rec []string, idx map[string]int) {
		lat, err1 := strconv.ParseFloat(getField(rec, idx, "stop_lat"), 64)
		lon, err2 := strconv.ParseFloat(getField(rec, idx, "stop_lon"), 64)
		if err1 != nil || err2 != nil {
			return
		}
		locType, _ := strconv.Atoi(getField(rec, idx, "location_type"))
		feed.Stops = append(feed.Stops, Stop{
			ID:           getField(rec, idx, "stop_id"),
			Name:         getField(rec, idx, "stop_name"),
			Pos:          geo.LatLon{Lat: lat, Lon: lon},
			LocationType: locType,
			Parent:       getField(rec, idx, "parent_station"),
		})
	})

	read("trips.txt", func(rec []string, idx map[string]int) {
		feed.Trips = append(feed.Trips, Trip{
			ID:      getField(rec, idx, "trip_id"),
			RouteID: getField(rec, idx, "route_id"),
			ShapeID: getField(rec, idx, "shape_id"),
		})
	})

	type shapePoint struct {
		seq int
		pos geo.LatLon
	}
	shapes := make(map[string][]shapePoint)
	read("shapes.txt", func(rec []string, idx map[string]int) {
		lat, err1 := strconv.ParseFloat(getField(rec, idx, "shape_pt_lat"), 64)
		lon, err2 := strconv.ParseFloat(getField(rec, idx, "shape_pt_lon"), 64)
		seq, err3 := strconv.Atoi(getField(rec, idx, "shape_pt_sequence"))
		if err1 != nil || err2 != nil || err3 != nil {
			return
		}
		id := getField(rec, idx, "shape_id")
		shapes[id] = append(shapes[id], shapePoint{seq: seq, pos: geo.LatLon{Lat: lat, Lon: lon}})
	})
	for id, pts := range shapes {
		slices.SortStableFunc(pts, func(a, b shapePoint) int {
			return cmp.Compare(a.seq, b.seq)
		})
		line := make([]geo.LatLon, len(pts))
		for i, p := range pts {
			line[i] = p.pos
		}
		feed.Shapes[id] = line
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	slog.Debug("GTFS parsed",
		"routes", len(feed.Routes), "stops", len(feed.Stops),
		"trips", len(feed.Trips), "shapes", len(feed.Shapes))
	return feed, nil
}

// readCSV calls row for every well-formed record of a CSV file with a
// header line. Malformed records are skipped.
func readCSV(f *zip.File, row func(rec []string, idx map[string]int)) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	idx := makeIndex(header)

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		} else if err != nil {
			return err
		}
		row(rec, idx)
	}
}

func makeIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		idx[h] = i
	}
	return idx
}

func getField(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
