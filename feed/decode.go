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

// Package feed fetches realtime vehicle positions and delivers them as
// fleet snapshots.
//
// A [Source] produces one complete [fleet.Snapshot] per fetch. The
// [Poller] calls a source periodically on its own goroutine and hands the
// results to a [fleet.Slot], from where the frame loop picks them up.
package feed

import (
	"context"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"seehuhn.de/go/transitmap/fleet"
	"seehuhn.de/go/transitmap/geo"
)

// Source is a realtime feed.
type Source interface {
	// Fetch returns the current state of the complete fleet.
	Fetch(ctx context.Context) (*fleet.Snapshot, error)
}

// Decoder converts GTFS-realtime messages into vehicle telemetry.
type Decoder struct {
	// Colors maps route IDs to route colours.
	Colors map[string]geo.Color

	// Routes lists the known route IDs. If it is non-nil, vehicles on
	// other routes are left out.
	Routes map[string]bool

	// Stops maps stop IDs to positions. It is used to place vehicles
	// which report a stop but no position. Platforms should map to the
	// position of their parent station.
	Stops map[string]geo.LatLon

	// Stations maps platform stop IDs to the ID of their parent station.
	// Stop IDs not in the map are their own station.
	Stations map[string]string

	// Default is used for routes without a colour.
	Default geo.Color
}

// Decode extracts the vehicle positions from msg, in message order.
//
// A vehicle which reports no position but is STOPPED_AT a known stop is
// placed on that stop. Vehicles without usable position are left out.
//
// If msg carries trip updates, the first stop time update of each trip
// names the stop the trip is at or approaching. A STOPPED_AT report for
// any other station is outdated: the vehicle is left out if it has no
// position of its own, and is marked as moving otherwise.
func (d *Decoder) Decode(msg *gtfs.FeedMessage) []fleet.Telemetry {
	next := d.nextStations(msg)

	res := make([]fleet.Telemetry, 0, len(msg.GetEntity()))
	for _, ent := range msg.GetEntity() {
		vp := ent.GetVehicle()
		if vp == nil || ent.GetIsDeleted() {
			continue
		}
		routeID := vp.GetTrip().GetRouteId()
		if d.Routes != nil && !d.Routes[routeID] {
			continue
		}

		stopped := vp.CurrentStatus != nil &&
			vp.GetCurrentStatus() == gtfs.VehiclePosition_STOPPED_AT
		if stopped && next != nil &&
			next[vp.GetTrip().GetTripId()] != d.station(vp.GetStopId()) {
			if vp.GetPosition() == nil {
				continue
			}
			stopped = false
		}

		var pos geo.LatLon
		if p := vp.GetPosition(); p != nil {
			pos = geo.LatLon{Lat: float64(p.GetLatitude()), Lon: float64(p.GetLongitude())}
		} else if stop, ok := d.Stops[vp.GetStopId()]; ok && stopped {
			pos = stop
		} else {
			continue
		}

		res = append(res, fleet.Telemetry{
			VehicleID:  vehicleID(ent, vp),
			Pos:        pos,
			RouteColor: d.color(routeID),
			RouteID:    routeID,
			Stopped:    stopped,
		})
	}
	return res
}

// nextStations maps trip IDs to the station of their first stop time
// update. The result is nil if msg has no trip updates.
func (d *Decoder) nextStations(msg *gtfs.FeedMessage) map[string]string {
	var res map[string]string
	for _, ent := range msg.GetEntity() {
		tu := ent.GetTripUpdate()
		if tu == nil || ent.GetIsDeleted() {
			continue
		}
		if res == nil {
			res = make(map[string]string)
		}
		if stus := tu.GetStopTimeUpdate(); len(stus) > 0 {
			res[tu.GetTrip().GetTripId()] = d.station(stus[0].GetStopId())
		}
	}
	return res
}

func (d *Decoder) station(stopID string) string {
	if parent, ok := d.Stations[stopID]; ok {
		return parent
	}
	return stopID
}

func (d *Decoder) color(routeID string) geo.Color {
	if c, ok := d.Colors[routeID]; ok {
		return c
	}
	return d.Default
}

// vehicleID picks the most stable identifier available: the vehicle ID,
// then the trip ID, then the entity ID.
func vehicleID(ent *gtfs.FeedEntity, vp *gtfs.VehiclePosition) string {
	if id := vp.GetVehicle().GetId(); id != "" {
		return id
	}
	if id := vp.GetTrip().GetTripId(); id != "" {
		return id
	}
	return ent.GetId()
}
