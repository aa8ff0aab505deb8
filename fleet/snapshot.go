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

// Package fleet keeps the live vehicle instances in sync with the
// realtime feed.
//
// Feed code running on its own goroutine hands complete [Snapshot] values
// to a [Slot]. The frame loop takes the newest snapshot from the slot and
// passes it to an [Updater], which rewrites the instance buffer.
package fleet

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"seehuhn.de/go/transitmap/geo"
)

// Telemetry is the decoded position report of one vehicle.
type Telemetry struct {
	VehicleID  string
	Pos        geo.LatLon
	RouteColor geo.Color

	RouteID string
	Stopped bool // the vehicle is standing at a stop
}

// Snapshot is the complete fleet as reported by one feed message.
// A snapshot must not be modified once it has been handed to a [Slot].
type Snapshot struct {
	ID       uuid.UUID
	Taken    time.Time
	Vehicles []Telemetry
}

// NewSnapshot returns a snapshot with a fresh ID.
func NewSnapshot(taken time.Time, vehicles []Telemetry) *Snapshot {
	return &Snapshot{
		ID:       uuid.New(),
		Taken:    taken,
		Vehicles: vehicles,
	}
}

// Slot is a single-slot mailbox for snapshots. Put replaces whatever
// snapshot is waiting; Take returns the waiting snapshot at most once.
// A Slot is safe for concurrent use.
type Slot struct {
	mu    sync.Mutex
	snap  *Snapshot
	fresh bool
}

// Put stores s as the current snapshot, replacing any snapshot which has
// not been taken yet.
func (s *Slot) Put(snap *Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.fresh = true
	s.mu.Unlock()
}

// Take returns the current snapshot if it has not been returned before.
func (s *Slot) Take() (*Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fresh {
		return nil, false
	}
	s.fresh = false
	return s.snap, true
}

// Latest returns the most recent snapshot without consuming it.
func (s *Slot) Latest() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
