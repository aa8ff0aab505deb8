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
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/transitmap"
	"seehuhn.de/go/transitmap/geo"
)

var origin = geo.LatLon{Lat: 52.52, Lon: 13.405}

func vehicle(id string, dLat, dLon float64) Telemetry {
	return Telemetry{
		VehicleID:  id,
		Pos:        geo.LatLon{Lat: origin.Lat + dLat, Lon: origin.Lon + dLon},
		RouteColor: geo.Color{R: 1, G: 0.5, B: 0},
	}
}

func fleetOf(n int) []Telemetry {
	res := make([]Telemetry, n)
	for i := range res {
		res[i] = vehicle(fmt.Sprintf("v%d", i), float64(i)*1e-3, 0)
	}
	return res
}

func TestApplyIdempotent(t *testing.T) {
	snap := NewSnapshot(time.Now(), fleetOf(5))

	u := NewUpdater(geo.Local{Origin: origin})
	first, diags := u.Apply(snap)
	require.Empty(t, diags)
	want := append([]Instance(nil), first...)

	second, diags := u.Apply(snap)
	require.Empty(t, diags)
	assert.Equal(t, want, second)
}

func TestApplyPositions(t *testing.T) {
	u := NewUpdater(geo.Local{Origin: origin})
	out, diags := u.Apply(NewSnapshot(time.Now(), []Telemetry{
		vehicle("centre", 0, 0),
		vehicle("north", 0.01, 0),
	}))
	require.Empty(t, diags)
	require.Len(t, out, 2)

	assert.InDelta(t, 0, out[0].Position[0], 1e-6)
	assert.InDelta(t, 0, out[0].Position[1], 1e-6)
	assert.Greater(t, out[1].Position[0], float32(1000))
	assert.InDelta(t, 0, out[1].Position[1], 1)
	assert.Equal(t, [3]float32{1, 0.5, 0}, out[1].Color)
	assert.Equal(t, float32(1), out[1].Scale)
}

func TestApplyEmptyAfterPopulated(t *testing.T) {
	u := NewUpdater(geo.Local{Origin: origin})
	out, _ := u.Apply(NewSnapshot(time.Now(), fleetOf(3)))
	require.Len(t, out, 3)

	out, diags := u.Apply(NewSnapshot(time.Now(), nil))
	assert.Empty(t, diags)
	assert.Empty(t, out)

	out, _ = u.Apply(nil)
	assert.Empty(t, out)
}

func TestApplyDuplicates(t *testing.T) {
	u := NewUpdater(geo.Local{Origin: origin})
	late := vehicle("a", 0.02, 0)
	late.RouteColor = geo.Color{B: 1}

	out, diags := u.Apply(NewSnapshot(time.Now(), []Telemetry{
		vehicle("a", 0, 0),
		vehicle("b", 0.01, 0),
		late,
	}))
	require.Len(t, out, 2)
	require.Len(t, diags, 1)
	assert.Equal(t, "a", diags[0].Record)

	// "a" keeps its slot but takes the values of the last report
	assert.Equal(t, [3]float32{0, 0, 1}, out[0].Color)
	assert.Greater(t, out[0].Position[0], out[1].Position[0])
}

func TestApplySkipsInvalid(t *testing.T) {
	u := NewUpdater(geo.Local{Origin: origin})
	bad := []Telemetry{
		{VehicleID: "nan", Pos: geo.LatLon{Lat: math.NaN(), Lon: 0}},
		{VehicleID: "range", Pos: geo.LatLon{Lat: 95, Lon: 0}},
		vehicle("ok", 0, 0),
	}
	out, diags := u.Apply(NewSnapshot(time.Now(), bad))
	assert.Len(t, out, 1)
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.ErrorIs(t, d, transitmap.ErrMalformedGeometry)
	}
}

func TestApplyCapacity(t *testing.T) {
	u := NewUpdater(geo.Local{Origin: origin})
	u.MaxInstances = 4

	out, diags := u.Apply(NewSnapshot(time.Now(), fleetOf(10)))
	assert.Len(t, out, 4)
	require.Len(t, diags, 1)
	assert.True(t, errors.Is(diags[0], transitmap.ErrCapacityExceeded))
}

func TestApplyBufferReuse(t *testing.T) {
	u := NewUpdater(geo.Local{Origin: origin})

	out, _ := u.Apply(NewSnapshot(time.Now(), fleetOf(10)))
	base := &out[0]

	out, _ = u.Apply(NewSnapshot(time.Now(), fleetOf(6)))
	require.Len(t, out, 6)
	assert.Same(t, base, &out[0], "shrinking must reuse the buffer")

	out, _ = u.Apply(NewSnapshot(time.Now(), fleetOf(10)))
	assert.Same(t, base, &out[0], "equal size must reuse the buffer")

	out, _ = u.Apply(NewSnapshot(time.Now(), fleetOf(20)))
	require.Len(t, out, 20)
	assert.NotSame(t, base, &out[0], "growing must reallocate")
}

func TestStoppedScale(t *testing.T) {
	u := NewUpdater(geo.Local{Origin: origin})
	u.StoppedScale = 0.5
	stopped := vehicle("s", 0, 0)
	stopped.Stopped = true

	out, _ := u.Apply(NewSnapshot(time.Now(), []Telemetry{stopped, vehicle("m", 0, 0)}))
	require.Len(t, out, 2)
	assert.Equal(t, float32(0.5), out[0].Scale)
	assert.Equal(t, float32(1), out[1].Scale)
}

func TestInstanceBytes(t *testing.T) {
	buf := AppendInstanceBytes(nil, make([]Instance, 3))
	assert.Len(t, buf, 3*InstanceSize)

	last := InstanceAttributes[len(InstanceAttributes)-1]
	assert.Equal(t, InstanceSize, last.Offset+4*last.Components)
}

func TestSlot(t *testing.T) {
	var s Slot
	_, ok := s.Take()
	assert.False(t, ok)

	a := NewSnapshot(time.Now(), fleetOf(1))
	b := NewSnapshot(time.Now(), fleetOf(2))
	assert.NotEqual(t, a.ID, b.ID)

	s.Put(a)
	s.Put(b)
	got, ok := s.Take()
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = s.Take()
	assert.False(t, ok)
	assert.Same(t, b, s.Latest())
}

func TestSlotConcurrent(t *testing.T) {
	var s Slot
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.Put(NewSnapshot(time.Now(), fleetOf(i)))
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	u := NewUpdater(geo.Local{Origin: origin})
	for {
		if snap, ok := s.Take(); ok {
			out, _ := u.Apply(snap)
			assert.Len(t, out, len(snap.Vehicles))
		}
		select {
		case <-done:
			return
		default:
		}
	}
}

func BenchmarkApply(b *testing.B) {
	snap := NewSnapshot(time.Now(), fleetOf(2000))
	u := NewUpdater(geo.Local{Origin: origin})
	for b.Loop() {
		u.Apply(snap)
	}
}
