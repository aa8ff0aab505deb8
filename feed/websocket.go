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

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"seehuhn.de/go/transitmap/fleet"
	"seehuhn.de/go/transitmap/geo"
)

// Vehicle is the JSON form of a vehicle pushed over a websocket.
type Vehicle struct {
	ID    string  `json:"id"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Route string  `json:"route,omitempty"`
	Color string  `json:"color,omitempty"` // "RRGGBB"
}

// WebSocketSource receives fleets pushed by a websocket server. Every
// text message must hold a JSON array of [Vehicle] objects describing the
// complete fleet.
//
// The connection is opened by the first Fetch and read on a background
// goroutine, so that it survives quiet periods longer than a fetch. After
// a read error the connection is dropped, and the next Fetch dials again.
//
// A WebSocketSource is not safe for concurrent use.
type WebSocketSource struct {
	URL     string
	Decoder *Decoder // for route colours; may be nil

	dialer *websocket.Dialer
	conn   *websocket.Conn
	latest chan received
}

// received is one result of reading from the connection.
type received struct {
	data []byte
	err  error
}

// NewWebSocketSource returns a source for the websocket at url.
func NewWebSocketSource(url string, dec *Decoder) *WebSocketSource {
	return &WebSocketSource{
		URL:     url,
		Decoder: dec,
		dialer:  websocket.DefaultDialer,
	}
}

// Fetch returns the fleet of the most recent message not returned before,
// waiting for one if necessary. If ctx ends first, the connection stays
// open for the next call; when its deadline passed, the error also wraps
// [ErrStale].
func (s *WebSocketSource) Fetch(ctx context.Context) (*fleet.Snapshot, error) {
	if s.conn == nil {
		conn, _, err := s.dialer.DialContext(ctx, s.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", s.URL, err)
		}
		s.conn = conn
		s.latest = make(chan received, 1)
		go receive(conn, s.latest)
	}

	var r received
	select {
	case r = <-s.latest:
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: no message from %s: %w", ErrStale, s.URL, ctx.Err())
		}
		return nil, ctx.Err()
	}
	if r.err != nil {
		s.drop()
		return nil, fmt.Errorf("failed to read from %s: %w", s.URL, r.err)
	}

	var msg []Vehicle
	if err := json.Unmarshal(r.data, &msg); err != nil {
		return nil, fmt.Errorf("invalid message from %s: %w", s.URL, err)
	}
	return fleet.NewSnapshot(time.Now(), s.telemetry(msg)), nil
}

// receive reads from conn until the first error. Only the most recent
// result waits in latest; older unread messages are discarded.
func receive(conn *websocket.Conn, latest chan received) {
	for {
		_, data, err := conn.ReadMessage()
		r := received{data: data, err: err}
		select {
		case latest <- r:
		default:
			select {
			case <-latest:
			default:
			}
			latest <- r
		}
		if err != nil {
			return
		}
	}
}

// Close closes the connection, if any.
func (s *WebSocketSource) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.latest = nil
	return err
}

func (s *WebSocketSource) drop() {
	_ = s.conn.Close()
	s.conn = nil
	s.latest = nil
}

func (s *WebSocketSource) telemetry(msg []Vehicle) []fleet.Telemetry {
	dec := s.Decoder
	if dec == nil {
		dec = &Decoder{Default: geo.White}
	}
	res := make([]fleet.Telemetry, 0, len(msg))
	for _, v := range msg {
		c := dec.color(v.Route)
		if v.Color != "" {
			if parsed, err := geo.ParseHex(v.Color); err == nil {
				c = parsed
			}
		}
		res = append(res, fleet.Telemetry{
			VehicleID:  v.ID,
			Pos:        geo.LatLon{Lat: v.Lat, Lon: v.Lon},
			RouteColor: c,
			RouteID:    v.Route,
		})
	}
	return res
}
