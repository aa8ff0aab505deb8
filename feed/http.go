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
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"seehuhn.de/go/transitmap/fleet"
)

// ErrStale is returned when a feed message is not newer than the last
// message accepted from the same endpoint.
var ErrStale = errors.New("stale feed message")

// HTTPSource polls one or more GTFS-realtime endpoints.
//
// Each call to Fetch downloads a single endpoint, going round robin
// through URLs. The returned snapshot combines the most recent vehicles
// of all endpoints, in the order of URLs.
//
// An HTTPSource is not safe for concurrent use.
type HTTPSource struct {
	URLs    []string
	Decoder *Decoder

	// Header is added to every request, for example to pass an API key.
	Header http.Header

	client *http.Client
	next   int
	lastTS map[string]uint64
	fleets map[string][]fleet.Telemetry
}

// NewHTTPSource returns a source for the given endpoints. A timeout of
// zero means no timeout beyond the context passed to Fetch.
func NewHTTPSource(urls []string, timeout time.Duration, dec *Decoder) *HTTPSource {
	if dec == nil {
		dec = &Decoder{}
	}
	return &HTTPSource{
		URLs:    urls,
		Decoder: dec,
		client:  &http.Client{Timeout: timeout},
		lastTS:  make(map[string]uint64),
		fleets:  make(map[string][]fleet.Telemetry),
	}
}

// Fetch downloads the next endpoint and returns the combined fleet.
// If the message from the endpoint carries a timestamp which is not newer
// than the previous one, an error wrapping [ErrStale] is returned.
func (s *HTTPSource) Fetch(ctx context.Context) (*fleet.Snapshot, error) {
	if len(s.URLs) == 0 {
		return nil, errors.New("no feed URLs")
	}
	if s.next >= len(s.URLs) {
		s.next = 0
	}
	url := s.URLs[s.next]
	s.next = (s.next + 1) % len(s.URLs)

	msg, err := s.fetchFeed(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", url, err)
	}

	ts := msg.GetHeader().GetTimestamp()
	if ts != 0 {
		if last := s.lastTS[url]; ts <= last {
			return nil, fmt.Errorf("%s at %d, last %d: %w", url, ts, last, ErrStale)
		}
		s.lastTS[url] = ts
	}
	s.fleets[url] = s.Decoder.Decode(msg)

	var n int
	for _, u := range s.URLs {
		n += len(s.fleets[u])
	}
	vehicles := make([]fleet.Telemetry, 0, n)
	for _, u := range s.URLs {
		vehicles = append(vehicles, s.fleets[u]...)
	}
	return fleet.NewSnapshot(time.Now(), vehicles), nil
}

func (s *HTTPSource) fetchFeed(ctx context.Context, url string) (*gtfs.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, vv := range s.Header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var msg gtfs.FeedMessage
	if err := proto.Unmarshal(body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
