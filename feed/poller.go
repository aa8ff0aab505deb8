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
	"log/slog"
	"time"

	"seehuhn.de/go/transitmap/fleet"
)

// DefaultTimeout bounds a single fetch if the poller has no timeout set.
const DefaultTimeout = 10 * time.Second

// Poller fetches snapshots from a source and delivers them to a slot.
type Poller struct {
	Source Source
	Slot   *fleet.Slot

	// Interval is the minimal time between the starts of two fetches.
	// Zero fetches back to back, which suits push sources.
	Interval time.Duration

	// Timeout bounds each fetch.
	Timeout time.Duration

	Logger *slog.Logger

	// Notify, if set, is called after each delivered snapshot.
	Notify func(*fleet.Snapshot)
}

// Run polls until ctx is cancelled and then returns the context's error.
// Fetch errors are logged and do not stop the poller.
func (p *Poller) Run(ctx context.Context) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t := time.NewTimer(0)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			start := time.Now()
			p.tick(ctx, logger)
			elapsed := time.Since(start)
			t.Reset(max(p.Interval-elapsed, 0))
		}
	}
}

func (p *Poller) tick(ctx context.Context, logger *slog.Logger) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snap, err := p.Source.Fetch(cctx)
	switch {
	case errors.Is(err, ErrStale):
		logger.Debug("feed unchanged", "err", err)
		return
	case err != nil:
		if ctx.Err() == nil {
			logger.Warn("poll error", "err", err)
		}
		return
	}

	logger.Debug("fetched vehicles", "snapshot", snap.ID, "count", len(snap.Vehicles))
	p.Slot.Put(snap)
	if p.Notify != nil {
		p.Notify(snap)
	}
}
