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

// Package transitmap turns a transit network and its live vehicle fleet
// into GPU-ready buffers.
//
// The work is split over several packages:
//   - geo holds the geographic model (regions, lines, stations),
//   - tess tessellates lines into mitered ribbons and fills polygons,
//   - camera maps the working coordinates into clip space,
//   - fleet turns vehicle snapshots into instance buffers,
//   - scene builds the static buffers and drives a [scene.Composer].
//
// This package only holds the error values and diagnostics shared by the
// others. Nothing in the core aborts on bad input: malformed records are
// skipped and reported as a [Diagnostic].
package transitmap

//go:generate go run ./testcases/export

import (
	"errors"
	"log/slog"
)

var (
	// ErrMalformedGeometry is reported for records with non-finite
	// coordinates, too few points, or no area.
	ErrMalformedGeometry = errors.New("malformed geometry")

	// ErrInvalidCamera is reported when a camera mutation would leave the
	// camera with a non-positive or non-finite extent.
	ErrInvalidCamera = errors.New("invalid camera state")

	// ErrCapacityExceeded is reported when a buffer would grow past its
	// configured bound. The buffer is truncated.
	ErrCapacityExceeded = errors.New("buffer capacity exceeded")
)

// Diagnostic describes a record which was skipped or truncated.
type Diagnostic struct {
	Record string // identifier of the offending record, if known
	Err    error
}

func (d Diagnostic) Error() string {
	if d.Record == "" {
		return d.Err.Error()
	}
	return d.Record + ": " + d.Err.Error()
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// LogDiagnostics writes each diagnostic to the logger at warning level.
// If logger is nil, [slog.Default] is used.
func LogDiagnostics(logger *slog.Logger, msg string, diags []Diagnostic) {
	if len(diags) == 0 {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	for _, d := range diags {
		logger.Warn(msg, "record", d.Record, "err", d.Err)
	}
}
