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
// Command transitmap draws a transit network and its live vehicles.
//
// The static network is read from a GTFS archive and an optional GeoJSON
// file of regions. Vehicle positions are polled from GTFS-realtime
// endpoints or received from a websocket. Every new snapshot is drawn
// with the software composer and written as a PNG frame.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/transitmap"
	"seehuhn.de/go/transitmap/camera"
	"seehuhn.de/go/transitmap/config"
	"seehuhn.de/go/transitmap/feed"
	"seehuhn.de/go/transitmap/fleet"
	"seehuhn.de/go/transitmap/gtfs"
	"seehuhn.de/go/transitmap/preview"
	"seehuhn.de/go/transitmap/scene"
)

var (
	configFile = flag.String("config", "transitmap.yml", "configuration file")
	outDir     = flag.String("out", "frames", "output directory for PNG frames")
	numFrames  = flag.Int("frames", 1, "number of frames to write, 0 for no limit")
	pdfFile    = flag.String("pdf", "", "also write the static map to this PDF file")
	zoom       = flag.Float64("zoom", 1, "zoom factor around the screen centre")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("transitmap failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Static.FeedURL != "" {
		fetched, err := gtfs.Fetch(ctx, cfg.Static.FeedURL, cfg.Static.FeedPath, cfg.Static.MaxAge)
		if err != nil {
			return err
		}
		if fetched {
			logger.Info("downloaded schedule", "url", cfg.Static.FeedURL)
		}
	}

	ds, err := gtfs.LoadModel(ctx, cfg.Static.FeedPath, cfg.Static.Regions)
	if err != nil {
		return err
	}
	logger.Info("loaded network",
		"regions", len(ds.Model.Regions),
		"lines", len(ds.Model.Lines),
		"stations", len(ds.Model.Stations))

	r := &cfg.Render
	b := scene.NewBuilder()
	b.Tessellator.Join = r.LineJoin()
	b.Tessellator.MiterLimit = r.MiterLimit
	b.StationRadius = r.StationRadius
	b.StationSegments = r.StationSegments
	b.MaxVertices = r.MaxVertices
	static, diags := b.Build(ds.Model)
	transitmap.LogDiagnostics(logger, "skipped record", diags)

	cam, err := camera.New(float64(r.Width), float64(r.Height), ds.Model.Bounds())
	if err != nil {
		return err
	}

	if *pdfFile != "" {
		err := preview.WritePDF(*pdfFile, static, cam.Uniform(), r.LineHalfWidth,
			float64(r.Width), float64(r.Height))
		if err != nil {
			return err
		}
	}

	updater := fleet.NewUpdater(ds.Projection)
	updater.Scale = r.VehicleScale
	updater.StoppedScale = r.StoppedScale
	updater.MaxInstances = r.MaxInstances

	slot := &fleet.Slot{}
	sc := scene.New(static, cam, updater, slot, scene.VehicleMarker(r.VehicleRadius, 16))
	if *zoom != 1 {
		sc.Post(camera.ZoomAt(*zoom, float64(r.Width)/2, float64(r.Height)/2))
	}

	canvas := preview.NewCanvas(r.Width, r.Height, r.LineHalfWidth)
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	source := newSource(cfg, ds)
	if source == nil {
		logger.Info("no realtime feed configured")
		return writeFrame(sc, canvas, 0, logger)
	}
	if c, ok := source.(interface{ Close() error }); ok {
		defer c.Close()
	}

	fresh := make(chan struct{}, 1)
	poller := &feed.Poller{
		Source:   source,
		Slot:     slot,
		Interval: cfg.Feed.Interval,
		Timeout:  cfg.Feed.Timeout,
		Logger:   logger,
		Notify: func(*fleet.Snapshot) {
			select {
			case fresh <- struct{}{}:
			default:
			}
		},
	}

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g.Go(func() error {
		return poller.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		for i := 0; *numFrames == 0 || i < *numFrames; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-fresh:
			}
			if err := writeFrame(sc, canvas, i, logger); err != nil {
				return err
			}
		}
		return nil
	})
	err = g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// the frame limit was reached, or the user interrupted us
		return nil
	}
	return err
}

// newSource returns the configured vehicle source, or nil if there is none.
func newSource(cfg *config.Config, ds *gtfs.Dataset) feed.Source {
	dec := &feed.Decoder{
		Colors:   ds.Colors,
		Routes:   ds.Routes,
		Stops:    ds.Stops,
		Stations: ds.Stations,
	}
	switch {
	case cfg.Feed.WebSocket != "":
		return feed.NewWebSocketSource(cfg.Feed.WebSocket, dec)
	case len(cfg.Feed.URLs) > 0:
		src := feed.NewHTTPSource(cfg.Feed.URLs, cfg.Feed.Timeout, dec)
		if cfg.Feed.APIKey != "" {
			src.Header = http.Header{}
			src.Header.Set(cfg.Feed.APIKeyHeader, cfg.Feed.APIKey)
		}
		return src
	default:
		return nil
	}
}

func writeFrame(sc *scene.Scene, canvas *preview.Canvas, i int, logger *slog.Logger) error {
	diags := sc.Frame(canvas)
	transitmap.LogDiagnostics(logger, "frame", diags)

	name := filepath.Join(*outDir, fmt.Sprintf("frame-%04d.png", i))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := canvas.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("wrote frame", "file", name, "vehicles", len(sc.Instances()))
	return nil
}
