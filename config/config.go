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

// Package config reads the YAML configuration of the transitmap command.
//
// Values missing from the file keep their defaults, see [Default].
// Environment variables of the form ${NAME} are expanded before the file
// is parsed, so that API keys need not be stored in the file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"seehuhn.de/go/pdf/graphics"
)

// Config is the root of the configuration file.
type Config struct {
	Render RenderConfig `yaml:"render"`
	Static StaticConfig `yaml:"static"`
	Feed   FeedConfig   `yaml:"feed"`
	Log    LogConfig    `yaml:"log"`
}

// RenderConfig controls tessellation and drawing.
type RenderConfig struct {
	Width  int `yaml:"width" validate:"gt=0"`
	Height int `yaml:"height" validate:"gt=0"`

	LineHalfWidth float64 `yaml:"lineHalfWidth" validate:"gt=0"`
	MiterLimit    float64 `yaml:"miterLimit" validate:"gte=1"`
	Join          string  `yaml:"join" validate:"oneof=miter bevel"`

	StationRadius   float64 `yaml:"stationRadius" validate:"gt=0"`
	StationSegments int     `yaml:"stationSegments" validate:"gte=3"`

	VehicleRadius float64 `yaml:"vehicleRadius" validate:"gt=0"`
	VehicleScale  float32 `yaml:"vehicleScale" validate:"gt=0"`
	StoppedScale  float32 `yaml:"stoppedScale" validate:"gte=0"`
	MaxInstances  int     `yaml:"maxInstances" validate:"gt=0"`
	MaxVertices   int     `yaml:"maxVertices" validate:"gte=0"`
}

// StaticConfig locates the static data.
type StaticConfig struct {
	FeedPath string        `yaml:"feed" validate:"required"`
	FeedURL  string        `yaml:"feedURL" validate:"omitempty,url"`
	MaxAge   time.Duration `yaml:"maxAge" validate:"gte=0"`
	Regions  string        `yaml:"regions"`
}

// FeedConfig locates the realtime feed.
type FeedConfig struct {
	URLs      []string      `yaml:"urls" validate:"dive,url"`
	WebSocket string        `yaml:"websocket" validate:"omitempty,url"`
	Interval  time.Duration `yaml:"interval" validate:"gte=0"`
	Timeout   time.Duration `yaml:"timeout" validate:"gte=0"`

	APIKey       string `yaml:"apiKey"`
	APIKeyHeader string `yaml:"apiKeyHeader"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:           1280,
			Height:          960,
			LineHalfWidth:   20,
			MiterLimit:      4,
			Join:            "miter",
			StationRadius:   40,
			StationSegments: 16,
			VehicleRadius:   60,
			VehicleScale:    1,
			StoppedScale:    0.5,
			MaxInstances:    10000,
		},
		Static: StaticConfig{
			FeedPath: "gtfs.zip",
		},
		Feed: FeedConfig{
			Interval:     5 * time.Second,
			Timeout:      10 * time.Second,
			APIKeyHeader: "x-api-key",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks all fields against their constraints.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	if len(c.Feed.URLs) > 0 && c.Feed.WebSocket != "" {
		return fmt.Errorf("feed: urls and websocket are mutually exclusive")
	}
	return nil
}

// LineJoin returns the configured join style.
func (r *RenderConfig) LineJoin() graphics.LineJoinStyle {
	if r.Join == "bevel" {
		return graphics.LineJoinBevel
	}
	return graphics.LineJoinMiter
}

// SlogLevel returns the configured log level.
func (l *LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
