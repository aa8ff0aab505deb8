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
// Command export writes the tessellated test cases to JSON, for
// inspection and for checking renderers outside of Go.
// Run from the transitmap module root directory.
package main

import (
	"encoding/json"
	"log/slog"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/transitmap/tess"
	"seehuhn.de/go/transitmap/testcases"
)

const outFile = "testdata/meshes.json"

func main() {
	var out struct {
		Meshes []jsonMesh `json:"meshes"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			m, err := tc.Mesh()
			if err != nil && !tc.Invalid {
				panic(err)
			}
			out.Meshes = append(out.Meshes, toJSON(name, &tc, m))
		}
	}

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		panic(err)
	}
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
	slog.Info("wrote meshes", "file", outFile, "count", len(out.Meshes))
}

type jsonMesh struct {
	Name      string       `json:"name"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Uniform   [4]float32   `json:"uniform"`
	HalfWidth float64      `json:"half_width,omitempty"`
	Invalid   bool         `json:"invalid,omitempty"`
	Vertices  []jsonVertex `json:"vertices"`
	Indices   []uint32     `json:"indices"`
}

type jsonVertex struct {
	Pos    [2]float32 `json:"pos"`
	Normal [2]float32 `json:"normal"`
	Miter  float32    `json:"miter"`
}

func toJSON(name string, tc *testcases.TestCase, m *tess.Mesh) jsonMesh {
	u := tc.Uniform()
	jm := jsonMesh{
		Name:      name,
		Width:     tc.Width,
		Height:    tc.Height,
		Uniform:   [4]float32{u.Width, u.Height, u.Min[0], u.Min[1]},
		HalfWidth: tc.HalfWidth(),
		Invalid:   tc.Invalid,
		Indices:   m.Indices,
	}
	for _, v := range m.Vertices {
		jm.Vertices = append(jm.Vertices, jsonVertex{
			Pos:    [2]float32{v.Position[0], v.Position[1]},
			Normal: [2]float32{v.Normal[0], v.Normal[1]},
			Miter:  v.Miter,
		})
	}
	if jm.Indices == nil {
		jm.Indices = []uint32{}
	}
	return jm
}
