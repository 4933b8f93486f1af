// inkstitch - an embroidery stitch geometry and routing engine
// Copyright (C) 2026  Christoph Mueller <christoph@christophmueller.org>
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

package inkstitch

import (
	"testing"

	"seehuhn.de/go/geom/path"
)

func TestFlattenPathStraightCubicIsAChord(t *testing.T) {
	// A "cubic" whose control points lie on the straight line from
	// p0 to p3 should flatten to just the two endpoints.
	data := &path.Data{
		Cmds: []path.Cmd{path.CmdMoveTo, path.CmdCubeTo},
		Coords: []float64{
			0, 0,
			10, 0, 20, 0, 30, 0,
		},
	}
	_, paths := FlattenPath(data, 0.1)
	if len(paths) != 1 {
		t.Fatalf("got %d open subpaths, want 1", len(paths))
	}
	p := paths[0]
	if len(p) != 2 {
		t.Fatalf("straight cubic flattened to %d points, want 2: %+v", len(p), p)
	}
	pointsAlmostEqual(t, p[0], Pt(0, 0), 1e-9)
	pointsAlmostEqual(t, p[1], Pt(30, 0), 1e-9)
}

func TestFlattenPathCurvedCubicProducesMorePoints(t *testing.T) {
	data := &path.Data{
		Cmds: []path.Cmd{path.CmdMoveTo, path.CmdCubeTo},
		Coords: []float64{
			0, 0,
			0, 50, 50, 50, 50, 0,
		},
	}
	_, paths := FlattenPath(data, 0.1)
	if len(paths) != 1 {
		t.Fatalf("got %d open subpaths, want 1", len(paths))
	}
	if len(paths[0]) < 4 {
		t.Fatalf("curved cubic flattened to only %d points, want several", len(paths[0]))
	}
}

func TestFlattenPathClosedSubpathProducesRing(t *testing.T) {
	data := &path.Data{
		Cmds: []path.Cmd{path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose},
		Coords: []float64{
			0, 0,
			10, 0,
			10, 10,
			0, 10,
		},
	}
	rings, paths := FlattenPath(data, 0.1)
	if len(rings) != 1 || len(paths) != 0 {
		t.Fatalf("got %d rings, %d open paths; want 1 ring, 0 open paths", len(rings), len(paths))
	}
	if len(rings[0]) != 4 {
		t.Fatalf("ring has %d points, want 4", len(rings[0]))
	}
}

func TestFlattenSubpathsWithPartitionsMarksEachCurveBoundary(t *testing.T) {
	// A straight LineTo then a straight-control-point CubeTo, both
	// degenerate to a single segment each, so the partition at the end
	// of the LineTo should land at point index 1 and the partition at
	// the end of the CubeTo should land at the final point index.
	data := &path.Data{
		Cmds: []path.Cmd{path.CmdMoveTo, path.CmdLineTo, path.CmdCubeTo},
		Coords: []float64{
			0, 0,
			10, 0,
			20, 0, 30, 0, 40, 0,
		},
	}
	_, paths, partitions := flattenSubpathsWithPartitions(data, 0.1)
	if len(paths) != 1 || len(partitions) != 1 {
		t.Fatalf("got %d paths, %d partition lists; want 1, 1", len(paths), len(partitions))
	}
	p := paths[0]
	ends := partitions[0]
	if len(ends) != 2 {
		t.Fatalf("got %d partition boundaries, want 2 (one per command)", len(ends))
	}
	if ends[0] != 1 {
		t.Errorf("LineTo boundary at index %d, want 1", ends[0])
	}
	if ends[1] != len(p)-1 {
		t.Errorf("CubeTo boundary at index %d, want %d (final point)", ends[1], len(p)-1)
	}
}

func TestFlattenPathFinerToleranceNeverProducesFewerPoints(t *testing.T) {
	data := &path.Data{
		Cmds: []path.Cmd{path.CmdMoveTo, path.CmdCubeTo},
		Coords: []float64{
			0, 0,
			0, 50, 50, 50, 50, 0,
		},
	}
	_, coarse := FlattenPath(data, 5)
	_, fine := FlattenPath(data, 0.01)
	if len(fine[0]) < len(coarse[0]) {
		t.Errorf("finer tolerance produced fewer points (%d) than coarser (%d)", len(fine[0]), len(coarse[0]))
	}
}
