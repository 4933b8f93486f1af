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

func TestOffsetPairExpandsSymmetrically(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)
	na, nb := offsetPair(a, b, 2)
	if !almostEqual(na.X, -1, 1e-9) || !almostEqual(nb.X, 11, 1e-9) {
		t.Errorf("got %v, %v; want x=-1 and x=11", na, nb)
	}
}

func TestOffsetPairClampsContraction(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)
	na, nb := offsetPair(a, b, -1000)
	mid := Pt(5, 0)
	pointsAlmostEqual(t, na, mid, 1e-9)
	pointsAlmostEqual(t, nb, mid, 1e-9)
}

func TestWalkPathsProducesMatchedPairCount(t *testing.T) {
	rail1 := []Path{{Pt(0, 0), Pt(100, 0)}}
	rail2 := []Path{{Pt(0, 20), Pt(100, 20)}}
	left, right := walkPaths(rail1, rail2, 10, 0)
	if len(left) != len(right) {
		t.Fatalf("mismatched pair counts: %d vs %d", len(left), len(right))
	}
	if len(left) < 2 {
		t.Fatalf("expected several sample points, got %d", len(left))
	}
	pointsAlmostEqual(t, left[0], Pt(0, 0), 1e-9)
	pointsAlmostEqual(t, right[0], Pt(0, 20), 1e-9)
}

func TestWalkPathsThreadsRemainderAcrossPieces(t *testing.T) {
	// Two abutting pieces at spacing 30: each piece is walked to its own
	// end in floor(100/30) = 3 stretched steps, so the second piece's
	// walk begins at x=100; consecutive stitches must stay close to the
	// spacing across that boundary as well as inside each piece.
	pieces1 := []Path{
		{Pt(0, 0), Pt(100, 0)},
		{Pt(100, 0), Pt(200, 0)},
	}
	pieces2 := []Path{
		{Pt(0, 20), Pt(100, 20)},
		{Pt(100, 20), Pt(200, 20)},
	}
	left, _ := walkPaths(pieces1, pieces2, 30, 0)
	for i := 1; i < len(left)-1; i++ {
		gap := left[i].Sub(left[i-1]).Length()
		if gap > 1.5*30 {
			t.Errorf("gap between consecutive stitches %v far exceeds spacing 30 at index %d", gap, i)
		}
	}
}

func TestValidateSatinColumnRejectsMismatchedRailsWithoutRungs(t *testing.T) {
	col := SatinColumn{
		Rail1: Path{Pt(0, 0), Pt(10, 0), Pt(20, 0)},
		Rail2: Path{Pt(0, 10), Pt(20, 10)},
	}
	if err := ValidateSatinColumn(col); err == nil {
		t.Fatal("expected an error for mismatched rail point counts")
	}
}

func TestSplitByRungsMatchesPieceCounts(t *testing.T) {
	col := SatinColumn{
		Rail1: Path{Pt(0, 0), Pt(10, 0), Pt(20, 0)},
		Rail2: Path{Pt(0, 10), Pt(10, 10), Pt(20, 10)},
		Rungs: []Path{{Pt(10, -5), Pt(10, 15)}},
	}
	p1, p2, err := col.SplitByRungs()
	if err != nil {
		t.Fatalf("SplitByRungs returned error: %v", err)
	}
	if len(p1) != len(p2) {
		t.Fatalf("split produced mismatched piece counts: %d vs %d", len(p1), len(p2))
	}
	if len(p1) != 2 {
		t.Fatalf("one rung should split the rails into 2 pieces, got %d", len(p1))
	}
}

func TestSatinRegionStraightColumnProducesStitches(t *testing.T) {
	col := SatinColumn{
		Rail1: Path{Pt(0, 0), Pt(100, 0)},
		Rail2: Path{Pt(0, 20), Pt(100, 20)},
	}
	params := SatinParams{Color: "black", ZigzagSpacing: 10}
	patches, err := SatinRegion(col, params)
	if err != nil {
		t.Fatalf("SatinRegion returned error: %v", err)
	}
	total := 0
	for _, p := range patches {
		total += len(p.Stitches)
	}
	if total == 0 {
		t.Error("got zero stitches for a straight satin column")
	}
}

func TestBuildSatinColumnWithTwoSubpathsRecordsPartitions(t *testing.T) {
	rail1 := &path.Data{
		Cmds:   []path.Cmd{path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo},
		Coords: []float64{0, 0, 10, 0, 20, 0},
	}
	rail2 := &path.Data{
		Cmds:   []path.Cmd{path.CmdMoveTo, path.CmdLineTo},
		Coords: []float64{0, 10, 20, 10},
	}
	col, err := BuildSatinColumn([]*path.Data{rail1, rail2}, 0.1)
	if err != nil {
		t.Fatalf("BuildSatinColumn returned error: %v", err)
	}
	if len(col.Rungs) != 0 {
		t.Errorf("got %d rungs for a two-subpath column, want 0", len(col.Rungs))
	}
	if len(col.Rail1Partitions) != 2 {
		t.Errorf("rail1 has %d partitions, want 2 (one per LineTo)", len(col.Rail1Partitions))
	}
	if len(col.Rail2Partitions) != 1 {
		t.Errorf("rail2 has %d partitions, want 1 (one per LineTo)", len(col.Rail2Partitions))
	}
}

func TestBuildSatinColumnWithRungsPicksTwoLongestAsRails(t *testing.T) {
	long1 := &path.Data{Cmds: []path.Cmd{path.CmdMoveTo, path.CmdLineTo}, Coords: []float64{0, 0, 100, 0}}
	long2 := &path.Data{Cmds: []path.Cmd{path.CmdMoveTo, path.CmdLineTo}, Coords: []float64{0, 20, 100, 20}}
	rung := &path.Data{Cmds: []path.Cmd{path.CmdMoveTo, path.CmdLineTo}, Coords: []float64{50, -5, 50, 25}}
	col, err := BuildSatinColumn([]*path.Data{rung, long1, long2}, 0.1)
	if err != nil {
		t.Fatalf("BuildSatinColumn returned error: %v", err)
	}
	if len(col.Rungs) != 1 {
		t.Fatalf("got %d rungs, want 1", len(col.Rungs))
	}
	if col.Rail1.Length() < 50 || col.Rail2.Length() < 50 {
		t.Errorf("rails %v, %v are not the two longest sub-paths", col.Rail1, col.Rail2)
	}
}

func TestPartitionPathSplitsAtGivenIndices(t *testing.T) {
	p := Path{Pt(0, 0), Pt(10, 0), Pt(20, 0), Pt(30, 0)}
	pieces := partitionPath(p, []int{1, 3})
	if len(pieces) != 2 {
		t.Fatalf("got %d pieces, want 2", len(pieces))
	}
	if len(pieces[0]) != 2 || len(pieces[1]) != 3 {
		t.Errorf("got piece lengths %d, %d; want 2, 3 (sharing boundary points)", len(pieces[0]), len(pieces[1]))
	}
}

func TestSplitByRungsZipsByBezierPartitionWithoutRungs(t *testing.T) {
	col := SatinColumn{
		Rail1:           Path{Pt(0, 0), Pt(10, 0), Pt(20, 0), Pt(30, 0)},
		Rail2:           Path{Pt(0, 10), Pt(10, 10), Pt(20, 10), Pt(30, 10)},
		Rail1Partitions: []int{1, 3},
		Rail2Partitions: []int{2, 3},
	}
	p1, p2, err := col.SplitByRungs()
	if err != nil {
		t.Fatalf("SplitByRungs returned error: %v", err)
	}
	if len(p1) != len(p2) || len(p1) != 2 {
		t.Fatalf("got %d/%d pieces, want 2/2 matched by partition index", len(p1), len(p2))
	}
}

func TestSatinRegionWithAllUnderlaysOrdersPassesCorrectly(t *testing.T) {
	col := SatinColumn{
		Rail1: Path{Pt(0, 0), Pt(100, 0)},
		Rail2: Path{Pt(0, 20), Pt(100, 20)},
	}
	params := SatinParams{
		Color: "black", ZigzagSpacing: 10, RunningStitchLength: 15,
		CenterWalkUnderlay: true, ContourUnderlay: true, ContourUnderlayInset: 2,
		ZigzagUnderlay: true, ZigzagUnderlayInset: 3, ZigzagUnderlaySpacing: 20,
	}
	patches, err := SatinRegion(col, params)
	if err != nil {
		t.Fatalf("SatinRegion returned error: %v", err)
	}
	if len(patches) != 4 {
		t.Fatalf("got %d patches, want 4 (3 underlays + top satin)", len(patches))
	}
}
