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
	"math"
	"testing"
)

func square(size float64) Ring {
	return Ring{Pt(0, 0), Pt(size, 0), Pt(size, size), Pt(0, size)}
}

func TestRingSignedAreaCCWPositive(t *testing.T) {
	r := square(10)
	if got := r.SignedArea(); got != 100 {
		t.Errorf("area = %v, want 100", got)
	}
}

func TestRingSignedAreaCWNegative(t *testing.T) {
	r := Ring{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	if got := r.SignedArea(); got != -100 {
		t.Errorf("area = %v, want -100", got)
	}
}

func TestNewPolygonPicksLargestRingAsShell(t *testing.T) {
	shell := square(100)
	hole := Ring{Pt(40, 40), Pt(40, 60), Pt(60, 60), Pt(60, 40)}
	poly := NewPolygon([]Ring{hole, shell})
	if len(poly.Shell) != len(shell) || poly.Shell[2] != shell[2] {
		t.Fatalf("shell not selected correctly: %+v", poly.Shell)
	}
	if len(poly.Holes) != 1 {
		t.Fatalf("want 1 hole, got %d", len(poly.Holes))
	}
}

func TestRingProjectAndInterpolateRoundTrip(t *testing.T) {
	r := square(10)
	p := Pt(5, 0)
	arc := r.Project(p)
	got := r.Interpolate(arc)
	pointsAlmostEqual(t, got, p, 1e-9)
}

func TestRingInterpolateWraps(t *testing.T) {
	r := square(10)
	total := r.Length()
	a := r.Interpolate(5)
	b := r.Interpolate(5 + total)
	pointsAlmostEqual(t, a, b, 1e-9)
}

func TestPolygonIntersectWithLineUnitSquare(t *testing.T) {
	poly := NewPolygon([]Ring{square(10)})
	pts := poly.IntersectWithLine(Pt(0, 5), Pt(1, 0))
	if len(pts) != 2 {
		t.Fatalf("got %d crossings, want 2: %+v", len(pts), pts)
	}
	lo, hi := pts[0].X, pts[1].X
	if lo > hi {
		lo, hi = hi, lo
	}
	if !almostEqual(lo, 0, 1e-9) || !almostEqual(hi, 10, 1e-9) {
		t.Errorf("crossings = %v, %v; want 0, 10", pts[0].X, pts[1].X)
	}
}

func TestPolygonIntersectWithLineMiss(t *testing.T) {
	poly := NewPolygon([]Ring{square(10)})
	pts := poly.IntersectWithLine(Pt(0, 50), Pt(1, 0))
	if len(pts) != 0 {
		t.Fatalf("got %d crossings outside the polygon, want 0", len(pts))
	}
}

func TestPolygonIntersectWithLineAnnulusFourCrossings(t *testing.T) {
	poly := NewPolygon([]Ring{square(100), {Pt(40, 40), Pt(40, 60), Pt(60, 60), Pt(60, 40)}})
	pts := poly.IntersectWithLine(Pt(0, 50), Pt(1, 0))
	if len(pts) != 4 {
		t.Fatalf("got %d crossings through an annulus, want 4: %+v", len(pts), pts)
	}
}

func TestPathLengthAndPointAt(t *testing.T) {
	p := Path{Pt(0, 0), Pt(10, 0), Pt(10, 10)}
	if got := p.Length(); got != 20 {
		t.Errorf("length = %v, want 20", got)
	}
	mid, idx := p.PointAt(15)
	pointsAlmostEqual(t, mid, Pt(10, 5), 1e-9)
	if idx != 1 {
		t.Errorf("segment index = %d, want 1", idx)
	}
}

func TestPathSplitAtPoints(t *testing.T) {
	p := Path{Pt(0, 0), Pt(10, 0), Pt(20, 0)}
	pieces := p.SplitAtPoints([]Point{Pt(5, 0)})
	if len(pieces) != 2 {
		t.Fatalf("got %d pieces, want 2", len(pieces))
	}
	if got := pieces[0][len(pieces[0])-1]; got != Pt(5, 0) {
		t.Errorf("first piece ends at %v, want (5,0)", got)
	}
	if got := pieces[1][0]; got != Pt(5, 0) {
		t.Errorf("second piece starts at %v, want (5,0)", got)
	}
}

func TestDiagonalGratingRowDirectionIsRotated(t *testing.T) {
	poly := NewPolygon([]Ring{square(100)})
	dir := Pt(1, 0).Rotate(math.Pi / 4)
	pts := poly.IntersectWithLine(Pt(50, 50), dir)
	if len(pts) != 2 {
		t.Fatalf("diagonal through center should cross twice, got %d", len(pts))
	}
}
