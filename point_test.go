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

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func pointsAlmostEqual(t *testing.T, got, want Point, eps float64) {
	t.Helper()
	if !almostEqual(got.X, want.X, eps) || !almostEqual(got.Y, want.Y, eps) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestPointRotateQuarterTurn(t *testing.T) {
	p := Pt(1, 0)
	got := p.Rotate(math.Pi / 2)
	pointsAlmostEqual(t, got, Pt(0, 1), 1e-9)
}

func TestPointRotateLeftMatchesRotate(t *testing.T) {
	p := Pt(3, 4)
	pointsAlmostEqual(t, p.RotateLeft(), p.Rotate(math.Pi/2), 1e-9)
}

func TestPointUnitPreservesDirection(t *testing.T) {
	p := Pt(3, 4)
	u := p.Unit()
	if !almostEqual(u.Length(), 1, 1e-9) {
		t.Fatalf("unit vector length = %v, want 1", u.Length())
	}
	cross := p.X*u.Y - p.Y*u.X
	if !almostEqual(cross, 0, 1e-9) {
		t.Fatalf("unit vector not parallel to original: cross = %v", cross)
	}
}

func TestPointUnitZeroVector(t *testing.T) {
	z := Pt(0, 0)
	pointsAlmostEqual(t, z.Unit(), Pt(0, 0), 1e-9)
}

func TestPointAddSub(t *testing.T) {
	a, b := Pt(1, 2), Pt(3, 5)
	pointsAlmostEqual(t, a.Add(b), Pt(4, 7), 1e-9)
	pointsAlmostEqual(t, b.Sub(a), Pt(2, 3), 1e-9)
}

func TestPointDot(t *testing.T) {
	a, b := Pt(1, 0), Pt(0, 1)
	if got := a.Dot(b); got != 0 {
		t.Errorf("perpendicular dot = %v, want 0", got)
	}
	if got := a.Dot(a); got != 1 {
		t.Errorf("self dot = %v, want 1", got)
	}
}
