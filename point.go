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

// Package inkstitch converts vector artwork (closed regions and open
// strokes, described by cubic Bezier superpaths) into an ordered
// sequence of embroidery machine stitches.
//
// The package implements the geometry-and-routing core only: grating
// generation, section decomposition, auto-fill graph routing, satin
// rail walking, and stitch-stream assembly. Vector-document parsing,
// wire-format encoding, and CLI option handling are assumed to happen
// outside this package; see SPEC_FULL.md for the full component list.
package inkstitch

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Point is a 2D point (or vector) measured in device pixels. It is a
// defined type over vec.Vec2 so that the vector algebra the spec needs
// (add, subtract, scale, dot, rotate, unit, length) is built directly
// on top of seehuhn.de/go/geom's primitives instead of re-implemented.
type Point vec.Vec2

// Pt constructs a Point from coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point(vec.Vec2(p).Add(vec.Vec2(q)))
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point(vec.Vec2(p).Sub(vec.Vec2(q)))
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point(vec.Vec2(p).Mul(s))
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return vec.Vec2(p).Dot(vec.Vec2(q))
}

// Length returns the Euclidean length of p treated as a vector.
func (p Point) Length() float64 {
	return vec.Vec2(p).Length()
}

// Unit returns p normalized to unit length. The zero vector is
// returned unchanged (callers on hot paths already guard against
// zero-length segments; see zeroLengthEpsilon).
func (p Point) Unit() Point {
	l := p.Length()
	if l < zeroLengthEpsilon {
		return p
	}
	return p.Scale(1 / l)
}

// Rotate returns p rotated by theta radians, counter-clockwise
// positive. This is the core's convention throughout; the one
// clockwise helper, rotateClockwise in polygon.go, negates the sign
// inside itself rather than leaking the mismatch into this type. The
// grating code (gratingRows) works with projections and calls neither
// that helper nor any matrix rotation.
func (p Point) Rotate(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// RotateLeft returns p rotated 90 degrees counter-clockwise. Used
// pervasively to turn a row/rail direction into its normal.
func (p Point) RotateLeft() Point {
	return Point{X: -p.Y, Y: p.X}
}

// zeroLengthEpsilon is the threshold below which a vector is treated
// as degenerate throughout the package.
const zeroLengthEpsilon = 1e-9
