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
	"sort"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Polygon is a closed region described by a shell (outer boundary)
// and zero or more holes; ring orientation is neither checked nor
// relied on. The largest-area ring supplied to NewPolygon becomes the
// shell, exactly as the source
// picked its shapely shell by sorting candidate rings by area.
//
// Rings are stored without a repeated closing point: Shell[len-1]
// connects back to Shell[0].
type Polygon struct {
	Shell Ring
	Holes []Ring
}

// Ring is a closed simple polygon boundary.
type Ring []Point

// NewPolygon builds a Polygon from a set of candidate closed rings,
// selecting the largest by absolute area as the shell and treating
// the rest as holes. This mirrors the source's approach of handing
// shapely a bag of LinearRings and letting it infer shell-vs-hole by
// area rather than requiring the caller to pre-sort them.
func NewPolygon(rings []Ring) Polygon {
	if len(rings) == 0 {
		return Polygon{}
	}
	best := 0
	bestArea := math.Abs(rings[0].SignedArea())
	for i := 1; i < len(rings); i++ {
		a := math.Abs(rings[i].SignedArea())
		if a > bestArea {
			bestArea = a
			best = i
		}
	}
	holes := make([]Ring, 0, len(rings)-1)
	for i, r := range rings {
		if i == best {
			continue
		}
		holes = append(holes, r)
	}
	return Polygon{Shell: rings[best], Holes: holes}
}

// SignedArea returns twice... no: returns the ring's signed area
// (shoelace formula). Positive for counter-clockwise rings.
func (r Ring) SignedArea() float64 {
	if len(r) < 3 {
		return 0
	}
	sum := 0.0
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return sum / 2
}

// Length returns the perimeter of the ring.
func (r Ring) Length() float64 {
	if len(r) < 2 {
		return 0
	}
	total := 0.0
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += r[j].Sub(r[i]).Length()
	}
	return total
}

// Project returns the arc-length distance along the ring, starting
// from r[0] and walking in the ring's stored order, of the point on
// the ring closest to p. Used by the auto-fill graph to order nodes
// along an outline and by running-stitch bridges to find where to
// join the boundary.
func (r Ring) Project(p Point) float64 {
	if len(r) < 2 {
		return 0
	}
	bestDist := math.Inf(1)
	bestArc := 0.0
	arc := 0.0
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := r[i], r[j]
		segLen := b.Sub(a).Length()
		t, d2 := closestPointOnSegment(p, a, b)
		if d2 < bestDist {
			bestDist = d2
			bestArc = arc + t*segLen
		}
		arc += segLen
	}
	return bestArc
}

// Interpolate returns the point on the ring at arc-length dist from
// r[0], wrapping modulo the ring's total length.
func (r Ring) Interpolate(dist float64) Point {
	total := r.Length()
	if total <= 0 || len(r) < 2 {
		if len(r) > 0 {
			return r[0]
		}
		return Point{}
	}
	dist = math.Mod(dist, total)
	if dist < 0 {
		dist += total
	}
	arc := 0.0
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := r[i], r[j]
		segLen := b.Sub(a).Length()
		if arc+segLen >= dist || i == n-1 {
			if segLen < zeroLengthEpsilon {
				return a
			}
			t := (dist - arc) / segLen
			return a.Add(b.Sub(a).Scale(t))
		}
		arc += segLen
	}
	return r[n-1]
}

// closestPointOnSegment returns the parameter t in [0,1] of the
// closest point to p on segment a-b, and the squared distance to it.
func closestPointOnSegment(p, a, b Point) (t, distSq float64) {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 < zeroLengthEpsilon {
		return 0, p.Sub(a).Dot(p.Sub(a))
	}
	t = p.Sub(a).Dot(d) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(d.Scale(t))
	diff := p.Sub(closest)
	return t, diff.Dot(diff)
}

// Bounds returns the axis-aligned bounding box of the shell (holes
// are interior to it by construction, so they never widen it).
func (p Polygon) Bounds() rect.Rect {
	if len(p.Shell) == 0 {
		return rect.Rect{}
	}
	minX, minY := p.Shell[0].X, p.Shell[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.Shell[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return rect.Rect{LLx: minX, LLy: minY, URx: maxX, URy: maxY}
}

// diagonal returns the length of the bounding box diagonal: a row
// line of at least this length centred in the box spans the shape
// fully. gratingRows intersects unbounded lines and does not use it.
func (p Polygon) diagonal() float64 {
	b := p.Bounds()
	return Pt(b.URx-b.LLx, b.URy-b.LLy).Length()
}

// rotateClockwise rotates p by theta radians clockwise about the
// origin using seehuhn.de/go/geom/matrix.Matrix. This is the single
// point of contact with an externally-sourced rotation convention:
// matrix.Rotate (and the rest of seehuhn.de/go/geom) follows the
// mathematical counter-clockwise-positive convention, the opposite of
// this function's own clockwise-positive contract, so the angle is
// negated right here rather than letting the sign mismatch leak into
// Point.Rotate or any other call site.
func rotateClockwise(p Point, theta float64) Point {
	m := matrix.Rotate(-theta)
	x := m[0]*p.X + m[2]*p.Y + m[4]
	y := m[1]*p.X + m[3]*p.Y + m[5]
	return Pt(x, y)
}

// edgeCrossing is one intersection of a grating row line with a
// polygon edge, kept with its signed parameter along the line so
// crossings from shell and holes can be merged and sorted together.
type edgeCrossing struct {
	t float64
	p Point
}

// intersectRingWithLine appends to crossings every point at which the
// infinite line through origin with direction dir crosses an edge of
// ring, using the same point-in-segment algebra the teacher's
// collectPathEdges/addEdge pair uses for scanline active-edge
// crossings, generalized from horizontal scanlines to an arbitrary
// row direction via the rotated local frame computed by the caller.
func intersectRingWithLine(ring Ring, origin, dir Point, out []edgeCrossing) []edgeCrossing {
	n := len(ring)
	if n < 2 {
		return out
	}
	normal := dir.RotateLeft()
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		da := a.Sub(origin).Dot(normal)
		db := b.Sub(origin).Dot(normal)
		if (da <= 0 && db <= 0) || (da > 0 && db > 0) {
			continue
		}
		// Edge crosses the line; find the intersection parameter
		// along the edge, then project onto dir to get t along line.
		u := da / (da - db)
		pt := a.Add(b.Sub(a).Scale(u))
		t := pt.Sub(origin).Dot(dir)
		out = append(out, edgeCrossing{t: t, p: pt})
	}
	return out
}

// IntersectWithLine returns the points, in order along dir starting
// from origin, where the line crosses the polygon's shell and hole
// boundaries. Consecutive pairs (0,1), (2,3), ... are the "runs":
// the portions of the line that lie inside the polygon, exactly as
// the source intersects a shapely LineString against self.shape and
// lets the library sort out shell/hole parity. Degenerate tangential
// crossings collapse naturally because coincident points sort
// adjacent and are removed by the caller's minimum-run-length filter.
func (p Polygon) IntersectWithLine(origin, dir Point) []Point {
	dir = dir.Unit()
	var crossings []edgeCrossing
	crossings = intersectRingWithLine(p.Shell, origin, dir, crossings)
	for _, h := range p.Holes {
		crossings = intersectRingWithLine(h, origin, dir, crossings)
	}
	sort.Slice(crossings, func(i, j int) bool { return crossings[i].t < crossings[j].t })
	pts := make([]Point, len(crossings))
	for i, c := range crossings {
		pts[i] = c.p
	}
	// An even-odd polygon (shell plus holes, each a simple ring) always
	// produces an even number of crossings along a line that does not
	// pass exactly through a vertex; a stray odd crossing from such a
	// tangency is dropped rather than leaving a run unpaired.
	if len(pts)%2 == 1 {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// Path is an open polyline: a rail, a rung, or a connecting stitch
// path. Unlike Ring it does not implicitly close.
type Path []Point

// Length returns the total length of the polyline.
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += p[i].Sub(p[i-1]).Length()
	}
	return total
}

// PointAt returns the point at arc-length dist along the path
// (clamped to [0, Length()]) and the index of the segment it falls
// on (the index i such that the point lies on p[i]-p[i+1]).
func (p Path) PointAt(dist float64) (Point, int) {
	if len(p) == 0 {
		return Point{}, 0
	}
	if dist <= 0 {
		return p[0], 0
	}
	arc := 0.0
	for i := 1; i < len(p); i++ {
		segLen := p[i].Sub(p[i-1]).Length()
		if arc+segLen >= dist {
			if segLen < zeroLengthEpsilon {
				return p[i-1], i - 1
			}
			t := (dist - arc) / segLen
			return p[i-1].Add(p[i].Sub(p[i-1]).Scale(t)), i - 1
		}
		arc += segLen
	}
	return p[len(p)-1], len(p) - 2
}

// SplitAtPoints splits path into consecutive sub-paths at the given
// cut points, each of which is assumed to lie on (or very near) the
// path. This grounds the satin column's rung-based rail splitting:
// a rail flattened from a Bezier is cut wherever a rung crosses it,
// producing one sub-path per section between rungs, the same
// decomposition shapely.ops.split performs against a LineString.
func (p Path) SplitAtPoints(cuts []Point) []Path {
	if len(cuts) == 0 {
		return []Path{p}
	}
	type cutAt struct {
		arc float64
		pt  Point
	}
	arcs := make([]cutAt, 0, len(cuts))
	for _, c := range cuts {
		arcs = append(arcs, cutAt{arc: nearestArcLength(p, c), pt: c})
	}
	sort.Slice(arcs, func(i, j int) bool { return arcs[i].arc < arcs[j].arc })

	var pieces []Path
	current := Path{p[0]}
	arc := 0.0
	cutIdx := 0
	for i := 1; i < len(p); i++ {
		segStart := p[i-1]
		segEnd := p[i]
		segLen := segEnd.Sub(segStart).Length()
		for cutIdx < len(arcs) && arcs[cutIdx].arc <= arc+segLen && arcs[cutIdx].arc >= arc {
			current = append(current, arcs[cutIdx].pt)
			pieces = append(pieces, current)
			current = Path{arcs[cutIdx].pt}
			cutIdx++
		}
		current = append(current, segEnd)
		arc += segLen
	}
	pieces = append(pieces, current)
	return pieces
}

// nearestArcLength returns the arc length along p of the point
// closest to target.
func nearestArcLength(p Path, target Point) float64 {
	if len(p) < 2 {
		return 0
	}
	bestD := math.Inf(1)
	bestArc := 0.0
	arc := 0.0
	for i := 1; i < len(p); i++ {
		a, b := p[i-1], p[i]
		segLen := b.Sub(a).Length()
		t, d2 := closestPointOnSegment(target, a, b)
		if d2 < bestD {
			bestD = d2
			bestArc = arc + t*segLen
		}
		arc += segLen
	}
	return bestArc
}
