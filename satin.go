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

	"seehuhn.de/go/geom/path"
)

// SatinColumn is a pair of flattened rails with the optional rungs
// that subdivide them into matched pieces. Rail1Partitions and
// Rail2Partitions, when populated, mark the point index ending each
// original Bezier curve on that rail; BuildSatinColumn fills them in
// for the exactly-two-subpaths case, where there are no rungs to split
// by and the rails must instead be paired curve-for-curve (spec's
// "zip by Bezier-partition index"). They are left nil when the column
// came with explicit rungs, or was constructed directly (as the
// fixtures package does) without going through BuildSatinColumn.
type SatinColumn struct {
	Rail1, Rail2                   Path
	Rungs                          []Path
	Rail1Partitions, Rail2Partitions []int
}

// BuildSatinColumn implements the source's rail-flattening rule: given
// the raw Bezier sub-paths that make up one satin-column document
// element, flatten each and classify them into rails and rungs.
//
// If exactly two sub-paths are given, each is flattened whole and
// becomes one rail, with its per-curve partition boundaries recorded
// so SplitByRungs can zip them positionally by Bezier-partition index
// instead of by rung intersection. Otherwise, the two longest
// flattened sub-paths become the rails and the rest become rungs.
func BuildSatinColumn(subpaths []*path.Data, flatness float64) (SatinColumn, error) {
	type flatSubpath struct {
		path Path
		ends []int
	}
	var flattened []flatSubpath
	for _, d := range subpaths {
		_, paths, ends := flattenSubpathsWithPartitions(d, flatness)
		for i, p := range paths {
			flattened = append(flattened, flatSubpath{path: p, ends: ends[i]})
		}
	}
	if len(flattened) < 2 {
		return SatinColumn{}, newError(KindInvalidGeometry, 0, "", "satin column needs at least two open sub-paths")
	}

	if len(flattened) == 2 {
		return SatinColumn{
			Rail1: flattened[0].path, Rail1Partitions: flattened[0].ends,
			Rail2: flattened[1].path, Rail2Partitions: flattened[1].ends,
		}, nil
	}

	sort.Slice(flattened, func(i, j int) bool {
		return flattened[i].path.Length() > flattened[j].path.Length()
	})
	rungs := make([]Path, 0, len(flattened)-2)
	for _, f := range flattened[2:] {
		rungs = append(rungs, f.path)
	}
	return SatinColumn{
		Rail1: flattened[0].path,
		Rail2: flattened[1].path,
		Rungs: rungs,
	}, nil
}

// ValidateSatinColumn checks the structural invariant the source's
// validate_satin_column enforces: with no rungs and no recorded
// Bezier-partition boundaries, the two rails must flatten to the same
// number of points (they are walked in lockstep, index for index);
// with rungs present, each rail is split independently by arc-length
// intersection, and with partition boundaries SplitByRungs checks the
// piece counts instead, so point-count parity is not required.
func ValidateSatinColumn(col SatinColumn) error {
	if len(col.Rungs) == 0 && len(col.Rail1Partitions) == 0 && len(col.Rail1) != len(col.Rail2) {
		return newError(KindInvalidGeometry, 0, "", "satin column rails have a mismatched point count and no rungs to resolve it")
	}
	return nil
}

// SplitByRungs splits both rails into matched pieces. With rungs
// present, each rail is split at its rung-intersection points,
// following the source's use of shapely.ops.split against each rail
// with the rung geometry, generalized to plain segment intersection
// since this module has no general-purpose geometry-splitting library
// to delegate to. With no rungs but Bezier-partition boundaries
// recorded (the exactly-two-subpaths case from BuildSatinColumn), the
// rails are instead split at those boundaries and paired positionally
// ("zip by Bezier-partition index"). With neither, the whole rail is
// returned as a single piece.
func (col SatinColumn) SplitByRungs() ([]Path, []Path, error) {
	if len(col.Rungs) == 0 {
		if len(col.Rail1Partitions) > 0 || len(col.Rail2Partitions) > 0 {
			pieces1 := partitionPath(col.Rail1, col.Rail1Partitions)
			pieces2 := partitionPath(col.Rail2, col.Rail2Partitions)
			if len(pieces1) != len(pieces2) {
				return nil, nil, newError(KindInvalidGeometry, 0, "", "rails have a different number of bezier partitions")
			}
			return pieces1, pieces2, nil
		}
		return []Path{col.Rail1}, []Path{col.Rail2}, nil
	}
	var cuts1, cuts2 []Point
	for _, rung := range col.Rungs {
		if len(rung) < 2 {
			continue
		}
		if p, ok := intersectPathWithSegment(col.Rail1, rung[0], rung[len(rung)-1]); ok {
			cuts1 = append(cuts1, p)
		}
		if p, ok := intersectPathWithSegment(col.Rail2, rung[0], rung[len(rung)-1]); ok {
			cuts2 = append(cuts2, p)
		}
	}
	pieces1 := col.Rail1.SplitAtPoints(cuts1)
	pieces2 := col.Rail2.SplitAtPoints(cuts2)
	if len(pieces1) != len(pieces2) {
		return nil, nil, newError(KindInvalidGeometry, 0, "", "rungs split the two rails into a different number of pieces")
	}
	return pieces1, pieces2, nil
}

// partitionPath slices p into consecutive pieces at the given point
// indices (each the end of one original Bezier curve), with adjacent
// pieces sharing their boundary point the way SplitAtPoints's
// rung-intersection pieces do. A nil/empty ends leaves p as a single
// piece.
func partitionPath(p Path, ends []int) []Path {
	if len(ends) == 0 {
		return []Path{p}
	}
	var pieces []Path
	start := 0
	for _, end := range ends {
		if end <= start || end >= len(p) {
			continue
		}
		pieces = append(pieces, p[start:end+1])
		start = end
	}
	if start < len(p)-1 {
		pieces = append(pieces, p[start:])
	}
	if len(pieces) == 0 {
		return []Path{p}
	}
	return pieces
}

// intersectPathWithSegment returns the first point at which path
// crosses the segment a-b, used to locate where a rung meets a rail.
func intersectPathWithSegment(path Path, a, b Point) (Point, bool) {
	for i := 1; i < len(path); i++ {
		if p, ok := intersectSegments(path[i-1], path[i], a, b); ok {
			return p, true
		}
	}
	return Point{}, false
}

// intersectSegments returns the intersection point of segments p1-p2
// and p3-p4, if they cross within both segments' extents.
func intersectSegments(p1, p2, p3, p4 Point) (Point, bool) {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)
	denom := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(denom) < zeroLengthEpsilon {
		return Point{}, false
	}
	diff := p3.Sub(p1)
	t := (diff.X*d2.Y - diff.Y*d2.X) / denom
	u := (diff.X*d1.Y - diff.Y*d1.X) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return p1.Add(d1.Scale(t)), true
}

// centerlineOffset is the offset_points sentinel for "contract all the
// way to the midpoint": offsetPair's contraction clamp (shift cannot
// pass the midpoint) turns any sufficiently negative offset into
// exactly that, so -Inf reaches the clamp and is replaced before ever
// being multiplied into a coordinate.
var centerlineOffset = math.Inf(-1)

// offsetPair pushes a and b apart (distance > 0, pull compensation)
// or together (distance < 0, underlay inset) symmetrically about
// their midpoint, clamping the inward shift so neither point can
// cross the midpoint. This grounds offset_points.
func offsetPair(a, b Point, distance float64) (Point, Point) {
	m := mid(a, b)
	halfLen := a.Sub(m).Length()
	shift := distance / 2
	if shift < 0 && -shift > halfLen {
		shift = -halfLen
	}
	dirA, dirB := a.Sub(m), b.Sub(m)
	if halfLen > zeroLengthEpsilon {
		dirA = dirA.Scale(1 / halfLen)
		dirB = dirB.Scale(1 / halfLen)
	}
	return a.Add(dirA.Scale(shift)), b.Add(dirB.Scale(shift))
}

// walkAlong moves distance px along path from (startPos, startIndex),
// returning the new position and the index of the segment it ends on.
// Grounds the source's SatinColumn.walk.
func walkAlong(path Path, startPos Point, startIndex int, distance float64) (Point, int) {
	pos := startPos
	index := startIndex
	lastIndex := len(path) - 1
	remaining := distance
	for {
		if index >= lastIndex {
			return pos, index
		}
		segmentEnd := path[index+1]
		segment := segmentEnd.Sub(pos)
		segLen := segment.Length()
		if segLen > remaining {
			return pos.Add(segment.Unit().Scale(remaining)), index
		}
		index++
		remaining -= segLen
		pos = segmentEnd
	}
}

// walkPaths advances matched rail pieces in lockstep at the given
// spacing, applying offset (via offsetPair) to every emitted pair, and
// carries any unconsumed tail of each piece forward into the next
// piece's walk. Each piece takes floor(longer length / spacing) steps
// of its own stretched spacing, so the walk reaches the end of every
// piece (up to rounding); the carried tail is at most rounding residue
// and a pair is emitted at the start of every rung or Bezier-partition
// piece. Grounds walk_paths, including its trailing "one more pair,
// then the true endpoints" tail handling.
func walkPaths(pieces1, pieces2 []Path, spacing, offset float64) (left, right []Point) {
	if spacing <= 0 || len(pieces1) == 0 || len(pieces1) != len(pieces2) {
		return nil, nil
	}

	addPair := func(a, b Point) {
		a, b = offsetPair(a, b, offset)
		left = append(left, a)
		right = append(right, b)
	}

	var remainder1, remainder2 Path
	var pos1, pos2 Point
	var idx1, idx2 int
	walked := false

	for i := range pieces1 {
		subpath1 := append(append(Path{}, remainder1...), pieces1[i]...)
		subpath2 := append(append(Path{}, remainder2...), pieces2[i]...)
		if len(subpath1) < 2 || len(subpath2) < 2 {
			continue
		}
		len1, len2 := subpath1.Length(), subpath2.Length()
		numPoints := int(math.Max(len1, len2) / spacing)
		if numPoints < 1 {
			numPoints = 1
		}
		spacing1 := len1 / float64(numPoints)
		spacing2 := len2 / float64(numPoints)

		pos1, idx1 = subpath1[0], 0
		pos2, idx2 = subpath2[0], 0
		for k := 0; k < numPoints; k++ {
			addPair(pos1, pos2)
			pos1, idx1 = walkAlong(subpath1, pos1, idx1, spacing1)
			pos2, idx2 = walkAlong(subpath2, pos2, idx2, spacing2)
		}
		walked = true

		if idx1 < len(subpath1)-1 {
			remainder1 = append(Path{pos1}, subpath1[idx1+1:]...)
		} else {
			remainder1 = nil
		}
		if idx2 < len(subpath2)-1 {
			remainder2 = append(Path{pos2}, subpath2[idx2+1:]...)
		} else {
			remainder2 = nil
		}
	}
	if !walked {
		return nil, nil
	}

	end1, end2 := pos1, pos2
	if len(remainder1) > 0 {
		end1 = remainder1[len(remainder1)-1]
	}
	if len(remainder2) > 0 {
		end2 = remainder2[len(remainder2)-1]
	}
	if end1.Sub(pos1).Length() > 0.3*spacing {
		addPair(pos1, pos2)
	}
	addPair(end1, end2)
	return left, right
}

// reorder rearranges pts so its even-indexed entries come first (in
// order), followed by its odd-indexed entries in reverse, matching
// do_zigzag_underlay's index rearrangement (which keeps consecutive
// stitches from doubling back on themselves at the same point).
func reorder(pts []Point) []Point {
	n := len(pts)
	out := make([]Point, 0, n)
	for i := 0; i < n; i += 2 {
		out = append(out, pts[i])
	}
	for i := n - 1 - n%2; i >= 0; i -= 2 {
		out = append(out, pts[i])
	}
	return out
}

// satinSequence interleaves matched, already-offset rail points into
// the zig-zag satin stitch itself. Grounds do_satin.
func satinSequence(left, right []Point) []Point {
	pts := make([]Point, 0, 2*len(left))
	for i := range left {
		pts = append(pts, left[i], right[i])
	}
	return pts
}

// contourSequence walks one already-insetted rail forward and the
// other back, producing a closed-looking double line just inside the
// satin's footprint. Grounds do_contour_underlay and, with a
// centerline offset already applied by the caller, do_center_walk.
func contourSequence(left, right []Point) []Point {
	pts := make([]Point, 0, len(left)+len(right))
	pts = append(pts, left...)
	for i := len(right) - 1; i >= 0; i-- {
		pts = append(pts, right[i])
	}
	return pts
}

// zigzagSequence reorders each already-insetted side to even-forward
// then odd-backward before interleaving, matching
// do_zigzag_underlay's rearrangement.
func zigzagSequence(left, right []Point) []Point {
	seqLeft := reorder(left)
	seqRight := reorder(right)
	pts := make([]Point, 0, 2*len(seqLeft))
	for i := range seqLeft {
		pts = append(pts, seqLeft[i], seqRight[i])
	}
	return pts
}

// SatinRegion stitches a satin column region, emitting (in order)
// center-walk underlay, contour underlay, zig-zag underlay, then the
// top satin stitch itself, matching SatinColumn.to_patches's pass
// ordering. Each pass walks the rung/partition pieces at its own
// spacing and offset, per spec's per-variant walk_paths parameters.
func SatinRegion(col SatinColumn, params SatinParams) ([]Patch, error) {
	if err := ValidateSatinColumn(col); err != nil {
		return nil, err
	}
	if params.ZigzagSpacing <= 0 {
		return nil, newError(KindDegenerateParameters, 0, "", "zigzag_spacing must be positive")
	}
	pieces1, pieces2, err := col.SplitByRungs()
	if err != nil {
		return nil, err
	}

	var patches []Patch
	if params.CenterWalkUnderlay {
		spacing := params.resolvedCenterWalkUnderlayStitchLength()
		left, right := walkPaths(pieces1, pieces2, spacing, centerlineOffset)
		if len(left) > 0 {
			patches = append(patches, pointsToPatch(contourSequence(left, right), params.Color))
		}
	}
	if params.ContourUnderlay {
		spacing := params.resolvedContourUnderlayStitchLength()
		left, right := walkPaths(pieces1, pieces2, spacing, -2*params.ContourUnderlayInset)
		if len(left) > 0 {
			patches = append(patches, pointsToPatch(contourSequence(left, right), params.Color))
		}
	}
	if params.ZigzagUnderlay {
		spacing := params.ZigzagUnderlaySpacing
		if spacing <= 0 {
			spacing = 2 * params.ZigzagSpacing
		}
		left, right := walkPaths(pieces1, pieces2, spacing/2, -2*params.ZigzagUnderlayInset)
		if len(left) > 0 {
			patches = append(patches, pointsToPatch(zigzagSequence(left, right), params.Color))
		}
	}

	left, right := walkPaths(pieces1, pieces2, params.ZigzagSpacing, 2*params.PullCompensation)
	if len(left) > 0 {
		patches = append(patches, pointsToPatch(satinSequence(left, right), params.Color))
	}
	return patches, nil
}

func pointsToPatch(pts []Point, color string) Patch {
	patch := Patch{Color: color}
	for _, p := range pts {
		patch.AddStitch(p)
	}
	return patch
}
