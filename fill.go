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

import "math"

// minStitchGap is the minimum distance (0.1mm, in px) a trailing
// endpoint must be from the last emitted stitch to be worth emitting
// as its own stitch, matching the source's 0.1mm dedupe thresholds
// used throughout stitch_row/connect_points.
const minStitchGap = 0.1 * mmToPx

// Run is one inside-the-polygon span of a single grating row line.
type Run struct {
	Start, End Point
}

// Row is the (possibly empty) set of runs produced by intersecting
// one grating line with a region, ordered by position along the row
// direction (see Polygon.IntersectWithLine).
type Row []Run

// gratingRows builds the parallel-line grating for a fill region:
// a family of lines at the configured angle, spaced rowSpacing apart,
// each intersected against the region to produce its runs. This is
// the in-house replacement for the source's shapely LineString/shape
// intersection (spec §1: grating generation is core, in-house logic,
// not delegated to an external geometry engine), built on top of
// Polygon.IntersectWithLine.
func gratingRows(poly Polygon, angle, rowSpacing float64) []Row {
	if rowSpacing <= 0 {
		return nil
	}
	dir := Pt(1, 0).Rotate(angle)
	normal := dir.RotateLeft()

	b := poly.Bounds()
	corners := [4]Point{
		Pt(b.LLx, b.LLy), Pt(b.URx, b.LLy),
		Pt(b.LLx, b.URy), Pt(b.URx, b.URy),
	}
	minProj, maxProj := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		proj := c.Dot(normal)
		minProj = math.Min(minProj, proj)
		maxProj = math.Max(maxProj, proj)
	}

	// Snap the first row so offsets fall on multiples of rowSpacing
	// measured from the origin, matching the source's stagger-aligned
	// row placement.
	start := math.Floor(minProj/rowSpacing) * rowSpacing

	var rows []Row
	for offset := start; offset <= maxProj+rowSpacing; offset += rowSpacing {
		origin := normal.Scale(offset)
		pts := poly.IntersectWithLine(origin, dir)
		if len(pts) == 0 {
			continue
		}
		row := make(Row, 0, len(pts)/2)
		for i := 0; i+1 < len(pts); i += 2 {
			run := Run{Start: pts[i], End: pts[i+1]}
			if run.End.Sub(run.Start).Length() < zeroLengthEpsilon {
				continue
			}
			row = append(row, run)
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// sameRunDistanceFactor is the maximum row-to-row spacing, expressed
// as a multiple of rowSpacing, for two runs to be considered part of
// the same serpentine section.
const sameRunDistanceFactor = 1.1

// sameRunOverlapFraction is the minimum fraction of the shorter run's
// length that must overlap the other run, both projected onto the row
// direction, for the two to merge into one section. This approximates the source's shapely quadrilateral-area
// ratio test using interval overlap along the row direction, which
// is the dominant term of that area for the thin strips this test
// targets.
const sameRunOverlapFraction = 0.9

func isSameRun(a, b Run, rowSpacing float64, dir Point) bool {
	_, d1 := closestPointOnSegment(a.Start, b.Start, b.End)
	_, d2 := closestPointOnSegment(a.End, b.Start, b.End)
	_, d3 := closestPointOnSegment(b.Start, a.Start, a.End)
	_, d4 := closestPointOnSegment(b.End, a.Start, a.End)
	if math.Sqrt(math.Min(math.Min(d1, d2), math.Min(d3, d4))) > sameRunDistanceFactor*rowSpacing {
		return false
	}
	aLo, aHi := sortedProj(a, dir)
	bLo, bHi := sortedProj(b, dir)
	overlapLo := math.Max(aLo, bLo)
	overlapHi := math.Min(aHi, bHi)
	overlap := math.Max(0, overlapHi-overlapLo)
	shorter := math.Min(aHi-aLo, bHi-bLo)
	if shorter < zeroLengthEpsilon {
		return false
	}
	return overlap/shorter >= sameRunOverlapFraction
}

func sortedProj(r Run, dir Point) (lo, hi float64) {
	a, b := r.Start.Dot(dir), r.End.Dot(dir)
	if a > b {
		a, b = b, a
	}
	return a, b
}

// Section is a chain of runs, one per consecutive grating row, that
// form a single serpentine zig-zag block: the runs are close enough
// together and overlap enough to be stitched as one continuous strip
// rather than independently. This is the source's pull_runs output.
type Section []Run

// pullSections consumes a working copy of rows (from the front of each
// row; the caller's rows are left unchanged) and groups runs into
// sections: repeatedly takes the first
// unconsumed run of the first row that still has one, then greedily
// absorbs the first run of each following row while isSameRun holds.
func pullSections(rows []Row, rowSpacing float64, dir Point) []Section {
	// Copy so the caller's slice isn't mutated by index bookkeeping.
	remaining := make([]Row, len(rows))
	copy(remaining, rows)

	var sections []Section
	for {
		startRow := -1
		for i, r := range remaining {
			if len(r) > 0 {
				startRow = i
				break
			}
		}
		if startRow == -1 {
			break
		}
		section := Section{remaining[startRow][0]}
		remaining[startRow] = remaining[startRow][1:]
		last := section[0]
		for i := startRow + 1; i < len(remaining); i++ {
			if len(remaining[i]) == 0 {
				break
			}
			candidate := remaining[i][0]
			if !isSameRun(last, candidate, rowSpacing, dir) {
				break
			}
			section = append(section, candidate)
			remaining[i] = remaining[i][1:]
			last = candidate
		}
		sections = append(sections, section)
	}
	return sections
}

// flooredMod returns a mod m with a result in [0, m), matching Python's
// % operator rather than Go's math.Mod (which can return negative
// values for negative a). The stitch-phase math below depends on this
// non-negative convention.
func flooredMod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	return r
}

// rowNumber is spec's row_number(p) = round((p . normal) / rowSpacing):
// it depends only on p's own position, never on enumeration order, so
// that two regions sharing a row agree on where stitches fall.
func rowNumber(p, normal Point, rowSpacing float64) int {
	return int(math.Round(p.Dot(normal) / rowSpacing))
}

// adjustStagger returns the distance along dir from beg to the first
// evenly spaced stitch position: beg's own absolute projection onto
// dir is taken mod maxStitchLength, then shifted by this row's stagger
// phase (derived from beg's own row_number, not a synthetic per-call
// counter), so that two abutting regions with the same angle and
// spacing always break at the same absolute points. Matches the
// source's adjust_stagger.
func adjustStagger(beg, dir, normal Point, rowSpacing, maxStitchLength float64, staggers int) float64 {
	if staggers <= 0 || maxStitchLength <= 0 {
		return 0
	}
	rn := rowNumber(beg, normal, rowSpacing)
	phase := ((rn % staggers) + staggers) % staggers
	stagger := float64(phase) * maxStitchLength / float64(staggers)
	proj := beg.Dot(dir)
	pos := stagger - flooredMod(proj, maxStitchLength)
	if pos < 0 {
		pos += maxStitchLength
	}
	return pos
}

// stitchRun emits evenly spaced stitches along run, starting from the
// stagger-adjusted phase and advancing by maxStitchLength, always
// including the true endpoints, matching the source's stitch_row.
// normal is the grating row normal, needed to compute run.Start's own
// row_number.
func stitchRun(run Run, maxStitchLength, rowSpacing float64, normal Point, staggers int) []Point {
	dir := run.End.Sub(run.Start)
	length := dir.Length()
	if length < zeroLengthEpsilon {
		return []Point{run.Start}
	}
	unit := dir.Scale(1 / length)

	points := []Point{run.Start}
	pos := adjustStagger(run.Start, unit, normal, rowSpacing, maxStitchLength, staggers)
	for pos < length {
		points = append(points, run.Start.Add(unit.Scale(pos)))
		pos += maxStitchLength
	}
	if run.End.Sub(points[len(points)-1]).Length() > minStitchGap {
		points = append(points, run.End)
	}
	return points
}

// sectionToPatch stitches a whole section in serpentine order:
// consecutive runs alternate direction so the needle walks up one
// side of the strip and down the other without a jump between rows.
func sectionToPatch(section Section, maxStitchLength, rowSpacing float64, normal Point, staggers int, color string) Patch {
	patch := Patch{Color: color}
	forward := true
	for _, run := range section {
		r := run
		if !forward {
			r = Run{Start: run.End, End: run.Start}
		}
		pts := stitchRun(r, maxStitchLength, rowSpacing, normal, staggers)
		for _, p := range pts {
			patch.AddStitch(p)
		}
		forward = !forward
	}
	return patch
}

// FillRegion stitches a plain fill region, returning one patch per
// section (spec §4.2). Rows run in the direction perpendicular to
// params.Angle is not used; row lines run AT params.Angle, exactly as
// the source's Fill.east/Fill.north helpers define it.
func FillRegion(poly Polygon, params FillParams) ([]Patch, error) {
	if params.RowSpacing <= 0 || params.MaxStitchLength <= 0 {
		return nil, newError(KindDegenerateParameters, 0, "", "row_spacing and max_stitch_length must be positive")
	}
	rows := gratingRows(poly, params.Angle, params.RowSpacing)
	if len(rows) == 0 {
		return nil, nil
	}
	dir := Pt(1, 0).Rotate(params.Angle)
	sections := pullSections(rows, params.RowSpacing, dir)
	if params.Flip {
		for i, j := 0, len(sections)-1; i < j; i, j = i+1, j-1 {
			sections[i], sections[j] = sections[j], sections[i]
		}
	}

	normal := dir.RotateLeft()
	patches := make([]Patch, 0, len(sections))
	for _, section := range sections {
		patches = append(patches, sectionToPatch(section, params.MaxStitchLength, params.RowSpacing, normal, params.Staggers, params.Color))
	}
	return patches, nil
}
