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

// StrokeRegion stitches an open (or closed, walked as open) path as a
// stroke element: a running stitch when params.IsRunningStitch is
// true (dashed, or width at or below 0.5mm), otherwise a zig-zag of
// the configured width, repeated params.Repeats times with the
// direction alternating forward/backward on odd repeats. This
// grounds Stroke.to_patches/stroke_points.
func StrokeRegion(path Path, params StrokeParams) ([]Patch, error) {
	if len(path) < 2 {
		return nil, newError(KindInvalidGeometry, 0, "", "stroke path needs at least two points")
	}
	repeats := params.Repeats
	if repeats <= 0 {
		repeats = 1
	}

	patches := make([]Patch, 0, repeats)
	for r := 0; r < repeats; r++ {
		p := path
		if r%2 == 1 {
			p = reversePath(path)
		}
		var pts []Point
		if params.IsRunningStitch() {
			pts = runningStitchPoints(p, params.RunningStitchLength)
		} else {
			pts = zigzagPoints(p, params.ZigzagSpacing, params.Width)
		}
		patches = append(patches, pointsToPatch(pts, params.Color))
	}
	return patches, nil
}

// runningStitchPoints resamples path at even arc-length intervals of
// stitchLength, always including the true final point.
func runningStitchPoints(path Path, stitchLength float64) []Point {
	total := path.Length()
	if total <= 0 || stitchLength <= 0 {
		return []Point(path)
	}
	n := int(total / stitchLength)
	pts := make([]Point, 0, n+2)
	for i := 0; i <= n; i++ {
		p, _ := path.PointAt(float64(i) * stitchLength)
		pts = append(pts, p)
	}
	last := path[len(path)-1]
	if len(pts) == 0 || last.Sub(pts[len(pts)-1]).Length() > minStitchGap {
		pts = append(pts, last)
	}
	return pts
}

// zigzagPoints resamples path at even arc-length intervals of
// spacing, alternating an offset of +-width/2 along the local normal
// at each sample, producing the characteristic zig-zag stroke.
// Grounds stroke_points's side-alternating perpendicular offset.
func zigzagPoints(path Path, spacing, width float64) []Point {
	total := path.Length()
	if total <= 0 || spacing <= 0 {
		return []Point(path)
	}
	n := int(total / spacing)
	pts := make([]Point, 0, n+2)
	side := 1.0
	for i := 0; i <= n; i++ {
		dist := float64(i) * spacing
		p, segIdx := path.PointAt(dist)
		normal := segmentTangent(path, segIdx).RotateLeft()
		pts = append(pts, p.Add(normal.Scale(side*width/2)))
		side = -side
	}
	return pts
}

// segmentTangent returns the unit tangent of path's segment idx,
// clamped to the path's valid segment range. A zero-length path
// segment (coincident control points) falls back to the prior
// segment's direction rather than producing a zero normal.
func segmentTangent(path Path, idx int) Point {
	if idx < 0 {
		idx = 0
	}
	if idx > len(path)-2 {
		idx = len(path) - 2
	}
	if idx < 0 {
		return Pt(1, 0)
	}
	t := path[idx+1].Sub(path[idx]).Unit()
	if t.Length() < zeroLengthEpsilon && idx > 0 {
		return segmentTangent(path, idx-1)
	}
	return t
}

func reversePath(p Path) Path {
	out := make(Path, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}
