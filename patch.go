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

// Stitch is a single needle placement: a location plus a flag marking
// whether the machine should travel to it with the needle up (a
// "jump") rather than stitching through it.
type Stitch struct {
	Point Point
	Jump  bool
}

// Patch is a maximal run of stitches sharing one thread color, the
// unit every region-processing function builds and returns. Patches
// from different regions are concatenated by the driver into the
// final stream.
type Patch struct {
	Color    string
	Stitches []Stitch
}

// AddStitch appends a plain (non-jump) stitch at p.
func (patch *Patch) AddStitch(p Point) {
	patch.Stitches = append(patch.Stitches, Stitch{Point: p})
}

// AddJump appends a jump stitch at p.
func (patch *Patch) AddJump(p Point) {
	patch.Stitches = append(patch.Stitches, Stitch{Point: p, Jump: true})
}

// Last returns the final stitch's point. Panics on an empty patch, by
// design: every caller that asks for Last has just finished building
// or walking a non-empty patch.
func (patch *Patch) Last() Point {
	return patch.Stitches[len(patch.Stitches)-1].Point
}

// Empty reports whether the patch has no stitches yet.
func (patch *Patch) Empty() bool {
	return len(patch.Stitches) == 0
}

// Reverse returns a new Patch with the same color and stitches in
// reverse order. Used when a satin rail or connecting path needs to
// be walked back-to-front to keep needle travel continuous.
func (patch *Patch) Reverse() Patch {
	out := Patch{Color: patch.Color, Stitches: make([]Stitch, len(patch.Stitches))}
	n := len(patch.Stitches)
	for i, s := range patch.Stitches {
		out.Stitches[n-1-i] = s
	}
	return out
}

// Append concatenates other's stitches onto patch, in place.
func (patch *Patch) Append(other Patch) {
	patch.Stitches = append(patch.Stitches, other.Stitches...)
}

// collapseLenDefault is the distance, in px, below which a same-color
// jump between two patches is demoted to a plain stitch when
// AssembleStitches is given a non-positive collapseLen: the needle
// travel is short enough that stitching through it costs nothing extra
// and avoids a gratuitous thread trim.
const collapseLenDefault = 0.3 * mmToPx // overridden by the driver's configured collapse length

// dedupeEpsilon is the distance (0.1 px) below which two consecutive
// stitches are considered coincident and the second is dropped.
const dedupeEpsilon = 0.1

// AssembleStitches concatenates patches into a single ordered stitch
// stream. The first stitch of a patch becomes a jump when the
// previous patch ended in a different color or is far enough away;
// same-color jumps shorter than collapseLen are turned into plain
// stitches, and a stitch that duplicates the immediately preceding
// point (within dedupeEpsilon) is dropped. This follows the source's
// patches_to_stitches.
func AssembleStitches(patches []Patch, collapseLen float64) []Stitch {
	if collapseLen <= 0 {
		collapseLen = collapseLenDefault
	}
	var out []Stitch
	var prevColor string
	haveLast := false
	var last Point

	for pi, patch := range patches {
		if patch.Empty() {
			continue
		}
		for si, st := range patch.Stitches {
			isFirstOfPatch := si == 0
			jump := st.Jump
			if isFirstOfPatch && pi > 0 && haveLast {
				sameColor := patch.Color == prevColor
				dist := st.Point.Sub(last).Length()
				if !sameColor || dist > dedupeEpsilon {
					jump = true
				}
				if sameColor && dist <= collapseLen {
					jump = false
				}
			}
			if haveLast && st.Point.Sub(last).Length() <= dedupeEpsilon {
				continue
			}
			out = append(out, Stitch{Point: st.Point, Jump: jump})
			last = st.Point
			haveLast = true
		}
		prevColor = patch.Color
	}
	return out
}
