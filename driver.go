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

// RegionKind is the classification a region carries into the driver.
// Vector-document parsing and the satin-beats-fill, stroke-appended
// classification rule itself are performed upstream of this package
// (spec §1); RegionKind is the result of that classification.
type RegionKind int

const (
	RegionFill RegionKind = iota
	RegionAutoFill
	RegionSatinColumn
	RegionStroke
)

func (k RegionKind) String() string {
	switch k {
	case RegionFill:
		return "fill"
	case RegionAutoFill:
		return "auto_fill"
	case RegionSatinColumn:
		return "satin_column"
	case RegionStroke:
		return "stroke"
	default:
		return "unknown"
	}
}

// DocumentRegion is one already-classified shape handed to the
// driver: exactly one of Polygon, Satin, or Stroke is populated,
// depending on Kind, alongside that kind's parameter record.
type DocumentRegion struct {
	Kind RegionKind
	Name string

	Polygon Polygon       // RegionFill, RegionAutoFill
	Satin   SatinColumn   // RegionSatinColumn
	Stroke  Path          // RegionStroke

	FillParams     FillParams
	AutoFillParams AutoFillParams
	SatinParams    SatinParams
	StrokeParams   StrokeParams
}

// OrderRegions reorders regions so that all stroke regions come first
// when strokeFirst is set, matching the source's stroke_first flag
// (detect_classes appends strokes after fills/satins by default, and
// reverses that when the document asks for strokes underneath).
func OrderRegions(regions []DocumentRegion, strokeFirst bool) []DocumentRegion {
	if !strokeFirst {
		return regions
	}
	strokes := make([]DocumentRegion, 0, len(regions))
	others := make([]DocumentRegion, 0, len(regions))
	for _, r := range regions {
		if r.Kind == RegionStroke {
			strokes = append(strokes, r)
		} else {
			others = append(others, r)
		}
	}
	return append(strokes, others...)
}

// ProcessDocument runs every region through its matching engine in
// order, threading the previous region's last patch into each
// auto-fill region so it can seed a running-stitch bridge from
// wherever the needle currently is (spec §4.3 cross-region seeding),
// and assembles the result into one ordered stitch stream. collapseLen
// is the same-color jump collapse threshold passed to AssembleStitches.
func ProcessDocument(regions []DocumentRegion, collapseLen float64) ([]Stitch, error) {
	var patches []Patch
	var lastPatch *Patch

	for i, region := range regions {
		regionPatches, err := processRegion(region, lastPatch)
		if err != nil {
			if ie, ok := err.(*Error); ok {
				ie.RegionIndex = i
				if ie.RegionName == "" {
					ie.RegionName = region.Name
				}
				return nil, ie
			}
			return nil, err
		}
		patches = append(patches, regionPatches...)
		if len(regionPatches) > 0 {
			last := regionPatches[len(regionPatches)-1]
			lastPatch = &last
		}
		logger().Info("processed region", "index", i, "name", region.Name, "kind", region.Kind.String())
	}

	return AssembleStitches(patches, collapseLen), nil
}

func processRegion(region DocumentRegion, lastPatch *Patch) ([]Patch, error) {
	switch region.Kind {
	case RegionFill:
		return FillRegion(region.Polygon, region.FillParams)
	case RegionAutoFill:
		var startingPoint *Point
		if lastPatch != nil && !lastPatch.Empty() {
			p := lastPatch.Last()
			startingPoint = &p
		}
		return doAutoFill(region.Polygon, region.AutoFillParams, startingPoint)
	case RegionSatinColumn:
		return SatinRegion(region.Satin, region.SatinParams)
	case RegionStroke:
		return StrokeRegion(region.Stroke, region.StrokeParams)
	default:
		return nil, newError(KindInvalidGeometry, 0, region.Name, "unknown region kind")
	}
}
