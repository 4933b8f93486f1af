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

// Package fixtures holds the named geometry scenarios used by this
// module's tests: a registry keyed by name, grouped by category, the
// same shape as the teacher's own testcases package (TestCase{Name,
// Path, Op, CTM} grouped into All by category) adapted from
// "render a path under fill/stroke" fixtures to "route a classified
// region" fixtures.
package fixtures

import (
	"math"

	"github.com/christophmuellerorg/inkstitch"
)

// Fixture is one named scenario: a region descriptor plus a
// human-readable name, analogous to the teacher's TestCase.
type Fixture struct {
	Name   string
	Region inkstitch.DocumentRegion
}

// All groups every fixture by category, mirroring the teacher's All
// map of []TestCase keyed by category name.
var All = map[string][]Fixture{
	"fill":  {UnitSquare(), DiagonalSquare(), AbuttingRectangleLeft(), AbuttingRectangleRight()},
	"auto_fill": {Annulus()},
	"satin": {StraightSatin(), CurvedSatin()},
}

func pt(x, y float64) inkstitch.Point {
	return inkstitch.Pt(x, y)
}

// UnitSquare is a 100x100px axis-aligned square fill region: the
// simplest possible grating target, every row a single full-width
// run.
func UnitSquare() Fixture {
	ring := inkstitch.Ring{pt(0, 0), pt(100, 0), pt(100, 100), pt(0, 100)}
	return Fixture{
		Name: "unit_square",
		Region: inkstitch.DocumentRegion{
			Kind:    inkstitch.RegionFill,
			Name:    "unit_square",
			Polygon: inkstitch.NewPolygon([]inkstitch.Ring{ring}),
			FillParams: inkstitch.FillParams{
				Color:           "black",
				Angle:           0,
				RowSpacing:      10,
				MaxStitchLength: 30,
				Staggers:        4,
			},
		},
	}
}

// DiagonalSquare is the same square as UnitSquare but stitched with
// rows at 45 degrees, exercising the grating's rotated-frame
// intersection path rather than the axis-aligned special case.
func DiagonalSquare() Fixture {
	ring := inkstitch.Ring{pt(0, 0), pt(100, 0), pt(100, 100), pt(0, 100)}
	return Fixture{
		Name: "diagonal_square",
		Region: inkstitch.DocumentRegion{
			Kind:    inkstitch.RegionFill,
			Name:    "diagonal_square",
			Polygon: inkstitch.NewPolygon([]inkstitch.Ring{ring}),
			FillParams: inkstitch.FillParams{
				Color:           "black",
				Angle:           0.7853981633974483, // pi/4
				RowSpacing:      10,
				MaxStitchLength: 30,
				Staggers:        4,
			},
		},
	}
}

// abuttingRectangleParams is the shared row geometry both halves of
// the abutting-rectangle pair stitch with: they must agree on it for
// the shared row edge at x=100 to line up.
var abuttingRectangleParams = inkstitch.FillParams{
	Color:           "black",
	Angle:           0,
	RowSpacing:      10,
	MaxStitchLength: 30,
	Staggers:        4,
}

// AbuttingRectangleLeft and AbuttingRectangleRight are two separate
// fill regions, neither anchored at the origin on its own shared edge,
// that together cover x in [0,200]: left spans x in [0,100], right
// spans x in [100,200]. Stitched independently with the same row
// geometry, the two must still land on the same stagger-adjusted grid
// along the row they share at x=100, since row_number and the stagger
// phase are derived from each stitch's own absolute position rather
// than from either rectangle's own local start.
func AbuttingRectangleLeft() Fixture {
	ring := inkstitch.Ring{pt(0, 0), pt(100, 0), pt(100, 100), pt(0, 100)}
	return Fixture{
		Name: "abutting_rectangle_left",
		Region: inkstitch.DocumentRegion{
			Kind:       inkstitch.RegionFill,
			Name:       "abutting_rectangle_left",
			Polygon:    inkstitch.NewPolygon([]inkstitch.Ring{ring}),
			FillParams: abuttingRectangleParams,
		},
	}
}

func AbuttingRectangleRight() Fixture {
	ring := inkstitch.Ring{pt(100, 0), pt(200, 0), pt(200, 100), pt(100, 100)}
	return Fixture{
		Name: "abutting_rectangle_right",
		Region: inkstitch.DocumentRegion{
			Kind:       inkstitch.RegionFill,
			Name:       "abutting_rectangle_right",
			Polygon:    inkstitch.NewPolygon([]inkstitch.Ring{ring}),
			FillParams: abuttingRectangleParams,
		},
	}
}

// Annulus is a ring-shaped region (an outer square shell with a
// smaller square hole) routed by the auto-fill engine, exercising
// multi-outline graph construction: the routing path must cross
// between the outer and inner boundary via grating rows rather than
// ever jumping across the hole.
func Annulus() Fixture {
	shell := inkstitch.Ring{pt(0, 0), pt(200, 0), pt(200, 200), pt(0, 200)}
	hole := inkstitch.Ring{pt(140, 60), pt(140, 140), pt(60, 140), pt(60, 60)}
	poly := inkstitch.NewPolygon([]inkstitch.Ring{shell, hole})
	return Fixture{
		Name: "annulus",
		Region: inkstitch.DocumentRegion{
			Kind:    inkstitch.RegionAutoFill,
			Name:    "annulus",
			Polygon: poly,
			AutoFillParams: inkstitch.AutoFillParams{
				FillParams: inkstitch.FillParams{
					Color:           "black",
					Angle:           0,
					RowSpacing:      10,
					MaxStitchLength: 30,
					Staggers:        4,
				},
				RunningStitchLength: 15,
			},
		},
	}
}

// StraightSatin is a simple satin column between two straight
// parallel rails 20px apart, the baseline case for walkPaths/do_satin
// with no rungs.
func StraightSatin() Fixture {
	rail1 := inkstitch.Path{pt(0, 0), pt(100, 0)}
	rail2 := inkstitch.Path{pt(0, 20), pt(100, 20)}
	return Fixture{
		Name: "straight_satin",
		Region: inkstitch.DocumentRegion{
			Kind: inkstitch.RegionSatinColumn,
			Name: "straight_satin",
			Satin: inkstitch.SatinColumn{
				Rail1: rail1,
				Rail2: rail2,
			},
			SatinParams: inkstitch.SatinParams{
				Color:               "black",
				ZigzagSpacing:       4,
				ContourUnderlay:     true,
				ContourUnderlayInset: 2,
				RunningStitchLength: 15,
			},
		},
	}
}

// CurvedSatin pairs two rails that bow toward each other (mirror
// images of equal length that meet at x=50), exercising walkPaths and
// the pull-compensation offset on a genuinely curved, not just
// offset-straight, column.
func CurvedSatin() Fixture {
	rail1 := make(inkstitch.Path, 0, 11)
	rail2 := make(inkstitch.Path, 0, 11)
	for i := 0; i <= 10; i++ {
		x := float64(i) * 10
		rail1 = append(rail1, pt(x, 10*math.Sin(x/100*math.Pi)))
		rail2 = append(rail2, pt(x, 20-10*math.Sin(x/100*math.Pi)))
	}
	return Fixture{
		Name: "curved_satin",
		Region: inkstitch.DocumentRegion{
			Kind: inkstitch.RegionSatinColumn,
			Name: "curved_satin",
			Satin: inkstitch.SatinColumn{
				Rail1: rail1,
				Rail2: rail2,
			},
			SatinParams: inkstitch.SatinParams{
				Color:            "black",
				ZigzagSpacing:    4,
				PullCompensation: 0.5,
			},
		},
	}
}
