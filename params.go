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

// ParamType names the primitive type a ParamDescriptor's default and
// runtime value take. It exists purely for an external configuration
// UI to render the right widget; this package never inspects it.
type ParamType int

const (
	ParamFloat ParamType = iota
	ParamInt
	ParamBool
)

// ParamDescriptor documents one field of one of the Params structs
// below, replacing the source's reflection-driven @param decorator
// inventory (spec §9 REDESIGN) with a plain, explicit table an
// external CLI or UI layer can walk without importing this package's
// internal struct layouts.
type ParamDescriptor struct {
	Name        string
	Group       string // "fill", "auto_fill", "satin_column", "stroke"
	Unit        string // "mm", "px", "count", ""
	Type        ParamType
	Default     float64
	Description string
}

// ParamTable enumerates every tunable parameter across all four
// region kinds, in the same grouping the source's Param decorators
// used (fill, then auto-fill underlay, then satin, then stroke).
var ParamTable = []ParamDescriptor{
	{Name: "angle", Group: "fill", Unit: "rad", Type: ParamFloat, Default: 0, Description: "row direction"},
	{Name: "row_spacing", Group: "fill", Unit: "px", Type: ParamFloat, Default: 0.25 * mmToPx, Description: "spacing between rows"},
	{Name: "max_stitch_length", Group: "fill", Unit: "px", Type: ParamFloat, Default: 3.0 * mmToPx, Description: "maximum stitch length along a row"},
	{Name: "staggers", Group: "fill", Unit: "count", Type: ParamInt, Default: 4, Description: "number of staggered stitch phases"},
	{Name: "flip", Group: "fill", Unit: "", Type: ParamBool, Default: 0, Description: "reverse row traversal order"},

	{Name: "fill_underlay", Group: "auto_fill", Unit: "", Type: ParamBool, Default: 0, Description: "emit an underlay fill pass first"},
	{Name: "fill_underlay_angle", Group: "auto_fill", Unit: "rad", Type: ParamFloat, Default: 0, Description: "underlay row direction, default perpendicular to the top fill"},
	{Name: "fill_underlay_row_spacing", Group: "auto_fill", Unit: "px", Type: ParamFloat, Default: 0, Description: "underlay row spacing, default 3x the top fill's"},
	{Name: "fill_underlay_max_stitch_length", Group: "auto_fill", Unit: "px", Type: ParamFloat, Default: 0, Description: "underlay max stitch length, default same as top fill"},
	{Name: "running_stitch_length", Group: "auto_fill", Unit: "px", Type: ParamFloat, Default: 1.5 * mmToPx, Description: "stitch length of the running-stitch bridge from the previous region; outline-following connectors inside the region step by max_stitch_length"},

	{Name: "zigzag_spacing", Group: "satin_column", Unit: "px", Type: ParamFloat, Default: 0.4 * mmToPx, Description: "spacing between paired rail crossings"},
	{Name: "pull_compensation", Group: "satin_column", Unit: "px", Type: ParamFloat, Default: 0, Description: "outward offset added to each rail to counteract thread pull-in"},
	{Name: "contour_underlay", Group: "satin_column", Unit: "", Type: ParamBool, Default: 1, Description: "emit a contour underlay pass"},
	{Name: "contour_underlay_inset", Group: "satin_column", Unit: "px", Type: ParamFloat, Default: 0.4 * mmToPx, Description: "inward offset of the contour underlay from the rails"},
	{Name: "contour_underlay_stitch_length", Group: "satin_column", Unit: "px", Type: ParamFloat, Default: 0, Description: "contour underlay stitch spacing, default the running stitch length"},
	{Name: "center_walk_underlay", Group: "satin_column", Unit: "", Type: ParamBool, Default: 0, Description: "emit a centerline walk underlay pass"},
	{Name: "center_walk_underlay_stitch_length", Group: "satin_column", Unit: "px", Type: ParamFloat, Default: 0, Description: "center-walk underlay stitch spacing, default the running stitch length"},
	{Name: "zigzag_underlay", Group: "satin_column", Unit: "", Type: ParamBool, Default: 0, Description: "emit a zig-zag underlay pass"},
	{Name: "zigzag_underlay_spacing", Group: "satin_column", Unit: "px", Type: ParamFloat, Default: 0, Description: "zig-zag underlay spacing, default 2x the satin spacing"},
	{Name: "zigzag_underlay_inset", Group: "satin_column", Unit: "px", Type: ParamFloat, Default: 0, Description: "inward offset of the zig-zag underlay from the rails"},

	{Name: "width", Group: "stroke", Unit: "px", Type: ParamFloat, Default: 0.4 * mmToPx, Description: "stroke width; widths at or below 0.5mm force running-stitch mode"},
	{Name: "dashed", Group: "stroke", Unit: "", Type: ParamBool, Default: 0, Description: "force running-stitch mode regardless of width"},
	{Name: "stroke_running_stitch_length", Group: "stroke", Unit: "px", Type: ParamFloat, Default: 1.5 * mmToPx, Description: "stitch length in running-stitch mode"},
	{Name: "stroke_zigzag_spacing", Group: "stroke", Unit: "px", Type: ParamFloat, Default: 0.4 * mmToPx, Description: "peak-to-peak spacing in zig-zag mode"},
	{Name: "repeats", Group: "stroke", Unit: "count", Type: ParamInt, Default: 1, Description: "number of forward/backward traversals of the stroke path"},
}

// mmToPx is the default px-per-mm used to express ParamTable defaults
// and the package's fixed millimetre thresholds (minStitchGap,
// collapseLenDefault, the running-stitch width limit) in px; callers
// always work in px, the package's one unit.
const mmToPx = 10.0

// FillParams configures a plain fill region (§4.2).
type FillParams struct {
	Color           string
	Angle           float64
	RowSpacing      float64
	MaxStitchLength float64
	Staggers        int
	Flip            bool
}

// AutoFillParams configures an auto-routed fill region (§4.3). The
// embedded FillParams supplies the top-stitch row geometry; the
// Underlay* fields, when UnderlayEnabled is set, describe a coarser
// first pass at a different (by default perpendicular) angle.
type AutoFillParams struct {
	FillParams
	RunningStitchLength    float64
	UnderlayEnabled        bool
	UnderlayAngle          float64
	UnderlayRowSpacing     float64
	UnderlayMaxStitchLength float64
}

// ResolvedUnderlay fills in the zero-valued Underlay* fields with the
// source's defaults (perpendicular angle, 3x row spacing, same max
// stitch length) and returns the effective underlay parameters.
func (p AutoFillParams) ResolvedUnderlay() FillParams {
	u := FillParams{
		Color:           p.Color,
		Angle:           p.UnderlayAngle,
		RowSpacing:      p.UnderlayRowSpacing,
		MaxStitchLength: p.UnderlayMaxStitchLength,
		Staggers:        p.Staggers,
	}
	if u.Angle == 0 {
		u.Angle = p.Angle + halfPi
	}
	if u.RowSpacing == 0 {
		u.RowSpacing = p.RowSpacing * 3
	}
	if u.MaxStitchLength == 0 {
		u.MaxStitchLength = p.MaxStitchLength
	}
	return u
}

const halfPi = 1.5707963267948966

// SatinParams configures a satin column region (§4.4).
type SatinParams struct {
	Color                      string
	ZigzagSpacing              float64
	PullCompensation           float64
	ContourUnderlay            bool
	ContourUnderlayInset       float64
	ContourUnderlayStitchLength float64
	CenterWalkUnderlay         bool
	CenterWalkUnderlayStitchLength float64
	ZigzagUnderlay             bool
	ZigzagUnderlaySpacing      float64
	ZigzagUnderlayInset        float64
	RunningStitchLength        float64
}

// resolvedContourUnderlayStitchLength and resolvedCenterWalkUnderlayStitchLength
// fall back to RunningStitchLength when left unset, matching the
// source's contour_underlay_stitch_length/center_walk_underlay_stitch_length
// properties, which default to the region's general running stitch
// length.
func (p SatinParams) resolvedContourUnderlayStitchLength() float64 {
	if p.ContourUnderlayStitchLength > 0 {
		return p.ContourUnderlayStitchLength
	}
	return p.RunningStitchLength
}

func (p SatinParams) resolvedCenterWalkUnderlayStitchLength() float64 {
	if p.CenterWalkUnderlayStitchLength > 0 {
		return p.CenterWalkUnderlayStitchLength
	}
	return p.RunningStitchLength
}

// StrokeParams configures a stroke region (§6).
type StrokeParams struct {
	Color               string
	Width               float64
	Dashed              bool
	RunningStitchLength float64
	ZigzagSpacing       float64
	Repeats             int
}

// IsRunningStitch reports whether this stroke should be rendered as a
// single running-stitch line rather than a zig-zag, matching the
// source's is_running_stitch = dashed or width <= 0.5mm rule (here
// expressed directly in px via the 0.5mm*mmToPx threshold).
func (p StrokeParams) IsRunningStitch() bool {
	return p.Dashed || p.Width <= 0.5*mmToPx
}
