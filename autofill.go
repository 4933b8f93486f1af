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
)

// defaultMaxQueueLength bounds the bfsForLoop search queue; it is
// doubled on each retry inside findLoop, following the source's
// bfs_for_loop/find_loop backoff so a hard-to-route region degrades
// to slower search rather than failing outright on the first
// attempt.
const defaultMaxQueueLength = 2000

// maxFindLoopAttempts is how many times findLoop doubles the queue
// cap before giving up and reporting bfs_exhausted.
const maxFindLoopAttempts = 6

// outlineRings returns the shell and holes of poly as a single slice,
// indexable the same way buildFillGraph tags its nodes.
func outlineRings(poly Polygon) []Ring {
	rings := make([]Ring, 0, 1+len(poly.Holes))
	rings = append(rings, poly.Shell)
	rings = append(rings, poly.Holes...)
	return rings
}

// whichOutline returns the index of the outline ring closest to p and
// that ring's arc-length projection of p, used to tag every grating
// run endpoint with its position on the boundary it touches.
func whichOutline(outlines []Ring, p Point) (idx int, arc float64) {
	bestDist := math.Inf(1)
	for i, ring := range outlines {
		d, a := ringDistanceAndArc(ring, p)
		if d < bestDist {
			bestDist = d
			idx = i
			arc = a
		}
	}
	return idx, arc
}

func ringDistanceAndArc(ring Ring, p Point) (dist, arc float64) {
	if len(ring) < 2 {
		return math.Inf(1), 0
	}
	bestD := math.Inf(1)
	bestArc := 0.0
	walked := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		segLen := b.Sub(a).Length()
		t, d2 := closestPointOnSegment(p, a, b)
		if d2 < bestD {
			bestD = d2
			bestArc = walked + t*segLen
		}
		walked += segLen
	}
	return math.Sqrt(bestD), bestArc
}

// autoFillGraph bundles the routing multigraph with the outline rings
// its outline edges reference, since graphEdge only stores an index
// into this slice.
type autoFillGraph struct {
	g        *multiGraph
	outlines []Ring
}

// buildFillGraph builds the Eulerian routing multigraph for an
// auto-fill region: one node per grating-run endpoint (tagged with
// its outline and arc-length position), one "segment" edge per
// grating run, and "outline" edges connecting arc-adjacent nodes
// along each outline, with a duplicate outline edge on alternating
// positions so every node ends up with even degree. This mirrors the
// source's build_graph, simplified per spec §9 to a local adjacency
// map instead of networkx.
func buildFillGraph(poly Polygon, params FillParams) (*autoFillGraph, []Row, error) {
	rows := gratingRows(poly, params.Angle, params.RowSpacing)
	if len(rows) == 0 {
		return nil, rows, nil
	}
	outlines := outlineRings(poly)
	g := newMultiGraph()

	type taggedNode struct {
		idx int
		arc float64
	}
	perOutline := make([][]taggedNode, len(outlines))

	for _, row := range rows {
		for _, run := range row {
			aOutline, aArc := whichOutline(outlines, run.Start)
			bOutline, bArc := whichOutline(outlines, run.End)
			aIdx := g.addNode(run.Start)
			bIdx := g.addNode(run.End)
			g.addEdge(aIdx, bIdx, edgeSegment, run)
			perOutline[aOutline] = append(perOutline[aOutline], taggedNode{aIdx, aArc})
			perOutline[bOutline] = append(perOutline[bOutline], taggedNode{bIdx, bArc})
		}
	}

	for oi, nodes := range perOutline {
		if len(nodes) < 2 {
			continue
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].arc < nodes[j].arc })
		n := len(nodes)
		for i := 0; i < n; i++ {
			a, b := nodes[i], nodes[(i+1)%n]
			addOutlineEdge(g, a.idx, b.idx, oi, a.arc, b.arc)
			// Duplicate every other outline edge so the boundary
			// contributes an even number of edges at each node,
			// mirroring the source's edge_set parity computed from
			// the row index; here approximated by alternating index
			// parity, which achieves the same degree-balancing goal.
			if i%2 == oi%2 {
				addOutlineEdge(g, a.idx, b.idx, oi, a.arc, b.arc)
			}
		}
	}

	if !g.isEulerian() {
		return nil, rows, newError(KindNonEulerianGraph, 0, "", "auto-fill routing graph has odd-degree nodes after outline edge duplication")
	}
	return &autoFillGraph{g: g, outlines: outlines}, rows, nil
}

func addOutlineEdge(g *multiGraph, a, b, outline int, arcA, arcB float64) {
	idx := g.addEdge(a, b, edgeOutline, Run{})
	g.Edges[idx].OutlineIdx = outline
	g.Edges[idx].ArcA = arcA
	g.Edges[idx].ArcB = arcB
}

// bfsPath is one in-flight candidate during bfsForLoop's breadth-
// first search for a cycle back to its starting node.
type bfsPath struct {
	node  int
	nodes []int
	edges []int
}

// bfsForLoop searches, breadth-first and bounded by maxQueueLength,
// for the shortest cycle starting and ending at start that uses only
// currently-unconsumed edges and never repeats an edge within itself.
// Candidate edges at each node are tried segment-edges-first, the
// same bias the source's bfs_for_loop sort key applies so the search
// tends to surface stitchable fill rows before bare outline hops.
func bfsForLoop(g *multiGraph, start, maxQueueLength int) ([]int, []int, error) {
	queue := []bfsPath{{node: start, nodes: []int{start}}}
	for len(queue) > 0 {
		if len(queue) > maxQueueLength {
			return nil, nil, newError(KindBFSExhausted, 0, "", "loop search queue exceeded cap")
		}
		cur := queue[0]
		queue = queue[1:]

		neighbors := g.incident(cur.node)
		sort.Slice(neighbors, func(i, j int) bool {
			return g.Edges[neighbors[i]].Kind == edgeSegment && g.Edges[neighbors[j]].Kind != edgeSegment
		})
		for _, eIdx := range neighbors {
			if containsInt(cur.edges, eIdx) {
				continue
			}
			next := g.other(eIdx, cur.node)
			nodes := append(append([]int{}, cur.nodes...), next)
			edges := append(append([]int{}, cur.edges...), eIdx)
			if next == start {
				if len(edges) <= 1 {
					continue // a single edge leading straight back to start, not a real loop
				}
				return nodes, edges, nil
			}
			queue = append(queue, bfsPath{node: next, nodes: nodes, edges: edges})
		}
	}
	return nil, nil, newError(KindBFSExhausted, 0, "", "no loop found back to start node")
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// findLoop retries bfsForLoop with a doubling queue cap, matching the
// source's find_loop backoff, before giving up with bfs_exhausted.
func findLoop(g *multiGraph, start int) ([]int, []int, error) {
	maxQueueLength := defaultMaxQueueLength
	var err error
	for attempt := 0; attempt < maxFindLoopAttempts; attempt++ {
		var nodes, edges []int
		nodes, edges, err = bfsForLoop(g, start, maxQueueLength)
		if err == nil {
			return nodes, edges, nil
		}
		maxQueueLength *= 2
	}
	return nil, nil, newError(KindBFSExhausted, 0, "", "loop search exhausted all retries: "+err.Error())
}

// findStitchPath builds a full Eulerian circuit of g by starting the
// walk at one endpoint of startEdge, without consuming any edge up
// front, then repeatedly finding and splicing in closed loops at any
// already-visited node that still has unconsumed edges, until every
// edge has been consumed. This is the incremental Hierholzer-style
// construction spec §4.3 calls for in place of networkx's built-in
// Eulerian circuit algorithm.
func findStitchPath(g *multiGraph, startEdge int) ([]int, []int, error) {
	path := []int{g.Edges[startEdge].A}
	var edges []int

	for {
		spliceAt := -1
		for i, n := range path {
			if len(g.incident(n)) > 0 {
				spliceAt = i
				break
			}
		}
		if spliceAt == -1 {
			break
		}
		loopNodes, loopEdges, err := findLoop(g, path[spliceAt])
		if err != nil {
			return nil, nil, err
		}
		for _, idx := range loopEdges {
			g.remove(idx)
		}
		newPath := make([]int, 0, len(path)+len(loopNodes)-1)
		newPath = append(newPath, path[:spliceAt+1]...)
		newPath = append(newPath, loopNodes[1:]...)
		newPath = append(newPath, path[spliceAt+1:]...)

		newEdges := make([]int, 0, len(edges)+len(loopEdges))
		newEdges = append(newEdges, edges[:spliceAt]...)
		newEdges = append(newEdges, loopEdges...)
		newEdges = append(newEdges, edges[spliceAt:]...)

		path, edges = newPath, newEdges
	}
	return path, edges, nil
}

// connectPoints walks outline ring from arcA to arcB, stepping by
// runningStitchLength in whichever direction is shorter, and appends
// the true endpoint if it isn't already within minStitchGap. This
// grounds the source's connect_points.
func connectPoints(ring Ring, arcA, arcB, runningStitchLength float64) []Point {
	total := ring.Length()
	if total <= 0 {
		return nil
	}
	diff := arcB - arcA
	for diff > total/2 {
		diff -= total
	}
	for diff < -total/2 {
		diff += total
	}
	if runningStitchLength <= 0 {
		runningStitchLength = total
	}
	steps := int(math.Abs(diff) / runningStitchLength)
	points := make([]Point, 0, steps+2)
	step := math.Copysign(runningStitchLength, diff)
	pos := arcA
	for i := 0; i < steps; i++ {
		pos += step
		points = append(points, ring.Interpolate(pos))
	}
	end := ring.Interpolate(arcB)
	if len(points) == 0 || end.Sub(points[len(points)-1]).Length() > minStitchGap {
		points = append(points, end)
	}
	return points
}

// pathToPatch walks the Eulerian circuit (nodePath/edgePath as
// produced by findStitchPath) and emits its stitches: segment edges
// stitch their grating run, consecutive outline edges collapse into
// one connecting walk along the boundary, matching path_to_patch's
// dispatch between stitch_row and connect_points.
func pathToPatch(afg *autoFillGraph, nodePath, edgePath []int, params FillParams, color string) Patch {
	normal := Pt(1, 0).Rotate(params.Angle).RotateLeft()
	patch := Patch{Color: color}
	i := 0
	for i < len(edgePath) {
		e := afg.g.Edges[edgePath[i]]
		if e.Kind == edgeSegment {
			run := e.Run
			if nodePath[i] != e.A {
				run = Run{Start: e.Run.End, End: e.Run.Start}
			}
			for _, p := range stitchRun(run, params.MaxStitchLength, params.RowSpacing, normal, params.Staggers) {
				patch.AddStitch(p)
			}
			i++
			continue
		}
		// Collapse a run of consecutive outline edges into a single
		// connecting walk from its first start to its last end,
		// matching collapse_sequential_outline_edges.
		startArc := arcFor(e, nodePath[i])
		j := i
		var lastEdge graphEdge
		for j < len(edgePath) {
			ej := afg.g.Edges[edgePath[j]]
			if ej.Kind != edgeOutline || ej.OutlineIdx != e.OutlineIdx {
				break
			}
			lastEdge = ej
			j++
		}
		endArc := arcFor(lastEdge, nodePath[j])
		for _, p := range connectPoints(afg.outlines[e.OutlineIdx], startArc, endArc, params.MaxStitchLength) {
			patch.AddStitch(p)
		}
		i = j
	}
	return patch
}

func arcFor(e graphEdge, node int) float64 {
	if e.A == node {
		return e.ArcA
	}
	return e.ArcB
}

// doAutoFill runs the full auto-fill routing pipeline for one region:
// build the graph, find the Eulerian circuit, and convert it to a
// patch. If params.UnderlayEnabled, a coarser underlay pass using the
// resolved underlay parameters is emitted first.
func doAutoFill(poly Polygon, params AutoFillParams, startingPoint *Point) ([]Patch, error) {
	if params.RowSpacing <= 0 || params.MaxStitchLength <= 0 {
		return nil, newError(KindDegenerateParameters, 0, "", "row_spacing and max_stitch_length must be positive")
	}

	var patches []Patch
	if params.UnderlayEnabled {
		underlay := params.ResolvedUnderlay()
		underlayPatches, err := doAutoFillPass(poly, underlay)
		if err != nil {
			return nil, err
		}
		patches = append(patches, underlayPatches...)
	}

	topPatches, err := doAutoFillPass(poly, params.FillParams)
	if err != nil {
		return nil, err
	}

	if startingPoint != nil && len(topPatches) > 0 {
		bridge := crossRegionBridge(poly, *startingPoint, topPatches[0].Stitches[0].Point, params.RunningStitchLength, params.Color)
		if len(bridge.Stitches) > 0 {
			patches = append(patches, bridge)
		}
	}

	return append(patches, topPatches...), nil
}

func doAutoFillPass(poly Polygon, params FillParams) ([]Patch, error) {
	afg, _, err := buildFillGraph(poly, params)
	if err != nil {
		return nil, err
	}
	if afg == nil || len(afg.g.Edges) == 0 {
		return nil, nil
	}
	startEdge := -1
	for idx, e := range afg.g.Edges {
		if e.Kind == edgeSegment {
			startEdge = idx
			break
		}
	}
	if startEdge == -1 {
		return nil, nil
	}
	nodePath, edgePath, err := findStitchPath(afg.g, startEdge)
	if err != nil {
		return nil, err
	}
	patch := pathToPatch(afg, nodePath, edgePath, params, params.Color)
	return []Patch{patch}, nil
}

// crossRegionBridge produces a running-stitch patch connecting the
// last stitch of a previous region's patch to the start of this
// auto-fill region, by projecting both onto the region's shell and
// walking the shorter arc between them. This is the generalized
// cross-region seeding described by SPEC_FULL's "Cross-region
// seeding" supplement, grounded on the source's AutoFill.to_patches
// nearest_point/outline.interpolate(outline.project(...)) call.
func crossRegionBridge(poly Polygon, from, to Point, runningStitchLength float64, color string) Patch {
	shell := poly.Shell
	arcFrom := shell.Project(from)
	arcTo := shell.Project(to)
	patch := Patch{Color: color}
	for _, p := range connectPoints(shell, arcFrom, arcTo, runningStitchLength) {
		patch.AddStitch(p)
	}
	return patch
}
