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

// Per spec §9 REDESIGN ("the core graph is tiny and domain-specific;
// building it directly as an adjacency-list multigraph in the target
// language, without a general-purpose graph library, is both simpler
// and more transparent"), the auto-fill routing graph is a small
// local adjacency-map multigraph rather than an import of a
// general-purpose graph package. github.com/katalvlaran/lvlath, a
// real multigraph library surfaced elsewhere in the retrieved
// examples, was considered and set aside for exactly this reason; see
// DESIGN.md.

// edgeKind distinguishes a grating-row stitch edge from an
// outline-following edge in the auto-fill multigraph.
type edgeKind int

const (
	edgeSegment edgeKind = iota // a grating row run: must be stitched as a zig-zag fill row
	edgeOutline                 // a step between adjacent projected nodes along one outline
)

// graphEdge is one edge of the multigraph. Parallel edges between the
// same pair of nodes are represented as distinct entries, never
// merged, since the Eulerian circuit construction depends on their
// multiplicity.
type graphEdge struct {
	A, B    int
	Kind    edgeKind
	Run     Run // populated when Kind == edgeSegment

	// Populated when Kind == edgeOutline: which outline ring the edge
	// follows and the arc-length span it covers, so a chain of
	// outline edges can be walked with Ring.Interpolate.
	OutlineIdx int
	ArcA, ArcB float64

	removed bool
}

// multiGraph is an undirected multigraph over a fixed set of nodes
// (Points), stored as an adjacency map from node index to incident
// edge indices.
type multiGraph struct {
	Nodes []Point
	Edges []graphEdge
	adj   map[int][]int
}

func newMultiGraph() *multiGraph {
	return &multiGraph{adj: make(map[int][]int)}
}

func (g *multiGraph) addNode(p Point) int {
	g.Nodes = append(g.Nodes, p)
	return len(g.Nodes) - 1
}

func (g *multiGraph) addEdge(a, b int, kind edgeKind, run Run) int {
	idx := len(g.Edges)
	g.Edges = append(g.Edges, graphEdge{A: a, B: b, Kind: kind, Run: run})
	g.adj[a] = append(g.adj[a], idx)
	g.adj[b] = append(g.adj[b], idx)
	return idx
}

// degree returns the number of non-removed edges incident to node n.
func (g *multiGraph) degree(n int) int {
	d := 0
	for _, idx := range g.adj[n] {
		if !g.Edges[idx].removed {
			d++
		}
	}
	return d
}

// isEulerian reports whether every node with at least one incident
// edge has even degree, the standard necessary-and-sufficient
// condition (given connectivity, which buildFillGraph guarantees by
// construction) for an Eulerian circuit to exist.
func (g *multiGraph) isEulerian() bool {
	for n := range g.Nodes {
		if g.degree(n)%2 != 0 {
			return false
		}
	}
	return true
}

// incident returns the non-removed edge indices at node n.
func (g *multiGraph) incident(n int) []int {
	var out []int
	for _, idx := range g.adj[n] {
		if !g.Edges[idx].removed {
			out = append(out, idx)
		}
	}
	return out
}

// other returns the endpoint of edge idx that is not n.
func (g *multiGraph) other(idx, n int) int {
	e := g.Edges[idx]
	if e.A == n {
		return e.B
	}
	return e.A
}

// remove marks edge idx as consumed. Consumed edges are skipped by
// degree/incident but remain in Edges so path reconstruction can
// still reference them by index.
func (g *multiGraph) remove(idx int) {
	g.Edges[idx].removed = true
}

// restore un-marks edge idx, returning it to the pool of unconsumed
// edges. The loop search never removes edges tentatively, so nothing
// in the routing code calls it.
func (g *multiGraph) restore(idx int) {
	g.Edges[idx].removed = false
}
