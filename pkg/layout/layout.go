package layout

import (
	"github.com/matzehuels/diaflow/pkg/dag"
	"github.com/matzehuels/diaflow/pkg/diagram"
	"github.com/matzehuels/diaflow/pkg/graph"
)

// Options configures a layout run. The zero value auto-detects everything.
type Options struct {
	// Kind overrides auto-detection of the layout profile.
	Kind diagram.Kind
	// Sweeps overrides the number of ordering passes (0 = engine default).
	Sweeps int
}

// Layout computes positions for every input node and returns a new node
// list; the input is never mutated. Returns an empty slice for empty input.
//
// Edges whose source or target is not among the supplied nodes are excluded
// from the layout graph - a dangling edge must not fail the layout - but the
// caller's edge list is untouched; only the ranking step ignores them.
//
// The engine produces a rank and an intra-rank offset per node; this layer
// converts them to top-left anchored coordinates using each node's own
// shape-specific bounding box. For any two nodes in different ranks or
// different intra-rank positions, those bounding boxes do not overlap.
func Layout(nodes []graph.Node, edges []graph.Edge, opts Options) []graph.Node {
	if len(nodes) == 0 {
		return []graph.Node{}
	}

	kind := opts.Kind
	if kind == "" {
		kind = DetectKind(nodes)
	}
	profile := ProfileFor(kind)

	g := dag.New()
	for _, n := range nodes {
		// Duplicate IDs collapse onto one layout slot.
		_ = g.AddNode(dag.Node{ID: n.ID})
	}
	for _, e := range edges {
		_, okSrc := g.Node(e.Source)
		_, okDst := g.Node(e.Target)
		if !okSrc || !okDst || e.Source == e.Target {
			continue // dangling or self-referential: layout ignores it
		}
		_ = g.AddEdge(dag.Edge{From: e.Source, To: e.Target})
	}

	dag.BreakCycles(g)
	dag.AssignLayers(g)
	orders := dag.OrderRows(g, opts.Sweeps)

	centers := placeCenters(g, orders, profile, nodes)

	out := graph.CloneNodes(nodes)
	for i := range out {
		c := centers[out[i].ID]
		size := profile.SizeFor(out[i].Type)
		out[i].Position = graph.Position{
			X: c.X - size.W/2,
			Y: c.Y - size.H/2,
		}
	}
	return out
}

// placeCenters converts rank/order assignments to center coordinates.
// Ranks advance along the main axis by the tallest (or widest) box in the
// preceding rank plus the rank gap; within a rank, boxes are packed with a
// constant gap between adjacent bounding boxes, which is what makes the
// within-rank spacing uniform.
func placeCenters(g *dag.DAG, orders map[int][]string, profile Profile, nodes []graph.Node) map[string]graph.Position {
	shapes := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if _, seen := shapes[n.ID]; !seen {
			shapes[n.ID] = n.Type
		}
	}

	centers := make(map[string]graph.Position, len(nodes))
	mainCursor := 0.0

	for _, row := range g.RowIDs() {
		order := orders[row]

		// Extent of this rank along the main axis.
		rankExtent := 0.0
		for _, id := range order {
			size := profile.SizeFor(shapes[id])
			extent := size.H
			if profile.Direction == LeftToRight {
				extent = size.W
			}
			if extent > rankExtent {
				rankExtent = extent
			}
		}

		crossCursor := 0.0
		for _, id := range order {
			size := profile.SizeFor(shapes[id])
			crossExtent := size.W
			if profile.Direction == LeftToRight {
				crossExtent = size.H
			}

			main := mainCursor + rankExtent/2
			cross := crossCursor + crossExtent/2
			crossCursor += crossExtent + profile.NodeSpacing

			if profile.Direction == LeftToRight {
				centers[id] = graph.Position{X: main, Y: cross}
			} else {
				centers[id] = graph.Position{X: cross, Y: main}
			}
		}

		mainCursor += rankExtent + profile.RankSpacing
	}

	return centers
}
