package dag

import "slices"

// CountLayerCrossings counts edge crossings between two adjacent rows using
// a Fenwick tree (binary indexed tree) for O(E log V) performance, where E
// is the number of edges between the rows and V the size of the lower row.
//
// Two edges (u1,v1) and (u2,v2) cross iff pos(u1) < pos(u2) and
// pos(v1) > pos(v2), which reduces to counting inversions in the sequence
// of target positions when edges are sorted by source position.
//
// Returns 0 if either row is empty.
func CountLayerCrossings(g *DAG, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)

	type edge struct{ upper, lower int }
	edges := make([]edge, 0, len(upper)*2)
	for i, nodeID := range upper {
		for _, child := range g.Children(nodeID) {
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		// Count edges seen so far with target <= e.lower
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

// CountCrossings sums the crossings between every pair of consecutive rows
// for the given orderings. Rows absent from the map are treated as empty.
func CountCrossings(g *DAG, orders map[int][]string) int {
	rows := g.RowIDs()
	crossings := 0
	for i := 0; i < len(rows)-1; i++ {
		crossings += CountLayerCrossings(g, orders[rows[i]], orders[rows[i+1]])
	}
	return crossings
}

// CountPairCrossings counts the crossings contributed by the ordered pair
// (left, right) against one adjacent row. If useParents is true, edges to
// the row above are considered, otherwise edges to the row below. The adjPos
// map holds positions of the adjacent row's ordering; nodes missing from it
// are ignored.
//
// Local-search ordering compares this value for (left, right) and
// (right, left) to decide whether swapping two neighbors reduces crossings.
func CountPairCrossings(g *DAG, left, right string, adjPos map[string]int, useParents bool) int {
	var lnbr, rnbr []string
	if useParents {
		lnbr = g.Parents(left)
		rnbr = g.Parents(right)
	} else {
		lnbr = g.Children(left)
		rnbr = g.Children(right)
	}

	crossings := 0
	for _, ln := range lnbr {
		lp, ok := adjPos[ln]
		if !ok {
			continue
		}
		for _, rn := range rnbr {
			// Left's neighbor to the right of right's neighbor is a crossing.
			if rp, ok := adjPos[rn]; ok && lp > rp {
				crossings++
			}
		}
	}
	return crossings
}
