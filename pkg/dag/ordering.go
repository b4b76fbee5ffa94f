package dag

import "slices"

// DefaultSweeps is the number of down/up barycenter passes OrderRows runs.
// Diagram graphs are small; two passes are enough to converge in practice.
const DefaultSweeps = 2

// OrderRows computes a left-to-right ordering for every row that keeps edge
// crossings low. It runs alternating downward and upward barycenter sweeps
// (each node is sorted by the mean position of its neighbors in the fixed
// adjacent row), then refines each row with adjacent-pair swaps accepted
// only when they strictly reduce crossings against both neighboring rows.
//
// The initial ordering is the row's insertion order, so the result is
// deterministic for a deterministically built graph. Returns a map from row
// index to ordered node IDs; rows not present in the graph are absent.
func OrderRows(g *DAG, sweeps int) map[int][]string {
	if sweeps <= 0 {
		sweeps = DefaultSweeps
	}

	rows := g.RowIDs()
	orders := make(map[int][]string, len(rows))
	for _, r := range rows {
		orders[r] = NodeIDs(g.NodesInRow(r))
	}
	if len(rows) < 2 {
		return orders
	}

	for s := 0; s < sweeps; s++ {
		for i := 1; i < len(rows); i++ {
			barycenterSort(g, orders[rows[i]], orders[rows[i-1]], true)
		}
		for i := len(rows) - 2; i >= 0; i-- {
			barycenterSort(g, orders[rows[i]], orders[rows[i+1]], false)
		}
	}

	for i, r := range rows {
		var upper, lower []string
		if i > 0 {
			upper = orders[rows[i-1]]
		}
		if i < len(rows)-1 {
			lower = orders[rows[i+1]]
		}
		refineRow(g, orders[r], upper, lower)
	}

	return orders
}

// barycenterSort reorders row in place by the mean position of each node's
// neighbors in the fixed adjacent row. Nodes without neighbors keep their
// current position as the sort key, so they stay put relative to the rest.
func barycenterSort(g *DAG, row, fixed []string, useParents bool) {
	if len(row) < 2 || len(fixed) == 0 {
		return
	}
	fixedPos := PosMap(fixed)

	keys := make(map[string]float64, len(row))
	for i, id := range row {
		var nbrs []string
		if useParents {
			nbrs = g.Parents(id)
		} else {
			nbrs = g.Children(id)
		}
		sum, count := 0.0, 0
		for _, n := range nbrs {
			if p, ok := fixedPos[n]; ok {
				sum += float64(p)
				count++
			}
		}
		if count == 0 {
			keys[id] = float64(i)
		} else {
			keys[id] = sum / float64(count)
		}
	}

	slices.SortStableFunc(row, func(a, b string) int {
		switch {
		case keys[a] < keys[b]:
			return -1
		case keys[a] > keys[b]:
			return 1
		default:
			return 0
		}
	})
}

// refineRow greedily swaps adjacent pairs in row while doing so strictly
// reduces the combined crossings against the upper and lower rows. Bounded
// passes keep the worst case quadratic in the row width, which diagram rows
// never stress.
func refineRow(g *DAG, row, upper, lower []string) {
	if len(row) < 2 {
		return
	}
	upperPos := PosMap(upper)
	lowerPos := PosMap(lower)

	for pass := 0; pass < len(row); pass++ {
		improved := false
		for i := 0; i < len(row)-1; i++ {
			left, right := row[i], row[i+1]
			current := CountPairCrossings(g, left, right, upperPos, true) +
				CountPairCrossings(g, left, right, lowerPos, false)
			swapped := CountPairCrossings(g, right, left, upperPos, true) +
				CountPairCrossings(g, right, left, lowerPos, false)
			if swapped < current {
				row[i], row[i+1] = right, left
				improved = true
			}
		}
		if !improved {
			break
		}
	}
}
