package dag

// BreakCycles removes back edges discovered by depth-first search until the
// graph is acyclic, and returns the number of edges removed. Diagram inputs
// are allowed to contain cycles (state machines and activity flows usually
// do); layering requires an acyclic graph, so the minority direction of each
// cycle is dropped for ranking purposes only - callers keep rendering the
// original edge list.
//
// The search starts from source nodes so that the edges kept are the ones
// pointing away from natural entry points, then covers any remaining
// strongly connected components.
func BreakCycles(g *DAG) int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges [][2]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{node, child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, e := range backEdges {
		g.RemoveEdge(e[0], e[1])
	}
	return len(backEdges)
}

// AssignLayers assigns nodes to rows based on their depth in the graph,
// using a longest-path layering via topological sort (Kahn's algorithm).
// Each node lands at one plus the maximum row of any of its parents, so
// sources sit at row 0 and every parent is strictly above its children.
// Existing row assignments are overwritten.
//
// The graph must be acyclic - run [BreakCycles] first. Nodes trapped in a
// residual cycle would stay at row 0. O(V + E).
func AssignLayers(g *DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRows(rows)
}
