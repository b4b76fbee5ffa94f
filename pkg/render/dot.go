// Package render exports laid-out diagrams to DOT and SVG.
//
// The DOT output pins every node to its computed position, so Graphviz acts
// purely as a drawing backend and the layout on disk matches the layout on
// screen.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/diaflow/pkg/diagram"
	"github.com/matzehuels/diaflow/pkg/graph"
	"github.com/matzehuels/diaflow/pkg/layout"
)

// dotShapes maps node shapes to Graphviz shapes.
var dotShapes = map[string]string{
	graph.ShapeClass:       "record",
	graph.ShapeActor:       "plaintext",
	graph.ShapeUseCase:     "ellipse",
	graph.ShapeActivity:    "box",
	graph.ShapeParticipant: "box",
	graph.ShapeState:       "box",
	graph.ShapeComponent:   "component",
}

// ToDOT converts a laid-out graph to Graphviz DOT. Positions are emitted as
// pinned pos attributes in points; render with the neato engine so they are
// honored.
func ToDOT(kind diagram.Kind, nodes []graph.Node, edges []graph.Edge) string {
	profile := layout.ProfileFor(kind)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, profile), ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, profile layout.Profile) []string {
	size := profile.SizeFor(n.Type)
	shape := dotShapes[n.Type]
	if shape == "" {
		shape = "box"
	}

	attrs := []string{
		fmt.Sprintf("label=%q", nodeLabel(n)),
		fmt.Sprintf("shape=%s", shape),
		// Graphviz pos is the node center in points, y up. Positions are
		// top-left anchored with y down, so convert both.
		fmt.Sprintf("pos=\"%.0f,%.0f!\"", n.Position.X+size.W/2, -(n.Position.Y + size.H/2)),
		fmt.Sprintf("width=%.2f", size.W/72),
		fmt.Sprintf("height=%.2f", size.H/72),
	}
	return attrs
}

func nodeLabel(n graph.Node) string {
	label := n.Data.Name
	if label == "" {
		label = n.Data.Label
	}
	if label == "" {
		label = n.ID
	}

	if n.Type == graph.ShapeClass {
		var parts []string
		parts = append(parts, label)
		if len(n.Data.Attributes) > 0 {
			parts = append(parts, strings.Join(n.Data.Attributes, "\n"))
		}
		if len(n.Data.Operations) > 0 {
			parts = append(parts, strings.Join(n.Data.Operations, "\n"))
		}
		return strings.Join(parts, "\n---\n")
	}
	if n.Data.Stereotype != "" {
		return fmt.Sprintf("<<%s>>\n%s", n.Data.Stereotype, label)
	}
	return label
}

func edgeAttrs(e graph.Edge) []string {
	var attrs []string
	if e.Data.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Data.Label))
	}
	if e.Data.Dashed {
		attrs = append(attrs, "style=dashed")
	}
	switch e.Data.Type {
	case "inheritance", "generalization", "realization":
		attrs = append(attrs, "arrowhead=empty")
	case "composition":
		attrs = append(attrs, "arrowhead=diamond")
	case "aggregation":
		attrs = append(attrs, "arrowhead=odiamond")
	}
	return attrs
}
