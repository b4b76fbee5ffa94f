package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/diaflow/pkg/diagram"
	"github.com/matzehuels/diaflow/pkg/graph"
)

func TestToDOT_Class(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", Type: graph.ShapeClass, Position: graph.Position{X: 0, Y: 0},
			Data: graph.NodeData{Name: "Order", Attributes: []string{"id: string"}, Operations: []string{"checkout()"}}},
		{ID: "b", Type: graph.ShapeClass, Position: graph.Position{X: 0, Y: 200},
			Data: graph.NodeData{Name: "Item"}},
	}
	edges := []graph.Edge{
		{ID: "e1", Source: "b", Target: "a", Data: graph.EdgeData{Type: "inheritance"}},
	}

	dot := ToDOT(diagram.KindClass, nodes, edges)

	for _, want := range []string{
		"digraph G {",
		`"a" [`,
		`"b" [`,
		"shape=record",
		"Order",
		"id: string",
		"checkout()",
		`"b" -> "a"`,
		"arrowhead=empty",
		"!\"", // pinned positions
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_EdgeStyles(t *testing.T) {
	nodes := []graph.Node{
		{ID: "web", Type: graph.ShapeComponent, Data: graph.NodeData{Name: "Web"}},
		{ID: "api", Type: graph.ShapeComponent, Data: graph.NodeData{Name: "API", Stereotype: "service"}},
	}
	edges := []graph.Edge{
		{ID: "e1", Source: "web", Target: "api", Data: graph.EdgeData{Type: "realization", Label: "REST", Dashed: true}},
	}

	dot := ToDOT(diagram.KindComponent, nodes, edges)

	for _, want := range []string{
		"shape=component",
		`label="REST"`,
		"style=dashed",
		"arrowhead=empty",
		"<<service>>",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_FallbackShapeAndLabel(t *testing.T) {
	nodes := []graph.Node{
		{ID: "n1", Type: "mystery"},
	}

	dot := ToDOT(diagram.KindClass, nodes, nil)

	if !strings.Contains(dot, "shape=box") {
		t.Errorf("unknown shape did not fall back to box:\n%s", dot)
	}
	// A node without name or label falls back to its id.
	if !strings.Contains(dot, `label="n1"`) {
		t.Errorf("label fallback missing:\n%s", dot)
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(diagram.KindClass, nil, nil)
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("malformed empty DOT:\n%s", dot)
	}
}
