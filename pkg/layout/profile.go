// Package layout assigns 2-D coordinates to a node/edge graph using the
// layered engine in pkg/dag, wrapped in a per-diagram-kind policy layer.
//
// The policy layer is the interesting part: it auto-detects which diagram
// kind produced the graph, picks that kind's orientation and spacing
// profile, sizes every node by its shape, and converts the engine's
// rank/offset output into top-left anchored coordinates with a guarantee
// that shape-specific bounding boxes never overlap.
package layout

import (
	"github.com/matzehuels/diaflow/pkg/diagram"
	"github.com/matzehuels/diaflow/pkg/graph"
)

// Direction is the main layout axis.
type Direction int

const (
	// TopToBottom places ranks along Y, nodes within a rank along X.
	TopToBottom Direction = iota
	// LeftToRight places ranks along X, nodes within a rank along Y.
	LeftToRight
)

// Size is a shape bounding box used for node placement and overlap checks.
type Size struct {
	W float64
	H float64
}

// Profile fixes the layout policy for one diagram kind: orientation,
// within-rank and inter-rank spacing, and the default bounding-box size per
// node shape. Sizes differ sharply by shape - an actor glyph is tiny, a
// class card is wide.
type Profile struct {
	Direction   Direction
	NodeSpacing float64 // gap between adjacent bounding boxes within a rank
	RankSpacing float64 // gap between consecutive ranks
	Sizes       map[string]Size
	DefaultSize Size
}

// SizeFor returns the bounding box for a node shape, falling back to the
// profile's default for unknown shapes.
func (p Profile) SizeFor(shape string) Size {
	if s, ok := p.Sizes[shape]; ok {
		return s
	}
	return p.DefaultSize
}

// profiles is the per-kind policy table.
var profiles = map[diagram.Kind]Profile{
	diagram.KindClass: {
		Direction:   TopToBottom,
		NodeSpacing: 80,
		RankSpacing: 100,
		Sizes:       map[string]Size{graph.ShapeClass: {W: 220, H: 140}},
		DefaultSize: Size{W: 220, H: 140},
	},
	diagram.KindUseCase: {
		Direction:   LeftToRight,
		NodeSpacing: 60,
		RankSpacing: 180,
		Sizes: map[string]Size{
			graph.ShapeActor:   {W: 60, H: 90},
			graph.ShapeUseCase: {W: 170, H: 70},
		},
		DefaultSize: Size{W: 170, H: 70},
	},
	diagram.KindActivity: {
		Direction:   TopToBottom,
		NodeSpacing: 70,
		RankSpacing: 90,
		Sizes:       map[string]Size{graph.ShapeActivity: {W: 160, H: 60}},
		DefaultSize: Size{W: 160, H: 60},
	},
	diagram.KindSequence: {
		Direction:   LeftToRight,
		NodeSpacing: 80,
		RankSpacing: 200,
		Sizes:       map[string]Size{graph.ShapeParticipant: {W: 140, H: 60}},
		DefaultSize: Size{W: 140, H: 60},
	},
	diagram.KindStateMachine: {
		Direction:   LeftToRight,
		NodeSpacing: 70,
		RankSpacing: 160,
		Sizes:       map[string]Size{graph.ShapeState: {W: 170, H: 80}},
		DefaultSize: Size{W: 170, H: 80},
	},
	diagram.KindComponent: {
		Direction:   TopToBottom,
		NodeSpacing: 90,
		RankSpacing: 110,
		Sizes:       map[string]Size{graph.ShapeComponent: {W: 190, H: 90}},
		DefaultSize: Size{W: 190, H: 90},
	},
}

// shapeKinds maps a node shape back to its diagram kind for auto-detection.
var shapeKinds = map[string]diagram.Kind{
	graph.ShapeClass:       diagram.KindClass,
	graph.ShapeActor:       diagram.KindUseCase,
	graph.ShapeUseCase:     diagram.KindUseCase,
	graph.ShapeActivity:    diagram.KindActivity,
	graph.ShapeParticipant: diagram.KindSequence,
	graph.ShapeState:       diagram.KindStateMachine,
	graph.ShapeComponent:   diagram.KindComponent,
}

// ProfileFor returns the policy profile for a diagram kind.
// Unknown kinds get the class profile, the system-wide default.
func ProfileFor(kind diagram.Kind) Profile {
	if p, ok := profiles[kind]; ok {
		return p
	}
	return profiles[diagram.KindClass]
}

// DetectKind infers the diagram kind from the shape tag of the first node.
// Returns the class kind for empty input or unrecognized shapes.
func DetectKind(nodes []graph.Node) diagram.Kind {
	if len(nodes) == 0 {
		return diagram.KindClass
	}
	if k, ok := shapeKinds[nodes[0].Type]; ok {
		return k
	}
	return diagram.KindClass
}
