// Package graph defines the generic renderable node/edge model that every
// diagram kind is lowered into, and the deterministic mapping between the
// diagram interchange format and that model.
//
// The model is kind-agnostic: a rendering surface only ever sees Nodes and
// Edges, regardless of which of the six diagram kinds produced them. The
// mapping is designed for round-trip fidelity: Transform followed by
// ToDiagram followed by Transform again yields identical node data and edge
// tuples (positions excluded - those belong to the layout stage).
package graph

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/diaflow/pkg/diagram"
)

// =============================================================================
// Node Shapes - Single Source of Truth
// =============================================================================

// Node shape kinds. The shape selects both the rendering template and the
// layout profile (orientation, spacing, bounding-box size).
const (
	ShapeClass       = "classNode"
	ShapeActor       = "actorNode"
	ShapeUseCase     = "useCaseNode"
	ShapeActivity    = "activityNode"
	ShapeParticipant = "participantNode"
	ShapeState       = "stateNode"
	ShapeComponent   = "componentNode"
)

// participantSpacing is the horizontal hint spacing applied to sequence
// participants before layout runs.
const participantSpacing = 200.0

// =============================================================================
// Node & Edge
// =============================================================================

// Position is a 2-D coordinate. Positions are top-left anchored.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// NodeData carries the kind-specific payload of a node, copied verbatim from
// the source diagram element. Only the fields belonging to the node's shape
// are populated.
type NodeData struct {
	Name            string              `json:"name,omitempty" bson:"name,omitempty"`
	Label           string              `json:"label,omitempty" bson:"label,omitempty"`
	Attributes      []string            `json:"attributes,omitempty" bson:"attributes,omitempty"`
	Operations      []string            `json:"operations,omitempty" bson:"operations,omitempty"`
	Description     string              `json:"description,omitempty" bson:"description,omitempty"`
	ActivityType    string              `json:"activityType,omitempty" bson:"activityType,omitempty"`
	ParticipantType string              `json:"participantType,omitempty" bson:"participantType,omitempty"`
	IsInitial       bool                `json:"isInitial,omitempty" bson:"isInitial,omitempty"`
	IsFinal         bool                `json:"isFinal,omitempty" bson:"isFinal,omitempty"`
	EntryAction     string              `json:"entryAction,omitempty" bson:"entryAction,omitempty"`
	ExitAction      string              `json:"exitAction,omitempty" bson:"exitAction,omitempty"`
	Stereotype      string              `json:"stereotype,omitempty" bson:"stereotype,omitempty"`
	Interfaces      []diagram.Interface `json:"interfaces,omitempty" bson:"interfaces,omitempty"`
}

// Node is the generic renderable unit. ID is stable and equals the source
// element's id; Type is one of the Shape* constants.
type Node struct {
	ID       string   `json:"id" bson:"id"`
	Type     string   `json:"type" bson:"type"`
	Position Position `json:"position" bson:"position"`
	Data     NodeData `json:"data" bson:"data"`
}

// EdgeData carries the connector payload: the source relationship/transition
// kind, the displayed label, style hints, and the raw fields needed to
// reconstruct the original connector on the reverse mapping.
type EdgeData struct {
	Type     string `json:"type,omitempty" bson:"type,omitempty"`
	Label    string `json:"label,omitempty" bson:"label,omitempty"`
	Guard    string `json:"guard,omitempty" bson:"guard,omitempty"`
	Trigger  string `json:"trigger,omitempty" bson:"trigger,omitempty"`
	Action   string `json:"action,omitempty" bson:"action,omitempty"`
	Order    int    `json:"order,omitempty" bson:"order,omitempty"`
	Dashed   bool   `json:"dashed,omitempty" bson:"dashed,omitempty"`
	Animated bool   `json:"animated,omitempty" bson:"animated,omitempty"`
}

// Edge is the generic renderable connector between two nodes.
type Edge struct {
	ID     string   `json:"id" bson:"id"`
	Source string   `json:"source" bson:"source"`
	Target string   `json:"target" bson:"target"`
	Data   EdgeData `json:"data" bson:"data"`
}

// edgeID synthesizes a stable edge id from endpoints and position.
// Connectors whose source data already carries an id (sequence messages)
// keep that id instead.
func edgeID(source, target string, index int) string {
	return fmt.Sprintf("edge-%s-%s-%d", source, target, index)
}

// =============================================================================
// Serialization Helpers
// =============================================================================

// MarshalNodes serializes nodes to pretty-printed JSON bytes.
func MarshalNodes(nodes []Node) ([]byte, error) {
	return json.MarshalIndent(nodes, "", "  ")
}

// MarshalEdges serializes edges to pretty-printed JSON bytes.
func MarshalEdges(edges []Edge) ([]byte, error) {
	return json.MarshalIndent(edges, "", "  ")
}

// CloneNodes returns a deep-enough copy of the node list: the slice and
// every nested text collection are owned by the copy. A canvas-side edit of
// the clone can never corrupt the original.
func CloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Data.Attributes = slices.Clone(n.Data.Attributes)
		n.Data.Operations = slices.Clone(n.Data.Operations)
		n.Data.Interfaces = slices.Clone(n.Data.Interfaces)
		out[i] = n
	}
	return out
}

// CloneEdges returns a copy of the edge list.
func CloneEdges(edges []Edge) []Edge {
	return slices.Clone(edges)
}
