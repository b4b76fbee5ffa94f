package graph

import (
	"slices"
	"strings"

	"github.com/matzehuels/diaflow/pkg/diagram"
)

// Transform lowers a diagram into the generic node/edge model.
//
// The mapping is deterministic and order-preserving: nodes appear in element
// order (actors before use cases for the use-case kind) and edges in
// connector order, except sequence messages which are sorted by their
// explicit Order field - array position is not authoritative there.
//
// Transform assumes the diagram already passed validation but does not
// require it: absent collections are treated as empty and an unrecognized
// kind falls back to the class mapping rather than failing, so a partially
// malformed generation result still produces a renderable graph. Callers
// that care should surface validation diagnostics separately.
//
// Nested text collections are defensively copied - returned nodes never
// alias the diagram's slices.
func Transform(d diagram.Diagram) ([]Node, []Edge) {
	switch d.Type {
	case diagram.KindUseCase:
		return transformUseCase(d)
	case diagram.KindActivity:
		return transformActivity(d)
	case diagram.KindSequence:
		return transformSequence(d)
	case diagram.KindStateMachine:
		return transformStateMachine(d)
	case diagram.KindComponent:
		return transformComponent(d)
	default:
		// Class mapping doubles as the fallback for unknown kinds.
		return transformClass(d)
	}
}

func transformClass(d diagram.Diagram) ([]Node, []Edge) {
	nodes := make([]Node, 0, len(d.Classes))
	for _, c := range d.Classes {
		nodes = append(nodes, Node{
			ID:   c.ID,
			Type: ShapeClass,
			Data: NodeData{
				Name:       c.Name,
				Attributes: slices.Clone(c.Attributes),
				Operations: slices.Clone(c.Operations),
			},
		})
	}

	edges := make([]Edge, 0, len(d.Relationships))
	for i, r := range d.Relationships {
		edges = append(edges, Edge{
			ID:     edgeID(r.Source, r.Target, i),
			Source: r.Source,
			Target: r.Target,
			Data:   EdgeData{Type: r.Type, Label: r.Label},
		})
	}
	return nodes, edges
}

func transformUseCase(d diagram.Diagram) ([]Node, []Edge) {
	nodes := make([]Node, 0, len(d.Actors)+len(d.UseCases))
	for _, a := range d.Actors {
		nodes = append(nodes, Node{
			ID:   a.ID,
			Type: ShapeActor,
			Data: NodeData{Name: a.Name},
		})
	}
	for _, u := range d.UseCases {
		nodes = append(nodes, Node{
			ID:   u.ID,
			Type: ShapeUseCase,
			Data: NodeData{Name: u.Name, Description: u.Description},
		})
	}

	edges := make([]Edge, 0, len(d.UseCaseRelationships))
	for i, r := range d.UseCaseRelationships {
		data := EdgeData{Type: r.Type, Label: r.Label}
		// Include/extend render as stereotype text on a dashed edge,
		// regardless of any user-supplied label.
		switch r.Type {
		case diagram.UseCaseRelInclude:
			data.Label = "<<include>>"
			data.Dashed = true
		case diagram.UseCaseRelExtend:
			data.Label = "<<extend>>"
			data.Dashed = true
		}
		edges = append(edges, Edge{
			ID:     edgeID(r.Source, r.Target, i),
			Source: r.Source,
			Target: r.Target,
			Data:   data,
		})
	}
	return nodes, edges
}

func transformActivity(d diagram.Diagram) ([]Node, []Edge) {
	nodes := make([]Node, 0, len(d.Activities))
	for _, a := range d.Activities {
		nodes = append(nodes, Node{
			ID:   a.ID,
			Type: ShapeActivity,
			Data: NodeData{ActivityType: a.Type, Label: a.Label},
		})
	}

	edges := make([]Edge, 0, len(d.Transitions))
	for i, t := range d.Transitions {
		label := t.Label
		if t.Guard != "" {
			label = t.Guard
		}
		edges = append(edges, Edge{
			ID:     edgeID(t.Source, t.Target, i),
			Source: t.Source,
			Target: t.Target,
			Data:   EdgeData{Label: label, Guard: t.Guard},
		})
	}
	return nodes, edges
}

func transformSequence(d diagram.Diagram) ([]Node, []Edge) {
	nodes := make([]Node, 0, len(d.Participants))
	for i, p := range d.Participants {
		nodes = append(nodes, Node{
			ID:   p.ID,
			Type: ShapeParticipant,
			// Left-to-right hint by array index; layout recomputes this.
			Position: Position{X: float64(i) * participantSpacing},
			Data:     NodeData{Name: p.Name, ParticipantType: p.Type},
		})
	}

	messages := slices.Clone(d.Messages)
	slices.SortStableFunc(messages, func(a, b diagram.Message) int {
		return a.Order - b.Order
	})

	edges := make([]Edge, 0, len(messages))
	for i, m := range messages {
		id := m.ID
		if id == "" {
			id = edgeID(m.From, m.To, i)
		}
		edges = append(edges, Edge{
			ID:     id,
			Source: m.From,
			Target: m.To,
			Data: EdgeData{
				Type:     m.Type,
				Label:    m.Label,
				Order:    m.Order,
				Animated: m.Type == diagram.MessageAsync,
				Dashed:   m.Type == diagram.MessageReturn,
			},
		})
	}
	return nodes, edges
}

func transformStateMachine(d diagram.Diagram) ([]Node, []Edge) {
	nodes := make([]Node, 0, len(d.States))
	for _, s := range d.States {
		nodes = append(nodes, Node{
			ID:   s.ID,
			Type: ShapeState,
			Data: NodeData{
				Name:        s.Name,
				IsInitial:   s.IsInitial,
				IsFinal:     s.IsFinal,
				EntryAction: s.EntryAction,
				ExitAction:  s.ExitAction,
			},
		})
	}

	edges := make([]Edge, 0, len(d.StateTransitions))
	for i, t := range d.StateTransitions {
		edges = append(edges, Edge{
			ID:     edgeID(t.Source, t.Target, i),
			Source: t.Source,
			Target: t.Target,
			Data: EdgeData{
				Label:   transitionLabel(t),
				Trigger: t.Trigger,
				Guard:   t.Guard,
				Action:  t.Action,
			},
		})
	}
	return nodes, edges
}

// transitionLabel composes "trigger [guard] / action" with each segment
// included only when present.
func transitionLabel(t diagram.StateTransition) string {
	var b strings.Builder
	if t.Trigger != "" {
		b.WriteString(t.Trigger)
	}
	if t.Guard != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("[" + t.Guard + "]")
	}
	if t.Action != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("/ " + t.Action)
	}
	return strings.TrimSpace(b.String())
}

func transformComponent(d diagram.Diagram) ([]Node, []Edge) {
	nodes := make([]Node, 0, len(d.Components))
	for _, c := range d.Components {
		nodes = append(nodes, Node{
			ID:   c.ID,
			Type: ShapeComponent,
			Data: NodeData{
				Name:       c.Name,
				Stereotype: c.Stereotype,
				Interfaces: slices.Clone(c.Interfaces),
			},
		})
	}

	edges := make([]Edge, 0, len(d.Dependencies))
	for i, dep := range d.Dependencies {
		edges = append(edges, Edge{
			ID:     edgeID(dep.Source, dep.Target, i),
			Source: dep.Source,
			Target: dep.Target,
			Data: EdgeData{
				Type:   dep.Type,
				Label:  dep.Label,
				Dashed: dep.Type == diagram.DependencyPlain,
			},
		})
	}
	return nodes, edges
}
