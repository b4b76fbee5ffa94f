package graph

import (
	"slices"

	"github.com/matzehuels/diaflow/pkg/diagram"
)

// ToDiagram reconstructs a diagram from the live node/edge graph. It is the
// structural inverse of Transform for every kind: transforming the result
// yields identical node data and edge (source, target, type, label) tuples.
// Positions are not part of the diagram format - they are recomputed by
// layout on every load.
func ToDiagram(kind diagram.Kind, nodes []Node, edges []Edge) diagram.Diagram {
	switch kind {
	case diagram.KindUseCase:
		return reverseUseCase(nodes, edges)
	case diagram.KindActivity:
		return reverseActivity(nodes, edges)
	case diagram.KindSequence:
		return reverseSequence(nodes, edges)
	case diagram.KindStateMachine:
		return reverseStateMachine(nodes, edges)
	case diagram.KindComponent:
		return reverseComponent(nodes, edges)
	default:
		return reverseClass(nodes, edges)
	}
}

func reverseClass(nodes []Node, edges []Edge) diagram.Diagram {
	d := diagram.Diagram{
		Type:          diagram.KindClass,
		Classes:       make([]diagram.Class, 0, len(nodes)),
		Relationships: make([]diagram.Relationship, 0, len(edges)),
	}
	for _, n := range nodes {
		d.Classes = append(d.Classes, diagram.Class{
			ID:         n.ID,
			Name:       n.Data.Name,
			Attributes: slices.Clone(n.Data.Attributes),
			Operations: slices.Clone(n.Data.Operations),
		})
	}
	for _, e := range edges {
		d.Relationships = append(d.Relationships, diagram.Relationship{
			Source: e.Source,
			Target: e.Target,
			Type:   e.Data.Type,
			Label:  e.Data.Label,
		})
	}
	return d
}

func reverseUseCase(nodes []Node, edges []Edge) diagram.Diagram {
	d := diagram.Diagram{
		Type:                 diagram.KindUseCase,
		Actors:               []diagram.Actor{},
		UseCases:             []diagram.UseCase{},
		UseCaseRelationships: make([]diagram.UseCaseRelationship, 0, len(edges)),
	}
	for _, n := range nodes {
		switch n.Type {
		case ShapeActor:
			d.Actors = append(d.Actors, diagram.Actor{ID: n.ID, Name: n.Data.Name})
		default:
			d.UseCases = append(d.UseCases, diagram.UseCase{
				ID:          n.ID,
				Name:        n.Data.Name,
				Description: n.Data.Description,
			})
		}
	}
	for _, e := range edges {
		label := e.Data.Label
		// The include/extend display label is a synthesized stereotype,
		// not user data - forward transform regenerates it.
		if e.Data.Type == diagram.UseCaseRelInclude || e.Data.Type == diagram.UseCaseRelExtend {
			label = ""
		}
		d.UseCaseRelationships = append(d.UseCaseRelationships, diagram.UseCaseRelationship{
			Source: e.Source,
			Target: e.Target,
			Type:   e.Data.Type,
			Label:  label,
		})
	}
	return d
}

func reverseActivity(nodes []Node, edges []Edge) diagram.Diagram {
	d := diagram.Diagram{
		Type:        diagram.KindActivity,
		Activities:  make([]diagram.Activity, 0, len(nodes)),
		Transitions: make([]diagram.Transition, 0, len(edges)),
	}
	for _, n := range nodes {
		d.Activities = append(d.Activities, diagram.Activity{
			ID:    n.ID,
			Type:  n.Data.ActivityType,
			Label: n.Data.Label,
		})
	}
	for _, e := range edges {
		label := e.Data.Label
		if e.Data.Guard != "" && label == e.Data.Guard {
			// The displayed label was the guard; the transition had no
			// label of its own.
			label = ""
		}
		d.Transitions = append(d.Transitions, diagram.Transition{
			Source: e.Source,
			Target: e.Target,
			Guard:  e.Data.Guard,
			Label:  label,
		})
	}
	return d
}

func reverseSequence(nodes []Node, edges []Edge) diagram.Diagram {
	d := diagram.Diagram{
		Type:         diagram.KindSequence,
		Participants: make([]diagram.Participant, 0, len(nodes)),
		Messages:     make([]diagram.Message, 0, len(edges)),
	}
	for _, n := range nodes {
		d.Participants = append(d.Participants, diagram.Participant{
			ID:   n.ID,
			Name: n.Data.Name,
			Type: n.Data.ParticipantType,
		})
	}
	for _, e := range edges {
		d.Messages = append(d.Messages, diagram.Message{
			ID:    e.ID,
			From:  e.Source,
			To:    e.Target,
			Label: e.Data.Label,
			Type:  e.Data.Type,
			Order: e.Data.Order,
		})
	}
	return d
}

func reverseStateMachine(nodes []Node, edges []Edge) diagram.Diagram {
	d := diagram.Diagram{
		Type:             diagram.KindStateMachine,
		States:           make([]diagram.State, 0, len(nodes)),
		StateTransitions: make([]diagram.StateTransition, 0, len(edges)),
	}
	for _, n := range nodes {
		d.States = append(d.States, diagram.State{
			ID:          n.ID,
			Name:        n.Data.Name,
			IsInitial:   n.Data.IsInitial,
			IsFinal:     n.Data.IsFinal,
			EntryAction: n.Data.EntryAction,
			ExitAction:  n.Data.ExitAction,
		})
	}
	for _, e := range edges {
		d.StateTransitions = append(d.StateTransitions, diagram.StateTransition{
			Source:  e.Source,
			Target:  e.Target,
			Trigger: e.Data.Trigger,
			Guard:   e.Data.Guard,
			Action:  e.Data.Action,
		})
	}
	return d
}

func reverseComponent(nodes []Node, edges []Edge) diagram.Diagram {
	d := diagram.Diagram{
		Type:         diagram.KindComponent,
		Components:   make([]diagram.Component, 0, len(nodes)),
		Dependencies: make([]diagram.Dependency, 0, len(edges)),
	}
	for _, n := range nodes {
		d.Components = append(d.Components, diagram.Component{
			ID:         n.ID,
			Name:       n.Data.Name,
			Stereotype: n.Data.Stereotype,
			Interfaces: slices.Clone(n.Data.Interfaces),
		})
	}
	for _, e := range edges {
		d.Dependencies = append(d.Dependencies, diagram.Dependency{
			Source: e.Source,
			Target: e.Target,
			Type:   e.Data.Type,
			Label:  e.Data.Label,
		})
	}
	return d
}
