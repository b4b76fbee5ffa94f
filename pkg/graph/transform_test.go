package graph

import (
	"testing"

	"github.com/matzehuels/diaflow/pkg/diagram"
)

func TestTransform_Class(t *testing.T) {
	d := diagram.Diagram{
		Type: diagram.KindClass,
		Classes: []diagram.Class{
			{ID: "a", Name: "A", Attributes: []string{"x: int"}, Operations: []string{"do()"}},
			{ID: "b", Name: "B"},
		},
		Relationships: []diagram.Relationship{
			{Source: "b", Target: "a", Type: diagram.RelationInheritance},
		},
	}

	nodes, edges := Transform(d)

	if got, want := len(nodes), 2; got != want {
		t.Fatalf("node count = %d, want %d", got, want)
	}
	if nodes[0].Type != ShapeClass || nodes[0].ID != "a" {
		t.Errorf("nodes[0] = %+v", nodes[0])
	}
	if got, want := nodes[0].Data.Attributes[0], "x: int"; got != want {
		t.Errorf("attribute = %q, want %q", got, want)
	}

	if got, want := len(edges), 1; got != want {
		t.Fatalf("edge count = %d, want %d", got, want)
	}
	if edges[0].Source != "b" || edges[0].Target != "a" || edges[0].Data.Type != diagram.RelationInheritance {
		t.Errorf("edges[0] = %+v", edges[0])
	}
	if got, want := edges[0].ID, "edge-b-a-0"; got != want {
		t.Errorf("edge ID = %q, want %q", got, want)
	}
}

func TestTransform_ClassDoesNotAliasInput(t *testing.T) {
	d := diagram.Diagram{
		Type:    diagram.KindClass,
		Classes: []diagram.Class{{ID: "a", Name: "A", Attributes: []string{"x"}}},
	}
	nodes, _ := Transform(d)
	nodes[0].Data.Attributes[0] = "mutated"
	if d.Classes[0].Attributes[0] != "x" {
		t.Error("transform aliased the diagram's attribute slice")
	}
}

func TestTransform_UnknownKindFallsBackToClass(t *testing.T) {
	d := diagram.Diagram{
		Type:    diagram.Kind("mystery"),
		Classes: []diagram.Class{{ID: "a", Name: "A"}},
	}
	nodes, _ := Transform(d)
	if len(nodes) != 1 || nodes[0].Type != ShapeClass {
		t.Errorf("fallback nodes = %+v", nodes)
	}
}

func TestTransform_UseCaseStereotypes(t *testing.T) {
	d := diagram.Diagram{
		Type:     diagram.KindUseCase,
		Actors:   []diagram.Actor{{ID: "actor", Name: "User"}},
		UseCases: []diagram.UseCase{{ID: "uc1", Name: "Login"}, {ID: "uc2", Name: "Audit"}},
		UseCaseRelationships: []diagram.UseCaseRelationship{
			{Source: "actor", Target: "uc1", Type: diagram.UseCaseRelAssociation, Label: "uses"},
			{Source: "uc1", Target: "uc2", Type: diagram.UseCaseRelInclude, Label: "ignored"},
			{Source: "uc2", Target: "uc1", Type: diagram.UseCaseRelExtend},
		},
	}

	nodes, edges := Transform(d)

	// Actors come first, then use cases.
	if nodes[0].Type != ShapeActor || nodes[1].Type != ShapeUseCase {
		t.Errorf("node order = %v, %v", nodes[0].Type, nodes[1].Type)
	}

	if got, want := edges[0].Data.Label, "uses"; got != want {
		t.Errorf("association label = %q, want %q", got, want)
	}
	if edges[0].Data.Dashed {
		t.Error("association edge should not be dashed")
	}
	if got, want := edges[1].Data.Label, "<<include>>"; got != want {
		t.Errorf("include label = %q, want %q", got, want)
	}
	if !edges[1].Data.Dashed {
		t.Error("include edge should be dashed")
	}
	if got, want := edges[2].Data.Label, "<<extend>>"; got != want {
		t.Errorf("extend label = %q, want %q", got, want)
	}
}

func TestTransform_ActivityGuardAsLabel(t *testing.T) {
	d := diagram.Diagram{
		Type: diagram.KindActivity,
		Activities: []diagram.Activity{
			{ID: "d1", Type: diagram.ActivityDecision, Label: "ok?"},
			{ID: "a1", Type: diagram.ActivityAction, Label: "Proceed"},
		},
		Transitions: []diagram.Transition{
			{Source: "d1", Target: "a1", Guard: "yes", Label: "labelled"},
			{Source: "d1", Target: "a1", Label: "plain"},
		},
	}

	_, edges := Transform(d)

	// A guard wins over the user label for display but both survive.
	if got, want := edges[0].Data.Label, "yes"; got != want {
		t.Errorf("guarded label = %q, want %q", got, want)
	}
	if got, want := edges[0].Data.Guard, "yes"; got != want {
		t.Errorf("guard = %q, want %q", got, want)
	}
	if got, want := edges[1].Data.Label, "plain"; got != want {
		t.Errorf("unguarded label = %q, want %q", got, want)
	}
}

func TestTransform_SequenceOrdering(t *testing.T) {
	d := diagram.Diagram{
		Type: diagram.KindSequence,
		Participants: []diagram.Participant{
			{ID: "a", Name: "A", Type: "actor"},
			{ID: "b", Name: "B", Type: "object"},
		},
		Messages: []diagram.Message{
			{ID: "m3", From: "b", To: "a", Label: "third", Type: diagram.MessageReturn, Order: 3},
			{ID: "m1", From: "a", To: "b", Label: "first", Type: diagram.MessageSync, Order: 1},
			{ID: "m2", From: "a", To: "b", Label: "second", Type: diagram.MessageAsync, Order: 2},
		},
	}

	nodes, edges := Transform(d)

	// Participants get left-to-right position hints by index.
	if nodes[0].Position.X >= nodes[1].Position.X {
		t.Errorf("participant X hints not increasing: %v, %v", nodes[0].Position.X, nodes[1].Position.X)
	}

	// Edges follow the Order field, not array position.
	wantIDs := []string{"m1", "m2", "m3"}
	for i, want := range wantIDs {
		if edges[i].ID != want {
			t.Errorf("edges[%d].ID = %q, want %q", i, edges[i].ID, want)
		}
	}

	if !edges[1].Data.Animated {
		t.Error("async message should be animated")
	}
	if !edges[2].Data.Dashed {
		t.Error("return message should be dashed")
	}
	if edges[0].Data.Animated || edges[0].Data.Dashed {
		t.Error("sync message should be plain")
	}

	// Sorting must not reorder the diagram's own message slice.
	if d.Messages[0].ID != "m3" {
		t.Error("transform mutated the input message order")
	}
}

func TestTransitionLabel(t *testing.T) {
	tests := []struct {
		name string
		in   diagram.StateTransition
		want string
	}{
		{"all parts", diagram.StateTransition{Trigger: "fire", Guard: "armed", Action: "launch"}, "fire [armed] / launch"},
		{"trigger only", diagram.StateTransition{Trigger: "fire"}, "fire"},
		{"guard only", diagram.StateTransition{Guard: "armed"}, "[armed]"},
		{"action only", diagram.StateTransition{Action: "launch"}, "/ launch"},
		{"empty", diagram.StateTransition{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transitionLabel(tt.in); got != tt.want {
				t.Errorf("transitionLabel(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransform_ComponentDashedDependencies(t *testing.T) {
	d := diagram.Diagram{
		Type: diagram.KindComponent,
		Components: []diagram.Component{
			{ID: "web", Name: "Web", Stereotype: "service"},
			{ID: "api", Name: "API"},
		},
		Dependencies: []diagram.Dependency{
			{Source: "web", Target: "api", Type: diagram.DependencyPlain},
			{Source: "api", Target: "web", Type: diagram.DependencyRealization},
		},
	}

	nodes, edges := Transform(d)

	if got, want := nodes[0].Data.Stereotype, "service"; got != want {
		t.Errorf("stereotype = %q, want %q", got, want)
	}
	if !edges[0].Data.Dashed {
		t.Error("plain dependency should be dashed")
	}
	if edges[1].Data.Dashed {
		t.Error("realization should be solid")
	}
}

func TestTransform_EmptyDiagram(t *testing.T) {
	for _, kind := range diagram.Kinds {
		nodes, edges := Transform(diagram.Diagram{Type: kind})
		if len(nodes) != 0 || len(edges) != 0 {
			t.Errorf("%s: empty diagram produced %d nodes, %d edges", kind, len(nodes), len(edges))
		}
	}
}
