// Package diagram defines the unified interchange format for all supported
// UML diagram kinds and validates untrusted payloads against it.
//
// A Diagram is a discriminated union keyed by Type: only the element
// collections belonging to that kind are meaningful. The format is the
// contract between the generation side (templates or an LLM returning JSON)
// and the graph pipeline, and it is designed for round-trip fidelity:
// decode → transform → reverse-transform → encode produces an equivalent
// payload.
//
// Payloads arrive from a probabilistic generator and are untrusted. Use
// Validate for strict structural diagnostics and Coerce for the lenient
// best-effort decode the pipeline applies even when validation fails.
package diagram

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Diagram Kinds - Single Source of Truth
// =============================================================================

// Kind identifies one of the six supported diagram categories.
type Kind string

// Supported diagram kinds.
const (
	KindClass        Kind = "class"
	KindUseCase      Kind = "use-case"
	KindActivity     Kind = "activity"
	KindSequence     Kind = "sequence"
	KindStateMachine Kind = "state-machine"
	KindComponent    Kind = "component"
)

// Kinds lists all supported diagram kinds in stable order.
var Kinds = []Kind{
	KindClass,
	KindUseCase,
	KindActivity,
	KindSequence,
	KindStateMachine,
	KindComponent,
}

// ParseKind resolves a string to a Kind.
// Returns false if the string is not one of the six supported kinds.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Valid reports whether k is one of the six supported kinds.
func (k Kind) Valid() bool {
	_, ok := ParseKind(string(k))
	return ok
}

// =============================================================================
// Element Kinds
// =============================================================================

// Class relationship kinds.
const (
	RelationAssociation = "association"
	RelationInheritance = "inheritance"
	RelationComposition = "composition"
	RelationAggregation = "aggregation"
)

// RelationKinds is the set of valid class relationship kinds.
var RelationKinds = map[string]bool{
	RelationAssociation: true,
	RelationInheritance: true,
	RelationComposition: true,
	RelationAggregation: true,
}

// Use-case relationship kinds.
const (
	UseCaseRelAssociation    = "association"
	UseCaseRelInclude        = "include"
	UseCaseRelExtend         = "extend"
	UseCaseRelGeneralization = "generalization"
)

// Activity node kinds.
const (
	ActivityInitial   = "initial"
	ActivityAction    = "action"
	ActivityDecision  = "decision"
	ActivityMerge     = "merge"
	ActivityFork      = "fork"
	ActivityJoin      = "join"
	ActivityFinal     = "final"
	ActivityFlowFinal = "flowFinal"
)

// Sequence participant kinds.
const (
	ParticipantActor    = "actor"
	ParticipantObject   = "object"
	ParticipantBoundary = "boundary"
	ParticipantControl  = "control"
	ParticipantEntity   = "entity"
)

// Sequence message kinds.
const (
	MessageSync    = "sync"
	MessageAsync   = "async"
	MessageReturn  = "return"
	MessageCreate  = "create"
	MessageDestroy = "destroy"
)

// Component interface directions.
const (
	InterfaceProvided = "provided"
	InterfaceRequired = "required"
)

// Component dependency kinds.
const (
	DependencyPlain       = "dependency"
	DependencyRealization = "realization"
)

// =============================================================================
// Elements
// =============================================================================

// Class is a class-diagram element. Attribute and operation strings are
// free text (conventionally "<visibility> name: type") and are preserved
// verbatim; the pipeline never parses this sub-syntax.
type Class struct {
	ID         string   `json:"id" bson:"id"`
	Name       string   `json:"name" bson:"name"`
	Attributes []string `json:"attributes" bson:"attributes"`
	Operations []string `json:"operations" bson:"operations"`
}

// Relationship is a directed class-diagram connector.
type Relationship struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Type   string `json:"type" bson:"type"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// Actor is a use-case diagram actor.
type Actor struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// UseCase is a use-case element.
type UseCase struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// UseCaseRelationship connects actors and use cases.
type UseCaseRelationship struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Type   string `json:"type" bson:"type"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// Activity is an activity-diagram node (initial, action, decision, ...).
type Activity struct {
	ID    string `json:"id" bson:"id"`
	Type  string `json:"type" bson:"type"`
	Label string `json:"label" bson:"label"`
}

// Transition is an activity-diagram flow edge.
type Transition struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Guard  string `json:"guard,omitempty" bson:"guard,omitempty"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// Participant is a sequence-diagram lifeline.
type Participant struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
	Type string `json:"type" bson:"type"`
}

// Message is a sequence-diagram message. Order is authoritative for
// sequencing - array position is not.
type Message struct {
	ID    string `json:"id" bson:"id"`
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label" bson:"label"`
	Type  string `json:"type" bson:"type"`
	Order int    `json:"order" bson:"order"`
}

// State is a state-machine node.
type State struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	IsInitial   bool   `json:"isInitial,omitempty" bson:"isInitial,omitempty"`
	IsFinal     bool   `json:"isFinal,omitempty" bson:"isFinal,omitempty"`
	EntryAction string `json:"entryAction,omitempty" bson:"entryAction,omitempty"`
	ExitAction  string `json:"exitAction,omitempty" bson:"exitAction,omitempty"`
}

// StateTransition is a state-machine edge with optional trigger/guard/action.
type StateTransition struct {
	Source  string `json:"source" bson:"source"`
	Target  string `json:"target" bson:"target"`
	Trigger string `json:"trigger,omitempty" bson:"trigger,omitempty"`
	Guard   string `json:"guard,omitempty" bson:"guard,omitempty"`
	Action  string `json:"action,omitempty" bson:"action,omitempty"`
}

// Interface is a provided or required interface on a component.
type Interface struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
	Type string `json:"type" bson:"type"` // "provided" or "required"
}

// Component is a component-diagram element.
type Component struct {
	ID         string      `json:"id" bson:"id"`
	Name       string      `json:"name" bson:"name"`
	Stereotype string      `json:"stereotype,omitempty" bson:"stereotype,omitempty"`
	Interfaces []Interface `json:"interfaces,omitempty" bson:"interfaces,omitempty"`
}

// Dependency is a component-diagram connector.
type Dependency struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Type   string `json:"type" bson:"type"` // "dependency" or "realization"
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// =============================================================================
// Diagram - Unified Interchange Format
// =============================================================================

// Diagram is the unified interchange format for all diagram kinds.
//
// This is a discriminated union - check Type to determine which element
// collections are populated:
//
//	class:         Classes, Relationships
//	use-case:      Actors, UseCases, UseCaseRelationships
//	activity:      Activities, Transitions
//	sequence:      Participants, Messages
//	state-machine: States, StateTransitions
//	component:     Components, Dependencies
//
// Collections belonging to other kinds are left nil. Absent collections are
// treated as empty everywhere downstream.
type Diagram struct {
	Type Kind `json:"type" bson:"type"`

	// Class diagram
	Classes       []Class        `json:"classes,omitempty" bson:"classes,omitempty"`
	Relationships []Relationship `json:"relationships,omitempty" bson:"relationships,omitempty"`

	// Use-case diagram
	Actors               []Actor               `json:"actors,omitempty" bson:"actors,omitempty"`
	UseCases             []UseCase             `json:"useCases,omitempty" bson:"useCases,omitempty"`
	UseCaseRelationships []UseCaseRelationship `json:"useCaseRelationships,omitempty" bson:"useCaseRelationships,omitempty"`

	// Activity diagram
	Activities  []Activity   `json:"activities,omitempty" bson:"activities,omitempty"`
	Transitions []Transition `json:"transitions,omitempty" bson:"transitions,omitempty"`

	// Sequence diagram
	Participants []Participant `json:"participants,omitempty" bson:"participants,omitempty"`
	Messages     []Message     `json:"messages,omitempty" bson:"messages,omitempty"`

	// State machine diagram
	States           []State           `json:"states,omitempty" bson:"states,omitempty"`
	StateTransitions []StateTransition `json:"stateTransitions,omitempty" bson:"stateTransitions,omitempty"`

	// Component diagram
	Components   []Component  `json:"components,omitempty" bson:"components,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty" bson:"dependencies,omitempty"`
}

// Empty reports whether the diagram has no elements at all, regardless of
// its type tag.
func (d Diagram) Empty() bool {
	return len(d.Classes) == 0 && len(d.Relationships) == 0 &&
		len(d.Actors) == 0 && len(d.UseCases) == 0 && len(d.UseCaseRelationships) == 0 &&
		len(d.Activities) == 0 && len(d.Transitions) == 0 &&
		len(d.Participants) == 0 && len(d.Messages) == 0 &&
		len(d.States) == 0 && len(d.StateTransitions) == 0 &&
		len(d.Components) == 0 && len(d.Dependencies) == 0
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Diagram to pretty-printed JSON bytes.
func Marshal(d Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Diagram.
// Returns an error if the bytes are not valid JSON or the type tag is not
// one of the supported kinds. Use Coerce for the lenient path.
func Unmarshal(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, fmt.Errorf("unmarshal diagram: %w", err)
	}
	if d.Type == "" {
		// Legacy payloads predate the type tag and are class diagrams.
		d.Type = KindClass
	}
	if !d.Type.Valid() {
		return Diagram{}, fmt.Errorf("unknown diagram type: %q", d.Type)
	}
	return d, nil
}

// Coerce converts an arbitrary decoded JSON value into a Diagram on a
// best-effort basis. Fields that cannot be coerced are dropped rather than
// reported; the caller is expected to have run Validate separately if it
// wants diagnostics. Coerce never fails - garbage in yields an empty class
// diagram out.
func Coerce(candidate any) Diagram {
	var d Diagram
	data, err := json.Marshal(candidate)
	if err == nil {
		// Unmarshal populates every field it can decode before reporting the
		// first type mismatch, which is exactly the lenient behavior wanted.
		_ = json.Unmarshal(data, &d)
	}
	if !d.Type.Valid() {
		d.Type = KindClass
	}
	return d
}
