package diagram

import (
	"encoding/json"
	"strings"
	"testing"
)

// decode parses a JSON literal into the untyped shape Validate receives.
func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}

func TestValidate_NonObjectInputs(t *testing.T) {
	tests := []struct {
		name      string
		candidate any
	}{
		{"nil", nil},
		{"string", "hello"},
		{"number", 42.0},
		{"bool", true},
		{"array", []any{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.candidate)
			if res.Valid {
				t.Fatalf("Validate(%v) reported valid", tt.candidate)
			}
			if got, want := len(res.Errors), 1; got != want {
				t.Errorf("error count = %d, want %d", got, want)
			}
			if res.Errors[0] != "Diagram must be a JSON object" {
				t.Errorf("error = %q", res.Errors[0])
			}
		})
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	res := Validate(decode(t, `{"type": "flowchart"}`))
	if res.Valid {
		t.Fatal("unknown kind reported valid")
	}
	if got := res.Errors[0]; !strings.Contains(got, "flowchart") {
		t.Errorf("error = %q, want mention of the unknown kind", got)
	}
}

func TestValidate_MissingCollectionsAccumulate(t *testing.T) {
	// Both collections missing: both must be reported, not just the first.
	res := Validate(decode(t, `{"type": "class"}`))
	if res.Valid {
		t.Fatal("missing collections reported valid")
	}
	if got, want := len(res.Errors), 2; got != want {
		t.Fatalf("error count = %d, want %d: %v", got, want, res.Errors)
	}
}

func TestValidate_RequiredCollectionsPerKind(t *testing.T) {
	tests := []struct {
		kind    Kind
		valid   string
		missing int // errors when the payload carries only the type tag
	}{
		{KindClass, `{"type":"class","classes":[],"relationships":[]}`, 2},
		{KindUseCase, `{"type":"use-case","actors":[],"useCases":[],"useCaseRelationships":[]}`, 3},
		{KindActivity, `{"type":"activity","activities":[],"transitions":[]}`, 2},
		{KindSequence, `{"type":"sequence","participants":[],"messages":[]}`, 2},
		{KindStateMachine, `{"type":"state-machine","states":[],"stateTransitions":[]}`, 2},
		{KindComponent, `{"type":"component","components":[],"dependencies":[]}`, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if res := Validate(decode(t, tt.valid)); !res.Valid {
				t.Errorf("empty valid payload rejected: %v", res.Errors)
			}
			res := Validate(decode(t, `{"type":"`+string(tt.kind)+`"}`))
			if got := len(res.Errors); got != tt.missing {
				t.Errorf("missing-collection errors = %d, want %d: %v", got, tt.missing, res.Errors)
			}
		})
	}
}

func TestValidate_LegacyPayloadWithoutType(t *testing.T) {
	// Payloads that predate the type tag are class diagrams.
	res := Validate(decode(t, `{
		"classes": [{"id": "a", "name": "A", "attributes": [], "operations": []}],
		"relationships": []
	}`))
	if !res.Valid {
		t.Fatalf("legacy payload rejected: %v", res.Errors)
	}
}

func TestValidate_ClassDeepChecks(t *testing.T) {
	res := Validate(decode(t, `{
		"type": "class",
		"classes": [
			{"id": "a", "name": "A", "attributes": [], "operations": []},
			{"id": "", "name": "B", "attributes": ["x", 7], "operations": []},
			"not an object"
		],
		"relationships": [
			{"source": "a", "target": "a", "type": "friendship"}
		]
	}`))
	if res.Valid {
		t.Fatal("malformed classes reported valid")
	}

	wantErrs := []string{
		"classes[1].id: Expected a non-empty string",
		"classes[1].attributes: Expected array of strings",
		"classes[2]: Expected an object",
		"relationships[0].type: Expected one of association, inheritance, composition, aggregation",
	}
	for _, want := range wantErrs {
		found := false
		for _, got := range res.Errors {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing error %q in %v", want, res.Errors)
		}
	}
}

func TestValidate_DanglingReferences(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			"class relationship",
			`{"type":"class",
			  "classes":[{"id":"a","name":"A","attributes":[],"operations":[]}],
			  "relationships":[{"source":"a","target":"ghost","type":"association"}]}`,
			`relationships[0].target: Unknown element id "ghost"`,
		},
		{
			"sequence message from",
			`{"type":"sequence",
			  "participants":[{"id":"u","name":"User","type":"actor"}],
			  "messages":[{"id":"m1","from":"nobody","to":"u","label":"hi","type":"sync","order":1}]}`,
			`messages[0].from: Unknown element id "nobody"`,
		},
		{
			"use-case relationship",
			`{"type":"use-case",
			  "actors":[{"id":"x","name":"X"}],
			  "useCases":[{"id":"u1","name":"U1"}],
			  "useCaseRelationships":[{"source":"x","target":"u2","type":"association"}]}`,
			`useCaseRelationships[0].target: Unknown element id "u2"`,
		},
		{
			"state transition",
			`{"type":"state-machine",
			  "states":[{"id":"s1","name":"S1"}],
			  "stateTransitions":[{"source":"s0","target":"s1"}]}`,
			`stateTransitions[0].source: Unknown element id "s0"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(decode(t, tt.payload))
			if res.Valid {
				t.Fatal("dangling reference reported valid")
			}
			found := false
			for _, got := range res.Errors {
				if got == tt.wantErr {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("missing error %q in %v", tt.wantErr, res.Errors)
			}
		})
	}
}

func TestValidate_ValidSequencePayload(t *testing.T) {
	res := Validate(decode(t, `{
		"type": "sequence",
		"participants": [
			{"id": "u", "name": "User", "type": "actor"},
			{"id": "s", "name": "Server", "type": "object"}
		],
		"messages": [
			{"id": "m1", "from": "u", "to": "s", "label": "request", "type": "sync", "order": 1},
			{"id": "m2", "from": "s", "to": "u", "label": "response", "type": "return", "order": 2}
		]
	}`))
	if !res.Valid {
		t.Fatalf("valid sequence payload rejected: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("errors = %v, want none", res.Errors)
	}
}
