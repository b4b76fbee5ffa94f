package diagram

import (
	"fmt"
)

// Result is the outcome of validating a candidate payload.
// Valid is true iff Errors is empty.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// requiredCollections maps each kind to the element collections that must be
// present (as arrays) for the payload to be structurally valid.
var requiredCollections = map[Kind][]string{
	KindClass:        {"classes", "relationships"},
	KindUseCase:      {"actors", "useCases", "useCaseRelationships"},
	KindActivity:     {"activities", "transitions"},
	KindSequence:     {"participants", "messages"},
	KindStateMachine: {"states", "stateTransitions"},
	KindComponent:    {"components", "dependencies"},
}

// edgeCollections maps each kind to its connector collection and the element
// collection those connectors must reference.
var edgeCollections = map[Kind]struct {
	edges   string
	sources []string // collections contributing referenceable ids
}{
	KindClass:        {"relationships", []string{"classes"}},
	KindUseCase:      {"useCaseRelationships", []string{"actors", "useCases"}},
	KindActivity:     {"transitions", []string{"activities"}},
	KindSequence:     {"messages", []string{"participants"}},
	KindStateMachine: {"stateTransitions", []string{"states"}},
	KindComponent:    {"dependencies", []string{"components"}},
}

// Validate checks an arbitrary candidate value against the diagram contract.
//
// It never panics, whatever the input shape: nil, primitives, arrays and
// malformed objects all produce a Result with at least one error. Errors
// accumulate - all top-level collection problems are reported before
// field-level ones, and validation never stops at the first finding.
//
// The kind is resolved from the candidate's "type" field. A payload without
// any type field is treated as a legacy class diagram. The class kind gets
// the full deep per-field contract; every kind gets collection presence
// checks and connector reference checks.
func Validate(candidate any) Result {
	obj, ok := candidate.(map[string]any)
	if !ok || obj == nil {
		return invalid("Diagram must be a JSON object")
	}

	kind := KindClass
	if raw, present := obj["type"]; present {
		s, isStr := raw.(string)
		if !isStr {
			return invalid("type: Expected a string diagram kind")
		}
		k, known := ParseKind(s)
		if !known {
			return invalid(fmt.Sprintf("type: Unknown diagram kind %q", s))
		}
		kind = k
	}

	var errs []string

	// Top-level collection checks first, without short-circuiting.
	for _, name := range requiredCollections[kind] {
		if _, isArr := obj[name].([]any); !isArr {
			errs = append(errs, fmt.Sprintf("%s: Expected an array", name))
		}
	}

	if kind == KindClass {
		errs = append(errs, validateClasses(obj)...)
	}
	errs = append(errs, validateReferences(kind, obj)...)

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func invalid(msg string) Result {
	return Result{Valid: false, Errors: []string{msg}}
}

// validateClasses applies the deep per-field contract for the class kind.
func validateClasses(obj map[string]any) []string {
	var errs []string

	classes, _ := obj["classes"].([]any)
	for i, raw := range classes {
		c, ok := raw.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("classes[%d]: Expected an object", i))
			continue
		}
		if !isNonEmptyString(c["id"]) {
			errs = append(errs, fmt.Sprintf("classes[%d].id: Expected a non-empty string", i))
		}
		if !isNonEmptyString(c["name"]) {
			errs = append(errs, fmt.Sprintf("classes[%d].name: Expected a non-empty string", i))
		}
		if !isStringArray(c["attributes"]) {
			errs = append(errs, fmt.Sprintf("classes[%d].attributes: Expected array of strings", i))
		}
		if !isStringArray(c["operations"]) {
			errs = append(errs, fmt.Sprintf("classes[%d].operations: Expected array of strings", i))
		}
	}

	rels, _ := obj["relationships"].([]any)
	for i, raw := range rels {
		r, ok := raw.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("relationships[%d]: Expected an object", i))
			continue
		}
		if _, ok := r["source"].(string); !ok {
			errs = append(errs, fmt.Sprintf("relationships[%d].source: Expected a string", i))
		}
		if _, ok := r["target"].(string); !ok {
			errs = append(errs, fmt.Sprintf("relationships[%d].target: Expected a string", i))
		}
		if t, ok := r["type"].(string); !ok || !RelationKinds[t] {
			errs = append(errs, fmt.Sprintf("relationships[%d].type: Expected one of association, inheritance, composition, aggregation", i))
		}
		if label, present := r["label"]; present {
			if _, ok := label.(string); !ok {
				errs = append(errs, fmt.Sprintf("relationships[%d].label: Expected a string", i))
			}
		}
	}

	return errs
}

// validateReferences checks that every connector endpoint names a known
// element id. Dangling references are errors, not silently dropped: the
// layout stage assumes edges are resolvable.
func validateReferences(kind Kind, obj map[string]any) []string {
	spec := edgeCollections[kind]

	known := make(map[string]bool)
	for _, coll := range spec.sources {
		items, _ := obj[coll].([]any)
		for _, raw := range items {
			if m, ok := raw.(map[string]any); ok {
				if id, ok := m["id"].(string); ok && id != "" {
					known[id] = true
				}
			}
		}
	}

	srcField, dstField := "source", "target"
	if kind == KindSequence {
		srcField, dstField = "from", "to"
	}

	var errs []string
	edges, _ := obj[spec.edges].([]any)
	for i, raw := range edges {
		e, ok := raw.(map[string]any)
		if !ok {
			continue // shape errors reported by the deep checks where specified
		}
		if src, ok := e[srcField].(string); ok && !known[src] {
			errs = append(errs, fmt.Sprintf("%s[%d].%s: Unknown element id %q", spec.edges, i, srcField, src))
		}
		if dst, ok := e[dstField].(string); ok && !known[dst] {
			errs = append(errs, fmt.Sprintf("%s[%d].%s: Unknown element id %q", spec.edges, i, dstField, dst))
		}
	}
	return errs
}

func isNonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func isStringArray(v any) bool {
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range arr {
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}
