package generate

import (
	"fmt"
	"strings"

	"github.com/matzehuels/diaflow/pkg/diagram"
)

// kindSchemas describes, per diagram kind, the JSON shape the model must
// produce. The descriptions mirror what the validator accepts so that a
// compliant response passes validation unchanged.
var kindSchemas = map[diagram.Kind]string{
	diagram.KindClass: `{
  "type": "class",
  "classes": [{"id": "string", "name": "string", "attributes": ["string"], "operations": ["string"]}],
  "relationships": [{"source": "class id", "target": "class id", "type": "association|inheritance|composition|aggregation", "label": "optional string"}]
}`,
	diagram.KindUseCase: `{
  "type": "use-case",
  "actors": [{"id": "string", "name": "string"}],
  "useCases": [{"id": "string", "name": "string", "description": "optional string"}],
  "useCaseRelationships": [{"source": "actor or use case id", "target": "use case id", "type": "association|include|extend|generalization"}]
}`,
	diagram.KindActivity: `{
  "type": "activity",
  "activities": [{"id": "string", "type": "initial|action|decision|merge|fork|join|final|flowFinal", "label": "string"}],
  "transitions": [{"source": "activity id", "target": "activity id", "guard": "optional string", "label": "optional string"}]
}`,
	diagram.KindSequence: `{
  "type": "sequence",
  "participants": [{"id": "string", "name": "string", "type": "actor|object"}],
  "messages": [{"id": "string", "from": "participant id", "to": "participant id", "label": "string", "type": "sync|async|return|create|destroy", "order": 1}]
}`,
	diagram.KindStateMachine: `{
  "type": "state-machine",
  "states": [{"id": "string", "name": "string", "isInitial": false, "isFinal": false, "entryAction": "optional", "exitAction": "optional"}],
  "stateTransitions": [{"source": "state id", "target": "state id", "trigger": "optional", "guard": "optional", "action": "optional"}]
}`,
	diagram.KindComponent: `{
  "type": "component",
  "components": [{"id": "string", "name": "string", "stereotype": "optional", "interfaces": [{"id": "string", "name": "string", "type": "provided|required"}]}],
  "dependencies": [{"source": "component id", "target": "component id", "type": "dependency|realization", "label": "optional string"}]
}`,
}

// BuildPrompt assembles the full instruction text for one generation call.
func BuildPrompt(req Request) string {
	schema := kindSchemas[req.Kind]
	if schema == "" {
		schema = kindSchemas[diagram.KindClass]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a UML %s diagram assistant. ", req.Kind)
	b.WriteString("Respond with a single JSON object and nothing else, matching this schema:\n\n")
	b.WriteString(schema)
	b.WriteString("\n\nEvery id must be unique and every reference must point at a declared element.\n")

	if len(req.History) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, t := range req.History {
			fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
		}
	}
	if !req.Current.Empty() {
		b.WriteString("\nCurrent diagram (apply the request as an edit, keep unrelated elements):\n")
		if raw, err := diagram.Marshal(req.Current); err == nil {
			b.Write(raw)
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\nRequest: %s\n", req.Prompt)
	return b.String()
}
