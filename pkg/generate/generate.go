// Package generate produces diagram payloads from natural language prompts.
//
// Generators return untyped JSON: outputs flow into the validation and
// transformation pipeline exactly like any other untrusted payload, so a
// misbehaving model degrades the diagram instead of crashing the caller.
package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/diaflow/pkg/diagram"
)

// ErrAPIKeyNotConfigured is returned when a generator needs credentials
// that were not supplied.
var ErrAPIKeyNotConfigured = errors.New("generate: api key not configured")

// Error wraps a provider failure with the request that caused it.
type Error struct {
	Kind   diagram.Kind
	Prompt string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generate %s diagram: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Request describes a single generation call. History carries prior
// conversation turns so the model can apply incremental edits; Current is
// the diagram being edited, or a zero diagram for a fresh request.
type Request struct {
	Kind    diagram.Kind
	Prompt  string
	History []Turn
	Current diagram.Diagram
}

// Turn is one prior exchange in the conversation.
type Turn struct {
	Role    string
	Content string
}

// Generator turns a request into an untyped diagram payload.
type Generator interface {
	Generate(ctx context.Context, req Request) (map[string]any, error)
}
