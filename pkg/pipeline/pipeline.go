// Package pipeline provides the core diagram pipeline for diaflow.
//
// It implements the validate → transform → layout sequence that turns an
// untrusted diagram payload into a positioned node/edge graph, usable by the
// CLI, the HTTP server and the project manager alike. Centralizing the
// staging here keeps the lenient-degrade policy in one place: validation
// diagnostics are collected and logged, but a structurally imperfect payload
// still produces the best renderable graph it can.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, payload, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	nodes, edges := result.Nodes, result.Edges
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diaflow/pkg/diagram"
	"github.com/matzehuels/diaflow/pkg/graph"
)

// DefaultSweeps is the default number of ordering passes for layout.
const DefaultSweeps = 2

// Options contains configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Kind overrides the layout profile; empty means derive it from the
	// payload's type tag.
	Kind diagram.Kind `json:"kind,omitempty"`

	// Sweeps is the number of crossing-reduction passes (0 = default).
	Sweeps int `json:"sweeps,omitempty"`

	// Refresh bypasses the layout cache.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives stage progress and validation warnings (not serialized).
	Logger *log.Logger `json:"-"`
}

// setDefaults fills unset options.
func (o *Options) setDefaults() {
	if o.Sweeps == 0 {
		o.Sweeps = DefaultSweeps
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the coerced payload the graph was built from.
	Diagram diagram.Diagram

	// Validation holds the strict diagnostics for the original payload.
	// The graph is produced even when Validation.Valid is false.
	Validation diagram.Result

	// Nodes are the laid-out graph nodes.
	Nodes []graph.Node

	// Edges are the graph edges (including any the layout step ignored).
	Edges []graph.Edge

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	ValidateTime  time.Duration
	TransformTime time.Duration
	LayoutTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether node positions came from cache
}
