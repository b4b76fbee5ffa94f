package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diaflow/pkg/cache"
	"github.com/matzehuels/diaflow/pkg/diagram"
	"github.com/matzehuels/diaflow/pkg/graph"
	"github.com/matzehuels/diaflow/pkg/layout"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete validate → transform → layout pipeline on an
// untrusted payload.
//
// Execute never fails on malformed input - that is the pipeline's central
// property. Structural problems are reported in Result.Validation and logged
// as warnings, and the transform proceeds on the best-effort coerced
// payload. The returned error is reserved for infrastructure faults, which
// currently cannot occur; the signature matches the other stages for
// forward compatibility.
func (r *Runner) Execute(ctx context.Context, candidate any, opts Options) (*Result, error) {
	opts.setDefaults()
	logger := r.stageLogger(opts)

	result := &Result{}

	// Stage 1: strict validation, diagnostics only.
	validateStart := time.Now()
	result.Validation = diagram.Validate(candidate)
	result.Stats.ValidateTime = time.Since(validateStart)
	if !result.Validation.Valid {
		logger.Warn("payload failed validation, continuing with best-effort graph",
			"errors", len(result.Validation.Errors))
		for _, e := range result.Validation.Errors {
			logger.Debug("validation error", "detail", e)
		}
	}

	// Stage 2: lenient coerce + transform.
	transformStart := time.Now()
	d := diagram.Coerce(candidate)
	if opts.Kind != "" {
		d.Type = opts.Kind
	}
	result.Diagram = d
	result.Nodes, result.Edges = graph.Transform(d)
	result.Stats.TransformTime = time.Since(transformStart)
	result.Stats.NodeCount = len(result.Nodes)
	result.Stats.EdgeCount = len(result.Edges)

	logger.Debug("transformed diagram",
		"kind", d.Type,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount)

	// Stage 3: layout, cached by diagram content.
	layoutStart := time.Now()
	nodes, hit := r.layoutWithCache(ctx, d, result.Nodes, result.Edges, opts)
	result.Nodes = nodes
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = hit

	logger.Info("pipeline complete",
		"kind", d.Type,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"valid", result.Validation.Valid,
		"layout_cached", hit)

	return result, nil
}

// ExecuteDiagram runs the pipeline on an already-typed diagram, e.g. one
// loaded from storage. The diagram is re-validated and re-laid-out; stored
// positions are never trusted.
func (r *Runner) ExecuteDiagram(ctx context.Context, d diagram.Diagram, opts Options) (*Result, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var candidate any
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, err
	}
	return r.Execute(ctx, candidate, opts)
}

// layoutWithCache returns positioned nodes, consulting the cache first.
// Cached entries store only id → position pairs; they are applied to the
// freshly transformed nodes so payload data always comes from the source.
func (r *Runner) layoutWithCache(ctx context.Context, d diagram.Diagram, nodes []graph.Node, edges []graph.Edge, opts Options) ([]graph.Node, bool) {
	layoutOpts := layout.Options{Kind: d.Type, Sweeps: opts.Sweeps}

	data, err := diagram.Marshal(d)
	if err != nil {
		return layout.Layout(nodes, edges, layoutOpts), false
	}
	key := r.Keyer.LayoutKey(cache.Hash(data), cache.LayoutKeyOpts{
		Kind:   string(d.Type),
		Sweeps: opts.Sweeps,
	})

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if positioned, ok := applyPositions(nodes, cached); ok {
				return positioned, true
			}
			// Stale or incomplete entry - recompute below.
		}
	}

	positioned := layout.Layout(nodes, edges, layoutOpts)
	if entry, err := marshalPositions(positioned); err == nil {
		_ = r.Cache.Set(ctx, key, entry, cache.TTLLayout)
	}
	return positioned, false
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) stageLogger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// positionEntry is the cached layout record for one node.
type positionEntry struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func marshalPositions(nodes []graph.Node) ([]byte, error) {
	entries := make([]positionEntry, len(nodes))
	for i, n := range nodes {
		entries[i] = positionEntry{ID: n.ID, X: n.Position.X, Y: n.Position.Y}
	}
	return json.Marshal(entries)
}

// applyPositions overlays cached positions onto freshly transformed nodes.
// Returns false when any node is missing from the cache entry, so a changed
// graph never renders with a stale partial layout.
func applyPositions(nodes []graph.Node, data []byte) ([]graph.Node, bool) {
	var entries []positionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	byID := make(map[string]graph.Position, len(entries))
	for _, e := range entries {
		byID[e.ID] = graph.Position{X: e.X, Y: e.Y}
	}

	out := graph.CloneNodes(nodes)
	for i := range out {
		pos, ok := byID[out[i].ID]
		if !ok {
			return nil, false
		}
		out[i].Position = pos
	}
	return out, true
}
