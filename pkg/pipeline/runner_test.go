package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/diaflow/pkg/cache"
	"github.com/matzehuels/diaflow/pkg/diagram"
)

func classCandidate() map[string]any {
	return map[string]any{
		"type": "class",
		"classes": []any{
			map[string]any{"id": "a", "name": "A", "attributes": []any{}, "operations": []any{}},
			map[string]any{"id": "b", "name": "B", "attributes": []any{}, "operations": []any{}},
			map[string]any{"id": "c", "name": "C", "attributes": []any{}, "operations": []any{}},
		},
		"relationships": []any{
			map[string]any{"source": "b", "target": "a", "type": "inheritance"},
			map[string]any{"source": "c", "target": "a", "type": "inheritance"},
		},
	}
}

func TestExecute_ValidPayload(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), classCandidate(), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Validation.Valid {
		t.Errorf("validation errors: %v", res.Validation.Errors)
	}
	if got, want := len(res.Nodes), 3; got != want {
		t.Errorf("node count = %d, want %d", got, want)
	}
	if got, want := len(res.Edges), 2; got != want {
		t.Errorf("edge count = %d, want %d", got, want)
	}
	if res.Diagram.Type != diagram.KindClass {
		t.Errorf("kind = %q", res.Diagram.Type)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("cold run reported a layout cache hit")
	}
	// Layout ran: the connected nodes no longer share a position.
	seen := map[[2]float64]bool{}
	for _, n := range res.Nodes {
		key := [2]float64{n.Position.X, n.Position.Y}
		if seen[key] {
			t.Errorf("node %s overlaps another node at %+v", n.ID, n.Position)
		}
		seen[key] = true
	}
}

func TestExecute_InvalidPayloadDegrades(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	// Broken relationship entry: validation reports it, transform still
	// produces the decodable part of the payload.
	payload := classCandidate()
	payload["relationships"] = []any{
		map[string]any{"source": "b", "target": "missing", "type": "inheritance"},
	}

	res, err := r.Execute(context.Background(), payload, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Validation.Valid {
		t.Error("dangling reference reported valid")
	}
	if got, want := len(res.Nodes), 3; got != want {
		t.Errorf("node count = %d, want %d", got, want)
	}
}

func TestExecute_NonObjectPayload(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), "not a diagram", Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Validation.Valid {
		t.Error("string payload reported valid")
	}
	if len(res.Nodes) != 0 || len(res.Edges) != 0 {
		t.Errorf("got %d nodes, %d edges from a string payload", len(res.Nodes), len(res.Edges))
	}
	if res.Diagram.Type != diagram.KindClass {
		t.Errorf("coerced kind = %q, want class fallback", res.Diagram.Type)
	}
}

func TestExecute_KindOverride(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), classCandidate(), Options{Kind: diagram.KindComponent})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Diagram.Type != diagram.KindComponent {
		t.Errorf("kind = %q, want component override", res.Diagram.Type)
	}
}

func TestExecute_LayoutCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)

	first, err := r.Execute(ctx, classCandidate(), Options{})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit {
		t.Error("first run reported a cache hit")
	}

	second, err := r.Execute(ctx, classCandidate(), Options{})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run missed the layout cache")
	}
	for i := range first.Nodes {
		if first.Nodes[i].Position != second.Nodes[i].Position {
			t.Errorf("node %s position differs: %+v vs %+v",
				first.Nodes[i].ID, first.Nodes[i].Position, second.Nodes[i].Position)
		}
	}

	// Refresh bypasses the cache even when an entry exists.
	third, err := r.Execute(ctx, classCandidate(), Options{Refresh: true})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("refresh run reported a cache hit")
	}
}

func TestExecute_SweepsChangeCacheKey(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)

	if _, err := r.Execute(ctx, classCandidate(), Options{Sweeps: 2}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	res, err := r.Execute(ctx, classCandidate(), Options{Sweeps: 6})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("different sweep count hit the other run's cache entry")
	}
}

func TestExecuteDiagram_RoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	first, err := r.Execute(ctx, classCandidate(), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := r.ExecuteDiagram(ctx, first.Diagram, Options{})
	if err != nil {
		t.Fatalf("ExecuteDiagram: %v", err)
	}
	if !second.Validation.Valid {
		t.Errorf("stored diagram failed validation: %v", second.Validation.Errors)
	}
	if got, want := len(second.Nodes), len(first.Nodes); got != want {
		t.Errorf("node count = %d, want %d", got, want)
	}
	for i := range first.Nodes {
		if first.Nodes[i].Position != second.Nodes[i].Position {
			t.Errorf("node %s position differs after round trip", first.Nodes[i].ID)
		}
	}
}

func TestExecute_Concurrent(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Execute(ctx, classCandidate(), Options{}); err != nil {
				t.Errorf("Execute: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestExecute_Stats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), classCandidate(), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Stats.LayoutTime < 0 || res.Stats.LayoutTime > time.Minute {
		t.Errorf("layout time = %v", res.Stats.LayoutTime)
	}
}
