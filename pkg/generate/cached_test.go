package generate

import (
	"context"
	"testing"

	"github.com/matzehuels/diaflow/pkg/cache"
	"github.com/matzehuels/diaflow/pkg/diagram"
)

// countingGenerator records how many times it is invoked.
type countingGenerator struct {
	calls int
}

func (g *countingGenerator) Generate(ctx context.Context, req Request) (map[string]any, error) {
	g.calls++
	return Template{}.Generate(ctx, req)
}

func TestCached_RepeatedPromptHitsCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingGenerator{}
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	g := NewCached(inner, fc, nil)

	req := Request{Kind: diagram.KindClass, Prompt: "model a shop"}
	first, err := g.Generate(ctx, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := g.Generate(ctx, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if first["type"] != second["type"] {
		t.Errorf("cached payload differs: %v vs %v", first["type"], second["type"])
	}
}

func TestCached_EditRequestsBypassCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingGenerator{}
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	g := NewCached(inner, fc, nil)

	req := Request{
		Kind:    diagram.KindClass,
		Prompt:  "add a class",
		History: []Turn{{Role: "user", Content: "model a shop"}},
	}
	if _, err := g.Generate(ctx, req); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := g.Generate(ctx, req); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 (edits must not be cached)", inner.calls)
	}
}

func TestCached_DistinctKindsDistinctEntries(t *testing.T) {
	ctx := context.Background()
	inner := &countingGenerator{}
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	g := NewCached(inner, fc, nil)

	if _, err := g.Generate(ctx, Request{Kind: diagram.KindClass, Prompt: "shop"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	payload, err := g.Generate(ctx, Request{Kind: diagram.KindSequence, Prompt: "shop"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
	if payload["type"] != "sequence" {
		t.Errorf("type = %v, want sequence", payload["type"])
	}
}
