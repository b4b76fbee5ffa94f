package generate

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/diaflow/pkg/cache"
)

// Cached wraps a Generator with a prompt-keyed cache. Only fresh requests
// are cached: once a request carries history or a current diagram it is an
// edit of mutable state and the model must be consulted.
type Cached struct {
	inner Generator
	cache cache.Cache
	keyer cache.Keyer
}

// NewCached wraps gen with the given cache. A nil keyer gets the default.
func NewCached(gen Generator, c cache.Cache, keyer cache.Keyer) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Cached{inner: gen, cache: c, keyer: keyer}
}

var _ Generator = (*Cached)(nil)

// Generate returns the cached payload for a repeated prompt, or delegates
// and stores the result. Cache failures fall through to the inner generator.
func (c *Cached) Generate(ctx context.Context, req Request) (map[string]any, error) {
	cacheable := len(req.History) == 0 && req.Current.Empty()
	key := c.keyer.GenerationKey(string(req.Kind), req.Prompt)

	if cacheable {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			var payload map[string]any
			if err := json.Unmarshal(data, &payload); err == nil {
				return payload, nil
			}
		}
	}

	payload, err := c.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if data, err := json.Marshal(payload); err == nil {
			_ = c.cache.Set(ctx, key, data, cache.TTLGeneration)
		}
	}
	return payload, nil
}
