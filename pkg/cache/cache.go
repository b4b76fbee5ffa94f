// Package cache provides content-addressed caching for pipeline stages.
//
// Computed layouts and generation results are keyed by hashes of their
// inputs, so identical payloads never pay for ranking or an LLM round trip
// twice. Backends:
//   - file: JSON files under a cache directory, for CLI use
//   - redis: shared cache for multi-instance deployments
//   - null: caching disabled
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached artifact class.
const (
	// TTLLayout is how long computed layouts stay valid. Layouts are pure
	// functions of their inputs, so the TTL only bounds disk usage.
	TTLLayout = 7 * 24 * time.Hour

	// TTLGeneration is how long generated diagram payloads stay valid.
	TTLGeneration = 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the layout options that participate in the cache key.
type LayoutKeyOpts struct {
	Kind   string `json:"kind"`
	Sweeps int    `json:"sweeps"`
}

// Keyer generates cache keys for pipeline artifacts.
type Keyer interface {
	// LayoutKey generates a key for a computed layout, from the content
	// hash of the diagram payload and the layout options.
	LayoutKey(diagramHash string, opts LayoutKeyOpts) string

	// GenerationKey generates a key for a generated diagram payload, from
	// the prompt and the requested diagram kind.
	GenerationKey(kind, prompt string) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", diagramHash, opts)
}

// GenerationKey generates a key for a generated diagram payload.
func (k *DefaultKeyer) GenerationKey(kind, prompt string) string {
	return hashKey("gen", kind, prompt)
}
