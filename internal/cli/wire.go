package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diaflow/pkg/cache"
	"github.com/matzehuels/diaflow/pkg/generate"
	"github.com/matzehuels/diaflow/pkg/pipeline"
	"github.com/matzehuels/diaflow/pkg/project"
)

// newStore builds the project store selected by the config.
func newStore(ctx context.Context, cfg StoreConfig) (project.Store, error) {
	switch cfg.Backend {
	case "", "file":
		return project.NewFileStore(cfg.Dir)
	case "mongo":
		return project.NewMongoStore(ctx, project.MongoConfig{
			URI:        cfg.URI,
			Database:   cfg.Database,
			Collection: cfg.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// newCache builds the layout cache selected by the config. Cache failures
// degrade to the null cache with a warning since caching is an optimization.
func newCache(ctx context.Context, cfg CacheConfig, logger *log.Logger) cache.Cache {
	switch cfg.Backend {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			if base, err := os.UserCacheDir(); err == nil {
				dir = filepath.Join(base, appName)
			}
		}
		if dir == "" {
			return cache.NewNullCache()
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Warn("file cache unavailable", "err", err)
			return cache.NewNullCache()
		}
		return c
	case "redis":
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Addr, DB: cfg.DB})
		if err != nil {
			logger.Warn("redis cache unavailable", "err", err)
			return cache.NewNullCache()
		}
		return c
	case "none":
		return cache.NewNullCache()
	default:
		logger.Warn("unknown cache backend, caching disabled", "backend", cfg.Backend)
		return cache.NewNullCache()
	}
}

// newManager assembles the full stack: store, cache, pipeline runner and
// project manager.
func newManager(ctx context.Context, cfg Config, logger *log.Logger) (*project.Manager, error) {
	store, err := newStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(newCache(ctx, cfg.Cache, logger), cache.NewDefaultKeyer(), logger)
	return project.NewManager(store, runner, logger), nil
}

// newGenerator builds the diagram generator. Offline mode and a missing API
// key both select the template generator so the CLI stays usable without
// credentials. Model-backed generators are wrapped with the configured cache
// so a repeated fresh prompt skips the round trip.
func newGenerator(ctx context.Context, cfg Config, offline bool, logger *log.Logger) generate.Generator {
	if offline || cfg.Generate.Offline {
		return generate.Template{}
	}
	g, err := generate.NewGemini(ctx, generate.GeminiOptions{APIKey: cfg.Generate.APIKey, Model: cfg.Generate.Model})
	if err != nil {
		logger.Warn("falling back to offline templates", "err", err)
		return generate.Template{}
	}
	return generate.NewCached(g, newCache(ctx, cfg.Cache, logger), cache.NewDefaultKeyer())
}
