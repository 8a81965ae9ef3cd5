package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qualmap/pkg/cache"
	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/observability"
	"github.com/matzehuels/qualmap/pkg/render/scene"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger: it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default entry lifetimes when positive.
	TTL time.Duration
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → scene → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	ds, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Dataset = ds
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Scene
	sceneStart := time.Now()
	sc, sceneHit, err := r.BuildSceneWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	result.Scene = sc
	result.Stats.SceneTime = time.Since(sceneStart)
	result.CacheInfo.SceneHit = sceneHit

	r.Logger.Info("built scene",
		"entities", sc.Stats.Entities,
		"links", sc.Stats.Links,
		"envelopes", sc.Stats.Envelopes,
		"cached", sceneHit,
		"duration", result.Stats.SceneTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sc, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and normalizes the input workbook. Loading is never cached.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()

	ds, err := Load(opts)

	entities := 0
	if ds != nil {
		entities = len(ds.Entities)
	}
	hooks.OnLoadComplete(ctx, opts.Input, entities, time.Since(start), err)
	return ds, err
}

// BuildSceneWithCacheInfo lays out ds with caching and returns cache hit info.
func (r *Runner) BuildSceneWithCacheInfo(ctx context.Context, ds *dataset.Dataset, opts Options) (*scene.Scene, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForScene(); err != nil {
		return nil, false, err
	}

	datasetHash, err := cache.HashValue(ds)
	if err != nil {
		return nil, false, fmt.Errorf("hash dataset: %w", err)
	}
	cacheKey := r.Keyer.SceneKey(datasetHash, opts.SceneKeyOpts())

	if !opts.Refresh {
		if sc, ok := r.cachedScene(ctx, cacheKey); ok {
			logSceneStats(opts, sc)
			return sc, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnSceneStart(ctx, len(ds.Entities), len(ds.Relations))
	start := time.Now()
	sc, err := BuildScene(ds, opts)
	dropped := 0
	if sc != nil {
		dropped = sc.Stats.Unresolved + sc.Stats.SelfLoops
	}
	hooks.OnSceneComplete(ctx, dropped, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := cache.Encode(sc); err == nil {
		r.store(ctx, "scene", cacheKey, data, cache.SceneTTL)
	}
	return sc, false, nil
}

// BuildScene is a convenience wrapper that calls BuildSceneWithCacheInfo and
// discards the cache hit info.
func (r *Runner) BuildScene(ctx context.Context, ds *dataset.Dataset, opts Options) (*scene.Scene, error) {
	sc, _, err := r.BuildSceneWithCacheInfo(ctx, ds, opts)
	return sc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// Artifacts are keyed by scene ID, which already covers the dataset and the
// frame.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sc *scene.Scene, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit := r.lookup(ctx, "artifact", r.Keyer.ArtifactKey(sc.ID, opts.ArtifactKeyOpts(format)))
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, sc, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.store(ctx, "artifact", r.Keyer.ArtifactKey(sc.ID, opts.ArtifactKeyOpts(format)), data, cache.ArtifactTTL)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, sc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cachedScene(ctx context.Context, key string) (*scene.Scene, bool) {
	data, hit := r.lookup(ctx, "scene", key)
	if !hit {
		return nil, false
	}
	var sc scene.Scene
	if err := cache.Decode(data, &sc); err != nil {
		r.Logger.Debug("discarding undecodable cache entry", "key", key, "err", err)
		return nil, false
	}
	return &sc, true
}

// lookup reads key, treating backend errors as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// store writes key, logging but otherwise ignoring backend errors.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
