package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mwielgus/postgraph/pkg/cache"
	"github.com/mwielgus/postgraph/pkg/errors"
	"github.com/mwielgus/postgraph/pkg/graph"
	"github.com/mwielgus/postgraph/pkg/post"
	"github.com/mwielgus/postgraph/pkg/timeline"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	posts, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.PostCount = len(posts)

	r.Logger.Info("loaded posts",
		"source", opts.Source,
		"posts", len(posts),
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	g, buildHit, err := r.BuildWithCacheInfo(ctx, post.Records(posts), opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Edges)
	result.CacheInfo.BuildHit = buildHit

	if data, err := graph.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("built graph",
		"branches", len(g.Branches),
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and parses posts from the source directory. Loading is never
// cached: it is a local disk walk and the posts' content feeds the build
// cache key.
func (r *Runner) Load(ctx context.Context, opts Options) ([]post.Post, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	return post.LoadDir(opts.Source)
}

// BuildWithCacheInfo constructs the graph model with caching and returns
// cache hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, records []timeline.Record, opts Options) (timeline.Graph, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return timeline.Graph{}, false, err
	}
	r.applyLogger(&opts)

	today, err := opts.TodayTime()
	if err != nil {
		return timeline.Graph{}, false, err
	}

	cacheKey := r.Keyer.ModelKey(recordsHash(records), opts.ModelKeyOpts(today))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graph.ReadGraph(bytes.NewReader(data)); err == nil {
				return g, true, nil
			}
			// Corrupt entry falls through to rebuild.
		}
	}

	g, err := timeline.Build(records, today, opts.Config())
	if err != nil {
		return timeline.Graph{}, false, err
	}

	if data, err := graph.MarshalGraph(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLModel)
	}

	return g, false, nil
}

// Build is a convenience wrapper that discards the cache hit info.
func (r *Runner) Build(ctx context.Context, records []timeline.Record, opts Options) (timeline.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, records, opts)
	return g, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g timeline.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	data, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, false, err
	}
	modelHash := cache.Hash(data)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Render(g, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// recordsHash fingerprints the record list for the build cache key. The
// records are already an ordered, canonical projection of the posts, so
// hashing their JSON form is stable.
func recordsHash(records []timeline.Record) string {
	data, _ := json.Marshal(records)
	return cache.Hash(data)
}
