package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gentree/pkg/cache"
	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/observability"
)

// Cache TTLs. Layouts depend only on their inputs, so they never go stale;
// the TTLs only bound the size of long-lived cache directories.
const (
	TTLDiagram  = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Load reads a forest file.
func (r *Runner) Load(ctx context.Context, path string) (*lineage.Forest, error) {
	start := time.Now()
	f, err := lineage.ReadForestFile(path)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Pipeline().OnLoadComplete(ctx, f.VertexCount(), f.EdgeCount(), time.Since(start), nil)
	r.Logger.Debug("loaded forest", "path", path, "vertices", f.VertexCount(), "edges", f.EdgeCount())
	return f, nil
}

// Execute runs layout and render with caching.
func (r *Runner) Execute(ctx context.Context, f *lineage.Forest, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.VertexCount = f.VertexCount()
	result.Stats.EdgeCount = f.EdgeCount()

	layoutStart := time.Now()
	out, hit, err := r.LayoutWithCacheInfo(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = out
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("laid out lineage",
		"strategy", out.Strategy,
		"roots", out.Stats.Roots,
		"nodes", out.Stats.Nodes,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, out, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo lays out f with caching and reports whether the
// result came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, f *lineage.Forest, opts Options) (*LayoutOutput, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	forestData, err := lineage.MarshalForest(f)
	if err != nil {
		return nil, false, fmt.Errorf("serialize forest for cache key: %w", err)
	}
	cacheKey := r.Keyer.DiagramKey(cache.Hash(forestData), opts.DiagramKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached LayoutOutput
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "diagram")
				return &cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "diagram")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Strategy, f.VertexCount())
	start := time.Now()
	out, err := Layout(f, opts)
	var stats observability.LayoutStats
	if out != nil {
		stats = observability.LayoutStats{
			Roots:       out.Stats.Roots,
			FailedRoots: len(out.Failed),
			Nodes:       out.Stats.Nodes,
			Edges:       out.Stats.Edges,
			Divisions:   out.Stats.Divisions,
			Compressed:  out.Stats.Compressed,
		}
	}
	hooks.OnLayoutComplete(ctx, opts.Strategy, stats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(out); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, TTLDiagram); err == nil {
			observability.Cache().OnCacheSet(ctx, "diagram", len(data))
		} else {
			r.Logger.Warn("cache write failed", "error", err)
		}
	}
	return out, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, f *lineage.Forest, opts Options) (*LayoutOutput, error) {
	out, _, err := r.LayoutWithCacheInfo(ctx, f, opts)
	return out, err
}

// RenderWithCacheInfo renders every requested format concurrently and
// reports whether all of them came from the cache. The first failing
// format cancels the others.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, out *LayoutOutput, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	diagramData, err := json.Marshal(out.Diagram)
	if err != nil {
		return nil, false, fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	diagramHash := cache.Hash(diagramData)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
		allCached = true
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			key := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
			data, hit := r.cachedArtifact(gctx, key, opts)
			if !hit {
				start := time.Now()
				var err error
				data, err = RenderFormat(gctx, out, format, opts)
				hooks.OnRenderComplete(gctx, format, len(data), time.Since(start), err)
				if err != nil {
					return fmt.Errorf("render %s: %w", format, err)
				}
				if err := r.Cache.Set(gctx, key, data, TTLArtifact); err == nil {
					observability.Cache().OnCacheSet(gctx, "artifact", len(data))
				}
			}

			mu.Lock()
			defer mu.Unlock()
			artifacts[format] = data
			allCached = allCached && hit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	return artifacts, allCached, nil
}

func (r *Runner) cachedArtifact(ctx context.Context, key string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return data, true
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, out *LayoutOutput, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, out, opts)
	return artifacts, err
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
