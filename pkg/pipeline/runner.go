package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardgrid/cardgrid/pkg/cache"
	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/compare"
	"github.com/cardgrid/cardgrid/pkg/deck"
	"github.com/cardgrid/cardgrid/pkg/errors"
	"github.com/cardgrid/cardgrid/pkg/layout"
	"github.com/cardgrid/cardgrid/pkg/render/svg"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete enumerate → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	if opts.Compare {
		return r.executeComparison(ctx, opts)
	}

	d, err := deck.Build(opts.N)
	if err != nil {
		return nil, err
	}
	result := &Result{Deck: d}

	mode, err := opts.ParsedMode()
	if err != nil {
		return nil, err
	}

	// The count is closed-form, so the cap check costs nothing even when the
	// enumeration would be enormous.
	count, err := combin.Count(opts.N, opts.R, mode)
	if err != nil {
		return nil, err
	}
	if err := opts.CheckCap(count); err != nil {
		return nil, err
	}
	result.Formula, err = combin.Formula(opts.N, opts.R, mode)
	if err != nil {
		return nil, err
	}

	// Stage 1: Enumerate
	enumStart := time.Now()
	set, enumHit, err := r.EnumerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Set = set
	result.Count = len(set)
	result.Stats.Count = len(set)
	result.Stats.EnumerateTime = time.Since(enumStart)
	result.CacheInfo.EnumerateHit = enumHit

	r.Logger.Info("enumerated arrangements",
		"n", opts.N, "r", opts.R, "mode", mode,
		"count", len(set),
		"duration", result.Stats.EnumerateTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	plan, layoutHit, err := r.PlanGridWithCacheInfo(ctx, len(set), opts)
	if err != nil {
		return nil, err
	}
	result.Plan = plan
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"cells", len(plan.Cells),
		"rows", plan.Rows, "cols", plan.Cols,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
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

// executeComparison runs the four-mode comparison variant of the pipeline.
func (r *Runner) executeComparison(ctx context.Context, opts Options) (*Result, error) {
	d, err := deck.Build(opts.N)
	if err != nil {
		return nil, err
	}
	result := &Result{Deck: d}

	// The densest mode drives the cap check.
	maxCount := 0
	for _, mode := range combin.Modes {
		count, err := combin.Count(opts.N, opts.R, mode)
		if err != nil {
			return nil, err
		}
		maxCount = max(maxCount, count)
	}
	if err := opts.CheckCap(maxCount); err != nil {
		return nil, err
	}

	buildStart := time.Now()
	res, hit, err := r.CompareWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Comparison = res
	result.Plan = res.Plan
	result.Count = res.MaxCount()
	result.Stats.Count = result.Count
	result.Stats.LayoutTime = time.Since(buildStart)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("built comparison",
		"n", opts.N, "r", opts.R,
		"max_count", result.Count,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	return result, nil
}

// EnumerateWithCacheInfo materializes arrangements with caching and returns
// cache hit info.
func (r *Runner) EnumerateWithCacheInfo(ctx context.Context, opts Options) (combin.ArrangementSet, bool, error) {
	if err := opts.ValidateForEnumerate(); err != nil {
		return nil, false, err
	}
	mode, err := opts.ParsedMode()
	if err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.ArrangementKey(opts.ArrangementKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var set combin.ArrangementSet
			if err := json.Unmarshal(data, &set); err == nil {
				return set, true, nil // Cache hit
			}
			// Corrupt entry falls through to recompute
		}
	}

	d, err := deck.Build(opts.N)
	if err != nil {
		return nil, false, err
	}
	set, err := combin.Enumerate(d, opts.R, mode)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(set); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArrangements)
	}

	return set, false, nil // Cache miss
}

// Enumerate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Enumerate(ctx context.Context, opts Options) (combin.ArrangementSet, error) {
	set, _, err := r.EnumerateWithCacheInfo(ctx, opts)
	return set, err
}

// PlanGridWithCacheInfo computes a grid plan with caching and returns cache
// hit info.
func (r *Runner) PlanGridWithCacheInfo(ctx context.Context, count int, opts Options) (layout.Plan, bool, error) {
	opts.SetLayoutDefaults()

	cacheKey := r.Keyer.PlanKey(opts.PlanKeyOpts(count))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if plan, err := layout.UnmarshalPlan(data); err == nil {
				return plan, true, nil // Cache hit
			}
		}
	}

	plan, err := layout.PlanGrid(count, opts.R, opts.Bounds())
	if err != nil {
		return layout.Plan{}, false, err
	}

	if data, err := layout.MarshalPlan(plan); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan)
	}

	return plan, false, nil // Cache miss
}

// CompareWithCacheInfo builds the four-mode comparison with caching and
// returns cache hit info.
func (r *Runner) CompareWithCacheInfo(ctx context.Context, opts Options) (*compare.Result, bool, error) {
	if err := opts.ValidateForEnumerate(); err != nil {
		return nil, false, err
	}
	opts.SetLayoutDefaults()

	cacheKey := r.Keyer.ComparisonKey(opts.ComparisonKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var res compare.Result
			if err := json.Unmarshal(data, &res); err == nil {
				return &res, true, nil // Cache hit
			}
		}
	}

	d, err := deck.Build(opts.N)
	if err != nil {
		return nil, false, err
	}
	res, err := compare.Build(d, opts.R, opts.Bounds())
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLComparison)
	}

	return res, false, nil // Cache miss
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The result must already carry a plan (and set or comparison).
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	planData, err := layout.MarshalPlan(res.Plan)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize plan for cache key")
	}
	planHash := cache.Hash(planData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(planHash, format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	rendered, err := r.render(res, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(planHash, format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// render produces every requested format from the in-memory result.
func (r *Runner) render(res *Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			svgOpts := []svg.Option{svg.WithArrangements(res.Set)}
			if opts.Title != "" {
				svgOpts = append(svgOpts, svg.WithTitle(opts.Title))
			}
			if res.Comparison != nil {
				artifacts[format] = svg.RenderComparison(res.Comparison, svgOpts...)
			} else {
				artifacts[format] = svg.Render(res.Plan, svgOpts...)
			}
		case FormatJSON:
			var payload any = res.Set
			if res.Comparison != nil {
				payload = res.Comparison
			}
			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal %s artifact", format)
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}
	return artifacts, nil
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
