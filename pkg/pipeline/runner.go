package pipeline

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/vestools/pkg/cache"
	"github.com/matzehuels/vestools/pkg/errors"
	"github.com/matzehuels/vestools/pkg/filament"
	"github.com/matzehuels/vestools/pkg/hoc"
	vesio "github.com/matzehuels/vestools/pkg/io"
	"github.com/matzehuels/vestools/pkg/observability"
)

// Runner executes pipeline stages with caching.
//
// The Runner holds no results, only the cache and logger, so one Runner can
// serve concurrent runs with different options.
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

// Loaded is the output of [Runner.Load].
type Loaded struct {
	Components hoc.Components
	// Hash is the content hash of the input file.
	Hash string
	Hit  bool
}

// Execute runs load → build → layer → render for one component.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{ID: uuid.NewString()}
	logger := r.Logger.With("run", result.ID[:8])

	// Stage 1: Load
	start := time.Now()
	loaded, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(start)
	result.CacheInfo.LoadHit = loaded.Hit

	logger.Info("loaded components",
		"input", opts.Input,
		"components", len(loaded.Components),
		"cached", loaded.Hit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	id := opts.Component
	if id == "" {
		ids := loaded.Components.IDs()
		if len(ids) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no filaments found in %s", opts.Input)
		}
		id = ids[0]
		logger.Debug("defaulted component", "component", id)
	}
	f, err := r.Build(loaded.Components, id)
	if err != nil {
		return nil, err
	}
	result.Component = id
	result.Filament = f

	// Stage 3: Layer
	if opts.Layered() {
		start = time.Now()
		layers, err := r.Layer(f, opts.Root)
		result.Stats.LayerTime = time.Since(start)
		maxDepth, _ := f.MaxDepth()
		if err != nil {
			maxDepth = -1
		}
		observability.Pipeline().OnLayerComplete(ctx, id, opts.Root, maxDepth, result.Stats.LayerTime, err)
		if err != nil {
			return nil, err
		}
		result.Layers = layers
	}
	result.Stats.Stats = f.Stats()

	logger.Info("built filament",
		"component", id,
		"nodes", result.Stats.Nodes,
		"edges", result.Stats.Edges,
		"max_depth", result.Stats.MaxDepth)

	// Stage 4: Render
	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, f, loaded.Hash, id, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	logger.Info("rendered outputs",
		"view", opts.View,
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and parses opts.Input, caching the parsed components by the
// hash of the file content.
//
// Files ending in .json are read as components exports; everything else is
// parsed as hoc text.
func (r *Runner) Load(ctx context.Context, opts Options) (*Loaded, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()
	loaded, err := r.load(ctx, opts)
	n := 0
	if loaded != nil {
		n = len(loaded.Components)
	}
	hooks.OnLoadComplete(ctx, opts.Input, n, time.Since(start), err)
	return loaded, err
}

func (r *Runner) load(ctx context.Context, opts Options) (*Loaded, error) {
	cacheHooks := observability.Cache()

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.Input)
	}
	hash := cache.Hash(data)
	key := r.Keyer.ComponentsKey(hash)

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if c, err := vesio.UnmarshalComponents(cached); err == nil {
				cacheHooks.OnCacheHit(ctx, observability.KeyComponents)
				return &Loaded{Components: c, Hash: hash, Hit: true}, nil
			}
			r.Logger.Debug("discarding unreadable cache entry", "key", key)
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
	}

	cacheHooks.OnCacheMiss(ctx, observability.KeyComponents)

	var comps hoc.Components
	if strings.EqualFold(filepath.Ext(opts.Input), ".json") {
		comps, err = vesio.UnmarshalComponents(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", opts.Input)
		}
	} else {
		comps = hoc.Parse(string(data))
	}

	if encoded, err := vesio.MarshalComponents(comps); err == nil {
		if err := r.Cache.Set(ctx, key, encoded, cache.TTLComponents); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, observability.KeyComponents, len(encoded))
		}
	}

	return &Loaded{Components: comps, Hash: hash}, nil
}

// Build reconstructs the filament graph of component id.
func (r *Runner) Build(comps hoc.Components, id string) (*filament.Filament, error) {
	polylines, err := comps.Get(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeComponentNotFound, err, "component %s", id)
	}
	return filament.New(polylines), nil
}

// Layer assigns depths from the root described by spec (see [ParseRoot]).
//
// A coordinate root that no polyline touches is layered as given and yields
// a single-entry list; the runner logs a warning.
func (r *Runner) Layer(f *filament.Filament, spec string) ([]filament.LayerEntry, error) {
	root, err := ParseRoot(spec)
	if err != nil {
		return nil, err
	}
	if root.ByIndex {
		layers, err := f.LayerFromIndex(root.Index)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRoot, err, "root %s", spec)
		}
		return layers, nil
	}
	if _, ok := f.Lookup(root.Coordinate); !ok {
		r.Logger.Warn("root is not a polyline endpoint", "root", root.Coordinate)
	}
	return f.LayerFrom(root.Coordinate), nil
}

// RenderWithCacheInfo renders f and reports whether every artifact came from
// the cache. inputHash and component address the artifacts in the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f *filament.Filament, inputHash, component string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	key := func(format string) string {
		return r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(component, format))
	}
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, key(format))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			cacheHooks.OnCacheHit(ctx, observability.KeyArtifact)
			return artifacts, true, nil
		}
	}
	cacheHooks.OnCacheMiss(ctx, observability.KeyArtifact)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.View, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, f, opts)
	hooks.OnRenderComplete(ctx, opts.View, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, wrapRenderError(err)
	}

	for format, data := range rendered {
		if err := r.Cache.Set(ctx, key(format), data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, observability.KeyArtifact, len(data))
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, f *filament.Filament, inputHash, component string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, f, inputHash, component, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func wrapRenderError(err error) error {
	if stderrors.Is(err, filament.ErrNotLayered) {
		return errors.Wrap(errors.ErrCodeNotLayered, err, "layered view")
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "render")
}
