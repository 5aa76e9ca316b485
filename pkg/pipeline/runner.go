package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/citygraph/pkg/cache"
	cgerrors "github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/observability"
)

// Runner executes jobs with render caching.
//
// The Runner holds no per-run state; multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses log.Default.
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

// RunAll runs jobs in order and stops at the first failure. Results of the
// jobs that completed are returned alongside the error.
func (r *Runner) RunAll(ctx context.Context, jobs []Job, opts Options) ([]*Result, error) {
	results := make([]*Result, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.Run(ctx, job, opts)
		if err != nil {
			return results, fmt.Errorf("%s: %w", job, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Run loads job.Input, renders it and writes job.Output.
func (r *Runner) Run(ctx context.Context, job Job, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	format, err := opts.FormatFor(job.Output)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger.With("job", job.String())

	res := &Result{Job: job, Format: format}

	hooks := observability.Pipeline()

	loadStart := time.Now()
	hooks.OnLoadStart(ctx, job.Input)
	data, g, err := Load(job.Input)
	if err != nil {
		hooks.OnLoadComplete(ctx, job.Input, 0, 0, time.Since(loadStart), err)
		return nil, err
	}
	res.Graph = g
	res.Stats.LoadTime = time.Since(loadStart)
	hooks.OnLoadComplete(ctx, job.Input, g.NodeCount(), g.EdgeCount(), res.Stats.LoadTime, nil)
	res.Stats.NodeCount = g.NodeCount()
	res.Stats.EdgeCount = g.EdgeCount()

	logger.Debug("loaded graph",
		"input", job.Input,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", res.Stats.LoadTime)

	renderStart := time.Now()
	out, hit, err := r.render(ctx, data, format, opts, func() ([]byte, error) {
		start := time.Now()
		hooks.OnRenderStart(ctx, opts.Engine, format, g.NodeCount())
		out, err := Render(ctx, g, format, opts)
		hooks.OnRenderComplete(ctx, opts.Engine, format, time.Since(start), err)
		return out, err
	})
	if err != nil {
		return nil, err
	}
	res.CacheHit = hit
	res.Stats.RenderTime = time.Since(renderStart)

	logger.Debug("rendered",
		"engine", opts.Engine,
		"format", format,
		"cached", hit,
		"duration", res.Stats.RenderTime)

	if err := writeOutput(job.Output, out); err != nil {
		return nil, err
	}
	res.Size = len(out)

	logger.Info("wrote image", "output", job.Output, "bytes", res.Size)
	return res, nil
}

// render returns the cached rendering for input or calls draw and caches its
// result. Cache failures are logged and never fail the job.
func (r *Runner) render(ctx context.Context, input []byte, format string, opts Options, draw func() ([]byte, error)) ([]byte, bool, error) {
	key := r.Keyer.RenderKey(cache.Hash(input), opts.keyOpts(format))
	hooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		if hit {
			hooks.OnCacheHit(ctx, opts.Engine, format)
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, opts.Engine, format)
	}

	data, err := draw()
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err != nil {
		opts.Logger.Warn("cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, opts.Engine, format, len(data))
	}
	return data, false, nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return cgerrors.Wrap(cgerrors.ErrCodeInvalidPath, err, "create output directory")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return cgerrors.Wrap(cgerrors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return cgerrors.Wrap(cgerrors.ErrCodeInternal, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return cgerrors.Wrap(cgerrors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
