// Package observability provides hooks for metrics and tracing.
//
// The pipeline and its cache report events through package-level hooks that
// default to no-ops. Register implementations once at startup, before any
// pipeline runs:
//
//	func main() {
//	    observability.SetPipelineHooks(&promPipelineHooks{})
//	    observability.SetCacheHooks(&promCacheHooks{})
//	    // ... run application
//	}
//
// Library code emits events:
//
//	observability.Pipeline().OnLoadStart(ctx, path)
//	// ... load ...
//	observability.Pipeline().OnLoadComplete(ctx, path, nodes, edges, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from pipeline jobs.
type PipelineHooks interface {
	// Load events: reading a dataset and building its graph.
	OnLoadStart(ctx context.Context, input string)
	OnLoadComplete(ctx context.Context, input string, nodeCount, edgeCount int, duration time.Duration, err error)

	// Render events: layout and drawing. Not emitted on a cache hit.
	OnRenderStart(ctx context.Context, engine, format string, nodeCount int)
	OnRenderComplete(ctx context.Context, engine, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the render cache.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, engine, format string)
	OnCacheMiss(ctx context.Context, engine, format string)
	OnCacheSet(ctx context.Context, engine, format string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks ignores all pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, string, int) {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {
}

// NoopCacheHooks ignores all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op defaults. Intended for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
