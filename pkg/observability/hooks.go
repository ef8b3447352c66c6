// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about sequencer phase
// changes, exports and cache operations. No observability backend is
// imported here; the defaults are no-ops. The prom subpackage records the
// events as Prometheus metrics.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSequencerHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Sequencer().OnPhase(id, "scatter", generation)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Sequencer Hooks
// =============================================================================

// SequencerHooks receives events from animation sequencers.
// Calls happen with the sequencer's lock held; implementations must be quick
// and must not call back into the sequencer.
type SequencerHooks interface {
	// OnPhase records entry into a phase by the loop with the given generation.
	OnPhase(instance, phase string, generation uint64)

	// OnCancel records that a loop generation was cancelled.
	OnCancel(instance string, generation uint64)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from offline exports.
type RenderHooks interface {
	OnExportStart(ctx context.Context, formats []string, frames int)
	OnExportComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSequencerHooks is a no-op implementation of SequencerHooks.
type NoopSequencerHooks struct{}

func (NoopSequencerHooks) OnPhase(string, string, uint64) {}
func (NoopSequencerHooks) OnCancel(string, uint64)        {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnExportStart(context.Context, []string, int)                       {}
func (NoopRenderHooks) OnExportComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sequencerHooks SequencerHooks = NoopSequencerHooks{}
	renderHooks    RenderHooks    = NoopRenderHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetSequencerHooks registers custom sequencer hooks.
func SetSequencerHooks(h SequencerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sequencerHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Sequencer returns the registered sequencer hooks.
func Sequencer() SequencerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sequencerHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sequencerHooks = NoopSequencerHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
