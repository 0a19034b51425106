// Package observability provides hooks for metrics and logging around log
// reconstruction, rendering, and caching.
//
// The package keeps the core libraries free of observability backends:
// hook interfaces have no-op defaults, and main registers concrete
// implementations at startup. Libraries emit events through the global
// accessors, e.g.:
//
//	observability.Loader().OnLoadStart(name)
//	// ... reconstruct the log ...
//	observability.Loader().OnLoadComplete(name, steps, runs, elapsed, err)
package observability

import (
	"sync"
	"time"
)

// LoaderHooks receives events from log reconstruction.
type LoaderHooks interface {
	// OnLoadStart records the beginning of a load.
	OnLoadStart(source string)

	// OnLoadComplete records the outcome: step and run counts on success,
	// the error otherwise.
	OnLoadComplete(source string, steps, runs int, duration time.Duration, err error)
}

// RenderHooks receives events from artifact rendering.
type RenderHooks interface {
	OnRenderStart(format string)
	OnRenderComplete(format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(keyType string)
	OnCacheMiss(keyType string)
	OnCacheSet(keyType string, size int)
}

// NoopLoaderHooks is a no-op implementation of LoaderHooks.
type NoopLoaderHooks struct{}

func (NoopLoaderHooks) OnLoadStart(string)                                    {}
func (NoopLoaderHooks) OnLoadComplete(string, int, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(string)                               {}
func (NoopRenderHooks) OnRenderComplete(string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)      {}
func (NoopCacheHooks) OnCacheMiss(string)     {}
func (NoopCacheHooks) OnCacheSet(string, int) {}

var (
	loaderHooks LoaderHooks = NoopLoaderHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetLoaderHooks registers custom loader hooks. Call once at startup.
func SetLoaderHooks(h LoaderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loaderHooks = h
	}
}

// SetRenderHooks registers custom render hooks. Call once at startup.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Call once at startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Loader returns the registered loader hooks.
func Loader() LoaderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loaderHooks
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

// Reset restores all hooks to their no-op defaults. Primarily for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	loaderHooks = NoopLoaderHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
