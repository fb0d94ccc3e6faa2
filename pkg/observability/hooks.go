// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about exports,
// authentication, cache operations, and served HTTP requests. Libraries
// only ever call the hooks; they never depend on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(&myExportHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, elementCount)
//	// ... render and package ...
//	observability.Export().OnExportComplete(ctx, size, cached, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the static export pipeline.
type ExportHooks interface {
	OnExportStart(ctx context.Context, elementCount int)
	OnExportComplete(ctx context.Context, size int, cached bool, duration time.Duration, err error)
}

// =============================================================================
// Auth Hooks
// =============================================================================

// AuthHooks receives events from account operations.
type AuthHooks interface {
	// OnRegister records a registration attempt.
	OnRegister(ctx context.Context, err error)

	// OnLogin records a login attempt.
	OnLogin(ctx context.Context, err error)

	// OnTokenRejected records an access token that failed verification.
	OnTokenRejected(ctx context.Context, reason string)
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
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, int)                                {}
func (NoopExportHooks) OnExportComplete(context.Context, int, bool, time.Duration, error) {}

// NoopAuthHooks is a no-op implementation of AuthHooks.
type NoopAuthHooks struct{}

func (NoopAuthHooks) OnRegister(context.Context, error)       {}
func (NoopAuthHooks) OnLogin(context.Context, error)          {}
func (NoopAuthHooks) OnTokenRejected(context.Context, string) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exportHooks ExportHooks = NoopExportHooks{}
	authHooks   AuthHooks   = NoopAuthHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any exports.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetAuthHooks registers custom auth hooks.
func SetAuthHooks(h AuthHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		authHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Auth returns the registered auth hooks.
func Auth() AuthHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return authHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	authHooks = NoopAuthHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
