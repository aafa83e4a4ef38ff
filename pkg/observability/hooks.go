// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about positioning passes and scenario store operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPositionHooks(&myPositionHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Position().OnApplyStart(candidates)
//	// ... run the selection pass ...
//	observability.Position().OnApplyComplete(pushed, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Position Hooks
// =============================================================================

// PositionHooks receives events from the positioning engine.
//
// Positioning is synchronous and single-threaded per strategy, so hook
// implementations must return quickly; a slow hook delays rendering.
type PositionHooks interface {
	// OnApplyStart records the start of a positioning pass with the number
	// of candidate positions under consideration.
	OnApplyStart(candidates int)

	// OnApplyComplete records a finished positioning pass.
	OnApplyComplete(pushed bool, duration time.Duration)

	// OnPositionChange records that a pass selected a different placement
	// than the previous one.
	OnPositionChange()
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from scenario store operations.
type StoreHooks interface {
	// OnGet records a scenario read with whether it was found.
	OnGet(ctx context.Context, backend string, found bool)

	// OnPut records a scenario write.
	OnPut(ctx context.Context, backend string)

	// OnDelete records a scenario removal.
	OnDelete(ctx context.Context, backend string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPositionHooks is a no-op implementation of PositionHooks.
type NoopPositionHooks struct{}

func (NoopPositionHooks) OnApplyStart(int)                    {}
func (NoopPositionHooks) OnApplyComplete(bool, time.Duration) {}
func (NoopPositionHooks) OnPositionChange()                   {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnGet(context.Context, string, bool) {}
func (NoopStoreHooks) OnPut(context.Context, string)       {}
func (NoopStoreHooks) OnDelete(context.Context, string)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	positionHooks PositionHooks = NoopPositionHooks{}
	storeHooks    StoreHooks    = NoopStoreHooks{}
	hooksMu       sync.RWMutex
)

// SetPositionHooks registers custom position hooks.
// This should be called once at application startup before any positioning.
func SetPositionHooks(h PositionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		positionHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store use.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Position returns the registered position hooks.
func Position() PositionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return positionHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	positionHooks = NoopPositionHooks{}
	storeHooks = NoopStoreHooks{}
}
