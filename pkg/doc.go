// Package pkg provides the core libraries for Skyhook overlay positioning.
//
// # Overview
//
// Skyhook decides where a floating panel (dropdown, tooltip, popover) should
// go: given an anchor rectangle, the panel's size, and an ordered list of
// preferred positions, it picks the best placement inside the viewport. The
// pkg directory is organized into these areas:
//
//  1. [geom] - Rectangle and point arithmetic in document coordinates
//  2. [overlay] - The positioning engine: candidates, fits, styles, pushing
//  3. [scenario] - Self-contained positioning problems (TOML/JSON) and solving
//  4. [snapshot] - SVG rendering of solved scenarios for visual debugging
//  5. [store] - Named-scenario storage (memory, file, Redis, MongoDB)
//  6. [errors] - Coded errors shared across the module
//  7. [observability] - Pluggable hooks for positioning and store events
//
// # Architecture
//
// The typical data flow through Skyhook:
//
//	Scenario (TOML/JSON) or live anchor
//	         ↓
//	    [overlay] package (select, push, style)
//	         ↓
//	    Placement (bounding box + panel styles)
//	         ↓
//	    Renderer / [snapshot] SVG / HTTP response
//
// # Quick Start
//
// Position a 200x300 panel below an anchor, flipping above when it
// doesn't fit:
//
//	import (
//	    "github.com/skyhookui/skyhook/pkg/geom"
//	    "github.com/skyhookui/skyhook/pkg/overlay"
//	)
//
//	ruler := overlay.NewStaticRuler(geom.Size{Width: 1024, Height: 768})
//	strategy := overlay.New(overlay.RectOrigin(geom.NewRect(40, 40, 120, 32)), ruler).
//	    WithPositions([]overlay.Position{
//	        {OriginX: overlay.HStart, OriginY: overlay.VBottom,
//	            OverlayX: overlay.HStart, OverlayY: overlay.VTop},
//	        {OriginX: overlay.HStart, OriginY: overlay.VTop,
//	            OverlayX: overlay.HStart, OverlayY: overlay.VBottom},
//	    })
//
//	renderer := overlay.NewRecorder()
//	_ = strategy.Attach(overlay.StaticPanel{Dimensions: geom.Size{Width: 200, Height: 300}}, renderer)
//	strategy.Apply()
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/overlay/...  # Engine only
//	go test -run Example       # Examples only
//
// [geom]: https://pkg.go.dev/github.com/skyhookui/skyhook/pkg/geom
// [overlay]: https://pkg.go.dev/github.com/skyhookui/skyhook/pkg/overlay
// [scenario]: https://pkg.go.dev/github.com/skyhookui/skyhook/pkg/scenario
// [snapshot]: https://pkg.go.dev/github.com/skyhookui/skyhook/pkg/snapshot
// [store]: https://pkg.go.dev/github.com/skyhookui/skyhook/pkg/store
// [errors]: https://pkg.go.dev/github.com/skyhookui/skyhook/pkg/errors
// [observability]: https://pkg.go.dev/github.com/skyhookui/skyhook/pkg/observability
package pkg
