// Package overlay positions a floating panel (dropdown, tooltip, menu,
// popover) relative to an anchor so it appears attached while staying
// visible within the viewport.
//
// # Overview
//
// The caller supplies an [Origin] and an ordered list of candidate
// [Position] values describing how the panel may connect to the anchor. A
// [Strategy] evaluates the candidates against the current viewport and picks
// one deterministically:
//
//  1. The first candidate whose panel box fits completely inside the
//     viewport wins outright. This is first-match, not best-fit; list order
//     is the caller's priority order.
//  2. Otherwise, among candidates that can fit by shrinking the panel within
//     a bounding box (subject to the panel's configured minimum size), the
//     one with the largest weighted bounding-box area wins. Ties keep the
//     first-seen candidate.
//  3. Otherwise the most-visible candidate is used, translated back on
//     screen when pushing is enabled, or left partially off screen when not.
//
// All geometry lives in a single document-pixel coordinate space: the
// viewport rect is the visible window offset by the current scroll position.
//
// # Basic Usage
//
// Build a strategy with [New], configure it with the With* setters, attach a
// panel and a renderer, then call [Strategy.Apply] whenever the panel should
// be (re)positioned:
//
//	strategy := overlay.New(origin, ruler).
//		WithPositions([]overlay.Position{
//			{OriginX: overlay.HStart, OriginY: overlay.VBottom,
//				OverlayX: overlay.HStart, OverlayY: overlay.VTop},
//			{OriginX: overlay.HStart, OriginY: overlay.VTop,
//				OverlayX: overlay.HStart, OverlayY: overlay.VBottom},
//		})
//	if err := strategy.Attach(panel, renderer); err != nil {
//		return err
//	}
//	strategy.Apply()
//
// The strategy re-applies automatically when the [ViewportRuler] reports a
// resize or scroll, always re-running the full selection even when the
// position is locked.
//
// # Position Locking
//
// With [Strategy.WithLockedPosition] enabled, the first applied placement is
// cached and later Apply calls re-emit it verbatim without re-deciding, even
// if the origin has moved. Consumers rely on locked placements never
// changing between viewport events.
//
// # Environment Independence
//
// The engine never touches a real layout system. Measurements come in
// through [Origin], [Panel], and [ViewportRuler]; computed styles go out
// through [Renderer]. [StaticRuler], [StaticPanel], [RectOrigin], and
// [Recorder] provide in-memory implementations for tests and headless
// solving.
//
// # Concurrency
//
// A Strategy guards its state with an internal mutex, so configuration and
// Apply may be called from multiple goroutines. Each positioning pass runs
// to completion under the lock; position-change subscribers are invoked
// synchronously from Apply.
package overlay
