package overlay

import (
	"sync"
	"time"

	"github.com/skyhookui/skyhook/pkg/errors"
	"github.com/skyhookui/skyhook/pkg/geom"
	"github.com/skyhookui/skyhook/pkg/observability"
)

// =============================================================================
// Types
// =============================================================================

// Placement is the full outcome of one positioning pass: the winning
// candidate, the overlay's final box in document coordinates, and everything
// that was emitted to the renderer. The strategy caches its last Placement so
// a locked reapply can re-emit it verbatim.
type Placement struct {
	Position    Position         `json:"position" bson:"position"`
	OverlayRect geom.Rect        `json:"overlay_rect" bson:"overlay_rect"`
	BoundingBox BoxStyle         `json:"bounding_box" bson:"bounding_box"`
	Panel       PanelStyle       `json:"panel" bson:"panel"`
	Classes     []string         `json:"classes,omitempty" bson:"classes,omitempty"`
	Pushed      bool             `json:"pushed" bson:"pushed"`
	Visibility  ScrollVisibility `json:"visibility" bson:"visibility"`
}

// PositionChange is delivered to subscribers each time a new placement is
// applied. Locked reapplies do not emit.
type PositionChange struct {
	Position   Position
	Visibility ScrollVisibility
}

// flexibleFit is a candidate that did not fit at its natural size but
// qualifies by shrinking within its bounding box.
type flexibleFit struct {
	position    *Position
	originPoint geom.Point
}

// fallbackFit is the best partially-visible candidate seen so far.
type fallbackFit struct {
	position    *Position
	originPoint geom.Point
	fit         overlayFit
}

// Strategy positions an overlay panel relative to an origin by trying an
// ordered list of candidate placements. Selection is a strict priority
// chain: the first candidate that fits completely wins; otherwise the best
// flexible fit by weighted bounding-box area; otherwise the most-visible
// candidate, pushed on screen when pushing is enabled.
//
// A Strategy owns its positioning state exclusively. All methods are safe
// for concurrent use, but each positioning pass runs to completion under the
// strategy's lock.
type Strategy struct {
	mu sync.Mutex

	origin Origin
	ruler  ViewportRuler

	positions          []Position
	viewportMargin     float64
	flexibleDimensions bool
	growAfterOpen      bool
	canPush            bool
	positionLocked     bool
	defaultOffsetX     float64
	defaultOffsetY     float64
	direction          Direction

	panel    Panel
	renderer Renderer

	attached bool
	disposed bool

	isInitialRender     bool
	isPushed            bool
	lastPosition        *Position
	lastPlacement       *Placement
	previousPushAmount  *geom.Point
	lastBoundingBoxSize geom.Size
	appliedClasses      map[string]struct{}
	cancelRulerSub      func()

	changeSubs map[int]func(PositionChange)
	nextSubID  int
}

// New creates a strategy anchored to origin, measuring the viewport through
// ruler. Pushing and flexible dimensions are enabled by default; growth
// after open and position locking are not.
func New(origin Origin, ruler ViewportRuler) *Strategy {
	return &Strategy{
		origin:             origin,
		ruler:              ruler,
		flexibleDimensions: true,
		canPush:            true,
		direction:          LTR,
		appliedClasses:     map[string]struct{}{},
		changeSubs:         map[int]func(PositionChange){},
	}
}

// =============================================================================
// Configuration
// =============================================================================

// WithPositions replaces the candidate list. Order is priority order; the
// first candidate wins all ties. The list is validated at Attach. If the
// previously selected position is no longer in the list, the next pass
// re-decides even under locking.
func (s *Strategy) WithPositions(positions []Position) *Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.positions = positions
	if s.lastPosition != nil && !s.containsPosition(*s.lastPosition) {
		s.lastPosition = nil
		s.lastPlacement = nil
		s.isInitialRender = true
	}
	return s
}

// WithViewportMargin sets the minimum distance the overlay keeps from the
// viewport edges.
func (s *Strategy) WithViewportMargin(margin float64) *Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewportMargin = margin
	return s
}

// WithFlexibleDimensions controls whether the overlay may shrink within a
// bounding box when no candidate fits at natural size.
func (s *Strategy) WithFlexibleDimensions(flexible bool) *Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flexibleDimensions = flexible
	return s
}

// WithGrowAfterOpen allows the bounding box to grow beyond its initially
// rendered size on later passes.
func (s *Strategy) WithGrowAfterOpen(grow bool) *Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.growAfterOpen = grow
	return s
}

// WithPush controls whether a non-fitting overlay is translated back on
// screen as a last resort.
func (s *Strategy) WithPush(push bool) *Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canPush = push
	return s
}

// WithLockedPosition suppresses re-selection on subsequent passes: once a
// placement has been applied, Apply re-emits it unchanged until a viewport
// change forces a fresh decision.
func (s *Strategy) WithLockedPosition(locked bool) *Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positionLocked = locked
	return s
}

// WithDefaultOffsetX sets the horizontal offset applied to candidates that
// do not carry their own.
func (s *Strategy) WithDefaultOffsetX(offset float64) *Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultOffsetX = offset
	return s
}

// WithDefaultOffsetY sets the vertical offset applied to candidates that do
// not carry their own.
func (s *Strategy) WithDefaultOffsetY(offset float64) *Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultOffsetY = offset
	return s
}

// WithDirection sets the layout direction. Under RTL, start and end anchors
// resolve against the right edge.
func (s *Strategy) WithDirection(dir Direction) *Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.direction = dir
	return s
}

// SetOrigin re-anchors the strategy to a new origin. Takes effect on the
// next Apply.
func (s *Strategy) SetOrigin(origin Origin) *Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.origin = origin
	return s
}

// =============================================================================
// Lifecycle
// =============================================================================

// Attach binds the strategy to a panel and a renderer and validates the
// candidate list. Attaching a second panel while one is live is an error;
// re-attaching the same panel is a no-op. A disposed strategy cannot be
// attached again.
func (s *Strategy) Attach(panel Panel, renderer Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return errors.New(errors.ErrCodeInvalidInput, "position strategy has been disposed")
	}
	if s.panel != nil && panel != s.panel {
		return errors.New(errors.ErrCodeAlreadyAttached, "position strategy is already attached to a panel")
	}
	if err := ValidatePositions(s.positions); err != nil {
		return err
	}

	s.panel = panel
	s.renderer = renderer
	s.attached = true
	s.isInitialRender = true

	if s.cancelRulerSub == nil {
		// A viewport change always forces a full re-selection, even under
		// locking.
		s.cancelRulerSub = s.ruler.OnChange(func() {
			s.mu.Lock()
			s.isInitialRender = true
			s.mu.Unlock()
			s.Apply()
		})
	}
	return nil
}

// Apply runs one positioning pass and emits the result to the renderer. It
// is a benign no-op when the strategy is detached or disposed. When the
// position is locked and a placement exists, the cached placement is
// re-emitted verbatim without re-deciding.
func (s *Strategy) Apply() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed || !s.attached || len(s.positions) == 0 {
		return
	}

	start := time.Now()
	observability.Position().OnApplyStart(len(s.positions))

	if !s.isInitialRender && s.positionLocked && s.lastPlacement != nil {
		s.reapplyLast()
		observability.Position().OnApplyComplete(s.lastPlacement.Pushed, time.Since(start))
		return
	}

	viewport := narrowedViewportRect(s.ruler, s.viewportMargin)
	originRect := s.origin.Rect()
	overlaySize := s.panel.Size()
	rtl := s.direction == RTL

	var flexibleFits []flexibleFit
	var fallback *fallbackFit

	for i := range s.positions {
		pos := &s.positions[i]
		originPoint := originAnchor(originRect, *pos, rtl)
		point := overlayAnchor(originPoint, overlaySize, *pos, rtl)

		// Offsets participate in the fit decision, not just rendering: an
		// offset can push an otherwise-fitting box out of bounds.
		point = point.Add(s.offsetX(*pos), s.offsetY(*pos))
		fit := viewportFit(point, overlaySize, viewport)

		if fit.completelyWithinViewport {
			s.isPushed = false
			s.applyPosition(pos, originPoint, viewport)
			observability.Position().OnApplyComplete(false, time.Since(start))
			return
		}

		if s.canFitWithFlexibleDimensions(fit, point, viewport) {
			flexibleFits = append(flexibleFits, flexibleFit{position: pos, originPoint: originPoint})
			continue
		}

		if fallback == nil || fallback.fit.visibleArea < fit.visibleArea {
			fallback = &fallbackFit{position: pos, originPoint: originPoint, fit: fit}
		}
	}

	if len(flexibleFits) > 0 {
		// Stable max scan: strict comparison keeps the first-seen candidate
		// on ties, preserving caller-declared priority.
		var best *flexibleFit
		bestScore := -1.0
		for i := range flexibleFits {
			f := &flexibleFits[i]
			b := s.calculateBoundingBox(f.originPoint, *f.position, viewport)
			score := b.width * b.height * f.position.EffectiveWeight()
			if score > bestScore {
				bestScore = score
				best = f
			}
		}
		s.isPushed = false
		s.applyPosition(best.position, best.originPoint, viewport)
		observability.Position().OnApplyComplete(false, time.Since(start))
		return
	}

	if s.canPush {
		s.isPushed = true
		s.applyPosition(fallback.position, fallback.originPoint, viewport)
		observability.Position().OnApplyComplete(true, time.Since(start))
		return
	}

	// Last resort: the most-visible candidate, partially off screen.
	s.isPushed = false
	s.applyPosition(fallback.position, fallback.originPoint, viewport)
	observability.Position().OnApplyComplete(false, time.Since(start))
}

// Detach releases the panel and renderer and clears transient positioning
// state. Configuration is kept, so the strategy can be attached again.
func (s *Strategy) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detachLocked()
}

// Dispose detaches and makes the strategy permanently unusable. Idempotent.
func (s *Strategy) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.detachLocked()
	s.disposed = true
}

func (s *Strategy) detachLocked() {
	if s.renderer != nil && len(s.appliedClasses) > 0 {
		s.renderer.RemovePanelClasses(mapKeys(s.appliedClasses))
	}
	s.appliedClasses = map[string]struct{}{}

	if s.cancelRulerSub != nil {
		s.cancelRulerSub()
		s.cancelRulerSub = nil
	}

	s.panel = nil
	s.renderer = nil
	s.attached = false
	s.lastPosition = nil
	s.lastPlacement = nil
	s.previousPushAmount = nil
	s.lastBoundingBoxSize = geom.Size{}
	s.isPushed = false
}

// =============================================================================
// Observation
// =============================================================================

// OnPositionChange registers a subscriber for placement changes and returns
// its cancel function. Subscribers are invoked synchronously from Apply.
func (s *Strategy) OnPositionChange(fn func(PositionChange)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.changeSubs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.changeSubs, id)
		s.mu.Unlock()
	}
}

// LastPlacement returns a copy of the most recently applied placement, or
// nil if none has been applied since attach.
func (s *Strategy) LastPlacement() *Placement {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastPlacement == nil {
		return nil
	}
	p := *s.lastPlacement
	return &p
}

// =============================================================================
// Internals
// =============================================================================

// applyPosition emits the selected placement to the renderer, caches it, and
// notifies subscribers when the winning candidate changed.
func (s *Strategy) applyPosition(pos *Position, originPoint geom.Point, viewport geom.Rect) {
	overlaySize := s.panel.Size()
	rtl := s.direction == RTL

	// The emitted coordinates stay anchor-exact; offsets ride in the panel
	// transform. Pushing moves the anchor point itself.
	point := overlayAnchor(originPoint, overlaySize, *pos, rtl)
	if s.isPushed {
		point = s.pushOnScreen(point, overlaySize, viewport)
	}

	boxStyle, boxSize := s.boundingBoxStyle(originPoint, *pos, viewport)
	s.lastBoundingBoxSize = boxSize
	panelStyle := s.panelStyle(*pos, point, overlaySize)

	if len(pos.PanelClass) > 0 {
		var added []string
		for _, c := range pos.PanelClass {
			if _, ok := s.appliedClasses[c]; !ok {
				s.appliedClasses[c] = struct{}{}
				added = append(added, c)
			}
		}
		if len(added) > 0 {
			s.renderer.AddPanelClasses(added)
		}
	}

	s.renderer.SetBoundingBoxStyle(boxStyle)
	s.renderer.SetPanelStyle(panelStyle)

	finalPoint := point.Add(s.offsetX(*pos), s.offsetY(*pos))
	overlayRect := geom.RectAt(finalPoint, overlaySize)
	visibility := scrollVisibilityOf(s.origin.Rect(), overlayRect, narrowedViewportRect(s.ruler, 0))

	changed := pos != s.lastPosition
	s.lastPosition = pos
	s.lastPlacement = &Placement{
		Position:    *pos,
		OverlayRect: overlayRect,
		BoundingBox: boxStyle,
		Panel:       panelStyle,
		Classes:     append([]string(nil), pos.PanelClass...),
		Pushed:      s.isPushed,
		Visibility:  visibility,
	}
	s.isInitialRender = false

	if changed {
		observability.Position().OnPositionChange()
		change := PositionChange{Position: *pos, Visibility: visibility}
		for _, fn := range s.changeSubs {
			fn(change)
		}
	}
}

// reapplyLast re-emits the cached placement without recomputing anything.
// Consumers depend on "locked means never re-decided", so the output is
// byte-identical to the pass that produced it even if the origin has moved
// since.
func (s *Strategy) reapplyLast() {
	s.renderer.SetBoundingBoxStyle(s.lastPlacement.BoundingBox)
	s.renderer.SetPanelStyle(s.lastPlacement.Panel)
}

// pushOnScreen translates the overlay the minimal amount needed to bring it
// inside the viewport. When the overlay is larger than the viewport on an
// axis, only the leading edge is corrected and the trailing edge is allowed
// to overflow. Under locking, a previously recorded push is reapplied as-is.
func (s *Strategy) pushOnScreen(start geom.Point, overlay geom.Size, viewport geom.Rect) geom.Point {
	if s.previousPushAmount != nil && s.positionLocked {
		return start.Add(s.previousPushAmount.X, s.previousPushAmount.Y)
	}

	overflowRight := max0(start.X + overlay.Width - viewport.Right)
	overflowBottom := max0(start.Y + overlay.Height - viewport.Bottom)
	overflowTop := max0(viewport.Top - start.Y)
	overflowLeft := max0(viewport.Left - start.X)

	var pushX, pushY float64

	if overlay.Width <= viewport.Width {
		if overflowLeft > 0 {
			pushX = overflowLeft
		} else {
			pushX = -overflowRight
		}
	} else if start.X < viewport.Left {
		pushX = viewport.Left - start.X
	}

	if overlay.Height <= viewport.Height {
		if overflowTop > 0 {
			pushY = overflowTop
		} else {
			pushY = -overflowBottom
		}
	} else if start.Y < viewport.Top {
		pushY = viewport.Top - start.Y
	}

	s.previousPushAmount = &geom.Point{X: pushX, Y: pushY}
	return start.Add(pushX, pushY)
}

// canFitWithFlexibleDimensions reports whether a non-fitting candidate still
// qualifies by shrinking. An axis qualifies when it fits outright or when a
// configured pixel minimum fits in the space remaining toward the viewport
// edge. Without a pixel minimum the axis cannot qualify by shrinking.
func (s *Strategy) canFitWithFlexibleDimensions(fit overlayFit, point geom.Point, viewport geom.Rect) bool {
	if !s.flexibleDimensions {
		return false
	}

	availableHeight := viewport.Bottom - point.Y
	availableWidth := viewport.Right - point.X
	cfg := s.panel.Config()
	minHeight, okH := PixelValue(cfg.MinHeight)
	minWidth, okW := PixelValue(cfg.MinWidth)

	verticalFit := fit.fitsVertically || (okH && minHeight <= availableHeight)
	horizontalFit := fit.fitsHorizontally || (okW && minWidth <= availableWidth)
	return verticalFit && horizontalFit
}

func (s *Strategy) hasExactPosition() bool {
	return !s.flexibleDimensions || s.isPushed
}

func (s *Strategy) offsetX(pos Position) float64 {
	if pos.OffsetX != nil {
		return *pos.OffsetX
	}
	return s.defaultOffsetX
}

func (s *Strategy) offsetY(pos Position) float64 {
	if pos.OffsetY != nil {
		return *pos.OffsetY
	}
	return s.defaultOffsetY
}

func (s *Strategy) containsPosition(p Position) bool {
	for _, c := range s.positions {
		if c.OriginX == p.OriginX && c.OriginY == p.OriginY &&
			c.OverlayX == p.OverlayX && c.OverlayY == p.OverlayY {
			return true
		}
	}
	return false
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func mapKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
