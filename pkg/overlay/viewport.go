package overlay

import (
	"sync"

	"github.com/skyhookui/skyhook/pkg/geom"
)

// ScrollPosition is the viewport's scroll offset within the document.
type ScrollPosition struct {
	Top  float64 `json:"top" toml:"top" bson:"top"`
	Left float64 `json:"left" toml:"left" bson:"left"`
}

// ViewportRuler reports the current viewport geometry. It is the engine's
// only window into the environment; hosts wrap their real measurement APIs
// behind it.
//
// OnChange notifies subscribers that the viewport was resized or scrolled.
// The engine does not debounce these events; coalescing is the host's
// responsibility.
type ViewportRuler interface {
	ScrollPosition() ScrollPosition
	ViewportSize() geom.Size
	OnChange(fn func()) (cancel func())
}

// =============================================================================
// StaticRuler
// =============================================================================

// StaticRuler is an in-memory ViewportRuler for tests, scenario solving, and
// the demo. Mutations notify subscribers synchronously.
type StaticRuler struct {
	mu     sync.Mutex
	scroll ScrollPosition
	size   geom.Size
	subs   map[int]func()
	nextID int
}

// NewStaticRuler creates a ruler with the given viewport size and no scroll.
func NewStaticRuler(size geom.Size) *StaticRuler {
	return &StaticRuler{size: size, subs: map[int]func(){}}
}

// ScrollPosition returns the current scroll offset.
func (r *StaticRuler) ScrollPosition() ScrollPosition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scroll
}

// ViewportSize returns the current viewport dimensions.
func (r *StaticRuler) ViewportSize() geom.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// OnChange registers a change subscriber and returns its cancel function.
func (r *StaticRuler) OnChange(fn func()) (cancel func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// Resize updates the viewport size and notifies subscribers.
func (r *StaticRuler) Resize(size geom.Size) {
	r.mu.Lock()
	r.size = size
	r.mu.Unlock()
	r.notify()
}

// SetScroll updates the scroll offset and notifies subscribers.
func (r *StaticRuler) SetScroll(scroll ScrollPosition) {
	r.mu.Lock()
	r.scroll = scroll
	r.mu.Unlock()
	r.notify()
}

func (r *StaticRuler) notify() {
	r.mu.Lock()
	fns := make([]func(), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// =============================================================================
// Viewport Geometry
// =============================================================================

// narrowedViewportRect returns the viewport rect in document coordinates,
// shrunk by margin on all four sides. The overlay must stay inside this rect
// to count as visible.
func narrowedViewportRect(ruler ViewportRuler, margin float64) geom.Rect {
	size := ruler.ViewportSize()
	scroll := ruler.ScrollPosition()
	return geom.NewRect(
		scroll.Top+margin,
		scroll.Left+margin,
		size.Width-2*margin,
		size.Height-2*margin,
	)
}

// documentEdges returns the document-space coordinates of the unnarrowed
// viewport's bottom and right edges, used to express CSS bottom/right
// offsets.
func documentEdges(ruler ViewportRuler) (bottom, right float64) {
	size := ruler.ViewportSize()
	scroll := ruler.ScrollPosition()
	return scroll.Top + size.Height, scroll.Left + size.Width
}

// =============================================================================
// Scroll Visibility
// =============================================================================

// ScrollVisibility describes how the origin and overlay relate to the
// visible viewport at the moment a placement was applied. It accompanies
// position-change notifications so hosts can, for example, hide a tooltip
// whose anchor scrolled away.
type ScrollVisibility struct {
	IsOriginClipped      bool `json:"is_origin_clipped" bson:"is_origin_clipped"`
	IsOriginOutsideView  bool `json:"is_origin_outside_view" bson:"is_origin_outside_view"`
	IsOverlayClipped     bool `json:"is_overlay_clipped" bson:"is_overlay_clipped"`
	IsOverlayOutsideView bool `json:"is_overlay_outside_view" bson:"is_overlay_outside_view"`
}

// scrollVisibilityOf classifies the origin and overlay rects against the
// viewport. A zero-area rect on the viewport edge counts as visible.
func scrollVisibilityOf(origin, overlayBox, viewport geom.Rect) ScrollVisibility {
	originOutside := !viewport.Intersects(origin)
	overlayOutside := !viewport.Intersects(overlayBox)
	return ScrollVisibility{
		IsOriginOutsideView:  originOutside,
		IsOriginClipped:      !originOutside && !viewport.Contains(origin),
		IsOverlayOutsideView: overlayOutside,
		IsOverlayClipped:     !overlayOutside && !viewport.Contains(overlayBox),
	}
}
