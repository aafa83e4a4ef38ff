package overlay

import "github.com/skyhookui/skyhook/pkg/geom"

// Origin is the anchor the overlay is positioned relative to. The rect is
// read fresh on every positioning pass because the anchor may have moved
// since the last one; implementations must not cache stale geometry.
type Origin interface {
	Rect() geom.Rect
}

// RectOrigin is a fixed-rect origin, typically a snapshot of a measured
// element.
type RectOrigin geom.Rect

// Rect returns the fixed rect.
func (o RectOrigin) Rect() geom.Rect { return geom.Rect(o) }

// PointOrigin anchors the overlay to a point, optionally expanded by a size.
// A zero size resolves to a zero-area rect at the point, which is valid
// input to the selector, not an error.
type PointOrigin struct {
	Point geom.Point
	Size  geom.Size
}

// Rect returns the rect spanned by the point and size.
func (o PointOrigin) Rect() geom.Rect { return geom.RectAt(o.Point, o.Size) }

// OriginFunc adapts a measurement function into an Origin. Use this to bind
// a live element whose bounding rect the host can query.
type OriginFunc func() geom.Rect

// Rect invokes the measurement function.
func (f OriginFunc) Rect() geom.Rect { return f() }
