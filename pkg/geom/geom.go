// Package geom provides the rectangle and point primitives used by the
// positioning engine.
//
// All values are axis-aligned pixel coordinates in a single document space:
// the viewport's top-left corner at zero scroll is the origin, and scrolling
// offsets the viewport rect rather than the content rects. Rects carry both
// their edges and their dimensions so that callers never recompute one from
// the other inconsistently.
package geom

import "math"

// Point is a pixel coordinate.
type Point struct {
	X float64 `json:"x" toml:"x" bson:"x"`
	Y float64 `json:"y" toml:"y" bson:"y"`
}

// Add returns the point translated by dx/dy.
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Size is a width/height pair. Dimensions are never negative.
type Size struct {
	Width  float64 `json:"width" toml:"width" bson:"width"`
	Height float64 `json:"height" toml:"height" bson:"height"`
}

// Area returns width times height.
func (s Size) Area() float64 { return s.Width * s.Height }

// Rect is an axis-aligned rectangle.
// Invariant: Right-Left == Width and Bottom-Top == Height.
type Rect struct {
	Top    float64 `json:"top" toml:"top" bson:"top"`
	Left   float64 `json:"left" toml:"left" bson:"left"`
	Bottom float64 `json:"bottom" toml:"bottom" bson:"bottom"`
	Right  float64 `json:"right" toml:"right" bson:"right"`
	Width  float64 `json:"width" toml:"width" bson:"width"`
	Height float64 `json:"height" toml:"height" bson:"height"`
}

// NewRect builds a rect from its top-left corner and dimensions.
// Negative dimensions are clamped to zero.
func NewRect(top, left, width, height float64) Rect {
	width = math.Max(width, 0)
	height = math.Max(height, 0)
	return Rect{
		Top:    top,
		Left:   left,
		Bottom: top + height,
		Right:  left + width,
		Width:  width,
		Height: height,
	}
}

// RectAt builds a zero-area rect at the given point, optionally expanded by
// a size. A point origin with no size resolves to exactly this.
func RectAt(p Point, s Size) Rect {
	return NewRect(p.Y, p.X, s.Width, s.Height)
}

// Size returns the rect's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Area returns the rect's area.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Center returns the rect's midpoint.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// IsEmpty reports whether the rect has zero area.
func (r Rect) IsEmpty() bool { return r.Width == 0 || r.Height == 0 }

// Contains reports whether inner lies entirely within r.
func (r Rect) Contains(inner Rect) bool {
	return inner.Top >= r.Top &&
		inner.Left >= r.Left &&
		inner.Bottom <= r.Bottom &&
		inner.Right <= r.Right
}

// Intersects reports whether the two rects share any area or edge.
func (r Rect) Intersects(other Rect) bool {
	return r.Left <= other.Right &&
		r.Right >= other.Left &&
		r.Top <= other.Bottom &&
		r.Bottom >= other.Top
}

// RoundDown floors every field of the rect to whole pixels. Fit decisions
// compare areas at pixel granularity so sub-pixel layout noise never flips
// a placement.
func RoundDown(r Rect) Rect {
	return Rect{
		Top:    math.Floor(r.Top),
		Left:   math.Floor(r.Left),
		Bottom: math.Floor(r.Bottom),
		Right:  math.Floor(r.Right),
		Width:  math.Floor(r.Width),
		Height: math.Floor(r.Height),
	}
}

// SubtractOverflows subtracts each positive overflow amount from length and
// floors the result at zero. Negative overflows (slack) are ignored.
func SubtractOverflows(length float64, overflows ...float64) float64 {
	for _, overflow := range overflows {
		length -= math.Max(overflow, 0)
	}
	return math.Max(length, 0)
}
