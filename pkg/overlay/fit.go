package overlay

import "github.com/skyhookui/skyhook/pkg/geom"

// overlayFit describes how well one candidate's overlay box fits the
// viewport. It is derived per candidate and discarded after selection.
type overlayFit struct {
	completelyWithinViewport bool
	fitsVertically           bool
	fitsHorizontally         bool
	visibleArea              float64
}

// originAnchor returns the point on the origin rect selected by the
// candidate's origin anchors. Start/end resolve against the layout
// direction: under RTL, start is the right edge.
func originAnchor(origin geom.Rect, pos Position, rtl bool) geom.Point {
	var x float64
	if pos.OriginX == HCenter {
		x = origin.Left + origin.Width/2
	} else {
		start, end := origin.Left, origin.Right
		if rtl {
			start, end = origin.Right, origin.Left
		}
		if pos.OriginX == HStart {
			x = start
		} else {
			x = end
		}
	}

	var y float64
	switch pos.OriginY {
	case VCenter:
		y = origin.Top + origin.Height/2
	case VTop:
		y = origin.Top
	default:
		y = origin.Bottom
	}

	return geom.Point{X: x, Y: y}
}

// overlayAnchor returns the overlay's top-left point such that the corner
// selected by the candidate's overlay anchors lands on the origin point.
// Center anchors shift by half the overlay's dimension.
func overlayAnchor(origin geom.Point, overlay geom.Size, pos Position, rtl bool) geom.Point {
	var dx float64
	if pos.OverlayX == HCenter {
		dx = -overlay.Width / 2
	} else if pos.OverlayX == HStart {
		if rtl {
			dx = -overlay.Width
		}
	} else {
		if !rtl {
			dx = -overlay.Width
		}
	}

	var dy float64
	switch pos.OverlayY {
	case VCenter:
		dy = -overlay.Height / 2
	case VBottom:
		dy = -overlay.Height
	}

	return origin.Add(dx, dy)
}

// viewportFit scores the overlay box with its top-left at point against the
// viewport. The point must already include any configured offsets, since an
// offset can push an otherwise-fitting box out of bounds. Dimensions are
// floored to whole pixels so sub-pixel noise never flips the complete-fit
// decision.
func viewportFit(point geom.Point, overlay geom.Size, viewport geom.Rect) overlayFit {
	box := geom.RoundDown(geom.RectAt(point, overlay))

	leftOverflow := viewport.Left - box.Left
	rightOverflow := box.Left + box.Width - viewport.Right
	topOverflow := viewport.Top - box.Top
	bottomOverflow := box.Top + box.Height - viewport.Bottom

	visibleWidth := geom.SubtractOverflows(box.Width, leftOverflow, rightOverflow)
	visibleHeight := geom.SubtractOverflows(box.Height, topOverflow, bottomOverflow)
	visibleArea := visibleWidth * visibleHeight

	return overlayFit{
		visibleArea:              visibleArea,
		completelyWithinViewport: box.Width*box.Height == visibleArea,
		fitsVertically:           visibleHeight == box.Height,
		fitsHorizontally:         visibleWidth == box.Width,
	}
}
