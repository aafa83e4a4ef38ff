package overlay

import (
	"math"

	"github.com/skyhookui/skyhook/pkg/geom"
)

// boundingBox is the sizing box a flexible overlay may grow or shrink
// within. Per axis, exactly one of the two offsets is meaningful: top or
// bottom, left or right. Bottom and right are CSS-style distances from the
// document's bottom/right edges.
type boundingBox struct {
	top, left     float64
	bottom, right float64
	useBottom     bool
	useRight      bool
	width, height float64
}

// calculateBoundingBox sizes the box for one candidate. On each axis the box
// is bounded by the viewport edge opposite the anchored edge. Centered axes
// get a box symmetric around the anchor, doubled from the smaller of the two
// available distances; once the overlay has rendered, a centered box that
// would grow beyond its previous size stays centered on the previous extent
// instead, unless growth after open is allowed.
func (s *Strategy) calculateBoundingBox(origin geom.Point, pos Position, viewport geom.Rect) boundingBox {
	docBottom, docRight := documentEdges(s.ruler)
	var b boundingBox

	switch pos.OverlayY {
	case VTop:
		b.top = origin.Y
		b.height = viewport.Bottom - origin.Y
	case VBottom:
		b.useBottom = true
		b.bottom = docBottom - origin.Y
		b.height = origin.Y - viewport.Top
	default:
		smallest := math.Min(viewport.Bottom-origin.Y, origin.Y-viewport.Top)
		previous := s.lastBoundingBoxSize.Height

		b.height = smallest * 2
		b.top = origin.Y - smallest

		if b.height > previous && !s.isInitialRender && !s.growAfterOpen {
			b.top = origin.Y - previous/2
		}
	}

	rtl := s.direction == RTL
	boundedByRightEdge := (pos.OverlayX == HStart && !rtl) || (pos.OverlayX == HEnd && rtl)
	boundedByLeftEdge := (pos.OverlayX == HEnd && !rtl) || (pos.OverlayX == HStart && rtl)

	switch {
	case boundedByLeftEdge:
		b.useRight = true
		b.right = docRight - origin.X
		b.width = origin.X - viewport.Left
	case boundedByRightEdge:
		b.left = origin.X
		b.width = viewport.Right - origin.X
	default:
		smallest := math.Min(viewport.Right-origin.X, origin.X-viewport.Left)
		previous := s.lastBoundingBoxSize.Width

		b.width = smallest * 2
		b.left = origin.X - smallest

		if b.width > previous && !s.isInitialRender && !s.growAfterOpen {
			b.left = origin.X - previous/2
		}
	}

	return b
}

// boundingBoxStyle converts the candidate's sizing box into renderer styles
// and returns the box size that must be remembered for the growth policy.
// For exact placements the box collapses to a full-size passthrough and the
// panel styles carry the coordinates instead.
func (s *Strategy) boundingBoxStyle(origin geom.Point, pos Position, viewport geom.Rect) (BoxStyle, geom.Size) {
	b := s.calculateBoundingBox(origin, pos, viewport)

	// Shrinking is always allowed; growth only on the initial render or when
	// explicitly enabled.
	if !s.isInitialRender && !s.growAfterOpen {
		b.height = math.Min(b.height, s.lastBoundingBoxSize.Height)
		b.width = math.Min(b.width, s.lastBoundingBoxSize.Width)
	}

	var st BoxStyle
	if s.hasExactPosition() {
		st.Top = "0"
		st.Left = "0"
		st.Width = "100%"
		st.Height = "100%"
	} else {
		cfg := s.panel.Config()

		st.Height = Px(b.height)
		st.Width = Px(b.width)
		if b.useBottom {
			st.Bottom = Px(b.bottom)
		} else {
			st.Top = Px(b.top)
		}
		if b.useRight {
			st.Right = Px(b.right)
		} else {
			st.Left = Px(b.left)
		}

		switch pos.OverlayX {
		case HCenter:
			st.AlignItems = "center"
		case HEnd:
			st.AlignItems = "flex-end"
		default:
			st.AlignItems = "flex-start"
		}
		switch pos.OverlayY {
		case VCenter:
			st.JustifyContent = "center"
		case VBottom:
			st.JustifyContent = "flex-end"
		default:
			st.JustifyContent = "flex-start"
		}

		st.MaxHeight = cfg.MaxHeight
		st.MaxWidth = cfg.MaxWidth
	}

	return st, geom.Size{Width: b.width, Height: b.height}
}

// panelStyle computes the styles for the panel element itself. Exact
// placements pin the panel to document coordinates; flexible placements make
// it static so the sizing box and its alignment hints take over. Offsets
// ride in a transform either way so the emitted coordinates stay anchored.
func (s *Strategy) panelStyle(pos Position, point geom.Point, overlay geom.Size) PanelStyle {
	var st PanelStyle

	if s.hasExactPosition() {
		st.Position = "absolute"
		docBottom, docRight := documentEdges(s.ruler)

		if pos.OverlayY == VBottom {
			st.Bottom = Px(docBottom - (point.Y + overlay.Height))
		} else {
			st.Top = Px(point.Y)
		}

		rtl := s.direction == RTL
		var useRight bool
		if rtl {
			useRight = pos.OverlayX != HEnd
		} else {
			useRight = pos.OverlayX == HEnd
		}
		if useRight {
			st.Right = Px(docRight - (point.X + overlay.Width))
		} else {
			st.Left = Px(point.X)
		}

		cfg := s.panel.Config()
		st.MaxHeight = cfg.MaxHeight
		st.MaxWidth = cfg.MaxWidth
	} else {
		st.Position = "static"
	}

	st.Transform = translate(s.offsetX(pos), s.offsetY(pos))
	return st
}
