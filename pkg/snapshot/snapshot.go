// Package snapshot renders a solved scenario as an SVG for visual
// debugging: the viewport, its margin band, the origin, and the final
// overlay box, all in document coordinates.
package snapshot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/skyhookui/skyhook/pkg/geom"
	"github.com/skyhookui/skyhook/pkg/scenario"
)

// Palette for the snapshot layers.
const (
	viewportFill  = "#f5f5f5"
	viewportEdge  = "#9e9e9e"
	marginEdge    = "#bdbdbd"
	originFill    = "#64b5f6"
	originEdge    = "#1976d2"
	overlayFill   = "#ffb74d"
	overlayEdge   = "#ef6c00"
	pushedOverlay = "#e57373"
	pushedEdge    = "#c62828"
	labelColor    = "#424242"
)

// Option configures a snapshot render.
type Option func(*renderer)

type renderer struct {
	scale  float64
	labels bool
}

// WithScale multiplies all coordinates by the given factor. Default 1.
func WithScale(scale float64) Option {
	return func(r *renderer) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithLabels annotates each layer with its name and geometry.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// Render produces an SVG snapshot of a solved scenario.
func Render(sc *scenario.Scenario, res *scenario.Result, opts ...Option) []byte {
	r := renderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	viewport := geom.NewRect(sc.Scroll.Top, sc.Scroll.Left, sc.Viewport.Width, sc.Viewport.Height)
	origin := sc.Origin.Rect()
	overlayBox := res.Placement.OverlayRect

	frame := boundsOf(viewport, origin, overlayBox)
	const pad = 10.0
	minX := (frame.Left - pad) * r.scale
	minY := (frame.Top - pad) * r.scale
	width := (frame.Width + 2*pad) * r.scale
	height := (frame.Height + 2*pad) * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, width, height, width, height)

	r.rect(&buf, "viewport", viewport, viewportFill, viewportEdge, "")
	if sc.Margin > 0 {
		inner := geom.NewRect(viewport.Top+sc.Margin, viewport.Left+sc.Margin,
			viewport.Width-2*sc.Margin, viewport.Height-2*sc.Margin)
		r.rect(&buf, "margin", inner, "none", marginEdge, `stroke-dasharray="4 2" `)
	}
	r.rect(&buf, "origin", origin, originFill, originEdge, "")

	overlayFillColor, overlayEdgeColor := overlayFill, overlayEdge
	if res.Placement.Pushed {
		overlayFillColor, overlayEdgeColor = pushedOverlay, pushedEdge
	}
	r.rect(&buf, "overlay", overlayBox, overlayFillColor, overlayEdgeColor, `fill-opacity="0.8" `)

	if r.labels {
		r.label(&buf, viewport, "viewport")
		r.label(&buf, origin, "origin")
		overlayLabel := "overlay"
		if res.Placement.Pushed {
			overlayLabel = "overlay (pushed)"
		}
		r.label(&buf, overlayBox, overlayLabel)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r renderer) rect(buf *bytes.Buffer, class string, rect geom.Rect, fill, stroke, extra string) {
	fmt.Fprintf(buf, `  <rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" %s/>`+"\n",
		class, rect.Left*r.scale, rect.Top*r.scale, rect.Width*r.scale, rect.Height*r.scale,
		fill, stroke, extra)
}

func (r renderer) label(buf *bytes.Buffer, rect geom.Rect, text string) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>`+"\n",
		(rect.Left+2)*r.scale, (rect.Top+8)*r.scale, 7*r.scale, labelColor, text)
}

// boundsOf returns the smallest rect covering all inputs.
func boundsOf(rects ...geom.Rect) geom.Rect {
	top, left := math.Inf(1), math.Inf(1)
	bottom, right := math.Inf(-1), math.Inf(-1)
	for _, r := range rects {
		top = math.Min(top, r.Top)
		left = math.Min(left, r.Left)
		bottom = math.Max(bottom, r.Bottom)
		right = math.Max(right, r.Right)
	}
	return geom.NewRect(top, left, right-left, bottom-top)
}
