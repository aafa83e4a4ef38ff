package overlay

import (
	"testing"

	"github.com/skyhookui/skyhook/pkg/geom"
)

var centered = Position{OriginX: HCenter, OriginY: VCenter, OverlayX: HCenter, OverlayY: VCenter}

func TestBoundingBoxStylesFlexiblePlacement(t *testing.T) {
	s, _ := newTestStrategy(geom.NewRect(10, 10, 20, 20), below)
	rec := NewRecorder()
	mustAttach(t, s, StaticPanel{
		Dimensions:  geom.Size{Width: 30, Height: 30},
		Constraints: PanelConfig{MaxHeight: "200px"},
	}, rec)

	s.Apply()

	// Anchored below the origin: the box spans from the anchor to the bottom
	// viewport edge.
	box := rec.BoundingBox
	if box.Top != "30px" || box.Left != "10px" {
		t.Errorf("box offsets = top %q left %q, want 30px/10px", box.Top, box.Left)
	}
	if box.Height != "70px" || box.Width != "90px" {
		t.Errorf("box size = %q x %q, want 90px x 70px", box.Width, box.Height)
	}
	if box.AlignItems != "flex-start" || box.JustifyContent != "flex-start" {
		t.Errorf("alignment = %q/%q, want flex-start/flex-start", box.AlignItems, box.JustifyContent)
	}
	if box.MaxHeight != "200px" {
		t.Errorf("box max height = %q, want the panel constraint", box.MaxHeight)
	}
	if rec.Panel.MaxHeight != "" {
		t.Errorf("panel max height = %q, want empty for flexible placements", rec.Panel.MaxHeight)
	}
}

func TestBoundingBoxGrowthClamp(t *testing.T) {
	t.Run("never grows past the first render", func(t *testing.T) {
		s, _ := newTestStrategy(geom.NewRect(15, 15, 10, 10), centered)
		rec := NewRecorder()
		mustAttach(t, s, StaticPanel{Dimensions: geom.Size{Width: 10, Height: 10}}, rec)

		s.Apply()
		if rec.BoundingBox.Height != "40px" || rec.BoundingBox.Top != "0px" {
			t.Fatalf("initial box = %+v, want 40px tall at top 0px", rec.BoundingBox)
		}

		// More room around the new origin, but the box must stay centered on
		// its previous extent.
		s.SetOrigin(RectOrigin(geom.NewRect(45, 45, 10, 10)))
		s.Apply()

		if rec.BoundingBox.Height != "40px" || rec.BoundingBox.Top != "30px" {
			t.Errorf("box after move = %+v, want clamped 40px at top 30px", rec.BoundingBox)
		}
	})

	t.Run("grow after open lifts the clamp", func(t *testing.T) {
		s, _ := newTestStrategy(geom.NewRect(15, 15, 10, 10), centered)
		s.WithGrowAfterOpen(true)
		rec := NewRecorder()
		mustAttach(t, s, StaticPanel{Dimensions: geom.Size{Width: 10, Height: 10}}, rec)

		s.Apply()
		s.SetOrigin(RectOrigin(geom.NewRect(45, 45, 10, 10)))
		s.Apply()

		if rec.BoundingBox.Height != "100px" || rec.BoundingBox.Top != "0px" {
			t.Errorf("box after move = %+v, want full 100px at top 0px", rec.BoundingBox)
		}
	})
}

func TestExactPlacementStyles(t *testing.T) {
	t.Run("top-left anchored", func(t *testing.T) {
		s, _ := newTestStrategy(geom.NewRect(10, 10, 20, 20),
			Position{OriginX: HEnd, OriginY: VBottom, OverlayX: HStart, OverlayY: VTop})
		s.WithFlexibleDimensions(false)
		rec := NewRecorder()
		mustAttach(t, s, StaticPanel{Dimensions: geom.Size{Width: 30, Height: 30}}, rec)

		s.Apply()

		if rec.Panel.Position != "absolute" || rec.Panel.Top != "30px" || rec.Panel.Left != "30px" {
			t.Errorf("panel = %+v, want absolute at 30px/30px", rec.Panel)
		}
		if rec.BoundingBox.Top != "0" || rec.BoundingBox.Width != "100%" || rec.BoundingBox.Height != "100%" {
			t.Errorf("box = %+v, want full-size passthrough", rec.BoundingBox)
		}
	})

	t.Run("bottom anchored emits a bottom offset", func(t *testing.T) {
		s, _ := newTestStrategy(geom.NewRect(60, 10, 20, 20),
			Position{OriginX: HEnd, OriginY: VTop, OverlayX: HStart, OverlayY: VBottom})
		s.WithFlexibleDimensions(false)
		rec := NewRecorder()
		mustAttach(t, s, StaticPanel{Dimensions: geom.Size{Width: 30, Height: 30}}, rec)

		s.Apply()

		if rec.Panel.Bottom != "40px" || rec.Panel.Top != "" {
			t.Errorf("panel = %+v, want bottom 40px and no top", rec.Panel)
		}
		if rec.Panel.Left != "30px" {
			t.Errorf("panel left = %q, want 30px", rec.Panel.Left)
		}
	})

	t.Run("rtl start anchor emits a right offset", func(t *testing.T) {
		s, _ := newTestStrategy(geom.NewRect(10, 10, 20, 20),
			Position{OriginX: HStart, OriginY: VBottom, OverlayX: HStart, OverlayY: VTop})
		s.WithFlexibleDimensions(false).WithDirection(RTL)
		rec := NewRecorder()
		mustAttach(t, s, StaticPanel{Dimensions: geom.Size{Width: 30, Height: 30}}, rec)

		s.Apply()

		if rec.Panel.Right != "70px" || rec.Panel.Left != "" {
			t.Errorf("panel = %+v, want right 70px and no left", rec.Panel)
		}
		if rec.Panel.Top != "30px" {
			t.Errorf("panel top = %q, want 30px", rec.Panel.Top)
		}
	})

	t.Run("max sizes ride on the panel", func(t *testing.T) {
		s, _ := newTestStrategy(geom.NewRect(10, 10, 20, 20),
			Position{OriginX: HEnd, OriginY: VBottom, OverlayX: HStart, OverlayY: VTop})
		s.WithFlexibleDimensions(false)
		rec := NewRecorder()
		mustAttach(t, s, StaticPanel{
			Dimensions:  geom.Size{Width: 30, Height: 30},
			Constraints: PanelConfig{MaxHeight: "200px", MaxWidth: "300px"},
		}, rec)

		s.Apply()

		if rec.Panel.MaxHeight != "200px" || rec.Panel.MaxWidth != "300px" {
			t.Errorf("panel max sizes = %+v, want the configured constraints", rec.Panel)
		}
	})
}

func TestViewportMarginNarrowsTheViewport(t *testing.T) {
	s, _ := newTestStrategy(geom.NewRect(10, 10, 20, 20),
		Position{OriginX: HEnd, OriginY: VBottom, OverlayX: HStart, OverlayY: VTop})
	s.WithViewportMargin(10)
	rec := NewRecorder()
	mustAttach(t, s, StaticPanel{Dimensions: geom.Size{Width: 65, Height: 65}}, rec)

	s.Apply()

	// 30+65 overruns the margin-narrowed right/bottom edge (90) by 5, so the
	// overlay gets pushed back inside the margin.
	p := s.LastPlacement()
	if !p.Pushed {
		t.Fatal("expected a pushed placement")
	}
	if want := geom.NewRect(25, 25, 65, 65); p.OverlayRect != want {
		t.Errorf("overlay rect = %+v, want %+v", p.OverlayRect, want)
	}
}
