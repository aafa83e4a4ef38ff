package overlay_test

import (
	"fmt"

	"github.com/skyhookui/skyhook/pkg/geom"
	"github.com/skyhookui/skyhook/pkg/overlay"
)

func ExampleStrategy() {
	// A 100x100 viewport with a 20x20 anchor near the top-left corner.
	ruler := overlay.NewStaticRuler(geom.Size{Width: 100, Height: 100})
	origin := overlay.RectOrigin(geom.NewRect(10, 10, 20, 20))

	// Prefer opening below the anchor, fall back to above.
	strategy := overlay.New(origin, ruler).WithPositions([]overlay.Position{
		{OriginX: overlay.HStart, OriginY: overlay.VBottom,
			OverlayX: overlay.HStart, OverlayY: overlay.VTop},
		{OriginX: overlay.HStart, OriginY: overlay.VTop,
			OverlayX: overlay.HStart, OverlayY: overlay.VBottom},
	})

	panel := overlay.StaticPanel{Dimensions: geom.Size{Width: 30, Height: 30}}
	renderer := overlay.NewRecorder()
	if err := strategy.Attach(panel, renderer); err != nil {
		fmt.Println("attach:", err)
		return
	}
	strategy.Apply()

	p := strategy.LastPlacement()
	fmt.Println("anchored:", p.Position.OriginY, "to", p.Position.OverlayY)
	fmt.Println("box:", p.OverlayRect.Top, p.OverlayRect.Left, p.OverlayRect.Width, p.OverlayRect.Height)
	fmt.Println("pushed:", p.Pushed)
	// Output:
	// anchored: bottom to top
	// box: 30 10 30 30
	// pushed: false
}

func ExampleStrategy_push() {
	// The panel is too large to fit anywhere, so the best candidate gets
	// pushed back on screen.
	ruler := overlay.NewStaticRuler(geom.Size{Width: 100, Height: 100})
	origin := overlay.RectOrigin(geom.NewRect(10, 10, 20, 20))

	strategy := overlay.New(origin, ruler).WithPositions([]overlay.Position{
		{OriginX: overlay.HEnd, OriginY: overlay.VBottom,
			OverlayX: overlay.HStart, OverlayY: overlay.VTop},
	})

	panel := overlay.StaticPanel{Dimensions: geom.Size{Width: 90, Height: 90}}
	if err := strategy.Attach(panel, overlay.NewRecorder()); err != nil {
		fmt.Println("attach:", err)
		return
	}
	strategy.Apply()

	p := strategy.LastPlacement()
	fmt.Println("box:", p.OverlayRect.Top, p.OverlayRect.Left)
	fmt.Println("pushed:", p.Pushed)
	// Output:
	// box: 10 10
	// pushed: true
}
