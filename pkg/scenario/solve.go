package scenario

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/skyhookui/skyhook/pkg/errors"
	"github.com/skyhookui/skyhook/pkg/overlay"
)

// Options configures a solve run.
type Options struct {
	// Logger receives per-solve diagnostics. Nil uses the default logger.
	Logger *log.Logger
}

// Solve runs one positioning pass for a scenario with in-memory adapters and
// returns the applied placement. The same scenario always yields the same
// result; positioning is a pure function of the scenario's geometry.
func Solve(s *Scenario, opts Options) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	ruler := overlay.NewStaticRuler(s.Viewport)
	ruler.SetScroll(s.Scroll)

	strategy := overlay.New(overlay.RectOrigin(s.Origin.Rect()), ruler).
		WithPositions(s.Positions).
		WithViewportMargin(s.Margin).
		WithFlexibleDimensions(s.FlexibleEnabled()).
		WithGrowAfterOpen(s.GrowAfterOpen).
		WithPush(s.PushEnabled()).
		WithLockedPosition(s.Locked).
		WithDefaultOffsetX(s.OffsetX).
		WithDefaultOffsetY(s.OffsetY).
		WithDirection(s.EffectiveDirection())

	panel := overlay.StaticPanel{Dimensions: s.Overlay, Constraints: s.Constraints}
	recorder := overlay.NewRecorder()
	if err := strategy.Attach(panel, recorder); err != nil {
		return nil, err
	}
	defer strategy.Dispose()

	start := time.Now()
	strategy.Apply()
	elapsed := time.Since(start)

	placement := strategy.LastPlacement()
	if placement == nil {
		return nil, errors.New(errors.ErrCodeInternal, "no placement applied for scenario %q", s.Name)
	}

	logger.Debug("solved scenario",
		"name", s.Name,
		"origin_y", placement.Position.OriginY,
		"overlay_y", placement.Position.OverlayY,
		"pushed", placement.Pushed,
		"duration", elapsed)

	return &Result{Placement: *placement, Duration: elapsed}, nil
}
