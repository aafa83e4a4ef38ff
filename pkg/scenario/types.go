package scenario

import (
	"time"

	"github.com/skyhookui/skyhook/pkg/errors"
	"github.com/skyhookui/skyhook/pkg/geom"
	"github.com/skyhookui/skyhook/pkg/overlay"
)

// RectSpec describes a rectangle by its top-left corner and dimensions, the
// natural shape for hand-written scenario files.
type RectSpec struct {
	Top    float64 `json:"top" toml:"top" bson:"top"`
	Left   float64 `json:"left" toml:"left" bson:"left"`
	Width  float64 `json:"width" toml:"width" bson:"width"`
	Height float64 `json:"height" toml:"height" bson:"height"`
}

// Rect expands the four lengths into a full rectangle.
func (r RectSpec) Rect() geom.Rect {
	return geom.NewRect(r.Top, r.Left, r.Width, r.Height)
}

// Scenario is a complete, self-contained positioning problem: the viewport,
// the anchor, the panel, the strategy configuration, and the candidate list.
// Scenarios serialize to TOML for hand-written files and JSON for the API;
// BSON tags cover the Mongo store backend.
type Scenario struct {
	Name string `json:"name,omitempty" toml:"name,omitempty" bson:"name,omitempty"`

	Viewport geom.Size              `json:"viewport" toml:"viewport" bson:"viewport"`
	Scroll   overlay.ScrollPosition `json:"scroll,omitempty" toml:"scroll,omitempty" bson:"scroll,omitempty"`
	Margin   float64                `json:"margin,omitempty" toml:"margin,omitempty" bson:"margin,omitempty"`

	Origin  RectSpec  `json:"origin" toml:"origin" bson:"origin"`
	Overlay geom.Size `json:"overlay" toml:"overlay" bson:"overlay"`

	// Constraints carries the panel's min/max CSS lengths. Pixel values
	// participate in flexible-fit decisions; other units pass through.
	Constraints overlay.PanelConfig `json:"constraints,omitempty" toml:"constraints,omitempty" bson:"constraints,omitempty"`

	// Direction defaults to LTR when empty.
	Direction overlay.Direction `json:"direction,omitempty" toml:"direction,omitempty" bson:"direction,omitempty"`

	// Flexible and Push default to true when omitted, matching the
	// strategy's own defaults. Use explicit false to disable.
	Flexible      *bool `json:"flexible,omitempty" toml:"flexible,omitempty" bson:"flexible,omitempty"`
	Push          *bool `json:"push,omitempty" toml:"push,omitempty" bson:"push,omitempty"`
	GrowAfterOpen bool  `json:"grow_after_open,omitempty" toml:"grow_after_open,omitempty" bson:"grow_after_open,omitempty"`
	Locked        bool  `json:"locked,omitempty" toml:"locked,omitempty" bson:"locked,omitempty"`

	OffsetX float64 `json:"offset_x,omitempty" toml:"offset_x,omitempty" bson:"offset_x,omitempty"`
	OffsetY float64 `json:"offset_y,omitempty" toml:"offset_y,omitempty" bson:"offset_y,omitempty"`

	Positions []overlay.Position `json:"positions" toml:"positions" bson:"positions"`
}

// Result is the outcome of solving a scenario: the applied placement plus
// how long the pass took.
type Result struct {
	Placement overlay.Placement `json:"placement" bson:"placement"`
	Duration  time.Duration     `json:"duration_ns" bson:"duration_ns"`
}

// FlexibleEnabled resolves the Flexible flag with its default.
func (s *Scenario) FlexibleEnabled() bool { return boolOr(s.Flexible, true) }

// PushEnabled resolves the Push flag with its default.
func (s *Scenario) PushEnabled() bool { return boolOr(s.Push, true) }

// EffectiveDirection resolves the Direction field with its default.
func (s *Scenario) EffectiveDirection() overlay.Direction {
	if s.Direction == "" {
		return overlay.LTR
	}
	return s.Direction
}

// Validate checks the scenario eagerly so malformed files fail at load time
// rather than mid-solve.
func (s *Scenario) Validate() error {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "viewport must have positive dimensions, got %gx%g",
			s.Viewport.Width, s.Viewport.Height)
	}
	if s.Overlay.Width < 0 || s.Overlay.Height < 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "overlay dimensions must not be negative, got %gx%g",
			s.Overlay.Width, s.Overlay.Height)
	}
	if s.Origin.Width < 0 || s.Origin.Height < 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "origin dimensions must not be negative, got %gx%g",
			s.Origin.Width, s.Origin.Height)
	}
	if s.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "margin must not be negative, got %g", s.Margin)
	}
	switch s.Direction {
	case "", overlay.LTR, overlay.RTL:
	default:
		return errors.New(errors.ErrCodeInvalidScenario, "direction must be ltr or rtl, got %q", s.Direction)
	}
	if err := overlay.ValidatePositions(s.Positions); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScenario, err, "positions")
	}
	return nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
