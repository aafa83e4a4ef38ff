package overlay

import (
	"github.com/skyhookui/skyhook/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// HorizontalPos is a horizontal connection point. Start and end are
// direction-relative: under RTL, start resolves to the right edge.
type HorizontalPos string

// Horizontal connection points.
const (
	HStart  HorizontalPos = "start"
	HCenter HorizontalPos = "center"
	HEnd    HorizontalPos = "end"
)

// VerticalPos is a vertical connection point.
type VerticalPos string

// Vertical connection points.
const (
	VTop    VerticalPos = "top"
	VCenter VerticalPos = "center"
	VBottom VerticalPos = "bottom"
)

// Direction is the layout direction used to resolve start/end.
type Direction string

// Layout directions.
const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// =============================================================================
// Position - Candidate Placement
// =============================================================================

// Position describes one candidate connection between the origin and the
// overlay panel: which point on the origin the overlay attaches to, and
// which corner of the overlay lands on that point.
//
// The order of positions passed to a strategy is their priority order: the
// first position whose overlay box fits completely inside the viewport wins,
// regardless of how well later candidates would fit.
type Position struct {
	OriginX  HorizontalPos `json:"origin_x" toml:"origin_x" bson:"origin_x"`
	OriginY  VerticalPos   `json:"origin_y" toml:"origin_y" bson:"origin_y"`
	OverlayX HorizontalPos `json:"overlay_x" toml:"overlay_x" bson:"overlay_x"`
	OverlayY VerticalPos   `json:"overlay_y" toml:"overlay_y" bson:"overlay_y"`

	// Weight scales the bounding-box area when ranking flexible fits.
	// Zero is treated as 1.
	Weight float64 `json:"weight,omitempty" toml:"weight,omitempty" bson:"weight,omitempty"`

	// OffsetX/OffsetY override the strategy's default offsets for this
	// candidate. Nil means "use the default"; an explicit zero disables the
	// default for this candidate.
	OffsetX *float64 `json:"offset_x,omitempty" toml:"offset_x,omitempty" bson:"offset_x,omitempty"`
	OffsetY *float64 `json:"offset_y,omitempty" toml:"offset_y,omitempty" bson:"offset_y,omitempty"`

	// PanelClass lists CSS classes the renderer should apply to the panel
	// while this position is active.
	PanelClass []string `json:"panel_class,omitempty" toml:"panel_class,omitempty" bson:"panel_class,omitempty"`
}

// Offset returns a pointer to v for use as a per-position offset override.
func Offset(v float64) *float64 { return &v }

// EffectiveWeight returns the weight used for flexible-fit ranking.
func (p Position) EffectiveWeight() float64 {
	if p.Weight == 0 {
		return 1
	}
	return p.Weight
}

// Mirror returns the position with start and end swapped on both the origin
// and overlay X anchors. Running a mirrored position under the opposite
// layout direction yields the same overlay box.
func (p Position) Mirror() Position {
	m := p
	m.OriginX = mirrorHorizontal(p.OriginX)
	m.OverlayX = mirrorHorizontal(p.OverlayX)
	return m
}

func mirrorHorizontal(h HorizontalPos) HorizontalPos {
	switch h {
	case HStart:
		return HEnd
	case HEnd:
		return HStart
	default:
		return h
	}
}

// Validate checks that every anchor field holds an allowed literal.
func (p Position) Validate() error {
	if err := validateHorizontal("originX", p.OriginX); err != nil {
		return err
	}
	if err := validateVertical("originY", p.OriginY); err != nil {
		return err
	}
	if err := validateHorizontal("overlayX", p.OverlayX); err != nil {
		return err
	}
	return validateVertical("overlayY", p.OverlayY)
}

// ValidatePositions checks a candidate list eagerly: it must be non-empty
// and every position must use allowed literals. Violations are configuration
// errors, surfaced immediately rather than at positioning time.
func ValidatePositions(positions []Position) error {
	if len(positions) == 0 {
		return errors.New(errors.ErrCodeNoPositions, "at least one position is required")
	}
	for i, p := range positions {
		if err := p.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPosition, err, "position %d", i)
		}
	}
	return nil
}

func validateHorizontal(field string, v HorizontalPos) error {
	switch v {
	case HStart, HCenter, HEnd:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidPosition, "%s must be one of start, center, end; got %q", field, v)
}

func validateVertical(field string, v VerticalPos) error {
	switch v {
	case VTop, VCenter, VBottom:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidPosition, "%s must be one of top, center, bottom; got %q", field, v)
}
